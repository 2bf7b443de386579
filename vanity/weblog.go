package vanity

import (
	"context"
	"log"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

var webhookURLPattern = regexp.MustCompile(`discord(?:app)?\.com/api/webhooks/(\d+)/([\w-]+)`)

// suppressWindow is how long identical (guild, event) log bursts are muted.
const suppressWindow = 10 * time.Second

// webhookExecutor is the slice of discordgo.Session the logger needs.
type webhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// WebhookLogger posts vanity events to a guild-configured webhook. It is
// best-effort: failures are logged and never propagate to the engine. A
// per-(guild, event) suppression cache mutes duplicate bursts, and the cache
// is swept each time it is consulted so it stays bounded.
type WebhookLogger struct {
	exec    webhookExecutor
	limiter *RateLimiter

	mu       sync.Mutex
	lastSent map[string]time.Time
}

// NewWebhookLogger creates a webhook logger gated by rl.
func NewWebhookLogger(exec webhookExecutor, rl *RateLimiter) *WebhookLogger {
	return &WebhookLogger{
		exec:     exec,
		limiter:  rl,
		lastSent: make(map[string]time.Time),
	}
}

// Send posts one event embed to webhookURL. Empty or malformed URLs and
// suppressed duplicates are silent no-ops.
func (w *WebhookLogger) Send(ctx context.Context, guildID, guildName, eventType, message, webhookURL string, fields map[string]string) {
	if webhookURL == "" {
		return
	}

	parts := webhookURLPattern.FindStringSubmatch(webhookURL)
	if parts == nil {
		log.Printf("Invalid log webhook URL configured for guild %s", guildID)
		return
	}

	key := guildID + ":" + eventType
	if w.suppressed(key, time.Now()) {
		return
	}

	if err := w.limiter.Acquire(ctx); err != nil {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Vanity " + titleFor(eventType),
		Description: message,
		Color:       0x9b59b6,
		Timestamp:   time.Now().Format(time.RFC3339),
		Footer:      &discordgo.MessageEmbedFooter{Text: "Guild: " + guildName},
	}
	for _, name := range sortedFieldNames(fields) {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: truncate(fields[name], 1024),
		})
	}

	_, err := w.exec.WebhookExecute(parts[1], parts[2], false, &discordgo.WebhookParams{
		Username: "Vanity Logger",
		Embeds:   []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		log.Printf("Error sending webhook log for guild %s: %v", guildID, err)
		return
	}

	// Stamp only after the webhook accepted the event, so a failed or
	// cancelled send never mutes the next attempt.
	w.markSent(key, time.Now())
}

// suppressed consults the suppression cache, evicting entries older than the
// window so the cache cannot grow without bound.
func (w *WebhookLogger) suppressed(key string, now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for k, at := range w.lastSent {
		if now.Sub(at) > suppressWindow {
			delete(w.lastSent, k)
		}
	}

	last, ok := w.lastSent[key]
	return ok && now.Sub(last) < suppressWindow
}

func (w *WebhookLogger) markSent(key string, now time.Time) {
	w.mu.Lock()
	w.lastSent[key] = now
	w.mu.Unlock()
}

func titleFor(eventType string) string {
	switch eventType {
	case "role_added":
		return "Role Added"
	case "role_removed":
		return "Role Removed"
	case "trigger_added":
		return "Trigger Added"
	case "trigger_removed":
		return "Trigger Removed"
	default:
		return eventType
	}
}

func sortedFieldNames(fields map[string]string) []string {
	names := make([]string, 0, len(fields))
	for n := range fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
