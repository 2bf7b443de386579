package premium

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"vanity-bot/models"
)

// EntitlementChecker is an optional remote source of entitlement answers.
type EntitlementChecker interface {
	Check(ctx context.Context, guildID string) (premium bool, tier string, err error)
}

// Registry answers premium entitlement questions from the subscriptions file,
// optionally consulting a remote entitlement service first. The local file is
// re-read on every check so edits by the owner command or external tooling
// take effect immediately.
type Registry struct {
	file     string
	failOpen bool
	remote   EntitlementChecker
	timeout  time.Duration
	now      func() time.Time

	mu sync.Mutex // serializes writes to the file
}

// NewRegistry creates a registry backed by the given premium data file.
// When failOpen is true, an unreadable file grants entitlement rather than
// denying it, preserving the original lenient-degradation behavior.
func NewRegistry(file string, failOpen bool) *Registry {
	return &Registry{
		file:     file,
		failOpen: failOpen,
		timeout:  5 * time.Second,
		now:      time.Now,
	}
}

// UseRemote attaches a remote entitlement service consulted before the local
// file.
func (r *Registry) UseRemote(remote EntitlementChecker) {
	r.remote = remote
}

// load reads the premium data fresh from disk. A missing file yields an empty
// structure, not an error.
func (r *Registry) load() (*models.PremiumData, error) {
	data := &models.PremiumData{
		Subscriptions: make(map[string]models.Subscription),
	}

	raw, err := os.ReadFile(r.file)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, fmt.Errorf("failed to read premium data: %w", err)
	}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("failed to parse premium data: %w", err)
	}
	if data.Subscriptions == nil {
		data.Subscriptions = make(map[string]models.Subscription)
	}
	return data, nil
}

// IsPremium reports whether the guild is entitled to the vanity feature.
func (r *Registry) IsPremium(guildID string) bool {
	if r.remote != nil {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		premium, _, err := r.remote.Check(ctx, guildID)
		if err == nil {
			return premium
		}
		log.Printf("Entitlement service unreachable, falling back to local data: %v", err)
	}
	return r.Tier(guildID) != models.TierFree
}

// Tier returns the guild's effective tier. Expired subscriptions count as
// FREE; grandfathered guilds keep their own tier.
func (r *Registry) Tier(guildID string) string {
	data, err := r.load()
	if err != nil {
		log.Printf("Error loading premium data: %v (fail_open=%v)", err, r.failOpen)
		if r.failOpen {
			return models.TierGrandfathered
		}
		return models.TierFree
	}

	for _, g := range data.Grandfathered {
		if g == guildID {
			return models.TierGrandfathered
		}
	}

	sub, ok := data.Subscriptions[guildID]
	if !ok || sub.Tier == "" {
		return models.TierFree
	}
	if r.expired(sub) {
		return models.TierFree
	}
	return sub.Tier
}

// RoleLimit returns how many vanity triggers the guild may configure.
// Negative means unlimited.
func (r *Registry) RoleLimit(guildID string) int {
	return models.TierRoleLimit(r.Tier(guildID))
}

// Subscription returns the guild's raw subscription entry, if any.
func (r *Registry) Subscription(guildID string) (models.Subscription, bool) {
	data, err := r.load()
	if err != nil {
		return models.Subscription{}, false
	}
	sub, ok := data.Subscriptions[guildID]
	return sub, ok
}

// SetPremium records or replaces a guild's subscription. days == -1 means
// permanent.
func (r *Registry) SetPremium(guildID, tier string, days int, setBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return err
	}

	now := r.now()
	expires := ""
	if days != -1 {
		expires = now.Add(time.Duration(days) * 24 * time.Hour).Format(time.RFC3339)
	}

	data.Subscriptions[guildID] = models.Subscription{
		Tier:          strings.ToUpper(tier),
		ExpiresAt:     expires,
		PurchasedBy:   setBy,
		PurchasedAt:   now.Format(time.RFC3339),
		PaymentMethod: "Manual",
	}

	return r.save(data)
}

func (r *Registry) save(data *models.PremiumData) error {
	if err := os.MkdirAll(filepath.Dir(r.file), 0755); err != nil {
		return fmt.Errorf("failed to create premium data directory: %w", err)
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal premium data: %w", err)
	}
	if err := os.WriteFile(r.file, raw, 0644); err != nil {
		return fmt.Errorf("failed to write premium data: %w", err)
	}
	return nil
}

// expired reports whether the subscription's expiry lies in the past. An
// unparseable timestamp is treated as permanent.
func (r *Registry) expired(sub models.Subscription) bool {
	if sub.ExpiresAt == "" || sub.ExpiresAt == "null" {
		return false
	}
	expires, err := time.Parse(time.RFC3339, sub.ExpiresAt)
	if err != nil {
		return false
	}
	return expires.Before(r.now())
}
