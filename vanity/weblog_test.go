package vanity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

type fakeExecutor struct {
	calls    int
	lastID   string
	lastTok  string
	lastData *discordgo.WebhookParams
	err      error
}

func (f *fakeExecutor) WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.calls++
	f.lastID = webhookID
	f.lastTok = token
	f.lastData = data
	return nil, f.err
}

func testWebhookLogger(exec webhookExecutor) *WebhookLogger {
	return NewWebhookLogger(exec, NewRateLimiter(1000, time.Second))
}

func TestWebhookLoggerParsesURL(t *testing.T) {
	fake := &fakeExecutor{}
	w := testWebhookLogger(fake)

	w.Send(context.Background(), "g1", "Guild One", "role_added", "msg",
		"https://discord.com/api/webhooks/123456/ab-cdef_gh", nil)

	if fake.calls != 1 {
		t.Fatalf("WebhookExecute called %d times, want 1", fake.calls)
	}
	if fake.lastID != "123456" || fake.lastTok != "ab-cdef_gh" {
		t.Errorf("parsed id=%q token=%q", fake.lastID, fake.lastTok)
	}
	if len(fake.lastData.Embeds) != 1 || fake.lastData.Embeds[0].Title != "Vanity Role Added" {
		t.Errorf("embed = %+v", fake.lastData.Embeds)
	}
}

func TestWebhookLoggerIgnoresBadURL(t *testing.T) {
	fake := &fakeExecutor{}
	w := testWebhookLogger(fake)

	w.Send(context.Background(), "g1", "Guild One", "role_added", "msg", "", nil)
	w.Send(context.Background(), "g1", "Guild One", "role_added", "msg", "https://example.com/nope", nil)

	if fake.calls != 0 {
		t.Errorf("WebhookExecute called %d times for bad URLs", fake.calls)
	}
}

func TestWebhookLoggerSuppressesBursts(t *testing.T) {
	fake := &fakeExecutor{}
	w := testWebhookLogger(fake)
	url := "https://discord.com/api/webhooks/1/tok"

	w.Send(context.Background(), "g1", "Guild One", "role_added", "first", url, nil)
	w.Send(context.Background(), "g1", "Guild One", "role_added", "burst", url, nil)
	if fake.calls != 1 {
		t.Errorf("duplicate event within window sent anyway, calls=%d", fake.calls)
	}

	// A different event type is its own key.
	w.Send(context.Background(), "g1", "Guild One", "role_removed", "other", url, nil)
	if fake.calls != 2 {
		t.Errorf("distinct event suppressed, calls=%d", fake.calls)
	}
}

func TestWebhookLoggerFailedSendDoesNotSuppress(t *testing.T) {
	fake := &fakeExecutor{err: errors.New("502 bad gateway")}
	w := testWebhookLogger(fake)
	url := "https://discord.com/api/webhooks/1/tok"

	w.Send(context.Background(), "g1", "Guild One", "role_added", "first", url, nil)
	if fake.calls != 1 {
		t.Fatalf("WebhookExecute called %d times, want 1", fake.calls)
	}

	// Delivery failed, so the retry must not be muted.
	fake.err = nil
	w.Send(context.Background(), "g1", "Guild One", "role_added", "retry", url, nil)
	if fake.calls != 2 {
		t.Errorf("retry after failed send suppressed, calls=%d", fake.calls)
	}

	// The successful send is what starts the window.
	w.Send(context.Background(), "g1", "Guild One", "role_added", "burst", url, nil)
	if fake.calls != 2 {
		t.Errorf("duplicate after successful send went through, calls=%d", fake.calls)
	}
}

func TestWebhookLoggerCacheEviction(t *testing.T) {
	w := testWebhookLogger(&fakeExecutor{})

	base := time.Now()
	for i := 0; i < 100; i++ {
		key := "g" + string(rune('a'+i%26)) + ":role_added"
		w.markSent(key, base.Add(time.Duration(i)*time.Millisecond))
	}

	// Consulting the cache far past the window must sweep the stale keys.
	w.suppressed("fresh:role_added", base.Add(time.Minute))
	w.markSent("fresh:role_added", base.Add(time.Minute))

	w.mu.Lock()
	size := len(w.lastSent)
	w.mu.Unlock()
	if size != 1 {
		t.Errorf("cache holds %d entries after sweep, want 1", size)
	}
}
