package premium

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"vanity-bot/models"
)

func testRegistry(t *testing.T, failOpen bool) *Registry {
	t.Helper()
	return NewRegistry(filepath.Join(t.TempDir(), "premium.json"), failOpen)
}

func TestRegistryMissingFile(t *testing.T) {
	r := testRegistry(t, false)

	if r.IsPremium("123") {
		t.Error("guild without subscription should not be premium")
	}
	if tier := r.Tier("123"); tier != models.TierFree {
		t.Errorf("tier = %q, want FREE", tier)
	}
	if limit := r.RoleLimit("123"); limit != 0 {
		t.Errorf("role limit = %d, want 0", limit)
	}
}

func TestRegistrySetPremiumAndExpiry(t *testing.T) {
	r := testRegistry(t, false)

	if err := r.SetPremium("123", "pro", 30, "owner"); err != nil {
		t.Fatalf("SetPremium failed: %v", err)
	}

	if !r.IsPremium("123") {
		t.Error("guild should be premium after SetPremium")
	}
	if tier := r.Tier("123"); tier != models.TierPro {
		t.Errorf("tier = %q, want PRO", tier)
	}
	if limit := r.RoleLimit("123"); limit != 3 {
		t.Errorf("role limit = %d, want 3", limit)
	}

	// Advance the clock past expiry.
	r.now = func() time.Time { return time.Now().Add(31 * 24 * time.Hour) }
	if r.IsPremium("123") {
		t.Error("expired subscription should not be premium")
	}
	if tier := r.Tier("123"); tier != models.TierFree {
		t.Errorf("expired tier = %q, want FREE", tier)
	}
}

func TestRegistryPermanentSubscription(t *testing.T) {
	r := testRegistry(t, false)

	if err := r.SetPremium("123", "ultra", -1, "owner"); err != nil {
		t.Fatalf("SetPremium failed: %v", err)
	}

	r.now = func() time.Time { return time.Now().Add(10 * 365 * 24 * time.Hour) }
	if !r.IsPremium("123") {
		t.Error("permanent subscription must never expire")
	}
	if limit := r.RoleLimit("123"); limit != 5 {
		t.Errorf("ULTRA role limit = %d, want 5", limit)
	}
}

func TestRegistryGrandfathered(t *testing.T) {
	file := filepath.Join(t.TempDir(), "premium.json")
	if err := os.WriteFile(file, []byte(`{"subscriptions":{},"grandfathered":["123"]}`), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry(file, false)
	if !r.IsPremium("123") {
		t.Error("grandfathered guild should be premium")
	}
	if tier := r.Tier("123"); tier != models.TierGrandfathered {
		t.Errorf("tier = %q, want GRANDFATHERED", tier)
	}
	if limit := r.RoleLimit("123"); limit >= 0 {
		t.Errorf("grandfathered limit = %d, want unlimited", limit)
	}
}

func TestRegistryFailOpen(t *testing.T) {
	file := filepath.Join(t.TempDir(), "premium.json")
	if err := os.WriteFile(file, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	open := NewRegistry(file, true)
	if !open.IsPremium("123") {
		t.Error("fail-open registry should grant entitlement on unreadable data")
	}

	closed := NewRegistry(file, false)
	if closed.IsPremium("123") {
		t.Error("fail-closed registry should deny entitlement on unreadable data")
	}
}

type fakeRemote struct {
	premium bool
	tier    string
	err     error
	calls   int
}

func (f *fakeRemote) Check(ctx context.Context, guildID string) (bool, string, error) {
	f.calls++
	return f.premium, f.tier, f.err
}

func TestRegistryRemoteFirst(t *testing.T) {
	r := testRegistry(t, false)
	remote := &fakeRemote{premium: true, tier: models.TierUltra}
	r.UseRemote(remote)

	if !r.IsPremium("123") {
		t.Error("remote says premium, registry should agree")
	}
	if remote.calls != 1 {
		t.Errorf("remote consulted %d times, want 1", remote.calls)
	}
}

func TestRegistryRemoteFallback(t *testing.T) {
	r := testRegistry(t, false)
	if err := r.SetPremium("123", "basic", -1, "owner"); err != nil {
		t.Fatal(err)
	}
	r.UseRemote(&fakeRemote{err: errors.New("unavailable")})

	if !r.IsPremium("123") {
		t.Error("registry should fall back to local data when the remote errors")
	}
}
