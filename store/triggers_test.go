package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"vanity-bot/models"
)

func TestTriggerStoreMissingFile(t *testing.T) {
	ts := NewTriggerStore(t.TempDir())

	m, err := ts.Load("123")
	if err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}
	if len(m) != 0 {
		t.Errorf("expected empty map, got %v", m)
	}
}

func TestTriggerStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ts := NewTriggerStore(dir)

	if err := ts.Add("123", "gamer", "900"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := ts.Add("123", "pro gamer", "901"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	m, err := ts.Load("123")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m["gamer"] != "900" || m["pro gamer"] != "901" {
		t.Errorf("unexpected map contents: %v", m)
	}

	// The file must exist on disk, not just in memory.
	if _, err := os.Stat(filepath.Join(dir, "vanity_roles_123.json")); err != nil {
		t.Errorf("trigger file not written: %v", err)
	}

	// Another guild's map stays independent.
	other, err := ts.Load("456")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("guild 456 should have no triggers, got %v", other)
	}
}

func TestTriggerStoreRejectsEmptyTrigger(t *testing.T) {
	ts := NewTriggerStore(t.TempDir())

	for _, trigger := range []string{"", "   ", "\t"} {
		if err := ts.Add("123", trigger, "900"); err != ErrEmptyTrigger {
			t.Errorf("Add(%q) error = %v, want ErrEmptyTrigger", trigger, err)
		}
	}
}

func TestTriggerStoreRemove(t *testing.T) {
	ts := NewTriggerStore(t.TempDir())

	if err := ts.Add("123", "gamer", "900"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	removed, err := ts.Remove("123", "gamer")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !removed {
		t.Error("Remove should report the trigger existed")
	}

	removed, err = ts.Remove("123", "gamer")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed {
		t.Error("second Remove should report the trigger missing")
	}
}

func TestTriggerStoreDelete(t *testing.T) {
	dir := t.TempDir()
	ts := NewTriggerStore(dir)

	if err := ts.Add("123", "gamer", "900"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := ts.Delete("123"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "vanity_roles_123.json")); !os.IsNotExist(err) {
		t.Error("trigger file should be gone after Delete")
	}

	// Deleting a guild that has no file is fine.
	if err := ts.Delete("456"); err != nil {
		t.Errorf("Delete for missing guild returned error: %v", err)
	}
}

func TestSettingsStoreDefaults(t *testing.T) {
	ss := NewSettingsStore(filepath.Join(t.TempDir(), "vanity_settings.json"))
	if err := ss.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	s := ss.Get("123")
	if s.MatchMode != models.MatchSubstring {
		t.Errorf("default match mode = %q, want %q", s.MatchMode, models.MatchSubstring)
	}
	if s.PriorityMode != models.PriorityLongestFirst {
		t.Errorf("default priority mode = %q, want %q", s.PriorityMode, models.PriorityLongestFirst)
	}
	if !s.CheckBio || !s.CheckServerInvite {
		t.Error("check_bio and check_server_invite should default to true")
	}
	if s.CaseSensitive {
		t.Error("case_sensitive should default to false")
	}
}

func TestSettingsStorePersistence(t *testing.T) {
	file := filepath.Join(t.TempDir(), "vanity_settings.json")

	ss := NewSettingsStore(file)
	s := ss.Get("123")
	s.MatchMode = models.MatchExact
	s.CaseSensitive = true
	if err := ss.Put("123", s); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// A fresh store reading the same file sees the saved values.
	ss2 := NewSettingsStore(file)
	if err := ss2.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got := ss2.Get("123")
	if got.MatchMode != models.MatchExact || !got.CaseSensitive {
		t.Errorf("reloaded settings = %+v", got)
	}

	if err := ss2.Delete("123"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if ss2.Get("123").MatchMode != models.MatchSubstring {
		t.Error("deleted guild should fall back to defaults")
	}
}

func TestSettingsStoreConcurrentReadsAndWrites(t *testing.T) {
	ss := NewSettingsStore(filepath.Join(t.TempDir(), "vanity_settings.json"))

	// Reads for one guild must not serialize behind another guild's disk
	// flush; run both concurrently and let the race detector watch.
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		guildID := fmt.Sprintf("guild-%d", g)
		wg.Add(2)
		go func() {
			defer wg.Done()
			for n := 0; n < 20; n++ {
				s := models.DefaultGuildSettings()
				s.CaseSensitive = n%2 == 0
				if err := ss.Put(guildID, s); err != nil {
					t.Errorf("Put %s: %v", guildID, err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				_ = ss.Get("guild-0")
			}
		}()
	}
	wg.Wait()

	for g := 0; g < 4; g++ {
		guildID := fmt.Sprintf("guild-%d", g)
		if got := ss.Get(guildID); got.MatchMode != models.MatchSubstring {
			t.Errorf("settings for %s lost after concurrent writes: %+v", guildID, got)
		}
	}
}
