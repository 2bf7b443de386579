package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"vanity-bot/models"
)

// ErrEmptyTrigger is returned when an empty trigger string is added. An empty
// trigger would match every status under substring mode.
var ErrEmptyTrigger = errors.New("trigger text cannot be empty")

// TriggerStore persists per-guild trigger→role mappings as JSON files under
// the vanity data directory. Each guild's file is an independent unit guarded
// by its own lock, so reads for one guild never wait on another guild's write.
type TriggerStore struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewTriggerStore creates a trigger store rooted at dir.
func NewTriggerStore(dir string) *TriggerStore {
	return &TriggerStore{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}
}

func (ts *TriggerStore) guildLock(guildID string) *sync.Mutex {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	l, ok := ts.locks[guildID]
	if !ok {
		l = &sync.Mutex{}
		ts.locks[guildID] = l
	}
	return l
}

func (ts *TriggerStore) path(guildID string) string {
	return filepath.Join(ts.dir, fmt.Sprintf("vanity_roles_%s.json", guildID))
}

// Load reads a guild's trigger map. A missing file is not an error; it
// returns an empty map.
func (ts *TriggerStore) Load(guildID string) (models.TriggerMap, error) {
	l := ts.guildLock(guildID)
	l.Lock()
	defer l.Unlock()
	return ts.load(guildID)
}

func (ts *TriggerStore) load(guildID string) (models.TriggerMap, error) {
	data, err := os.ReadFile(ts.path(guildID))
	if err != nil {
		if os.IsNotExist(err) {
			return models.TriggerMap{}, nil
		}
		return nil, fmt.Errorf("failed to read trigger map for guild %s: %w", guildID, err)
	}

	m := models.TriggerMap{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse trigger map for guild %s: %w", guildID, err)
	}
	return m, nil
}

// Save overwrites a guild's trigger map on disk. The write is a whole-file
// replacement; concurrent admin edits can lose each other's changes, which
// matches the original persistence semantics.
func (ts *TriggerStore) Save(guildID string, m models.TriggerMap) error {
	l := ts.guildLock(guildID)
	l.Lock()
	defer l.Unlock()
	return ts.save(guildID, m)
}

func (ts *TriggerStore) save(guildID string, m models.TriggerMap) error {
	if err := os.MkdirAll(ts.dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal trigger map for guild %s: %w", guildID, err)
	}

	if err := os.WriteFile(ts.path(guildID), data, 0644); err != nil {
		return fmt.Errorf("failed to write trigger map for guild %s: %w", guildID, err)
	}
	return nil
}

// Add inserts or replaces one trigger→role mapping.
func (ts *TriggerStore) Add(guildID, trigger, roleID string) error {
	trigger = strings.TrimSpace(trigger)
	if trigger == "" {
		return ErrEmptyTrigger
	}

	l := ts.guildLock(guildID)
	l.Lock()
	defer l.Unlock()

	m, err := ts.load(guildID)
	if err != nil {
		return err
	}
	m[trigger] = roleID
	return ts.save(guildID, m)
}

// Remove deletes one trigger mapping. It reports whether the trigger existed.
func (ts *TriggerStore) Remove(guildID, trigger string) (bool, error) {
	l := ts.guildLock(guildID)
	l.Lock()
	defer l.Unlock()

	m, err := ts.load(guildID)
	if err != nil {
		return false, err
	}
	if _, ok := m[trigger]; !ok {
		return false, nil
	}
	delete(m, trigger)
	return true, ts.save(guildID, m)
}

// Count returns how many triggers a guild has configured.
func (ts *TriggerStore) Count(guildID string) (int, error) {
	m, err := ts.Load(guildID)
	if err != nil {
		return 0, err
	}
	return len(m), nil
}

// Delete removes a guild's trigger file entirely. Used when the bot leaves a
// guild so stale files do not accumulate.
func (ts *TriggerStore) Delete(guildID string) error {
	l := ts.guildLock(guildID)
	l.Lock()
	defer l.Unlock()

	if err := os.Remove(ts.path(guildID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete trigger map for guild %s: %w", guildID, err)
	}
	return nil
}
