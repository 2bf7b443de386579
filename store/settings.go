package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"vanity-bot/models"
)

// SettingsStore keeps every guild's vanity settings in one JSON file, held in
// memory and flushed as a whole on every change. Defaults are served for
// guilds that were never configured.
type SettingsStore struct {
	file string

	mu       sync.RWMutex
	settings map[string]models.GuildSettings

	// flushMu serializes file writes without holding mu, so reads never
	// wait on another guild's disk flush.
	flushMu sync.Mutex
}

// NewSettingsStore creates a settings store backed by the given file.
func NewSettingsStore(file string) *SettingsStore {
	return &SettingsStore{
		file:     file,
		settings: make(map[string]models.GuildSettings),
	}
}

// Load reads the settings file into memory. A missing file is not an error.
func (ss *SettingsStore) Load() error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	data, err := os.ReadFile(ss.file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read vanity settings: %w", err)
	}

	settings := make(map[string]models.GuildSettings)
	if err := json.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("failed to parse vanity settings: %w", err)
	}
	ss.settings = settings
	return nil
}

// Get returns a guild's settings, falling back to defaults when the guild has
// no saved entry.
func (ss *SettingsStore) Get(guildID string) models.GuildSettings {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	if s, ok := ss.settings[guildID]; ok {
		return s
	}
	return models.DefaultGuildSettings()
}

// Put replaces a guild's settings and writes the whole file back to disk.
// The write completes before Put returns; on write failure the in-memory
// state keeps the new value, so memory and disk can diverge until the next
// successful save. That is logged by the caller rather than rolled back.
func (ss *SettingsStore) Put(guildID string, s models.GuildSettings) error {
	ss.mu.Lock()
	ss.settings[guildID] = s
	snapshot := ss.snapshotLocked()
	ss.mu.Unlock()

	return ss.flush(snapshot)
}

// Delete removes a guild's settings entry. Used on guild departure.
func (ss *SettingsStore) Delete(guildID string) error {
	ss.mu.Lock()
	if _, ok := ss.settings[guildID]; !ok {
		ss.mu.Unlock()
		return nil
	}
	delete(ss.settings, guildID)
	snapshot := ss.snapshotLocked()
	ss.mu.Unlock()

	return ss.flush(snapshot)
}

// snapshotLocked copies the settings map. Callers hold ss.mu.
func (ss *SettingsStore) snapshotLocked() map[string]models.GuildSettings {
	snapshot := make(map[string]models.GuildSettings, len(ss.settings))
	for k, v := range ss.settings {
		snapshot[k] = v
	}
	return snapshot
}

// flush writes a snapshot to disk. Only flushMu is held, so concurrent Gets
// proceed against the in-memory map while the file write runs.
func (ss *SettingsStore) flush(snapshot map[string]models.GuildSettings) error {
	ss.flushMu.Lock()
	defer ss.flushMu.Unlock()

	if err := os.MkdirAll(filepath.Dir(ss.file), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal vanity settings: %w", err)
	}

	if err := os.WriteFile(ss.file, data, 0644); err != nil {
		return fmt.Errorf("failed to write vanity settings: %w", err)
	}
	return nil
}
