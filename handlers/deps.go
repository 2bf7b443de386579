package handlers

import (
	"database/sql"

	"vanity-bot/premium"
	"vanity-bot/store"
	"vanity-bot/vanity"
)

// Deps carries the shared services the command handlers need. main wires it
// once at startup via Configure before any handler can fire.
type Deps struct {
	Triggers *store.TriggerStore
	Settings *store.SettingsStore
	Premium  *premium.Registry
	Engine   *vanity.Engine
	DB       *sql.DB
}

var deps Deps

// Configure installs the handler dependencies.
func Configure(d Deps) {
	deps = d
}
