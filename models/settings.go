package models

// Match modes for trigger evaluation.
const (
	MatchSubstring    = "substring"
	MatchExact        = "exact"
	MatchWordBoundary = "word_boundary"
)

// Priority modes for collapsing multiple trigger matches.
const (
	PriorityLongestFirst  = "longest_first"
	PriorityShortestFirst = "shortest_first"
	PriorityAll           = "all"
)

// GuildSettings represents the per-guild vanity matching configuration.
// It is stored as one entry in vanity_settings.json, keyed by guild ID.
type GuildSettings struct {
	MatchMode                string   `json:"match_mode"`
	PriorityMode             string   `json:"priority_mode"`
	CaseSensitive            bool     `json:"case_sensitive"`
	EnabledTriggers          []string `json:"enabled_triggers"`
	RoleLogEnabled           bool     `json:"role_log_enabled"`
	RoleLogChannelID         string   `json:"role_log_channel_id"`
	CheckBio                 bool     `json:"check_bio"`
	CheckServerInvite        bool     `json:"check_server_invite"`
	RequireServerInviteMatch bool     `json:"require_server_invite_match"`
	LogWebhook               string   `json:"log_webhook"`
}

// DefaultGuildSettings returns the configuration used for a guild that has
// never been configured.
func DefaultGuildSettings() GuildSettings {
	return GuildSettings{
		MatchMode:         MatchSubstring,
		PriorityMode:      PriorityLongestFirst,
		CheckBio:          true,
		CheckServerInvite: true,
	}
}
