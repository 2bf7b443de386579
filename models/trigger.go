package models

// TriggerMap maps trigger text to the role ID it grants. One map exists per
// guild, stored as vanity_roles_<guildID>.json.
type TriggerMap map[string]string
