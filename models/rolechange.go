package models

// RoleChange is one row in the role_changes history table.
type RoleChange struct {
	ID        int64
	GuildID   string
	MemberID  string
	RoleID    string
	RoleName  string
	Action    string // "added" or "removed"
	Trigger   string
	Reason    string
	Timestamp int64 // unix seconds
}
