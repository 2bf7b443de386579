package vanity

import (
	"github.com/bwmarrin/discordgo"
)

// SessionMutator applies role mutations through a discordgo session, with the
// reason attached as the audit log entry. The session is expected to have
// ShouldRetryOnRateLimit disabled so throttling surfaces here and the
// reconciler's own backoff stays in control.
type SessionMutator struct {
	s *discordgo.Session
}

// NewSessionMutator wraps a discordgo session as a RoleMutator.
func NewSessionMutator(s *discordgo.Session) *SessionMutator {
	return &SessionMutator{s: s}
}

func (m *SessionMutator) AddRole(guildID, userID, roleID, reason string) error {
	return wrapRESTError(m.s.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithAuditLogReason(reason)))
}

func (m *SessionMutator) RemoveRole(guildID, userID, roleID, reason string) error {
	return wrapRESTError(m.s.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithAuditLogReason(reason)))
}
