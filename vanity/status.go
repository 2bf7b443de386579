package vanity

import (
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"

	"vanity-bot/models"
)

// The two invite URL shapes Discord hands out.
var invitePattern = regexp.MustCompile(`(?i)discord\.gg/[\w-]+|discordapp\.com/invite/[\w-]+`)

// Observation captures everything about one member that a reconcile pass
// needs. It is rebuilt from cached presence data every cycle and never
// persisted.
type Observation struct {
	MemberID     string
	StatusText   string
	HasInvite    bool
	CurrentRoles map[string]bool // vanity role IDs the member currently has
}

// ExtractStatus reads a member's custom-status text out of already-cached
// presence activities. No request is made: at scale a fetch per member per
// cycle would itself be a rate-limit hazard. When check_bio is off the text
// is empty; invite detection only runs when check_server_invite is on.
func ExtractStatus(activities []*discordgo.Activity, settings models.GuildSettings) (string, bool) {
	var b strings.Builder
	if settings.CheckBio {
		for _, a := range activities {
			if a == nil || a.Type != discordgo.ActivityTypeCustom {
				continue
			}
			if a.State == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(a.State)
		}
	}

	text := strings.TrimSpace(b.String())
	hasInvite := settings.CheckServerInvite && invitePattern.MatchString(text)
	return text, hasInvite
}
