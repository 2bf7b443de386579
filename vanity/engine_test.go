package vanity

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"vanity-bot/models"
)

// testSession builds a session whose state holds one guild with two roles,
// the bot itself and one online human member.
func testSession(t *testing.T) *discordgo.Session {
	t.Helper()

	s := &discordgo.Session{State: discordgo.NewState()}
	s.State.User = &discordgo.User{ID: "bot"}

	if err := s.State.GuildAdd(&discordgo.Guild{
		ID: "g1",
		Roles: []*discordgo.Role{
			{ID: "900", Name: "Gamer", Position: 1},
			{ID: "901", Name: "Bot Role", Position: 5},
		},
	}); err != nil {
		t.Fatalf("GuildAdd: %v", err)
	}

	if err := s.State.MemberAdd(&discordgo.Member{
		GuildID: "g1",
		User:    &discordgo.User{ID: "bot", Bot: true},
		Roles:   []string{"901"},
	}); err != nil {
		t.Fatalf("MemberAdd: %v", err)
	}
	if err := s.State.MemberAdd(&discordgo.Member{
		GuildID: "g1",
		User:    &discordgo.User{ID: "u1"},
	}); err != nil {
		t.Fatalf("MemberAdd: %v", err)
	}
	if err := s.State.PresenceAdd("g1", &discordgo.Presence{
		User:   &discordgo.User{ID: "u1"},
		Status: discordgo.StatusOnline,
	}); err != nil {
		t.Fatalf("PresenceAdd: %v", err)
	}

	return s
}

func TestSnapshotGuildsIsACopy(t *testing.T) {
	s := testSession(t)
	e := &Engine{session: s}

	guilds := e.snapshotGuilds()
	if len(guilds) != 1 || guilds[0].ID != "g1" {
		t.Fatalf("snapshot = %v", guilds)
	}

	// Later state changes must not show up in an already-taken snapshot.
	if err := s.State.GuildAdd(&discordgo.Guild{ID: "g2"}); err != nil {
		t.Fatalf("GuildAdd: %v", err)
	}
	if len(guilds) != 1 {
		t.Errorf("snapshot grew with state, len = %d", len(guilds))
	}
}

func TestResolveBindingsSkipsStaleRoles(t *testing.T) {
	s := testSession(t)
	e := &Engine{session: s}

	guild, err := s.State.Guild("g1")
	if err != nil {
		t.Fatalf("Guild: %v", err)
	}
	_, roles := e.snapshotGuild(guild)

	triggers := models.TriggerMap{
		"gamer": "900",
		"stale": "999", // role deleted from the guild
	}
	bindings := e.resolveBindings(roles, triggers)
	if len(bindings) != 1 {
		t.Fatalf("bindings = %v, want only the live role", bindings)
	}
	b, ok := bindings["900"]
	if !ok || b.Trigger != "gamer" || b.Role.Name != "Gamer" {
		t.Errorf("binding = %+v", b)
	}
}

func TestBotTopPosition(t *testing.T) {
	s := testSession(t)
	e := &Engine{session: s}

	guild, err := s.State.Guild("g1")
	if err != nil {
		t.Fatalf("Guild: %v", err)
	}
	_, roles := e.snapshotGuild(guild)

	top, ok := e.botTopPosition("g1", roles)
	if !ok || top != 5 {
		t.Errorf("botTopPosition = %d, %v; want 5, true", top, ok)
	}
}

func TestEligibleMembersFiltersBotsAndOffline(t *testing.T) {
	s := testSession(t)
	e := &Engine{session: s}

	// u2 has no presence at all and must be filtered like an offline member.
	if err := s.State.MemberAdd(&discordgo.Member{
		GuildID: "g1",
		User:    &discordgo.User{ID: "u2"},
	}); err != nil {
		t.Fatalf("MemberAdd: %v", err)
	}

	guild, err := s.State.Guild("g1")
	if err != nil {
		t.Fatalf("Guild: %v", err)
	}
	allMembers, _ := e.snapshotGuild(guild)

	members := e.eligibleMembers("g1", allMembers)
	if len(members) != 1 || members[0].User.ID != "u1" {
		t.Errorf("eligible members = %v, want only u1", members)
	}
}
