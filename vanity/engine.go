package vanity

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"vanity-bot/models"
	"vanity-bot/store"
	"vanity-bot/utils"
)

const (
	batchSize  = 10
	batchDelay = 2 * time.Second
	guildDelay = 5 * time.Second
)

// PremiumChecker gates the vanity feature per guild.
type PremiumChecker interface {
	IsPremium(guildID string) bool
}

// History records applied role changes. Implementations must tolerate being
// called from the sweep hot path; errors are logged, never fatal.
type History interface {
	Record(rc models.RoleChange) error
}

// Engine drives the periodic vanity sweep: guilds → members → reconciliation.
type Engine struct {
	session  *discordgo.Session
	triggers *store.TriggerStore
	settings *store.SettingsStore
	premium  PremiumChecker
	rec      *Reconciler
	weblog   *WebhookLogger
	history  History // may be nil
}

// NewEngine wires the sweep together. The mutation and webhook limiters are
// separate instances: mutations stay under the platform's per-second ceiling,
// webhook logs are throttled far lower since logging is non-critical.
func NewEngine(session *discordgo.Session, triggers *store.TriggerStore, settings *store.SettingsStore, premium PremiumChecker, history History) *Engine {
	return &Engine{
		session:  session,
		triggers: triggers,
		settings: settings,
		premium:  premium,
		rec:      NewReconciler(NewSessionMutator(session), NewRateLimiter(45, time.Second)),
		weblog:   NewWebhookLogger(session, NewRateLimiter(5, time.Second)),
		history:  history,
	}
}

// RunSweep performs one full pass over all eligible guilds. No failure inside
// one guild or member aborts the pass; anything unexpected is caught here so
// the next scheduled tick still runs.
func (e *Engine) RunSweep(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Vanity sweep panic: %v", r)
			utils.Error("vanity", "sweep", fmt.Sprintf("panic: %v", r))
		}
	}()

	start := time.Now()
	var processed, changes int

	for _, guild := range e.snapshotGuilds() {
		if ctx.Err() != nil {
			return
		}
		if !e.premium.IsPremium(guild.ID) {
			continue
		}

		triggers, err := e.triggers.Load(guild.ID)
		if err != nil {
			log.Printf("Error loading triggers for guild %s: %v", guild.ID, err)
			continue
		}
		if len(triggers) == 0 {
			continue
		}

		n := e.sweepGuild(ctx, guild, triggers)
		processed++
		changes += n

		if err := sleepCtx(ctx, guildDelay); err != nil {
			return
		}
	}

	if changes > 0 {
		log.Printf("Vanity sweep completed: %d guilds, %d role changes in %.1fs",
			processed, changes, time.Since(start).Seconds())
	}
}

// sweepGuild reconciles every eligible member of one guild and returns the
// number of role changes applied.
func (e *Engine) sweepGuild(ctx context.Context, guild *discordgo.Guild, triggers models.TriggerMap) int {
	settings := e.settings.Get(guild.ID)

	// The gateway mutates guild state throughout the (multi-minute) pass,
	// so iterate over copies taken under the state lock.
	allMembers, roles := e.snapshotGuild(guild)

	bindings := e.resolveBindings(roles, triggers)
	if len(bindings) == 0 {
		return 0
	}

	botTop, ok := e.botTopPosition(guild.ID, roles)
	if !ok {
		log.Printf("Cannot resolve own member in guild %s, skipping", guild.ID)
		return 0
	}

	members := e.eligibleMembers(guild.ID, allMembers)
	changes := 0

	for i := 0; i < len(members); i += batchSize {
		end := i + batchSize
		if end > len(members) {
			end = len(members)
		}

		for _, member := range members[i:end] {
			if ctx.Err() != nil {
				return changes
			}

			obs := e.observe(guild.ID, member, settings, bindings)
			decision := ComputeMatches(obs.StatusText, triggers, settings, obs.HasInvite)
			res := e.rec.Reconcile(ctx, guild.ID, obs, decision, bindings, botTop)
			e.publishResult(ctx, guild, member, settings, res)
			changes += len(res.Applied)
		}

		if err := sleepCtx(ctx, batchDelay); err != nil {
			return changes
		}
	}

	if changes > 0 {
		log.Printf("Processed guild %s: %d role changes", guild.ID, changes)
	}
	return changes
}

// CheckMember runs one member's reconciliation on demand, outside the sweep.
// Used by the manual /vanity check command.
func (e *Engine) CheckMember(ctx context.Context, guildID, userID string) (Result, error) {
	guild, err := e.session.State.Guild(guildID)
	if err != nil {
		return Result{}, fmt.Errorf("guild %s not in state: %w", guildID, err)
	}

	member, err := e.session.State.Member(guildID, userID)
	if err != nil {
		return Result{}, fmt.Errorf("member %s not in state: %w", userID, err)
	}

	triggers, err := e.triggers.Load(guildID)
	if err != nil {
		return Result{}, err
	}
	if len(triggers) == 0 {
		return Result{}, nil
	}

	settings := e.settings.Get(guildID)
	_, roles := e.snapshotGuild(guild)
	bindings := e.resolveBindings(roles, triggers)
	if len(bindings) == 0 {
		return Result{}, nil
	}

	botTop, ok := e.botTopPosition(guildID, roles)
	if !ok {
		return Result{}, fmt.Errorf("cannot resolve own member in guild %s", guildID)
	}

	obs := e.observe(guildID, member, settings, bindings)
	decision := ComputeMatches(obs.StatusText, triggers, settings, obs.HasInvite)
	res := e.rec.Reconcile(ctx, guildID, obs, decision, bindings, botTop)
	e.publishResult(ctx, guild, member, settings, res)
	return res, nil
}

// snapshotGuilds copies the guild list under the state lock so the sweep can
// iterate it while the gateway keeps updating state.
func (e *Engine) snapshotGuilds() []*discordgo.Guild {
	e.session.State.RLock()
	defer e.session.State.RUnlock()
	guilds := make([]*discordgo.Guild, len(e.session.State.Guilds))
	copy(guilds, e.session.State.Guilds)
	return guilds
}

// snapshotGuild copies one guild's member and role slices under the state
// lock.
func (e *Engine) snapshotGuild(guild *discordgo.Guild) ([]*discordgo.Member, []*discordgo.Role) {
	e.session.State.RLock()
	defer e.session.State.RUnlock()
	members := make([]*discordgo.Member, len(guild.Members))
	copy(members, guild.Members)
	roles := make([]*discordgo.Role, len(guild.Roles))
	copy(roles, guild.Roles)
	return members, roles
}

// resolveBindings maps configured role IDs against the guild's live role
// list. Triggers pointing at deleted roles are silently skipped; when two
// triggers share a role the first (sorted) trigger labels removals.
func (e *Engine) resolveBindings(roles []*discordgo.Role, triggers models.TriggerMap) map[string]RoleBinding {
	roleByID := make(map[string]*discordgo.Role, len(roles))
	for _, r := range roles {
		roleByID[r.ID] = r
	}

	bindings := make(map[string]RoleBinding)
	for _, trigger := range sortedKeys(Decision(triggers)) {
		roleID := triggers[trigger]
		role, live := roleByID[roleID]
		if !live {
			continue
		}
		if _, seen := bindings[roleID]; !seen {
			bindings[roleID] = RoleBinding{Role: role, Trigger: trigger}
		}
	}
	return bindings
}

// botTopPosition returns the highest role position held by the bot itself.
func (e *Engine) botTopPosition(guildID string, roles []*discordgo.Role) (int, bool) {
	self, err := e.session.State.Member(guildID, e.session.State.User.ID)
	if err != nil {
		return 0, false
	}

	roleByID := make(map[string]*discordgo.Role, len(roles))
	for _, r := range roles {
		roleByID[r.ID] = r
	}

	top := 0
	for _, rid := range self.Roles {
		if r, ok := roleByID[rid]; ok && r.Position > top {
			top = r.Position
		}
	}
	return top, true
}

// eligibleMembers filters out bots and members with no visible presence;
// offline members have no status to match.
func (e *Engine) eligibleMembers(guildID string, all []*discordgo.Member) []*discordgo.Member {
	var members []*discordgo.Member
	for _, m := range all {
		if m.User == nil || m.User.Bot {
			continue
		}
		presence, err := e.session.State.Presence(guildID, m.User.ID)
		if err != nil || presence.Status == discordgo.StatusOffline {
			continue
		}
		members = append(members, m)
	}
	return members
}

// observe builds a member's ephemeral observation from cached presence data.
func (e *Engine) observe(guildID string, member *discordgo.Member, settings models.GuildSettings, bindings map[string]RoleBinding) Observation {
	var activities []*discordgo.Activity
	if presence, err := e.session.State.Presence(guildID, member.User.ID); err == nil {
		activities = presence.Activities
	}
	text, hasInvite := ExtractStatus(activities, settings)

	current := make(map[string]bool)
	for _, rid := range member.Roles {
		if _, managed := bindings[rid]; managed {
			current[rid] = true
		}
	}

	return Observation{
		MemberID:     member.User.ID,
		StatusText:   text,
		HasInvite:    hasInvite,
		CurrentRoles: current,
	}
}

// LogEvent forwards an administrative event (trigger added/removed) to the
// guild's log webhook, if one is configured.
func (e *Engine) LogEvent(ctx context.Context, guildID, eventType, message string, fields map[string]string) {
	settings := e.settings.Get(guildID)
	guildName := guildID
	if g, err := e.session.State.Guild(guildID); err == nil {
		guildName = g.Name
	}
	e.weblog.Send(ctx, guildID, guildName, eventType, message, settings.LogWebhook, fields)
}

// publishResult fans applied mutations out to the history database, the
// guild's role-log channel and its log webhook. All of it is best-effort.
func (e *Engine) publishResult(ctx context.Context, guild *discordgo.Guild, member *discordgo.Member, settings models.GuildSettings, res Result) {
	for _, m := range res.Applied {
		if e.history != nil {
			rc := models.RoleChange{
				GuildID:   guild.ID,
				MemberID:  member.User.ID,
				RoleID:    m.RoleID,
				RoleName:  m.RoleName,
				Action:    m.Action,
				Trigger:   m.Trigger,
				Reason:    m.Reason,
				Timestamp: time.Now().Unix(),
			}
			if err := e.history.Record(rc); err != nil {
				log.Printf("Error recording role change history: %v", err)
			}
		}

		e.logRoleChange(guild, member, settings, m)

		e.weblog.Send(ctx, guild.ID, guild.Name, "role_"+m.Action,
			fmt.Sprintf("Role %s for <@%s>", m.Action, member.User.ID),
			settings.LogWebhook,
			map[string]string{
				"Member":  fmt.Sprintf("<@%s> (%s)", member.User.ID, member.User.Username),
				"Role":    m.RoleName,
				"Trigger": m.Trigger,
				"Reason":  m.Reason,
			})
	}
}

// logRoleChange sends a role-change embed to the guild's configured log
// channel, if enabled.
func (e *Engine) logRoleChange(guild *discordgo.Guild, member *discordgo.Member, settings models.GuildSettings, m Mutation) {
	if !settings.RoleLogEnabled || settings.RoleLogChannelID == "" {
		return
	}

	color := 0x2ecc71 // green for added
	if m.Action == ActionRemoved {
		color = 0xe74c3c
	}

	embed := &discordgo.MessageEmbed{
		Title:     "Vanity Role " + pastTense(m.Action),
		Color:     color,
		Timestamp: time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Member", Value: fmt.Sprintf("<@%s> (%s)", member.User.ID, member.User.Username)},
			{Name: "Role", Value: fmt.Sprintf("<@&%s>", m.RoleID), Inline: true},
			{Name: "Action", Value: pastTense(m.Action), Inline: true},
			{Name: "Trigger", Value: "`" + m.Trigger + "`"},
			{Name: "Reason", Value: m.Reason},
		},
	}

	if _, err := e.session.ChannelMessageSendEmbed(settings.RoleLogChannelID, embed); err != nil {
		log.Printf("Error sending role log to channel %s: %v", settings.RoleLogChannelID, err)
	}
}
