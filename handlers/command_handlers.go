package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"vanity-bot/database"
	"vanity-bot/models"
	"vanity-bot/store"
	"vanity-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// HandleVanity handles the logic for the /vanity command.
func HandleVanity(s *discordgo.Session, i *discordgo.InteractionCreate, auth *utils.Auth) {
	if i.GuildID == "" {
		respondEphemeral(s, i, "This command can only be used in a server.")
		return
	}

	sub := i.ApplicationCommandData().Options[0]

	switch sub.Name {
	case "add":
		if !requireManager(s, i, auth) {
			return
		}
		handleVanityAdd(s, i, sub.Options)
	case "remove":
		if !requireManager(s, i, auth) {
			return
		}
		handleVanityRemove(s, i, sub.Options)
	case "list":
		handleVanityList(s, i)
	case "check":
		handleVanityCheck(s, i, sub.Options)
	case "history":
		handleVanityHistory(s, i, sub.Options)
	case "config":
		if !requireManager(s, i, auth) {
			return
		}
		inner := sub.Options[0]
		switch inner.Name {
		case "get":
			handleVanityConfigGet(s, i)
		case "set":
			handleVanityConfigSet(s, i, inner.Options)
		}
	}
}

func handleVanityAdd(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	optionMap := mapOptions(opts)
	role := optionMap["role"].RoleValue(s, i.GuildID)
	trigger := optionMap["trigger"].StringValue()

	limit := deps.Premium.RoleLimit(i.GuildID)
	if limit == 0 {
		respondEphemeral(s, i, "🚫 Vanity roles require a premium subscription. Use `/premium status` to check this server's tier.")
		return
	}

	count, err := deps.Triggers.Count(i.GuildID)
	if err != nil {
		log.Printf("Error counting triggers for guild %s: %v", i.GuildID, err)
		respondEphemeral(s, i, "Error: could not load the trigger configuration.")
		return
	}
	if limit > 0 && count >= limit {
		respondEphemeral(s, i, fmt.Sprintf("🚫 This server's tier allows at most %d vanity trigger(s). Remove one first with `/vanity remove`.", limit))
		return
	}

	if err := deps.Triggers.Add(i.GuildID, trigger, role.ID); err != nil {
		if errors.Is(err, store.ErrEmptyTrigger) {
			respondEphemeral(s, i, "Error: the trigger text cannot be empty.")
			return
		}
		log.Printf("Error adding trigger for guild %s: %v", i.GuildID, err)
		respondEphemeral(s, i, "Error: could not save the trigger.")
		return
	}

	respondEphemeral(s, i, fmt.Sprintf("✅ Members with `%s` in their status will now receive <@&%s>.", trigger, role.ID))

	go deps.Engine.LogEvent(context.Background(), i.GuildID, "trigger_added",
		fmt.Sprintf("Trigger `%s` linked to %s", trigger, role.Name),
		map[string]string{"Trigger": trigger, "Role": role.Name, "By": i.Member.User.Username})
}

func handleVanityRemove(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	trigger := mapOptions(opts)["trigger"].StringValue()

	removed, err := deps.Triggers.Remove(i.GuildID, trigger)
	if err != nil {
		log.Printf("Error removing trigger for guild %s: %v", i.GuildID, err)
		respondEphemeral(s, i, "Error: could not update the trigger configuration.")
		return
	}
	if !removed {
		respondEphemeral(s, i, fmt.Sprintf("No trigger named `%s` is configured.", trigger))
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("✅ Trigger `%s` removed. Roles granted for it will be taken back on the next sweep.", trigger))

	go deps.Engine.LogEvent(context.Background(), i.GuildID, "trigger_removed",
		fmt.Sprintf("Trigger `%s` removed", trigger),
		map[string]string{"Trigger": trigger, "By": i.Member.User.Username})
}

func handleVanityList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	triggers, err := deps.Triggers.Load(i.GuildID)
	if err != nil {
		log.Printf("Error loading triggers for guild %s: %v", i.GuildID, err)
		respondEphemeral(s, i, "Error: could not load the trigger configuration.")
		return
	}
	if len(triggers) == 0 {
		respondEphemeral(s, i, "No vanity triggers are configured. Add one with `/vanity add`.")
		return
	}

	keys := make([]string, 0, len(triggers))
	for k := range triggers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, trigger := range keys {
		fmt.Fprintf(&sb, "`%s` → <@&%s>\n", trigger, triggers[trigger])
	}

	limit := deps.Premium.RoleLimit(i.GuildID)
	limitText := "unlimited"
	if limit >= 0 {
		limitText = fmt.Sprintf("%d", limit)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Vanity Triggers",
		Description: sb.String(),
		Color:       0x9b59b6,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d of %s trigger slots used", len(triggers), limitText),
		},
	}
	respondEmbed(s, i, embed)
}

func handleVanityCheck(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	target := i.Member.User
	if opt, ok := mapOptions(opts)["member"]; ok {
		target = opt.UserValue(s)
	}

	// The check hits the rate limiter and may sleep, so defer the response.
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		log.Printf("Error deferring vanity check response: %v", err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		res, err := deps.Engine.CheckMember(ctx, i.GuildID, target.ID)
		if err != nil {
			s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
				Content: fmt.Sprintf("Error: %v", err),
			})
			return
		}

		content := fmt.Sprintf("Checked <@%s>: no role changes needed.", target.ID)
		if res.Changed() {
			var parts []string
			for _, m := range res.Applied {
				parts = append(parts, fmt.Sprintf("%s <@&%s>", strings.ToLower(pastVerb(m.Action)), m.RoleID))
			}
			for _, m := range res.Skipped {
				parts = append(parts, fmt.Sprintf("skipped <@&%s> (hierarchy)", m.RoleID))
			}
			for _, m := range res.Failed {
				parts = append(parts, fmt.Sprintf("failed <@&%s>", m.RoleID))
			}
			content = fmt.Sprintf("Checked <@%s>: %s.", target.ID, strings.Join(parts, ", "))
		}

		s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content: content,
		})
	}()
}

func handleVanityHistory(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	optionMap := mapOptions(opts)

	limit := 10
	if opt, ok := optionMap["limit"]; ok {
		limit = int(opt.IntValue())
		if limit < 1 {
			limit = 1
		}
		if limit > 25 {
			limit = 25
		}
	}

	var (
		changes []models.RoleChange
		err     error
	)
	if opt, ok := optionMap["member"]; ok {
		changes, err = database.GetMemberChanges(deps.DB, i.GuildID, opt.UserValue(s).ID, limit)
	} else {
		changes, err = database.GetRecentChanges(deps.DB, i.GuildID, limit)
	}
	if err != nil {
		log.Printf("Error loading role change history for guild %s: %v", i.GuildID, err)
		respondEphemeral(s, i, "Error: could not load the role change history.")
		return
	}
	if len(changes) == 0 {
		respondEphemeral(s, i, "No vanity role changes recorded yet.")
		return
	}

	var sb strings.Builder
	for _, rc := range changes {
		fmt.Fprintf(&sb, "<t:%d:R> %s <@&%s> %s <@%s> (trigger: `%s`)\n",
			rc.Timestamp, pastVerb(rc.Action), rc.RoleID, directionWord(rc.Action), rc.MemberID, rc.Trigger)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Vanity Role History",
		Description: sb.String(),
		Color:       0x9b59b6,
	}
	respondEmbed(s, i, embed)
}

func handleVanityConfigGet(s *discordgo.Session, i *discordgo.InteractionCreate) {
	st := deps.Settings.Get(i.GuildID)

	logChannel := "not set"
	if st.RoleLogChannelID != "" {
		logChannel = fmt.Sprintf("<#%s>", st.RoleLogChannelID)
	}
	webhook := "not set"
	if st.LogWebhook != "" {
		webhook = "configured"
	}

	embed := &discordgo.MessageEmbed{
		Title: "Vanity Settings",
		Color: 0x9b59b6,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Match Mode", Value: st.MatchMode, Inline: true},
			{Name: "Priority Mode", Value: st.PriorityMode, Inline: true},
			{Name: "Case Sensitive", Value: fmt.Sprintf("%v", st.CaseSensitive), Inline: true},
			{Name: "Check Status Text", Value: fmt.Sprintf("%v", st.CheckBio), Inline: true},
			{Name: "Detect Invites", Value: fmt.Sprintf("%v", st.CheckServerInvite), Inline: true},
			{Name: "Require Invite", Value: fmt.Sprintf("%v", st.RequireServerInviteMatch), Inline: true},
			{Name: "Role Log Enabled", Value: fmt.Sprintf("%v", st.RoleLogEnabled), Inline: true},
			{Name: "Role Log Channel", Value: logChannel, Inline: true},
			{Name: "Log Webhook", Value: webhook, Inline: true},
		},
	}
	respondEmbed(s, i, embed)
}

func handleVanityConfigSet(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	if len(opts) == 0 {
		respondEphemeral(s, i, "Nothing to change: pass at least one setting.")
		return
	}

	st := deps.Settings.Get(i.GuildID)
	var updated []string
	for _, opt := range opts {
		switch opt.Name {
		case "match_mode":
			st.MatchMode = opt.StringValue()
		case "priority_mode":
			st.PriorityMode = opt.StringValue()
		case "case_sensitive":
			st.CaseSensitive = opt.BoolValue()
		case "check_bio":
			st.CheckBio = opt.BoolValue()
		case "check_server_invite":
			st.CheckServerInvite = opt.BoolValue()
		case "require_server_invite_match":
			st.RequireServerInviteMatch = opt.BoolValue()
		case "role_log_enabled":
			st.RoleLogEnabled = opt.BoolValue()
		case "role_log_channel":
			st.RoleLogChannelID = opt.ChannelValue(nil).ID
		case "log_webhook":
			st.LogWebhook = opt.StringValue()
		}
		updated = append(updated, opt.Name)
	}

	if err := deps.Settings.Put(i.GuildID, st); err != nil {
		log.Printf("Error saving settings for guild %s: %v", i.GuildID, err)
		respondEphemeral(s, i, "Error: could not save the settings.")
		return
	}

	respondEphemeral(s, i, fmt.Sprintf("✅ Updated: %s", strings.Join(updated, ", ")))
}

// HandlePremium handles the logic for the /premium command.
func HandlePremium(s *discordgo.Session, i *discordgo.InteractionCreate, auth *utils.Auth) {
	sub := i.ApplicationCommandData().Options[0]

	switch sub.Name {
	case "status":
		if i.GuildID == "" {
			respondEphemeral(s, i, "This command can only be used in a server.")
			return
		}
		handlePremiumStatus(s, i)
	case "set":
		if !auth.CheckPermission(s, i, "developer") {
			respondEphemeral(s, i, "🚫 只有开发者可以管理订阅")
			return
		}
		handlePremiumSet(s, i, sub.Options)
	}
}

func handlePremiumStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	tier := deps.Premium.Tier(i.GuildID)
	limit := deps.Premium.RoleLimit(i.GuildID)

	limitText := "unlimited"
	if limit >= 0 {
		limitText = fmt.Sprintf("%d", limit)
	}

	expiry := "—"
	if sub, ok := deps.Premium.Subscription(i.GuildID); ok {
		if sub.ExpiresAt == "" || sub.ExpiresAt == "null" {
			expiry = "never"
		} else if t, err := time.Parse(time.RFC3339, sub.ExpiresAt); err == nil {
			expiry = fmt.Sprintf("<t:%d:R>", t.Unix())
		}
	}

	embed := &discordgo.MessageEmbed{
		Title: "Premium Status",
		Color: 0xf1c40f,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Tier", Value: tier, Inline: true},
			{Name: "Vanity Trigger Slots", Value: limitText, Inline: true},
			{Name: "Expires", Value: expiry, Inline: true},
		},
	}
	respondEmbed(s, i, embed)
}

func handlePremiumSet(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	optionMap := mapOptions(opts)
	guildID := optionMap["guild_id"].StringValue()
	tier := optionMap["tier"].StringValue()
	days := int(optionMap["days"].IntValue())

	if err := deps.Premium.SetPremium(guildID, tier, days, i.Member.User.ID); err != nil {
		log.Printf("Error setting premium for guild %s: %v", guildID, err)
		respondEphemeral(s, i, "Error: could not update the subscription.")
		return
	}

	duration := fmt.Sprintf("for %d days", days)
	if days < 0 {
		duration = "permanently"
	}
	respondEphemeral(s, i, fmt.Sprintf("✅ Guild %s set to tier **%s** %s.", guildID, tier, duration))
	utils.GuildInfo("HandlePremiumSet", guildID, "Premium", fmt.Sprintf("Set to %s (%d days) by %s", tier, days, i.Member.User.ID))
}

// HandlePing handles the logic for the /ping command.
func HandlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Pong!",
		},
	})
}

func requireManager(s *discordgo.Session, i *discordgo.InteractionCreate, auth *utils.Auth) bool {
	if auth.CheckPermission(s, i, "manager") {
		return true
	}
	respondEphemeral(s, i, "🚫 你没有权限执行此命令")
	return false
}

func mapOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error responding to interaction: %v", err)
	}
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error responding to interaction: %v", err)
	}
}

func pastVerb(action string) string {
	if action == "removed" || action == "remove" {
		return "Removed"
	}
	return "Added"
}

func directionWord(action string) string {
	if action == "removed" || action == "remove" {
		return "from"
	}
	return "to"
}
