package handlers

import (
	"log"

	"vanity-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// CommandDispatcher is the central handler for all application command interactions.
// It performs permission checks and then dispatches the interaction to the appropriate handler.
func CommandDispatcher(s *discordgo.Session, i *discordgo.InteractionCreate) {
	auth, err := utils.NewAuth()
	if err != nil {
		log.Printf("Failed to create auth instance: %v", err)
		return
	}

	// Top-level gate only. Mutating /vanity subcommands and /premium set do
	// stricter checks in their handlers.
	commandPermissions := map[string]string{
		"vanity":  "guest",
		"premium": "guest",
		"ping":    "guest",
	}

	commandName := i.ApplicationCommandData().Name
	requiredLevel, ok := commandPermissions[commandName]

	if ok {
		if !auth.CheckPermission(s, i, requiredLevel) {
			s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: "🚫 你没有权限执行此命令",
					Flags:   discordgo.MessageFlagsEphemeral,
				},
			})
			return
		}
	}

	switch commandName {
	case "vanity":
		HandleVanity(s, i, auth)
	case "premium":
		HandlePremium(s, i, auth)
	case "ping":
		HandlePing(s, i)
	default:
		// Optionally, send an error message for unknown commands.
		s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "🚫内部错误：Unknown command.",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
	}
}
