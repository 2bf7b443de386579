package command

import "github.com/bwmarrin/discordgo"

// VanityCommand defines the structure for the /vanity command.
type VanityCommand struct{}

// Definition returns the application command definition.
func (c *VanityCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "vanity",
		Description: "Manage vanity status roles",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "add",
				Description: "Link a trigger text to a role",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "role",
						Description: "The role to grant when the trigger matches",
						Type:        discordgo.ApplicationCommandOptionRole,
						Required:    true,
					},
					{
						Name:        "trigger",
						Description: "The text to look for in member statuses",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    true,
					},
				},
			},
			{
				Name:        "remove",
				Description: "Remove a trigger",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:         "trigger",
						Description:  "The trigger text to remove",
						Type:         discordgo.ApplicationCommandOptionString,
						Required:     true,
						Autocomplete: true,
					},
				},
			},
			{
				Name:        "list",
				Description: "List the configured triggers and their roles",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "check",
				Description: "Run a vanity check on a single member now",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "member",
						Description: "The member to check (defaults to you)",
						Type:        discordgo.ApplicationCommandOptionUser,
						Required:    false,
					},
				},
			},
			{
				Name:        "history",
				Description: "Show recent vanity role changes",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "member",
						Description: "Only show changes for this member",
						Type:        discordgo.ApplicationCommandOptionUser,
						Required:    false,
					},
					{
						Name:        "limit",
						Description: "Number of entries to show (default 10)",
						Type:        discordgo.ApplicationCommandOptionInteger,
						Required:    false,
					},
				},
			},
			{
				Name:        "config",
				Description: "View or change the matching settings",
				Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "get",
						Description: "Show the current settings",
						Type:        discordgo.ApplicationCommandOptionSubCommand,
					},
					{
						Name:        "set",
						Description: "Change one or more settings",
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Options: []*discordgo.ApplicationCommandOption{
							{
								Name:        "match_mode",
								Description: "How trigger text is matched against statuses",
								Type:        discordgo.ApplicationCommandOptionString,
								Required:    false,
								Choices: []*discordgo.ApplicationCommandOptionChoice{
									{Name: "Substring", Value: "substring"},
									{Name: "Exact", Value: "exact"},
									{Name: "Word Boundary", Value: "word_boundary"},
								},
							},
							{
								Name:        "priority_mode",
								Description: "Which role wins when several triggers match",
								Type:        discordgo.ApplicationCommandOptionString,
								Required:    false,
								Choices: []*discordgo.ApplicationCommandOptionChoice{
									{Name: "Longest First", Value: "longest_first"},
									{Name: "Shortest First", Value: "shortest_first"},
									{Name: "All Matches", Value: "all"},
								},
							},
							{
								Name:        "case_sensitive",
								Description: "Match trigger text case-sensitively",
								Type:        discordgo.ApplicationCommandOptionBoolean,
								Required:    false,
							},
							{
								Name:        "check_bio",
								Description: "Scan custom status text",
								Type:        discordgo.ApplicationCommandOptionBoolean,
								Required:    false,
							},
							{
								Name:        "check_server_invite",
								Description: "Detect server invite links in statuses",
								Type:        discordgo.ApplicationCommandOptionBoolean,
								Required:    false,
							},
							{
								Name:        "require_server_invite_match",
								Description: "Only match members whose status carries an invite link",
								Type:        discordgo.ApplicationCommandOptionBoolean,
								Required:    false,
							},
							{
								Name:        "role_log_enabled",
								Description: "Post role changes to the log channel",
								Type:        discordgo.ApplicationCommandOptionBoolean,
								Required:    false,
							},
							{
								Name:        "role_log_channel",
								Description: "Channel to post role change logs to",
								Type:        discordgo.ApplicationCommandOptionChannel,
								Required:    false,
								ChannelTypes: []discordgo.ChannelType{
									discordgo.ChannelTypeGuildText,
								},
							},
							{
								Name:        "log_webhook",
								Description: "Webhook URL for external event logging",
								Type:        discordgo.ApplicationCommandOptionString,
								Required:    false,
							},
						},
					},
				},
			},
		},
	}
}

// PremiumCommand defines the structure for the /premium command.
type PremiumCommand struct{}

// Definition returns the application command definition.
func (c *PremiumCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "premium",
		Description: "Premium subscription status and management",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "status",
				Description: "Show this server's premium tier",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "set",
				Description: "Grant a premium tier to a guild (developer only)",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "guild_id",
						Description: "The guild to grant premium to",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    true,
					},
					{
						Name:        "tier",
						Description: "The tier to grant",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Basic", Value: "BASIC"},
							{Name: "Pro", Value: "PRO"},
							{Name: "Ultra", Value: "ULTRA"},
						},
					},
					{
						Name:        "days",
						Description: "Duration in days (-1 for permanent)",
						Type:        discordgo.ApplicationCommandOptionInteger,
						Required:    true,
					},
				},
			},
		},
	}
}

// PingCommand defines the structure for the /ping command.
type PingCommand struct{}

// Definition returns the application command definition.
func (c *PingCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Responds with Pong!",
	}
}
