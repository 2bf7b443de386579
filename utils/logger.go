package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

const (
	ColorInfo  = 0x00ff00 // Green
	ColorWarn  = 0xffff00 // Yellow
	ColorError = 0xff0000 // Red
)

var (
	session   *discordgo.Session
	channelID string
)

// InitLogger initializes the logger with a Discord session.
func InitLogger(s *discordgo.Session) {
	session = s
	channelID = viper.GetString("bot.adminChannelId")
	if channelID == "" {
		log.Println("Warning: bot.adminChannelId is not set in config.yaml. Logging to channel will be disabled.")
	}
}

// Log sends a log message with no guild context to the admin channel.
func Log(level, module, operation, details string) {
	send(level, module, "", operation, details)
}

// GuildLog is Log with the originating guild attached to the embed, so admin
// channel entries can be traced back to the guild they concern.
func GuildLog(level, module, guildID, operation, details string) {
	send(level, module, guildID, operation, details)
}

func send(level, module, guildID, operation, details string) {
	if session == nil || channelID == "" {
		if guildID != "" {
			log.Printf("[%s] Module: %s, Guild: %s, Operation: %s, Details: %s", level, module, guildID, operation, details)
			return
		}
		log.Printf("[%s] Module: %s, Operation: %s, Details: %s", level, module, operation, details)
		return
	}

	var color int
	switch level {
	case "INFO":
		color = ColorInfo
	case "WARN":
		color = ColorWarn
	case "ERROR":
		color = ColorError
	default:
		color = ColorInfo
	}

	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "模块",
			Value:  module,
			Inline: true,
		},
		{
			Name:   "操作",
			Value:  operation,
			Inline: true,
		},
	}
	if guildID != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "服务器",
			Value:  guildLabel(guildID),
			Inline: true,
		})
	}
	fields = append(fields, &discordgo.MessageEmbedField{
		Name:  "附加信息",
		Value: details,
	})

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("Vanity Bot Log: %s", level),
		Color:     color,
		Timestamp: time.Now().Format(time.RFC3339),
		Fields:    fields,
	}
	if guildID != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Guild ID: " + guildID}
	}

	_, err := session.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		log.Printf("Error sending log message to Discord: %v", err)
	}
}

// guildLabel resolves the guild's display name from state, falling back to
// the bare ID when the guild is not cached.
func guildLabel(guildID string) string {
	if guild, err := session.State.Guild(guildID); err == nil && guild.Name != "" {
		return fmt.Sprintf("%s (%s)", guild.Name, guildID)
	}
	return guildID
}

// Info logs an informational message.
func Info(module, operation, details string) {
	Log("INFO", module, operation, details)
}

// Warn logs a warning message.
func Warn(module, operation, details string) {
	Log("WARN", module, operation, details)
}

// Error logs an error message.
func Error(module, operation, details string) {
	Log("ERROR", module, operation, details)
}

// GuildInfo logs an informational message tagged with a guild.
func GuildInfo(module, guildID, operation, details string) {
	GuildLog("INFO", module, guildID, operation, details)
}

// GuildError logs an error message tagged with a guild.
func GuildError(module, guildID, operation, details string) {
	GuildLog("ERROR", module, guildID, operation, details)
}
