package handlers

import (
	"log"

	"vanity-bot/database"
	"vanity-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// GuildDeleteHandler garbage-collects a guild's vanity data when the bot is
// removed from it. Unavailable guilds are outages, not removals, and are left
// alone.
func GuildDeleteHandler(s *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Unavailable {
		return
	}

	log.Printf("Removed from guild %s, deleting its vanity data", g.ID)

	if err := deps.Triggers.Delete(g.ID); err != nil {
		log.Printf("Error deleting triggers for guild %s: %v", g.ID, err)
	}
	if err := deps.Settings.Delete(g.ID); err != nil {
		log.Printf("Error deleting settings for guild %s: %v", g.ID, err)
	}
	if deps.DB != nil {
		if err := database.DeleteGuildChanges(deps.DB, g.ID); err != nil {
			log.Printf("Error deleting history for guild %s: %v", g.ID, err)
		}
	}

	utils.GuildInfo("GuildDelete", g.ID, "Cleanup", "Removed triggers, settings and role history")
}
