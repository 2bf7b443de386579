package handlers

import (
	"log"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// HandleAutocomplete handles all autocomplete interactions.
func HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	switch data.Name {
	case "vanity":
		sub := data.Options[0]
		if sub.Name != "remove" {
			return
		}
		for _, opt := range sub.Options {
			if opt.Name == "trigger" && opt.Focused {
				handleTriggerAutocomplete(s, i, opt.StringValue())
			}
		}
	}
}

func handleTriggerAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, typed string) {
	triggers, err := deps.Triggers.Load(i.GuildID)
	if err != nil {
		log.Printf("Error loading triggers for autocomplete: %v", err)
		return
	}

	keys := make([]string, 0, len(triggers))
	for k := range triggers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	typed = strings.ToLower(typed)
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, 25)
	for _, trigger := range keys {
		if typed != "" && !strings.Contains(strings.ToLower(trigger), typed) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  trigger,
			Value: trigger,
		})
		if len(choices) == 25 { // Discord caps autocomplete at 25 choices
			break
		}
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		log.Printf("Error responding to autocomplete interaction: %v", err)
	}
}
