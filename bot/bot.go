package bot

import (
	"fmt"
	"log"
	"time"

	"vanity-bot/command"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// Bot encapsulates the bot's state.
type Bot struct {
	Session *discordgo.Session
	readyCh chan struct{}
}

// New creates and initializes a new Bot instance. Config must already be
// loaded so BOT_TOKEN is visible through viper.
func New() (*Bot, error) {
	token := viper.GetString("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("no bot token provided")
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	// Presence intent is required to see member statuses, members intent to
	// enumerate them.
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers | discordgo.IntentsGuildPresences

	// The reconciler does its own throttle backoff, so discordgo must not
	// sleep-and-retry underneath it.
	dg.ShouldRetryOnRateLimit = false

	b := &Bot{
		Session: dg,
		readyCh: make(chan struct{}),
	}

	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		select {
		case <-b.readyCh:
		default:
			close(b.readyCh)
		}
	})

	return b, nil
}

// Start opens the bot's session and registers handlers and slash commands.
func (b *Bot) Start(registerHandlers func(*Bot)) error {
	registerHandlers(b)

	err := b.Session.Open()
	if err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands
	for _, def := range command.GetCommandDefinitions() {
		_, err := b.Session.ApplicationCommandCreate(b.Session.State.User.ID, "", def)
		if err != nil {
			log.Printf("Cannot create '%v' command: %v", def.Name, err)
		}
	}

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// WaitReady blocks until the gateway reports ready or the timeout elapses.
func (b *Bot) WaitReady(timeout time.Duration) bool {
	select {
	case <-b.readyCh:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Stop gracefully closes the bot's session.
func (b *Bot) Stop() {
	stopScheduler()
	if b.Session != nil {
		b.Session.Close()
	}
	fmt.Println("Bot stopped gracefully.")
}
