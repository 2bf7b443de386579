package bot

import (
	"context"
	"database/sql"
	"log"
	"time"

	"vanity-bot/database"
	"vanity-bot/vanity"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

var (
	c           *cron.Cron
	cancelSweep context.CancelFunc
)

// StartScheduler starts the cron jobs: the periodic vanity sweep and the
// daily history prune. The schedule comes from vanity.schedule.
func (b *Bot) StartScheduler(engine *vanity.Engine, db *sql.DB) {
	log.Println("Initializing scheduler...")

	ctx, cancel := context.WithCancel(context.Background())
	cancelSweep = cancel

	c = cron.New()
	schedule := viper.GetString("vanity.schedule")
	_, err := c.AddFunc(schedule, func() {
		engine.RunSweep(ctx)
	})
	if err != nil {
		log.Fatalf("Could not set up sweep cron job (%q): %v", schedule, err)
	}

	if db != nil {
		_, err = c.AddFunc("@daily", func() {
			database.PruneOldChanges(db)
		})
		if err != nil {
			log.Fatalf("Could not set up history prune cron job: %v", err)
		}
	}

	// The sweep walks session state, so hold the jobs until the gateway has
	// populated it.
	go func() {
		if !b.WaitReady(2 * time.Minute) {
			log.Println("Gateway not ready after 2 minutes, starting scheduler anyway.")
		}
		c.Start()
		log.Printf("Sweep scheduled (%s).", schedule)

		// Perform an initial sweep on startup based on config.
		if viper.GetBool("vanity.sweep_at_startup") {
			log.Println("Performing initial sweep on startup...")
			engine.RunSweep(ctx)
		}
	}()
}

// stopScheduler stops the cron jobs.
func stopScheduler() {
	if cancelSweep != nil {
		cancelSweep()
	}
	if c != nil {
		c.Stop()
		log.Println("Scheduler stopped.")
	}
}
