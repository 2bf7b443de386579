package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"vanity-bot/bot"
	"vanity-bot/config"
	"vanity-bot/database"
	"vanity-bot/handlers"
	"vanity-bot/premium"
	"vanity-bot/store"
	"vanity-bot/utils"
	"vanity-bot/vanity"

	"github.com/spf13/viper"
)

func main() {
	config.LoadConfig()

	// Role change history.
	db, err := database.InitDB(viper.GetString("vanity.db_path"))
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer db.Close()

	// Per-guild trigger files and the shared settings file.
	triggers := store.NewTriggerStore(viper.GetString("vanity.data_dir"))
	settings := store.NewSettingsStore(viper.GetString("vanity.data_dir") + "/vanity_settings.json")
	if err := settings.Load(); err != nil {
		log.Fatalf("Error loading guild settings: %v", err)
	}

	// Premium entitlements: local file, optionally backed by the billing
	// service over gRPC.
	registry := premium.NewRegistry(viper.GetString("premium.file"), viper.GetBool("premium.fail_open"))
	if addr := viper.GetString("premium.grpc_addr"); addr != "" {
		client, err := premium.NewClient(addr)
		if err != nil {
			log.Printf("Error creating entitlement client, using local data only: %v", err)
		} else {
			defer client.Close()
			registry.UseRemote(client)
		}
	}

	b, err := bot.New()
	if err != nil {
		log.Fatalf("Error initializing bot: %v", err)
	}

	engine := vanity.NewEngine(b.Session, triggers, settings, registry, database.NewRecorder(db))

	handlers.Configure(handlers.Deps{
		Triggers: triggers,
		Settings: settings,
		Premium:  registry,
		Engine:   engine,
		DB:       db,
	})

	if err := b.Start(handlers.Register); err != nil {
		log.Fatalf("Error starting bot: %v", err)
	}

	utils.InitLogger(b.Session)
	b.StartScheduler(engine, db)

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	b.Stop()
}
