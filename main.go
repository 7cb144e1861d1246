package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arthneeti/game-engine/arthneeti"
	"github.com/arthneeti/game-engine/arthneeti/database/seed"
	"github.com/arthneeti/game-engine/arthneeti/logger"
	"github.com/arthneeti/game-engine/arthneeti/migration"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting Arth-Neeti engine",
		slog.String("version", version),
		slog.String("commit", commit))

	path := flag.String("config", "config.toml", "path to config")
	seedDeck := flag.Bool("seed-deck", false, "install the starter scenario deck")
	resetDB := flag.Bool("reset-db", false, "truncate all game tables before starting")
	importMongo := flag.String("import-mongo", "", "Mongo URI of a legacy deck to import")
	mongoDB := flag.String("mongo-db", "arthneeti", "database name for -import-mongo")
	importJSON := flag.String("import-json", "", "path to a legacy deck JSON export to import")
	flag.Parse()

	cfg, err := arthneeti.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	dbStart := time.Now()
	app := arthneeti.New(*cfg, version, commit)
	if err := app.Setup(ctx); err != nil {
		slog.Error("Startup failed",
			slog.Any("error", err),
			slog.Duration("attempted_for", time.Since(dbStart)))
		os.Exit(1)
	}
	defer app.Close()
	slog.Info("Database ready",
		slog.String("type", "db"),
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStart)))

	if *resetDB {
		if err := app.DB.ResetAppTables(ctx); err != nil {
			slog.Error("Failed to reset tables", slog.Any("error", err))
			os.Exit(1)
		}
	}

	if *seedDeck {
		if err := seed.Deck(ctx, app.Cards, slog.Default()); err != nil {
			slog.Error("Deck seeding failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	if *importMongo != "" {
		m := migration.NewDeckMigrator(app.DB.BunDB(), *importMongo, *mongoDB, slog.Default())
		if _, err := m.MigrateFromMongo(ctx); err != nil {
			slog.Error("Mongo deck import failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	if *importJSON != "" {
		m := migration.NewDeckMigrator(app.DB.BunDB(), "", "", slog.Default())
		if _, err := m.MigrateFromJSON(ctx, *importJSON); err != nil {
			slog.Error("JSON deck import failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	deckSize, err := app.Cards.Count(ctx)
	if err != nil {
		slog.Error("Deck check failed", slog.Any("error", err))
		os.Exit(1)
	}
	if deckSize == 0 {
		slog.Warn("Scenario deck is empty, run with -seed-deck to install the starter deck")
	}

	slog.Info("Engine is running. Press CTRL-C to exit.",
		slog.Int64("deck_size", deckSize))
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down...")
}
