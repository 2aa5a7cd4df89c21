package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/openhoa/openhoa/internal/config"
	"github.com/openhoa/openhoa/internal/logger"
	"github.com/openhoa/openhoa/internal/repository/postgres"
)

func main() {
	schemaPath := flag.String("schema", "migrations/schema.sql", "Path to the schema file")
	dryRun := flag.Bool("dry-run", false, "Print the schema SQL without executing it")
	backfillLinks := flag.Bool("backfill-links", false, "Link owners to user accounts by matching email after applying the schema")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	schema, err := os.ReadFile(*schemaPath)
	if err != nil {
		logger.Fatalw("Failed to read schema file", "path", *schemaPath, "error", err)
	}

	if *dryRun {
		fmt.Print(string(schema))
		return
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)
	db, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	logger.Info("Applying schema...")
	if _, err := db.Exec(string(schema)); err != nil {
		logger.Fatalw("Failed to apply schema", "error", err)
	}

	logger.Info("Schema applied successfully")

	if *backfillLinks {
		linked, err := postgres.BackfillOwnerUserLinks(context.Background(), db)
		if err != nil {
			logger.Fatalw("Failed to backfill owner-user links", "error", err)
		}
		logger.Infow("Owner-user links backfilled", "created", linked)
	}
}
