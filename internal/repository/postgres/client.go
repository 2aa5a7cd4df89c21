// Package postgres holds the sqlx-backed repository implementations.
// Queries are kept to straightforward statements; workflow rules live in
// the service layer, uniqueness rules in the schema.
package postgres

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/openhoa/openhoa/internal/config"
	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/openhoa/openhoa/internal/logger"
)

// NewDB opens and pings a postgres connection pool
func NewDB(cfg *config.Configuration, log *logger.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to postgres").
			Mark(ierr.ErrDatabase)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	log.Infow("connected to postgres",
		"host", cfg.Postgres.Host,
		"database", cfg.Postgres.DBName,
	)
	return db, nil
}
