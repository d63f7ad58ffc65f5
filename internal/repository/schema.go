package repository

import (
	"context"
	"fmt"
)

// Owner and booking references are checked by the services, not by foreign keys.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS places (
		id          TEXT PRIMARY KEY,
		owner_id    TEXT NOT NULL,
		title       TEXT NOT NULL DEFAULT '',
		address     TEXT NOT NULL DEFAULT '',
		photos      TEXT[] NOT NULL DEFAULT '{}',
		description TEXT NOT NULL DEFAULT '',
		perks       TEXT[] NOT NULL DEFAULT '{}',
		extra_info  TEXT NOT NULL DEFAULT '',
		check_in    INTEGER NOT NULL DEFAULT 0,
		check_out   INTEGER NOT NULL DEFAULT 0,
		max_guests  INTEGER NOT NULL DEFAULT 0,
		price       DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS places_owner_id_idx ON places (owner_id)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id               TEXT PRIMARY KEY,
		place_id         TEXT NOT NULL,
		user_id          TEXT NOT NULL,
		check_in         TIMESTAMPTZ NOT NULL,
		check_out        TIMESTAMPTZ NOT NULL,
		number_of_guests INTEGER NOT NULL DEFAULT 0,
		name             TEXT NOT NULL DEFAULT '',
		phone            TEXT NOT NULL DEFAULT '',
		price            DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_user_id_idx ON bookings (user_id)`,
}

func Migrate(ctx context.Context, db DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(ctx, m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
