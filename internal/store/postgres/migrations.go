package postgres

import (
	"context"

	"github.com/uptrace/bun"
)

// The bookings_no_overlap exclusion constraint is the storage-level guarantee
// behind the scheduling invariant: even if application-level serialization is
// bypassed, Postgres rejects a second ACTIVE row over the same time range.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id uuid PRIMARY KEY,
		first_name text NOT NULL,
		last_name text NOT NULL,
		phone text NOT NULL UNIQUE,
		email text NOT NULL DEFAULT '',
		notes text NOT NULL DEFAULT '',
		created_at timestamp NOT NULL,
		updated_at timestamp NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS service_types (
		id uuid PRIMARY KEY,
		display_name text NOT NULL,
		base_name text NOT NULL,
		duration_minutes integer NOT NULL,
		is_online_bookable boolean NOT NULL DEFAULT false,
		is_active boolean NOT NULL DEFAULT true,
		created_at timestamp NOT NULL,
		updated_at timestamp NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id uuid PRIMARY KEY,
		customer_id uuid NOT NULL REFERENCES customers (id),
		service_type_id uuid NOT NULL REFERENCES service_types (id),
		start_at timestamp NOT NULL,
		end_at timestamp NOT NULL,
		status text NOT NULL DEFAULT 'ACTIVE',
		source text NOT NULL DEFAULT 'ADMIN',
		notes text NOT NULL DEFAULT '',
		created_at timestamp NOT NULL,
		updated_at timestamp NOT NULL,
		CONSTRAINT bookings_start_before_end CHECK (start_at < end_at),
		CONSTRAINT bookings_no_overlap EXCLUDE USING gist
			(tsrange(start_at, end_at) WITH &&) WHERE (status = 'ACTIVE')
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_start_at_idx ON bookings (start_at)`,
}

// Migrate applies the schema. Every statement is idempotent, so startup runs
// it unconditionally.
func Migrate(ctx context.Context, db *bun.DB) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return applyMigrations(ctx, tx)
	})
}

func applyMigrations(ctx context.Context, tx bun.Tx) error {
	for _, stmt := range migrations {
		if _, err := tx.NewRaw(stmt).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
