package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateUsersTable, downCreateUsersTable)
}

func upCreateUsersTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE users (
	  id UUID PRIMARY KEY,
	  email TEXT UNIQUE NOT NULL,
	  password TEXT NOT NULL,
	  name TEXT NOT NULL,
	  role TEXT NOT NULL CHECK (role IN ('admin', 'freelancer')),
	  hourly_rate NUMERIC(10,2) NOT NULL DEFAULT 25,
	  profile_image TEXT NOT NULL DEFAULT '',
	  skills JSONB NOT NULL DEFAULT '[]',
	  is_active BOOLEAN NOT NULL DEFAULT TRUE,
	  joined_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);
	`

	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}

	return nil
}

func downCreateUsersTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS users;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
