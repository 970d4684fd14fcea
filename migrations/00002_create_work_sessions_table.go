package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateWorkSessionsTable, downCreateWorkSessionsTable)
}

func upCreateWorkSessionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE work_sessions (
	  id UUID PRIMARY KEY,
	  freelancer_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	  start_time TIMESTAMP WITH TIME ZONE NOT NULL,
	  end_time TIMESTAMP WITH TIME ZONE,
	  duration INT NOT NULL DEFAULT 0,
	  task TEXT NOT NULL DEFAULT 'General Development',
	  module TEXT NOT NULL DEFAULT 'General',
	  description TEXT NOT NULL DEFAULT '',
	  status TEXT NOT NULL CHECK (status IN ('active', 'completed', 'paused')) DEFAULT 'active',
	  earnings NUMERIC(12,2) NOT NULL DEFAULT 0,
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);

	CREATE INDEX ix_work_sessions_freelancer ON work_sessions (freelancer_id);
	CREATE INDEX ix_work_sessions_created_at ON work_sessions (created_at DESC);
	`

	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}

	return nil
}

func downCreateWorkSessionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS work_sessions;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
