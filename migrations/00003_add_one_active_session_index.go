package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upAddOneActiveSessionIndex, downAddOneActiveSessionIndex)
}

// At most one active session per freelancer. The application checks before
// inserting, but two concurrent starts can both pass that check; the partial
// unique index makes the database reject the second insert.
func upAddOneActiveSessionIndex(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE UNIQUE INDEX ux_work_sessions_one_active
	  ON work_sessions (freelancer_id)
	  WHERE status = 'active';
	`

	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}

	return nil
}

func downAddOneActiveSessionIndex(ctx context.Context, tx *sql.Tx) error {
	query := `DROP INDEX IF EXISTS ux_work_sessions_one_active;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
