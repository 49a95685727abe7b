package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	_ "modernc.org/sqlite"

	"github.com/rpad300/godmode-docs/gen/ent"
)

// InMemoryDSN is a shared in-memory SQLite database for one-shot batch runs.
const InMemoryDSN = "file:godmode-docs?mode=memory&cache=shared&_pragma=foreign_keys(1)"

// OpenSQLite opens a SQLite-backed ent client (modernc driver, no cgo) and
// runs schema migration. Used by the batch CLI so a directory can be
// processed without a Postgres instance.
func OpenSQLite(ctx context.Context, dsn string, logger *slog.Logger) (*ent.Client, error) {
	if dsn == "" {
		dsn = InMemoryDSN
	}
	logger.Info("opening sqlite database", "dsn", dsn)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		logger.Error("failed to open sqlite database", "error", err)
		return nil, err
	}
	// the shared in-memory db disappears when the last conn closes
	db.SetMaxIdleConns(1)

	drv := entsql.OpenDB(dialect.SQLite, db)
	client := ent.NewClient(ent.Driver(drv))

	if err := client.Schema.Create(ctx); err != nil {
		logger.Error("sqlite schema migration failed", "error", err)
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
