package database

import (
	"context"
	"fmt"

	"github.com/craigderington/m3data-api/internal/models"
	"github.com/uptrace/bun"
)

// CreateSchema creates the tables and lookup indexes if they do not
// exist yet. Safe to run on every start.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.Record)(nil),
		(*models.AccessLogEntry)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_ipdata_ip ON ipdata (ip)",
		"CREATE INDEX IF NOT EXISTS idx_ipdata_cell_phone ON ipdata (cell_phone)",
		"CREATE INDEX IF NOT EXISTS idx_ipdata_home_phone ON ipdata (home_phone)",
		"CREATE INDEX IF NOT EXISTS idx_ipdata_coords ON ipdata (latitude, longitude)",
		"CREATE INDEX IF NOT EXISTS idx_ipdata_name ON ipdata (first_name, last_name)",
	}

	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
