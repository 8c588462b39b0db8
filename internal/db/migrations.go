package db

import (
	"context"
	"fmt"
)

// columnMigrations are additive columns introduced after the first schema.
// Each entry is applied only when the column is missing.
var columnMigrations = []struct {
	table  string
	column string
	ddl    string
}{
	{"api_calls", "window_key", "ALTER TABLE api_calls ADD COLUMN window_key TEXT"},
}

func (db *DB) migrate() error {
	for _, m := range columnMigrations {
		exists, err := db.columnExists(m.table, m.column)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := db.ExecContext(context.Background(), m.ddl); err != nil {
			return fmt.Errorf("failed to add %s.%s: %w", m.table, m.column, err)
		}
	}
	return nil
}

func (db *DB) columnExists(table, column string) (bool, error) {
	var n int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", table, column).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	return n > 0, nil
}
