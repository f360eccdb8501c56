// internal/store/sqlite/store.go
package sqlite

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/shrimpsizemoose/plugg/internal/store"
)

type SQLiteStore struct {
	store.BaseStore
}

func NewSQLiteStore(dsn, migrationsDir string) (*SQLiteStore, error) {
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}

	// One connection serializes writers and keeps :memory: databases
	// from being recreated per pooled connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &SQLiteStore{BaseStore: store.BaseStore{
		DB: db,
		Converter: func(query string) string {
			return query
		},
	}}

	if err := s.ApplyMigrations(migrationsDir); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) ApplyMigrations(dir string) error {
	return s.BaseStore.ApplyMigrations(dir, translateToSQLite)
}

// translateToSQLite converts Postgres SQL to SQLite dialect. Replacements
// are ordered so that longer phrases win over their substrings.
func translateToSQLite(sql string) string {
	replacements := [][2]string{
		{"BIGSERIAL PRIMARY KEY", "INTEGER PRIMARY KEY AUTOINCREMENT"},
		{"BIGINT", "INTEGER"},
		{"TIMESTAMPTZ", "TIMESTAMP"},
		{"VARCHAR(10)", "TEXT"},
		{"VARCHAR(5)", "TEXT"},
		{"DEFAULT FALSE", "DEFAULT 0"},
		{"DEFAULT TRUE", "DEFAULT 1"},
		{"now()", "CURRENT_TIMESTAMP"},
	}
	result := sql
	for _, r := range replacements {
		result = strings.ReplaceAll(result, r[0], r[1])
	}
	return result
}

func (s *SQLiteStore) FetchRevisionStats(start, end string) ([]store.RevisionStat, error) {
	query := `
		SELECT
			COALESCE(s.name, 'Unknown Subject') AS subject_name,
			COUNT(*) AS sessions,
			SUM(e.duration) AS planned_minutes,
			SUM(CASE WHEN e.completed THEN e.duration ELSE 0 END) AS completed_minutes
		FROM revision_events e
		LEFT JOIN subjects s ON s.id = e.subject_id
		WHERE e.date >= ?
		AND e.date <= ?
		GROUP BY s.name
		ORDER BY subject_name
	`

	var stats []store.RevisionStat
	if err := s.DB.Select(&stats, query, start, end); err != nil {
		return nil, fmt.Errorf("failed to fetch revision stats: %w", err)
	}

	return stats, nil
}
