package postgres

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/shrimpsizemoose/plugg/internal/store"
)

type PostgresStore struct {
	store.BaseStore
}

func NewPostgresStore(dsn, migrationsDir string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &PostgresStore{BaseStore: store.BaseStore{
		DB: db,
		Converter: func(query string) string {
			out := query
			for i := 1; strings.Contains(out, "?"); i++ {
				out = strings.Replace(out, "?", fmt.Sprintf("$%d", i), 1)
			}
			return out
		},
	}}

	if err := s.ApplyMigrations(migrationsDir); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return s, nil
}

func (s *PostgresStore) ApplyMigrations(dir string) error {
	return s.BaseStore.ApplyMigrations(dir, nil)
}

func (s *PostgresStore) FetchRevisionStats(start, end string) ([]store.RevisionStat, error) {
	query := `
		SELECT
			COALESCE(s.name, 'Unknown Subject') AS subject_name,
			COUNT(*) AS sessions,
			SUM(e.duration) AS planned_minutes,
			COALESCE(SUM(e.duration) FILTER (WHERE e.completed), 0) AS completed_minutes
		FROM revision_events e
		LEFT JOIN subjects s ON s.id = e.subject_id
		WHERE e.date >= $1
		AND e.date <= $2
		GROUP BY s.name
		ORDER BY subject_name
	`

	var stats []store.RevisionStat
	if err := s.DB.Select(&stats, query, start, end); err != nil {
		return nil, fmt.Errorf("failed to fetch revision stats: %w", err)
	}

	return stats, nil
}
