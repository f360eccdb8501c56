package app

import (
	"strings"

	"github.com/shrimpsizemoose/plugg/internal/store"
	"github.com/shrimpsizemoose/plugg/internal/store/postgres"
	"github.com/shrimpsizemoose/plugg/internal/store/sqlite"
)

func NewStore(dsn, migrationsDir string) (store.PlannerStore, error) {
	if strings.HasPrefix(dsn, "postgres") {
		return postgres.NewPostgresStore(dsn, migrationsDir)
	}
	return sqlite.NewSQLiteStore(dsn, migrationsDir)
}
