package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/quicknotes/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/quicknotes/internal/server/repositories/notes"
)

// MemoryDSNPrefix selects the in-process store instead of PostgreSQL.
const MemoryDSNPrefix = "memory://"

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Accounts() accounts.Repository
	Notes() notes.Repository
	Ping(ctx context.Context) error
	Close() error
}

// New opens the store described by dsn. A DSN starting with MemoryDSNPrefix
// yields a MemoryRepositoryManager; anything else is handed to the pgx driver.
func New(dsn string) (RepositoryManager, error) {
	if strings.HasPrefix(dsn, MemoryDSNPrefix) {
		return NewMemoryRepositoryManager(), nil
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return NewPostgresRepositoryManager(db)
}
