package repomanager

import (
	"context"

	"github.com/dmitrijs2005/quicknotes/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/quicknotes/internal/server/repositories/notes"
)

// MemoryRepositoryManager keeps everything in process memory. Data is lost on
// restart; it backs local runs and tests.
type MemoryRepositoryManager struct {
	accounts *accounts.MemoryRepository
	notes    *notes.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		accounts: accounts.NewMemoryRepository(),
		notes:    notes.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *MemoryRepositoryManager) Accounts() accounts.Repository { return m.accounts }

func (m *MemoryRepositoryManager) Notes() notes.Repository { return m.notes }

func (m *MemoryRepositoryManager) Ping(ctx context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
