package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/quicknotes/internal/common"
	"github.com/dmitrijs2005/quicknotes/internal/server/models"
)

// MemoryRepository keeps accounts in process memory. It enforces the same
// uniqueness rules as the PostgreSQL schema and hands out copies, so callers
// can never mutate stored rows.
type MemoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]*models.Account
	byEmail map[string]int64
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[int64]*models.Account),
		byEmail: make(map[string]int64),
		now:     time.Now,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[account.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	if account.HasProvider() && account.ProviderID != nil && r.providerTaken(*account.Provider, *account.ProviderID) {
		return nil, common.ErrorAlreadyExists
	}

	r.nextID++
	stored := copyAccount(account)
	stored.ID = r.nextID
	stored.CreatedAt = r.now()
	stored.UpdatedAt = stored.CreatedAt

	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID

	account.ID = stored.ID
	account.CreatedAt = stored.CreatedAt
	account.UpdatedAt = stored.UpdatedAt
	return account, nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return copyAccount(r.byID[id]), nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return copyAccount(a), nil
}

func (r *MemoryRepository) LinkProvider(ctx context.Context, id int64, provider, providerID, name string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok || a.HasProvider() {
		return nil, common.ErrorNotFound
	}
	if r.providerTaken(provider, providerID) {
		return nil, common.ErrorAlreadyExists
	}

	a.Provider = &provider
	a.ProviderID = &providerID
	if a.Name == "" {
		a.Name = name
	}
	a.UpdatedAt = r.now()

	return copyAccount(a), nil
}

func (r *MemoryRepository) providerTaken(provider, providerID string) bool {
	for _, a := range r.byID {
		if a.HasProvider() && *a.Provider == provider && a.ProviderID != nil && *a.ProviderID == providerID {
			return true
		}
	}
	return false
}

func copyAccount(a *models.Account) *models.Account {
	c := *a
	c.PasswordHash = copyString(a.PasswordHash)
	c.Provider = copyString(a.Provider)
	c.ProviderID = copyString(a.ProviderID)
	return &c
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
