package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/quicknotes/internal/server/auth"
	"github.com/dmitrijs2005/quicknotes/internal/server/config"
	"github.com/dmitrijs2005/quicknotes/internal/server/models"
	"github.com/dmitrijs2005/quicknotes/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/quicknotes/internal/server/repositories/notes"
	"github.com/dmitrijs2005/quicknotes/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

var errStoreDown = errors.New("connection refused")

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
		PasswordHashCost:            bcrypt.MinCost,
	}
}

// fakeGoogle maps credentials to identities; unknown credentials fail.
type fakeGoogle map[string]*auth.GoogleIdentity

func (f fakeGoogle) Verify(ctx context.Context, credential string) (*auth.GoogleIdentity, error) {
	id, ok := f[credential]
	if !ok {
		return nil, errors.New("invalid token")
	}
	c := *id
	return &c, nil
}

// brokenManager is a RepositoryManager whose stores always fail.
type brokenManager struct{}

func (brokenManager) RunMigrations(context.Context) error { return errStoreDown }
func (brokenManager) Accounts() accounts.Repository       { return brokenAccounts{} }
func (brokenManager) Notes() notes.Repository             { return brokenNotes{} }
func (brokenManager) Ping(context.Context) error          { return errStoreDown }
func (brokenManager) Close() error                        { return nil }

var _ repomanager.RepositoryManager = brokenManager{}

type brokenAccounts struct{}

func (brokenAccounts) Create(context.Context, *models.Account) (*models.Account, error) {
	return nil, errStoreDown
}
func (brokenAccounts) FindByEmail(context.Context, string) (*models.Account, error) {
	return nil, errStoreDown
}
func (brokenAccounts) FindByID(context.Context, int64) (*models.Account, error) {
	return nil, errStoreDown
}
func (brokenAccounts) LinkProvider(context.Context, int64, string, string, string) (*models.Account, error) {
	return nil, errStoreDown
}

type brokenNotes struct{}

func (brokenNotes) Create(context.Context, *models.Note) (*models.Note, error) {
	return nil, errStoreDown
}
func (brokenNotes) ListOwned(context.Context, int64, models.NoteFilter) ([]*models.Note, int, error) {
	return nil, 0, errStoreDown
}
func (brokenNotes) UpdateOwned(context.Context, *models.Note) error { return errStoreDown }
func (brokenNotes) DeleteOwned(context.Context, int64, int64) error { return errStoreDown }
