// Package accounts stores QuickNotes user accounts.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/quicknotes/internal/server/models"
)

// Repository is the account store.
//
// Create returns common.ErrorAlreadyExists when the email is taken; the
// Find* methods return common.ErrorNotFound for unknown accounts.
// LinkProvider attaches an external identity to an account that has none,
// adopting name only when the stored one is empty; it returns
// common.ErrorNotFound when no unlinked account with that id exists.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id int64) (*models.Account, error)
	LinkProvider(ctx context.Context, id int64, provider, providerID, name string) (*models.Account, error)
}
