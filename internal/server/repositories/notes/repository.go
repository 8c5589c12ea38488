// Package notes stores notes. Every read and write is scoped to the owning
// account in the query itself, so one account can never reach another's notes.
package notes

import (
	"context"

	"github.com/dmitrijs2005/quicknotes/internal/server/models"
)

// Repository is the owner-scoped note store.
//
// ListOwned returns the matching notes, most recently updated first, and the
// total number of matches before paging. UpdateOwned and DeleteOwned return
// common.ErrorNotFound when no note with that id belongs to the author.
type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	ListOwned(ctx context.Context, authorID int64, filter models.NoteFilter) ([]*models.Note, int, error)
	UpdateOwned(ctx context.Context, note *models.Note) error
	DeleteOwned(ctx context.Context, authorID, noteID int64) error
}
