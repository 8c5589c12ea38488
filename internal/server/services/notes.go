package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/dmitrijs2005/quicknotes/internal/common"
	"github.com/dmitrijs2005/quicknotes/internal/server/models"
	"github.com/dmitrijs2005/quicknotes/internal/server/repositories/repomanager"
)

const (
	DefaultPageLimit = 6
	MaxPageLimit     = 100
)

// NoteQuery selects which of an account's notes to list. Page and Limit are
// only honoured when Paged is set.
type NoteQuery struct {
	Search string
	Page   int
	Limit  int
	Paged  bool
}

// ParseNoteQuery builds a NoteQuery from raw query parameters. Paging is on
// when page or limit is present; missing values default to page 1 and
// DefaultPageLimit, and limit is capped at MaxPageLimit.
func ParseNoteQuery(search, page, limit string) (NoteQuery, error) {
	q := NoteQuery{Search: search}
	if page == "" && limit == "" {
		return q, nil
	}

	q.Paged = true
	q.Page = 1
	q.Limit = DefaultPageLimit

	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			return NoteQuery{}, common.ErrInvalidPagination
		}
		q.Page = n
	}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			return NoteQuery{}, common.ErrInvalidPagination
		}
		q.Limit = min(n, MaxPageLimit)
	}
	// The offset (page-1)*limit must fit in an int.
	if q.Page-1 > (math.MaxInt-q.Limit)/q.Limit {
		return NoteQuery{}, common.ErrInvalidPagination
	}
	return q, nil
}

// NoteList is a listing result. Pagination is nil for unpaged queries.
type NoteList struct {
	Notes      []*models.Note     `json:"notes"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// NoteService implements owner-scoped CRUD on notes.
type NoteService struct {
	repomanager repomanager.RepositoryManager
}

func NewNoteService(m repomanager.RepositoryManager) *NoteService {
	return &NoteService{repomanager: m}
}

func (s *NoteService) List(ctx context.Context, accountID int64, q NoteQuery) (*NoteList, error) {
	filter := models.NoteFilter{Search: q.Search}
	if q.Paged {
		filter.Limit = q.Limit
		filter.Offset = (q.Page - 1) * q.Limit
	}

	notes, total, err := s.repomanager.Notes().ListOwned(ctx, accountID, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}

	list := &NoteList{Notes: notes}
	if q.Paged {
		list.Pagination = models.NewPagination(q.Page, q.Limit, total)
	}
	return list, nil
}

func (s *NoteService) Create(ctx context.Context, accountID int64, title, content string) (*models.Note, error) {
	if title == "" || content == "" {
		return nil, common.ErrMissingNoteFields
	}

	note, err := s.repomanager.Notes().Create(ctx, &models.Note{
		Title:    title,
		Content:  content,
		AuthorID: accountID,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return note, nil
}

// Update replaces title and content of a note owned by accountID. Missing and
// foreign notes are reported identically.
func (s *NoteService) Update(ctx context.Context, accountID, noteID int64, title, content string) error {
	if title == "" || content == "" {
		return common.ErrMissingNoteFields
	}

	err := s.repomanager.Notes().UpdateOwned(ctx, &models.Note{
		ID:       noteID,
		AuthorID: accountID,
		Title:    title,
		Content:  content,
	})
	return noteWriteError(err, "error updating note")
}

func (s *NoteService) Delete(ctx context.Context, accountID, noteID int64) error {
	err := s.repomanager.Notes().DeleteOwned(ctx, accountID, noteID)
	return noteWriteError(err, "error deleting note")
}

func noteWriteError(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return common.ErrNoteNotFound
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}
