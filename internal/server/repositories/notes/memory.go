package notes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/quicknotes/internal/common"
	"github.com/dmitrijs2005/quicknotes/internal/server/models"
)

// MemoryRepository keeps notes in process memory with the same owner
// scoping and ordering as the PostgreSQL repository.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	notes  map[int64]*models.Note
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		notes: make(map[int64]*models.Note),
		now:   time.Now,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	note.ID = r.nextID
	note.CreatedAt = r.now()
	note.UpdatedAt = note.CreatedAt

	stored := *note
	r.notes[stored.ID] = &stored
	return note, nil
}

func (r *MemoryRepository) ListOwned(ctx context.Context, authorID int64, filter models.NoteFilter) ([]*models.Note, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Note, 0)
	for _, n := range r.notes {
		if n.AuthorID == authorID && matches(n, filter.Search) {
			c := *n
			result = append(result, &c)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].UpdatedAt.After(result[j].UpdatedAt)
		}
		return result[i].ID > result[j].ID
	})

	total := len(result)
	if filter.Limit > 0 {
		start := min(max(filter.Offset, 0), total)
		end := min(start+filter.Limit, total)
		result = result[start:end]
	}
	return result, total, nil
}

func (r *MemoryRepository) UpdateOwned(ctx context.Context, note *models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.notes[note.ID]
	if !ok || stored.AuthorID != note.AuthorID {
		return common.ErrorNotFound
	}
	stored.Title = note.Title
	stored.Content = note.Content
	stored.UpdatedAt = r.now()
	return nil
}

func (r *MemoryRepository) DeleteOwned(ctx context.Context, authorID, noteID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.notes[noteID]
	if !ok || stored.AuthorID != authorID {
		return common.ErrorNotFound
	}
	delete(r.notes, noteID)
	return nil
}
