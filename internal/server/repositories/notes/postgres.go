package notes

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/quicknotes/internal/common"
	"github.com/dmitrijs2005/quicknotes/internal/dbx"
	"github.com/dmitrijs2005/quicknotes/internal/server/models"
)

// PostgresRepository implements note storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	query :=
		`INSERT INTO notes (title, content, author_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, note.Title, note.Content, note.AuthorID).
		Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

// ListOwned runs a COUNT first when a page is requested; without paging the
// total is simply the number of rows returned.
func (r *PostgresRepository) ListOwned(ctx context.Context, authorID int64, filter models.NoteFilter) ([]*models.Note, int, error) {
	where := `WHERE author_id = $1`
	args := []any{authorID}
	if filter.Search != "" {
		args = append(args, likePattern(filter.Search))
		where += ` AND (title ILIKE $2 ESCAPE '\' OR content ILIKE $2 ESCAPE '\')`
	}

	total := -1
	if filter.Limit > 0 {
		if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes `+where, args...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
	}

	query := `SELECT id, title, content, author_id, created_at, updated_at FROM notes ` + where +
		` ORDER BY updated_at DESC, id DESC`
	if filter.Limit > 0 {
		n := len(args)
		query += ` LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Note, 0)
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.AuthorID, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if total < 0 {
		total = len(result)
	}
	return result, total, nil
}

func (r *PostgresRepository) UpdateOwned(ctx context.Context, note *models.Note) error {
	query :=
		`UPDATE notes
		 SET title = $1, content = $2, updated_at = now()
		 WHERE id = $3 AND author_id = $4`

	res, err := r.db.ExecContext(ctx, query, note.Title, note.Content, note.ID, note.AuthorID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res.RowsAffected())
}

func (r *PostgresRepository) DeleteOwned(ctx context.Context, authorID, noteID int64) error {
	query := `DELETE FROM notes WHERE id = $1 AND author_id = $2`

	res, err := r.db.ExecContext(ctx, query, noteID, authorID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res.RowsAffected())
}

func expectOneRow(n int64, err error) error {
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
