package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"learnly/internal/app/db"
	"learnly/internal/pkg/randx"
)

const commentColumns = `id, post_id, user_id, content, created_at`

// Store is the PostgreSQL-backed comment repository.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a comment Store on the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func scanComment(row pgx.Row) (Comment, error) {
	var c Comment
	err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt)
	if db.IsNoRows(err) {
		return Comment{}, ErrNotFound
	}
	if err != nil {
		return Comment{}, fmt.Errorf("failed to scan comment row: %w", err)
	}
	return c, nil
}

// Create persists a new comment.
func (s *Store) Create(ctx context.Context, postID, userID, content string) (Comment, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO comments (id, post_id, user_id, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+commentColumns,
		randx.NewID(), postID, userID, content)
	return scanComment(row)
}

// GetByID fetches a comment by id.
func (s *Store) GetByID(ctx context.Context, id string) (Comment, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)
	return scanComment(row)
}

// Update replaces a comment's content.
func (s *Store) Update(ctx context.Context, id, content string) (Comment, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE comments SET content = $2 WHERE id = $1
		 RETURNING `+commentColumns,
		id, content)
	return scanComment(row)
}

// ListByPost returns a post's comments, oldest first.
func (s *Store) ListByPost(ctx context.Context, postID string) ([]Comment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+commentColumns+` FROM comments
		 WHERE post_id = $1 ORDER BY created_at`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comment rows: %w", err)
	}
	return comments, nil
}

// Delete removes a comment by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
