package like

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"learnly/internal/app/db"
	"learnly/internal/pkg/randx"
)

// Store is the PostgreSQL-backed like repository.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a like Store on the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Add records a like. The (post, user) unique constraint turns a duplicate
// like into ErrAlreadyLiked even under concurrent requests.
func (s *Store) Add(ctx context.Context, postID, userID string) (Like, error) {
	var l Like
	err := s.pool.QueryRow(ctx,
		`INSERT INTO likes (id, post_id, user_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, post_id, user_id, created_at`,
		randx.NewID(), postID, userID).Scan(&l.ID, &l.PostID, &l.UserID, &l.CreatedAt)
	if db.IsUniqueViolation(err) {
		return Like{}, ErrAlreadyLiked
	}
	if err != nil {
		return Like{}, fmt.Errorf("failed to add like: %w", err)
	}
	return l, nil
}

// Remove deletes the user's like on a post.
func (s *Store) Remove(ctx context.Context, postID, userID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByPost returns a post's likes, oldest first.
func (s *Store) ListByPost(ctx context.Context, postID string) ([]Like, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, post_id, user_id, created_at FROM likes
		 WHERE post_id = $1 ORDER BY created_at`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	defer rows.Close()

	likes := []Like{}
	for rows.Next() {
		var l Like
		if err := rows.Scan(&l.ID, &l.PostID, &l.UserID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan like row: %w", err)
		}
		likes = append(likes, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate like rows: %w", err)
	}
	return likes, nil
}

// HasLiked reports whether the user has liked the post.
func (s *Store) HasLiked(ctx context.Context, postID, userID string) (bool, error) {
	var liked bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM likes WHERE post_id = $1 AND user_id = $2)`,
		postID, userID).Scan(&liked)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return liked, nil
}
