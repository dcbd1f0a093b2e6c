package post

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"learnly/internal/app/db"
	"learnly/internal/pkg/randx"
)

const postColumns = `id, user_id, title, content, media_urls, file_types, tags, created_at, updated_at`

// Store is the PostgreSQL-backed post repository.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a post Store on the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func scanPost(row pgx.Row) (Post, error) {
	var p Post
	err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Content,
		&p.MediaURLs, &p.FileTypes, &p.Tags, &p.CreatedAt, &p.UpdatedAt,
	)
	if db.IsNoRows(err) {
		return Post{}, ErrNotFound
	}
	if err != nil {
		return Post{}, fmt.Errorf("failed to scan post row: %w", err)
	}
	return p, nil
}

// Create persists a new post owned by p.UserID.
func (s *Store) Create(ctx context.Context, p Post) (Post, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO posts (id, user_id, title, content, media_urls, file_types, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+postColumns,
		randx.NewID(), p.UserID, p.Title, p.Content,
		emptyIfNil(p.MediaURLs), emptyIfNil(p.FileTypes), emptyIfNil(p.Tags))
	return scanPost(row)
}

// GetByID fetches a post by id.
func (s *Store) GetByID(ctx context.Context, id string) (Post, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	return scanPost(row)
}

// ListAll returns the global feed, newest first.
func (s *Store) ListAll(ctx context.Context) ([]Post, error) {
	return s.list(ctx,
		`SELECT `+postColumns+` FROM posts ORDER BY created_at DESC`)
}

// ListByUser returns one user's posts, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]Post, error) {
	return s.list(ctx,
		`SELECT `+postColumns+` FROM posts WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// ListByTag returns posts carrying the given tag, newest first.
func (s *Store) ListByTag(ctx context.Context, tag string) ([]Post, error) {
	return s.list(ctx,
		`SELECT `+postColumns+` FROM posts WHERE $1 = ANY(tags) ORDER BY created_at DESC`, tag)
}

// ListByIDs fetches posts for an id list, used to expand saved-post sets.
// Missing ids are skipped silently.
func (s *Store) ListByIDs(ctx context.Context, ids []string) ([]Post, error) {
	if len(ids) == 0 {
		return []Post{}, nil
	}
	return s.list(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ANY($1) ORDER BY created_at DESC`, ids)
}

// Update applies a partial edit and returns the updated post. Slice fields are
// replaced wholesale when present.
func (s *Store) Update(ctx context.Context, id string, update Update) (Post, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE posts
		 SET title      = COALESCE($2, title),
		     content    = COALESCE($3, content),
		     media_urls = COALESCE($4, media_urls),
		     file_types = COALESCE($5, file_types),
		     tags       = COALESCE($6, tags),
		     updated_at = $7
		 WHERE id = $1
		 RETURNING `+postColumns,
		id, update.Title, update.Content,
		update.MediaURLs, update.FileTypes, update.Tags, time.Now())
	return scanPost(row)
}

// Delete removes a post by id. Comments and likes go with it by cascade.
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]Post, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate post rows: %w", err)
	}
	return posts, nil
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
