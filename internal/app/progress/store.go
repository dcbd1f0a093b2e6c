package progress

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"learnly/internal/app/db"
	"learnly/internal/pkg/randx"
)

const updateColumns = `id, user_id, plan_id, content, template_type, created_at`

// Store is the PostgreSQL-backed progress update repository.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a progress Store on the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func scanUpdate(row pgx.Row) (Update, error) {
	var u Update
	err := row.Scan(&u.ID, &u.UserID, &u.PlanID, &u.Content, &u.TemplateType, &u.CreatedAt)
	if db.IsNoRows(err) {
		return Update{}, ErrNotFound
	}
	if err != nil {
		return Update{}, fmt.Errorf("failed to scan progress row: %w", err)
	}
	return u, nil
}

// Create persists a new progress update.
func (s *Store) Create(ctx context.Context, u Update) (Update, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO progress_updates (id, user_id, plan_id, content, template_type)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+updateColumns,
		randx.NewID(), u.UserID, u.PlanID, u.Content, u.TemplateType)
	return scanUpdate(row)
}

// GetByID fetches a progress update by id.
func (s *Store) GetByID(ctx context.Context, id string) (Update, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+updateColumns+` FROM progress_updates WHERE id = $1`, id)
	return scanUpdate(row)
}

// Update applies a partial edit to a progress update.
func (s *Store) Update(ctx context.Context, id string, edit Edit) (Update, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE progress_updates SET
		    content       = COALESCE($2, content),
		    template_type = COALESCE($3, template_type)
		 WHERE id = $1
		 RETURNING `+updateColumns,
		id, edit.Content, edit.TemplateType)
	return scanUpdate(row)
}

// ListByUser returns a user's progress updates, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]Update, error) {
	return s.list(ctx,
		`SELECT `+updateColumns+` FROM progress_updates
		 WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// ListByPlan returns a plan's progress updates, newest first.
func (s *Store) ListByPlan(ctx context.Context, planID string) ([]Update, error) {
	return s.list(ctx,
		`SELECT `+updateColumns+` FROM progress_updates
		 WHERE plan_id = $1 ORDER BY created_at DESC`, planID)
}

// Delete removes a progress update by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM progress_updates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete progress update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]Update, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress updates: %w", err)
	}
	defer rows.Close()

	updates := []Update{}
	for rows.Next() {
		u, err := scanUpdate(rows)
		if err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate progress rows: %w", err)
	}
	return updates, nil
}
