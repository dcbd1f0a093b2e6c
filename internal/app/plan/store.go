package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"learnly/internal/app/db"
	"learnly/internal/pkg/randx"
)

const planColumns = `id, user_id, title, description, topics, is_public, followers, created_at, updated_at, completion_date`

// Store is the PostgreSQL-backed learning plan repository.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a plan Store on the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func scanPlan(row pgx.Row) (LearningPlan, error) {
	var p LearningPlan
	var topicsJSON []byte
	err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Description, &topicsJSON,
		&p.IsPublic, &p.Followers, &p.CreatedAt, &p.UpdatedAt, &p.CompletionDate,
	)
	if db.IsNoRows(err) {
		return LearningPlan{}, ErrNotFound
	}
	if err != nil {
		return LearningPlan{}, fmt.Errorf("failed to scan plan row: %w", err)
	}
	if err := json.Unmarshal(topicsJSON, &p.Topics); err != nil {
		return LearningPlan{}, fmt.Errorf("failed to decode plan topics: %w", err)
	}
	return p, nil
}

func encodeTopics(topics []Topic) ([]byte, error) {
	if topics == nil {
		topics = []Topic{}
	}
	body, err := json.Marshal(topics)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan topics: %w", err)
	}
	return body, nil
}

// Create persists a new plan owned by p.UserID.
func (s *Store) Create(ctx context.Context, p LearningPlan) (LearningPlan, error) {
	topicsJSON, err := encodeTopics(p.Topics)
	if err != nil {
		return LearningPlan{}, err
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO learning_plans (id, user_id, title, description, topics, is_public, completion_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+planColumns,
		randx.NewID(), p.UserID, p.Title, p.Description, topicsJSON, p.IsPublic, p.CompletionDate)

	return scanPlan(row)
}

// GetByID fetches a plan by id.
func (s *Store) GetByID(ctx context.Context, id string) (LearningPlan, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+planColumns+` FROM learning_plans WHERE id = $1`, id)
	return scanPlan(row)
}

// ListByUser returns a user's plans, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]LearningPlan, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+planColumns+` FROM learning_plans
		 WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	return collectPlans(rows)
}

// ListPublic returns every public plan, newest first.
func (s *Store) ListPublic(ctx context.Context) ([]LearningPlan, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+planColumns+` FROM learning_plans
		 WHERE is_public ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list public plans: %w", err)
	}
	defer rows.Close()

	return collectPlans(rows)
}

// Update applies a partial edit and returns the updated plan. Topics are
// replaced wholesale when present; a nil topic list leaves them untouched.
func (s *Store) Update(ctx context.Context, id string, update Update) (LearningPlan, error) {
	var topicsJSON []byte
	if update.Topics != nil {
		var err error
		topicsJSON, err = encodeTopics(update.Topics)
		if err != nil {
			return LearningPlan{}, err
		}
	}

	row := s.pool.QueryRow(ctx,
		`UPDATE learning_plans
		 SET title           = COALESCE($2, title),
		     description     = COALESCE($3, description),
		     topics          = COALESCE($4, topics),
		     is_public       = COALESCE($5, is_public),
		     completion_date = COALESCE($6, completion_date),
		     updated_at      = $7
		 WHERE id = $1
		 RETURNING `+planColumns,
		id, update.Title, update.Description, topicsJSON, update.IsPublic, update.CompletionDate, time.Now())

	return scanPlan(row)
}

// Follow adds userID to the plan's follower set, if absent.
func (s *Store) Follow(ctx context.Context, planID, userID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE learning_plans SET followers = array_append(followers, $2)
		 WHERE id = $1 AND NOT ($2 = ANY(followers))`, planID, userID)
	if err != nil {
		return fmt.Errorf("failed to follow plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Already following or no such plan; re-check existence.
		if _, err := s.GetByID(ctx, planID); err != nil {
			return err
		}
	}
	return nil
}

// Unfollow removes userID from the plan's follower set.
func (s *Store) Unfollow(ctx context.Context, planID, userID string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE learning_plans SET followers = array_remove(followers, $2) WHERE id = $1`,
		planID, userID)
	if err != nil {
		return fmt.Errorf("failed to unfollow plan: %w", err)
	}
	return nil
}

// Delete removes a plan by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM learning_plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectPlans(rows pgx.Rows) ([]LearningPlan, error) {
	plans := []LearningPlan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plan rows: %w", err)
	}
	return plans, nil
}
