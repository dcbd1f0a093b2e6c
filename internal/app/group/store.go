package group

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"learnly/internal/app/db"
	"learnly/internal/pkg/randx"
)

const groupColumns = `id, name, description, created_by, created_at, members, COALESCE(last_message_id, ''), COALESCE(related_plan_id, '')`

// Store is the PostgreSQL-backed group repository.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a group Store on the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func scanGroup(row pgx.Row) (Group, error) {
	var g Group
	err := row.Scan(
		&g.ID, &g.Name, &g.Description, &g.CreatedBy, &g.CreatedAt,
		&g.Members, &g.LastMessageID, &g.RelatedPlanID,
	)
	if db.IsNoRows(err) {
		return Group{}, ErrNotFound
	}
	if err != nil {
		return Group{}, fmt.Errorf("failed to scan group row: %w", err)
	}
	return g, nil
}

// Create persists a new group. A missing member list defaults to {creator},
// and a zero creation time defaults to now. The creator is always a member.
func (s *Store) Create(ctx context.Context, desc Descriptor) (Group, error) {
	if desc.CreatedBy == "" {
		return Group{}, errors.New("group creator is required")
	}

	members := desc.Members
	if len(members) == 0 {
		members = []string{desc.CreatedBy}
	} else if !contains(members, desc.CreatedBy) {
		members = append(members, desc.CreatedBy)
	}

	createdAt := desc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO groups (id, name, description, created_by, created_at, members, related_plan_id)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		 RETURNING `+groupColumns,
		randx.NewID(), desc.Name, desc.Description, desc.CreatedBy, createdAt, members, desc.RelatedPlanID)

	return scanGroup(row)
}

// GetByID fetches a group by id.
func (s *Store) GetByID(ctx context.Context, id string) (Group, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE id = $1`, id)
	return scanGroup(row)
}

// Join adds userID to the group's member set. The add-if-absent predicate
// makes the operation idempotent and race-free under concurrent joins.
func (s *Store) Join(ctx context.Context, groupID, userID string) (Group, error) {
	_, err := s.pool.Exec(ctx,
		`UPDATE groups SET members = array_append(members, $2)
		 WHERE id = $1 AND NOT ($2 = ANY(members))`, groupID, userID)
	if err != nil {
		return Group{}, fmt.Errorf("failed to join group: %w", err)
	}

	// Zero rows affected covers both "already a member" and "no such group";
	// re-read to distinguish and to return the current membership.
	return s.GetByID(ctx, groupID)
}

// ListAll returns every group, newest first. Group listings are exposed to all
// signed-in users; the caller enriches each entry with its own membership flag.
func (s *Store) ListAll(ctx context.Context) ([]Group, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+groupColumns+` FROM groups ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	groups := []Group{}
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group rows: %w", err)
	}
	return groups, nil
}

// IsMember reports whether userID is in the group's member set.
func (s *Store) IsMember(ctx context.Context, userID, groupID string) (bool, error) {
	var member bool
	err := s.pool.QueryRow(ctx,
		`SELECT $2 = ANY(members) FROM groups WHERE id = $1`, groupID, userID).Scan(&member)
	if db.IsNoRows(err) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to check group membership: %w", err)
	}
	return member, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
