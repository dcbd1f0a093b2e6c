package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"learnly/internal/app/db"
	"learnly/internal/app/identity"
	"learnly/internal/pkg/randx"
)

const userColumns = `id, provider, provider_id, email, name, bio, picture, followers, following, saved_posts, created_at`

// Store is the PostgreSQL-backed user repository.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a user Store on the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Provider, &u.ProviderID, &u.Email, &u.Name, &u.Bio,
		&u.Picture, &u.Followers, &u.Following, &u.SavedPosts, &u.CreatedAt,
	)
	if db.IsNoRows(err) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to scan user row: %w", err)
	}
	return u, nil
}

// GetByID fetches a user by durable id.
func (s *Store) GetByID(ctx context.Context, id string) (User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByIdentity fetches the user owning the given external identity.
func (s *Store) GetByIdentity(ctx context.Context, ident identity.External) (User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE provider = $1 AND provider_id = $2`,
		string(ident.Provider), ident.SubjectID)
	return scanUser(row)
}

// CreateFromLogin inserts the user record for a first-time login. If another
// request won the race on the same identity, the existing record is returned.
func (s *Store) CreateFromLogin(ctx context.Context, ident identity.External, email, name, picture string) (User, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO users (id, provider, provider_id, email, name, picture)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		randx.NewID(), string(ident.Provider), ident.SubjectID, email, name, picture)

	u, err := scanUser(row)
	if err != nil && db.IsUniqueViolation(err) {
		return s.GetByIdentity(ctx, ident)
	}
	return u, err
}

// ResolveByIdentity maps an external identity to the durable user id.
func (s *Store) ResolveByIdentity(ctx context.Context, ident identity.External) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM users WHERE provider = $1 AND provider_id = $2`,
		string(ident.Provider), ident.SubjectID).Scan(&id)
	if db.IsNoRows(err) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve user by identity: %w", err)
	}
	return id, nil
}

// DisplayName returns the current display name of a user.
func (s *Store) DisplayName(ctx context.Context, userID string) (string, error) {
	var name string
	err := s.pool.QueryRow(ctx, `SELECT name FROM users WHERE id = $1`, userID).Scan(&name)
	if db.IsNoRows(err) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch display name: %w", err)
	}
	return name, nil
}

// Search returns users other than excludeID, optionally filtered by name and
// email substring (case-insensitive).
func (s *Store) Search(ctx context.Context, excludeID string, filter SearchFilter) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id <> $1`
	args := []any{excludeID}

	if filter.Name != "" {
		args = append(args, "%"+strings.ToLower(filter.Name)+"%")
		query += fmt.Sprintf(` AND lower(name) LIKE $%d`, len(args))
	}
	if filter.Email != "" {
		args = append(args, "%"+strings.ToLower(filter.Email)+"%")
		query += fmt.Sprintf(` AND lower(email) LIKE $%d`, len(args))
	}
	query += ` ORDER BY name`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// ListByIDs fetches users for an id list, used to expand follower/following
// relations. Missing ids are skipped silently.
func (s *Store) ListByIDs(ctx context.Context, ids []string) ([]User, error) {
	if len(ids) == 0 {
		return []User{}, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by ids: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// UpdateProfile applies a partial profile edit and returns the updated record.
func (s *Store) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (User, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE users
		 SET name    = COALESCE($2, name),
		     bio     = COALESCE($3, bio),
		     picture = COALESCE($4, picture)
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, update.Name, update.Bio, update.Picture)
	return scanUser(row)
}

// Follow adds targetID to the follower's following set and the follower to the
// target's followers set. Both updates use add-if-absent predicates so
// concurrent duplicate follows cannot corrupt the sets.
func (s *Store) Follow(ctx context.Context, followerID, targetID string) error {
	return s.mutateRelation(ctx, followerID, targetID,
		`UPDATE users SET following = array_append(following, $2)
		 WHERE id = $1 AND NOT ($2 = ANY(following))`,
		`UPDATE users SET followers = array_append(followers, $2)
		 WHERE id = $1 AND NOT ($2 = ANY(followers))`)
}

// Unfollow removes the relation on both sides. Removing an absent relation is
// a no-op.
func (s *Store) Unfollow(ctx context.Context, followerID, targetID string) error {
	return s.mutateRelation(ctx, followerID, targetID,
		`UPDATE users SET following = array_remove(following, $2) WHERE id = $1`,
		`UPDATE users SET followers = array_remove(followers, $2) WHERE id = $1`)
}

// mutateRelation runs the two sides of a follow mutation in one transaction.
// Both users must exist or the whole mutation is rolled back.
func (s *Store) mutateRelation(ctx context.Context, followerID, targetID, followerSQL, targetSQL string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin follow transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, targetID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check target user: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, followerSQL, followerID, targetID); err != nil {
		return fmt.Errorf("failed to update following set: %w", err)
	}
	if _, err := tx.Exec(ctx, targetSQL, targetID, followerID); err != nil {
		return fmt.Errorf("failed to update followers set: %w", err)
	}

	return tx.Commit(ctx)
}

// SavePost adds postID to the user's saved set, if absent.
func (s *Store) SavePost(ctx context.Context, userID, postID string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE users SET saved_posts = array_append(saved_posts, $2)
		 WHERE id = $1 AND NOT ($2 = ANY(saved_posts))`, userID, postID)
	if err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	return nil
}

// UnsavePost removes postID from the user's saved set.
func (s *Store) UnsavePost(ctx context.Context, userID, postID string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE users SET saved_posts = array_remove(saved_posts, $2) WHERE id = $1`,
		userID, postID)
	if err != nil {
		return fmt.Errorf("failed to unsave post: %w", err)
	}
	return nil
}

// Delete removes the account and cascade-invalidates references held by other
// users: the deleted id is stripped from every follower, following, and group
// member set. Owned posts, comments, likes, plans, and progress updates are
// removed by foreign-key cascade.
func (s *Store) Delete(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE users SET followers = array_remove(followers, $1),
		                  following = array_remove(following, $1)
		 WHERE $1 = ANY(followers) OR $1 = ANY(following)`, id); err != nil {
		return fmt.Errorf("failed to strip follow references: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE groups SET members = array_remove(members, $1) WHERE $1 = ANY(members)`, id); err != nil {
		return fmt.Errorf("failed to strip group membership: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

func collectUsers(rows pgx.Rows) ([]User, error) {
	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}
	return users, nil
}
