package message

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"learnly/internal/app/db"
)

const messageColumns = `id, group_id, sender_id, sender_name, content, status, sent_at`

// Store is the PostgreSQL-backed message repository.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a message Store on the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func scanMessage(row pgx.Row) (Message, error) {
	var m Message
	err := row.Scan(&m.ID, &m.GroupID, &m.SenderID, &m.SenderName, &m.Content, &m.Status, &m.SentAt)
	if db.IsNoRows(err) {
		return Message{}, ErrNotFound
	}
	if err != nil {
		return Message{}, fmt.Errorf("failed to scan message row: %w", err)
	}
	return m, nil
}

// Append persists a message and records it as the group's most recent one.
// The insert and the last-message bump share a transaction so a crash cannot
// leave the group pointing at a message that was never written.
func (s *Store) Append(ctx context.Context, m Message) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin append transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO messages (id, group_id, sender_id, sender_name, content, status, sent_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.GroupID, m.SenderID, m.SenderName, m.Content, m.Status, m.SentAt); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE groups SET last_message_id = $2 WHERE id = $1`, m.GroupID, m.ID); err != nil {
		return fmt.Errorf("failed to bump last message: %w", err)
	}

	return tx.Commit(ctx)
}

// ListByGroup returns the group's full history, oldest first.
func (s *Store) ListByGroup(ctx context.Context, groupID string) ([]Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+messageColumns+` FROM messages
		 WHERE group_id = $1 ORDER BY sent_at, seq`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate message rows: %w", err)
	}
	return messages, nil
}
