package repository

import (
	"context"

	"github.com/farmdesk/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepository defines the persistence interface for inquiry messages.
// It is defined here (in repository) to avoid an import cycle with service.
type MessageRepository interface {
	Insert(ctx context.Context, msg *model.Message) error
	List(ctx context.Context) ([]*model.Message, error)
	UpdateStatus(ctx context.Context, id string, status model.Status) error
	Delete(ctx context.Context, id string) error
}

// PgMessageRepository is the PostgreSQL implementation of MessageRepository.
type PgMessageRepository struct {
	pool *pgxpool.Pool
}

// NewPgMessageRepository creates a PgMessageRepository backed by the given pool.
func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

// Ensure PgMessageRepository implements MessageRepository at compile time.
var _ MessageRepository = (*PgMessageRepository)(nil)

// Insert persists a new messages row. The id is assigned by the caller;
// created_at comes from the database clock via the RETURNING clause.
func (r *PgMessageRepository) Insert(ctx context.Context, msg *model.Message) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO messages (id, user_id, first_name, last_name, email, subject, message, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		msg.ID, msg.UserID, msg.FirstName, msg.LastName, msg.Email, msg.Subject, msg.Message, msg.Status,
	).Scan(&msg.CreatedAt)
}

// List returns every message, newest first.
func (r *PgMessageRepository) List(ctx context.Context) ([]*model.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, first_name, last_name, email, subject, message, status, created_at, replied_at
		 FROM messages
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.FirstName, &m.LastName, &m.Email,
			&m.Subject, &m.Message, &m.Status, &m.CreatedAt, &m.RepliedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// UpdateStatus sets the status of a message. A transition to "replied" stamps
// replied_at with the database clock in the same statement; other transitions
// leave replied_at untouched. An update on an absent id is a no-op, not an error.
func (r *PgMessageRepository) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	if status == model.StatusReplied {
		_, err := r.pool.Exec(ctx,
			`UPDATE messages SET status = $1, replied_at = NOW() WHERE id = $2`,
			status, id)
		return err
	}
	_, err := r.pool.Exec(ctx,
		`UPDATE messages SET status = $1 WHERE id = $2`,
		status, id)
	return err
}

// Delete removes a message by id. Deleting an absent id is not an error.
func (r *PgMessageRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	return err
}
