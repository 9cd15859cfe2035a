package repository

import (
	"context"
	"fmt"

	"chatline/internal/domain/message"
)

const messageColumns = "id, seq, msg, msg_from, msg_date_time"

type PostgresMessageRepository struct {
	db PgxPool
}

func NewMessageRepository(db PgxPool) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *message.Message) (message.Message, error) {
	query := `
		INSERT INTO messages (msg, msg_from, msg_date_time)
		VALUES ($1, $2, $3)
		RETURNING ` + messageColumns

	created, err := scanMessage(r.db.QueryRow(ctx, query, m.Msg, m.MsgFrom, m.MsgDateTime))
	if err != nil {
		return message.Message{}, fmt.Errorf("error creating message: %w", err)
	}
	return created, nil
}

// Find returns every message ordered by timestamp, then insertion sequence.
func (r *PostgresMessageRepository) Find(ctx context.Context) ([]message.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages ORDER BY msg_date_time ASC, seq ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %w", err)
	}
	defer rows.Close()

	var out []message.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}
	return out, nil
}

func scanMessage(row rowScanner) (message.Message, error) {
	var m message.Message
	err := row.Scan(&m.ID, &m.Seq, &m.Msg, &m.MsgFrom, &m.MsgDateTime)
	return m, err
}
