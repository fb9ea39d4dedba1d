package postgres

import (
	"context"
	"database/sql"
	"errors"
	"huddle/internal/core/domain"

	"github.com/google/uuid"
)

type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Group messages are read with the sender's public profile. Senders unknown
// to the users table come back with only their id.
const groupMessageSelect = `
	SELECT m.id, m.group_id, m.sender_id, m.text, m.image, m.created_at,
	       COALESCE(u.full_name, ''), COALESCE(u.profile_pic, '')
	FROM group_messages m
	LEFT JOIN users u ON u.id = m.sender_id
`

func (r *MessageRepo) CreateGroupMessage(ctx context.Context, m *domain.GroupMessage) (*domain.GroupMessage, error) {
	if uuid.Validate(m.GroupID) != nil {
		return nil, domain.ErrInvalidGroupID
	}
	exec := GetExecutor(ctx, r.db)
	if _, err := exec.ExecContext(ctx, `
		INSERT INTO group_messages (id, group_id, sender_id, text, image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, m.ID, m.GroupID, m.SenderID, m.Text, m.Image, m.CreatedAt); err != nil {
		return nil, err
	}
	return r.GetGroupMessage(ctx, m.ID)
}

func (r *MessageRepo) GetGroupMessage(ctx context.Context, messageID string) (*domain.GroupMessage, error) {
	if uuid.Validate(messageID) != nil {
		return nil, domain.ErrMessageNotFound
	}
	exec := GetExecutor(ctx, r.db)
	m, err := scanGroupMessage(exec.QueryRowContext(ctx, groupMessageSelect+` WHERE m.id = $1`, messageID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *MessageRepo) ListGroupMessages(ctx context.Context, groupID string) ([]domain.GroupMessage, error) {
	if uuid.Validate(groupID) != nil {
		return nil, domain.ErrInvalidGroupID
	}
	exec := GetExecutor(ctx, r.db)
	rows, err := exec.QueryContext(ctx, groupMessageSelect+` WHERE m.group_id = $1 ORDER BY m.created_at ASC`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var msgs []domain.GroupMessage
	for rows.Next() {
		m, err := scanGroupMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, *m)
	}
	return msgs, rows.Err()
}

func (r *MessageRepo) DeleteGroupMessage(ctx context.Context, messageID string) error {
	if uuid.Validate(messageID) != nil {
		return domain.ErrMessageNotFound
	}
	exec := GetExecutor(ctx, r.db)
	res, err := exec.ExecContext(ctx, `DELETE FROM group_messages WHERE id = $1`, messageID)
	if err != nil {
		return err
	}
	return expectRow(res, domain.ErrMessageNotFound)
}

func (r *MessageRepo) DeleteGroupMessages(ctx context.Context, groupID string) error {
	if uuid.Validate(groupID) != nil {
		return domain.ErrInvalidGroupID
	}
	exec := GetExecutor(ctx, r.db)
	_, err := exec.ExecContext(ctx, `DELETE FROM group_messages WHERE group_id = $1`, groupID)
	return err
}

func (r *MessageRepo) CreateDirectMessage(ctx context.Context, m *domain.DirectMessage) error {
	exec := GetExecutor(ctx, r.db)
	_, err := exec.ExecContext(ctx, `
		INSERT INTO direct_messages (id, sender_id, receiver_id, text, image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, m.ID, m.SenderID, m.ReceiverID, m.Text, m.Image, m.CreatedAt)
	return err
}

func (r *MessageRepo) GetDirectMessage(ctx context.Context, messageID string) (*domain.DirectMessage, error) {
	if uuid.Validate(messageID) != nil {
		return nil, domain.ErrMessageNotFound
	}
	exec := GetExecutor(ctx, r.db)
	var m domain.DirectMessage
	err := exec.QueryRowContext(ctx, `
		SELECT id, sender_id, receiver_id, text, image, created_at
		FROM direct_messages
		WHERE id = $1
	`, messageID).Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Text, &m.Image, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MessageRepo) ListDirectMessages(ctx context.Context, userID, peerID string) ([]domain.DirectMessage, error) {
	exec := GetExecutor(ctx, r.db)
	rows, err := exec.QueryContext(ctx, `
		SELECT id, sender_id, receiver_id, text, image, created_at
		FROM direct_messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at ASC
	`, userID, peerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var msgs []domain.DirectMessage
	for rows.Next() {
		var m domain.DirectMessage
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Text, &m.Image, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *MessageRepo) DeleteDirectMessage(ctx context.Context, messageID string) error {
	if uuid.Validate(messageID) != nil {
		return domain.ErrMessageNotFound
	}
	exec := GetExecutor(ctx, r.db)
	res, err := exec.ExecContext(ctx, `DELETE FROM direct_messages WHERE id = $1`, messageID)
	if err != nil {
		return err
	}
	return expectRow(res, domain.ErrMessageNotFound)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGroupMessage(row scanner) (*domain.GroupMessage, error) {
	var m domain.GroupMessage
	if err := row.Scan(&m.ID, &m.GroupID, &m.SenderID, &m.Text, &m.Image, &m.CreatedAt,
		&m.Sender.FullName, &m.Sender.ProfilePic); err != nil {
		return nil, err
	}
	m.Sender.ID = m.SenderID
	return &m, nil
}
