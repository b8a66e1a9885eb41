package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/pixelgram/internal/models"
)

type MessageRepository interface {
	GetByID(ctx context.Context, id int64) (*models.DirectMessage, bool, error)
	Create(ctx context.Context, tx *sql.Tx, message *models.DirectMessage) (int64, error)
	ListConversation(ctx context.Context, userA, userB int64) ([]*models.DirectMessage, error)
	UpdateText(ctx context.Context, id int64, text string) error
	Remove(ctx context.Context, id int64) error
}

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) MessageRepository {
	return &messageRepository{db: db}
}

const messageColumns = "id, sender_id, receiver_id, COALESCE(post_id, 0), COALESCE(story_id, 0), text, image_url, video_url, created_at"

func (r *messageRepository) GetByID(ctx context.Context, id int64) (*models.DirectMessage, bool, error) {
	query := "SELECT " + messageColumns + " FROM direct_messages WHERE id = $1"
	row := r.db.QueryRowContext(ctx, query, id)

	var message models.DirectMessage
	err := row.Scan(&message.ID, &message.SenderID, &message.ReceiverID, &message.PostID, &message.StoryID, &message.Text, &message.ImageURL, &message.VideoURL, &message.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &message, true, nil
}

func (r *messageRepository) Create(ctx context.Context, tx *sql.Tx, message *models.DirectMessage) (int64, error) {
	query := `
		INSERT INTO direct_messages (sender_id, receiver_id, post_id, story_id, text, image_url, video_url)
		VALUES ($1, $2, NULLIF($3, 0), NULLIF($4, 0), $5, $6, $7)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, message.SenderID, message.ReceiverID, message.PostID, message.StoryID, message.Text, message.ImageURL, message.VideoURL).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, message.SenderID, message.ReceiverID, message.PostID, message.StoryID, message.Text, message.ImageURL, message.VideoURL).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

// ListConversation returns the messages exchanged between two users in
// either direction, oldest first.
func (r *messageRepository) ListConversation(ctx context.Context, userA, userB int64) ([]*models.DirectMessage, error) {
	query := `
		SELECT ` + messageColumns + ` FROM direct_messages
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, userA, userB)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var messages []*models.DirectMessage
	for rows.Next() {
		var message models.DirectMessage
		err := rows.Scan(&message.ID, &message.SenderID, &message.ReceiverID, &message.PostID, &message.StoryID, &message.Text, &message.ImageURL, &message.VideoURL, &message.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		messages = append(messages, &message)
	}
	return messages, nil
}

func (r *messageRepository) UpdateText(ctx context.Context, id int64, text string) error {
	query := "UPDATE direct_messages SET text = $1 WHERE id = $2"
	_, err := r.db.ExecContext(ctx, query, text, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *messageRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM direct_messages WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
