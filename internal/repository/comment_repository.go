package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/pixelgram/internal/models"
)

type CommentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Comment, bool, error)
	Create(ctx context.Context, tx *sql.Tx, comment *models.Comment) (int64, error)
	ListByPostID(ctx context.Context, postID int64) ([]*models.Comment, error)
	ListByStoryID(ctx context.Context, storyID int64) ([]*models.Comment, error)
	UpdateText(ctx context.Context, id int64, text string) error
	Remove(ctx context.Context, id int64) error
}

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = "id, user_id, COALESCE(post_id, 0), COALESCE(story_id, 0), text, like_count, created_at"

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, bool, error) {
	query := "SELECT " + commentColumns + " FROM comments WHERE id = $1"
	row := r.db.QueryRowContext(ctx, query, id)

	var comment models.Comment
	err := row.Scan(&comment.ID, &comment.UserID, &comment.PostID, &comment.StoryID, &comment.Text, &comment.LikeCount, &comment.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &comment, true, nil
}

func (r *commentRepository) Create(ctx context.Context, tx *sql.Tx, comment *models.Comment) (int64, error) {
	query := `
		INSERT INTO comments (user_id, post_id, story_id, text)
		VALUES ($1, NULLIF($2, 0), NULLIF($3, 0), $4)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, comment.UserID, comment.PostID, comment.StoryID, comment.Text).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, comment.UserID, comment.PostID, comment.StoryID, comment.Text).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *commentRepository) ListByPostID(ctx context.Context, postID int64) ([]*models.Comment, error) {
	query := "SELECT " + commentColumns + " FROM comments WHERE post_id = $1 ORDER BY created_at"
	return r.queryComments(ctx, query, postID)
}

func (r *commentRepository) ListByStoryID(ctx context.Context, storyID int64) ([]*models.Comment, error) {
	query := "SELECT " + commentColumns + " FROM comments WHERE story_id = $1 ORDER BY created_at"
	return r.queryComments(ctx, query, storyID)
}

func (r *commentRepository) queryComments(ctx context.Context, query string, arg int64) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(&comment.ID, &comment.UserID, &comment.PostID, &comment.StoryID, &comment.Text, &comment.LikeCount, &comment.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		comments = append(comments, &comment)
	}
	return comments, nil
}

func (r *commentRepository) UpdateText(ctx context.Context, id int64, text string) error {
	query := "UPDATE comments SET text = $1 WHERE id = $2"
	_, err := r.db.ExecContext(ctx, query, text, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *commentRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM comments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
