package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/pixelgram/internal/models"
)

type PostRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Post, bool, error)
	Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error)
	ListOpen(ctx context.Context, limit, offset int) ([]*models.Post, int, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.Post, error)
	UpdateCaption(ctx context.Context, id int64, caption string) error
	Remove(ctx context.Context, id int64) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = "id, user_id, caption, image_url, video_url, like_count, created_at, updated_at"

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, bool, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE id = $1"
	row := r.db.QueryRowContext(ctx, query, id)

	var post models.Post
	err := row.Scan(&post.ID, &post.UserID, &post.Caption, &post.ImageURL, &post.VideoURL, &post.LikeCount, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &post, true, nil
}

func (r *postRepository) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (user_id, caption, image_url, video_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, post.UserID, post.Caption, post.ImageURL, post.VideoURL).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, post.UserID, post.Caption, post.ImageURL, post.VideoURL).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

// ListOpen returns posts whose owning profile has open visibility,
// newest first.
func (r *postRepository) ListOpen(ctx context.Context, limit, offset int) ([]*models.Post, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*) FROM posts po
		JOIN profiles pr ON pr.user_id = po.user_id
		WHERE pr.status = $1
	`
	if err := r.db.QueryRowContext(ctx, countQuery, models.ProfileStatusOpen).Scan(&total); err != nil {
		slog.Info(err.Error())
		return nil, 0, err
	}

	query := `
		SELECT po.id, po.user_id, po.caption, po.image_url, po.video_url, po.like_count, po.created_at, po.updated_at
		FROM posts po
		JOIN profiles pr ON pr.user_id = po.user_id
		WHERE pr.status = $1
		ORDER BY po.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, models.ProfileStatusOpen, limit, offset)
	if err != nil {
		slog.Info(err.Error())
		return nil, 0, err
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Post, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE user_id = $1 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func scanPosts(rows *sql.Rows) ([]*models.Post, error) {
	var posts []*models.Post
	for rows.Next() {
		var post models.Post
		err := rows.Scan(&post.ID, &post.UserID, &post.Caption, &post.ImageURL, &post.VideoURL, &post.LikeCount, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, &post)
	}
	return posts, nil
}

func (r *postRepository) UpdateCaption(ctx context.Context, id int64, caption string) error {
	query := `
		UPDATE posts
		SET caption = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, caption, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
