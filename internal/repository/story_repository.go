package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/pixelgram/internal/models"
)

type StoryRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Story, bool, error)
	Create(ctx context.Context, tx *sql.Tx, story *models.Story) (int64, error)
	ListOpenActive(ctx context.Context, since time.Time, limit, offset int) ([]*models.Story, int, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.Story, error)
	Remove(ctx context.Context, id int64) error
}

type storyRepository struct {
	db *sql.DB
}

func NewStoryRepository(db *sql.DB) StoryRepository {
	return &storyRepository{db: db}
}

const storyColumns = "id, user_id, caption, image_url, video_url, like_count, created_at"

func (r *storyRepository) GetByID(ctx context.Context, id int64) (*models.Story, bool, error) {
	query := "SELECT " + storyColumns + " FROM stories WHERE id = $1"
	row := r.db.QueryRowContext(ctx, query, id)

	var story models.Story
	err := row.Scan(&story.ID, &story.UserID, &story.Caption, &story.ImageURL, &story.VideoURL, &story.LikeCount, &story.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &story, true, nil
}

func (r *storyRepository) Create(ctx context.Context, tx *sql.Tx, story *models.Story) (int64, error) {
	query := `
		INSERT INTO stories (user_id, caption, image_url, video_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, story.UserID, story.Caption, story.ImageURL, story.VideoURL).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, story.UserID, story.Caption, story.ImageURL, story.VideoURL).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

// ListOpenActive returns unexpired stories from open profiles, newest
// first. Expiry is a read-time filter on created_at; expired rows stay
// in the table.
func (r *storyRepository) ListOpenActive(ctx context.Context, since time.Time, limit, offset int) ([]*models.Story, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*) FROM stories st
		JOIN profiles pr ON pr.user_id = st.user_id
		WHERE pr.status = $1 AND st.created_at > $2
	`
	if err := r.db.QueryRowContext(ctx, countQuery, models.ProfileStatusOpen, since).Scan(&total); err != nil {
		slog.Info(err.Error())
		return nil, 0, err
	}

	query := `
		SELECT st.id, st.user_id, st.caption, st.image_url, st.video_url, st.like_count, st.created_at
		FROM stories st
		JOIN profiles pr ON pr.user_id = st.user_id
		WHERE pr.status = $1 AND st.created_at > $2
		ORDER BY st.created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.QueryContext(ctx, query, models.ProfileStatusOpen, since, limit, offset)
	if err != nil {
		slog.Info(err.Error())
		return nil, 0, err
	}
	defer rows.Close()

	stories, err := scanStories(rows)
	if err != nil {
		return nil, 0, err
	}
	return stories, total, nil
}

func (r *storyRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Story, error) {
	query := "SELECT " + storyColumns + " FROM stories WHERE user_id = $1 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return scanStories(rows)
}

func scanStories(rows *sql.Rows) ([]*models.Story, error) {
	var stories []*models.Story
	for rows.Next() {
		var story models.Story
		err := rows.Scan(&story.ID, &story.UserID, &story.Caption, &story.ImageURL, &story.VideoURL, &story.LikeCount, &story.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		stories = append(stories, &story)
	}
	return stories, nil
}

func (r *storyRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM stories WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
