package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/lib/pq"
	"github.com/maheshrc27/pixelgram/internal/models"
)

// ErrDuplicate reports an insert that lost a race against the unique
// constraint on the (user, target) pair. Callers treat it as "already in
// the desired state".
var ErrDuplicate = errors.New("row already exists")

type LikeRepository interface {
	GetForUpdate(ctx context.Context, tx *sql.Tx, userID int64, target string, targetID int64) (*models.Like, bool, error)
	Create(ctx context.Context, tx *sql.Tx, like *models.Like) (int64, error)
	Remove(ctx context.Context, tx *sql.Tx, id int64) error
	AdjustCounter(ctx context.Context, tx *sql.Tx, target string, targetID int64, delta int) error
	ListByTarget(ctx context.Context, target string, targetID int64) ([]*models.Like, error)
	Exists(ctx context.Context, userID int64, target string, targetID int64) (bool, error)
	CountByTarget(ctx context.Context, target string, targetID int64) (int64, error)
	RepairCounters(ctx context.Context, target string) (int64, error)
}

type likeRepository struct {
	db *sql.DB
}

func NewLikeRepository(db *sql.DB) LikeRepository {
	return &likeRepository{db: db}
}

func targetColumn(target string) string {
	switch target {
	case models.LikeTargetPost:
		return "post_id"
	case models.LikeTargetStory:
		return "story_id"
	case models.LikeTargetComment:
		return "comment_id"
	}
	return ""
}

func counterTable(target string) string {
	switch target {
	case models.LikeTargetPost:
		return "posts"
	case models.LikeTargetStory:
		return "stories"
	case models.LikeTargetComment:
		return "comments"
	}
	return ""
}

const likeColumns = "id, user_id, COALESCE(post_id, 0), COALESCE(story_id, 0), COALESCE(comment_id, 0), created_at"

// GetForUpdate locks the like row for the (user, target) pair so
// concurrent toggles from the same account serialize inside the
// transaction.
func (r *likeRepository) GetForUpdate(ctx context.Context, tx *sql.Tx, userID int64, target string, targetID int64) (*models.Like, bool, error) {
	column := targetColumn(target)
	if column == "" {
		return nil, false, errors.New("unknown like target")
	}

	query := "SELECT " + likeColumns + " FROM likes WHERE user_id = $1 AND " + column + " = $2 FOR UPDATE"

	var like models.Like
	err := tx.QueryRowContext(ctx, query, userID, targetID).Scan(&like.ID, &like.UserID, &like.PostID, &like.StoryID, &like.CommentID, &like.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &like, true, nil
}

func (r *likeRepository) Create(ctx context.Context, tx *sql.Tx, like *models.Like) (int64, error) {
	query := `
		INSERT INTO likes (user_id, post_id, story_id, comment_id)
		VALUES ($1, NULLIF($2, 0), NULLIF($3, 0), NULLIF($4, 0))
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, like.UserID, like.PostID, like.StoryID, like.CommentID).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, like.UserID, like.PostID, like.StoryID, like.CommentID).Scan(&id)
	}
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return 0, ErrDuplicate
		}
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *likeRepository) Remove(ctx context.Context, tx *sql.Tx, id int64) error {
	query := "DELETE FROM likes WHERE id = $1"

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, id)
	} else {
		_, err = r.db.ExecContext(ctx, query, id)
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// AdjustCounter moves the denormalized like counter, floored at zero.
func (r *likeRepository) AdjustCounter(ctx context.Context, tx *sql.Tx, target string, targetID int64, delta int) error {
	table := counterTable(target)
	if table == "" {
		return errors.New("unknown like target")
	}

	query := "UPDATE " + table + " SET like_count = GREATEST(like_count + $1, 0) WHERE id = $2"

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, delta, targetID)
	} else {
		_, err = r.db.ExecContext(ctx, query, delta, targetID)
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *likeRepository) ListByTarget(ctx context.Context, target string, targetID int64) ([]*models.Like, error) {
	column := targetColumn(target)
	if column == "" {
		return nil, errors.New("unknown like target")
	}

	query := "SELECT " + likeColumns + " FROM likes WHERE " + column + " = $1 ORDER BY created_at"
	rows, err := r.db.QueryContext(ctx, query, targetID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var likes []*models.Like
	for rows.Next() {
		var like models.Like
		err := rows.Scan(&like.ID, &like.UserID, &like.PostID, &like.StoryID, &like.CommentID, &like.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		likes = append(likes, &like)
	}
	return likes, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID int64, target string, targetID int64) (bool, error) {
	column := targetColumn(target)
	if column == "" {
		return false, errors.New("unknown like target")
	}

	query := "SELECT 1 FROM likes WHERE user_id = $1 AND " + column + " = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, userID, targetID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return result == 1, nil
}

func (r *likeRepository) CountByTarget(ctx context.Context, target string, targetID int64) (int64, error) {
	column := targetColumn(target)
	if column == "" {
		return 0, errors.New("unknown like target")
	}

	query := "SELECT COUNT(*) FROM likes WHERE " + column + " = $1"

	var count int64
	if err := r.db.QueryRowContext(ctx, query, targetID).Scan(&count); err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

// RepairCounters rewrites every drifted like_count for the target table
// from the likes rows and reports how many rows were corrected.
func (r *likeRepository) RepairCounters(ctx context.Context, target string) (int64, error) {
	table := counterTable(target)
	column := targetColumn(target)
	if table == "" || column == "" {
		return 0, errors.New("unknown like target")
	}

	query := `
		UPDATE ` + table + ` t
		SET like_count = counted.n
		FROM (
			SELECT t2.id, COUNT(l.id) AS n
			FROM ` + table + ` t2
			LEFT JOIN likes l ON l.` + column + ` = t2.id
			GROUP BY t2.id
		) counted
		WHERE counted.id = t.id AND t.like_count <> counted.n
	`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return affected, nil
}
