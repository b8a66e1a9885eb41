package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lib/pq"
	"github.com/maheshrc27/pixelgram/internal/models"
)

type FollowerRepository interface {
	Exists(ctx context.Context, profileID, followerID int64) (bool, error)
	Add(ctx context.Context, profileID, followerID int64) error
	Remove(ctx context.Context, profileID, followerID int64) (bool, error)
	ListFollowers(ctx context.Context, profileID int64) ([]*models.Profile, error)
	ListFollowings(ctx context.Context, userID int64) ([]*models.Profile, error)
}

type followerRepository struct {
	db *sql.DB
}

func NewFollowerRepository(db *sql.DB) FollowerRepository {
	return &followerRepository{db: db}
}

func (r *followerRepository) Exists(ctx context.Context, profileID, followerID int64) (bool, error) {
	query := "SELECT 1 FROM profile_followers WHERE profile_id = $1 AND follower_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, profileID, followerID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

// Add inserts the follower relation. A concurrent duplicate insert hits
// the (profile_id, follower_id) unique constraint and is reported as
// already in the desired state, not as an error.
func (r *followerRepository) Add(ctx context.Context, profileID, followerID int64) error {
	query := "INSERT INTO profile_followers (profile_id, follower_id) VALUES ($1, $2)"
	_, err := r.db.ExecContext(ctx, query, profileID, followerID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil
		}
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *followerRepository) Remove(ctx context.Context, profileID, followerID int64) (bool, error) {
	query := "DELETE FROM profile_followers WHERE profile_id = $1 AND follower_id = $2"
	result, err := r.db.ExecContext(ctx, query, profileID, followerID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected > 0, nil
}

func (r *followerRepository) ListFollowers(ctx context.Context, profileID int64) ([]*models.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profile_followers f
		JOIN profiles p ON p.user_id = f.follower_id
		JOIN users u ON u.id = p.user_id
		WHERE f.profile_id = $1
		ORDER BY f.created_at DESC`
	return r.queryProfiles(ctx, query, profileID)
}

// ListFollowings derives "who does this user follow" by scanning
// follower-set membership. There is no stored reverse relation.
func (r *followerRepository) ListFollowings(ctx context.Context, userID int64) ([]*models.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profile_followers f
		JOIN profiles p ON p.id = f.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC`
	return r.queryProfiles(ctx, query, userID)
}

func (r *followerRepository) queryProfiles(ctx context.Context, query string, arg int64) ([]*models.Profile, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		var profile models.Profile
		err := rows.Scan(&profile.ID, &profile.UserID, &profile.Username, &profile.Status, &profile.Bio, &profile.ProfilePicture, &profile.WebsiteLink, &profile.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		profiles = append(profiles, &profile)
	}
	return profiles, nil
}
