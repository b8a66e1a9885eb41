package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/pixelgram/internal/models"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Profile, bool, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, bool, error)
	Create(ctx context.Context, tx *sql.Tx, profile *models.Profile) (int64, error)
	Update(ctx context.Context, profile *models.Profile) error
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Profile, int, error)
}

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `p.id, p.user_id, u.username, p.status, p.bio, p.profile_picture, p.website_link, p.created_at`

func (r *profileRepository) scanProfile(row *sql.Row) (*models.Profile, bool, error) {
	var profile models.Profile
	err := row.Scan(&profile.ID, &profile.UserID, &profile.Username, &profile.Status, &profile.Bio, &profile.ProfilePicture, &profile.WebsiteLink, &profile.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &profile, true, nil
}

func (r *profileRepository) GetByID(ctx context.Context, id int64) (*models.Profile, bool, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles p JOIN users u ON u.id = p.user_id WHERE p.id = $1`
	return r.scanProfile(r.db.QueryRowContext(ctx, query, id))
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, bool, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles p JOIN users u ON u.id = p.user_id WHERE p.user_id = $1`
	return r.scanProfile(r.db.QueryRowContext(ctx, query, userID))
}

func (r *profileRepository) Create(ctx context.Context, tx *sql.Tx, profile *models.Profile) (int64, error) {
	query := "INSERT INTO profiles (user_id, status, bio, profile_picture, website_link) VALUES ($1, $2, $3, $4, $5) RETURNING id"

	var err error
	var id int64

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, profile.UserID, profile.Status, profile.Bio, profile.ProfilePicture, profile.WebsiteLink).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, profile.UserID, profile.Status, profile.Bio, profile.ProfilePicture, profile.WebsiteLink).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles
		SET status = $1,
			bio = $2,
			profile_picture = $3,
			website_link = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, profile.Status, profile.Bio, profile.ProfilePicture, profile.WebsiteLink, profile.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *profileRepository) Search(ctx context.Context, search string, limit, offset int) ([]*models.Profile, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM profiles p JOIN users u ON u.id = p.user_id WHERE u.username ILIKE '%' || $1 || '%'`
	if err := r.db.QueryRowContext(ctx, countQuery, search).Scan(&total); err != nil {
		slog.Info(err.Error())
		return nil, 0, err
	}

	query := `SELECT ` + profileColumns + ` FROM profiles p JOIN users u ON u.id = p.user_id
		WHERE u.username ILIKE '%' || $1 || '%'
		ORDER BY u.username
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, search, limit, offset)
	if err != nil {
		slog.Info(err.Error())
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		var profile models.Profile
		err := rows.Scan(&profile.ID, &profile.UserID, &profile.Username, &profile.Status, &profile.Bio, &profile.ProfilePicture, &profile.WebsiteLink, &profile.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, 0, err
		}
		profiles = append(profiles, &profile)
	}
	return profiles, total, nil
}
