package service

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	config "github.com/maheshrc27/pixelgram/configs"
	"github.com/maheshrc27/pixelgram/internal/apperr"
	"github.com/maheshrc27/pixelgram/internal/models"
	"github.com/maheshrc27/pixelgram/internal/repository"
	"github.com/maheshrc27/pixelgram/internal/transfer"
	"github.com/maheshrc27/pixelgram/pkg/utils"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const otpLength = 6

type AuthService interface {
	RequestOTP(ctx context.Context, req transfer.OTPRequest) (string, error)
	Register(ctx context.Context, reg transfer.Registration) (*models.User, error)
	Login(ctx context.Context, login transfer.Login) (*models.User, error)
	RevokeToken(ctx context.Context, token string) error
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
	GoogleLoginCallback(ctx context.Context, code string) (*models.User, error)
}

type authService struct {
	cfg config.Config
	db  *sql.DB
	u   repository.UserRepository
	p   repository.ProfileRepository
	o   repository.OTPRepository
}

func NewAuthService(cfg config.Config, db *sql.DB, u repository.UserRepository, p repository.ProfileRepository, o repository.OTPRepository) AuthService {
	return &authService{
		cfg: cfg,
		db:  db,
		u:   u,
		p:   p,
		o:   o,
	}
}

// RequestOTP generates and caches a registration code for the address.
// The caller is responsible for dispatching the mail.
func (s *authService) RequestOTP(ctx context.Context, req transfer.OTPRequest) (string, error) {
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return "", apperr.Validation("email", "a valid email is required")
	}
	if req.Username == "" {
		return "", apperr.Validation("username", "username is required")
	}

	code, err := utils.GenerateOTP(otpLength)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	if err := s.o.Set(ctx, req.Email, code); err != nil {
		return "", err
	}

	return code, nil
}

func (s *authService) Register(ctx context.Context, reg transfer.Registration) (*models.User, error) {
	if reg.Username == "" {
		return nil, apperr.Validation("username", "username is required")
	}
	if reg.Email == "" || !strings.Contains(reg.Email, "@") {
		return nil, apperr.Validation("email", "a valid email is required")
	}
	if len(reg.Password) < 8 {
		return nil, apperr.Validation("password", "password must be at least 8 characters")
	}

	// Password confirmation is checked before any account or OTP lookup.
	if reg.Password != reg.PasswordTwo {
		return nil, apperr.Validation("password", "passwords must match")
	}

	cached, found, err := s.o.Consume(ctx, reg.Email)
	if err != nil {
		return nil, err
	}
	if !found || cached != reg.OTP {
		return nil, apperr.ErrInvalidOTP
	}

	if _, exists, err := s.u.GetByEmail(ctx, reg.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, apperr.Validation("email", "email is already registered")
	}
	if _, exists, err := s.u.GetByUsername(ctx, reg.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, apperr.Validation("username", "username is taken")
	}

	hash, err := utils.HashPassword(reg.Password)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	user := &models.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hash,
	}

	userID, err := s.createWithProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	user.ID = userID
	return user, nil
}

// createWithProfile creates the account and its open profile in one
// transaction so neither can exist without the other.
func (s *authService) createWithProfile(ctx context.Context, user *models.User) (int64, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	userID, err := s.u.Create(ctx, tx, user)
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	profile := &models.Profile{
		UserID: userID,
		Status: models.ProfileStatusOpen,
	}
	if _, err := s.p.Create(ctx, tx, profile); err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return userID, nil
}

func (s *authService) Login(ctx context.Context, login transfer.Login) (*models.User, error) {
	if login.Email == "" || login.Password == "" {
		return nil, apperr.Validation("credentials", "email and password are required")
	}

	user, exists, err := s.u.GetByEmail(ctx, login.Email)
	if err != nil {
		return nil, err
	}
	if !exists || user.PasswordHash == "" {
		return nil, apperr.ErrInvalidCredentials
	}

	if err := utils.ComparePassword(user.PasswordHash, login.Password); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	return user, nil
}

// RevokeToken places the token on the denylist for what remains of its
// lifetime.
func (s *authService) RevokeToken(ctx context.Context, token string) error {
	claims, err := utils.ValidateToken(s.cfg.SecretKey, token)
	if err != nil {
		return apperr.ErrAuthentication
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	return s.o.RevokeToken(ctx, token, ttl)
}

func (s *authService) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	return s.o.IsTokenRevoked(ctx, token)
}

func (s *authService) GoogleLoginCallback(ctx context.Context, code string) (*models.User, error) {
	if code == "" {
		return nil, apperr.Validation("code", "authorization code is empty")
	}

	oauth2Config := &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.cfg.GoogleRedirectURI,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}

	token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	client := oauth2Config.Client(ctx, token)
	srv, err := oauth2api.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	info, err := srv.Userinfo.Get().Do()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	user, exists, err := s.u.GetByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		if user.GoogleID == "" {
			user.GoogleID = info.Id
			if err := s.u.Update(ctx, user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}

	username, err := s.availableUsername(ctx, info.Email)
	if err != nil {
		return nil, err
	}

	user = &models.User{
		Username: username,
		Email:    info.Email,
		GoogleID: info.Id,
	}

	userID, err := s.createWithProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	user.ID = userID
	return user, nil
}

func (s *authService) availableUsername(ctx context.Context, email string) (string, error) {
	base := strings.Split(email, "@")[0]

	if _, taken, err := s.u.GetByUsername(ctx, base); err != nil {
		return "", err
	} else if !taken {
		return base, nil
	}

	suffix, err := gonanoid.Generate("0123456789abcdef", 6)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	return base + "_" + suffix, nil
}
