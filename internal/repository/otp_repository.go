package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPTTL is how long a registration code stays valid.
const OTPTTL = 300 * time.Second

type OTPRepository interface {
	Set(ctx context.Context, email, code string) error
	// Consume fetches and deletes the code in one step so it verifies
	// exactly once.
	Consume(ctx context.Context, email string) (string, bool, error)
	RevokeToken(ctx context.Context, token string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}

type otpRepository struct {
	client *redis.Client
}

func NewOTPRepository(client *redis.Client) OTPRepository {
	return &otpRepository{client: client}
}

func otpKey(email string) string {
	return "otp:" + email
}

func revokedKey(token string) string {
	return "revoked:" + token
}

func (r *otpRepository) Set(ctx context.Context, email, code string) error {
	err := r.client.Set(ctx, otpKey(email), code, OTPTTL).Err()
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *otpRepository) Consume(ctx context.Context, email string) (string, bool, error) {
	code, err := r.client.GetDel(ctx, otpKey(email)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		slog.Info(err.Error())
		return "", false, err
	}
	return code, true, nil
}

func (r *otpRepository) RevokeToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	err := r.client.Set(ctx, revokedKey(token), "1", ttl).Err()
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *otpRepository) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	_, err := r.client.Get(ctx, revokedKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return true, nil
}
