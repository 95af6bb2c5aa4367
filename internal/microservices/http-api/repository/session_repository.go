package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRepository records per-user revocation points: tokens issued before
// the point are no longer honoured.
type SessionRepository interface {
	RevokeUserSessions(ctx context.Context, userID int64, at time.Time) error
	RevokedBefore(ctx context.Context, userID int64) (time.Time, error)
}

type redisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepository stores revocation points for ttl, which should be
// at least the access token lifetime.
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSessionRepository{client: client, ttl: ttl}
}

// NewRedisClient connects to redisURL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("session:revoked:user:%d", userID)
}

func (r *redisSessionRepository) RevokeUserSessions(ctx context.Context, userID int64, at time.Time) error {
	return r.client.Set(ctx, sessionKey(userID), at.Unix(), r.ttl).Err()
}

// RevokedBefore returns the zero time when the user has no revocation point.
func (r *redisSessionRepository) RevokedBefore(ctx context.Context, userID int64) (time.Time, error) {
	unix, err := r.client.Get(ctx, sessionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(unix, 0), nil
}

// noopSessionRepository is used when no Redis is configured; nothing is ever revoked.
type noopSessionRepository struct{}

func NewNoopSessionRepository() SessionRepository {
	return noopSessionRepository{}
}

func (noopSessionRepository) RevokeUserSessions(context.Context, int64, time.Time) error {
	return nil
}

func (noopSessionRepository) RevokedBefore(context.Context, int64) (time.Time, error) {
	return time.Time{}, nil
}
