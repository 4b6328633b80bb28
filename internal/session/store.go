package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound indicates the token has no live session behind it,
// either because it never existed or because it expired.
var ErrSessionNotFound = errors.New("session not found")

const keyPrefix = "custodia:session:"

// Session is the server-side state bound to one login.
type Session struct {
	Token     string    `json:"token"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Store manages login sessions.
type Store interface {
	Create(ctx context.Context, userID uint, username string) (Session, error)
	Get(ctx context.Context, token string) (Session, error)
	Destroy(ctx context.Context, token string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore constructs a session store backed by Redis. Sessions expire
// after the given TTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Create(ctx context.Context, userID uint, username string) (Session, error) {
	sess := Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return Session{}, fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+sess.Token, payload, s.ttl).Err(); err != nil {
		return Session{}, fmt.Errorf("failed to store session: %w", err)
	}

	return sess, nil
}

func (s *redisStore) Get(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrSessionNotFound
	}

	payload, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(payload), &sess); err != nil {
		return Session{}, fmt.Errorf("failed to decode session: %w", err)
	}

	return sess, nil
}

func (s *redisStore) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}

	return nil
}
