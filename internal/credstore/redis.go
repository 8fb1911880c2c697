package credstore

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	keyTeamID        = Namespace + ":team_id"
	keySessionCookie = Namespace + ":session_cookie"
	keyAPIToken      = Namespace + ":api_token"
)

// RedisStore persists credentials in Redis under the service namespace.
type RedisStore struct {
	client *redis.Client
}

// NewRedis connects to Redis and verifies connectivity.
func NewRedis(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Load reads all three credentials. A missing team ID or session cookie
// yields ErrMissing; a missing API token does not.
func (s *RedisStore) Load(ctx context.Context) (Credentials, error) {
	var creds Credentials
	var err error

	creds.TeamID, err = s.get(ctx, keyTeamID)
	if err != nil {
		return Credentials{}, err
	}
	creds.SessionCookie, err = s.get(ctx, keySessionCookie)
	if err != nil {
		return Credentials{}, err
	}
	creds.APIToken, err = s.get(ctx, keyAPIToken)
	if err != nil {
		return Credentials{}, err
	}

	if !creds.Complete() {
		return Credentials{}, ErrMissing
	}
	return creds, nil
}

func (s *RedisStore) get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return val, nil
}

// Save writes all three credentials.
func (s *RedisStore) Save(ctx context.Context, creds Credentials) error {
	pairs := map[string]string{
		keyTeamID:        creds.TeamID,
		keySessionCookie: creds.SessionCookie,
		keyAPIToken:      creds.APIToken,
	}
	for key, val := range pairs {
		if err := s.client.Set(ctx, key, val, 0).Err(); err != nil {
			return fmt.Errorf("write %s: %w", key, err)
		}
	}
	return nil
}

// Clear removes all stored credentials.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, keyTeamID, keySessionCookie, keyAPIToken).Err(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
