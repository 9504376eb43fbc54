package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/srgjo27/quincho_booking/internal/core/domain"
)

type SessionStore struct {
	client   goredis.Cmdable
	ttl      time.Duration
	newToken func() string
}

func NewSessionStore(client goredis.Cmdable, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		newToken: uuid.NewString,
	}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *SessionStore) Create(ctx context.Context, session domain.Session) (string, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return "", err
	}

	token := s.newToken()
	if err := s.client.Set(ctx, sessionKey(token), string(data), s.ttl).Err(); err != nil {
		return "", err
	}

	return token, nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrNoSession
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}
