package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"github.com/Grizzway/SalonSync-sub000/apperrors"
	"github.com/Grizzway/SalonSync-sub000/models"
)

// SessionStore keeps live sessions by token id. Get returns (nil, nil) for unknown or expired sessions.
type SessionStore interface {
	Save(ctx context.Context, id string, user models.SessionUser, ttl time.Duration) error
	Get(ctx context.Context, id string) (*models.SessionUser, error)
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore stores sessions as JSON under "session:<id>" with a TTL
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (s *RedisSessionStore) Save(ctx context.Context, id string, user models.SessionUser, ttl time.Duration) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(id), data, ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*models.SessionUser, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user models.SessionUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

type memorySession struct {
	user    models.SessionUser
	expires time.Time
}

// MemorySessionStore keeps sessions in process memory. Used when Redis is unavailable;
// sessions do not survive a restart and are not shared between instances.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]memorySession), now: time.Now}
}

func (s *MemorySessionStore) Save(_ context.Context, id string, user models.SessionUser, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = memorySession{user: user, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*models.SessionUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	if s.now().After(session.expires) {
		delete(s.sessions, id)
		return nil, nil
	}
	user := session.user
	return &user, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// SessionClaims are the signed contents of a session token. Id (jti) keys the session store.
type SessionClaims struct {
	User models.SessionUser `json:"user"`
	jwt.StandardClaims
}

// SessionManager issues signed session tokens and checks them against the session store
type SessionManager struct {
	store  SessionStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionManager(store SessionStore, secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{store: store, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is the lifetime of issued sessions
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a session for user and returns its signed token
func (m *SessionManager) Issue(ctx context.Context, user models.SessionUser) (string, time.Time, error) {
	now := m.now()
	expires := now.Add(m.ttl)
	claims := &SessionClaims{
		User: user,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   user.Key(),
			IssuedAt:  now.Unix(),
			ExpiresAt: expires.Unix(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	if err := m.store.Save(ctx, claims.Id, user, m.ttl); err != nil {
		return "", time.Time{}, fmt.Errorf("save session: %w", err)
	}
	return token, expires, nil
}

// Validate checks the token signature and expiry, then that the session is still live
func (m *SessionManager) Validate(ctx context.Context, token string) (*models.SessionUser, error) {
	claims, err := m.parse(token)
	if err != nil {
		return nil, err
	}

	user, err := m.store.Get(ctx, claims.Id)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load session", err)
	}
	if user == nil {
		return nil, apperrors.NewUnauthorizedError("Session expired")
	}
	return user, nil
}

// Revoke ends the session behind the token. Invalid tokens are ignored.
func (m *SessionManager) Revoke(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, claims.Id)
}

func (m *SessionManager) parse(token string) (*SessionClaims, error) {
	if token == "" {
		return nil, apperrors.NewUnauthorizedError("Not logged in")
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Id == "" {
		return nil, apperrors.NewUnauthorizedError("Invalid session")
	}
	return claims, nil
}
