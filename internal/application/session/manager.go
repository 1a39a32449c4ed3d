package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clusterlab/podlab/pkg/adapters/storage"
)

const keyPrefix = "session:"

const tokenBytes = 16 // 128 bits of randomness, hex-encoded

// Session is the record stored for an authenticated user.
type Session struct {
	Username string `json:"username"`
}

// Manager creates, resolves and deletes sessions in the external store.
type Manager struct {
	store  storage.Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewManager creates a new session manager. ttl is applied at creation only;
// it is not refreshed on access.
func NewManager(store storage.Store, ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// Create issues a new session token for username and persists the record
// with the configured TTL.
func (m *Manager) Create(ctx context.Context, username string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	data, err := json.Marshal(Session{Username: username})
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := m.store.Set(ctx, getSessionKey(token), string(data), m.ttl); err != nil {
		return "", err
	}

	m.logger.Debug("session created",
		zap.String("username", username),
		zap.Duration("ttl", m.ttl))

	return token, nil
}

// Get resolves a token to its session record. A missing, deleted or expired
// session yields storage.ErrNotFound.
func (m *Manager) Get(ctx context.Context, token string) (*Session, error) {
	data, err := m.store.Get(ctx, getSessionKey(token))
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &sess, nil
}

// Delete removes the session for token. Deleting an absent session is not
// an error.
func (m *Manager) Delete(ctx context.Context, token string) error {
	return m.store.Delete(ctx, getSessionKey(token))
}

// newToken returns 128 bits of cryptographic randomness, hex-encoded.
func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// getSessionKey returns the namespaced store key for a session token
func getSessionKey(token string) string {
	return keyPrefix + token
}
