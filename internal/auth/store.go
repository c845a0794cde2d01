package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

type storedKey struct {
	userID     string
	secretHash string
}

// MemoryKeyStore is an in-memory KeyStore for tests and development.
type MemoryKeyStore struct {
	keys map[string]storedKey
	mu   sync.RWMutex
}

// NewMemoryKeyStore creates an empty in-memory key store.
func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{
		keys: make(map[string]storedKey),
	}
}

// Add registers a key with an already-hashed secret.
func (s *MemoryKeyStore) Add(keyID, userID, secretHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[keyID] = storedKey{userID: userID, secretHash: secretHash}
}

func (s *MemoryKeyStore) Lookup(_ context.Context, keyID string) (string, string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	k, ok := s.keys[keyID]
	if !ok {
		return "", "", false, nil
	}
	return k.userID, k.secretHash, true, nil
}

// PostgresKeyStore reads API keys from the api_keys table.
type PostgresKeyStore struct {
	pool *pgxpool.Pool
}

// NewPostgresKeyStore creates a PostgreSQL-backed key store.
func NewPostgresKeyStore(pool *pgxpool.Pool) (*PostgresKeyStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresKeyStore{pool: pool}, nil
}

func (s *PostgresKeyStore) Lookup(ctx context.Context, keyID string) (string, string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var userID, secretHash string
	err := s.pool.QueryRow(ctx,
		`SELECT user_id, secret_hash
		 FROM api_keys
		 WHERE key_id = $1 AND revoked_at IS NULL`,
		keyID,
	).Scan(&userID, &secretHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", false, nil
		}
		return "", "", false, fmt.Errorf("lookup key: %w", err)
	}

	return userID, secretHash, true, nil
}
