// Package auth resolves API keys to learner identities. The core takes an
// explicit user ID on every call; this package is the only place a request
// credential is turned into one.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrNotAuthenticated is returned when a request carries no credential or
// an unverifiable one. Fatal to the calling operation; retry requires
// re-authentication.
var ErrNotAuthenticated = errors.New("not authenticated")

// KeyStore looks up the stored credential for a key ID.
type KeyStore interface {
	// Lookup returns the owning user and the bcrypt hash of the key
	// secret, or found=false for an unknown key ID.
	Lookup(ctx context.Context, keyID string) (userID, secretHash string, found bool, err error)
}

// Resolver verifies "keyID.secret" API keys against a KeyStore.
type Resolver struct {
	keys KeyStore
}

// NewResolver creates a key resolver.
func NewResolver(keys KeyStore) *Resolver {
	return &Resolver{keys: keys}
}

// Resolve returns the user ID owning the presented API key.
func (r *Resolver) Resolve(ctx context.Context, apiKey string) (string, error) {
	keyID, secret, ok := strings.Cut(apiKey, ".")
	if !ok || keyID == "" || secret == "" {
		return "", ErrNotAuthenticated
	}

	userID, secretHash, found, err := r.keys.Lookup(ctx, keyID)
	if err != nil {
		return "", fmt.Errorf("lookup api key: %w", err)
	}
	if !found {
		return "", ErrNotAuthenticated
	}

	if bcrypt.CompareHashAndPassword([]byte(secretHash), []byte(secret)) != nil {
		return "", ErrNotAuthenticated
	}

	return userID, nil
}

// HashSecret hashes an API key secret for storage.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hash), nil
}
