// Package profile tracks the learner profile: cumulative experience
// points, the last-activity stamp that streak tracking reads, and the
// premium entitlement flag that disables sequential unit gating.
package profile

import (
	"context"
	"sync"
	"time"
)

// Profile is the per-learner gamification state.
type Profile struct {
	UserID       string    `json:"user_id"`
	XP           int       `json:"xp"`
	Premium      bool      `json:"premium"`
	LastActivity time.Time `json:"last_activity,omitempty"`
}

// Store persists learner profiles. AddXP and TouchLastActivity create the
// profile lazily on first use.
type Store interface {
	Get(ctx context.Context, userID string) (Profile, error)
	AddXP(ctx context.Context, userID string, amount int) error
	TouchLastActivity(ctx context.Context, userID string, day time.Time) error
	IsPremium(ctx context.Context, userID string) (bool, error)
	SetPremium(ctx context.Context, userID string, premium bool) error
}

// MemoryStore is an in-memory Store for tests and development.
type MemoryStore struct {
	profiles map[string]Profile
	mu       sync.RWMutex
}

// NewMemoryStore creates an empty in-memory profile store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]Profile),
	}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return Profile{UserID: userID}, nil
	}
	return p, nil
}

func (s *MemoryStore) AddXP(_ context.Context, userID string, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.profiles[userID]
	p.UserID = userID
	p.XP += amount
	s.profiles[userID] = p
	return nil
}

func (s *MemoryStore) TouchLastActivity(_ context.Context, userID string, day time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.profiles[userID]
	p.UserID = userID
	p.LastActivity = day
	s.profiles[userID] = p
	return nil
}

func (s *MemoryStore) IsPremium(_ context.Context, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profiles[userID].Premium, nil
}

func (s *MemoryStore) SetPremium(_ context.Context, userID string, premium bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.profiles[userID]
	p.UserID = userID
	p.Premium = premium
	s.profiles[userID] = p
	return nil
}
