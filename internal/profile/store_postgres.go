package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed profile store. XP accumulation is
// a single server-side increment so concurrent grants never lose updates.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed profile store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Get(ctx context.Context, userID string) (Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var p Profile
	var lastActivity *time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT user_id, xp, premium, last_activity
		 FROM profiles
		 WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.XP, &p.Premium, &lastActivity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{UserID: userID}, nil
		}
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if lastActivity != nil {
		p.LastActivity = *lastActivity
	}

	return p, nil
}

func (s *PostgresStore) AddXP(ctx context.Context, userID string, amount int) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, xp)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET
		   xp = profiles.xp + EXCLUDED.xp`,
		userID, amount,
	)
	if err != nil {
		return fmt.Errorf("add xp: %w", err)
	}
	return nil
}

func (s *PostgresStore) TouchLastActivity(ctx context.Context, userID string, day time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, last_activity)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET
		   last_activity = GREATEST(COALESCE(profiles.last_activity, EXCLUDED.last_activity), EXCLUDED.last_activity)`,
		userID, day,
	)
	if err != nil {
		return fmt.Errorf("touch last activity: %w", err)
	}
	return nil
}

func (s *PostgresStore) IsPremium(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var premium bool
	err := s.pool.QueryRow(ctx,
		`SELECT premium FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&premium)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check entitlement: %w", err)
	}
	return premium, nil
}

func (s *PostgresStore) SetPremium(ctx context.Context, userID string, premium bool) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, premium)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET
		   premium = EXCLUDED.premium`,
		userID, premium,
	)
	if err != nil {
		return fmt.Errorf("set entitlement: %w", err)
	}
	return nil
}
