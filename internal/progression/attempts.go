package progression

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Attempt is one submitted quiz result, recorded unconditionally as an
// audit trail. Rows are append-only and never read back by the progression
// algorithms.
type Attempt struct {
	UserID    string    `json:"user_id"`
	UnitID    string    `json:"unit_id"`
	Tier      Tier      `json:"tier"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	XPEarned  int       `json:"xp_earned"`
	CreatedAt time.Time `json:"created_at"`
}

// AttemptLog records submitted attempts.
type AttemptLog interface {
	Append(ctx context.Context, att Attempt) error
}

// NopAttemptLog discards all attempts.
type NopAttemptLog struct{}

func (NopAttemptLog) Append(context.Context, Attempt) error {
	return nil
}

// MemoryAttemptLog keeps attempts in memory for tests.
type MemoryAttemptLog struct {
	mu       sync.Mutex
	attempts []Attempt
}

func NewMemoryAttemptLog() *MemoryAttemptLog {
	return &MemoryAttemptLog{
		attempts: []Attempt{},
	}
}

func (l *MemoryAttemptLog) Append(_ context.Context, att Attempt) error {
	if att.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if att.CreatedAt.IsZero() {
		att.CreatedAt = time.Now()
	}

	l.mu.Lock()
	l.attempts = append(l.attempts, att)
	l.mu.Unlock()

	return nil
}

func (l *MemoryAttemptLog) Attempts() []Attempt {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Attempt{}, l.attempts...)
}

// PostgresAttemptLog inserts attempts into the quiz_attempts table.
type PostgresAttemptLog struct {
	pool *pgxpool.Pool
}

func NewPostgresAttemptLog(pool *pgxpool.Pool) *PostgresAttemptLog {
	return &PostgresAttemptLog{pool: pool}
}

func (l *PostgresAttemptLog) Append(ctx context.Context, att Attempt) error {
	if l == nil || l.pool == nil {
		return fmt.Errorf("attempt log pool is nil")
	}
	if att.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if att.UnitID == "" {
		return fmt.Errorf("unit_id is required")
	}

	createdAt := att.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := l.pool.Exec(ctx,
		`INSERT INTO quiz_attempts (user_id, unit_id, tier, score, total_questions, xp_earned, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		att.UserID,
		att.UnitID,
		string(att.Tier),
		att.Score,
		att.Total,
		att.XPEarned,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}

	return nil
}
