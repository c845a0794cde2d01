package progression

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed ProgressStore.
//
// The whole submission update runs as one INSERT ... ON CONFLICT DO UPDATE:
// LEAST caps the counter bump, GREATEST keeps the best score monotone, and
// OR keeps the boolean tiers monotone, all evaluated server-side. Racing
// submissions for the same (user, unit) therefore cannot over-count past
// the cap or regress a flag, with no read-modify-write round trip.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed progress store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

const progressColumns = `unit_id, easy_completions, medium_completions, hard_completions,
	 exam_completed, unit_final_completed, best_score, attempts_count, completed, updated_at`

func (s *PostgresStore) Get(ctx context.Context, userID, unitID string) (Record, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	row := s.pool.QueryRow(ctx,
		`SELECT `+progressColumns+`
		 FROM unit_progress
		 WHERE user_id = $1 AND unit_id = $2`,
		userID, unitID,
	)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NewRecord(unitID), false, nil
		}
		return Record{}, false, fmt.Errorf("get progress: %w", err)
	}
	return rec, true, nil
}

func (s *PostgresStore) List(ctx context.Context, userID string) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT `+progressColumns+`
		 FROM unit_progress
		 WHERE user_id = $1
		 ORDER BY unit_id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}

	return recs, nil
}

func (s *PostgresStore) Apply(ctx context.Context, userID string, sub Submission) (Record, error) {
	if userID == "" {
		return Record{}, fmt.Errorf("user_id is required")
	}
	if sub.UnitID == "" {
		return Record{}, fmt.Errorf("unit_id is required")
	}
	if !sub.Tier.Valid() {
		return Record{}, fmt.Errorf("apply submission: %w: %q", ErrInvalidTier, sub.Tier)
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	// Per-tier deltas for this attempt. The insert branch seeds a fresh
	// record from them; the conflict branch folds them in server-side.
	var easy, medium, hard int
	var exam, unitFinal bool
	if sub.Perfect() {
		switch sub.Tier {
		case TierEasy:
			easy = 1
		case TierMedium:
			medium = 1
		case TierHard:
			hard = 1
		case TierExam:
			exam = true
		case TierUnitFinal:
			unitFinal = true
		}
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO unit_progress
		   (user_id, unit_id, easy_completions, medium_completions, hard_completions,
		    exam_completed, unit_final_completed, best_score, attempts_count, completed, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, false, NOW())
		 ON CONFLICT (user_id, unit_id) DO UPDATE SET
		   easy_completions     = LEAST(unit_progress.easy_completions + EXCLUDED.easy_completions, $9),
		   medium_completions   = LEAST(unit_progress.medium_completions + EXCLUDED.medium_completions, $9),
		   hard_completions     = LEAST(unit_progress.hard_completions + EXCLUDED.hard_completions, $9),
		   exam_completed       = unit_progress.exam_completed OR EXCLUDED.exam_completed,
		   unit_final_completed = unit_progress.unit_final_completed OR EXCLUDED.unit_final_completed,
		   best_score           = GREATEST(unit_progress.best_score, EXCLUDED.best_score),
		   attempts_count       = unit_progress.attempts_count + 1,
		   completed = (
		     LEAST(unit_progress.easy_completions + EXCLUDED.easy_completions, $9) >= $9
		     AND LEAST(unit_progress.medium_completions + EXCLUDED.medium_completions, $9) >= $9
		     AND LEAST(unit_progress.hard_completions + EXCLUDED.hard_completions, $9) >= $9
		     AND (unit_progress.exam_completed OR EXCLUDED.exam_completed)
		   ),
		   updated_at = NOW()
		 RETURNING `+progressColumns,
		userID,
		sub.UnitID,
		easy,
		medium,
		hard,
		exam,
		unitFinal,
		sub.Score,
		RequiredCompletions,
	)

	rec, err := scanRecord(row)
	if err != nil {
		return Record{}, fmt.Errorf("apply submission: %w", err)
	}
	return rec, nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(
		&rec.UnitID,
		&rec.EasyCompletions,
		&rec.MediumCompletions,
		&rec.HardCompletions,
		&rec.ExamCompleted,
		&rec.UnitFinalCompleted,
		&rec.BestScore,
		&rec.AttemptsCount,
		&rec.Completed,
		&rec.UpdatedAt,
	)
	return rec, err
}
