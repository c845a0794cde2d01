package progression

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrNotAuthenticated is returned when an operation is attempted without a
// resolved user identity.
var ErrNotAuthenticated = errors.New("not authenticated")

// XPSink accumulates experience points and stamps learner activity. Backed
// by the profile store; used downstream for streaks and leaderboards.
type XPSink interface {
	AddXP(ctx context.Context, userID string, amount int) error
	TouchLastActivity(ctx context.Context, userID string, day time.Time) error
}

// Notifier signals that cached progress/profile views for a learner are
// stale after a successful submission. The UI subscribes and re-fetches.
type Notifier interface {
	ProgressStale(ctx context.Context, userID, unitID string) error
}

// NopNotifier ignores staleness signals.
type NopNotifier struct{}

func (NopNotifier) ProgressStale(context.Context, string, string) error {
	return nil
}

// ServiceConfig holds dependencies for the progression service.
type ServiceConfig struct {
	Store    ProgressStore
	Attempts AttemptLog
	Profile  XPSink
	Notifier Notifier
	Now      func() time.Time // defaults to time.Now
}

// Service runs the result submission workflow.
type Service struct {
	store    ProgressStore
	attempts AttemptLog
	profile  XPSink
	notifier Notifier
	now      func() time.Time
}

// NewService creates a progression service.
func NewService(cfg ServiceConfig) *Service {
	store := cfg.Store
	if store == nil {
		store = NewMemoryStore()
	}
	attempts := cfg.Attempts
	if attempts == nil {
		attempts = NopAttemptLog{}
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:    store,
		attempts: attempts,
		profile:  cfg.Profile,
		notifier: notifier,
		now:      now,
	}
}

// SubmitResult records a finished quiz: the attempt row is appended
// unconditionally, the progress record is updated atomically with capped
// counters, XP is granted, and a staleness signal is emitted.
//
// Any failure before the staleness signal aborts the operation and
// surfaces the error unchanged; the caller retries. There is no
// compensating delete of the attempt row if a later step fails — the audit
// trail is informational, not authoritative. Re-submitting the same
// perfect result is safe because the counter update is capped.
func (s *Service) SubmitResult(ctx context.Context, userID, unitID string, tier Tier, score, total, xpEarned int) (Record, error) {
	if userID == "" {
		return Record{}, ErrNotAuthenticated
	}
	if unitID == "" {
		return Record{}, fmt.Errorf("unit_id is required")
	}
	if !tier.Valid() {
		return Record{}, fmt.Errorf("submit result: %w: %q", ErrInvalidTier, tier)
	}
	if total <= 0 || score < 0 || score > total {
		return Record{}, fmt.Errorf("submit result: score %d/%d out of range", score, total)
	}

	if err := s.attempts.Append(ctx, Attempt{
		UserID:    userID,
		UnitID:    unitID,
		Tier:      tier,
		Score:     score,
		Total:     total,
		XPEarned:  xpEarned,
		CreatedAt: s.now(),
	}); err != nil {
		return Record{}, fmt.Errorf("record attempt: %w", err)
	}

	rec, err := s.store.Apply(ctx, userID, Submission{
		UnitID: unitID,
		Tier:   tier,
		Score:  score,
		Total:  total,
	})
	if err != nil {
		return Record{}, fmt.Errorf("update progress: %w", err)
	}

	if s.profile != nil {
		if err := s.profile.AddXP(ctx, userID, xpEarned); err != nil {
			return Record{}, fmt.Errorf("grant xp: %w", err)
		}
		if err := s.profile.TouchLastActivity(ctx, userID, s.now()); err != nil {
			return Record{}, fmt.Errorf("stamp activity: %w", err)
		}
	}

	// Best effort: a missed invalidation only delays a re-fetch.
	if err := s.notifier.ProgressStale(ctx, userID, unitID); err != nil {
		slog.Warn("progress staleness signal failed",
			"user_id", userID,
			"unit_id", unitID,
			"error", err,
		)
	}

	slog.Info("result submitted",
		"user_id", userID,
		"unit_id", unitID,
		"tier", string(tier),
		"score", score,
		"total", total,
		"perfect", score == total,
		"attempts", rec.AttemptsCount,
	)

	return rec, nil
}

// Progress returns the learner's record for one unit, degrading to the
// zero record when no attempts exist.
func (s *Service) Progress(ctx context.Context, userID, unitID string) (Record, error) {
	if userID == "" {
		return Record{}, ErrNotAuthenticated
	}
	rec, _, err := s.store.Get(ctx, userID, unitID)
	if err != nil {
		return Record{}, fmt.Errorf("read progress: %w", err)
	}
	return rec, nil
}

// ProgressMap returns all of the learner's records keyed by unit, for
// unlock propagation across the unit sequence.
func (s *Service) ProgressMap(ctx context.Context, userID string) (map[string]Record, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	recs, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read progress map: %w", err)
	}
	m := make(map[string]Record, len(recs))
	for _, rec := range recs {
		m[rec.UnitID] = rec
	}
	return m, nil
}
