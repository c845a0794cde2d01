package progression

import (
	"context"
	"sync"
)

// Submission is one graded quiz result to fold into a progress record.
type Submission struct {
	UnitID string
	Tier   Tier
	Score  int
	Total  int
}

// Perfect reports whether the attempt counts as a tier completion. Only a
// full score does: this is a strict design choice, not a threshold.
// Partial credit never advances counters.
func (s Submission) Perfect() bool {
	return s.Score == s.Total
}

// ProgressStore persists per-(user, unit) progress records.
//
// Apply must fold a submission into the record atomically with respect to
// other submissions for the same (user, unit): counter bumps are
// increment-then-cap, boolean tiers are monotone, and best score is a
// running maximum. Two racing submissions may lose an increment at the cap
// boundary but must never over-count past it.
type ProgressStore interface {
	// Get returns the record, or found=false if the learner has no
	// attempts for the unit yet.
	Get(ctx context.Context, userID, unitID string) (rec Record, found bool, err error)
	// List returns every record the learner has, for building the
	// cross-unit unlock map.
	List(ctx context.Context, userID string) ([]Record, error)
	// Apply upserts the record with the submission folded in and returns
	// the post-update state.
	Apply(ctx context.Context, userID string, sub Submission) (Record, error)
}

// applySubmission is the reference update rule. The Postgres store encodes
// the same rule server-side in a single upsert; MemoryStore runs it under
// a lock. Keep the two in sync.
func applySubmission(rec Record, sub Submission) Record {
	rec.UnitID = sub.UnitID
	rec.AttemptsCount++
	if sub.Score > rec.BestScore {
		rec.BestScore = sub.Score
	}
	if sub.Perfect() {
		switch sub.Tier {
		case TierEasy:
			rec.EasyCompletions = capped(rec.EasyCompletions + 1)
		case TierMedium:
			rec.MediumCompletions = capped(rec.MediumCompletions + 1)
		case TierHard:
			rec.HardCompletions = capped(rec.HardCompletions + 1)
		case TierExam:
			rec.ExamCompleted = true
		case TierUnitFinal:
			rec.UnitFinalCompleted = true
		}
	}
	// Legacy snapshot: exhaustive rule only, never the final-test flag.
	rec.Completed = exhaustiveComplete(rec)
	return rec
}

func capped(n int) int {
	if n > RequiredCompletions {
		return RequiredCompletions
	}
	return n
}

// MemoryStore is an in-memory ProgressStore for tests and single-process
// development runs.
type MemoryStore struct {
	records map[string]map[string]Record // userID -> unitID -> record
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory progress store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]map[string]Record),
	}
}

func (s *MemoryStore) Get(_ context.Context, userID, unitID string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[userID][unitID]
	if !ok {
		return NewRecord(unitID), false, nil
	}
	return rec, true, nil
}

func (s *MemoryStore) List(_ context.Context, userID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]Record, 0, len(s.records[userID]))
	for _, rec := range s.records[userID] {
		recs = append(recs, rec)
	}
	return recs, nil
}

func (s *MemoryStore) Apply(_ context.Context, userID string, sub Submission) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byUnit, ok := s.records[userID]
	if !ok {
		byUnit = make(map[string]Record)
		s.records[userID] = byUnit
	}

	rec, ok := byUnit[sub.UnitID]
	if !ok {
		rec = NewRecord(sub.UnitID)
	}
	rec = applySubmission(rec, sub)
	byUnit[sub.UnitID] = rec
	return rec, nil
}
