package progression

import "time"

// RequiredCompletions is the number of perfect-score attempts that masters
// an easy/medium/hard tier. The cap is enforced inside the store's atomic
// update so racing submissions can never push a counter past it.
const RequiredCompletions = 3

// Record is the per-(user, unit) progress state. A learner with no attempts
// yet is represented by an explicit zero-valued record from NewRecord, not
// by a nil pointer.
type Record struct {
	UnitID             string    `json:"unit_id"`
	EasyCompletions    int       `json:"easy_completions"`
	MediumCompletions  int       `json:"medium_completions"`
	HardCompletions    int       `json:"hard_completions"`
	ExamCompleted      bool      `json:"exam_completed"`
	UnitFinalCompleted bool      `json:"unit_final_completed"`
	BestScore          int       `json:"best_score"`
	AttemptsCount      int       `json:"attempts_count"`

	// Completed is the legacy snapshot recomputed on every submission from
	// the four linear tier states only. It deliberately ignores
	// UnitFinalCompleted, so it can disagree with IsUnitComplete after a
	// passed final test. Readers that want the authoritative answer must
	// call IsUnitComplete.
	Completed bool `json:"completed"`

	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// NewRecord returns the explicit "nothing done yet" state for a unit.
func NewRecord(unitID string) Record {
	return Record{UnitID: unitID}
}

// Completions returns the perfect-attempt counter for a linear tier. The
// binary exam and unit-final tiers report 1 when their flag is set.
func (r Record) Completions(tier Tier) int {
	switch tier {
	case TierEasy:
		return r.EasyCompletions
	case TierMedium:
		return r.MediumCompletions
	case TierHard:
		return r.HardCompletions
	case TierExam:
		if r.ExamCompleted {
			return 1
		}
	case TierUnitFinal:
		if r.UnitFinalCompleted {
			return 1
		}
	}
	return 0
}
