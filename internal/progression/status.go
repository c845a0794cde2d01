package progression

// StageStatus is what the UI needs to render one tier of a unit: the lock
// icon, the progress dots, and the completion tick.
type StageStatus struct {
	Tier        Tier `json:"tier"`
	Completions int  `json:"completions"`
	Unlocked    bool `json:"unlocked"`
	Complete    bool `json:"complete"`
	Mastered    bool `json:"mastered"`
}

// EvaluateStage computes the status of a single tier from a progress record.
// Pure; a zero record degrades gracefully to "nothing done yet".
//
// Easy is always unlocked. Medium and hard unlock when the previous tier is
// mastered. Exam and unit-final are always unlocked: the mock-exam tier is
// exploratory and the final test is the whole-unit shortcut, neither is
// gated behind mastery.
func EvaluateStage(rec Record, tier Tier) (StageStatus, error) {
	st := StageStatus{Tier: tier, Completions: rec.Completions(tier)}

	switch tier {
	case TierEasy:
		st.Unlocked = true
		st.Complete = rec.EasyCompletions >= 1
		st.Mastered = rec.EasyCompletions >= RequiredCompletions
	case TierMedium:
		st.Unlocked = rec.EasyCompletions >= RequiredCompletions
		st.Complete = rec.MediumCompletions >= 1
		st.Mastered = rec.MediumCompletions >= RequiredCompletions
	case TierHard:
		st.Unlocked = rec.MediumCompletions >= RequiredCompletions
		st.Complete = rec.HardCompletions >= 1
		st.Mastered = rec.HardCompletions >= RequiredCompletions
	case TierExam:
		st.Unlocked = true
		st.Complete = rec.ExamCompleted
		st.Mastered = rec.ExamCompleted
	case TierUnitFinal:
		st.Unlocked = true
		st.Complete = rec.UnitFinalCompleted
		st.Mastered = rec.UnitFinalCompleted
	default:
		return StageStatus{}, ErrInvalidTier
	}

	return st, nil
}

// NextStage returns the first tier in order that is not yet satisfied:
// mastery for the linear tiers, the pass flag for exam and unit-final.
// ok is false once every tier is satisfied. Used for UI highlighting only;
// IsUnitComplete is the authoritative completion check.
func NextStage(rec Record) (next Tier, ok bool) {
	for _, tier := range TierOrder {
		if !tierSatisfied(rec, tier) {
			return tier, true
		}
	}
	return "", false
}

func tierSatisfied(rec Record, tier Tier) bool {
	switch tier {
	case TierExam:
		return rec.ExamCompleted
	case TierUnitFinal:
		return rec.UnitFinalCompleted
	default:
		return rec.Completions(tier) >= RequiredCompletions
	}
}

// IsUnitComplete reports whether the unit is fully finished, via either
// path: a passed final test alone suffices, otherwise all three linear
// tiers must be mastered and the exam passed. The dual path lets a
// confident learner skip the grind with one comprehensive test.
func IsUnitComplete(rec Record) bool {
	if rec.UnitFinalCompleted {
		return true
	}
	return exhaustiveComplete(rec)
}

// exhaustiveComplete is the legacy four-tier rule, also used to recompute
// the stored Completed snapshot on submission. It never looks at
// UnitFinalCompleted.
func exhaustiveComplete(rec Record) bool {
	return rec.EasyCompletions >= RequiredCompletions &&
		rec.MediumCompletions >= RequiredCompletions &&
		rec.HardCompletions >= RequiredCompletions &&
		rec.ExamCompleted
}
