package progression

// UnlockMap decides which units in an ordered sequence are accessible.
// The first unit is always open; each later unit opens once the previous
// one is complete. Premium entitlement disables the gate entirely.
//
// records may be missing entries for units the learner never attempted.
func UnlockMap(unitIDs []string, records map[string]Record, premium bool) map[string]bool {
	open := make(map[string]bool, len(unitIDs))
	for i, id := range unitIDs {
		if premium || i == 0 {
			open[id] = true
			continue
		}
		prev := unitIDs[i-1]
		open[id] = IsUnitComplete(records[prev])
	}
	return open
}

// UnitStatuses evaluates all five tiers of a unit. accessible is the
// cross-unit gate from UnlockMap: it masks only the easy tier's unlock
// flag. Exam and unit-final stay open even on a sequentially locked unit;
// medium and hard are locked transitively because easy mastery is
// unreachable while easy is locked.
func UnitStatuses(rec Record, accessible bool) []StageStatus {
	statuses := make([]StageStatus, 0, len(TierOrder))
	for _, tier := range TierOrder {
		st, _ := EvaluateStage(rec, tier)
		if tier == TierEasy && !accessible {
			st.Unlocked = false
		}
		statuses = append(statuses, st)
	}
	return statuses
}
