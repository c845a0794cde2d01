// Package progression implements the stage progression and unlock state
// machine: per-(user, unit) completion counters over five difficulty tiers,
// the stage status evaluator, unit completion rules, the result submission
// workflow, and cross-unit unlock propagation.
package progression

import (
	"errors"
	"fmt"
)

// Tier is a practice difficulty level within a unit.
type Tier string

const (
	TierEasy      Tier = "easy"
	TierMedium    Tier = "medium"
	TierHard      Tier = "hard"
	TierExam      Tier = "exam"
	TierUnitFinal Tier = "unit-final"
)

// TierOrder is the fixed progression order. The unit-final tier sits at the
// end but is not part of the linear chain: it is always available and acts
// as a whole-unit shortcut.
var TierOrder = []Tier{TierEasy, TierMedium, TierHard, TierExam, TierUnitFinal}

// ErrInvalidTier is returned when a caller supplies a tier outside the
// five-value enumeration.
var ErrInvalidTier = errors.New("invalid tier")

// ParseTier validates a tier string from an external caller.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierEasy, TierMedium, TierHard, TierExam, TierUnitFinal:
		return Tier(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTier, s)
}

// Valid reports whether t is one of the five enumerated tiers.
func (t Tier) Valid() bool {
	_, err := ParseTier(string(t))
	return err == nil
}
