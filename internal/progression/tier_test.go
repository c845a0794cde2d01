package progression_test

import (
	"errors"
	"testing"

	"github.com/sinavyolu/lgs-backend/internal/progression"
)

func TestParseTier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    progression.Tier
		wantErr bool
	}{
		{"easy", "easy", progression.TierEasy, false},
		{"medium", "medium", progression.TierMedium, false},
		{"hard", "hard", progression.TierHard, false},
		{"exam", "exam", progression.TierExam, false},
		{"unit final", "unit-final", progression.TierUnitFinal, false},
		{"empty", "", "", true},
		{"unknown", "expert", "", true},
		{"case sensitive", "Easy", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := progression.ParseTier(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, progression.ErrInvalidTier) {
					t.Errorf("ParseTier(%q) error = %v, want ErrInvalidTier", tt.input, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseTier(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestTierOrder(t *testing.T) {
	want := []progression.Tier{
		progression.TierEasy,
		progression.TierMedium,
		progression.TierHard,
		progression.TierExam,
		progression.TierUnitFinal,
	}
	if len(progression.TierOrder) != len(want) {
		t.Fatalf("TierOrder length = %d, want %d", len(progression.TierOrder), len(want))
	}
	for i, tier := range want {
		if progression.TierOrder[i] != tier {
			t.Errorf("TierOrder[%d] = %s, want %s", i, progression.TierOrder[i], tier)
		}
	}
}
