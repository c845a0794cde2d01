package profile_test

import (
	"testing"
	"time"

	"github.com/sinavyolu/lgs-backend/internal/profile"
)

func TestMemoryStore_XPAccumulates(t *testing.T) {
	store := profile.NewMemoryStore()
	ctx := t.Context()

	for _, amount := range []int{40, 25, 10} {
		if err := store.AddXP(ctx, "learner", amount); err != nil {
			t.Fatalf("AddXP() error = %v", err)
		}
	}

	p, err := store.Get(ctx, "learner")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.XP != 75 {
		t.Errorf("XP = %d, want 75", p.XP)
	}
}

func TestMemoryStore_GetMissingReturnsZeroProfile(t *testing.T) {
	store := profile.NewMemoryStore()

	p, err := store.Get(t.Context(), "nobody")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.UserID != "nobody" || p.XP != 0 || p.Premium {
		t.Errorf("Get() = %+v, want zero profile", p)
	}
}

func TestMemoryStore_TouchLastActivity(t *testing.T) {
	store := profile.NewMemoryStore()
	ctx := t.Context()

	day := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	if err := store.TouchLastActivity(ctx, "learner", day); err != nil {
		t.Fatalf("TouchLastActivity() error = %v", err)
	}

	p, _ := store.Get(ctx, "learner")
	if !p.LastActivity.Equal(day) {
		t.Errorf("LastActivity = %v, want %v", p.LastActivity, day)
	}
}

func TestMemoryStore_Premium(t *testing.T) {
	store := profile.NewMemoryStore()
	ctx := t.Context()

	premium, err := store.IsPremium(ctx, "learner")
	if err != nil {
		t.Fatalf("IsPremium() error = %v", err)
	}
	if premium {
		t.Error("IsPremium() = true for a fresh learner")
	}

	if err := store.SetPremium(ctx, "learner", true); err != nil {
		t.Fatalf("SetPremium() error = %v", err)
	}
	premium, _ = store.IsPremium(ctx, "learner")
	if !premium {
		t.Error("IsPremium() = false after SetPremium(true)")
	}
}
