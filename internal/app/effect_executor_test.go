package app

import (
	"context"
	"errors"
	"testing"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/effects"
	"github.com/vedantadhau820-alt/IdentityOS/internal/core/record"
	"github.com/vedantadhau820-alt/IdentityOS/internal/core/session"
)

type unknownEffect struct{}

func (unknownEffect) EffectType() string { return "unknown" }

func TestEffectExecutor_StopsAtFailedMerge(t *testing.T) {
	h := newHarness(t)
	h.records.mergeErr = errors.New("quota exceeded")

	plan := session.PlanObserverCompletion(h.daysAgo(0))
	_, err := h.tracker.Executor.Execute(context.Background(), testUserID, plan.Effects())

	if !errors.Is(err, ErrWriteNotConfirmed) {
		t.Fatalf("Execute() error = %v, want ErrWriteNotConfirmed", err)
	}
	if h.locks.IsLocked(h.daysAgo(0), record.ActivityObserver) {
		t.Error("lock effect ran after a failed merge")
	}
}

func TestEffectExecutor_EventFailureIsNotFatal(t *testing.T) {
	h := newHarness(t)
	h.events.createErr = errors.New("disk full")

	plan := session.PlanWorkoutCompletion(h.daysAgo(0), "run", 25, testToday)
	res, err := h.tracker.Executor.Execute(context.Background(), testUserID, plan.Effects())

	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if !res.Locked || res.Weekly == nil {
		t.Errorf("result = %+v, want locked with weekly rating", res)
	}
}

func TestEffectExecutor_PersonalBestKeepsMax(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	tests := []struct {
		score    int
		wantBest int
		wantNew  bool
	}{
		{4, 4, true},
		{2, 4, false},
		{6, 6, true},
		{6, 6, false},
	}

	for _, tt := range tests {
		res, err := h.tracker.Executor.Execute(ctx, testUserID, []effects.Effect{
			effects.BestEffect{Activity: record.ActivityWorkout, Score: tt.score},
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if res.NewBest != tt.wantNew {
			t.Errorf("score %d: NewBest = %v, want %v", tt.score, res.NewBest, tt.wantNew)
		}
		if got := h.stateStore.state.PersonalBests["workout"]; got != tt.wantBest {
			t.Errorf("score %d: best = %d, want %d", tt.score, got, tt.wantBest)
		}
	}
}

func TestEffectExecutor_UnknownEffect(t *testing.T) {
	h := newHarness(t)

	_, err := h.tracker.Executor.Execute(context.Background(), testUserID, []effects.Effect{
		effects.LogEffect{Level: "debug", Message: "noop"},
		unknownEffect{},
	})
	if err == nil {
		t.Error("Execute() should reject unknown effects")
	}
}
