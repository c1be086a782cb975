package session

import (
	"errors"
	"testing"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/record"
)

func TestGuardResult_Error(t *testing.T) {
	if err := allow().Error(); err != nil {
		t.Errorf("allowed result should have no error, got %v", err)
	}

	err := CanComplete(CompletionContext{Activity: record.ActivityWorkout, DateKey: "2026-10-19", Recorded: true}).Error()
	var gerr *GuardError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *GuardError, got %T", err)
	}
	if gerr.Reason != "workout already completed for 2026-10-19" {
		t.Errorf("unexpected reason %q", gerr.Reason)
	}
}
