package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/record"
	"github.com/vedantadhau820-alt/IdentityOS/internal/core/session"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ctxutil"
	"github.com/vedantadhau820-alt/IdentityOS/internal/metrics"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
)

// Tracker bundles what every activity service needs to complete an activity.
type Tracker struct {
	Users    primary.IdentityService
	Records  *RecordStore
	Locks    *LockBoard
	Executor EffectExecutor
	Calendar *Calendar
	Logger   *slog.Logger
}

// checkCompletable rejects an activity that is locked or already recorded for the day.
// An unreadable record does not block the completion.
func (t *Tracker) checkCompletable(ctx context.Context, userID, dateKey string, a record.Activity) error {
	guardCtx := session.CompletionContext{
		Activity: a,
		DateKey:  dateKey,
		Locked:   t.Locks.IsLocked(dateKey, a),
	}
	if !guardCtx.Locked {
		l := t.Records.Read(ctx, userID, dateKey)
		guardCtx.Recorded = l.Exists() && l.Record.Has(a)
		if guardCtx.Recorded {
			t.Locks.Lock(dateKey, a)
		}
	}
	if result := session.CanComplete(guardCtx); !result.Allowed {
		return result.Error()
	}
	return nil
}

// complete executes a completion plan and reports the write status.
// On failure the control stays unlocked and the returned error wraps ErrWriteNotConfirmed.
func (t *Tracker) complete(ctx context.Context, userID string, plan session.CompletionPlan) (*primary.CompletionResponse, error) {
	t.Locks.SetStatus(plan.DateKey, plan.Activity, primary.WritePending)

	res, err := t.Executor.Execute(ctx, userID, plan.Effects())
	if err != nil {
		t.Locks.SetStatus(plan.DateKey, plan.Activity, primary.WriteFailed)
		metrics.Completions.WithLabelValues(string(plan.Activity), string(primary.WriteFailed)).Inc()
		t.Logger.Error("completion not confirmed", "activity", plan.Activity, "date", plan.DateKey,
			"request_id", ctxutil.RequestIDFromContext(ctx), "error", err)
		return nil, fmt.Errorf("failed to complete %s: %w", plan.Activity, err)
	}

	t.Locks.SetStatus(plan.DateKey, plan.Activity, primary.WriteConfirmed)
	metrics.Completions.WithLabelValues(string(plan.Activity), string(primary.WriteConfirmed)).Inc()
	t.Logger.Info("completion confirmed", "activity", plan.Activity, "date", plan.DateKey, "score", plan.Score,
		"request_id", ctxutil.RequestIDFromContext(ctx))

	return &primary.CompletionResponse{
		Activity:      string(plan.Activity),
		DateKey:       plan.DateKey,
		Score:         plan.Score,
		HasScore:      plan.HasScore,
		Status:        primary.WriteConfirmed,
		Locked:        res.Locked,
		NewBest:       res.NewBest,
		Courage:       res.Courage,
		CourageGained: res.CourageGained,
		Streak:        res.Streak,
		Weekly:        res.Weekly,
	}, nil
}

func (t *Tracker) userID(ctx context.Context) (string, error) {
	id, err := t.Users.GetOrCreateUserID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get user id: %w", err)
	}
	return id, nil
}
