// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/effects"
	"github.com/vedantadhau820-alt/IdentityOS/internal/core/scoring"
	"github.com/vedantadhau820-alt/IdentityOS/internal/metrics"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/secondary"
)

// ErrWriteNotConfirmed is returned when a completion's store write failed.
// Nothing after the write has been applied.
var ErrWriteNotConfirmed = errors.New("write not confirmed")

// ExecutionResult collects what the executed effects changed.
type ExecutionResult struct {
	Locked        bool
	NewBest       bool
	Courage       int
	CourageGained bool
	Streak        *primary.Streak
	Weekly        *primary.WeeklyRating
}

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, userID string, effs []effects.Effect) (*ExecutionResult, error)
}

// DefaultEffectExecutor implements EffectExecutor with real I/O.
type DefaultEffectExecutor struct {
	records *RecordStore
	locks   *LockBoard
	state   *LocalState
	events  secondary.ActivityEventRepository
	stats   primary.StatsService
	cal     *Calendar
	logger  *slog.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(
	records *RecordStore,
	locks *LockBoard,
	state *LocalState,
	events secondary.ActivityEventRepository,
	stats primary.StatsService,
	cal *Calendar,
	logger *slog.Logger,
) *DefaultEffectExecutor {
	return &DefaultEffectExecutor{
		records: records,
		locks:   locks,
		state:   state,
		events:  events,
		stats:   stats,
		cal:     cal,
		logger:  logger,
	}
}

// Execute processes a slice of effects, executing each in sequence.
// It stops at the first failure, so nothing planned after a failed write runs.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, userID string, effs []effects.Effect) (*ExecutionResult, error) {
	res := &ExecutionResult{}
	for _, eff := range effs {
		if err := e.executeOne(ctx, userID, eff, res); err != nil {
			return res, fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return res, nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, userID string, eff effects.Effect, res *ExecutionResult) error {
	switch typed := eff.(type) {
	case effects.MergeRecordEffect:
		if err := e.records.Merge(ctx, userID, typed.DateKey, typed.Patch); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteNotConfirmed, err)
		}
		return nil
	case effects.LockEffect:
		e.locks.Lock(typed.DateKey, typed.Activity)
		res.Locked = true
		return nil
	case effects.CourageEffect:
		st := e.state.Update(ctx, func(st *secondary.LocalStateRecord) {
			st.Courage += typed.Delta
		})
		res.Courage = st.Courage
		res.CourageGained = true
		metrics.CourageTotal.Set(float64(st.Courage))
		return nil
	case effects.BestEffect:
		e.state.Update(ctx, func(st *secondary.LocalStateRecord) {
			best, known := st.PersonalBests[string(typed.Activity)]
			if scoring.ImprovesBest(best, known, typed.Score) {
				st.PersonalBests[string(typed.Activity)] = typed.Score
				res.NewBest = true
			}
		})
		return nil
	case effects.EventEffect:
		e.executeEvent(ctx, userID, typed)
		return nil
	case effects.ClearWorkoutEffect:
		e.state.Update(ctx, func(st *secondary.LocalStateRecord) {
			st.WorkoutStartedAt = ""
		})
		return nil
	case effects.RefreshEffect:
		return e.executeRefresh(ctx, typed, res)
	case effects.LogEffect:
		e.logger.Log(ctx, logLevel(typed.Level), typed.Message, fieldsToArgs(typed.Fields)...)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

// executeEvent appends to the audit trail. A failure is logged and does not fail the completion.
func (e *DefaultEffectExecutor) executeEvent(ctx context.Context, userID string, eff effects.EventEffect) {
	event := &secondary.ActivityEventRecord{
		UserID:     userID,
		DateKey:    eff.DateKey,
		Activity:   string(eff.Activity),
		Score:      eff.Score,
		RecordedAt: e.cal.Now().UTC().Format(time.RFC3339),
	}
	if err := e.events.Create(ctx, event); err != nil {
		e.logger.Warn("failed to record activity event", "activity", eff.Activity, "date", eff.DateKey, "error", err)
	}
}

func (e *DefaultEffectExecutor) executeRefresh(ctx context.Context, eff effects.RefreshEffect, res *ExecutionResult) error {
	now := e.cal.Now()
	if eff.Streak {
		streak, err := e.stats.ComputeStreak(ctx, now)
		if err != nil {
			return err
		}
		res.Streak = streak
	}
	if eff.Weekly {
		weekly, err := e.stats.ComputeWeeklyWorkoutRating(ctx, now)
		if err != nil {
			return err
		}
		res.Weekly = weekly
	}
	return nil
}

func logLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func fieldsToArgs(fields map[string]any) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
