package app

import (
	"context"
	"sync"
	"time"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/record"
	"github.com/vedantadhau820-alt/IdentityOS/internal/core/scoring"
	"github.com/vedantadhau820-alt/IdentityOS/internal/core/session"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/secondary"
)

// WorkoutServiceImpl implements the WorkoutService interface.
// The running timer lives in local state so a later process can finish it.
type WorkoutServiceImpl struct {
	mu      sync.Mutex
	tracker *Tracker
	state   *LocalState
}

// NewWorkoutService creates a new WorkoutService with injected dependencies.
func NewWorkoutService(tracker *Tracker, state *LocalState) *WorkoutServiceImpl {
	return &WorkoutServiceImpl{
		tracker: tracker,
		state:   state,
	}
}

// StartWorkout records the start timestamp.
func (s *WorkoutServiceImpl) StartWorkout(ctx context.Context) (*primary.WorkoutStatus, error) {
	userID, err := s.tracker.userID(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.tracker.Calendar.Now()
	dateKey := s.tracker.Calendar.Today()

	if err := s.tracker.checkCompletable(ctx, userID, dateKey, record.ActivityWorkout); err != nil {
		return nil, err
	}

	sess := s.load(ctx)
	if result := sess.Start(now); !result.Allowed {
		return nil, result.Error()
	}

	s.state.Update(ctx, func(st *secondary.LocalStateRecord) {
		st.WorkoutStartedAt = sess.StartedAt().UTC().Format(time.RFC3339Nano)
	})

	return workoutStatus(dateKey, sess, now), nil
}

// GetWorkoutStatus returns the running timer, if any.
func (s *WorkoutServiceImpl) GetWorkoutStatus(ctx context.Context) (*primary.WorkoutStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.tracker.Calendar.Now()
	return workoutStatus(s.tracker.Calendar.Today(), s.load(ctx), now), nil
}

// FinishWorkout scores and records the running workout.
func (s *WorkoutServiceImpl) FinishWorkout(ctx context.Context, req primary.FinishWorkoutRequest) (*primary.CompletionResponse, error) {
	userID, err := s.tracker.userID(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.tracker.Calendar.Now()
	dateKey := s.tracker.Calendar.Today()

	// 1. Session guard
	sess := s.load(ctx)
	if result := sess.CanFinish(); !result.Allowed {
		return nil, result.Error()
	}

	// 2. Once per day
	if err := s.tracker.checkCompletable(ctx, userID, dateKey, record.ActivityWorkout); err != nil {
		return nil, err
	}

	// 3. Plan and execute
	minutes := scoring.WorkoutDuration(sess.StartedAt(), now)
	plan := session.PlanWorkoutCompletion(dateKey, session.NormalizeWorkoutType(req.Type), minutes, now)
	resp, err := s.tracker.complete(ctx, userID, plan)
	if err != nil {
		return nil, err
	}

	resp.WorkoutMinutes = minutes
	return resp, nil
}

// load rebuilds the session from the persisted start timestamp.
func (s *WorkoutServiceImpl) load(ctx context.Context) *session.WorkoutSession {
	raw := s.state.Snapshot(ctx).WorkoutStartedAt
	if raw == "" {
		return session.NewWorkoutSession()
	}
	startedAt, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		s.tracker.Logger.Warn("discarding malformed workout start", "value", raw, "error", err)
		s.state.Update(ctx, func(st *secondary.LocalStateRecord) { st.WorkoutStartedAt = "" })
		return session.NewWorkoutSession()
	}
	return session.ResumeWorkoutSession(startedAt)
}

func workoutStatus(dateKey string, sess *session.WorkoutSession, now time.Time) *primary.WorkoutStatus {
	elapsed := sess.Elapsed(now)
	status := &primary.WorkoutStatus{
		DateKey: dateKey,
		State:   string(sess.State()),
		Elapsed: elapsed,
		Display: session.ElapsedDisplay(elapsed),
	}
	if sess.State() == session.WorkoutRunning {
		status.StartedAt = sess.StartedAt()
	}
	return status
}

// Ensure WorkoutServiceImpl implements the interface
var _ primary.WorkoutService = (*WorkoutServiceImpl)(nil)
