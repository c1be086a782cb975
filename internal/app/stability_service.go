package app

import (
	"context"
	"time"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/record"
	"github.com/vedantadhau820-alt/IdentityOS/internal/core/session"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
)

// StabilityServiceImpl implements the StabilityService interface.
type StabilityServiceImpl struct {
	tracker *Tracker
	daily   dailySession[*session.StabilitySession]
}

// NewStabilityService creates a new StabilityService with injected dependencies.
func NewStabilityService(tracker *Tracker) *StabilityServiceImpl {
	return &StabilityServiceImpl{
		tracker: tracker,
		daily:   dailySession[*session.StabilitySession]{fresh: session.NewStabilitySession},
	}
}

// StartStability begins the breathing guide, or opens the reflection form directly.
func (s *StabilityServiceImpl) StartStability(ctx context.Context, req primary.StartStabilityRequest) (*primary.StabilityStatus, error) {
	userID, err := s.tracker.userID(ctx)
	if err != nil {
		return nil, err
	}

	s.daily.mu.Lock()
	defer s.daily.mu.Unlock()

	now := s.tracker.Calendar.Now()
	dateKey := s.tracker.Calendar.Today()
	sess := s.daily.current(dateKey)

	if err := s.tracker.checkCompletable(ctx, userID, dateKey, record.ActivityStability); err != nil {
		return nil, err
	}

	var result session.GuardResult
	if req.SkipBreathing {
		result = sess.SkipBreathing(now)
	} else {
		result = sess.Start(now)
	}
	if !result.Allowed {
		return nil, result.Error()
	}

	return stabilityStatus(dateKey, sess, now), nil
}

// GetStabilityPhase returns the current breathing guide step.
func (s *StabilityServiceImpl) GetStabilityPhase(ctx context.Context) (*primary.StabilityStatus, error) {
	s.daily.mu.Lock()
	defer s.daily.mu.Unlock()

	now := s.tracker.Calendar.Now()
	dateKey := s.tracker.Calendar.Today()
	return stabilityStatus(dateKey, s.daily.current(dateKey), now), nil
}

// SubmitStability scores and records the reflection.
func (s *StabilityServiceImpl) SubmitStability(ctx context.Context, req primary.SubmitStabilityRequest) (*primary.CompletionResponse, error) {
	userID, err := s.tracker.userID(ctx)
	if err != nil {
		return nil, err
	}

	s.daily.mu.Lock()
	defer s.daily.mu.Unlock()

	now := s.tracker.Calendar.Now()
	dateKey := s.tracker.Calendar.Today()
	sess := s.daily.current(dateKey)

	// 1. Session guard
	if result := sess.CanSubmit(now); !result.Allowed {
		return nil, result.Error()
	}

	// 2. Validate input before touching the store
	in := session.StabilityInput{
		Situation:   req.Situation,
		Trigger:     req.Trigger,
		Reframe:     req.Reframe,
		Intensity:   req.Intensity,
		Action:      req.Action,
		SecondOrder: req.SecondOrder,
	}.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	// 3. Once per day
	if err := s.tracker.checkCompletable(ctx, userID, dateKey, record.ActivityStability); err != nil {
		return nil, err
	}

	// 4. Plan and execute
	plan := session.PlanStabilityCompletion(dateKey, in, now)
	resp, err := s.tracker.complete(ctx, userID, plan)
	if err != nil {
		return nil, err
	}

	sess.MarkSubmitted()
	return resp, nil
}

func stabilityStatus(dateKey string, sess *session.StabilitySession, now time.Time) *primary.StabilityStatus {
	step := sess.Step(now)
	return &primary.StabilityStatus{
		DateKey:          dateKey,
		State:            string(sess.State(now)),
		Phase:            string(step.Phase),
		Cycle:            step.Cycle,
		Prompt:           step.Prompt,
		RemainingSeconds: ceilSeconds(step.Remaining),
	}
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// Ensure StabilityServiceImpl implements the interface
var _ primary.StabilityService = (*StabilityServiceImpl)(nil)
