package app

import (
	"context"
	"time"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/record"
	"github.com/vedantadhau820-alt/IdentityOS/internal/core/session"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
)

// ObserverServiceImpl implements the ObserverService interface.
type ObserverServiceImpl struct {
	tracker *Tracker
	daily   dailySession[*session.ObserverSession]
}

// NewObserverService creates a new ObserverService with injected dependencies.
func NewObserverService(tracker *Tracker) *ObserverServiceImpl {
	return &ObserverServiceImpl{
		tracker: tracker,
		daily:   dailySession[*session.ObserverSession]{fresh: session.NewObserverSession},
	}
}

// StartObserver begins the countdown, or opens the questions directly.
func (s *ObserverServiceImpl) StartObserver(ctx context.Context, req primary.StartObserverRequest) (*primary.ObserverStatus, error) {
	userID, err := s.tracker.userID(ctx)
	if err != nil {
		return nil, err
	}

	s.daily.mu.Lock()
	defer s.daily.mu.Unlock()

	now := s.tracker.Calendar.Now()
	dateKey := s.tracker.Calendar.Today()
	sess := s.daily.current(dateKey)

	if err := s.tracker.checkCompletable(ctx, userID, dateKey, record.ActivityObserver); err != nil {
		return nil, err
	}

	var result session.GuardResult
	if req.SkipCountdown {
		result = sess.SkipCountdown(now)
	} else {
		result = sess.Start(now)
	}
	if !result.Allowed {
		return nil, result.Error()
	}

	return observerStatus(dateKey, sess, now), nil
}

// GetObserverCountdown returns the countdown state.
func (s *ObserverServiceImpl) GetObserverCountdown(ctx context.Context) (*primary.ObserverStatus, error) {
	s.daily.mu.Lock()
	defer s.daily.mu.Unlock()

	now := s.tracker.Calendar.Now()
	dateKey := s.tracker.Calendar.Today()
	return observerStatus(dateKey, s.daily.current(dateKey), now), nil
}

// SubmitObserver records the observer flag.
func (s *ObserverServiceImpl) SubmitObserver(ctx context.Context) (*primary.CompletionResponse, error) {
	userID, err := s.tracker.userID(ctx)
	if err != nil {
		return nil, err
	}

	s.daily.mu.Lock()
	defer s.daily.mu.Unlock()

	now := s.tracker.Calendar.Now()
	dateKey := s.tracker.Calendar.Today()
	sess := s.daily.current(dateKey)

	if result := sess.CanSubmit(now); !result.Allowed {
		return nil, result.Error()
	}
	if err := s.tracker.checkCompletable(ctx, userID, dateKey, record.ActivityObserver); err != nil {
		return nil, err
	}

	resp, err := s.tracker.complete(ctx, userID, session.PlanObserverCompletion(dateKey))
	if err != nil {
		return nil, err
	}

	sess.MarkSubmitted()
	return resp, nil
}

func observerStatus(dateKey string, sess *session.ObserverSession, now time.Time) *primary.ObserverStatus {
	remaining := sess.Remaining(now)
	status := &primary.ObserverStatus{
		DateKey:          dateKey,
		State:            string(sess.State(now)),
		RemainingSeconds: remaining,
	}
	if remaining > 0 {
		status.Display = session.CountdownDisplay(remaining)
	}
	return status
}

// Ensure ObserverServiceImpl implements the interface
var _ primary.ObserverService = (*ObserverServiceImpl)(nil)
