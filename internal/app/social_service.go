package app

import (
	"context"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/record"
	"github.com/vedantadhau820-alt/IdentityOS/internal/core/session"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
)

// SocialServiceImpl implements the SocialService interface.
type SocialServiceImpl struct {
	tracker *Tracker
	daily   dailySession[*session.SocialSession]
}

// NewSocialService creates a new SocialService with injected dependencies.
func NewSocialService(tracker *Tracker) *SocialServiceImpl {
	return &SocialServiceImpl{
		tracker: tracker,
		daily:   dailySession[*session.SocialSession]{fresh: session.NewSocialSession},
	}
}

// StartSocial activates today's mission.
func (s *SocialServiceImpl) StartSocial(ctx context.Context) (*primary.SocialStatus, error) {
	userID, err := s.tracker.userID(ctx)
	if err != nil {
		return nil, err
	}

	s.daily.mu.Lock()
	defer s.daily.mu.Unlock()

	dateKey := s.tracker.Calendar.Today()
	sess := s.daily.current(dateKey)

	if err := s.tracker.checkCompletable(ctx, userID, dateKey, record.ActivitySocial); err != nil {
		return nil, err
	}
	if result := sess.Start(); !result.Allowed {
		return nil, result.Error()
	}

	return &primary.SocialStatus{DateKey: dateKey, State: string(sess.State())}, nil
}

// OpenSocialReflection opens the reflection form for the active mission.
func (s *SocialServiceImpl) OpenSocialReflection(ctx context.Context) (*primary.SocialStatus, error) {
	s.daily.mu.Lock()
	defer s.daily.mu.Unlock()

	dateKey := s.tracker.Calendar.Today()
	sess := s.daily.current(dateKey)
	if result := sess.OpenReflection(); !result.Allowed {
		return nil, result.Error()
	}

	return &primary.SocialStatus{DateKey: dateKey, State: string(sess.State())}, nil
}

// SubmitSocial scores and records the mission.
// The courage counter only moves once the write is confirmed.
func (s *SocialServiceImpl) SubmitSocial(ctx context.Context, req primary.SubmitSocialRequest) (*primary.CompletionResponse, error) {
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
	if result := sess.CanSubmit(); !result.Allowed {
		return nil, result.Error()
	}

	// 2. Validate input before touching the store
	in := session.SocialInput{
		Difficulty: req.Difficulty,
		Intensity:  req.Intensity,
		Outcome:    req.Outcome,
	}.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	// 3. Once per day
	if err := s.tracker.checkCompletable(ctx, userID, dateKey, record.ActivitySocial); err != nil {
		return nil, err
	}

	// 4. Plan and execute
	plan := session.PlanSocialCompletion(dateKey, in, now)
	resp, err := s.tracker.complete(ctx, userID, plan)
	if err != nil {
		return nil, err
	}

	sess.MarkSubmitted()
	return resp, nil
}

// Ensure SocialServiceImpl implements the interface
var _ primary.SocialService = (*SocialServiceImpl)(nil)
