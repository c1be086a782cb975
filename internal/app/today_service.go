package app

import (
	"context"
	"fmt"
	"time"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/record"
	"github.com/vedantadhau820-alt/IdentityOS/internal/core/stats"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
)

// TodayServiceImpl implements the TodayService interface.
type TodayServiceImpl struct {
	tracker *Tracker
	stats   primary.StatsService
	state   *LocalState
}

// NewTodayService creates a new TodayService with injected dependencies.
func NewTodayService(tracker *Tracker, stats primary.StatsService, state *LocalState) *TodayServiceImpl {
	return &TodayServiceImpl{
		tracker: tracker,
		stats:   stats,
		state:   state,
	}
}

// GetToday loads today's record, locks the controls of completed activities
// and recomputes both statistics.
func (s *TodayServiceImpl) GetToday(ctx context.Context) (*primary.TodayView, error) {
	userID, err := s.tracker.userID(ctx)
	if err != nil {
		return nil, err
	}

	now := s.tracker.Calendar.Now()
	dateKey := s.tracker.Calendar.Today()
	l := s.tracker.Records.Read(ctx, userID, dateKey)

	view := &primary.TodayView{
		DateKey:     dateKey,
		UserID:      userID,
		Courage:     s.state.Snapshot(ctx).Courage,
		Unavailable: l.Status == stats.ReadUnknown,
	}

	for _, a := range record.AllActivities {
		if l.Record.Has(a) {
			s.tracker.Locks.Lock(dateKey, a)
		}
		score, hasScore := l.Record.Score(a)
		view.Controls = append(view.Controls, primary.ControlState{
			Activity:    string(a),
			Locked:      s.tracker.Locks.IsLocked(dateKey, a),
			Score:       score,
			HasScore:    hasScore,
			WriteStatus: s.tracker.Locks.Status(dateKey, a),
		})
	}
	view.StrategicScore, view.HasStrategic = l.Record.Score(record.ActivityStability)

	if view.Streak, err = s.stats.ComputeStreak(ctx, now); err != nil {
		return nil, fmt.Errorf("failed to compute streak: %w", err)
	}
	if view.Weekly, err = s.stats.ComputeWeeklyWorkoutRating(ctx, now); err != nil {
		return nil, fmt.Errorf("failed to compute weekly rating: %w", err)
	}

	return view, nil
}

// Ensure TodayServiceImpl implements the interface
var _ primary.TodayService = (*TodayServiceImpl)(nil)

// ProfileServiceImpl implements the ProfileService interface.
type ProfileServiceImpl struct {
	users primary.IdentityService
	state *LocalState
}

// NewProfileService creates a new ProfileService with injected dependencies.
func NewProfileService(users primary.IdentityService, state *LocalState) *ProfileServiceImpl {
	return &ProfileServiceImpl{
		users: users,
		state: state,
	}
}

// GetProfile returns the courage counter, personal bests and running workout.
func (s *ProfileServiceImpl) GetProfile(ctx context.Context) (*primary.Profile, error) {
	userID, err := s.users.GetOrCreateUserID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user id: %w", err)
	}

	st := s.state.Snapshot(ctx)
	profile := &primary.Profile{
		UserID:        userID,
		Courage:       st.Courage,
		PersonalBests: st.PersonalBests,
	}
	if st.WorkoutStartedAt != "" {
		if startedAt, err := time.Parse(time.RFC3339Nano, st.WorkoutStartedAt); err == nil {
			profile.WorkoutRunning = true
			profile.WorkoutStartedAt = startedAt
		}
	}
	return profile, nil
}

// Ensure ProfileServiceImpl implements the interface
var _ primary.ProfileService = (*ProfileServiceImpl)(nil)
