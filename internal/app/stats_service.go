package app

import (
	"context"
	"fmt"
	"time"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/calendar"
	corestats "github.com/vedantadhau820-alt/IdentityOS/internal/core/stats"
	"github.com/vedantadhau820-alt/IdentityOS/internal/metrics"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
)

// StatsServiceImpl implements the StatsService interface.
// Both statistics are recomputed from the store on every call.
type StatsServiceImpl struct {
	users       primary.IdentityService
	records     *RecordStore
	cal         *Calendar
	maxLookback int
}

// NewStatsService creates a new StatsService with injected dependencies.
// A maxLookback of zero or less uses the default cap.
func NewStatsService(users primary.IdentityService, records *RecordStore, cal *Calendar, maxLookback int) *StatsServiceImpl {
	return &StatsServiceImpl{
		users:       users,
		records:     records,
		cal:         cal,
		maxLookback: corestats.NormalizeLookback(maxLookback),
	}
}

// ComputeStreak counts consecutive complete days walking backward from asOf.
func (s *StatsServiceImpl) ComputeStreak(ctx context.Context, asOf time.Time) (*primary.Streak, error) {
	userID, err := s.users.GetOrCreateUserID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user id: %w", err)
	}

	result := corestats.StreakResult{}
	loc := s.cal.Location()
	day := calendar.Day(asOf, loc)

	for {
		if result.Days >= s.maxLookback {
			result.Capped = true
			break
		}

		l := s.records.Read(ctx, userID, calendar.DateKey(day, loc))
		step := corestats.ClassifyStreakDay(l.Status, l.Record)
		if step == corestats.StepHalt {
			result.Indeterminate = true
			break
		}
		if step == corestats.StepStop {
			break
		}

		result.Days++
		day = calendar.PreviousDay(day)
	}

	metrics.StreakDays.Set(float64(result.Days))
	return &primary.Streak{
		Days:          result.Days,
		Capped:        result.Capped,
		Indeterminate: result.Indeterminate,
	}, nil
}

// ComputeWeeklyWorkoutRating counts workouts in the 7 days ending at asOf inclusive.
func (s *StatsServiceImpl) ComputeWeeklyWorkoutRating(ctx context.Context, asOf time.Time) (*primary.WeeklyRating, error) {
	userID, err := s.users.GetOrCreateUserID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user id: %w", err)
	}

	rating := &primary.WeeklyRating{}
	for _, key := range calendar.Window(asOf, s.cal.Location(), corestats.WeekWindow) {
		l := s.records.Read(ctx, userID, key)
		if l.Status == corestats.ReadUnknown {
			rating.Indeterminate = true
		}
		if corestats.CountsAsWorkout(l.Status, l.Record) {
			rating.Count++
		}
	}
	rating.Label = corestats.RatingLabel(rating.Count)

	metrics.WeeklyWorkouts.Set(float64(rating.Count))
	return rating, nil
}

// GetStats computes both statistics as of now.
func (s *StatsServiceImpl) GetStats(ctx context.Context) (*primary.Stats, error) {
	now := s.cal.Now()

	streak, err := s.ComputeStreak(ctx, now)
	if err != nil {
		return nil, err
	}
	weekly, err := s.ComputeWeeklyWorkoutRating(ctx, now)
	if err != nil {
		return nil, err
	}

	return &primary.Stats{
		AsOf:   calendar.DateKey(now, s.cal.Location()),
		Streak: streak,
		Weekly: weekly,
	}, nil
}

// Ensure StatsServiceImpl implements the interface
var _ primary.StatsService = (*StatsServiceImpl)(nil)
