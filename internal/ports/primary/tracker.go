package primary

import (
	"context"
	"time"
)

// IdentityService defines the primary port for the anonymous user token.
type IdentityService interface {
	// GetOrCreateUserID returns the persisted token, generating one on first use.
	GetOrCreateUserID(ctx context.Context) (string, error)
}

// StatsService defines the primary port for the rolling statistics.
type StatsService interface {
	// ComputeStreak counts consecutive complete days ending at asOf.
	ComputeStreak(ctx context.Context, asOf time.Time) (*Streak, error)

	// ComputeWeeklyWorkoutRating counts workouts in the 7 days ending at asOf.
	ComputeWeeklyWorkoutRating(ctx context.Context, asOf time.Time) (*WeeklyRating, error)

	// GetStats computes both statistics as of now.
	GetStats(ctx context.Context) (*Stats, error)
}

// TodayService defines the primary port for the dashboard.
type TodayService interface {
	// GetToday loads today's record and locks the controls of completed activities.
	GetToday(ctx context.Context) (*TodayView, error)
}

// ProfileService defines the primary port for local profile state.
type ProfileService interface {
	// GetProfile returns the courage counter, personal bests and running workout.
	GetProfile(ctx context.Context) (*Profile, error)
}

// Streak represents the consecutive-day streak at the port boundary.
type Streak struct {
	Days          int
	Capped        bool
	Indeterminate bool
}

// WeeklyRating represents the 7-day workout rating at the port boundary.
type WeeklyRating struct {
	Count         int
	Label         string
	Indeterminate bool
}

// Stats bundles both statistics.
type Stats struct {
	AsOf   string
	Streak *Streak
	Weekly *WeeklyRating
}

// TodayView is the dashboard for the current date.
type TodayView struct {
	DateKey        string
	UserID         string
	Controls       []ControlState
	StrategicScore int
	HasStrategic   bool
	Courage        int
	Unavailable    bool // today's record could not be read
	Streak         *Streak
	Weekly         *WeeklyRating
}

// ControlState is one activity control on the dashboard.
type ControlState struct {
	Activity    string
	Locked      bool
	Score       int
	HasScore    bool
	WriteStatus WriteStatus
}

// Profile represents local profile state at the port boundary.
type Profile struct {
	UserID           string
	Courage          int
	PersonalBests    map[string]int
	WorkoutRunning   bool
	WorkoutStartedAt time.Time
}
