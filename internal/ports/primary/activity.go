// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"
	"time"
)

// WriteStatus tracks a completion's store write.
type WriteStatus string

const (
	WritePending   WriteStatus = "pending"
	WriteConfirmed WriteStatus = "confirmed"
	WriteFailed    WriteStatus = "failed"
)

// StabilityService defines the primary port for the stability exercise.
type StabilityService interface {
	// StartStability begins the breathing guide, or opens the reflection form directly.
	StartStability(ctx context.Context, req StartStabilityRequest) (*StabilityStatus, error)

	// GetStabilityPhase returns the current breathing guide step.
	GetStabilityPhase(ctx context.Context) (*StabilityStatus, error)

	// SubmitStability scores and records the reflection.
	SubmitStability(ctx context.Context, req SubmitStabilityRequest) (*CompletionResponse, error)
}

// WorkoutService defines the primary port for the workout timer.
type WorkoutService interface {
	// StartWorkout records the start timestamp.
	StartWorkout(ctx context.Context) (*WorkoutStatus, error)

	// GetWorkoutStatus returns the running timer, if any.
	GetWorkoutStatus(ctx context.Context) (*WorkoutStatus, error)

	// FinishWorkout scores and records the running workout.
	FinishWorkout(ctx context.Context, req FinishWorkoutRequest) (*CompletionResponse, error)
}

// SocialService defines the primary port for social missions.
type SocialService interface {
	// StartSocial activates today's mission.
	StartSocial(ctx context.Context) (*SocialStatus, error)

	// OpenSocialReflection opens the reflection form for the active mission.
	OpenSocialReflection(ctx context.Context) (*SocialStatus, error)

	// SubmitSocial scores and records the mission.
	SubmitSocial(ctx context.Context, req SubmitSocialRequest) (*CompletionResponse, error)
}

// ObserverService defines the primary port for observer mode.
type ObserverService interface {
	// StartObserver begins the countdown, or opens the questions directly.
	StartObserver(ctx context.Context, req StartObserverRequest) (*ObserverStatus, error)

	// GetObserverCountdown returns the countdown state.
	GetObserverCountdown(ctx context.Context) (*ObserverStatus, error)

	// SubmitObserver records the observer flag.
	SubmitObserver(ctx context.Context) (*CompletionResponse, error)
}

// StartStabilityRequest contains parameters for starting the stability exercise.
type StartStabilityRequest struct {
	SkipBreathing bool
}

// StabilityStatus describes the stability exercise at the port boundary.
type StabilityStatus struct {
	DateKey          string
	State            string
	Phase            string
	Cycle            int
	Prompt           string
	RemainingSeconds int
}

// SubmitStabilityRequest contains the reflection form.
type SubmitStabilityRequest struct {
	Situation   string
	Trigger     string
	Reframe     string
	Intensity   int
	Action      string
	SecondOrder string
}

// WorkoutStatus describes the workout timer at the port boundary.
type WorkoutStatus struct {
	DateKey   string
	State     string
	StartedAt time.Time
	Elapsed   time.Duration
	Display   string // MM:SS
}

// FinishWorkoutRequest contains parameters for finishing a workout.
type FinishWorkoutRequest struct {
	Type string
}

// SocialStatus describes a social mission at the port boundary.
type SocialStatus struct {
	DateKey string
	State   string
}

// SubmitSocialRequest contains the mission reflection form.
type SubmitSocialRequest struct {
	Difficulty int
	Intensity  int
	Outcome    string
}

// StartObserverRequest contains parameters for starting observer mode.
type StartObserverRequest struct {
	SkipCountdown bool
}

// ObserverStatus describes observer mode at the port boundary.
type ObserverStatus struct {
	DateKey          string
	State            string
	RemainingSeconds int
	Display          string
}

// CompletionResponse contains the result of a confirmed completion.
type CompletionResponse struct {
	Activity       string
	DateKey        string
	Score          int
	HasScore       bool
	Status         WriteStatus
	Locked         bool
	NewBest        bool
	Courage        int
	CourageGained  bool
	WorkoutMinutes int
	Streak         *Streak
	Weekly         *WeeklyRating
}
