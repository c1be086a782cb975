package session

import (
	"fmt"
	"strings"
	"time"
)

// WorkoutState represents the stages of the workout timer.
type WorkoutState string

const (
	WorkoutIdle     WorkoutState = "idle"
	WorkoutRunning  WorkoutState = "running"
	WorkoutFinished WorkoutState = "finished"
)

// DefaultWorkoutType is used when no type is chosen.
const DefaultWorkoutType = "strength"

// WorkoutSession walks Idle → Running → Finished.
type WorkoutSession struct {
	state     WorkoutState
	startedAt time.Time
}

// NewWorkoutSession returns an idle session.
func NewWorkoutSession() *WorkoutSession {
	return &WorkoutSession{state: WorkoutIdle}
}

// ResumeWorkoutSession returns a running session that started at startedAt.
func ResumeWorkoutSession(startedAt time.Time) *WorkoutSession {
	return &WorkoutSession{state: WorkoutRunning, startedAt: startedAt}
}

// State returns the current state.
func (s *WorkoutSession) State() WorkoutState { return s.state }

// StartedAt returns when the running workout began.
func (s *WorkoutSession) StartedAt() time.Time { return s.startedAt }

// Start records the start timestamp.
func (s *WorkoutSession) Start(now time.Time) GuardResult {
	switch s.state {
	case WorkoutRunning:
		return deny("workout already running since %s", s.startedAt.Format("15:04:05"))
	case WorkoutFinished:
		return deny("workout already finished")
	}
	s.state = WorkoutRunning
	s.startedAt = now
	return allow()
}

// Elapsed returns the running time, zero unless running.
func (s *WorkoutSession) Elapsed(now time.Time) time.Duration {
	if s.state != WorkoutRunning {
		return 0
	}
	d := now.Sub(s.startedAt)
	if d < 0 {
		return 0
	}
	return d
}

// CanFinish evaluates whether the workout can be finished.
func (s *WorkoutSession) CanFinish() GuardResult {
	switch s.state {
	case WorkoutRunning:
		return allow()
	case WorkoutFinished:
		return deny("workout already finished")
	default:
		return deny("no workout running - start one first")
	}
}

// MarkFinished records a confirmed finish.
func (s *WorkoutSession) MarkFinished() {
	s.state = WorkoutFinished
}

// ElapsedDisplay renders elapsed time as zero-padded MM:SS.
func ElapsedDisplay(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	seconds := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// NormalizeWorkoutType trims the chosen type and applies the default.
func NormalizeWorkoutType(t string) string {
	t = strings.TrimSpace(t)
	if t == "" {
		return DefaultWorkoutType
	}
	return t
}
