package session

import (
	"strings"
	"time"
)

// StabilityState represents the stages of the stability exercise.
type StabilityState string

const (
	StabilityIdle       StabilityState = "idle"
	StabilityBreathing  StabilityState = "breathing"
	StabilityReflecting StabilityState = "reflecting"
	StabilitySubmitted  StabilityState = "submitted"
)

// Breathing guide timing.
const (
	InhaleDuration  = 4 * time.Second
	ExhaleDuration  = 6 * time.Second
	CycleDuration   = InhaleDuration + ExhaleDuration
	BreathingCycles = 5
	ObservePause    = 15 * time.Second

	// BreathingDuration is the time from start until the reflection form opens.
	BreathingDuration = BreathingCycles*CycleDuration + ObservePause
)

// BreathPhase names a step of the breathing guide.
type BreathPhase string

const (
	PhaseInhale  BreathPhase = "inhale"
	PhaseExhale  BreathPhase = "exhale"
	PhaseObserve BreathPhase = "observe"
	PhaseReflect BreathPhase = "reflect"
)

var phasePrompts = map[BreathPhase]string{
	PhaseInhale:  "Inhale...",
	PhaseExhale:  "Exhale...",
	PhaseObserve: "Observe. Do not react.",
	PhaseReflect: "Now Reflect.",
}

// BreathingStep is the guide's position at some elapsed time.
type BreathingStep struct {
	Phase     BreathPhase
	Cycle     int           // 1..5, 5 once the cycles are over
	Prompt    string        // text shown to the user
	Remaining time.Duration // until the next phase change, zero once reflecting
}

// PhaseAt returns the breathing guide step after elapsed time.
func PhaseAt(elapsed time.Duration) BreathingStep {
	if elapsed < 0 {
		elapsed = 0
	}

	cyclesEnd := BreathingCycles * CycleDuration
	switch {
	case elapsed < cyclesEnd:
		cycle := int(elapsed/CycleDuration) + 1
		within := elapsed % CycleDuration
		if within < InhaleDuration {
			return step(PhaseInhale, cycle, InhaleDuration-within)
		}
		return step(PhaseExhale, cycle, CycleDuration-within)
	case elapsed < BreathingDuration:
		return step(PhaseObserve, BreathingCycles, BreathingDuration-elapsed)
	default:
		return step(PhaseReflect, BreathingCycles, 0)
	}
}

func step(phase BreathPhase, cycle int, remaining time.Duration) BreathingStep {
	return BreathingStep{Phase: phase, Cycle: cycle, Prompt: phasePrompts[phase], Remaining: remaining}
}

// StabilitySession walks Idle → Breathing → Reflecting → Submitted.
type StabilitySession struct {
	state     StabilityState
	startedAt time.Time
}

// NewStabilitySession returns an idle session.
func NewStabilitySession() *StabilitySession {
	return &StabilitySession{state: StabilityIdle}
}

// Start begins (or restarts) the breathing guide.
func (s *StabilitySession) Start(now time.Time) GuardResult {
	if s.state == StabilitySubmitted {
		return deny("stability already submitted")
	}
	s.state = StabilityBreathing
	s.startedAt = now
	return allow()
}

// SkipBreathing opens the reflection form immediately.
func (s *StabilitySession) SkipBreathing(now time.Time) GuardResult {
	if s.state == StabilitySubmitted {
		return deny("stability already submitted")
	}
	s.state = StabilityReflecting
	s.startedAt = now
	return allow()
}

// State returns the current state, advancing out of Breathing once the guide has run its course.
func (s *StabilitySession) State(now time.Time) StabilityState {
	if s.state == StabilityBreathing && now.Sub(s.startedAt) >= BreathingDuration {
		s.state = StabilityReflecting
	}
	return s.state
}

// Step returns the breathing guide step for the session.
func (s *StabilitySession) Step(now time.Time) BreathingStep {
	switch s.State(now) {
	case StabilityBreathing:
		return PhaseAt(now.Sub(s.startedAt))
	case StabilityIdle:
		return BreathingStep{}
	default:
		return step(PhaseReflect, BreathingCycles, 0)
	}
}

// CanSubmit evaluates whether the reflection can be submitted.
// Rule: the reflection form is only open after the breathing guide.
func (s *StabilitySession) CanSubmit(now time.Time) GuardResult {
	switch s.State(now) {
	case StabilityReflecting:
		return allow()
	case StabilityBreathing:
		left := BreathingDuration - now.Sub(s.startedAt)
		return deny("breathing guide still running (%s left)", left.Round(time.Second))
	case StabilitySubmitted:
		return deny("stability already submitted")
	default:
		return deny("start the breathing guide first")
	}
}

// MarkSubmitted records a confirmed submission.
func (s *StabilitySession) MarkSubmitted() {
	s.state = StabilitySubmitted
}

// Selector defaults for the reflection form.
const (
	DefaultTrigger   = "other"
	DefaultReframe   = "accept"
	DefaultIntensity = 5
)

// StabilityInput is the reflection form.
type StabilityInput struct {
	Situation   string
	Trigger     string
	Reframe     string
	Intensity   int
	Action      string
	SecondOrder string
}

// Normalize trims free text and fills selector defaults.
func (in StabilityInput) Normalize() StabilityInput {
	in.Situation = strings.TrimSpace(in.Situation)
	in.Action = strings.TrimSpace(in.Action)
	in.SecondOrder = strings.TrimSpace(in.SecondOrder)
	in.Trigger = strings.TrimSpace(in.Trigger)
	in.Reframe = strings.TrimSpace(in.Reframe)
	if in.Trigger == "" {
		in.Trigger = DefaultTrigger
	}
	if in.Reframe == "" {
		in.Reframe = DefaultReframe
	}
	if in.Intensity == 0 {
		in.Intensity = DefaultIntensity
	}
	return in
}

// Validate checks a normalized form.
func (in StabilityInput) Validate() error {
	if in.Situation == "" {
		return &ValidationError{Field: "situation", Reason: "is required"}
	}
	if in.Action == "" {
		return &ValidationError{Field: "action", Reason: "is required"}
	}
	return validateIntensity(in.Intensity)
}

func validateIntensity(intensity int) error {
	if intensity < 1 || intensity > 10 {
		return &ValidationError{Field: "intensity", Reason: "must be between 1 and 10"}
	}
	return nil
}
