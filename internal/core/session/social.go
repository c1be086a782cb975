package session

import "strings"

// SocialState represents the stages of a social mission.
type SocialState string

const (
	SocialIdle           SocialState = "idle"
	SocialMissionActive  SocialState = "mission_active"
	SocialReflectionOpen SocialState = "reflection_open"
	SocialSubmitted      SocialState = "submitted"
)

// DefaultDifficulty is the selector default for mission difficulty.
const DefaultDifficulty = 1

// SocialSession walks Idle → MissionActive → ReflectionOpen → Submitted.
type SocialSession struct {
	state SocialState
}

// NewSocialSession returns an idle session.
func NewSocialSession() *SocialSession {
	return &SocialSession{state: SocialIdle}
}

// State returns the current state.
func (s *SocialSession) State() SocialState { return s.state }

// Start activates the mission.
func (s *SocialSession) Start() GuardResult {
	switch s.state {
	case SocialIdle:
		s.state = SocialMissionActive
		return allow()
	case SocialSubmitted:
		return deny("social mission already submitted")
	default:
		return deny("social mission already active")
	}
}

// OpenReflection moves an active mission to its reflection form.
func (s *SocialSession) OpenReflection() GuardResult {
	switch s.state {
	case SocialMissionActive:
		s.state = SocialReflectionOpen
		return allow()
	case SocialReflectionOpen:
		return allow()
	case SocialSubmitted:
		return deny("social mission already submitted")
	default:
		return deny("start the social mission first")
	}
}

// CanSubmit evaluates whether the reflection can be submitted.
func (s *SocialSession) CanSubmit() GuardResult {
	switch s.state {
	case SocialReflectionOpen:
		return allow()
	case SocialSubmitted:
		return deny("social mission already submitted")
	case SocialMissionActive:
		return deny("open the reflection before submitting")
	default:
		return deny("start the social mission first")
	}
}

// MarkSubmitted records a confirmed submission.
func (s *SocialSession) MarkSubmitted() {
	s.state = SocialSubmitted
}

// SocialInput is the mission reflection form.
type SocialInput struct {
	Difficulty int
	Intensity  int
	Outcome    string
}

// Normalize trims the outcome and fills selector defaults.
func (in SocialInput) Normalize() SocialInput {
	in.Outcome = strings.TrimSpace(in.Outcome)
	if in.Difficulty == 0 {
		in.Difficulty = DefaultDifficulty
	}
	if in.Intensity == 0 {
		in.Intensity = DefaultIntensity
	}
	return in
}

// Validate checks a normalized form. Difficulty has no upper bound.
func (in SocialInput) Validate() error {
	if in.Outcome == "" {
		return &ValidationError{Field: "outcome", Reason: "is required - describe what happened"}
	}
	if in.Difficulty < 1 {
		return &ValidationError{Field: "difficulty", Reason: "must be at least 1"}
	}
	return validateIntensity(in.Intensity)
}
