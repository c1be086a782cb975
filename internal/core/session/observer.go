package session

import (
	"fmt"
	"time"
)

// ObserverState represents the stages of observer mode.
type ObserverState string

const (
	ObserverIdle          ObserverState = "idle"
	ObserverObserving     ObserverState = "observing"
	ObserverQuestionsOpen ObserverState = "questions_open"
	ObserverSubmitted     ObserverState = "submitted"
)

// ObserverCountdown is how long the user observes before the questions open.
const ObserverCountdown = 20 * time.Second

// ObserverSession walks Idle → Observing → QuestionsOpen → Submitted.
type ObserverSession struct {
	state     ObserverState
	startedAt time.Time
}

// NewObserverSession returns an idle session.
func NewObserverSession() *ObserverSession {
	return &ObserverSession{state: ObserverIdle}
}

// Start begins the countdown.
func (s *ObserverSession) Start(now time.Time) GuardResult {
	switch s.state {
	case ObserverIdle:
		s.state = ObserverObserving
		s.startedAt = now
		return allow()
	case ObserverSubmitted:
		return deny("observer already submitted")
	default:
		return deny("observer already started")
	}
}

// SkipCountdown opens the questions immediately.
func (s *ObserverSession) SkipCountdown(now time.Time) GuardResult {
	if s.state == ObserverSubmitted {
		return deny("observer already submitted")
	}
	s.state = ObserverQuestionsOpen
	s.startedAt = now
	return allow()
}

// State returns the current state, opening the questions once the countdown reaches zero.
func (s *ObserverSession) State(now time.Time) ObserverState {
	if s.state == ObserverObserving && now.Sub(s.startedAt) >= ObserverCountdown {
		s.state = ObserverQuestionsOpen
	}
	return s.state
}

// Remaining returns whole seconds left on the countdown, rounded up.
func (s *ObserverSession) Remaining(now time.Time) int {
	if s.State(now) != ObserverObserving {
		return 0
	}
	left := ObserverCountdown - now.Sub(s.startedAt)
	return int((left + time.Second - 1) / time.Second)
}

// CanSubmit evaluates whether the follow-up questions can be submitted.
func (s *ObserverSession) CanSubmit(now time.Time) GuardResult {
	switch s.State(now) {
	case ObserverQuestionsOpen:
		return allow()
	case ObserverObserving:
		return deny("observe silently for %ds more", s.Remaining(now))
	case ObserverSubmitted:
		return deny("observer already submitted")
	default:
		return deny("start observer mode first")
	}
}

// MarkSubmitted records a confirmed submission.
func (s *ObserverSession) MarkSubmitted() {
	s.state = ObserverSubmitted
}

// CountdownDisplay renders the per-second countdown text.
func CountdownDisplay(seconds int) string {
	return fmt.Sprintf("Observe silently... %ds", seconds)
}
