// Package effects defines effect types as data structures representing I/O operations.
// This is the foundation of the Functional Core / Imperative Shell pattern.
// Effects are pure data - they describe what should happen, not how.
package effects

import "github.com/vedantadhau820-alt/IdentityOS/internal/core/record"

// Effect is the base interface for all effects.
// Effects represent I/O operations as data that can be interpreted by the shell.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// LogEffect represents a logging operation.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// MergeRecordEffect merge-writes a partial record into the day's document.
// Every effect after it in a plan depends on the write being confirmed.
type MergeRecordEffect struct {
	DateKey string
	Patch   *record.DailyRecord
}

func (e MergeRecordEffect) EffectType() string { return "merge_record" }

// LockEffect locks an activity's control for the day.
type LockEffect struct {
	DateKey  string
	Activity record.Activity
}

func (e LockEffect) EffectType() string { return "lock" }

// CourageEffect adds Delta to the local courage counter and persists it.
type CourageEffect struct {
	Delta int
}

func (e CourageEffect) EffectType() string { return "courage" }

// BestEffect offers a score as the new personal best for an activity.
type BestEffect struct {
	Activity record.Activity
	Score    int
}

func (e BestEffect) EffectType() string { return "best" }

// EventEffect appends a completion to the activity history.
type EventEffect struct {
	DateKey  string
	Activity record.Activity
	Score    int
}

func (e EventEffect) EffectType() string { return "event" }

// ClearWorkoutEffect forgets the persisted start of a running workout.
type ClearWorkoutEffect struct{}

func (e ClearWorkoutEffect) EffectType() string { return "clear_workout" }

// RefreshEffect recomputes rolling statistics from the store.
type RefreshEffect struct {
	Streak bool
	Weekly bool
}

func (e RefreshEffect) EffectType() string { return "refresh" }
