// Package session contains the pure state machines behind each activity flow.
// This is part of the Functional Core - no I/O, only pure functions.
// Every transition takes the current time from the caller so timed phases are deterministic.
package session

import (
	"fmt"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/record"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return &GuardError{Reason: r.Reason}
}

// GuardError is a rejected transition.
type GuardError struct {
	Reason string
}

func (e *GuardError) Error() string {
	return e.Reason
}

func allow() GuardResult { return GuardResult{Allowed: true} }

func deny(format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// ValidationError reports user input that must be fixed before anything is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// CompletionContext provides context for the once-per-day completion guard.
type CompletionContext struct {
	Activity record.Activity
	DateKey  string
	Locked   bool // the control is already locked this session
	Recorded bool // today's stored record already carries the flag
}

// CanComplete evaluates whether an activity may be completed for the day.
// Rule: flags are monotonic per date, so a locked or already recorded activity is rejected.
func CanComplete(ctx CompletionContext) GuardResult {
	if ctx.Locked || ctx.Recorded {
		return deny("%s already completed for %s", ctx.Activity, ctx.DateKey)
	}
	return allow()
}
