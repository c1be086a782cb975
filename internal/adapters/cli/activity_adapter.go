package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/session"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
)

// ActivityAdapter is a thin adapter that translates CLI operations to the activity services.
type ActivityAdapter struct {
	stability primary.StabilityService
	workout   primary.WorkoutService
	social    primary.SocialService
	observer  primary.ObserverService
	out       io.Writer
}

// NewActivityAdapter creates a new ActivityAdapter with the given services.
func NewActivityAdapter(
	stability primary.StabilityService,
	workout primary.WorkoutService,
	social primary.SocialService,
	observer primary.ObserverService,
	out io.Writer,
) *ActivityAdapter {
	return &ActivityAdapter{
		stability: stability,
		workout:   workout,
		social:    social,
		observer:  observer,
		out:       out,
	}
}

// StartStability begins the breathing guide.
func (a *ActivityAdapter) StartStability(ctx context.Context, skipBreathing bool) (*primary.StabilityStatus, error) {
	st, err := a.stability.StartStability(ctx, primary.StartStabilityRequest{SkipBreathing: skipBreathing})
	if err != nil {
		return nil, err
	}
	if st.State == "breathing" {
		fmt.Fprintf(a.out, "Breathing guide: %d cycles of inhale %s, exhale %s, then observe for %s.\n",
			session.BreathingCycles, session.InhaleDuration, session.ExhaleDuration, session.ObservePause)
	}
	return st, nil
}

// StabilityPhase prints the current breathing step when it changes.
func (a *ActivityAdapter) StabilityPhase(ctx context.Context, last *primary.StabilityStatus) (*primary.StabilityStatus, error) {
	st, err := a.stability.GetStabilityPhase(ctx)
	if err != nil {
		return nil, err
	}
	if last == nil || st.Phase != last.Phase || st.Cycle != last.Cycle {
		if st.State == "breathing" {
			fmt.Fprintf(a.out, "  [%d/%d] %s\n", st.Cycle, session.BreathingCycles, st.Prompt)
		} else if st.Prompt != "" {
			fmt.Fprintf(a.out, "  %s\n", st.Prompt)
		}
	}
	return st, nil
}

// SubmitStability records the reflection.
func (a *ActivityAdapter) SubmitStability(ctx context.Context, req primary.SubmitStabilityRequest) (*primary.CompletionResponse, error) {
	resp, err := a.stability.SubmitStability(ctx, req)
	if err != nil {
		return nil, err
	}
	a.printCompletion(resp)
	return resp, nil
}

// StartWorkout starts the workout timer.
func (a *ActivityAdapter) StartWorkout(ctx context.Context) (*primary.WorkoutStatus, error) {
	st, err := a.workout.StartWorkout(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "%s Workout started at %s\n", okMark(), st.StartedAt.Format("15:04:05"))
	fmt.Fprintln(a.out, "  Finish with: identityos workout finish")
	return st, nil
}

// WorkoutStatus prints the running timer.
func (a *ActivityAdapter) WorkoutStatus(ctx context.Context) (*primary.WorkoutStatus, error) {
	st, err := a.workout.GetWorkoutStatus(ctx)
	if err != nil {
		return nil, err
	}
	if st.State != "running" {
		fmt.Fprintln(a.out, "No workout running.")
		return st, nil
	}
	fmt.Fprintf(a.out, "Workout running: %s\n", st.Display)
	return st, nil
}

// FinishWorkout scores and records the running workout.
func (a *ActivityAdapter) FinishWorkout(ctx context.Context, workoutType string) (*primary.CompletionResponse, error) {
	resp, err := a.workout.FinishWorkout(ctx, primary.FinishWorkoutRequest{Type: workoutType})
	if err != nil {
		return nil, err
	}
	a.printCompletion(resp)
	return resp, nil
}

// StartSocial activates today's mission.
func (a *ActivityAdapter) StartSocial(ctx context.Context) (*primary.SocialStatus, error) {
	st, err := a.social.StartSocial(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(a.out, "Mission active. Do the thing you are avoiding.")
	return st, nil
}

// SubmitSocial opens the reflection form if needed and records the mission.
func (a *ActivityAdapter) SubmitSocial(ctx context.Context, req primary.SubmitSocialRequest) (*primary.CompletionResponse, error) {
	if _, err := a.social.OpenSocialReflection(ctx); err != nil {
		return nil, err
	}
	resp, err := a.social.SubmitSocial(ctx, req)
	if err != nil {
		return nil, err
	}
	a.printCompletion(resp)
	return resp, nil
}

// StartObserver begins the observer countdown.
func (a *ActivityAdapter) StartObserver(ctx context.Context, skipCountdown bool) (*primary.ObserverStatus, error) {
	st, err := a.observer.StartObserver(ctx, primary.StartObserverRequest{SkipCountdown: skipCountdown})
	if err != nil {
		return nil, err
	}
	if st.RemainingSeconds > 0 {
		fmt.Fprintln(a.out, "Observe without reacting.")
	}
	return st, nil
}

// ObserverCountdown returns the countdown state.
func (a *ActivityAdapter) ObserverCountdown(ctx context.Context) (*primary.ObserverStatus, error) {
	return a.observer.GetObserverCountdown(ctx)
}

// SubmitObserver records the observer flag.
func (a *ActivityAdapter) SubmitObserver(ctx context.Context) (*primary.CompletionResponse, error) {
	resp, err := a.observer.SubmitObserver(ctx)
	if err != nil {
		return nil, err
	}
	a.printCompletion(resp)
	return resp, nil
}

func (a *ActivityAdapter) printCompletion(resp *primary.CompletionResponse) {
	line := fmt.Sprintf("%s %s completed for %s", okMark(), resp.Activity, resp.DateKey)
	if resp.HasScore {
		line += fmt.Sprintf(" (score %d)", resp.Score)
	}
	fmt.Fprintln(a.out, line)

	if resp.WorkoutMinutes > 0 {
		fmt.Fprintf(a.out, "  Duration: %d min\n", resp.WorkoutMinutes)
	}
	if resp.NewBest {
		fmt.Fprintln(a.out, "  "+color.New(color.FgCyan).Sprint("New personal best"))
	}
	if resp.CourageGained {
		fmt.Fprintf(a.out, "  Courage under fear: %d\n", resp.Courage)
	}
	if resp.Streak != nil {
		fmt.Fprintf(a.out, "  Streak: %s\n", formatStreak(resp.Streak))
	}
	if resp.Weekly != nil {
		fmt.Fprintf(a.out, "  This week: %s\n", formatWeekly(resp.Weekly))
	}
}
