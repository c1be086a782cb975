package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/session"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
	"github.com/vedantadhau820-alt/IdentityOS/internal/wire"
)

const pollInterval = 250 * time.Millisecond

// StabilityCmd returns the stability command
func StabilityCmd() *cobra.Command {
	var (
		skipBreathing bool
		req           primary.SubmitStabilityRequest
	)

	cmd := &cobra.Command{
		Use:   "stability",
		Short: "Run the breathing guide and record a reflection",
		Long: `Run three breathing cycles (inhale, exhale, observe) and then record the
situation you faced and the action you took.

The reflection is scored from its intensity and completeness.`,
		Example: `  identityos stability --situation "hard meeting" --action "paused before replying"
  identityos stability --skip-breathing --situation "..." --action "..." --intensity 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			adapter := wire.ActivityAdapter()

			st, err := adapter.StartStability(ctx, skipBreathing)
			if err != nil {
				return err
			}

			err = pollUntil(ctx, pollInterval, func() (bool, error) {
				st, err = adapter.StabilityPhase(ctx, st)
				if err != nil {
					return false, err
				}
				return st.State != string(session.StabilityBreathing), nil
			})
			if err != nil {
				return err
			}

			_, err = adapter.SubmitStability(ctx, req)
			return err
		},
	}

	cmd.Flags().BoolVar(&skipBreathing, "skip-breathing", false, "Go straight to the reflection")
	cmd.Flags().StringVar(&req.Situation, "situation", "", "What happened (required)")
	cmd.Flags().StringVar(&req.Action, "action", "", "What you did about it (required)")
	cmd.Flags().StringVar(&req.Trigger, "trigger", "", "What set it off")
	cmd.Flags().StringVar(&req.Reframe, "reframe", "", "How you reframed it")
	cmd.Flags().IntVar(&req.Intensity, "intensity", 5, "Emotional intensity 1-10")
	cmd.Flags().StringVar(&req.SecondOrder, "second-order", "", "Second-order consequence you considered")
	return cmd
}

// WorkoutCmd returns the workout command
func WorkoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Time and record a workout",
	}
	cmd.AddCommand(workoutStartCmd())
	cmd.AddCommand(workoutStatusCmd())
	cmd.AddCommand(workoutFinishCmd())
	return cmd
}

func workoutStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the workout timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.ActivityAdapter().StartWorkout(cmd.Context())
			return err
		},
	}
}

func workoutStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.ActivityAdapter().WorkoutStatus(cmd.Context())
			return err
		},
	}
}

func workoutFinishCmd() *cobra.Command {
	var workoutType string

	cmd := &cobra.Command{
		Use:   "finish",
		Short: "Stop the timer and record the workout",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.ActivityAdapter().FinishWorkout(cmd.Context(), workoutType)
			return err
		},
	}

	cmd.Flags().StringVar(&workoutType, "type", session.DefaultWorkoutType, "Workout type (strength, cardio, mobility, ...)")
	return cmd
}

// SocialCmd returns the social command
func SocialCmd() *cobra.Command {
	var req primary.SubmitSocialRequest

	cmd := &cobra.Command{
		Use:   "social",
		Short: "Record today's social mission",
		Long: `Record a social mission you completed: how hard it was, how afraid you
felt, and what happened. A fear intensity of 6 or more counts toward courage
under fear.`,
		Example: `  identityos social --difficulty 3 --intensity 8 --outcome "asked for the raise"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			adapter := wire.ActivityAdapter()

			if _, err := adapter.StartSocial(ctx); err != nil {
				return err
			}
			_, err := adapter.SubmitSocial(ctx, req)
			return err
		},
	}

	cmd.Flags().IntVar(&req.Difficulty, "difficulty", session.DefaultDifficulty, "Mission difficulty (1 or more)")
	cmd.Flags().IntVar(&req.Intensity, "intensity", 5, "Fear intensity 1-10")
	cmd.Flags().StringVar(&req.Outcome, "outcome", "", "What happened")
	return cmd
}

// ObserverCmd returns the observer command
func ObserverCmd() *cobra.Command {
	var skipCountdown bool

	cmd := &cobra.Command{
		Use:   "observer",
		Short: "Run the observer countdown and record it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			adapter := wire.ActivityAdapter()

			st, err := adapter.StartObserver(ctx, skipCountdown)
			if err != nil {
				return err
			}

			last := st.RemainingSeconds
			err = pollUntil(ctx, pollInterval, func() (bool, error) {
				st, err := adapter.ObserverCountdown(ctx)
				if err != nil {
					return false, err
				}
				if st.RemainingSeconds != last && st.RemainingSeconds%5 == 0 && st.RemainingSeconds > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", st.Display)
				}
				last = st.RemainingSeconds
				return st.State != string(session.ObserverObserving), nil
			})
			if err != nil {
				return err
			}

			_, err = adapter.SubmitObserver(ctx)
			return err
		},
	}

	cmd.Flags().BoolVar(&skipCountdown, "skip-countdown", false, "Go straight to the questions")
	return cmd
}
