package cli

import (
	"github.com/spf13/cobra"

	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
	"github.com/vedantadhau820-alt/IdentityOS/internal/wire"
)

// TodayCmd returns the today command
func TodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's controls, streak and weekly rating",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.TrackerAdapter().Today(cmd.Context())
			return err
		},
	}
}

// WhoAmICmd returns the whoami command
func WhoAmICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the local user ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.TrackerAdapter().WhoAmI(cmd.Context())
			return err
		},
	}
}

// StatsCmd returns the stats command
func StatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the current streak and weekly workout rating",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.TrackerAdapter().Stats(cmd.Context())
			return err
		},
	}
}

// ProfileCmd returns the profile command
func ProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show personal bests and courage under fear",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.TrackerAdapter().Profile(cmd.Context())
			return err
		},
	}
}

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	var filters primary.HistoryFilters

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List confirmed completions",
		Example: `  identityos history
  identityos history --days 30 --activity workout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.TrackerAdapter().History(cmd.Context(), filters)
			return err
		},
	}

	cmd.Flags().IntVar(&filters.Days, "days", 7, "Window ending today, in days")
	cmd.Flags().StringVar(&filters.Activity, "activity", "", "Only this activity (stability, workout, social, observer)")
	cmd.Flags().IntVar(&filters.Limit, "limit", 0, "Maximum number of entries")
	return cmd
}
