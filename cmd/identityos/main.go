package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vedantadhau820-alt/IdentityOS/internal/cli"
	"github.com/vedantadhau820-alt/IdentityOS/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "identityos",
		Short:   "IdentityOS - daily habit tracker",
		Version: version.String(),
		Long: `IdentityOS tracks four daily controls: stability, workout, social and
observer. Completing all four extends your streak.`,
		SilenceUsage:      true,
		PersistentPreRunE: cli.Bootstrap,
		PersistentPostRun: cli.Teardown,
	}
	rootCmd.PersistentFlags().Bool("verbose", false, "Log at debug level")

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.TodayCmd())
	rootCmd.AddCommand(cli.WhoAmICmd())

	// Daily controls
	rootCmd.AddCommand(cli.StabilityCmd())
	rootCmd.AddCommand(cli.WorkoutCmd())
	rootCmd.AddCommand(cli.SocialCmd())
	rootCmd.AddCommand(cli.ObserverCmd())

	// Progress
	rootCmd.AddCommand(cli.StatsCmd())
	rootCmd.AddCommand(cli.ProfileCmd())
	rootCmd.AddCommand(cli.HistoryCmd())

	// Web app
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.AssetsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
