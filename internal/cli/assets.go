package cli

import (
	"github.com/spf13/cobra"

	"github.com/vedantadhau820-alt/IdentityOS/internal/wire"
)

// AssetsCmd returns the assets command
func AssetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage the offline web asset cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "install",
		Short: "Cache every asset of the current version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.AssetAdapter().Install(cmd.Context())
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "activate",
		Short: "Delete caches of every other version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.AssetAdapter().Activate(cmd.Context())
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show cached versions and entry counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.AssetAdapter().Status(cmd.Context())
			return err
		},
	})
	return cmd
}
