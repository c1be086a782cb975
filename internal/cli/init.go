package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vedantadhau820-alt/IdentityOS/internal/config"
	"github.com/vedantadhau820-alt/IdentityOS/internal/db"
	"github.com/vedantadhau820-alt/IdentityOS/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the tracker state directory",
		Long: `Write a default config.toml and create the daily record database.

The state directory is ~/.identityos unless IDENTITYOS_HOME is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			dir := cfg.Storage.StateDir

			path := filepath.Join(dir, config.FileName)
			if _, err := os.Stat(path); err == nil && !force {
				fmt.Printf("✓ Config already exists at %s\n", path)
			} else {
				if err := config.SaveConfig(dir, cfg); err != nil {
					return err
				}
				fmt.Printf("✓ Config written to %s\n", path)
			}

			database, err := db.Open(cfg.DBPath(), wire.Logger())
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer database.Close()

			version, err := db.CurrentVersion(database)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Database ready at %s (schema v%d)\n", cfg.DBPath(), version)
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  identityos today")
			fmt.Println("  identityos serve")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config.toml")
	return cmd
}
