// Package cli contains the cobra commands for the identityos binary.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vedantadhau820-alt/IdentityOS/internal/config"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ctxutil"
	"github.com/vedantadhau820-alt/IdentityOS/internal/wire"
)

// level is shared by the process logger so serve can lower it after startup.
var level = new(slog.LevelVar)

// Bootstrap loads config.toml, builds the logger and tags the command context
// with a request ID. It is the root command's PersistentPreRunE.
func Bootstrap(cmd *cobra.Command, args []string) error {
	dir, err := config.HomeDir()
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return err
	}

	lvl, err := parseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		lvl = slog.LevelDebug
	}
	level.Set(lvl)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	wire.Configure(cfg, logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(ctxutil.WithRequestID(ctx, newRequestID()))
	return nil
}

// Teardown closes the database after a command finishes.
func Teardown(cmd *cobra.Command, args []string) {
	if err := wire.Close(); err != nil {
		wire.Logger().Warn("failed to close database", "error", err)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log.level %q", s)
	}
	return l, nil
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// pollUntil calls step on every tick until it reports done or fails.
func pollUntil(ctx context.Context, every time.Duration, step func() (bool, error)) error {
	done, err := step()
	if err != nil || done {
		return err
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			done, err := step()
			if err != nil || done {
				return err
			}
		}
	}
}
