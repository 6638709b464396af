package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dukerupert/choreboard/internal/board"
	"github.com/dukerupert/choreboard/internal/clock"
	"github.com/dukerupert/choreboard/internal/config"
	"github.com/dukerupert/choreboard/internal/database"
	"github.com/dukerupert/choreboard/internal/logging"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "choreboard",
		Short: "Household chore board",
		Long: `choreboard tracks recurring household chores per family member,
daily completion and the reward minutes and coins they earn.

Running it without a subcommand starts the server.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			flags := cmd.Flags()
			if flags.Changed("db") {
				a.cfg.DBPath, _ = flags.GetString("db")
			}
			if flags.Changed("log-level") {
				a.cfg.LogLevel, _ = flags.GetString("log-level")
			}
			a.logger = logging.Setup(a.cfg.LogLevel, a.cfg.LogFormat)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	a.cfg = config.Load()
	root.PersistentFlags().String("db", a.cfg.DBPath, "path to the SQLite database")
	root.PersistentFlags().String("log-level", a.cfg.LogLevel, "debug, info, warn or error")

	root.AddCommand(
		newServeCmd(a),
		newResetCmd(a),
		newImportCmd(a),
		newExportCmd(a),
	)
	return root
}

// openService opens the database and builds the board core on the system
// clock. The caller closes the returned handle.
func (a *app) openService() (*board.Service, *sql.DB, error) {
	db, err := database.Open(a.cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return board.NewService(db, clock.System{}, a.logger.With("component", "board")), db, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("choreboard failed", "error", err)
		os.Exit(1)
	}
}
