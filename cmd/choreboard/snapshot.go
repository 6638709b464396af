package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dukerupert/choreboard/internal/board"
)

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear completion on every chore",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, db, err := a.openService()
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := svc.ResetAllCompletions(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset %d chores\n", n)
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the board with a JSON snapshot (\"-\" reads stdin)",
		Long: `Replaces every user and chore with the contents of a snapshot file.
Older snapshots are accepted: missing frequencies become daily, missing
rewards and wallets become 0 and chores without a group are grouped by title.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open snapshot: %w", err)
				}
				defer f.Close()
				r = f
			}

			var snap board.Snapshot
			if err := json.NewDecoder(r).Decode(&snap); err != nil {
				return fmt.Errorf("decode snapshot: %w", err)
			}

			svc, db, err := a.openService()
			if err != nil {
				return err
			}
			defer db.Close()

			res, err := svc.Import(cmd.Context(), snap)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d users, %d chores in %d groups (%d skipped)\n",
				res.Users, res.Chores, res.Groups, res.SkippedChores)
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the board as a JSON snapshot to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, db, err := a.openService()
			if err != nil {
				return err
			}
			defer db.Close()

			snap, err := svc.Export(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		},
	}
}
