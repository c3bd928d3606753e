package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simaogato/finance-dashboard/internal/adapter/repository/filestore"
	"github.com/simaogato/finance-dashboard/internal/usecase/seeder"
	"github.com/simaogato/finance-dashboard/internal/usecase/session"
)

func newResetCommand(opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the whole state with the first-run sample data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset discards every entity and snapshot; pass --yes to confirm")
			}

			return withSession(cmd.Context(), opts, cmd.ErrOrStderr(), func(ctx context.Context, a *app, s *session.Session) error {
				// Logic:
				// 1. Rewrite the local files with the sample state
				// 2. Load it into the session so a signed-in user pushes it remotely
				local := filestore.NewStateRepository(
					filestore.DirFor(a.cfg.Storage.DataDir, s.UserID), seeder.DefaultState(), a.logger)
				st, err := seeder.NewSeeder(local).Reset(ctx)
				if err != nil {
					return err
				}
				s.Store.Replace(st)

				_, err = fmt.Fprintln(cmd.OutOrStdout(), "state reset to sample data")
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
