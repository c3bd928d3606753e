package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/format"
	"github.com/simaogato/finance-dashboard/internal/usecase/session"
)

func newSnapshotCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage net worth snapshots",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "save",
			Short: "Record the current headline metrics",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(cmd.Context(), opts, cmd.ErrOrStderr(), func(ctx context.Context, _ *app, s *session.Session) error {
					snap, err := s.Snapshots.Save(ctx)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", snap.ID, format.Money(snap.OverallNet.Decimal, snap.Currency))
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a snapshot",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(cmd.Context(), opts, cmd.ErrOrStderr(), func(ctx context.Context, _ *app, s *session.Session) error {
					return s.Snapshots.Delete(ctx, domain.ID(args[0]))
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List snapshots, oldest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(cmd.Context(), opts, cmd.ErrOrStderr(), func(ctx context.Context, _ *app, s *session.Session) error {
					history, err := s.Snapshots.List(ctx)
					if err != nil {
						return err
					}

					w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tDATE\tNET\tASSETS\tDEBT")
					for _, snap := range history {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
							snap.ID,
							snap.Date.Format("2006-01-02 15:04"),
							format.Money(snap.OverallNet.Decimal, snap.Currency),
							format.Money(snap.TotalAssets.Decimal, snap.Currency),
							format.Money(snap.TotalDebt.Decimal, snap.Currency),
						)
					}
					return w.Flush()
				})
			},
		},
	)

	return cmd
}
