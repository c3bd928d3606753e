package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simaogato/finance-dashboard/internal/usecase/session"
)

func newCurrencyCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currency",
		Short: "Show the display currency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), opts, cmd.ErrOrStderr(), func(ctx context.Context, _ *app, s *session.Session) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), s.Currency.Current(ctx))
				return err
			})
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "toggle",
			Short: "Advance to the next supported currency",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(cmd.Context(), opts, cmd.ErrOrStderr(), func(ctx context.Context, _ *app, s *session.Session) error {
					next, err := s.Currency.Toggle(ctx)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(cmd.OutOrStdout(), next)
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "set <code>",
			Short: "Select a currency by code (TRY, UAH, EUR, USD)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(cmd.Context(), opts, cmd.ErrOrStderr(), func(ctx context.Context, _ *app, s *session.Session) error {
					c, err := s.Currency.Set(ctx, args[0])
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(cmd.OutOrStdout(), c)
					return err
				})
			},
		},
	)

	return cmd
}
