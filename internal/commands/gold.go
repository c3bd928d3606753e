package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/simaogato/finance-dashboard/internal/format"
	"github.com/simaogato/finance-dashboard/internal/usecase/investment"
	"github.com/simaogato/finance-dashboard/internal/usecase/session"
)

func newGoldCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gold",
		Short: "Show the gold holding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), opts, cmd.ErrOrStderr(), func(ctx context.Context, _ *app, s *session.Session) error {
				h, err := s.Investment.GetHolding(ctx)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s of portfolio\n",
					format.Grams(h.Grams), format.Money(h.Value, h.Currency), format.Percent(h.PortfolioWeight))
				return err
			})
		},
	}

	adjust := func(use, short string, op func(*investment.InvestmentService, context.Context, string) (decimal.Decimal, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <grams>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(cmd.Context(), opts, cmd.ErrOrStderr(), func(ctx context.Context, _ *app, s *session.Session) error {
					grams, err := op(s.Investment, ctx, args[0])
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(cmd.OutOrStdout(), format.Grams(grams))
					return err
				})
			},
		}
	}

	cmd.AddCommand(
		adjust("add", "Increase the holding", (*investment.InvestmentService).AddGrams),
		adjust("remove", "Decrease the holding, never below zero", (*investment.InvestmentService).RemoveGrams),
		adjust("set", "Replace the holding", (*investment.InvestmentService).SetGrams),
	)

	return cmd
}
