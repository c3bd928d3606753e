package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/format"
	"github.com/simaogato/finance-dashboard/internal/usecase/session"
)

func newEntityCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entity",
		Short: "Manage cards, funds and recurring payments",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:       "list <cards|funds|others>",
			Short:     "List one collection",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(domain.KindCard), string(domain.KindFund), string(domain.KindOther)},
			RunE: func(cmd *cobra.Command, args []string) error {
				kind, err := domain.ParseEntityKind(args[0])
				if err != nil {
					return err
				}
				return withSession(cmd.Context(), opts, cmd.ErrOrStderr(), func(ctx context.Context, _ *app, s *session.Session) error {
					items, err := s.Entities.List(ctx, kind)
					if err != nil {
						return err
					}
					return printEntities(cmd.OutOrStdout(), s.Currency.Current(ctx), items)
				})
			},
		},
		&cobra.Command{
			Use:   "add <cards|funds|others>",
			Short: "Append a record with default values and print its id",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				kind, err := domain.ParseEntityKind(args[0])
				if err != nil {
					return err
				}
				return withSession(cmd.Context(), opts, cmd.ErrOrStderr(), func(ctx context.Context, _ *app, s *session.Session) error {
					created, err := s.Entities.Add(ctx, kind)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(cmd.OutOrStdout(), created.EntityID())
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "update <kind> <id> <field> <value>",
			Short: "Replace one field of a record",
			Args:  cobra.ExactArgs(4),
			RunE: func(cmd *cobra.Command, args []string) error {
				kind, err := domain.ParseEntityKind(args[0])
				if err != nil {
					return err
				}
				return withSession(cmd.Context(), opts, cmd.ErrOrStderr(), func(ctx context.Context, _ *app, s *session.Session) error {
					return s.Entities.Update(ctx, kind, domain.ID(args[1]), args[2], args[3])
				})
			},
		},
		&cobra.Command{
			Use:   "remove <kind> <id>",
			Short: "Remove a record",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				kind, err := domain.ParseEntityKind(args[0])
				if err != nil {
					return err
				}
				return withSession(cmd.Context(), opts, cmd.ErrOrStderr(), func(ctx context.Context, _ *app, s *session.Session) error {
					return s.Entities.Remove(ctx, kind, domain.ID(args[1]))
				})
			},
		},
	)

	return cmd
}

func printEntities(out io.Writer, cur domain.Currency, items []domain.Entity) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, item := range items {
		switch e := item.(type) {
		case *domain.Card:
			fmt.Fprintf(w, "%s\t%s\tlimit %s\tmoney %s\tdebt %s\n", e.ID, e.Name,
				format.Money(e.Limit.Decimal, cur), format.Money(e.Money.Decimal, cur), format.Money(e.Debt.Decimal, cur))
		case *domain.Fund:
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Name, format.Money(e.Amount.Decimal, cur))
		case *domain.RecurringPayment:
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Name, format.Money(e.Amount.Decimal, cur))
		}
	}
	return w.Flush()
}
