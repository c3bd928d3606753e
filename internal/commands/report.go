package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simaogato/finance-dashboard/internal/report"
	"github.com/simaogato/finance-dashboard/internal/usecase/session"
)

func newReportCommand(opts *globalOptions) *cobra.Command {
	var (
		style   string
		width   int
		refresh bool
		raw     bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard as a terminal report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), opts, cmd.ErrOrStderr(), func(ctx context.Context, a *app, s *session.Session) error {
				if refresh {
					if _, err := a.market.Refresh(ctx); err != nil {
						a.logger.WithError(err).Warn("Market refresh failed, using cached data")
					}
				}

				d, err := s.Dashboard.GetDashboard(ctx)
				if err != nil {
					return err
				}

				md := report.Markdown(d)
				if raw {
					_, err = fmt.Fprint(cmd.OutOrStdout(), md)
					return err
				}
				out, err := report.Render(md, style, width)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "glamour style: dark, light, notty, ascii (empty: detect)")
	cmd.Flags().IntVar(&width, "width", 80, "word wrap width")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch fresh market data before rendering")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the markdown source")

	return cmd
}
