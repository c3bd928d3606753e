package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simaogato/finance-dashboard/internal/usecase/session"
)

func newExportCommand(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup document of the whole state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), opts, cmd.ErrOrStderr(), func(ctx context.Context, _ *app, s *session.Session) error {
				doc, err := s.Backup.Export(ctx)
				if err != nil {
					return err
				}
				if output == "" || output == "-" {
					_, err = cmd.OutOrStdout().Write(append(doc, '\n'))
					return err
				}
				if err := os.WriteFile(output, doc, 0o600); err != nil {
					return fmt.Errorf("failed to write backup: %w", err)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func newImportCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the whole state with a backup document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read backup: %w", err)
			}

			return withSession(cmd.Context(), opts, cmd.ErrOrStderr(), func(ctx context.Context, _ *app, s *session.Session) error {
				st, err := s.Backup.Import(ctx, doc)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d cards, %d funds, %d others, %d snapshots\n",
					len(st.Cards), len(st.Funds), len(st.Others), len(st.History))
				return err
			})
		},
	}
}
