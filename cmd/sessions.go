package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSessionsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage recorded order sessions",
	}

	cmd.AddCommand(
		newSessionsListCmd(app),
	)

	return cmd
}

func newSessionsListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded order sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := app.sessions.List(cmd.Context())
			if err != nil {
				return err
			}

			for _, session := range sessions {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", session.ID, session.Phone, session.StartTime.Format(time.RFC3339))
			}

			return nil
		},
	}
}
