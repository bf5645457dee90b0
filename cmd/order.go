package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/voicepizza/pv/internal/adapters/transcript"
	"github.com/voicepizza/pv/internal/application"
	"github.com/voicepizza/pv/internal/domain"
)

func newOrderCmd(app *app) *cobra.Command {
	var phone string
	var feedURL string
	var showSummary bool

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Open an order and drive the voice conversation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOrder(cmd, app, phone, feedURL, showSummary)
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Customer phone number")
	cmd.Flags().StringVar(&feedURL, "feed", "", "Websocket URL of a speech-to-text transcript feed (default: typed input only)")
	cmd.Flags().BoolVar(&showSummary, "summary", true, "Render the priced summary after the conversation ends")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}

func runOrder(cmd *cobra.Command, app *app, phone, feedURL string, showSummary bool) error {
	var session domain.OrderSession
	err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Opening order...", func(ctx context.Context) error {
		var initErr error
		session, initErr = app.backend.Init(ctx, phone)
		return initErr
	})
	if err != nil {
		return err
	}

	if err := app.sessions.Save(cmd.Context(), session); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not record session: %v\n", err)
	}

	buffer := transcript.NewBuffer()

	if feedURL == "" {
		feedURL = app.feedURL
	}
	if feedURL != "" {
		feed := transcript.NewFeed(feedURL, buffer)
		if err := feed.Connect(cmd.Context()); err != nil {
			return err
		}
		defer func() { _ = feed.Close() }()
	}

	tracker := application.NewConversationTracker(app.backend, buffer, session.ID)

	dialog := newOrderDialogModel(cmd.Context(), session, tracker, buffer)
	program := tea.NewProgram(
		dialog,
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithContext(cmd.Context()),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run order dialog: %w", err)
	}

	if !showSummary {
		return nil
	}

	return renderOrderSummary(cmd, app, session.ID, true, false)
}
