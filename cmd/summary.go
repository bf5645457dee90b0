package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	summaryadapter "github.com/voicepizza/pv/internal/adapters/render/summary"
	"github.com/voicepizza/pv/internal/application"
	"github.com/voicepizza/pv/internal/domain"
)

func newSummaryCmd(app *app) *cobra.Command {
	var showHistory bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary [order-id]",
		Short: "Fetch and display the priced summary of an order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := resolveOrderID(cmd, app, args)
			if err != nil {
				return err
			}

			return renderOrderSummary(cmd, app, orderID, showHistory, asJSON)
		},
	}

	cmd.Flags().BoolVar(&showHistory, "history", false, "Include the transcript history")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func resolveOrderID(cmd *cobra.Command, app *app, args []string) (domain.OrderID, error) {
	if len(args) > 0 && args[0] != "" {
		return domain.OrderID(args[0]), nil
	}

	session, err := app.sessions.Latest(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return "", errors.New("no recorded sessions; pass an order id or start one with `pv order`")
		}
		return "", fmt.Errorf("load latest session: %w", err)
	}

	return session.ID, nil
}

func renderOrderSummary(cmd *cobra.Command, app *app, orderID domain.OrderID, showHistory, asJSON bool) error {
	var view application.OrderView
	fetch := func(ctx context.Context) error {
		view = app.aggregator.Load(ctx, orderID)
		return nil
	}

	if asJSON {
		if err := fetch(cmd.Context()); err != nil {
			return err
		}
	} else {
		if err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching order summary...", fetch); err != nil {
			return err
		}
	}

	if view.Failed() {
		return fmt.Errorf("fetch order %s: %w", orderID, view.Summary.Err)
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(viewToJSON(view, showHistory))
	}

	rendered, err := app.summaryRenderer(view, summaryadapter.RenderOptions{ShowHistory: showHistory})
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

type pricedItemJSON struct {
	Pizza       string   `json:"pizza"`
	Dough       string   `json:"dough"`
	PriceEach   float64  `json:"price_each"`
	Quantity    int      `json:"quantity"`
	LineCost    float64  `json:"line_cost"`
	Ingredients []string `json:"ingredients,omitempty"`
}

type summarySnapshotJSON struct {
	Items     []pricedItemJSON `json:"items"`
	TotalCost float64          `json:"total_cost"`
}

type summarySectionJSON struct {
	State    application.LoadState `json:"state"`
	Snapshot *summarySnapshotJSON  `json:"snapshot,omitempty"`
	Error    string                `json:"error,omitempty"`
}

type transcriptTurnJSON struct {
	Content      string `json:"content"`
	Parsed       string `json:"parsed,omitempty"`
	UpdatedSlots int    `json:"updated_slots"`
}

type historySectionJSON struct {
	State application.LoadState `json:"state"`
	Turns []transcriptTurnJSON  `json:"turns,omitempty"`
	Error string                `json:"error,omitempty"`
}

type orderViewJSON struct {
	OrderID domain.OrderID      `json:"order_id"`
	Summary summarySectionJSON  `json:"summary"`
	History *historySectionJSON `json:"history,omitempty"`
}

func viewToJSON(view application.OrderView, showHistory bool) orderViewJSON {
	out := orderViewJSON{
		OrderID: view.OrderID,
		Summary: summarySectionJSON{State: view.Summary.State},
	}

	if view.Summary.State == application.LoadLoaded {
		snapshot := summarySnapshotJSON{
			Items:     make([]pricedItemJSON, 0, len(view.Summary.Snapshot.Items)),
			TotalCost: view.Summary.Snapshot.TotalCost,
		}
		for _, item := range view.Summary.Snapshot.Items {
			snapshot.Items = append(snapshot.Items, pricedItemJSON{
				Pizza:       item.PizzaName,
				Dough:       item.DoughDescription,
				PriceEach:   item.PriceEach,
				Quantity:    item.Quantity,
				LineCost:    item.LineCost,
				Ingredients: item.Ingredients,
			})
		}
		out.Summary.Snapshot = &snapshot
	}
	if view.Summary.Err != nil {
		out.Summary.Error = view.Summary.Err.Error()
	}

	if showHistory {
		history := historySectionJSON{State: view.History.State}
		if view.History.State == application.LoadLoaded {
			history.Turns = make([]transcriptTurnJSON, 0, len(view.History.Turns))
			for _, turn := range view.History.Turns {
				history.Turns = append(history.Turns, transcriptTurnJSON{
					Content:      turn.Content,
					Parsed:       turn.Parsed,
					UpdatedSlots: turn.UpdatedSlots,
				})
			}
		}
		if view.History.Err != nil {
			history.Error = view.History.Err.Error()
		}
		out.History = &history
	}

	return out
}
