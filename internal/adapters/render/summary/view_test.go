package summary

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voicepizza/pv/internal/application"
	"github.com/voicepizza/pv/internal/domain"
)

func TestRenderFullOrderView(t *testing.T) {
	output, err := Render(application.OrderView{
		OrderID: "7",
		Summary: application.SummarySection{
			State: application.LoadLoaded,
			Snapshot: domain.OrderSummary{
				OrderID: "7",
				Items: []domain.PricedLineItem{
					{
						PizzaName:        "pepperoni",
						DoughDescription: "large, thick",
						PriceEach:        20.00,
						Quantity:         1,
						LineCost:         20.00,
						Ingredients:      []string{"cheese", "pepperoni"},
					},
					{
						PizzaName:        "hawaiian",
						DoughDescription: "small, thin",
						PriceEach:        22.50,
						Quantity:         1,
						LineCost:         22.50,
						Ingredients:      []string{"cheese", "ham", "pineapple"},
					},
				},
				TotalCost: 42.50,
			},
		},
		History: application.HistorySection{
			State: application.LoadLoaded,
			Turns: []domain.TranscriptTurn{
				{Content: "Large pepperoni", Parsed: "pepperoni(size=large)", UpdatedSlots: 2},
			},
		},
	}, RenderOptions{ShowHistory: true})

	require.NoError(t, err)
	assert.Contains(t, output, "Order summary #7")
	assert.Contains(t, output, "items: 2")
	assert.Contains(t, output, "pepperoni")
	assert.Contains(t, output, "dough: large, thick")
	assert.Contains(t, output, "22.50 each x 1 = 22.50")
	assert.Contains(t, output, "ingredients: cheese, ham, pineapple")
	assert.Contains(t, output, "Total: 42.50")
	assert.Contains(t, output, "Transcript history")
	assert.Contains(t, output, `"Large pepperoni"`)
	assert.Contains(t, output, "updated slots: 2")
}

func TestRenderTotalComesFromSnapshotNotLineSum(t *testing.T) {
	output, err := Render(application.OrderView{
		OrderID: "7",
		Summary: application.SummarySection{
			State: application.LoadLoaded,
			Snapshot: domain.OrderSummary{
				Items: []domain.PricedLineItem{
					{PizzaName: "pepperoni", LineCost: 10.00},
				},
				TotalCost: 42.50,
			},
		},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "Total: 42.50")
	assert.NotContains(t, output, "Total: 10.00")
}

func TestRenderFailedSummaryWithLoadedHistory(t *testing.T) {
	output, err := Render(application.OrderView{
		OrderID: "7",
		Summary: application.SummarySection{
			State: application.LoadFailed,
			Err:   errors.New("summary endpoint down"),
		},
		History: application.HistorySection{
			State: application.LoadLoaded,
			Turns: []domain.TranscriptTurn{{Content: "Large pepperoni"}},
		},
	}, RenderOptions{ShowHistory: true})

	require.NoError(t, err)
	assert.Contains(t, output, "Could not fetch the order summary.")
	assert.Contains(t, output, `"Large pepperoni"`)
}

func TestRenderLoadedEmptyHalves(t *testing.T) {
	output, err := Render(application.OrderView{
		OrderID: "7",
		Summary: application.SummarySection{State: application.LoadLoaded},
		History: application.HistorySection{State: application.LoadLoaded},
	}, RenderOptions{ShowHistory: true})

	require.NoError(t, err)
	assert.Contains(t, output, "No items on this order yet.")
	assert.Contains(t, output, "No transcript history recorded.")
}

func TestRenderHistoryFailureDoesNotHideSummary(t *testing.T) {
	output, err := Render(application.OrderView{
		OrderID: "7",
		Summary: application.SummarySection{
			State: application.LoadLoaded,
			Snapshot: domain.OrderSummary{
				Items:     []domain.PricedLineItem{{PizzaName: "margherita", LineCost: 18}},
				TotalCost: 18,
			},
		},
		History: application.HistorySection{
			State: application.LoadFailed,
			Err:   errors.New("transcript endpoint down"),
		},
	}, RenderOptions{ShowHistory: true})

	require.NoError(t, err)
	assert.Contains(t, output, "margherita")
	assert.Contains(t, output, "Could not fetch the transcript history.")
}
