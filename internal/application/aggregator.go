package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/voicepizza/pv/internal/domain"
	"github.com/voicepizza/pv/internal/ports"
)

// SummaryAggregator fetches the authoritative priced summary and the turn
// history for an order. The two fetches are independent: either half may fail
// without blocking the other, and each half carries its own load state.
type SummaryAggregator struct {
	orders ports.OrderService

	mu   sync.Mutex
	view OrderView
}

func NewSummaryAggregator(orders ports.OrderService) *SummaryAggregator {
	return &SummaryAggregator{
		orders: orders,
		view: OrderView{
			Summary: SummarySection{State: LoadIdle},
			History: HistorySection{State: LoadIdle},
		},
	}
}

// Load fetches a fresh snapshot for orderID. An empty id is a no-op returning
// the current view. The result is point-in-time; callers needing freshness
// call Load again.
func (a *SummaryAggregator) Load(ctx context.Context, orderID domain.OrderID) OrderView {
	if orderID == "" {
		return a.View()
	}

	view := OrderView{OrderID: orderID}

	summary, err := a.orders.Summary(ctx, orderID)
	if err != nil {
		view.Summary = SummarySection{State: LoadFailed, Err: fmt.Errorf("fetch order summary: %w", err)}
	} else {
		view.Summary = SummarySection{State: LoadLoaded, Snapshot: summary}
	}

	turns, err := a.orders.TranscriptHistory(ctx, orderID)
	if err != nil {
		view.History = HistorySection{State: LoadFailed, Err: fmt.Errorf("fetch transcript history: %w", err)}
	} else {
		view.History = HistorySection{State: LoadLoaded, Turns: turns}
	}

	a.mu.Lock()
	a.view = view
	a.mu.Unlock()

	return view
}

// View returns the last loaded snapshot without refetching.
func (a *SummaryAggregator) View() OrderView {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.view
}
