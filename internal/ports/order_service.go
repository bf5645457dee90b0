package ports

import (
	"context"

	"github.com/voicepizza/pv/internal/domain"
)

// OrderService covers order lifecycle calls against the pizzeria backend:
// creating an order record and fetching the priced summary and turn history.
type OrderService interface {
	Init(ctx context.Context, phone string) (domain.OrderSession, error)
	Summary(ctx context.Context, orderID domain.OrderID) (domain.OrderSummary, error)
	TranscriptHistory(ctx context.Context, orderID domain.OrderID) ([]domain.TranscriptTurn, error)
}
