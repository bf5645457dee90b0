package ports

import (
	"context"

	"github.com/voicepizza/pv/internal/domain"
)

// ConversationService is the conversational parsing collaborator. Start opens a
// new conversation for an order; Continue appends a turn to an existing one.
type ConversationService interface {
	Start(ctx context.Context, orderID domain.OrderID, initialText string) (domain.TurnResult, error)
	Continue(ctx context.Context, conversationID domain.ConversationID, userText string) (domain.TurnResult, error)
}
