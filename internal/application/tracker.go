package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/voicepizza/pv/internal/domain"
	"github.com/voicepizza/pv/internal/ports"
)

var (
	// ErrTurnInFlight rejects a turn submitted while a previous one has not
	// resolved yet. Overlapping turns would apply their updates in completion
	// order rather than issue order.
	ErrTurnInFlight = errors.New("a turn is already in flight")

	// ErrTurnDiscarded reports a turn whose response arrived after the tracker
	// was reset; its state update was not applied.
	ErrTurnDiscarded = errors.New("turn response discarded after reset")

	ErrNoConversationID = errors.New("start response is missing a conversation id")
)

// ConversationTracker owns conversation identity and the turn protocol for one
// order session. The first successful turn starts the conversation and adopts
// the backend's conversation id; every later turn continues that conversation.
// Message and items are replaced wholesale from each turn response.
type ConversationTracker struct {
	conversations ports.ConversationService
	transcript    ports.TranscriptSource
	orderID       domain.OrderID

	mu         sync.Mutex
	state      domain.ConversationState
	inFlight   bool
	generation uint64
}

func NewConversationTracker(conversations ports.ConversationService, transcript ports.TranscriptSource, orderID domain.OrderID) *ConversationTracker {
	return &ConversationTracker{
		conversations: conversations,
		transcript:    transcript,
		orderID:       orderID,
	}
}

func (t *ConversationTracker) OrderID() domain.OrderID {
	return t.orderID
}

func (t *ConversationTracker) State() domain.ConversationState {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.snapshotLocked()
}

func (t *ConversationTracker) Pending() []domain.LineItem {
	return domain.PendingItems(t.State().Items)
}

func (t *ConversationTracker) Completed() []domain.LineItem {
	return domain.CompletedItems(t.State().Items)
}

// SubmitTurn sends rawText as one turn. Empty text is a valid (empty) turn;
// guarding against it is the caller's UX concern. On success the transcript
// source is cleared; on failure both the conversation state and the transcript
// are left untouched so the utterance can be resent.
func (t *ConversationTracker) SubmitTurn(ctx context.Context, rawText string) (domain.ConversationState, error) {
	t.mu.Lock()
	if t.inFlight {
		state := t.snapshotLocked()
		t.mu.Unlock()
		return state, ErrTurnInFlight
	}
	t.inFlight = true
	generation := t.generation
	phase := t.state.Phase()
	conversationID := t.state.ID
	t.mu.Unlock()

	var result domain.TurnResult
	var err error
	switch phase {
	case domain.PhaseNotStarted:
		result, err = t.conversations.Start(ctx, t.orderID, rawText)
	case domain.PhaseActive:
		result, err = t.conversations.Continue(ctx, conversationID, rawText)
	default:
		err = fmt.Errorf("unknown conversation phase %q", phase)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.inFlight = false

	if err != nil {
		return t.snapshotLocked(), fmt.Errorf("submit turn: %w", err)
	}

	if generation != t.generation {
		return t.snapshotLocked(), ErrTurnDiscarded
	}

	if phase == domain.PhaseNotStarted {
		if result.ConversationID == "" {
			return t.snapshotLocked(), ErrNoConversationID
		}
		t.state.ID = result.ConversationID
	}
	t.state.Message = result.Message
	t.state.Items = result.Items
	t.transcript.Reset()

	return t.snapshotLocked(), nil
}

// Reset returns the tracker to its initial state and clears the transcript.
// A turn still in flight when Reset is called has its response discarded.
func (t *ConversationTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.generation++
	t.state = domain.ConversationState{}
	t.transcript.Reset()
}

func (t *ConversationTracker) snapshotLocked() domain.ConversationState {
	state := t.state
	state.Items = append([]domain.LineItem(nil), t.state.Items...)
	return state
}
