package domain

type ConversationID string

type ConversationPhase string

const (
	PhaseNotStarted ConversationPhase = "not_started"
	PhaseActive     ConversationPhase = "active"
)

// LineItem is one pizza being built up within an order. MissingFields lists the
// attributes the parsing backend still needs before the item can be priced.
type LineItem struct {
	Pizza         string
	MissingFields []string
}

func (i LineItem) Complete() bool {
	return len(i.MissingFields) == 0
}

// ConversationState is owned by the tracker. ID is empty only before the first
// successful turn; once set it never changes for the lifetime of the session.
// Items is replaced wholesale on every turn response.
type ConversationState struct {
	ID      ConversationID
	Message string
	Items   []LineItem
}

func (s ConversationState) Phase() ConversationPhase {
	if s.ID == "" {
		return PhaseNotStarted
	}
	return PhaseActive
}

// TurnResult is the parsing backend's answer to one submitted turn.
// ConversationID is only populated when the turn started a new conversation.
type TurnResult struct {
	ConversationID ConversationID
	Message        string
	Items          []LineItem
}

// Partition splits items into pending (missing fields remain) and completed.
// It is recomputed at observation time and never stored, so the two views
// cannot drift from the item list.
func Partition(items []LineItem) (pending, completed []LineItem) {
	for _, item := range items {
		if item.Complete() {
			completed = append(completed, item)
		} else {
			pending = append(pending, item)
		}
	}
	return pending, completed
}

func PendingItems(items []LineItem) []LineItem {
	pending, _ := Partition(items)
	return pending
}

func CompletedItems(items []LineItem) []LineItem {
	_, completed := Partition(items)
	return completed
}
