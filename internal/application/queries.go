package application

import "github.com/voicepizza/pv/internal/domain"

type LoadState string

const (
	LoadIdle   LoadState = "idle"
	LoadLoaded LoadState = "loaded"
	LoadFailed LoadState = "failed"
)

// SummarySection is the priced-summary half of an order view. State is
// LoadIdle before the first Load, then LoadLoaded or LoadFailed; a loaded
// snapshot with no items means the order is genuinely empty.
type SummarySection struct {
	State    LoadState
	Snapshot domain.OrderSummary
	Err      error
}

func (s SummarySection) Empty() bool {
	return s.State == LoadLoaded && len(s.Snapshot.Items) == 0
}

// HistorySection is the transcript-history half of an order view.
type HistorySection struct {
	State LoadState
	Turns []domain.TranscriptTurn
	Err   error
}

func (h HistorySection) Empty() bool {
	return h.State == LoadLoaded && len(h.Turns) == 0
}

// OrderView is the read-only snapshot the aggregator exposes. The two halves
// fail independently.
type OrderView struct {
	OrderID domain.OrderID
	Summary SummarySection
	History HistorySection
}

func (v OrderView) Failed() bool {
	return v.Summary.State == LoadFailed && v.History.State == LoadFailed
}
