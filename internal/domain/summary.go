package domain

// PricedLineItem is one priced row of a finalized order summary.
type PricedLineItem struct {
	PizzaName        string
	DoughDescription string
	PriceEach        float64
	Quantity         int
	LineCost         float64
	Ingredients      []string
}

// OrderSummary is the authoritative priced snapshot for an order. TotalCost
// comes from the pricing collaborator verbatim and is never recomputed from
// the line costs client-side.
type OrderSummary struct {
	OrderID   OrderID
	Items     []PricedLineItem
	TotalCost float64
}

// TranscriptTurn is one recorded utterance from the order's turn history.
type TranscriptTurn struct {
	Content      string
	Parsed       string
	UpdatedSlots int
}
