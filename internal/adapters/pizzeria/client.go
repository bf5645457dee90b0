package pizzeria

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/voicepizza/pv/internal/domain"
	"github.com/voicepizza/pv/internal/ports"
)

const maxResponseBytes = 1 << 20

// Client talks to the pizzeria backend over HTTP. It implements both the
// conversation collaborator and the order lifecycle collaborator.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Clock          ports.Clock
}

var (
	_ ports.ConversationService = (*Client)(nil)
	_ ports.OrderService        = (*Client)(nil)
)

type initOrderRequest struct {
	Phone string `json:"phone"`
}

type initOrderResponse struct {
	ID             wireID `json:"id"`
	OrderStartTime string `json:"order_start_time"`
}

type startConversationRequest struct {
	OrderID     string `json:"order_id"`
	InitialText string `json:"initial_text"`
}

type continueConversationRequest struct {
	ConversationID string `json:"conversation_id"`
	UserText       string `json:"user_text"`
}

type parsedItem struct {
	Pizza       *string  `json:"pizza"`
	MissingInfo []string `json:"missing_info"`
}

type conversationResponse struct {
	ConversationID string       `json:"conversation_id"`
	Message        string       `json:"message"`
	ParsedItems    []parsedItem `json:"parsed_items"`
	PendingItems   []parsedItem `json:"pending_items"`
	CompletedItems []parsedItem `json:"completed_items"`
}

type summaryItem struct {
	PizzaName   string   `json:"pizza_name"`
	DoughDesc   string   `json:"dough_desc"`
	PriceEach   float64  `json:"price_each"`
	Quantity    int      `json:"quantity"`
	Cost        float64  `json:"cost"`
	Ingredients []string `json:"ingredients"`
}

type summaryResponse struct {
	OrderID   wireID        `json:"order_id"`
	Items     []summaryItem `json:"items"`
	TotalCost float64       `json:"total_cost"`
}

type transcriptItem struct {
	Content      string          `json:"content"`
	Parsed       json.RawMessage `json:"parsed"`
	UpdatedSlots int             `json:"updated_slots"`
}

type transcriptResponse struct {
	Items []transcriptItem `json:"items"`
}

type apiErrorResponse struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// wireID accepts both numeric and string identifiers; the original backend
// serves numeric order ids.
type wireID string

func (w *wireID) UnmarshalJSON(data []byte) error {
	var number json.Number
	if err := json.Unmarshal(data, &number); err == nil {
		*w = wireID(number.String())
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*w = wireID(s)
	return nil
}

func (c *Client) Init(ctx context.Context, phone string) (domain.OrderSession, error) {
	if phone == "" {
		return domain.OrderSession{}, errors.New("phone number is required")
	}

	var payload initOrderResponse
	if err := c.postJSON(ctx, "/orders/init", initOrderRequest{Phone: phone}, &payload); err != nil {
		return domain.OrderSession{}, fmt.Errorf("init order: %w", err)
	}
	if payload.ID == "" {
		return domain.OrderSession{}, errors.New("init order: response missing order id")
	}

	startTime := parseStartTime(payload.OrderStartTime)
	if startTime.IsZero() {
		startTime = c.clock().Now()
	}

	return domain.OrderSession{
		ID:        domain.OrderID(payload.ID),
		Phone:     phone,
		StartTime: startTime,
	}, nil
}

func (c *Client) Start(ctx context.Context, orderID domain.OrderID, initialText string) (domain.TurnResult, error) {
	request := startConversationRequest{
		OrderID:     string(orderID),
		InitialText: initialText,
	}

	var payload conversationResponse
	if err := c.postJSON(ctx, "/conversation/start", request, &payload); err != nil {
		return domain.TurnResult{}, fmt.Errorf("start conversation: %w", err)
	}

	result := turnResultFromResponse(payload)
	result.ConversationID = domain.ConversationID(payload.ConversationID)
	return result, nil
}

func (c *Client) Continue(ctx context.Context, conversationID domain.ConversationID, userText string) (domain.TurnResult, error) {
	if conversationID == "" {
		return domain.TurnResult{}, errors.New("conversation id is required")
	}

	request := continueConversationRequest{
		ConversationID: string(conversationID),
		UserText:       userText,
	}

	var payload conversationResponse
	if err := c.postJSON(ctx, "/conversation/continue", request, &payload); err != nil {
		return domain.TurnResult{}, fmt.Errorf("continue conversation: %w", err)
	}

	return turnResultFromResponse(payload), nil
}

func (c *Client) Summary(ctx context.Context, orderID domain.OrderID) (domain.OrderSummary, error) {
	if orderID == "" {
		return domain.OrderSummary{}, errors.New("order id is required")
	}

	var payload summaryResponse
	if err := c.getJSON(ctx, "/orders/summary/"+url.PathEscape(string(orderID)), &payload); err != nil {
		return domain.OrderSummary{}, fmt.Errorf("fetch order summary: %w", err)
	}

	items := make([]domain.PricedLineItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, domain.PricedLineItem{
			PizzaName:        item.PizzaName,
			DoughDescription: item.DoughDesc,
			PriceEach:        item.PriceEach,
			Quantity:         item.Quantity,
			LineCost:         item.Cost,
			Ingredients:      item.Ingredients,
		})
	}

	summary := domain.OrderSummary{
		OrderID:   domain.OrderID(payload.OrderID),
		Items:     items,
		TotalCost: payload.TotalCost,
	}
	if summary.OrderID == "" {
		summary.OrderID = orderID
	}

	return summary, nil
}

func (c *Client) TranscriptHistory(ctx context.Context, orderID domain.OrderID) ([]domain.TranscriptTurn, error) {
	if orderID == "" {
		return nil, errors.New("order id is required")
	}

	var payload transcriptResponse
	if err := c.getJSON(ctx, "/orders/transcript/"+url.PathEscape(string(orderID)), &payload); err != nil {
		return nil, fmt.Errorf("fetch transcript history: %w", err)
	}

	turns := make([]domain.TranscriptTurn, 0, len(payload.Items))
	for _, item := range payload.Items {
		turns = append(turns, domain.TranscriptTurn{
			Content:      item.Content,
			Parsed:       rawToString(item.Parsed),
			UpdatedSlots: item.UpdatedSlots,
		})
	}

	return turns, nil
}

func turnResultFromResponse(payload conversationResponse) domain.TurnResult {
	items := payload.ParsedItems
	if items == nil {
		// Older backend revisions return the partition instead of the raw item
		// list on continue; rebuild the list and re-derive the partition
		// client-side.
		items = append(items, payload.PendingItems...)
		items = append(items, payload.CompletedItems...)
	}

	lineItems := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		name := ""
		if item.Pizza != nil {
			name = *item.Pizza
		}
		lineItems = append(lineItems, domain.LineItem{
			Pizza:         name,
			MissingFields: item.MissingInfo,
		})
	}

	return domain.TurnResult{
		Message: payload.Message,
		Items:   lineItems,
	}
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, c.BaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) clock() ports.Clock {
	if c.Clock != nil {
		return c.Clock
	}
	return ports.SystemClock{}
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.RequestTimeout)
}

func decodeAPIError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	var payload apiErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, payload.Detail)
		}
		if payload.Message != "" {
			return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, payload.Message)
		}
	}

	return fmt.Errorf("backend returned status %d", resp.StatusCode)
}

func parseStartTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}

	return time.Time{}
}

func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return string(raw)
}
