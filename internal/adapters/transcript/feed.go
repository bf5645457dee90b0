package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const dialTimeout = 10 * time.Second

// segmentEvent is one partial-transcript message pushed by a speech-to-text
// gateway over the websocket.
type segmentEvent struct {
	Text string `json:"text"`
}

// Feed streams recognized speech segments from a websocket endpoint into a
// Buffer. The feed never interprets the text; it only accumulates it for the
// next turn submission.
type Feed struct {
	url    string
	buffer *Buffer

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool

	errs chan error
	done chan struct{}
}

func NewFeed(url string, buffer *Buffer) *Feed {
	return &Feed{
		url:    url,
		buffer: buffer,
		errs:   make(chan error, 16),
		done:   make(chan struct{}),
	}
}

func (f *Feed) Connect(ctx context.Context) error {
	f.mu.Lock()
	if f.conn != nil {
		f.mu.Unlock()
		return nil
	}
	f.mu.Unlock()

	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return fmt.Errorf("dial transcript feed: %w", err)
	}

	f.mu.Lock()
	f.conn = conn
	f.mu.Unlock()

	go f.readLoop()
	return nil
}

func (f *Feed) Errors() <-chan error {
	return f.errs
}

func (f *Feed) Done() <-chan struct{} {
	return f.done
}

func (f *Feed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	if f.conn != nil {
		return f.conn.Close()
	}
	return nil
}

func (f *Feed) readLoop() {
	defer close(f.done)

	for {
		f.mu.Lock()
		conn := f.conn
		closed := f.closed
		f.mu.Unlock()
		if conn == nil || closed {
			return
		}

		_, payload, err := conn.ReadMessage()
		if err != nil {
			f.mu.Lock()
			closed = f.closed
			f.mu.Unlock()
			if !closed {
				f.errs <- fmt.Errorf("read transcript feed: %w", err)
			}
			return
		}

		var event segmentEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			f.errs <- fmt.Errorf("decode transcript segment: %w", err)
			continue
		}

		f.buffer.Append(event.Text)
	}
}
