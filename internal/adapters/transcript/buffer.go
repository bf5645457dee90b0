package transcript

import (
	"strings"
	"sync"

	"github.com/voicepizza/pv/internal/ports"
)

// Buffer is an append-only live transcript: segments accumulate as the
// customer speaks and the whole buffer is cleared once a turn is submitted.
type Buffer struct {
	mu       sync.Mutex
	segments []string
}

var _ ports.TranscriptSource = (*Buffer)(nil)

func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds one heard segment. Empty segments are dropped.
func (b *Buffer) Append(segment string) {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.segments = append(b.segments, segment)
}

func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return strings.Join(b.segments, " ")
}

func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.segments = nil
}
