package ports

// TranscriptSource is the live speech transcript buffer. Text returns the
// currently accumulated utterance; Reset clears it back to empty.
type TranscriptSource interface {
	Text() string
	Reset()
}
