package domain

import "errors"

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrSessionNotFound      = errors.New("session not found")
)
