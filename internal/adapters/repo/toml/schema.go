package toml

import (
	"fmt"
	"time"

	"github.com/voicepizza/pv/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Sessions []sessionSchema `toml:"sessions"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported sessions schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	ID        string `toml:"id"`
	Phone     string `toml:"phone"`
	StartedAt string `toml:"started_at"`
}

func toSchema(session domain.OrderSession) sessionSchema {
	startedAt := ""
	if !session.StartTime.IsZero() {
		startedAt = session.StartTime.Format(time.RFC3339)
	}

	return sessionSchema{
		ID:        string(session.ID),
		Phone:     session.Phone,
		StartedAt: startedAt,
	}
}

func fromSchema(entry sessionSchema) domain.OrderSession {
	startTime := time.Time{}
	if entry.StartedAt != "" {
		if parsed, err := time.Parse(time.RFC3339, entry.StartedAt); err == nil {
			startTime = parsed
		}
	}

	return domain.OrderSession{
		ID:        domain.OrderID(entry.ID),
		Phone:     entry.Phone,
		StartTime: startTime,
	}
}
