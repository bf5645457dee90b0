package ports

import (
	"context"

	"github.com/voicepizza/pv/internal/domain"
)

type SessionRepository interface {
	Latest(ctx context.Context) (domain.OrderSession, error)
	List(ctx context.Context) ([]domain.OrderSession, error)
	Save(ctx context.Context, session domain.OrderSession) error
}
