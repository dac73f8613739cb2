package ports

import (
	"context"

	"github.com/alejandrodnm/weatherbot/internal/domain"
)

// ActivityProvider obtiene la actividad reciente de trading de un mercado.
type ActivityProvider interface {
	// FetchActivity devuelve los fills recientes del mercado dado.
	FetchActivity(ctx context.Context, conditionID string) ([]domain.Fill, error)
}

// PositionProvider obtiene las posiciones abiertas de una dirección.
type PositionProvider interface {
	// FetchPositions devuelve todas las posiciones abiertas del usuario.
	FetchPositions(ctx context.Context, user string) ([]domain.Position, error)
}
