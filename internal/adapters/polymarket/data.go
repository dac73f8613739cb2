package polymarket

// data.go — Data API adapter: actividad de trading y posiciones abiertas.
//
// Implementa ports.ActivityProvider y ports.PositionProvider. El rate
// limiter de la Data API espacia las llamadas consecutivas por leader sin
// necesidad de sleeps explícitos.

import (
	"context"
	"fmt"

	"github.com/alejandrodnm/weatherbot/internal/domain"
)

const (
	dataActivityPath  = "/activity"
	dataPositionsPath = "/positions"
	activityLimit     = 50
)

// FetchActivity devuelve los fills recientes de un mercado.
func (c *Client) FetchActivity(ctx context.Context, conditionID string) ([]domain.Fill, error) {
	url := fmt.Sprintf("%s%s?market=%s&limit=%d",
		c.dataBase, dataActivityPath, conditionID, activityLimit)

	var resp []dataActivity
	if err := c.get(ctx, c.dataLimiter, url, &resp); err != nil {
		return nil, fmt.Errorf("data.FetchActivity: %w", err)
	}
	return mapActivity(resp), nil
}

// FetchPositions devuelve todas las posiciones abiertas del usuario dado.
func (c *Client) FetchPositions(ctx context.Context, user string) ([]domain.Position, error) {
	url := fmt.Sprintf("%s%s?user=%s", c.dataBase, dataPositionsPath, user)

	var resp []dataPosition
	if err := c.get(ctx, c.dataLimiter, url, &resp); err != nil {
		return nil, fmt.Errorf("data.FetchPositions: %w", err)
	}
	return mapPositions(resp), nil
}
