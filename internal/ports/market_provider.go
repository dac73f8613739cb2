package ports

import (
	"context"

	"github.com/alejandrodnm/weatherbot/internal/domain"
)

// MarketProvider obtiene mercados desde la API de descubrimiento (Gamma).
type MarketProvider interface {
	// FetchActiveMarkets pagina los mercados activos y no cerrados.
	// Un error de página termina la paginación y devuelve lo acumulado:
	// resultados parciales son aceptables, disponibilidad sobre completitud.
	FetchActiveMarkets(ctx context.Context) ([]domain.Market, error)

	// FetchMarketByCondition busca un mercado por su condition_id.
	// found=false si la API no lo conoce o la consulta falla.
	FetchMarketByCondition(ctx context.Context, conditionID string) (domain.Market, bool)
}
