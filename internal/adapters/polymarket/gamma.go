package polymarket

// gamma.go — Gamma API adapter: descubrimiento de mercados.
//
// Implementa ports.MarketProvider. La paginación es tolerante a fallos:
// un error de página termina el scan y devuelve lo acumulado — resultados
// parciales valen más que ninguno (disponibilidad sobre completitud).

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/weatherbot/internal/domain"
)

const (
	gammaMarketsPath = "/markets"
	gammaPageSize    = 100
	gammaMaxRecords  = 5000 // hard cap de paginación
)

// FetchActiveMarkets pagina GET /markets?active=true&closed=false hasta
// agotar resultados o alcanzar el cap. El rate limiter de Gamma espacia
// las páginas automáticamente.
func (c *Client) FetchActiveMarkets(ctx context.Context) ([]domain.Market, error) {
	var all []domain.Market

	for offset := 0; offset < gammaMaxRecords; offset += gammaPageSize {
		url := fmt.Sprintf("%s%s?active=true&closed=false&limit=%d&offset=%d",
			c.gammaBase, gammaMarketsPath, gammaPageSize, offset)

		var page []gammaMarket
		if err := c.get(ctx, c.gammaLimiter, url, &page); err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			slog.Warn("gamma scan aborted, returning partial results",
				"offset", offset,
				"accumulated", len(all),
				"err", err,
			)
			break
		}

		if len(page) == 0 {
			break
		}

		all = append(all, mapGammaMarkets(page)...)

		slog.Debug("fetched gamma markets page",
			"offset", offset,
			"count", len(page),
			"total", len(all),
		)

		if len(page) < gammaPageSize {
			break
		}
	}

	return all, nil
}

// FetchMarketByCondition busca un mercado por condition_id. found=false si
// la API no lo conoce o la consulta falla — el caller lo trata como
// "sin datos este ciclo", nunca como fatal.
func (c *Client) FetchMarketByCondition(ctx context.Context, conditionID string) (domain.Market, bool) {
	url := fmt.Sprintf("%s%s?condition_ids=%s", c.gammaBase, gammaMarketsPath, conditionID)

	var page []gammaMarket
	if err := c.get(ctx, c.gammaLimiter, url, &page); err != nil {
		slog.Debug("gamma lookup failed",
			"condition_id", shortID(conditionID),
			"err", err,
		)
		return domain.Market{}, false
	}
	if len(page) == 0 {
		return domain.Market{}, false
	}

	m, ok := mapGammaMarket(page[0])
	return m, ok
}

// shortID acorta un identificador largo para logging.
func shortID(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:16] + "..."
}
