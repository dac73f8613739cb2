package ports

import (
	"context"

	"github.com/alejandrodnm/weatherbot/internal/domain"
)

// PriceProvider obtiene el mejor bid/ask actual de un token del CLOB.
type PriceProvider interface {
	FetchQuote(ctx context.Context, tokenID string) (domain.Quote, error)
}
