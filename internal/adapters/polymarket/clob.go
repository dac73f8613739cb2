package polymarket

// clob.go — CLOB API adapter: precios spot por token.
//
// Implementa ports.PriceProvider. El "ask" es el side SELL del book (lo que
// pagarías por comprar) y el "bid" es el side BUY (lo que te pagarían).

import (
	"context"
	"fmt"

	"github.com/alejandrodnm/weatherbot/internal/domain"
)

const (
	clobPricePath   = "/price"
	clobNegRiskPath = "/neg-risk"
)

// FetchQuote obtiene el mejor bid y ask actuales de un token.
func (c *Client) FetchQuote(ctx context.Context, tokenID string) (domain.Quote, error) {
	ask, err := c.fetchPrice(ctx, tokenID, "SELL")
	if err != nil {
		return domain.Quote{}, fmt.Errorf("clob.FetchQuote ask: %w", err)
	}
	bid, err := c.fetchPrice(ctx, tokenID, "BUY")
	if err != nil {
		return domain.Quote{}, fmt.Errorf("clob.FetchQuote bid: %w", err)
	}
	return domain.Quote{Bid: bid, Ask: ask}, nil
}

// fetchPrice hace GET /price para un token y side.
func (c *Client) fetchPrice(ctx context.Context, tokenID, side string) (float64, error) {
	url := fmt.Sprintf("%s%s?token_id=%s&side=%s", c.clobBase, clobPricePath, tokenID, side)

	var resp clobPrice
	if err := c.get(ctx, c.clobLimiter, url, &resp); err != nil {
		return 0, err
	}
	price, _ := resp.Price.Float64()
	return price, nil
}

// IsNegRisk devuelve true si el token pertenece a un mercado NegRisk,
// que usa un exchange contract distinto para firmar órdenes.
func (c *Client) IsNegRisk(ctx context.Context, tokenID string) (bool, error) {
	url := fmt.Sprintf("%s%s?token_id=%s", c.clobBase, clobNegRiskPath, tokenID)

	var resp clobNegRisk
	if err := c.get(ctx, c.clobLimiter, url, &resp); err != nil {
		return false, fmt.Errorf("clob.IsNegRisk: %w", err)
	}
	return resp.NegRisk, nil
}
