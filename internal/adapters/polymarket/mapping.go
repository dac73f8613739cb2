package polymarket

import (
	"encoding/json"
	"strconv"

	"github.com/alejandrodnm/weatherbot/internal/domain"
)

// mapGammaMarket convierte un DTO de Gamma a domain.Market, colapsando los
// arrays paralelos outcomes/clobTokenIds/outcomePrices en una estructura por
// outcome. ok=false si outcomes y tokens no tienen la misma longitud — mejor
// descartar el mercado que apostar por el token equivocado.
func mapGammaMarket(r gammaMarket) (domain.Market, bool) {
	labels := parseJSONStrings(r.Outcomes)
	tokens := parseJSONStrings(r.ClobTokenIDs)
	prices := parseJSONFloats(r.OutcomePrices)

	if len(labels) == 0 || len(labels) != len(tokens) {
		return domain.Market{}, false
	}

	outcomes := make([]domain.MarketOutcome, len(labels))
	for i := range labels {
		var price float64
		priceKnown := i < len(prices)
		if priceKnown {
			price = prices[i]
		}
		outcomes[i] = domain.MarketOutcome{
			Label:      labels[i],
			TokenID:    tokens[i],
			Price:      price,
			PriceKnown: priceKnown,
		}
	}

	liquidity, _ := r.LiquidityNum.Float64()

	return domain.Market{
		ConditionID: r.ConditionID,
		Question:    r.Question,
		Description: r.Description,
		Slug:        r.Slug,
		Liquidity:   liquidity,
		Outcomes:    outcomes,
		Active:      r.Active,
		Closed:      r.Closed,
		Resolved:    r.Resolved,
	}, true
}

// mapGammaMarkets convierte un batch, descartando los mercados malformados.
func mapGammaMarkets(raw []gammaMarket) []domain.Market {
	markets := make([]domain.Market, 0, len(raw))
	for _, r := range raw {
		if m, ok := mapGammaMarket(r); ok {
			markets = append(markets, m)
		}
	}
	return markets
}

// mapActivity convierte entradas de /activity a domain.Fill.
// proxyWalletAddress tiene prioridad; address es el fallback.
func mapActivity(raw []dataActivity) []domain.Fill {
	fills := make([]domain.Fill, 0, len(raw))
	for _, a := range raw {
		addr := a.ProxyWalletAddress
		if addr == "" {
			addr = a.Address
		}
		size, _ := a.USDCSize.Float64()
		fills = append(fills, domain.Fill{
			Address:  addr,
			USDCSize: size,
			Side:     a.Side,
		})
	}
	return fills
}

// mapPositions convierte entradas de /positions a domain.Position.
// asset tiene prioridad como token id; tokenId es el fallback.
func mapPositions(raw []dataPosition) []domain.Position {
	positions := make([]domain.Position, 0, len(raw))
	for _, p := range raw {
		token := p.Asset
		if token == "" {
			token = p.TokenID
		}
		size, _ := p.Size.Float64()
		curValue, _ := p.CurValue.Float64()
		positions = append(positions, domain.Position{
			ConditionID: p.ConditionID,
			Outcome:     p.Outcome,
			TokenID:     token,
			Size:        size,
			CurValue:    curValue,
			Redeemable:  p.Redeemable,
		})
	}
	return positions
}

// parseJSONStrings decodifica un array JSON embebido como string ("[\"a\",\"b\"]").
func parseJSONStrings(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}

// parseJSONFloats decodifica un array JSON de números que Gamma codifica
// como strings ("[\"0.6\",\"0.4\"]").
func parseJSONFloats(s string) []float64 {
	raw := parseJSONStrings(s)
	if raw == nil {
		return nil
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			// Un solo elemento corrupto invalida todo el array: mejor
			// ningún precio que un 0.0 que parece precio liquidado
			return nil
		}
		out[i] = f
	}
	return out
}
