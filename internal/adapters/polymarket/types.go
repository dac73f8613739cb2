package polymarket

import "encoding/json"

// DTOs raw de las APIs de Polymarket. Solo se usan dentro de este paquete.
// La conversión a domain entities se hace en mapping.go.

// --- Gamma API ---

// gammaMarket es un mercado tal como lo devuelve GET /markets de Gamma.
// Los campos outcomes/clobTokenIds/outcomePrices llegan como strings JSON
// ("[\"Yes\",\"No\"]") con arrays paralelos alineados por índice; mapping.go
// los colapsa en una estructura por outcome.
type gammaMarket struct {
	ConditionID   string      `json:"conditionId"`
	Question      string      `json:"question"`
	Description   string      `json:"description"`
	Slug          string      `json:"slug"`
	Outcomes      string      `json:"outcomes"`
	ClobTokenIDs  string      `json:"clobTokenIds"`
	OutcomePrices string      `json:"outcomePrices"`
	LiquidityNum  json.Number `json:"liquidityNum"`
	Active        bool        `json:"active"`
	Closed        bool        `json:"closed"`
	Resolved      bool        `json:"resolved"`
}

// --- Data API ---

// dataActivity es una entrada de GET /activity.
type dataActivity struct {
	ProxyWalletAddress string      `json:"proxyWalletAddress"`
	Address            string      `json:"address"`
	USDCSize           json.Number `json:"usdcSize"`
	Side               string      `json:"side"`
}

// dataPosition es una posición abierta de GET /positions.
type dataPosition struct {
	ConditionID string      `json:"conditionId"`
	Outcome     string      `json:"outcome"`
	Asset       string      `json:"asset"`
	TokenID     string      `json:"tokenId"`
	Size        json.Number `json:"size"`
	CurValue    json.Number `json:"curValue"`
	Redeemable  bool        `json:"redeemable"`
}

// --- CLOB API ---

// clobPrice es la respuesta de GET /price. El precio llega como string.
type clobPrice struct {
	Price json.Number `json:"price"`
}

// clobNegRisk es la respuesta de GET /neg-risk.
type clobNegRisk struct {
	NegRisk bool `json:"neg_risk"`
}
