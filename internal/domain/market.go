package domain

// Market representa un mercado de predicción en Polymarket, ya normalizado
// desde Gamma: cada outcome lleva su label, token y último precio juntos,
// sin arrays paralelos que mantener alineados.
type Market struct {
	ConditionID string
	Question    string
	Description string
	Slug        string
	Liquidity   float64
	Outcomes    []MarketOutcome
	Active      bool
	Closed      bool
	Resolved    bool
}

// MarketOutcome es un lado tradeable del mercado. PriceKnown distingue un
// precio real de 0.0 de uno ausente o corrupto en la respuesta de Gamma.
type MarketOutcome struct {
	Label      string
	TokenID    string
	Price      float64
	PriceKnown bool
}

// OutcomeIndex devuelve el índice del outcome cuyo label coincide, o -1.
func (m Market) OutcomeIndex(label string) int {
	for i, o := range m.Outcomes {
		if o.Label == label {
			return i
		}
	}
	return -1
}

// TokenForOutcome devuelve el outcome en la posición dada.
// ok=false si el índice está fuera de rango.
func (m Market) TokenForOutcome(idx int) (MarketOutcome, bool) {
	if idx < 0 || idx >= len(m.Outcomes) {
		return MarketOutcome{}, false
	}
	return m.Outcomes[idx], true
}

// Settled devuelve true si el mercado ya no admite trading.
func (m Market) Settled() bool {
	return m.Closed || m.Resolved
}

// PriceForToken devuelve el precio del token dado dentro del mercado.
// ok=false si el token no pertenece a este mercado o su precio no vino
// bien formado en la respuesta.
func (m Market) PriceForToken(tokenID string) (float64, bool) {
	for _, o := range m.Outcomes {
		if o.TokenID == tokenID {
			return o.Price, o.PriceKnown
		}
	}
	return 0, false
}

// TruncateQuestion devuelve la pregunta truncada a maxLen caracteres.
// Si la pregunta está vacía usa el conditionID como fallback. Trunca por
// runas: las preguntas traen °C/°F y cortar a mitad de runa rompe el UTF-8.
func TruncateQuestion(question, conditionID string, maxLen int) string {
	q := question
	if q == "" {
		if len(conditionID) > 20 {
			q = conditionID[:20] + "..."
		} else {
			q = conditionID
		}
	}
	if runes := []rune(q); len(runes) > maxLen {
		q = string(runes[:maxLen-3]) + "..."
	}
	return q
}
