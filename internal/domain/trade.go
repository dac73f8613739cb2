package domain

import (
	"math"
	"time"
)

// Quote es el mejor bid/ask actual de un token en el CLOB.
type Quote struct {
	Bid float64
	Ask float64
}

// Spread devuelve ask - bid.
func (q Quote) Spread() float64 {
	return q.Ask - q.Bid
}

// Trade es una apuesta copiada de un leader. Se crea una sola vez al ejecutar,
// vive en Ledger.Pending y se muta exactamente una vez al resolverse.
type Trade struct {
	Timestamp time.Time `json:"timestamp"`
	Question  string    `json:"question"`
	Outcome   string    `json:"outcome"`

	LeaderAddress  string  `json:"leader_address"`
	LeaderPnL      float64 `json:"leader_pnl"`
	LeaderPosition string  `json:"leader_position"`

	Ask    float64 `json:"clob_ask"`
	Bid    float64 `json:"clob_bid"`
	Spread float64 `json:"spread"`

	BetSize         float64 `json:"bet_size"` // dólares realmente gastados: round(shares*ask, 2)
	Shares          int     `json:"shares"`
	PotentialProfit float64 `json:"potential_profit"`

	TokenID     string `json:"token_id"`
	ConditionID string `json:"condition_id"`
	OrderID     string `json:"order_id"`

	Resolved      bool    `json:"resolved"`
	Won           bool    `json:"won"`
	PnL           float64 `json:"pnl"`
	BankrollAfter float64 `json:"bankroll_after"`

	Paper bool `json:"paper"`
}

// Age devuelve el tiempo transcurrido desde la entrada.
func (t Trade) Age(now time.Time) time.Duration {
	return now.Sub(t.Timestamp)
}

// Payout devuelve el valor de liquidación si el trade gana: shares * $1.
func (t Trade) Payout() float64 {
	return float64(t.Shares)
}

// RoundCents redondea a céntimos de dólar.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundPnL redondea a 4 decimales, la precisión del registro de P&L.
func RoundPnL(v float64) float64 {
	return math.Round(v*10000) / 10000
}
