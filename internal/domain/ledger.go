package domain

import "time"

// LedgerVersion es la versión del schema del state file.
// Un archivo con otra versión se descarta y se arranca de cero.
const LedgerVersion = 2

// Ledger es el estado persistente del bot: bankroll, P&L realizado, récord
// de wins/losses y las posiciones pendientes de resolver. Es la única fuente
// de verdad entre reinicios.
//
// Invariante (salvo redondeo a céntimos):
//
//	bankroll + Σ pending.bet_size - pnl == starting_bankroll
type Ledger struct {
	Version         int      `json:"version"`
	Bankroll        float64  `json:"bankroll"`
	PnL             float64  `json:"pnl"`
	Wins            int      `json:"wins"`
	Losses          int      `json:"losses"`
	Trades          int      `json:"trades"`
	Pending         []Trade  `json:"pending"`
	TradedTokens    []string `json:"traded_tokens"`
	MarketsSeen     int      `json:"markets_seen"`
	LastMarketFound string   `json:"last_market_found,omitempty"`
}

// NewLedger crea un ledger limpio con el bankroll inicial dado.
func NewLedger(startingBankroll float64) *Ledger {
	return &Ledger{
		Version:  LedgerVersion,
		Bankroll: startingBankroll,
		Pending:  []Trade{},
	}
}

// HasTraded devuelve true si ya se apostó alguna vez por este token.
// Evita reentrar en el mismo outcome.
func (l *Ledger) HasTraded(tokenID string) bool {
	for _, t := range l.TradedTokens {
		if t == tokenID {
			return true
		}
	}
	return false
}

// ApplyEntry registra un trade recién ejecutado: lo añade a pending,
// debita el bankroll y marca el token como usado.
func (l *Ledger) ApplyEntry(t Trade) {
	l.Pending = append(l.Pending, t)
	l.Trades++
	l.Bankroll = RoundCents(l.Bankroll - t.BetSize)
	l.TradedTokens = append(l.TradedTokens, t.TokenID)
}

// ApplyResolution liquida un trade ganado o perdido, actualiza contadores y
// bankroll, y devuelve la copia resuelta lista para archivar. El caller es
// responsable de retirar el trade de Pending — un trade retirado no vuelve
// a evaluarse.
func (l *Ledger) ApplyResolution(t Trade, won bool) Trade {
	var pnl float64
	if won {
		payout := t.Payout()
		pnl = payout - t.BetSize
		l.Bankroll = RoundCents(l.Bankroll + payout)
		l.Wins++
	} else {
		pnl = -t.BetSize
		l.Losses++
	}
	l.PnL = RoundPnL(l.PnL + pnl)

	t.Resolved = true
	t.Won = won
	t.PnL = RoundPnL(pnl)
	t.BankrollAfter = RoundCents(l.Bankroll)
	return t
}

// RecordScan anota los mercados weather vistos en un ciclo.
func (l *Ledger) RecordScan(found int, now time.Time) {
	if found <= 0 {
		return
	}
	l.MarketsSeen += found
	l.LastMarketFound = now.UTC().Format("2006-01-02 15:04:05")
}

// PendingExposure devuelve la suma de bet_size de los trades aún pendientes.
func (l *Ledger) PendingExposure() float64 {
	var sum float64
	for _, t := range l.Pending {
		sum += t.BetSize
	}
	return sum
}

// WinRate devuelve la fracción de trades resueltos ganados (0 si no hay ninguno).
func (l *Ledger) WinRate() float64 {
	total := l.Wins + l.Losses
	if total == 0 {
		return 0
	}
	return float64(l.Wins) / float64(total)
}

// Drift devuelve cuánto se desvía el ledger del invariante de conservación
// respecto al bankroll inicial dado. Debería ser ~0 (tolerancia de redondeo).
func (l *Ledger) Drift(startingBankroll float64) float64 {
	return l.Bankroll + l.PendingExposure() - l.PnL - startingBankroll
}
