package engine

// resolver.go — liquidación de trades pendientes.
//
// Cada pending se evalúa contra Gamma (mercado liquidado o precio en
// extremos) y, en live, contra las posiciones redimibles de la wallet.
// Un trade que supera la ventana de staleness se fuerza a loss: un mercado
// weather que sigue abierto tres días después de la entrada ya perdió la
// ventana del evento.

import (
	"context"
	"log/slog"
	"time"

	"github.com/alejandrodnm/weatherbot/internal/domain"
	"github.com/alejandrodnm/weatherbot/internal/ports"
)

// Umbrales de resolución por precio. Un token liquidado vale 1.0 o 0.0;
// los extremos capturan la liquidación de facto antes del settle formal.
const (
	settledWinPrice = 0.5
	extremeWin      = 0.99
	extremeLoss     = 0.01
)

// verdict es el resultado de evaluar un pending: sigue abierto, ganó o perdió.
type verdict int

const (
	verdictOpen verdict = iota
	verdictWin
	verdictLoss
)

// Resolver evalúa y liquida los trades pendientes del ledger.
type Resolver struct {
	markets   ports.MarketProvider
	prices    ports.PriceProvider
	positions ports.PositionProvider
	store     ports.LedgerStore
	tradeLog  ports.TradeLog
	notifier  ports.Notifier

	wallet      string // vacío en paper: sin chequeo on-chain
	staleWindow time.Duration
	log         *slog.Logger
}

// NewResolver crea un resolver. wallet puede ser vacío (modo paper).
func NewResolver(markets ports.MarketProvider, prices ports.PriceProvider, positions ports.PositionProvider, store ports.LedgerStore, tradeLog ports.TradeLog, notifier ports.Notifier, wallet string, staleWindow time.Duration, log *slog.Logger) *Resolver {
	return &Resolver{
		markets:     markets,
		prices:      prices,
		positions:   positions,
		store:       store,
		tradeLog:    tradeLog,
		notifier:    notifier,
		wallet:      wallet,
		staleWindow: staleWindow,
		log:         log,
	}
}

// ResolvePending evalúa todos los pendientes y liquida los decididos.
// Devuelve cuántos se resolvieron. El ledger se persiste una sola vez al
// final si hubo cambios.
func (r *Resolver) ResolvePending(ctx context.Context, ledger *domain.Ledger) int {
	if len(ledger.Pending) == 0 {
		return 0
	}

	now := time.Now().UTC()
	var still []domain.Trade
	resolved := 0

	for _, t := range ledger.Pending {
		v, stale := r.evaluate(ctx, t, now)
		if v == verdictOpen {
			still = append(still, t)
			continue
		}

		done := ledger.ApplyResolution(t, v == verdictWin)
		resolved++

		if err := r.tradeLog.Append(ctx, done); err != nil {
			r.log.Warn("trade log no disponible", "error", err)
		}
		r.notifier.TradeResolved(done, ledger, stale)
	}

	if resolved == 0 {
		return 0
	}

	if still == nil {
		still = []domain.Trade{}
	}
	ledger.Pending = still

	if err := r.store.Save(ctx, ledger); err != nil {
		r.log.Error("no se pudo persistir el ledger tras resolver", "error", err)
	}
	return resolved
}

// evaluate decide el estado de un pending. stale=true solo cuando el loss
// viene forzado por la ventana de staleness.
func (r *Resolver) evaluate(ctx context.Context, t domain.Trade, now time.Time) (verdict, bool) {
	// 1. El precio liquidado que reporta Gamma es autoritativo
	market, found := r.markets.FetchMarketByCondition(ctx, t.ConditionID)
	if found && market.Settled() {
		if price, ok := market.PriceForToken(t.TokenID); ok {
			if price > settledWinPrice {
				return verdictWin, false
			}
			return verdictLoss, false
		}
	}

	// 2. Liquidación de facto: bid y ask clavados en el mismo extremo
	if quote, err := r.prices.FetchQuote(ctx, t.TokenID); err == nil {
		if quote.Bid >= extremeWin && quote.Ask >= extremeWin {
			return verdictWin, false
		}
		if quote.Bid <= extremeLoss && quote.Ask <= extremeLoss {
			return verdictLoss, false
		}
	}

	// En live, una posición marcada redeemable ya se decidió on-chain
	if r.wallet != "" {
		if v, decided := r.checkRedeemable(ctx, t); decided {
			return v, false
		}
	}

	if r.staleWindow > 0 && t.Age(now) > r.staleWindow {
		r.log.Info("pending forzado a loss por staleness",
			"market", t.ConditionID, "age", t.Age(now).Round(time.Minute))
		return verdictLoss, true
	}

	return verdictOpen, false
}

// checkRedeemable consulta las posiciones de la wallet: una posición
// redimible con valor ganó, redimible sin valor perdió.
func (r *Resolver) checkRedeemable(ctx context.Context, t domain.Trade) (verdict, bool) {
	positions, err := r.positions.FetchPositions(ctx, r.wallet)
	if err != nil {
		r.log.Warn("posiciones de la wallet no disponibles", "error", err)
		return verdictOpen, false
	}
	for _, pos := range positions {
		if pos.TokenID != t.TokenID || !pos.Redeemable {
			continue
		}
		if pos.CurValue > 0 {
			return verdictWin, true
		}
		return verdictLoss, true
	}
	return verdictOpen, false
}
