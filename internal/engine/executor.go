package engine

// executor.go — ejecución de un copy trade con tamaño fijo.
//
// El orden importa: primero TODAS las precondiciones, después la orden FOK,
// y solo si la orden llena se tocan el ledger y el log. Una orden sin fill
// no deja rastro en el estado.

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/alejandrodnm/weatherbot/internal/domain"
	"github.com/alejandrodnm/weatherbot/internal/ports"
)

// ExecutorConfig son los parámetros de entrada de cada trade.
type ExecutorConfig struct {
	BetSizeUSDC float64
	MinAsk      float64
	MaxAsk      float64
	MaxSpread   float64
	Paper       bool
}

// Executor convierte un consenso de leaders en una orden FOK y, si llena,
// en un trade registrado.
type Executor struct {
	prices   ports.PriceProvider
	orders   ports.OrderExecutor
	store    ports.LedgerStore
	tradeLog ports.TradeLog
	notifier ports.Notifier
	cfg      ExecutorConfig
	log      *slog.Logger
}

// NewExecutor crea un executor con las dependencias dadas.
func NewExecutor(prices ports.PriceProvider, orders ports.OrderExecutor, store ports.LedgerStore, tradeLog ports.TradeLog, notifier ports.Notifier, cfg ExecutorConfig, log *slog.Logger) *Executor {
	return &Executor{
		prices:   prices,
		orders:   orders,
		store:    store,
		tradeLog: tradeLog,
		notifier: notifier,
		cfg:      cfg,
		log:      log,
	}
}

// Execute intenta copiar el consenso en el mercado dado. Devuelve true solo
// si la orden llenó y el trade quedó registrado. Las precondiciones que no
// se cumplen son skips normales, no errores.
func (e *Executor) Execute(ctx context.Context, ledger *domain.Ledger, market domain.Market, consensus domain.Consensus) (bool, error) {
	idx := market.OutcomeIndex(consensus.Outcome)
	if idx < 0 {
		e.log.Debug("outcome del consenso no existe en el mercado",
			"market", market.ConditionID, "outcome", consensus.Outcome)
		return false, nil
	}

	token, ok := market.TokenForOutcome(idx)
	if !ok || token.TokenID == "" {
		e.log.Debug("outcome sin token", "market", market.ConditionID, "outcome", consensus.Outcome)
		return false, nil
	}

	if ledger.HasTraded(token.TokenID) {
		return false, nil
	}

	quote, err := e.prices.FetchQuote(ctx, token.TokenID)
	if err != nil {
		e.log.Warn("quote no disponible", "token", token.TokenID, "error", err)
		return false, nil
	}

	if reason := e.checkPrice(quote); reason != "" {
		e.log.Debug("skip por precio",
			"market", market.ConditionID, "outcome", consensus.Outcome,
			"ask", quote.Ask, "bid", quote.Bid, "reason", reason)
		return false, nil
	}

	shares := int(math.Floor(e.cfg.BetSizeUSDC / quote.Ask))
	if shares < 1 {
		e.log.Debug("skip: la apuesta no compra ni un share",
			"market", market.ConditionID, "ask", quote.Ask)
		return false, nil
	}

	betSize := domain.RoundCents(float64(shares) * quote.Ask)
	if ledger.Bankroll < betSize {
		e.log.Info("skip: bankroll insuficiente",
			"bankroll", ledger.Bankroll, "bet", betSize)
		return false, nil
	}

	result, err := e.orders.PlaceBuyOrder(ctx, ports.OrderRequest{
		TokenID: token.TokenID,
		Price:   quote.Ask,
		Shares:  shares,
	})
	if err != nil {
		return false, fmt.Errorf("engine.Execute: place order: %w", err)
	}
	if !result.Filled {
		e.log.Info("orden no llenó",
			"market", market.ConditionID, "outcome", consensus.Outcome,
			"status", result.Status)
		return false, nil
	}

	trade := domain.Trade{
		Timestamp:       time.Now().UTC(),
		Question:        market.Question,
		Outcome:         consensus.Outcome,
		LeaderAddress:   consensus.Leader.Address,
		LeaderPnL:       consensus.Leader.PnL,
		LeaderPosition:  fmt.Sprintf("$%.2f %s", consensus.Leader.Size, consensus.Leader.Outcome),
		Ask:             quote.Ask,
		Bid:             quote.Bid,
		Spread:          quote.Spread(),
		BetSize:         betSize,
		Shares:          shares,
		PotentialProfit: domain.RoundCents(float64(shares) - betSize),
		TokenID:         token.TokenID,
		ConditionID:     market.ConditionID,
		OrderID:         result.OrderID,
		Paper:           e.cfg.Paper,
	}

	ledger.ApplyEntry(trade)

	if err := e.store.Save(ctx, ledger); err != nil {
		return true, fmt.Errorf("engine.Execute: save ledger: %w", err)
	}
	if err := e.tradeLog.Append(ctx, trade); err != nil {
		e.log.Warn("trade log no disponible", "error", err)
	}
	e.notifier.TradeOpened(trade, ledger)

	return true, nil
}

// checkPrice valida ask y spread. Devuelve la razón del skip o "" si pasa.
func (e *Executor) checkPrice(q domain.Quote) string {
	switch {
	case q.Ask <= 0 || q.Ask >= 1:
		return "ask fuera de (0,1)"
	case q.Ask < e.cfg.MinAsk:
		return "ask bajo el mínimo"
	case q.Ask > e.cfg.MaxAsk:
		return "ask sobre el máximo"
	case q.Spread() > e.cfg.MaxSpread:
		return "spread demasiado ancho"
	}
	return ""
}
