package engine

// bot.go — el loop principal: resolver → riesgo → scan → consenso → trade.
//
// Todo es secuencial dentro del ciclo. La concurrencia no aporta nada aquí:
// los rate limiters de las APIs marcan el ritmo real y el estado compartido
// (el ledger) es más simple sin sincronización.

import (
	"context"
	"log/slog"
	"time"

	"github.com/alejandrodnm/weatherbot/config"
	"github.com/alejandrodnm/weatherbot/internal/domain"
	"github.com/alejandrodnm/weatherbot/internal/ports"
	"github.com/alejandrodnm/weatherbot/internal/scanner"
)

// emptyScanThreshold: tras este número de scans vacíos seguidos se pasa al
// intervalo idle para no machacar la API buscando mercados que no existen.
const emptyScanThreshold = 3

// Bot orquesta el ciclo completo de copy trading.
type Bot struct {
	scanner  *scanner.Scanner
	leaders  *scanner.LeaderResolver
	executor *Executor
	resolver *Resolver
	store    ports.LedgerStore
	history  ports.History
	notifier ports.Notifier
	cfg      *config.Config
	log      *slog.Logger

	emptyScans   int
	killNotified bool
	started      time.Time
}

// NewBot cablea el bot con todas sus dependencias.
func NewBot(sc *scanner.Scanner, leaders *scanner.LeaderResolver, executor *Executor, resolver *Resolver, store ports.LedgerStore, history ports.History, notifier ports.Notifier, cfg *config.Config, log *slog.Logger) *Bot {
	return &Bot{
		scanner:  sc,
		leaders:  leaders,
		executor: executor,
		resolver: resolver,
		store:    store,
		history:  history,
		notifier: notifier,
		cfg:      cfg,
		log:      log,
	}
}

// Run ejecuta ciclos hasta que el contexto se cancele o, en paper, hasta
// que la ventana de observación expire. Si once es true ejecuta un solo
// ciclo y termina.
func (b *Bot) Run(ctx context.Context, once bool) error {
	ledger, err := b.store.Load(ctx)
	if err != nil {
		return err
	}
	b.started = time.Now().UTC()

	for {
		if b.paperExpired() {
			b.log.Info("ventana paper completada")
			b.notifier.PaperSummary(ledger, b.cfg.Risk.StartingBankroll)
			return b.store.Save(ctx, ledger)
		}

		b.runCycle(ctx, ledger)

		if once {
			return b.store.Save(ctx, ledger)
		}

		select {
		case <-ctx.Done():
			b.log.Info("apagando", "reason", ctx.Err())
			if err := b.store.Save(context.WithoutCancel(ctx), ledger); err != nil {
				b.log.Error("no se pudo guardar el ledger al salir", "error", err)
			}
			if b.isPaper() {
				b.notifier.PaperSummary(ledger, b.cfg.Risk.StartingBankroll)
			}
			return nil
		case <-time.After(b.interval()):
		}
	}
}

// runCycle ejecuta un ciclo completo. Un pánico dentro del ciclo se
// registra y se traga: el siguiente ciclo arranca limpio con el ledger
// ya persistido.
func (b *Bot) runCycle(ctx context.Context, ledger *domain.Ledger) {
	defer func() {
		if rec := recover(); rec != nil {
			b.log.Error("pánico en el ciclo, recuperando", "panic", rec)
			if err := b.store.Save(ctx, ledger); err != nil {
				b.log.Error("no se pudo guardar tras el pánico", "error", err)
			}
		}
	}()

	if n := b.resolver.ResolvePending(ctx, ledger); n > 0 {
		b.log.Info("pendientes resueltos", "count", n)
	}

	halted := b.checkKillSwitch(ledger)

	result, err := b.scanner.Scan(ctx)
	if err != nil {
		b.log.Warn("scan falló, se reintenta el próximo ciclo", "error", err)
		return
	}
	ledger.RecordScan(len(result.Weather), time.Now())

	if len(result.Weather) == 0 {
		b.emptyScans++
	} else {
		b.emptyScans = 0
	}

	placed := 0
	if !halted {
		placed = b.tradeCycle(ctx, ledger, result.Weather)
	}

	b.saveHistory(ctx, ledger, result, placed)
	b.notifier.Dashboard(ledger, b.paperRemaining())

	if err := b.store.Save(ctx, ledger); err != nil {
		b.log.Error("no se pudo persistir el ledger", "error", err)
	}
}

// tradeCycle evalúa cada mercado weather y ejecuta los que pasen el filtro.
func (b *Bot) tradeCycle(ctx context.Context, ledger *domain.Ledger, markets []domain.Market) int {
	placed := 0
	for _, market := range markets {
		if len(ledger.Pending) >= b.cfg.Risk.MaxPending {
			b.log.Info("límite de pendientes alcanzado", "max", b.cfg.Risk.MaxPending)
			break
		}
		if ledger.Bankroll < b.cfg.Trading.BetSizeUSDC {
			b.log.Info("bankroll agotado para este ciclo", "bankroll", ledger.Bankroll)
			break
		}

		consensus, ok := b.leaders.Consensus(ctx, market.ConditionID)
		if !ok {
			continue
		}

		filled, err := b.executor.Execute(ctx, ledger, market, consensus)
		if err != nil {
			b.log.Warn("ejecución falló", "market", market.ConditionID, "error", err)
			continue
		}
		if filled {
			placed++
		}
	}
	return placed
}

// checkKillSwitch detiene la apertura de trades si el bankroll cayó bajo el
// suelo. Los pendientes se siguen resolviendo.
func (b *Bot) checkKillSwitch(ledger *domain.Ledger) bool {
	if ledger.Bankroll >= b.cfg.Risk.KillSwitchMin {
		b.killNotified = false
		return false
	}
	if !b.killNotified {
		b.notifier.KillSwitch(ledger, b.cfg.Risk.KillSwitchMin)
		b.killNotified = true
	}
	return true
}

// saveHistory persiste el resumen del ciclo. Best-effort: el histórico es
// diagnóstico, nunca bloquea el trading.
func (b *Bot) saveHistory(ctx context.Context, ledger *domain.Ledger, result scanner.ScanResult, placed int) {
	if b.history == nil {
		return
	}
	stats := ports.CycleStats{
		ScannedAt:      time.Now().UTC(),
		MarketsScanned: result.Scanned,
		WeatherFound:   len(result.Weather),
		TradesPlaced:   placed,
		Pending:        len(ledger.Pending),
		Bankroll:       ledger.Bankroll,
		PnL:            ledger.PnL,
	}
	if err := b.history.SaveCycle(ctx, stats, result.Weather); err != nil {
		b.log.Warn("histórico no disponible", "error", err)
	}
}

// interval devuelve cuánto esperar hasta el próximo ciclo.
func (b *Bot) interval() time.Duration {
	if b.emptyScans > emptyScanThreshold {
		return b.cfg.IdleInterval()
	}
	return b.cfg.ScanInterval()
}

// isPaper devuelve true si el bot opera en modo simulado.
func (b *Bot) isPaper() bool {
	return !b.cfg.Trading.Live
}

// paperExpired devuelve true si la ventana paper terminó.
func (b *Bot) paperExpired() bool {
	window := b.cfg.PaperWindow()
	if !b.isPaper() || window <= 0 || b.started.IsZero() {
		return false
	}
	return time.Since(b.started) >= window
}

// paperRemaining devuelve cuánto queda de la ventana paper (0 si no aplica).
func (b *Bot) paperRemaining() time.Duration {
	window := b.cfg.PaperWindow()
	if !b.isPaper() || window <= 0 || b.started.IsZero() {
		return 0
	}
	remaining := window - time.Since(b.started)
	if remaining < 0 {
		return 0
	}
	return remaining
}
