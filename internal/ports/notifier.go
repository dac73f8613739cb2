package ports

import (
	"time"

	"github.com/alejandrodnm/weatherbot/internal/domain"
)

// Notifier presenta al operador los eventos del bot: cada decisión debe ser
// auditable desde la consola sin abrir el log file.
type Notifier interface {
	// TradeOpened anuncia un copy trade recién ejecutado.
	TradeOpened(trade domain.Trade, ledger *domain.Ledger)

	// TradeResolved anuncia un trade liquidado (win, loss o stale).
	TradeResolved(trade domain.Trade, ledger *domain.Ledger, stale bool)

	// KillSwitch anuncia que el bankroll cayó bajo el suelo configurado.
	KillSwitch(ledger *domain.Ledger, floor float64)

	// Dashboard imprime el estado corriente del bot.
	Dashboard(ledger *domain.Ledger, paperRemaining time.Duration)

	// PaperSummary imprime el resumen final de la ventana paper con el
	// veredicto de si es seguro pasar a live.
	PaperSummary(ledger *domain.Ledger, startingBankroll float64)
}
