package notify

// console.go — salida a consola para el operador.
//
// Cada evento del bot (trade abierto, trade resuelto, kill switch, resumen
// paper) se imprime en el momento en que ocurre. El dashboard periódico usa
// una tabla para los trades pendientes.

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alejandrodnm/weatherbot/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Umbrales del veredicto paper: con win rate >= 55% y P&L positivo la
// estrategia se considera lista para live; entre 45% y 55% es ruido.
const (
	verdictProfitableWR = 0.55
	verdictBreakEvenWR  = 0.45
)

// Console implementa ports.Notifier.
type Console struct {
	out io.Writer
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// Banner imprime la cabecera de arranque con la configuración efectiva.
func (c *Console) Banner(paper bool, bankroll, betSize, killSwitch float64) {
	mode := "LIVE"
	if paper {
		mode = "PAPER"
	}
	fmt.Fprintf(c.out, "\n==============================================\n")
	fmt.Fprintf(c.out, "  WEATHER COPY-TRADE BOT — %s\n", mode)
	fmt.Fprintf(c.out, "  bankroll $%.2f | bet $%.2f | kill switch $%.2f\n",
		bankroll, betSize, killSwitch)
	fmt.Fprintf(c.out, "==============================================\n\n")
}

// TradeOpened anuncia un copy trade recién ejecutado.
func (c *Console) TradeOpened(t domain.Trade, ledger *domain.Ledger) {
	now := t.Timestamp.Format("15:04:05")
	fmt.Fprintf(c.out, "[%s][TRADE] %s → %q\n", now, t.Outcome,
		domain.TruncateQuestion(t.Question, t.ConditionID, 60))
	fmt.Fprintf(c.out, "  copiando %s (pos %s, pnl $%.2f)\n",
		shortAddr(t.LeaderAddress), t.LeaderPosition, t.LeaderPnL)
	fmt.Fprintf(c.out, "  %d shares @ $%.4f = $%.2f | profit potencial $%.2f | bankroll $%.2f\n",
		t.Shares, t.Ask, t.BetSize, t.PotentialProfit, ledger.Bankroll)
}

// TradeResolved anuncia un trade liquidado (win, loss o stale).
func (c *Console) TradeResolved(t domain.Trade, ledger *domain.Ledger, stale bool) {
	now := time.Now().Format("15:04:05")
	label := "LOSS"
	if t.Won {
		label = "WIN"
	}
	if stale {
		label = "STALE"
	}
	fmt.Fprintf(c.out, "[%s][%s] %s → %q | pnl $%+.4f | bankroll $%.2f (%dW/%dL)\n",
		now, label, t.Outcome, domain.TruncateQuestion(t.Question, t.ConditionID, 60),
		t.PnL, ledger.Bankroll, ledger.Wins, ledger.Losses)
}

// KillSwitch anuncia que el bankroll cayó bajo el suelo configurado.
func (c *Console) KillSwitch(ledger *domain.Ledger, floor float64) {
	fmt.Fprintf(c.out, "\n  !! KILL SWITCH: bankroll $%.2f < $%.2f — trading detenido\n",
		ledger.Bankroll, floor)
	fmt.Fprintf(c.out, "  !! Los trades pendientes se siguen resolviendo; no se abren nuevos.\n\n")
}

// Dashboard imprime el estado corriente del bot con la tabla de pendientes.
func (c *Console) Dashboard(ledger *domain.Ledger, paperRemaining time.Duration) {
	now := time.Now().Format("15:04:05")

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] bankroll $%.2f | pnl $%+.4f | %dW/%dL",
		now, ledger.Bankroll, ledger.PnL, ledger.Wins, ledger.Losses)
	if resolved := ledger.Wins + ledger.Losses; resolved > 0 {
		fmt.Fprintf(&sb, " (wr %.0f%%)", ledger.WinRate()*100)
	}
	fmt.Fprintf(&sb, " | %d pending $%.2f", len(ledger.Pending), ledger.PendingExposure())
	if paperRemaining > 0 {
		fmt.Fprintf(&sb, " | paper %s restantes", formatDuration(paperRemaining))
	}
	fmt.Fprintln(c.out, sb.String())

	if len(ledger.Pending) == 0 {
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Age", "Outcome", "Market", "Bet$", "Shares", "Payout$")

	for i, t := range ledger.Pending {
		table.Append(
			fmt.Sprintf("%d", i+1),
			formatDuration(t.Age(time.Now())),
			t.Outcome,
			domain.TruncateQuestion(t.Question, t.ConditionID, 45),
			fmt.Sprintf("%.2f", t.BetSize),
			fmt.Sprintf("%d", t.Shares),
			fmt.Sprintf("%.2f", t.Payout()),
		)
	}

	table.Render()
}

// PaperSummary imprime el resumen final de la ventana paper con el veredicto.
func (c *Console) PaperSummary(ledger *domain.Ledger, startingBankroll float64) {
	resolved := ledger.Wins + ledger.Losses

	fmt.Fprintf(c.out, "\n========================================================\n")
	fmt.Fprintf(c.out, "  PAPER TRADING SUMMARY\n")
	fmt.Fprintf(c.out, "========================================================\n\n")
	fmt.Fprintf(c.out, "  Trades placed:    %d\n", ledger.Trades)
	fmt.Fprintf(c.out, "  Resolved:         %d (%dW / %dL)\n", resolved, ledger.Wins, ledger.Losses)
	fmt.Fprintf(c.out, "  Still pending:    %d ($%.2f at risk)\n", len(ledger.Pending), ledger.PendingExposure())
	fmt.Fprintf(c.out, "  Bankroll:         $%.2f → $%.2f\n", startingBankroll, ledger.Bankroll)
	fmt.Fprintf(c.out, "  Realized P&L:     $%+.4f\n", ledger.PnL)
	if resolved > 0 {
		fmt.Fprintf(c.out, "  Win rate:         %.1f%%\n", ledger.WinRate()*100)
	}

	fmt.Fprintf(c.out, "\n  --- VERDICT ---\n")
	switch verdict(ledger) {
	case "profitable":
		fmt.Fprintf(c.out, "  PROFITABLE: win rate y P&L positivos.\n")
		fmt.Fprintf(c.out, "  >>> Considera pasar a live con la apuesta mínima.\n")
	case "break-even":
		fmt.Fprintf(c.out, "  BREAK-EVEN: resultados dentro del ruido.\n")
		fmt.Fprintf(c.out, "  >>> Extiende la ventana paper antes de decidir.\n")
	case "no-data":
		fmt.Fprintf(c.out, "  NO DATA: ningún trade se resolvió en la ventana.\n")
		fmt.Fprintf(c.out, "  >>> Extiende la ventana paper.\n")
	default:
		fmt.Fprintf(c.out, "  UNPROFITABLE: la estrategia pierde dinero.\n")
		fmt.Fprintf(c.out, "  >>> NO pases a live. Revisa la estrategia.\n")
	}
	fmt.Fprintln(c.out)
}

// verdict clasifica el resultado de la ventana paper.
func verdict(ledger *domain.Ledger) string {
	if ledger.Wins+ledger.Losses == 0 {
		return "no-data"
	}
	wr := ledger.WinRate()
	switch {
	case wr >= verdictProfitableWR && ledger.PnL > 0:
		return "profitable"
	case wr >= verdictBreakEvenWR:
		return "break-even"
	default:
		return "unprofitable"
	}
}

// --- helpers ---

// shortAddr abrevia una dirección 0x... a 0xabcd…ef12.
func shortAddr(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
