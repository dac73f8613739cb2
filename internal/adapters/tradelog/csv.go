package tradelog

// csv.go — registro append-only de trades.
//
// Una fila al abrir cada trade y otra al cerrarlo, con todos los campos.
// El archivo nunca se trunca ni se reescribe: es el audit trail
// independiente del snapshot del ledger.

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alejandrodnm/weatherbot/internal/domain"
)

// header define el orden de columnas del CSV. No cambiar sin versionar
// el archivo: los consumidores parsean por posición.
var header = []string{
	"timestamp", "question", "outcome", "leader_address",
	"leader_pnl", "leader_position",
	"clob_ask", "clob_bid", "spread",
	"bet_size", "shares", "potential_profit",
	"token_id", "condition_id", "order_id",
	"resolved", "won", "pnl", "bankroll_after", "paper",
}

const timestampLayout = "2006-01-02 15:04:05"

// Log implementa ports.TradeLog sobre un archivo CSV.
type Log struct {
	path string
}

// New crea (si hace falta) el archivo de log con su fila de cabecera.
// Un archivo existente se conserva tal cual — solo se añade.
func New(path string) (*Log, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("tradelog.New: mkdir %q: %w", dir, err)
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("tradelog.New: create %q: %w", path, err)
		}
		w := csv.NewWriter(f)
		if err := w.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("tradelog.New: write header: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, fmt.Errorf("tradelog.New: flush header: %w", err)
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("tradelog.New: close: %w", err)
		}
	}

	return &Log{path: path}, nil
}

// Append añade una fila con el estado actual del trade.
func (l *Log) Append(_ context.Context, t domain.Trade) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("tradelog.Append: open: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(row(t)); err != nil {
		return fmt.Errorf("tradelog.Append: write: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("tradelog.Append: flush: %w", err)
	}
	return nil
}

// row serializa un trade en el orden de header.
func row(t domain.Trade) []string {
	return []string{
		t.Timestamp.UTC().Format(timestampLayout),
		t.Question,
		t.Outcome,
		t.LeaderAddress,
		formatFloat(t.LeaderPnL),
		t.LeaderPosition,
		formatFloat(t.Ask),
		formatFloat(t.Bid),
		formatFloat(t.Spread),
		formatFloat(t.BetSize),
		strconv.Itoa(t.Shares),
		formatFloat(t.PotentialProfit),
		t.TokenID,
		t.ConditionID,
		t.OrderID,
		strconv.FormatBool(t.Resolved),
		strconv.FormatBool(t.Won),
		formatFloat(t.PnL),
		formatFloat(t.BankrollAfter),
		strconv.FormatBool(t.Paper),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
