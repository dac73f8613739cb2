package notify_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alejandrodnm/weatherbot/internal/adapters/notify"
	"github.com/alejandrodnm/weatherbot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func makeLedgerWith(wins, losses int, pnl float64) *domain.Ledger {
	l := domain.NewLedger(1000)
	l.Wins = wins
	l.Losses = losses
	l.PnL = pnl
	return l
}

func TestConsole_TradeOpened(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	c.TradeOpened(domain.Trade{
		Timestamp:     time.Date(2026, 7, 4, 14, 0, 0, 0, time.UTC),
		Question:      "Will July be the hottest month on record?",
		Outcome:       "Yes",
		LeaderAddress: "0x1234567890abcdef1234567890abcdef12345678",
		Ask:           0.42,
		Shares:        11,
		BetSize:       4.62,
	}, domain.NewLedger(1000))

	out := buf.String()
	assert.Contains(t, out, "[TRADE] Yes")
	assert.Contains(t, out, "hottest month")
	assert.Contains(t, out, "0x1234")
	assert.Contains(t, out, "11 shares")
}

func TestConsole_TradeResolved_Labels(t *testing.T) {
	cases := []struct {
		name  string
		won   bool
		stale bool
		want  string
	}{
		{"win", true, false, "[WIN]"},
		{"loss", false, false, "[LOSS]"},
		{"stale", false, true, "[STALE]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := notify.NewConsoleWriter(&buf)
			c.TradeResolved(domain.Trade{Won: tc.won, Outcome: "Yes"}, makeLedgerWith(1, 1, 0), tc.stale)
			assert.Contains(t, buf.String(), tc.want)
		})
	}
}

func TestConsole_Dashboard_PendingTable(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	l := domain.NewLedger(1000)
	l.Pending = []domain.Trade{{
		Timestamp: time.Now().Add(-2 * time.Hour),
		Question:  "Will it snow in Denver this weekend?",
		Outcome:   "No",
		BetSize:   4.80,
		Shares:    12,
	}}

	c.Dashboard(l, 0)

	out := buf.String()
	assert.Contains(t, out, "1 pending")
	assert.Contains(t, out, "snow in Denver")
	assert.Contains(t, out, "4.80")
}

func TestConsole_Dashboard_NoPendingSkipsTable(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	c.Dashboard(domain.NewLedger(1000), 3*time.Hour)

	out := buf.String()
	assert.Contains(t, out, "0 pending")
	assert.Contains(t, out, "paper 3h00m restantes")
	// Sin pendientes no hay tabla
	assert.NotContains(t, out, "Outcome")
}

func TestConsole_PaperSummary_Verdicts(t *testing.T) {
	cases := []struct {
		name   string
		ledger *domain.Ledger
		want   string
	}{
		{"profitable", makeLedgerWith(6, 4, 12.5), "Considera pasar a live"},
		{"break even", makeLedgerWith(5, 5, -1.0), "BREAK-EVEN"},
		{"unprofitable", makeLedgerWith(2, 8, -20.0), "UNPROFITABLE"},
		{"no data", makeLedgerWith(0, 0, 0), "NO DATA"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := notify.NewConsoleWriter(&buf)
			c.PaperSummary(tc.ledger, 1000)
			assert.Contains(t, buf.String(), tc.want)
		})
	}
}

func TestConsole_KillSwitch(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	l := domain.NewLedger(1000)
	l.Bankroll = 91.20
	c.KillSwitch(l, 100)

	out := buf.String()
	assert.Contains(t, out, "KILL SWITCH")
	assert.Contains(t, out, "$91.20")
}

func TestConsole_Banner(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	c.Banner(true, 1000, 5, 100)

	out := buf.String()
	assert.Contains(t, out, "PAPER")
	assert.True(t, strings.Contains(out, "kill switch $100.00"))
}
