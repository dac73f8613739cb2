package tradelog_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alejandrodnm/weatherbot/internal/adapters/tradelog"
	"github.com/alejandrodnm/weatherbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestLog_HeaderWrittenOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")

	_, err := tradelog.New(path)
	require.NoError(t, err)

	// reabrir no debe duplicar la cabecera
	log, err := tradelog.New(path)
	require.NoError(t, err)

	rows := readAll(t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, "timestamp", rows[0][0])
	assert.Equal(t, "paper", rows[0][len(rows[0])-1])

	require.NoError(t, log.Append(context.Background(), domain.Trade{
		Timestamp: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Question:  "Will Chicago see a blizzard this month?",
		Outcome:   "Yes",
		Shares:    12,
		BetSize:   4.80,
		TokenID:   "tok1",
		Paper:     true,
	}))

	rows = readAll(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-03-01 09:30:00", rows[1][0])
	assert.Equal(t, "4.8", rows[1][9])
	assert.Equal(t, "12", rows[1][10])
	assert.Equal(t, "true", rows[1][len(rows[1])-1])
}

func TestLog_AppendsOpenAndCloseRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")
	log, err := tradelog.New(path)
	require.NoError(t, err)
	ctx := context.Background()

	trade := domain.Trade{
		Timestamp: time.Now().UTC(),
		Outcome:   "No",
		Shares:    7,
		BetSize:   4.97,
		TokenID:   "tok2",
	}
	require.NoError(t, log.Append(ctx, trade))

	trade.Resolved = true
	trade.Won = true
	trade.PnL = 2.03
	trade.BankrollAfter = 1002.03
	require.NoError(t, log.Append(ctx, trade))

	rows := readAll(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, "false", rows[1][15]) // resolved en la fila de apertura
	assert.Equal(t, "true", rows[2][15])  // resolved en la fila de cierre
	assert.Equal(t, "2.03", rows[2][17])
}
