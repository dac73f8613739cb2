package state_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alejandrodnm/weatherbot/internal/adapters/state"
	"github.com/alejandrodnm/weatherbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*state.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "weather_state.json")
	store, err := state.NewStore(path, 1000)
	require.NoError(t, err)
	return store, path
}

func TestStore_LoadFresh(t *testing.T) {
	store, _ := newTestStore(t)

	ledger, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.LedgerVersion, ledger.Version)
	assert.InDelta(t, 1000, ledger.Bankroll, 0.001)
	assert.NotNil(t, ledger.Pending)
	assert.Empty(t, ledger.Pending)
}

func TestStore_SaveAndLoadRoundtrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	ledger := domain.NewLedger(1000)
	ledger.ApplyEntry(domain.Trade{
		Timestamp:   time.Now().UTC().Truncate(time.Second),
		Question:    "Will it snow in Denver?",
		Outcome:     "Yes",
		Ask:         0.40,
		Bid:         0.35,
		Shares:      12,
		BetSize:     4.80,
		TokenID:     "tok1",
		ConditionID: "0xcond",
		OrderID:     "paper-abc123",
		Paper:       true,
	})

	require.NoError(t, store.Save(ctx, ledger))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	assert.InDelta(t, ledger.Bankroll, loaded.Bankroll, 0.001)
	assert.Equal(t, 1, loaded.Trades)
	require.Len(t, loaded.Pending, 1)
	assert.Equal(t, "tok1", loaded.Pending[0].TokenID)
	assert.True(t, loaded.HasTraded("tok1"))
	assert.InDelta(t, 0, loaded.Drift(1000), 0.005)
}

func TestStore_LoadIgnoresSchemaMismatch(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	// versión antigua en disco → arranque limpio
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 1, "bankroll": 50}`), 0o644))

	ledger, err := store.Load(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 1000, ledger.Bankroll, 0.001)
}

func TestStore_LoadIgnoresCorruptFile(t *testing.T) {
	store, path := newTestStore(t)

	require.NoError(t, os.WriteFile(path, []byte(`{"version": 2, "bankro`), 0o644))

	ledger, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1000, ledger.Bankroll, 0.001)
}

func TestStore_SaveIsAtomic(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	first := domain.NewLedger(1000)
	require.NoError(t, store.Save(ctx, first))

	second := domain.NewLedger(1000)
	second.ApplyEntry(domain.Trade{TokenID: "tok1", BetSize: 4.80, Shares: 12})
	require.NoError(t, store.Save(ctx, second))

	// La ruta canónica siempre contiene JSON válido y sin temporales alrededor
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}
