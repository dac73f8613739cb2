package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/alejandrodnm/weatherbot/internal/adapters/storage"
	"github.com/alejandrodnm/weatherbot/internal/domain"
	"github.com/alejandrodnm/weatherbot/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeStats(scanned, found int) ports.CycleStats {
	return ports.CycleStats{
		ScannedAt:      time.Now().UTC().Truncate(time.Second),
		MarketsScanned: scanned,
		WeatherFound:   found,
		Bankroll:       1000,
	}
}

func makeWeatherMarket(condID string, liquidity float64) domain.Market {
	return domain.Market{
		ConditionID: condID,
		Question:    "Will NYC hit 100 degrees in July?",
		Slug:        "nyc-100-degrees-july",
		Liquidity:   liquidity,
	}
}

func TestSQLiteHistory_SaveAndRecentCycles(t *testing.T) {
	db, err := storage.NewSQLiteHistory(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, db.SaveCycle(ctx, makeStats(420, 3), []domain.Market{
		makeWeatherMarket("0xaaa", 5000),
		makeWeatherMarket("0xbbb", 1200),
	}))
	require.NoError(t, db.SaveCycle(ctx, makeStats(431, 4), nil))

	cycles, err := db.RecentCycles(ctx, 10)
	require.NoError(t, err)
	require.Len(t, cycles, 2)

	// El más reciente primero
	assert.Equal(t, 431, cycles[0].MarketsScanned)
	assert.Equal(t, 420, cycles[1].MarketsScanned)
	assert.Equal(t, 3, cycles[1].WeatherFound)
}

func TestSQLiteHistory_UpsertKeepsPeakLiquidity(t *testing.T) {
	db, err := storage.NewSQLiteHistory(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, db.SaveCycle(ctx, makeStats(100, 1), []domain.Market{
		makeWeatherMarket("0x001", 9000),
	}))
	// La liquidez cae: peak_liquidity debe conservar el máximo
	require.NoError(t, db.SaveCycle(ctx, makeStats(100, 1), []domain.Market{
		makeWeatherMarket("0x001", 4000),
	}))

	cycles, err := db.RecentCycles(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, cycles, 2)
}

func TestSQLiteHistory_EmptyDatabase(t *testing.T) {
	db, err := storage.NewSQLiteHistory(":memory:")
	require.NoError(t, err)
	defer db.Close()

	cycles, err := db.RecentCycles(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, cycles)
}
