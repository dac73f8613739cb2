package polymarket_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/alejandrodnm/weatherbot/internal/adapters/polymarket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(clobSrv, gammaSrv, dataSrv *httptest.Server) *polymarket.Client {
	clobURL := ""
	gammaURL := ""
	dataURL := ""
	if clobSrv != nil {
		clobURL = clobSrv.URL
	}
	if gammaSrv != nil {
		gammaURL = gammaSrv.URL
	}
	if dataSrv != nil {
		dataURL = dataSrv.URL
	}
	return polymarket.NewClient(clobURL, gammaURL, dataURL)
}

// gammaMarketJSON construye el JSON de un mercado Gamma con los arrays
// paralelos codificados como strings, tal como los devuelve la API real.
func gammaMarketJSON(conditionID, question string, liquidity float64) map[string]any {
	return map[string]any{
		"conditionId":   conditionID,
		"question":      question,
		"description":   "",
		"outcomes":      `["Yes","No"]`,
		"clobTokenIds":  fmt.Sprintf(`["%s_yes","%s_no"]`, conditionID, conditionID),
		"outcomePrices": `["0.62","0.38"]`,
		"liquidityNum":  liquidity,
		"active":        true,
		"closed":        false,
	}
}

func TestFetchActiveMarkets_Paginates(t *testing.T) {
	// Página 0 llena (100 mercados), página 1 corta → termina
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/markets", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("active"))
		assert.Equal(t, "false", r.URL.Query().Get("closed"))

		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		var page []map[string]any
		if offset == 0 {
			for i := 0; i < 100; i++ {
				page = append(page, gammaMarketJSON(fmt.Sprintf("0xc%03d", i), "Will it snow?", 100))
			}
		} else {
			page = append(page, gammaMarketJSON("0xlast", "Record high in Phoenix?", 50))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	client := newTestClient(nil, srv, nil)
	markets, err := client.FetchActiveMarkets(context.Background())

	require.NoError(t, err)
	require.Len(t, markets, 101)
	assert.Equal(t, "0xlast", markets[100].ConditionID)
	require.Len(t, markets[0].Outcomes, 2)
	assert.Equal(t, "Yes", markets[0].Outcomes[0].Label)
	assert.Equal(t, "0xc000_yes", markets[0].Outcomes[0].TokenID)
	assert.InDelta(t, 0.62, markets[0].Outcomes[0].Price, 0.001)
}

func TestFetchActiveMarkets_PartialOnPageError(t *testing.T) {
	// Primera página OK, segunda devuelve 404 → se queda con lo acumulado
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var page []map[string]any
		for i := 0; i < 100; i++ {
			page = append(page, gammaMarketJSON(fmt.Sprintf("0xc%03d", i), "Hurricane season?", 10))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	client := newTestClient(nil, srv, nil)
	markets, err := client.FetchActiveMarkets(context.Background())

	require.NoError(t, err)
	assert.Len(t, markets, 100)
}

func TestFetchActiveMarkets_DropsMisalignedMarkets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := []map[string]any{
			gammaMarketJSON("0xgood", "Will it rain?", 100),
			{
				// 2 outcomes pero 1 solo token → descartado
				"conditionId":  "0xbad",
				"question":     "Broken market",
				"outcomes":     `["Yes","No"]`,
				"clobTokenIds": `["only_one"]`,
				"active":       true,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	client := newTestClient(nil, srv, nil)
	markets, err := client.FetchActiveMarkets(context.Background())

	require.NoError(t, err)
	require.Len(t, markets, 1)
	assert.Equal(t, "0xgood", markets[0].ConditionID)
}

func TestFetchMarketByCondition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0xcond", r.URL.Query().Get("condition_ids"))
		m := gammaMarketJSON("0xcond", "Will it rain?", 100)
		m["closed"] = true
		m["outcomePrices"] = `["1","0"]`
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{m})
	}))
	defer srv.Close()

	client := newTestClient(nil, srv, nil)
	m, found := client.FetchMarketByCondition(context.Background(), "0xcond")

	require.True(t, found)
	assert.True(t, m.Settled())
	price, ok := m.PriceForToken("0xcond_yes")
	require.True(t, ok)
	assert.InDelta(t, 1.0, price, 0.001)
}

func TestFetchMarketByCondition_CorruptPriceIsUnknown(t *testing.T) {
	// Un precio ilegible no debe mapearse a 0.0: 0.0 en un mercado
	// cerrado se leería como pérdida liquidada
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := gammaMarketJSON("0xcond", "Heat wave in Dallas?", 100)
		m["closed"] = true
		m["outcomePrices"] = `["garbage","0"]`
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{m})
	}))
	defer srv.Close()

	client := newTestClient(nil, srv, nil)
	m, found := client.FetchMarketByCondition(context.Background(), "0xcond")

	require.True(t, found)
	assert.True(t, m.Settled())
	_, ok := m.PriceForToken("0xcond_yes")
	assert.False(t, ok)
	_, ok = m.PriceForToken("0xcond_no")
	assert.False(t, ok)
}

func TestFetchMarketByCondition_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newTestClient(nil, srv, nil)
	_, found := client.FetchMarketByCondition(context.Background(), "0xnope")
	assert.False(t, found)
}

func TestFetchActivity_MapsAddressFallback(t *testing.T) {
	fixture := `[
		{"proxyWalletAddress": "0xproxy", "usdcSize": "120.5", "side": "BUY"},
		{"address": "0xplain", "usdcSize": 80, "side": "SELL"}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/activity", r.URL.Path)
		assert.Equal(t, "0xcond", r.URL.Query().Get("market"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fixture))
	}))
	defer srv.Close()

	client := newTestClient(nil, nil, srv)
	fills, err := client.FetchActivity(context.Background(), "0xcond")

	require.NoError(t, err)
	require.Len(t, fills, 2)
	assert.Equal(t, "0xproxy", fills[0].Address)
	assert.InDelta(t, 120.5, fills[0].USDCSize, 0.001)
	assert.Equal(t, "0xplain", fills[1].Address)
	assert.Equal(t, "SELL", fills[1].Side)
}

func TestFetchPositions(t *testing.T) {
	fixture := `[
		{"conditionId": "0xcond", "outcome": "Yes", "asset": "tok1",
		 "size": "250.0", "curValue": "180.0", "redeemable": false},
		{"conditionId": "0xother", "outcome": "No", "tokenId": "tok2",
		 "size": 10, "curValue": 10, "redeemable": true}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/positions", r.URL.Path)
		assert.Equal(t, "0xwhale", r.URL.Query().Get("user"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fixture))
	}))
	defer srv.Close()

	client := newTestClient(nil, nil, srv)
	positions, err := client.FetchPositions(context.Background(), "0xwhale")

	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, "tok1", positions[0].TokenID)
	assert.InDelta(t, 250.0, positions[0].Size, 0.001)
	assert.Equal(t, "tok2", positions[1].TokenID) // fallback a tokenId
	assert.True(t, positions[1].Redeemable)
}

func TestFetchQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/price", r.URL.Path)
		side := r.URL.Query().Get("side")
		w.Header().Set("Content-Type", "application/json")
		if side == "SELL" {
			w.Write([]byte(`{"price": "0.40"}`))
		} else {
			w.Write([]byte(`{"price": "0.35"}`))
		}
	}))
	defer srv.Close()

	client := newTestClient(srv, nil, nil)
	quote, err := client.FetchQuote(context.Background(), "tok1")

	require.NoError(t, err)
	assert.InDelta(t, 0.40, quote.Ask, 0.001)
	assert.InDelta(t, 0.35, quote.Bid, 0.001)
	assert.InDelta(t, 0.05, quote.Spread(), 0.001)
}

func TestFetchQuote_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := newTestClient(srv, nil, nil)
	_, err := client.FetchQuote(context.Background(), "tok1")
	assert.Error(t, err)
}
