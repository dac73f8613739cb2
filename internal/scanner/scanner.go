package scanner

// scanner.go — ciclo de descubrimiento de mercados weather.

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/alejandrodnm/weatherbot/internal/domain"
	"github.com/alejandrodnm/weatherbot/internal/ports"
)

// Scanner descubre mercados weather activos en Gamma.
type Scanner struct {
	markets ports.MarketProvider
	log     *slog.Logger
}

// New crea un scanner sobre el proveedor de mercados dado.
func New(markets ports.MarketProvider, log *slog.Logger) *Scanner {
	return &Scanner{markets: markets, log: log}
}

// ScanResult es el resultado de un ciclo de escaneo.
type ScanResult struct {
	Scanned int             // mercados activos totales revisados
	Weather []domain.Market // mercados weather, liquidez desc
}

// Scan descarga los mercados activos, filtra los weather y los ordena por
// liquidez descendente. Un fallo parcial aguas abajo (páginas incompletas)
// no es error: se trabaja con lo que haya.
func (s *Scanner) Scan(ctx context.Context) (ScanResult, error) {
	markets, err := s.markets.FetchActiveMarkets(ctx)
	if err != nil {
		return ScanResult{}, fmt.Errorf("scanner.Scan: %w", err)
	}

	var weather []domain.Market
	for _, m := range markets {
		if m.Settled() {
			continue
		}
		if IsWeatherMarket(m) {
			weather = append(weather, m)
		}
	}

	// Liquidez desc: los mercados con más actividad primero, con el
	// condition_id como desempate para un orden estable.
	sort.Slice(weather, func(i, j int) bool {
		if weather[i].Liquidity != weather[j].Liquidity {
			return weather[i].Liquidity > weather[j].Liquidity
		}
		return weather[i].ConditionID < weather[j].ConditionID
	})

	s.log.Info("scan completado",
		"escaneados", len(markets),
		"weather", len(weather))

	return ScanResult{Scanned: len(markets), Weather: weather}, nil
}
