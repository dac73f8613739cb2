package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/weatherbot/internal/domain"
)

// CycleStats es el resumen de un ciclo de escaneo para el histórico.
type CycleStats struct {
	ScannedAt      time.Time
	MarketsScanned int
	WeatherFound   int
	TradesPlaced   int
	Pending        int
	Bankroll       float64
	PnL            float64
}

// History persiste el histórico de ciclos y los mercados weather vistos,
// independiente del ledger. Solo consulta/diagnóstico, nunca en el hot path
// de decisiones.
type History interface {
	// SaveCycle registra el resumen del ciclo y hace upsert de los mercados
	// weather encontrados.
	SaveCycle(ctx context.Context, stats CycleStats, found []domain.Market) error

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
