package storage

// sqlite.go — histórico de ciclos de escaneo y mercados weather.
//
// Estrategia:
//   - `cycles`: resumen ligero por ciclo (mercados escaneados, weather
//     encontrados, trades, bankroll). Siempre 1 fila por ciclo.
//   - `weather_markets`: UNA fila por mercado weather (UPSERT). Guarda
//     first_seen/last_seen y la liquidez pico, no cada snapshot.
//   - Prune automático al arrancar: cycles > 30d, mercados no vistos en 14d.
//
// El histórico es diagnóstico puro: el bot nunca lee de aquí para decidir.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/weatherbot/internal/domain"
	"github.com/alejandrodnm/weatherbot/internal/ports"
	_ "modernc.org/sqlite"
)

const schema = `
-- Resumen ligero por ciclo de scan
CREATE TABLE IF NOT EXISTS cycles (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    scanned_at      DATETIME NOT NULL,
    markets_scanned INTEGER  NOT NULL DEFAULT 0,
    weather_found   INTEGER  NOT NULL DEFAULT 0,
    trades_placed   INTEGER  NOT NULL DEFAULT 0,
    pending         INTEGER  NOT NULL DEFAULT 0,
    bankroll        REAL     NOT NULL DEFAULT 0,
    pnl             REAL     NOT NULL DEFAULT 0
);

-- Una fila por mercado weather, sin duplicados
CREATE TABLE IF NOT EXISTS weather_markets (
    condition_id   TEXT PRIMARY KEY,
    question       TEXT,
    slug           TEXT,
    liquidity      REAL     NOT NULL DEFAULT 0,
    peak_liquidity REAL     NOT NULL DEFAULT 0,
    first_seen     DATETIME NOT NULL,
    last_seen      DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cycles_at  ON cycles(scanned_at DESC);
CREATE INDEX IF NOT EXISTS idx_wm_last    ON weather_markets(last_seen DESC);
`

const (
	retentionCycles  = 30 * 24 * time.Hour // ciclos: 30 días
	retentionMarkets = 14 * 24 * time.Hour // mercados: 14 días sin verse
)

// SQLiteHistory implementa ports.History usando SQLite (pure Go, sin CGo).
type SQLiteHistory struct {
	db *sql.DB
}

// NewSQLiteHistory abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia datos antiguos.
func NewSQLiteHistory(path string) (*SQLiteHistory, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteHistory: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteHistory: apply schema: %w", err)
	}

	s := &SQLiteHistory{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// SaveCycle persiste el resumen del ciclo y hace upsert de los mercados
// weather encontrados.
func (s *SQLiteHistory) SaveCycle(ctx context.Context, stats ports.CycleStats, found []domain.Market) error {
	now := stats.ScannedAt.UTC()
	if now.IsZero() {
		now = time.Now().UTC()
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO cycles (scanned_at, markets_scanned, weather_found, trades_placed, pending, bankroll, pnl)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		now, stats.MarketsScanned, stats.WeatherFound, stats.TradesPlaced,
		stats.Pending, stats.Bankroll, stats.PnL,
	); err != nil {
		return fmt.Errorf("storage.SaveCycle: insert cycle: %w", err)
	}

	if len(found) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveCycle: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO weather_markets
			(condition_id, question, slug, liquidity, peak_liquidity, first_seen, last_seen)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(condition_id) DO UPDATE SET
			question       = excluded.question,
			slug           = excluded.slug,
			liquidity      = excluded.liquidity,
			peak_liquidity = MAX(peak_liquidity, excluded.liquidity),
			last_seen      = excluded.last_seen
	`)
	if err != nil {
		return fmt.Errorf("storage.SaveCycle: prepare: %w", err)
	}
	defer stmt.Close()

	for _, m := range found {
		if _, err := stmt.ExecContext(ctx,
			m.ConditionID, m.Question, m.Slug, m.Liquidity, m.Liquidity,
			now, // first_seen: ignorado en ON CONFLICT (no se sobreescribe)
			now, // last_seen
		); err != nil {
			return fmt.Errorf("storage.SaveCycle: upsert %s: %w", m.ConditionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveCycle: commit: %w", err)
	}
	return nil
}

// RecentCycles devuelve los últimos n resúmenes de ciclo, el más reciente primero.
func (s *SQLiteHistory) RecentCycles(ctx context.Context, n int) ([]ports.CycleStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT scanned_at, markets_scanned, weather_found, trades_placed, pending, bankroll, pnl
		FROM cycles
		ORDER BY scanned_at DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("storage.RecentCycles: query: %w", err)
	}
	defer rows.Close()

	var cycles []ports.CycleStats
	for rows.Next() {
		var c ports.CycleStats
		var scannedAt string
		if err := rows.Scan(
			&scannedAt, &c.MarketsScanned, &c.WeatherFound,
			&c.TradesPlaced, &c.Pending, &c.Bankroll, &c.PnL,
		); err != nil {
			return nil, fmt.Errorf("storage.RecentCycles: scan row: %w", err)
		}
		c.ScannedAt, _ = time.Parse(time.RFC3339, scannedAt)
		cycles = append(cycles, c)
	}

	return cycles, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteHistory) Close() error {
	return s.db.Close()
}

// pruneOld elimina ciclos y mercados más allá de la retención. Best-effort:
// un fallo aquí no impide arrancar.
func (s *SQLiteHistory) pruneOld(ctx context.Context) {
	now := time.Now().UTC()
	s.db.ExecContext(ctx, `DELETE FROM cycles WHERE scanned_at < ?`, now.Add(-retentionCycles))
	s.db.ExecContext(ctx, `DELETE FROM weather_markets WHERE last_seen < ?`, now.Add(-retentionMarkets))
}
