package state

// json.go — ledger persistido como documento JSON único.
//
// Escritura crash-safe: el documento completo se escribe a un archivo
// temporal en el mismo directorio y se renombra sobre la ruta canónica.
// Un fallo a mitad de escritura limpia el temporal y deja intacto el
// estado durable anterior — el save es todo-o-nada para un observador
// externo.

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alejandrodnm/weatherbot/internal/domain"
)

// Store implementa ports.LedgerStore sobre un archivo JSON.
type Store struct {
	path             string
	startingBankroll float64
}

// NewStore crea el store para la ruta dada. startingBankroll se usa para
// arrancar un ledger limpio cuando no hay estado previo válido.
func NewStore(path string, startingBankroll float64) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("state.NewStore: mkdir %q: %w", dir, err)
		}
	}
	return &Store{path: path, startingBankroll: startingBankroll}, nil
}

// Load carga el ledger durable. Devuelve uno limpio si el archivo no
// existe, no parsea, o su versión de schema no coincide — estado corrupto
// nunca tumba el arranque.
func (s *Store) Load(_ context.Context) (*domain.Ledger, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewLedger(s.startingBankroll), nil
		}
		return nil, fmt.Errorf("state.Load: read %q: %w", s.path, err)
	}

	var ledger domain.Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		slog.Warn("state file unreadable, starting fresh", "path", s.path, "err", err)
		return domain.NewLedger(s.startingBankroll), nil
	}
	if ledger.Version != domain.LedgerVersion {
		slog.Warn("state file schema mismatch, starting fresh",
			"path", s.path,
			"version", ledger.Version,
			"expected", domain.LedgerVersion,
		)
		return domain.NewLedger(s.startingBankroll), nil
	}
	if ledger.Pending == nil {
		ledger.Pending = []domain.Trade{}
	}
	return &ledger, nil
}

// Save reemplaza atómicamente el ledger durable: tmpfile + rename.
func (s *Store) Save(_ context.Context, ledger *domain.Ledger) error {
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("state.Save: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp")
	if err != nil {
		return fmt.Errorf("state.Save: create temp: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("state.Save: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("state.Save: close temp: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("state.Save: rename: %w", err)
	}
	return nil
}
