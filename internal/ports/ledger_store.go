package ports

import (
	"context"

	"github.com/alejandrodnm/weatherbot/internal/domain"
)

// LedgerStore persiste el ledger como documento único.
type LedgerStore interface {
	// Load carga el ledger durable, o uno limpio si no existe o la versión
	// del schema no coincide.
	Load(ctx context.Context) (*domain.Ledger, error)

	// Save reemplaza atómicamente el ledger durable. Todo o nada: un fallo
	// a mitad de escritura deja intacto el estado anterior.
	Save(ctx context.Context, ledger *domain.Ledger) error
}

// TradeLog es el registro append-only de auditoría: una fila al abrir cada
// trade y otra al cerrarlo. Nunca se trunca ni se reescribe.
type TradeLog interface {
	Append(ctx context.Context, trade domain.Trade) error
}
