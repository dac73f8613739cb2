package engine

// paper.go — ejecución simulada: toda orden FOK llena al ask.

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/alejandrodnm/weatherbot/internal/ports"
)

// PaperExecutor implementa ports.OrderExecutor sin tocar el exchange.
// Asume fill inmediato al precio pedido, que es la aproximación optimista
// estándar para validar una estrategia antes de ir a live.
type PaperExecutor struct{}

// NewPaperExecutor crea el executor simulado.
func NewPaperExecutor() *PaperExecutor {
	return &PaperExecutor{}
}

// PlaceBuyOrder simula un fill inmediato y devuelve un order ID sintético
// con prefijo paper- para que nunca se confunda con uno real.
func (p *PaperExecutor) PlaceBuyOrder(_ context.Context, _ ports.OrderRequest) (ports.OrderResult, error) {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return ports.OrderResult{
		OrderID: "paper-" + id,
		Filled:  true,
		Status:  "matched",
	}, nil
}
