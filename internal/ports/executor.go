package ports

import "context"

// OrderRequest es una orden de compra fill-or-kill para un token.
type OrderRequest struct {
	TokenID string
	Price   float64
	Shares  int
}

// OrderResult es la respuesta a una orden FOK: o se llenó entera de inmediato,
// o fue rechazada. No existen fills parciales.
type OrderResult struct {
	OrderID string
	Filled  bool
	Status  string
}

// OrderExecutor envía órdenes de compra FOK. La implementación live firma y
// envía al CLOB; la implementación paper simula un fill instantáneo al ask.
type OrderExecutor interface {
	PlaceBuyOrder(ctx context.Context, req OrderRequest) (OrderResult, error)
}
