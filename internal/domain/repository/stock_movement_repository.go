package repository

import (
	"context"

	"github.com/jhoicas/Inventario-app/internal/domain/entity"
)

// StockLedger aplica un movimiento de forma atómica: ajusta el stock del producto
// y registra el movimiento. Devuelve domain.ErrNotFound si el producto no existe y
// domain.ErrInsufficientStock si el stock resultante sería negativo.
type StockLedger interface {
	Apply(ctx context.Context, movement *entity.StockMovement) (*entity.Product, error)
}
