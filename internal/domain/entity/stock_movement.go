package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeEntry = "entry" // entrada
	MovementTypeExit  = "exit"  // salida
)

// StockMovement representa una transacción de entrada o salida de stock.
// Quantity siempre es positivo; el signo lo determina Type.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string
	Quantity  int
	UserID    string
	CreatedAt time.Time
}

// Delta cambio con signo que el movimiento aplica al stock.
func (m StockMovement) Delta() int {
	if m.Type == MovementTypeExit {
		return -m.Quantity
	}
	return m.Quantity
}
