package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-app/internal/application/dto"
	"github.com/jhoicas/Inventario-app/internal/domain"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
	"github.com/jhoicas/Inventario-app/internal/domain/repository"
)

// MovementUseCase registra entradas y salidas de stock.
type MovementUseCase struct {
	ledger repository.StockLedger
}

// NewMovementUseCase construye el caso de uso con el ledger (memoria o postgres).
func NewMovementUseCase(ledger repository.StockLedger) *MovementUseCase {
	return &MovementUseCase{ledger: ledger}
}

// Register aplica el movimiento de forma atómica. Una salida que dejaría stock
// negativo devuelve domain.ErrInsufficientStock sin cambios.
func (uc *MovementUseCase) Register(ctx context.Context, movementType, userID string, in dto.TransactionRequest) (*dto.TransactionResponse, error) {
	if movementType != entity.MovementTypeEntry && movementType != entity.MovementTypeExit {
		return nil, fmt.Errorf("tipo de movimiento %q: %w", movementType, domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.ProductID) == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	m := &entity.StockMovement{
		ProductID: in.ProductID,
		Type:      movementType,
		Quantity:  in.Quantity,
		UserID:    userID,
	}
	product, err := uc.ledger.Apply(ctx, m)
	if err != nil {
		return nil, err
	}
	return &dto.TransactionResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		Type:         m.Type,
		Quantity:     m.Quantity,
		CurrentStock: product.CurrentStock,
	}, nil
}
