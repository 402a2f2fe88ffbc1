package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Inventario-app/internal/domain"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
	"github.com/jhoicas/Inventario-app/internal/domain/repository"
)

var _ repository.StockLedger = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Apply bloquea el producto, valida el stock resultante, lo actualiza y registra el movimiento.
func (r *TxRunner) Apply(ctx context.Context, m *entity.StockMovement) (*entity.Product, error) {
	var out *entity.Product
	err := r.Run(ctx, func(tx pgx.Tx) error {
		products := NewProductRepository(tx)
		p, err := products.getForUpdate(ctx, m.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		next := p.CurrentStock + m.Delta()
		if next < 0 {
			return domain.ErrInsufficientStock
		}

		now := time.Now().UTC()
		p.CurrentStock = next
		p.UpdatedAt = now
		if err := products.updateStock(ctx, p); err != nil {
			return err
		}

		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO stock_movements (id, product_id, type, quantity, user_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			m.ID, m.ProductID, m.Type, m.Quantity, m.UserID, m.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert stock movement: %w", err)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
