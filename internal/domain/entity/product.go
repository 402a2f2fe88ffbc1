package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold stock a partir del cual un producto se considera crítico.
const LowStockThreshold = 5

// Product representa un producto del catálogo con su stock actual.
type Product struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	CurrentStock int             `json:"current_stock"`
	Price        decimal.Decimal `json:"price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// LowStock indica si el producto necesita reposición.
func (p Product) LowStock() bool {
	return p.CurrentStock <= LowStockThreshold
}

// Value precio por stock actual.
func (p Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.CurrentStock)))
}
