// Package report define el reporte de stock y el puerto del generador de documentos.
package report

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-app/internal/application/dashboard"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
)

// StockReport datos del reporte de stock.
type StockReport struct {
	GeneratedAt time.Time
	GeneratedBy string
	Summary     dashboard.Summary
	Products    []entity.Product
}

// Generator produce el documento del reporte.
type Generator interface {
	GenerateStockReport(ctx context.Context, r StockReport) ([]byte, error)
}

// Build arma el reporte para el usuario dado a partir de la lista de productos.
func Build(products []entity.Product, user *entity.User, now time.Time) StockReport {
	by := ""
	if user != nil {
		by = user.Name
	}
	return StockReport{
		GeneratedAt: now,
		GeneratedBy: by,
		Summary:     dashboard.Summarize(products),
		Products:    products,
	}
}
