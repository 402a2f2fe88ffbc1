package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-app/internal/application/inventory"
	"github.com/jhoicas/Inventario-app/internal/application/report"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
	"github.com/jhoicas/Inventario-app/internal/infrastructure/pdf"
)

func TestGenerateStockReport_ProducePDF(t *testing.T) {
	products := inventory.SeedProducts()
	products[2].CurrentStock = 2
	r := report.Build(products, &entity.User{Name: "Admin"}, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))

	out, err := pdf.NewMarotoReportGenerator().GenerateStockReport(context.Background(), r)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Len(t, r.Summary.LowStock, 1)
}

func TestGenerateStockReport_CatalogoVacio(t *testing.T) {
	r := report.Build(nil, nil, time.Now())
	out, err := pdf.NewMarotoReportGenerator().GenerateStockReport(context.Background(), r)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateStockReport_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pdf.NewMarotoReportGenerator().GenerateStockReport(ctx, report.Build(nil, nil, time.Now()))
	assert.ErrorIs(t, err, context.Canceled)
}
