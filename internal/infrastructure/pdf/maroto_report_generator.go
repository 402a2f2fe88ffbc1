// Package pdf genera el reporte de stock en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + generado por   │  Fecha                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Productos / Ítems / Stock bajo / Valor            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  STOCK BAJO: Código | Producto | Stock                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CATÁLOGO: Código | Producto | Categoría | Stock | Valor    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Inventario-app/internal/application/dashboard"
	"github.com/jhoicas/Inventario-app/internal/application/report"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.Generator usando Maroto v2.
type MarotoReportGenerator struct{}

var _ report.Generator = (*MarotoReportGenerator)(nil)

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStockReport(ctx context.Context, r report.StockReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de stock", true).
		WithAuthor(nonEmpty(r.GeneratedBy, "inventario"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(r.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRow("PRODUCTOS CON STOCK BAJO"))
	if len(r.Summary.LowStock) == 0 {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New("Ningún producto con stock bajo.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	} else {
		m.AddRows(tableHeaderRow([]string{"Código", "Producto", "Stock"}, []int{3, 7, 2}))
		for _, p := range r.Summary.LowStock {
			m.AddRows(row.New(6).Add(
				cell(p.Code, 3, align.Left, nil),
				cell(p.Name, 7, align.Left, nil),
				cell(strconv.Itoa(p.CurrentStock), 2, align.Right, colorAlert),
			))
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionRow("CATÁLOGO"))
	m.AddRows(tableHeaderRow([]string{"Código", "Producto", "Categoría", "Stock", "Valor"}, []int{2, 4, 2, 1, 3}))
	for _, p := range r.Products {
		m.AddRows(catalogRow(p))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r report.StockReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado por: "+nonEmpty(r.GeneratedBy, "—"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Fecha: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func totalsRow(s dashboard.Summary) core.Row {
	box := func(label, value string, color *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: color, Top: 6}),
		)
	}
	return row.New(16).Add(
		box("Total de productos", strconv.Itoa(s.TotalProducts), colorPrimary),
		box("Ítems en stock", strconv.Itoa(s.TotalItems), colorPrimary),
		box("Stock bajo", strconv.Itoa(len(s.LowStock)), colorAlert),
		box("Valor del inventario", dashboard.FormatBRL(s.InventoryValue), colorPrimary),
	)
}

func sectionRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeaderRow(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		a := align.Left
		if i == len(labels)-1 {
			a = align.Right
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func catalogRow(p entity.Product) core.Row {
	var stockColor *props.Color
	if p.LowStock() {
		stockColor = colorAlert
	}
	return row.New(6).Add(
		cell(p.Code, 2, align.Left, nil),
		cell(p.Name, 4, align.Left, nil),
		cell(nonEmpty(p.Category, "—"), 2, align.Left, nil),
		cell(strconv.Itoa(p.CurrentStock), 1, align.Right, stockColor),
		cell(dashboard.FormatBRL(p.Value()), 3, align.Right, nil),
	)
}

func cell(value string, size int, a align.Type, color *props.Color) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: color,
	}))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
