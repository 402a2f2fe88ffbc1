// Package dashboard calcula los indicadores de la pantalla principal.
package dashboard

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/jhoicas/Inventario-app/internal/domain/entity"
)

// Summary indicadores del inventario.
type Summary struct {
	TotalProducts  int
	TotalItems     int
	LowStock       []entity.Product
	InventoryValue decimal.Decimal
}

// Summarize calcula los indicadores a partir de la lista de productos.
func Summarize(products []entity.Product) Summary {
	s := Summary{TotalProducts: len(products), InventoryValue: decimal.Zero, LowStock: []entity.Product{}}
	for _, p := range products {
		s.TotalItems += p.CurrentStock
		s.InventoryValue = s.InventoryValue.Add(p.Value())
		if p.LowStock() {
			s.LowStock = append(s.LowStock, p)
		}
	}
	return s
}

const brlSymbol = "R$"

// FormatBRL formatea un valor como moneda brasileña (ej: R$ 106.500,00) sin pasar por float64.
func FormatBRL(v decimal.Decimal) string {
	scale, _ := currency.Standard.Rounding(currency.BRL)
	digits := v.StringFixed(int32(scale))

	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	whole, frac, _ := strings.Cut(digits, ".")

	var b strings.Builder
	b.WriteString(brlSymbol + " " + sign)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteString("," + frac)
	}
	return b.String()
}
