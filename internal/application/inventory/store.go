// Package inventory contiene el store de productos del cliente: dueño único de la
// lista en memoria, la reconcilia con el backend y publica el resultado de cada operación.
package inventory

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/Inventario-app/internal/application/dto"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
)

// Store contrato común de la variante remota y la local.
// Las vistas solo mutan la lista a través de estas operaciones.
type Store interface {
	// Load reemplaza la lista con la del backend; si falla, la lista anterior se conserva.
	Load(ctx context.Context) error
	Products() []entity.Product
	Search(term string) []entity.Product
	Add(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error)
	Update(ctx context.Context, id string, in dto.UpdateProductRequest) error
	Delete(ctx context.Context, id string) error
	// UpdateQuantity delta > 0 es una entrada, delta < 0 una salida, 0 no hace nada.
	UpdateQuantity(ctx context.Context, id string, delta int) error
	// Get búsqueda local; false si no existe.
	Get(id string) (entity.Product, bool)
	Loading() bool
}

// Operaciones publicadas en el notifier.
const (
	OpLoad           = "inventory.load"
	OpAdd            = "inventory.add"
	OpUpdate         = "inventory.update"
	OpDelete         = "inventory.delete"
	OpUpdateQuantity = "inventory.update_quantity"
)

var folder = cases.Fold()

// filter coincidencia por nombre o categoría sin distinguir mayúsculas.
func filter(products []entity.Product, term string) []entity.Product {
	needle := folder.String(strings.TrimSpace(term))
	if needle == "" {
		return products
	}
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(folder.String(p.Name), needle) || strings.Contains(folder.String(p.Category), needle) {
			out = append(out, p)
		}
	}
	return out
}

func find(products []entity.Product, id string) (entity.Product, int) {
	for i, p := range products {
		if p.ID == id {
			return p, i
		}
	}
	return entity.Product{}, -1
}

// applyUpdate mezcla los campos presentes de in sobre p.
func applyUpdate(p *entity.Product, in dto.UpdateProductRequest) {
	if in.Code != nil {
		p.Code = *in.Code
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
}

func quantityMessage(name string, delta int) string {
	return fmt.Sprintf("Cantidad actualizada: %s %+d", name, delta)
}
