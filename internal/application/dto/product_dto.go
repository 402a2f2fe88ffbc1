package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body de POST /product/create.
type CreateProductRequest struct {
	Code         string          `json:"code" validate:"required,min=1,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	CurrentStock int             `json:"current_stock" validate:"min=0"`
	Price        decimal.Decimal `json:"price"`
}

// UpdateProductRequest body de PUT /product/update/{id}. Solo se envían los campos presentes.
// El stock no se edita aquí; cambia vía transacciones de entrada/salida.
type UpdateProductRequest struct {
	Code        *string          `json:"code,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// Empty indica si no hay ningún campo a actualizar.
func (r UpdateProductRequest) Empty() bool {
	return r.Code == nil && r.Name == nil && r.Description == nil && r.Category == nil && r.Price == nil
}
