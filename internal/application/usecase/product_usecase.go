package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-app/internal/application/dto"
	"github.com/jhoicas/Inventario-app/internal/domain"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
	"github.com/jhoicas/Inventario-app/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock cambia solo vía movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto con su stock inicial.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Name) == "" || in.CurrentStock < 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Code:         strings.TrimSpace(in.Code),
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Category:     in.Category,
		CurrentStock: in.CurrentStock,
		Price:        in.Price,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID devuelve (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return uc.repo.GetByID(ctx, id)
}

// Update actualiza los campos presentes. No permite modificar el stock, ni pisar un
// movimiento registrado entre la lectura y la escritura.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	if in.Empty() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Code != nil {
		if strings.TrimSpace(*in.Code) == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Code = strings.TrimSpace(*in.Code)
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	// El repositorio no escribe el stock; se relee para devolver el valor vigente.
	stored, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, domain.ErrNotFound
	}
	return stored, nil
}

// List lista todos los productos.
func (uc *ProductUseCase) List(ctx context.Context) ([]entity.Product, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(list))
	for _, p := range list {
		out = append(out, *p)
	}
	return out, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
