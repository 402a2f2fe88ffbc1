package inventory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-app/internal/application/dto"
	"github.com/jhoicas/Inventario-app/internal/application/notify"
	"github.com/jhoicas/Inventario-app/internal/domain"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
)

// SeedProducts catálogo inicial de la variante local.
func SeedProducts() []entity.Product {
	now := time.Now().UTC()
	return []entity.Product{
		{ID: "1", Code: "NB-3500", Name: "Notebook Dell Inspiron", Description: "Notebook 15.6\" 8GB RAM", Category: "Eletrônicos", CurrentStock: 15, Price: decimal.NewFromInt(3500), CreatedAt: now, UpdatedAt: now},
		{ID: "2", Code: "SM-GLX", Name: "Smartphone Samsung Galaxy", Description: "Smartphone 128GB", Category: "Eletrônicos", CurrentStock: 25, Price: decimal.NewFromInt(1800), CreatedAt: now, UpdatedAt: now},
		{ID: "3", Code: "MN-LG24", Name: "Monitor LG 24\"", Description: "Monitor Full HD IPS", Category: "Eletrônicos", CurrentStock: 10, Price: decimal.NewFromInt(900), CreatedAt: now, UpdatedAt: now},
	}
}

// MemoryStore catálogo local sin backend. Aplica por sí mismo la regla de stock no negativo.
type MemoryStore struct {
	mu       sync.RWMutex
	products []entity.Product
	loading  bool
	notify   notify.Notifier
}

// NewMemoryStore construye el store sembrado con SeedProducts.
func NewMemoryStore(n notify.Notifier) *MemoryStore {
	return &MemoryStore{products: SeedProducts(), notify: n}
}

// NewMemoryStoreWith construye el store con una lista propia (tests).
func NewMemoryStoreWith(n notify.Notifier, products []entity.Product) *MemoryStore {
	return &MemoryStore{products: append([]entity.Product(nil), products...), notify: n}
}

func (s *MemoryStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// Load no hay backend: la lista en memoria ya es la fuente de verdad.
func (s *MemoryStore) Load(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)
	return ctx.Err()
}

func (s *MemoryStore) Add(_ context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if strings.TrimSpace(in.Name) == "" || in.CurrentStock < 0 {
		notify.Failure(s.notify, OpAdd, "Error al agregar producto")
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	p := entity.Product{
		ID:           uuid.NewString(),
		Code:         in.Code,
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		CurrentStock: in.CurrentStock,
		Price:        in.Price,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.mu.Lock()
	s.products = append(s.products, p)
	s.mu.Unlock()
	notify.Success(s.notify, OpAdd, "Producto agregado: "+p.Name)
	return &p, nil
}

func (s *MemoryStore) Update(_ context.Context, id string, in dto.UpdateProductRequest) error {
	if in.Empty() {
		notify.Failure(s.notify, OpUpdate, "Nada para actualizar")
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	_, i := find(s.products, id)
	if i < 0 {
		s.mu.Unlock()
		notify.Failure(s.notify, OpUpdate, "Producto no encontrado")
		return fmt.Errorf("inventario: actualizar %s: %w", id, domain.ErrNotFound)
	}
	applyUpdate(&s.products[i], in)
	s.products[i].UpdatedAt = time.Now().UTC()
	s.mu.Unlock()
	notify.Success(s.notify, OpUpdate, "Producto actualizado")
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	p, i := find(s.products, id)
	if i < 0 {
		s.mu.Unlock()
		notify.Failure(s.notify, OpDelete, "Producto no encontrado")
		return fmt.Errorf("inventario: eliminar %s: %w", id, domain.ErrNotFound)
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	s.mu.Unlock()
	notify.Success(s.notify, OpDelete, "Producto eliminado: "+p.Name)
	return nil
}

// UpdateQuantity rechaza el cambio, sin tocar la lista, si el stock quedaría negativo.
func (s *MemoryStore) UpdateQuantity(_ context.Context, id string, delta int) error {
	if delta == 0 {
		return nil
	}
	s.mu.Lock()
	p, i := find(s.products, id)
	if i < 0 {
		s.mu.Unlock()
		notify.Failure(s.notify, OpUpdateQuantity, "Producto no encontrado")
		return fmt.Errorf("inventario: cantidad %s: %w", id, domain.ErrNotFound)
	}
	if p.CurrentStock+delta < 0 {
		s.mu.Unlock()
		notify.Failure(s.notify, OpUpdateQuantity, fmt.Sprintf("Stock insuficiente: %s tiene %d", p.Name, p.CurrentStock))
		return fmt.Errorf("inventario: cantidad %s: %w", id, domain.ErrNegativeStock)
	}
	s.products[i].CurrentStock += delta
	s.products[i].UpdatedAt = time.Now().UTC()
	s.mu.Unlock()
	notify.Success(s.notify, OpUpdateQuantity, quantityMessage(p.Name, delta))
	return nil
}

func (s *MemoryStore) Products() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Product(nil), s.products...)
}

func (s *MemoryStore) Search(term string) []entity.Product {
	return filter(s.Products(), term)
}

func (s *MemoryStore) Get(id string) (entity.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, i := find(s.products, id)
	return p, i >= 0
}

func (s *MemoryStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RemoteStore)(nil)
)
