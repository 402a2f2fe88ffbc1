// Package memory implementa los puertos de persistencia de la API de referencia en memoria.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-app/internal/domain"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
	"github.com/jhoicas/Inventario-app/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ repository.StockLedger       = (*ProductRepo)(nil)
	_ repository.UserRepository    = (*UserRepo)(nil)
)

// ProductRepo productos y movimientos bajo un mismo mutex, así Apply es atómico.
type ProductRepo struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []entity.StockMovement
}

// NewProductRepository construye el repositorio con los productos dados.
func NewProductRepository(seed ...entity.Product) *ProductRepo {
	r := &ProductRepo{products: make(map[string]*entity.Product, len(seed))}
	for _, p := range seed {
		p := p
		r.products[p.ID] = &p
	}
	return r
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ID == product.ID || strings.EqualFold(p.Code, product.Code) {
			return domain.ErrDuplicate
		}
	}
	cp := *product
	r.products[cp.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// Update reemplaza los datos editables; el stock guardado se conserva porque solo lo cambia Apply.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.products {
		if p.ID != product.ID && strings.EqualFold(p.Code, product.Code) {
			return domain.ErrDuplicate
		}
	}
	cp := *product
	cp.CurrentStock = stored.CurrentStock
	r.products[cp.ID] = &cp
	return nil
}

// List ordenado por fecha de alta e ID.
func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// Apply ajusta el stock y registra el movimiento; rechaza un stock resultante negativo.
func (r *ProductRepo) Apply(_ context.Context, m *entity.StockMovement) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[m.ProductID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	next := p.CurrentStock + m.Delta()
	if next < 0 {
		return nil, domain.ErrInsufficientStock
	}
	now := time.Now().UTC()
	p.CurrentStock = next
	p.UpdatedAt = now
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	r.movements = append(r.movements, *m)
	cp := *p
	return &cp, nil
}

// Movements copia de los movimientos registrados.
func (r *ProductRepo) Movements() []entity.StockMovement {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.StockMovement(nil), r.movements...)
}

// UserRepo credenciales indexadas por email en minúsculas.
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]entity.Credential
}

// NewUserRepository construye el repositorio vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{users: make(map[string]entity.Credential)}
}

func (r *UserRepo) Create(_ context.Context, cred *entity.Credential) error {
	key := strings.ToLower(cred.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[key]; ok {
		return domain.ErrEmailAlreadyExists
	}
	r.users[key] = *cred
	return nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, nil
	}
	return &c, nil
}
