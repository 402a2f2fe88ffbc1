package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/Inventario-app/internal/application/dto"
	"github.com/jhoicas/Inventario-app/internal/application/notify"
	"github.com/jhoicas/Inventario-app/internal/domain"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
	"github.com/jhoicas/Inventario-app/internal/infrastructure/gateway"
	"github.com/jhoicas/Inventario-app/pkg/logger"
)

// API subconjunto del gateway que usa el store remoto.
type API interface {
	Get(ctx context.Context, path string, out any, opts ...gateway.RequestOption) error
	Post(ctx context.Context, path string, body, out any, opts ...gateway.RequestOption) error
	Put(ctx context.Context, path string, body, out any, opts ...gateway.RequestOption) error
	Delete(ctx context.Context, path string, out any, opts ...gateway.RequestOption) error
}

// RemoteStore catálogo servido por la API. La invariante de stock no negativo la aplica el backend.
type RemoteStore struct {
	mu       sync.RWMutex
	products []entity.Product
	inFlight int

	api    API
	notify notify.Notifier
	log    *logger.Logger
}

// NewRemoteStore construye el store remoto con la lista vacía; llamar Load para poblarla.
func NewRemoteStore(api API, n notify.Notifier, log *logger.Logger) *RemoteStore {
	if log == nil {
		log = logger.Nop()
	}
	return &RemoteStore{api: api, notify: n, log: log}
}

// begin marca una petición en curso; el func devuelto la libera en cualquier salida.
func (s *RemoteStore) begin() func() {
	s.mu.Lock()
	s.inFlight++
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}
}

func (s *RemoteStore) Load(ctx context.Context) error {
	defer s.begin()()
	return s.load(ctx)
}

func (s *RemoteStore) load(ctx context.Context) error {
	var list []entity.Product
	if err := s.api.Get(ctx, "/product", &list); err != nil {
		s.log.Error().Err(err).Msg("error al cargar productos")
		notify.Failure(s.notify, OpLoad, "Error al cargar productos")
		return fmt.Errorf("inventario: cargar: %w", err)
	}
	if list == nil {
		list = []entity.Product{}
	}
	s.mu.Lock()
	s.products = list
	s.mu.Unlock()
	return nil
}

func (s *RemoteStore) Add(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	defer s.begin()()
	var created entity.Product
	if err := s.api.Post(ctx, "/product/create", in, &created); err != nil {
		s.log.Error().Err(err).Str("code", in.Code).Msg("error al agregar producto")
		notify.Failure(s.notify, OpAdd, "Error al agregar producto")
		return nil, fmt.Errorf("inventario: agregar: %w", err)
	}
	s.mu.Lock()
	s.products = append(s.products, created)
	s.mu.Unlock()
	notify.Success(s.notify, OpAdd, "Producto agregado: "+created.Name)
	return &created, nil
}

func (s *RemoteStore) Update(ctx context.Context, id string, in dto.UpdateProductRequest) error {
	if in.Empty() {
		notify.Failure(s.notify, OpUpdate, "Nada para actualizar")
		return domain.ErrInvalidInput
	}
	defer s.begin()()
	if err := s.api.Put(ctx, "/product/update/"+id, in, nil); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("error al actualizar producto")
		notify.Failure(s.notify, OpUpdate, "Error al actualizar producto")
		return fmt.Errorf("inventario: actualizar %s: %w", id, err)
	}
	notify.Success(s.notify, OpUpdate, "Producto actualizado")
	return s.load(ctx)
}

func (s *RemoteStore) Delete(ctx context.Context, id string) error {
	defer s.begin()()
	name := id
	if p, ok := s.Get(id); ok {
		name = p.Name
	}
	if err := s.api.Delete(ctx, "/product/delete/"+id, nil); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("error al eliminar producto")
		notify.Failure(s.notify, OpDelete, "Error al eliminar producto")
		return fmt.Errorf("inventario: eliminar %s: %w", id, err)
	}
	s.mu.Lock()
	if _, i := find(s.products, id); i >= 0 {
		s.products = append(s.products[:i], s.products[i+1:]...)
	}
	s.mu.Unlock()
	notify.Success(s.notify, OpDelete, "Producto eliminado: "+name)
	return nil
}

// UpdateQuantity registra la transacción y recarga la lista haya o no fallado.
func (s *RemoteStore) UpdateQuantity(ctx context.Context, id string, delta int) error {
	if delta == 0 {
		return nil
	}
	defer s.begin()()

	path, qty := "/transactions/entry", delta
	if delta < 0 {
		path, qty = "/transactions/exit", -delta
	}
	name := id
	if p, ok := s.Get(id); ok {
		name = p.Name
	}

	txErr := s.api.Post(ctx, path, dto.TransactionRequest{ProductID: id, Quantity: qty}, nil)
	if txErr != nil {
		s.log.Error().Err(txErr).Str("id", id).Int("delta", delta).Msg("error al actualizar cantidad")
		notify.Failure(s.notify, OpUpdateQuantity, "Error al actualizar cantidad")
		txErr = fmt.Errorf("inventario: cantidad %s: %w", id, txErr)
	} else {
		notify.Success(s.notify, OpUpdateQuantity, quantityMessage(name, delta))
	}

	if err := s.load(ctx); err != nil && txErr == nil {
		return err
	}
	return txErr
}

// Products copia de la lista actual.
func (s *RemoteStore) Products() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Product(nil), s.products...)
}

func (s *RemoteStore) Search(term string) []entity.Product {
	return filter(s.Products(), term)
}

func (s *RemoteStore) Get(id string) (entity.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, i := find(s.products, id)
	return p, i >= 0
}

// Loading true mientras haya una petición en curso.
func (s *RemoteStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}
