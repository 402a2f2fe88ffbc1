package inventory_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-app/internal/application/dto"
	"github.com/jhoicas/Inventario-app/internal/application/inventory"
	"github.com/jhoicas/Inventario-app/internal/application/notify"
	"github.com/jhoicas/Inventario-app/internal/domain"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
	"github.com/jhoicas/Inventario-app/internal/infrastructure/gateway"
)

// fakeBackend API de productos en memoria servida por httptest.
type fakeBackend struct {
	mu       sync.Mutex
	products []entity.Product
	calls    []string
	failNext map[string]int // path -> status
	nextID   int
}

func newFakeBackend(t *testing.T) (*fakeBackend, *gateway.Gateway) {
	t.Helper()
	b := &fakeBackend{products: inventory.SeedProducts(), failNext: map[string]int{}, nextID: 100}
	srv := httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(srv.Close)
	return b, gateway.New(srv.URL + "/api")
}

func (b *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/api")
	b.calls = append(b.calls, r.Method+" "+path)
	if status, ok := b.failNext[path]; ok {
		delete(b.failNext, path)
		w.WriteHeader(status)
		return
	}

	switch {
	case r.Method == http.MethodGet && path == "/product":
		_ = json.NewEncoder(w).Encode(b.products)
	case r.Method == http.MethodPost && path == "/product/create":
		var in dto.CreateProductRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.nextID++
		p := entity.Product{ID: "p" + strconv.Itoa(b.nextID), Code: in.Code, Name: in.Name, Category: in.Category, CurrentStock: in.CurrentStock, Price: in.Price}
		b.products = append(b.products, p)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(p)
	case r.Method == http.MethodPut && strings.HasPrefix(path, "/product/update/"):
		var in dto.UpdateProductRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		id := strings.TrimPrefix(path, "/product/update/")
		for i := range b.products {
			if b.products[i].ID == id && in.Name != nil {
				b.products[i].Name = *in.Name
			}
		}
	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/product/delete/"):
		id := strings.TrimPrefix(path, "/product/delete/")
		for i := range b.products {
			if b.products[i].ID == id {
				b.products = append(b.products[:i], b.products[i+1:]...)
				break
			}
		}
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodPost && strings.HasPrefix(path, "/transactions/"):
		var in dto.TransactionRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		delta := in.Quantity
		if path == "/transactions/exit" {
			delta = -delta
		}
		for i := range b.products {
			if b.products[i].ID == in.ProductID {
				if b.products[i].CurrentStock+delta < 0 {
					w.WriteHeader(http.StatusConflict)
					return
				}
				b.products[i].CurrentStock += delta
			}
		}
		w.WriteHeader(http.StatusCreated)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (b *fakeBackend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func (b *fakeBackend) Fail(path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failNext[path] = status
}

func TestRemoteStore_LoadReemplazaLista(t *testing.T) {
	_, gw := newFakeBackend(t)
	bus, _ := newRecorded()
	s := inventory.NewRemoteStore(gw, bus, nil)

	assert.Empty(t, s.Products())
	require.NoError(t, s.Load(context.Background()))
	assert.Len(t, s.Products(), 3)
	assert.Equal(t, 15, stockOf(t, s, "1"))
}

func TestRemoteStore_LoadFallidoConservaLista(t *testing.T) {
	b, gw := newFakeBackend(t)
	bus, rec := newRecorded()
	s := inventory.NewRemoteStore(gw, bus, nil)
	require.NoError(t, s.Load(context.Background()))

	b.Fail("/product", http.StatusInternalServerError)
	err := s.Load(context.Background())

	require.Error(t, err)
	assert.Len(t, s.Products(), 3, "la lista anterior se conserva")
	assert.Equal(t, 1, rec.Count(notify.KindError))
	assert.False(t, s.Loading())
}

func TestRemoteStore_EntradaUsaTransactionsEntryYRecarga(t *testing.T) {
	b, gw := newFakeBackend(t)
	bus, rec := newRecorded()
	s := inventory.NewRemoteStore(gw, bus, nil)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.UpdateQuantity(context.Background(), "1", 5))

	assert.Equal(t, 20, stockOf(t, s, "1"))
	assert.Equal(t, []string{"GET /product", "POST /transactions/entry", "GET /product"}, b.Calls())
	assert.Equal(t, 1, rec.Count(notify.KindSuccess))
}

func TestRemoteStore_SalidaEnviaValorAbsoluto(t *testing.T) {
	b, gw := newFakeBackend(t)
	bus, _ := newRecorded()
	s := inventory.NewRemoteStore(gw, bus, nil)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.UpdateQuantity(context.Background(), "2", -5))

	assert.Equal(t, 20, stockOf(t, s, "2"))
	assert.Contains(t, b.Calls(), "POST /transactions/exit")
}

func TestRemoteStore_SalidaRechazadaRecargaIgual(t *testing.T) {
	b, gw := newFakeBackend(t)
	bus, rec := newRecorded()
	s := inventory.NewRemoteStore(gw, bus, nil)
	require.NoError(t, s.Load(context.Background()))

	err := s.UpdateQuantity(context.Background(), "1", -20)

	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, gateway.StatusOf(err))
	assert.Equal(t, 15, stockOf(t, s, "1"))
	calls := b.Calls()
	assert.Equal(t, "GET /product", calls[len(calls)-1], "recarga tras el fallo")
	assert.Equal(t, 1, rec.Count(notify.KindError))
}

func TestRemoteStore_DeltaCeroNoLlamaAlBackend(t *testing.T) {
	b, gw := newFakeBackend(t)
	bus, _ := newRecorded()
	s := inventory.NewRemoteStore(gw, bus, nil)

	require.NoError(t, s.UpdateQuantity(context.Background(), "1", 0))
	assert.Empty(t, b.Calls())
}

func TestRemoteStore_AgregarYRecargar(t *testing.T) {
	_, gw := newFakeBackend(t)
	bus, _ := newRecorded()
	s := inventory.NewRemoteStore(gw, bus, nil)
	require.NoError(t, s.Load(context.Background()))

	created, err := s.Add(context.Background(), dto.CreateProductRequest{Code: "MS-1", Name: "Mouse", Category: "Periféricos", CurrentStock: 3, Price: decimal.NewFromInt(80)})
	require.NoError(t, err)
	assert.Len(t, s.Products(), 4, "se agrega el registro devuelto por el servidor")

	require.NoError(t, s.Load(context.Background()))
	got, ok := s.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Mouse", got.Name)
	assert.Len(t, s.Products(), 4)
}

func TestRemoteStore_UpdateRecargaYDeleteQuitaLocal(t *testing.T) {
	b, gw := newFakeBackend(t)
	bus, rec := newRecorded()
	s := inventory.NewRemoteStore(gw, bus, nil)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	name := "Monitor LG 27\""
	require.NoError(t, s.Update(ctx, "3", dto.UpdateProductRequest{Name: &name}))
	got, _ := s.Get("3")
	assert.Equal(t, name, got.Name)

	require.NoError(t, s.Delete(ctx, "3"))
	_, ok := s.Get("3")
	assert.False(t, ok)
	calls := b.Calls()
	assert.Equal(t, "DELETE /product/delete/3", calls[len(calls)-1], "delete no recarga")
	last, _ := rec.Last()
	assert.Contains(t, last.Message, name)
}

// blockingAPI retiene Get hasta que se cierra release.
type blockingAPI struct {
	started chan struct{}
	release chan struct{}
}

func (a *blockingAPI) Get(ctx context.Context, _ string, _ any, _ ...gateway.RequestOption) error {
	close(a.started)
	<-a.release
	return errors.New("caído")
}

func (a *blockingAPI) Post(context.Context, string, any, any, ...gateway.RequestOption) error {
	return nil
}

func (a *blockingAPI) Put(context.Context, string, any, any, ...gateway.RequestOption) error {
	return nil
}

func (a *blockingAPI) Delete(context.Context, string, any, ...gateway.RequestOption) error {
	return nil
}

func TestRemoteStore_LoadingDuranteLaPeticion(t *testing.T) {
	api := &blockingAPI{started: make(chan struct{}), release: make(chan struct{})}
	bus, _ := newRecorded()
	s := inventory.NewRemoteStore(api, bus, nil)

	done := make(chan error)
	go func() { done <- s.Load(context.Background()) }()

	<-api.started
	assert.True(t, s.Loading())
	close(api.release)
	assert.Error(t, <-done)
	assert.False(t, s.Loading(), "se limpia también en el camino de error")
}

func TestRemoteStore_DosCargasSeguidasDevuelvenLaMismaLista(t *testing.T) {
	_, gw := newFakeBackend(t)
	bus, _ := newRecorded()
	s := inventory.NewRemoteStore(gw, bus, nil)
	ctx := context.Background()

	require.NoError(t, s.Load(ctx))
	first := s.Products()
	require.NoError(t, s.Load(ctx))

	assert.Equal(t, first, s.Products())
}

func TestRemoteStore_UpdateVacioSeRechazaSinLlamarAlBackend(t *testing.T) {
	b, gw := newFakeBackend(t)
	bus, rec := newRecorded()
	s := inventory.NewRemoteStore(gw, bus, nil)

	err := s.Update(context.Background(), "1", dto.UpdateProductRequest{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, b.Calls())
	assert.Equal(t, 1, rec.Count(notify.KindError))
}
