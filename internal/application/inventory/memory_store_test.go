package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-app/internal/application/dto"
	"github.com/jhoicas/Inventario-app/internal/application/inventory"
	"github.com/jhoicas/Inventario-app/internal/application/notify"
	"github.com/jhoicas/Inventario-app/internal/application/notify/notifytest"
	"github.com/jhoicas/Inventario-app/internal/domain"
)

func newRecorded() (*notify.Bus, *notifytest.Recorder) {
	return notifytest.NewRecorder()
}

func stockOf(t *testing.T, s inventory.Store, id string) int {
	t.Helper()
	p, ok := s.Get(id)
	require.True(t, ok, "producto %s", id)
	return p.CurrentStock
}

func TestMemoryStore_Semilla(t *testing.T) {
	bus, _ := newRecorded()
	s := inventory.NewMemoryStore(bus)

	require.Len(t, s.Products(), 3)
	assert.Equal(t, 15, stockOf(t, s, "1"))
	assert.Equal(t, 25, stockOf(t, s, "2"))
	assert.Equal(t, 10, stockOf(t, s, "3"))
}

func TestMemoryStore_EntradaSumaStock(t *testing.T) {
	bus, rec := newRecorded()
	s := inventory.NewMemoryStore(bus)

	require.NoError(t, s.UpdateQuantity(context.Background(), "1", 5))

	assert.Equal(t, 20, stockOf(t, s, "1"))
	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, notify.KindSuccess, last.Kind)
	assert.Contains(t, last.Message, "+5")
}

func TestMemoryStore_SalidaQueDejariaNegativoSeRechaza(t *testing.T) {
	bus, rec := newRecorded()
	s := inventory.NewMemoryStore(bus)

	err := s.UpdateQuantity(context.Background(), "1", -20)

	assert.ErrorIs(t, err, domain.ErrNegativeStock)
	assert.Equal(t, 15, stockOf(t, s, "1"), "la lista no cambia")
	assert.Equal(t, 1, rec.Count(notify.KindError))
	assert.Zero(t, rec.Count(notify.KindSuccess))
}

func TestMemoryStore_SalidaHastaCero(t *testing.T) {
	bus, _ := newRecorded()
	s := inventory.NewMemoryStore(bus)

	require.NoError(t, s.UpdateQuantity(context.Background(), "3", -10))
	assert.Equal(t, 0, stockOf(t, s, "3"))
}

func TestMemoryStore_DeltaCeroNoHaceNada(t *testing.T) {
	bus, rec := newRecorded()
	s := inventory.NewMemoryStore(bus)

	require.NoError(t, s.UpdateQuantity(context.Background(), "2", 0))
	assert.Equal(t, 25, stockOf(t, s, "2"))
	assert.Empty(t, rec.Events())
}

func TestMemoryStore_ProductoInexistente(t *testing.T) {
	bus, _ := newRecorded()
	s := inventory.NewMemoryStore(bus)

	_, ok := s.Get("999")
	assert.False(t, ok)
	assert.ErrorIs(t, s.UpdateQuantity(context.Background(), "999", 1), domain.ErrNotFound)
	assert.ErrorIs(t, s.Delete(context.Background(), "999"), domain.ErrNotFound)
}

func TestMemoryStore_CRUD(t *testing.T) {
	ctx := context.Background()
	bus, _ := newRecorded()
	s := inventory.NewMemoryStore(bus)

	created, err := s.Add(ctx, dto.CreateProductRequest{Code: "TC-1", Name: "Teclado", Category: "Periféricos", CurrentStock: 4, Price: decimal.NewFromInt(120)})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Len(t, s.Products(), 4)

	name := "Teclado mecánico"
	require.NoError(t, s.Update(ctx, created.ID, dto.UpdateProductRequest{Name: &name}))
	got, ok := s.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Teclado mecánico", got.Name)
	assert.Equal(t, 4, got.CurrentStock, "editar no toca el stock")

	require.NoError(t, s.Delete(ctx, created.ID))
	_, ok = s.Get(created.ID)
	assert.False(t, ok)
	assert.Len(t, s.Products(), 3)
}

func TestMemoryStore_UpdateVacioEsInvalido(t *testing.T) {
	bus, rec := newRecorded()
	s := inventory.NewMemoryStore(bus)
	assert.ErrorIs(t, s.Update(context.Background(), "1", dto.UpdateProductRequest{}), domain.ErrInvalidInput)
	assert.Equal(t, 1, rec.Count(notify.KindError), "el rechazo se publica")
}

func TestMemoryStore_Busqueda(t *testing.T) {
	bus, _ := newRecorded()
	s := inventory.NewMemoryStore(bus)

	assert.Len(t, s.Search("SAMSUNG"), 1)
	assert.Len(t, s.Search("eletrônicos"), 3, "coincide por categoría")
	assert.Len(t, s.Search(""), 3)
	assert.Empty(t, s.Search("impresora"))
}

func TestMemoryStore_LoadEsIdempotente(t *testing.T) {
	bus, _ := newRecorded()
	s := inventory.NewMemoryStore(bus)

	require.NoError(t, s.Load(context.Background()))
	first := s.Products()
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, first, s.Products())
	assert.False(t, s.Loading())
}
