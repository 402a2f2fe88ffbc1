package notify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-app/internal/application/notify"
	"github.com/jhoicas/Inventario-app/internal/application/notify/notifytest"
)

func TestBus_PublicaEnOrdenDeSuscripcion(t *testing.T) {
	bus := notify.NewBus()
	var order []string
	bus.Subscribe(func(e notify.Event) { order = append(order, "a:"+e.Message) })
	bus.Subscribe(func(e notify.Event) { order = append(order, "b:"+e.Message) })

	notify.Success(bus, "test", "hola")

	assert.Equal(t, []string{"a:hola", "b:hola"}, order)
}

func TestRecorder_CuentaPorTipo(t *testing.T) {
	bus := notify.NewBus()
	rec := &notifytest.Recorder{}
	bus.Subscribe(rec.Record)

	notify.Success(bus, "op", "ok")
	notify.Failure(bus, "op", "falló")
	notify.Failure(bus, "op", "falló otra vez")

	assert.Equal(t, 1, rec.Count(notify.KindSuccess))
	assert.Equal(t, 2, rec.Count(notify.KindError))

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "falló otra vez", last.Message)
	assert.False(t, last.At.IsZero())
}
