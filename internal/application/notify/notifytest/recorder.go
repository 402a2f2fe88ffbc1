// Package notifytest ayuda a verificar en tests los eventos publicados.
package notifytest

import (
	"sync"

	"github.com/jhoicas/Inventario-app/internal/application/notify"
)

// Recorder guarda los eventos recibidos; se suscribe con Bus.Subscribe(r.Record).
type Recorder struct {
	mu     sync.Mutex
	events []notify.Event
}

// NewRecorder crea un bus con un Recorder ya suscrito.
func NewRecorder() (*notify.Bus, *Recorder) {
	bus := notify.NewBus()
	rec := &Recorder{}
	bus.Subscribe(rec.Record)
	return bus, rec
}

// Record Handler que acumula el evento.
func (r *Recorder) Record(e notify.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events copia de los eventos recibidos.
func (r *Recorder) Events() []notify.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Event(nil), r.events...)
}

// Count número de eventos de un tipo.
func (r *Recorder) Count(kind notify.Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Last último evento recibido; false si no hay ninguno.
func (r *Recorder) Last() (notify.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return notify.Event{}, false
	}
	return r.events[len(r.events)-1], true
}
