package notify

import "sync"

// Handler recibe un evento publicado.
type Handler func(Event)

// Bus dispatcher síncrono en memoria.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

var _ Notifier = (*Bus)(nil)

// NewBus crea un bus sin suscriptores.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registra un handler para todos los eventos.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish invoca los handlers en orden de suscripción.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]Handler{}, b.handlers...)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}
