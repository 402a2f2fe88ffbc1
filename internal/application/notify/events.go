// Package notify publica los resultados de las operaciones de los stores para que
// una capa de notificación (consola, logs, toasts) se suscriba a ellos.
package notify

import "time"

// Kind tipo de resultado.
type Kind string

const (
	KindSuccess        Kind = "success"
	KindError          Kind = "error"
	KindSessionExpired Kind = "session_expired"
)

// Event resultado de una operación.
type Event struct {
	Kind    Kind
	Op      string // ej: "inventory.update_quantity"
	Message string
	At      time.Time
}

// Notifier contrato mínimo que usan los stores para publicar resultados.
type Notifier interface {
	Publish(event Event)
}

// Success publica un resultado exitoso.
func Success(n Notifier, op, message string) {
	n.Publish(Event{Kind: KindSuccess, Op: op, Message: message, At: time.Now()})
}

// Failure publica un error visible para el usuario.
func Failure(n Notifier, op, message string) {
	n.Publish(Event{Kind: KindError, Op: op, Message: message, At: time.Now()})
}
