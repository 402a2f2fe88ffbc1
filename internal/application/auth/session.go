package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/Inventario-app/internal/application/notify"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
	"github.com/jhoicas/Inventario-app/pkg/logger"
)

// Claves del almacenamiento durable.
const (
	KeyCurrentUser = "currentUser"
	KeyToken       = "token"
)

// Storage almacenamiento durable clave/valor (archivo, redis, memoria).
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// SessionStore dueño único de la sesión actual (usuario + token).
// Implementa gateway.Session para que el gateway pueda forzar el logout.
type SessionStore struct {
	mu      sync.RWMutex
	user    *entity.User
	token   string
	storage Storage
	authn   Authenticator
	notify  notify.Notifier
	log     *logger.Logger
}

// NewSessionStore construye el store y rehidrata la sesión persistida antes de devolverlo,
// de modo que ninguna vista protegida se evalúa con una sesión vacía tras reiniciar.
func NewSessionStore(ctx context.Context, storage Storage, authn Authenticator, n notify.Notifier, log *logger.Logger) (*SessionStore, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &SessionStore{storage: storage, authn: authn, notify: n, log: log}
	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SessionStore) restore(ctx context.Context) error {
	raw, ok, err := s.storage.Get(ctx, KeyCurrentUser)
	if err != nil {
		return fmt.Errorf("sesión: leer %s: %w", KeyCurrentUser, err)
	}
	token, _, err := s.storage.Get(ctx, KeyToken)
	if err != nil {
		return fmt.Errorf("sesión: leer %s: %w", KeyToken, err)
	}
	if !ok {
		s.token = token
		return nil
	}

	var user entity.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
		s.log.Warn().Msg("sesión persistida corrupta, se descarta")
		if delErr := s.storage.Delete(ctx, KeyCurrentUser, KeyToken); delErr != nil {
			return fmt.Errorf("sesión: limpiar sesión corrupta: %w", delErr)
		}
		return nil
	}
	s.user = &user
	s.token = token
	s.log.Debug().Str("email", user.Email).Msg("sesión restaurada")
	return nil
}

// Login autentica y persiste la sesión. Nunca devuelve error: el resultado se publica en el notifier.
func (s *SessionStore) Login(ctx context.Context, email, password string) bool {
	user, token, err := s.authn.Authenticate(ctx, email, password)
	if err != nil {
		if !IsInvalidCredentials(err) {
			s.log.Error().Err(err).Str("email", email).Msg("error en login")
		}
		notify.Failure(s.notify, "auth.login", "correo o contraseña incorrectos")
		return false
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()

	if err := s.persist(ctx, user, token); err != nil {
		// La sesión sigue válida en memoria aunque no sobreviva al reinicio.
		s.log.Error().Err(err).Msg("no se pudo persistir la sesión")
	}

	notify.Success(s.notify, "auth.login", fmt.Sprintf("Bienvenido, %s!", user.Name))
	return true
}

func (s *SessionStore) persist(ctx context.Context, user *entity.User, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, KeyCurrentUser, string(raw)); err != nil {
		return err
	}
	if token == "" {
		return s.storage.Delete(ctx, KeyToken)
	}
	return s.storage.Set(ctx, KeyToken, token)
}

// Logout cierra la sesión en memoria y en el almacenamiento.
func (s *SessionStore) Logout(ctx context.Context) {
	if s.clear(ctx) {
		notify.Success(s.notify, "auth.logout", "sesión cerrada")
	}
}

// Expire cierra la sesión tras un 401/403 de la API. Solo notifica si había sesión,
// así varias respuestas expiradas seguidas producen un único aviso.
func (s *SessionStore) Expire(ctx context.Context) {
	if s.clear(ctx) {
		s.log.Warn().Msg("sesión expirada")
		s.notify.Publish(notify.Event{
			Kind:    notify.KindSessionExpired,
			Op:      "auth.expire",
			Message: "su sesión expiró, inicie sesión nuevamente",
			At:      time.Now(),
		})
	}
}

// clear vacía la sesión; devuelve true si había un usuario o token.
func (s *SessionStore) clear(ctx context.Context) bool {
	s.mu.Lock()
	had := s.user != nil || s.token != ""
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, KeyCurrentUser, KeyToken); err != nil {
		s.log.Error().Err(err).Msg("no se pudo limpiar la sesión persistida")
	}
	return had
}

// CurrentUser copia del usuario actual; nil si no hay sesión.
func (s *SessionStore) CurrentUser() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token token vigente; vacío si no hay.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated true si hay un usuario en sesión.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// CheckPermission evalúa el usuario actual contra el nivel requerido.
func (s *SessionStore) CheckPermission(required entity.Permission) bool {
	return CheckPermission(s.CurrentUser(), required)
}
