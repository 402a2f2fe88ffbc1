package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jhoicas/Inventario-app/internal/application/dto"
	"github.com/jhoicas/Inventario-app/internal/domain"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
	"github.com/jhoicas/Inventario-app/internal/infrastructure/gateway"
)

// Authenticator verifica credenciales y devuelve el usuario y su token (vacío si el backend no emite uno).
// Credenciales incorrectas se reportan con domain.ErrInvalidCredentials.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*entity.User, string, error)
}

// poster subconjunto del gateway que usa el login remoto.
type poster interface {
	Post(ctx context.Context, path string, body, out any, opts ...gateway.RequestOption) error
}

// RemoteAuthenticator autentica contra POST /login de la API.
type RemoteAuthenticator struct {
	api poster
}

// NewRemoteAuthenticator construye el autenticador remoto.
func NewRemoteAuthenticator(api poster) *RemoteAuthenticator {
	return &RemoteAuthenticator{api: api}
}

// Authenticate envía las credenciales sin Authorization.
func (a *RemoteAuthenticator) Authenticate(ctx context.Context, email, password string) (*entity.User, string, error) {
	var out dto.LoginResponse
	err := a.api.Post(ctx, "/login", dto.LoginRequest{Email: email, Password: password}, &out, gateway.SkipAuth())
	if err != nil {
		switch gateway.StatusOf(err) {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login: %w", err)
	}
	if out.User.ID == "" || !out.User.Permission.Valid() {
		return nil, "", fmt.Errorf("login: respuesta sin usuario válido: %w", domain.ErrInvalidInput)
	}
	return &out.User, out.AccessToken, nil
}

// MockPassword contraseña compartida por los usuarios de MockAuthenticator.
const MockPassword = "123456"

// MockUsers usuarios fijos de la variante sin backend.
func MockUsers() []entity.User {
	return []entity.User{
		{ID: "1", Name: "Admin", Email: "admin@exemplo.com", Permission: entity.PermissionAdmin},
		{ID: "2", Name: "Operador", Email: "operador@exemplo.com", Permission: entity.PermissionOperator},
		{ID: "3", Name: "Visualizador", Email: "visualizador@exemplo.com", Permission: entity.PermissionViewer},
	}
}

// MockAuthenticator compara contra MockUsers y MockPassword; no emite token.
type MockAuthenticator struct {
	users []entity.User
}

// NewMockAuthenticator construye el autenticador local.
func NewMockAuthenticator() *MockAuthenticator {
	return &MockAuthenticator{users: MockUsers()}
}

func (a *MockAuthenticator) Authenticate(_ context.Context, email, password string) (*entity.User, string, error) {
	for _, u := range a.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) && password == MockPassword {
			user := u
			return &user, "", nil
		}
	}
	return nil, "", domain.ErrInvalidCredentials
}

// IsInvalidCredentials indica si err corresponde a credenciales rechazadas.
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, domain.ErrInvalidCredentials)
}
