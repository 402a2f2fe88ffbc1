package repository

import (
	"context"

	"github.com/jhoicas/Inventario-app/internal/domain/entity"
)

// UserRepository define el puerto de persistencia de credenciales para la API de referencia.
// FindByEmail devuelve (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, cred *entity.Credential) error
	FindByEmail(ctx context.Context, email string) (*entity.Credential, error)
}
