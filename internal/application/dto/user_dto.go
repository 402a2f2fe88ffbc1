package dto

import "github.com/jhoicas/Inventario-app/internal/domain/entity"

// LoginRequest body de POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse usuario autenticado + token de acceso.
type LoginResponse struct {
	User        entity.User `json:"user"`
	AccessToken string      `json:"access_token"`
}

// CreateUserRequest alta de usuario en la pantalla de administración (sin contraseña: store local).
type CreateUserRequest struct {
	Name       string            `json:"name" validate:"required,min=1,max=200"`
	Email      string            `json:"email" validate:"required,email"`
	Permission entity.Permission `json:"permission" validate:"required,oneof=viewer operator admin"`
}

// UpdateUserRequest edición parcial; el email no se modifica después del alta.
type UpdateUserRequest struct {
	Name       *string            `json:"name,omitempty"`
	Permission *entity.Permission `json:"permission,omitempty"`
}
