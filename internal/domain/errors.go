package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidCredentials = errors.New("correo o contraseña incorrectos")
	ErrSessionExpired     = errors.New("sesión expirada")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrDuplicate          = errors.New("el registro ya existe")
	ErrLastUser           = errors.New("debe existir al menos un usuario")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrNegativeStock      = errors.New("la cantidad no puede ser menor que cero")
)
