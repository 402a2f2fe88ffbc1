package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-app/internal/application/dto"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
	"github.com/jhoicas/Inventario-app/pkg/jwt"
)

// Locals keys para UserID y Permission en Fiber.
const (
	LocalUserID     = "user_id"
	LocalPermission = "permission"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID y Permission a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, permission, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		perm, err := entity.ParsePermission(permission)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token sin permiso válido"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalPermission, perm)
		return c.Next()
	}
}

// RequirePermission deja pasar si el permiso del token es igual o superior a required.
// Va después de AuthMiddleware.
func RequirePermission(required entity.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !GetPermission(c).AtLeast(required) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "permiso insuficiente, se requiere " + required.String()})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetPermission devuelve el permiso del contexto; vacío si no pasó por AuthMiddleware.
func GetPermission(c *fiber.Ctx) entity.Permission {
	p, _ := c.Locals(LocalPermission).(entity.Permission)
	return p
}
