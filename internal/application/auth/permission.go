package auth

import "github.com/jhoicas/Inventario-app/internal/domain/entity"

// CheckPermission indica si user cubre el nivel requerido según la jerarquía
// viewer < operator < admin. Sin usuario siempre es false.
func CheckPermission(user *entity.User, required entity.Permission) bool {
	if user == nil {
		return false
	}
	return user.Permission.AtLeast(required)
}
