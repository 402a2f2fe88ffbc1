package entity

import "fmt"

// Permission nivel de permiso de un usuario. Los niveles son acumulativos:
// viewer < operator < admin.
type Permission string

// Niveles válidos de Permission.
const (
	PermissionViewer   Permission = "viewer"
	PermissionOperator Permission = "operator"
	PermissionAdmin    Permission = "admin"
)

var permissionLevels = map[Permission]int{
	PermissionViewer:   1,
	PermissionOperator: 2,
	PermissionAdmin:    3,
}

// Permissions devuelve los niveles en orden ascendente.
func Permissions() []Permission {
	return []Permission{PermissionViewer, PermissionOperator, PermissionAdmin}
}

// ParsePermission valida un nivel recibido de fuera (flags, JSON, claims).
func ParsePermission(s string) (Permission, error) {
	p := Permission(s)
	if _, ok := permissionLevels[p]; !ok {
		return "", fmt.Errorf("permiso desconocido %q", s)
	}
	return p, nil
}

// Valid indica si el nivel pertenece a la jerarquía.
func (p Permission) Valid() bool {
	_, ok := permissionLevels[p]
	return ok
}

// Level posición del nivel en la jerarquía; 0 si no está definido.
func (p Permission) Level() int {
	return permissionLevels[p]
}

// AtLeast indica si p cubre el nivel requerido.
// Un nivel requerido fuera de la jerarquía es un error de programación.
func (p Permission) AtLeast(required Permission) bool {
	if !required.Valid() {
		panic(fmt.Sprintf("entity: nivel requerido inválido %q", string(required)))
	}
	return p.Level() >= required.Level()
}

func (p Permission) String() string { return string(p) }
