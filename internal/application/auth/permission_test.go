package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-app/internal/application/auth"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
)

func TestCheckPermission_Jerarquia(t *testing.T) {
	levels := entity.Permissions()
	for i, low := range levels {
		for j, high := range levels {
			if i > j {
				continue
			}
			user := &entity.User{ID: "u", Permission: high}
			assert.True(t, auth.CheckPermission(user, low), "%s debe cubrir %s", high, low)
			if i < j {
				lowUser := &entity.User{ID: "u", Permission: low}
				assert.False(t, auth.CheckPermission(lowUser, high), "%s no debe cubrir %s", low, high)
			}
		}
	}
}

func TestCheckPermission_SinUsuario(t *testing.T) {
	for _, p := range entity.Permissions() {
		assert.False(t, auth.CheckPermission(nil, p), "sin sesión %s debe ser false", p)
	}
}

func TestCheckPermission_NivelDeUsuarioDesconocido(t *testing.T) {
	user := &entity.User{ID: "u", Permission: "visualizador"}
	assert.False(t, auth.CheckPermission(user, entity.PermissionViewer))
}

func TestCheckPermission_NivelRequeridoInvalidoEsErrorDeProgramacion(t *testing.T) {
	user := &entity.User{ID: "u", Permission: entity.PermissionAdmin}
	assert.Panics(t, func() { auth.CheckPermission(user, "superadmin") })
}
