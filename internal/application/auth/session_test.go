package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-app/internal/application/auth"
	"github.com/jhoicas/Inventario-app/internal/application/dto"
	"github.com/jhoicas/Inventario-app/internal/application/notify"
	"github.com/jhoicas/Inventario-app/internal/application/notify/notifytest"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
	"github.com/jhoicas/Inventario-app/internal/infrastructure/gateway"
	"github.com/jhoicas/Inventario-app/internal/infrastructure/storage"
)

func newMockSession(t *testing.T, st auth.Storage) (*auth.SessionStore, *notifytest.Recorder) {
	t.Helper()
	bus := notify.NewBus()
	rec := &notifytest.Recorder{}
	bus.Subscribe(rec.Record)
	s, err := auth.NewSessionStore(context.Background(), st, auth.NewMockAuthenticator(), bus, nil)
	require.NoError(t, err)
	return s, rec
}

func TestSession_LoginMockAdmin(t *testing.T) {
	st := storage.NewMemoryStorage()
	s, rec := newMockSession(t, st)

	ok := s.Login(context.Background(), "admin@exemplo.com", "123456")

	require.True(t, ok)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, entity.PermissionAdmin, s.CurrentUser().Permission)
	assert.True(t, s.CheckPermission(entity.PermissionAdmin))

	raw, found, err := st.Get(context.Background(), auth.KeyCurrentUser)
	require.NoError(t, err)
	require.True(t, found, "el usuario debe persistirse")
	var persisted entity.User
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Equal(t, "admin@exemplo.com", persisted.Email)

	last, _ := rec.Last()
	assert.Equal(t, notify.KindSuccess, last.Kind)
	assert.Equal(t, "Bienvenido, Admin!", last.Message)
}

func TestSession_LoginCredencialesIncorrectas(t *testing.T) {
	s, rec := newMockSession(t, storage.NewMemoryStorage())

	ok := s.Login(context.Background(), "admin@exemplo.com", "errada")

	assert.False(t, ok)
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, 1, rec.Count(notify.KindError))
}

func TestSession_OperadorNoEsAdmin(t *testing.T) {
	s, _ := newMockSession(t, storage.NewMemoryStorage())
	require.True(t, s.Login(context.Background(), "operador@exemplo.com", "123456"))

	assert.True(t, s.CheckPermission(entity.PermissionViewer))
	assert.True(t, s.CheckPermission(entity.PermissionOperator))
	assert.False(t, s.CheckPermission(entity.PermissionAdmin))
}

func TestSession_RestauraDesdeAlmacenamiento(t *testing.T) {
	st := storage.NewMemoryStorage()
	first, _ := newMockSession(t, st)
	require.True(t, first.Login(context.Background(), "visualizador@exemplo.com", "123456"))

	second, _ := newMockSession(t, st)

	require.True(t, second.IsAuthenticated(), "un reinicio no debe cerrar la sesión")
	assert.Equal(t, "visualizador@exemplo.com", second.CurrentUser().Email)
}

func TestSession_SesionCorruptaSeDescarta(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	require.NoError(t, st.Set(ctx, auth.KeyCurrentUser, "{roto"))
	require.NoError(t, st.Set(ctx, auth.KeyToken, "tok"))

	s, _ := newMockSession(t, st)

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	_, found, _ := st.Get(ctx, auth.KeyToken)
	assert.False(t, found)
}

func TestSession_Logout(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	s, _ := newMockSession(t, st)
	require.True(t, s.Login(ctx, "admin@exemplo.com", "123456"))

	s.Logout(ctx)

	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.CurrentUser())
	_, found, _ := st.Get(ctx, auth.KeyCurrentUser)
	assert.False(t, found)
}

func TestSession_ExpireNotificaUnaVez(t *testing.T) {
	ctx := context.Background()
	s, rec := newMockSession(t, storage.NewMemoryStorage())
	require.True(t, s.Login(ctx, "admin@exemplo.com", "123456"))

	s.Expire(ctx)
	s.Expire(ctx)

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, 1, rec.Count(notify.KindSessionExpired))
}

func TestSession_LoginRemotoYExpiracionPor401(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			var in dto.LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&in)
			if in.Password != "secreta" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(dto.LoginResponse{
				User:        entity.User{ID: "7", Name: "Ana", Email: in.Email, Permission: entity.PermissionOperator},
				AccessToken: "jwt-ana",
			})
		case "/product":
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	st := storage.NewMemoryStorage()
	bus := notify.NewBus()
	rec := &notifytest.Recorder{}
	bus.Subscribe(rec.Record)
	gw := gateway.New(srv.URL)
	s, err := auth.NewSessionStore(ctx, st, auth.NewRemoteAuthenticator(gw), bus, nil)
	require.NoError(t, err)
	gw.AttachSession(s)

	assert.False(t, s.Login(ctx, "ana@exemplo.com", "mala"))
	require.True(t, s.Login(ctx, "ana@exemplo.com", "secreta"))
	assert.Equal(t, "jwt-ana", s.Token())
	persisted, _, _ := st.Get(ctx, auth.KeyToken)
	assert.Equal(t, "jwt-ana", persisted)

	err = gw.Get(ctx, "/product", nil)

	require.Error(t, err)
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, 1, rec.Count(notify.KindSessionExpired))
}
