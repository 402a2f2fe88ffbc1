// Package users administra la lista local de usuarios de la aplicación.
package users

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-app/internal/application/dto"
	"github.com/jhoicas/Inventario-app/internal/application/notify"
	"github.com/jhoicas/Inventario-app/internal/domain"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
)

const (
	OpAdd    = "users.add"
	OpUpdate = "users.update"
	OpDelete = "users.delete"
)

// SeedUsers usuarios iniciales de la lista local.
func SeedUsers() []entity.User {
	return []entity.User{
		{ID: "1", Name: "Admin", Email: "admin@exemplo.com", Permission: entity.PermissionAdmin},
		{ID: "2", Name: "Operador", Email: "operador@exemplo.com", Permission: entity.PermissionOperator},
		{ID: "3", Name: "Visualizador", Email: "visualizador@exemplo.com", Permission: entity.PermissionViewer},
	}
}

// Store dueño de la lista de usuarios. Las validaciones ocurren antes de mutar.
type Store struct {
	mu     sync.RWMutex
	users  []entity.User
	notify notify.Notifier
}

// NewStore construye el store con SeedUsers.
func NewStore(n notify.Notifier) *Store {
	return &Store{users: SeedUsers(), notify: n}
}

func (s *Store) indexOf(id string) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// Add crea un usuario. Rechaza emails repetidos (sin distinguir mayúsculas).
func (s *Store) Add(in dto.CreateUserRequest) (*entity.User, error) {
	email := strings.TrimSpace(in.Email)
	if strings.TrimSpace(in.Name) == "" || email == "" || !in.Permission.Valid() {
		notify.Failure(s.notify, OpAdd, "Datos de usuario inválidos")
		return nil, domain.ErrInvalidInput
	}

	s.mu.Lock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			s.mu.Unlock()
			notify.Failure(s.notify, OpAdd, "El correo ya está registrado")
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	u := entity.User{ID: uuid.NewString(), Name: strings.TrimSpace(in.Name), Email: email, Permission: in.Permission}
	s.users = append(s.users, u)
	s.mu.Unlock()

	notify.Success(s.notify, OpAdd, "Usuario agregado: "+u.Name)
	return &u, nil
}

// Update cambia nombre y/o permiso. El email no se edita.
func (s *Store) Update(id string, in dto.UpdateUserRequest) error {
	if (in.Permission != nil && !in.Permission.Valid()) || (in.Name != nil && strings.TrimSpace(*in.Name) == "") {
		notify.Failure(s.notify, OpUpdate, "Datos de usuario inválidos")
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		notify.Failure(s.notify, OpUpdate, "Usuario no encontrado")
		return fmt.Errorf("usuarios: actualizar %s: %w", id, domain.ErrNotFound)
	}
	if in.Name != nil {
		s.users[i].Name = strings.TrimSpace(*in.Name)
	}
	if in.Permission != nil {
		s.users[i].Permission = *in.Permission
	}
	s.mu.Unlock()

	notify.Success(s.notify, OpUpdate, "Usuario actualizado")
	return nil
}

// Delete elimina un usuario; nunca deja la lista vacía.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		notify.Failure(s.notify, OpDelete, "Usuario no encontrado")
		return fmt.Errorf("usuarios: eliminar %s: %w", id, domain.ErrNotFound)
	}
	if len(s.users) == 1 {
		s.mu.Unlock()
		notify.Failure(s.notify, OpDelete, "No se puede eliminar el último usuario")
		return domain.ErrLastUser
	}
	name := s.users[i].Name
	s.users = append(s.users[:i], s.users[i+1:]...)
	s.mu.Unlock()

	notify.Success(s.notify, OpDelete, "Usuario eliminado: "+name)
	return nil
}

// Get false si no existe.
func (s *Store) Get(id string) (entity.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.users[i], true
	}
	return entity.User{}, false
}

// List copia de la lista.
func (s *Store) List() []entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.User(nil), s.users...)
}
