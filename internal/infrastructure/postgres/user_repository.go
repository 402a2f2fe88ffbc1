package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Inventario-app/internal/domain"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
	"github.com/jhoicas/Inventario-app/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, cred *entity.Credential) error {
	query := `
		INSERT INTO users (id, name, email, permission, password_hash)
		VALUES ($1, $2, lower($3), $4, $5)`
	_, err := r.pool.Exec(ctx, query, cred.ID, cred.Name, cred.Email, string(cred.Permission), cred.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByEmail obtiene un usuario por email (sin distinguir mayúsculas).
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	query := `SELECT id, name, email, permission, password_hash FROM users WHERE email = lower($1)`
	var c entity.Credential
	var perm string
	err := r.pool.QueryRow(ctx, query, email).Scan(&c.ID, &c.Name, &c.Email, &perm, &c.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	c.Permission = entity.Permission(perm)
	return &c, nil
}
