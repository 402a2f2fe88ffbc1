package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Inventario-app/internal/application/dto"
	"github.com/jhoicas/Inventario-app/internal/domain"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
	"github.com/jhoicas/Inventario-app/internal/domain/repository"
	"github.com/jhoicas/Inventario-app/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login y alta de usuarios de la API de referencia.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterUser hashea la contraseña con bcrypt y persiste. Usado por el seed.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, user entity.User, password string) (*entity.User, error) {
	if !user.Permission.Valid() || strings.TrimSpace(user.Email) == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	cred := &entity.Credential{User: user, PasswordHash: string(hash)}
	if err := uc.userRepo.Create(ctx, cred); err != nil {
		return nil, err
	}
	return &cred.User, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email inexistente y contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	cred, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, cred.ID, string(cred.Permission), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{User: cred.User, AccessToken: token}, nil
}
