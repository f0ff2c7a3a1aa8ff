// Package auth implementa la autenticación por username/password con emisión
// de JWT. El token porta el rol y el conjunto de autoridad del usuario; la
// autorización por permiso la resuelve el middleware HTTP leyendo esos claims.
package auth

import (
	"context"

	"github.com/sairmh/libreria-api/internal/application/dto"
	"github.com/sairmh/libreria-api/internal/domain"
	"github.com/sairmh/libreria-api/internal/domain/repository"
	"github.com/sairmh/libreria-api/pkg/config"
	"github.com/sairmh/libreria-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// UseCase caso de uso de login.
type UseCase struct {
	userRepo   repository.UserRepository
	personRepo repository.PersonRepository
	roleRepo   repository.RoleRepository
	jwtCfg     config.JWTConfig
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	userRepo repository.UserRepository,
	personRepo repository.PersonRepository,
	roleRepo repository.RoleRepository,
	jwtCfg config.JWTConfig,
) *UseCase {
	return &UseCase{userRepo: userRepo, personRepo: personRepo, roleRepo: roleRepo, jwtCfg: jwtCfg}
}

// Login verifica credenciales y emite un JWT con el conjunto de autoridad del
// rol del usuario. Username inexistente es ErrUserNotFound; contraseña
// incorrecta es ErrUnauthorized; cuenta desactivada es ErrForbidden.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}

	role, err := uc.roleRepo.GetByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrForbidden
	}

	token, err := jwt.Generate(
		uc.jwtCfg.Secret,
		user.Username,
		role.Name,
		role.Authorities(),
		uc.jwtCfg.Issuer,
		uc.jwtCfg.Expiration,
	)
	if err != nil {
		return nil, err
	}

	resp := &dto.LoginResponse{Token: token, TokenType: "Bearer"}

	// El perfil es informativo: una persona ausente no bloquea el login.
	if person, err := uc.personRepo.GetByUserID(ctx, user.ID); err == nil && person != nil {
		resp.Person = &dto.PersonResponse{
			ID:        person.ID,
			FirstName: person.FirstName,
			LastName:  person.LastName,
			DNI:       person.DNI,
			BirthDate: person.BirthDate,
			Gender:    person.Gender,
			Address:   person.Address,
			Phone:     person.Phone,
			Username:  user.Username,
			Email:     user.Email,
			Role:      role.Name,
			Active:    user.Active,
		}
	}

	return resp, nil
}
