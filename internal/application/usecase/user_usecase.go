package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sairmh/libreria-api/internal/application/dto"
	"github.com/sairmh/libreria-api/internal/domain"
	"github.com/sairmh/libreria-api/internal/domain/entity"
	"github.com/sairmh/libreria-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase gestión de usuarios y personas (identidad 1:1 con la cuenta).
// Las mutaciones que tocan usuario y persona corren dentro de una transacción:
// nunca queda una cuenta sin persona ni una persona sin cuenta.
type UserUseCase struct {
	txRunner   PersonTxRunner
	userRepo   repository.UserRepository
	personRepo repository.PersonRepository
	roleRepo   repository.RoleRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(
	txRunner PersonTxRunner,
	userRepo repository.UserRepository,
	personRepo repository.PersonRepository,
	roleRepo repository.RoleRepository,
) *UserUseCase {
	return &UserUseCase{txRunner: txRunner, userRepo: userRepo, personRepo: personRepo, roleRepo: roleRepo}
}

// ListShort lista usuarios con solo los datos clave (id, username, nombre).
func (uc *UserUseCase) ListShort(ctx context.Context) ([]dto.UserShortResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserShortResponse, 0, len(users))
	for _, u := range users {
		fullName := ""
		if person, err := uc.personRepo.GetByUserID(ctx, u.ID); err == nil && person != nil {
			fullName = person.FullName()
		}
		out = append(out, dto.UserShortResponse{ID: u.ID, Username: u.Username, FullName: fullName})
	}
	return out, nil
}

// CreatePerson crea una persona con su cuenta de usuario asociada.
// Valida unicidad de DNI y username y que el rol exista por nombre.
func (uc *UserUseCase) CreatePerson(ctx context.Context, in dto.CreatePersonRequest) (*dto.PersonResponse, error) {
	if in.DNI == "" || in.User.Username == "" || in.User.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	if existing, err := uc.personRepo.GetByDNI(ctx, in.DNI); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if exists, err := uc.userRepo.ExistsByUsername(ctx, in.User.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, domain.ErrDuplicate
	}

	role, err := uc.roleRepo.GetByName(ctx, in.User.Role)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.User.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.User.Username,
		Email:        in.User.Email,
		PasswordHash: string(hash),
		Active:       true,
		RoleID:       role.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	person := &entity.Person{
		ID:        uuid.New().String(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		DNI:       in.DNI,
		BirthDate: in.BirthDate,
		Gender:    in.Gender,
		Address:   in.Address,
		Phone:     in.Phone,
		UserID:    user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Cuenta y persona se confirman juntas o ninguna.
	err = uc.txRunner.RunPersons(ctx, func(
		userRepo repository.UserRepository,
		personRepo repository.PersonRepository,
	) error {
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		return personRepo.Create(ctx, person)
	})
	if err != nil {
		return nil, err
	}
	return uc.toPersonResponse(person, user, role.Name), nil
}

// GetPersonByID obtiene una persona por ID. Devuelve nil si no existe.
func (uc *UserUseCase) GetPersonByID(ctx context.Context, id string) (*dto.PersonResponse, error) {
	person, err := uc.personRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, nil
	}
	return uc.enrichPerson(ctx, person)
}

// GetPersonByUsername obtiene el perfil de la persona asociada al username.
func (uc *UserUseCase) GetPersonByUsername(ctx context.Context, username string) (*dto.PersonResponse, error) {
	person, err := uc.personRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, nil
	}
	return uc.enrichPerson(ctx, person)
}

// UpdatePerson actualiza los datos de identidad. Devuelve nil si no existe.
func (uc *UserUseCase) UpdatePerson(ctx context.Context, id string, in dto.UpdatePersonRequest) (*dto.PersonResponse, error) {
	person, err := uc.personRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, nil
	}
	if in.FirstName != nil {
		person.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		person.LastName = *in.LastName
	}
	if in.BirthDate != nil {
		person.BirthDate = in.BirthDate
	}
	if in.Gender != nil {
		person.Gender = *in.Gender
	}
	if in.Address != nil {
		person.Address = *in.Address
	}
	if in.Phone != nil {
		person.Phone = *in.Phone
	}
	person.UpdatedAt = time.Now()
	if err := uc.personRepo.Update(ctx, person); err != nil {
		return nil, err
	}
	return uc.enrichPerson(ctx, person)
}

// DeletePerson elimina la persona y su usuario asociado. Devuelve false si la
// persona no existía.
func (uc *UserUseCase) DeletePerson(ctx context.Context, id string) (bool, error) {
	person, err := uc.personRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if person == nil {
		return false, nil
	}
	var deleted bool
	err = uc.txRunner.RunPersons(ctx, func(
		userRepo repository.UserRepository,
		personRepo repository.PersonRepository,
	) error {
		d, err := personRepo.Delete(ctx, id)
		if err != nil {
			return err
		}
		deleted = d
		if person.UserID != "" {
			if _, err := userRepo.Delete(ctx, person.UserID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (uc *UserUseCase) enrichPerson(ctx context.Context, person *entity.Person) (*dto.PersonResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, person.UserID)
	if err != nil {
		return nil, err
	}
	roleName := ""
	if user != nil {
		if role, err := uc.roleRepo.GetByID(ctx, user.RoleID); err == nil && role != nil {
			roleName = role.Name
		}
	}
	return uc.toPersonResponse(person, user, roleName), nil
}

func (uc *UserUseCase) toPersonResponse(p *entity.Person, u *entity.User, roleName string) *dto.PersonResponse {
	resp := &dto.PersonResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		DNI:       p.DNI,
		BirthDate: p.BirthDate,
		Gender:    p.Gender,
		Address:   p.Address,
		Phone:     p.Phone,
		Role:      roleName,
	}
	if u != nil {
		resp.Username = u.Username
		resp.Email = u.Email
		resp.Active = u.Active
	}
	return resp
}
