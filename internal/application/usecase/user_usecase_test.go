package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sairmh/libreria-api/internal/application/dto"
	"github.com/sairmh/libreria-api/internal/application/usecase"
	"github.com/sairmh/libreria-api/internal/domain"
	"github.com/sairmh/libreria-api/internal/domain/entity"
	"github.com/sairmh/libreria-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users     map[string]*entity.User
	errDelete error // si no es nil, Delete falla
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, err := r.GetByUsername(ctx, username)
	return u != nil, err
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) (bool, error) {
	if r.errDelete != nil {
		return false, r.errDelete
	}
	_, ok := r.users[id]
	delete(r.users, id)
	return ok, nil
}

type fakePersonRepo struct {
	persons   map[string]*entity.Person
	admins    map[string]*entity.Admin // personID → marcador
	users     *fakeUserRepo
	errCreate error // si no es nil, Create falla
}

func newFakePersonRepo(users *fakeUserRepo) *fakePersonRepo {
	return &fakePersonRepo{
		persons: make(map[string]*entity.Person),
		admins:  make(map[string]*entity.Admin),
		users:   users,
	}
}

func (r *fakePersonRepo) Create(_ context.Context, person *entity.Person) error {
	if r.errCreate != nil {
		return r.errCreate
	}
	cp := *person
	r.persons[person.ID] = &cp
	return nil
}

func (r *fakePersonRepo) GetByID(_ context.Context, id string) (*entity.Person, error) {
	p, ok := r.persons[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePersonRepo) GetByDNI(_ context.Context, dni string) (*entity.Person, error) {
	for _, p := range r.persons {
		if p.DNI == dni {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePersonRepo) GetByUsername(ctx context.Context, username string) (*entity.Person, error) {
	u, err := r.users.GetByUsername(ctx, username)
	if err != nil || u == nil {
		return nil, err
	}
	return r.GetByUserID(ctx, u.ID)
}

func (r *fakePersonRepo) GetByUserID(_ context.Context, userID string) (*entity.Person, error) {
	for _, p := range r.persons {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePersonRepo) List(_ context.Context) ([]*entity.Person, error) {
	out := make([]*entity.Person, 0, len(r.persons))
	for _, p := range r.persons {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePersonRepo) Update(_ context.Context, person *entity.Person) error {
	cp := *person
	r.persons[person.ID] = &cp
	return nil
}

func (r *fakePersonRepo) Delete(_ context.Context, id string) (bool, error) {
	_, ok := r.persons[id]
	delete(r.persons, id)
	return ok, nil
}

func (r *fakePersonRepo) CreateAdmin(_ context.Context, admin *entity.Admin) error {
	cp := *admin
	r.admins[admin.PersonID] = &cp
	return nil
}

func (r *fakePersonRepo) GetAdminByPersonID(_ context.Context, personID string) (*entity.Admin, error) {
	a, ok := r.admins[personID]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

// fakePersonTx imita el comportamiento transaccional: toma una instantánea de
// usuarios y personas antes de ejecutar fn y la restaura si fn devuelve error.
type fakePersonTx struct {
	users   *fakeUserRepo
	persons *fakePersonRepo
}

func (t *fakePersonTx) RunPersons(ctx context.Context, fn func(userRepo repository.UserRepository, personRepo repository.PersonRepository) error) error {
	users := make(map[string]*entity.User, len(t.users.users))
	for id, u := range t.users.users {
		cp := *u
		users[id] = &cp
	}
	persons := make(map[string]*entity.Person, len(t.persons.persons))
	for id, p := range t.persons.persons {
		cp := *p
		persons[id] = &cp
	}
	if err := fn(t.users, t.persons); err != nil {
		t.users.users = users
		t.persons.persons = persons
		return err
	}
	return nil
}

func buildUserUC() (*usecase.UserUseCase, *fakeUserRepo, *fakePersonRepo) {
	users := newFakeUserRepo()
	persons := newFakePersonRepo(users)
	perms := newFakePermRepo()
	roles := newFakeRoleRepo(perms, rol("r-vend", entity.RoleVendedor))
	tx := &fakePersonTx{users: users, persons: persons}
	return usecase.NewUserUseCase(tx, users, persons, roles), users, persons
}

func solicitudPersona(dni, username string) dto.CreatePersonRequest {
	return dto.CreatePersonRequest{
		FirstName: "Lucía",
		LastName:  "Paredes",
		DNI:       dni,
		Gender:    entity.GenderFemenino,
		User: dto.CreateUserRequest{
			Username: username,
			Email:    username + "@libreria.local",
			Password: "secreto123",
			Role:     entity.RoleVendedor,
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación de personas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePerson_CreaCuentaYPersonaJuntas(t *testing.T) {
	uc, users, persons := buildUserUC()

	resp, err := uc.CreatePerson(context.Background(), solicitudPersona("45678901", "lparedes"))
	require.NoError(t, err)

	assert.Equal(t, "lparedes", resp.Username)
	assert.Equal(t, entity.RoleVendedor, resp.Role)
	assert.True(t, resp.Active)
	assert.Len(t, users.users, 1)
	assert.Len(t, persons.persons, 1)

	person := persons.persons[resp.ID]
	require.NotNil(t, person)
	u, _ := users.GetByID(context.Background(), person.UserID)
	assert.NotNil(t, u, "la persona queda enlazada a su cuenta")
}

func TestCreatePerson_FalloEnPersonaNoDejaCuentaHuerfana(t *testing.T) {
	uc, users, persons := buildUserUC()
	persons.errCreate = errors.New("conexión perdida")

	_, err := uc.CreatePerson(context.Background(), solicitudPersona("45678901", "lparedes"))
	require.Error(t, err)

	// La cuenta creada en el primer paso debe revertirse junto con el fallo.
	assert.Empty(t, users.users, "no deben quedar cuentas sin persona asociada")
	assert.Empty(t, persons.persons)
}

func TestCreatePerson_DNIDuplicadoRechazado(t *testing.T) {
	uc, _, _ := buildUserUC()

	_, err := uc.CreatePerson(context.Background(), solicitudPersona("45678901", "lparedes"))
	require.NoError(t, err)

	_, err = uc.CreatePerson(context.Background(), solicitudPersona("45678901", "otramas"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreatePerson_UsernameDuplicadoRechazado(t *testing.T) {
	uc, _, _ := buildUserUC()

	_, err := uc.CreatePerson(context.Background(), solicitudPersona("45678901", "lparedes"))
	require.NoError(t, err)

	_, err = uc.CreatePerson(context.Background(), solicitudPersona("99887766", "lparedes"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreatePerson_RolDesconocidoRechazado(t *testing.T) {
	uc, _, _ := buildUserUC()

	in := solicitudPersona("45678901", "lparedes")
	in.User.Role = "ROL_INVENTADO"
	_, err := uc.CreatePerson(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación de personas
// ──────────────────────────────────────────────────────────────────────────────

func TestDeletePerson_EliminaPersonaYCuenta(t *testing.T) {
	uc, users, persons := buildUserUC()

	resp, err := uc.CreatePerson(context.Background(), solicitudPersona("45678901", "lparedes"))
	require.NoError(t, err)

	deleted, err := uc.DeletePerson(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, persons.persons)
	assert.Empty(t, users.users, "la cuenta se elimina junto con la persona")
}

func TestDeletePerson_FalloEnCuentaConservaAmbas(t *testing.T) {
	uc, users, persons := buildUserUC()

	resp, err := uc.CreatePerson(context.Background(), solicitudPersona("45678901", "lparedes"))
	require.NoError(t, err)

	users.errDelete = errors.New("conexión perdida")
	_, err = uc.DeletePerson(context.Background(), resp.ID)
	require.Error(t, err)

	// El borrado parcial de la persona debe revertirse.
	assert.Len(t, persons.persons, 1, "la persona no debe quedar borrada si su cuenta no pudo borrarse")
	assert.Len(t, users.users, 1)
}

func TestDeletePerson_InexistenteDevuelveFalse(t *testing.T) {
	uc, _, _ := buildUserUC()

	deleted, err := uc.DeletePerson(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.False(t, deleted)
}
