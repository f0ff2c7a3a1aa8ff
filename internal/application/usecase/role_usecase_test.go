package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

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

type fakePermRepo struct {
	byName map[string]*entity.Permission
	byID   map[string]*entity.Permission
}

func newFakePermRepo() *fakePermRepo {
	r := &fakePermRepo{
		byName: make(map[string]*entity.Permission),
		byID:   make(map[string]*entity.Permission),
	}
	for i, seed := range entity.AllPermissions() {
		p := &entity.Permission{
			ID:        "perm-" + seed.Name,
			Name:      seed.Name,
			Label:     seed.Label,
			CreatedAt: time.Now().Add(time.Duration(i)),
		}
		r.byName[p.Name] = p
		r.byID[p.ID] = p
	}
	return r
}

func (r *fakePermRepo) Create(_ context.Context, p *entity.Permission) error {
	r.byName[p.Name] = p
	r.byID[p.ID] = p
	return nil
}

func (r *fakePermRepo) GetByName(_ context.Context, name string) (*entity.Permission, error) {
	p, ok := r.byName[name]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *fakePermRepo) List(_ context.Context) ([]*entity.Permission, error) {
	out := make([]*entity.Permission, 0, len(r.byName))
	for _, seed := range entity.AllPermissions() {
		out = append(out, r.byName[seed.Name])
	}
	return out, nil
}

type fakeRoleRepo struct {
	roles    map[string]*entity.Role
	assigned map[string]map[string]bool // roleID → set de permissionID
	perms    *fakePermRepo

	errSetPermissions error           // si no es nil, SetPermissions falla
	referenced        map[string]bool // roles con usuarios: Delete limpia permisos y luego falla
}

func newFakeRoleRepo(perms *fakePermRepo, roles ...*entity.Role) *fakeRoleRepo {
	r := &fakeRoleRepo{
		roles:    make(map[string]*entity.Role),
		assigned: make(map[string]map[string]bool),
		perms:    perms,
	}
	for _, role := range roles {
		r.roles[role.ID] = role
		r.assigned[role.ID] = make(map[string]bool)
		for _, p := range role.Permissions {
			r.assigned[role.ID][p.ID] = true
		}
	}
	return r
}

func (r *fakeRoleRepo) Create(_ context.Context, role *entity.Role) error {
	r.roles[role.ID] = role
	r.assigned[role.ID] = make(map[string]bool)
	return nil
}

func (r *fakeRoleRepo) withPermissions(role *entity.Role) *entity.Role {
	cp := *role
	cp.Permissions = nil
	for id := range r.assigned[role.ID] {
		cp.Permissions = append(cp.Permissions, r.perms.byID[id])
	}
	return &cp
}

func (r *fakeRoleRepo) GetByID(_ context.Context, id string) (*entity.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, nil
	}
	return r.withPermissions(role), nil
}

func (r *fakeRoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			return r.withPermissions(role), nil
		}
	}
	return nil, nil
}

func (r *fakeRoleRepo) List(_ context.Context) ([]*entity.Role, error) {
	out := make([]*entity.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, r.withPermissions(role))
	}
	return out, nil
}

func (r *fakeRoleRepo) Update(_ context.Context, role *entity.Role) error {
	existing, ok := r.roles[role.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Description = role.Description
	existing.UpdatedAt = role.UpdatedAt
	return nil
}

func (r *fakeRoleRepo) Delete(_ context.Context, id string) (bool, error) {
	_, ok := r.roles[id]
	// Reproduce el orden real: primero se borran las filas de permisos y
	// después la del rol; un rol aún referenciado por usuarios falla en el
	// segundo paso, cuando los permisos ya fueron borrados.
	delete(r.assigned, id)
	if r.referenced[id] {
		return false, errors.New("viola la restricción de clave foránea \"fk_users_role\"")
	}
	delete(r.roles, id)
	return ok, nil
}

func (r *fakeRoleRepo) AddPermission(_ context.Context, roleID, permissionID string) error {
	r.assigned[roleID][permissionID] = true
	return nil
}

func (r *fakeRoleRepo) RemovePermission(_ context.Context, roleID, permissionID string) error {
	delete(r.assigned[roleID], permissionID)
	return nil
}

func (r *fakeRoleRepo) SetPermissions(_ context.Context, roleID string, permissionIDs []string) error {
	if r.errSetPermissions != nil {
		return r.errSetPermissions
	}
	r.assigned[roleID] = make(map[string]bool)
	for _, id := range permissionIDs {
		r.assigned[roleID][id] = true
	}
	return nil
}

// fakeRoleTx imita el comportamiento transaccional: toma una instantánea del
// estado antes de ejecutar fn y lo restaura si fn devuelve error.
type fakeRoleTx struct {
	repo *fakeRoleRepo
}

func (t *fakeRoleTx) RunRoles(ctx context.Context, fn func(roleRepo repository.RoleRepository) error) error {
	roles := make(map[string]*entity.Role, len(t.repo.roles))
	for id, role := range t.repo.roles {
		cp := *role
		roles[id] = &cp
	}
	assigned := make(map[string]map[string]bool, len(t.repo.assigned))
	for id, set := range t.repo.assigned {
		cp := make(map[string]bool, len(set))
		for permID := range set {
			cp[permID] = true
		}
		assigned[id] = cp
	}
	if err := fn(t.repo); err != nil {
		t.repo.roles = roles
		t.repo.assigned = assigned
		return err
	}
	return nil
}

func newRoleUC(roles *fakeRoleRepo, perms *fakePermRepo) *usecase.RoleUseCase {
	return usecase.NewRoleUseCase(&fakeRoleTx{repo: roles}, roles, perms)
}

func rol(id, name string) *entity.Role {
	now := time.Now()
	return &entity.Role{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
}

func permissionNames(resp *dto.RoleResponse) []string {
	out := make([]string, 0, len(resp.Permissions))
	for _, p := range resp.Permissions {
		out = append(out, p.Name)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Roles protegidos
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_RolProtegidoRechazado(t *testing.T) {
	perms := newFakePermRepo()
	roles := newFakeRoleRepo(perms,
		rol("r-admin", entity.RoleAdministrador),
		rol("r-vend", entity.RoleVendedor),
	)
	uc := newRoleUC(roles, perms)

	for _, id := range []string{"r-admin", "r-vend"} {
		_, err := uc.Delete(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrProtectedRole, "el rol %s no debe poder eliminarse", id)
	}

	// Ambos siguen existiendo.
	for _, id := range []string{"r-admin", "r-vend"} {
		role, err := roles.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.NotNil(t, role)
	}
}

func TestDelete_RolNormalSeElimina(t *testing.T) {
	perms := newFakePermRepo()
	roles := newFakeRoleRepo(perms, rol("r-caja", "CAJERO"))
	uc := newRoleUC(roles, perms)

	deleted, err := uc.Delete(context.Background(), "r-caja")
	require.NoError(t, err)
	assert.True(t, deleted)

	role, _ := roles.GetByID(context.Background(), "r-caja")
	assert.Nil(t, role)
}

func TestDelete_RolInexistenteDevuelveFalse(t *testing.T) {
	perms := newFakePermRepo()
	uc := newRoleUC(newFakeRoleRepo(perms), perms)

	deleted, err := uc.Delete(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.False(t, deleted)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad de las mutaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_RolReferenciadoConservaSusPermisos(t *testing.T) {
	perms := newFakePermRepo()
	caja := rol("r-caja", "CAJERO")
	caja.Permissions = []*entity.Permission{
		perms.byName[entity.PermCreateSale],
		perms.byName[entity.PermGetSales],
	}
	roles := newFakeRoleRepo(perms, caja)
	roles.referenced = map[string]bool{"r-caja": true}
	uc := newRoleUC(roles, perms)

	_, err := uc.Delete(context.Background(), "r-caja")
	require.Error(t, err, "un rol con usuarios asignados no puede eliminarse")

	// El borrado rechazado no debe haber vaciado el set de permisos del rol.
	role, err := roles.GetByID(context.Background(), "r-caja")
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Len(t, role.Permissions, 2)
}

func TestCreate_FalloAlAsignarPermisosNoDejaRolAMedias(t *testing.T) {
	perms := newFakePermRepo()
	roles := newFakeRoleRepo(perms)
	roles.errSetPermissions = errors.New("conexión perdida")
	uc := newRoleUC(roles, perms)

	_, err := uc.Create(context.Background(), dto.CreateRoleRequest{
		Name:        "INVENTARISTA",
		Permissions: []string{entity.PermCreateStockMovement},
	})
	require.Error(t, err)
	assert.Empty(t, roles.roles, "la fila del rol no debe quedar sin su set de permisos")
}

func TestUpdate_FalloAlAsignarPermisosNoAplicaCambios(t *testing.T) {
	perms := newFakePermRepo()
	roles := newFakeRoleRepo(perms, rol("r-caja", "CAJERO"))
	roles.errSetPermissions = errors.New("conexión perdida")
	uc := newRoleUC(roles, perms)

	desc := "Caja y cobros"
	_, err := uc.Update(context.Background(), "r-caja", dto.UpdateRoleRequest{
		Description: &desc,
		Permissions: []string{entity.PermCreateSale},
	})
	require.Error(t, err)

	role, err := roles.GetByID(context.Background(), "r-caja")
	require.NoError(t, err)
	assert.Empty(t, role.Description, "la descripción no debe actualizarse si los permisos no se aplicaron")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado y creación
// ──────────────────────────────────────────────────────────────────────────────

func TestList_ExcluyeAdministrador(t *testing.T) {
	perms := newFakePermRepo()
	roles := newFakeRoleRepo(perms,
		rol("r-admin", entity.RoleAdministrador),
		rol("r-vend", entity.RoleVendedor),
		rol("r-caja", "CAJERO"),
	)
	uc := newRoleUC(roles, perms)

	out, err := uc.List(context.Background())
	require.NoError(t, err)

	require.Len(t, out, 2, "ADMINISTRADOR nunca aparece en el listado")
	for _, r := range out {
		assert.NotEqual(t, entity.RoleAdministrador, r.Name)
	}
}

func TestCreate_ConPermisosPorNombre(t *testing.T) {
	perms := newFakePermRepo()
	uc := newRoleUC(newFakeRoleRepo(perms), perms)

	resp, err := uc.Create(context.Background(), dto.CreateRoleRequest{
		Name:        "INVENTARISTA",
		Description: "Gestión de inventario",
		Permissions: []string{entity.PermCreateStockMovement, entity.PermGetStockMovements},
	})
	require.NoError(t, err)

	assert.Equal(t, "INVENTARISTA", resp.Name)
	assert.ElementsMatch(t,
		[]string{entity.PermCreateStockMovement, entity.PermGetStockMovements},
		permissionNames(resp))
}

func TestCreate_PermisoDesconocidoRechazado(t *testing.T) {
	perms := newFakePermRepo()
	uc := newRoleUC(newFakeRoleRepo(perms), perms)

	_, err := uc.Create(context.Background(), dto.CreateRoleRequest{
		Name:        "INVENTARISTA",
		Permissions: []string{"PERMISO_INVENTADO"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"un permiso fuera del conjunto cerrado debe rechazarse")
}

func TestUpdate_NombreInmutable(t *testing.T) {
	perms := newFakePermRepo()
	roles := newFakeRoleRepo(perms, rol("r-caja", "CAJERO"))
	uc := newRoleUC(roles, perms)

	desc := "Caja y cobros"
	resp, err := uc.Update(context.Background(), "r-caja", dto.UpdateRoleRequest{
		Description: &desc,
		Permissions: []string{entity.PermCreateSale},
	})
	require.NoError(t, err)

	assert.Equal(t, "CAJERO", resp.Name, "el nombre no cambia en ninguna actualización")
	assert.Equal(t, "Caja y cobros", resp.Description)
	assert.ElementsMatch(t, []string{entity.PermCreateSale}, permissionNames(resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Asignación de permisos
// ──────────────────────────────────────────────────────────────────────────────

func TestAddRemovePermission_IdaYVuelta(t *testing.T) {
	perms := newFakePermRepo()
	roles := newFakeRoleRepo(perms, rol("r-caja", "CAJERO"))
	uc := newRoleUC(roles, perms)

	resp, err := uc.AddPermission(context.Background(), "r-caja", entity.PermCreateSale)
	require.NoError(t, err)
	assert.Contains(t, permissionNames(resp), entity.PermCreateSale)

	// Agregar el mismo permiso otra vez es idempotente.
	resp, err = uc.AddPermission(context.Background(), "r-caja", entity.PermCreateSale)
	require.NoError(t, err)
	assert.Len(t, resp.Permissions, 1)

	resp, err = uc.RemovePermission(context.Background(), "r-caja", entity.PermCreateSale)
	require.NoError(t, err)
	assert.Empty(t, resp.Permissions)

	// Quitar un permiso ausente tampoco es error.
	resp, err = uc.RemovePermission(context.Background(), "r-caja", entity.PermCreateSale)
	require.NoError(t, err)
	assert.Empty(t, resp.Permissions)
}

func TestAddPermission_RolONombreDesconocido(t *testing.T) {
	perms := newFakePermRepo()
	roles := newFakeRoleRepo(perms, rol("r-caja", "CAJERO"))
	uc := newRoleUC(roles, perms)

	_, err := uc.AddPermission(context.Background(), "no-existe", entity.PermCreateSale)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.AddPermission(context.Background(), "r-caja", "PERMISO_INVENTADO")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo de permisos
// ──────────────────────────────────────────────────────────────────────────────

func TestListPermissions_DevuelveElConjuntoCompleto(t *testing.T) {
	perms := newFakePermRepo()
	uc := newRoleUC(newFakeRoleRepo(perms), perms)

	out, err := uc.ListPermissions(context.Background())
	require.NoError(t, err)
	assert.Len(t, out, len(entity.AllPermissions()))
}
