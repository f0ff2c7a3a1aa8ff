package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sairmh/libreria-api/internal/application/dto"
	"github.com/sairmh/libreria-api/internal/domain"
	"github.com/sairmh/libreria-api/internal/domain/entity"
	"github.com/sairmh/libreria-api/internal/domain/repository"
)

// RoleUseCase gestión de roles y de su set de permisos. Las mutaciones que
// tocan la fila del rol y la tabla de unión corren dentro de una transacción.
type RoleUseCase struct {
	txRunner RoleTxRunner
	roleRepo repository.RoleRepository
	permRepo repository.PermissionRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(txRunner RoleTxRunner, roleRepo repository.RoleRepository, permRepo repository.PermissionRepository) *RoleUseCase {
	return &RoleUseCase{txRunner: txRunner, roleRepo: roleRepo, permRepo: permRepo}
}

// resolvePermissionIDs traduce nombres de permisos a IDs. Todo nombre debe
// pertenecer al conjunto sembrado; uno desconocido es ErrNotFound.
func (uc *RoleUseCase) resolvePermissionIDs(ctx context.Context, names []string) ([]string, error) {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		p, err := uc.permRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// Create crea un rol con los permisos indicados por nombre.
func (uc *RoleUseCase) Create(ctx context.Context, in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	permIDs, err := uc.resolvePermissionIDs(ctx, in.Permissions)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	role := &entity.Role{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// Fila del rol y set de permisos se confirman juntos o ninguno.
	err = uc.txRunner.RunRoles(ctx, func(roleRepo repository.RoleRepository) error {
		if err := roleRepo.Create(ctx, role); err != nil {
			return err
		}
		if len(permIDs) > 0 {
			return roleRepo.SetPermissions(ctx, role.ID, permIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, role.ID)
}

// GetByID obtiene un rol con sus permisos. Devuelve nil si no existe.
func (uc *RoleUseCase) GetByID(ctx context.Context, id string) (*dto.RoleResponse, error) {
	role, err := uc.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, nil
	}
	return toRoleResponse(role), nil
}

// List lista los roles del sistema excluyendo ADMINISTRADOR.
func (uc *RoleUseCase) List(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := uc.roleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		if r.Name == entity.RoleAdministrador {
			continue
		}
		out = append(out, *toRoleResponse(r))
	}
	return out, nil
}

// Update actualiza descripción y permisos de un rol. El nombre no cambia.
// Devuelve nil si el rol no existe.
func (uc *RoleUseCase) Update(ctx context.Context, id string, in dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	role, err := uc.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, nil
	}
	if in.Description != nil {
		role.Description = *in.Description
	}
	role.UpdatedAt = time.Now()

	var permIDs []string
	if in.Permissions != nil {
		permIDs, err = uc.resolvePermissionIDs(ctx, in.Permissions)
		if err != nil {
			return nil, err
		}
	}
	err = uc.txRunner.RunRoles(ctx, func(roleRepo repository.RoleRepository) error {
		if err := roleRepo.Update(ctx, role); err != nil {
			return err
		}
		if in.Permissions != nil {
			return roleRepo.SetPermissions(ctx, role.ID, permIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina un rol. Los roles protegidos (ADMINISTRADOR y demás nombres
// reservados) se rechazan antes de tocar la BD, sin importar los permisos del
// solicitante. Devuelve false si el rol no existía.
func (uc *RoleUseCase) Delete(ctx context.Context, id string) (bool, error) {
	role, err := uc.roleRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if role == nil {
		return false, nil
	}
	if entity.IsProtectedRole(role.Name) {
		return false, domain.ErrProtectedRole
	}
	// Dentro de una transacción: si el rol sigue referenciado por usuarios, el
	// rechazo revierte también el borrado previo de role_permissions.
	var deleted bool
	err = uc.txRunner.RunRoles(ctx, func(roleRepo repository.RoleRepository) error {
		d, err := roleRepo.Delete(ctx, id)
		deleted = d
		return err
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// AddPermission agrega un permiso (por nombre) al rol. Idempotente: agregar
// uno ya presente no es error.
func (uc *RoleUseCase) AddPermission(ctx context.Context, roleID, permissionName string) (*dto.RoleResponse, error) {
	role, err := uc.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	perm, err := uc.permRepo.GetByName(ctx, permissionName)
	if err != nil {
		return nil, err
	}
	if perm == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.roleRepo.AddPermission(ctx, role.ID, perm.ID); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, roleID)
}

// RemovePermission quita un permiso (por nombre) del rol. Idempotente: quitar
// uno ausente no es error.
func (uc *RoleUseCase) RemovePermission(ctx context.Context, roleID, permissionName string) (*dto.RoleResponse, error) {
	role, err := uc.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	perm, err := uc.permRepo.GetByName(ctx, permissionName)
	if err != nil {
		return nil, err
	}
	if perm == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.roleRepo.RemovePermission(ctx, role.ID, perm.ID); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, roleID)
}

// ListPermissions lista el conjunto completo de permisos sembrados.
func (uc *RoleUseCase) ListPermissions(ctx context.Context) ([]dto.PermissionResponse, error) {
	perms, err := uc.permRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PermissionResponse, 0, len(perms))
	for _, p := range perms {
		out = append(out, dto.PermissionResponse{ID: p.ID, Name: p.Name, Label: p.Label})
	}
	return out, nil
}

func toRoleResponse(r *entity.Role) *dto.RoleResponse {
	resp := &dto.RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: make([]dto.PermissionResponse, 0, len(r.Permissions)),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	for _, p := range r.Permissions {
		resp.Permissions = append(resp.Permissions, dto.PermissionResponse{ID: p.ID, Name: p.Name, Label: p.Label})
	}
	return resp
}
