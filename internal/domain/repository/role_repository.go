package repository

import (
	"context"

	"github.com/sairmh/libreria-api/internal/domain/entity"
)

// RoleRepository puerto de persistencia para Role.
// Los métodos de lectura devuelven el rol con su set de permisos cargado de
// forma explícita (sin lazy loading). AddPermission/RemovePermission son
// idempotentes: la tabla de unión absorbe duplicados y ausencias.
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, id string) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	List(ctx context.Context) ([]*entity.Role, error)
	Update(ctx context.Context, role *entity.Role) error
	Delete(ctx context.Context, id string) (bool, error)
	AddPermission(ctx context.Context, roleID, permissionID string) error
	RemovePermission(ctx context.Context, roleID, permissionID string) error
	SetPermissions(ctx context.Context, roleID string, permissionIDs []string) error
}

// PermissionRepository puerto de persistencia para Permission (referencia inmutable).
type PermissionRepository interface {
	Create(ctx context.Context, permission *entity.Permission) error
	GetByName(ctx context.Context, name string) (*entity.Permission, error)
	List(ctx context.Context) ([]*entity.Permission, error)
}
