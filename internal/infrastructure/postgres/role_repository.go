package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sairmh/libreria-api/internal/domain"
	"github.com/sairmh/libreria-api/internal/domain/entity"
	"github.com/sairmh/libreria-api/internal/domain/repository"
)

var (
	_ repository.RoleRepository       = (*RoleRepo)(nil)
	_ repository.PermissionRepository = (*PermissionRepo)(nil)
)

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
// Las lecturas devuelven el rol con sus permisos ya cargados vía la tabla de
// unión role_permissions.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de persistencia para roles.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// Create persiste un rol (sin permisos; se asignan con SetPermissions/AddPermission).
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	query := `
		INSERT INTO roles (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, role.ID, role.Name, role.Description, role.CreatedAt, role.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// GetByID obtiene un rol con sus permisos. Devuelve nil si no existe.
func (r *RoleRepo) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM roles WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByName obtiene un rol por nombre con sus permisos. Devuelve nil si no existe.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM roles WHERE name = $1`
	return r.getOne(ctx, query, name)
}

func (r *RoleRepo) getOne(ctx context.Context, query string, arg any) (*entity.Role, error) {
	var role entity.Role
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	if err := r.loadPermissions(ctx, []*entity.Role{&role}); err != nil {
		return nil, err
	}
	return &role, nil
}

// List lista todos los roles con sus permisos.
func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM roles ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, &role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadPermissions(ctx, roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// Update actualiza la descripción de un rol. El nombre es inmutable.
func (r *RoleRepo) Update(ctx context.Context, role *entity.Role) error {
	query := `UPDATE roles SET description = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, role.ID, role.Description, role.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

// Delete elimina un rol y sus filas de role_permissions. Devuelve false si no existía.
func (r *RoleRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := r.q.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, id); err != nil {
		return false, fmt.Errorf("delete role permissions: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("%w: hay usuarios con este rol", domain.ErrInvalidInput)
		}
		return false, fmt.Errorf("delete role: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// AddPermission agrega un permiso al rol. Idempotente (ON CONFLICT DO NOTHING).
func (r *RoleRepo) AddPermission(ctx context.Context, roleID, permissionID string) error {
	query := `
		INSERT INTO role_permissions (role_id, permission_id)
		VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.q.Exec(ctx, query, roleID, permissionID); err != nil {
		return fmt.Errorf("add role permission: %w", err)
	}
	return nil
}

// RemovePermission quita un permiso del rol. Idempotente.
func (r *RoleRepo) RemovePermission(ctx context.Context, roleID, permissionID string) error {
	query := `DELETE FROM role_permissions WHERE role_id = $1 AND permission_id = $2`
	if _, err := r.q.Exec(ctx, query, roleID, permissionID); err != nil {
		return fmt.Errorf("remove role permission: %w", err)
	}
	return nil
}

// SetPermissions reemplaza el set completo de permisos del rol.
func (r *RoleRepo) SetPermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("clear role permissions: %w", err)
	}
	for _, pid := range permissionIDs {
		if err := r.AddPermission(ctx, roleID, pid); err != nil {
			return err
		}
	}
	return nil
}

// loadPermissions carga los permisos de los roles dados en una sola consulta.
func (r *RoleRepo) loadPermissions(ctx context.Context, roles []*entity.Role) error {
	if len(roles) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Role, len(roles))
	ids := make([]string, 0, len(roles))
	for _, role := range roles {
		byID[role.ID] = role
		ids = append(ids, role.ID)
	}

	query := `
		SELECT rp.role_id, p.id, p.name, p.label, p.created_at
		FROM role_permissions rp
		JOIN permissions p ON p.id = rp.permission_id
		WHERE rp.role_id = ANY($1)
		ORDER BY p.name`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list role permissions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var roleID string
		var p entity.Permission
		if err := rows.Scan(&roleID, &p.ID, &p.Name, &p.Label, &p.CreatedAt); err != nil {
			return fmt.Errorf("scan role permission: %w", err)
		}
		if role, ok := byID[roleID]; ok {
			role.Permissions = append(role.Permissions, &p)
		}
	}
	return rows.Err()
}

// PermissionRepo implementación del puerto PermissionRepository sobre PostgreSQL.
type PermissionRepo struct {
	q Querier
}

// NewPermissionRepository construye el adaptador de persistencia para permisos.
func NewPermissionRepository(q Querier) *PermissionRepo {
	return &PermissionRepo{q: q}
}

// Create persiste un permiso.
func (r *PermissionRepo) Create(ctx context.Context, permission *entity.Permission) error {
	query := `INSERT INTO permissions (id, name, label, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, permission.ID, permission.Name, permission.Label, permission.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert permission: %w", err)
	}
	return nil
}

// GetByName obtiene un permiso por nombre. Devuelve nil si no existe.
func (r *PermissionRepo) GetByName(ctx context.Context, name string) (*entity.Permission, error) {
	query := `SELECT id, name, label, created_at FROM permissions WHERE name = $1`
	var p entity.Permission
	err := r.q.QueryRow(ctx, query, name).Scan(&p.ID, &p.Name, &p.Label, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permission: %w", err)
	}
	return &p, nil
}

// List lista todos los permisos ordenados por nombre.
func (r *PermissionRepo) List(ctx context.Context) ([]*entity.Permission, error) {
	query := `SELECT id, name, label, created_at FROM permissions ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()

	var perms []*entity.Permission
	for rows.Next() {
		var p entity.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Label, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		perms = append(perms, &p)
	}
	return perms, rows.Err()
}
