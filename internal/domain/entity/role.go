package entity

import "time"

// Roles sembrados del sistema. Los nombres protegidos no pueden eliminarse.
const (
	RoleAdministrador = "ADMINISTRADOR"
	RoleVendedor      = "VENDEDOR"
)

// ProtectedRoleNames roles reservados del sistema: su eliminación se rechaza
// sin importar los permisos del solicitante.
var ProtectedRoleNames = []string{RoleAdministrador, RoleVendedor}

// IsProtectedRole indica si el nombre corresponde a un rol reservado.
func IsProtectedRole(name string) bool {
	for _, n := range ProtectedRoleNames {
		if n == name {
			return true
		}
	}
	return false
}

// Role conjunto nombrado de permisos. Cada usuario tiene exactamente un rol.
type Role struct {
	ID          string
	Name        string // único
	Description string
	Permissions []*Permission // sin orden; set por tabla de unión
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasPermission indica si el rol contiene el permiso por nombre.
func (r *Role) HasPermission(name string) bool {
	for _, p := range r.Permissions {
		if p.Name == name {
			return true
		}
	}
	return false
}

// AuthorityPrefix prefijo del authority derivado del nombre del rol.
const AuthorityPrefix = "ROLE_"

// Authorities conjunto efectivo de autoridad del rol:
// {"ROLE_" + nombre} ∪ {nombre de cada permiso}.
func (r *Role) Authorities() []string {
	out := make([]string, 0, len(r.Permissions)+1)
	out = append(out, AuthorityPrefix+r.Name)
	for _, p := range r.Permissions {
		out = append(out, p.Name)
	}
	return out
}
