package usecase

import (
	"context"

	"github.com/sairmh/libreria-api/internal/domain/repository"
)

// PersonTxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de identidad atados a esa tx. Usuario y persona (y el marcador
// de admin) se confirman juntos o ninguno: nunca queda una cuenta huérfana.
type PersonTxRunner interface {
	RunPersons(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		personRepo repository.PersonRepository,
	) error) error
}

// RoleTxRunner ejecuta una función dentro de una transacción de BD con el
// repositorio de roles atado a esa tx. La fila del rol y su set de permisos
// en la tabla de unión mutan de forma atómica.
type RoleTxRunner interface {
	RunRoles(ctx context.Context, fn func(
		roleRepo repository.RoleRepository,
	) error) error
}
