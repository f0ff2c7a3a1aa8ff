package repository

import (
	"context"

	"github.com/sairmh/libreria-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) (bool, error)
}

// PersonRepository puerto de persistencia para Person y el marcador Admin.
type PersonRepository interface {
	Create(ctx context.Context, person *entity.Person) error
	GetByID(ctx context.Context, id string) (*entity.Person, error)
	GetByDNI(ctx context.Context, dni string) (*entity.Person, error)
	GetByUsername(ctx context.Context, username string) (*entity.Person, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Person, error)
	List(ctx context.Context) ([]*entity.Person, error)
	Update(ctx context.Context, person *entity.Person) error
	Delete(ctx context.Context, id string) (bool, error)
	CreateAdmin(ctx context.Context, admin *entity.Admin) error
	GetAdminByPersonID(ctx context.Context, personID string) (*entity.Admin, error)
}
