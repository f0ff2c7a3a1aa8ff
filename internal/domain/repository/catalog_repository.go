package repository

import (
	"context"

	"github.com/sairmh/libreria-api/internal/domain/entity"
)

// AuthorRepository puerto de persistencia para Author.
type AuthorRepository interface {
	Create(ctx context.Context, author *entity.Author) error
	GetByID(ctx context.Context, id string) (*entity.Author, error)
	List(ctx context.Context) ([]*entity.Author, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CategoryRepository puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// EditorialRepository puerto de persistencia para Editorial.
type EditorialRepository interface {
	Create(ctx context.Context, editorial *entity.Editorial) error
	GetByID(ctx context.Context, id string) (*entity.Editorial, error)
	List(ctx context.Context) ([]*entity.Editorial, error)
	Delete(ctx context.Context, id string) (bool, error)
}
