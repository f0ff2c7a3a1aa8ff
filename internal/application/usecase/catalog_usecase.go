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

// CatalogUseCase CRUD de las entidades de referencia del catálogo:
// autores, categorías y editoriales.
type CatalogUseCase struct {
	authorRepo    repository.AuthorRepository
	categoryRepo  repository.CategoryRepository
	editorialRepo repository.EditorialRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	authorRepo repository.AuthorRepository,
	categoryRepo repository.CategoryRepository,
	editorialRepo repository.EditorialRepository,
) *CatalogUseCase {
	return &CatalogUseCase{authorRepo: authorRepo, categoryRepo: categoryRepo, editorialRepo: editorialRepo}
}

// CreateAuthor crea un autor.
func (uc *CatalogUseCase) CreateAuthor(ctx context.Context, in dto.CreateNamedRequest) (*dto.NamedResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	author := &entity.Author{ID: uuid.New().String(), Name: in.Name, CreatedAt: time.Now()}
	if err := uc.authorRepo.Create(ctx, author); err != nil {
		return nil, err
	}
	return &dto.NamedResponse{ID: author.ID, Name: author.Name, CreatedAt: author.CreatedAt}, nil
}

// ListAuthors lista todos los autores.
func (uc *CatalogUseCase) ListAuthors(ctx context.Context) ([]dto.NamedResponse, error) {
	authors, err := uc.authorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NamedResponse, 0, len(authors))
	for _, a := range authors {
		out = append(out, dto.NamedResponse{ID: a.ID, Name: a.Name, CreatedAt: a.CreatedAt})
	}
	return out, nil
}

// CreateCategory crea una categoría.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, in dto.CreateNamedRequest) (*dto.NamedResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	category := &entity.Category{ID: uuid.New().String(), Name: in.Name, CreatedAt: time.Now()}
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return &dto.NamedResponse{ID: category.ID, Name: category.Name, CreatedAt: category.CreatedAt}, nil
}

// ListCategories lista todas las categorías.
func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]dto.NamedResponse, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NamedResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.NamedResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
	}
	return out, nil
}

// CreateEditorial crea una editorial.
func (uc *CatalogUseCase) CreateEditorial(ctx context.Context, in dto.CreateNamedRequest) (*dto.NamedResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	editorial := &entity.Editorial{ID: uuid.New().String(), Name: in.Name, CreatedAt: time.Now()}
	if err := uc.editorialRepo.Create(ctx, editorial); err != nil {
		return nil, err
	}
	return &dto.NamedResponse{ID: editorial.ID, Name: editorial.Name, CreatedAt: editorial.CreatedAt}, nil
}

// ListEditorials lista todas las editoriales.
func (uc *CatalogUseCase) ListEditorials(ctx context.Context) ([]dto.NamedResponse, error) {
	editorials, err := uc.editorialRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NamedResponse, 0, len(editorials))
	for _, e := range editorials {
		out = append(out, dto.NamedResponse{ID: e.ID, Name: e.Name, CreatedAt: e.CreatedAt})
	}
	return out, nil
}
