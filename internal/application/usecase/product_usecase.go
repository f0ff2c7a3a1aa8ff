package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sairmh/libreria-api/internal/application/dto"
	"github.com/sairmh/libreria-api/internal/domain"
	"github.com/sairmh/libreria-api/internal/domain/entity"
	"github.com/sairmh/libreria-api/internal/domain/repository"
	"github.com/sairmh/libreria-api/pkg/textutil"
)

// ProductUseCase CRUD de productos del catálogo. No toca Stock salvo el valor
// inicial al crear: los cambios posteriores pasan por inventario o ventas.
type ProductUseCase struct {
	productRepo   repository.ProductRepository
	authorRepo    repository.AuthorRepository
	categoryRepo  repository.CategoryRepository
	editorialRepo repository.EditorialRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	authorRepo repository.AuthorRepository,
	categoryRepo repository.CategoryRepository,
	editorialRepo repository.EditorialRepository,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:   productRepo,
		authorRepo:    authorRepo,
		categoryRepo:  categoryRepo,
		editorialRepo: editorialRepo,
	}
}

// refs referencias de catálogo resueltas de forma explícita (sin lazy loading).
type refs struct {
	author    *entity.Author
	category  *entity.Category
	editorial *entity.Editorial
}

// resolveRefs valida que autor, categoría y editorial existan.
func (uc *ProductUseCase) resolveRefs(ctx context.Context, authorID, categoryID, editorialID string) (*refs, error) {
	author, err := uc.authorRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, domain.ErrNotFound
	}
	category, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	editorial, err := uc.editorialRepo.GetByID(ctx, editorialID)
	if err != nil {
		return nil, err
	}
	if editorial == nil {
		return nil, domain.ErrNotFound
	}
	return &refs{author: author, category: category, editorial: editorial}, nil
}

// Create crea un producto validando sus referencias de catálogo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Title == "" || in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Stock < 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	r, err := uc.resolveRefs(ctx, in.AuthorID, in.CategoryID, in.EditorialID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	product := &entity.Product{
		ID:              uuid.New().String(),
		Title:           in.Title,
		ISBN:            in.ISBN,
		Code:            in.Code,
		Description:     in.Description,
		ImageURL:        in.ImageURL,
		AuthorID:        r.author.ID,
		CategoryID:      r.category.ID,
		EditorialID:     r.editorial.ID,
		Price:           in.Price,
		Stock:           in.Stock,
		PublicationDate: in.PublicationDate,
		Active:          active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return uc.toResponse(product, r), nil
}

// GetByID obtiene un producto. Devuelve nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	r, err := uc.resolveRefs(ctx, product.AuthorID, product.CategoryID, product.EditorialID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(product, r), nil
}

// List lista productos; con query no vacío filtra por título ignorando
// mayúsculas y tildes (búsqueda en español).
func (uc *ProductUseCase) List(ctx context.Context, query string) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	authors := make(map[string]string)
	categories := make(map[string]string)
	editorials := make(map[string]string)
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		if query != "" && !textutil.ContainsFold(p.Title, query) {
			continue
		}
		resp := dto.ProductResponse{
			ID:              p.ID,
			Title:           p.Title,
			ISBN:            p.ISBN,
			Code:            p.Code,
			Description:     p.Description,
			ImageURL:        p.ImageURL,
			AuthorID:        p.AuthorID,
			CategoryID:      p.CategoryID,
			EditorialID:     p.EditorialID,
			Price:           p.Price,
			Stock:           p.Stock,
			PublicationDate: p.PublicationDate,
			Active:          p.Active,
			CreatedAt:       p.CreatedAt,
			UpdatedAt:       p.UpdatedAt,
		}
		resp.AuthorName = uc.cachedName(authors, p.AuthorID, func(id string) (string, bool) {
			if a, err := uc.authorRepo.GetByID(ctx, id); err == nil && a != nil {
				return a.Name, true
			}
			return "", false
		})
		resp.CategoryName = uc.cachedName(categories, p.CategoryID, func(id string) (string, bool) {
			if c, err := uc.categoryRepo.GetByID(ctx, id); err == nil && c != nil {
				return c.Name, true
			}
			return "", false
		})
		resp.EditorialName = uc.cachedName(editorials, p.EditorialID, func(id string) (string, bool) {
			if e, err := uc.editorialRepo.GetByID(ctx, id); err == nil && e != nil {
				return e.Name, true
			}
			return "", false
		})
		out = append(out, resp)
	}
	return out, nil
}

func (uc *ProductUseCase) cachedName(cache map[string]string, id string, lookup func(string) (string, bool)) string {
	if name, ok := cache[id]; ok {
		return name
	}
	name, _ := lookup(id)
	cache[id] = name
	return name
}

// Update actualiza un producto existente sin tocar su stock. Devuelve nil si
// el producto no existe.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Title != nil {
		product.Title = *in.Title
	}
	if in.ISBN != nil {
		product.ISBN = *in.ISBN
	}
	if in.Code != nil {
		product.Code = *in.Code
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.AuthorID != nil {
		product.AuthorID = *in.AuthorID
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.EditorialID != nil {
		product.EditorialID = *in.EditorialID
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.PublicationDate != nil {
		product.PublicationDate = in.PublicationDate
	}
	if in.Active != nil {
		product.Active = *in.Active
	}

	r, err := uc.resolveRefs(ctx, product.AuthorID, product.CategoryID, product.EditorialID)
	if err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return uc.toResponse(product, r), nil
}

// Delete elimina un producto. Devuelve false si no existía.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) (bool, error) {
	return uc.productRepo.Delete(ctx, id)
}

func (uc *ProductUseCase) toResponse(p *entity.Product, r *refs) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:              p.ID,
		Title:           p.Title,
		ISBN:            p.ISBN,
		Code:            p.Code,
		Description:     p.Description,
		ImageURL:        p.ImageURL,
		AuthorID:        p.AuthorID,
		AuthorName:      r.author.Name,
		CategoryID:      p.CategoryID,
		CategoryName:    r.category.Name,
		EditorialID:     p.EditorialID,
		EditorialName:   r.editorial.Name,
		Price:           p.Price,
		Stock:           p.Stock,
		PublicationDate: p.PublicationDate,
		Active:          p.Active,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
