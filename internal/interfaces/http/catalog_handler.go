package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sairmh/libreria-api/internal/application/dto"
	"github.com/sairmh/libreria-api/internal/application/usecase"
)

// CatalogHandler maneja las peticiones HTTP del catálogo de referencia:
// autores, categorías y editoriales (protegido).
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateAuthor godoc
// @Summary      Crear autor
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNamedRequest  true  "Nombre del autor"
// @Success      201   {object}  dto.NamedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/authors [post]
func (h *CatalogHandler) CreateAuthor(c *fiber.Ctx) error {
	return h.createNamed(c, h.uc.CreateAuthor)
}

// ListAuthors godoc
// @Summary      Listar autores
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NamedResponse
// @Router       /api/authors [get]
func (h *CatalogHandler) ListAuthors(c *fiber.Ctx) error {
	out, err := h.uc.ListAuthors(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNamedRequest  true  "Nombre de la categoría"
// @Success      201   {object}  dto.NamedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	return h.createNamed(c, h.uc.CreateCategory)
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NamedResponse
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.uc.ListCategories(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CreateEditorial godoc
// @Summary      Crear editorial
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNamedRequest  true  "Nombre de la editorial"
// @Success      201   {object}  dto.NamedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/editorials [post]
func (h *CatalogHandler) CreateEditorial(c *fiber.Ctx) error {
	return h.createNamed(c, h.uc.CreateEditorial)
}

// ListEditorials godoc
// @Summary      Listar editoriales
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NamedResponse
// @Router       /api/editorials [get]
func (h *CatalogHandler) ListEditorials(c *fiber.Ctx) error {
	out, err := h.uc.ListEditorials(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) createNamed(
	c *fiber.Ctx,
	create func(ctx context.Context, in dto.CreateNamedRequest) (*dto.NamedResponse, error),
) error {
	var in dto.CreateNamedRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Name == "" {
		return badRequest(c, "VALIDATION", "name es requerido")
	}
	out, err := create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
