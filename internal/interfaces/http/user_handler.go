package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sairmh/libreria-api/internal/application/dto"
	"github.com/sairmh/libreria-api/internal/application/usecase"
)

// UserHandler maneja las peticiones HTTP de usuarios y personas (protegido).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// ListShort godoc
// @Summary      Listar usuarios (datos reducidos)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserShortResponse
// @Router       /api/users/short [get]
func (h *UserHandler) ListShort(c *fiber.Ctx) error {
	out, err := h.uc.ListShort(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CreatePerson godoc
// @Summary      Crear persona con su cuenta de usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePersonRequest  true  "Persona y cuenta a crear"
// @Success      201   {object}  dto.PersonResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/persons [post]
func (h *UserHandler) CreatePerson(c *fiber.Ctx) error {
	var in dto.CreatePersonRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.CreatePerson(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPersonByID godoc
// @Summary      Obtener persona por ID
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la persona"
// @Success      200  {object}  dto.PersonResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/persons/{id} [get]
func (h *UserHandler) GetPersonByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	out, err := h.uc.GetPersonByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "persona no encontrada")
	}
	return c.JSON(out)
}

// GetProfile godoc
// @Summary      Perfil de la persona autenticada
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PersonResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/persons/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	username := GetUsername(c)
	out, err := h.uc.GetPersonByUsername(c.UserContext(), username)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "persona no encontrada")
	}
	return c.JSON(out)
}

// UpdatePerson godoc
// @Summary      Actualizar persona
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la persona"
// @Param        body  body  dto.UpdatePersonRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.PersonResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/persons/{id} [put]
func (h *UserHandler) UpdatePerson(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	var in dto.UpdatePersonRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpdatePerson(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "persona no encontrada")
	}
	return c.JSON(out)
}

// DeletePerson godoc
// @Summary      Eliminar persona y su cuenta
// @Tags         users
// @Security     Bearer
// @Param        id  path  string  true  "ID de la persona"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/persons/{id} [delete]
func (h *UserHandler) DeletePerson(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	deleted, err := h.uc.DeletePerson(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	if !deleted {
		return notFound(c, "persona no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
