package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sairmh/libreria-api/internal/application/dto"
	"github.com/sairmh/libreria-api/internal/application/usecase"
)

// RoleHandler maneja las peticiones HTTP de roles y permisos (protegido).
type RoleHandler struct {
	uc *usecase.RoleUseCase
}

// NewRoleHandler construye el handler.
func NewRoleHandler(uc *usecase.RoleUseCase) *RoleHandler {
	return &RoleHandler{uc: uc}
}

// Create godoc
// @Summary      Crear rol
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRoleRequest  true  "Rol con sus permisos por nombre"
// @Success      201   {object}  dto.RoleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/roles [post]
func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener rol por ID
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del rol"
// @Success      200  {object}  dto.RoleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [get]
func (h *RoleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "rol no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar roles
// @Description  ADMINISTRADOR nunca aparece en el listado.
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RoleResponse
// @Router       /api/roles [get]
func (h *RoleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar rol
// @Description  Solo descripción y permisos; el nombre es inmutable.
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del rol"
// @Param        body  body  dto.UpdateRoleRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.RoleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [put]
func (h *RoleHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "rol no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar rol
// @Description  Los roles protegidos (ADMINISTRADOR, VENDEDOR) no se pueden eliminar.
// @Tags         roles
// @Security     Bearer
// @Param        id  path  string  true  "ID del rol"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [delete]
func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	deleted, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	if !deleted {
		return notFound(c, "rol no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddPermission godoc
// @Summary      Agregar permiso a un rol
// @Description  Idempotente: agregar un permiso ya presente no es error.
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        roleId          path  string  true  "ID del rol"
// @Param        permissionName  path  string  true  "Nombre del permiso"
// @Success      200  {object}  dto.RoleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roles/{roleId}/permissions/{permissionName} [post]
func (h *RoleHandler) AddPermission(c *fiber.Ctx) error {
	roleID := c.Params("roleId")
	permissionName := c.Params("permissionName")
	if roleID == "" || permissionName == "" {
		return badRequest(c, "VALIDATION", "roleId y permissionName son requeridos")
	}
	out, err := h.uc.AddPermission(c.UserContext(), roleID, permissionName)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// RemovePermission godoc
// @Summary      Quitar permiso de un rol
// @Description  Idempotente: quitar un permiso ausente no es error.
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        roleId          path  string  true  "ID del rol"
// @Param        permissionName  path  string  true  "Nombre del permiso"
// @Success      200  {object}  dto.RoleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roles/{roleId}/permissions/{permissionName} [delete]
func (h *RoleHandler) RemovePermission(c *fiber.Ctx) error {
	roleID := c.Params("roleId")
	permissionName := c.Params("permissionName")
	if roleID == "" || permissionName == "" {
		return badRequest(c, "VALIDATION", "roleId y permissionName son requeridos")
	}
	out, err := h.uc.RemovePermission(c.UserContext(), roleID, permissionName)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ListPermissions godoc
// @Summary      Listar el catálogo de permisos
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PermissionResponse
// @Router       /api/permissions [get]
func (h *RoleHandler) ListPermissions(c *fiber.Ctx) error {
	out, err := h.uc.ListPermissions(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
