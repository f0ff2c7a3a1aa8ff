package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sairmh/libreria-api/internal/application/dto"
	"github.com/sairmh/libreria-api/internal/application/sales"
)

// SaleHandler maneja las peticiones HTTP del motor de ventas (protegido).
type SaleHandler struct {
	uc *sales.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar venta
// @Description  Venta multi-ítem atómica: valida stock y pago antes de descontar nada.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSaleRequest  true  "Venta a registrar"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.RegisterSale(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Description  Sin parámetros lista todo; con startDate y endDate (RFC 3339 o YYYY-MM-DD) filtra por rango.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "Inicio del rango"
// @Param        endDate    query  string  false  "Fin del rango"
// @Success      200  {array}  dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	startStr := c.Query("startDate")
	endStr := c.Query("endDate")
	if startStr == "" && endStr == "" {
		out, err := h.uc.FindAll(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(out)
	}
	if startStr == "" || endStr == "" {
		return badRequest(c, "VALIDATION", "startDate y endDate van juntos")
	}
	start, err := parseDate(startStr, false)
	if err != nil {
		return badRequest(c, "VALIDATION", "startDate inválido")
	}
	end, err := parseDate(endStr, true)
	if err != nil {
		return badRequest(c, "VALIDATION", "endDate inválido")
	}
	out, err := h.uc.FindBySaleDateBetween(c.UserContext(), start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	out, err := h.uc.FindByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "venta no encontrada")
	}
	return c.JSON(out)
}

// ListByUser godoc
// @Summary      Listar ventas de un vendedor
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales/user/{userId} [get]
func (h *SaleHandler) ListByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return badRequest(c, "MISSING_ID", "userId es requerido")
	}
	out, err := h.uc.FindByUserID(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// parseDate acepta RFC 3339 o fecha simple YYYY-MM-DD. Para el fin del rango,
// una fecha simple cubre el día completo (23:59:59).
func parseDate(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return t, nil
}
