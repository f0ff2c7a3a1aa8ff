package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sairmh/libreria-api/internal/application/usecase"
)

// ReportHandler maneja las peticiones HTTP de reportes (protegido).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// TopProducts godoc
// @Summary      Productos más vendidos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductSalesReportResponse
// @Router       /api/reports/top-products [get]
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	out, err := h.uc.TopSellingProducts(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// TopProductsPDF godoc
// @Summary      Productos más vendidos (PDF)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/top-products/pdf [get]
func (h *ReportHandler) TopProductsPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.TopSellingProductsPDF(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="productos-mas-vendidos.pdf"`)
	return c.Send(pdfBytes)
}
