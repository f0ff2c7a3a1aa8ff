package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sairmh/libreria-api/internal/application/dto"
	"github.com/sairmh/libreria-api/internal/domain"
)

// fail traduce errores de dominio a respuestas HTTP. Las validaciones de
// negocio (stock insuficiente, pago insuficiente, tipo no soportado, rol
// protegido) son 400; recurso ausente 404; credenciales 401; cuenta
// desactivada 403; todo lo demás 500 sin filtrar detalles internos.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return status(c, fiber.StatusBadRequest, "VALIDATION", err)
	case errors.Is(err, domain.ErrInsufficientStock):
		return status(c, fiber.StatusBadRequest, "INSUFFICIENT_STOCK", err)
	case errors.Is(err, domain.ErrInsufficientPayment):
		return status(c, fiber.StatusBadRequest, "INSUFFICIENT_PAYMENT", err)
	case errors.Is(err, domain.ErrUnsupportedMovementType):
		return status(c, fiber.StatusBadRequest, "UNSUPPORTED_MOVEMENT_TYPE", err)
	case errors.Is(err, domain.ErrProtectedRole):
		return status(c, fiber.StatusBadRequest, "PROTECTED_ROLE", err)
	case errors.Is(err, domain.ErrDuplicate):
		return status(c, fiber.StatusBadRequest, "DUPLICATE", err)
	case errors.Is(err, domain.ErrUserNotFound):
		return status(c, fiber.StatusNotFound, "USER_NOT_FOUND", err)
	case errors.Is(err, domain.ErrNotFound):
		return status(c, fiber.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, domain.ErrUnauthorized):
		return status(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err)
	case errors.Is(err, domain.ErrForbidden):
		return status(c, fiber.StatusForbidden, "FORBIDDEN", err)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "error interno",
		})
	}
}

func status(c *fiber.Ctx, code int, errCode string, err error) error {
	return c.Status(code).JSON(dto.ErrorResponse{Code: errCode, Message: err.Error()})
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: message})
}
