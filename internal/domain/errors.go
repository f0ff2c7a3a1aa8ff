package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrUserNotFound            = errors.New("usuario no encontrado")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrDuplicate               = errors.New("recurso duplicado")
	ErrUnauthorized            = errors.New("no autorizado")
	ErrForbidden               = errors.New("acceso denegado")
	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrInsufficientPayment     = errors.New("el monto entregado no cubre el total de la venta")
	ErrProtectedRole           = errors.New("el rol está protegido y no puede eliminarse")
	ErrUnsupportedMovementType = errors.New("tipo de movimiento no soportado")
)
