package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta solicitada. El precio no se acepta del
// cliente: siempre se toma del catálogo al registrar.
type SaleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// RegisterSaleRequest entrada para registrar una venta multi-ítem.
type RegisterSaleRequest struct {
	UserID     string            `json:"user_id"`
	Items      []SaleItemRequest `json:"items"`
	AmountPaid decimal.Decimal   `json:"amount_paid"`
}

// SaleItemResponse línea de venta persistida.
type SaleItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// SaleResponse venta persistida con sus ítems.
type SaleResponse struct {
	ID         string             `json:"id"`
	UserID     string             `json:"user_id"`
	SaleDate   time.Time          `json:"sale_date"`
	Total      decimal.Decimal    `json:"total"`
	AmountPaid decimal.Decimal    `json:"amount_paid"`
	Change     decimal.Decimal    `json:"change"`
	Items      []SaleItemResponse `json:"items"`
}
