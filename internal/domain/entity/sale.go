package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta registrada por un vendedor. Se persiste siempre junto a sus ítems:
// Total == suma de TotalPrice de los ítems, AmountPaid >= Total y
// Change == AmountPaid - Total.
type Sale struct {
	ID         string
	UserID     string // vendedor
	SaleDate   time.Time
	Total      decimal.Decimal
	AmountPaid decimal.Decimal
	Change     decimal.Decimal
	Items      []*SaleItem
}

// SaleItem línea de venta. UnitPrice es el precio de catálogo al momento de la
// venta; cambios posteriores del precio del producto no lo afectan.
type SaleItem struct {
	ID         string
	SaleID     string
	ProductID  string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}
