package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un libro del catálogo.
// Stock es una cantidad derivada-pero-almacenada: su valor siempre es el efecto neto
// de los movimientos de stock y las ventas registradas. Solo lo mutan el libro de
// inventario y el motor de ventas, nunca un update directo de catálogo.
type Product struct {
	ID              string
	Title           string
	ISBN            string // único
	Code            string // código interno, único
	Description     string
	ImageURL        string
	AuthorID        string
	CategoryID      string
	EditorialID     string
	Price           decimal.Decimal
	Stock           int // nunca negativo tras un commit
	PublicationDate *time.Time
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
