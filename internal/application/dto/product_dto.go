package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// El stock inicial se acepta aquí; a partir de entonces solo lo mueven el libro
// de inventario y las ventas.
type CreateProductRequest struct {
	Title           string          `json:"title"`
	ISBN            string          `json:"isbn"`
	Code            string          `json:"code"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"image_url"`
	AuthorID        string          `json:"author_id"`
	CategoryID      string          `json:"category_id"`
	EditorialID     string          `json:"editorial_id"`
	Price           decimal.Decimal `json:"price"`
	Stock           int             `json:"stock"`
	PublicationDate *time.Time      `json:"publication_date"`
	Active          *bool           `json:"active"`
}

// UpdateProductRequest entrada para actualizar un producto (no toca Stock).
type UpdateProductRequest struct {
	Title           *string          `json:"title"`
	ISBN            *string          `json:"isbn"`
	Code            *string          `json:"code"`
	Description     *string          `json:"description"`
	ImageURL        *string          `json:"image_url"`
	AuthorID        *string          `json:"author_id"`
	CategoryID      *string          `json:"category_id"`
	EditorialID     *string          `json:"editorial_id"`
	Price           *decimal.Decimal `json:"price"`
	PublicationDate *time.Time       `json:"publication_date"`
	Active          *bool            `json:"active"`
}

// ProductResponse salida de un producto con sus referencias resueltas.
type ProductResponse struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	ISBN            string          `json:"isbn"`
	Code            string          `json:"code"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"image_url"`
	AuthorID        string          `json:"author_id"`
	AuthorName      string          `json:"author_name,omitempty"`
	CategoryID      string          `json:"category_id"`
	CategoryName    string          `json:"category_name,omitempty"`
	EditorialID     string          `json:"editorial_id"`
	EditorialName   string          `json:"editorial_name,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Stock           int             `json:"stock"`
	PublicationDate *time.Time      `json:"publication_date,omitempty"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
