package entity

import "time"

// Author autor de un libro.
type Author struct {
	ID        string
	Name      string // único
	CreatedAt time.Time
}

// Category categoría del catálogo.
type Category struct {
	ID        string
	Name      string // único
	CreatedAt time.Time
}

// Editorial casa editorial.
type Editorial struct {
	ID        string
	Name      string // único
	CreatedAt time.Time
}
