package dto

import "time"

// CreateNamedRequest entrada genérica para autores, categorías y editoriales.
type CreateNamedRequest struct {
	Name string `json:"name"`
}

// NamedResponse salida genérica para autores, categorías y editoriales.
type NamedResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
