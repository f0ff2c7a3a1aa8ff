package dto

import "time"

// StockMovementRequest entrada para crear o actualizar un movimiento de stock.
// Quantity ausente se trata como cero (movimiento nulo, permitido y registrado).
type StockMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"` // IN | OUT
	Quantity  *int   `json:"quantity"`
	Reason    string `json:"reason"`
}

// StockMovementResponse salida de un movimiento de stock.
type StockMovementResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductTitle string    `json:"product_title,omitempty"`
	Type         string    `json:"type"`
	Quantity     int       `json:"quantity"`
	Reason       string    `json:"reason"`
	MovementDate time.Time `json:"movement_date"`
}
