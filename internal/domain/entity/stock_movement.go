package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// ValidMovementType indica si el tipo pertenece al conjunto cerrado IN/OUT.
func ValidMovementType(t string) bool {
	return t == MovementTypeIN || t == MovementTypeOUT
}

// StockMovement registro de un cambio de stock sobre un producto.
// Quantity es siempre >= 0; el signo lo da Type. Una cantidad cero es un
// movimiento nulo permitido: no altera stock pero queda registrado.
type StockMovement struct {
	ID           string
	ProductID    string
	Type         string // IN | OUT
	Quantity     int
	Reason       string
	MovementDate time.Time
}
