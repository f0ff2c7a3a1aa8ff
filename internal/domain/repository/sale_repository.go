package repository

import (
	"context"
	"time"

	"github.com/sairmh/libreria-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia para Sale y sus ítems.
// Create persiste cabecera e ítems juntos; los métodos de lectura devuelven la
// venta con sus ítems ya cargados (carga explícita, sin lazy loading).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	List(ctx context.Context) ([]*entity.Sale, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Sale, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Sale, error)
}
