package repository

import (
	"context"

	"github.com/sairmh/libreria-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para Product (DIP).
// GetForUpdate solo tiene sentido dentro de una transacción (SELECT FOR UPDATE);
// UpdateStock es la única vía de escritura del stock y la usan exclusivamente el
// libro de inventario y el motor de ventas.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, productID string, stock int) error
	List(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}
