package sales

import (
	"context"

	"github.com/sairmh/libreria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del motor de ventas atados a esa tx. O se confirman juntos la
// venta, sus ítems y todos los descuentos de stock, o no se confirma nada.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error) error
}
