package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sairmh/libreria-api/internal/application/dto"
	"github.com/sairmh/libreria-api/internal/domain"
	"github.com/sairmh/libreria-api/internal/domain/entity"
	"github.com/sairmh/libreria-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// SaleUseCase registra ventas multi-ítem en dos fases dentro de una
// transacción: primero se valida todo (vendedor, productos, suficiencia de
// stock línea a línea, monto pagado), y solo después se muta todo (descuento
// de stock por línea + persistencia de la venta). Así una venta nunca queda a
// medias con algunos productos descontados y otros rechazados.
type SaleUseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
	userRepo repository.UserRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository, userRepo repository.UserRepository) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, saleRepo: saleRepo, userRepo: userRepo}
}

// RegisterSale valida y registra una venta. El precio unitario de cada línea es
// el precio de catálogo vigente (nunca el enviado por el cliente) y queda
// congelado en el ítem.
func (uc *SaleUseCase) RegisterSale(ctx context.Context, in dto.RegisterSaleRequest) (*dto.SaleResponse, error) {
	if in.UserID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	user, err := uc.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:         uuid.New().String(),
		UserID:     in.UserID,
		SaleDate:   now,
		AmountPaid: in.AmountPaid,
	}

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error {
		// Fase 1: resolver y bloquear cada producto, validar stock por línea y
		// acumular el total. Ninguna escritura ocurre todavía. Las cantidades se
		// acumulan por producto para que un mismo libro repetido en varias
		// líneas se valide contra el stock agregado, no línea a línea.
		products := make(map[string]*entity.Product)
		required := make(map[string]int)
		total := decimal.Zero
		for _, item := range in.Items {
			product, ok := products[item.ProductID]
			if !ok {
				var err error
				product, err = productRepo.GetForUpdate(ctx, item.ProductID)
				if err != nil {
					return err
				}
				if product == nil {
					return domain.ErrNotFound
				}
				products[item.ProductID] = product
			}
			required[item.ProductID] += item.Quantity
			if product.Stock < required[item.ProductID] {
				return fmt.Errorf("%w para el producto %s", domain.ErrInsufficientStock, product.Title)
			}

			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(lineTotal)
			sale.Items = append(sale.Items, &entity.SaleItem{
				ID:         uuid.New().String(),
				SaleID:     sale.ID,
				ProductID:  product.ID,
				Quantity:   item.Quantity,
				UnitPrice:  product.Price,
				TotalPrice: lineTotal,
			})
		}

		if in.AmountPaid.LessThan(total) {
			return domain.ErrInsufficientPayment
		}
		sale.Total = total
		sale.Change = in.AmountPaid.Sub(total)

		// Fase 2: todas las validaciones pasaron; descontar stock y persistir.
		for productID, quantity := range required {
			if err := productRepo.UpdateStock(ctx, productID, products[productID].Stock-quantity); err != nil {
				return err
			}
		}
		return saleRepo.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// FindAll lista todas las ventas.
func (uc *SaleUseCase) FindAll(ctx context.Context) ([]dto.SaleResponse, error) {
	sales, err := uc.saleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(sales), nil
}

// FindByID obtiene una venta por ID. Devuelve nil si no existe.
func (uc *SaleUseCase) FindByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	return toSaleResponse(sale), nil
}

// FindByUserID lista las ventas de un vendedor.
func (uc *SaleUseCase) FindByUserID(ctx context.Context, userID string) ([]dto.SaleResponse, error) {
	sales, err := uc.saleRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(sales), nil
}

// FindBySaleDateBetween lista las ventas en el rango [start, end].
func (uc *SaleUseCase) FindBySaleDateBetween(ctx context.Context, start, end time.Time) ([]dto.SaleResponse, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	sales, err := uc.saleRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(sales), nil
}

func toSaleResponses(sales []*entity.Sale) []dto.SaleResponse {
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, *toSaleResponse(s))
	}
	return out
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:         s.ID,
		UserID:     s.UserID,
		SaleDate:   s.SaleDate,
		Total:      s.Total,
		AmountPaid: s.AmountPaid,
		Change:     s.Change,
		Items:      make([]dto.SaleItemResponse, 0, len(s.Items)),
	}
	for _, item := range s.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}
	return resp
}
