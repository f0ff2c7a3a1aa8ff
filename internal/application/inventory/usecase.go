package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sairmh/libreria-api/internal/application/dto"
	"github.com/sairmh/libreria-api/internal/domain"
	"github.com/sairmh/libreria-api/internal/domain/entity"
	"github.com/sairmh/libreria-api/internal/domain/repository"
)

// StockMovementUseCase registra y corrige movimientos de stock de forma
// transaccional, con bloqueo de fila (SELECT FOR UPDATE) sobre el producto.
// Es, junto con el motor de ventas, la única vía de mutación de Product.Stock.
type StockMovementUseCase struct {
	txRunner    TxRunner
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

// NewStockMovementUseCase construye el caso de uso.
func NewStockMovementUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) *StockMovementUseCase {
	return &StockMovementUseCase{txRunner: txRunner, movRepo: movRepo, productRepo: productRepo}
}

// quantityOf normaliza la cantidad del request: ausente cuenta como cero
// (movimiento nulo permitido pero registrado); negativa es entrada inválida.
func quantityOf(in dto.StockMovementRequest) (int, error) {
	if in.Quantity == nil {
		return 0, nil
	}
	if *in.Quantity < 0 {
		return 0, domain.ErrInvalidInput
	}
	return *in.Quantity, nil
}

// applyMovement calcula el stock resultante de aplicar el movimiento sobre base.
// Para OUT valida suficiencia e incluye el título del producto en el error.
func applyMovement(base int, movType string, quantity int, title string) (int, error) {
	switch movType {
	case entity.MovementTypeIN:
		return base + quantity, nil
	case entity.MovementTypeOUT:
		if base < quantity {
			return 0, fmt.Errorf("%w para el producto %s", domain.ErrInsufficientStock, title)
		}
		return base - quantity, nil
	default:
		return 0, domain.ErrUnsupportedMovementType
	}
}

// reverseMovement deshace el efecto de un movimiento ya aplicado sobre base.
// Revertir un IN puede dejar stock negativo si ventas posteriores consumieron
// esas unidades; eso se rechaza para preservar el invariante stock >= 0.
func reverseMovement(base int, movType string, quantity int, title string) (int, error) {
	switch movType {
	case entity.MovementTypeIN:
		if base < quantity {
			return 0, fmt.Errorf("%w para el producto %s: la reversión dejaría stock negativo", domain.ErrInsufficientStock, title)
		}
		return base - quantity, nil
	case entity.MovementTypeOUT:
		return base + quantity, nil
	default:
		return 0, domain.ErrUnsupportedMovementType
	}
}

// RegisterMovement carga el producto con bloqueo de fila, aplica ±cantidad según
// el tipo, rechaza salidas que dejarían stock negativo y persiste producto y
// movimiento en una sola transacción.
func (uc *StockMovementUseCase) RegisterMovement(ctx context.Context, in dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrUnsupportedMovementType
	}
	quantity, err := quantityOf(in)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	movement := &entity.StockMovement{
		ID:           uuid.New().String(),
		ProductID:    in.ProductID,
		Type:         in.Type,
		Quantity:     quantity,
		Reason:       in.Reason,
		MovementDate: now,
	}

	var productTitle string
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		productTitle = product.Title

		newStock, err := applyMovement(product.Stock, in.Type, quantity, product.Title)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateStock(ctx, product.ID, newStock); err != nil {
			return err
		}
		return movRepo.Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(movement, productTitle), nil
}

// UpdateMovement corrige un movimiento existente: revierte el efecto original
// sobre el producto original, re-aplica el nuevo efecto sobre el producto
// destino (posiblemente otro) re-validando suficiencia, y persiste ambos
// productos y el movimiento en una sola transacción. La reversión se persiste
// antes de calcular el nuevo efecto, de modo que un cambio sobre el mismo
// producto parte del valor ya revertido y nunca se cuenta doble.
func (uc *StockMovementUseCase) UpdateMovement(ctx context.Context, id string, in dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	if id == "" || in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrUnsupportedMovementType
	}
	newQuantity, err := quantityOf(in)
	if err != nil {
		return nil, err
	}

	var updated *entity.StockMovement
	var productTitle string
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		movement, err := movRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if movement == nil {
			return domain.ErrNotFound
		}

		oldProduct, err := productRepo.GetForUpdate(ctx, movement.ProductID)
		if err != nil {
			return err
		}
		if oldProduct == nil {
			return domain.ErrNotFound
		}

		reversed, err := reverseMovement(oldProduct.Stock, movement.Type, movement.Quantity, oldProduct.Title)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateStock(ctx, oldProduct.ID, reversed); err != nil {
			return err
		}

		// El destino puede ser el mismo producto: se relee tras persistir la
		// reversión para partir del valor ya revertido.
		newProduct := oldProduct
		base := reversed
		if in.ProductID != oldProduct.ID {
			newProduct, err = productRepo.GetForUpdate(ctx, in.ProductID)
			if err != nil {
				return err
			}
			if newProduct == nil {
				return domain.ErrNotFound
			}
			base = newProduct.Stock
		}

		newStock, err := applyMovement(base, in.Type, newQuantity, newProduct.Title)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateStock(ctx, newProduct.ID, newStock); err != nil {
			return err
		}
		productTitle = newProduct.Title

		movement.ProductID = in.ProductID
		movement.Type = in.Type
		movement.Quantity = newQuantity
		movement.Reason = in.Reason
		movement.MovementDate = time.Now()
		if err := movRepo.Update(ctx, movement); err != nil {
			return err
		}
		updated = movement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(updated, productTitle), nil
}

// ListAll lista todos los movimientos de stock.
func (uc *StockMovementUseCase) ListAll(ctx context.Context) ([]dto.StockMovementResponse, error) {
	movements, err := uc.movRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return uc.toMovementResponses(ctx, movements)
}

// ListByProduct lista los movimientos de un producto.
func (uc *StockMovementUseCase) ListByProduct(ctx context.Context, productID string) ([]dto.StockMovementResponse, error) {
	movements, err := uc.movRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return uc.toMovementResponses(ctx, movements)
}

// GetByID obtiene un movimiento por ID. Devuelve nil si no existe.
func (uc *StockMovementUseCase) GetByID(ctx context.Context, id string) (*dto.StockMovementResponse, error) {
	movement, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, nil
	}
	title := ""
	if product, err := uc.productRepo.GetByID(ctx, movement.ProductID); err == nil && product != nil {
		title = product.Title
	}
	return toMovementResponse(movement, title), nil
}

func (uc *StockMovementUseCase) toMovementResponses(ctx context.Context, movements []*entity.StockMovement) ([]dto.StockMovementResponse, error) {
	// Resolución explícita de títulos: una lectura por producto, sin lazy loading.
	titles := make(map[string]string)
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		title, ok := titles[m.ProductID]
		if !ok {
			if product, err := uc.productRepo.GetByID(ctx, m.ProductID); err == nil && product != nil {
				title = product.Title
			}
			titles[m.ProductID] = title
		}
		out = append(out, *toMovementResponse(m, title))
	}
	return out, nil
}

func toMovementResponse(m *entity.StockMovement, productTitle string) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		ProductTitle: productTitle,
		Type:         m.Type,
		Quantity:     m.Quantity,
		Reason:       m.Reason,
		MovementDate: m.MovementDate,
	}
}
