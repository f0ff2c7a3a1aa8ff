package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sairmh/libreria-api/internal/application/dto"
	"github.com/sairmh/libreria-api/internal/application/sales"
	"github.com/sairmh/libreria-api/internal/domain"
	"github.com/sairmh/libreria-api/internal/domain/entity"
	"github.com/sairmh/libreria-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, productID string, stock int) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) (bool, error) {
	_, ok := r.products[id]
	delete(r.products, id)
	return ok, nil
}

func (r *fakeProductRepo) stockOf(t *testing.T, id string) int {
	t.Helper()
	p, ok := r.products[id]
	require.True(t, ok, "el producto %s debe existir", id)
	return p.Stock
}

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[string]*entity.Sale)}
}

func (r *fakeSaleRepo) Create(_ context.Context, s *entity.Sale) error {
	r.sales[s.ID] = s
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (r *fakeSaleRepo) List(_ context.Context) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSaleRepo) ListByUser(_ context.Context, userID string) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0)
	for _, s := range r.sales {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) ListByDateRange(_ context.Context, start, end time.Time) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0)
	for _, s := range r.sales {
		if !s.SaleDate.Before(start) && !s.SaleDate.After(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, err := r.GetByUsername(ctx, username)
	return u != nil, err
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) (bool, error) {
	_, ok := r.users[id]
	delete(r.users, id)
	return ok, nil
}

// fakeSaleTxRunner ejecuta la función directamente contra los repos en memoria.
type fakeSaleTxRunner struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

func (r *fakeSaleTxRunner) RunSale(_ context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.saleRepo, r.productRepo)
}

func precio(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func libro(id, title string, stock int, price string) *entity.Product {
	return &entity.Product{ID: id, Title: title, Stock: stock, Price: precio(price), Active: true}
}

func vendedor(id string) *entity.User {
	return &entity.User{ID: id, Username: "vendedor1", Active: true}
}

func buildUseCase(products *fakeProductRepo, saleRepo *fakeSaleRepo, users *fakeUserRepo) *sales.SaleUseCase {
	runner := &fakeSaleTxRunner{saleRepo: saleRepo, productRepo: products}
	return sales.NewSaleUseCase(runner, saleRepo, users)
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterSale
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterSale_VentaMultiItem(t *testing.T) {
	products := newFakeProductRepo(
		libro("p1", "Cien Años de Soledad", 10, "25.50"),
		libro("p2", "Rayuela", 5, "18.00"),
	)
	saleRepo := newFakeSaleRepo()
	uc := buildUseCase(products, saleRepo, newFakeUserRepo(vendedor("u1")))

	resp, err := uc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		UserID: "u1",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
		AmountPaid: precio("100.00"),
	})
	require.NoError(t, err)

	// Total = 2*25.50 + 1*18.00 = 69.00; vuelto = 31.00.
	assert.True(t, precio("69.00").Equal(resp.Total), "total esperado 69.00, fue %s", resp.Total)
	assert.True(t, precio("31.00").Equal(resp.Change), "vuelto esperado 31.00, fue %s", resp.Change)
	require.Len(t, resp.Items, 2)

	assert.Equal(t, 8, products.stockOf(t, "p1"))
	assert.Equal(t, 4, products.stockOf(t, "p2"))

	guardadas, _ := saleRepo.List(context.Background())
	assert.Len(t, guardadas, 1, "la venta debe quedar persistida")
}

func TestRegisterSale_PrecioSiempreDelCatalogo(t *testing.T) {
	products := newFakeProductRepo(libro("p1", "Ficciones", 10, "30.00"))
	uc := buildUseCase(products, newFakeSaleRepo(), newFakeUserRepo(vendedor("u1")))

	resp, err := uc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		UserID:     "u1",
		Items:      []dto.SaleItemRequest{{ProductID: "p1", Quantity: 3}},
		AmountPaid: precio("90.00"),
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.True(t, precio("30.00").Equal(resp.Items[0].UnitPrice),
		"el precio unitario debe ser el de catálogo")
	assert.True(t, precio("90.00").Equal(resp.Items[0].TotalPrice))
	assert.True(t, resp.Change.IsZero(), "pago exacto: vuelto cero")
}

func TestRegisterSale_StockInsuficienteNoCommitParcial(t *testing.T) {
	// La segunda línea falla por stock: la primera, ya validada, tampoco debe
	// descontarse y la venta no debe persistirse.
	products := newFakeProductRepo(
		libro("p1", "El Aleph", 10, "10.00"),
		libro("p2", "Pedro Páramo", 1, "12.00"),
	)
	saleRepo := newFakeSaleRepo()
	uc := buildUseCase(products, saleRepo, newFakeUserRepo(vendedor("u1")))

	_, err := uc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		UserID: "u1",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 3},
		},
		AmountPaid: precio("100.00"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Pedro Páramo", "el error debe nombrar el producto que falló")

	assert.Equal(t, 10, products.stockOf(t, "p1"), "ninguna línea debe descontarse")
	assert.Equal(t, 1, products.stockOf(t, "p2"))
	guardadas, _ := saleRepo.List(context.Background())
	assert.Empty(t, guardadas)
}

func TestRegisterSale_ProductoRepetidoSeValidaAgregado(t *testing.T) {
	// Dos líneas de 3 sobre stock 5: línea a línea pasarían, pero el agregado
	// (6) excede el stock y debe rechazarse.
	products := newFakeProductRepo(libro("p1", "Rayuela", 5, "10.00"))
	uc := buildUseCase(products, newFakeSaleRepo(), newFakeUserRepo(vendedor("u1")))

	_, err := uc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		UserID: "u1",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p1", Quantity: 3},
		},
		AmountPaid: precio("100.00"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, products.stockOf(t, "p1"))
}

func TestRegisterSale_ProductoRepetidoDentroDelStock(t *testing.T) {
	products := newFakeProductRepo(libro("p1", "Rayuela", 6, "10.00"))
	uc := buildUseCase(products, newFakeSaleRepo(), newFakeUserRepo(vendedor("u1")))

	resp, err := uc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		UserID: "u1",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p1", Quantity: 3},
		},
		AmountPaid: precio("60.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, products.stockOf(t, "p1"), "el descuento agregado debe ser 6")
	assert.Len(t, resp.Items, 2, "cada línea conserva su ítem propio")
	assert.True(t, precio("60.00").Equal(resp.Total))
}

func TestRegisterSale_PagoInsuficiente(t *testing.T) {
	products := newFakeProductRepo(libro("p1", "2666", 10, "40.00"))
	saleRepo := newFakeSaleRepo()
	uc := buildUseCase(products, saleRepo, newFakeUserRepo(vendedor("u1")))

	_, err := uc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		UserID:     "u1",
		Items:      []dto.SaleItemRequest{{ProductID: "p1", Quantity: 2}},
		AmountPaid: precio("50.00"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientPayment)

	assert.Equal(t, 10, products.stockOf(t, "p1"), "el stock no debe cambiar")
	guardadas, _ := saleRepo.List(context.Background())
	assert.Empty(t, guardadas)
}

func TestRegisterSale_VendedorInexistente(t *testing.T) {
	uc := buildUseCase(
		newFakeProductRepo(libro("p1", "2666", 10, "40.00")),
		newFakeSaleRepo(),
		newFakeUserRepo(),
	)

	_, err := uc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		UserID:     "fantasma",
		Items:      []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
		AmountPaid: precio("40.00"),
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegisterSale_EntradasInvalidas(t *testing.T) {
	uc := buildUseCase(
		newFakeProductRepo(libro("p1", "2666", 10, "40.00")),
		newFakeSaleRepo(),
		newFakeUserRepo(vendedor("u1")),
	)

	casos := []dto.RegisterSaleRequest{
		{UserID: "u1", Items: nil, AmountPaid: precio("10.00")},
		{UserID: "", Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}}},
		{UserID: "u1", Items: []dto.SaleItemRequest{{ProductID: "", Quantity: 1}}},
		{UserID: "u1", Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 0}}},
		{UserID: "u1", Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: -1}}},
	}
	for _, in := range casos {
		_, err := uc.RegisterSale(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestFindBySaleDateBetween_RangoInvertidoRechazado(t *testing.T) {
	uc := buildUseCase(newFakeProductRepo(), newFakeSaleRepo(), newFakeUserRepo())

	end := time.Now()
	start := end.Add(24 * time.Hour)
	_, err := uc.FindBySaleDateBetween(context.Background(), start, end)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFindByID_VentaInexistenteDevuelveNil(t *testing.T) {
	uc := buildUseCase(newFakeProductRepo(), newFakeSaleRepo(), newFakeUserRepo())

	resp, err := uc.FindByID(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.Nil(t, resp)
}
