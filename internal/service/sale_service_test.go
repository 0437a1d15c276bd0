package service

import (
	"context"
	"testing"
	"time"

	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/model"
	"github.com/Sergiom84/Lucy3000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory SaleRepository ─────────────────────────────────────────────────

type fakeSaleRepo struct {
	sales   map[uuid.UUID]*model.Sale
	nextNum int64
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *fakeSaleRepo) DB() *gorm.DB { return nil }

func (r *fakeSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	r.sales[s.ID] = s
	return nil
}

func (r *fakeSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeSaleRepo) UpdateStatusTx(_ context.Context, _ *gorm.DB, id uuid.UUID, status string) error {
	s, ok := r.sales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Status = status
	return nil
}

func (r *fakeSaleRepo) NextSaleNumber(_ context.Context, _ *gorm.DB) (int64, error) {
	r.nextNum++
	return r.nextNum, nil
}

func (r *fakeSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	all := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		all = append(all, *s)
	}
	return all, int64(len(all)), nil
}

func (r *fakeSaleRepo) ListByClient(_ context.Context, clientID uuid.UUID, _ int) ([]model.Sale, error) {
	var result []model.Sale
	for _, s := range r.sales {
		if s.ClientID != nil && *s.ClientID == clientID {
			result = append(result, *s)
		}
	}
	return result, nil
}

var _ repository.SaleRepository = (*fakeSaleRepo)(nil)

// ── In-memory ProductRepository ──────────────────────────────────────────────

type fakeProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *fakeProductRepo) DB() *gorm.DB { return nil }

func (r *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Barcode != nil && *p.Barcode == barcode && p.IsActive {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.IsActive = false
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	all := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, *p)
	}
	return all, int64(len(all)), nil
}

func (r *fakeProductRepo) ListLowStock(_ context.Context) ([]model.Product, error) {
	var result []model.Product
	for _, p := range r.products {
		if p.IsActive && p.Stock <= p.MinStock {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *fakeProductRepo) DecrementStockTx(_ context.Context, _ *gorm.DB, id uuid.UUID, qty int) (int, bool, error) {
	p, ok := r.products[id]
	if !ok {
		return 0, false, nil
	}
	// Same guard the SQL carries: stock >= qty or no row updated
	if p.Stock < qty {
		return 0, false, nil
	}
	p.Stock -= qty
	return p.Stock, true, nil
}

func (r *fakeProductRepo) IncrementStockTx(_ context.Context, _ *gorm.DB, id uuid.UUID, qty int) (int, error) {
	p, ok := r.products[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	p.Stock += qty
	return p.Stock, nil
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

// ── In-memory ClientRepository ───────────────────────────────────────────────

type fakeClientRepo struct {
	clients map[uuid.UUID]*model.Client
	history []model.ClientHistory
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*model.Client)}
}

func (r *fakeClientRepo) DB() *gorm.DB { return nil }

func (r *fakeClientRepo) Create(_ context.Context, c *model.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeClientRepo) Update(_ context.Context, c *model.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	c, ok := r.clients[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.IsActive = false
	return nil
}

func (r *fakeClientRepo) List(_ context.Context, _ dto.ClientFilter) ([]model.Client, int64, error) {
	all := make([]model.Client, 0, len(r.clients))
	for _, c := range r.clients {
		all = append(all, *c)
	}
	return all, int64(len(all)), nil
}

func (r *fakeClientRepo) CreateHistory(_ context.Context, h *model.ClientHistory) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.history = append(r.history, *h)
	return nil
}

func (r *fakeClientRepo) ListHistory(_ context.Context, clientID uuid.UUID) ([]model.ClientHistory, error) {
	var result []model.ClientHistory
	for _, h := range r.history {
		if h.ClientID == clientID {
			result = append(result, h)
		}
	}
	return result, nil
}

func (r *fakeClientRepo) AddSpendTx(_ context.Context, _ *gorm.DB, clientID uuid.UUID, amount decimal.Decimal, points int64) error {
	c, ok := r.clients[clientID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.TotalSpent = c.TotalSpent.Add(amount)
	// GREATEST(loyalty_points + ?, 0)
	c.LoyaltyPoints += int(points)
	if c.LoyaltyPoints < 0 {
		c.LoyaltyPoints = 0
	}
	return nil
}

func (r *fakeClientRepo) FindBirthdays(_ context.Context, month, day int) ([]model.Client, error) {
	var result []model.Client
	for _, c := range r.clients {
		if c.BirthDate != nil && int(c.BirthDate.Month()) == month && c.BirthDate.Day() == day {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (r *fakeClientRepo) FindBirthdaysInMonth(_ context.Context, month int) ([]model.Client, error) {
	var result []model.Client
	for _, c := range r.clients {
		if c.BirthDate != nil && int(c.BirthDate.Month()) == month {
			result = append(result, *c)
		}
	}
	return result, nil
}

var _ repository.ClientRepository = (*fakeClientRepo)(nil)

// ── In-memory StockMovementRepository ────────────────────────────────────────

type fakeStockRepo struct {
	movements []model.StockMovement
}

func (r *fakeStockRepo) Create(_ context.Context, m *model.StockMovement) error {
	return r.CreateTx(context.Background(), nil, m)
}

func (r *fakeStockRepo) CreateTx(_ context.Context, _ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *fakeStockRepo) ListByProduct(_ context.Context, productID uuid.UUID, _ int) ([]model.StockMovement, error) {
	var result []model.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			result = append(result, m)
		}
	}
	return result, nil
}

var _ repository.StockMovementRepository = (*fakeStockRepo)(nil)

// ── Fixture ──────────────────────────────────────────────────────────────────

type saleFixture struct {
	svc      SaleService
	sales    *fakeSaleRepo
	products *fakeProductRepo
	clients  *fakeClientRepo
	stock    *fakeStockRepo
	cash     *fakeCashRepo
}

func newSaleFixture() *saleFixture {
	f := &saleFixture{
		sales:    newFakeSaleRepo(),
		products: newFakeProductRepo(),
		clients:  newFakeClientRepo(),
		stock:    &fakeStockRepo{},
		cash:     newFakeCashRepo(),
	}
	f.svc = NewSaleService(f.sales, f.products, f.clients, f.stock, f.cash, nil, "V")
	return f
}

func (f *saleFixture) addProduct(t *testing.T, name string, price float64, stock int) *model.Product {
	t.Helper()
	p := &model.Product{
		SKU: "SKU-" + name, Name: name, Category: "retail",
		Price: decimal.NewFromFloat(price), Cost: decimal.NewFromFloat(price / 2),
		Stock: stock, MinStock: 1, IsActive: true,
	}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func (f *saleFixture) addClient(t *testing.T) *model.Client {
	t.Helper()
	c := &model.Client{FirstName: "Maria", LastName: "Lopez", IsActive: true}
	require.NoError(t, f.clients.Create(context.Background(), c))
	return c
}

// ── Pure computations ────────────────────────────────────────────────────────

func TestComputeTotals(t *testing.T) {
	items := []dto.SaleItemRequest{
		{Description: "Shampoo", Quantity: 2, Price: decimal.NewFromInt(10)},
		{Description: "Haircut", Quantity: 1, Price: decimal.NewFromInt(5)},
	}

	subtotal, discount, total, err := ComputeTotals(items, decimal.NewFromInt(10), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "25", subtotal.String())
	assert.Equal(t, "2.5", discount.String())
	assert.Equal(t, "22.5", total.String())
}

func TestComputeTotalsWithTax(t *testing.T) {
	items := []dto.SaleItemRequest{
		{Description: "Treatment", Quantity: 1, Price: decimal.NewFromInt(100)},
	}

	_, _, total, err := ComputeTotals(items, decimal.Zero, decimal.NewFromInt(21))
	require.NoError(t, err)
	assert.Equal(t, "121", total.String())
}

func TestComputeTotalsInvalidDiscount(t *testing.T) {
	items := []dto.SaleItemRequest{
		{Description: "Shampoo", Quantity: 1, Price: decimal.NewFromInt(10)},
	}

	_, _, _, err := ComputeTotals(items, decimal.NewFromInt(-1), decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	_, _, _, err = ComputeTotals(items, decimal.NewFromInt(101), decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestComputeTotalsNegativeTax(t *testing.T) {
	items := []dto.SaleItemRequest{
		{Description: "Shampoo", Quantity: 1, Price: decimal.NewFromInt(10)},
	}

	// A negative tax would drive the total (and everything downstream of it:
	// loyalty, drawer income, reports) negative. Rejected, never computed.
	_, _, _, err := ComputeTotals(items, decimal.Zero, decimal.NewFromInt(-50))
	assert.ErrorIs(t, err, ErrInvalidTax)
}

func TestLoyaltyPoints(t *testing.T) {
	assert.EqualValues(t, 2, LoyaltyPoints(decimal.NewFromFloat(22.50)))
	assert.EqualValues(t, 0, LoyaltyPoints(decimal.NewFromFloat(9.99)))
	assert.EqualValues(t, 10, LoyaltyPoints(decimal.NewFromInt(100)))
	assert.EqualValues(t, 0, LoyaltyPoints(decimal.Zero))
	assert.EqualValues(t, 0, LoyaltyPoints(decimal.NewFromInt(-50)))
}

func TestNextSaleNumber(t *testing.T) {
	assert.Equal(t, "V-000008", NextSaleNumber("V", "V-000007"))
	assert.Equal(t, "V-000001", NextSaleNumber("V", ""))
	assert.Equal(t, "V-001000", NextSaleNumber("V", "V-000999"))
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestCreateSale(t *testing.T) {
	f := newSaleFixture()
	product := f.addProduct(t, "Shampoo", 10, 5)

	pid := product.ID.String()
	resp, err := f.svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: &pid, Description: "Shampoo", Quantity: 2, Price: decimal.NewFromInt(10)},
		},
		PaymentMethod: model.PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, "V-000001", resp.SaleNumber)
	assert.Equal(t, model.SaleCompleted, resp.Status)
	assert.Equal(t, "20", resp.Total.String())

	// Stock decremented with a SALE movement recorded
	assert.Equal(t, 3, product.Stock)
	require.Len(t, f.stock.movements, 1)
	assert.Equal(t, model.StockSale, f.stock.movements[0].Type)
	assert.Equal(t, 5, f.stock.movements[0].StockBefore)
	assert.Equal(t, 3, f.stock.movements[0].StockAfter)
}

func TestCreateSaleNegativeTax(t *testing.T) {
	f := newSaleFixture()

	_, err := f.svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{Description: "Haircut", Quantity: 1, Price: decimal.NewFromInt(10)},
		},
		Tax:           decimal.NewFromInt(-50),
		PaymentMethod: model.PaymentCash,
	})
	assert.ErrorIs(t, err, ErrInvalidTax)
	assert.Empty(t, f.sales.sales)
	assert.Empty(t, f.stock.movements)
}

// contendedProductRepo lets another till drain units right before a decrement
// lands, the way a concurrent sale of the same product would.
type contendedProductRepo struct {
	*fakeProductRepo
	drainQty int
}

func (r *contendedProductRepo) DecrementStockTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, qty int) (int, bool, error) {
	if r.drainQty > 0 {
		_, _, _ = r.fakeProductRepo.DecrementStockTx(ctx, tx, id, r.drainQty)
		r.drainQty = 0
	}
	return r.fakeProductRepo.DecrementStockTx(ctx, tx, id, qty)
}

func TestCreateSaleSnapshotSurvivesConcurrentDecrement(t *testing.T) {
	f := newSaleFixture()
	products := &contendedProductRepo{fakeProductRepo: f.products, drainQty: 3}
	svc := NewSaleService(f.sales, products, f.clients, f.stock, f.cash, nil, "V")

	product := f.addProduct(t, "Shampoo", 10, 10)

	pid := product.ID.String()
	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: &pid, Description: "Shampoo", Quantity: 2, Price: decimal.NewFromInt(10)},
		},
		PaymentMethod: model.PaymentCard,
	})
	require.NoError(t, err)

	// The other till took 3 units first (10 → 7), then this sale took 2
	// (7 → 5). The movement snapshot must reflect the decrement that landed,
	// not the stock level read earlier.
	assert.Equal(t, 5, product.Stock)
	require.Len(t, f.stock.movements, 1)
	assert.Equal(t, 7, f.stock.movements[0].StockBefore)
	assert.Equal(t, 5, f.stock.movements[0].StockAfter)
}

func TestCreateSaleNumbersAreSequential(t *testing.T) {
	f := newSaleFixture()

	for i, want := range []string{"V-000001", "V-000002", "V-000003"} {
		resp, err := f.svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{
				{Description: "Haircut", Quantity: 1, Price: decimal.NewFromInt(15)},
			},
			PaymentMethod: model.PaymentCard,
		})
		require.NoError(t, err, "sale %d", i)
		assert.Equal(t, want, resp.SaleNumber)
	}
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	f := newSaleFixture()
	product := f.addProduct(t, "Serum", 40, 1)

	pid := product.ID.String()
	_, err := f.svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: &pid, Description: "Serum", Quantity: 2, Price: decimal.NewFromInt(40)},
		},
		PaymentMethod: model.PaymentCash,
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCreateSaleInactiveProduct(t *testing.T) {
	f := newSaleFixture()
	product := f.addProduct(t, "Discontinued", 10, 5)
	product.IsActive = false

	pid := product.ID.String()
	_, err := f.svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: &pid, Description: "Discontinued", Quantity: 1, Price: decimal.NewFromInt(10)},
		},
		PaymentMethod: model.PaymentCash,
	})
	assert.ErrorContains(t, err, "inactive")
}

func TestCreateSaleAwardsLoyalty(t *testing.T) {
	f := newSaleFixture()
	client := f.addClient(t)

	cid := client.ID.String()
	resp, err := f.svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		ClientID: &cid,
		Items: []dto.SaleItemRequest{
			{Description: "Color treatment", Quantity: 1, Price: decimal.NewFromFloat(95.50)},
		},
		PaymentMethod: model.PaymentCard,
	})
	require.NoError(t, err)

	// floor(95.50 / 10) = 9
	assert.EqualValues(t, 9, resp.PointsEarned)
	assert.Equal(t, 9, client.LoyaltyPoints)
	assert.Equal(t, "95.5", client.TotalSpent.String())
}

func TestCreateSaleAnonymousEarnsNoPoints(t *testing.T) {
	f := newSaleFixture()

	resp, err := f.svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{Description: "Walk-in haircut", Quantity: 1, Price: decimal.NewFromInt(30)},
		},
		PaymentMethod: model.PaymentCash,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, resp.PointsEarned)
}

func TestCreateCashSaleRecordsDrawerIncome(t *testing.T) {
	f := newSaleFixture()

	// Open a drawer session directly in the fake
	session := &model.CashSession{OpeningBalance: decimal.NewFromInt(100), Status: model.CashOpen}
	require.NoError(t, f.cash.CreateSession(context.Background(), nil, session))

	_, err := f.svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{Description: "Haircut", Quantity: 1, Price: decimal.NewFromInt(35)},
		},
		PaymentMethod: model.PaymentCash,
	})
	require.NoError(t, err)

	require.Len(t, f.cash.movements, 1)
	assert.Equal(t, model.MovementIncome, f.cash.movements[0].Type)
	assert.Equal(t, "35", f.cash.movements[0].Amount.String())
	assert.Equal(t, session.ID, f.cash.movements[0].CashSessionID)
}

func TestCreateCardSaleSkipsDrawer(t *testing.T) {
	f := newSaleFixture()

	session := &model.CashSession{OpeningBalance: decimal.NewFromInt(100), Status: model.CashOpen}
	require.NoError(t, f.cash.CreateSession(context.Background(), nil, session))

	_, err := f.svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{Description: "Haircut", Quantity: 1, Price: decimal.NewFromInt(35)},
		},
		PaymentMethod: model.PaymentCard,
	})
	require.NoError(t, err)
	assert.Empty(t, f.cash.movements)
}

// ── Cancel ───────────────────────────────────────────────────────────────────

func TestCancelRestoresStockAndLoyalty(t *testing.T) {
	f := newSaleFixture()
	product := f.addProduct(t, "Shampoo", 10, 5)
	client := f.addClient(t)

	pid := product.ID.String()
	cid := client.ID.String()
	resp, err := f.svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		ClientID: &cid,
		Items: []dto.SaleItemRequest{
			{ProductID: &pid, Description: "Shampoo", Quantity: 2, Price: decimal.NewFromInt(10)},
		},
		PaymentMethod: model.PaymentCard,
	})
	require.NoError(t, err)
	require.Equal(t, 3, product.Stock)
	require.Equal(t, 2, client.LoyaltyPoints)

	err = f.svc.Cancel(context.Background(), uuid.MustParse(resp.ID), "client returned items")
	require.NoError(t, err)

	assert.Equal(t, 5, product.Stock)
	assert.Equal(t, 0, client.LoyaltyPoints)
	assert.Equal(t, "0", client.TotalSpent.String())

	// SALE + RETURN movements
	require.Len(t, f.stock.movements, 2)
	assert.Equal(t, model.StockReturn, f.stock.movements[1].Type)

	cancelled, err := f.sales.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, model.SaleCancelled, cancelled.Status)
}

func TestCancelCashSaleRecordsRefund(t *testing.T) {
	f := newSaleFixture()

	session := &model.CashSession{OpeningBalance: decimal.NewFromInt(100), Status: model.CashOpen}
	require.NoError(t, f.cash.CreateSession(context.Background(), nil, session))

	resp, err := f.svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{Description: "Haircut", Quantity: 1, Price: decimal.NewFromInt(35)},
		},
		PaymentMethod: model.PaymentCash,
	})
	require.NoError(t, err)

	err = f.svc.Cancel(context.Background(), uuid.MustParse(resp.ID), "charged twice")
	require.NoError(t, err)

	// INCOME then EXPENSE refund
	require.Len(t, f.cash.movements, 2)
	assert.Equal(t, model.MovementExpense, f.cash.movements[1].Type)
	assert.Equal(t, "refund", f.cash.movements[1].Category)
	assert.Equal(t, "35", f.cash.movements[1].Amount.String())
}

func TestCancelTwice(t *testing.T) {
	f := newSaleFixture()

	resp, err := f.svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{Description: "Haircut", Quantity: 1, Price: decimal.NewFromInt(35)},
		},
		PaymentMethod: model.PaymentCard,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Cancel(context.Background(), uuid.MustParse(resp.ID), "duplicate"))
	err = f.svc.Cancel(context.Background(), uuid.MustParse(resp.ID), "duplicate")
	assert.ErrorIs(t, err, ErrSaleCancelled)
}

func TestCancelUnknownSale(t *testing.T) {
	f := newSaleFixture()
	err := f.svc.Cancel(context.Background(), uuid.New(), "n/a")
	assert.ErrorIs(t, err, ErrSaleNotFound)
}
