package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/model"
	"github.com/Sergiom84/Lucy3000/internal/repository"
	"github.com/Sergiom84/Lucy3000/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrSaleNotFound      = errors.New("sale not found")
	ErrSaleCancelled     = errors.New("sale is already cancelled")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidDiscount   = errors.New("discount percent must be between 0 and 100")
	ErrInvalidTax        = errors.New("tax must be zero or positive")
)

type SaleService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string) error
	Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo        repository.SaleRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	stockRepo   repository.StockMovementRepository
	cashRepo    repository.CashRepository
	dispatcher  *worker.Dispatcher
	prefix      string
}

func NewSaleService(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	stockRepo repository.StockMovementRepository,
	cashRepo repository.CashRepository,
	dispatcher *worker.Dispatcher,
	numberPrefix string,
) SaleService {
	return &saleService{
		repo:        repo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		stockRepo:   stockRepo,
		cashRepo:    cashRepo,
		dispatcher:  dispatcher,
		prefix:      numberPrefix,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Pure computations ─────────────────────────────────────────────────────────

// ComputeTotals derives the money columns for a cart. All arithmetic is
// exact decimal:
//
//	subtotal       = Σ quantity × price
//	discountAmount = subtotal × discountPercent / 100
//	total          = subtotal − discountAmount + tax
//
// discountPercent outside [0, 100] and negative tax are rejected, which keeps
// the total of a non-empty cart from ever going negative.
func ComputeTotals(items []dto.SaleItemRequest, discountPercent, tax decimal.Decimal) (subtotal, discountAmount, total decimal.Decimal, err error) {
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, decimal.Zero, decimal.Zero, ErrInvalidDiscount
	}
	if tax.IsNegative() {
		return decimal.Zero, decimal.Zero, decimal.Zero, ErrInvalidTax
	}
	subtotal = decimal.Zero
	for _, item := range items {
		line := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	discountAmount = subtotal.Mul(discountPercent).Div(decimal.NewFromInt(100))
	total = subtotal.Sub(discountAmount).Add(tax)
	return subtotal, discountAmount, total, nil
}

// LoyaltyPoints awards one point per 10 spent, rounded down. Non-positive
// totals earn nothing.
func LoyaltyPoints(total decimal.Decimal) int64 {
	if !total.IsPositive() {
		return 0
	}
	return total.Div(decimal.NewFromInt(10)).IntPart()
}

// NextSaleNumber increments a formatted sale number: "V-000007" → "V-000008".
// An empty previous number starts the series at 1. Production allocation goes
// through the database sequence; this keeps the numbering contract testable
// on its own.
func NextSaleNumber(prefix, prev string) string {
	n := int64(0)
	if prev != "" {
		if idx := strings.LastIndex(prev, "-"); idx >= 0 {
			if parsed, err := strconv.ParseInt(prev[idx+1:], 10, 64); err == nil {
				n = parsed
			}
		}
	}
	return FormatSaleNumber(prefix, n+1)
}

// FormatSaleNumber renders a sequence value as "V-NNNNNN".
func FormatSaleNumber(prefix string, n int64) string {
	return fmt.Sprintf("%s-%06d", prefix, n)
}

// ── Create ────────────────────────────────────────────────────────────────────
// One ACID transaction:
//  1. nextval sale number
//  2. insert sale + items
//  3. conditional stock decrement per product line (+ SALE stock movement)
//  4. loyalty accrual on the client
//  5. cash INCOME movement when the drawer is open and payment is cash
//
// The receipt job is dispatched after commit, best-effort.
func (s *saleService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	// Resolve client (outside TX — existence check only)
	var clientID *uuid.UUID
	if req.ClientID != nil && *req.ClientID != "" {
		id, err := uuid.Parse(*req.ClientID)
		if err != nil {
			return nil, fmt.Errorf("invalid client_id: %w", err)
		}
		if _, err := s.clientRepo.FindByID(ctx, id); err != nil {
			return nil, fmt.Errorf("client %s not found", *req.ClientID)
		}
		clientID = &id
	}

	// Pre-flight item resolution: product lines must reference an active
	// product. Stock is only checked authoritatively inside the TX.
	type resolvedItem struct {
		productID *uuid.UUID
		serviceID *uuid.UUID
		name      string
		quantity  int
	}
	resolved := make([]resolvedItem, 0, len(req.Items))
	for _, item := range req.Items {
		var r resolvedItem
		r.name = item.Description
		r.quantity = item.Quantity
		if item.ProductID != nil && *item.ProductID != "" {
			pid, err := uuid.Parse(*item.ProductID)
			if err != nil {
				return nil, fmt.Errorf("invalid product_id: %w", err)
			}
			p, err := s.productRepo.FindByID(ctx, pid)
			if err != nil {
				return nil, fmt.Errorf("product %s not found", *item.ProductID)
			}
			if !p.IsActive {
				return nil, fmt.Errorf("product %s is inactive and cannot be sold", p.Name)
			}
			r.productID = &pid
		}
		if item.ServiceID != nil && *item.ServiceID != "" {
			sid, err := uuid.Parse(*item.ServiceID)
			if err != nil {
				return nil, fmt.Errorf("invalid service_id: %w", err)
			}
			r.serviceID = &sid
		}
		resolved = append(resolved, r)
	}

	subtotal, discountAmount, total, err := ComputeTotals(req.Items, req.DiscountPercent, req.Tax)
	if err != nil {
		return nil, err
	}

	// Open drawer lookup before the TX: absence is not an error, cash sales
	// simply don't hit the drawer ledger then.
	var openSession *model.CashSession
	if s.cashRepo != nil {
		if found, err := s.cashRepo.FindOpenSession(ctx); err == nil {
			openSession = found
		}
	}

	var sale model.Sale
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		num, err := s.repo.NextSaleNumber(ctx, tx)
		if err != nil {
			return err
		}

		sale = model.Sale{
			SaleNumber:    FormatSaleNumber(s.prefix, num),
			ClientID:      clientID,
			UserID:        userID,
			Subtotal:      subtotal,
			Discount:      discountAmount,
			Tax:           req.Tax,
			Total:         total,
			PaymentMethod: req.PaymentMethod,
			Status:        model.SaleCompleted,
			Notes:         req.Notes,
		}
		for i, item := range req.Items {
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID:   resolved[i].productID,
				ServiceID:   resolved[i].serviceID,
				Description: item.Description,
				Quantity:    item.Quantity,
				Price:       item.Price,
				Subtotal:    item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
			})
		}

		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			return err
		}

		ref := sale.SaleNumber
		for _, r := range resolved {
			if r.productID == nil {
				continue
			}
			// Snapshot derives from the decrement's RETURNING value, so the
			// before/after pair stays correct under concurrent sales of the
			// same product.
			newStock, ok, err := s.productRepo.DecrementStockTx(ctx, tx, *r.productID, r.quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, r.name)
			}
			mov := &model.StockMovement{
				ProductID:   *r.productID,
				Type:        model.StockSale,
				Quantity:    r.quantity,
				StockBefore: newStock + r.quantity,
				StockAfter:  newStock,
				Reference:   &ref,
			}
			if err := s.stockRepo.CreateTx(ctx, tx, mov); err != nil {
				return err
			}
		}

		if clientID != nil {
			points := LoyaltyPoints(total)
			if err := s.clientRepo.AddSpendTx(ctx, tx, *clientID, total, points); err != nil {
				return err
			}
		}

		if openSession != nil && req.PaymentMethod == model.PaymentCash {
			mov := &model.CashMovement{
				CashSessionID: openSession.ID,
				UserID:        userID,
				Type:          model.MovementIncome,
				Amount:        total,
				Category:      "sale",
				Description:   fmt.Sprintf("Sale %s", sale.SaleNumber),
				Reference:     &ref,
			}
			if err := s.cashRepo.CreateMovementTx(ctx, tx, mov); err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async receipt job (best-effort — fire & forget)
	if s.dispatcher != nil {
		payload := map[string]interface{}{
			"sale_id": sale.ID.String(),
		}
		if req.ReceiptEmail != nil && *req.ReceiptEmail != "" {
			payload["email"] = *req.ReceiptEmail
		}
		_ = s.dispatcher.EnqueueReceipt(ctx, payload)
	}

	resp := saleToResponse(&sale)
	if clientID != nil {
		resp.PointsEarned = LoyaltyPoints(total)
	}
	return resp, nil
}

// ── Cancel ────────────────────────────────────────────────────────────────────

// Cancel restores stock with RETURN movements, reverses the loyalty accrual,
// and records a drawer refund for cash sales, all in one transaction.
func (s *saleService) Cancel(ctx context.Context, id uuid.UUID, reason string) error {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrSaleNotFound
	}
	if sale.Status == model.SaleCancelled {
		return ErrSaleCancelled
	}

	var openSession *model.CashSession
	if s.cashRepo != nil {
		if found, err := s.cashRepo.FindOpenSession(ctx); err == nil {
			openSession = found
		}
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ref := sale.SaleNumber
		for _, item := range sale.Items {
			if item.ProductID == nil {
				continue
			}
			newStock, err := s.productRepo.IncrementStockTx(ctx, tx, *item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			reasonText := fmt.Sprintf("Cancellation of sale %s — %s", sale.SaleNumber, reason)
			mov := &model.StockMovement{
				ProductID:   *item.ProductID,
				Type:        model.StockReturn,
				Quantity:    item.Quantity,
				StockBefore: newStock - item.Quantity,
				StockAfter:  newStock,
				Reason:      &reasonText,
				Reference:   &ref,
			}
			if err := s.stockRepo.CreateTx(ctx, tx, mov); err != nil {
				return err
			}
		}

		if sale.ClientID != nil {
			points := LoyaltyPoints(sale.Total)
			if err := s.clientRepo.AddSpendTx(ctx, tx, *sale.ClientID, sale.Total.Neg(), -points); err != nil {
				return err
			}
		}

		if openSession != nil && sale.PaymentMethod == model.PaymentCash {
			mov := &model.CashMovement{
				CashSessionID: openSession.ID,
				UserID:        sale.UserID,
				Type:          model.MovementExpense,
				Amount:        sale.Total,
				Category:      "refund",
				Description:   fmt.Sprintf("Cancellation of sale %s — %s", sale.SaleNumber, reason),
				Reference:     &ref,
			}
			if err := s.cashRepo.CreateMovementTx(ctx, tx, mov); err != nil {
				return err
			}
		}

		return s.repo.UpdateStatusTx(ctx, tx, id, model.SaleCancelled)
	})
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *saleService) Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrSaleNotFound
	}
	return saleToResponse(sale), nil
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleListItem, 0, len(sales))
	for i := range sales {
		items = append(items, saleToListItem(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func saleToListItem(v *model.Sale) dto.SaleListItem {
	clientName := ""
	if v.Client != nil {
		clientName = v.Client.FirstName + " " + v.Client.LastName
	}
	return dto.SaleListItem{
		ID:            v.ID.String(),
		SaleNumber:    v.SaleNumber,
		ClientName:    clientName,
		Subtotal:      v.Subtotal,
		Discount:      v.Discount,
		Tax:           v.Tax,
		Total:         v.Total,
		PaymentMethod: v.PaymentMethod,
		Status:        v.Status,
		CreatedAt:     v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func saleToResponse(v *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, dto.SaleItemResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Subtotal,
		})
	}
	var clientID *string
	if v.ClientID != nil {
		id := v.ClientID.String()
		clientID = &id
	}
	return &dto.SaleResponse{
		ID:            v.ID.String(),
		SaleNumber:    v.SaleNumber,
		ClientID:      clientID,
		Items:         items,
		Subtotal:      v.Subtotal,
		Discount:      v.Discount,
		Tax:           v.Tax,
		Total:         v.Total,
		PaymentMethod: v.PaymentMethod,
		Status:        v.Status,
		CreatedAt:     v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
