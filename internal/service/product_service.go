package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/infra"
	"github.com/Sergiom84/Lucy3000/internal/model"
	"github.com/Sergiom84/Lucy3000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

const priceCacheTTL = 5 * time.Minute

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	LowStock(ctx context.Context) ([]dto.ProductResponse, error)
	AddStockMovement(ctx context.Context, id uuid.UUID, req dto.AddStockMovementRequest) (*dto.StockMovementResponse, error)
	ListStockMovements(ctx context.Context, id uuid.UUID) ([]dto.StockMovementResponse, error)
	PriceLookup(ctx context.Context, barcode string) (*dto.PriceLookupResponse, error)
	Import(ctx context.Context, r io.Reader) (*dto.ImportProductsResponse, error)
}

type productService struct {
	repo             repository.ProductRepository
	stockRepo        repository.StockMovementRepository
	notificationRepo repository.NotificationRepository
	rdb              *redis.Client
}

func NewProductService(
	repo repository.ProductRepository,
	stockRepo repository.StockMovementRepository,
	notificationRepo repository.NotificationRepository,
	rdb *redis.Client,
) ProductService {
	return &productService{
		repo:             repo,
		stockRepo:        stockRepo,
		notificationRepo: notificationRepo,
		rdb:              rdb,
	}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	unit := req.Unit
	if unit == "" {
		unit = "unit"
	}
	p := &model.Product{
		SKU:         req.SKU,
		Barcode:     req.Barcode,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Cost:        req.Cost,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		Unit:        unit,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if req.Barcode != nil {
		p.Barcode = req.Barcode
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Category != "" {
		p.Category = req.Category
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Cost != nil {
		p.Cost = *req.Cost
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	if req.Unit != "" {
		p.Unit = req.Unit
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidatePriceCache(ctx, p)
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) Deactivate(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrProductNotFound
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.invalidatePriceCache(ctx, p)
	return nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// LowStock lists products at or below their minimum and raises a LOW_STOCK
// notification for each one not already flagged in the last 24h.
func (s *productService) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		p := &products[i]
		resp = append(resp, productToResponse(p))

		title := fmt.Sprintf("Low stock: %s", p.Name)
		if exists, err := s.notificationRepo.ExistsRecent(ctx, model.NotifLowStock, title); err != nil || exists {
			continue
		}
		n := &model.Notification{
			Type:     model.NotifLowStock,
			Title:    title,
			Message:  fmt.Sprintf("%s is down to %d units (minimum %d)", p.Name, p.Stock, p.MinStock),
			Priority: model.PriorityHigh,
		}
		_ = s.notificationRepo.Create(ctx, n)
	}
	return resp, nil
}

// AddStockMovement applies a manual stock adjustment atomically.
// PURCHASE/RETURN/ADJUSTMENT add, SALE/DAMAGED subtract; subtracting kinds
// carry the same stock >= qty guard as the sale flow.
func (s *productService) AddStockMovement(ctx context.Context, id uuid.UUID, req dto.AddStockMovementRequest) (*dto.StockMovementResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	var movement *model.StockMovement
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// before/after come from the update's RETURNING value, never from a
		// separate read that could go stale under concurrent writers.
		var before, after int
		switch req.Type {
		case model.StockPurchase, model.StockReturn, model.StockAdjustment:
			newStock, err := s.repo.IncrementStockTx(ctx, tx, id, req.Quantity)
			if err != nil {
				return err
			}
			before, after = newStock-req.Quantity, newStock
		case model.StockSale, model.StockDamaged:
			newStock, ok, err := s.repo.DecrementStockTx(ctx, tx, id, req.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}
			before, after = newStock+req.Quantity, newStock
		default:
			return fmt.Errorf("unknown stock movement kind %q", req.Type)
		}

		movement = &model.StockMovement{
			ProductID:   id,
			Type:        req.Type,
			Quantity:    req.Quantity,
			StockBefore: before,
			StockAfter:  after,
			Reason:      req.Reason,
			Reference:   req.Reference,
		}
		return s.stockRepo.CreateTx(ctx, tx, movement)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := stockMovementToResponse(movement)
	return &resp, nil
}

func (s *productService) ListStockMovements(ctx context.Context, id uuid.UUID) ([]dto.StockMovementResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, ErrProductNotFound
	}
	movements, err := s.stockRepo.ListByProduct(ctx, id, 100)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.StockMovementResponse, 0, len(movements))
	for i := range movements {
		resp = append(resp, stockMovementToResponse(&movements[i]))
	}
	return resp, nil
}

// PriceLookup is the scanner fast path: cache-aside over Redis with a short
// TTL so repeated scans of the same barcode skip Postgres entirely.
func (s *productService) PriceLookup(ctx context.Context, barcode string) (*dto.PriceLookupResponse, error) {
	cacheKey := "price:barcode:" + barcode

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp dto.PriceLookupResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, ErrProductNotFound
	}
	resp := &dto.PriceLookupResponse{
		Name:     p.Name,
		Price:    p.Price,
		Stock:    p.Stock,
		Category: p.Category,
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, data, priceCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("barcode", barcode).Msg("price cache write failed")
			}
		}
	}
	return resp, nil
}

// Import bulk-creates/updates products from an .xlsx upload, keyed by SKU.
func (s *productService) Import(ctx context.Context, r io.Reader) (*dto.ImportProductsResponse, error) {
	rows, parseErrors, err := infra.ReadProductRows(r)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportProductsResponse{Errors: parseErrors}
	for _, row := range rows {
		existing, err := s.repo.FindBySKU(ctx, row.SKU)
		switch {
		case err == nil:
			existing.Name = row.Name
			existing.Category = row.Category
			existing.Price = row.Price
			existing.Cost = row.Cost
			existing.MinStock = row.MinStock
			if row.Barcode != "" {
				existing.Barcode = &row.Barcode
			}
			if row.Unit != "" {
				existing.Unit = row.Unit
			}
			if err := s.repo.Update(ctx, existing); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("sku %s: %v", row.SKU, err))
				continue
			}
			s.invalidatePriceCache(ctx, existing)
			result.Updated++

		case errors.Is(err, gorm.ErrRecordNotFound):
			unit := row.Unit
			if unit == "" {
				unit = "unit"
			}
			p := &model.Product{
				SKU:      row.SKU,
				Name:     row.Name,
				Category: row.Category,
				Price:    row.Price,
				Cost:     row.Cost,
				Stock:    row.Stock,
				MinStock: row.MinStock,
				Unit:     unit,
				IsActive: true,
			}
			if row.Barcode != "" {
				p.Barcode = &row.Barcode
			}
			if err := s.repo.Create(ctx, p); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("sku %s: %v", row.SKU, err))
				continue
			}
			result.Created++

		default:
			result.Errors = append(result.Errors, fmt.Sprintf("sku %s: %v", row.SKU, err))
		}
	}
	return result, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *productService) invalidatePriceCache(ctx context.Context, p *model.Product) {
	if s.rdb == nil || p.Barcode == nil || *p.Barcode == "" {
		return
	}
	if err := s.rdb.Del(ctx, "price:barcode:"+*p.Barcode).Err(); err != nil {
		log.Warn().Err(err).Str("barcode", *p.Barcode).Msg("price cache invalidation failed")
	}
}

func productToResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID.String(),
		SKU:         p.SKU,
		Barcode:     p.Barcode,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Cost:        p.Cost,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Unit:        p.Unit,
		IsActive:    p.IsActive,
	}
}

func stockMovementToResponse(m *model.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:          m.ID.String(),
		ProductID:   m.ProductID.String(),
		Type:        m.Type,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reason:      m.Reason,
		Reference:   m.Reference,
		CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
