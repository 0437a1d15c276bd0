package repository

import (
	"context"

	"github.com/Sergiom84/Lucy3000/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Aggregation row shapes scanned out of raw GROUP BY queries.

type PaymentMethodTotal struct {
	PaymentMethod string
	Total         decimal.Decimal
}

type ProductSalesRow struct {
	ProductID string
	Name      string
	Quantity  int
	Revenue   decimal.Decimal
}

type RevenuePoint struct {
	Day     string
	Revenue decimal.Decimal
	Count   int64
}

type ReportRepository interface {
	SalesTotals(ctx context.Context, start, end string) (count int64, revenue decimal.Decimal, err error)
	SalesByPaymentMethod(ctx context.Context, start, end string) ([]PaymentMethodTotal, error)
	TopProducts(ctx context.Context, start, end string, limit int) ([]ProductSalesRow, error)
	TopClients(ctx context.Context, limit int) ([]model.Client, error)
	InventoryValue(ctx context.Context) (decimal.Decimal, error)
	CountProducts(ctx context.Context) (int64, error)
	CountActiveClients(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context) (int64, error)
	SumClientSpend(ctx context.Context) (decimal.Decimal, error)
	RevenueByDay(ctx context.Context, days int) ([]RevenuePoint, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

// completedSales scopes every revenue query to sales that actually count.
func (r *reportRepo) completedSales(ctx context.Context, start, end string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Sale{}).Where("status = ?", model.SaleCompleted)
	if start != "" {
		q = q.Where("DATE(created_at) >= ?", start)
	}
	if end != "" {
		q = q.Where("DATE(created_at) <= ?", end)
	}
	return q
}

func (r *reportRepo) SalesTotals(ctx context.Context, start, end string) (int64, decimal.Decimal, error) {
	var row struct {
		Count   int64
		Revenue decimal.Decimal
	}
	err := r.completedSales(ctx, start, end).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS revenue").
		Scan(&row).Error
	return row.Count, row.Revenue, err
}

func (r *reportRepo) SalesByPaymentMethod(ctx context.Context, start, end string) ([]PaymentMethodTotal, error) {
	var rows []PaymentMethodTotal
	err := r.completedSales(ctx, start, end).
		Select("payment_method, COALESCE(SUM(total), 0) AS total").
		Group("payment_method").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) TopProducts(ctx context.Context, start, end string, limit int) ([]ProductSalesRow, error) {
	var rows []ProductSalesRow
	q := r.db.WithContext(ctx).
		Table("sale_items").
		Select("sale_items.product_id, products.name, SUM(sale_items.quantity) AS quantity, COALESCE(SUM(sale_items.subtotal), 0) AS revenue").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Where("sales.status = ? AND sale_items.product_id IS NOT NULL", model.SaleCompleted)
	if start != "" {
		q = q.Where("DATE(sales.created_at) >= ?", start)
	}
	if end != "" {
		q = q.Where("DATE(sales.created_at) <= ?", end)
	}
	err := q.Group("sale_items.product_id, products.name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) TopClients(ctx context.Context, limit int) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).
		Where("is_active = TRUE").
		Order("total_spent DESC").
		Limit(limit).
		Find(&clients).Error
	return clients, err
}

func (r *reportRepo) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var value decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("is_active = TRUE").
		Select("COALESCE(SUM(cost * stock), 0)").
		Scan(&value).Error
	return value, err
}

func (r *reportRepo) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("is_active = TRUE").Count(&n).Error
	return n, err
}

func (r *reportRepo) CountActiveClients(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Client{}).
		Where("is_active = TRUE").Count(&n).Error
	return n, err
}

func (r *reportRepo) CountLowStock(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("is_active = TRUE AND stock <= min_stock").Count(&n).Error
	return n, err
}

func (r *reportRepo) SumClientSpend(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Client{}).
		Where("is_active = TRUE").
		Select("COALESCE(SUM(total_spent), 0)").
		Scan(&total).Error
	return total, err
}

func (r *reportRepo) RevenueByDay(ctx context.Context, days int) ([]RevenuePoint, error) {
	var rows []RevenuePoint
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("TO_CHAR(DATE(created_at), 'YYYY-MM-DD') AS day, COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS count").
		Where("status = ? AND created_at > CURRENT_DATE - ?::int", model.SaleCompleted, days).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows).Error
	return rows, err
}
