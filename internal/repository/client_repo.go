package repository

import (
	"context"
	"time"

	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	Update(ctx context.Context, c *model.Client) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter dto.ClientFilter) ([]model.Client, int64, error)
	CreateHistory(ctx context.Context, h *model.ClientHistory) error
	ListHistory(ctx context.Context, clientID uuid.UUID) ([]model.ClientHistory, error)
	// AddSpendTx adjusts the loyalty/spend accumulators atomically inside tx.
	// Negative values reverse a cancelled sale; points never go below zero.
	AddSpendTx(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, amount decimal.Decimal, points int64) error
	FindBirthdays(ctx context.Context, month, day int) ([]model.Client, error)
	FindBirthdaysInMonth(ctx context.Context, month int) ([]model.Client, error)
	DB() *gorm.DB
}

type clientRepo struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) ClientRepository { return &clientRepo{db: db} }

func (r *clientRepo) DB() *gorm.DB { return r.db }

func (r *clientRepo) Create(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clientRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *clientRepo) Update(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clientRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Client{}).Where("id = ?", id).
		Updates(map[string]any{"is_active": false, "updated_at": time.Now()}).Error
}

func (r *clientRepo) List(ctx context.Context, filter dto.ClientFilter) ([]model.Client, int64, error) {
	var clients []model.Client
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Client{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			like, like, like, like)
	}
	switch filter.IsActive {
	case "true":
		q = q.Where("is_active = TRUE")
	case "false":
		q = q.Where("is_active = FALSE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("last_name ASC, first_name ASC").
		Offset(offset).Limit(filter.Limit).
		Find(&clients).Error

	return clients, total, err
}

func (r *clientRepo) CreateHistory(ctx context.Context, h *model.ClientHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *clientRepo) ListHistory(ctx context.Context, clientID uuid.UUID) ([]model.ClientHistory, error) {
	var entries []model.ClientHistory
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).
		Order("date DESC").Find(&entries).Error
	return entries, err
}

func (r *clientRepo) AddSpendTx(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, amount decimal.Decimal, points int64) error {
	return tx.WithContext(ctx).Model(&model.Client{}).Where("id = ?", clientID).
		Updates(map[string]any{
			"total_spent":    gorm.Expr("total_spent + ?", amount),
			"loyalty_points": gorm.Expr("GREATEST(loyalty_points + ?, 0)", points),
			"updated_at":     time.Now(),
		}).Error
}

func (r *clientRepo) FindBirthdays(ctx context.Context, month, day int) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).
		Where("is_active = TRUE AND birth_date IS NOT NULL").
		Where("EXTRACT(MONTH FROM birth_date) = ? AND EXTRACT(DAY FROM birth_date) = ?", month, day).
		Find(&clients).Error
	return clients, err
}

func (r *clientRepo) FindBirthdaysInMonth(ctx context.Context, month int) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).
		Where("is_active = TRUE AND birth_date IS NOT NULL").
		Where("EXTRACT(MONTH FROM birth_date) = ?", month).
		Order("EXTRACT(DAY FROM birth_date) ASC").
		Find(&clients).Error
	return clients, err
}
