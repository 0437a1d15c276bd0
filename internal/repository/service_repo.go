package repository

import (
	"context"
	"time"

	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(ctx context.Context, s *model.Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Service, error)
	Update(ctx context.Context, s *model.Service) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter dto.ServiceFilter) ([]model.Service, int64, error)
}

type serviceRepo struct{ db *gorm.DB }

func NewServiceRepository(db *gorm.DB) ServiceRepository { return &serviceRepo{db: db} }

func (r *serviceRepo) Create(ctx context.Context, s *model.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *serviceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	var s model.Service
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *serviceRepo) Update(ctx context.Context, s *model.Service) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *serviceRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Service{}).Where("id = ?", id).
		Updates(map[string]any{"is_active": false, "updated_at": time.Now()}).Error
}

func (r *serviceRepo) List(ctx context.Context, filter dto.ServiceFilter) ([]model.Service, int64, error) {
	var services []model.Service
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Service{})

	if filter.Search != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
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

	err := q.Order("category ASC, name ASC").
		Offset(offset).Limit(filter.Limit).
		Find(&services).Error

	return services, total, err
}
