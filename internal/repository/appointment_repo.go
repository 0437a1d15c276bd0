package repository

import (
	"context"
	"time"

	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *model.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Update(ctx context.Context, a *model.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter dto.AppointmentFilter) ([]model.Appointment, int64, error)
	FindByDate(ctx context.Context, day time.Time) ([]model.Appointment, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]model.Appointment, error)
	// FindPendingReminders returns tomorrow's appointments flagged for a
	// reminder that are still in a bookable status.
	FindPendingReminders(ctx context.Context, day time.Time) ([]model.Appointment, error)
	CountByDate(ctx context.Context, day time.Time) (int64, error)
}

type appointmentRepo struct{ db *gorm.DB }

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository { return &appointmentRepo{db: db} }

func (r *appointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *appointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var a model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Client").Preload("User").Preload("Service").
		First(&a, id).Error
	return &a, err
}

func (r *appointmentRepo) Update(ctx context.Context, a *model.Appointment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *appointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Appointment{}, id).Error
}

func (r *appointmentRepo) List(ctx context.Context, filter dto.AppointmentFilter) ([]model.Appointment, int64, error) {
	var appts []model.Appointment
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Appointment{})

	if filter.StartDate != "" {
		q = q.Where("DATE(date) >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("DATE(date) <= ?", filter.EndDate)
	}
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Client").Preload("User").Preload("Service").
		Order("date ASC, start_time ASC").
		Offset(offset).Limit(filter.Limit).
		Find(&appts).Error

	return appts, total, err
}

func (r *appointmentRepo) FindByDate(ctx context.Context, day time.Time) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Client").Preload("User").Preload("Service").
		Where("DATE(date) = DATE(?)", day).
		Order("start_time ASC").
		Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) ListByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Service").Preload("User").
		Where("client_id = ?", clientID).
		Order("date DESC, start_time DESC").
		Limit(limit).
		Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) FindPendingReminders(ctx context.Context, day time.Time) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Client").Preload("Service").
		Where("DATE(date) = DATE(?) AND reminder = TRUE AND status IN ?",
			day, []string{model.AppointmentScheduled, model.AppointmentConfirmed}).
		Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) CountByDate(ctx context.Context, day time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Appointment{}).
		Where("DATE(date) = DATE(?) AND status NOT IN ?",
			day, []string{model.AppointmentCancelled, model.AppointmentNoShow}).
		Count(&n).Error
	return n, err
}
