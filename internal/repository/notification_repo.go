package repository

import (
	"context"
	"time"

	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	List(ctx context.Context, filter dto.NotificationFilter) ([]model.Notification, error)
	CountUnread(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ExistsRecent reports whether a notification of this type mentioning the
	// given title was created in the last 24h. Keeps the daily cron from
	// stacking duplicates.
	ExistsRecent(ctx context.Context, notifType, title string) (bool, error)
}

type notificationRepo struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) List(ctx context.Context, filter dto.NotificationFilter) ([]model.Notification, error) {
	var notifs []model.Notification

	q := r.db.WithContext(ctx).Model(&model.Notification{})
	switch filter.IsRead {
	case "true":
		q = q.Where("is_read = TRUE")
	case "false":
		q = q.Where("is_read = FALSE")
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	err := q.Order("created_at DESC").Limit(200).Find(&notifs).Error
	return notifs, err
}

func (r *notificationRepo) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("is_read = FALSE").Count(&n).Error
	return n, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).Update("is_read", true).Error
}

func (r *notificationRepo) MarkAllRead(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("is_read = FALSE").Update("is_read", true).Error
}

func (r *notificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Notification{}, id).Error
}

func (r *notificationRepo) ExistsRecent(ctx context.Context, notifType, title string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("type = ? AND title = ? AND created_at > ?", notifType, title, time.Now().Add(-24*time.Hour)).
		Count(&n).Error
	return n > 0, err
}
