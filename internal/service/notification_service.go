package service

import (
	"context"
	"errors"

	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/model"
	"github.com/Sergiom84/Lucy3000/internal/repository"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService interface {
	List(ctx context.Context, filter dto.NotificationFilter) ([]dto.NotificationResponse, int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

// List returns notifications newest-first along with the unread count.
func (s *notificationService) List(ctx context.Context, filter dto.NotificationFilter) ([]dto.NotificationResponse, int64, error) {
	notifs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.NotificationResponse, 0, len(notifs))
	for i := range notifs {
		resp = append(resp, notificationToResponse(&notifs[i]))
	}
	return resp, unread, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context) error {
	return s.repo.MarkAllRead(ctx)
}

func (s *notificationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func notificationToResponse(n *model.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID.String(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Priority:  n.Priority,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
