package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/model"
	"github.com/Sergiom84/Lucy3000/internal/repository"

	"github.com/google/uuid"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

type AppointmentService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter dto.AppointmentFilter) ([]dto.AppointmentResponse, int64, error)
	ByDate(ctx context.Context, day time.Time) ([]dto.AppointmentResponse, error)
}

type appointmentService struct {
	repo             repository.AppointmentRepository
	clientRepo       repository.ClientRepository
	serviceRepo      repository.ServiceRepository
	notificationRepo repository.NotificationRepository
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	clientRepo repository.ClientRepository,
	serviceRepo repository.ServiceRepository,
	notificationRepo repository.NotificationRepository,
) AppointmentService {
	return &appointmentService{
		repo:             repo,
		clientRepo:       clientRepo,
		serviceRepo:      serviceRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *appointmentService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client_id: %w", err)
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service_id: %w", err)
	}
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, ErrClientNotFound
	}
	svc, err := s.serviceRepo.FindByID(ctx, serviceID)
	if err != nil {
		return nil, errors.New("service not found")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	appt := &model.Appointment{
		ClientID:  clientID,
		UserID:    userID,
		ServiceID: serviceID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    model.AppointmentScheduled,
		Notes:     req.Notes,
		Reminder:  req.Reminder,
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, err
	}

	if req.Reminder {
		n := &model.Notification{
			Type:     model.NotifAppointment,
			Title:    fmt.Sprintf("Appointment booked: %s %s", client.FirstName, client.LastName),
			Message:  fmt.Sprintf("%s on %s at %s", svc.Name, req.Date, req.StartTime),
			Priority: model.PriorityNormal,
		}
		_ = s.notificationRepo.Create(ctx, n)
	}

	created, err := s.repo.FindByID(ctx, appt.ID)
	if err != nil {
		resp := appointmentToResponse(appt)
		return &resp, nil
	}
	resp := appointmentToResponse(created)
	return &resp, nil
}

func (s *appointmentService) Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrAppointmentNotFound
	}
	resp := appointmentToResponse(appt)
	return &resp, nil
}

func (s *appointmentService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrAppointmentNotFound
	}

	if req.ServiceID != "" {
		serviceID, err := uuid.Parse(req.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("invalid service_id: %w", err)
		}
		if _, err := s.serviceRepo.FindByID(ctx, serviceID); err != nil {
			return nil, errors.New("service not found")
		}
		appt.ServiceID = serviceID
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, err
		}
		appt.Date = date
	}
	if req.StartTime != "" {
		appt.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		appt.EndTime = req.EndTime
	}
	if req.Status != "" {
		appt.Status = req.Status
	}
	if req.Notes != nil {
		appt.Notes = req.Notes
	}
	if req.Reminder != nil {
		appt.Reminder = *req.Reminder
	}

	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, err
	}
	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		resp := appointmentToResponse(appt)
		return &resp, nil
	}
	resp := appointmentToResponse(updated)
	return &resp, nil
}

func (s *appointmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrAppointmentNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *appointmentService) List(ctx context.Context, filter dto.AppointmentFilter) ([]dto.AppointmentResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	appts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.AppointmentResponse, 0, len(appts))
	for i := range appts {
		resp = append(resp, appointmentToResponse(&appts[i]))
	}
	return resp, total, nil
}

func (s *appointmentService) ByDate(ctx context.Context, day time.Time) ([]dto.AppointmentResponse, error) {
	appts, err := s.repo.FindByDate(ctx, day)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AppointmentResponse, 0, len(appts))
	for i := range appts {
		resp = append(resp, appointmentToResponse(&appts[i]))
	}
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func appointmentToResponse(a *model.Appointment) dto.AppointmentResponse {
	resp := dto.AppointmentResponse{
		ID:        a.ID.String(),
		ClientID:  a.ClientID.String(),
		ServiceID: a.ServiceID.String(),
		Date:      a.Date.Format("2006-01-02"),
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		Status:    a.Status,
		Notes:     a.Notes,
		Reminder:  a.Reminder,
	}
	if a.Client != nil {
		resp.ClientName = a.Client.FirstName + " " + a.Client.LastName
	}
	if a.Service != nil {
		resp.ServiceName = a.Service.Name
	}
	if a.User != nil {
		resp.UserName = a.User.Name
	}
	return resp
}
