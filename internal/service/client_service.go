package service

import (
	"context"
	"errors"
	"time"

	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/model"
	"github.com/Sergiom84/Lucy3000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrClientNotFound = errors.New("client not found")

type ClientService interface {
	Create(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ClientDetailResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateClientRequest) (*dto.ClientResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter dto.ClientFilter) (*dto.ClientListResponse, error)
	AddHistory(ctx context.Context, id uuid.UUID, req dto.AddClientHistoryRequest) (*dto.ClientHistoryResponse, error)
	ListHistory(ctx context.Context, id uuid.UUID) ([]dto.ClientHistoryResponse, error)
	BirthdaysThisMonth(ctx context.Context) ([]dto.ClientResponse, error)
}

type clientService struct {
	repo            repository.ClientRepository
	appointmentRepo repository.AppointmentRepository
	saleRepo        repository.SaleRepository
}

func NewClientService(
	repo repository.ClientRepository,
	appointmentRepo repository.AppointmentRepository,
	saleRepo repository.SaleRepository,
) ClientService {
	return &clientService{repo: repo, appointmentRepo: appointmentRepo, saleRepo: saleRepo}
}

func (s *clientService) Create(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	client := &model.Client{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Notes:     req.Notes,
		IsActive:  true,
	}
	if req.BirthDate != nil {
		t, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, err
		}
		client.BirthDate = &t
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	resp := clientToResponse(client)
	return &resp, nil
}

func (s *clientService) Get(ctx context.Context, id uuid.UUID) (*dto.ClientDetailResponse, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	detail := &dto.ClientDetailResponse{ClientResponse: clientToResponse(client)}

	if appts, err := s.appointmentRepo.ListByClient(ctx, id, 10); err == nil {
		for i := range appts {
			detail.Appointments = append(detail.Appointments, appointmentToResponse(&appts[i]))
		}
	}
	if sales, err := s.saleRepo.ListByClient(ctx, id, 10); err == nil {
		for i := range sales {
			detail.Sales = append(detail.Sales, saleToListItem(&sales[i]))
		}
	}
	if history, err := s.repo.ListHistory(ctx, id); err == nil {
		for i := range history {
			detail.History = append(detail.History, historyToResponse(&history[i]))
		}
	}
	return detail, nil
}

func (s *clientService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrClientNotFound
	}
	if req.FirstName != "" {
		client.FirstName = req.FirstName
	}
	if req.LastName != "" {
		client.LastName = req.LastName
	}
	if req.Email != nil {
		client.Email = req.Email
	}
	if req.Phone != nil {
		client.Phone = req.Phone
	}
	if req.BirthDate != nil {
		t, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, err
		}
		client.BirthDate = &t
	}
	if req.Address != nil {
		client.Address = req.Address
	}
	if req.Notes != nil {
		client.Notes = req.Notes
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	resp := clientToResponse(client)
	return &resp, nil
}

func (s *clientService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrClientNotFound
	}
	return s.repo.Deactivate(ctx, id)
}

func (s *clientService) List(ctx context.Context, filter dto.ClientFilter) (*dto.ClientListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	clients, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		items = append(items, clientToResponse(&clients[i]))
	}
	return &dto.ClientListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// AddHistory appends a visit entry and rolls its amount into the client's
// total spend. History entries are immutable once written.
func (s *clientService) AddHistory(ctx context.Context, id uuid.UUID, req dto.AddClientHistoryRequest) (*dto.ClientHistoryResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, ErrClientNotFound
	}

	date := time.Now()
	if req.Date != nil {
		t, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, err
		}
		date = t
	}

	entry := &model.ClientHistory{
		ClientID:    id,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			if err := s.repo.CreateHistory(ctx, entry); err != nil {
				return err
			}
			return s.repo.AddSpendTx(ctx, nil, id, req.Amount, 0)
		}
		if err := tx.WithContext(ctx).Create(entry).Error; err != nil {
			return err
		}
		return s.repo.AddSpendTx(ctx, tx, id, req.Amount, 0)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := historyToResponse(entry)
	return &resp, nil
}

func (s *clientService) ListHistory(ctx context.Context, id uuid.UUID) ([]dto.ClientHistoryResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, ErrClientNotFound
	}
	entries, err := s.repo.ListHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClientHistoryResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, historyToResponse(&entries[i]))
	}
	return resp, nil
}

func (s *clientService) BirthdaysThisMonth(ctx context.Context) ([]dto.ClientResponse, error) {
	clients, err := s.repo.FindBirthdaysInMonth(ctx, int(time.Now().Month()))
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		resp = append(resp, clientToResponse(&clients[i]))
	}
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func clientToResponse(c *model.Client) dto.ClientResponse {
	resp := dto.ClientResponse{
		ID:            c.ID.String(),
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		Notes:         c.Notes,
		LoyaltyPoints: c.LoyaltyPoints,
		TotalSpent:    c.TotalSpent,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if c.BirthDate != nil {
		d := c.BirthDate.Format("2006-01-02")
		resp.BirthDate = &d
	}
	return resp
}

func historyToResponse(h *model.ClientHistory) dto.ClientHistoryResponse {
	return dto.ClientHistoryResponse{
		ID:          h.ID.String(),
		Description: h.Description,
		Amount:      h.Amount,
		Date:        h.Date.Format("2006-01-02"),
	}
}
