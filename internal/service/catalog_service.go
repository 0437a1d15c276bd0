package service

import (
	"context"
	"errors"

	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/model"
	"github.com/Sergiom84/Lucy3000/internal/repository"

	"github.com/google/uuid"
)

var ErrServiceNotFound = errors.New("service not found")

// CatalogService manages the salon service catalog (haircuts, facials, …).
type CatalogService interface {
	Create(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter dto.ServiceFilter) ([]dto.ServiceResponse, int64, error)
}

type catalogService struct {
	repo repository.ServiceRepository
}

func NewCatalogService(repo repository.ServiceRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) Create(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	svc := &model.Service{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	resp := serviceToResponse(svc)
	return &resp, nil
}

func (s *catalogService) Get(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrServiceNotFound
	}
	resp := serviceToResponse(svc)
	return &resp, nil
}

func (s *catalogService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrServiceNotFound
	}
	if req.Name != "" {
		svc.Name = req.Name
	}
	if req.Description != nil {
		svc.Description = req.Description
	}
	if req.Category != "" {
		svc.Category = req.Category
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.DurationMin != nil {
		svc.DurationMin = *req.DurationMin
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	resp := serviceToResponse(svc)
	return &resp, nil
}

func (s *catalogService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrServiceNotFound
	}
	return s.repo.Deactivate(ctx, id)
}

func (s *catalogService) List(ctx context.Context, filter dto.ServiceFilter) ([]dto.ServiceResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	services, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.ServiceResponse, 0, len(services))
	for i := range services {
		resp = append(resp, serviceToResponse(&services[i]))
	}
	return resp, total, nil
}

func serviceToResponse(s *model.Service) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:          s.ID.String(),
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		Price:       s.Price,
		DurationMin: s.DurationMin,
		IsActive:    s.IsActive,
	}
}
