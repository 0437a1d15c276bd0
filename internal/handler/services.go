package handler

import (
	"errors"
	"net/http"

	"github.com/Sergiom84/Lucy3000/internal/apierror"
	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/service"

	"github.com/gin-gonic/gin"
)

type ServiceHandler struct{ svc service.CatalogService }

func NewServiceHandler(svc service.CatalogService) *ServiceHandler {
	return &ServiceHandler{svc: svc}
}

// Create godoc
// @Summary Add a service to the catalog (admin only)
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateServiceRequest true "Service data"
// @Success 201 {object} dto.ServiceResponse
// @Router /api/services [post]
func (h *ServiceHandler) Create(c *gin.Context) {
	var req dto.CreateServiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List catalog services
// @Tags services
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name fragment"
// @Param category query string false "Category"
// @Param is_active query string false "true|false"
// @Success 200 {object} map[string]interface{}
// @Router /api/services [get]
func (h *ServiceHandler) List(c *gin.Context) {
	var filter dto.ServiceFilter
	if !bindQuery(c, &filter) {
		return
	}
	items, total, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "total": total, "page": filter.Page, "limit": filter.Limit})
}

// Get godoc
// @Summary Fetch one catalog service
// @Tags services
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 200 {object} dto.ServiceResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/services/{id} [get]
func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("service not found"))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Update a catalog service (admin only)
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Param body body dto.UpdateServiceRequest true "Fields to update"
// @Success 200 {object} dto.ServiceResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/services/{id} [put]
func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateServiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("service not found"))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deactivate godoc
// @Summary Retire a catalog service (admin only)
// @Tags services
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /api/services/{id} [delete]
func (h *ServiceHandler) Deactivate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("service not found"))
			return
		}
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
