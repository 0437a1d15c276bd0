package handler

import (
	"errors"
	"net/http"

	"github.com/Sergiom84/Lucy3000/internal/apierror"
	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct{ svc service.ClientService }

func NewClientHandler(svc service.ClientService) *ClientHandler { return &ClientHandler{svc: svc} }

// Create godoc
// @Summary Register a new client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateClientRequest true "Client data"
// @Success 201 {object} dto.ClientResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /api/clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List clients with search and pagination
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name, email or phone fragment"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ClientListResponse
// @Router /api/clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	var filter dto.ClientFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Client profile with recent appointments, sales and history
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientDetailResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("client not found"))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Update a client's data
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param body body dto.UpdateClientRequest true "Fields to update"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateClientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("client not found"))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deactivate godoc
// @Summary Soft-delete a client
// @Tags clients
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /api/clients/{id} [delete]
func (h *ClientHandler) Deactivate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("client not found"))
			return
		}
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddHistory godoc
// @Summary Append a visit entry to the client's history
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param body body dto.AddClientHistoryRequest true "Visit entry"
// @Success 201 {object} dto.ClientHistoryResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/clients/{id}/history [post]
func (h *ClientHandler) AddHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AddClientHistoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddHistory(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("client not found"))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListHistory godoc
// @Summary List a client's visit history
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {array} dto.ClientHistoryResponse
// @Router /api/clients/{id}/history [get]
func (h *ClientHandler) ListHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListHistory(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Birthdays godoc
// @Summary Clients whose birthday falls in the current month
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ClientResponse
// @Router /api/clients/birthdays [get]
func (h *ClientHandler) Birthdays(c *gin.Context) {
	resp, err := h.svc.BirthdaysThisMonth(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
