package handler

import (
	"errors"
	"net/http"

	"github.com/Sergiom84/Lucy3000/internal/apierror"
	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/service"

	"github.com/gin-gonic/gin"
)

type CashHandler struct{ svc service.CashService }

func NewCashHandler(svc service.CashService) *CashHandler { return &CashHandler{svc: svc} }

// Open godoc
// @Summary Open the cash register for the day
// @Tags cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.OpenSessionRequest true "Opening balance"
// @Success 201 {object} dto.CashSessionResponse
// @Failure 409 {object} apierror.APIError
// @Router /api/cash/open [post]
func (h *CashHandler) Open(c *gin.Context) {
	var req dto.OpenSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Open(c.Request.Context(), userID(c), req)
	if err != nil {
		if errors.Is(err, service.ErrSessionAlreadyOpen) {
			c.JSON(http.StatusConflict, apierror.New("a cash session is already open"))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Close godoc
// @Summary Close a cash session with the counted balance
// @Tags cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body dto.CloseSessionRequest true "Counted closing balance"
// @Success 200 {object} dto.CashSessionResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /api/cash/{id}/close [post]
func (h *CashHandler) Close(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CloseSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Close(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, apierror.New("cash session not found"))
		case errors.Is(err, service.ErrSessionClosed):
			c.JSON(http.StatusConflict, apierror.New("cash session is already closed"))
		default:
			c.Error(err)
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddMovement godoc
// @Summary Register a manual cash movement in the open session
// @Tags cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body dto.AddMovementRequest true "Movement data"
// @Success 201 {object} dto.CashMovementResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /api/cash/{id}/movements [post]
func (h *CashHandler) AddMovement(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AddMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddMovement(c.Request.Context(), id, userID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, apierror.New("cash session not found"))
		case errors.Is(err, service.ErrSessionClosed):
			c.JSON(http.StatusConflict, apierror.New("cash session is already closed"))
		default:
			c.Error(err)
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Current godoc
// @Summary The currently open cash session, if any
// @Tags cash
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CashSessionResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/cash/current [get]
func (h *CashHandler) Current(c *gin.Context) {
	resp, err := h.svc.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("no open cash session"))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Fetch one cash session with its movements
// @Tags cash
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.CashSessionResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/cash/{id} [get]
func (h *CashHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("cash session not found"))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary List past cash sessions
// @Tags cash
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param status query string false "OPEN|CLOSED|all"
// @Success 200 {object} dto.CashSessionListResponse
// @Router /api/cash [get]
func (h *CashHandler) List(c *gin.Context) {
	var filter dto.CashSessionFilter
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
