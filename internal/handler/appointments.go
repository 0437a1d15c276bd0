package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Sergiom84/Lucy3000/internal/apierror"
	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/service"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct{ svc service.AppointmentService }

func NewAppointmentHandler(svc service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

// Create godoc
// @Summary Book an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateAppointmentRequest true "Appointment data"
// @Success 201 {object} dto.AppointmentResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), userID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			c.JSON(http.StatusNotFound, apierror.New("client not found"))
		case errors.Is(err, service.ErrServiceNotFound):
			c.JSON(http.StatusNotFound, apierror.New("service not found"))
		default:
			c.Error(err)
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List appointments with filters
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param client_id query string false "Client ID"
// @Param status query string false "SCHEDULED|CONFIRMED|COMPLETED|CANCELLED|NO_SHOW|all"
// @Success 200 {object} map[string]interface{}
// @Router /api/appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	var filter dto.AppointmentFilter
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

// ByDate godoc
// @Summary Appointments scheduled for a single day
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {array} dto.AppointmentResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/appointments/calendar [get]
func (h *AppointmentHandler) ByDate(c *gin.Context) {
	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("date must be YYYY-MM-DD"))
		return
	}
	resp, err := h.svc.ByDate(c.Request.Context(), day)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Fetch one appointment
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAppointmentNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("appointment not found"))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Reschedule or change the status of an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param body body dto.UpdateAppointmentRequest true "Fields to update"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/appointments/{id} [put]
func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateAppointmentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrAppointmentNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("appointment not found"))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Remove an appointment
// @Tags appointments
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /api/appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrAppointmentNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("appointment not found"))
			return
		}
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
