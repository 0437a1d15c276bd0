package handler

import (
	"net/http"

	"github.com/Sergiom84/Lucy3000/internal/apierror"
	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct{ svc service.NotificationService }

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List godoc
// @Summary List notifications with the unread count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param is_read query string false "true|false"
// @Param type query string false "APPOINTMENT|LOW_STOCK|BIRTHDAY|SYSTEM"
// @Success 200 {object} map[string]interface{}
// @Router /api/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	var filter dto.NotificationFilter
	if !bindQuery(c, &filter) {
		return
	}
	items, unread, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "unread_count": unread})
}

// MarkRead godoc
// @Summary Mark one notification as read
// @Tags notifications
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /api/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.MarkRead(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New("notification not found"))
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAllRead godoc
// @Summary Mark every notification as read
// @Tags notifications
// @Security BearerAuth
// @Success 204
// @Router /api/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.svc.MarkAllRead(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete godoc
// @Summary Delete a notification
// @Tags notifications
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /api/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New("notification not found"))
		return
	}
	c.Status(http.StatusNoContent)
}
