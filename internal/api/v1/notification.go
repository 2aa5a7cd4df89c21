package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openhoa/openhoa/internal/logger"
	"github.com/openhoa/openhoa/internal/service"
	"github.com/openhoa/openhoa/internal/types"
)

type NotificationHandler struct {
	service service.NotificationService
	log     *logger.Logger
}

func NewNotificationHandler(service service.NotificationService, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{service: service, log: log}
}

func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req service.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	notifications, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, notifications)
}

// ListMyNotifications lists the caller's notifications, newest first
func (h *NotificationHandler) ListMyNotifications(c *gin.Context) {
	notifications, err := h.service.ListByRecipient(c.Request.Context(), types.GetUserID(c.Request.Context()))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	n, err := h.service.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.service.MarkAllRead(c.Request.Context(), types.GetUserID(c.Request.Context())); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
