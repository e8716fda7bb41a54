package notification

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/hihu/gita-notifier/internal/api/respond"
	"github.com/hihu/gita-notifier/internal/config"
	"github.com/hihu/gita-notifier/internal/model"
	"github.com/hihu/gita-notifier/internal/repository/notification"
)

// notificationRepository defines the notification storage operations
// the Handler depends on.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/notification/mock.go -package=mocks
type notificationRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID, at time.Time) error
}

// statusService resolves the delivery status of a notification,
// consulting the cache before storage.
type statusService interface {
	DeliveryStatus(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (string, error)
}

// Handler handles HTTP requests related to notification records.
type Handler struct {
	notifications notificationRepository
	status        statusService
	cfg           *config.Config
}

// NewHandler creates a new Handler instance.
func NewHandler(
	n notificationRepository,
	s statusService,
	cfg *config.Config,
) *Handler {
	return &Handler{notifications: n, status: s, cfg: cfg}
}

// ListByUser handles HTTP GET requests to retrieve a user's
// notification history, newest first.
func (h *Handler) ListByUser(c *ginext.Context) {
	idStr := c.Param("id")
	userID, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Interface("idStr", idStr).Msg("failed to parse user id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	notifications, err := h.notifications.ListByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, notification.ErrNoNotificationsFound) {
			zlog.Logger.Warn().Err(err).Interface("user_id", userID).Msg("no notifications found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("no notifications found"))
			return
		}

		zlog.Logger.Error().Err(err).Interface("user_id", userID).Msg("failed to list notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, notifications)
}

// GetStatus handles HTTP GET requests to retrieve the delivery status
// of a notification.
func (h *Handler) GetStatus(c *ginext.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Interface("idStr", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	if id == uuid.Nil {
		zlog.Logger.Warn().Msg("missing id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing id"))
		return
	}

	status, err := h.status.DeliveryStatus(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		if errors.Is(err, notification.ErrNotificationNotFound) {
			zlog.Logger.Warn().Interface("id", id).Err(err).Msg("notification not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
			return
		}

		zlog.Logger.Error().Err(err).Interface("id", id).Msg("failed to get notification status")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, status)
}

// MarkRead handles HTTP PATCH requests to mark a notification as read.
func (h *Handler) MarkRead(c *ginext.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Interface("idStr", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	if id == uuid.Nil {
		zlog.Logger.Warn().Msg("missing id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing id"))
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), id, time.Now()); err != nil {
		if errors.Is(err, notification.ErrNotificationNotFound) {
			zlog.Logger.Warn().Interface("id", id).Err(err).Msg("notification not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
			return
		}

		zlog.Logger.Error().Err(err).Interface("id", id).Msg("failed to mark notification as read")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, "notification marked as read")
}
