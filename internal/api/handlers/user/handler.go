package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/hihu/gita-notifier/internal/api/dto"
	"github.com/hihu/gita-notifier/internal/api/respond"
	"github.com/hihu/gita-notifier/internal/corpus"
	"github.com/hihu/gita-notifier/internal/model"
	"github.com/hihu/gita-notifier/internal/repository/user"
	"github.com/hihu/gita-notifier/internal/service/dispatch"
)

// userRepository defines the user storage operations the Handler depends on.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/user/mock.go -package=mocks
type userRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
	UpdatePreferences(ctx context.Context, id uuid.UUID, enabled bool, deliveryTime, timezone, language, quoteType string) error
	UpdateProgress(ctx context.Context, id uuid.UUID, p model.ReadingProgress) error
}

// quoteSender triggers an immediate quote dispatch outside the schedule.
type quoteSender interface {
	SendNow(ctx context.Context, userID uuid.UUID) (dispatch.Outcome, error)
}

// Handler handles HTTP requests related to users and their
// daily quote preferences.
type Handler struct {
	users     userRepository
	sender    quoteSender
	validator *validator.Validate
}

// NewHandler creates a new Handler instance.
func NewHandler(
	users userRepository,
	sender quoteSender,
	v *validator.Validate,
) *Handler {
	return &Handler{users: users, sender: sender, validator: v}
}

// GetPreferences handles HTTP GET requests for a user's daily quote
// preferences and reading progress.
func (h *Handler) GetPreferences(c *ginext.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	u, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			zlog.Logger.Warn().Interface("id", id).Err(err).Msg("user not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("user not found"))
			return
		}

		zlog.Logger.Error().Err(err).Interface("id", id).Msg("failed to get user")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, u)
}

// UpdatePreferences handles HTTP PUT requests to update a user's
// daily quote preferences.
//
// It validates the request body, checks the delivery time and timezone,
// and persists the new preferences.
func (h *Handler) UpdatePreferences(c *ginext.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdatePreferencesRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	if _, err := time.Parse("15:04", req.DeliveryTime); err != nil {
		zlog.Logger.Warn().Err(err).Str("delivery_time", req.DeliveryTime).Msg("invalid delivery time")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("delivery_time must be in HH:MM format"))
		return
	}

	if _, err := time.LoadLocation(req.Timezone); err != nil {
		zlog.Logger.Warn().Err(err).Str("timezone", req.Timezone).Msg("invalid timezone")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("unknown timezone"))
		return
	}

	err := h.users.UpdatePreferences(
		c.Request.Context(), id,
		*req.Enabled, req.DeliveryTime, req.Timezone, req.Language, req.QuoteType,
	)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			zlog.Logger.Warn().Interface("id", id).Err(err).Msg("user not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("user not found"))
			return
		}

		zlog.Logger.Error().Err(err).Interface("id", id).Msg("failed to update preferences")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, "preferences updated")
}

// ResetProgress handles HTTP POST requests to reset a user's sequential
// reading position to a given chapter and verse.
//
// Completed chapter history is cleared along with the position.
func (h *Handler) ResetProgress(c *ginext.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.ResetProgressRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	if req.Verse > corpus.VerseCount(req.Chapter) {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf(
			"chapter %d has only %d verses", req.Chapter, corpus.VerseCount(req.Chapter),
		))
		return
	}

	progress := corpus.Reset(req.Chapter, req.Verse, time.Now())

	if err := h.users.UpdateProgress(c.Request.Context(), id, progress); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			zlog.Logger.Warn().Interface("id", id).Err(err).Msg("user not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("user not found"))
			return
		}

		zlog.Logger.Error().Err(err).Interface("id", id).Msg("failed to reset progress")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, progress)
}

// SendNow handles HTTP POST requests to send a daily quote to a user
// immediately, bypassing the schedule window.
func (h *Handler) SendNow(c *ginext.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	outcome, err := h.sender.SendNow(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			zlog.Logger.Warn().Interface("id", id).Err(err).Msg("user not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("user not found"))
			return
		}

		zlog.Logger.Error().Err(err).Interface("id", id).Msg("failed to send quote")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, outcome)
}

// parseID extracts and validates the user ID from the URL parameters.
func parseID(c *ginext.Context) (uuid.UUID, bool) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Interface("idStr", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return uuid.Nil, false
	}

	if id == uuid.Nil {
		zlog.Logger.Warn().Msg("missing id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing id"))
		return uuid.Nil, false
	}

	return id, true
}
