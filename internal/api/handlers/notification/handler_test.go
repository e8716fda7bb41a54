package notification

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/retry"

	mocks "github.com/hihu/gita-notifier/internal/mocks/api/handlers/notification"
	"github.com/hihu/gita-notifier/internal/config"
	"github.com/hihu/gita-notifier/internal/model"
	"github.com/hihu/gita-notifier/internal/repository/notification"
)

func setupHandler(t *testing.T) (*Handler, *mocks.MocknotificationRepository, *mocks.MockstatusService, *config.Config) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMocknotificationRepository(ctrl)
	status := mocks.NewMockstatusService(ctrl)
	cfg := &config.Config{Retry: retry.Strategy{}}
	handler := NewHandler(repo, status, cfg)
	return handler, repo, status, cfg
}

func testContext(method, path string, id uuid.UUID) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	return c, w
}

func TestListByUser_Success(t *testing.T) {
	handler, repo, _, _ := setupHandler(t)

	userID := uuid.New()
	repo.EXPECT().ListByUser(gomock.Any(), userID).Return([]model.Notification{
		{ID: uuid.New(), UserID: userID, Title: "🕉️ Daily Bhagavad Gita Wisdom"},
		{ID: uuid.New(), UserID: userID, Title: "🕉️ Daily Bhagavad Gita Wisdom"},
	}, nil)

	c, w := testContext(http.MethodGet, "/api/users/"+userID.String()+"/notifications", userID)
	handler.ListByUser(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestListByUser_Empty(t *testing.T) {
	handler, repo, _, _ := setupHandler(t)

	userID := uuid.New()
	repo.EXPECT().ListByUser(gomock.Any(), userID).Return(nil, notification.ErrNoNotificationsFound)

	c, w := testContext(http.MethodGet, "/api/users/"+userID.String()+"/notifications", userID)
	handler.ListByUser(c)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestGetStatus_Success(t *testing.T) {
	handler, _, status, cfg := setupHandler(t)

	id := uuid.New()
	status.EXPECT().DeliveryStatus(gomock.Any(), cfg.Retry, id).Return("sent", nil)

	c, w := testContext(http.MethodGet, "/api/notifications/"+id.String()+"/status", id)
	handler.GetStatus(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestGetStatus_NotFound(t *testing.T) {
	handler, _, status, cfg := setupHandler(t)

	id := uuid.New()
	status.EXPECT().DeliveryStatus(gomock.Any(), cfg.Retry, id).Return("", notification.ErrNotificationNotFound)

	c, w := testContext(http.MethodGet, "/api/notifications/"+id.String()+"/status", id)
	handler.GetStatus(c)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestGetStatus_InvalidID(t *testing.T) {
	handler, _, _, _ := setupHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/notifications/oops/status", nil)
	c.Params = gin.Params{{Key: "id", Value: "oops"}}

	handler.GetStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestMarkRead_Success(t *testing.T) {
	handler, repo, _, _ := setupHandler(t)

	id := uuid.New()
	repo.EXPECT().
		MarkRead(gomock.Any(), id, gomock.AssignableToTypeOf(time.Time{})).
		Return(nil)

	c, w := testContext(http.MethodPatch, "/api/notifications/"+id.String()+"/read", id)
	handler.MarkRead(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestMarkRead_NotFound(t *testing.T) {
	handler, repo, _, _ := setupHandler(t)

	id := uuid.New()
	repo.EXPECT().
		MarkRead(gomock.Any(), id, gomock.Any()).
		Return(notification.ErrNotificationNotFound)

	c, w := testContext(http.MethodPatch, "/api/notifications/"+id.String()+"/read", id)
	handler.MarkRead(c)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}
