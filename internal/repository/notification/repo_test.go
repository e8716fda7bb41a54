package notification

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/dbpg"

	"github.com/hihu/gita-notifier/internal/model"
)

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}

	wrappedDB := &dbpg.DB{Master: db}
	repo := NewRepository(wrappedDB)

	return repo, mock
}

func notificationRow(id, userID uuid.UUID, status string, attempts int) []driver.Value {
	payload, _ := json.Marshal(model.Payload{VerseRef: "2.47", Language: "english"})
	now := time.Now()

	return []driver.Value{
		id, userID, "🕉️ Daily Bhagavad Gita Wisdom", "You have the right to perform...", "daily_quote",
		payload, false, nil,
		status, "", attempts,
		nil, "normal", now, now.Add(30 * 24 * time.Hour), now, now,
	}
}

func notificationColumnsList() []string {
	return []string{
		"id", "user_id", "title", "body", "type", "data", "is_read", "read_at",
		"delivery_status", "error_message", "delivery_attempts",
		"last_delivery_attempt", "priority", "scheduled_for", "expires_at", "created_at", "updated_at",
	}
}

func TestCreate(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	n := model.Notification{
		UserID:         uuid.New(),
		Title:          "🕉️ Daily Bhagavad Gita Wisdom",
		Body:           "You have the right to perform...",
		Type:           model.TypeDailyQuote,
		DeliveryStatus: model.StatusPending,
		Priority:       model.PriorityNormal,
		Data:           model.Payload{VerseRef: "2.47"},
	}

	mock.ExpectQuery(`(?s)INSERT INTO notifications.*RETURNING id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))

	got, err := repo.Create(context.Background(), n)

	assert.NoError(t, err)
	assert.Equal(t, id, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	mock.ExpectQuery(`(?s)SELECT.*FROM notifications.*WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(notificationColumnsList()))

	_, err := repo.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestGetByID_UnmarshalsPayload(t *testing.T) {
	repo, mock := setupMockDB(t)

	id, userID := uuid.New(), uuid.New()
	mock.ExpectQuery(`(?s)SELECT.*FROM notifications.*WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(notificationColumnsList()).
			AddRow(notificationRow(id, userID, "pending", 0)...))

	n, err := repo.GetByID(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, userID, n.UserID)
	assert.Equal(t, "2.47", n.Data.VerseRef)
	assert.Nil(t, n.ReadAt)
	assert.Nil(t, n.LastDeliveryAttempt)
}

func TestMarkSent(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	at := time.Now()

	mock.ExpectExec(`(?s)UPDATE notifications.*SET delivery_status = 'sent'`).
		WithArgs(id, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkSent(context.Background(), id, at))
}

func TestMarkFailed_IncrementsAttempts(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	at := time.Now()

	mock.ExpectExec(`(?s)UPDATE notifications.*delivery_attempts = delivery_attempts \+ 1`).
		WithArgs(id, "gateway timeout", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkFailed(context.Background(), id, "gateway timeout", at))
}

func TestGetDeliveryStatus(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	mock.ExpectQuery(`(?s)SELECT delivery_status.*FROM notifications`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"delivery_status"}).AddRow("sent"))

	status, err := repo.GetDeliveryStatus(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, "sent", status)
}

func TestListFailed_UnderCeiling(t *testing.T) {
	repo, mock := setupMockDB(t)

	rows := sqlmock.NewRows(notificationColumnsList()).
		AddRow(notificationRow(uuid.New(), uuid.New(), "failed", 1)...).
		AddRow(notificationRow(uuid.New(), uuid.New(), "failed", 2)...)

	mock.ExpectQuery(`(?s)SELECT.*delivery_status = 'failed'.*delivery_attempts < \$1`).
		WithArgs(3).
		WillReturnRows(rows)

	failed, err := repo.ListFailed(context.Background(), 3)

	assert.NoError(t, err)
	assert.Len(t, failed, 2)
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock := setupMockDB(t)

	userID := uuid.New()
	mock.ExpectQuery(`(?s)SELECT.*FROM notifications.*WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(notificationColumnsList()))

	_, err := repo.ListByUser(context.Background(), userID)

	assert.ErrorIs(t, err, ErrNoNotificationsFound)
}

func TestMarkRead_NotFound(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	at := time.Now()

	mock.ExpectExec(`(?s)UPDATE notifications.*SET is_read = TRUE`).
		WithArgs(id, at).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.MarkRead(context.Background(), id, at), ErrNotificationNotFound)
}

func TestPurgeExpired(t *testing.T) {
	repo, mock := setupMockDB(t)

	now := time.Now()
	mock.ExpectExec(`(?s)DELETE FROM notifications.*WHERE expires_at <= \$1`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 7))

	purged, err := repo.PurgeExpired(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), purged)
}
