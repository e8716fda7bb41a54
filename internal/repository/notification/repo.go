package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/hihu/gita-notifier/internal/model"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNoNotificationsFound = errors.New("no notifications found")
)

// Repository provides methods to interact with the notifications table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new notification repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new notification record and returns its ID.
func (r *Repository) Create(ctx context.Context, n model.Notification) (uuid.UUID, error) {
	query := `
		INSERT INTO notifications (
		    user_id, title, body, type, data, delivery_status,
		    error_message, delivery_attempts, priority, scheduled_for, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id;
	`

	data, err := json.Marshal(n.Data)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	if n.ExpiresAt.IsZero() {
		n.ExpiresAt = time.Now().Add(model.DefaultExpiry)
	}

	err = r.db.Master.QueryRowContext(
		ctx, query,
		n.UserID, n.Title, n.Body, n.Type, data, n.DeliveryStatus,
		nullable(n.ErrorMessage), n.DeliveryAttempts, n.Priority, n.ScheduledFor, n.ExpiresAt,
	).Scan(&n.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return n.ID, nil
}

// GetByID retrieves one notification record.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (model.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE id = $1;
	`

	n, err := scanNotification(r.db.Master.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Notification{}, ErrNotificationNotFound
		}

		return model.Notification{}, fmt.Errorf("failed to get notification: %w", err)
	}

	return n, nil
}

// MarkSent transitions a record to sent and stamps the delivery attempt.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE notifications
		SET delivery_status = 'sent',
		    error_message = NULL,
		    last_delivery_attempt = $2,
		    updated_at = $2
		WHERE id = $1;
	`

	res, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// MarkFailed transitions a record to failed, records the error, and
// increments the attempt counter.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string, at time.Time) error {
	query := `
		UPDATE notifications
		SET delivery_status = 'failed',
		    error_message = $2,
		    delivery_attempts = delivery_attempts + 1,
		    last_delivery_attempt = $3,
		    updated_at = $3
		WHERE id = $1;
	`

	res, err := r.db.ExecContext(ctx, query, id, errMsg, at)
	if err != nil {
		return fmt.Errorf("failed to mark notification failed: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// GetDeliveryStatus retrieves the delivery status of a record.
func (r *Repository) GetDeliveryStatus(ctx context.Context, id uuid.UUID) (string, error) {
	query := `
		SELECT delivery_status
		FROM notifications
		WHERE id = $1;
	`

	var status string
	err := r.db.Master.QueryRowContext(ctx, query, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotificationNotFound
		}

		return "", fmt.Errorf("failed to get delivery status: %w", err)
	}

	return status, nil
}

// ListFailed returns failed records still under the attempt ceiling,
// oldest attempt first, for the reconciliation pass.
func (r *Repository) ListFailed(ctx context.Context, maxAttempts int) ([]model.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE delivery_status = 'failed'
		  AND delivery_attempts < $1
		ORDER BY last_delivery_attempt ASC NULLS FIRST;
	`

	rows, err := r.db.QueryContext(ctx, query, maxAttempts)
	if err != nil {
		return nil, fmt.Errorf("failed to list failed notifications: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

// ListByUser returns a user's notifications, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC;
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications, err := collect(rows)
	if err != nil {
		return nil, err
	}

	if len(notifications) == 0 {
		return nil, ErrNoNotificationsFound
	}

	return notifications, nil
}

// MarkRead flags one notification as read.
func (r *Repository) MarkRead(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE,
		    read_at = $2,
		    updated_at = $2
		WHERE id = $1;
	`

	res, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// PurgeExpired deletes records past their expiry instant, regardless
// of delivery status, and returns how many were removed.
func (r *Repository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		DELETE FROM notifications
		WHERE expires_at <= $1;
	`

	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired notifications: %w", err)
	}

	rows, _ := res.RowsAffected()
	return rows, nil
}

const notificationColumns = `
	id, user_id, title, body, type, data, is_read, read_at,
	delivery_status, COALESCE(error_message, ''), delivery_attempts,
	last_delivery_attempt, priority, scheduled_for, expires_at, created_at, updated_at
`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanNotification(s scanner) (model.Notification, error) {
	var (
		n            model.Notification
		data         []byte
		readAt       sql.NullTime
		lastAttempt  sql.NullTime
		scheduledFor sql.NullTime
	)

	err := s.Scan(
		&n.ID, &n.UserID, &n.Title, &n.Body, &n.Type, &data, &n.IsRead, &readAt,
		&n.DeliveryStatus, &n.ErrorMessage, &n.DeliveryAttempts,
		&lastAttempt, &n.Priority, &scheduledFor, &n.ExpiresAt, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return model.Notification{}, err
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &n.Data); err != nil {
			return model.Notification{}, fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	if readAt.Valid {
		t := readAt.Time
		n.ReadAt = &t
	}
	if lastAttempt.Valid {
		t := lastAttempt.Time
		n.LastDeliveryAttempt = &t
	}
	if scheduledFor.Valid {
		t := scheduledFor.Time
		n.ScheduledFor = &t
	}

	return n, nil
}

func collect(rows *sql.Rows) ([]model.Notification, error) {
	var notifications []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}

		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
