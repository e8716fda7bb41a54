package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"

	"github.com/hihu/gita-notifier/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `
	id, email, COALESCE(fcm_token, ''), language, quote_type,
	daily_quotes_enabled, delivery_time, timezone, last_sent_at,
	current_chapter, current_verse, completed_chapters, total_read, progress_updated_at
`

// Repository provides access to the notification-relevant slice of the
// users table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new user repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// ListDueCandidates returns all users with daily quotes enabled and a
// registered device token. Eligibility beyond that is the resolver's
// job.
func (r *Repository) ListDueCandidates(ctx context.Context) ([]model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE daily_quotes_enabled = TRUE
		  AND fcm_token IS NOT NULL
		  AND fcm_token <> ''
		ORDER BY id;
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list due candidates: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}

		users = append(users, u)
	}

	return users, rows.Err()
}

// GetByID retrieves one user.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1;
	`

	u, err := scanUser(r.db.Master.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}

		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// MarkSent stamps the user's last-sent timestamp, conditionally: the
// update only applies when no quote has been recorded for the same
// calendar day yet. It reports whether the stamp was taken, so two
// overlapping runners cannot both claim today's send.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) (bool, error) {
	query := `
		UPDATE users
		SET last_sent_at = $2
		WHERE id = $1
		  AND (last_sent_at IS NULL OR last_sent_at::date <> $2::date);
	`

	res, err := r.db.ExecContext(ctx, query, id, sentAt)
	if err != nil {
		return false, fmt.Errorf("failed to mark user sent: %w", err)
	}

	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

// UpdateProgress persists the user's sequential reading cursor.
func (r *Repository) UpdateProgress(ctx context.Context, id uuid.UUID, p model.ReadingProgress) error {
	query := `
		UPDATE users
		SET current_chapter = $2,
		    current_verse = $3,
		    completed_chapters = $4,
		    total_read = $5,
		    progress_updated_at = $6
		WHERE id = $1;
	`

	completed := make(pq.Int64Array, 0, len(p.CompletedChapters))
	for _, ch := range p.CompletedChapters {
		completed = append(completed, int64(ch))
	}

	res, err := r.db.ExecContext(ctx, query, id, p.CurrentChapter, p.CurrentVerse, completed, p.TotalRead, p.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdatePreferences persists the user's daily quote settings.
func (r *Repository) UpdatePreferences(ctx context.Context, id uuid.UUID, enabled bool, deliveryTime, timezone, language, quoteType string) error {
	query := `
		UPDATE users
		SET daily_quotes_enabled = $2,
		    delivery_time = $3,
		    timezone = $4,
		    language = $5,
		    quote_type = $6
		WHERE id = $1;
	`

	res, err := r.db.ExecContext(ctx, query, id, enabled, deliveryTime, timezone, language, quoteType)
	if err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(s scanner) (model.User, error) {
	var (
		u          model.User
		lastSent   sql.NullTime
		completed  pq.Int64Array
		progressAt sql.NullTime
	)

	err := s.Scan(
		&u.ID, &u.Email, &u.FCMToken, &u.Language, &u.QuoteType,
		&u.DailyQuotes.Enabled, &u.DailyQuotes.Time, &u.DailyQuotes.Timezone, &lastSent,
		&u.Progress.CurrentChapter, &u.Progress.CurrentVerse, &completed, &u.Progress.TotalRead, &progressAt,
	)
	if err != nil {
		return model.User{}, err
	}

	if lastSent.Valid {
		t := lastSent.Time
		u.DailyQuotes.LastSentAt = &t
	}
	if progressAt.Valid {
		u.Progress.LastUpdated = progressAt.Time
	}

	u.Progress.CompletedChapters = make([]int, 0, len(completed))
	for _, ch := range completed {
		u.Progress.CompletedChapters = append(u.Progress.CompletedChapters, int(ch))
	}

	return u, nil
}
