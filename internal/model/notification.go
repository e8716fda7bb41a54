package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	TypeDailyQuote   = "daily_quote"
	TypeReminder     = "reminder"
	TypeSystem       = "system"
	TypeAnnouncement = "announcement"
	TypePersonalized = "personalized"
)

// Delivery statuses for a notification record.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// Priority levels.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// DefaultExpiry is how long a notification record is kept before purge.
const DefaultExpiry = 30 * 24 * time.Hour

// Payload carries the structured data attached to a notification,
// delivered alongside the short title/body pair.
type Payload struct {
	FullQuote string            `json:"full_quote"` // untruncated quote text
	VerseRef  string            `json:"verse_ref"`  // "chapter.verse" reference, e.g. "2.47"
	Language  string            `json:"language"`
	QuoteType string            `json:"quote_type"`
	ActionURL string            `json:"action_url"`
	Metadata  map[string]string `json:"metadata"`
}

// Notification represents one delivery attempt/intent for a user.
type Notification struct {
	ID                  uuid.UUID  `json:"id"`
	UserID              uuid.UUID  `json:"user_id"`
	Title               string     `json:"title"`
	Body                string     `json:"body"` // truncated display text
	Type                string     `json:"type"`
	Data                Payload    `json:"data"`
	IsRead              bool       `json:"is_read"`
	ReadAt              *time.Time `json:"read_at"`
	DeliveryStatus      string     `json:"delivery_status"` // pending, sent or failed
	ErrorMessage        string     `json:"error_message"`
	DeliveryAttempts    int        `json:"delivery_attempts"` // monotonically non-decreasing
	LastDeliveryAttempt *time.Time `json:"last_delivery_attempt"`
	Priority            string     `json:"priority"`
	ScheduledFor        *time.Time `json:"scheduled_for"`
	ExpiresAt           time.Time  `json:"expires_at"` // purged after this instant regardless of status
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
