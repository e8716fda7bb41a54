package model

import (
	"time"

	"github.com/google/uuid"
)

// Quote types a user may subscribe to.
const (
	QuoteTypeRandom     = "random"
	QuoteTypeSequential = "sequential"
	QuoteTypeThemed     = "themed"
)

// Languages supported for quote delivery.
const (
	LanguageEnglish  = "english"
	LanguageHindi    = "hindi"
	LanguageSanskrit = "sanskrit"
)

// DailyQuotes holds a user's daily quote delivery preferences.
type DailyQuotes struct {
	Enabled    bool       `json:"enabled"`      // whether daily quotes are turned on
	Time       string     `json:"time"`         // local delivery time in "HH:MM" format
	Timezone   string     `json:"timezone"`     // IANA time zone name, e.g. "Asia/Kolkata"
	LastSentAt *time.Time `json:"last_sent_at"` // when the last daily quote was sent, nil if never
}

// ReadingProgress tracks a user's linear position in the Gita for
// the sequential quote type.
type ReadingProgress struct {
	CurrentChapter    int       `json:"current_chapter"`    // chapter of the next verse to present, 1..18
	CurrentVerse      int       `json:"current_verse"`      // verse of the next verse to present, 1-based
	CompletedChapters []int     `json:"completed_chapters"` // chapters read end to end, retained across wraps
	TotalRead         int       `json:"total_read"`         // total verses presented so far
	LastUpdated       time.Time `json:"last_updated"`       // when the cursor last advanced
}

// User is the subset of the user aggregate the notification engine
// reads and selectively updates. It is never created or deleted here.
type User struct {
	ID          uuid.UUID       `json:"id"`
	Email       string          `json:"email"`
	FCMToken    string          `json:"fcm_token"` // device token, empty if no device registered
	Language    string          `json:"language"`
	QuoteType   string          `json:"quote_type"`
	DailyQuotes DailyQuotes     `json:"daily_quotes"`
	Progress    ReadingProgress `json:"progress"`
}
