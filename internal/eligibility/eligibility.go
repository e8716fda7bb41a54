// Package eligibility decides whether a user is due a daily quote at a
// given instant, based on their configured local delivery time and
// time zone and on when they were last sent one.
package eligibility

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/hihu/gita-notifier/internal/model"
)

// Resolver evaluates per-user delivery eligibility.
//
// The delivery window is evaluated in the user's own time zone, while
// the sent-today comparison uses dateZone. The surrounding application
// wires dateZone to the server's local zone, which does not match the
// per-user window near midnight across offsets; the zone is a
// parameter here so the behavior is explicit and testable rather than
// buried.
type Resolver struct {
	windowMinutes int
	dateZone      *time.Location
}

// New creates a Resolver with the given tolerance window (minutes on
// either side of the user's delivery time) and the zone used for
// calendar-day comparison. A nil dateZone falls back to time.Local.
func New(windowMinutes int, dateZone *time.Location) *Resolver {
	if dateZone == nil {
		dateZone = time.Local
	}
	return &Resolver{windowMinutes: windowMinutes, dateZone: dateZone}
}

// IsEligible reports whether the user should be notified now. Callers
// filter on the enabled flag and device token before invoking; this
// checks the time window and the once-per-day guard. Any malformed
// configuration resolves to false and is logged, never returned as an
// error, so one bad record cannot abort a batch.
func (r *Resolver) IsEligible(u model.User, now time.Time) bool {
	hour, minute, err := parseClock(u.DailyQuotes.Time)
	if err != nil {
		zlog.Logger.Warn().Err(err).Str("user_id", u.ID.String()).Str("time", u.DailyQuotes.Time).Msg("invalid delivery time")
		return false
	}

	loc, err := time.LoadLocation(u.DailyQuotes.Timezone)
	if err != nil {
		zlog.Logger.Warn().Err(err).Str("user_id", u.ID.String()).Str("timezone", u.DailyQuotes.Timezone).Msg("invalid time zone")
		return false
	}

	local := now.In(loc)
	scheduledMinutes := hour*60 + minute
	currentMinutes := local.Hour()*60 + local.Minute()

	// No wraparound correction: a delivery time right at the midnight
	// boundary can miss its window.
	diff := currentMinutes - scheduledMinutes
	if diff < 0 {
		diff = -diff
	}
	if diff > r.windowMinutes {
		return false
	}

	return !r.SentToday(u.DailyQuotes.LastSentAt, now)
}

// SentToday reports whether lastSent falls on the same calendar day as
// now, both rendered in the resolver's date zone.
func (r *Resolver) SentToday(lastSent *time.Time, now time.Time) bool {
	return SentToday(lastSent, now, r.dateZone)
}

// SentToday reports whether lastSent falls on the same calendar day as
// now, both rendered in zone. The dispatcher re-checks this guard on
// the direct send path, where no resolver is in play.
func SentToday(lastSent *time.Time, now time.Time, zone *time.Location) bool {
	if lastSent == nil {
		return false
	}

	y1, m1, d1 := lastSent.In(zone).Date()
	y2, m2, d2 := now.In(zone).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// parseClock parses an "HH:MM" string into hour and minute.
func parseClock(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour %q: %w", parts[0], err)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minute %q: %w", parts[1], err)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("clock out of range: %q", s)
	}

	return hour, minute, nil
}
