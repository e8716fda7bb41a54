// Package dispatch builds and delivers one daily quote notification
// for one user, recording the outcome on a notification record and on
// the user's last-sent bookkeeping.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/hihu/gita-notifier/internal/corpus"
	"github.com/hihu/gita-notifier/internal/eligibility"
	"github.com/hihu/gita-notifier/internal/model"
	"github.com/hihu/gita-notifier/internal/quote"
	"github.com/hihu/gita-notifier/internal/rabbitmq/queue"
	"github.com/hihu/gita-notifier/pkg/fcm"
)

// NotificationTitle is the fixed title of a daily quote push.
const NotificationTitle = "🕉️ Daily Bhagavad Gita Wisdom"

//go:generate mockgen -source=service.go -destination=../../mocks/dispatch/mock.go -package=mocks

type userRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
	MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) (bool, error)
	UpdateProgress(ctx context.Context, id uuid.UUID, p model.ReadingProgress) error
}

type notificationRepository interface {
	Create(ctx context.Context, n model.Notification) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Notification, error)
	GetDeliveryStatus(ctx context.Context, id uuid.UUID) (string, error)
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string, at time.Time) error
	ListFailed(ctx context.Context, maxAttempts int) ([]model.Notification, error)
}

type quoteProvider interface {
	DailyQuote(ctx context.Context, language, quoteType string, progress model.ReadingProgress) quote.Result
}

type pushGateway interface {
	Send(ctx context.Context, msg fcm.Message) (string, error)
}

type retryPublisher interface {
	Publish(msg queue.RetryMessage, routingKey string, strategy retry.Strategy) error
}

type statusCache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

// Outcome is the result of one dispatch for one user.
type Outcome struct {
	UserID         uuid.UUID `json:"user_id"`
	NotificationID uuid.UUID `json:"notification_id,omitempty"`
	Success        bool      `json:"success"`
	Skipped        bool      `json:"skipped,omitempty"`
	Reason         string    `json:"reason,omitempty"` // why the user was skipped
	Source         string    `json:"source,omitempty"` // where the content came from
	Error          string    `json:"error,omitempty"`
}

// Options carries the dispatch tuning knobs.
type Options struct {
	BodyLimit      int            // display truncation length for the push body
	GatewayTimeout time.Duration  // per-call deadline on the delivery gateway
	MaxAttempts    int            // retry ceiling for failed deliveries
	RoutingKey     string         // retry queue routing key
	DateZone       *time.Location // calendar-day zone for the once-per-day guard; nil means time.Local
}

// Service dispatches daily quotes.
type Service struct {
	users  userRepository
	notifs notificationRepository
	quotes quoteProvider
	push   pushGateway
	queue  retryPublisher
	cache  statusCache
	opts   Options

	locks sync.Map // per-user mutexes serializing the cursor read-modify-write
	now   func() time.Time
}

// NewService creates a dispatch service.
func NewService(
	users userRepository,
	notifs notificationRepository,
	quotes quoteProvider,
	push pushGateway,
	q retryPublisher,
	cache statusCache,
	opts Options,
) *Service {
	return &Service{
		users:  users,
		notifs: notifs,
		quotes: quotes,
		push:   push,
		queue:  q,
		cache:  cache,
		opts:   opts,
		now:    time.Now,
	}
}

// SendDailyQuote generates content for the user, advances the
// sequential cursor when applicable, and hands one push to the
// delivery gateway. Gateway failure is recorded on the notification
// record and reported in the Outcome, not returned as an error; only
// store failures that prevent a dispatch entirely produce an error.
func (s *Service) SendDailyQuote(ctx context.Context, strategy retry.Strategy, userID uuid.UUID) (Outcome, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return Outcome{UserID: userID, Error: err.Error()}, fmt.Errorf("get user: %w", err)
	}

	if !user.DailyQuotes.Enabled || user.FCMToken == "" {
		return Outcome{UserID: userID, Skipped: true, Reason: "user not eligible for notifications"}, nil
	}

	// The batch runner filters on the window, but the direct path and
	// concurrent runners land here unfiltered. Re-check before calling
	// the gateway so the once-per-day guard holds on every path, not
	// just in the stamp bookkeeping.
	if eligibility.SentToday(user.DailyQuotes.LastSentAt, s.now(), s.dateZone()) {
		return Outcome{UserID: userID, Skipped: true, Reason: "already sent today"}, nil
	}

	language := user.Language
	if language == "" {
		language = model.LanguageEnglish
	}
	quoteType := user.QuoteType
	if quoteType == "" {
		quoteType = model.QuoteTypeRandom
	}

	// Content is generated against the current cursor position; the
	// cursor advances afterwards so the user sees the verse they are
	// "at".
	res := s.quotes.DailyQuote(ctx, language, quoteType, user.Progress)

	verseRef := res.Parsed.VerseRef
	if quoteType == model.QuoteTypeSequential {
		next, presented := corpus.Advance(user.Progress, s.now())
		if verseRef == "" {
			verseRef = presented
		}

		if err := s.users.UpdateProgress(ctx, userID, next); err != nil {
			// Content is already in hand; deliver anyway and let the
			// next advance re-derive from the stale cursor.
			zlog.Logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to update reading progress")
		}
	}

	record := model.Notification{
		UserID: userID,
		Title:  NotificationTitle,
		Body:   truncate(res.Text, s.opts.BodyLimit) + "...",
		Type:   model.TypeDailyQuote,
		Data: model.Payload{
			FullQuote: res.Text,
			VerseRef:  verseRef,
			Language:  language,
			QuoteType: quoteType,
			Metadata: map[string]string{
				"source":    res.Source,
				"scheduled": "true",
			},
		},
		DeliveryStatus: model.StatusPending,
		Priority:       model.PriorityNormal,
		ExpiresAt:      s.now().Add(model.DefaultExpiry),
	}

	notificationID, err := s.notifs.Create(ctx, record)
	if err != nil {
		return Outcome{UserID: userID, Error: err.Error()}, fmt.Errorf("create notification record: %w", err)
	}

	msg := fcm.Message{
		Token: user.FCMToken,
		Title: record.Title,
		Body:  record.Body,
		Data:  s.payloadData(notificationID, record.Data, res),
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.opts.GatewayTimeout)
	defer cancel()

	messageID, err := s.push.Send(sendCtx, msg)
	sentAt := s.now()

	if err != nil {
		s.recordFailure(ctx, strategy, notificationID, userID, 1, err)
		return Outcome{
			UserID:         userID,
			NotificationID: notificationID,
			Success:        false,
			Source:         res.Source,
			Error:          err.Error(),
		}, nil
	}

	zlog.Logger.Info().
		Str("user_id", userID.String()).
		Str("notification_id", notificationID.String()).
		Str("fcm_message_id", messageID).
		Str("source", res.Source).
		Msg("daily quote delivered")

	if err := s.notifs.MarkSent(ctx, notificationID, sentAt); err != nil {
		zlog.Logger.Error().Err(err).Str("notification_id", notificationID.String()).Msg("failed to mark notification sent")
	}

	// Conditional stamp: a concurrent runner that already claimed
	// today's send loses nothing, we just log it.
	updated, err := s.users.MarkSent(ctx, userID, sentAt)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to stamp last sent")
	} else if !updated {
		zlog.Logger.Warn().Str("user_id", userID.String()).Msg("last sent already stamped for today")
	}

	s.cacheStatus(ctx, strategy, notificationID, model.StatusSent)

	return Outcome{
		UserID:         userID,
		NotificationID: notificationID,
		Success:        true,
		Source:         res.Source,
	}, nil
}

// RetryDelivery re-attempts one failed notification record, used by
// the reconciliation workers. Records already sent or at the attempt
// ceiling are left alone.
func (s *Service) RetryDelivery(ctx context.Context, strategy retry.Strategy, notificationID uuid.UUID) error {
	n, err := s.notifs.GetByID(ctx, notificationID)
	if err != nil {
		return fmt.Errorf("get notification: %w", err)
	}

	if n.DeliveryStatus == model.StatusSent {
		return nil
	}

	if n.DeliveryAttempts >= s.opts.MaxAttempts {
		zlog.Logger.Warn().
			Str("notification_id", notificationID.String()).
			Int("attempts", n.DeliveryAttempts).
			Msg("retry ceiling reached, suppressing")
		return nil
	}

	user, err := s.users.GetByID(ctx, n.UserID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	if user.FCMToken == "" {
		if err := s.notifs.MarkFailed(ctx, notificationID, "user has no device token", s.now()); err != nil {
			return fmt.Errorf("mark failed: %w", err)
		}
		return nil
	}

	msg := fcm.Message{
		Token: user.FCMToken,
		Title: n.Title,
		Body:  n.Body,
		Data: map[string]string{
			"type":            n.Type,
			"notification_id": n.ID.String(),
			"full_quote":      n.Data.FullQuote,
			"verse_ref":       n.Data.VerseRef,
			"language":        n.Data.Language,
			"quote_type":      n.Data.QuoteType,
		},
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.opts.GatewayTimeout)
	defer cancel()

	if _, err := s.push.Send(sendCtx, msg); err != nil {
		s.recordFailure(ctx, strategy, notificationID, n.UserID, n.DeliveryAttempts+1, err)
		return nil
	}

	if err := s.notifs.MarkSent(ctx, notificationID, s.now()); err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}

	s.cacheStatus(ctx, strategy, notificationID, model.StatusSent)
	zlog.Logger.Info().Str("notification_id", notificationID.String()).Msg("failed delivery reconciled")

	return nil
}

// RequeueStranded republishes failed records still under the attempt
// ceiling to the retry queue. A crash between MarkFailed and the retry
// publish leaves a record failed with no queue message; running this
// at startup picks those back up. Returns the number requeued.
func (s *Service) RequeueStranded(ctx context.Context, strategy retry.Strategy) (int, error) {
	records, err := s.notifs.ListFailed(ctx, s.opts.MaxAttempts)
	if err != nil {
		return 0, fmt.Errorf("list failed notifications: %w", err)
	}

	requeued := 0
	for _, n := range records {
		msg := queue.RetryMessage{
			NotificationID: n.ID,
			UserID:         n.UserID,
			Attempts:       n.DeliveryAttempts,
			LastError:      n.ErrorMessage,
		}

		if err := s.queue.Publish(msg, s.opts.RoutingKey, strategy); err != nil {
			zlog.Logger.Error().Err(err).Str("notification_id", n.ID.String()).Msg("failed to requeue stranded delivery")
			continue
		}

		requeued++
	}

	return requeued, nil
}

// DeliveryStatus returns a record's delivery status, cache first and
// the store on a miss.
func (s *Service) DeliveryStatus(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (string, error) {
	status, err := s.cache.GetWithRetry(ctx, strategy, id.String())
	if err != nil && !errors.Is(err, redis.Nil) {
		zlog.Logger.Error().Err(err).Str("notification_id", id.String()).Msg("failed to get delivery status from cache")
	}

	if errors.Is(err, redis.Nil) || status == "" {
		status, err = s.notifs.GetDeliveryStatus(ctx, id)
		if err != nil {
			return "", fmt.Errorf("get delivery status: %w", err)
		}

		s.cacheStatus(ctx, strategy, id, status)
	}

	return status, nil
}

// recordFailure marks the record failed and queues it for
// reconciliation. attempts is the attempt count including the one that
// just failed. The user's last-sent stamp is left untouched, so they
// stay eligible within the same day.
func (s *Service) recordFailure(ctx context.Context, strategy retry.Strategy, notificationID, userID uuid.UUID, attempts int, cause error) {
	zlog.Logger.Warn().Err(cause).
		Str("user_id", userID.String()).
		Str("notification_id", notificationID.String()).
		Msg("delivery failed")

	if err := s.notifs.MarkFailed(ctx, notificationID, cause.Error(), s.now()); err != nil {
		zlog.Logger.Error().Err(err).Str("notification_id", notificationID.String()).Msg("failed to mark notification failed")
	}

	retryMsg := queue.RetryMessage{
		NotificationID: notificationID,
		UserID:         userID,
		Attempts:       attempts,
		LastError:      cause.Error(),
	}

	if err := s.queue.Publish(retryMsg, s.opts.RoutingKey, strategy); err != nil {
		zlog.Logger.Error().Err(err).Str("notification_id", notificationID.String()).Msg("failed to publish retry message")
	}

	s.cacheStatus(ctx, strategy, notificationID, model.StatusFailed)
}

func (s *Service) cacheStatus(ctx context.Context, strategy retry.Strategy, id uuid.UUID, status string) {
	if err := s.cache.SetWithRetry(ctx, strategy, id.String(), status); err != nil {
		zlog.Logger.Error().Err(err).Str("notification_id", id.String()).Msg("failed to cache delivery status")
	}
}

// payloadData flattens the structured payload into the FCM data map.
func (s *Service) payloadData(notificationID uuid.UUID, p model.Payload, res quote.Result) map[string]string {
	data := map[string]string{
		"type":            model.TypeDailyQuote,
		"notification_id": notificationID.String(),
		"full_quote":      p.FullQuote,
		"verse_ref":       p.VerseRef,
		"language":        p.Language,
		"quote_type":      p.QuoteType,
		"source":          res.Source,
		"timestamp":       s.now().Format(time.RFC3339),
	}

	if res.Parsed.Sanskrit != "" {
		data["sanskrit"] = truncate(res.Parsed.Sanskrit, 100)
	}
	if res.Parsed.Translation != "" {
		data["translation"] = truncate(res.Parsed.Translation, 150)
	}
	if res.Parsed.Wisdom != "" {
		data["wisdom"] = truncate(res.Parsed.Wisdom, 150)
	}
	data["success"] = strconv.FormatBool(res.Success)

	return data
}

func (s *Service) dateZone() *time.Location {
	if s.opts.DateZone != nil {
		return s.opts.DateZone
	}
	return time.Local
}

func (s *Service) userLock(id uuid.UUID) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// truncate cuts s to at most limit runes, trimming trailing space.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	out := string(runes[:limit])
	for len(out) > 0 && (out[len(out)-1] == ' ' || out[len(out)-1] == '\n') {
		out = out[:len(out)-1]
	}

	return out
}
