package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"

	mocks "github.com/hihu/gita-notifier/internal/mocks/dispatch"
	"github.com/hihu/gita-notifier/internal/model"
	"github.com/hihu/gita-notifier/internal/quote"
	"github.com/hihu/gita-notifier/internal/rabbitmq/queue"
)

type serviceMocks struct {
	users  *mocks.MockuserRepository
	notifs *mocks.MocknotificationRepository
	quotes *mocks.MockquoteProvider
	push   *mocks.MockpushGateway
	queue  *mocks.MockretryPublisher
	cache  *mocks.MockstatusCache
}

func setupService(t *testing.T, opts Options) (*Service, serviceMocks) {
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		users:  mocks.NewMockuserRepository(ctrl),
		notifs: mocks.NewMocknotificationRepository(ctrl),
		quotes: mocks.NewMockquoteProvider(ctrl),
		push:   mocks.NewMockpushGateway(ctrl),
		queue:  mocks.NewMockretryPublisher(ctrl),
		cache:  mocks.NewMockstatusCache(ctrl),
	}

	svc := NewService(m.users, m.notifs, m.quotes, m.push, m.queue, m.cache, opts)
	return svc, m
}

func defaultOptions() Options {
	return Options{
		BodyLimit:      100,
		GatewayTimeout: time.Second,
		MaxAttempts:    3,
		RoutingKey:     "quote.delivery",
	}
}

func activeUser(id uuid.UUID, quoteType string) model.User {
	return model.User{
		ID:        id,
		Email:     "arjuna@example.com",
		FCMToken:  "device-token",
		Language:  model.LanguageEnglish,
		QuoteType: quoteType,
		DailyQuotes: model.DailyQuotes{
			Enabled:  true,
			Time:     "08:00",
			Timezone: "UTC",
		},
		Progress: model.ReadingProgress{CurrentChapter: 1, CurrentVerse: 5},
	}
}

func providedQuote() quote.Result {
	return quote.Result{
		Success: true,
		Text:    "Verse: 2.47\nTranslation: You have the right to perform your actions.",
		Parsed: quote.Parsed{
			VerseRef:    "2.47",
			Translation: "You have the right to perform your actions.",
		},
		Source:    quote.SourceProvider,
		Language:  model.LanguageEnglish,
		QuoteType: model.QuoteTypeRandom,
	}
}

func TestSendDailyQuote_Success(t *testing.T) {
	svc, m := setupService(t, defaultOptions())

	userID := uuid.New()
	notificationID := uuid.New()
	strategy := retry.Strategy{}

	m.users.EXPECT().GetByID(gomock.Any(), userID).Return(activeUser(userID, model.QuoteTypeRandom), nil)
	m.quotes.EXPECT().DailyQuote(gomock.Any(), model.LanguageEnglish, model.QuoteTypeRandom, gomock.Any()).Return(providedQuote())
	m.notifs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(notificationID, nil)
	m.push.EXPECT().Send(gomock.Any(), gomock.Any()).Return("fcm-msg-1", nil)
	m.notifs.EXPECT().MarkSent(gomock.Any(), notificationID, gomock.Any()).Return(nil)
	m.users.EXPECT().MarkSent(gomock.Any(), userID, gomock.Any()).Return(true, nil)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), strategy, notificationID.String(), model.StatusSent).Return(nil)

	outcome, err := svc.SendDailyQuote(context.Background(), strategy, userID)

	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, notificationID, outcome.NotificationID)
	assert.Equal(t, quote.SourceProvider, outcome.Source)
}

func TestSendDailyQuote_SkipsAlreadySentToday(t *testing.T) {
	opts := defaultOptions()
	opts.DateZone = time.UTC
	svc, m := setupService(t, opts)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	userID := uuid.New()
	u := activeUser(userID, model.QuoteTypeRandom)
	lastSent := now.Add(-time.Hour)
	u.DailyQuotes.LastSentAt = &lastSent

	// No gateway call, no record: the guard holds before any side
	// effect, not just in the stamp bookkeeping.
	m.users.EXPECT().GetByID(gomock.Any(), userID).Return(u, nil)

	outcome, err := svc.SendDailyQuote(context.Background(), retry.Strategy{}, userID)

	require.NoError(t, err)
	assert.True(t, outcome.Skipped)
	assert.False(t, outcome.Success)
	assert.Equal(t, "already sent today", outcome.Reason)
}

func TestSendDailyQuote_SentYesterdayStillDelivers(t *testing.T) {
	opts := defaultOptions()
	opts.DateZone = time.UTC
	svc, m := setupService(t, opts)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	userID := uuid.New()
	notificationID := uuid.New()
	u := activeUser(userID, model.QuoteTypeRandom)
	lastSent := now.AddDate(0, 0, -1)
	u.DailyQuotes.LastSentAt = &lastSent

	m.users.EXPECT().GetByID(gomock.Any(), userID).Return(u, nil)
	m.quotes.EXPECT().DailyQuote(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(providedQuote())
	m.notifs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(notificationID, nil)
	m.push.EXPECT().Send(gomock.Any(), gomock.Any()).Return("fcm-msg-5", nil)
	m.notifs.EXPECT().MarkSent(gomock.Any(), notificationID, gomock.Any()).Return(nil)
	m.users.EXPECT().MarkSent(gomock.Any(), userID, gomock.Any()).Return(true, nil)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := svc.SendDailyQuote(context.Background(), retry.Strategy{}, userID)

	require.NoError(t, err)
	assert.True(t, outcome.Success)
}

func TestSendDailyQuote_SkipsDisabledUser(t *testing.T) {
	svc, m := setupService(t, defaultOptions())

	userID := uuid.New()
	u := activeUser(userID, model.QuoteTypeRandom)
	u.DailyQuotes.Enabled = false

	m.users.EXPECT().GetByID(gomock.Any(), userID).Return(u, nil)

	outcome, err := svc.SendDailyQuote(context.Background(), retry.Strategy{}, userID)

	require.NoError(t, err)
	assert.True(t, outcome.Skipped)
	assert.False(t, outcome.Success)
}

func TestSendDailyQuote_GatewayFailure(t *testing.T) {
	svc, m := setupService(t, defaultOptions())

	userID := uuid.New()
	notificationID := uuid.New()
	strategy := retry.Strategy{}

	m.users.EXPECT().GetByID(gomock.Any(), userID).Return(activeUser(userID, model.QuoteTypeRandom), nil)
	m.quotes.EXPECT().DailyQuote(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(providedQuote())
	m.notifs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(notificationID, nil)
	m.push.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", errors.New("fcm unavailable"))

	// Failure bookkeeping: record marked failed, retry queued, status
	// cached. The user's last-sent stamp is never touched.
	m.notifs.EXPECT().MarkFailed(gomock.Any(), notificationID, "fcm unavailable", gomock.Any()).Return(nil)
	m.queue.EXPECT().
		Publish(gomock.Any(), "quote.delivery", strategy).
		DoAndReturn(func(msg queue.RetryMessage, _ string, _ retry.Strategy) error {
			assert.Equal(t, notificationID, msg.NotificationID)
			assert.Equal(t, 1, msg.Attempts)
			assert.Equal(t, "fcm unavailable", msg.LastError)
			return nil
		})
	m.cache.EXPECT().SetWithRetry(gomock.Any(), strategy, notificationID.String(), model.StatusFailed).Return(nil)

	outcome, err := svc.SendDailyQuote(context.Background(), strategy, userID)

	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, "fcm unavailable", outcome.Error)
}

func TestSendDailyQuote_SequentialAdvancesCursor(t *testing.T) {
	svc, m := setupService(t, defaultOptions())

	userID := uuid.New()
	notificationID := uuid.New()

	res := providedQuote()
	res.QuoteType = model.QuoteTypeSequential

	m.users.EXPECT().GetByID(gomock.Any(), userID).Return(activeUser(userID, model.QuoteTypeSequential), nil)
	m.quotes.EXPECT().DailyQuote(gomock.Any(), model.LanguageEnglish, model.QuoteTypeSequential, gomock.Any()).Return(res)
	m.users.EXPECT().
		UpdateProgress(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, p model.ReadingProgress) error {
			assert.Equal(t, 1, p.CurrentChapter)
			assert.Equal(t, 6, p.CurrentVerse)
			assert.Equal(t, 1, p.TotalRead)
			return nil
		})
	m.notifs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(notificationID, nil)
	m.push.EXPECT().Send(gomock.Any(), gomock.Any()).Return("fcm-msg-2", nil)
	m.notifs.EXPECT().MarkSent(gomock.Any(), notificationID, gomock.Any()).Return(nil)
	m.users.EXPECT().MarkSent(gomock.Any(), userID, gomock.Any()).Return(true, nil)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := svc.SendDailyQuote(context.Background(), retry.Strategy{}, userID)

	require.NoError(t, err)
	assert.True(t, outcome.Success)
}

func TestSendDailyQuote_ProgressUpdateFailureStillDelivers(t *testing.T) {
	svc, m := setupService(t, defaultOptions())

	userID := uuid.New()
	notificationID := uuid.New()

	res := providedQuote()
	res.QuoteType = model.QuoteTypeSequential

	m.users.EXPECT().GetByID(gomock.Any(), userID).Return(activeUser(userID, model.QuoteTypeSequential), nil)
	m.quotes.EXPECT().DailyQuote(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(res)
	m.users.EXPECT().UpdateProgress(gomock.Any(), userID, gomock.Any()).Return(errors.New("db down"))
	m.notifs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(notificationID, nil)
	m.push.EXPECT().Send(gomock.Any(), gomock.Any()).Return("fcm-msg-3", nil)
	m.notifs.EXPECT().MarkSent(gomock.Any(), notificationID, gomock.Any()).Return(nil)
	m.users.EXPECT().MarkSent(gomock.Any(), userID, gomock.Any()).Return(true, nil)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := svc.SendDailyQuote(context.Background(), retry.Strategy{}, userID)

	require.NoError(t, err)
	assert.True(t, outcome.Success)
}

func TestRetryDelivery_AlreadySent(t *testing.T) {
	svc, m := setupService(t, defaultOptions())

	id := uuid.New()
	m.notifs.EXPECT().GetByID(gomock.Any(), id).Return(model.Notification{
		ID:             id,
		DeliveryStatus: model.StatusSent,
	}, nil)

	assert.NoError(t, svc.RetryDelivery(context.Background(), retry.Strategy{}, id))
}

func TestRetryDelivery_CeilingReached(t *testing.T) {
	svc, m := setupService(t, defaultOptions())

	id := uuid.New()
	m.notifs.EXPECT().GetByID(gomock.Any(), id).Return(model.Notification{
		ID:               id,
		DeliveryStatus:   model.StatusFailed,
		DeliveryAttempts: 3,
	}, nil)

	// No further calls: the record is suppressed.
	assert.NoError(t, svc.RetryDelivery(context.Background(), retry.Strategy{}, id))
}

func TestRetryDelivery_Succeeds(t *testing.T) {
	svc, m := setupService(t, defaultOptions())

	id := uuid.New()
	userID := uuid.New()
	strategy := retry.Strategy{}

	m.notifs.EXPECT().GetByID(gomock.Any(), id).Return(model.Notification{
		ID:               id,
		UserID:           userID,
		Title:            NotificationTitle,
		Body:             "You have the right to perform...",
		Type:             model.TypeDailyQuote,
		DeliveryStatus:   model.StatusFailed,
		DeliveryAttempts: 1,
		Data:             model.Payload{VerseRef: "2.47"},
	}, nil)
	m.users.EXPECT().GetByID(gomock.Any(), userID).Return(activeUser(userID, model.QuoteTypeRandom), nil)
	m.push.EXPECT().Send(gomock.Any(), gomock.Any()).Return("fcm-msg-4", nil)
	m.notifs.EXPECT().MarkSent(gomock.Any(), id, gomock.Any()).Return(nil)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), strategy, id.String(), model.StatusSent).Return(nil)

	assert.NoError(t, svc.RetryDelivery(context.Background(), strategy, id))
}

func TestRetryDelivery_NoToken(t *testing.T) {
	svc, m := setupService(t, defaultOptions())

	id := uuid.New()
	userID := uuid.New()

	u := activeUser(userID, model.QuoteTypeRandom)
	u.FCMToken = ""

	m.notifs.EXPECT().GetByID(gomock.Any(), id).Return(model.Notification{
		ID:             id,
		UserID:         userID,
		DeliveryStatus: model.StatusFailed,
	}, nil)
	m.users.EXPECT().GetByID(gomock.Any(), userID).Return(u, nil)
	m.notifs.EXPECT().MarkFailed(gomock.Any(), id, "user has no device token", gomock.Any()).Return(nil)

	assert.NoError(t, svc.RetryDelivery(context.Background(), retry.Strategy{}, id))
}

func TestRetryDelivery_FailureCarriesAttemptCount(t *testing.T) {
	svc, m := setupService(t, defaultOptions())

	id := uuid.New()
	userID := uuid.New()
	strategy := retry.Strategy{}

	m.notifs.EXPECT().GetByID(gomock.Any(), id).Return(model.Notification{
		ID:               id,
		UserID:           userID,
		DeliveryStatus:   model.StatusFailed,
		DeliveryAttempts: 1,
	}, nil)
	m.users.EXPECT().GetByID(gomock.Any(), userID).Return(activeUser(userID, model.QuoteTypeRandom), nil)
	m.push.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", errors.New("fcm unavailable"))
	m.notifs.EXPECT().MarkFailed(gomock.Any(), id, "fcm unavailable", gomock.Any()).Return(nil)
	m.queue.EXPECT().
		Publish(gomock.Any(), "quote.delivery", strategy).
		DoAndReturn(func(msg queue.RetryMessage, _ string, _ retry.Strategy) error {
			assert.Equal(t, 2, msg.Attempts)
			return nil
		})
	m.cache.EXPECT().SetWithRetry(gomock.Any(), strategy, id.String(), model.StatusFailed).Return(nil)

	assert.NoError(t, svc.RetryDelivery(context.Background(), strategy, id))
}

func TestRequeueStranded(t *testing.T) {
	svc, m := setupService(t, defaultOptions())

	strategy := retry.Strategy{}
	first := model.Notification{ID: uuid.New(), UserID: uuid.New(), DeliveryAttempts: 1, ErrorMessage: "fcm unavailable"}
	second := model.Notification{ID: uuid.New(), UserID: uuid.New(), DeliveryAttempts: 2, ErrorMessage: "timeout"}

	m.notifs.EXPECT().ListFailed(gomock.Any(), 3).Return([]model.Notification{first, second}, nil)
	m.queue.EXPECT().
		Publish(gomock.Any(), "quote.delivery", strategy).
		DoAndReturn(func(msg queue.RetryMessage, _ string, _ retry.Strategy) error {
			assert.Equal(t, first.ID, msg.NotificationID)
			assert.Equal(t, 1, msg.Attempts)
			return nil
		})
	m.queue.EXPECT().
		Publish(gomock.Any(), "quote.delivery", strategy).
		DoAndReturn(func(msg queue.RetryMessage, _ string, _ retry.Strategy) error {
			assert.Equal(t, second.ID, msg.NotificationID)
			return errors.New("broker down")
		})

	requeued, err := svc.RequeueStranded(context.Background(), strategy)

	require.NoError(t, err)
	assert.Equal(t, 1, requeued)
}

func TestDeliveryStatus_CacheHit(t *testing.T) {
	svc, m := setupService(t, defaultOptions())

	id := uuid.New()
	strategy := retry.Strategy{}

	m.cache.EXPECT().GetWithRetry(gomock.Any(), strategy, id.String()).Return("sent", nil)

	status, err := svc.DeliveryStatus(context.Background(), strategy, id)

	require.NoError(t, err)
	assert.Equal(t, "sent", status)
}

func TestDeliveryStatus_CacheMissFallsBackToStore(t *testing.T) {
	svc, m := setupService(t, defaultOptions())

	id := uuid.New()
	strategy := retry.Strategy{}

	m.cache.EXPECT().GetWithRetry(gomock.Any(), strategy, id.String()).Return("", redis.Nil)
	m.notifs.EXPECT().GetDeliveryStatus(gomock.Any(), id).Return("failed", nil)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), strategy, id.String(), "failed").Return(nil)

	status, err := svc.DeliveryStatus(context.Background(), strategy, id)

	require.NoError(t, err)
	assert.Equal(t, "failed", status)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 100))
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "ab", truncate("ab cdef", 3))
}
