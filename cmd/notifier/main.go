package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	notifhandler "github.com/hihu/gita-notifier/internal/api/handlers/notification"
	userhandler "github.com/hihu/gita-notifier/internal/api/handlers/user"
	"github.com/hihu/gita-notifier/internal/api/router"
	"github.com/hihu/gita-notifier/internal/api/server"
	"github.com/hihu/gita-notifier/internal/config"
	"github.com/hihu/gita-notifier/internal/eligibility"
	"github.com/hihu/gita-notifier/internal/quote"
	deliverymsg "github.com/hihu/gita-notifier/internal/rabbitmq/handlers/delivery"
	"github.com/hihu/gita-notifier/internal/rabbitmq/queue"
	notifrepo "github.com/hihu/gita-notifier/internal/repository/notification"
	userrepo "github.com/hihu/gita-notifier/internal/repository/user"
	"github.com/hihu/gita-notifier/internal/scheduler"
	"github.com/hihu/gita-notifier/internal/service/batch"
	"github.com/hihu/gita-notifier/internal/service/dispatch"
	"github.com/hihu/gita-notifier/internal/worker"
	"github.com/hihu/gita-notifier/pkg/email"
	"github.com/hihu/gita-notifier/pkg/fcm"
	"github.com/hihu/gita-notifier/pkg/gemini"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Retries, cfg.RabbitMQ.Pause)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to open channel")
	}

	q, err := queue.NewDeliveryQueue(ch, cfg)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create delivery queue")
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	users := userrepo.NewRepository(db)
	notifications := notifrepo.NewRepository(db)

	dbNum, err := strconv.Atoi(cfg.Redis.Database)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse redis database")
	}

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, dbNum)
	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	geminiClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model)

	fcmCreds, err := os.ReadFile(cfg.FCM.CredentialsFile)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to read fcm credentials")
	}

	fcmClient, err := fcm.NewClient(cfg.FCM.ProjectID, fcmCreds)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create fcm client")
	}

	adapter := quote.NewAdapter(geminiClient, cfg.Dispatch.CorpusProbability, cfg.Gemini.Timeout)
	resolver := eligibility.New(cfg.Scheduler.WindowMinutes, time.Local)

	service := dispatch.NewService(users, notifications, adapter, fcmClient, q, rdb, dispatch.Options{
		BodyLimit:      cfg.Dispatch.BodyLimit,
		GatewayTimeout: cfg.FCM.Timeout,
		MaxAttempts:    cfg.Reconciler.MaxAttempts,
		RoutingKey:     cfg.RabbitMQ.RoutingKey,
		DateZone:       time.Local,
	})

	if requeued, err := service.RequeueStranded(ctx, cfg.Retry); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to requeue stranded deliveries")
	} else if requeued > 0 {
		zlog.Logger.Info().Int("requeued", requeued).Msg("stranded deliveries requeued")
	}

	var runner *batch.Runner
	if cfg.Email.AdminTo != "" {
		smtpPort, err := strconv.Atoi(cfg.Email.SMTPPort)
		if err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to parse email smtp port")
		}

		mailer := email.NewClient(
			cfg.Email.SMTPHost,
			smtpPort,
			cfg.Email.Username,
			cfg.Email.Password,
			cfg.Email.From,
		)

		runner = batch.NewRunner(
			users, resolver, service,
			mailer, cfg.Email.AdminTo, cfg.Scheduler.PaceDelay, cfg.Retry,
		)
	} else {
		runner = batch.NewRunner(
			users, resolver, service,
			nil, "", cfg.Scheduler.PaceDelay, cfg.Retry,
		)
	}

	messageHandler := deliverymsg.NewHandler(service)
	reconciler := worker.NewReconciler(q, messageHandler, service)

	go reconciler.Run(ctx, cfg.Retry, cfg.Reconciler.Workers)

	sched := scheduler.New(runner, notifications, cfg.Scheduler.TickInterval, cfg.Scheduler.CleanupInterval)
	if cfg.Scheduler.Enabled {
		sched.Start()
	} else {
		zlog.Logger.Info().Msg("scheduler disabled on this instance")
	}

	userHandler := userhandler.NewHandler(users, runner, val)
	notificationHandler := notifhandler.NewHandler(notifications, service, cfg)

	r := router.New(userHandler, notificationHandler)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	if err := db.Master.Close(); err != nil {
		zlog.Logger.Printf("failed to close master DB: %v", err)
	}

	for i, s := range db.Slaves {
		if err := s.Close(); err != nil {
			zlog.Logger.Printf("failed to close slave DB %d: %v", i, err)
		}
	}

	if err := ch.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ channel")
	}

	if err := conn.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
	}
}
