package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/Leganyst/meeting-planner/internal/api"
	identitypb "github.com/Leganyst/meeting-planner/internal/api/identity/v1"
	meetingspb "github.com/Leganyst/meeting-planner/internal/api/meetings/v1"
	"github.com/Leganyst/meeting-planner/internal/calsync"
	"github.com/Leganyst/meeting-planner/internal/changefeed"
	"github.com/Leganyst/meeting-planner/internal/config"
	"github.com/Leganyst/meeting-planner/internal/db"
	"github.com/Leganyst/meeting-planner/internal/model"
	"github.com/Leganyst/meeting-planner/internal/notify"
	"github.com/Leganyst/meeting-planner/internal/repository"
	"github.com/Leganyst/meeting-planner/internal/runtime"
	"github.com/Leganyst/meeting-planner/internal/service"
	"github.com/Leganyst/meeting-planner/internal/telemetry"
)

func main() {
	// 1. Конфиг сервиса и БД.
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		slog.Error("load app config", "err", err)
		os.Exit(1)
	}
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		slog.Error("load db config", "err", err)
		os.Exit(1)
	}

	// 2. Логгер.
	logger := runtime.NewLogger(appCfg.ServiceName, appCfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := runtime.SignalContext()
	defer stop()

	// 3. Трассировка.
	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:      appCfg.OTel.Enabled,
		ServiceName:  appCfg.ServiceName,
		OTLPEndpoint: appCfg.OTel.Endpoint,
		SampleRatio:  appCfg.OTel.SampleRatio,
	})
	if err != nil {
		logger.Error("init tracing", "err", err)
		os.Exit(1)
	}

	// 4. БД через GORM и миграции моделей.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		logger.Error("init db", "err", err)
		os.Exit(1)
	}
	if err := model.AutoMigrate(gormDB); err != nil {
		logger.Error("auto migrate", "err", err)
		os.Exit(1)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Error("sql DB", "err", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	readyChecks := []runtime.ReadyCheck{{Name: "db", Check: sqlDB.PingContext}}

	// 5. Репозитории (реализации на GORM).
	meetingRepo := repository.NewGormMeetingRepository(gormDB)
	eventRepo := repository.NewGormEventRepository(gormDB)
	reminderRepo := repository.NewGormReminderRepository(gormDB)
	userRepo := repository.NewGormUserRepository(gormDB)

	// 6. Лента изменений: Redis, если задан, иначе в памяти процесса.
	var feed changefeed.Feed
	if appCfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     appCfg.Redis.Addr,
			Password: appCfg.Redis.Password,
			DB:       appCfg.Redis.DB,
		})
		defer rdb.Close()
		redisFeed := changefeed.NewRedis(rdb, appCfg.Redis.Channel, logger)
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "redis", Check: redisFeed.Ping})
		feed = redisFeed
	} else {
		local := changefeed.NewLocal(64)
		defer local.Close()
		feed = local
	}

	// 7. Внешний календарь.
	var syncer calsync.Syncer = calsync.Noop{}
	calCfg := calsync.CalDAVConfig{
		URL:          appCfg.CalDAV.URL,
		Username:     appCfg.CalDAV.Username,
		Password:     appCfg.CalDAV.Password,
		CalendarPath: appCfg.CalDAV.CalendarPath,
		Timeout:      appCfg.CalDAV.Timeout,
	}
	if calCfg.Configured() {
		caldavSyncer, err := calsync.NewCalDAV(calCfg)
		if err != nil {
			logger.Error("init caldav", "err", err)
			os.Exit(1)
		}
		syncer = caldavSyncer
		logger.Info("caldav sync enabled", "url", calCfg.URL, "calendar", calCfg.CalendarPath)
	}

	// 8. Каналы напоминаний и диспетчер.
	senders := []notify.Sender{notify.NewLogSender(logger)}
	if appCfg.Telegram.Token != "" {
		tg, err := notify.NewTelegramSender(appCfg.Telegram.Token)
		if err != nil {
			logger.Error("init telegram", "err", err)
			os.Exit(1)
		}
		senders = append(senders, tg)
	}
	if brokers := notify.SplitBrokers(appCfg.Kafka.Brokers); len(brokers) > 0 {
		kafkaSender := notify.NewKafkaSender(brokers, appCfg.Kafka.Topic)
		defer kafkaSender.Close()
		senders = append(senders, kafkaSender)
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "kafka", Check: notify.KafkaReadyCheck(brokers)})
	}

	var dispatcher *notify.Dispatcher
	if appCfg.Reminders.Enabled {
		dispatcher = notify.NewDispatcher(meetingRepo, userRepo, reminderRepo,
			notify.NewMultiSender(logger, senders...),
			notify.Config{
				Offsets:  appCfg.Reminders.Offsets,
				Spec:     appCfg.Reminders.Cron,
				Lookback: appCfg.Reminders.Lookback,
				Location: appCfg.Location,
			},
			logger,
		)
		if err := dispatcher.Start(); err != nil {
			logger.Error("start reminders", "err", err)
			os.Exit(1)
		}
	}

	// 9. gRPC-сервисы.
	meetingSvc := service.NewMeetingService(meetingRepo, eventRepo, reminderRepo, userRepo, syncer, feed, service.MeetingOptions{
		Location:       appCfg.Location,
		GridFrom:       appCfg.GridFrom,
		GridTo:         appCfg.GridTo,
		GridStep:       appCfg.Grid.StepMinutes,
		LaneMode:       appCfg.LaneMode,
		LaneGapPercent: appCfg.Grid.LaneGap,
		ParsePolicy:    appCfg.ParsePolicy,
	}, logger)
	identitySvc := service.NewIdentityService(userRepo)

	// 10. gRPC-сервер.
	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			api.UnaryServerRequestIDInterceptor(),
			api.UnaryServerLoggingInterceptor(logger),
		),
		grpc.ChainStreamInterceptor(api.StreamServerLoggingInterceptor(logger)),
	)
	meetingspb.RegisterMeetingServiceServer(grpcServer, meetingSvc)
	identitypb.RegisterIdentityServiceServer(grpcServer, identitySvc)

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus(meetingspb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", appCfg.GRPCAddr)
	if err != nil {
		logger.Error("listen grpc", "addr", appCfg.GRPCAddr, "err", err)
		os.Exit(1)
	}
	go func() {
		logger.Info("grpc server listening", "addr", appCfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("grpc serve", "err", err)
			stop()
		}
	}()

	// 11. HTTP: /healthz и /readyz.
	httpServer := &http.Server{
		Addr:              appCfg.HTTPAddr,
		Handler:           runtime.NewBaseMuxWithReady(readyChecks...),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("http server listening", "addr", appCfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "err", err)
			stop()
		}
	}()

	// 12. Грейсфул-шатдаун по сигналу.
	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	healthSrv.Shutdown()
	_ = httpServer.Shutdown(shutdownCtx)
	if dispatcher != nil {
		dispatcher.Stop(shutdownCtx)
	}
	// Watch-стримы сами не завершаются: по таймауту рвём соединения.
	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		grpcServer.Stop()
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing shutdown", "err", err)
	}
}
