package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/school-portal/api/swagger"
	"github.com/noah-isme/school-portal/internal/gateway"
	"github.com/noah-isme/school-portal/internal/handler"
	"github.com/noah-isme/school-portal/internal/repository"
	"github.com/noah-isme/school-portal/internal/repository/mockstore"
	"github.com/noah-isme/school-portal/internal/router"
	"github.com/noah-isme/school-portal/internal/service"
	"github.com/noah-isme/school-portal/internal/session"
	"github.com/noah-isme/school-portal/internal/tenant"
	"github.com/noah-isme/school-portal/pkg/cache"
	"github.com/noah-isme/school-portal/pkg/config"
	"github.com/noah-isme/school-portal/pkg/database"
	"github.com/noah-isme/school-portal/pkg/jobs"
	"github.com/noah-isme/school-portal/pkg/logger"
)

// @title School Portal API
// @version 1.0.0
// @description Multi-school administration console: students, attendance capture, exams, parent queries and fees.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()
	mode := gateway.Mode(cfg.Backend.Mode)
	gw := gateway.New(mode, cfg.Backend.Enabled, logr, metrics)
	backend := service.NewBackend(gw, gateway.NewClient(cfg.Backend.URL, cfg.Backend.Timeout))

	storeOpts := mockstore.Options{Latency: cfg.Mock.Latency, Jitter: cfg.Mock.Jitter}
	newStore := mockstore.New
	if cfg.Mock.Seed {
		newStore = mockstore.NewSeeded
	}
	store := newStore(storeOpts)

	readiness := map[string]handler.ReadinessCheck{}

	var kv session.KV = session.NewMemoryKV()
	var redisClient *redis.Client
	if cfg.Session.Backend == config.SessionBackendRedis {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Fatal("failed to connect redis", zap.Error(err))
		}
		kv = cache.NewRedisKV(redisClient, "school-portal")
		readiness["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	sessions := session.NewManager(kv, cfg.Session.TTL)
	resolver := tenant.NewResolver(cfg.Backend.DefaultTenant, logr)

	activity, queue, db := buildActivity(ctx, cfg, metrics, logr)
	if db != nil {
		readiness["postgres"] = db.PingContext
	}

	students := service.NewStudentService(backend, store, nil, logr)
	attendance := service.NewAttendanceService(backend, store, nil, logr)
	captureSvc := service.NewCaptureService(students, attendance, activity, logr)
	captureSvc.SetIdleTimeout(cfg.Session.TTL)
	svc := router.Services{
		Auth: service.NewAuthService(backend, store, sessions, nil, logr, service.AuthConfig{
			AccessTokenSecret: cfg.JWT.Secret,
			AccessTokenExpiry: cfg.JWT.Expiration,
			Issuer:            "school-portal",
		}),
		Schools:    service.NewSchoolService(backend, store, logr),
		Students:   students,
		Teachers:   service.NewTeacherService(backend, store, nil, logr),
		Parents:    service.NewParentService(backend, store, students, nil, logr),
		Attendance: attendance,
		Reports:    service.NewReportService(students, attendance, logr),
		Capture:    captureSvc,
		Exams:      service.NewExamResultService(backend, store, nil, logr),
		Queries:    service.NewQueryService(backend, store, nil, logr),
		Fees:       service.NewFeeService(backend, store, nil, logr),
		Activity:   activity,
		Metrics:    metrics,
	}

	engine := router.New(svc, router.Options{
		APIPrefix:      cfg.APIPrefix,
		Mode:           gw.Mode(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
		Resolver:       resolver,
		Logger:         logr,
		Readiness:      readiness,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "api_mode", gw.Mode())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("server shutdown failed", zap.Error(err))
	}
	if queue != nil {
		queue.Stop()
	}
	if db != nil {
		_ = db.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

// buildActivity wires the activity log. With persistence enabled entries go
// through a worker queue into Postgres; otherwise they stay in memory.
func buildActivity(ctx context.Context, cfg *config.Config, metrics *service.MetricsService, logr *zap.Logger) (*service.ActivityService, *jobs.Queue, *sqlx.DB) {
	if !cfg.Activity.Enabled {
		return service.NewActivityService(nil, nil, metrics, logr), nil, nil
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect postgres", zap.Error(err))
	}

	queue := jobs.NewQueue("activity", jobs.QueueConfig{
		Workers:    cfg.Activity.Workers,
		MaxRetries: cfg.Activity.MaxRetries,
		Logger:     logr,
	})
	activity := service.NewActivityService(repository.NewActivityRepository(db), queue, metrics, logr)
	queue.Handle(service.ActivityJobType, activity.Deliver)
	queue.Start(ctx)
	return activity, queue, db
}
