package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/BruksfildServices01/barber-admin/internal/agenda"
	"github.com/BruksfildServices01/barber-admin/internal/audit"
	"github.com/BruksfildServices01/barber-admin/internal/changefeed"
	"github.com/BruksfildServices01/barber-admin/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-admin/internal/db"
	"github.com/BruksfildServices01/barber-admin/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-admin/internal/infra/repository"
	"github.com/BruksfildServices01/barber-admin/internal/middleware"
	"github.com/BruksfildServices01/barber-admin/internal/notify"
	"github.com/BruksfildServices01/barber-admin/internal/realtime"
	"github.com/BruksfildServices01/barber-admin/internal/routes"
	"github.com/BruksfildServices01/barber-admin/internal/scheduler"
	"github.com/BruksfildServices01/barber-admin/internal/storage"
	"github.com/BruksfildServices01/barber-admin/internal/telemetry"
	ucAppointment "github.com/BruksfildServices01/barber-admin/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-admin/internal/usecase/report"
	"github.com/BruksfildServices01/barber-admin/internal/validators"
)

func main() {

	cfg := config.Load()

	shutdownTelemetry := telemetry.Setup(cfg.OTELEndpoint, cfg.OTELInsecure)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	db := dbpkg.NewDB(cfg)

	if err := validators.RegisterGin(); err != nil {
		log.Fatalf("failed to register validators: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	clientRepo := infraRepo.NewClientGormRepository(db)
	reportRepo := infraRepo.NewReportGormRepository(db)

	auditDispatcher := audit.NewDispatcher(audit.New(db))

	hub := realtime.NewHub()
	sinks := []notify.Sink{notify.LogSink{}, realtime.NewHubSink(hub)}
	if cfg.FCMCredentialsFile != "" {
		fcm, err := notify.NewFCMSink(ctx, cfg.FCMCredentialsFile)
		if err != nil {
			log.Printf("fcm disabled: %v", err)
		} else {
			sinks = append(sinks, fcm)
		}
	}
	notifier := notify.NewDispatcher(sinks...)

	photos := storage.NewPhotoStore(storage.Options{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})

	mirror := agenda.New(appointmentRepo)

	// ======================================================
	// USE CASES
	// ======================================================
	lifecycle := ucAppointment.NewLifecycle(
		appointmentRepo,
		clientRepo,
		mirror,
		notifier,
		auditDispatcher,
		cfg.ClientActivationThreshold,
	)

	appointments := handlers.AppointmentUseCases{
		Availability: ucAppointment.NewGetAvailability(appointmentRepo),
		Create:       ucAppointment.NewCreateAppointment(appointmentRepo, mirror, auditDispatcher),
		Reschedule:   ucAppointment.NewRescheduleAppointment(appointmentRepo, mirror, auditDispatcher),
		Attendance:   ucAppointment.NewMarkAttendance(appointmentRepo, mirror, auditDispatcher),
		Lifecycle:    lifecycle,
		Active:       ucAppointment.NewListActive(mirror),
		List:         ucAppointment.NewListAppointments(appointmentRepo),
	}

	sweep := ucAppointment.NewMidnightSweep(appointmentRepo, mirror, lifecycle)

	// ======================================================
	// BACKGROUND
	// ======================================================
	var guard changefeed.Guard = changefeed.NewMemoryGuard(0)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("redis url invalid, using memory guard: %v", err)
		} else {
			rdb := redis.NewClient(opts)
			defer rdb.Close()
			if err := rdb.Ping(ctx).Err(); err != nil {
				log.Printf("redis unavailable, using memory guard: %v", err)
			} else {
				guard = changefeed.NewRedisGuard(rdb, cfg.DedupTTL)
			}
		}
	}

	sources := []changefeed.Source{changefeed.NewListenSource(cfg.DBUrl)}
	if cfg.PollInterval > 0 {
		sources = append(sources, changefeed.NewPollSource(appointmentRepo, cfg.PollInterval))
	}
	watcher := changefeed.NewWatcher(appointmentRepo, mirror, notifier, guard, sources...)

	midnight := scheduler.NewMidnight(cfg.SweepTimezone, func(ctx context.Context, catchUp bool) {
		if _, err := sweep.Execute(ctx, catchUp); err != nil {
			log.Printf("sweep error: catch_up=%v err=%v", catchUp, err)
		}
	})

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)

	var wg sync.WaitGroup
	for _, run := range []func(context.Context){
		watcher.Run,
		midnight.Run,
		func(ctx context.Context) { limiter.Cleanup(ctx, 10*time.Minute) },
	} {
		wg.Add(1)
		go func(run func(context.Context)) {
			defer wg.Done()
			run(ctx)
		}(run)
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.Default()

	routes.RegisterRoutes(r, routes.Deps{
		DB:           db,
		Config:       cfg,
		Audit:        auditDispatcher,
		Photos:       photos,
		Limiter:      limiter,
		Realtime:     realtime.NewHandler(hub, cfg.JWTSecret),
		Appointments: appointments,
		Dashboard:    report.NewDashboard(reportRepo),
	})

	// sem WriteTimeout: sessões SockJS ficam abertas
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, telemetry.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	cancel()
	wg.Wait()

	notifier.Close()
	auditDispatcher.Close()
}
