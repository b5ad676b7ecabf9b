package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/m04kA/SMC-AppointmentEngine/internal/api/handlers/cancel_appointment"
	createBookingHandler "github.com/m04kA/SMC-AppointmentEngine/internal/api/handlers/create_booking"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentEngine/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentEngine/internal/api/handlers/get_available_slots"
	getBusinessSettingsHandler "github.com/m04kA/SMC-AppointmentEngine/internal/api/handlers/get_business_settings"
	"github.com/m04kA/SMC-AppointmentEngine/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentEngine/internal/config"
	"github.com/m04kA/SMC-AppointmentEngine/internal/infra/ratelimit"
	appointmentRepo "github.com/m04kA/SMC-AppointmentEngine/internal/infra/storage/appointment"
	clientRepo "github.com/m04kA/SMC-AppointmentEngine/internal/infra/storage/client"
	employeeRepo "github.com/m04kA/SMC-AppointmentEngine/internal/infra/storage/employee"
	holidayRepo "github.com/m04kA/SMC-AppointmentEngine/internal/infra/storage/holiday"
	serviceRepo "github.com/m04kA/SMC-AppointmentEngine/internal/infra/storage/service"
	settingsRepo "github.com/m04kA/SMC-AppointmentEngine/internal/infra/storage/settings"
	appointmentsService "github.com/m04kA/SMC-AppointmentEngine/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentEngine/internal/service/availability"
	settingsService "github.com/m04kA/SMC-AppointmentEngine/internal/service/settings"
	cancelAppointmentUC "github.com/m04kA/SMC-AppointmentEngine/internal/usecase/cancel_appointment"
	createBookingUC "github.com/m04kA/SMC-AppointmentEngine/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentEngine/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/logger"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/txmanager"
)

const defaultConfigPath = "config.toml"

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting appointment engine...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики. nil-коллектор безопасен: все методы Metrics проверяют получателя.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		pingCancel()
		log.Fatal("Failed to ping database: %v", err)
	}
	pingCancel()
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.NewTransactionManager(
		wrappedDB,
		txmanager.WithMaxAttempts(cfg.Database.TxMaxAttempts),
		txmanager.WithRetryObserver(metricsCollector),
	)

	// Redis нужен только для ограничения попыток бронирования
	var attemptLimiter createBookingHandler.AttemptLimiter
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		redisCtx, redisCancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(redisCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, booking attempt limit disabled: %v", cfg.Redis.Addr, err)
		} else {
			attemptLimiter = ratelimit.NewLimiter(
				redisClient,
				cfg.Booking.AttemptLimit,
				time.Duration(cfg.Booking.AttemptWindowSeconds)*time.Second,
			)
			log.Info("Booking attempt limit: %d per %ds (redis=%s)",
				cfg.Booking.AttemptLimit, cfg.Booking.AttemptWindowSeconds, cfg.Redis.Addr)
		}
		redisCancel()
	}

	// Репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)
	employeeRepository := employeeRepo.NewRepository(wrappedDB)
	holidayRepository := holidayRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)

	// Сервисы
	settingsSvc := settingsService.NewService(settingsRepository, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	availabilitySvc := availability.NewService(
		employeeRepository,
		serviceRepository,
		holidayRepository,
		appointmentRepository,
		settingsSvc,
		log,
	)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(availabilitySvc, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		availabilitySvc,
		appointmentRepository,
		clientRepository,
		txMgr,
		metricsCollector,
		log,
	)
	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		settingsSvc,
		metricsCollector,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, attemptLimiter, metricsCollector, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getBusinessSettings := getBusinessSettingsHandler.NewHandler(settingsSvc, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", healthHandler(db)).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1/businesses/{businessId}").Subrouter()
	if cfg.Server.RateLimitRPS > 0 {
		trustedProxies, err := middleware.ParseTrustedProxies(cfg.Server.TrustedProxies)
		if err != nil {
			log.Fatal("Invalid trusted proxies: %v", err)
		}
		ipLimiter := middleware.NewIPRateLimiter(
			cfg.Server.RateLimitRPS,
			cfg.Server.RateLimitBurst,
			metricsCollector,
			middleware.WithTrustedProxies(trustedProxies),
		)
		api.Use(ipLimiter.Middleware)
		log.Info("Per-IP rate limit: %.1f rps, burst %d", cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	}

	// Доступные слоты сотрудника
	api.HandleFunc("/employees/{employeeId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Записи
	api.HandleFunc("/appointments", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Политика бронирования бизнеса
	api.HandleFunc("/settings", getBusinessSettings.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
