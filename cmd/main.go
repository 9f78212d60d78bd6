package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/deskhive/space-booking-service/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/deskhive/space-booking-service/internal/api/handlers/confirm_booking"
	deleteOverrideHandler "github.com/deskhive/space-booking-service/internal/api/handlers/delete_override"
	getAvailabilityHandler "github.com/deskhive/space-booking-service/internal/api/handlers/get_availability"
	getBookingHandler "github.com/deskhive/space-booking-service/internal/api/handlers/get_booking"
	getRefundPolicyHandler "github.com/deskhive/space-booking-service/internal/api/handlers/get_refund_policy"
	getScheduleHandler "github.com/deskhive/space-booking-service/internal/api/handlers/get_schedule"
	getUserBookingsHandler "github.com/deskhive/space-booking-service/internal/api/handlers/get_user_bookings"
	listRefundPoliciesHandler "github.com/deskhive/space-booking-service/internal/api/handlers/list_refund_policies"
	requestBookingHandler "github.com/deskhive/space-booking-service/internal/api/handlers/request_booking"
	setOverrideHandler "github.com/deskhive/space-booking-service/internal/api/handlers/set_override"
	setScheduleHandler "github.com/deskhive/space-booking-service/internal/api/handlers/set_schedule"
	upsertRefundPolicyHandler "github.com/deskhive/space-booking-service/internal/api/handlers/upsert_refund_policy"
	"github.com/deskhive/space-booking-service/internal/api/middleware"
	"github.com/deskhive/space-booking-service/internal/config"
	bookingRepo "github.com/deskhive/space-booking-service/internal/infra/storage/booking"
	policyRepo "github.com/deskhive/space-booking-service/internal/infra/storage/refundpolicy"
	scheduleRepo "github.com/deskhive/space-booking-service/internal/infra/storage/schedule"
	spaceRepo "github.com/deskhive/space-booking-service/internal/infra/storage/space"
	bookingsService "github.com/deskhive/space-booking-service/internal/service/bookings"
	policyService "github.com/deskhive/space-booking-service/internal/service/refundpolicy"
	scheduleService "github.com/deskhive/space-booking-service/internal/service/schedule"
	cancelBookingUC "github.com/deskhive/space-booking-service/internal/usecase/cancel_booking"
	getAvailabilityUC "github.com/deskhive/space-booking-service/internal/usecase/get_availability"
	requestBookingUC "github.com/deskhive/space-booking-service/internal/usecase/request_booking"
	"github.com/deskhive/space-booking-service/pkg/dbmetrics"
	"github.com/deskhive/space-booking-service/pkg/keymutex"
	"github.com/deskhive/space-booking-service/pkg/logger"
	"github.com/deskhive/space-booking-service/pkg/metrics"
	"github.com/deskhive/space-booking-service/pkg/simpletxmanager"
	"github.com/deskhive/space-booking-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting space-booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Дефолтный интервал работы - fallback для повторно открытых дней
	defaultOpen, err := cfg.Defaults.DayInterval()
	if err != nil {
		log.Fatal("Invalid defaults in config: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Интерфейс transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		spaceRepository    *spaceRepo.Repository
		policyRepository   *policyRepo.Repository
		txMgr              TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		spaceRepository = spaceRepo.NewRepository(wrappedDB)
		policyRepository = policyRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		spaceRepository = spaceRepo.NewRepository(db)
		policyRepository = policyRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Пер-ключевая блокировка для запросов бронирования
	bookingLocks := keymutex.New()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, spaceRepository, log)
	policySvc := policyService.NewService(policyRepository, txMgr, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		scheduleRepository,
		bookingRepository,
		spaceRepository,
		defaultOpen,
		log,
	)

	requestBookingUseCase := requestBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		spaceRepository,
		txMgr,
		bookingLocks,
		defaultOpen,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		spaceRepository,
		policyRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	requestBooking := requestBookingHandler.NewHandler(requestBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	setSchedule := setScheduleHandler.NewHandler(scheduleSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	setOverride := setOverrideHandler.NewHandler(scheduleSvc, log)
	deleteOverride := deleteOverrideHandler.NewHandler(scheduleSvc, log)
	upsertRefundPolicy := upsertRefundPolicyHandler.NewHandler(policySvc, log)
	getRefundPolicy := getRefundPolicyHandler.NewHandler(policySvc, log)
	listRefundPolicies := listRefundPoliciesHandler.NewHandler(policySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность пространства на дату
	api.HandleFunc("/spaces/{spaceId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Недельный паттерн пространства
	api.HandleFunc("/spaces/{spaceId}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", requestBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление расписанием (для партнёров) ---
	protected.HandleFunc("/spaces/{spaceId}/schedule", setSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/spaces/{spaceId}/overrides/{date}", setOverride.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/spaces/{spaceId}/overrides/{date}", deleteOverride.Handle).Methods(http.MethodDelete)

	// --- Политики возврата (для партнёров) ---
	protected.HandleFunc("/partners/{partnerId}/refund-policies", upsertRefundPolicy.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/partners/{partnerId}/refund-policies/{policyId}", upsertRefundPolicy.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/partners/{partnerId}/refund-policies", listRefundPolicies.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/partners/{partnerId}/refund-policies/{policyId}", getRefundPolicy.Handle).Methods(http.MethodGet)

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
