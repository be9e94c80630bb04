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

	approveReservationHandler "github.com/gameplaza/GP-ReservationService/internal/api/handlers/approve_reservation"
	cancelReservationHandler "github.com/gameplaza/GP-ReservationService/internal/api/handlers/cancel_reservation"
	checkinReservationHandler "github.com/gameplaza/GP-ReservationService/internal/api/handlers/checkin_reservation"
	completeReservationHandler "github.com/gameplaza/GP-ReservationService/internal/api/handlers/complete_reservation"
	createReservationHandler "github.com/gameplaza/GP-ReservationService/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/gameplaza/GP-ReservationService/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/gameplaza/GP-ReservationService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/gameplaza/GP-ReservationService/internal/api/handlers/get_user_reservations"
	rejectReservationHandler "github.com/gameplaza/GP-ReservationService/internal/api/handlers/reject_reservation"
	"github.com/gameplaza/GP-ReservationService/internal/api/middleware"
	"github.com/gameplaza/GP-ReservationService/internal/config"
	deviceRepo "github.com/gameplaza/GP-ReservationService/internal/infra/storage/device"
	reservationRepo "github.com/gameplaza/GP-ReservationService/internal/infra/storage/reservation"
	scheduleRepo "github.com/gameplaza/GP-ReservationService/internal/infra/storage/schedule"
	templateRepo "github.com/gameplaza/GP-ReservationService/internal/infra/storage/template"
	userServiceClient "github.com/gameplaza/GP-ReservationService/internal/integrations/userservice"
	reservationsService "github.com/gameplaza/GP-ReservationService/internal/service/reservations"
	rulesService "github.com/gameplaza/GP-ReservationService/internal/service/rules"
	timeslotsService "github.com/gameplaza/GP-ReservationService/internal/service/timeslots"
	createReservationUC "github.com/gameplaza/GP-ReservationService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/gameplaza/GP-ReservationService/internal/usecase/get_available_slots"
	"github.com/gameplaza/GP-ReservationService/pkg/dbmetrics"
	"github.com/gameplaza/GP-ReservationService/pkg/logger"
	"github.com/gameplaza/GP-ReservationService/pkg/metrics"
	"github.com/gameplaza/GP-ReservationService/pkg/simpletxmanager"
	"github.com/gameplaza/GP-ReservationService/pkg/txmanager"
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

	log.Info("Starting GP-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
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

	// Инициализируем клиент UserService
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("UserService client initialized (url=%s, timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		templateRepository    *templateRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		deviceRepository      *deviceRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		templateRepository = templateRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		deviceRepository = deviceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		templateRepository = templateRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		deviceRepository = deviceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем доменные сервисы
	slotSvc := timeslotsService.NewService(templateRepository, scheduleRepository, log)
	rulesSvc := rulesService.NewService()
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		&reservationsService.RealTimeProvider{},
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		deviceRepository,
		userClient,
		slotSvc,
		rulesSvc,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		deviceRepository,
		slotSvc,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	approveReservation := approveReservationHandler.NewHandler(reservationSvc, log)
	rejectReservation := rejectReservationHandler.NewHandler(reservationSvc, log)
	checkinReservation := checkinReservationHandler.NewHandler(reservationSvc, log)
	completeReservation := completeReservationHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// Каталог слотов устройства с доступностью на дату
	api.HandleFunc("/devices/{deviceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Операции персонала ---
	protected.HandleFunc("/reservations/{reservationId}/approve", approveReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/reject", rejectReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/checkin", checkinReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/complete", completeReservation.HandleComplete).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/no-show", completeReservation.HandleNoShow).Methods(http.MethodPatch)

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
