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

	cancelBookingHandler "github.com/fleetops/FPB-BookingService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/fleetops/FPB-BookingService/internal/api/handlers/complete_booking"
	confirmBookingHandler "github.com/fleetops/FPB-BookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/fleetops/FPB-BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/fleetops/FPB-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/fleetops/FPB-BookingService/internal/api/handlers/get_booking"
	getMyBookingsHandler "github.com/fleetops/FPB-BookingService/internal/api/handlers/get_my_bookings"
	getPartnerCommissionsHandler "github.com/fleetops/FPB-BookingService/internal/api/handlers/get_partner_commissions"
	getPartnerScheduleHandler "github.com/fleetops/FPB-BookingService/internal/api/handlers/get_partner_schedule"
	getUpcomingBookingsHandler "github.com/fleetops/FPB-BookingService/internal/api/handlers/get_upcoming_bookings"
	payCommissionHandler "github.com/fleetops/FPB-BookingService/internal/api/handlers/pay_commission"
	rejectBookingHandler "github.com/fleetops/FPB-BookingService/internal/api/handlers/reject_booking"
	startBookingHandler "github.com/fleetops/FPB-BookingService/internal/api/handlers/start_booking"
	updatePartnerScheduleHandler "github.com/fleetops/FPB-BookingService/internal/api/handlers/update_partner_schedule"
	"github.com/fleetops/FPB-BookingService/internal/api/middleware"
	"github.com/fleetops/FPB-BookingService/internal/config"
	bookingRepo "github.com/fleetops/FPB-BookingService/internal/infra/storage/booking"
	commissionRepo "github.com/fleetops/FPB-BookingService/internal/infra/storage/commission"
	scheduleRepo "github.com/fleetops/FPB-BookingService/internal/infra/storage/schedule"
	catalogServiceClient "github.com/fleetops/FPB-BookingService/internal/integrations/catalogservice"
	bookingsService "github.com/fleetops/FPB-BookingService/internal/service/bookings"
	commissionsService "github.com/fleetops/FPB-BookingService/internal/service/commissions"
	scheduleService "github.com/fleetops/FPB-BookingService/internal/service/schedule"
	createBookingUC "github.com/fleetops/FPB-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/fleetops/FPB-BookingService/internal/usecase/get_available_slots"
	"github.com/fleetops/FPB-BookingService/pkg/dbmetrics"
	"github.com/fleetops/FPB-BookingService/pkg/logger"
	"github.com/fleetops/FPB-BookingService/pkg/metrics"
	"github.com/fleetops/FPB-BookingService/pkg/simpletxmanager"
	"github.com/fleetops/FPB-BookingService/pkg/txmanager"
)

// realTimeProvider системное время для production-режима
type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}

// TxManager интерфейс transaction manager для сервисов
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

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

	log.Info("Starting FPB-BookingService...")
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

	// Инициализируем клиент каталога
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository    *bookingRepo.Repository
		scheduleRepository   *scheduleRepo.Repository
		commissionRepository *commissionRepo.Repository
		txMgr                TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		commissionRepository = commissionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		commissionRepository = commissionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	timeProvider := realTimeProvider{}

	// Инициализируем сервисы
	commissionSvc := commissionsService.NewService(commissionRepository, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		commissionSvc,
		txMgr,
		timeProvider,
		cfg.Booking.AllowEarlyStart,
		cfg.Booking.UpcomingWindowDays,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		txMgr,
		timeProvider,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogClient,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getMyBookings := getMyBookingsHandler.NewHandler(bookingSvc, log)
	getUpcomingBookings := getUpcomingBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	rejectBooking := rejectBookingHandler.NewHandler(bookingSvc, log)
	startBooking := startBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	getPartnerSchedule := getPartnerScheduleHandler.NewHandler(scheduleSvc, log)
	updatePartnerSchedule := updatePartnerScheduleHandler.NewHandler(scheduleSvc, log)
	getPartnerCommissions := getPartnerCommissionsHandler.NewHandler(commissionSvc, log)
	payCommission := payCommissionHandler.NewHandler(commissionSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты партнера на дату
	api.HandleFunc("/availabilities/{partnerId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// TENANT ROUTES (требуют X-Tenant-ID header)
	// ============================================================

	tenant := api.PathPrefix("").Subrouter()
	tenant.Use(middleware.AuthTenant)

	// Создание бронирования
	tenant.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// История бронирований арендатора
	tenant.HandleFunc("/bookings/my-bookings", getMyBookings.Handle).Methods(http.MethodGet)

	// Предстоящие бронирования
	tenant.HandleFunc("/bookings/upcoming", getUpcomingBookings.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	tenant.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// SHARED ROUTES (арендатор или партнер)
	// ============================================================

	shared := api.PathPrefix("").Subrouter()
	shared.Use(middleware.AuthAny)

	// Получение бронирования по ID
	shared.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// PARTNER ROUTES (требуют X-Partner-ID header)
	// ============================================================

	partner := api.PathPrefix("").Subrouter()
	partner.Use(middleware.AuthPartner)

	// --- Жизненный цикл бронирования ---
	partner.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	partner.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPatch)
	partner.HandleFunc("/bookings/{bookingId}/start", startBooking.Handle).Methods(http.MethodPatch)
	partner.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)

	// --- Расписание партнера ---
	partner.HandleFunc("/partners/{partnerId}/schedule", getPartnerSchedule.Handle).Methods(http.MethodGet)
	partner.HandleFunc("/partners/{partnerId}/schedule", updatePartnerSchedule.Handle).Methods(http.MethodPut)

	// --- Комиссии платформы ---
	partner.HandleFunc("/partners/{partnerId}/commissions", getPartnerCommissions.Handle).Methods(http.MethodGet)
	partner.HandleFunc("/commissions/{commissionId}/pay", payCommission.Handle).Methods(http.MethodPatch)

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
