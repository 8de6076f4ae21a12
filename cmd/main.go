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

	cancelBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/cancel_booking"
	changeBookingStatusHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/change_booking_status"
	estimateConflictsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/estimate_conflicts"
	getBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_booking"
	getPointBookingsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_point_bookings"
	getSlotGridHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_slot_grid"
	previewSlotGridHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/preview_slot_grid"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	"github.com/m04kA/SMC-ScheduleService/internal/events"
	"github.com/m04kA/SMC-ScheduleService/internal/infra/cache"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	partnerServiceClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/partnerservice"
	bookingsService "github.com/m04kA/SMC-ScheduleService/internal/service/bookings"
	estimateConflictsUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/estimate_conflicts"
	getSlotGridUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_slot_grid"
	previewSlotGridUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/preview_slot_grid"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
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

	log.Info("Starting SMC-ScheduleService...")
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

	// Инициализируем клиент PartnerService
	partnerClient := partnerServiceClient.NewClient(
		cfg.PartnerService.URL,
		time.Duration(cfg.PartnerService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (PartnerService=%s timeout=%ds)",
		cfg.PartnerService.URL, cfg.PartnerService.Timeout)

	// Инициализируем кэш сетки слотов (если включен)
	var slotGridCache *cache.SlotGridCache
	if cfg.Redis.Enabled {
		slotGridCache, err = cache.NewSlotGridCache(
			context.Background(),
			cfg.Redis.Address,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second,
			log,
		)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer slotGridCache.Close()
		log.Info("Slot grid cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Address, cfg.Redis.TTLSeconds)
	}

	// Инициализируем публикацию событий (если включена)
	var publisher bookingsService.EventPublisher
	if cfg.RabbitMQ.Enabled {
		publisher = events.NewAMQPPublisher(cfg.RabbitMQ.URL, log)
		log.Info("Event publishing enabled (queue=%s)", events.QueueBookingStatusChanged)
	} else {
		publisher = events.NopPublisher{}
		log.Info("Event publishing disabled")
	}

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		txMgr             bookingsService.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		partnerClient,
		publisher,
		txMgr,
		nil,
		log,
	)

	// Инициализируем use cases
	var gridCache getSlotGridUC.SlotGridCache
	if slotGridCache != nil {
		gridCache = slotGridCache
	}

	getSlotGridUseCase := getSlotGridUC.NewUseCase(partnerClient, gridCache, log)
	previewSlotGridUseCase := previewSlotGridUC.NewUseCase(log)
	estimateConflictsUseCase := estimateConflictsUC.NewUseCase(
		bookingRepository,
		partnerClient,
		nil,
		log,
	)

	// Инициализируем handlers
	getSlotGrid := getSlotGridHandler.NewHandler(getSlotGridUseCase, log)
	previewSlotGrid := previewSlotGridHandler.NewHandler(previewSlotGridUseCase, log)
	estimateConflicts := estimateConflictsHandler.NewHandler(estimateConflictsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	changeBookingStatus := changeBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getPointBookings := getPointBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Все роуты требуют X-User-ID header
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Сетка слотов ---
	// Сетка доступности для сохранённого состояния точки
	protected.HandleFunc("/service-points/{pointId}/slot-grid",
		getSlotGrid.Handle).Methods(http.MethodGet)

	// Предпросмотр сетки по черновику расписания
	protected.HandleFunc("/service-points/{pointId}/slot-grid/preview",
		previewSlotGrid.Handle).Methods(http.MethodPost)

	// Оценка конфликтов предлагаемого расписания с бронированиями
	protected.HandleFunc("/service-points/{pointId}/schedule/conflicts",
		estimateConflicts.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Смена статуса бронирования (для менеджеров)
	protected.HandleFunc("/bookings/{bookingId}/status", changeBookingStatus.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Список бронирований точки (для менеджеров)
	protected.HandleFunc("/service-points/{pointId}/bookings", getPointBookings.Handle).Methods(http.MethodGet)

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
