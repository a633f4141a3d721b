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

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	checkAvailabilityHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/create_booking"
	createDraftHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/create_draft"
	deleteBookingHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/get_booking"
	getDraftHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/get_draft"
	getInvoiceHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/get_invoice"
	listBookingsHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/list_bookings"
	quoteBookingHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/quote_booking"
	recordPaymentHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/record_payment"
	updateBookingHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/update_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/update_booking_status"
	updateDraftHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/update_draft"
	updatePaymentStatusHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/update_payment_status"
	verifyPaymentHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/verify_payment"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueService/internal/config"
	"github.com/m04kA/SMC-VenueService/internal/infra/draftstore"
	auditRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/audit"
	bookingRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/catalog"
	customerRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/customer"
	paymentRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/payment"
	settingsRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/settings"
	notifyServiceClient "github.com/m04kA/SMC-VenueService/internal/integrations/notifyservice"
	availabilityService "github.com/m04kA/SMC-VenueService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-VenueService/internal/service/bookings"
	draftsService "github.com/m04kA/SMC-VenueService/internal/service/drafts"
	invoicesService "github.com/m04kA/SMC-VenueService/internal/service/invoices"
	paymentsService "github.com/m04kA/SMC-VenueService/internal/service/payments"
	pricingService "github.com/m04kA/SMC-VenueService/internal/service/pricing"
	createBookingUC "github.com/m04kA/SMC-VenueService/internal/usecase/create_booking"
	updateBookingUC "github.com/m04kA/SMC-VenueService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-VenueService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueService/pkg/logger"
	"github.com/m04kA/SMC-VenueService/pkg/metrics"
	"github.com/m04kA/SMC-VenueService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-VenueService/pkg/txmanager"
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

	log.Info("Starting SMC-VenueService...")
	log.Info("Configuration loaded from config.toml")

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

	// Подключаемся к Redis (черновики бронирований)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	draftStore := draftstore.NewStore(redisClient, time.Duration(cfg.Redis.DraftTTLMinutes)*time.Minute)

	// Инициализируем клиента сервиса уведомлений
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (NotifyService=%s timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		catalogRepository  *catalogRepo.Repository
		customerRepository *customerRepo.Repository
		paymentRepository  *paymentRepo.Repository
		settingsRepository *settingsRepo.Repository
		auditRepository    *auditRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		auditRepository = auditRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		auditRepository = auditRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	pricingSvc := pricingService.NewService(catalogRepository, settingsRepository, log)
	availabilitySvc := availabilityService.NewService(bookingRepository, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		customerRepository,
		catalogRepository,
		paymentRepository,
		settingsRepository,
		auditRepository,
		notifyClient,
		txMgr,
		log,
	)
	paymentSvc := paymentsService.NewService(
		paymentRepository,
		bookingRepository,
		auditRepository,
		txMgr,
		log,
	)
	invoiceSvc := invoicesService.NewService(bookingSvc, cfg.Invoice, log)
	draftSvc := draftsService.NewService(draftStore, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		customerRepository,
		auditRepository,
		pricingSvc,
		draftStore,
		notifyClient,
		txMgr,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		customerRepository,
		auditRepository,
		pricingSvc,
		notifyClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(availabilitySvc, log)
	quoteBooking := quoteBookingHandler.NewHandler(pricingSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(bookingSvc, log)
	recordPayment := recordPaymentHandler.NewHandler(paymentSvc, log)
	verifyPayment := verifyPaymentHandler.NewHandler(paymentSvc, log)
	getInvoice := getInvoiceHandler.NewHandler(invoiceSvc, log)
	createDraft := createDraftHandler.NewHandler(draftSvc, log)
	getDraft := getDraftHandler.NewHandler(draftSvc, log)
	updateDraft := updateDraftHandler.NewHandler(draftSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности зала на дату и смену
	api.HandleFunc("/halls/{hallId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Предварительный расчет стоимости бронирования
	api.HandleFunc("/bookings/quote", quoteBooking.Handle).Methods(http.MethodPost)

	// Создание бронирования (доступно и клиентам, и администраторам)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Черновики бронирований
	api.HandleFunc("/booking-drafts", createDraft.Handle).Methods(http.MethodPost)
	api.HandleFunc("/booking-drafts/{token}", getDraft.Handle).Methods(http.MethodGet)
	api.HandleFunc("/booking-drafts/{token}", updateDraft.Handle).Methods(http.MethodPut)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Список бронирований с фильтрами
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Карточка бронирования
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Редактирование бронирования
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)

	// Удаление бронирования
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// Быстрая смена статуса бронирования
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Смена статуса оплаты / флага аванса
	protected.HandleFunc("/bookings/{bookingId}/payment-status", updatePaymentStatus.Handle).Methods(http.MethodPatch)

	// --- Платежи ---
	// Регистрация платежа по бронированию
	protected.HandleFunc("/bookings/{bookingId}/payments", recordPayment.Handle).Methods(http.MethodPost)

	// Верификация или отклонение платежа
	protected.HandleFunc("/payments/{paymentId}/status", verifyPayment.Handle).Methods(http.MethodPatch)

	// --- Счета ---
	// Выгрузка счета по бронированию в PDF
	protected.HandleFunc("/bookings/{bookingId}/invoice", getInvoice.Handle).Methods(http.MethodGet)

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
		log.Fatal("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited gracefully")
}
