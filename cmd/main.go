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

	approveReservationHandler "github.com/clubaltavista/CDA-ReservationService/internal/api/handlers/approve_reservation"
	cancelProfileReservationsHandler "github.com/clubaltavista/CDA-ReservationService/internal/api/handlers/cancel_profile_reservations"
	cancelReservationHandler "github.com/clubaltavista/CDA-ReservationService/internal/api/handlers/cancel_reservation"
	completeReservationHandler "github.com/clubaltavista/CDA-ReservationService/internal/api/handlers/complete_reservation"
	createReservationHandler "github.com/clubaltavista/CDA-ReservationService/internal/api/handlers/create_reservation"
	evaluateReservationHandler "github.com/clubaltavista/CDA-ReservationService/internal/api/handlers/evaluate_reservation"
	generateSettlementsHandler "github.com/clubaltavista/CDA-ReservationService/internal/api/handlers/generate_settlements"
	getPendingApprovalsHandler "github.com/clubaltavista/CDA-ReservationService/internal/api/handlers/get_pending_approvals"
	getProfileReservationsHandler "github.com/clubaltavista/CDA-ReservationService/internal/api/handlers/get_profile_reservations"
	getReservationHandler "github.com/clubaltavista/CDA-ReservationService/internal/api/handlers/get_reservation"
	getResourceSlotsHandler "github.com/clubaltavista/CDA-ReservationService/internal/api/handlers/get_resource_slots"
	getServiceSlotsHandler "github.com/clubaltavista/CDA-ReservationService/internal/api/handlers/get_service_slots"
	rejectReservationHandler "github.com/clubaltavista/CDA-ReservationService/internal/api/handlers/reject_reservation"
	"github.com/clubaltavista/CDA-ReservationService/internal/api/middleware"
	"github.com/clubaltavista/CDA-ReservationService/internal/config"
	profileRepo "github.com/clubaltavista/CDA-ReservationService/internal/infra/storage/profile"
	reservationRepo "github.com/clubaltavista/CDA-ReservationService/internal/infra/storage/reservation"
	settlementRepo "github.com/clubaltavista/CDA-ReservationService/internal/infra/storage/settlement"
	catalogServiceClient "github.com/clubaltavista/CDA-ReservationService/internal/integrations/catalogservice"
	memberServiceClient "github.com/clubaltavista/CDA-ReservationService/internal/integrations/memberservice"
	notifyServiceClient "github.com/clubaltavista/CDA-ReservationService/internal/integrations/notifyservice"
	paymentLedgerClient "github.com/clubaltavista/CDA-ReservationService/internal/integrations/paymentledger"
	staffServiceClient "github.com/clubaltavista/CDA-ReservationService/internal/integrations/staffservice"
	reservationsService "github.com/clubaltavista/CDA-ReservationService/internal/service/reservations"
	createReservationUC "github.com/clubaltavista/CDA-ReservationService/internal/usecase/create_reservation"
	evaluatePermissionUC "github.com/clubaltavista/CDA-ReservationService/internal/usecase/evaluate_permission"
	generateSettlementsUC "github.com/clubaltavista/CDA-ReservationService/internal/usecase/generate_settlements"
	getResourceSlotsUC "github.com/clubaltavista/CDA-ReservationService/internal/usecase/get_resource_slots"
	getServiceSlotsUC "github.com/clubaltavista/CDA-ReservationService/internal/usecase/get_service_slots"
	"github.com/clubaltavista/CDA-ReservationService/internal/worker"
	"github.com/clubaltavista/CDA-ReservationService/pkg/dbmetrics"
	"github.com/clubaltavista/CDA-ReservationService/pkg/logger"
	"github.com/clubaltavista/CDA-ReservationService/pkg/metrics"
	"github.com/clubaltavista/CDA-ReservationService/pkg/simpletxmanager"
	"github.com/clubaltavista/CDA-ReservationService/pkg/txmanager"
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

	log.Info("Starting CDA-ReservationService...")
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

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	paymentClient := paymentLedgerClient.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		log,
	)
	memberClient := memberServiceClient.NewClient(
		cfg.MemberService.URL,
		time.Duration(cfg.MemberService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s, StaffService=%s, PaymentLedger=%s, MemberService=%s, NotifyService=%s)",
		cfg.CatalogService.URL, cfg.StaffService.URL, cfg.PaymentService.URL,
		cfg.MemberService.URL, cfg.NotifyService.URL)

	// Инициализируем репозитории и транзакционный менеджер (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		profileRepository     *profileRepo.Repository
		settlementRepository  *settlementRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		profileRepository = profileRepo.NewRepository(wrappedDB)
		settlementRepository = settlementRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		profileRepository = profileRepo.NewRepository(db)
		settlementRepository = settlementRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервис жизненного цикла резерваций
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		profileRepository,
		notifyClient,
		log,
	)

	// Инициализируем use cases
	evaluatePermissionUseCase := evaluatePermissionUC.NewUseCase(
		profileRepository,
		reservationRepository,
		paymentClient,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		profileRepository,
		catalogClient,
		staffClient,
		memberClient,
		notifyClient,
		evaluatePermissionUseCase,
		txMgr,
		log,
	)

	getServiceSlotsUseCase := getServiceSlotsUC.NewUseCase(
		reservationRepository,
		catalogClient,
		staffClient,
		log,
	)

	getResourceSlotsUseCase := getResourceSlotsUC.NewUseCase(
		reservationRepository,
		catalogClient,
		log,
	)

	generateSettlementsUseCase := generateSettlementsUC.NewUseCase(
		reservationRepository,
		settlementRepository,
		staffClient,
		paymentClient,
		log,
	)

	// Инициализируем handlers
	getServiceSlots := getServiceSlotsHandler.NewHandler(getServiceSlotsUseCase, log)
	getResourceSlots := getResourceSlotsHandler.NewHandler(getResourceSlotsUseCase, log)
	evaluateReservation := evaluateReservationHandler.NewHandler(evaluatePermissionUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	approveReservation := approveReservationHandler.NewHandler(reservationSvc, log)
	rejectReservation := rejectReservationHandler.NewHandler(reservationSvc, log)
	getProfileReservations := getProfileReservationsHandler.NewHandler(reservationSvc, log)
	getPendingApprovals := getPendingApprovalsHandler.NewHandler(reservationSvc, log)
	generateSettlements := generateSettlementsHandler.NewHandler(generateSettlementsUseCase, log)
	completeReservation := completeReservationHandler.NewHandler(reservationSvc, log)
	cancelProfileReservations := cancelProfileReservationsHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Доступность ---
	api.HandleFunc("/services/{serviceId}/available-slots",
		getServiceSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/available-slots",
		getResourceSlots.Handle).Methods(http.MethodGet)

	// --- Резервации ---
	api.HandleFunc("/reservations/evaluate", evaluateReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/pending-approvals", getPendingApprovals.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/reservations/{reservationId}/approve", approveReservation.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/reservations/{reservationId}/reject", rejectReservation.Handle).Methods(http.MethodPatch)

	// --- История профиля ---
	api.HandleFunc("/profiles/{profileId}/reservations", getProfileReservations.Handle).Methods(http.MethodGet)

	// --- Внутренние эндпоинты (вызываются другими сервисами клуба) ---
	internal := r.PathPrefix("/internal").Subrouter()
	internal.HandleFunc("/settlements/generate", generateSettlements.Handle).Methods(http.MethodPost)
	internal.HandleFunc("/reservations/{reservationId}/complete", completeReservation.Handle).Methods(http.MethodPost)
	internal.HandleFunc("/profiles/{profileId}/cancel-reservations", cancelProfileReservations.Handle).Methods(http.MethodPost)

	// Фоновый воркер: экспирация ожидающих одобрения, каскады членств
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	stopWorkerCh := make(chan struct{})
	if cfg.Worker.Enabled {
		sweeper := worker.NewSweeper(
			reservationRepository,
			memberClient,
			notifyClient,
			time.Duration(cfg.Worker.SweepIntervalSeconds)*time.Second,
			log,
		)
		go sweeper.Run(workerCtx, stopWorkerCh)
	}

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

	// Останавливаем воркер
	if cfg.Worker.Enabled {
		close(stopWorkerCh)
	}
	cancelWorker()

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
