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

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adjustStockHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/adjust_stock"
	createProductHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_product"
	createServiceHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_service"
	createStaffHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_staff"
	deactivateStaffHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/deactivate_staff"
	deleteAppointmentHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/delete_appointment"
	deleteServiceHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/delete_service"
	getAppointmentHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_appointment"
	getBoardConfigHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_board_config"
	getBoardSlotsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_board_slots"
	getClientAppointmentsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_client_appointments"
	getDayBoardHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_day_board"
	getFreeSlotsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_free_slots"
	getProductHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_product"
	listAppointmentsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/list_appointments"
	listLowStockHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/list_low_stock"
	listProductsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/list_products"
	listServicesHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/list_services"
	listStaffHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/list_staff"
	listStockMovementsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/list_stock_movements"
	moveAppointmentHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/move_appointment"
	placeAppointmentHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/place_appointment"
	updateBoardConfigHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_board_config"
	updatePaymentHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_payment"
	updateServiceHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_service"
	updateStaffHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_staff"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	"github.com/m04kA/SMC-ScheduleService/internal/infra/cache"
	"github.com/m04kA/SMC-ScheduleService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/appointment"
	boardconfigRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/boardconfig"
	catalogRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/client"
	productRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/product"
	staffRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/loyaltyservice"
	"github.com/m04kA/SMC-ScheduleService/internal/jobs"
	appointmentsService "github.com/m04kA/SMC-ScheduleService/internal/service/appointments"
	boardconfigService "github.com/m04kA/SMC-ScheduleService/internal/service/boardconfig"
	catalogService "github.com/m04kA/SMC-ScheduleService/internal/service/catalog"
	inventoryService "github.com/m04kA/SMC-ScheduleService/internal/service/inventory"
	getDayBoardUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_day_board"
	getFreeSlotsUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_free_slots"
	moveAppointmentUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/move_appointment"
	placeAppointmentUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/place_appointment"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
)

// Интерфейсы опциональных зависимостей. Потребители объявляют свои
// контракты локально, здесь они собраны в супермножества, чтобы при
// выключенной зависимости в сервисы уходил настоящий nil-интерфейс.
type boardCacheDep interface {
	Get(ctx context.Context, date string) (string, bool, error)
	Set(ctx context.Context, date, payload string) error
	Invalidate(ctx context.Context, dates ...string) error
	InvalidateAll(ctx context.Context) error
}

type eventPublisherDep interface {
	PublishBoardEvent(ctx context.Context, event events.BoardEvent) error
}

type metricsDep interface {
	IncAppointmentPlaced()
	IncAppointmentMoved()
	IncSlotConflict()
	IncStockRejection()
	SetLowStockProducts(n int)
}

type txManagerDep interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	// Подхватываем .env, если он есть (локальная разработка)
	_ = godotenv.Load()

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

	// Инициализируем Sentry (если включен)
	if cfg.Sentry.Enabled {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		})
		if err != nil {
			log.Error("Failed to initialize Sentry: %v", err)
		} else {
			defer sentry.Flush(2 * time.Second)
			log.Info("Sentry initialized (environment=%s)", cfg.Sentry.Environment)
		}
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var appMetrics metricsDep
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		appMetrics = metricsCollector
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

	// Кеш доски в Redis (если включен)
	var boardCache boardCacheDep
	if cfg.Redis.Enabled {
		redisCache, err := cache.New(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.BoardTTLSeconds)*time.Second,
		)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisCache.Close()

		boardCache = redisCache
		log.Info("Board cache connected (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.BoardTTLSeconds)
	}

	// Продюсер событий доски в Kafka (если включен)
	var producer eventPublisherDep
	var kafkaProducer *events.Producer
	if cfg.Kafka.Enabled {
		kafkaProducer, err = events.NewProducer(cfg.Kafka.Broker, cfg.Kafka.Topic)
		if err != nil {
			log.Fatal("Failed to connect to kafka: %v", err)
		}

		producer = kafkaProducer
		log.Info("Kafka producer connected (broker=%s, topic=%s)", cfg.Kafka.Broker, cfg.Kafka.Topic)
	}

	// Клиент CRM программы лояльности (если включен)
	var loyaltyClient appointmentsService.LoyaltyClient
	if cfg.LoyaltyService.Enabled {
		loyaltyClient = loyaltyservice.NewClient(
			cfg.LoyaltyService.URL,
			time.Duration(cfg.LoyaltyService.Timeout)*time.Second,
			log,
		)
		log.Info("Loyalty service client initialized (url=%s, timeout=%ds)",
			cfg.LoyaltyService.URL, cfg.LoyaltyService.Timeout)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		configRepository      *boardconfigRepo.Repository
		staffRepository       *staffRepo.Repository
		serviceRepository     *catalogRepo.Repository
		clientRepository      *clientRepo.Repository
		productRepository     *productRepo.Repository
		txMgr                 txManagerDep
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		configRepository = boardconfigRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		serviceRepository = catalogRepo.NewRepository(wrappedDB)
		clientRepository = clientRepo.NewRepository(wrappedDB)
		productRepository = productRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		configRepository = boardconfigRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		serviceRepository = catalogRepo.NewRepository(db)
		clientRepository = clientRepo.NewRepository(db)
		productRepository = productRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		clientRepository,
		loyaltyClient,
		txMgr,
		producer,
		boardCache,
		log,
	)
	catalogSvc := catalogService.NewService(
		staffRepository,
		serviceRepository,
		productRepository,
		log,
	)
	inventorySvc := inventoryService.NewService(
		productRepository,
		txMgr,
		appMetrics,
		log,
	)
	boardConfigSvc := boardconfigService.NewService(
		configRepository,
		producer,
		boardCache,
		log,
	)

	// Инициализируем use cases
	placeAppointmentUseCase := placeAppointmentUC.NewUseCase(
		appointmentRepository,
		configRepository,
		staffRepository,
		serviceRepository,
		productRepository,
		clientRepository,
		txMgr,
		producer,
		boardCache,
		appMetrics,
		log,
	)
	moveAppointmentUseCase := moveAppointmentUC.NewUseCase(
		appointmentRepository,
		configRepository,
		staffRepository,
		txMgr,
		producer,
		boardCache,
		appMetrics,
		log,
	)
	getDayBoardUseCase := getDayBoardUC.NewUseCase(
		appointmentRepository,
		configRepository,
		staffRepository,
		boardCache,
		log,
	)
	getFreeSlotsUseCase := getFreeSlotsUC.NewUseCase(
		appointmentRepository,
		configRepository,
		staffRepository,
		serviceRepository,
		log,
	)

	// Инициализируем handlers
	getDayBoard := getDayBoardHandler.NewHandler(getDayBoardUseCase, log)
	getBoardSlots := getBoardSlotsHandler.NewHandler(boardConfigSvc, log)
	getFreeSlots := getFreeSlotsHandler.NewHandler(getFreeSlotsUseCase, log)
	getBoardConfig := getBoardConfigHandler.NewHandler(boardConfigSvc, log)
	updateBoardConfig := updateBoardConfigHandler.NewHandler(boardConfigSvc, log)

	placeAppointment := placeAppointmentHandler.NewHandler(placeAppointmentUseCase, log)
	moveAppointment := moveAppointmentHandler.NewHandler(moveAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updatePayment := updatePaymentHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)

	createStaff := createStaffHandler.NewHandler(catalogSvc, log)
	listStaff := listStaffHandler.NewHandler(catalogSvc, log)
	updateStaff := updateStaffHandler.NewHandler(catalogSvc, log)
	deactivateStaff := deactivateStaffHandler.NewHandler(catalogSvc, log)

	createService := createServiceHandler.NewHandler(catalogSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)

	createProduct := createProductHandler.NewHandler(inventorySvc, log)
	getProduct := getProductHandler.NewHandler(inventorySvc, log)
	listProducts := listProductsHandler.NewHandler(inventorySvc, log)
	adjustStock := adjustStockHandler.NewHandler(inventorySvc, log)
	listLowStock := listLowStockHandler.NewHandler(inventorySvc, log)
	listStockMovements := listStockMovementsHandler.NewHandler(inventorySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Sentry должен видеть паники всех обработчиков
	if cfg.Sentry.Enabled {
		r.Use(middleware.SentryMiddleware)
	}

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
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

	// Доска на день: колонки мастеров, занятость ячеек
	api.HandleFunc("/board", getDayBoard.Handle).Methods(http.MethodGet)

	// Перечисление ячеек сетки рабочего дня
	api.HandleFunc("/board/slots", getBoardSlots.Handle).Methods(http.MethodGet)

	// Свободные интервалы мастера под выбранные услуги
	api.HandleFunc("/board/free-slots", getFreeSlots.Handle).Methods(http.MethodGet)

	// Конфигурация доски
	api.HandleFunc("/board/config", getBoardConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Staff-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", placeAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/appointments/{appointmentId}/move", moveAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/payment", updatePayment.Handle).Methods(http.MethodPatch)

	// История посещений клиента
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Конфигурация доски ---
	protected.HandleFunc("/board/config", updateBoardConfig.Handle).Methods(http.MethodPut)

	// --- Мастера ---
	protected.HandleFunc("/staff", createStaff.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/staff", listStaff.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/staff/{staffId}", updateStaff.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/staff/{staffId}", deactivateStaff.Handle).Methods(http.MethodDelete)

	// --- Каталог услуг ---
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Склад расходников ---
	// low-stock регистрируется раньше {productId}, иначе mux примет
	// "low-stock" за ID товара
	protected.HandleFunc("/products", createProduct.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/products", listProducts.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/products/low-stock", listLowStock.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/products/{productId}", getProduct.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/products/{productId}/stock", adjustStock.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/products/{productId}/movements", listStockMovements.Handle).Methods(http.MethodGet)

	// Фоновые задачи: перекат рабочего дня и сверка остатков
	var scheduler *jobs.Scheduler
	if cfg.Cron.Enabled {
		scheduler = jobs.NewScheduler(
			cfg.Cron.RolloverSpec,
			cfg.Cron.LowStockSpec,
			boardConfigSvc,
			inventorySvc,
			boardCache,
			producer,
			appMetrics,
			log,
		)
		if err := scheduler.Start(); err != nil {
			log.Fatal("Failed to start scheduler: %v", err)
		}
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

	// Останавливаем фоновые задачи
	if scheduler != nil {
		scheduler.Stop()
	}

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

	// Дожимаем буфер продюсера перед выходом
	if kafkaProducer != nil {
		if err := kafkaProducer.Close(); err != nil {
			log.Error("Failed to close kafka producer: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
