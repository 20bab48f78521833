package internal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	logger_adapter "listing-service/internal/adapters/logger"
	postgres_adapter "listing-service/internal/adapters/postgres"
	rabbitmq_adapter "listing-service/internal/adapters/rabbitmq"
	redis_adapter "listing-service/internal/adapters/redis"
	"listing-service/internal/adapters/rest"
	"listing-service/internal/configs"
	"listing-service/internal/constants"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/usecase"
	fluentlogger "listing-service/pkg/fluent_logger"
	"listing-service/pkg/postgres"
	"listing-service/pkg/rabbitmq/rabbitmq_common"
	"listing-service/pkg/rabbitmq/rabbitmq_producer"
	redisclient "listing-service/pkg/redis"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

const shutdownTimeout = 15 * time.Second

// App – структура приложения
type App struct {
	config      *configs.AppConfig
	dbPool      *pgxpool.Pool
	redisClient *goredis.Client
	connManager *rabbitmq_common.ConnectionManager
	producer    *rabbitmq_producer.Publisher
	apiServer   *rest.Server
	loggers     *logger_adapter.MultiLoggerAdapter
	logger      port.LoggerPort
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	app := &App{config: appConfig}

	// --- 1. ЛОГГЕРЫ ---
	baseLogger, err := app.initLoggers()
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	app.logger = appLogger

	// при ошибке инициализации освобождаем уже созданные ресурсы
	initOK := false
	defer func() {
		if !initOK {
			app.closeResources()
		}
	}()

	// схемы событий компилируются при старте
	registry, err := contracts.DefaultRegistry()
	if err != nil {
		appLogger.Error("Failed to compile event schemas", err, nil)
		return nil, fmt.Errorf("failed to compile event schemas: %w", err)
	}
	appLogger.Info("Event schemas compiled", port.Fields{"schemas": registry.Keys()})

	// --- 2. ХРАНИЛИЩЕ ---
	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelInit()

	app.dbPool, err = postgres.NewClient(initCtx, postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	migrationsLogger := baseLogger.WithFields(port.Fields{"component": "migrations"})
	if err := postgres_adapter.RunMigrations(initCtx, app.dbPool, migrationsLogger); err != nil {
		appLogger.Error("Failed to apply migrations", err, nil)
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	listingStorage, err := postgres_adapter.NewListingStorageAdapter(app.dbPool)
	if err != nil {
		appLogger.Error("Failed to create postgres storage adapter", err, nil)
		return nil, fmt.Errorf("failed to create postgres storage adapter: %w", err)
	}

	// --- 3. КЭШ (необязательный) ---
	var listingCache port.ListingCachePort
	if appConfig.Redis.Enabled {
		app.redisClient, err = redisclient.NewClient(initCtx, redisclient.Config{URL: appConfig.Redis.URL})
		if err != nil {
			appLogger.Error("Failed to connect to Redis", err, nil)
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}

		cacheAdapter, err := redis_adapter.NewListingCacheAdapter(app.redisClient, appConfig.Redis.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis cache adapter: %w", err)
		}
		listingCache = cacheAdapter
		appLogger.Info("Redis listing cache initialized.", port.Fields{"ttl": appConfig.Redis.CacheTTL.String()})
	} else {
		appLogger.Info("Redis cache disabled, details are always read from storage.", nil)
	}

	// --- 4. СОБЫТИЯ (необязательные) ---
	var listingEvents port.ListingEventsPort
	if appConfig.RabbitMQ.Enabled {
		listingEvents, err = app.initEvents(baseLogger)
		if err != nil {
			appLogger.Error("Failed to initialize listing events", err, nil)
			return nil, err
		}
		appLogger.Info("RabbitMQ listing events producer initialized.", nil)
	} else {
		appLogger.Info("RabbitMQ disabled, listing events are not published.", nil)
	}

	appLogger.Info("All outgoing adapters initialized.", nil)

	// --- 5. USE CASES ---
	builder := domain.NewBuilder()

	createListingUseCase := usecase.NewCreateListingUseCase(builder, listingStorage, listingEvents)
	updateListingUseCase := usecase.NewUpdateListingUseCase(builder, listingStorage, listingCache, listingEvents)
	getListingDetailsUseCase := usecase.NewGetListingDetailsUseCase(builder, listingStorage, listingCache)
	listListingsUseCase := usecase.NewListListingsUseCase(listingStorage)
	getListingProximityUseCase := usecase.NewGetListingProximityUseCase(builder, listingStorage)
	deleteListingUseCase := usecase.NewDeleteListingUseCase(builder, listingStorage, listingCache, listingEvents)

	appLogger.Info("All use cases initialized.", nil)

	// --- 6. REST API ---
	listingHandlers := rest.NewListingHandler(
		createListingUseCase,
		updateListingUseCase,
		getListingDetailsUseCase,
		listListingsUseCase,
		getListingProximityUseCase,
		deleteListingUseCase,
	)
	app.apiServer = rest.NewServer(rest.ServerConfig{
		Port:           appConfig.Rest.PORT,
		ServiceName:    appConfig.AppName,
		AllowedOrigins: appConfig.Rest.CORSAllowedOrigins,
	}, listingHandlers, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	initOK = true
	return app, nil
}

func (a *App) initLoggers() (port.LoggerPort, error) {
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    logger_adapter.ParseLogLevel(a.config.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	if a.config.FluentBit.Enabled {
		fluentClient, err := fluentlogger.NewClient(fluentlogger.Config{
			Host:      a.config.FluentBit.Host,
			Port:      a.config.FluentBit.Port,
			TagPrefix: a.config.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, logger_adapter.ParseLogLevel(a.config.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}
	a.loggers = multiLogger

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": a.config.AppName,
	})
	baseLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": a.config.FluentBit.Enabled,
	})
	return baseLogger, nil
}

func (a *App) initEvents(baseLogger port.LoggerPort) (port.ListingEventsPort, error) {
	rabbitCfg := rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}

	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
	connManager, err := rabbitmq_common.NewConnectionManager(rabbitCfg, connManagerBridge)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.connManager = connManager

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		Config:                   rabbitCfg,
		ExchangeName:             constants.ListingEventsExchange,
		ExchangeType:             constants.ListingEventsExchangeType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
	}, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	a.producer = producer

	eventsAdapter, err := rabbitmq_adapter.NewListingEventsAdapter(producer, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing events adapter: %w", err)
	}
	return eventsAdapter, nil
}

// closeResources закрывает внешние ресурсы в порядке, обратном созданию
func (a *App) closeResources() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("Error closing event producer", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("Error closing Redis client", err, nil)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}
	if a.loggers != nil {
		if err := a.loggers.Close(); err != nil {
			// fluent может быть уже недоступен
			fmt.Printf("ERROR: Error closing log sinks: %v\n", err)
		}
	}
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)
		a.closeResources()
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil {
			errorsCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
		return err
	}
}
