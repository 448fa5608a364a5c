package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/api/router"
	"github.com/m04kA/SMC-CarWashService/internal/config"
	"github.com/m04kA/SMC-CarWashService/internal/infra/storage"
	"github.com/m04kA/SMC-CarWashService/internal/integrations/identity"
	"github.com/m04kA/SMC-CarWashService/internal/seed"
	bookingsService "github.com/m04kA/SMC-CarWashService/internal/service/bookings"
	companiesService "github.com/m04kA/SMC-CarWashService/internal/service/companies"
	ordersService "github.com/m04kA/SMC-CarWashService/internal/service/orders"
	servicesService "github.com/m04kA/SMC-CarWashService/internal/service/services"
	createBookingUC "github.com/m04kA/SMC-CarWashService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
	"github.com/m04kA/SMC-CarWashService/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CARWASH_CONFIG"); p != "" {
		configPath = p
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

	log.Info("Starting SMC-CarWashService...")
	log.Info("Configuration loaded from %s (storage=%s, auth=%s)", configPath, cfg.Storage.Driver, cfg.Auth.Provider)

	// Контекст живет до сигнала завершения: на нем работает фоновое обновление JWKS
	appCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var storageMetrics storage.Registerer
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		storageMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к хранилищу
	stores, err := storage.Open(appCtx, cfg, storageMetrics, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer func() {
		if err := stores.Close(context.Background()); err != nil {
			log.Error("Failed to close storage: %v", err)
		}
	}()

	// Хранилище в памяти стартует пустым, заполняем каталог по умолчанию
	if stores.Driver == config.DriverMemory {
		res, err := seed.Run(appCtx, stores.Services, stores.Companies, log)
		if err != nil {
			log.Fatal("Failed to seed in-memory storage: %v", err)
		}
		log.Info("In-memory storage seeded (services=%d, companies=%d)", res.ServicesCreated, res.CompaniesCreated)
	}

	// Инициализируем проверку токенов
	verifier, err := newVerifier(appCtx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize token verifier: %v", err)
	}

	// Инициализируем сервисы
	servicesSvc := servicesService.NewService(stores.Services, stores.Bookings, log)
	companiesSvc := companiesService.NewService(stores.Companies, log)
	bookingsSvc := bookingsService.NewService(
		stores.Bookings,
		stores.Services,
		stores.Companies,
		metricsCollector,
		log,
	)
	ordersSvc := ordersService.NewService(stores.Orders, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		stores.Bookings,
		stores.Services,
		stores.Companies,
		metricsCollector,
		log,
	)

	// Настраиваем роутер
	handler := router.New(
		router.Dependencies{
			Services:      servicesSvc,
			Companies:     companiesSvc,
			Bookings:      bookingsSvc,
			Orders:        ordersSvc,
			CreateBooking: createBookingUseCase,
		},
		router.Options{
			Verifier:       verifier,
			AuthTimeout:    cfg.Auth.VerifyTimeout(),
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Metrics:        metricsCollector,
			MetricsPath:    cfg.Metrics.Path,
		},
		log,
	)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	// Ожидаем сигнал завершения
	<-appCtx.Done()

	log.Info("Shutting down server...")

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

// newVerifier выбирает проверку токенов по auth.provider
func newVerifier(ctx context.Context, cfg *config.Config, log *logger.Logger) (middleware.TokenVerifier, error) {
	switch cfg.Auth.Provider {
	case config.ProviderFirebase:
		v, err := identity.NewFirebaseVerifier(ctx, identity.FirebaseOptions{
			ProjectID:       cfg.Auth.Firebase.ProjectID,
			JWKSURL:         cfg.Auth.Firebase.JWKSURL,
			RefreshInterval: time.Duration(cfg.Auth.Firebase.RefreshInterval) * time.Second,
		}, log)
		if err != nil {
			return nil, err
		}
		log.Info("Firebase token verification enabled (project=%s)", cfg.Auth.Firebase.ProjectID)
		return v, nil
	case config.ProviderHMAC:
		log.Warn("HS256 development tokens enabled, do not use in production")
		return identity.NewHMACVerifier(identity.HMACOptions{
			Secret:   cfg.Auth.HMAC.Secret,
			Issuer:   cfg.Auth.HMAC.Issuer,
			Audience: cfg.Auth.HMAC.Audience,
		}), nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Auth.Provider)
	}
}
