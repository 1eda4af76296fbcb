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

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-GigBookingService/internal/api"
	"github.com/m04kA/SMC-GigBookingService/internal/config"
	"github.com/m04kA/SMC-GigBookingService/internal/infra/cache/identity"
	bookingRepo "github.com/m04kA/SMC-GigBookingService/internal/infra/storage/booking"
	ratingRepo "github.com/m04kA/SMC-GigBookingService/internal/infra/storage/rating"
	userRepo "github.com/m04kA/SMC-GigBookingService/internal/infra/storage/user"
	bookingsService "github.com/m04kA/SMC-GigBookingService/internal/service/bookings"
	queriesService "github.com/m04kA/SMC-GigBookingService/internal/service/queries"
	ratingsService "github.com/m04kA/SMC-GigBookingService/internal/service/ratings"
	createBookingUC "github.com/m04kA/SMC-GigBookingService/internal/usecase/create_booking"
	submitRatingUC "github.com/m04kA/SMC-GigBookingService/internal/usecase/submit_rating"
	"github.com/m04kA/SMC-GigBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GigBookingService/pkg/logger"
	"github.com/m04kA/SMC-GigBookingService/pkg/metrics"
	"github.com/m04kA/SMC-GigBookingService/pkg/txmanager"
)

// domainMetrics доменные счётчики, которые нужны use case и сервисам
type domainMetrics interface {
	BookingCreated()
	StatusChanged(status string)
	RatingSubmitted(score int)
}

func main() {
	configPath := os.Getenv("GIGS_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
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

	log.Info("Starting SMC-GigBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var dbCollector dbmetrics.Collector
	var counters domainMetrics = metrics.Nop{}
	routerOpts := api.Options{JWTSecret: []byte(cfg.Auth.JWTSecret)}
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector := metrics.New(cfg.Metrics.ServiceName)
		dbCollector = metricsCollector
		counters = metricsCollector
		routerOpts.Metrics = metricsCollector
		routerOpts.MetricsPath = cfg.Metrics.Path
		routerOpts.MetricsHandler = promhttp.Handler()
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

	wrappedDB := dbmetrics.Wrap(db, dbCollector)
	if cfg.Metrics.Enabled {
		wrappedDB.StartPoolStats(time.Duration(cfg.Metrics.PoolStatsIntervalSec)*time.Second, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	// Кэш профилей (Redis опционален)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis at %s is unavailable, profiles will be read from database: %v", cfg.Redis.Addr, err)
		} else {
			log.Info("Connected to Redis at %s", cfg.Redis.Addr)
		}
		cancel()
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	ratingRepository := ratingRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	profiles := identity.NewCache(redisClient, userRepository, time.Duration(cfg.Redis.TTL)*time.Second, log)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, ratingRepository, txMgr, counters, log)
	ratingSvc := ratingsService.NewService(ratingRepository, log)
	querySvc := queriesService.NewService(bookingSvc, ratingRepository, profiles, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(bookingRepository, profiles, counters, log)
	submitRatingUseCase := submitRatingUC.NewUseCase(
		bookingRepository,
		ratingRepository,
		userRepository,
		profiles,
		txMgr,
		counters,
		log,
	)

	// Настраиваем роутер
	r := api.NewRouter(api.Services{
		CreateBooking: createBookingUseCase,
		SubmitRating:  submitRatingUseCase,
		Bookings:      bookingSvc,
		Queries:       querySvc,
		Ratings:       ratingSvc,
	}, routerOpts, log)

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
	close(stopMetricsCh)

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
