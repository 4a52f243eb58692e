package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vrushil-parikh/quickpic/internal/cache"
	"github.com/vrushil-parikh/quickpic/internal/config"
	"github.com/vrushil-parikh/quickpic/internal/events"
	httpapi "github.com/vrushil-parikh/quickpic/internal/http"
	"github.com/vrushil-parikh/quickpic/internal/logger"
	"github.com/vrushil-parikh/quickpic/internal/payment"
	"github.com/vrushil-parikh/quickpic/internal/repository"
	"github.com/vrushil-parikh/quickpic/internal/service"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	// MongoDB holds the catalog, carts, recipes and addresses.
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.Mongo)
	if err != nil {
		zlog.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	zlog.Info("connected to MongoDB", zap.String("uri", cfg.Mongo.URI))

	cartRepo := repository.NewCartMongoRepository(mongoDB)
	if err := cartRepo.CreateIndexes(ctx); err != nil {
		zlog.Fatal("failed to create cart indexes", zap.Error(err))
	}
	productRepo := repository.NewProductMongoRepository(mongoDB)
	categoryRepo := repository.NewCategoryMongoRepository(mongoDB)
	addressRepo := repository.NewAddressMongoRepository(mongoDB)
	recipeRepo := repository.NewRecipeMongoRepository(mongoDB)

	// Postgres holds the orders.
	orderRepo, err := repository.NewOrderPostgresRepository(cfg.Postgres.DSN())
	if err != nil {
		zlog.Fatal("failed to connect to Postgres", zap.Error(err))
	}
	defer orderRepo.Close()
	if err := orderRepo.RunMigrations(cfg.Postgres.MigrationsDir); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}
	zlog.Info("connected to Postgres", zap.String("db", cfg.Postgres.DBName))

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		zlog.Fatal("redis connection failed", zap.Error(err))
	}
	zlog.Info("redis ping succeeded")
	categoryCache := cache.NewRedisCache(redisClient)

	publisher := events.NewPublisher(cfg.Kafka.OrderTopic, cfg.Kafka.Brokers...)
	defer publisher.Close()

	paymentClient := payment.NewClient(cfg.Payment.BaseURL, cfg.Payment.APIKey)

	cartService := service.NewCartService(cartRepo, productRepo, zlog)
	checkoutService := service.NewCheckoutService(
		cartRepo, productRepo, addressRepo, orderRepo,
		paymentClient, publisher, zlog,
		cfg.Payment.SuccessURL, cfg.Payment.CancelURL,
	)
	orderService := service.NewOrderService(orderRepo, addressRepo, publisher, zlog)
	recipeService := service.NewRecipeService(recipeRepo, productRepo, cartRepo, zlog)
	recommendationService := service.NewRecommendationService(orderRepo, productRepo, categoryCache, zlog)

	router := httpapi.NewRouter(httpapi.Handlers{
		Cart:            httpapi.NewCartHandler(cartService),
		Order:           httpapi.NewOrderHandler(checkoutService, orderService),
		Recipe:          httpapi.NewRecipeHandler(recipeService),
		Product:         httpapi.NewProductHandler(productRepo, categoryRepo),
		Recommendations: httpapi.NewRecommendationHandler(recommendationService),
	}, zlog, requestTimeout)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("storefront API starting", zap.String("addr", cfg.Server.Address()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}
