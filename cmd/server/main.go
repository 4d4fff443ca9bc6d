package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Lixing-Zhang/foodie-storefront/internal/checkout"
	"github.com/Lixing-Zhang/foodie-storefront/internal/config"
	"github.com/Lixing-Zhang/foodie-storefront/internal/coupon"
	"github.com/Lixing-Zhang/foodie-storefront/internal/events"
	"github.com/Lixing-Zhang/foodie-storefront/internal/handlers"
	"github.com/Lixing-Zhang/foodie-storefront/internal/repository"
	"github.com/Lixing-Zhang/foodie-storefront/internal/service"
	"github.com/Lixing-Zhang/foodie-storefront/internal/web"
	"github.com/Lixing-Zhang/foodie-storefront/pkg/logger"
)

const version = "1.0.0"

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting foodie storefront",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"cart_backend", cfg.Cart.Backend,
		"order_backend", cfg.Orders.Backend,
	)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()
	checks := map[string]handlers.Pinger{}
	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("failed to release resource", "error", err)
			}
		}
	}()

	// Promo code sets
	promoValidator := coupon.NewValidator()
	var promo checkout.PromoValidator
	promoHandler := handlers.NewPromoHandler(nil, log)
	if len(cfg.Promo.Sources) > 0 {
		log.Info("loading promo code sets...", "sources", len(cfg.Promo.Sources))
		if err := promoValidator.LoadFromSources(ctx, cfg.Promo.Sources); err != nil {
			return fmt.Errorf("load promo codes: %w", err)
		}
		stats := promoValidator.GetStats()
		log.Info("promo code sets loaded",
			"total_files", stats["total_files"],
			"total_coupons", stats["total_coupons"],
		)
		promo = promoValidator
		promoHandler = handlers.NewPromoHandler(promoValidator, log)
	} else {
		log.Warn("no promo code sets configured, promo codes are accepted as entered")
	}

	// Cart store
	var carts repository.CartStore
	switch cfg.Cart.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Cart.RedisAddr})
		closers = append(closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis at %s: %w", cfg.Cart.RedisAddr, err)
		}
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		carts = repository.NewRedisCartStore(client, cartTTL(cfg))
	default:
		carts = repository.NewMemoryCartStore()
	}

	// Order repository
	var orders repository.OrderRepository
	switch cfg.Orders.Backend {
	case "postgres":
		db, err := repository.OpenPostgres(ctx, cfg.Orders.DatabaseURL)
		if err != nil {
			return err
		}
		closers = append(closers, db.Close)
		pg := repository.NewPostgresOrderRepository(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}
		checks["postgres"] = db.PingContext
		orders = pg
	default:
		orders = repository.NewInMemoryOrderRepository()
	}

	// Order events
	var publisher events.Publisher = events.NewLogPublisher(log)
	if len(cfg.Events.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Events.Brokers, cfg.Events.Topic))
		log.Info("publishing order events to kafka", "brokers", cfg.Events.Brokers, "topic", cfg.Events.Topic)
	}
	closers = append(closers, publisher.Close)

	// Initialize services
	restaurantRepo := repository.NewInMemoryRestaurantRepository()
	restaurantService := service.NewRestaurantService(restaurantRepo)
	cartService := service.NewCartService(carts, restaurantRepo)
	orderService := service.NewOrderService(orders, carts, publisher, cfg.Server.PublicBaseURL, log)
	checkoutValidator := checkout.NewValidator(promo)

	pages, err := web.New(web.Deps{
		Restaurants: restaurantService,
		Carts:       cartService,
		Orders:      orderService,
		Placer:      orderService,
		Validator:   checkoutValidator,
		Promo:       promo,
		Logger:      log,
	})
	if err != nil {
		return fmt.Errorf("load page templates: %w", err)
	}

	router := newRouter(routes{
		health:      handlers.NewHealthHandler(log, version, checks),
		restaurants: handlers.NewRestaurantHandler(restaurantService, log),
		carts:       handlers.NewCartHandler(cartService, log),
		checkout:    handlers.NewCheckoutHandler(checkoutValidator, orderService, log),
		orders:      handlers.NewOrderHandler(orderService, log),
		promo:       promoHandler,
		pages:       pages,
		apiKeys:     cfg.Auth.APIKeys,
		cartTTL:     cartTTL(cfg),
	}, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func cartTTL(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Cart.TTLHours) * time.Hour
}
