package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/novamart/storefront/internal/cache"
	"github.com/novamart/storefront/internal/config"
	"github.com/novamart/storefront/internal/notifier"
	"github.com/novamart/storefront/internal/repository"
	"github.com/novamart/storefront/internal/server"
	"github.com/novamart/storefront/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := repository.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("pgxpool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("database ping: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable, catalog cache degraded: %v", err)
	}

	cartRepo, err := repository.NewCart(pool)
	if err != nil {
		log.Fatalf("cart repository: %v", err)
	}
	orderRepo, err := repository.NewOrder(pool)
	if err != nil {
		log.Fatalf("order repository: %v", err)
	}
	catalogRepo, err := repository.NewCatalog(pool)
	if err != nil {
		log.Fatalf("catalog repository: %v", err)
	}
	analyticsRepo, err := repository.NewAnalytics(pool)
	if err != nil {
		log.Fatalf("analytics repository: %v", err)
	}

	emailNotifier := notifier.NewEmail(notifier.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	})

	catalogSvc, err := service.NewCatalog(catalogRepo, cache.NewRedisProductCache(redisClient))
	if err != nil {
		log.Fatalf("catalog service: %v", err)
	}
	cartSvc, err := service.NewCart(cartRepo, catalogSvc)
	if err != nil {
		log.Fatalf("cart service: %v", err)
	}
	checkoutSvc, err := service.NewCheckout(cartRepo, orderRepo, emailNotifier)
	if err != nil {
		log.Fatalf("checkout service: %v", err)
	}
	analyticsSvc, err := service.NewAnalytics(analyticsRepo)
	if err != nil {
		log.Fatalf("analytics service: %v", err)
	}
	copilotSvc, err := service.NewCopilot(analyticsSvc)
	if err != nil {
		log.Fatalf("copilot service: %v", err)
	}

	router := server.NewRouter(server.Handlers{
		Cart:     server.NewCartHandler(cartSvc),
		Checkout: server.NewCheckoutHandler(checkoutSvc),
		Catalog:  server.NewCatalogHandler(catalogSvc),
		Admin:    server.NewAdminHandler(analyticsSvc, copilotSvc),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
