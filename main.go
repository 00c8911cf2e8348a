package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/varmina/backend/internal/catalog"
	"github.com/varmina/backend/internal/config"
	deliveryhttp "github.com/varmina/backend/internal/delivery/http"
	"github.com/varmina/backend/internal/entity"
	"github.com/varmina/backend/internal/messaging/kafka"
	"github.com/varmina/backend/internal/order"
	"github.com/varmina/backend/internal/pricing"
	"github.com/varmina/backend/internal/repository/postgres"
	redisrepo "github.com/varmina/backend/internal/repository/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "err", err)
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(cfg.SlogLevel())

	// --- Database ---
	db, err := postgres.InitDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to init database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	productRepo := postgres.NewProductRepository(db)
	assetRepo := postgres.NewAssetRepository(db)
	txnRepo := postgres.NewTransactionRepository(db)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := productRepo.Seed(ctx, seedProducts()); err != nil {
		slog.Error("Failed to seed products", "err", err)
		os.Exit(1)
	}

	// --- Redis (cart snapshots) ---
	redisClient := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	cartStore := redisrepo.NewCartStore(redisClient, time.Duration(cfg.CartTTLHours)*time.Hour)

	// --- Kafka ---
	publisher, subscriber := kafka.NewKafkaBroker(cfg.KafkaBrokers)

	// --- Domain wiring ---
	cat := catalog.New(productRepo, assetRepo)
	if err := cat.Refresh(ctx); err != nil {
		slog.Error("Failed to load catalog", "err", err)
		os.Exit(1)
	}

	submitter := order.NewSubmitter(productRepo, assetRepo, txnRepo, publisher, cat)
	formatter := pricing.NewFormatter(cfg.ExchangeRate)

	// --- HTTP API ---
	handler := deliveryhttp.NewHandler(cat, submitter, txnRepo, cartStore, formatter, cfg.WhatsAppPhone)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: deliveryhttp.EnableCORS(mux),
	}

	// Consumer: sales.completed → operator notification log. Downstream
	// systems (WhatsApp notifier, reporting) attach to the same topic.
	go subscriber.Consume(ctx, "sales.completed", "varmina-backend", func(ctx context.Context, payload []byte) error {
		var sale entity.SaleCompleted
		if err := json.Unmarshal(payload, &sale); err != nil {
			return err
		}
		slog.Info("Sale notification", "transaction_id", sale.TransactionID, "customer", sale.Customer, "total", sale.Total)
		return nil
	})

	go func() {
		slog.Info("HTTP server starting", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")
	httpServer.Shutdown(context.Background())
}
