package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/abnormalforhad/Spicy-website/internal/cache"
	"github.com/abnormalforhad/Spicy-website/internal/cart"
	"github.com/abnormalforhad/Spicy-website/internal/catalog"
	"github.com/abnormalforhad/Spicy-website/internal/checkout"
	"github.com/abnormalforhad/Spicy-website/internal/events"
	h "github.com/abnormalforhad/Spicy-website/internal/http"
	"github.com/abnormalforhad/Spicy-website/internal/payments"
	"github.com/abnormalforhad/Spicy-website/internal/reconcile"
	"github.com/abnormalforhad/Spicy-website/internal/repository"
)

type Config struct {
	HTTPPort            string
	MongoURI            string
	MongoDatabase       string
	RedisAddr           string
	KafkaBrokers        string
	StripeAPIKey        string
	StripeWebhookSecret string
	SeedOnStart         bool
	RequestTimeout      time.Duration
	ShutdownTimeout     time.Duration
	MaxRequestBodySize  int64
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		MongoURI:            getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDatabase:       getEnv("MONGO_DB", "spice_store"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:        getEnv("KAFKA_BROKERS", ""),
		StripeAPIKey:        getEnv("STRIPE_API_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		SeedOnStart:         getEnv("SEED_ON_START", "true") == "true",
		RequestTimeout:      30 * time.Second,
		ShutdownTimeout:     10 * time.Second,
		MaxRequestBodySize:  1 << 20, // 1MB
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	if cfg.StripeAPIKey == "" {
		log.Fatal("STRIPE_API_KEY is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MongoDB
	connectCtx, connectCancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := repository.ConnectMongoDB(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
	connectCancel()
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if err := db.Client().Disconnect(disconnectCtx); err != nil {
			log.Printf("failed to disconnect MongoDB: %v", err)
		}
	}()

	store := repository.NewMongoStore(db)
	if err := store.CreateIndexes(ctx); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}

	// Redis
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}

	// Kafka is optional: without brokers, paid-order events are only logged
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaBrokers != "" {
		kafkaPublisher := events.NewKafkaPublisher(strings.Split(cfg.KafkaBrokers, ",")...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	catalogService := catalog.NewService(store, cache.NewRedisCache(redisClient))
	if cfg.SeedOnStart {
		if count, err := catalogService.Seed(ctx); err != nil {
			log.Printf("catalog seed failed: %v", err)
		} else if count > 0 {
			log.Printf("seeded %d products", count)
		}
	}

	stripeService := payments.NewStripeService(cfg.StripeAPIKey, "")
	checkoutService := checkout.NewService(store, store, stripeService, publisher)
	carts := cart.NewStore()

	// Background sweep settles sessions the webhook missed
	worker := reconcile.NewWorker(checkoutService, checkoutService, reconcile.New(stripeService))
	go worker.Run(ctx)

	productHandler := h.NewProductHandler(catalogService, cfg.RequestTimeout)
	cartHandler := h.NewCartHandler(carts, catalogService, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(checkoutService, carts, cfg.RequestTimeout)
	webhookHandler := h.NewWebhookHandler(checkoutService, cfg.StripeWebhookSecret, cfg.RequestTimeout)
	orderHandler := h.NewOrderHandler(checkoutService, cfg.RequestTimeout)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.MaxBodyBytes(cfg.MaxRequestBodySize))
	r.Use(h.SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", productHandler.List)
		r.Get("/products/featured", productHandler.Featured)
		r.Get("/products/{product_id}", productHandler.Get)
		r.Post("/products", productHandler.Create)
		r.Post("/init-products", productHandler.Seed)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})

		r.Post("/checkout/session", checkoutHandler.CreateSession)
		r.Get("/checkout/status/{session_id}", checkoutHandler.Status)
		r.Post("/webhook/stripe", webhookHandler.HandleStripe)
		r.Get("/orders/{order_id}", orderHandler.Get)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "spice-store"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("spice store API starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	cancel() // stops the reconcile worker

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
