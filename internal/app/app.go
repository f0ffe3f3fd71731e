package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/corray333/commerce/internal/dal/postgres"
	"github.com/corray333/commerce/internal/dal/rabbitmq"
	redisclient "github.com/corray333/commerce/internal/dal/redis"
	addressrepo "github.com/corray333/commerce/internal/dal/repositories/address/postgres"
	categoryrepo "github.com/corray333/commerce/internal/dal/repositories/category/postgres"
	outboxrepo "github.com/corray333/commerce/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/corray333/commerce/internal/dal/repositories/product/postgres"
	userrepo "github.com/corray333/commerce/internal/dal/repositories/user/postgres"
	outboxmodel "github.com/corray333/commerce/internal/service/models/outbox"
	"github.com/corray333/commerce/internal/otel"
	"github.com/corray333/commerce/internal/service/services/addresssvc"
	"github.com/corray333/commerce/internal/service/services/authsvc"
	"github.com/corray333/commerce/internal/service/services/categorysvc"
	"github.com/corray333/commerce/internal/service/services/ordersvc"
	"github.com/corray333/commerce/internal/service/services/productsvc"
	"github.com/corray333/commerce/internal/service/services/usersvc"
	httptransport "github.com/corray333/commerce/internal/transport/http"
	outboxworker "github.com/corray333/commerce/internal/worker/outbox"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	postgresClient *postgres.Client
	redisClient    *redisclient.Client
	rabbitClient   *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	postgresClient := postgres.MustNewClient()
	redisClient := redisclient.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	mustDeclareQueues(rabbitClient)

	pool := postgresClient.Pool()
	users := userrepo.NewPostgresUserRepository(pool)
	addresses := addressrepo.NewPostgresAddressRepository(pool)
	categories := categoryrepo.NewPostgresCategoryRepository(pool)
	products := productrepo.NewPostgresProductRepository(pool)
	outbox := outboxrepo.NewPostgresOutboxRepository(pool)

	jwtSecret := os.Getenv("COMMERCE_JWT_SECRET")
	tokenTTL := viper.GetDuration("auth.token_ttl")
	if tokenTTL == 0 {
		tokenTTL = 24 * time.Hour
	}

	cacheTTL := viper.GetDuration("redis.cache_ttl")
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
	)
	userSvc := usersvc.NewUserService(users)
	productSvc := productsvc.NewProductService(products, categories, redisClient, cacheTTL)
	categorySvc := categorysvc.NewCategoryService(categories)
	addressSvc := addresssvc.NewAddressService(addresses, users)
	authSvc := authsvc.NewAuthService(users, jwtSecret, tokenTTL)

	transport := httptransport.NewHTTPTransport(httptransport.NewServices(
		orderSvc, userSvc, productSvc, categorySvc, addressSvc, authSvc,
	))
	transport.RegisterRoutes()

	worker := outboxworker.NewWorker(outbox, rabbitClient)

	return &App{
		transport:      transport,
		outboxWorker:   worker,
		postgresClient: postgresClient,
		redisClient:    redisClient,
		rabbitClient:   rabbitClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.outboxWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	cancelWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	}

	if err := a.redisClient.Close(); err != nil {
		slog.Error("Redis connection close error", "error", err)
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Tracer provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}

func mustDeclareQueues(client *rabbitmq.Client) {
	queues := []string{
		outboxmodel.QueueOrderCreated,
		outboxmodel.QueueOrderStatusChanged,
		outboxmodel.QueueOrderDeleted,
	}

	for _, name := range queues {
		if _, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
			Name:    name,
			Durable: true,
		}); err != nil {
			panic("failed to declare queue " + name + ": " + err.Error())
		}
	}
}
