package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aaravmahajanofficial/storefront/docs"
	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/cart"
	"github.com/aaravmahajanofficial/storefront/internal/catalog"
	"github.com/aaravmahajanofficial/storefront/internal/checkout"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/health"
	"github.com/aaravmahajanofficial/storefront/internal/history"
	"github.com/aaravmahajanofficial/storefront/internal/messaging"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/slot"
	boltStorage "github.com/aaravmahajanofficial/storefront/internal/storage/bolt"
	"github.com/aaravmahajanofficial/storefront/internal/tasks"
	"github.com/aaravmahajanofficial/storefront/internal/telemetry"
	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
	"github.com/segmentio/kafka-go"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

const version = "1.0.0"

//	@title						Storefront API
//	@version					1.0
//	@description				Backend for a mobile storefront: catalog, cart, checkout and order history.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracerProvider(ctx, cfg.Otel, version)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	defer redisCache.Close()

	rateLimiter := repository.NewRateLimitRepo(redisClient, cfg.RateConfig)
	tokens := repository.NewTokenRepo(redisCache)

	// Local files for photos and carts
	blobDB, err := boltStorage.Open(cfg.Blob.BoltPath)
	if err != nil {
		slog.Error("❌ Error opening the blob store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer blobDB.Close()

	blobs := boltStorage.NewBlobStore(blobDB, cfg.Blob.PublicBaseURL)

	var cartSlots slot.Factory
	switch cfg.Cart.Backend {
	case "redis":
		cartSlots = slot.CacheFactory(redisCache, cfg.Cart.TTL)
	default:
		cartDB, err := boltStorage.Open(cfg.Cart.BoltPath)
		if err != nil {
			slog.Error("❌ Error opening the cart store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer cartDB.Close()

		cartSlots = slot.BoltFactory(cartDB)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("cartBackend", cfg.Cart.Backend), slog.String("version", version))

	products := catalog.Default()
	runner := tasks.NewRunner(logger, cfg.Cart.PersistTimeout)
	carts := cart.NewRegistry(products, runner, cartSlots, logger, cart.WithIdleTTL(cfg.Cart.IdleTTL))
	orderHistory := history.New(repos.Orders, logger)

	// Optional collaborators
	var publisher service.EventPublisher
	var producer *messaging.Producer
	if cfg.Kafka.Enabled {
		producer = messaging.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		publisher = producer
	}

	var notificationService service.NotificationService
	if cfg.SendGrid.APIKey != "" {
		emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
		notificationService = service.NewNotificationService(repos.Notifications, repos.Users, emailService)
	} else {
		slog.Warn("⚠️ SendGrid API key not set, order confirmation emails are disabled")
	}

	checkoutManager := checkout.NewManager(checkout.Deps{
		Catalog:   products,
		Addresses: repos.Users,
		Orders:    repos.Orders,
		Logger:    logger,
		OnPlaced:  service.NewOrderPlacedHook(runner, orderHistory, notificationService, publisher, logger),
	}, cfg.Cart.CheckoutTTL)

	// Services and handlers
	jwtKey := []byte(cfg.Security.JWTKey)
	tokenTTL := time.Duration(cfg.Security.JWTExpiryHours) * time.Hour

	userService := service.NewUserService(repos.Users, rateLimiter, tokens, blobs, jwtKey, tokenTTL)
	userHandler := handlers.NewUserHandler(userService).WithMaxPhotoBytes(cfg.Blob.MaxUploadMB << 20)
	productHandler := handlers.NewProductHandler(service.NewProductService(products))
	cartHandler := handlers.NewCartHandler(service.NewCartService(carts, products, logger))
	checkoutHandler := handlers.NewCheckoutHandler(service.NewCheckoutService(checkoutManager, carts))
	orderHandler := handlers.NewOrderHandler(service.NewOrderService(orderHistory, repos.Orders))
	blobHandler := handlers.NewBlobHandler(blobs)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey, tokens)

	healthCheck, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: repos.DB, RedisClient: redisClient})
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Setup router
	routerMux := http.NewServeMux()
	route := func(pattern string, h http.HandlerFunc) {
		routerMux.HandleFunc(pattern, telemetry.WithHTTPRoute(h))
	}
	authed := func(pattern string, h http.HandlerFunc) {
		route(pattern, authMiddleware.Authenticate(h))
	}

	route("POST /api/v1/users/register", userHandler.Register())
	route("POST /api/v1/users/login", userHandler.Login())
	authed("POST /api/v1/users/logout", userHandler.Logout())
	authed("GET /api/v1/users/profile", userHandler.Profile())
	authed("PUT /api/v1/users/profile", userHandler.UpdateProfile())
	authed("POST /api/v1/users/profile/photo", userHandler.UploadPhoto())
	route("GET /api/v1/blobs/{key...}", blobHandler.GetBlob())

	route("GET /api/v1/products", productHandler.ListProducts())
	route("GET /api/v1/products/{id}", productHandler.GetProduct())

	authed("GET /api/v1/cart", cartHandler.GetCart())
	authed("DELETE /api/v1/cart", cartHandler.ClearCart())
	authed("GET /api/v1/cart/stream", cartHandler.StreamCart())
	authed("POST /api/v1/cart/items", cartHandler.AddItem())
	authed("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())

	authed("POST /api/v1/checkout", checkoutHandler.StartCheckout())
	authed("GET /api/v1/checkout/{id}", checkoutHandler.GetCheckout())
	authed("POST /api/v1/checkout/{id}/addresses", checkoutHandler.AddAddress())
	authed("PUT /api/v1/checkout/{id}/address", checkoutHandler.SelectAddress())
	authed("POST /api/v1/checkout/{id}/deliver", checkoutHandler.DeliverToSelected())
	authed("PUT /api/v1/checkout/{id}/delivery", checkoutHandler.SelectDeliveryMethod())
	authed("POST /api/v1/checkout/{id}/next", checkoutHandler.Next())
	authed("POST /api/v1/checkout/{id}/confirm", checkoutHandler.PlaceOrder())

	authed("GET /api/v1/orders", orderHandler.ListOrders())
	authed("GET /api/v1/orders/stream", orderHandler.StreamOrders())
	authed("GET /api/v1/orders/{id}", orderHandler.GetOrder())

	routerMux.Handle("GET /health", healthCheck.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Streams only end when their feeds close, so close them as soon as
	// Shutdown starts instead of waiting out its deadline.
	server.RegisterOnShutdown(func() {
		carts.CloseFeeds()
		orderHistory.Close()
	})

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.Kafka.Enabled {
		groupID := messaging.InstanceGroupID(cfg.Kafka.GroupID)
		consumer := messaging.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, groupID,
			messaging.WithStartOffset(kafka.LastOffset))
		slog.Info("order events consumer configured", slog.String("groupId", groupID))

		g.Go(func() error {
			defer consumer.Close()

			err := consumer.Consume(gCtx, messaging.OrderPlacedHandler(
				func(ctx context.Context, event models.OrderPlacedEvent) error {
					if err := orderHistory.OrderPlaced(ctx, event); err != nil {
						slog.Warn("⚠️ Failed to refresh order history from event", slog.String("orderId", event.OrderID.String()), slog.String("error", err.Error()))
					}
					return nil
				},
				func(payload []byte, err error) {
					slog.Warn("⚠️ Skipping undecodable order event", slog.Int("bytes", len(payload)), slog.String("error", err.Error()))
				},
			))
			if err != nil && gCtx.Err() == nil {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		carts.RunEviction(gCtx, time.Minute)
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Server shut down gracefully. All connections closed.")
		}

		drainCtx, cancelDrain := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelDrain()

		if err := carts.Close(drainCtx); err != nil {
			slog.Error("⚠️ Pending cart writes did not finish", slog.String("error", err.Error()))
		}

		orderHistory.Close()

		if producer != nil {
			if err := producer.Close(); err != nil {
				slog.Error("⚠️ Error closing kafka producer", slog.String("error", err.Error()))
			}
		}

		flushCtx, cancelFlush := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelFlush()

		if err := shutdownTracing(flushCtx); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("❌ Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
