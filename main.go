// File: servicefinder/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servicefinder/config"
	"servicefinder/cron"
	"servicefinder/database"
	"servicefinder/database/repository"
	"servicefinder/handlers"
	"servicefinder/middleware"
	"servicefinder/routes"
	"servicefinder/services/booking"
	"servicefinder/services/catalogue"
	"servicefinder/services/hold"
	"servicefinder/services/notification"
	"servicefinder/services/payment"
	"servicefinder/services/provider"
	"servicefinder/services/review"
	"servicefinder/services/storage"
	"servicefinder/services/tasks"
	"servicefinder/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()
	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeKey

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// repositories.
	provRepo := repository.NewMongoProviderRepo()
	serviceRepo := repository.NewMongoServiceRepo()
	bookingRepo := repository.NewMongoBookingRepo()
	reviewRepo := repository.NewMongoReviewRepo()
	userRepo := repository.NewMongoUserRepository()

	// side-effect collaborators; each is optional.
	var notifiers notification.Multi
	fcm, err := utils.FirebaseMessaging(rootCtx)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize firebase: %v", err)
	}
	if fcm != nil {
		notifiers = append(notifiers, notification.NewPushNotifier(fcm, userRepo, logger))
	}
	var publisher *notification.EventPublisher
	if config.AppConfig.RabbitMQURL != "" {
		publisher = notification.NewEventPublisher(config.AppConfig.RabbitMQURL)
		notifiers = append(notifiers, publisher)
	}

	var photoStore storage.StorageService
	cld, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}
	if cld != nil {
		photoStore = storage.NewStorageService(cld)
	}

	queue := asynq.NewClient(cron.RedisOpt())
	defer queue.Close()

	// services.
	bookingService := booking.NewBookingService(booking.Dependencies{
		Bookings:  bookingRepo,
		Services:  serviceRepo,
		Providers: provRepo,
		Holds:     hold.NewRedisStore(utils.GetHoldClient()),
		Expiry:    tasks.NewExpiryScheduler(queue),
		Payments:  payment.NewStripeGateway(config.AppConfig.Currency),
		Notifier:  notifiers,
	}, booking.Config{
		HoldTTL:    config.AppConfig.HoldTTL,
		PendingTTL: config.AppConfig.PendingTTL,
	}, logger)
	catalogueService := catalogue.NewDefaultCatalogueService(serviceRepo, provRepo, notifiers, logger)
	providerService := provider.NewDefaultProviderService(provRepo, photoStore, logger)
	reviewService := review.NewDefaultReviewService(reviewRepo, bookingRepo, provRepo, logger)

	handlerBundle := &handlers.HandlerBundle{
		Bookings:  handlers.NewBookingHandler(bookingService, logger),
		Payments:  handlers.NewPaymentHandler(bookingService, config.AppConfig.StripeWebhookSecret, logger),
		Reviews:   handlers.NewReviewHandler(reviewService, logger),
		Catalogue: handlers.NewCatalogueHandler(catalogueService, logger),
		Providers: handlers.NewProviderHandler(providerService, userRepo, logger),
		Health:    handlers.NewHealthHandler(),
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(rootCtx,
		[]*redis.Client{utils.GetHoldClient()},
		database.MongoClient, 30*time.Second)

	worker := cron.NewWorker(bookingService, logger)
	if err := worker.Start(); err != nil {
		logger.Sugar().Fatalf("main: failed to start booking worker: %v", err)
	}

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	worker.Shutdown()
	stop()
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Warn("main: failed to close event publisher", zap.Error(err))
		}
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
