package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bakeshop/internal/auth"
	"bakeshop/internal/blobstore"
	"bakeshop/internal/config"
	"bakeshop/internal/database"
	"bakeshop/internal/docstore"
	"bakeshop/internal/ids"
	"bakeshop/internal/logger"
	"bakeshop/internal/messaging"
	"bakeshop/internal/middleware"
	"bakeshop/internal/payment"
	"bakeshop/internal/services/content"
	"bakeshop/internal/services/images"
	"bakeshop/internal/services/order"
)

func main() {
	var (
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
		configFile = flag.String("config", "config.yaml", "Path to config file")
	)
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New("bakeshop")
	requestID := logger.GenerateRequestID()

	log.Info("service_started", "Starting bakeshop", requestID, map[string]interface{}{
		"port": cfg.Server.Port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("service_failed", "Bakeshop failed", requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	store := docstore.New(db, log)

	// Order notifications are best effort, so a missing broker downgrades
	// them instead of blocking startup.
	var notifier order.Notifier
	conn, err := messaging.New(cfg, log)
	if err != nil {
		log.Error("rabbitmq_unavailable", "Starting without order notifications", requestID, err, nil)
	} else {
		defer conn.Close()
		log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)
		notifier = messaging.NewPublisher(conn, log)
	}

	blobs, err := blobstore.New(ctx, cfg.S3.Region, cfg.S3.Bucket, log)
	if err != nil {
		return fmt.Errorf("failed to initialize blob storage: %w", err)
	}

	gateway := payment.NewStripeGateway(cfg.Stripe.SecretKey, log)
	generator := ids.New()
	verifier := auth.New(cfg.Auth, log)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.PerMinute, log)

	orderSvc := order.NewService(store, gateway, generator, notifier, log)
	orderHandler := order.NewHandler(orderSvc, log)

	contentSvc := content.NewService(store, blobs, generator, log)
	contentHandler := content.NewHandler(contentSvc, log)

	imagesSvc := images.NewService(store, blobs, log)
	imagesHandler := images.NewHandler(imagesSvc, log)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: routes(log, verifier, limiter, orderHandler, contentHandler, imagesHandler),
	}

	go func() {
		log.Info("server_listening", fmt.Sprintf("Bakeshop listening on port %d", cfg.Server.Port), requestID, map[string]interface{}{
			"port": cfg.Server.Port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

func routes(
	log *logger.Logger,
	verifier *auth.Verifier,
	limiter *middleware.RateLimiter,
	orders *order.Handler,
	contents *content.Handler,
	imgs *images.Handler,
) http.Handler {
	public := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.Logging(log, h)
	}
	limited := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.Logging(log, limiter.Middleware(h))
	}
	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.Logging(log, verifier.Middleware(h))
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", public(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"status":"ok"}`)
	}))

	// order submission
	mux.HandleFunc("POST /api/order/handlePayOnline", limited(orders.HandlePayOnline))
	mux.HandleFunc("POST /api/order/handleCashOrder", limited(orders.HandleCashOrder))
	mux.HandleFunc("POST /api/order/addCustomOrder", limited(orders.AddCustomOrder))
	mux.HandleFunc("POST /api/catering/addCateringOrder", limited(orders.AddCateringOrder))
	mux.HandleFunc("GET /api/manage/getOrders", protected(orders.GetOrders))
	mux.HandleFunc("DELETE /api/manage/del/{orderType}/{id}", protected(orders.DeleteOrder))

	// menu
	mux.HandleFunc("GET /api/manage/getMenuItem", limited(contents.GetMenuItems))
	mux.HandleFunc("GET /api/menu/getMenuItem", limited(contents.GetPublicMenu))
	mux.HandleFunc("POST /api/manage/addMenuItem", protected(contents.AddMenuItem))
	mux.HandleFunc("DELETE /api/manage/delMenuItem/{id}", protected(contents.DeleteMenuItem))

	// faq
	mux.HandleFunc("GET /api/faq/getFAQ", public(contents.GetFAQ))
	mux.HandleFunc("POST /api/manage/addFAQItem", protected(contents.AddFAQItem))
	mux.HandleFunc("DELETE /api/manage/delFAQItem/{id}", protected(contents.DeleteFAQItem))

	// recipes
	mux.HandleFunc("GET /api/manage/getRecipes", limited(contents.GetRecipes))
	mux.HandleFunc("GET /api/recipes/getRecipes", limited(contents.GetPublicRecipes))
	mux.HandleFunc("GET /api/recipes/{recipeName}", public(contents.GetRecipeByName))
	mux.HandleFunc("POST /api/manage/addRecipe", protected(contents.AddRecipe))
	mux.HandleFunc("DELETE /api/manage/delRecipe/{id}", protected(contents.DeleteRecipe))

	// contact
	mux.HandleFunc("GET /api/manage/getContact", protected(contents.GetContact))
	mux.HandleFunc("POST /api/contact/addContactItem", limited(contents.AddContactItem))
	mux.HandleFunc("DELETE /api/manage/delContact/{id}", protected(contents.DeleteContactItem))

	// about and site settings
	mux.HandleFunc("GET /api/about/getAbout", limited(contents.GetAbout))
	mux.HandleFunc("PUT /api/manage/updateAbout", protected(contents.UpdateAbout))
	mux.HandleFunc("GET /api/home/getOtherSettings", public(contents.GetOtherSettings))
	mux.HandleFunc("PUT /api/manage/updateMenuPageToggle", protected(contents.UpdateMenuPageToggle))
	mux.HandleFunc("PUT /api/manage/updateDeliveryAmount", protected(contents.UpdateDeliveryAmount))
	mux.HandleFunc("PUT /api/manage/updateOrderMin", protected(contents.UpdateOrderMin))
	mux.HandleFunc("PUT /api/manage/updateFreeDeliveryMin", protected(contents.UpdateFreeDeliveryMin))
	mux.HandleFunc("PUT /api/manage/updateDeliveryDate", protected(contents.UpdateDeliveryDate))
	mux.HandleFunc("PUT /api/manage/updateBlockedDates", protected(contents.UpdateBlockedDates))

	// images
	mux.HandleFunc("POST /api/{imgCollection}/uploadImage/{id}", protected(imgs.UploadImage))
	mux.HandleFunc("DELETE /api/{collection}/delImage/{id}", protected(imgs.DeleteImage))

	return mux
}
