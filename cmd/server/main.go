package main

import (
	"context"
	netHttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"akademyx-backend/config"
	"akademyx-backend/db"
	"akademyx-backend/http"
	"akademyx-backend/http/handlers"
	"akademyx-backend/logger"
	"akademyx-backend/services"
)

func main() {
	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Error loading configuration: %v", err)
	}

	// Initialize database
	conn, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal("Error initializing database: %v", err)
	}
	defer conn.Close()

	store := db.NewPostgresStore(conn)
	if err := store.InitSchema(); err != nil {
		logger.Fatal("Error creating tables: %v", err)
	}

	// Wire services
	events := services.NewPublisher(cfg)
	mailer := services.NewMailer(cfg)
	mail := services.NewEmailService(events)
	gateway := services.NewPaymentGateway(cfg)
	whatsapp := services.NewWhatsAppService(cfg)

	// Start the email consumer when Kafka is available
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	if consumer := services.NewEmailConsumer(cfg, mailer); consumer != nil {
		go consumer.Run(consumerCtx)
		defer consumer.Close()
	}

	// Wire handlers and routes
	mux := http.NewRouter(
		handlers.NewApplicationService(store, events, mail),
		handlers.NewPaymentService(store, gateway, events, mail),
		handlers.NewWhatsAppHandler(cfg, whatsapp, events),
		handlers.NewReferralService(store, events),
	)

	server := &netHttp.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != netHttp.ErrServerClosed {
			logger.Fatal("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down server: %v", err)
	}

	stopConsumer()

	// Close Kafka producer gracefully
	if err := events.Close(); err != nil {
		logger.Error("Error closing Kafka producer: %v", err)
	}

	logger.Info("Server shutdown complete")
}
