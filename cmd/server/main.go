package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/shipping"
	"github.com/Lixing-Zhang/kart-challenge/checkout/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting checkout api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"shipping_fee", cfg.Checkout.ShippingFee.String(),
	)

	productRepo := repository.NewInMemoryProductRepository()
	customerRepo := repository.NewInMemoryCustomerRepository()

	ctx := context.Background()
	if len(cfg.Catalog.Files) > 0 {
		log.Info("loading catalog seed files...", "files", cfg.Catalog.Files)

		seed, err := catalog.NewLoader().LoadFromFiles(ctx, cfg.Catalog.Files)
		if err != nil {
			log.Error("failed to load catalog", "error", err)
			os.Exit(1)
		}
		if err := catalog.Apply(ctx, seed, productRepo, customerRepo); err != nil {
			log.Error("failed to apply catalog", "error", err)
			os.Exit(1)
		}

		log.Info("catalog loaded successfully",
			"products", len(seed.Products),
			"customers", len(seed.Customers),
		)
	}

	receiptOut, closeReceipts, err := openReceiptOutput(cfg.Checkout)
	if err != nil {
		log.Error("failed to open receipt output", "error", err)
		os.Exit(1)
	}
	defer closeReceipts()

	fee := cfg.Checkout.ShippingFee
	checkoutService := service.NewCheckoutService(productRepo, customerRepo, shipping.NewService(), service.CheckoutConfig{
		ShippingFee: &fee,
		Output:      receiptOut,
	}, log)

	router := handlers.NewRouter(handlers.RouterDeps{
		Auth:      cfg.Auth,
		Logger:    log,
		Products:  handlers.NewProductHandler(service.NewProductService(productRepo), log),
		Customers: handlers.NewCustomerHandler(service.NewCustomerService(customerRepo), log),
		Checkout:  handlers.NewCheckoutHandler(checkoutService, log),
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// openReceiptOutput picks where plain-text receipts go. Nil means receipts are not printed.
func openReceiptOutput(cfg config.CheckoutConfig) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	if !cfg.PrintReceipts {
		return nil, noop, nil
	}

	switch cfg.ReceiptOutput {
	case "", "stderr":
		return os.Stderr, noop, nil
	case "stdout":
		return os.Stdout, noop, nil
	}

	f, err := os.OpenFile(cfg.ReceiptOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, noop, fmt.Errorf("open receipt output %s: %w", cfg.ReceiptOutput, err)
	}
	return f, f.Close, nil
}
