package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/swissmarley/cashier/internal/cart"
	cashierhttp "github.com/swissmarley/cashier/internal/http"
	"github.com/swissmarley/cashier/internal/receipt"
	"github.com/swissmarley/cashier/internal/repository"
)

type Config struct {
	HTTPPort        string
	DBPath          string
	MigrationsPath  string
	ReceiptsDir     string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "stock_management.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./internal/repository/migrations"),
		ReceiptsDir:     getEnv("RECEIPTS_DIR", "receipts"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log.Println("Cashier started")

	cfg := loadConfig()

	db, err := repository.Open(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := repository.RunMigrations(db, cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	catalog := repository.NewCatalog(db)
	ledger := repository.NewLedger(db)

	if err := catalog.Seed(context.Background()); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	sessionCart := cart.New(catalog)
	receipts := receipt.NewGenerator(cfg.ReceiptsDir)

	router := cashierhttp.NewRouter(catalog, ledger, sessionCart, receipts, cfg.RequestTimeout)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Cashier listening on :%s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
