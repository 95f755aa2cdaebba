// Explorer serves the shielded transaction demo API: wallet derivation from
// viewing keys, portfolio composition, privacy risk reports, and a simulated
// scan stream.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shieldex/internal/handler"
	"shieldex/internal/middleware"
	"shieldex/internal/risk"
	"shieldex/internal/wallet"
	"shieldex/pkg/cache"
	"shieldex/pkg/config"
	"shieldex/pkg/logger"
	"shieldex/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	log := logger.New("explorer")
	cfg := config.Load()
	if err := cfg.ValidateCore(); err != nil {
		log.Fatal("Invalid configuration", map[string]interface{}{"error": err.Error()})
	}

	viewCache, err := buildCache(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
	}

	val := validator.New()
	scorer := risk.NewScorer(cfg.Scoring)
	store := wallet.NewStore(wallet.NewDatasetDeriver(nil), log)

	walletHandler := handler.NewWalletHandler(store, val, log)
	portfolioHandler := handler.NewPortfolioHandler(scorer, viewCache, cfg.Redis.TTL, val, log)
	riskHandler := handler.NewRiskHandler(scorer, val, log)
	datasetHandler := handler.NewDatasetHandler(log)
	scanHandler := handler.NewScanHandler(log)

	router := mux.NewRouter()
	router.Use(middleware.CorrelationID)
	router.Use(middleware.NewLoggingMiddleware(log).Log)

	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)
	router.HandleFunc("/ws/scan", scanHandler.Scan).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/wallet/unlock", walletHandler.Unlock).Methods(http.MethodPost)
	api.HandleFunc("/wallet/lock", walletHandler.Lock).Methods(http.MethodPost)
	api.HandleFunc("/wallet", walletHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/portfolio", portfolioHandler.Build).Methods(http.MethodPost)
	api.HandleFunc("/risk/report", riskHandler.Report).Methods(http.MethodPost)
	api.HandleFunc("/transactions", datasetHandler.List).Methods(http.MethodGet)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Explorer API listening", map[string]interface{}{"addr": addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down", nil)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}

func buildCache(cfg *config.Config, log logger.Logger) (cache.Cache, error) {
	if !cfg.Redis.Enabled {
		log.Info("Using in-memory cache", nil)
		return cache.NewMemoryCache(), nil
	}

	c, err := cache.NewRedisCache(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}
	log.Info("Using Redis cache", map[string]interface{}{"url": cfg.Redis.URL})
	return c, nil
}
