package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tokenscope/internal/client"
	"tokenscope/internal/config"
	"tokenscope/internal/infrastructure/restapi"
	"tokenscope/internal/infrastructure/tokenloader"
	"tokenscope/internal/pkg/metrics"
	"tokenscope/internal/pkg/utils"
	"tokenscope/internal/service"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	// Bridge slog into zap so library code using log/slog lands in one stream.
	slogHandler := zapslog.NewHandler(zapLogger.Core())
	slog.SetDefault(slog.New(slogHandler))

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warnf("Invalid log level in config: %s. Defaulting to Info.", cfg.Logging.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegisterMetrics()

	coinGeckoClient := client.NewCoinGeckoClient(
		cfg.CoinGecko.BaseURL,
		cfg.CoinGecko.ApiKey,
		time.Duration(cfg.CoinGecko.RequestTimeoutMillis)*time.Millisecond,
		time.Duration(cfg.CoinGecko.SearchTimeoutMillis)*time.Millisecond,
		cfg.CoinGecko.RateLimitPerSecond,
		cfg.CoinGecko.RateLimitBurst,
		zapLogger,
	)
	zapLogger.Info("CoinGecko client initialized")

	dexScreenerClient := client.NewDEXScreenerClient(
		cfg.DEXScreener.BaseURL,
		time.Duration(cfg.DEXScreener.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	zapLogger.Info("DEXScreener client initialized")

	synthetic := service.NewSyntheticGenerator()

	tokenCache := cache.New(
		time.Duration(cfg.Resolver.CacheTTLMinutes)*time.Minute,
		time.Duration(cfg.Resolver.CacheCleanupMinutes)*time.Minute,
	)
	marketCache := cache.New(
		time.Duration(cfg.Market.CacheTTLMinutes)*time.Minute,
		time.Duration(cfg.Resolver.CacheCleanupMinutes)*time.Minute,
	)

	resolver := service.NewTokenResolverService(zapLogger, cfg, coinGeckoClient, dexScreenerClient, synthetic, tokenCache)
	zapLogger.Info("TokenResolverService initialized")

	watchlist := tokenloader.NewWatchlistLoader(cfg.Market.WatchlistFile, zapLogger)
	market := service.NewMarketOverviewService(zapLogger, cfg, watchlist, synthetic, marketCache)
	history := service.NewSearchHistory(cfg.Resolver.RecentSearchHistorySize)

	calcOpts := []service.RiskCalculatorOption{
		service.WithMaintenanceMarginRate(cfg.Calculator.MaintenanceMarginRate),
	}
	if cfg.Calculator.StrictStopCheck {
		calcOpts = append(calcOpts, service.WithStrictStopCheck(true))
	}
	calculator := service.NewRiskCalculator(zapLogger, calcOpts...)

	tokenHandler := restapi.NewTokenHandler(resolver, market, history, zapLogger)
	calculatorHandler := restapi.NewCalculatorHandler(calculator)
	router := restapi.SetupRouter(tokenHandler, calculatorHandler, zapLogger)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
