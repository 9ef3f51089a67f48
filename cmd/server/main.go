package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"earnapi/internal/config"
	cronrunner "earnapi/internal/cron"
	"earnapi/internal/feehistory"
	"earnapi/internal/handler"
	"earnapi/internal/ledger"
	"earnapi/internal/logger"
	"earnapi/internal/service"
	"earnapi/internal/stream"

	_ "earnapi/docs"
)

func main() {
	cfgPath := os.Getenv("EARN_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("EARN_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ledgerHTTP := &http.Client{Timeout: cfg.Ledger.Timeout}
	provider := ledger.NewClient(ledgerHTTP, cfg.Ledger.RPCURL)

	feeHTTP := &http.Client{Timeout: cfg.FeeHistory.Timeout}
	feeClient := feehistory.NewClient(feeHTTP, cfg.FeeHistory.BaseURL, os.Getenv(cfg.FeeHistory.APIKeyEnv))
	feeCache := &feehistory.Cache{
		Client: feeClient,
		Logger: logger,
		PoolID: cfg.Pool.StrategyID,
		Hours:  cfg.FeeHistory.LookbackHours,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var tvlWatcher *stream.TVLWatcher
	if cfg.TVLStream.Enabled {
		tvlWatcher = &stream.TVLWatcher{
			URL:    cfg.TVLStream.URL,
			PoolID: cfg.Pool.StrategyID,
			Logger: logger,
			MaxAge: cfg.TVLStream.RefreshInterval,
		}
		go func() {
			if err := tvlWatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("tvl stream stopped", zap.Error(err))
			}
		}()
	}

	strategyService := &service.StrategyService{
		Provider: provider,
		Fees:     feeCache,
		TVL:      tvlWatcher,
		Pool:     cfg.Pool,
		Logger:   logger,
	}
	positionService := &service.PositionService{
		Provider: provider,
		Pool:     cfg.Pool,
		Partner:  cfg.Partner,
		Logger:   logger,
	}
	transactionService := &service.TransactionService{
		Provider: provider,
		Logger:   logger,
	}

	healthHandler := &handler.HealthHandler{Provider: provider}
	healthHandler.Register(engine)
	strategyHandler := &handler.StrategyHandler{Service: strategyService}
	strategyHandler.Register(engine)
	positionHandler := &handler.PositionHandler{Service: positionService}
	positionHandler.Register(engine)
	transactionHandler := &handler.TransactionHandler{Service: transactionService, StrategyID: cfg.Pool.StrategyID}
	transactionHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	cronRunner := cronrunner.New(logger, ctx)
	if _, err := cronRunner.Add(cfg.FeeHistory.RefreshCron, feeCache.Refresh); err != nil {
		logger.Warn("cron register fee refresh failed", zap.Error(err))
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	// Warm the fee series before serving so the first strategy listing does
	// not pay the fetch latency.
	warmCtx, warmCancel := context.WithTimeout(ctx, 30*time.Second)
	feeCache.Refresh(warmCtx)
	warmCancel()

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
