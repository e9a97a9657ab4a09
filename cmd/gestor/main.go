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

	"github.com/gestor-erp/gestor/internal/app"
	"github.com/gestor-erp/gestor/internal/auth"
	"github.com/gestor-erp/gestor/internal/clientes"
	"github.com/gestor-erp/gestor/internal/dashboard"
	"github.com/gestor-erp/gestor/internal/fornecedores"
	"github.com/gestor-erp/gestor/internal/observability"
	"github.com/gestor-erp/gestor/internal/platform/cache"
	"github.com/gestor-erp/gestor/internal/platform/db"
	"github.com/gestor-erp/gestor/internal/produtos"
	"github.com/gestor-erp/gestor/internal/resource"
	"github.com/gestor-erp/gestor/internal/shared"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "gestor_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	metrics := observability.NewMetrics()

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager, authRepo)

	// One cache store, three independently keyed entries.
	store := resource.NewStore()

	clientesCtrl := clientes.NewController(store, clientes.NewRepository(pool), logger)
	fornecedoresCtrl := fornecedores.NewController(store, fornecedores.NewRepository(pool), logger)
	produtosCtrl := produtos.NewController(store, produtos.NewRepository(pool), logger)

	dashboardService := dashboard.NewService(pool, cfg.EstoqueMinimo)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		SessionManager:      sessionManager,
		Metrics:             metrics,
		AuthHandler:         authHandler,
		ClientesHandler:     clientes.NewHandler(logger, clientesCtrl),
		FornecedoresHandler: fornecedores.NewHandler(logger, fornecedoresCtrl),
		ProdutosHandler:     produtos.NewHandler(logger, produtosCtrl),
		DashboardHandler:    dashboard.NewHandler(logger, dashboardService),
		Pool:                pool,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.Any("error", err))
	}
}
