package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestor-erp/gestor/internal/auth"
	"github.com/gestor-erp/gestor/internal/clientes"
	"github.com/gestor-erp/gestor/internal/dashboard"
	"github.com/gestor-erp/gestor/internal/fornecedores"
	"github.com/gestor-erp/gestor/internal/observability"
	"github.com/gestor-erp/gestor/internal/produtos"
	"github.com/gestor-erp/gestor/internal/shared"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	SessionManager      *shared.SessionManager
	Metrics             *observability.Metrics
	AuthHandler         *auth.Handler
	ClientesHandler     *clientes.Handler
	FornecedoresHandler *fornecedores.Handler
	ProdutosHandler     *produtos.Handler
	DashboardHandler    *dashboard.Handler
	Pool                *pgxpool.Pool
}

// NewRouter assembles the full HTTP surface.
func NewRouter(p RouterParams) chi.Router {
	r := chi.NewRouter()
	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         p.Logger,
		Config:         p.Config,
		SessionManager: p.SessionManager,
		Metrics:        p.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", healthHandler(p.Pool))
	if p.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", p.Metrics.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		p.AuthHandler.MountRoutes(api)
		p.DashboardHandler.MountRoutes(api)
		p.ClientesHandler.MountRoutes(api)
		p.FornecedoresHandler.MountRoutes(api)
		p.ProdutosHandler.MountRoutes(api)
	})

	return r
}

func healthHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if pool != nil {
			if err := pool.Ping(ctx); err != nil {
				http.Error(w, "database unreachable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
