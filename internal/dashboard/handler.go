package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gestor-erp/gestor/internal/platform/httpx"
)

// Handler exposes the dashboard aggregates over JSON.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers dashboard routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard", h.Resumo)
}

func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	resumo, err := h.service.Resumo(r.Context())
	if err != nil {
		h.logger.Error("dashboard resumo failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resumo)
}
