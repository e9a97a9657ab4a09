package produtos

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gestor-erp/gestor/internal/platform/httpx"
)

// Handler exposes the product controller over JSON.
type Handler struct {
	logger *slog.Logger
	ctrl   *Controller
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, ctrl *Controller) *Handler {
	return &Handler{logger: logger, ctrl: ctrl}
}

// MountRoutes registers product routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/produtos", h.List)
	r.Post("/produtos", h.Create)
	r.Put("/produtos/{id}", h.Update)
	r.Delete("/produtos/{id}", h.Delete)
}

// List serves the cached product list with resolved supplier references,
// optionally narrowed by ?busca= over nome and SKU.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.ctrl.List(r.Context())
	if err != nil {
		h.logger.Error("list produtos failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	if busca := strings.TrimSpace(r.URL.Query().Get("busca")); busca != "" {
		needle := strings.ToLower(busca)
		filtered := make([]Produto, 0, len(items))
		for _, p := range items {
			if strings.Contains(strings.ToLower(p.Nome), needle) || strings.Contains(strings.ToLower(p.Sku), needle) {
				filtered = append(filtered, p)
			}
		}
		items = filtered
	}

	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in ProdutoInsert
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}

	created, err := h.ctrl.Create(r.Context(), in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}

	var patch ProdutoUpdate
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}

	updated, err := h.ctrl.Update(r.Context(), id, patch)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}

	if err := h.ctrl.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}
