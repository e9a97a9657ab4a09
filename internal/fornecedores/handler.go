package fornecedores

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gestor-erp/gestor/internal/platform/httpx"
)

// Handler exposes the supplier controller over JSON.
type Handler struct {
	logger *slog.Logger
	ctrl   *Controller
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, ctrl *Controller) *Handler {
	return &Handler{logger: logger, ctrl: ctrl}
}

// MountRoutes registers supplier routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/fornecedores", h.List)
	r.Post("/fornecedores", h.Create)
	r.Put("/fornecedores/{id}", h.Update)
	r.Delete("/fornecedores/{id}", h.Delete)
}

// List serves the cached supplier list, optionally narrowed by ?busca= over
// razão social and CNPJ. Filtering happens after the cache read and never
// bypasses it.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.ctrl.List(r.Context())
	if err != nil {
		h.logger.Error("list fornecedores failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	if busca := strings.TrimSpace(r.URL.Query().Get("busca")); busca != "" {
		needle := strings.ToLower(busca)
		filtered := make([]Fornecedor, 0, len(items))
		for _, f := range items {
			if strings.Contains(strings.ToLower(f.RazaoSocial), needle) || strings.Contains(f.Cnpj, busca) {
				filtered = append(filtered, f)
			}
		}
		items = filtered
	}

	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in FornecedorInsert
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

	var patch FornecedorUpdate
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
