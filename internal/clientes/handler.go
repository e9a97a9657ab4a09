package clientes

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gestor-erp/gestor/internal/platform/httpx"
)

// Handler exposes the customer controller over JSON.
type Handler struct {
	logger *slog.Logger
	ctrl   *Controller
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, ctrl *Controller) *Handler {
	return &Handler{logger: logger, ctrl: ctrl}
}

// MountRoutes registers customer routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/clientes", h.List)
	r.Post("/clientes", h.Create)
	r.Put("/clientes/{id}", h.Update)
	r.Delete("/clientes/{id}", h.Delete)
}

// List serves the cached customer list, optionally narrowed by ?busca= over
// nome and CPF/CNPJ.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.ctrl.List(r.Context())
	if err != nil {
		h.logger.Error("list clientes failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	if busca := strings.TrimSpace(r.URL.Query().Get("busca")); busca != "" {
		needle := strings.ToLower(busca)
		filtered := make([]Cliente, 0, len(items))
		for _, c := range items {
			if strings.Contains(strings.ToLower(c.Nome), needle) || strings.Contains(c.CpfCnpj, busca) {
				filtered = append(filtered, c)
			}
		}
		items = filtered
	}

	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in ClienteInsert
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

	var patch ClienteUpdate
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
