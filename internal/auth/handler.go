package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/gestor-erp/gestor/internal/platform/httpx"
	"github.com/gestor-erp/gestor/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows and the signed-in
// user's profile.
type Handler struct {
	logger         *slog.Logger
	service        *Service
	sessionManager *shared.SessionManager
	profiles       ProfileStore
	validator      *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, sessions *shared.SessionManager, profiles ProfileStore) *Handler {
	return &Handler{
		logger:         logger,
		service:        service,
		sessionManager: sessions,
		profiles:       profiles,
		validator:      validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/me", h.handleMe)
	r.Get("/perfil", h.handlePerfil)
	r.Put("/perfil", h.handleUpdatePerfil)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("login failed", slog.String("email", req.Email))
		httpx.RespondError(w, err)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	sess.SetUser(user.ID.String())

	h.logger.Info("login succeeded", slog.String("user_id", user.ID.String()))
	httpx.JSON(w, http.StatusOK, userResponse{ID: user.ID.String(), Email: user.Email})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		h.sessionManager.Destroy(sess)
	}
	httpx.NoContent(w)
}

// handleMe reports the authenticated identity, 401 when there is none. The
// SPA calls it on boot to decide between dashboard and login redirect.
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	if id == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthenticated", "")
		return
	}
	httpx.JSON(w, http.StatusOK, userResponse{ID: id.ID.String()})
}

type perfilRequest struct {
	Nome  string `json:"nome" validate:"max=120"`
	Cargo string `json:"cargo" validate:"max=120"`
}

// handlePerfil serves the caller's profile. A user who never saved one gets
// an empty profile, not an error.
func (h *Handler) handlePerfil(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	if id == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthenticated", "")
		return
	}

	profile, err := h.profiles.ProfileByUser(r.Context(), id.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.JSON(w, http.StatusOK, Profile{UserID: id.ID})
			return
		}
		h.logger.Error("load perfil failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, profile)
}

func (h *Handler) handleUpdatePerfil(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	if id == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthenticated", "")
		return
	}

	var req perfilRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	profile, err := h.profiles.SaveProfile(r.Context(), id.ID, req.Nome, req.Cargo)
	if err != nil {
		h.logger.Error("save perfil failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, profile)
}
