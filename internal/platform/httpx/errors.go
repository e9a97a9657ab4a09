// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/gestor-erp/gestor/internal/resource"
	"github.com/gestor-erp/gestor/internal/shared"
)

// RespondError maps sync-layer errors to RFC7807 responses. Gateway failures
// carry their message through verbatim; everything else gets the taxonomy
// title plus whatever human-readable detail the error holds.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, resource.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", resource.Message(err))
	case errors.Is(err, resource.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", resource.Message(err))
	case errors.Is(err, resource.ErrUnauthenticated):
		Problem(w, http.StatusUnauthorized, "Unauthenticated", resource.Message(err))
	case errors.Is(err, resource.ErrRemote):
		Problem(w, http.StatusBadGateway, "Remote Error", resource.Message(err))
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Invalid Credentials", "")
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
