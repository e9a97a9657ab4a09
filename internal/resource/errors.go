// Package resource implements the synchronization layer between the remote
// data gateway and the in-process read cache: a keyed cache store, a generic
// per-entity sync controller, and the create/edit form state machine the
// pages drive.
package resource

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the sync layer. Handlers map these onto HTTP problems.
var (
	// ErrUnauthenticated indicates no user identity was present at mutation time.
	ErrUnauthenticated = errors.New("usuário não autenticado")
	// ErrValidation indicates a mandatory field was missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates the mutation target is absent or already removed.
	ErrNotFound = errors.New("record not found")
	// ErrRemote wraps any gateway-reported failure, constraint violations included.
	ErrRemote = errors.New("remote gateway error")
)

// FallbackMessage is shown when the underlying failure carries no text.
const FallbackMessage = "tente novamente"

func wrapRemote(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = FallbackMessage
	}
	return fmt.Errorf("%w: %s", ErrRemote, msg)
}

func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrValidation, err.Error())
}

// Message extracts the human-readable text for presentation, stripping the
// taxonomy prefix and falling back to a generic retry hint when nothing
// usable remains.
func Message(err error) string {
	if err == nil {
		return ""
	}
	detail := err.Error()
	for _, sentinel := range []error{ErrRemote, ErrValidation} {
		if errors.Is(err, sentinel) {
			detail = strings.TrimPrefix(detail, sentinel.Error())
			detail = strings.TrimPrefix(detail, ": ")
		}
	}
	if strings.TrimSpace(detail) == "" {
		return FallbackMessage
	}
	return detail
}
