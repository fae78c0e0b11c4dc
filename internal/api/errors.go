package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/happythoughts/thoughts-service/internal/api/respond"
	"github.com/happythoughts/thoughts-service/internal/model"
	"github.com/happythoughts/thoughts-service/internal/services"
)

// writeServiceError maps a service or store error onto an HTTP failure
// envelope. Unknown errors are logged and collapsed into a 500 so internal
// details never reach the client.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrAlreadyLiked),
		errors.Is(err, model.ErrDuplicate):
		respond.WriteFailure(w, http.StatusBadRequest, failureMessage(err))
	case errors.Is(err, services.ErrInvalidCredentials):
		respond.WriteFailure(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, model.ErrForbidden):
		respond.WriteFailure(w, http.StatusForbidden, "You can only modify your own thoughts")
	case errors.Is(err, model.ErrNotFound):
		respond.WriteFailure(w, http.StatusNotFound, "Thought not found")
	default:
		log.Error().Err(err).Msg("unhandled service error")
		respond.WriteFailure(w, http.StatusInternalServerError, "Internal server error")
	}
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrAlreadyLiked):
		return "You have already liked this thought"
	case errors.Is(err, model.ErrDuplicate):
		return "Username or email already in use"
	default:
		return err.Error()
	}
}

// writeAuthError writes the 401 returned for any token failure. The body
// never says which check failed.
func writeAuthError(w http.ResponseWriter) {
	respond.WriteFailure(w, http.StatusUnauthorized, "Authentication required")
}
