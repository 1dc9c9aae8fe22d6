package handlers

import (
	"errors"
	"net/http"

	"songcalendar/internal/lib/response"
	"songcalendar/internal/service"
)

// RespondError maps service errors onto status codes. Anything that is not a
// validation or credentials problem is reported as internalMessage with 500.
func RespondError(w http.ResponseWriter, err error, internalMessage string) {
	var valErr *service.ValidationError
	switch {
	case errors.As(err, &valErr):
		response.Error(w, http.StatusBadRequest, valErr.Message)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Invalid username or password")
	default:
		response.Error(w, http.StatusInternalServerError, internalMessage)
	}
}
