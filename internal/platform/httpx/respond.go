package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
)

// Respond writes body as JSON with the given status.
func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(body)
}

// Decode reads a JSON request body into dst.
func Decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("invalid JSON body: %v", err)
	}
	return nil
}

// StatusFor maps an error returned by a service to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Error writes err as {"error": msg}. Unclassified errors are logged and
// their message hidden from the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		Logger(r).WithError(err).Error("request failed")
		msg = "internal server error"
	}
	Respond(w, status, map[string]string{"error": msg})
}

// Logger returns the request-scoped logger installed by the request logger
// middleware, or the standard logrus logger when none is present.
func Logger(r *http.Request) logrus.FieldLogger {
	if l, ok := r.Context().Value(loggerKey{}).(logrus.FieldLogger); ok {
		return l
	}
	return logrus.StandardLogger()
}
