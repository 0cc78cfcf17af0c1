package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/georgemunganga/autoservice-backend/internal/platform/httpx"
)

// RequestLogger logs one line per request and installs a request-scoped
// logger (carrying request_id) for handlers to use via httpx.Logger.
func RequestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			entry := log.WithField("request_id", chimw.GetReqID(r.Context()))
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(httpx.WithLogger(r.Context(), entry)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			entry.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   status,
				"bytes":    ww.BytesWritten(),
				"duration": time.Since(start).String(),
			}).Info("request")
		})
	}
}
