package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/careops/staffhub/pkg/composables"
	"github.com/careops/staffhub/pkg/configuration"
)

type statusCaptureWriter struct {
	http.ResponseWriter
	statusCode    int
	statusWritten bool
}

func (w *statusCaptureWriter) WriteHeader(code int) {
	if !w.statusWritten {
		w.statusCode = code
		w.statusWritten = true
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *statusCaptureWriter) Status() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}

// WithLogger attaches a request-scoped logrus entry to the context and logs
// one line per completed request.
func WithLogger(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := requestIDFor(r)

			entry := logger.WithFields(logrus.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
			})

			ctx := composables.WithLogger(r.Context(), entry)
			ctx = composables.WithRequestID(ctx, requestID)

			header := configuration.Use().RequestIDHeader
			if header == "" {
				header = "X-Request-ID"
			}
			w.Header().Set(header, requestID)

			cw := &statusCaptureWriter{ResponseWriter: w}
			next.ServeHTTP(cw, r.WithContext(ctx))

			entry.WithFields(logrus.Fields{
				"status":   cw.Status(),
				"duration": time.Since(start).String(),
			}).Info("request completed")
		})
	}
}

func requestIDFor(r *http.Request) string {
	header := configuration.Use().RequestIDHeader
	if header == "" {
		header = "X-Request-ID"
	}
	if requestID := strings.TrimSpace(r.Header.Get(header)); requestID != "" {
		return requestID
	}
	return uuid.NewString()
}
