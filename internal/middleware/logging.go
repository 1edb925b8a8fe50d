package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"booksearch/internal/logger"
	"booksearch/internal/metrics"
)

// statusWriter remembers the status code written by the handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// RequestLogger tags each request with an id and logs it at the INFO level.
func RequestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := logger.WithNewID(r.Context())
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			sw.Header().Set("X-Request-ID", logger.IDFrom(ctx))

			next.ServeHTTP(sw, r.WithContext(ctx))

			log.WithFields(logrus.Fields{
				"request_id": logger.IDFrom(ctx),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     sw.status,
				"remote":     r.RemoteAddr,
				"agent":      r.UserAgent(),
				"took":       time.Since(start),
			}).Info("http.request")
		})
	}
}

// UnmatchedRoute labels requests no ServeMux pattern matched.
const UnmatchedRoute = "other"

// Metrics counts requests and observes their duration per route. It must wrap
// the ServeMux directly so the matched pattern is visible after dispatch.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		route := routeOf(r)
		metrics.HttpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
		metrics.HttpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func routeOf(r *http.Request) string {
	if r.Pattern == "" {
		return UnmatchedRoute
	}
	return r.Pattern
}
