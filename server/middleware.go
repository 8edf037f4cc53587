package server

import (
	"net/http"
	"time"

	"scpod/logger"

	"github.com/google/uuid"
)

// statusRecorder captures the response status for access logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogMiddleware tags every request with an id and logs its outcome.
func requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(recorder, r)

		logger.Info("request completed",
			logger.String("request_id", requestID),
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", recorder.status),
			logger.Duration("duration", time.Since(start)),
		)
	})
}

// corsMiddleware allows podcast web clients to fetch feeds cross-origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS, HEAD")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
