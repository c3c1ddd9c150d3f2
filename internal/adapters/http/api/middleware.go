package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/okian/otvplus/pkg/logger"
	"github.com/okian/otvplus/pkg/metrics"
)

// instrument records request metrics for endpoint and logs server errors.
func (s *Server) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		took := time.Since(start)
		metrics.RecordHTTPRequest(endpoint, r.Method, strconv.Itoa(rw.status), float64(took.Milliseconds()))
		if rw.status < http.StatusBadRequest {
			return
		}
		metrics.RecordErrorByEndpoint(endpoint, r.Method, getErrorType(rw.status))
		if rw.status >= http.StatusInternalServerError {
			s.logger.Warn(r.Context(), "request failed",
				logger.String("endpoint", endpoint),
				logger.String("method", r.Method),
				logger.String("query", r.URL.RawQuery),
				logger.Int("status", rw.status),
				logger.Duration("took", took),
			)
		}
	}
}

// getErrorType buckets a failing status for the error counter.
func getErrorType(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "server_error"
	case status == http.StatusUnprocessableEntity:
		return "no_data"
	case status == http.StatusNotFound:
		return "not_found"
	case status >= http.StatusBadRequest:
		return "client_error"
	default:
		return "unknown"
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}
