package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/quantward/momentum/internal/api/handlers"
	"github.com/quantward/momentum/pkg/logger"
)

// NewRouter builds the API route table
func NewRouter(h *handlers.Handler, log *logger.Logger) *mux.Router {
	router := mux.NewRouter()

	router.Use(loggingMiddleware(log))
	router.Use(recoveryMiddleware(log))

	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/runs/latest", h.LatestRuns).Methods(http.MethodGet)
	api.HandleFunc("/portfolio/{strategy}/{timeframe}", h.Portfolio).Methods(http.MethodGet)
	api.HandleFunc("/book/{strategy}/{timeframe}", h.Book).Methods(http.MethodGet)

	return router
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
				"duration": time.Since(start),
			}).Debug("Request handled")
		})
	}
}

func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"path":  r.URL.Path,
						"panic": err,
					}).Error("Handler panicked")
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
