package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/quantward/momentum/internal/contracts"
	"github.com/quantward/momentum/internal/report"
	"github.com/quantward/momentum/pkg/logger"
)

// RunSource provides persisted run summaries
type RunSource interface {
	Latest(ctx context.Context, limit int) ([]report.RunSummary, error)
}

// Handler serves the read-only API over persisted runs and books
type Handler struct {
	runs   RunSource
	books  contracts.BookStore
	logger *logger.Logger
}

// New creates the API handler
func New(runs RunSource, books contracts.BookStore, log *logger.Logger) *Handler {
	return &Handler{runs: runs, books: books, logger: log}
}

// Health reports service liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// LatestRuns returns the most recent run summaries
func (h *Handler) LatestRuns(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			writeError(w, http.StatusBadRequest, "limit must be an integer in [1, 100]")
			return
		}
		limit = parsed
	}

	summaries, err := h.runs.Latest(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Latest runs query failed")
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(summaries),
		"runs":  summaries,
	})
}

// Portfolio returns the latest long/short selection for one strategy
// and timeframe
func (h *Handler) Portfolio(w http.ResponseWriter, r *http.Request) {
	strategy, timeframe, ok := h.pathParams(w, r)
	if !ok {
		return
	}

	summaries, err := h.runs.Latest(r.Context(), 100)
	if err != nil {
		h.logger.WithError(err).Error("Latest runs query failed")
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	for _, s := range summaries {
		if s.Strategy == strategy && s.Timeframe == timeframe {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeError(w, http.StatusNotFound, "no run found for this strategy and timeframe")
}

// Book returns the simulated book for one strategy and timeframe
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	strategy, timeframe, ok := h.pathParams(w, r)
	if !ok {
		return
	}

	state, found, err := h.books.Load(r.Context(), strategy, timeframe)
	if err != nil {
		h.logger.WithError(err).Error("Book load failed")
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "no book found for this strategy and timeframe")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"strategy":  strategy,
		"timeframe": timeframe,
		"cash":      state.Cash,
		"positions": state.Positions,
	})
}

func (h *Handler) pathParams(w http.ResponseWriter, r *http.Request) (contracts.Strategy, contracts.Timeframe, bool) {
	vars := mux.Vars(r)

	strategy, err := contracts.ParseStrategy(vars["strategy"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", "", false
	}
	timeframe, err := contracts.ParseTimeframe(vars["timeframe"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", "", false
	}
	return strategy, timeframe, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
