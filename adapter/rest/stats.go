package rest

import (
	"context"
	"fmt"
	"log"
	"net/http"
)

type StatsResponse struct {
	Retriever string `json:"retriever"`
	Objects   int64  `json:"objects"`
	Dimension int    `json:"dimension"`
}

// Vector index statistics
// (GET /stats)
func (a *Adapter) statsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultTimeout)
	defer cancel()

	stats, err := a.service.Stats(ctx)
	if err != nil {
		log.Printf("error getting index stats: %v", err)
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error getting index stats: %w", err))
		return
	}

	renderJSON(w, StatsResponse{
		Retriever: stats.Retriever,
		Objects:   stats.Objects,
		Dimension: stats.Dimension,
	})
}

// Liveness probe
// (GET /health)
func (a *Adapter) healthHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, map[string]string{"status": "ok"})
}
