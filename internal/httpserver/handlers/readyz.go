package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/poetry/internal/httpserver/deps"
	"github.com/MrSnakeDoc/poetry/internal/logger"
)

const pingTimeout = 2 * time.Second

type readyzResponse struct {
	Ready   bool   `json:"ready"`
	Storage string `json:"storage"`
	Error   string `json:"error,omitempty"`
}

// Readyz answers 200 once the storage backend responds to a ping.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		resp := readyzResponse{Ready: true, Storage: d.Storage.Backend()}
		if err := d.Storage.Ping(ctx); err != nil {
			d.Logger.Warn("storage not ready", logger.String("backend", resp.Storage), logger.Error(err))
			resp.Ready = false
			resp.Error = "storage unavailable"
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
