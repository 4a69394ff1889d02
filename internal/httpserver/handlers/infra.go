package handlers

import (
	"context"
	"net/http"

	"github.com/MrSnakeDoc/poetry/internal/httpserver/deps"
)

type componentStatus struct {
	OK        bool   `json:"ok"`
	Backend   string `json:"backend,omitempty"`
	Poems     *int   `json:"poems,omitempty"`
	Favorites *int   `json:"favorites,omitempty"`
	Authors   *int   `json:"authors,omitempty"`
	Theme     string `json:"theme,omitempty"`
	Error     string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra summarises the state of each component for operators.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		poems := d.Catalog.Count()
		favorites := d.Catalog.FavoriteCount()
		authors := len(d.Catalog.Authors())

		components := map[string]componentStatus{
			"storage": checkStorage(r.Context(), d),
			"catalog": {
				OK:        poems > 0,
				Poems:     &poems,
				Favorites: &favorites,
				Authors:   &authors,
			},
			"preferences": {
				OK:    true,
				Theme: string(currentTheme(r.Context(), d)),
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Status:     overallStatus(components),
			Components: components,
		})
	}
}

// overallStatus is "degraded" when storage is down (changes are not
// saved), "empty" when the catalog has no poems, "ok" otherwise.
func overallStatus(components map[string]componentStatus) string {
	if s, ok := components["storage"]; ok && !s.OK {
		return "degraded"
	}
	if c, ok := components["catalog"]; ok && !c.OK {
		return "empty"
	}
	return "ok"
}

func checkStorage(ctx context.Context, d deps.Deps) componentStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := componentStatus{OK: true, Backend: d.Storage.Backend()}
	if err := d.Storage.Ping(ctx); err != nil {
		status.OK = false
		status.Error = err.Error()
	}
	return status
}
