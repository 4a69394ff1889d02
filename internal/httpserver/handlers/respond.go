package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/MrSnakeDoc/poetry/internal/domain"
	"github.com/MrSnakeDoc/poetry/internal/httpserver/deps"
	"github.com/MrSnakeDoc/poetry/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeHTML sends a fully rendered page. Rendering goes to a buffer first
// so a template failure never leaves a half-written 200.
func writeHTML(w http.ResponseWriter, status int, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// returnPath accepts only local absolute paths so the "return" field cannot
// bounce a visitor to another site. Browsers drop tabs and newlines and read
// backslashes as slashes, so those are refused in the raw and decoded forms.
func returnPath(raw string) string {
	if raw == "" || raw[0] != '/' || strings.ContainsFunc(raw, unsafeInPath) {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return "/"
	}
	if strings.HasPrefix(u.Path, "//") || strings.ContainsFunc(u.Path, unsafeInPath) {
		return "/"
	}
	return raw
}

func unsafeInPath(r rune) bool {
	return r < 0x20 || r == 0x7f || r == '\\'
}

// currentTheme reads the theme preference. A storage failure degrades to
// light so pages still render.
func currentTheme(ctx context.Context, d deps.Deps) domain.Theme {
	t, err := d.Prefs.Theme(ctx)
	if err != nil {
		d.Logger.Warn("failed to read theme preference", logger.Error(err))
	}
	return t
}
