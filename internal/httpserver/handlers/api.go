package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/poetry/internal/domain"
	"github.com/MrSnakeDoc/poetry/internal/httpserver/deps"
	"github.com/MrSnakeDoc/poetry/internal/logger"
	"github.com/MrSnakeDoc/poetry/internal/render"
	"github.com/MrSnakeDoc/poetry/internal/view"
)

const maxPoemBytes = 64 << 10

// ListPoems returns the filtered view as JSON. It takes the same query
// parameters as the HTML page.
func ListPoems(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		coord := view.New(d.Catalog, render.NewJSON(&buf))
		coord.SetTheme(currentTheme(r.Context(), d))
		coord.Restore(render.ParseState(r.URL.Query()))

		if err := coord.Refresh(); err != nil {
			d.Logger.Error("failed to encode view", logger.Error(err))
			writeJSONError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}

func CreatePoem(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in view.Input
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPoemBytes))
		if err := dec.Decode(&in); err != nil {
			writeJSONError(w, http.StatusBadRequest, "malformed JSON body")
			return
		}

		p, err := d.Catalog.Add(r.Context(), in.Author, in.Title, in.Category, in.Body)
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
			return
		case err != nil:
			d.Logger.Error("failed to add poem", logger.Error(err))
			writeJSONError(w, http.StatusInternalServerError, "could not save poem")
			return
		}

		d.Logger.Info("poem added", logger.String("id", p.ID), logger.String("author", p.Author))
		w.Header().Set("Location", "/api/poems/"+p.ID)
		writeJSON(w, http.StatusCreated, p)
	}
}

func ToggleFavoriteAPI(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		p, found, err := d.Catalog.ToggleFavorite(r.Context(), id)
		switch {
		case err != nil:
			d.Logger.Error("failed to toggle favorite", logger.String("id", id), logger.Error(err))
			writeJSONError(w, http.StatusInternalServerError, "could not save favorite")
		case !found:
			writeJSONError(w, http.StatusNotFound, domain.ErrNotFound.Error())
		default:
			writeJSON(w, http.StatusOK, p)
		}
	}
}

func GetPoem(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := d.Catalog.Get(chi.URLParam(r, "id"))
		if !ok {
			writeJSONError(w, http.StatusNotFound, domain.ErrNotFound.Error())
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func Authors(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Catalog.Authors())
	}
}
