package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/poetry/internal/domain"
	"github.com/MrSnakeDoc/poetry/internal/httpserver/deps"
	"github.com/MrSnakeDoc/poetry/internal/logger"
	"github.com/MrSnakeDoc/poetry/internal/render"
	"github.com/MrSnakeDoc/poetry/internal/view"
)

const invalidInputNotice = "Please fill in the poet, title, theme and poem text."

// Index renders the catalog page. The URL query carries the view state.
func Index(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		coord := view.New(d.Catalog, render.NewHTML(&buf))
		coord.SetTheme(currentTheme(r.Context(), d))
		coord.Restore(render.ParseState(r.URL.Query()))

		if err := coord.Refresh(); err != nil {
			d.Logger.Error("failed to render page", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		writeHTML(w, http.StatusOK, &buf)
	}
}

// AddPoem handles the add form. On success the browser is sent to the new
// poem's author; rejected input re-renders the form with a notice.
func AddPoem(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "malformed form", http.StatusBadRequest)
			return
		}

		coord := view.New(d.Catalog, nil)
		coord.SetTheme(currentTheme(r.Context(), d))
		coord.Restore(view.State{ShowAddForm: true})

		p, err := coord.AddPoem(r.Context(), view.Input{
			Author:   r.PostFormValue("author"),
			Title:    r.PostFormValue("title"),
			Category: r.PostFormValue("category"),
			Body:     r.PostFormValue("body"),
		})
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			var buf bytes.Buffer
			page := render.NewHTML(&buf)
			page.Notice = invalidInputNotice
			if rerr := page.Render(coord.Last()); rerr != nil {
				d.Logger.Error("failed to render page", logger.Error(rerr))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			writeHTML(w, http.StatusUnprocessableEntity, &buf)
			return
		case err != nil:
			d.Logger.Error("failed to add poem", logger.Error(err))
			http.Error(w, "could not save poem", http.StatusInternalServerError)
			return
		}

		d.Logger.Info("poem added", logger.String("id", p.ID), logger.String("author", p.Author))
		http.Redirect(w, r, render.Path(render.Query(coord.Last())), http.StatusSeeOther)
	}
}

// ToggleFavorite flips a poem's favorite flag and returns to the page the
// form came from. The id comes from the path or, for the page's own cards,
// from the "id" form field so ids that cannot sit in a path segment still
// work. An unknown id changes nothing.
func ToggleFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			id = r.PostFormValue("id")
		}

		_, found, err := d.Catalog.ToggleFavorite(r.Context(), id)
		if err != nil {
			d.Logger.Error("failed to toggle favorite", logger.String("id", id), logger.Error(err))
			http.Error(w, "could not save favorite", http.StatusInternalServerError)
			return
		}
		if !found {
			d.Logger.Debug("favorite toggle for unknown poem", logger.String("id", id))
		}

		http.Redirect(w, r, returnPath(r.PostFormValue("return")), http.StatusSeeOther)
	}
}

// ToggleTheme switches between light and dark mode.
func ToggleTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := d.Prefs.ToggleTheme(r.Context()); err != nil {
			d.Logger.Error("failed to toggle theme", logger.Error(err))
			http.Error(w, "could not save theme", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, returnPath(r.PostFormValue("return")), http.StatusSeeOther)
	}
}
