// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"recipebox/internal/catalog"
	"recipebox/internal/models"
	"recipebox/internal/render"
)

// Site groups the HTML page handlers.
type Site struct {
	renderer *render.Renderer
	catalog  Catalog
}

// NewSite creates the HTML handler group.
func NewSite(renderer *render.Renderer, cat Catalog) *Site {
	return &Site{renderer: renderer, catalog: cat}
}

// Index renders the catalog with the search text (q) and category filter
// taken from the query string.
func (s *Site) Index(w http.ResponseWriter, r *http.Request) {
	q := catalog.NewQuery(r.URL.Query().Get("q"), r.URL.Query().Get("category"))

	categories := append([]string{catalog.AllCategories}, s.catalog.Categories()...)

	s.renderer.Page(w, r, http.StatusOK, "index", &render.PageData{
		Title:   "Recipes",
		Flashes: noticeFlash(r),
		Data: map[string]any{
			"Query":      q,
			"Categories": categories,
			"Recipes":    s.catalog.Filter(q),
		},
	})
}

// Show renders a single recipe.
func (s *Site) Show(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.catalog.Get(chi.URLParam(r, "id"))
	if !ok {
		s.notFound(w, r)
		return
	}
	s.renderer.Page(w, r, http.StatusOK, "detail", &render.PageData{
		Title:   rec.Title,
		Flashes: noticeFlash(r),
		Data:    map[string]any{"Recipe": rec},
	})
}

// New renders an empty add form.
func (s *Site) New(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, http.StatusOK, "", recipeForm{Difficulty: string(models.DifficultyEasy)}, nil)
}

// Create adds a recipe from the submitted form and returns to the catalog.
func (s *Site) Create(w http.ResponseWriter, r *http.Request) {
	form, err := parseRecipeForm(w, r)
	if err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	if errs := form.validate(); len(errs) > 0 {
		s.renderForm(w, r, http.StatusUnprocessableEntity, "", form, errs)
		return
	}

	created := s.catalog.Add(r.Context(), form.draft())
	redirectWithNotice(w, r, "/", addedMessage(created))
}

// Edit renders the edit form for an existing recipe.
func (s *Site) Edit(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.catalog.Get(chi.URLParam(r, "id"))
	if !ok {
		s.notFound(w, r)
		return
	}
	s.renderForm(w, r, http.StatusOK, rec.ID, formFromRecipe(rec), nil)
}

// Update replaces a recipe with the submitted form and shows it.
func (s *Site) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.catalog.Get(id); !ok {
		s.notFound(w, r)
		return
	}

	form, err := parseRecipeForm(w, r)
	if err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	if errs := form.validate(); len(errs) > 0 {
		s.renderForm(w, r, http.StatusUnprocessableEntity, id, form, errs)
		return
	}

	updated, ok := s.catalog.Update(r.Context(), form.draft().WithID(id))
	if !ok {
		s.notFound(w, r)
		return
	}
	redirectWithNotice(w, r, "/recipes/"+url.PathEscape(id), updatedMessage(updated))
}

// ConfirmDelete asks before a recipe is deleted. The page posts to Delete.
func (s *Site) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.catalog.Get(chi.URLParam(r, "id"))
	if !ok {
		s.notFound(w, r)
		return
	}
	s.renderer.Page(w, r, http.StatusOK, "confirm", &render.PageData{
		Title: "Delete " + rec.Title,
		Data:  map[string]any{"Recipe": rec},
	})
}

// Delete removes a recipe and returns to the catalog.
func (s *Site) Delete(w http.ResponseWriter, r *http.Request) {
	removed, ok := s.catalog.Remove(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		s.notFound(w, r)
		return
	}
	redirectWithNotice(w, r, "/", deletedMessage(removed))
}

// NotFound renders the not-found page for unknown paths.
func (s *Site) NotFound(w http.ResponseWriter, r *http.Request) {
	s.renderer.Page(w, r, http.StatusNotFound, "error", &render.PageData{
		Title: "Page not found",
		Data:  map[string]any{"Message": "There is nothing at this address."},
	})
}

func (s *Site) notFound(w http.ResponseWriter, r *http.Request) {
	s.renderer.Page(w, r, http.StatusNotFound, "error", &render.PageData{
		Title: "Recipe not found",
		Data:  map[string]any{"Message": "This recipe does not exist or was deleted."},
	})
}

// renderForm shows the add form (id empty) or the edit form for id.
func (s *Site) renderForm(w http.ResponseWriter, r *http.Request, status int, id string, form recipeForm, errs []string) {
	title, action, cancel, submit := "Add New Recipe", "/recipes", "/", "Add Recipe"
	if id != "" {
		title = "Edit Recipe"
		action = "/recipes/" + url.PathEscape(id)
		cancel = action
		submit = "Save Changes"
	}

	s.renderer.Page(w, r, status, "form", &render.PageData{
		Title: title,
		Data: map[string]any{
			"Form":         form,
			"Errors":       errs,
			"Action":       action,
			"Cancel":       cancel,
			"Submit":       submit,
			"Categories":   formCategories(form.Category),
			"Difficulties": models.Difficulties,
		},
	})
}

// formCategories returns the dropdown options, keeping a stored category
// that is not one of the defaults selectable.
func formCategories(current string) []string {
	for _, c := range models.Categories {
		if c == current {
			return models.Categories
		}
	}
	if current == "" {
		return models.Categories
	}
	return append([]string{current}, models.Categories...)
}

// noticeFlash turns the notice query parameter into a success flash.
func noticeFlash(r *http.Request) []render.Flash {
	if msg := r.URL.Query().Get("notice"); msg != "" {
		return []render.Flash{{Type: "success", Message: msg}}
	}
	return nil
}

func redirectWithNotice(w http.ResponseWriter, r *http.Request, target, notice string) {
	http.Redirect(w, r, target+"?notice="+url.QueryEscape(notice), http.StatusSeeOther)
}
