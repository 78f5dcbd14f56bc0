// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"recipebox/internal/catalog"
	"recipebox/internal/models"
)

// API groups the JSON endpoints under /api.
type API struct {
	catalog Catalog
}

// NewAPI creates the JSON API handler group.
func NewAPI(cat Catalog) *API {
	return &API{catalog: cat}
}

// mutationResponse is returned by every endpoint that changes the catalog.
type mutationResponse struct {
	Recipe  models.Recipe `json:"recipe"`
	Message string        `json:"message"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// List returns the recipes matching the q and category query parameters.
func (a *API) List(w http.ResponseWriter, r *http.Request) {
	q := catalog.NewQuery(r.URL.Query().Get("q"), r.URL.Query().Get("category"))
	writeJSON(w, http.StatusOK, a.catalog.Filter(q))
}

// Categories returns the sorted distinct categories in the catalog.
func (a *API) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.catalog.Categories())
}

// Get returns one recipe.
func (a *API) Get(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.catalog.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Create adds a recipe from a JSON draft.
func (a *API) Create(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	created := a.catalog.Add(r.Context(), draft)
	writeJSON(w, http.StatusCreated, mutationResponse{Recipe: created, Message: addedMessage(created)})
}

// Update replaces the recipe named in the path with a JSON draft. An id in
// the body is ignored.
func (a *API) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := a.catalog.Get(id); !ok {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}

	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	updated, ok := a.catalog.Update(r.Context(), draft.WithID(id))
	if !ok {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Recipe: updated, Message: updatedMessage(updated)})
}

// Delete removes a recipe and returns it.
func (a *API) Delete(w http.ResponseWriter, r *http.Request) {
	removed, ok := a.catalog.Remove(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Recipe: removed, Message: deletedMessage(removed)})
}

// decodeDraft reads and validates a JSON draft, writing the error response
// itself when the body is unusable.
func decodeDraft(w http.ResponseWriter, r *http.Request) (models.Draft, bool) {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		writeError(w, http.StatusUnsupportedMediaType, "content type must be application/json")
		return models.Draft{}, false
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))

	var draft models.Draft
	if err := dec.Decode(&draft); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return models.Draft{}, false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return models.Draft{}, false
	}

	draft, errs := validateDraft(draft)
	if len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Details: errs})
		return models.Draft{}, false
	}
	return draft, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
