// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Every test runs against a catalog on the in-memory backend.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"recipebox/internal/catalog"
	"recipebox/internal/models"
	"recipebox/internal/persist"
	"recipebox/internal/render"
)

// testEnv bundles the catalog and a router wired like the real one, minus
// the middleware.
type testEnv struct {
	catalog *catalog.Store
	backend *persist.Memory
	router  chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	rn, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	backend := persist.NewMemory()
	n := 0
	cat := catalog.Open(context.Background(), backend, catalog.DefaultKey, catalog.DefaultSeed(),
		catalog.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("new-%d", n)
		}))

	site := NewSite(rn, cat)
	api := NewAPI(cat)

	r := chi.NewRouter()
	r.Get("/", site.Index)
	r.Get("/recipes/new", site.New)
	r.Post("/recipes", site.Create)
	r.Get("/recipes/{id}", site.Show)
	r.Get("/recipes/{id}/edit", site.Edit)
	r.Post("/recipes/{id}", site.Update)
	r.Get("/recipes/{id}/delete", site.ConfirmDelete)
	r.Post("/recipes/{id}/delete", site.Delete)
	r.Get("/api/recipes", api.List)
	r.Post("/api/recipes", api.Create)
	r.Get("/api/categories", api.Categories)
	r.Get("/api/recipes/{id}", api.Get)
	r.Put("/api/recipes/{id}", api.Update)
	r.Delete("/api/recipes/{id}", api.Delete)
	r.NotFound(site.NotFound)

	return &testEnv{catalog: cat, backend: backend, router: r}
}

func (env *testEnv) do(method, target string, body string, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

func (env *testEnv) get(target string) *httptest.ResponseRecorder {
	return env.do(http.MethodGet, target, "", "")
}

func (env *testEnv) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	return env.do(http.MethodPost, target, form.Encode(), "application/x-www-form-urlencoded")
}

// tacosForm is a complete add-form submission.
func tacosForm() url.Values {
	return url.Values{
		"title":        {"Tacos"},
		"description":  {"Weeknight tacos"},
		"category":     {"Dinner"},
		"prepTime":     {"20"},
		"servings":     {"3"},
		"difficulty":   {"Medium"},
		"ingredients":  {"tortillas\r\n\r\nbeans\n  "},
		"instructions": {"warm", "fill"},
	}
}

// storedRecipes decodes what the catalog last wrote to the backend.
func storedRecipes(t *testing.T, env *testEnv) []models.Recipe {
	t.Helper()
	recipes, ok := persist.Load[[]models.Recipe](context.Background(), env.backend, catalog.DefaultKey, nil)
	if !ok {
		t.Fatal("nothing persisted")
	}
	return recipes
}
