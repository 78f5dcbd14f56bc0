// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recipebox/internal/catalog"
	"recipebox/internal/models"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	rn, err := New()
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	return rn
}

func sampleRecipe() models.Recipe {
	return models.Recipe{
		ID:           "r-1",
		Title:        "Tomato <Soup>",
		Description:  "A **rich** soup",
		Image:        "https://example.com/soup.jpg",
		PrepTime:     30,
		Servings:     4,
		Category:     "Lunch",
		Difficulty:   models.DifficultyMedium,
		Ingredients:  []string{"6 tomatoes", "1 onion"},
		Instructions: []string{"Chop", "Simmer"},
	}
}

func TestNew(t *testing.T) {
	rn := newRenderer(t)

	for _, name := range []string{"index", "detail", "form", "confirm", "error"} {
		if !rn.Has(name) {
			t.Errorf("expected template %q to be parsed", name)
		}
	}
	if rn.Has("base") {
		t.Error("base.html should not be registered as a separate template")
	}
}

func TestPageIndex(t *testing.T) {
	rn := newRenderer(t)

	tests := []struct {
		name    string
		query   catalog.Query
		recipes []models.Recipe
		want    []string
		notWant []string
	}{
		{
			name:    "cards",
			query:   catalog.NewQuery("", ""),
			recipes: []models.Recipe{sampleRecipe()},
			want: []string{
				`href="/recipes/r-1"`,
				"Tomato &lt;Soup&gt;",
				"30 min",
				`class="chip active" href="/">All</a>`,
			},
			notWant: []string{"No recipes"},
		},
		{
			name:    "empty collection",
			query:   catalog.NewQuery("", ""),
			recipes: nil,
			want:    []string{"No recipes yet", `href="/recipes/new"`},
			notWant: []string{"No recipes found"},
		},
		{
			name:    "no matches",
			query:   catalog.NewQuery("zzz", "Lunch"),
			recipes: []models.Recipe{},
			want: []string{
				"No recipes found",
				`value="zzz"`,
				`<input type="hidden" name="category" value="Lunch">`,
				`class="chip active" href="/?category=Lunch&amp;q=zzz">Lunch</a>`,
			},
			notWant: []string{"No recipes yet"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rn.Page(rr, req, http.StatusOK, "index", &PageData{
				Title: "Recipes",
				Data: map[string]any{
					"Query":      tt.query,
					"Categories": []string{"All", "Lunch"},
					"Recipes":    tt.recipes,
				},
			})

			if rr.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200", rr.Code)
			}
			if ct := rr.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
				t.Errorf("Content-Type: got %q", ct)
			}
			body := rr.Body.String()
			for _, w := range tt.want {
				if !strings.Contains(body, w) {
					t.Errorf("body missing %q", w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(body, nw) {
					t.Errorf("body should not contain %q", nw)
				}
			}
		})
	}
}

func TestPageDetail(t *testing.T) {
	rn := newRenderer(t)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recipes/r-1", nil)

	rn.Page(rr, req, http.StatusOK, "detail", &PageData{
		Title:     "Tomato Soup",
		CSRFToken: "tok",
		Data:      map[string]any{"Recipe": sampleRecipe()},
		Flashes:   []Flash{{Type: "success", Message: `Recipe "Tomato Soup" updated.`}},
	})

	body := rr.Body.String()
	for _, want := range []string{
		"<strong>rich</strong>",
		"<li>6 tomatoes</li>",
		`<span class="step">2</span> Simmer`,
		`action="/recipes/r-1/delete"`,
		`name="csrf_token" value="tok"`,
		`Recipe &#34;Tomato Soup&#34; updated.`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestPageForm(t *testing.T) {
	rn := newRenderer(t)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recipes/new", nil)

	form := struct {
		Title, Category, Description, Image string
		PrepTime, Servings, Difficulty      string
		Ingredients, Instructions           string
	}{
		Title: "Tacos", Category: "Dinner", Difficulty: "Medium",
		PrepTime: "20", Servings: "3",
		Ingredients: "tortillas\nbeans",
	}

	rn.Page(rr, req, http.StatusUnprocessableEntity, "form", &PageData{
		Title: "Add New Recipe",
		Data: map[string]any{
			"Form":         form,
			"Errors":       []string{"Title is required."},
			"Action":       "/recipes",
			"Cancel":       "/",
			"Submit":       "Add Recipe",
			"Categories":   models.Categories,
			"Difficulties": models.Difficulties,
		},
	})

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want 422", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		`<option value="Dinner" selected>Dinner</option>`,
		`<option value="Medium" selected>Medium</option>`,
		"tortillas\nbeans</textarea>",
		"Title is required.",
		`action="/recipes"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestPageUnknownTemplate(t *testing.T) {
	rn := newRenderer(t)
	rr := httptest.NewRecorder()
	rn.Page(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "missing", &PageData{})

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rr.Code)
	}
}

func TestFilterURL(t *testing.T) {
	tests := []struct {
		q    catalog.Query
		want string
	}{
		{catalog.Query{Category: catalog.AllCategories}, "/"},
		{catalog.Query{}, "/"},
		{catalog.Query{Search: "pasta", Category: catalog.AllCategories}, "/?q=pasta"},
		{catalog.Query{Category: "Dessert"}, "/?category=Dessert"},
		{catalog.Query{Search: "a b", Category: "Dinner"}, "/?category=Dinner&q=a+b"},
	}
	for _, tt := range tests {
		if got := FilterURL(tt.q); got != tt.want {
			t.Errorf("FilterURL(%+v) = %q, want %q", tt.q, got, tt.want)
		}
	}
}
