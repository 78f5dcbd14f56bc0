package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recipebox/internal/backend"
	"recipebox/internal/catalog"
	"recipebox/internal/models"
	"recipebox/internal/persist"
)

// memoryOpener reopens the same in-memory backend on every command, the way
// a real backend outlives a single recipectl run.
func memoryOpener(t *testing.T) opener {
	t.Helper()
	mem := persist.NewMemory()
	return func(ctx context.Context) (*catalog.Store, backend.Closer, error) {
		return catalog.Open(ctx, mem, catalog.DefaultKey, catalog.DefaultSeed()), func() error { return nil }, nil
	}
}

func run(t *testing.T, open opener, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	open := memoryOpener(t)

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "all",
			args: []string{"list"},
			want: []string{"Classic Pasta Primavera", "Artisan Sourdough Bread", "Chocolate Chip Cookies", "3 recipe(s)"},
		},
		{
			name:    "by category",
			args:    []string{"list", "--category", "Dessert"},
			want:    []string{"Chocolate Chip Cookies", "1 recipe(s)"},
			notWant: []string{"Sourdough"},
		},
		{
			name:    "search",
			args:    []string{"list", "-s", "SOURDOUGH"},
			want:    []string{"Artisan Sourdough Bread"},
			notWant: []string{"Pasta"},
		},
		{
			name: "no match",
			args: []string{"list", "--search", "zzz"},
			want: []string{"No recipes found."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, open, tt.args...)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(out, nw) {
					t.Errorf("output should not contain %q:\n%s", nw, out)
				}
			}
		})
	}
}

func TestListJSON(t *testing.T) {
	out, err := run(t, memoryOpener(t), "list", "--json", "--search", "zzz")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("empty result: got %q, want []", out)
	}

	out, err = run(t, memoryOpener(t), "list", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var recipes []models.Recipe
	if err := json.Unmarshal([]byte(out), &recipes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recipes) != 3 {
		t.Errorf("got %d recipes, want 3", len(recipes))
	}
}

func TestCategories(t *testing.T) {
	out, err := run(t, memoryOpener(t), "categories")
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if got, want := strings.Fields(out), []string{"Breakfast", "Dessert", "Dinner"}; strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestShow(t *testing.T) {
	open := memoryOpener(t)

	out, err := run(t, open, "show", "3")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, w := range []string{"Chocolate Chip Cookies", "Ingredients", "Instructions", "  1. "} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}

	if _, err := run(t, open, "show", "nope"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("unknown id: got %v, want not found", err)
	}
	if _, err := run(t, open, "show"); err == nil {
		t.Error("missing id should fail")
	}
}

func TestAddAndRemove(t *testing.T) {
	open := memoryOpener(t)

	out, err := run(t, open, "add", "--json",
		"--title", "  Tacos ", "--category", "Dinner", "--prep-time", "20", "--servings", "3",
		"--ingredient", "tortillas", "--ingredient", " ", "--ingredient", "beans",
		"--step", "Warm", "--step", "Fill")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	var res struct {
		Recipe  models.Recipe `json:"recipe"`
		Message string        `json:"message"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Message != `Recipe "Tacos" added.` {
		t.Errorf("message: got %q", res.Message)
	}
	if res.Recipe.ID == "" {
		t.Fatal("added recipe has no id")
	}
	if got := strings.Join(res.Recipe.Ingredients, ","); got != "tortillas,beans" {
		t.Errorf("ingredients: got %q, want blank line dropped", got)
	}
	if res.Recipe.Difficulty != models.DifficultyEasy {
		t.Errorf("difficulty: got %q, want Easy", res.Recipe.Difficulty)
	}
	if res.Recipe.Image != models.DefaultImageURL {
		t.Errorf("image: got %q, want default", res.Recipe.Image)
	}

	// The new recipe survives into the next command and sorts first.
	out, err = run(t, open, "list", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var recipes []models.Recipe
	if err := json.Unmarshal([]byte(out), &recipes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recipes) != 4 || recipes[0].ID != res.Recipe.ID {
		t.Fatalf("list after add: got %d recipes, first %q", len(recipes), recipes[0].ID)
	}

	out, err = run(t, open, "rm", res.Recipe.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !strings.Contains(out, `Recipe "Tacos" deleted.`) {
		t.Errorf("remove output: %q", out)
	}
	if _, err := run(t, open, "remove", res.Recipe.ID); err == nil {
		t.Error("second remove should fail")
	}
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing title", []string{"add", "--category", "Dinner"}, "--title is required"},
		{"blank title", []string{"add", "--title", "  ", "--category", "Dinner"}, "--title is required"},
		{"missing category", []string{"add", "--title", "Soup"}, "--category is required"},
		{"negative servings", []string{"add", "--title", "Soup", "--category", "Lunch", "--servings", "-1"}, "must not be negative"},
		{"bad difficulty", []string{"add", "--title", "Soup", "--category", "Lunch", "--difficulty", "Brutal"}, "unknown difficulty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, memoryOpener(t), tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "more.yaml")
	seed := `- id: a
  title: Miso Soup
  category: Lunch
  ingredients: [miso, tofu]
- id: b
  title: Pancakes
  category: Breakfast
`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}

	open := memoryOpener(t)
	out, err := run(t, open, "import", path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "2 recipe(s) imported") {
		t.Errorf("import output: %q", out)
	}

	out, err = run(t, open, "list", "--search", "miso")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Miso Soup") {
		t.Errorf("imported recipe not listed:\n%s", out)
	}

	out, err = run(t, open, "list", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var recipes []models.Recipe
	if err := json.Unmarshal([]byte(out), &recipes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var titles []string
	for _, r := range recipes[:3] {
		titles = append(titles, r.Title)
	}
	if got, want := strings.Join(titles, ","), "Miso Soup,Pancakes,Classic Pasta Primavera"; got != want {
		t.Errorf("catalog order: got %s, want %s", got, want)
	}

	if _, err := run(t, open, "import", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestOpenError(t *testing.T) {
	failing := func(context.Context) (*catalog.Store, backend.Closer, error) {
		return nil, nil, errors.New("connection refused")
	}
	_, err := run(t, failing, "list")
	if err == nil || !strings.Contains(err.Error(), "open catalog: connection refused") {
		t.Errorf("got %v, want wrapped open error", err)
	}
}

type failingBackend struct{ persist.Backend }

func (failingBackend) Put(context.Context, string, []byte) error { return errors.New("disk full") }

func TestSaveErrorIsReported(t *testing.T) {
	mem := persist.NewMemory()
	open := func(ctx context.Context) (*catalog.Store, backend.Closer, error) {
		return catalog.Open(ctx, failingBackend{mem}, catalog.DefaultKey, catalog.DefaultSeed()), func() error { return nil }, nil
	}
	_, err := run(t, open, "remove", "1")
	if err == nil || !strings.Contains(err.Error(), "save catalog: ") {
		t.Errorf("got %v, want save error", err)
	}
}

func TestSeedFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	dup := filepath.Join(dir, "dup.yaml")
	os.WriteFile(good, []byte("- id: a\n  title: Soup\n  category: Lunch\n- id: b\n  title: Toast\n  category: Breakfast\n"), 0o644)
	os.WriteFile(dup, []byte("- id: a\n  title: Soup\n- id: a\n  title: Toast\n"), 0o644)

	out, err := run(t, memoryOpener(t), "seed-file", good)
	if err != nil {
		t.Fatalf("seed-file: %v", err)
	}
	if !strings.Contains(out, "2 recipe(s), 2 categor(ies)") {
		t.Errorf("output: %q", out)
	}

	if _, err := run(t, memoryOpener(t), "seed-file", dup); err == nil {
		t.Error("duplicate ids should fail")
	}
}
