// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"recipebox/internal/config"
	"recipebox/internal/models"
)

func TestOpenLocalBackends(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "memory", cfg: config.Config{Backend: config.BackendMemory}},
		{name: "file", cfg: config.Config{Backend: config.BackendFile, StoreDir: filepath.Join(dir, "files")}},
		{name: "sqlite", cfg: config.Config{Backend: config.BackendSQLite, SQLitePath: filepath.Join(dir, "db", "r.db")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			b, closeFn, err := Open(ctx, &tt.cfg)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer closeFn()

			if err := b.Put(ctx, "recipes", []byte(`[]`)); err != nil {
				t.Fatalf("Put: %v", err)
			}
			got, err := b.Get(ctx, "recipes")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if string(got) != `[]` {
				t.Errorf("Get = %s, want []", got)
			}
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, _, err := Open(context.Background(), &config.Config{Backend: "mongo"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestOpenS3RequiresSettings(t *testing.T) {
	if _, _, err := Open(context.Background(), &config.Config{Backend: config.BackendS3}); err == nil {
		t.Error("expected error for unconfigured s3")
	}
}

func TestSeed(t *testing.T) {
	t.Run("built-in", func(t *testing.T) {
		seed, err := Seed(&config.Config{})
		if err != nil {
			t.Fatalf("Seed: %v", err)
		}
		if len(seed) != 3 {
			t.Errorf("len = %d, want 3", len(seed))
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.yaml")
		data := "- id: soup\n  title: Tomato Soup\n  category: Lunch\n  difficulty: Easy\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		seed, err := Seed(&config.Config{SeedFile: path})
		if err != nil {
			t.Fatalf("Seed: %v", err)
		}
		if len(seed) != 1 || seed[0].Title != "Tomato Soup" {
			t.Errorf("seed = %+v", seed)
		}
		if seed[0].Image != models.DefaultImageURL {
			t.Errorf("Image = %q, want default", seed[0].Image)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Seed(&config.Config{SeedFile: filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
			t.Error("expected error for missing seed file")
		}
	})
}

func TestOpenCatalogPersistsAcrossOpens(t *testing.T) {
	cfg := &config.Config{
		Backend:  config.BackendFile,
		StoreDir: t.TempDir(),
		StoreKey: "recipes",
	}
	ctx := context.Background()

	cat, closeFn, err := OpenCatalog(ctx, cfg)
	if err != nil {
		t.Fatalf("OpenCatalog: %v", err)
	}
	added := cat.Add(ctx, models.Draft{Title: "Tacos", Category: "Dinner", Difficulty: models.DifficultyEasy})
	closeFn()

	again, closeFn, err := OpenCatalog(ctx, cfg)
	if err != nil {
		t.Fatalf("OpenCatalog: %v", err)
	}
	defer closeFn()
	if again.Len() != 4 {
		t.Errorf("Len = %d, want 4", again.Len())
	}
	if _, ok := again.Get(added.ID); !ok {
		t.Error("added recipe missing after reopen")
	}
}
