// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers serves the recipe catalog over HTTP: HTML pages for
// browsers and a JSON API. Both forward every change to the catalog store.
package handlers

import (
	"context"

	"recipebox/internal/catalog"
	"recipebox/internal/models"
)

// Catalog is the part of catalog.Store the handlers use.
type Catalog interface {
	Add(ctx context.Context, draft models.Draft) models.Recipe
	Update(ctx context.Context, r models.Recipe) (models.Recipe, bool)
	Remove(ctx context.Context, id string) (models.Recipe, bool)
	Get(id string) (models.Recipe, bool)
	Filter(q catalog.Query) []models.Recipe
	Categories() []string
}

// The confirmation messages shown after each change.

func addedMessage(r models.Recipe) string   { return `Recipe "` + r.Title + `" added.` }
func updatedMessage(r models.Recipe) string { return `Recipe "` + r.Title + `" updated.` }
func deletedMessage(r models.Recipe) string { return `Recipe "` + r.Title + `" deleted.` }
