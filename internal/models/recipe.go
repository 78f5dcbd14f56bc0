// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models holds the domain types shared by the catalog, the
// persistence backends and the presentation layer.
package models

import "strings"

// DefaultImageURL is used for recipes submitted without an image.
const DefaultImageURL = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=800&h=600&fit=crop"

// Difficulty is how demanding a recipe is to prepare.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists the selectable difficulty levels in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Categories offered by the add and edit forms. The data layer accepts any
// label; this list only drives the form dropdown.
var Categories = []string{"Breakfast", "Lunch", "Dinner", "Dessert", "Snack", "Appetizer"}

// Recipe is a single catalog entry. The JSON field names are the persisted
// layout of the collection and must not change.
type Recipe struct {
	ID           string     `json:"id" yaml:"id"`
	Title        string     `json:"title" yaml:"title"`
	Description  string     `json:"description" yaml:"description"`
	Image        string     `json:"image" yaml:"image"`
	PrepTime     int        `json:"prepTime" yaml:"prepTime"`
	Servings     int        `json:"servings" yaml:"servings"`
	Category     string     `json:"category" yaml:"category"`
	Difficulty   Difficulty `json:"difficulty" yaml:"difficulty"`
	Ingredients  []string   `json:"ingredients" yaml:"ingredients"`
	Instructions []string   `json:"instructions" yaml:"instructions"`
}

// Draft is a recipe before an id has been assigned.
type Draft struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Image        string     `json:"image"`
	PrepTime     int        `json:"prepTime"`
	Servings     int        `json:"servings"`
	Category     string     `json:"category"`
	Difficulty   Difficulty `json:"difficulty"`
	Ingredients  []string   `json:"ingredients"`
	Instructions []string   `json:"instructions"`
}

// WithID turns the draft into a recipe carrying the given id.
func (d Draft) WithID(id string) Recipe {
	return Recipe{
		ID:           id,
		Title:        d.Title,
		Description:  d.Description,
		Image:        d.Image,
		PrepTime:     d.PrepTime,
		Servings:     d.Servings,
		Category:     d.Category,
		Difficulty:   d.Difficulty,
		Ingredients:  d.Ingredients,
		Instructions: d.Instructions,
	}
}

// Draft returns the recipe's fields without its id.
func (r Recipe) Draft() Draft {
	return Draft{
		Title:        r.Title,
		Description:  r.Description,
		Image:        r.Image,
		PrepTime:     r.PrepTime,
		Servings:     r.Servings,
		Category:     r.Category,
		Difficulty:   r.Difficulty,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
	}
}

// Clone returns a deep copy so callers cannot alias the store's slices.
func (r Recipe) Clone() Recipe {
	r.Ingredients = cloneStrings(r.Ingredients)
	r.Instructions = cloneStrings(r.Instructions)
	return r
}

// Normalize drops blank ingredient and instruction lines and fills in the
// default image. It returns a new value; r is left untouched.
func (r Recipe) Normalize() Recipe {
	r.Ingredients = NonBlank(r.Ingredients)
	r.Instructions = NonBlank(r.Instructions)
	if r.Image == "" {
		r.Image = DefaultImageURL
	}
	return r
}

// NonBlank returns the entries of lines that contain something other than
// whitespace, in their original order. The result is never nil.
func NonBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
