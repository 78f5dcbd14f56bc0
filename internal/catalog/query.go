// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"slices"
	"strings"

	"recipebox/internal/models"
)

// AllCategories is the category selection that applies no category filter.
const AllCategories = "All"

// Query is the view state the presentation layer owns: the search box text
// and the selected category chip. An empty Category means AllCategories, so
// the zero Query matches everything.
type Query struct {
	Search   string
	Category string
}

// NewQuery builds a query, treating an empty category as AllCategories.
func NewQuery(search, category string) Query {
	if category == "" {
		category = AllCategories
	}
	return Query{Search: search, Category: category}
}

// Filtered reports whether q narrows the collection at all. The empty-state
// message uses it to tell "nothing saved yet" from "nothing matches".
func (q Query) Filtered() bool {
	return q.Search != "" || !q.allCategories()
}

func (q Query) allCategories() bool {
	return q.Category == "" || q.Category == AllCategories
}

// Matches reports whether r passes both the category and search predicates.
func (q Query) Matches(r models.Recipe) bool {
	if !q.allCategories() && r.Category != q.Category {
		return false
	}
	if q.Search == "" {
		return true
	}
	needle := strings.ToLower(q.Search)
	if containsFold(r.Title, needle) || containsFold(r.Description, needle) {
		return true
	}
	for _, ing := range r.Ingredients {
		if containsFold(ing, needle) {
			return true
		}
	}
	return false
}

// containsFold reports whether s contains the already lower-cased needle,
// ignoring case.
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}

// Filter returns the recipes matching q in collection order.
func Filter(recipes []models.Recipe, q Query) []models.Recipe {
	out := make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if q.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Categories returns the distinct category labels present in recipes,
// sorted ascending.
func Categories(recipes []models.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Category)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
