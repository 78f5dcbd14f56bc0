package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"recipebox/internal/models"
)

// Validation limits for recipe fields.
const (
	maxTitleLen       = 300
	maxDescriptionLen = 10_000
)

// MaxBodyBytes caps form and JSON request bodies.
const MaxBodyBytes = 1 << 20

// recipeForm is the raw text of the add and edit forms. It is echoed back
// to the template when validation fails.
type recipeForm struct {
	Title        string
	Description  string
	Image        string
	Category     string
	PrepTime     string
	Servings     string
	Difficulty   string
	Ingredients  string // one entry per line
	Instructions string // one step per line
}

// parseRecipeForm reads the recipe fields from a submitted form. List fields
// accept a newline separated textarea, repeated fields, or both.
func parseRecipeForm(w http.ResponseWriter, r *http.Request) (recipeForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return recipeForm{}, err
	}
	return recipeForm{
		Title:        r.PostFormValue("title"),
		Description:  r.PostFormValue("description"),
		Image:        strings.TrimSpace(r.PostFormValue("image")),
		Category:     r.PostFormValue("category"),
		PrepTime:     r.PostFormValue("prepTime"),
		Servings:     r.PostFormValue("servings"),
		Difficulty:   r.PostFormValue("difficulty"),
		Ingredients:  strings.Join(r.PostForm["ingredients"], "\n"),
		Instructions: strings.Join(r.PostForm["instructions"], "\n"),
	}, nil
}

// validate returns the messages for every missing or oversized field.
func (f recipeForm) validate() []string {
	var errs []string
	title := strings.TrimSpace(f.Title)
	switch {
	case title == "":
		errs = append(errs, "Title is required.")
	case utf8.RuneCountInString(title) > maxTitleLen:
		errs = append(errs, "Title is too long (max 300 characters).")
	}
	if strings.TrimSpace(f.Category) == "" {
		errs = append(errs, "Category is required.")
	}
	if strings.TrimSpace(f.PrepTime) == "" {
		errs = append(errs, "Prep time is required.")
	}
	if strings.TrimSpace(f.Servings) == "" {
		errs = append(errs, "Servings is required.")
	}
	if utf8.RuneCountInString(f.Description) > maxDescriptionLen {
		errs = append(errs, "Description is too long (max 10,000 characters).")
	}
	return errs
}

// draft converts the form into a recipe draft. Blank lines are kept here;
// the catalog strips them.
func (f recipeForm) draft() models.Draft {
	return models.Draft{
		Title:        strings.TrimSpace(f.Title),
		Description:  f.Description,
		Image:        f.Image,
		PrepTime:     parseCount(f.PrepTime),
		Servings:     parseCount(f.Servings),
		Category:     strings.TrimSpace(f.Category),
		Difficulty:   parseDifficulty(f.Difficulty),
		Ingredients:  splitLines(f.Ingredients),
		Instructions: splitLines(f.Instructions),
	}
}

// formFromRecipe fills the edit form with an existing recipe.
func formFromRecipe(r models.Recipe) recipeForm {
	return recipeForm{
		Title:        r.Title,
		Description:  r.Description,
		Image:        r.Image,
		Category:     r.Category,
		PrepTime:     strconv.Itoa(r.PrepTime),
		Servings:     strconv.Itoa(r.Servings),
		Difficulty:   string(r.Difficulty),
		Ingredients:  strings.Join(r.Ingredients, "\n"),
		Instructions: strings.Join(r.Instructions, "\n"),
	}
}

// validateDraft applies the form rules to a draft received as JSON and
// clamps its numeric and difficulty fields the same way parsing does.
func validateDraft(d models.Draft) (models.Draft, []string) {
	d.Title = strings.TrimSpace(d.Title)
	d.Category = strings.TrimSpace(d.Category)

	var errs []string
	switch {
	case d.Title == "":
		errs = append(errs, "Title is required.")
	case utf8.RuneCountInString(d.Title) > maxTitleLen:
		errs = append(errs, "Title is too long (max 300 characters).")
	}
	if d.Category == "" {
		errs = append(errs, "Category is required.")
	}
	if utf8.RuneCountInString(d.Description) > maxDescriptionLen {
		errs = append(errs, "Description is too long (max 10,000 characters).")
	}

	d.PrepTime = max(d.PrepTime, 0)
	d.Servings = max(d.Servings, 0)
	if !d.Difficulty.Valid() {
		d.Difficulty = models.DifficultyEasy
	}
	return d, errs
}

// parseCount reads a non-negative whole number. Anything unparsable or
// negative counts as zero.
func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseDifficulty maps form input to a difficulty level, defaulting to Easy.
func parseDifficulty(s string) models.Difficulty {
	d := models.Difficulty(strings.TrimSpace(s))
	if d.Valid() {
		return d
	}
	return models.DifficultyEasy
}

// splitLines splits textarea input into lines, dropping carriage returns.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
