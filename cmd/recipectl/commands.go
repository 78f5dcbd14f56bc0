package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"recipebox/internal/catalog"
	"recipebox/internal/models"
)

func newListCmd(a *app) *cobra.Command {
	var search, category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(cmd, func(cat *catalog.Store) error {
				recipes := cat.Filter(catalog.NewQuery(search, category))
				if a.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), recipes)
				}
				listTable(cmd.OutOrStdout(), recipes)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Search titles, descriptions and ingredients")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only show this category")
	return cmd
}

func listTable(w io.Writer, recipes []models.Recipe) {
	if len(recipes) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No recipes found."))
		return
	}

	idWidth := len("ID")
	for _, r := range recipes {
		idWidth = max(idWidth, len(r.ID))
	}

	fmt.Fprintln(w, boldStyle.Render(fmt.Sprintf("%-*s  %-11s  %-7s  %s", idWidth, "ID", "CATEGORY", "TIME", "TITLE")))
	for _, r := range recipes {
		fmt.Fprintf(w, "%s  %-11s  %-7s  %s\n",
			accentStyle.Render(fmt.Sprintf("%-*s", idWidth, r.ID)),
			r.Category,
			fmt.Sprintf("%d min", r.PrepTime),
			r.Title,
		)
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d recipe(s)", len(recipes))))
}

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(cmd, func(cat *catalog.Store) error {
				cats := cat.Categories()
				if a.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), cats)
				}
				for _, c := range cats {
					fmt.Fprintln(cmd.OutOrStdout(), c)
				}
				return nil
			})
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recipe in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(cmd, func(cat *catalog.Store) error {
				r, ok := cat.Get(args[0])
				if !ok {
					return fmt.Errorf("recipe %q not found", args[0])
				}
				if a.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), r)
				}
				showRecipe(cmd.OutOrStdout(), r)
				return nil
			})
		},
	}
}

func showRecipe(w io.Writer, r models.Recipe) {
	fmt.Fprintln(w, boldStyle.Render(r.Title))
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%s · %s · %d min · serves %d · id %s",
		r.Category, r.Difficulty, r.PrepTime, r.Servings, r.ID)))
	if r.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.Description)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, accentStyle.Render("Ingredients"))
	for _, ing := range r.Ingredients {
		fmt.Fprintf(w, "  - %s\n", ing)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, accentStyle.Render("Instructions"))
	for i, step := range r.Instructions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}
}

func newAddCmd(a *app) *cobra.Command {
	var (
		d          models.Draft
		difficulty string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d.Title = strings.TrimSpace(d.Title)
			d.Category = strings.TrimSpace(d.Category)
			if d.Title == "" {
				return errors.New("--title is required")
			}
			if d.Category == "" {
				return errors.New("--category is required")
			}
			if d.PrepTime < 0 || d.Servings < 0 {
				return errors.New("--prep-time and --servings must not be negative")
			}
			d.Difficulty = models.Difficulty(difficulty)
			if !d.Difficulty.Valid() {
				return fmt.Errorf("unknown difficulty %q (want Easy, Medium or Hard)", difficulty)
			}

			return a.withCatalog(cmd, func(cat *catalog.Store) error {
				created := cat.Add(cmd.Context(), d)
				return a.report(cmd.OutOrStdout(), created, `Recipe "`+created.Title+`" added.`)
			})
		},
	}
	cmd.Flags().StringVar(&d.Title, "title", "", "Recipe title (required)")
	cmd.Flags().StringVar(&d.Category, "category", "", "Category label (required)")
	cmd.Flags().StringVar(&d.Description, "description", "", "Short description, Markdown allowed")
	cmd.Flags().StringVar(&d.Image, "image", "", "Image URL (a stock photo when empty)")
	cmd.Flags().IntVar(&d.PrepTime, "prep-time", 0, "Preparation time in minutes")
	cmd.Flags().IntVar(&d.Servings, "servings", 0, "Number of servings")
	cmd.Flags().StringVar(&difficulty, "difficulty", string(models.DifficultyEasy), "Easy, Medium or Hard")
	cmd.Flags().StringArrayVar(&d.Ingredients, "ingredient", nil, "Ingredient line (repeatable)")
	cmd.Flags().StringArrayVar(&d.Instructions, "step", nil, "Instruction step (repeatable)")
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a recipe",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(cmd, func(cat *catalog.Store) error {
				removed, ok := cat.Remove(cmd.Context(), args[0])
				if !ok {
					return fmt.Errorf("recipe %q not found", args[0])
				}
				return a.report(cmd.OutOrStdout(), removed, `Recipe "`+removed.Title+`" deleted.`)
			})
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Add every recipe in a YAML seed file",
		Long: `Import reads a YAML list of recipes in the seed file format and adds each
one as a new recipe, keeping the file order at the top of the catalog. The
ids in the file only need to be unique within the file; imported recipes get
fresh ids.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipes, err := catalog.LoadSeed(args[0])
			if err != nil {
				return err
			}
			return a.withCatalog(cmd, func(cat *catalog.Store) error {
				// Add prepends, so adding from the back keeps the file order
				// at the top of the catalog.
				added := make([]models.Recipe, len(recipes))
				for i := len(recipes) - 1; i >= 0; i-- {
					added[i] = cat.Add(cmd.Context(), recipes[i].Draft())
				}
				if a.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), added)
				}
				for _, r := range added {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", passStyle.Render("✓"), accentStyle.Render(r.ID), r.Title)
				}
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(fmt.Sprintf("%d recipe(s) imported", len(added))))
				return nil
			})
		},
	}
}

func newSeedFileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-file <file.yaml>",
		Short: "Check that a YAML file is usable as SEED_FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipes, err := catalog.LoadSeed(args[0])
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), recipes)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d recipe(s), %d categor(ies)\n",
				passStyle.Render("✓"), args[0], len(recipes), len(catalog.Categories(recipes)))
			return nil
		},
	}
}

// report prints the outcome of a mutation: the recipe and message as JSON,
// or the message alone.
func (a *app) report(w io.Writer, r models.Recipe, message string) error {
	if a.jsonOutput {
		return writeJSON(w, struct {
			Recipe  models.Recipe `json:"recipe"`
			Message string        `json:"message"`
		}{r, message})
	}
	fmt.Fprintf(w, "%s %s %s\n", passStyle.Render("✓"), message, mutedStyle.Render("("+r.ID+")"))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
