// Package main provides recipectl, a command-line client that reads and
// edits the recipe catalog directly on the configured backend. It uses the
// same STORE_* environment variables as the server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"recipebox/internal/backend"
	"recipebox/internal/catalog"
	"recipebox/internal/config"
)

// Styles for output
var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#86b300",
		Dark:  "#c2d94c",
	})
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#f07171",
		Dark:  "#f07178",
	})
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#828c99",
		Dark:  "#6c7680",
	})
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#399ee6",
		Dark:  "#59c2ff",
	})
	boldStyle = lipgloss.NewStyle().Bold(true)
)

// opener opens the catalog a command works on.
type opener func(ctx context.Context) (*catalog.Store, backend.Closer, error)

// openConfigured loads configuration from the environment and opens the
// catalog on the backend it names.
func openConfigured(ctx context.Context) (*catalog.Store, backend.Closer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return backend.OpenCatalog(ctx, cfg)
}

// app carries what every subcommand shares.
type app struct {
	open       opener
	jsonOutput bool
}

// withCatalog opens the catalog, runs fn and closes the backend again.
func (a *app) withCatalog(cmd *cobra.Command, fn func(*catalog.Store) error) error {
	cat, closeFn, err := a.open(cmd.Context())
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer closeFn()
	if err := fn(cat); err != nil {
		return err
	}
	// Writes that failed to persist still changed the in-memory copy, which
	// is gone once the command exits.
	if err := cat.PersistErr(); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

func newRootCmd(open opener) *cobra.Command {
	a := &app{open: open}

	root := &cobra.Command{
		Use:   "recipectl",
		Short: "Inspect and edit the recipe catalog",
		Long: `recipectl works on the recipe catalog stored in the backend selected by
STORE_BACKEND (memory, file, sqlite, postgres, valkey, s3).

Examples:
  recipectl list                          # List every recipe
  recipectl list --search soup            # Search titles, descriptions and ingredients
  recipectl list --category Dinner --json # Filter by category, output JSON
  recipectl show 1                        # Show one recipe in full
  recipectl add --title Tacos --category Dinner --ingredient tortillas
  recipectl import recipes.yaml           # Add recipes from a YAML file
  recipectl seed-file recipes.yaml        # Validate a SEED_FILE`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output in JSON format")

	root.AddCommand(
		newListCmd(a),
		newCategoriesCmd(a),
		newShowCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newImportCmd(a),
		newSeedFileCmd(a),
	)
	return root
}

func main() {
	// Backend chatter stays out of the command output.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := newRootCmd(openConfigured).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, failStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
