// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"recipebox/internal/models"
)

//go:embed seed.yaml
var defaultSeed []byte

// DefaultSeed returns the built-in sample recipes.
func DefaultSeed() []models.Recipe {
	recipes, err := ParseSeed(defaultSeed)
	if err != nil {
		// The embedded file is part of the binary; a parse failure is a build defect.
		panic(fmt.Sprintf("embedded seed: %v", err))
	}
	return recipes
}

// LoadSeed reads a seed file from path. An empty path yields DefaultSeed.
func LoadSeed(path string) ([]models.Recipe, error) {
	if path == "" {
		return DefaultSeed(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	recipes, err := ParseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return recipes, nil
}

// ParseSeed decodes a YAML list of recipes. Every entry needs a unique id;
// blank ingredient and instruction lines are dropped and missing images
// get the default.
func ParseSeed(data []byte) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := yaml.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if err := checkCollection(recipes); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	for i := range recipes {
		recipes[i] = recipes[i].Normalize()
	}
	return recipes, nil
}
