// Package catalog reads and writes recipe catalogs in YAML and holds the
// built-in ingredient hints used to pre-fill new inventory items.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/smartfood/internal/model"
)

// File is the on-disk layout of a recipe catalog.
type File struct {
	Version string         `yaml:"version,omitempty"`
	Recipes []model.Recipe `yaml:"recipes"`
}

// LoadFile loads a recipe catalog from a YAML file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	return Parse(data)
}

// Parse parses a recipe catalog from YAML bytes.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	if err := applyDefaults(&f); err != nil {
		return nil, err
	}

	return &f, nil
}

// applyDefaults trims names and fills in the values the catalog may omit.
func applyDefaults(f *File) error {
	if f.Version == "" {
		f.Version = "1"
	}

	seen := make(map[string]struct{})
	for i := range f.Recipes {
		r := &f.Recipes[i]
		r.ID = strings.TrimSpace(r.ID)
		r.Name = strings.TrimSpace(r.Name)
		if r.Name == "" {
			return fmt.Errorf("recipe %d: name is required", i+1)
		}
		if r.ID != "" {
			if _, dup := seen[r.ID]; dup {
				return fmt.Errorf("recipe %d: duplicate id %q", i+1, r.ID)
			}
			seen[r.ID] = struct{}{}
		}
		if r.Difficulty == "" {
			r.Difficulty = model.DifficultyEasy
		}
		if r.Servings == 0 {
			r.Servings = 1
		}

		kept := r.Ingredients[:0]
		for _, ing := range r.Ingredients {
			ing.Name = strings.TrimSpace(ing.Name)
			if ing.Name == "" {
				continue
			}
			if ing.Quantity == 0 {
				ing.Quantity = 1
			}
			kept = append(kept, ing)
		}
		r.Ingredients = kept
	}

	return nil
}

// Marshal serializes a catalog to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a catalog to a YAML file.
func WriteFile(path string, f *File) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	//nolint:gosec // catalogs are meant to be shared
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}

	return nil
}
