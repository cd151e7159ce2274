package planner

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog is an immutable table of exercise names per (level, equipment) cell, plus a
// body-weight list per level. Accessors return copies.
type Catalog struct {
	cells      [3][3][]string
	bodyWeight [3][]string
}

// CatalogSnapshot mirrors catalog.yaml.
type CatalogSnapshot struct {
	Equipment  map[string]map[string][]string `yaml:"equipment" json:"equipment"`
	BodyWeight map[string][]string            `yaml:"body_weight" json:"body_weight"`
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("planner: embedded catalog: %v", err))
	}
	return c
})

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() *Catalog {
	return defaultCatalog()
}

// LoadCatalog reads and parses a catalog file in the catalog.yaml format.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes a YAML catalog. Every level/equipment cell and every body-weight
// level must list at least one exercise, with no name repeated within a list.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f CatalogSnapshot
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{}
	for _, l := range Levels {
		row, ok := f.Equipment[l.String()]
		if !ok {
			return nil, fmt.Errorf("catalog: missing level %q", l)
		}
		for _, e := range EquipmentOptions {
			names := row[e.String()]
			if len(names) == 0 {
				return nil, fmt.Errorf("catalog: no exercises for %s/%s", l, e)
			}
			if dup, ok := firstDuplicate(names); ok {
				return nil, fmt.Errorf("catalog: %q listed twice for %s/%s", dup, l, e)
			}
			c.cells[l][e] = slices.Clone(names)
		}

		bw := f.BodyWeight[l.String()]
		if len(bw) == 0 {
			return nil, fmt.Errorf("catalog: no body weight exercises for %s", l)
		}
		if dup, ok := firstDuplicate(bw); ok {
			return nil, fmt.Errorf("catalog: %q listed twice in body weight for %s", dup, l)
		}
		c.bodyWeight[l] = slices.Clone(bw)
	}
	return c, nil
}

func firstDuplicate(names []string) (string, bool) {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return n, true
		}
		seen[n] = struct{}{}
	}
	return "", false
}

// Exercises returns the catalog cell for one level and equipment category.
func (c *Catalog) Exercises(l FitnessLevel, e Equipment) []string {
	return slices.Clone(c.cell(l, e))
}

// BodyWeight returns the body-weight-only exercises for one level.
func (c *Catalog) BodyWeight(l FitnessLevel) []string {
	return slices.Clone(c.bodyWeightCell(l))
}

// Snapshot returns the catalog in its file shape, keyed by labels.
func (c *Catalog) Snapshot() CatalogSnapshot {
	f := CatalogSnapshot{
		Equipment:  make(map[string]map[string][]string, len(Levels)),
		BodyWeight: make(map[string][]string, len(Levels)),
	}
	for _, l := range Levels {
		row := make(map[string][]string, len(EquipmentOptions))
		for _, e := range EquipmentOptions {
			row[e.String()] = c.Exercises(l, e)
		}
		f.Equipment[l.String()] = row
		f.BodyWeight[l.String()] = c.BodyWeight(l)
	}
	return f
}

// cell and bodyWeightCell panic on values outside the closed enums; callers validate first.
func (c *Catalog) cell(l FitnessLevel, e Equipment) []string {
	if l < Beginner || l > Advanced || e < FullGym || e > NoEquipment {
		panic(fmt.Sprintf("planner: no catalog cell for level=%d equipment=%d", l, e))
	}
	return c.cells[l][e]
}

func (c *Catalog) bodyWeightCell(l FitnessLevel) []string {
	if l < Beginner || l > Advanced {
		panic(fmt.Sprintf("planner: no body weight cell for level=%d", l))
	}
	return c.bodyWeight[l]
}
