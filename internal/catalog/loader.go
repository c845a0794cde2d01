// Package catalog loads the ordered unit catalog that the learning path
// and unlock propagation walk. Units live in YAML files, one document per
// unit, validated against a JSON schema at load time.
package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Catalog holds the loaded unit sequence.
type Catalog struct {
	units  map[string]Unit
	sorted []Unit
	mu     sync.RWMutex
}

// Load reads every unit YAML file under rootDir and builds the ordered
// catalog. Files that are not unit documents are skipped; unit documents
// that fail schema validation are an error.
func Load(rootDir string) (*Catalog, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(unitSchema))
	if err != nil {
		return nil, fmt.Errorf("compile unit schema: %w", err)
	}

	c := &Catalog{units: make(map[string]Unit)}

	err = filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}
		return c.loadUnit(schema, path)
	})
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	c.reindex()
	slog.Info("unit catalog loaded", "units", len(c.units))
	return c, nil
}

// FromUnits builds a catalog from an in-memory unit list (tests, importer).
func FromUnits(units []Unit) (*Catalog, error) {
	c := &Catalog{units: make(map[string]Unit, len(units))}
	for _, u := range units {
		if err := c.add(u); err != nil {
			return nil, err
		}
	}
	c.reindex()
	return c, nil
}

func (c *Catalog) loadUnit(schema *gojsonschema.Schema, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		slog.Warn("skipping unparseable YAML", "path", path, "error", err)
		return nil
	}
	if _, ok := doc["id"]; !ok {
		return nil // Not a unit file
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validate %s: %w", path, err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return fmt.Errorf("invalid unit document %s: %s", path, strings.Join(problems, "; "))
	}

	var unit Unit
	if err := yaml.Unmarshal(data, &unit); err != nil {
		return fmt.Errorf("decode unit %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.add(unit)
}

// add assumes the caller holds the lock during loading.
func (c *Catalog) add(unit Unit) error {
	if unit.ID == "" {
		return fmt.Errorf("unit id is required")
	}
	if _, exists := c.units[unit.ID]; exists {
		return fmt.Errorf("duplicate unit id: %s", unit.ID)
	}
	if unit.Slug == "" {
		unit.Slug = Slugify(unit.Name)
	}
	c.units[unit.ID] = unit
	return nil
}

func (c *Catalog) reindex() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sorted = make([]Unit, 0, len(c.units))
	for _, u := range c.units {
		c.sorted = append(c.sorted, u)
	}
	sort.Slice(c.sorted, func(i, j int) bool {
		if c.sorted[i].Order != c.sorted[j].Order {
			return c.sorted[i].Order < c.sorted[j].Order
		}
		return c.sorted[i].ID < c.sorted[j].ID
	})
}

// Get returns a unit by ID.
func (c *Catalog) Get(id string) (Unit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.units[id]
	return u, ok
}

// Units returns all units in path order.
func (c *Catalog) Units() []Unit {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Unit{}, c.sorted...)
}

// UnitIDs returns the unit IDs in path order, the sequence unlock
// propagation gates on.
func (c *Catalog) UnitIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.sorted))
	for _, u := range c.sorted {
		ids = append(ids, u.ID)
	}
	return ids
}

// Len returns the number of units.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.units)
}
