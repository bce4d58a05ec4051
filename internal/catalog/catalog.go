package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"wine-trip-planner/internal/models"
)

//go:embed data/catalog.yaml
var embeddedCatalog []byte

// ErrWineryNotFound is returned when a winery id is not in the catalog
var ErrWineryNotFound = errors.New("winery not found")

// Catalog is the read-only reference data the planner works from
type Catalog struct {
	Wineries       []models.Winery        `yaml:"wineries"`
	Restaurants    []models.Restaurant    `yaml:"restaurants"`
	Accommodations []models.Accommodation `yaml:"accommodations"`
	Regions        []models.WineRegion    `yaml:"regions"`

	byID map[int64]models.Winery
}

// ValidationError lists every problem found in a catalog document
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid catalog: %s", strings.Join(e.Problems, "; "))
}

// Default returns the catalog bundled with the binary
func Default() (*Catalog, error) {
	return Parse(embeddedCatalog)
}

// Load reads a catalog override from path, or the bundled catalog when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	log.Printf("[CATALOG] Loaded override from %s: wineries=%d restaurants=%d accommodations=%d",
		path, len(c.Wineries), len(c.Restaurants), len(c.Accommodations))
	return c, nil
}

// Parse decodes and validates a YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.index()
	return &c, nil
}

// Validate checks id uniqueness per category and required fields
func (c *Catalog) Validate() error {
	var problems []string

	seen := make(map[int64]bool)
	for i, w := range c.Wineries {
		if seen[w.ID] {
			problems = append(problems, fmt.Sprintf("duplicate winery id %d", w.ID))
		}
		seen[w.ID] = true
		if strings.TrimSpace(w.Name) == "" {
			problems = append(problems, fmt.Sprintf("winery #%d has no name", i))
		}
		if strings.TrimSpace(w.Region) == "" {
			problems = append(problems, fmt.Sprintf("winery %d has no region", w.ID))
		}
	}

	seen = make(map[int64]bool)
	for _, r := range c.Restaurants {
		if seen[r.ID] {
			problems = append(problems, fmt.Sprintf("duplicate restaurant id %d", r.ID))
		}
		seen[r.ID] = true
	}

	seen = make(map[int64]bool)
	for _, a := range c.Accommodations {
		if seen[a.ID] {
			problems = append(problems, fmt.Sprintf("duplicate accommodation id %d", a.ID))
		}
		seen[a.ID] = true
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func (c *Catalog) index() {
	c.byID = make(map[int64]models.Winery, len(c.Wineries))
	for _, w := range c.Wineries {
		c.byID[w.ID] = w
	}
}

// Winery looks up a winery by id
func (c *Catalog) Winery(id int64) (models.Winery, error) {
	if c.byID == nil {
		c.index()
	}
	w, ok := c.byID[id]
	if !ok {
		return models.Winery{}, fmt.Errorf("winery %d: %w", id, ErrWineryNotFound)
	}
	return w, nil
}

// WineriesByIDs returns the wineries for ids in the given order, skipping unknown ids
func (c *Catalog) WineriesByIDs(ids []int64) []models.Winery {
	result := make([]models.Winery, 0, len(ids))
	for _, id := range ids {
		if w, err := c.Winery(id); err == nil {
			result = append(result, w)
		}
	}
	return result
}
