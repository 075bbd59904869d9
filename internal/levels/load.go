package levels

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed levels.yaml
var defaultLevelsYAML []byte

type catalogFile struct {
	Levels []Level `yaml:"levels"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. It panics if the embedded data is
// invalid, which is caught by the package tests.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultLevelsYAML)
		if err != nil {
			panic(fmt.Sprintf("levels: invalid built-in catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Parse builds a catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse levels: %w", err)
	}
	return New(f.Levels)
}

// Load reads a catalog file. An empty path selects the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read levels %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
