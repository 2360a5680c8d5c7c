// Package config loads grid definitions from YAML:
//
//	rows: 4
//	cols: 4
//	blocking_category: P
//	costs:
//	  Q: 0
//	  V: 2
//	  P: 3
//	  Default: 1
//	places:
//	  1: V
//	  6: Q
//
// Place keys are 1-based indices in gridmap's row-major enumeration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/placegrid/gridmap"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid grid configuration")

// validate is a singleton validator instance.
var validate = validator.New()

// GridConfig is the on-disk description of a gridmap.Map.
type GridConfig struct {
	Rows             int                `yaml:"rows" validate:"required,min=1"`
	Cols             int                `yaml:"cols" validate:"required,min=1"`
	BlockingCategory string             `yaml:"blocking_category" validate:"omitempty,max=64"`
	Costs            map[string]float64 `yaml:"costs" validate:"required,min=1,dive,keys,required,endkeys,gte=0"`
	Places           map[int]string     `yaml:"places" validate:"omitempty,dive,keys,min=1,endkeys,required"`
}

// Parse decodes YAML and validates the result.
func Parse(data []byte) (*GridConfig, error) {
	var cfg GridConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (*GridConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks struct tags first, then the cost table rules gridmap
// enforces, so a valid config always builds.
func (c *GridConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, formatValidationError(err))
	}
	if err := gridmap.CostTable(c.Costs).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for idx := range c.Places {
		if idx > c.Rows*c.Cols {
			return fmt.Errorf("%w: place index %d outside 1..%d", ErrInvalidConfig, idx, c.Rows*c.Cols)
		}
	}
	return nil
}

// Build constructs the Map. opts are applied after the configured blocking
// category, so callers can still override it.
func (c *GridConfig) Build(opts ...gridmap.Option) (*gridmap.Map, error) {
	all := make([]gridmap.Option, 0, len(opts)+1)
	if c.BlockingCategory != "" {
		all = append(all, gridmap.WithBlockingCategory(c.BlockingCategory))
	}
	all = append(all, opts...)
	return gridmap.New(c.Rows, c.Cols, gridmap.CostTable(c.Costs), c.Places, all...)
}

// Example returns the 4×4 reference map: Q cells are free, V costs 2,
// P costs 3 and blocks edges between two P cells.
func Example() *GridConfig {
	return &GridConfig{
		Rows:             4,
		Cols:             4,
		BlockingCategory: gridmap.DefaultBlockingCategory,
		Costs:            map[string]float64{"Q": 0, "V": 2, "P": 3, gridmap.DefaultCategory: 1},
		Places: map[int]string{
			1: "V", 2: "V", 5: "V", 12: "V",
			6: "Q", 8: "Q", 11: "Q",
			3: "P", 9: "P", 14: "P", 15: "P",
		},
	}
}

// formatValidationError reduces validator errors to the first failing field.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}
	e := validationErrs[0]
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s is required", e.Namespace())
	case "min", "gte":
		return fmt.Errorf("%s must be at least %s", e.Namespace(), e.Param())
	case "max":
		return fmt.Errorf("%s must be at most %s", e.Namespace(), e.Param())
	default:
		return fmt.Errorf("%s failed %q validation", e.Namespace(), e.Tag())
	}
}
