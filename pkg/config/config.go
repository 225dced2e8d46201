// Package config loads lattice and Hilbert-space descriptions from TOML, YAML
// or JSON files.
//
// A description has a [graph] table and an optional [hilbert] table:
//
//	[graph]
//	name = "hypercube"
//	length = 4
//	dimension = 2
//	pbc = true
//
//	[hilbert]
//	name = "spin"
//	s = 0.5
//	total_sz = 0.0
//
// A custom graph lists its edges instead:
//
//	[graph]
//	name = "custom"
//	edges = [[0, 1], [1, 2], [2, 0]]
//	automorphisms = [[0, 1, 2], [1, 2, 0], [2, 0, 1]]
//	bipartite = false
//
// Structural checks (required fields, allowed names) run through struct tags
// before any graph is built; semantic checks are left to the lattice and
// hilbert constructors.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/latticekit/pkg/errors"
)

// Format selects the decoder for a description.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	if err := errs.ValidateConfigFilename(path); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return FormatYAML, nil
	}
}

// Config is a complete description: a graph and, optionally, a Hilbert space
// on it.
type Config struct {
	Graph   GraphConfig    `toml:"graph" yaml:"graph" json:"graph"`
	Hilbert *HilbertConfig `toml:"hilbert" yaml:"hilbert" json:"hilbert,omitempty"`
}

// GraphConfig describes either a hypercube or a custom graph.
type GraphConfig struct {
	Name string `toml:"name" yaml:"name" json:"name" validate:"required,oneof=hypercube custom"`

	// hypercube
	Length    int   `toml:"length" yaml:"length" json:"length,omitempty" validate:"required_if=Name hypercube,gte=0"`
	Dimension int   `toml:"dimension" yaml:"dimension" json:"dimension,omitempty" validate:"required_if=Name hypercube,gte=0"`
	PBC       *bool `toml:"pbc" yaml:"pbc" json:"pbc,omitempty"`
	// AxisColors colors every hypercube edge by the axis it runs along.
	AxisColors bool `toml:"axis_colors" yaml:"axis_colors" json:"axis_colors,omitempty"`

	// custom; for a hypercube, colored triples in Edges become its color map
	// and plain pairs must repeat its edges exactly
	NumSites      int     `toml:"n_sites" yaml:"n_sites" json:"n_sites,omitempty" validate:"gte=0"`
	Edges         [][]int `toml:"edges" yaml:"edges" json:"edges,omitempty" validate:"omitempty,dive,min=2,max=3"`
	Automorphisms [][]int `toml:"automorphisms" yaml:"automorphisms" json:"automorphisms,omitempty"`
	Bipartite     *bool   `toml:"bipartite" yaml:"bipartite" json:"bipartite,omitempty"`
}

// HilbertConfig describes a local-state space.
type HilbertConfig struct {
	Name        string    `toml:"name" yaml:"name" json:"name" validate:"required,oneof=spin qubit boson custom"`
	S           float64   `toml:"s" yaml:"s" json:"s,omitempty" validate:"required_if=Name spin,gte=0"`
	TotalSz     *float64  `toml:"total_sz" yaml:"total_sz" json:"total_sz,omitempty"`
	NMax        int       `toml:"n_max" yaml:"n_max" json:"n_max,omitempty" validate:"required_if=Name boson,gte=0"`
	NBosons     *int      `toml:"n_bosons" yaml:"n_bosons" json:"n_bosons,omitempty"`
	LocalStates []float64 `toml:"local_states" yaml:"local_states" json:"local_states,omitempty" validate:"required_if=Name custom"`
}

var validate = validator.New()

// Load reads and validates the description at path.
func Load(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "read %s", path)
	}
	return Decode(data, format)
}

// Decode parses a description in the given format and validates it.
func Decode(data []byte, format Format) (*Config, error) {
	var cfg Config
	var err error
	switch format {
	case FormatTOML:
		_, err = toml.Decode(string(data), &cfg)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	default:
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown config format %q", format)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode %s config", format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate runs the struct-tag checks.
func (c *Config) Validate() error {
	return check(c)
}

// Validate runs the struct-tag checks of a space description on its own,
// for spaces attached to a graph that did not come from a Config.
func (c *HilbertConfig) Validate() error {
	return check(c)
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "validate config")
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = describe(fe)
	}
	return errs.New(errs.ErrCodeInvalidConfig, "%s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(strings.TrimPrefix(fe.Namespace(), "Config."), "HilbertConfig.")
	switch fe.Tag() {
	case "required", "required_if":
		return field + " is required"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "gte":
		return field + " must be >= " + fe.Param()
	case "min", "max":
		return field + " must have 2 or 3 elements"
	default:
		return field + " failed " + fe.Tag()
	}
}
