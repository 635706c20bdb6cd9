// Package gen implements the funmeta code generator.
//
// It reads a funmeta.yaml file describing fixed-size array types and nested
// container types, resolves their element types with go/packages, computes
// the resulting types and exchange strategies with package meta, and renders
// a Go source file declaring:
//   - a type alias per configured type
//   - Swap<Name>: elementwise exchange with statically chosen leaf exchange
//   - Fill<Name>: an array with every element set to a value
//   - Make<Name>: a nested container built from per-level sizes
package gen

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultOutput is the generated file name when the config names none.
const DefaultOutput = "funmeta_gen.go"

// Container families accepted in nested specs.
const (
	FamilySlice = "slice"
	FamilyVec   = "vec"
)

// Config represents the top-level funmeta.yaml configuration.
type Config struct {
	// Package is the Go package name of the generated file.
	Package string `yaml:"package"`

	// Path is the import path of the generated package. Element types
	// declared in it are written unqualified. Optional.
	Path string `yaml:"path,omitempty"`

	// Output is the generated file name, relative to the config file.
	// Defaults to funmeta_gen.go.
	Output string `yaml:"output,omitempty"`

	// Arrays lists fixed-size array types to declare.
	Arrays []ArraySpec `yaml:"arrays,omitempty"`

	// Nested lists nested container types to declare.
	Nested []NestedSpec `yaml:"nested,omitempty"`
}

// ArraySpec describes one n-dimensional fixed-size array type.
//
// Example:
//
//	arrays:
//	  - name: Board
//	    elem: Cell
//	    pkg: example.com/game
//	    dims: [8, 8]
type ArraySpec struct {
	// Name is the Go name of the declared alias (e.g. "Board").
	Name string `yaml:"name"`

	// Elem is a type expression resolved in the scope of Pkg
	// (e.g. "Cell", "int", "[2]Cell").
	Elem string `yaml:"elem"`

	// Pkg is the import path declaring Elem. Empty for predeclared types.
	Pkg string `yaml:"pkg,omitempty"`

	// Dims are the per-level lengths, outermost first.
	Dims []int64 `yaml:"dims"`
}

// NestedSpec describes one nested container type.
type NestedSpec struct {
	// Name is the Go name of the declared alias (e.g. "Rows").
	Name string `yaml:"name"`

	// Elem is a type expression resolved in the scope of Pkg.
	Elem string `yaml:"elem"`

	// Pkg is the import path declaring Elem. Empty for predeclared types.
	Pkg string `yaml:"pkg,omitempty"`

	// Depth is the number of container levels around Elem.
	Depth int `yaml:"depth"`

	// Family is the container family: "slice" (default) or "vec".
	Family string `yaml:"family,omitempty"`
}

// LoadConfig reads and parses a funmeta.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses funmeta.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for funmeta.yaml starting from dir and walking up to
// parent directories. It returns "" and a nil error when none is found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range []string{"funmeta.yaml", "funmeta.yml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	if c.Package == "" {
		return fmt.Errorf("%s: package is required", path)
	}
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("%s: package %q is not a valid identifier", path, c.Package)
	}
	if len(c.Arrays) == 0 && len(c.Nested) == 0 {
		return fmt.Errorf("%s: no arrays or nested types defined", path)
	}

	seen := make(map[string]string) // name → where it was declared
	declare := func(name, where string) error {
		if name == "" {
			return fmt.Errorf("%s: %s: name is required", path, where)
		}
		if !token.IsIdentifier(name) {
			return fmt.Errorf("%s: %s: name %q is not a valid identifier", path, where, name)
		}
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%s: %s: name %q already declared by %s", path, where, name, prev)
		}
		seen[name] = where
		return nil
	}

	for i, a := range c.Arrays {
		where := fmt.Sprintf("arrays[%d]", i)
		if err := declare(a.Name, where); err != nil {
			return err
		}
		if a.Elem == "" {
			return fmt.Errorf("%s: %s: elem is required", path, where)
		}
		if len(a.Dims) == 0 {
			return fmt.Errorf("%s: %s: at least one dimension is required", path, where)
		}
		for j, d := range a.Dims {
			if d < 0 {
				return fmt.Errorf("%s: %s: dims[%d] = %d is negative", path, where, j, d)
			}
		}
	}

	for i, n := range c.Nested {
		where := fmt.Sprintf("nested[%d]", i)
		if err := declare(n.Name, where); err != nil {
			return err
		}
		if n.Elem == "" {
			return fmt.Errorf("%s: %s: elem is required", path, where)
		}
		if n.Depth < 1 {
			return fmt.Errorf("%s: %s: depth must be at least 1, got %d", path, where, n.Depth)
		}
		switch n.Family {
		case "", FamilySlice, FamilyVec:
		default:
			return fmt.Errorf("%s: %s: unknown family %q (want %s or %s)", path, where, n.Family, FamilySlice, FamilyVec)
		}
	}

	return nil
}

// setDefaults fills in default values for optional fields.
func (c *Config) setDefaults() {
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	for i := range c.Nested {
		if c.Nested[i].Family == "" {
			c.Nested[i].Family = FamilySlice
		}
	}
}

// PackagePaths returns the distinct element packages, in config order.
func (c *Config) PackagePaths() []string {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	for _, a := range c.Arrays {
		add(a.Pkg)
	}
	for _, n := range c.Nested {
		add(n.Pkg)
	}
	return paths
}
