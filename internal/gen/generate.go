package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ModulePath is the import path of this module.
const ModulePath = "github.com/funvibe/funmeta"

// Generator runs the whole pipeline: config, inspection, codegen, write.
type Generator struct {
	Logger *zap.Logger

	// ModulePath overrides the import path used for pkg/multi.
	// Defaults to ModulePath.
	ModulePath string
}

// Result describes one generator run.
type Result struct {
	// Path is the absolute path of the generated file.
	Path string

	// Written is false when the file already had the generated content.
	Written bool
}

func (g *Generator) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

func (g *Generator) modulePath() string {
	if g.ModulePath == "" {
		return ModulePath
	}
	return g.ModulePath
}

// Run generates the file described by the config at configPath.
func (g *Generator) Run(configPath string) (*Result, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(configPath)
	return g.RunConfig(cfg, NewInspector(dir, g.modulePath()), dir)
}

// RunConfig generates cfg into dir using ins to resolve types.
func (g *Generator) RunConfig(cfg *Config, ins *Inspector, dir string) (*Result, error) {
	log := g.logger().With(zap.String("package", cfg.Package))

	log.Debug("inspecting", zap.Strings("packages", cfg.PackagePaths()))
	result, err := ins.Inspect(cfg)
	if err != nil {
		return nil, err
	}
	for _, a := range result.Arrays {
		log.Debug("array resolved",
			zap.String("name", a.Spec.Name),
			zap.Stringer("type", a.Type),
			zap.Stringer("swap", a.Swap.Strategy),
			zap.Int64s("elem_dims", a.Swap.Dims))
	}
	for _, n := range result.Nested {
		log.Debug("nested resolved",
			zap.String("name", n.Spec.Name),
			zap.Stringer("type", n.Type()),
			zap.String("family", n.Spec.Family))
	}

	file, err := NewCodeGenerator(g.modulePath()).Generate(cfg, result)
	if err != nil {
		return nil, err
	}

	path, err := filepath.Abs(filepath.Join(dir, file.Filename))
	if err != nil {
		return nil, fmt.Errorf("resolving output path: %w", err)
	}
	written, err := writeIfChanged(path, []byte(file.Content))
	if err != nil {
		return nil, err
	}
	if written {
		log.Info("generated", zap.String("file", path),
			zap.Int("arrays", len(result.Arrays)),
			zap.Int("nested", len(result.Nested)))
	} else {
		log.Info("up to date", zap.String("file", path))
	}
	return &Result{Path: path, Written: written}, nil
}

// writeIfChanged writes data to path unless the file already holds it,
// so that unchanged output keeps its modification time.
func writeIfChanged(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
