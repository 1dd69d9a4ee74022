// Package config handles baker configuration loading and management.
package config

import (
	"fmt"
	"strings"

	"github.com/arloliu/animbake/bake"
	"github.com/arloliu/animbake/encoding"
	"github.com/arloliu/animbake/errs"
	"github.com/arloliu/animbake/format"
)

// Config holds all baker settings.
type Config struct {
	Model    string            `yaml:"model"`
	Bake     BakeConfig        `yaml:"bake"`
	Parts    bake.PartMap      `yaml:"parts"`
	Settings []string          `yaml:"settings"`
	Cameras  map[string]string `yaml:"cameras"`
	Output   OutputConfig      `yaml:"output"`
	Logging  LoggingConfig     `yaml:"logging"`
}

// BakeConfig holds the wire format and simplification parameters.
type BakeConfig struct {
	Ticks             int      `yaml:"ticks"`
	Precision         int      `yaml:"precision"`
	ChunkSize         int      `yaml:"chunk_size"`
	PositionTolerance float64  `yaml:"position_tolerance"`
	RotationTolerance float64  `yaml:"rotation_tolerance"`
	ScaleTolerance    float64  `yaml:"scale_tolerance"`
	CameraTolerance   float64  `yaml:"camera_tolerance"`
	Animations        []string `yaml:"animations"` // Bake only these animations; empty bakes all
}

// OutputConfig holds artifact output settings.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	Compression string `yaml:"compression"` // none, zstd, s2 or lz4
	Archive     string `yaml:"archive"`     // Zip archive path; empty disables the archive
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the default values.
func Default() *Config {
	return &Config{
		Model: "model.bbmodel",
		Bake: BakeConfig{
			Ticks:             encoding.DefaultTicks,
			Precision:         encoding.DefaultPrecision,
			ChunkSize:         encoding.DefaultChunkSize,
			PositionTolerance: bake.DefaultPositionTolerance,
			RotationTolerance: bake.DefaultRotationTolerance,
			ScaleTolerance:    bake.DefaultScaleTolerance,
			CameraTolerance:   bake.DefaultCameraTolerance,
		},
		Parts:    bake.DefaultPartMap(),
		Settings: bake.DefaultSettings(),
		Cameras:  bake.DefaultCameras(),
		Output: OutputConfig{
			Dir:         "animations",
			Compression: "none",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the values that the bake pipeline would reject.
func (c *Config) Validate() error {
	if c.Bake.Ticks <= 0 {
		return fmt.Errorf("bake.ticks: %w", errs.ErrInvalidTicks)
	}
	if c.Bake.Precision <= 0 {
		return fmt.Errorf("bake.precision: %w", errs.ErrInvalidPrecision)
	}
	if c.Bake.ChunkSize <= 0 {
		return fmt.Errorf("bake.chunk_size: %w", errs.ErrInvalidChunkSize)
	}

	tolerances := map[string]float64{
		"position_tolerance": c.Bake.PositionTolerance,
		"rotation_tolerance": c.Bake.RotationTolerance,
		"scale_tolerance":    c.Bake.ScaleTolerance,
		"camera_tolerance":   c.Bake.CameraTolerance,
	}
	for name, tol := range tolerances {
		if tol < 0 {
			return fmt.Errorf("bake.%s: %w", name, errs.ErrInvalidThreshold)
		}
	}

	if strings.TrimSpace(c.Output.Dir) == "" {
		return fmt.Errorf("output.dir: %w", errs.ErrEmptyOutputDir)
	}
	if _, err := c.Compression(); err != nil {
		return err
	}

	return nil
}

// Compression returns the parsed artifact compression.
func (c *Config) Compression() (format.CompressionType, error) {
	ct, ok := format.ParseCompression(c.Output.Compression)
	if !ok {
		return 0, fmt.Errorf("output.compression: %w: %q", errs.ErrUnknownCompression, c.Output.Compression)
	}

	return ct, nil
}

// BakeOptions converts the configuration to bake options.
func (c *Config) BakeOptions() []bake.Option {
	return []bake.Option{
		bake.WithTicks(c.Bake.Ticks),
		bake.WithPrecision(c.Bake.Precision),
		bake.WithChunkSize(c.Bake.ChunkSize),
		bake.WithTolerances(c.Bake.PositionTolerance, c.Bake.RotationTolerance, c.Bake.ScaleTolerance),
		bake.WithCameraTolerance(c.Bake.CameraTolerance),
		bake.WithParts(c.Parts),
		bake.WithSettings(c.Settings...),
		bake.WithCameras(c.Cameras),
		bake.WithAnimations(c.Bake.Animations...),
	}
}
