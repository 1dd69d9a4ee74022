package bake

import (
	"fmt"
	"maps"

	"go.uber.org/zap"

	"github.com/arloliu/animbake/encoding"
	"github.com/arloliu/animbake/errs"
	"github.com/arloliu/animbake/internal/options"
)

// Default simplification tolerances, in value units. They are squared before use.
const (
	DefaultPositionTolerance = 0.002
	DefaultRotationTolerance = 0.1
	DefaultScaleTolerance    = 0.002
	DefaultCameraTolerance   = 0.002
)

// Config holds the parameters of a Baker.
type Config struct {
	ticks     int
	precision int
	chunkSize int

	positionTolerance float64
	rotationTolerance float64
	scaleTolerance    float64
	cameraTolerance   float64

	parts    PartMap
	settings []string
	cameras  map[string]string
	only     map[string]struct{}

	logger *zap.Logger
}

// NewConfig returns a configuration with the default parameters and mappings.
func NewConfig() *Config {
	return &Config{
		ticks:             encoding.DefaultTicks,
		precision:         encoding.DefaultPrecision,
		chunkSize:         encoding.DefaultChunkSize,
		positionTolerance: DefaultPositionTolerance,
		rotationTolerance: DefaultRotationTolerance,
		scaleTolerance:    DefaultScaleTolerance,
		cameraTolerance:   DefaultCameraTolerance,
		parts:             DefaultPartMap(),
		settings:          DefaultSettings(),
		cameras:           DefaultCameras(),
		logger:            zap.NewNop(),
	}
}

// Option represents a functional option for configuring a Baker.
type Option = options.Option[*Config]

// WithTicks sets the seconds-to-tick scale.
func WithTicks(ticks int) Option {
	return options.New(func(c *Config) error {
		if ticks <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidTicks, ticks)
		}
		c.ticks = ticks

		return nil
	})
}

// WithPrecision sets the fixed-point scale of encoded values and deltas.
func WithPrecision(precision int) Option {
	return options.New(func(c *Config) error {
		if precision <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidPrecision, precision)
		}
		c.precision = precision

		return nil
	})
}

// WithChunkSize sets the byte budget of one stream chunk.
func WithChunkSize(size int) Option {
	return options.New(func(c *Config) error {
		if size <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidChunkSize, size)
		}
		c.chunkSize = size

		return nil
	})
}

// WithTolerances sets the simplification tolerances of bone position,
// rotation and scale channels.
//
// Tolerances are distances in value units; zero keeps every non-duplicate key.
func WithTolerances(position, rotation, scale float64) Option {
	return options.New(func(c *Config) error {
		for _, tol := range []float64{position, rotation, scale} {
			if tol < 0 {
				return fmt.Errorf("%w: %g", errs.ErrInvalidThreshold, tol)
			}
		}
		c.positionTolerance = position
		c.rotationTolerance = rotation
		c.scaleTolerance = scale

		return nil
	})
}

// WithCameraTolerance sets the simplification tolerance of camera tracks.
func WithCameraTolerance(tol float64) Option {
	return options.New(func(c *Config) error {
		if tol < 0 {
			return fmt.Errorf("%w: %g", errs.ErrInvalidThreshold, tol)
		}
		c.cameraTolerance = tol

		return nil
	})
}

// WithParts replaces the role to part to bone mapping.
func WithParts(parts PartMap) Option {
	return options.NoError(func(c *Config) {
		c.parts = parts.Clone()
	})
}

// WithSettings replaces the list of setting bones.
func WithSettings(settings ...string) Option {
	return options.NoError(func(c *Config) {
		c.settings = append([]string(nil), settings...)
	})
}

// WithCameras replaces the camera key to camera bone mapping.
func WithCameras(cameras map[string]string) Option {
	return options.NoError(func(c *Config) {
		c.cameras = maps.Clone(cameras)
	})
}

// WithAnimations restricts baking to the named animations.
//
// An empty list bakes every animation.
func WithAnimations(names ...string) Option {
	return options.NoError(func(c *Config) {
		if len(names) == 0 {
			c.only = nil
			return
		}
		c.only = make(map[string]struct{}, len(names))
		for _, name := range names {
			c.only[name] = struct{}{}
		}
	})
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	})
}
