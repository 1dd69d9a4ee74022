package encoding

import (
	"fmt"

	"github.com/arloliu/animbake/errs"
	"github.com/arloliu/animbake/internal/options"
)

// Default wire format parameters.
const (
	DefaultTicks     = 20   // ticks per second
	DefaultPrecision = 1000 // fixed-point scale of values and deltas
	DefaultChunkSize = 100  // byte budget of one chunk before base64
)

// StreamEncoderConfig holds the parameters of a StreamEncoder.
type StreamEncoderConfig struct {
	ticks     int
	precision int
	chunkSize int
}

// NewStreamEncoderConfig returns a configuration with the default parameters.
func NewStreamEncoderConfig() *StreamEncoderConfig {
	return &StreamEncoderConfig{
		ticks:     DefaultTicks,
		precision: DefaultPrecision,
		chunkSize: DefaultChunkSize,
	}
}

// Ticks returns the ticks-per-second scale used to normalize Bezier handle times.
func (c *StreamEncoderConfig) Ticks() int {
	return c.ticks
}

// Precision returns the fixed-point scale factor.
func (c *StreamEncoderConfig) Precision() int {
	return c.precision
}

// ChunkSize returns the per-chunk byte budget.
func (c *StreamEncoderConfig) ChunkSize() int {
	return c.chunkSize
}

// StreamEncoderOption represents a functional option for configuring a StreamEncoder.
type StreamEncoderOption = options.Option[*StreamEncoderConfig]

// WithTicks sets the ticks-per-second scale. It must match the scale the
// segments were baked with.
func WithTicks(ticks int) StreamEncoderOption {
	return options.New(func(c *StreamEncoderConfig) error {
		if ticks <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidTicks, ticks)
		}
		c.ticks = ticks

		return nil
	})
}

// WithPrecision sets the fixed-point scale: stored integer = round(value * precision).
func WithPrecision(precision int) StreamEncoderOption {
	return options.New(func(c *StreamEncoderConfig) error {
		if precision <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidPrecision, precision)
		}
		c.precision = precision

		return nil
	})
}

// WithChunkSize sets the byte budget of a chunk, header included, before base64 framing.
func WithChunkSize(size int) StreamEncoderOption {
	return options.New(func(c *StreamEncoderConfig) error {
		if size <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidChunkSize, size)
		}
		c.chunkSize = size

		return nil
	})
}
