package app

import (
	"errors"
	"flag"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the command-line parameters for the application.
type Config struct {
	Size  int
	Scale int
	TPS   int
	Tick  time.Duration
	Seed  int64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Size: 120, Scale: 8, TPS: 60, Tick: 16 * time.Millisecond, Seed: 42}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Size, "size", c.Size, "grid width and height in cells")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "host updates per second")
	fs.DurationVar(&c.Tick, "tick", c.Tick, "minimum interval between simulation steps")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for diagonal tie-breaks")
}

// Validate reports the first unusable value.
func (c *Config) Validate() error {
	switch {
	case c.Size <= 0:
		return fmt.Errorf("%w: size %d", ErrInvalidConfig, c.Size)
	case c.Scale <= 0:
		return fmt.Errorf("%w: scale %d", ErrInvalidConfig, c.Scale)
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps %d", ErrInvalidConfig, c.TPS)
	case c.Tick < 0:
		return fmt.Errorf("%w: tick %v", ErrInvalidConfig, c.Tick)
	}
	return nil
}
