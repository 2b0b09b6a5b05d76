package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/san-kum/gradloop/internal/schedule"
)

const (
	DefaultFrameRate = schedule.DefaultFrameRate
	DefaultWidth     = 320
	DefaultHeight    = 80
	DefaultDuration  = 2

	// GIF logical screen dimensions are 16-bit.
	MaxDimension = 1<<16 - 1
)

var (
	ErrInvalidDimension = errors.New("must be a positive integer")
	ErrInvalidFrameRate = errors.New("frame rate must be positive")
)

type Config struct {
	Start     string `yaml:"start"`
	End       string `yaml:"end"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Duration  int    `yaml:"duration"`
	FrameRate int    `yaml:"frame_rate,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Start:     "#000000",
		End:       "#ffffff",
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Duration:  DefaultDuration,
		FrameRate: DefaultFrameRate,
	}
}

// FromArgs builds a config from the five positional CLI arguments:
// start colour, end colour, width, height and duration.
func FromArgs(args []string) (*Config, error) {
	if len(args) != 5 {
		return nil, fmt.Errorf("expected 5 arguments, got %d", len(args))
	}
	cfg := DefaultConfig()
	cfg.Start, cfg.End = args[0], args[1]

	dims := []struct {
		name string
		dst  *int
	}{
		{"width", &cfg.Width},
		{"height", &cfg.Height},
		{"duration", &cfg.Duration},
	}
	for i, d := range dims {
		n, err := strconv.Atoi(args[2+i])
		if err != nil {
			return nil, fmt.Errorf("%s %w, got %q", d.name, ErrInvalidDimension, args[2+i])
		}
		*d.dst = n
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Width > MaxDimension {
		return fmt.Errorf("width %w up to %d, got %d", ErrInvalidDimension, MaxDimension, c.Width)
	}
	if c.Height <= 0 || c.Height > MaxDimension {
		return fmt.Errorf("height %w up to %d, got %d", ErrInvalidDimension, MaxDimension, c.Height)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration %w, got %d", ErrInvalidDimension, c.Duration)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidFrameRate, c.FrameRate)
	}
	return nil
}

func (c *Config) Timing() schedule.Timing {
	return schedule.Timing{FrameRate: c.FrameRate}
}

// FileName embeds the dimensions and duration so runs with different
// parameters write different files.
func (c *Config) FileName() string {
	return fmt.Sprintf("gradient%dx%d_%d.gif", c.Width, c.Height, c.Duration)
}
