//go:build !nogpu

package app

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"

	"github.com/gogpu/life/grid"
	"github.com/gogpu/life/internal/gpu"
)

// Config represents the command-line parameters for the application.
type Config struct {
	MeshShader    string
	ComputeShader string
	Width         int
	Height        int
	LogLevel      string
	Verify        bool
	Headless      int
	Seed          uint64
}

// NewConfig returns a Config populated with the default window size and
// shader locations.
func NewConfig() *Config {
	return &Config{
		MeshShader:    gpu.DefaultMeshShaderPath,
		ComputeShader: gpu.DefaultComputeShaderPath,
		Width:         grid.PixelSize,
		Height:        grid.PixelSize,
		LogLevel:      "info",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.MeshShader, "mesh-shader", c.MeshShader, "WGSL file with vs_main and fs_main")
	fs.StringVar(&c.ComputeShader, "compute-shader", c.ComputeShader, "WGSL file with cp_main")
	fs.IntVar(&c.Width, "width", c.Width, "initial window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "initial window height in pixels")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&c.Verify, "verify", c.Verify, "compare every GPU generation against the CPU step")
	fs.IntVar(&c.Headless, "headless", c.Headless, "run this many generations offscreen, verify them and exit")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "seed for the initial grid; 0 picks a random one")
}

// Validate reports flag combinations that cannot run.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	if c.Headless < 0 {
		errs = append(errs, fmt.Errorf("headless generations %d must not be negative", c.Headless))
	}
	if c.MeshShader == "" || c.ComputeShader == "" {
		errs = append(errs, errors.New("shader paths must not be empty"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// ShaderPaths returns the configured WGSL locations.
func (c *Config) ShaderPaths() gpu.ShaderPaths {
	return gpu.ShaderPaths{Mesh: c.MeshShader, Compute: c.ComputeShader}
}

// Grid builds the initial grid from Seed.
func (c *Config) Grid() *grid.Grid {
	if c.Seed == 0 {
		return grid.NewRandom(grid.Side)
	}
	return grid.NewSeeded(grid.Side, c.Seed)
}
