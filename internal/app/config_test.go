//go:build !nogpu

package app

import (
	"flag"
	"log/slog"
	"testing"

	"github.com/gogpu/life/grid"
	"github.com/gogpu/life/internal/gpu"
)

func TestConfigBind(t *testing.T) {
	c := NewConfig()
	fs := flag.NewFlagSet("life", flag.ContinueOnError)
	c.Bind(fs)

	err := fs.Parse([]string{
		"-mesh-shader", "m.wgsl",
		"-compute-shader", "c.wgsl",
		"-width", "640",
		"-height", "480",
		"-log-level", "debug",
		"-verify",
		"-headless", "10",
		"-seed", "42",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := Config{
		MeshShader:    "m.wgsl",
		ComputeShader: "c.wgsl",
		Width:         640,
		Height:        480,
		LogLevel:      "debug",
		Verify:        true,
		Headless:      10,
		Seed:          42,
	}
	if *c != want {
		t.Errorf("Config = %+v, want %+v", *c, want)
	}
	if got := c.ShaderPaths(); got != (gpu.ShaderPaths{Mesh: "m.wgsl", Compute: "c.wgsl"}) {
		t.Errorf("ShaderPaths() = %+v", got)
	}
	if l, err := c.Level(); err != nil || l != slog.LevelDebug {
		t.Errorf("Level() = %v, %v", l, err)
	}
}

func TestConfigDefaults(t *testing.T) {
	c := NewConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
	if c.Width != grid.PixelSize || c.Height != grid.PixelSize {
		t.Errorf("default size = %dx%d, want %dx%d", c.Width, c.Height, grid.PixelSize, grid.PixelSize)
	}
	if c.ShaderPaths() != gpu.DefaultShaderPaths() {
		t.Errorf("default shader paths = %+v", c.ShaderPaths())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative headless", func(c *Config) { c.Headless = -1 }},
		{"empty shader", func(c *Config) { c.MeshShader = "" }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConfig()
			tt.modify(c)
			if err := c.Validate(); err == nil {
				t.Error("Validate() accepted an invalid config")
			}
		})
	}
}

func TestConfigGridSeeded(t *testing.T) {
	c := NewConfig()
	c.Seed = 9
	a, b := c.Grid(), c.Grid()
	if a.Side() != grid.Side {
		t.Errorf("Side() = %d, want %d", a.Side(), grid.Side)
	}
	ac, bc := a.Cells(), b.Cells()
	for i := range ac {
		if ac[i] != bc[i] {
			t.Fatal("same seed produced different grids")
		}
	}
}
