//go:build !nogpu

package gpu

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/life/grid"
	"github.com/gogpu/life/mesh"
)

// DefaultClearColor is the background behind the cells.
var DefaultClearColor = gputypes.Color{R: 0.1, G: 0.1, B: 0.2, A: 1}

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := gpu.NewRenderer(ctx, g,
//	    gpu.WithShaderPaths(gpu.ShaderPaths{Mesh: "mesh.wgsl", Compute: "compute.wgsl"}),
//	    gpu.WithMesh(mesh.Triangle()),
//	)
type Option func(*rendererOptions)

type rendererOptions struct {
	paths     ShaderPaths
	sources   *ShaderSources
	clear     gputypes.Color
	mesh      []mesh.Vertex
	pixelSize uint32
}

func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		paths:     DefaultShaderPaths(),
		clear:     DefaultClearColor,
		mesh:      mesh.Rect(),
		pixelSize: grid.PixelSize,
	}
}

// WithShaderPaths sets the WGSL files to load.
func WithShaderPaths(p ShaderPaths) Option {
	return func(o *rendererOptions) {
		o.paths = p
	}
}

// WithShaderSources supplies WGSL text directly, skipping file loading.
func WithShaderSources(s ShaderSources) Option {
	return func(o *rendererOptions) {
		o.sources = &s
	}
}

// WithClearColor sets the render pass clear color.
func WithClearColor(c gputypes.Color) Option {
	return func(o *rendererOptions) {
		o.clear = c
	}
}

// WithMesh sets the initial per-cell vertex list.
func WithMesh(vs []mesh.Vertex) Option {
	return func(o *rendererOptions) {
		o.mesh = vs
	}
}

// WithPixelSize sets the edge length, in pixels, that the whole grid spans.
func WithPixelSize(px uint32) Option {
	return func(o *rendererOptions) {
		if px > 0 {
			o.pixelSize = px
		}
	}
}
