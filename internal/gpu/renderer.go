//go:build !nogpu

package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/life/grid"
	"github.com/gogpu/life/mesh"
	"github.com/gogpu/life/transform"
)

// Stats counts the GPU work a Renderer has issued.
type Stats struct {
	Frames  uint64
	Submits uint64
}

// Renderer owns every GPU object of the simulation and records frames.
// It is not safe for concurrent use.
type Renderer struct {
	ctx       *Context
	layouts   *Layouts
	uniforms  *Uniforms
	geometry  *Geometry
	storage   *Storage
	pipelines *Pipelines
	opts      rendererOptions

	width, height uint32
	stats         Stats
	destroyed     bool
}

// NewRenderer loads the shaders and builds uniforms, geometry, storage and
// pipelines for g on ctx's device. Any failure releases what was built.
func NewRenderer(ctx *Context, g *grid.Grid, opts ...Option) (*Renderer, error) {
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}

	sources := o.sources
	if sources == nil {
		loaded, err := LoadShaders(o.paths)
		if err != nil {
			return nil, err
		}
		sources = &loaded
	}

	r := &Renderer{ctx: ctx, opts: o}
	device, queue := ctx.Device(), ctx.Queue()

	var err error
	if r.layouts, err = NewLayouts(device); err != nil {
		return nil, err
	}
	if r.uniforms, err = NewUniforms(device, queue, r.layouts, g.Side(), o.pixelSize); err != nil {
		r.Destroy()
		return nil, err
	}
	if r.geometry, err = NewGeometry(device, queue, o.mesh); err != nil {
		r.Destroy()
		return nil, err
	}
	if r.storage, err = NewStorage(device, queue, r.layouts, r.uniforms, g); err != nil {
		r.Destroy()
		return nil, err
	}
	if r.pipelines, err = NewPipelines(device, r.layouts, *sources, ctx.Format()); err != nil {
		r.Destroy()
		return nil, err
	}

	slogger().Info("gpu: renderer ready",
		"adapter", ctx.AdapterName(),
		"side", g.Side(),
		"population", g.Population(),
		"vertices", r.geometry.VertexCount(),
	)
	return r, nil
}

// Resize recomputes the projection for a w×h surface and uploads it before
// returning. Zero extents, as reported for a minimized window, are ignored
// and Resize returns false.
func (r *Renderer) Resize(w, h uint32) bool {
	if w == 0 || h == 0 {
		return false
	}
	r.width, r.height = w, h
	r.uniforms.SetProjection(transform.Viewport(w, h))
	slogger().Info("gpu: resized", "width", w, "height", h)
	return true
}

// Size returns the last non-zero size passed to Resize.
func (r *Renderer) Size() (uint32, uint32) { return r.width, r.height }

// SetMesh waits for in-flight frames and then swaps the per-cell vertex
// list.
func (r *Renderer) SetMesh(vs []mesh.Vertex) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if err := r.drain(); err != nil {
		return err
	}
	return r.geometry.SetMesh(vs)
}

// ReadCells copies one cell buffer back to the CPU.
func (r *Renderer) ReadCells(b CellBuffer) ([]uint32, error) {
	if r.destroyed {
		return nil, ErrDestroyed
	}
	return r.storage.ReadCells(b)
}

// Storage exposes the cell buffers and binding sets.
func (r *Renderer) Storage() *Storage { return r.storage }

// Uniforms exposes the projection and grid constants.
func (r *Renderer) Uniforms() *Uniforms { return r.uniforms }

// Stats returns the frame and submit counters.
func (r *Renderer) Stats() Stats { return r.stats }

// drain blocks until all submitted work has finished.
func (r *Renderer) drain() error {
	device := r.ctx.Device()
	fence, err := device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer device.DestroyFence(fence)
	if err := r.ctx.Queue().Submit([]hal.CommandBuffer{}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	return fenceResult(device.Wait(fence, 1, 5*time.Second))
}

// Destroy waits for the GPU and releases every resource the renderer
// created. The Context is left open. Safe to call more than once.
func (r *Renderer) Destroy() {
	if r.destroyed {
		return
	}
	if r.pipelines != nil || r.storage != nil {
		if err := r.drain(); err != nil {
			slogger().Warn("gpu: drain before destroy failed", "err", err)
		}
	}
	if r.pipelines != nil {
		r.pipelines.Destroy()
	}
	if r.storage != nil {
		r.storage.Destroy()
	}
	if r.geometry != nil {
		r.geometry.Destroy()
	}
	if r.uniforms != nil {
		r.uniforms.Destroy()
	}
	if r.layouts != nil {
		r.layouts.Destroy(r.ctx.Device())
	}
	r.destroyed = true
}
