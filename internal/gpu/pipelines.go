//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/life/mesh"
)

// WorkgroupSize is the compute shader's tile edge (@workgroup_size(8, 8)).
const WorkgroupSize = 8

// Workgroups returns how many tiles of the given size cover side cells
// along one axis, rounding up. The compute shader skips invocations that
// fall past the grid edge.
func Workgroups(side, tile uint32) uint32 {
	if tile == 0 {
		return 0
	}
	return (side + tile - 1) / tile
}

// Pipelines holds the shader modules, pipeline layouts and the two
// pipelines built from them.
type Pipelines struct {
	device hal.Device

	meshModule    hal.ShaderModule
	computeModule hal.ShaderModule

	renderLayout  hal.PipelineLayout
	computeLayout hal.PipelineLayout

	Render  hal.RenderPipeline
	Compute hal.ComputePipeline
}

// NewPipelines compiles both shaders and creates the render pipeline for
// the given color format and the compute pipeline.
//
// Render: vertex layout from mesh.Layout, groups {projection, grid},
// triangle list, counter-clockwise front faces with back faces culled, one
// sample, no blending so fragments replace the target.
// Compute: group {grid size, source cells, destination cells}, entry cp_main.
func NewPipelines(device hal.Device, layouts *Layouts, src ShaderSources, format gputypes.TextureFormat) (*Pipelines, error) {
	p := &Pipelines{device: device}

	var err error
	if p.meshModule, err = createShaderModule(device, "life_mesh", src.Mesh); err != nil {
		return nil, err
	}
	if p.computeModule, err = createShaderModule(device, "life_compute", src.Compute); err != nil {
		p.Destroy()
		return nil, err
	}

	p.renderLayout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "life_render_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{layouts.Projection, layouts.Grid},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create render pipeline layout: %w", err)
	}

	p.Render, err = device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "life_render_pipeline",
		Layout: p.renderLayout,
		Vertex: hal.VertexState{
			Module:     p.meshModule,
			EntryPoint: VertexEntry,
			Buffers:    mesh.Layout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.meshModule,
			EntryPoint: FragmentEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeBack,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create render pipeline: %w", err)
	}

	p.computeLayout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "life_compute_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{layouts.Compute},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create compute pipeline layout: %w", err)
	}

	p.Compute, err = device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:   "life_compute_pipeline",
		Layout:  p.computeLayout,
		Compute: hal.ComputeState{Module: p.computeModule, EntryPoint: ComputeEntry},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create compute pipeline: %w", err)
	}

	slogger().Info("gpu: pipelines ready", "format", format)
	return p, nil
}

// Destroy releases pipelines, layouts and modules. Safe on a partially
// built value.
func (p *Pipelines) Destroy() {
	if p.Compute != nil {
		p.device.DestroyComputePipeline(p.Compute)
		p.Compute = nil
	}
	if p.Render != nil {
		p.device.DestroyRenderPipeline(p.Render)
		p.Render = nil
	}
	if p.computeLayout != nil {
		p.device.DestroyPipelineLayout(p.computeLayout)
		p.computeLayout = nil
	}
	if p.renderLayout != nil {
		p.device.DestroyPipelineLayout(p.renderLayout)
		p.renderLayout = nil
	}
	if p.computeModule != nil {
		p.device.DestroyShaderModule(p.computeModule)
		p.computeModule = nil
	}
	if p.meshModule != nil {
		p.device.DestroyShaderModule(p.meshModule)
		p.meshModule = nil
	}
}
