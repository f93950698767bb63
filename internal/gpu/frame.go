//go:build !nogpu

package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/life/sim"
)

// Pass names recorded in FrameReport.Passes.
const (
	PassRender  = "render"
	PassCompute = "compute"
)

// FrameReport describes what one RecordFrame call encoded.
type FrameReport struct {
	Parity sim.Parity

	RenderSource       CellBuffer
	ComputeSource      CellBuffer
	ComputeDestination CellBuffer

	Vertices   uint32
	Instances  uint32
	Workgroups uint32

	// Passes lists the passes in encoding order.
	Passes []string
}

// RecordFrame encodes one frame into view for parity p and submits it.
//
// The frame is a single command buffer with two passes: a render pass that
// clears the view and draws one instance per cell from the source buffer,
// then a compute pass that writes the next generation into the other
// buffer. The render pass is encoded first, so the image always shows the
// generation the compute pass reads.
func (r *Renderer) RecordFrame(view hal.TextureView, p sim.Parity) (FrameReport, error) {
	if r.destroyed {
		return FrameReport{}, ErrDestroyed
	}
	if view == nil {
		return FrameReport{}, ErrAcquireFailed
	}

	renderSet, computeSet := r.storage.Select(p)
	side := uint32(r.storage.Side()) //nolint:gosec // grid side is small
	report := FrameReport{
		Parity:             p,
		RenderSource:       renderSet.Source,
		ComputeSource:      computeSet.Source,
		ComputeDestination: computeSet.Destination,
		Vertices:           r.geometry.VertexCount(),
		Instances:          r.storage.Instances(),
		Workgroups:         Workgroups(side, WorkgroupSize),
	}

	device := r.ctx.Device()
	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "life_frame_encoder",
	})
	if err != nil {
		return FrameReport{}, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("life_frame"); err != nil {
		return FrameReport{}, fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "life_render_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: r.opts.clear,
		}},
	})
	rp.SetPipeline(r.pipelines.Render)
	rp.SetVertexBuffer(0, r.geometry.Buffer(), 0)
	rp.SetBindGroup(groupProjection, r.uniforms.projectionGroup, nil)
	rp.SetBindGroup(groupGrid, renderSet.Group, nil)
	rp.Draw(report.Vertices, report.Instances, 0, 0)
	rp.End()
	report.Passes = append(report.Passes, PassRender)

	cp := encoder.BeginComputePass(&hal.ComputePassDescriptor{
		Label: "life_compute_pass",
	})
	cp.SetPipeline(r.pipelines.Compute)
	cp.SetBindGroup(groupCompute, computeSet.Group, nil)
	cp.Dispatch(report.Workgroups, report.Workgroups, 1)
	cp.End()
	report.Passes = append(report.Passes, PassCompute)

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return FrameReport{}, fmt.Errorf("end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	if err := r.submit(cmdBuf); err != nil {
		return FrameReport{}, err
	}
	r.stats.Frames++

	slogger().Debug("gpu: frame",
		"parity", p,
		"render", report.RenderSource,
		"compute", report.ComputeSource.String()+"->"+report.ComputeDestination.String(),
	)
	return report, nil
}

// submit hands one command buffer to the queue and waits for it so the
// host can present the surface right after.
func (r *Renderer) submit(cmdBuf hal.CommandBuffer) error {
	device := r.ctx.Device()
	fence, err := device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer device.DestroyFence(fence)

	if err := r.ctx.Queue().Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	r.stats.Submits++

	return fenceResult(device.Wait(fence, 1, 5*time.Second))
}
