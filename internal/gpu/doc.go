// Package gpu drives the Game of Life on a gogpu/wgpu HAL device.
//
// The package owns every GPU object the simulation needs and records one
// command buffer per frame:
//
//	render pass:  clear, draw vertexCount × side² instances reading cells[P]
//	compute pass: dispatch ceil(side/8)² workgroups, cells[P] → cells[1-P]
//
// # Components
//
//   - Context: backend, adapter, device and queue, either opened here or
//     adopted from a host window through gpucontext.HalProvider
//   - Storage: the two cell buffers and the four binding sets built over them
//   - Pipelines: bind group layouts, the render pipeline and the compute pipeline
//   - Renderer: uniforms, vertex buffer, storage and pipelines tied together,
//     plus per-frame recording and readback
//   - OffscreenTarget: a color texture standing in for a window surface
//
// Binding sets are built once. Selecting the sets for a parity is a lookup,
// and the compute set for either parity reads one buffer and writes the
// other.
//
// # Build tags
//
// Files that touch the HAL carry the !nogpu build tag. doc.go, errors.go
// and logger.go stay untagged: the root package forwards its logger through
// SetLogger and callers match on the sentinel errors in every build, so
// those must exist even when the GPU code is compiled out.
package gpu
