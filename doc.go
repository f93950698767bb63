// Package life runs Conway's Game of Life on the GPU.
//
// # Overview
//
// Every frame records two passes into one command buffer: a render pass that
// draws one instanced quad per cell, then a compute pass that advances the
// grid by one generation. The grid lives in two storage buffers that trade
// places, so the render pass always reads the generation the compute pass is
// about to consume and the compute pass never reads and writes the same
// buffer.
//
//	parity 0: render reads A, compute reads A and writes B
//	parity 1: render reads B, compute reads B and writes A
//
// Parity flips once per elapsed wall-clock second.
//
// # Packages
//
//   - grid: cell state, random seeding, upload layout, CPU reference step
//   - mesh: per-cell vertex lists and their vertex buffer layout
//   - transform: orthographic projection, model transforms, camera
//   - sim: the 1 Hz step cadence and the parity it drives
//   - internal/gpu: device, buffers, binding sets, pipelines, frame recording
//   - internal/app: the frame orchestrator and host configuration
//
// # Logging
//
// The module is silent by default. Call [SetLogger] to route lifecycle and
// per-frame diagnostics to a [log/slog] handler.
package life
