package gpu

import (
	"errors"
	"fmt"
)

// Device and surface errors.
var (
	// ErrNoBackend is returned when none of the requested backends is
	// registered in this build.
	ErrNoBackend = errors.New("gpu: no usable backend")

	// ErrNoAdapter is returned when a backend reports no adapters.
	ErrNoAdapter = errors.New("gpu: no GPU adapters found")

	// ErrDeviceOpen is returned when the selected adapter refuses to open
	// a device.
	ErrDeviceOpen = errors.New("gpu: failed to open device")

	// ErrNotHalProvider is returned when a host device provider does not
	// expose hal.Device and hal.Queue.
	ErrNotHalProvider = errors.New("gpu: provider does not expose HAL device and queue")

	// ErrNoSurfaceFormat is returned when the surface reports no usable
	// texture format.
	ErrNoSurfaceFormat = errors.New("gpu: surface reports no texture format")

	// ErrAcquireFailed is returned when no surface image was available for
	// two consecutive frames.
	ErrAcquireFailed = errors.New("gpu: failed to acquire surface image")
)

// Shader and pipeline errors.
var (
	// ErrShaderLoad is returned when a shader file cannot be read.
	ErrShaderLoad = errors.New("gpu: failed to load shader")

	// ErrShaderCompile is returned when WGSL fails to compile to SPIR-V.
	ErrShaderCompile = errors.New("gpu: failed to compile shader")

	// ErrEmptyMesh is returned when a vertex list has no vertices.
	ErrEmptyMesh = errors.New("gpu: mesh has no vertices")
)

// Storage errors.
var (
	// ErrAliasedBindings is returned when a compute binding set would read
	// and write the same cell buffer.
	ErrAliasedBindings = errors.New("gpu: compute set reads and writes the same buffer")

	// ErrEmptyGrid is returned when the initial grid has no cells.
	ErrEmptyGrid = errors.New("gpu: grid has no cells")

	// ErrReadback is returned when copying a cell buffer back to the CPU
	// fails.
	ErrReadback = errors.New("gpu: cell readback failed")

	// ErrDestroyed is returned when using a renderer after Destroy.
	ErrDestroyed = errors.New("gpu: renderer has been destroyed")

	// ErrGPUTimeout is returned when a submission's fence is not signaled
	// within the wait timeout.
	ErrGPUTimeout = errors.New("gpu: timed out waiting for GPU")
)

// fenceResult turns the result of a fence wait into an error.
func fenceResult(signaled bool, err error) error {
	switch {
	case err != nil:
		return fmt.Errorf("wait for GPU: %w", err)
	case !signaled:
		return ErrGPUTimeout
	}
	return nil
}
