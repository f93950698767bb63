//go:build !nogpu

package gpu

import (
	"fmt"
	"os"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Shader entry points.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
	ComputeEntry  = "cp_main"
)

// Default shader locations, relative to the working directory.
const (
	DefaultMeshShaderPath    = "assets/shader/mesh.wgsl"
	DefaultComputeShaderPath = "assets/shader/compute.wgsl"
)

// ShaderPaths names the WGSL files for the two pipelines.
type ShaderPaths struct {
	Mesh    string
	Compute string
}

// DefaultShaderPaths returns the standard asset locations.
func DefaultShaderPaths() ShaderPaths {
	return ShaderPaths{Mesh: DefaultMeshShaderPath, Compute: DefaultComputeShaderPath}
}

// ShaderSources holds WGSL text for the two pipelines.
type ShaderSources struct {
	// Mesh provides vs_main and fs_main.
	Mesh string
	// Compute provides cp_main.
	Compute string
}

// LoadShaders reads both WGSL files. A missing or unreadable file returns
// an error wrapping ErrShaderLoad.
func LoadShaders(paths ShaderPaths) (ShaderSources, error) {
	mesh, err := os.ReadFile(paths.Mesh)
	if err != nil {
		return ShaderSources{}, fmt.Errorf("%w: %w", ErrShaderLoad, err)
	}
	compute, err := os.ReadFile(paths.Compute)
	if err != nil {
		return ShaderSources{}, fmt.Errorf("%w: %w", ErrShaderLoad, err)
	}
	return ShaderSources{Mesh: string(mesh), Compute: string(compute)}, nil
}

// CompileWGSL compiles WGSL source to SPIR-V words with naga.
func CompileWGSL(label, source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrShaderCompile, label, err)
	}
	if len(spirvBytes) == 0 || len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("%w: %s: SPIR-V length %d", ErrShaderCompile, label, len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// createShaderModule compiles source and creates a shader module from it.
func createShaderModule(device hal.Device, label, source string) (hal.ShaderModule, error) {
	spirv, err := CompileWGSL(label, source)
	if err != nil {
		return nil, err
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s shader module: %w", label, err)
	}
	return module, nil
}
