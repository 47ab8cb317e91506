package wgpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/atlas_text.wgsl
var atlasTextShaderWGSL string

// Shader entry points.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// ShaderSource returns the WGSL source of the atlas text shader.
func ShaderSource() string { return atlasTextShaderWGSL }

// CompileShader compiles the atlas text shader to SPIR-V words.
func CompileShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(atlasTextShaderWGSL)
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile atlas text shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}

// CreateShaderModule compiles the shader and creates a module on device.
func CreateShaderModule(device hal.Device) (hal.ShaderModule, error) {
	code, err := CompileShader()
	if err != nil {
		return nil, err
	}
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "atlas_text_shader",
		Source: hal.ShaderSource{SPIRV: code},
	})
}
