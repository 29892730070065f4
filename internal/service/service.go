// Package service builds the internal pipelines the backend uses for
// blit and buffer-fill operations that the native API has no fixed-function
// path for. Shaders are written in WGSL and compiled through naga.
package service

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/dx12/d3d12"
	"github.com/gogpu/naga"
)

// blitSrc copies between storage buffers; the backend dispatches it for
// buffer-to-buffer blits outside copy-queue paths.
const blitSrc = `
@group(0) @binding(0) var<storage, read> src: array<u32>;
@group(0) @binding(1) var<storage, read_write> dst: array<u32>;

@compute @workgroup_size(64)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    if (gid.x < arrayLength(&dst)) {
        dst[gid.x] = src[gid.x];
    }
}
`

// fillSrc clears a storage buffer to zero, used for metadata resets.
const fillSrc = `
@group(0) @binding(0) var<storage, read_write> dst: array<u32>;

@compute @workgroup_size(64)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    if (gid.x < arrayLength(&dst)) {
        dst[gid.x] = 0u;
    }
}
`

// Pipes is the set of internal service pipelines shared by all command
// buffers of a device. Individual pipelines may be nil when shader
// compilation is unavailable; callers check before dispatching.
type Pipes struct {
	BlitBuffer d3d12.PipelineState
	FillBuffer d3d12.PipelineState
}

// NewPipes compiles and creates the service pipelines. Compilation
// failures degrade the bundle instead of failing device creation; the
// affected operations fall back to copy-queue paths.
func NewPipes(device d3d12.Device, logger *slog.Logger) *Pipes {
	p := &Pipes{}
	p.BlitBuffer = buildPipeline(device, logger, "blit-buffer", blitSrc)
	p.FillBuffer = buildPipeline(device, logger, "fill-buffer", fillSrc)
	return p
}

func buildPipeline(device d3d12.Device, logger *slog.Logger, name, src string) d3d12.PipelineState {
	bytecode, err := compile(src)
	if err != nil {
		logger.Warn("service: shader compile failed, pipeline unavailable", "pipeline", name, "error", err)
		return nil
	}
	ps, err := device.CreateComputePipeline(bytecode)
	if err != nil {
		logger.Warn("service: pipeline creation failed", "pipeline", name, "error", err)
		return nil
	}
	return ps
}

// compile translates WGSL to portable bytecode for the native pipeline
// constructor.
func compile(src string) ([]byte, error) {
	bytecode, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("service: compile shader: %w", err)
	}
	return bytecode, nil
}

// Destroy releases the pipelines.
func (p *Pipes) Destroy() {
	if p.BlitBuffer != nil {
		p.BlitBuffer.Destroy()
	}
	if p.FillBuffer != nil {
		p.FillBuffer.Destroy()
	}
}
