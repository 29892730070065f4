package dx12

import (
	"fmt"

	"github.com/gogpu/dx12/d3d12"
	"github.com/gogpu/dx12/internal/service"
)

// CmdSignatures are the indirect-execution signatures shared by all
// command buffers of a device.
type CmdSignatures struct {
	Draw        d3d12.CommandSignature
	DrawIndexed d3d12.CommandSignature
	Dispatch    d3d12.CommandSignature
}

// Destroy releases the signatures.
func (s *CmdSignatures) Destroy() {
	s.Draw.Destroy()
	s.DrawIndexed.Destroy()
	s.Dispatch.Destroy()
}

// Shared is the per-device state every command buffer references:
// indirect command signatures and the internal service pipelines.
type Shared struct {
	Signatures   CmdSignatures
	ServicePipes *service.Pipes
}

// newShared builds the shared state. Signature creation must succeed;
// service pipelines degrade individually when unavailable.
func newShared(device d3d12.Device) (*Shared, error) {
	draw, err := device.CreateCommandSignature(d3d12.IndirectArgumentDraw, d3d12.DrawArgumentsSize)
	if err != nil {
		return nil, fmt.Errorf("dx12: create draw signature: %w", err)
	}
	drawIndexed, err := device.CreateCommandSignature(d3d12.IndirectArgumentDrawIndexed, d3d12.DrawIndexedArgumentsSize)
	if err != nil {
		draw.Destroy()
		return nil, fmt.Errorf("dx12: create draw-indexed signature: %w", err)
	}
	dispatch, err := device.CreateCommandSignature(d3d12.IndirectArgumentDispatch, d3d12.DispatchArgumentsSize)
	if err != nil {
		drawIndexed.Destroy()
		draw.Destroy()
		return nil, fmt.Errorf("dx12: create dispatch signature: %w", err)
	}

	return &Shared{
		Signatures:   CmdSignatures{Draw: draw, DrawIndexed: drawIndexed, Dispatch: dispatch},
		ServicePipes: service.NewPipes(device, slogger()),
	}, nil
}

// Destroy releases the shared state.
func (s *Shared) Destroy() {
	s.ServicePipes.Destroy()
	s.Signatures.Destroy()
}
