// Package descriptors implements CPU-side descriptor allocation for the
// dx12 backend: growable bump pools of small CPU-only heaps, linear scratch
// heaps for descriptor updates, and GPU-visible heaps.
package descriptors

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/dx12/d3d12"
)

// ErrOutOfDescriptors is returned when a fixed-capacity heap is exhausted.
var ErrOutOfDescriptors = errors.New("descriptors: heap exhausted")

// cpuHeapSize is the capacity of each CPU-only staging heap.
const cpuHeapSize = 64

// cpuHeap is one fixed-size CPU-only heap with a bump cursor.
type cpuHeap struct {
	raw   d3d12.DescriptorHeap
	start d3d12.CPUDescriptorHandle
	next  uint32
}

// CPUPool hands out CPU-only descriptor handles of one heap type, growing
// by whole heaps as needed. Safe for concurrent use.
type CPUPool struct {
	mu        sync.Mutex
	device    d3d12.Device
	ty        d3d12.DescriptorHeapType
	increment uint32
	heaps     []cpuHeap
}

// NewCPUPool creates an empty pool for the given descriptor type.
func NewCPUPool(device d3d12.Device, ty d3d12.DescriptorHeapType) *CPUPool {
	return &CPUPool{
		device:    device,
		ty:        ty,
		increment: device.DescriptorIncrementSize(ty),
	}
}

// Alloc returns one CPU descriptor handle, creating a new backing heap when
// the current one is full.
func (p *CPUPool) Alloc() (d3d12.CPUDescriptorHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.heaps); n == 0 || p.heaps[n-1].next == cpuHeapSize {
		raw, err := p.device.CreateDescriptorHeap(d3d12.DescriptorHeapDesc{
			Type:  p.ty,
			Count: cpuHeapSize,
		})
		if err != nil {
			return 0, fmt.Errorf("descriptors: create heap: %w", err)
		}
		p.heaps = append(p.heaps, cpuHeap{raw: raw, start: raw.CPUStart()})
	}

	h := &p.heaps[len(p.heaps)-1]
	handle := h.start + d3d12.CPUDescriptorHandle(h.next*p.increment)
	h.next++
	return handle, nil
}

// Destroy releases every backing heap. The pool must not be used afterwards.
func (p *CPUPool) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, h := range p.heaps {
		h.raw.Destroy()
	}
	p.heaps = nil
}

// HeapLinear is a fixed-capacity CPU-only scratch heap reset wholesale
// between descriptor-update batches. Not safe for concurrent use; callers
// serialize externally.
type HeapLinear struct {
	raw       d3d12.DescriptorHeap
	start     d3d12.CPUDescriptorHandle
	increment uint32
	size      uint32
	next      uint32
}

// NewHeapLinear creates a scratch heap with the given capacity.
func NewHeapLinear(device d3d12.Device, ty d3d12.DescriptorHeapType, size uint32) (*HeapLinear, error) {
	raw, err := device.CreateDescriptorHeap(d3d12.DescriptorHeapDesc{
		Type:  ty,
		Count: size,
	})
	if err != nil {
		return nil, fmt.Errorf("descriptors: create linear heap: %w", err)
	}
	return &HeapLinear{
		raw:       raw,
		start:     raw.CPUStart(),
		increment: device.DescriptorIncrementSize(ty),
		size:      size,
	}, nil
}

// Alloc returns the next handle in the heap.
func (h *HeapLinear) Alloc() (d3d12.CPUDescriptorHandle, error) {
	if h.next == h.size {
		return 0, ErrOutOfDescriptors
	}
	handle := h.start + d3d12.CPUDescriptorHandle(h.next*h.increment)
	h.next++
	return handle, nil
}

// Reset makes the whole heap available again.
func (h *HeapLinear) Reset() {
	h.next = 0
}

// Destroy releases the backing heap.
func (h *HeapLinear) Destroy() {
	h.raw.Destroy()
}

// GPUHeap is a shader-visible descriptor heap with a bump allocator.
// Safe for concurrent use.
type GPUHeap struct {
	mu        sync.Mutex
	raw       d3d12.DescriptorHeap
	startCPU  d3d12.CPUDescriptorHandle
	startGPU  d3d12.GPUDescriptorHandle
	increment uint32
	capacity  uint32
	next      uint32
}

// NewGPUHeap creates a shader-visible heap with the given capacity.
func NewGPUHeap(device d3d12.Device, ty d3d12.DescriptorHeapType, capacity uint32) (*GPUHeap, error) {
	raw, err := device.CreateDescriptorHeap(d3d12.DescriptorHeapDesc{
		Type:          ty,
		Count:         capacity,
		ShaderVisible: true,
	})
	if err != nil {
		return nil, fmt.Errorf("descriptors: create gpu heap: %w", err)
	}
	return &GPUHeap{
		raw:       raw,
		startCPU:  raw.CPUStart(),
		startGPU:  raw.GPUStart(),
		increment: device.DescriptorIncrementSize(ty),
		capacity:  capacity,
	}, nil
}

// Alloc reserves count contiguous descriptors and returns their CPU and
// GPU handles.
func (h *GPUHeap) Alloc(count uint32) (d3d12.CPUDescriptorHandle, d3d12.GPUDescriptorHandle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.next+count > h.capacity {
		return 0, 0, ErrOutOfDescriptors
	}
	cpu := h.startCPU + d3d12.CPUDescriptorHandle(h.next*h.increment)
	gpu := h.startGPU + d3d12.GPUDescriptorHandle(h.next*h.increment)
	h.next += count
	return cpu, gpu, nil
}

// Raw returns the underlying native heap, for binding on command lists.
func (h *GPUHeap) Raw() d3d12.DescriptorHeap {
	return h.raw
}

// Destroy releases the backing heap.
func (h *GPUHeap) Destroy() {
	h.raw.Destroy()
}
