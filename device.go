package dx12

import (
	"fmt"
	"sync"

	"github.com/gogpu/dx12/d3d12"
	"github.com/gogpu/dx12/internal/descriptors"
)

// Shader-visible heap capacities. The view heap is sized to the API's
// tier 1 resource binding limit; the sampler heap to its hard cap.
const (
	gpuViewHeapSize    = 1_000_000
	gpuSamplerHeapSize = 2_048
)

// Scratch heap capacities for descriptor-update batches.
const (
	scratchViewHeapSize    = 256
	scratchSamplerHeapSize = 64
)

// QueueGroup is the set of queues created for one requested family.
type QueueGroup struct {
	Family FamilyID
	Queues []*CommandQueue
}

// Device is an open logical device. It owns its queues, descriptor
// machinery and service pipelines; destroying it releases the adapter's
// exclusive-open guard.
type Device struct {
	raw    d3d12.Device
	isOpen *openState

	queues []*CommandQueue
	groups []QueueGroup

	// presentQueue backs swapchain creation. Created exactly once at open
	// time; present-family requests resolve to it.
	presentQueue *CommandQueue

	// CPU-only staging pools, one per descriptor heap type.
	viewPool    *descriptors.CPUPool
	samplerPool *descriptors.CPUPool
	rtvPool     *descriptors.CPUPool
	dsvPool     *descriptors.CPUPool

	// Shader-visible heaps bound on command lists.
	gpuViewHeap    *descriptors.GPUHeap
	gpuSamplerHeap *descriptors.GPUHeap

	// Scratch heaps for descriptor-update batches, reset wholesale
	// between updates.
	viewScratch    *descriptors.HeapLinear
	samplerScratch *descriptors.HeapLinear

	shared *Shared

	destroyOnce sync.Once
}

// newDevice wires the descriptor machinery and shared state of a freshly
// created native device. Queues are appended by the caller.
func newDevice(raw d3d12.Device, isOpen *openState) (*Device, error) {
	d := &Device{
		raw:         raw,
		isOpen:      isOpen,
		viewPool:    descriptors.NewCPUPool(raw, d3d12.DescriptorHeapTypeCbvSrvUav),
		samplerPool: descriptors.NewCPUPool(raw, d3d12.DescriptorHeapTypeSampler),
		rtvPool:     descriptors.NewCPUPool(raw, d3d12.DescriptorHeapTypeRtv),
		dsvPool:     descriptors.NewCPUPool(raw, d3d12.DescriptorHeapTypeDsv),
	}

	var err error
	d.gpuViewHeap, err = descriptors.NewGPUHeap(raw, d3d12.DescriptorHeapTypeCbvSrvUav, gpuViewHeapSize)
	if err != nil {
		return nil, fmt.Errorf("dx12: create view heap: %w", err)
	}
	d.gpuSamplerHeap, err = descriptors.NewGPUHeap(raw, d3d12.DescriptorHeapTypeSampler, gpuSamplerHeapSize)
	if err != nil {
		d.gpuViewHeap.Destroy()
		return nil, fmt.Errorf("dx12: create sampler heap: %w", err)
	}
	d.viewScratch, err = descriptors.NewHeapLinear(raw, d3d12.DescriptorHeapTypeCbvSrvUav, scratchViewHeapSize)
	if err != nil {
		d.gpuSamplerHeap.Destroy()
		d.gpuViewHeap.Destroy()
		return nil, fmt.Errorf("dx12: create view scratch heap: %w", err)
	}
	d.samplerScratch, err = descriptors.NewHeapLinear(raw, d3d12.DescriptorHeapTypeSampler, scratchSamplerHeapSize)
	if err != nil {
		d.viewScratch.Destroy()
		d.gpuSamplerHeap.Destroy()
		d.gpuViewHeap.Destroy()
		return nil, fmt.Errorf("dx12: create sampler scratch heap: %w", err)
	}

	d.shared, err = newShared(raw)
	if err != nil {
		d.samplerScratch.Destroy()
		d.viewScratch.Destroy()
		d.gpuSamplerHeap.Destroy()
		d.gpuViewHeap.Destroy()
		return nil, err
	}
	return d, nil
}

// appendQueue creates one command queue of the given engine class and
// registers it for wait-idle and teardown.
func (d *Device) appendQueue(listType d3d12.CommandListType, priority d3d12.QueuePriority) (*CommandQueue, error) {
	raw, err := d.raw.CreateCommandQueue(listType, priority)
	if err != nil {
		return nil, err
	}
	idleFence, err := d.raw.CreateFence(0)
	if err != nil {
		raw.Destroy()
		return nil, err
	}
	queue := &CommandQueue{
		raw:       raw,
		idleFence: idleFence,
		idleEvent: d3d12.NewEvent(),
	}
	d.queues = append(d.queues, queue)
	return queue, nil
}

// ScratchViews returns the scratch heap used while composing view
// descriptor updates. Callers reset it between update batches.
func (d *Device) ScratchViews() *descriptors.HeapLinear {
	return d.viewScratch
}

// ScratchSamplers returns the scratch heap for sampler descriptor updates.
func (d *Device) ScratchSamplers() *descriptors.HeapLinear {
	return d.samplerScratch
}

// GPUViewHeap returns the shader-visible view heap bound on command lists.
func (d *Device) GPUViewHeap() *descriptors.GPUHeap {
	return d.gpuViewHeap
}

// GPUSamplerHeap returns the shader-visible sampler heap.
func (d *Device) GPUSamplerHeap() *descriptors.GPUHeap {
	return d.gpuSamplerHeap
}

// Shared returns the per-device shared state command buffers reference.
func (d *Device) Shared() *Shared {
	return d.shared
}

// QueueGroups returns the queues created at open time, grouped by family
// in request order.
func (d *Device) QueueGroups() []QueueGroup {
	return d.groups
}

// PresentQueue returns the device's single present-capable queue.
func (d *Device) PresentQueue() *CommandQueue {
	return d.presentQueue
}

// CreateFence creates a fence, optionally already signaled.
func (d *Device) CreateFence(signaled bool) (*Fence, error) {
	initial := uint64(0)
	if signaled {
		initial = 1
	}
	raw, err := d.raw.CreateFence(initial)
	if err != nil {
		return nil, fmt.Errorf("dx12: create fence: %w", err)
	}
	return &Fence{raw: raw}, nil
}

// CreateSemaphore creates a queue synchronization primitive.
func (d *Device) CreateSemaphore() (*Semaphore, error) {
	raw, err := d.raw.CreateFence(0)
	if err != nil {
		return nil, fmt.Errorf("dx12: create semaphore: %w", err)
	}
	return &Semaphore{raw: raw}, nil
}

// WaitIdle blocks until every queue of the device has drained.
func (d *Device) WaitIdle() error {
	for _, q := range d.queues {
		if err := q.WaitIdle(); err != nil {
			return err
		}
	}
	return nil
}

// Raw returns the native device, for swapchain and resource constructors
// layered above this package.
func (d *Device) Raw() d3d12.Device {
	return d.raw
}

// Destroy tears the device down and releases the adapter's open guard.
// Callers wait for GPU idleness first; teardown does not flush in-flight
// work. Safe to call more than once.
func (d *Device) Destroy() {
	d.destroyOnce.Do(func() {
		d.isOpen.mu.Lock()
		d.isOpen.open = false
		d.isOpen.mu.Unlock()

		d.releaseResources()
	})
}

// releaseResources destroys everything the device owns. Also used on the
// open failure path, where the adapter's guard is still held by the caller.
func (d *Device) releaseResources() {
	for _, q := range d.queues {
		q.destroy()
	}
	d.shared.Destroy()

	d.gpuViewHeap.Destroy()
	d.gpuSamplerHeap.Destroy()

	d.viewPool.Destroy()
	d.samplerPool.Destroy()
	d.rtvPool.Destroy()
	d.dsvPool.Destroy()

	d.viewScratch.Destroy()
	d.samplerScratch.Destroy()

	// Surface leaked objects on the debug layer before the device goes.
	d.raw.ReportLiveObjects()
	d.raw.Destroy()
}
