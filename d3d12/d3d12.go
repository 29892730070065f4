package d3d12

import "errors"

// ErrNotFound is returned by adapter enumeration once the index runs past
// the last adapter exposed by the platform.
var ErrNotFound = errors.New("d3d12: adapter not found")

// CommandList is the opaque, executable representation of a recorded
// command buffer. Command recording is out of scope for this package;
// queues only forward lists to the native API.
type CommandList any

// Factory enumerates adapters and creates devices. It corresponds to the
// DXGI factory object and is owned by the backend instance.
type Factory interface {
	// SupportsGPUPreference reports whether preference-ordered enumeration
	// is available on this platform. When false, callers fall back to
	// EnumAdapters.
	SupportsGPUPreference() bool

	// EnumAdapterByGPUPreference returns the adapter at index in the given
	// preference order. Returns ErrNotFound past the end.
	EnumAdapterByGPUPreference(index uint32, pref GPUPreference) (Adapter, error)

	// EnumAdapters returns the adapter at index in platform-defined order.
	// Returns ErrNotFound past the end.
	EnumAdapters(index uint32) (Adapter, error)

	// CreateDevice creates a device on the adapter at the given minimum
	// feature level. Failure means the adapter does not support the API.
	CreateDevice(adapter Adapter, minLevel FeatureLevel) (Device, error)

	Destroy()
}

// DebugController is optionally implemented by factories that can enable
// the API validation layer. Enabling is best effort; failures are logged
// and never propagated.
type DebugController interface {
	EnableDebugLayer() error
}

// Adapter is one enumerable physical or virtual GPU.
type Adapter interface {
	Desc() AdapterDesc

	// QueryVideoMemoryInfo returns the current, point-in-time budget of a
	// memory segment group. Budgets change at runtime and must not be cached.
	QueryVideoMemoryInfo(group MemorySegmentGroup) (VideoMemoryInfo, error)
}

// Device is the native logical device.
type Device interface {
	CreateCommandQueue(ty CommandListType, priority QueuePriority) (CommandQueue, error)
	CreateFence(initial uint64) (Fence, error)
	CreateDescriptorHeap(desc DescriptorHeapDesc) (DescriptorHeap, error)
	CreateCommandSignature(arg IndirectArgument, stride uint32) (CommandSignature, error)
	CreateComputePipeline(bytecode []byte) (PipelineState, error)

	// DescriptorIncrementSize returns the handle stride for a heap type.
	DescriptorIncrementSize(ty DescriptorHeapType) uint32

	// FeatureOptions and FeatureArchitecture are the mandatory capability
	// blocks; DepthBoundsTest is an optional probe that may fail on older
	// runtimes.
	FeatureOptions() (FeatureOptions, error)
	FeatureArchitecture() (FeatureArchitecture, error)
	DepthBoundsTestSupported() (bool, error)

	// FormatSupport queries the two support-flag blocks for a format.
	FormatSupport(format Format) (FormatSupport, error)

	// ReportLiveObjects asks the debug layer to dump objects still alive.
	// Best effort; a no-op without the debug layer.
	ReportLiveObjects()

	Destroy()
}

// CommandQueue is one native hardware queue.
type CommandQueue interface {
	ExecuteCommandLists(lists []CommandList)

	// Signal enqueues a fence signal that completes after all previously
	// submitted work on this queue.
	Signal(fence Fence, value uint64) error

	Destroy()
}

// Fence is a monotonically increasing synchronization counter.
type Fence interface {
	// Signal sets the completed value from the CPU side.
	Signal(value uint64) error

	// SetEventOnCompletion arms the event to fire once the completed value
	// reaches value. If it already has, the event fires immediately.
	SetEventOnCompletion(event *Event, value uint64) error

	Destroy()
}

// CPUDescriptorHandle and GPUDescriptorHandle address single descriptors
// within a heap.
type (
	CPUDescriptorHandle uint64
	GPUDescriptorHandle uint64
)

// DescriptorHeap is a fixed-capacity table of resource-view descriptors.
type DescriptorHeap interface {
	CPUStart() CPUDescriptorHandle
	GPUStart() GPUDescriptorHandle
	Destroy()
}

// CommandSignature describes the argument layout of indirect draw or
// dispatch commands.
type CommandSignature interface {
	Destroy()
}

// PipelineState is a compiled pipeline object.
type PipelineState interface {
	Destroy()
}
