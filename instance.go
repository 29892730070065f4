package dx12

import (
	"errors"

	"github.com/gogpu/dx12/d3d12"
	"github.com/gogpu/gputypes"
)

// AdapterInfo identifies one enumerated adapter.
type AdapterInfo struct {
	Name       string
	Vendor     uint32
	Device     uint32
	DeviceType gputypes.DeviceType
}

// ExposedAdapter pairs an adapter with its identification and queue
// family table.
type ExposedAdapter struct {
	Info          AdapterInfo
	Adapter       *Adapter
	QueueFamilies []QueueFamily
}

// Instance owns the native factory. It is process scoped: created once,
// destroyed at shutdown. Safe for concurrent use.
type Instance struct {
	factory d3d12.Factory
}

// InstanceDescriptor configures instance creation.
type InstanceDescriptor struct {
	Factory d3d12.Factory

	// DisableDebugLayer skips the validation layer even when the factory
	// supports it.
	DisableDebugLayer bool
}

// CreateInstance wraps a native factory. When the factory supports the
// debug controller interface, the validation layer is enabled best effort;
// failures are logged and never propagated.
func CreateInstance(desc InstanceDescriptor) *Instance {
	if dbg, ok := desc.Factory.(d3d12.DebugController); ok && !desc.DisableDebugLayer {
		if err := dbg.EnableDebugLayer(); err != nil {
			slogger().Warn("dx12: debug layer unavailable", "error", err)
		}
	}
	return &Instance{factory: desc.Factory}
}

// NewInstance is CreateInstance with default options.
func NewInstance(factory d3d12.Factory) *Instance {
	return CreateInstance(InstanceDescriptor{Factory: factory})
}

// Destroy releases the factory.
func (inst *Instance) Destroy() {
	inst.factory.Destroy()
}

// EnumerateAdapters probes every adapter the platform exposes and returns
// the ones that support the API, in high-performance-first order when the
// platform can provide it. Enumeration is best effort: an adapter that
// fails device creation or a mandatory capability query is excluded whole,
// never returned partially populated.
func (inst *Instance) EnumerateAdapters() []ExposedAdapter {
	useHighPerformance := inst.factory.SupportsGPUPreference()

	var adapters []ExposedAdapter
	for index := uint32(0); ; index++ {
		var (
			native d3d12.Adapter
			err    error
		)
		if useHighPerformance {
			native, err = inst.factory.EnumAdapterByGPUPreference(index, d3d12.GPUPreferenceHighPerformance)
		} else {
			native, err = inst.factory.EnumAdapters(index)
		}
		if errors.Is(err, d3d12.ErrNotFound) {
			break
		}
		if err != nil {
			slogger().Warn("dx12: adapter enumeration stopped", "index", index, "error", err)
			break
		}

		exposed, ok := inst.probeAdapter(native)
		if !ok {
			continue
		}
		adapters = append(adapters, exposed)
	}
	return adapters
}

// probeAdapter builds the capability, memory and limit model of one
// adapter. Returns ok=false when the adapter must be skipped.
func (inst *Instance) probeAdapter(native d3d12.Adapter) (ExposedAdapter, bool) {
	// Check for API support by creating a temporary device at the minimum
	// feature level. The device is kept as the query target of the format
	// capability cache.
	device, err := inst.factory.CreateDevice(native, d3d12.FeatureLevel11_0)
	if err != nil {
		return ExposedAdapter{}, false
	}

	desc := native.Desc()
	deviceType := gputypes.DeviceTypeDiscreteGPU
	if desc.Flags&d3d12.AdapterFlagSoftware != 0 {
		deviceType = gputypes.DeviceTypeVirtualGPU
	}
	info := AdapterInfo{
		Name:       desc.Description,
		Vendor:     desc.VendorID,
		Device:     desc.DeviceID,
		DeviceType: deviceType,
	}

	options, err := device.FeatureOptions()
	if err != nil {
		slogger().Warn("dx12: options query failed, skipping adapter", "adapter", info.Name, "error", err)
		device.Destroy()
		return ExposedAdapter{}, false
	}
	arch, err := device.FeatureArchitecture()
	if err != nil {
		slogger().Warn("dx12: architecture query failed, skipping adapter", "adapter", info.Name, "error", err)
		device.Destroy()
		return ExposedAdapter{}, false
	}

	// The depth-bounds probe is optional: older runtimes reject it, which
	// maps to "unsupported".
	depthBounds, err := device.DepthBoundsTestSupported()
	if err != nil {
		depthBounds = false
	}

	heterogeneousHeaps := options.ResourceHeapTier != d3d12.ResourceHeapTier1

	var memoryArchitecture MemoryArchitecture
	switch {
	case arch.UMA && arch.CacheCoherentUMA:
		memoryArchitecture = MemoryArchitectureCacheCoherentUMA
	case arch.UMA:
		memoryArchitecture = MemoryArchitectureUMA
	default:
		memoryArchitecture = MemoryArchitectureNUMA
	}

	memoryTypes := synthesizeMemoryTypes(memoryArchitecture, heterogeneousHeaps)

	heaps, err := inst.queryMemoryHeaps(native, memoryArchitecture)
	if err != nil {
		slogger().Warn("dx12: memory budget query failed, skipping adapter", "adapter", info.Name, "error", err)
		device.Destroy()
		return ExposedAdapter{}, false
	}

	features := Features(0) |
		FeatureRobustBufferAccess |
		FeatureImageCubeArray |
		FeatureGeometryShader |
		FeatureTessellationShader |
		FeatureNonFillPolygonMode |
		FeatureMultiDrawIndirect |
		FeatureFormatBC |
		FeatureInstanceRate |
		FeatureSamplerMipLODBias |
		FeatureSamplerAnisotropy
	if depthBounds {
		features |= FeatureDepthBounds
	}

	adapter := &Adapter{
		native:   native,
		factory:  inst.factory,
		features: features,
		limits:   adapterLimits(),
		privateCaps: Capabilities{
			HeterogeneousResourceHeaps: heterogeneousHeaps,
			MemoryArchitecture:         memoryArchitecture,
		},
		heapProperties: heapPropertiesFor(memoryArchitecture),
		memoryProps: MemoryProperties{
			Types: memoryTypes,
			Heaps: heaps,
		},
		formatProps: newFormatCache(device),
		isOpen:      &openState{},
	}

	slogger().Info("dx12: adapter enumerated",
		"name", info.Name,
		"architecture", memoryArchitecture.String(),
		"heterogeneousHeaps", heterogeneousHeaps)

	return ExposedAdapter{
		Info:          info,
		Adapter:       adapter,
		QueueFamilies: append([]QueueFamily(nil), QueueFamilies...),
	}, true
}

// queryMemoryHeaps reads the live heap budgets: the local heap always,
// plus the non-local heap on NUMA architectures.
func (inst *Instance) queryMemoryHeaps(native d3d12.Adapter, arch MemoryArchitecture) ([]uint64, error) {
	local, err := native.QueryVideoMemoryInfo(d3d12.MemorySegmentGroupLocal)
	if err != nil {
		return nil, err
	}
	if arch != MemoryArchitectureNUMA {
		return []uint64{local.Budget}, nil
	}
	nonLocal, err := native.QueryVideoMemoryInfo(d3d12.MemorySegmentGroupNonLocal)
	if err != nil {
		return nil, err
	}
	return []uint64{local.Budget, nonLocal.Budget}, nil
}

// adapterLimits assembles the limit report from the API's hard constants.
func adapterLimits() Limits {
	return Limits{
		MaxImage1DSize:   d3d12.ReqTexture1DUDimension,
		MaxImage2DSize:   d3d12.ReqTexture2DUOrVDimension,
		MaxImage3DSize:   d3d12.ReqTexture3DUVOrWDimension,
		MaxImageCubeSize: d3d12.ReqTextureCubeDimension,

		MaxImageArrayLayers: d3d12.ReqTexture2DArrayAxisDimension,

		MaxViewports:          d3d12.ViewportAndScissorObjectCount,
		MaxViewportDimensions: [2]uint32{d3d12.ViewportBoundsMax, d3d12.ViewportBoundsMax},

		MaxFramebufferExtent: Extent{Width: 4096, Height: 4096, Depth: 1},

		MaxComputeWorkGroupCount: [3]uint32{
			d3d12.CSThreadGroupMaxX,
			d3d12.CSThreadGroupMaxY,
			d3d12.CSThreadGroupMaxZ,
		},
		MaxComputeWorkGroupSize: [3]uint32{d3d12.CSThreadGroupMaxThreadsPerGroup, 1, 1},

		MaxVertexInputAttributes:      d3d12.IAVertexInputResourceSlotCount,
		MaxVertexInputBindings:        31,
		MaxVertexInputAttributeOffset: 255,
		MaxVertexInputBindingStride:   d3d12.ReqMultiElementStructSizeBytes,
		MaxVertexOutputComponents:     16,

		MaxColorAttachments:  d3d12.SimultaneousRenderTargetCount,
		MaxSamplerAnisotropy: 16,

		MinTexelBufferOffsetAlignment:   1,
		MinUniformBufferOffsetAlignment: d3d12.ConstantBufferDataAlignment,
		MinStorageBufferOffsetAlignment: 1,

		FramebufferColorSampleCounts:   0b101,
		FramebufferDepthSampleCounts:   0b101,
		FramebufferStencilSampleCounts: 0b101,

		BufferImageGranularity: 1,
		NonCoherentAtomSize:    1,

		OptimalBufferCopyOffsetAlignment: d3d12.TextureDataPlacementAlignment,
		OptimalBufferCopyPitchAlignment:  d3d12.TextureDataPitchAlignment,

		MinVertexInputBindingStrideAlignment: 1,
	}
}
