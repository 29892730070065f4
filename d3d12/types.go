package d3d12

// FeatureLevel selects the minimum API capability set for device creation.
type FeatureLevel uint32

const (
	FeatureLevel11_0 FeatureLevel = 0xb000
	FeatureLevel11_1 FeatureLevel = 0xb100
	FeatureLevel12_0 FeatureLevel = 0xc000
	FeatureLevel12_1 FeatureLevel = 0xc100
)

// GPUPreference orders preference-based adapter enumeration.
type GPUPreference uint32

const (
	GPUPreferenceUnspecified GPUPreference = iota
	GPUPreferenceMinimumPower
	GPUPreferenceHighPerformance
)

// AdapterFlags qualifies an adapter description.
type AdapterFlags uint32

const (
	// AdapterFlagSoftware marks a software (WARP-style) rasterizer.
	AdapterFlagSoftware AdapterFlags = 0x2
)

// AdapterDesc identifies an adapter.
type AdapterDesc struct {
	Description string
	VendorID    uint32
	DeviceID    uint32
	Flags       AdapterFlags
}

// MemorySegmentGroup selects which memory segment a budget query targets.
type MemorySegmentGroup uint32

const (
	MemorySegmentGroupLocal MemorySegmentGroup = iota
	MemorySegmentGroupNonLocal
)

// VideoMemoryInfo is a point-in-time budget report for one segment group.
type VideoMemoryInfo struct {
	Budget       uint64
	CurrentUsage uint64
}

// ResourceHeapTier describes whether heaps may mix resource kinds.
type ResourceHeapTier uint32

const (
	// ResourceHeapTier1 requires kind-segregated heaps: buffers, images and
	// render/depth targets cannot share a memory heap.
	ResourceHeapTier1 ResourceHeapTier = 1
	// ResourceHeapTier2 allows all resource kinds in a single heap.
	ResourceHeapTier2 ResourceHeapTier = 2
)

// FeatureOptions is the general options capability block.
type FeatureOptions struct {
	ResourceHeapTier ResourceHeapTier
}

// FeatureArchitecture is the memory architecture capability block.
type FeatureArchitecture struct {
	UMA              bool
	CacheCoherentUMA bool
}

// CPUPageProperty describes the CPU paging behavior of a heap.
type CPUPageProperty uint32

const (
	CPUPagePropertyUnknown CPUPageProperty = iota
	CPUPagePropertyNotAvailable
	CPUPagePropertyWriteCombine
	CPUPagePropertyWriteBack
)

// MemoryPool selects the physical memory pool backing a heap. On NUMA
// architectures L0 is system memory and L1 is video memory; UMA exposes
// only L0.
type MemoryPool uint32

const (
	MemoryPoolUnknown MemoryPool = iota
	MemoryPoolL0
	MemoryPoolL1
)

// CommandListType selects the engine class of a queue or list.
type CommandListType uint32

const (
	CommandListTypeDirect CommandListType = iota
	CommandListTypeBundle
	CommandListTypeCompute
	CommandListTypeCopy
)

// QueuePriority sets the scheduling priority of a command queue.
type QueuePriority uint32

const (
	QueuePriorityNormal QueuePriority = iota
	QueuePriorityHigh
	QueuePriorityGlobalRealtime
)

// DescriptorHeapType selects the descriptor kind a heap stores.
type DescriptorHeapType uint32

const (
	DescriptorHeapTypeCbvSrvUav DescriptorHeapType = iota
	DescriptorHeapTypeSampler
	DescriptorHeapTypeRtv
	DescriptorHeapTypeDsv
)

// DescriptorHeapDesc configures descriptor heap creation.
type DescriptorHeapDesc struct {
	Type          DescriptorHeapType
	Count         uint32
	ShaderVisible bool
}

// IndirectArgument selects the argument layout of a command signature.
type IndirectArgument uint32

const (
	IndirectArgumentDraw IndirectArgument = iota
	IndirectArgumentDrawIndexed
	IndirectArgumentDispatch
)

// Argument strides in bytes for the indirect command layouts.
const (
	DrawArgumentsSize        = 16
	DrawIndexedArgumentsSize = 20
	DispatchArgumentsSize    = 12
)

// FormatSupport1 is the first format support flag block.
type FormatSupport1 uint32

const (
	FormatSupport1Buffer         FormatSupport1 = 0x1
	FormatSupport1IAVertexBuffer FormatSupport1 = 0x2
	FormatSupport1IAIndexBuffer  FormatSupport1 = 0x4
	FormatSupport1Texture1D      FormatSupport1 = 0x10
	FormatSupport1Texture2D      FormatSupport1 = 0x20
	FormatSupport1Texture3D      FormatSupport1 = 0x40
	FormatSupport1TextureCube    FormatSupport1 = 0x80
	FormatSupport1ShaderLoad     FormatSupport1 = 0x100
	FormatSupport1ShaderSample   FormatSupport1 = 0x200
	FormatSupport1Mip            FormatSupport1 = 0x1000
	FormatSupport1RenderTarget   FormatSupport1 = 0x4000
	FormatSupport1Blendable      FormatSupport1 = 0x8000
	FormatSupport1DepthStencil   FormatSupport1 = 0x10000
)

// FormatSupport2 is the second format support flag block.
type FormatSupport2 uint32

const (
	FormatSupport2UAVAtomicAdd  FormatSupport2 = 0x1
	FormatSupport2UAVTypedLoad  FormatSupport2 = 0x40
	FormatSupport2UAVTypedStore FormatSupport2 = 0x80
)

// FormatSupport is the per-format capability report.
type FormatSupport struct {
	Support1 FormatSupport1
	Support2 FormatSupport2
}

// Hardware and API limit constants. These encode real constraints of the
// native API and must be preserved verbatim.
const (
	ReqTexture1DUDimension          = 16384
	ReqTexture2DUOrVDimension       = 16384
	ReqTexture3DUVOrWDimension      = 2048
	ReqTextureCubeDimension         = 16384
	ReqTexture1DArrayAxisDimension  = 2048
	ReqTexture2DArrayAxisDimension  = 2048
	ReqMipLevels                    = 15
	ReqMultiElementStructSizeBytes  = 2048
	ReqResourceSizeMegabytesATerm   = 128
	ViewportAndScissorObjectCount   = 16
	ViewportBoundsMax               = 32767
	SimultaneousRenderTargetCount   = 8
	IAVertexInputResourceSlotCount  = 32
	CSThreadGroupMaxX               = 65535
	CSThreadGroupMaxY               = 65535
	CSThreadGroupMaxZ               = 65535
	CSThreadGroupMaxThreadsPerGroup = 1024
	TextureDataPlacementAlignment   = 512
	TextureDataPitchAlignment       = 256
	ConstantBufferDataAlignment     = 256
)
