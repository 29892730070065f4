package dx12

// Features is the advertised and requestable feature bitset of an adapter.
type Features uint64

const (
	FeatureRobustBufferAccess Features = 1 << iota
	FeatureImageCubeArray
	FeatureGeometryShader
	FeatureTessellationShader
	FeatureNonFillPolygonMode
	FeatureDepthBounds
	FeatureMultiDrawIndirect
	FeatureFormatBC
	FeatureInstanceRate
	FeatureSamplerMipLODBias
	FeatureSamplerAnisotropy
)

// Contains reports whether every bit of other is set in f.
func (f Features) Contains(other Features) bool {
	return f&other == other
}

// Limits reports the conservative intersection of native device limits.
// Every numeric value encodes a real hardware or API constraint.
type Limits struct {
	MaxImage1DSize   uint32
	MaxImage2DSize   uint32
	MaxImage3DSize   uint32
	MaxImageCubeSize uint32

	MaxImageArrayLayers uint32

	MaxViewports          uint32
	MaxViewportDimensions [2]uint32

	MaxFramebufferExtent Extent

	MaxComputeWorkGroupCount [3]uint32
	MaxComputeWorkGroupSize  [3]uint32

	MaxVertexInputAttributes      uint32
	MaxVertexInputBindings        uint32
	MaxVertexInputAttributeOffset uint32
	MaxVertexInputBindingStride   uint32
	MaxVertexOutputComponents     uint32

	MaxColorAttachments  uint32
	MaxSamplerAnisotropy float32

	MinTexelBufferOffsetAlignment   uint64
	MinUniformBufferOffsetAlignment uint64
	MinStorageBufferOffsetAlignment uint64

	FramebufferColorSampleCounts   uint32
	FramebufferDepthSampleCounts   uint32
	FramebufferStencilSampleCounts uint32

	BufferImageGranularity uint64
	NonCoherentAtomSize    uint64

	OptimalBufferCopyOffsetAlignment uint64
	OptimalBufferCopyPitchAlignment  uint64

	MinVertexInputBindingStrideAlignment uint64
}
