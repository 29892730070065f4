package dx12

// Extent is a 3D size in texels.
type Extent struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// Tiling selects the texel layout of an image.
type Tiling uint8

const (
	TilingOptimal Tiling = iota
	TilingLinear
)

// Usage is the set of ways an image may be used.
type Usage uint32

const (
	UsageTransferSrc Usage = 1 << iota
	UsageTransferDst
	UsageSampled
	UsageStorage
	UsageColorAttachment
	UsageDepthStencilAttachment
)

// Contains reports whether every bit of other is set in u.
func (u Usage) Contains(other Usage) bool {
	return u&other == other
}

// ViewCapabilities are extra view kinds an image must support.
type ViewCapabilities uint32

const (
	// ViewCapabilityCube requires cube-compatible views.
	ViewCapabilityCube ViewCapabilities = 1 << iota
)

// ImageFormatProperties reports the limits of one (format, kind, tiling,
// usage) combination.
type ImageFormatProperties struct {
	MaxExtent       Extent
	MaxLevels       uint32
	MaxLayers       uint32
	SampleCountMask uint32
	MaxResourceSize uint64
}
