package dx12

import (
	"sync"

	"github.com/gogpu/dx12/d3d12"
	types "github.com/gogpu/gputypes"
)

// Format identifies a vendor-neutral pixel format. The zero value is
// FormatUndefined, the default entry of the capability cache.
type Format uint32

const (
	FormatUndefined Format = iota
	FormatR8Unorm
	FormatR8Uint
	FormatR8Sint
	FormatRg8Unorm
	FormatR16Uint
	FormatR16Float
	FormatRg16Float
	FormatRgba8Unorm
	FormatRgba8Srgb
	FormatBgra8Unorm
	FormatBgra8Srgb
	FormatR32Uint
	FormatR32Sint
	FormatR32Float
	FormatRg32Float
	FormatRgb32Float
	FormatRgba16Float
	FormatRgba32Float
	FormatD16Unorm
	FormatD24UnormS8Uint
	FormatD32Float
	FormatBc1Unorm
	FormatBc1Srgb
	FormatBc2Unorm
	FormatBc3Unorm
	FormatBc4Unorm
	FormatBc5Unorm
	FormatBc6hUfloat
	FormatBc7Unorm

	numFormats
)

// NumFormats is the number of known formats, including FormatUndefined.
const NumFormats = int(numFormats)

// nativeFormats maps Format to the native format enumeration.
// FormatUndefined maps to the native unknown format and is filtered out
// before any native query.
var nativeFormats = [numFormats]d3d12.Format{
	FormatUndefined:      d3d12.FormatUnknown,
	FormatR8Unorm:        d3d12.FormatR8Unorm,
	FormatR8Uint:         d3d12.FormatR8Uint,
	FormatR8Sint:         d3d12.FormatR8Sint,
	FormatRg8Unorm:       d3d12.FormatR8G8Unorm,
	FormatR16Uint:        d3d12.FormatR16Uint,
	FormatR16Float:       d3d12.FormatR16Float,
	FormatRg16Float:      d3d12.FormatR16G16Float,
	FormatRgba8Unorm:     d3d12.FormatR8G8B8A8Unorm,
	FormatRgba8Srgb:      d3d12.FormatR8G8B8A8UnormSrgb,
	FormatBgra8Unorm:     d3d12.FormatB8G8R8A8Unorm,
	FormatBgra8Srgb:      d3d12.FormatB8G8R8A8UnormSrgb,
	FormatR32Uint:        d3d12.FormatR32Uint,
	FormatR32Sint:        d3d12.FormatR32Sint,
	FormatR32Float:       d3d12.FormatR32Float,
	FormatRg32Float:      d3d12.FormatR32G32Float,
	FormatRgb32Float:     d3d12.FormatR32G32B32Float,
	FormatRgba16Float:    d3d12.FormatR16G16B16A16Float,
	FormatRgba32Float:    d3d12.FormatR32G32B32A32Float,
	FormatD16Unorm:       d3d12.FormatD16Unorm,
	FormatD24UnormS8Uint: d3d12.FormatD24UnormS8Uint,
	FormatD32Float:       d3d12.FormatD32Float,
	FormatBc1Unorm:       d3d12.FormatBC1Unorm,
	FormatBc1Srgb:        d3d12.FormatBC1UnormSrgb,
	FormatBc2Unorm:       d3d12.FormatBC2Unorm,
	FormatBc3Unorm:       d3d12.FormatBC3Unorm,
	FormatBc4Unorm:       d3d12.FormatBC4Unorm,
	FormatBc5Unorm:       d3d12.FormatBC5Unorm,
	FormatBc6hUfloat:     d3d12.FormatBC6HUfloat,
	FormatBc7Unorm:       d3d12.FormatBC7Unorm,
}

// nativeFormat maps a format to its native equivalent. ok is false for
// FormatUndefined and out-of-range values.
func nativeFormat(f Format) (d3d12.Format, bool) {
	if f == FormatUndefined || f >= numFormats {
		return d3d12.FormatUnknown, false
	}
	return nativeFormats[f], true
}

// isCompressed reports whether a format is block compressed. Compressed
// formats are never eligible for linear tiling.
func isCompressed(f Format) bool {
	switch f {
	case FormatBc1Unorm, FormatBc1Srgb, FormatBc2Unorm, FormatBc3Unorm,
		FormatBc4Unorm, FormatBc5Unorm, FormatBc6hUfloat, FormatBc7Unorm:
		return true
	default:
		return false
	}
}

// FormatFromTexture converts a wgpu texture format to a backend Format.
// Unsupported formats map to FormatUndefined.
func FormatFromTexture(format types.TextureFormat) Format {
	switch format {
	case types.TextureFormatR8Unorm:
		return FormatR8Unorm
	case types.TextureFormatRGBA8Unorm:
		return FormatRgba8Unorm
	case types.TextureFormatRGBA8UnormSrgb:
		return FormatRgba8Srgb
	case types.TextureFormatBGRA8Unorm:
		return FormatBgra8Unorm
	case types.TextureFormatBGRA8UnormSrgb:
		return FormatBgra8Srgb
	case types.TextureFormatR32Float:
		return FormatR32Float
	case types.TextureFormatRG32Float:
		return FormatRg32Float
	case types.TextureFormatRGBA32Float:
		return FormatRgba32Float
	default:
		return FormatUndefined
	}
}

// ImageFeatures are per-format image capability bits.
type ImageFeatures uint32

const (
	ImageFeatureSampled ImageFeatures = 1 << iota
	ImageFeatureSampledLinear
	ImageFeatureStorage
	ImageFeatureStorageAtomic
	ImageFeatureColorAttachment
	ImageFeatureColorAttachmentBlend
	ImageFeatureDepthStencilAttachment
	ImageFeatureBlitSrc
	ImageFeatureBlitDst
)

// Contains reports whether every bit of other is set in f.
func (f ImageFeatures) Contains(other ImageFeatures) bool {
	return f&other == other
}

// BufferFeatures are per-format buffer capability bits.
type BufferFeatures uint32

const (
	BufferFeatureVertex BufferFeatures = 1 << iota
	BufferFeatureUniformTexel
	BufferFeatureStorageTexel
	BufferFeatureStorageTexelAtomic
)

// Contains reports whether every bit of other is set in f.
func (f BufferFeatures) Contains(other BufferFeatures) bool {
	return f&other == other
}

// FormatProperties is the derived capability report of one format.
type FormatProperties struct {
	LinearTiling  ImageFeatures
	OptimalTiling ImageFeatures
	Buffer        BufferFeatures
}

// formatSlot is one independently lockable memoization slot.
type formatSlot struct {
	mu    sync.Mutex
	valid bool
	props FormatProperties
}

// formatCache lazily computes format properties from the native device.
// One slot per known format; slot 0 is pre-populated with the default
// "unknown format" entry.
//
// Each slot's lock guards only whether the slot has been computed.
// Concurrent queries for different formats never contend; concurrent
// queries for the same format may recompute redundantly, which is harmless
// because the native query is pure for a given format.
type formatCache struct {
	device d3d12.Device
	slots  [numFormats]formatSlot
}

func newFormatCache(device d3d12.Device) *formatCache {
	c := &formatCache{device: device}
	c.slots[FormatUndefined].valid = true
	return c
}

// get returns the cached properties for a format, computing them on first
// use. Out-of-range formats resolve to the default entry.
func (c *formatCache) get(f Format) FormatProperties {
	if f >= numFormats {
		f = FormatUndefined
	}
	slot := &c.slots[f]

	slot.mu.Lock()
	if slot.valid {
		props := slot.props
		slot.mu.Unlock()
		return props
	}
	slot.mu.Unlock()

	props := c.query(f)

	slot.mu.Lock()
	slot.props = props
	slot.valid = true
	slot.mu.Unlock()
	return props
}

// query derives the capability bits of one format from the native
// support-flag blocks.
func (c *formatCache) query(f Format) FormatProperties {
	var props FormatProperties

	native, ok := nativeFormat(f)
	if !ok {
		return props
	}
	support, err := c.device.FormatSupport(native)
	if err != nil {
		slogger().Warn("dx12: format support query failed", "format", uint32(f), "error", err)
		return props
	}

	canBuffer := support.Support1&d3d12.FormatSupport1Buffer != 0
	canImage := support.Support1&(d3d12.FormatSupport1Texture1D|
		d3d12.FormatSupport1Texture2D|
		d3d12.FormatSupport1Texture3D|
		d3d12.FormatSupport1TextureCube) != 0
	canLinear := canImage && !isCompressed(f)

	if canImage {
		props.OptimalTiling |= ImageFeatureSampled | ImageFeatureBlitSrc
	}
	if canLinear {
		props.LinearTiling |= ImageFeatureSampled | ImageFeatureBlitSrc
	}
	if support.Support1&d3d12.FormatSupport1IAVertexBuffer != 0 {
		props.Buffer |= BufferFeatureVertex
	}
	if support.Support1&d3d12.FormatSupport1ShaderSample != 0 {
		props.OptimalTiling |= ImageFeatureSampledLinear
	}
	if support.Support1&d3d12.FormatSupport1RenderTarget != 0 {
		props.OptimalTiling |= ImageFeatureColorAttachment | ImageFeatureBlitDst
		if canLinear {
			props.LinearTiling |= ImageFeatureColorAttachment | ImageFeatureBlitDst
		}
	}
	if support.Support1&d3d12.FormatSupport1Blendable != 0 {
		props.OptimalTiling |= ImageFeatureColorAttachmentBlend
	}
	if support.Support1&d3d12.FormatSupport1DepthStencil != 0 {
		props.OptimalTiling |= ImageFeatureDepthStencilAttachment
	}
	if support.Support1&d3d12.FormatSupport1ShaderLoad != 0 {
		if canBuffer {
			props.Buffer |= BufferFeatureUniformTexel
		}
	}
	if support.Support2&d3d12.FormatSupport2UAVAtomicAdd != 0 {
		if canBuffer {
			props.Buffer |= BufferFeatureStorageTexelAtomic
		}
		if canImage {
			props.OptimalTiling |= ImageFeatureStorageAtomic
		}
	}
	if support.Support2&d3d12.FormatSupport2UAVTypedStore != 0 {
		if canBuffer {
			props.Buffer |= BufferFeatureStorageTexel
		}
		if canImage {
			props.OptimalTiling |= ImageFeatureStorage
		}
	}
	return props
}

// destroy releases the device the cache queries against.
func (c *formatCache) destroy() {
	c.device.Destroy()
}
