package dx12

import (
	"sync"

	"github.com/gogpu/dx12/d3d12"
)

// Capabilities are the backend-private traits of an adapter that shape
// resource placement decisions.
type Capabilities struct {
	HeterogeneousResourceHeaps bool
	MemoryArchitecture         MemoryArchitecture
}

// openState guards exclusive logical-device ownership of an adapter.
type openState struct {
	mu   sync.Mutex
	open bool
}

// Adapter is one enumerated physical device. Capability queries are safe
// for concurrent use; Open admits at most one live logical device.
type Adapter struct {
	native  d3d12.Adapter
	factory d3d12.Factory

	features    Features
	limits      Limits
	privateCaps Capabilities

	heapProperties *[numHeapProperties]HeapProperties
	memoryProps    MemoryProperties
	formatProps    *formatCache

	isOpen *openState
}

// OpenRequest asks for a number of queues from one family. Priorities
// optionally assigns a scheduling priority per queue; unset entries use
// normal priority. One queue is created per requested priority, so the
// effective count is the larger of Count and len(Priorities). For the
// present family the request only selects the group; the device's single
// present queue is used regardless of the counts given.
type OpenRequest struct {
	Family     QueueFamily
	Count      int
	Priorities []d3d12.QueuePriority
}

// queueCount is the number of queues the request asks for.
func (r OpenRequest) queueCount() int {
	if len(r.Priorities) > r.Count {
		return len(r.Priorities)
	}
	return r.Count
}

// Open creates a logical device with the requested queues. At most one
// logical device may be open per adapter at a time; a second Open fails
// with ErrTooManyObjects until the first device is destroyed. Requesting
// features the adapter does not advertise fails with ErrMissingFeature.
func (a *Adapter) Open(requests []OpenRequest, requested Features) (*Device, error) {
	if !a.isOpen.mu.TryLock() {
		return nil, ErrTooManyObjects
	}
	defer a.isOpen.mu.Unlock()
	if a.isOpen.open {
		return nil, ErrTooManyObjects
	}

	if !a.features.Contains(requested) {
		slogger().Error("dx12: open requested unsupported features",
			"requested", uint64(requested), "supported", uint64(a.features))
		return nil, ErrMissingFeature
	}

	raw, err := a.factory.CreateDevice(a.native, d3d12.FeatureLevel11_0)
	if err != nil {
		slogger().Error("dx12: device creation failed", "error", err)
		return nil, ErrDeviceCreationFailed
	}

	device, err := newDevice(raw, a.isOpen)
	if err != nil {
		raw.Destroy()
		return nil, err
	}

	// The present queue backs swapchain creation and must exist exactly
	// once, whether or not the present family was requested.
	device.presentQueue, err = device.appendQueue(d3d12.CommandListTypeDirect, d3d12.QueuePriorityNormal)
	if err != nil {
		slogger().Error("dx12: present queue creation failed", "error", err)
		device.releaseResources()
		return nil, ErrDeviceCreationFailed
	}

	groups := make([]QueueGroup, 0, len(requests))
	for _, req := range requests {
		group := QueueGroup{Family: req.Family.ID()}
		if _, ok := req.Family.(PresentFamily); ok {
			// The present family always resolves to the one present queue;
			// requested counts and priorities do not apply.
			group.Queues = []*CommandQueue{device.presentQueue}
			groups = append(groups, group)
			continue
		}
		listType := nativeListType(req.Family)
		for i := 0; i < req.queueCount(); i++ {
			priority := d3d12.QueuePriorityNormal
			if i < len(req.Priorities) {
				priority = req.Priorities[i]
			}
			queue, err := device.appendQueue(listType, priority)
			if err != nil {
				// A failed queue is skipped; the group reports what was
				// actually created.
				slogger().Warn("dx12: queue creation failed",
					"family", req.Family.ID(), "index", i, "error", err)
				continue
			}
			group.Queues = append(group.Queues, queue)
		}
		groups = append(groups, group)
	}
	device.groups = groups

	a.isOpen.open = true
	return device, nil
}

// Features returns the feature set the adapter advertises.
func (a *Adapter) Features() Features {
	return a.features
}

// Limits returns the adapter's limit report.
func (a *Adapter) Limits() Limits {
	return a.limits
}

// Capabilities returns the backend-private capability traits.
func (a *Adapter) Capabilities() Capabilities {
	return a.privateCaps
}

// MemoryProperties returns the synthesized memory model.
func (a *Adapter) MemoryProperties() MemoryProperties {
	return a.memoryProps
}

// HeapProperties returns the native heap configuration table:
// DEFAULT, UPLOAD, READBACK.
func (a *Adapter) HeapProperties() *[numHeapProperties]HeapProperties {
	return a.heapProperties
}

// FormatProperties returns the capability report for a format, from the
// memoized per-format cache. A nil format resolves to the default entry.
func (a *Adapter) FormatProperties(format *Format) FormatProperties {
	if format == nil {
		return a.formatProps.get(FormatUndefined)
	}
	return a.formatProps.get(*format)
}

// ImageFormatProperties reports the creation limits for images of the
// given format, dimensionality and usage, or ok=false when the combination
// is unsupported.
//
// Optimal-tiling 3D images and linear 1D images are accepted: the API
// supports both, even though layer limits only exist for 1D and 2D kinds.
func (a *Adapter) ImageFormatProperties(format Format, dimensions uint8, tiling Tiling, usage Usage, view ViewCapabilities) (ImageFormatProperties, bool) {
	if _, ok := nativeFormat(format); !ok {
		return ImageFormatProperties{}, false
	}
	props := a.formatProps.get(format)

	var features ImageFeatures
	switch tiling {
	case TilingOptimal:
		features = props.OptimalTiling
	case TilingLinear:
		features = props.LinearTiling
	}

	var supported Usage
	if features.Contains(ImageFeatureBlitSrc) {
		supported |= UsageTransferSrc
	}
	if features.Contains(ImageFeatureBlitDst) {
		supported |= UsageTransferDst
	}
	if features.Contains(ImageFeatureSampled) {
		supported |= UsageSampled
	}
	if features.Contains(ImageFeatureStorage) {
		supported |= UsageStorage
	}
	if features.Contains(ImageFeatureColorAttachment) {
		supported |= UsageColorAttachment
	}
	if features.Contains(ImageFeatureDepthStencilAttachment) {
		supported |= UsageDepthStencilAttachment
	}
	if !supported.Contains(usage) {
		return ImageFormatProperties{}, false
	}

	out := ImageFormatProperties{
		MaxResourceSize: d3d12.ReqResourceSizeMegabytesATerm << 20,
	}

	switch tiling {
	case TilingOptimal:
		out.MaxLevels = d3d12.ReqMipLevels
		out.SampleCountMask = 0x1
		switch dimensions {
		case 1:
			out.MaxExtent = Extent{Width: d3d12.ReqTexture1DUDimension, Height: 1, Depth: 1}
			out.MaxLayers = d3d12.ReqTexture1DArrayAxisDimension
		case 2:
			out.MaxExtent = Extent{
				Width:  d3d12.ReqTexture2DUOrVDimension,
				Height: d3d12.ReqTexture2DUOrVDimension,
				Depth:  1,
			}
			out.MaxLayers = d3d12.ReqTexture2DArrayAxisDimension
			if view&ViewCapabilityCube == 0 &&
				usage&(UsageColorAttachment|UsageDepthStencilAttachment) != 0 {
				// TODO: derive from the per-format multisample quality query.
				out.SampleCountMask = 0x3F
			}
		case 3:
			out.MaxExtent = Extent{
				Width:  d3d12.ReqTexture3DUVOrWDimension,
				Height: d3d12.ReqTexture3DUVOrWDimension,
				Depth:  d3d12.ReqTexture3DUVOrWDimension,
			}
			out.MaxLayers = 1
		default:
			return ImageFormatProperties{}, false
		}
	case TilingLinear:
		// Linear images are restricted to a single 1D or 2D subresource.
		out.MaxLevels = 1
		out.MaxLayers = 1
		out.SampleCountMask = 0x1
		switch dimensions {
		case 1:
			out.MaxExtent = Extent{Width: d3d12.ReqTexture1DUDimension, Height: 1, Depth: 1}
		case 2:
			out.MaxExtent = Extent{
				Width:  d3d12.ReqTexture2DUOrVDimension,
				Height: d3d12.ReqTexture2DUOrVDimension,
				Depth:  1,
			}
		default:
			return ImageFormatProperties{}, false
		}
	default:
		return ImageFormatProperties{}, false
	}

	return out, true
}

// Destroy releases the probe device held by the format capability cache.
// The native adapter handle is owned by the factory and stays valid. The
// adapter must not be used afterwards; any open logical device keeps its
// own references and is unaffected.
func (a *Adapter) Destroy() {
	a.formatProps.destroy()
}
