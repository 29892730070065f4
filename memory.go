package dx12

import "github.com/gogpu/dx12/d3d12"

// MemoryPropertyFlags describe a memory type to allocation requests.
type MemoryPropertyFlags uint32

const (
	MemoryDeviceLocal MemoryPropertyFlags = 1 << iota
	MemoryHostVisible
	MemoryHostCoherent
	MemoryHostCached
)

// Contains reports whether every bit of other is set in f.
func (f MemoryPropertyFlags) Contains(other MemoryPropertyFlags) bool {
	return f&other == other
}

// MemoryType is one allocatable memory type. Its index within
// MemoryProperties.Types is the handle used by allocation requests and
// stays stable for the adapter's lifetime.
type MemoryType struct {
	Properties MemoryPropertyFlags
	HeapIndex  uint32
}

// MemoryProperties is the synthesized portable memory model of an adapter.
// Heaps carries live budgets in bytes: a local heap always, plus a
// non-local heap on NUMA architectures.
type MemoryProperties struct {
	Types []MemoryType
	Heaps []uint64
}

// MemoryArchitecture classifies how CPU and GPU share memory pools.
type MemoryArchitecture uint8

const (
	// MemoryArchitectureNUMA has separate video and system memory pools.
	MemoryArchitectureNUMA MemoryArchitecture = iota
	// MemoryArchitectureUMA shares one pool without CPU cache coherence.
	MemoryArchitectureUMA
	// MemoryArchitectureCacheCoherentUMA shares one CPU-cache-coherent pool.
	MemoryArchitectureCacheCoherentUMA
)

// String returns the architecture name.
func (a MemoryArchitecture) String() string {
	switch a {
	case MemoryArchitectureNUMA:
		return "NUMA"
	case MemoryArchitectureUMA:
		return "UMA"
	case MemoryArchitectureCacheCoherentUMA:
		return "CacheCoherentUMA"
	default:
		return "unknown"
	}
}

// HeapProperties is the native heap configuration of one heap role.
type HeapProperties struct {
	PageProperty d3d12.CPUPageProperty
	MemoryPool   d3d12.MemoryPool
}

// The three heap roles: DEFAULT, UPLOAD, READBACK.
const numHeapProperties = 3

// Static heap-property tables, one per memory architecture. Pure immutable
// configuration selected by the architecture classification at enumeration.
var (
	heapsNUMA = [numHeapProperties]HeapProperties{
		// DEFAULT
		{PageProperty: d3d12.CPUPagePropertyNotAvailable, MemoryPool: d3d12.MemoryPoolL1},
		// UPLOAD
		{PageProperty: d3d12.CPUPagePropertyWriteCombine, MemoryPool: d3d12.MemoryPoolL0},
		// READBACK
		{PageProperty: d3d12.CPUPagePropertyWriteBack, MemoryPool: d3d12.MemoryPoolL0},
	}

	heapsUMA = [numHeapProperties]HeapProperties{
		// DEFAULT
		{PageProperty: d3d12.CPUPagePropertyNotAvailable, MemoryPool: d3d12.MemoryPoolL0},
		// UPLOAD
		{PageProperty: d3d12.CPUPagePropertyWriteCombine, MemoryPool: d3d12.MemoryPoolL0},
		// READBACK
		{PageProperty: d3d12.CPUPagePropertyWriteBack, MemoryPool: d3d12.MemoryPoolL0},
	}

	heapsCCUMA = [numHeapProperties]HeapProperties{
		// DEFAULT
		{PageProperty: d3d12.CPUPagePropertyNotAvailable, MemoryPool: d3d12.MemoryPoolL0},
		// UPLOAD
		{PageProperty: d3d12.CPUPagePropertyWriteBack, MemoryPool: d3d12.MemoryPoolL0},
		// READBACK
		{PageProperty: d3d12.CPUPagePropertyWriteBack, MemoryPool: d3d12.MemoryPoolL0},
	}
)

// heapPropertiesFor selects the static table matching an architecture.
func heapPropertiesFor(arch MemoryArchitecture) *[numHeapProperties]HeapProperties {
	switch arch {
	case MemoryArchitectureUMA:
		return &heapsUMA
	case MemoryArchitectureCacheCoherentUMA:
		return &heapsCCUMA
	default:
		return &heapsNUMA
	}
}

// Memory types are grouped according to the supported resources. Grouping
// circumvents the limitations of heap tier 1 devices: tier 1 exposes
// buffer-only, image-only and target-only groups, tier 2 and higher only
// the universal group.
type memoryGroup int

const (
	groupUniversal memoryGroup = iota
	groupBufferOnly
	groupImageOnly
	groupTargetOnly

	numMemoryGroups
)

// Memory type handles on tier 1 hardware encode the usage group:
// MemoryTypeMask selects one base group, the shifts denote the group.
//
//	 0.. 2: reserved for future use
//	 3.. 5: buffers
//	 6.. 8: images
//	 9..11: targets
const (
	MemoryTypeMask        = 0b111
	MemoryTypeBufferShift = numHeapProperties * int(groupBufferOnly)
	MemoryTypeImageShift  = numHeapProperties * int(groupImageOnly)
	MemoryTypeTargetShift = numHeapProperties * int(groupTargetOnly)
)

// baseMemoryTypes returns the three architecture-appropriate base types:
// DEFAULT, UPLOAD, READBACK.
func baseMemoryTypes(arch MemoryArchitecture) [numHeapProperties]MemoryType {
	switch arch {
	case MemoryArchitectureNUMA:
		return [numHeapProperties]MemoryType{
			// DEFAULT
			{Properties: MemoryDeviceLocal, HeapIndex: 0},
			// UPLOAD
			{Properties: MemoryHostVisible | MemoryHostCoherent, HeapIndex: 1},
			// READBACK
			{Properties: MemoryHostVisible | MemoryHostCoherent | MemoryHostCached, HeapIndex: 1},
		}
	case MemoryArchitectureUMA:
		return [numHeapProperties]MemoryType{
			// DEFAULT
			{Properties: MemoryDeviceLocal, HeapIndex: 0},
			// UPLOAD
			{Properties: MemoryDeviceLocal | MemoryHostVisible | MemoryHostCoherent, HeapIndex: 0},
			// READBACK
			{Properties: MemoryDeviceLocal | MemoryHostVisible | MemoryHostCoherent | MemoryHostCached, HeapIndex: 0},
		}
	default: // CacheCoherentUMA
		return [numHeapProperties]MemoryType{
			// DEFAULT
			{Properties: MemoryDeviceLocal, HeapIndex: 0},
			// UPLOAD
			{Properties: MemoryDeviceLocal | MemoryHostVisible | MemoryHostCoherent | MemoryHostCached, HeapIndex: 0},
			// READBACK
			{Properties: MemoryDeviceLocal | MemoryHostVisible | MemoryHostCoherent | MemoryHostCached, HeapIndex: 0},
		}
	}
}

// synthesizeMemoryTypes builds the ordered memory-type sequence for an
// adapter. Heterogeneous (tier 2+) hardware exposes the three base types
// directly. Tier 1 hardware replicates them across the four usage groups;
// image and target groups lose host visibility because no corresponding
// buffer can be created for mapping.
func synthesizeMemoryTypes(arch MemoryArchitecture, heterogeneousHeaps bool) []MemoryType {
	base := baseMemoryTypes(arch)
	if heterogeneousHeaps {
		return base[:]
	}

	types := make([]MemoryType, 0, int(numMemoryGroups)*numHeapProperties)
	for group := groupUniversal; group < numMemoryGroups; group++ {
		for _, ty := range base {
			if group == groupImageOnly || group == groupTargetOnly {
				ty.Properties &^= MemoryHostVisible
				// Coherent and cached only make sense on host-visible types.
				ty.Properties &^= MemoryHostCoherent
				ty.Properties &^= MemoryHostCached
			}
			types = append(types, ty)
		}
	}
	return types
}
