package dx12

import (
	"testing"

	"github.com/gogpu/dx12/d3d12"
)

func TestSynthesizeMemoryTypesHeterogeneous(t *testing.T) {
	for _, arch := range []MemoryArchitecture{
		MemoryArchitectureNUMA,
		MemoryArchitectureUMA,
		MemoryArchitectureCacheCoherentUMA,
	} {
		t.Run(arch.String(), func(t *testing.T) {
			types := synthesizeMemoryTypes(arch, true)
			if len(types) != numHeapProperties {
				t.Fatalf("got %d types, want %d", len(types), numHeapProperties)
			}

			// DEFAULT is always device-local and nothing else.
			if types[0].Properties != MemoryDeviceLocal {
				t.Errorf("DEFAULT properties = %b, want device-local only", types[0].Properties)
			}
			// UPLOAD and READBACK are host-visible and coherent.
			for i := 1; i < numHeapProperties; i++ {
				if !types[i].Properties.Contains(MemoryHostVisible | MemoryHostCoherent) {
					t.Errorf("type %d properties = %b, want host-visible|coherent", i, types[i].Properties)
				}
			}
			// READBACK is additionally cached.
			if !types[2].Properties.Contains(MemoryHostCached) {
				t.Errorf("READBACK properties = %b, want host-cached", types[2].Properties)
			}
		})
	}
}

func TestSynthesizeMemoryTypesTier1Replication(t *testing.T) {
	types := synthesizeMemoryTypes(MemoryArchitectureNUMA, false)
	if want := int(numMemoryGroups) * numHeapProperties; len(types) != want {
		t.Fatalf("got %d types, want %d", len(types), want)
	}

	base := synthesizeMemoryTypes(MemoryArchitectureNUMA, true)

	// Universal and buffer groups replicate the base types unchanged.
	for g, shift := range []int{0, MemoryTypeBufferShift} {
		for i, want := range base {
			got := types[shift+i]
			if got != want {
				t.Errorf("group %d type %d = %+v, want %+v", g, i, got, want)
			}
		}
	}

	// Image and target groups lose every host-side property.
	hostFlags := MemoryHostVisible | MemoryHostCoherent | MemoryHostCached
	for _, shift := range []int{MemoryTypeImageShift, MemoryTypeTargetShift} {
		for i := 0; i < numHeapProperties; i++ {
			got := types[shift+i]
			if got.Properties&hostFlags != 0 {
				t.Errorf("type %d properties = %b, want no host flags", shift+i, got.Properties)
			}
			if got.HeapIndex != base[i].HeapIndex {
				t.Errorf("type %d heap = %d, want %d", shift+i, got.HeapIndex, base[i].HeapIndex)
			}
		}
	}
}

func TestMemoryTypeHeapIndices(t *testing.T) {
	// NUMA splits DEFAULT from UPLOAD/READBACK across two heaps.
	numa := baseMemoryTypes(MemoryArchitectureNUMA)
	if numa[0].HeapIndex != 0 || numa[1].HeapIndex != 1 || numa[2].HeapIndex != 1 {
		t.Errorf("NUMA heap indices = %d,%d,%d, want 0,1,1",
			numa[0].HeapIndex, numa[1].HeapIndex, numa[2].HeapIndex)
	}

	// Unified architectures have a single heap, and every type is
	// device-local.
	for _, arch := range []MemoryArchitecture{MemoryArchitectureUMA, MemoryArchitectureCacheCoherentUMA} {
		for i, ty := range baseMemoryTypes(arch) {
			if ty.HeapIndex != 0 {
				t.Errorf("%s type %d heap = %d, want 0", arch, i, ty.HeapIndex)
			}
			if !ty.Properties.Contains(MemoryDeviceLocal) {
				t.Errorf("%s type %d not device-local", arch, i)
			}
		}
	}
}

func TestCacheCoherentUMAUploadIsCached(t *testing.T) {
	ccuma := baseMemoryTypes(MemoryArchitectureCacheCoherentUMA)
	if !ccuma[1].Properties.Contains(MemoryHostCached) {
		t.Error("CacheCoherentUMA UPLOAD should be host-cached")
	}
	uma := baseMemoryTypes(MemoryArchitectureUMA)
	if uma[1].Properties.Contains(MemoryHostCached) {
		t.Error("UMA UPLOAD should not be host-cached")
	}
}

func TestHeapPropertiesTables(t *testing.T) {
	numa := heapPropertiesFor(MemoryArchitectureNUMA)
	if numa[0].MemoryPool != d3d12.MemoryPoolL1 {
		t.Errorf("NUMA DEFAULT pool = %d, want L1", numa[0].MemoryPool)
	}
	ccuma := heapPropertiesFor(MemoryArchitectureCacheCoherentUMA)
	if ccuma[1].PageProperty != numa[2].PageProperty {
		t.Error("CacheCoherentUMA UPLOAD should use write-back pages")
	}
}
