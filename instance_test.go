package dx12

import (
	"errors"
	"testing"

	"github.com/gogpu/dx12/d3d12"
	"github.com/gogpu/gputypes"
)

func testAdapterDesc(name string) d3d12.AdapterDesc {
	return d3d12.AdapterDesc{Description: name, VendorID: 0x10de, DeviceID: 0x2504}
}

func TestEnumerateAdaptersPreferenceOrder(t *testing.T) {
	factory := &mockFactory{
		supportsPref: true,
		adapters: []*mockAdapter{
			{desc: testAdapterDesc("gpu0"), local: d3d12.VideoMemoryInfo{Budget: 1 << 30}},
		},
		log: &destroyLog{},
	}
	inst := NewInstance(factory)

	adapters := inst.EnumerateAdapters()
	if len(adapters) != 1 {
		t.Fatalf("got %d adapters, want 1", len(adapters))
	}
	if factory.prefCalls == 0 || factory.plainCalls != 0 {
		t.Errorf("enumeration used plain path (pref=%d plain=%d)", factory.prefCalls, factory.plainCalls)
	}
	if got := adapters[0].Info.Name; got != "gpu0" {
		t.Errorf("adapter name = %q", got)
	}
}

func TestEnumerateAdaptersFallbackPath(t *testing.T) {
	factory := &mockFactory{
		adapters: []*mockAdapter{
			{desc: testAdapterDesc("gpu0"), local: d3d12.VideoMemoryInfo{Budget: 1 << 30}},
		},
		log: &destroyLog{},
	}
	inst := NewInstance(factory)

	if got := len(inst.EnumerateAdapters()); got != 1 {
		t.Fatalf("got %d adapters, want 1", got)
	}
	if factory.prefCalls != 0 || factory.plainCalls == 0 {
		t.Errorf("enumeration used preference path (pref=%d plain=%d)", factory.prefCalls, factory.plainCalls)
	}
}

func TestEnumerateSkipsUnsupportedAdapters(t *testing.T) {
	broken := &mockAdapter{desc: testAdapterDesc("broken")}
	working := &mockAdapter{desc: testAdapterDesc("working"), local: d3d12.VideoMemoryInfo{Budget: 1 << 30}}
	factory := &mockFactory{
		adapters:   []*mockAdapter{broken, working},
		failCreate: map[*mockAdapter]bool{broken: true},
		log:        &destroyLog{},
	}

	adapters := NewInstance(factory).EnumerateAdapters()
	if len(adapters) != 1 {
		t.Fatalf("got %d adapters, want 1", len(adapters))
	}
	if adapters[0].Info.Name != "working" {
		t.Errorf("kept adapter %q, want the working one", adapters[0].Info.Name)
	}
}

func TestEnumerateSkipsAdapterOnMandatoryQueryFailure(t *testing.T) {
	factory := &mockFactory{
		adapters: []*mockAdapter{
			{desc: testAdapterDesc("gpu0"), local: d3d12.VideoMemoryInfo{Budget: 1 << 30}},
		},
		configure: func(d *mockDevice) {
			d.archErr = errors.New("mock: architecture query rejected")
		},
		log: &destroyLog{},
	}

	if got := len(NewInstance(factory).EnumerateAdapters()); got != 0 {
		t.Fatalf("got %d adapters, want 0", got)
	}
	// The probe device must not leak.
	if factory.log.index("device") < 0 {
		t.Error("probe device was not destroyed")
	}
}

func TestEnumerateNUMAExposesTwoHeaps(t *testing.T) {
	factory := &mockFactory{
		adapters: []*mockAdapter{{
			desc:     testAdapterDesc("discrete"),
			local:    d3d12.VideoMemoryInfo{Budget: 8 << 30},
			nonLocal: d3d12.VideoMemoryInfo{Budget: 16 << 30},
		}},
		log: &destroyLog{},
	}

	adapters := NewInstance(factory).EnumerateAdapters()
	if len(adapters) != 1 {
		t.Fatalf("got %d adapters, want 1", len(adapters))
	}
	props := adapters[0].Adapter.MemoryProperties()
	if len(props.Heaps) != 2 {
		t.Fatalf("NUMA heaps = %d, want 2", len(props.Heaps))
	}
	if props.Heaps[0] != 8<<30 || props.Heaps[1] != 16<<30 {
		t.Errorf("heap budgets = %v", props.Heaps)
	}
	for i, ty := range props.Types {
		if int(ty.HeapIndex) >= len(props.Heaps) {
			t.Errorf("type %d references heap %d of %d", i, ty.HeapIndex, len(props.Heaps))
		}
	}
}

func TestEnumerateUMAExposesOneHeap(t *testing.T) {
	factory := &mockFactory{
		adapters: []*mockAdapter{{
			desc:  testAdapterDesc("integrated"),
			local: d3d12.VideoMemoryInfo{Budget: 4 << 30},
		}},
		configure: func(d *mockDevice) {
			d.arch = d3d12.FeatureArchitecture{UMA: true}
		},
		log: &destroyLog{},
	}

	adapters := NewInstance(factory).EnumerateAdapters()
	if len(adapters) != 1 {
		t.Fatalf("got %d adapters, want 1", len(adapters))
	}
	a := adapters[0].Adapter
	if got := a.Capabilities().MemoryArchitecture; got != MemoryArchitectureUMA {
		t.Errorf("architecture = %v, want UMA", got)
	}
	if got := len(a.MemoryProperties().Heaps); got != 1 {
		t.Errorf("UMA heaps = %d, want 1", got)
	}
}

func TestEnumerateTier1SynthesizesGroups(t *testing.T) {
	factory := &mockFactory{
		adapters: []*mockAdapter{{
			desc:  testAdapterDesc("tier1"),
			local: d3d12.VideoMemoryInfo{Budget: 2 << 30},
		}},
		configure: func(d *mockDevice) {
			d.options = d3d12.FeatureOptions{ResourceHeapTier: d3d12.ResourceHeapTier1}
		},
		log: &destroyLog{},
	}

	adapters := NewInstance(factory).EnumerateAdapters()
	if len(adapters) != 1 {
		t.Fatalf("got %d adapters, want 1", len(adapters))
	}
	a := adapters[0].Adapter
	if a.Capabilities().HeterogeneousResourceHeaps {
		t.Error("tier 1 adapter reported heterogeneous heaps")
	}
	if got := len(a.MemoryProperties().Types); got != int(numMemoryGroups)*numHeapProperties {
		t.Errorf("tier 1 types = %d, want %d", got, int(numMemoryGroups)*numHeapProperties)
	}
}

func TestEnumerateDepthBoundsFeature(t *testing.T) {
	run := func(t *testing.T, configure func(*mockDevice), want bool) {
		t.Helper()
		factory := &mockFactory{
			adapters: []*mockAdapter{
				{desc: testAdapterDesc("gpu"), local: d3d12.VideoMemoryInfo{Budget: 1 << 30}},
			},
			configure: configure,
			log:       &destroyLog{},
		}
		adapters := NewInstance(factory).EnumerateAdapters()
		if len(adapters) != 1 {
			t.Fatalf("got %d adapters, want 1", len(adapters))
		}
		if got := adapters[0].Adapter.Features().Contains(FeatureDepthBounds); got != want {
			t.Errorf("depth bounds advertised = %v, want %v", got, want)
		}
	}

	t.Run("supported", func(t *testing.T) {
		run(t, func(d *mockDevice) { d.depthBounds = true }, true)
	})
	t.Run("unsupported", func(t *testing.T) {
		run(t, nil, false)
	})
	t.Run("probe fails", func(t *testing.T) {
		run(t, func(d *mockDevice) {
			d.depthBounds = true
			d.depthBoundsErr = errors.New("mock: old runtime")
		}, false)
	})
}

func TestEnumerateClassifiesSoftwareAdapters(t *testing.T) {
	factory := &mockFactory{
		adapters: []*mockAdapter{{
			desc: d3d12.AdapterDesc{
				Description: "Basic Render Driver",
				Flags:       d3d12.AdapterFlagSoftware,
			},
			local: d3d12.VideoMemoryInfo{Budget: 1 << 28},
		}},
		log: &destroyLog{},
	}

	adapters := NewInstance(factory).EnumerateAdapters()
	if len(adapters) != 1 {
		t.Fatalf("got %d adapters, want 1", len(adapters))
	}
	if got := adapters[0].Info.DeviceType; got != gputypes.DeviceTypeVirtualGPU {
		t.Errorf("device type = %v, want virtual", got)
	}
}

func TestEnumerateExposesFixedFamilies(t *testing.T) {
	factory := &mockFactory{
		adapters: []*mockAdapter{
			{desc: testAdapterDesc("gpu"), local: d3d12.VideoMemoryInfo{Budget: 1 << 30}},
		},
		log: &destroyLog{},
	}

	adapters := NewInstance(factory).EnumerateAdapters()
	if len(adapters) != 1 {
		t.Fatalf("got %d adapters, want 1", len(adapters))
	}
	families := adapters[0].QueueFamilies
	if len(families) != 4 {
		t.Fatalf("got %d families, want 4", len(families))
	}
	if _, ok := families[0].(PresentFamily); !ok {
		t.Error("family 0 is not the present family")
	}
}

func TestCreateInstanceCanSkipDebugLayer(t *testing.T) {
	factory := &mockDebugFactory{mockFactory: mockFactory{log: &destroyLog{}}}
	CreateInstance(InstanceDescriptor{Factory: factory, DisableDebugLayer: true})
	if factory.debugEnabled {
		t.Error("debug layer enabled despite DisableDebugLayer")
	}
}

func TestNewInstanceEnablesDebugLayer(t *testing.T) {
	factory := &mockDebugFactory{mockFactory: mockFactory{log: &destroyLog{}}}
	NewInstance(factory)
	if !factory.debugEnabled {
		t.Error("debug layer was not enabled")
	}

	// Failure to enable must not prevent instance creation.
	failing := &mockDebugFactory{
		mockFactory: mockFactory{log: &destroyLog{}},
		debugErr:    errors.New("mock: sdk layers missing"),
	}
	if inst := NewInstance(failing); inst == nil {
		t.Fatal("instance creation failed on debug layer error")
	}
}
