package dx12

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/dx12/d3d12"
)

// destroyLog records teardown events across a fake object graph.
type destroyLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *destroyLog) add(entry string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
}

func (l *destroyLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

func (l *destroyLog) index(entry string) int {
	for i, e := range l.list() {
		if e == entry {
			return i
		}
	}
	return -1
}

// mockFence implements d3d12.Fence with an armed-event list so queue
// signals release waiters the way the native runtime does.
type mockFence struct {
	mu    sync.Mutex
	value uint64
	armed []armedEvent
	log   *destroyLog
}

type armedEvent struct {
	event  *d3d12.Event
	target uint64
}

var _ d3d12.Fence = (*mockFence)(nil)

func (f *mockFence) Signal(value uint64) error {
	f.mu.Lock()
	f.value = value
	var fire []armedEvent
	rest := f.armed[:0]
	for _, a := range f.armed {
		if a.target <= value {
			fire = append(fire, a)
		} else {
			rest = append(rest, a)
		}
	}
	f.armed = rest
	f.mu.Unlock()
	for _, a := range fire {
		a.event.Set()
	}
	return nil
}

func (f *mockFence) SetEventOnCompletion(event *d3d12.Event, value uint64) error {
	f.mu.Lock()
	reached := f.value >= value
	if !reached {
		f.armed = append(f.armed, armedEvent{event: event, target: value})
	}
	f.mu.Unlock()
	if reached {
		event.Set()
	}
	return nil
}

func (f *mockFence) completed() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

func (f *mockFence) Destroy() { f.log.add("fence") }

// mockCommandQueue implements d3d12.CommandQueue. Signals complete
// immediately unless deferSignals is set, in which case they queue up
// until release is called, modelling in-flight GPU work.
type mockCommandQueue struct {
	mu           sync.Mutex
	executed     [][]d3d12.CommandList
	deferSignals bool
	pending      []func()
	log          *destroyLog
}

var _ d3d12.CommandQueue = (*mockCommandQueue)(nil)

func (q *mockCommandQueue) ExecuteCommandLists(lists []d3d12.CommandList) {
	q.mu.Lock()
	q.executed = append(q.executed, lists)
	q.mu.Unlock()
}

func (q *mockCommandQueue) Signal(fence d3d12.Fence, value uint64) error {
	q.mu.Lock()
	deferred := q.deferSignals
	if deferred {
		q.pending = append(q.pending, func() { fence.Signal(value) })
	}
	q.mu.Unlock()
	if !deferred {
		return fence.Signal(value)
	}
	return nil
}

// release completes all deferred signals, in submission order.
func (q *mockCommandQueue) release() {
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
}

func (q *mockCommandQueue) Destroy() { q.log.add("queue") }

// mockDescriptorHeap implements d3d12.DescriptorHeap.
type mockDescriptorHeap struct {
	desc     d3d12.DescriptorHeapDesc
	cpuStart d3d12.CPUDescriptorHandle
	gpuStart d3d12.GPUDescriptorHandle
	log      *destroyLog
}

var _ d3d12.DescriptorHeap = (*mockDescriptorHeap)(nil)

func (h *mockDescriptorHeap) CPUStart() d3d12.CPUDescriptorHandle { return h.cpuStart }
func (h *mockDescriptorHeap) GPUStart() d3d12.GPUDescriptorHandle { return h.gpuStart }
func (h *mockDescriptorHeap) Destroy()                            { h.log.add("heap") }

type mockSignature struct{ log *destroyLog }

func (s *mockSignature) Destroy() { s.log.add("signature") }

type mockPipeline struct{ log *destroyLog }

func (p *mockPipeline) Destroy() { p.log.add("pipeline") }

// mockDevice implements d3d12.Device with failure injection and call
// counting.
type mockDevice struct {
	mu sync.Mutex

	log *destroyLog

	options     d3d12.FeatureOptions
	arch        d3d12.FeatureArchitecture
	depthBounds bool

	optionsErr     error
	archErr        error
	depthBoundsErr error

	failQueueTypes map[d3d12.CommandListType]bool
	failFences     bool

	formatSupport map[d3d12.Format]d3d12.FormatSupport
	formatCalls   map[d3d12.Format]int

	queues     []*mockCommandQueue
	fences     []*mockFence
	heapSerial d3d12.CPUDescriptorHandle
}

var _ d3d12.Device = (*mockDevice)(nil)

func newMockDevice(log *destroyLog) *mockDevice {
	return &mockDevice{
		log:         log,
		options:     d3d12.FeatureOptions{ResourceHeapTier: d3d12.ResourceHeapTier2},
		formatCalls: make(map[d3d12.Format]int),
	}
}

func (d *mockDevice) CreateCommandQueue(ty d3d12.CommandListType, _ d3d12.QueuePriority) (d3d12.CommandQueue, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failQueueTypes[ty] {
		return nil, fmt.Errorf("mock: queue type %d unavailable", ty)
	}
	q := &mockCommandQueue{log: d.log}
	d.queues = append(d.queues, q)
	return q, nil
}

func (d *mockDevice) CreateFence(initial uint64) (d3d12.Fence, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failFences {
		return nil, errors.New("mock: fence creation unavailable")
	}
	f := &mockFence{value: initial, log: d.log}
	d.fences = append(d.fences, f)
	return f, nil
}

func (d *mockDevice) CreateDescriptorHeap(desc d3d12.DescriptorHeapDesc) (d3d12.DescriptorHeap, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.heapSerial += 1 << 20
	return &mockDescriptorHeap{
		desc:     desc,
		cpuStart: d.heapSerial,
		gpuStart: d3d12.GPUDescriptorHandle(d.heapSerial),
		log:      d.log,
	}, nil
}

func (d *mockDevice) CreateCommandSignature(d3d12.IndirectArgument, uint32) (d3d12.CommandSignature, error) {
	return &mockSignature{log: d.log}, nil
}

func (d *mockDevice) CreateComputePipeline([]byte) (d3d12.PipelineState, error) {
	return &mockPipeline{log: d.log}, nil
}

func (d *mockDevice) DescriptorIncrementSize(ty d3d12.DescriptorHeapType) uint32 {
	return 32 + uint32(ty)
}

func (d *mockDevice) FeatureOptions() (d3d12.FeatureOptions, error) {
	return d.options, d.optionsErr
}

func (d *mockDevice) FeatureArchitecture() (d3d12.FeatureArchitecture, error) {
	return d.arch, d.archErr
}

func (d *mockDevice) DepthBoundsTestSupported() (bool, error) {
	return d.depthBounds, d.depthBoundsErr
}

func (d *mockDevice) FormatSupport(format d3d12.Format) (d3d12.FormatSupport, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.formatCalls[format]++
	return d.formatSupport[format], nil
}

func (d *mockDevice) formatCallCount(format d3d12.Format) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.formatCalls[format]
}

func (d *mockDevice) ReportLiveObjects() { d.log.add("report-live-objects") }

func (d *mockDevice) Destroy() { d.log.add("device") }

// mockAdapter implements d3d12.Adapter.
type mockAdapter struct {
	desc      d3d12.AdapterDesc
	local     d3d12.VideoMemoryInfo
	nonLocal  d3d12.VideoMemoryInfo
	budgetErr error
}

var _ d3d12.Adapter = (*mockAdapter)(nil)

func (a *mockAdapter) Desc() d3d12.AdapterDesc { return a.desc }

func (a *mockAdapter) QueryVideoMemoryInfo(group d3d12.MemorySegmentGroup) (d3d12.VideoMemoryInfo, error) {
	if a.budgetErr != nil {
		return d3d12.VideoMemoryInfo{}, a.budgetErr
	}
	if group == d3d12.MemorySegmentGroupNonLocal {
		return a.nonLocal, nil
	}
	return a.local, nil
}

// mockFactory implements d3d12.Factory over a fixed adapter list.
type mockFactory struct {
	adapters     []*mockAdapter
	supportsPref bool
	prefCalls    int
	plainCalls   int

	// failCreate marks adapters that do not support the API.
	failCreate map[*mockAdapter]bool

	// configure customizes each device the factory hands out.
	configure func(*mockDevice)

	created   int
	log       *destroyLog
	destroyed bool
}

var _ d3d12.Factory = (*mockFactory)(nil)

func (f *mockFactory) SupportsGPUPreference() bool { return f.supportsPref }

func (f *mockFactory) EnumAdapterByGPUPreference(index uint32, _ d3d12.GPUPreference) (d3d12.Adapter, error) {
	f.prefCalls++
	return f.at(index)
}

func (f *mockFactory) EnumAdapters(index uint32) (d3d12.Adapter, error) {
	f.plainCalls++
	return f.at(index)
}

func (f *mockFactory) at(index uint32) (d3d12.Adapter, error) {
	if int(index) >= len(f.adapters) {
		return nil, d3d12.ErrNotFound
	}
	return f.adapters[index], nil
}

func (f *mockFactory) CreateDevice(adapter d3d12.Adapter, _ d3d12.FeatureLevel) (d3d12.Device, error) {
	ma, ok := adapter.(*mockAdapter)
	if !ok {
		return nil, errors.New("mock: foreign adapter")
	}
	if f.failCreate[ma] {
		return nil, errors.New("mock: adapter does not support the API")
	}
	f.created++
	dev := newMockDevice(f.log)
	if f.configure != nil {
		f.configure(dev)
	}
	return dev, nil
}

func (f *mockFactory) Destroy() { f.destroyed = true }

// mockDebugFactory adds the optional debug controller.
type mockDebugFactory struct {
	mockFactory
	debugEnabled bool
	debugErr     error
}

var _ d3d12.DebugController = (*mockDebugFactory)(nil)

func (f *mockDebugFactory) EnableDebugLayer() error {
	if f.debugErr != nil {
		return f.debugErr
	}
	f.debugEnabled = true
	return nil
}
