// Package dx12 maps a portable GPU abstraction onto a descriptor-heap
// based native command API. It covers adapter enumeration, the synthesized
// portable memory model, queue families and command queues, and a memoized
// per-format capability cache.
//
// The native API surface lives in the d3d12 subpackage as interfaces, so
// the backend's logic is testable without driver bindings.
//
// Typical use:
//
//	inst := dx12.NewInstance(factory)
//	adapters := inst.EnumerateAdapters()
//	device, err := adapters[0].Adapter.Open([]dx12.OpenRequest{
//		{Family: dx12.NormalFamily{Type: dx12.QueueGeneral}, Count: 1},
//	}, dx12.FeatureRobustBufferAccess)
package dx12
