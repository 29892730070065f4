// Package d3d12 defines the native API surface consumed by the dx12 backend.
//
// The package models the descriptor/heap-based explicit API as a set of Go
// interfaces (Factory, Adapter, Device, CommandQueue, Fence, ...) together
// with the numeric constants and bitflag blocks the backend depends on.
// A concrete implementation binds these interfaces to the platform API;
// tests drive the backend through in-memory fakes.
package d3d12
