package dx12

import "github.com/gogpu/dx12/d3d12"

// Fence is a device-to-host synchronization primitive. A fence is
// unsignaled at value 0 and signaled at 1; Submit with a signal fence
// moves it to the signaled state when the batch completes.
type Fence struct {
	raw d3d12.Fence
}

// Raw returns the native fence.
func (f *Fence) Raw() d3d12.Fence {
	return f.raw
}

// Destroy releases the fence.
func (f *Fence) Destroy() {
	f.raw.Destroy()
}

// Semaphore is a queue-to-queue synchronization primitive, backed by a
// native fence.
type Semaphore struct {
	raw d3d12.Fence
}

// Raw returns the native fence backing the semaphore.
func (s *Semaphore) Raw() d3d12.Fence {
	return s.raw
}

// Destroy releases the semaphore.
func (s *Semaphore) Destroy() {
	s.raw.Destroy()
}
