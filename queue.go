package dx12

import (
	"time"

	"github.com/gogpu/dx12/d3d12"
)

// CommandBuffer is a recorded batch of work ready for submission. Command
// recording lives in a layer above this package; queues only need the
// finished native list.
type CommandBuffer interface {
	Raw() d3d12.CommandList
}

// Swapchain presents rendered images to a surface.
type Swapchain interface {
	// Present queues the image for display and reports whether the
	// swapchain has become suboptimal for the surface.
	Present(imageIndex uint32) (suboptimal bool, err error)
}

// SwapchainPresent names one image of one swapchain for presentation.
type SwapchainPresent struct {
	Swapchain  Swapchain
	ImageIndex uint32
}

// CommandQueue is one native command queue together with the fence and
// event that implement wait-idle. Submission is externally synchronized:
// one goroutine per queue at a time.
type CommandQueue struct {
	raw       d3d12.CommandQueue
	idleFence d3d12.Fence
	idleEvent *d3d12.Event
}

// Submit executes the given command buffers and optionally signals a
// fence once the batch completes. The idle fence is rewound so a later
// WaitIdle observes this batch.
func (q *CommandQueue) Submit(buffers []CommandBuffer, signal *Fence) error {
	// Reset the idle tracking before queuing new work.
	if err := q.idleFence.Signal(0); err != nil {
		return err
	}
	q.idleEvent.Reset()

	lists := make([]d3d12.CommandList, len(buffers))
	for i, buf := range buffers {
		lists[i] = buf.Raw()
	}
	q.raw.ExecuteCommandLists(lists)

	if signal != nil {
		if err := q.raw.Signal(signal.raw, 1); err != nil {
			return err
		}
	}
	return nil
}

// Present presents each swapchain image in order. Wait semaphores are
// accepted for interface parity but not consumed: presentation on this
// API synchronizes through the swapchain itself. Returns true when any
// swapchain reports itself suboptimal.
func (q *CommandQueue) Present(presents []SwapchainPresent, waitSemaphores []*Semaphore) (bool, error) {
	_ = waitSemaphores

	suboptimal := false
	for _, p := range presents {
		sub, err := p.Swapchain.Present(p.ImageIndex)
		if err != nil {
			return suboptimal, err
		}
		if sub {
			suboptimal = true
		}
	}
	return suboptimal, nil
}

// WaitIdle blocks until all work submitted to the queue has completed.
func (q *CommandQueue) WaitIdle() error {
	if err := q.signalIdle(); err != nil {
		return err
	}
	q.idleEvent.Wait()
	return nil
}

// WaitIdleFor is WaitIdle with a timeout, for callers that must make
// progress past a lost device. Returns ErrWaitTimeout when the queue did
// not drain in time.
func (q *CommandQueue) WaitIdleFor(timeout time.Duration) error {
	if err := q.signalIdle(); err != nil {
		return err
	}
	if !q.idleEvent.WaitFor(timeout) {
		return ErrWaitTimeout
	}
	return nil
}

func (q *CommandQueue) signalIdle() error {
	if err := q.raw.Signal(q.idleFence, 1); err != nil {
		return err
	}
	if err := q.idleFence.SetEventOnCompletion(q.idleEvent, 1); err != nil {
		return err
	}
	return nil
}

// Raw returns the native queue, for swapchain construction.
func (q *CommandQueue) Raw() d3d12.CommandQueue {
	return q.raw
}

// destroy releases the queue's native objects. Owned by Device teardown.
func (q *CommandQueue) destroy() {
	q.idleFence.Destroy()
	q.idleEvent.Close()
	q.raw.Destroy()
}
