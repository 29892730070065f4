package dx12

import "github.com/gogpu/dx12/d3d12"

// QueueType classifies the workloads a normal queue family accepts.
type QueueType uint8

const (
	// QueueGeneral supports graphics, compute and transfer work.
	QueueGeneral QueueType = iota
	// QueueGraphics supports graphics and transfer work.
	QueueGraphics
	// QueueCompute supports compute and transfer work.
	QueueCompute
	// QueueTransfer supports transfer work only.
	QueueTransfer
)

// String returns the queue type name.
func (t QueueType) String() string {
	switch t {
	case QueueGeneral:
		return "general"
	case QueueGraphics:
		return "graphics"
	case QueueCompute:
		return "compute"
	case QueueTransfer:
		return "transfer"
	default:
		return "unknown"
	}
}

// FamilyID identifies a queue family. IDs are positional within
// QueueFamilies and stable for the process lifetime.
type FamilyID int

// maxQueues bounds queue creation per normal family. Effectively infinite
// on this API.
const maxQueues = 16

// QueueFamily is a closed union of the two family variants: the specially
// marked present family and normal families carrying a QueueType.
//
// The present family is a normal 3D queue underneath, but swapchain
// creation requires an associated queue that is not known at swapchain
// construction time, so it is exposed as its own single-queue family.
type QueueFamily interface {
	QueueType() QueueType
	MaxQueues() int
	ID() FamilyID

	// queueFamily restricts implementations to this package.
	queueFamily()
}

// PresentFamily is the present-capable queue family. Exactly one queue.
type PresentFamily struct{}

func (PresentFamily) QueueType() QueueType { return QueueGeneral }
func (PresentFamily) MaxQueues() int       { return 1 }
func (PresentFamily) ID() FamilyID         { return 0 }
func (PresentFamily) queueFamily()         {}

// NormalFamily is a regular queue family of the given type.
type NormalFamily struct {
	Type QueueType
}

func (f NormalFamily) QueueType() QueueType { return f.Type }
func (NormalFamily) MaxQueues() int         { return maxQueues }
func (NormalFamily) queueFamily()           {}

// ID maps family variants to their positions in QueueFamilies.
func (f NormalFamily) ID() FamilyID {
	switch f.Type {
	case QueueGeneral:
		return 1
	case QueueCompute:
		return 2
	case QueueTransfer:
		return 3
	default:
		panic("dx12: queue family has no stable id: " + f.Type.String())
	}
}

// nativeListType maps a family to the native engine class.
func nativeListType(f QueueFamily) d3d12.CommandListType {
	switch fam := f.(type) {
	case PresentFamily:
		return d3d12.CommandListTypeDirect
	case NormalFamily:
		switch fam.Type {
		case QueueGeneral, QueueGraphics:
			return d3d12.CommandListTypeDirect
		case QueueCompute:
			return d3d12.CommandListTypeCompute
		case QueueTransfer:
			return d3d12.CommandListTypeCopy
		}
	}
	panic("dx12: unknown queue family")
}

// QueueFamilies is the fixed family table exposed by every adapter.
// Family IDs are positional: Present=0, General=1, Compute=2, Transfer=3.
var QueueFamilies = []QueueFamily{
	PresentFamily{},
	NormalFamily{Type: QueueGeneral},
	NormalFamily{Type: QueueCompute},
	NormalFamily{Type: QueueTransfer},
}
