package willow3d

import "github.com/pkg/errors"

var (
	// ErrNilNode is returned when a nil node is passed to a tree operation.
	ErrNilNode = errors.New("willow3d: nil node")

	// ErrCycle is returned by AddChild when the prospective child is the
	// receiver itself or one of its ancestors.
	ErrCycle = errors.New("willow3d: adding child would create a cycle")
)
