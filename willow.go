package willow3d

import "github.com/go-gl/mathgl/mgl64"

// NodeType distinguishes how a Node is consumed by the renderer and how it
// orients itself in LookAt.
type NodeType uint8

const (
	NodeTypeGroup  NodeType = iota // transform-only node with no drawable
	NodeTypeMesh                   // carries a Drawable handle
	NodeTypeCamera                 // looks down its local -Z axis
	NodeTypeLight                  // looks down its local -Z axis
)

// String returns the lower-case name of the node type.
func (t NodeType) String() string {
	switch t {
	case NodeTypeGroup:
		return "group"
	case NodeTypeMesh:
		return "mesh"
	case NodeTypeCamera:
		return "camera"
	case NodeTypeLight:
		return "light"
	default:
		return "unknown"
	}
}

// DefaultUp is the up vector assigned to new nodes.
var DefaultUp = mgl64.Vec3{0, 1, 0}

// Cardinal axes used by the RotateX/TranslateX family.
var (
	AxisX = mgl64.Vec3{1, 0, 0}
	AxisY = mgl64.Vec3{0, 1, 0}
	AxisZ = mgl64.Vec3{0, 0, 1}
)
