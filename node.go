package willow3d

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// --- ID counter ---

// nodeIDCounter is atomic because scene files can be loaded off the frame
// goroutine (see scenefile.Watch).
var nodeIDCounter atomic.Uint32

func nextNodeID() uint32 {
	return nodeIDCounter.Add(1)
}

// --- Node ---

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path.
//
// The local transform is private so that rotation and quaternion can be kept
// in sync: use the setters in transform.go to change it.
type Node struct {
	// Identity
	ID   uint32
	UUID string
	Name string
	Type NodeType

	// Hierarchy
	parent   *Node
	children []*Node

	// Transform (local)
	position   mgl64.Vec3
	rotation   Euler
	quaternion mgl64.Quat
	scale      mgl64.Vec3

	// Up is the up direction used by LookAt.
	Up mgl64.Vec3

	// Computed
	matrix                 mgl64.Mat4
	matrixWorld            mgl64.Mat4
	matrixAutoUpdate       bool
	matrixWorldNeedsUpdate bool
	localDirty             bool

	// Renderer pass-through
	Visible       bool
	FrustumCulled bool
	RenderOrder   int
	CastShadow    bool
	ReceiveShadow bool

	// Drawable is an opaque geometry handle for the renderer. willow3d never
	// inspects it.
	Drawable any

	// Metadata
	UserData any

	// Lifecycle hooks (nil by default). Invoked inline by AddChild and
	// RemoveChild after the hierarchy has been updated.
	OnAttached func(parent *Node)
	OnDetached func(formerParent *Node)

	// Internal
	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.UUID = uuid.NewString()
	n.quaternion = mgl64.QuatIdent()
	n.scale = mgl64.Vec3{1, 1, 1}
	n.Up = DefaultUp
	n.matrix = mgl64.Ident4()
	n.matrixWorld = mgl64.Ident4()
	n.matrixAutoUpdate = true
	n.Visible = true
	n.FrustumCulled = true
	n.CastShadow = true
	n.ReceiveShadow = true
}

// NewGroup creates a transform-only node.
func NewGroup(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeGroup}
	nodeDefaults(n)
	return n
}

// NewMesh creates a node carrying a renderer-owned drawable handle.
func NewMesh(name string, drawable any) *Node {
	n := &Node{Name: name, Type: NodeTypeMesh, Drawable: drawable}
	nodeDefaults(n)
	return n
}

// NewCamera creates a camera node. Cameras look down their local -Z axis.
func NewCamera(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeCamera}
	nodeDefaults(n)
	return n
}

// NewLight creates a light node. Lights look down their local -Z axis.
func NewLight(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeLight}
	nodeDefaults(n)
	return n
}

// HasDrawable reports whether a drawable handle is attached.
func (n *Node) HasDrawable() bool {
	return n.Drawable != nil
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Returns ErrNilNode for a nil child and ErrCycle if child is this node or
// one of its ancestors; the tree is left unchanged in both cases.
func (n *Node) AddChild(child *Node) error {
	if child == nil {
		return errors.Wrapf(ErrNilNode, "add child to %q", n.Name)
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		return errors.Wrapf(ErrCycle, "add %q to %q", child.Name, n.Name)
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	child.matrixWorldNeedsUpdate = true
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
	if child.OnAttached != nil {
		child.OnAttached(n)
	}
	return nil
}

// AddChildren appends each child in order, stopping at the first error.
func (n *Node) AddChildren(children ...*Node) error {
	for _, c := range children {
		if err := n.AddChild(c); err != nil {
			return err
		}
	}
	return nil
}

// RemoveChild detaches child from this node.
// No-op if child is not a child of this node.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.parent != n {
		return
	}
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
	}
	if !n.removeChildByPtr(child) {
		return
	}
	child.parent = nil
	child.matrixWorldNeedsUpdate = true
	if child.OnDetached != nil {
		child.OnDetached(n)
	}
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	old := n.children
	n.children = nil
	for _, child := range old {
		child.parent = nil
		child.matrixWorldNeedsUpdate = true
	}
	for _, child := range old {
		if child.OnDetached != nil {
			child.OnDetached(n)
		}
	}
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Root returns the topmost ancestor, which is n itself for a root.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// IsAncestorOf reports whether n is a strict ancestor of other.
func (n *Node) IsAncestorOf(other *Node) bool {
	if other == nil || other == n {
		return false
	}
	return isAncestor(n, other)
}

// --- Lookup ---

// Find returns the first node in depth-first pre-order (n first) for which
// match returns true, or nil.
func (n *Node) Find(match func(*Node) bool) *Node {
	if match(n) {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(match); found != nil {
			return found
		}
	}
	return nil
}

// FindByName returns the first node in the subtree named name, or nil.
func (n *Node) FindByName(name string) *Node {
	return n.Find(func(c *Node) bool { return c.Name == name })
}

// FindByID returns the node in the subtree with the given ID, or nil.
func (n *Node) FindByID(id uint32) *Node {
	return n.Find(func(c *Node) bool { return c.ID == id })
}

// FindByUUID returns the node in the subtree with the given UUID, or nil.
func (n *Node) FindByUUID(id string) *Node {
	return n.Find(func(c *Node) bool { return c.UUID == id })
}

// --- Traversal ---

// Traverse calls visit for n and every descendant in pre-order.
func (n *Node) Traverse(visit func(*Node)) {
	visit(n)
	for _, child := range n.children {
		child.Traverse(visit)
	}
}

// TraverseVisible is like Traverse but skips invisible nodes together with
// their whole subtree.
func (n *Node) TraverseVisible(visit func(*Node)) {
	if !n.Visible {
		return
	}
	visit(n)
	for _, child := range n.children {
		child.TraverseVisible(visit)
	}
}

// TraverseAncestors calls visit for each ancestor from the parent up to the
// root. n itself is not visited.
func (n *Node) TraverseAncestors(visit func(*Node)) {
	for p := n.parent; p != nil; p = p.parent {
		visit(p)
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.parent = nil
		child.dispose()
	}
	n.children = nil
	n.parent = nil
	n.Drawable = nil
	n.UserData = nil
	n.OnAttached = nil
	n.OnDetached = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return true
		}
	}
	return false
}
