// Package willow3d is a retained-mode 3D scene graph.
//
// Willow3d owns the node hierarchy and the transform-propagation engine that
// every renderer needs: local transforms, world matrices composed through the
// ancestor chain, structural mutation with cycle rejection, traversal, and
// local/world coordinate conversion. Rendering, materials and geometry live
// outside the package; a node only carries an opaque [Node.Drawable] handle.
//
// Linear algebra comes from [mathgl] (mgl64).
//
// # Scene graph
//
// Every element is a [Node]. Nodes form a tree rooted at [Scene.Root].
// Children inherit their parent's world transform.
//
//	scene := willow3d.NewScene()
//	arm := willow3d.NewGroup("arm")
//	arm.SetPosition(1, 0, 0)
//	_ = scene.Root().AddChild(arm)
//
//	hand := willow3d.NewMesh("hand", myGeometry)
//	hand.SetPosition(0, 1, 0)
//	_ = arm.AddChild(hand)
//
// AddChild reparents implicitly and returns [ErrCycle] when the child is the
// receiver or one of its ancestors.
//
// # Transforms
//
// Position, rotation and scale are changed through setters. Rotation is held
// both as [Euler] angles and as a quaternion; every setter updates both in
// the same call, so the two views never disagree.
//
// World matrices are refreshed in two ways:
//
//   - [Node.UpdateMatrixWorld] is the once-per-frame pass. It walks the tree
//     top-down and recomputes only nodes that are dirty or below a node that
//     was recomputed. [Scene.Update] runs it from the root.
//   - [Node.UpdateWorldMatrix] refreshes on demand, ignoring dirty flags. The
//     world-space getters ([Node.WorldPosition] and friends) use it on the
//     ancestor chain only.
//
// # Animation
//
// [TweenGroup] animates position, scale and rotation with [gween] easing
// functions.
//
// [mathgl]: https://github.com/go-gl/mathgl
// [gween]: https://github.com/tanema/gween
package willow3d
