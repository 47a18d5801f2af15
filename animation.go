package willow3d

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 3 values of a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenRotation, TweenQuaternion) and call Update(dt) each frame, or hand it
// to Scene.AddTween. Values are written through the node's setters, so
// rotation and quaternion stay in sync. If the target node is disposed, the
// group stops immediately.
type TweenGroup struct {
	tweens [3]*gween.Tween
	count  int
	values [3]float64
	apply  func(values [3]float64)
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values to the
// target. If the target node has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(g.values)
}

func newVec3Tween(node *Node, from, to mgl64.Vec3, duration float32, fn ease.TweenFunc, apply func([3]float64)) *TweenGroup {
	g := &TweenGroup{count: 3, target: node, apply: apply}
	for i := 0; i < 3; i++ {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
	}
	return g
}

// TweenPosition creates a TweenGroup that moves the node's local position to
// the given target over the specified duration using the easing function.
func TweenPosition(node *Node, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newVec3Tween(node, node.position, to, duration, fn, func(v [3]float64) {
		node.SetPosition(v[0], v[1], v[2])
	})
}

// TweenScale creates a TweenGroup that animates the node's local scale.
func TweenScale(node *Node, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newVec3Tween(node, node.scale, to, duration, fn, func(v [3]float64) {
		node.SetScale(v[0], v[1], v[2])
	})
}

// TweenRotation creates a TweenGroup that interpolates the node's Euler angles
// toward to, in to's order. The current rotation is reordered first so that
// both ends use the same order.
func TweenRotation(node *Node, to Euler, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.rotation.Reorder(to.Order)
	order := to.Order
	return newVec3Tween(node, from.Vec3(), to.Vec3(), duration, fn, func(v [3]float64) {
		node.SetRotation(Euler{X: v[0], Y: v[1], Z: v[2], Order: order})
	})
}

// TweenQuaternion creates a TweenGroup that slerps the node's orientation to
// to. The easing function shapes the interpolation parameter.
func TweenQuaternion(node *Node, to mgl64.Quat, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.quaternion
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(0, 1, duration, fn)
	g.apply = func(v [3]float64) {
		node.SetQuaternion(mgl64.QuatSlerp(from, to, v[0]))
	}
	return g
}
