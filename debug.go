package willow3d

import (
	"fmt"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// debugStats holds per-frame timing and tree-size metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	tweenTime  time.Duration
	updateTime time.Duration
	nodeCount  int
	tweenCount int
}

// debugLog writes timing stats to the package logger at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	Logger().Debug("frame",
		zap.Duration("tweens", stats.tweenTime),
		zap.Duration("update", stats.updateTime),
		zap.Duration("total", stats.tweenTime+stats.updateTime),
		zap.Int("nodes", stats.nodeCount),
		zap.Int("activeTweens", stats.tweenCount),
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("willow3d debug: %s on disposed node %q (ID %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("tree depth exceeds threshold",
			zap.Int("depth", depth),
			zap.Int("threshold", debugMaxTreeDepth),
			zap.String("node", n.Name))
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		Logger().Warn("child count exceeds threshold",
			zap.Int("children", len(n.children)),
			zap.Int("threshold", debugMaxChildCount),
			zap.String("node", n.Name))
	}
}

// TreeString renders the subtree as an indented outline, one node per line
// with its type and local position.
func (n *Node) TreeString() string {
	var b strings.Builder
	n.writeTree(&b, 0)
	return b.String()
}

func (n *Node) writeTree(b *strings.Builder, depth int) {
	p := n.position
	fmt.Fprintf(b, "%s%s [%s #%d] (%.3g, %.3g, %.3g)",
		strings.Repeat("  ", depth), n.Name, n.Type, n.ID, p[0], p[1], p[2])
	if !n.Visible {
		b.WriteString(" hidden")
	}
	b.WriteByte('\n')
	for _, child := range n.children {
		child.writeTree(b, depth+1)
	}
}

// transformSnapshot is the dumped view of a node's transform state.
type transformSnapshot struct {
	Name                   string
	Position               mgl64.Vec3
	Rotation               Euler
	Quaternion             mgl64.Quat
	Scale                  mgl64.Vec3
	Matrix                 mgl64.Mat4
	MatrixWorld            mgl64.Mat4
	MatrixAutoUpdate       bool
	MatrixWorldNeedsUpdate bool
}

var dumpConfig = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}

// DumpTransform returns a multi-line dump of the node's local and world
// transform state, for debugging.
func DumpTransform(n *Node) string {
	return dumpConfig.Sdump(transformSnapshot{
		Name:                   n.Name,
		Position:               n.position,
		Rotation:               n.rotation,
		Quaternion:             n.quaternion,
		Scale:                  n.scale,
		Matrix:                 n.matrix,
		MatrixWorld:            n.matrixWorld,
		MatrixAutoUpdate:       n.matrixAutoUpdate,
		MatrixWorldNeedsUpdate: n.matrixWorldNeedsUpdate,
	})
}
