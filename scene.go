package willow3d

import (
	"time"
)

// Scene is the top-level object that owns the node tree and the tweens that
// animate it. It is driven by an external frame loop that calls Update once
// per frame before drawing.
type Scene struct {
	root  *Node
	debug bool

	tweens     []*TweenGroup
	updateFunc func() error
}

// NewScene creates a new scene with a pre-created root group.
func NewScene() *Scene {
	return &Scene{root: NewGroup("root")}
}

// Root returns the scene's root group node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetUpdateFunc sets a callback run at the start of every Update, before
// tweens advance and world matrices refresh.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// AddTween registers a tween group to be advanced by Update. Finished groups
// are dropped automatically.
func (s *Scene) AddTween(g *TweenGroup) {
	if g == nil || g.Done {
		return
	}
	s.tweens = append(s.tweens, g)
}

// NumTweens returns the number of tween groups still running.
func (s *Scene) NumTweens() int {
	return len(s.tweens)
}

// Update runs the update callback, advances tweens by dt seconds, and then
// refreshes world matrices with a single UpdateMatrixWorld pass from the root.
// An error from the update callback is returned before anything else runs.
func (s *Scene) Update(dt float32) error {
	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.advanceTweens(dt)

	if s.debug {
		stats.tweenTime = time.Since(t0)
		stats.tweenCount = len(s.tweens)
		t0 = time.Now()
	}

	s.root.UpdateMatrixWorld(false)

	if s.debug {
		stats.updateTime = time.Since(t0)
		s.root.Traverse(func(*Node) { stats.nodeCount++ })
		s.debugLog(stats)
	}
	return nil
}

// advanceTweens updates every tween and compacts finished ones out in place.
func (s *Scene) advanceTweens(dt float32) {
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and
// per-frame timing stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
