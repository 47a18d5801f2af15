package willow3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

func assertVecApprox(t *testing.T, name string, got, want mgl64.Vec3, tol float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s = %v, want ~%v", name, got, want)
			return
		}
	}
}

func TestTweenPositionReachesTarget(t *testing.T) {
	node := NewGroup("pos")
	node.SetPosition(1, 2, 3)

	g := TweenPosition(node, mgl64.Vec3{10, 20, 30}, 1.0, ease.Linear)

	// Run for full duration using exact halves to avoid float32 accumulation drift.
	g.Update(0.5)
	assertVecApprox(t, "halfway", node.Position(), mgl64.Vec3{5.5, 11, 16.5}, 1e-3)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	assertVecApprox(t, "position", node.Position(), mgl64.Vec3{10, 20, 30}, 1e-3)
}

func TestTweenScaleReachesTarget(t *testing.T) {
	node := NewGroup("scale")

	g := TweenScale(node, mgl64.Vec3{2, 3, 4}, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	assertVecApprox(t, "scale", node.Scale(), mgl64.Vec3{2, 3, 4}, 1e-3)
}

func TestTweenRotationKeepsQuaternionInSync(t *testing.T) {
	node := NewGroup("rot")
	to := Euler{X: 0.5, Y: -0.25, Z: 1.0}

	g := TweenRotation(node, to, 1.0, ease.Linear)
	g.Update(0.5)
	assertSameRotation(t, "midway sync", node.Rotation().Quat(), node.Quaternion())
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	r := node.Rotation()
	if math.Abs(r.X-to.X) > 1e-4 || math.Abs(r.Y-to.Y) > 1e-4 || math.Abs(r.Z-to.Z) > 1e-4 {
		t.Errorf("Rotation = %+v, want ~%+v", r, to)
	}
	assertSameRotation(t, "final sync", r.Quat(), node.Quaternion())
}

func TestTweenRotationUsesTargetOrder(t *testing.T) {
	node := NewGroup("rot")
	node.SetRotation(Euler{X: 0.2})
	g := TweenRotation(node, Euler{Y: 0.4, Order: EulerZYX}, 1.0, ease.Linear)
	g.Update(0.1)
	if node.Rotation().Order != EulerZYX {
		t.Errorf("Order = %v, want ZYX", node.Rotation().Order)
	}
}

func TestTweenQuaternionSlerps(t *testing.T) {
	node := NewGroup("quat")
	to := mgl64.QuatRotate(math.Pi/2, AxisY)

	g := TweenQuaternion(node, to, 1.0, ease.Linear)
	g.Update(0.5)
	got := node.Quaternion()
	want := mgl64.QuatRotate(math.Pi/4, AxisY)
	if math.Abs(math.Abs(got.Dot(want))-1) > 1e-4 {
		t.Errorf("halfway = %v, want ~%v", got, want)
	}
	g.Update(0.5)
	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(math.Abs(node.Quaternion().Dot(to))-1) > 1e-6 {
		t.Errorf("final = %v, want %v", node.Quaternion(), to)
	}
}

func TestTweenGroupDoneFlagTransition(t *testing.T) {
	node := NewGroup("done")
	g := TweenPosition(node, mgl64.Vec3{50, 50, 0}, 0.5, ease.Linear)

	if g.Done {
		t.Fatal("should not be Done at start")
	}

	// Partway through, not done.
	g.Update(0.25)
	if g.Done {
		t.Fatal("should not be Done partway through")
	}

	// Complete.
	g.Update(0.25)
	if !g.Done {
		t.Fatal("should be Done after full duration")
	}

	// Update after done should be a no-op, not panic.
	g.Update(0.1)
	if !g.Done {
		t.Fatal("should remain Done")
	}
}

func TestTweenGroupMarksLocalDirty(t *testing.T) {
	root := NewGroup("root")
	node := NewGroup("dirty")
	_ = root.AddChild(node)
	root.UpdateMatrixWorld(false)

	g := TweenPosition(node, mgl64.Vec3{4, 0, 0}, 1.0, ease.Linear)
	g.Update(1.0)
	root.UpdateMatrixWorld(false)

	assertVecApprox(t, "world", node.MatrixWorld().Col(3).Vec3(), mgl64.Vec3{4, 0, 0}, 1e-4)
}

func TestTweenGroupDisposedNode(t *testing.T) {
	node := NewGroup("disposed")
	node.SetPosition(10, 20, 0)

	g := TweenPosition(node, mgl64.Vec3{100, 200, 0}, 1.0, ease.Linear)

	// Dispose the node before tweening.
	node.Dispose()

	g.Update(0.1)

	if !g.Done {
		t.Fatal("expected Done after disposed node detected")
	}
	if node.Position() != (mgl64.Vec3{10, 20, 0}) {
		t.Errorf("position changed to %v on disposed node", node.Position())
	}
}

func TestTweenEasingFunctionsProduceDifferentCurves(t *testing.T) {
	// Spot-check: linear vs OutCubic at the midpoint should differ.
	nodeL := NewGroup("linear")
	nodeC := NewGroup("cubic")

	gL := TweenPosition(nodeL, mgl64.Vec3{100, 0, 0}, 1.0, ease.Linear)
	gC := TweenPosition(nodeC, mgl64.Vec3{100, 0, 0}, 1.0, ease.OutCubic)

	gL.Update(0.5)
	gC.Update(0.5)

	if math.Abs(nodeL.Position().X()-nodeC.Position().X()) < 1.0 {
		t.Errorf("easing curves should differ at midpoint: linear=%f cubic=%f",
			nodeL.Position().X(), nodeC.Position().X())
	}
}

func TestTweenGroupUpdateZeroAlloc(t *testing.T) {
	node := NewGroup("alloc")
	g := TweenPosition(node, mgl64.Vec3{100, 100, 100}, 1.0, ease.Linear)

	// Warm up: first call might differ.
	g.Update(0.01)

	result := testing.AllocsPerRun(100, func() {
		g.Update(0.001)
	})
	if result > 0 {
		t.Errorf("TweenGroup.Update allocated %f times per run, want 0", result)
	}
}
