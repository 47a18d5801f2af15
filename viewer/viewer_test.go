package viewer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/willow3d"
)

func TestOrbitCameraEye(t *testing.T) {
	c := NewOrbitCamera(10)
	eye := c.Eye()
	assert.InDeltaSlice(t, []float64{0, 0, 10}, eye[:], 1e-12)

	c.Yaw = math.Pi / 2
	eye = c.Eye()
	assert.InDeltaSlice(t, []float64{10, 0, 0}, eye[:], 1e-9, "eye %v", eye)

	c.Target = mgl64.Vec3{1, 2, 3}
	assert.InDelta(t, 10, c.Eye().Sub(c.Target).Len(), 1e-9)
}

func TestOrbitClampsPitch(t *testing.T) {
	c := NewOrbitCamera(5)
	c.Orbit(0.5, 10)
	assert.InDelta(t, maxPitch, c.Pitch, 1e-12)
	assert.InDelta(t, 0.5, c.Yaw, 1e-12)
	c.Orbit(0, -20)
	assert.InDelta(t, -maxPitch, c.Pitch, 1e-12)
}

func TestZoomToTweensDistance(t *testing.T) {
	c := NewOrbitCamera(10)
	c.ZoomTo(4, 1, ease.Linear)
	require.True(t, c.Zooming())

	c.update(0.5)
	assert.InDelta(t, 7, c.Distance, 1e-4)
	c.update(0.5)
	assert.InDelta(t, 4, c.Distance, 1e-4)
	assert.False(t, c.Zooming())

	c.update(0.5)
	assert.InDelta(t, 4, c.Distance, 1e-4)
}

func TestProject(t *testing.T) {
	c := NewOrbitCamera(10)
	vp := c.ViewProjection(800, 600)

	x, y, ok := Project(vp, mgl64.Vec3{}, 800, 600)
	require.True(t, ok)
	assert.InDelta(t, 400, x, 1e-3)
	assert.InDelta(t, 300, y, 1e-3)

	_, yUp, ok := Project(vp, mgl64.Vec3{0, 1, 0}, 800, 600)
	require.True(t, ok)
	assert.Less(t, yUp, y, "+Y should be drawn above the center")

	xRight, _, ok := Project(vp, mgl64.Vec3{1, 0, 0}, 800, 600)
	require.True(t, ok)
	assert.Greater(t, xRight, x, "+X should be drawn right of the center")

	_, _, ok = Project(vp, mgl64.Vec3{0, 0, 20}, 800, 600)
	assert.False(t, ok, "points behind the eye are rejected")

	_, _, ok = Project(vp, mgl64.Vec3{0, 0, -5000}, 800, 600)
	assert.False(t, ok, "points past the far plane are rejected")
}

func TestCollectMarks(t *testing.T) {
	root := willow3d.NewGroup("root")
	arm := willow3d.NewGroup("arm")
	hand := willow3d.NewMesh("hand", nil)
	hidden := willow3d.NewMesh("hidden", nil)
	hiddenChild := willow3d.NewMesh("hiddenChild", nil)
	require.NoError(t, root.AddChildren(arm, hidden))
	require.NoError(t, arm.AddChild(hand))
	require.NoError(t, hidden.AddChild(hiddenChild))
	arm.SetPosition(1, 0, 0)
	hand.SetPosition(0, 1, 0)
	hidden.Visible = false
	root.UpdateMatrixWorld(false)

	vp := NewOrbitCamera(10).ViewProjection(640, 480)
	marks := collectMarks(nil, root, vp, 640, 480)
	require.Len(t, marks, 3)

	assert.False(t, marks[0].hasEdge, "root has no parent edge")
	assert.False(t, marks[0].dot)

	assert.True(t, marks[1].hasEdge)
	assert.Equal(t, marks[0].x, marks[1].px)
	assert.Equal(t, marks[0].y, marks[1].py)

	assert.True(t, marks[2].dot)
	assert.Equal(t, willow3d.NodeTypeMesh, marks[2].typ)
	assert.Equal(t, marks[1].x, marks[2].px)
	assert.Less(t, marks[2].y, marks[1].y)
}
