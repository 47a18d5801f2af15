package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// maxPitch keeps the eye off the poles where the view basis degenerates.
const maxPitch = math.Pi/2 - 0.01

// OrbitCamera circles a target point at a fixed distance.
type OrbitCamera struct {
	// Target is the world-space point the camera looks at.
	Target mgl64.Vec3
	// Yaw is the rotation about world +Y in radians. Zero puts the eye on +Z.
	Yaw float64
	// Pitch is the elevation above the XZ plane in radians.
	Pitch float64
	// Distance from Target to the eye.
	Distance float64

	// FovY is the vertical field of view in radians.
	FovY float64
	// Near and Far clip plane distances.
	Near, Far float64

	zoomTween *gween.Tween
}

// NewOrbitCamera returns a camera looking at the origin from distance along +Z.
func NewOrbitCamera(distance float64) *OrbitCamera {
	return &OrbitCamera{
		Distance: distance,
		FovY:     mgl64.DegToRad(50),
		Near:     0.1,
		Far:      1000,
	}
}

// Orbit adds to the yaw and pitch. Pitch is clamped short of straight up or down.
func (c *OrbitCamera) Orbit(dyaw, dpitch float64) {
	c.Yaw += dyaw
	c.Pitch = mgl64.Clamp(c.Pitch+dpitch, -maxPitch, maxPitch)
}

// ZoomTo animates Distance to the given value over duration seconds.
func (c *OrbitCamera) ZoomTo(distance float64, duration float32, easeFn ease.TweenFunc) {
	c.zoomTween = gween.New(float32(c.Distance), float32(distance), duration, easeFn)
}

// Zooming reports whether a ZoomTo animation is in progress.
func (c *OrbitCamera) Zooming() bool {
	return c.zoomTween != nil
}

// update advances the zoom animation. Called once per frame.
func (c *OrbitCamera) update(dt float32) {
	if c.zoomTween == nil {
		return
	}
	val, done := c.zoomTween.Update(dt)
	c.Distance = float64(val)
	if done {
		c.zoomTween = nil
	}
}

// Eye returns the world-space eye position.
func (c *OrbitCamera) Eye() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	offset := mgl64.Vec3{
		c.Distance * cp * math.Sin(c.Yaw),
		c.Distance * math.Sin(c.Pitch),
		c.Distance * cp * math.Cos(c.Yaw),
	}
	return c.Target.Add(offset)
}

// View returns the world-to-camera matrix.
func (c *OrbitCamera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), c.Target, mgl64.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c *OrbitCamera) Projection(aspect float64) mgl64.Mat4 {
	return mgl64.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View for a w by h pixel target.
func (c *OrbitCamera) ViewProjection(w, h int) mgl64.Mat4 {
	aspect := 1.0
	if h > 0 {
		aspect = float64(w) / float64(h)
	}
	return c.Projection(aspect).Mul4(c.View())
}

// Project maps a world-space point to pixel coordinates on a w by h target
// with the origin at the top left. ok is false when the point is behind the
// eye or outside the depth range.
func Project(viewProj mgl64.Mat4, p mgl64.Vec3, w, h int) (x, y float32, ok bool) {
	clip := viewProj.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	if ndc.Z() < -1 || ndc.Z() > 1 {
		return 0, 0, false
	}
	x = float32((ndc.X() + 1) / 2 * float64(w))
	y = float32((1 - ndc.Y()) / 2 * float64(h))
	return x, y, true
}
