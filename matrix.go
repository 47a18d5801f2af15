package willow3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// singularEpsilon is the determinant magnitude below which a matrix is
// treated as non-invertible.
const singularEpsilon = 1e-12

// Compose builds the affine matrix T * R * S from a position, a unit
// quaternion and a per-axis scale.
func Compose(position mgl64.Vec3, q mgl64.Quat, scale mgl64.Vec3) mgl64.Mat4 {
	m := q.Mat4()
	for col := 0; col < 3; col++ {
		s := scale[col]
		m[col*4+0] *= s
		m[col*4+1] *= s
		m[col*4+2] *= s
	}
	m[12] = position[0]
	m[13] = position[1]
	m[14] = position[2]
	return m
}

// Decompose splits an affine matrix into position, rotation and scale.
// A negative determinant is attributed to the X axis. Axes with zero scale
// are left unnormalized, so the rotation of a degenerate matrix is not
// meaningful.
func Decompose(m mgl64.Mat4) (position mgl64.Vec3, q mgl64.Quat, scale mgl64.Vec3) {
	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	if m.Det() < 0 {
		sx = -sx
	}
	position = m.Col(3).Vec3()
	scale = mgl64.Vec3{sx, sy, sz}

	rot := mgl64.Ident4()
	for col := 0; col < 3; col++ {
		inv := 1.0
		if scale[col] != 0 {
			inv = 1 / scale[col]
		}
		rot[col*4+0] = m[col*4+0] * inv
		rot[col*4+1] = m[col*4+1] * inv
		rot[col*4+2] = m[col*4+2] * inv
	}
	q = mgl64.Mat4ToQuat(rot).Normalize()
	return position, q, scale
}

// invertMatrix computes the inverse of m. Returns the identity matrix if m is
// singular (determinant ≈ 0).
func invertMatrix(m mgl64.Mat4) mgl64.Mat4 {
	if math.Abs(m.Det()) < singularEpsilon {
		return mgl64.Ident4()
	}
	return m.Inv()
}

// transformPoint applies m to p, including translation.
func transformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// transformDirection applies the upper 3x3 of m to v.
func transformDirection(m mgl64.Mat4, v mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(v.Vec4(0)).Vec3()
}

// extractRotation returns the rotation of m with the scale removed.
func extractRotation(m mgl64.Mat4) mgl64.Quat {
	_, q, _ := Decompose(m)
	return q
}

// lookAtRotation returns a rotation matrix whose +Z axis points from target
// toward eye. When eye and target coincide, +Z is used; when up is parallel
// to the view axis, the axis is nudged so a basis can still be built.
func lookAtRotation(eye, target, up mgl64.Vec3) mgl64.Mat4 {
	z := eye.Sub(target)
	if z.LenSqr() == 0 {
		z[2] = 1
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.LenSqr() == 0 {
		if math.Abs(up[2]) == 1 {
			z[0] += 0.0001
		} else {
			z[2] += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	return mgl64.Mat4{
		x[0], x[1], x[2], 0,
		y[0], y[1], y[2], 0,
		z[0], z[1], z[2], 0,
		0, 0, 0, 1,
	}
}
