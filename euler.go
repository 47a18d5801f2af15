package willow3d

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// EulerOrder is the axis order in which Euler angles are applied. EulerXYZ
// rotates about X first, then Y, then Z, each about the rotated frame.
type EulerOrder uint8

const (
	EulerXYZ EulerOrder = iota
	EulerYXZ
	EulerZXY
	EulerZYX
	EulerYZX
	EulerXZY
)

var eulerOrderNames = [...]string{"XYZ", "YXZ", "ZXY", "ZYX", "YZX", "XZY"}

func (o EulerOrder) String() string {
	if int(o) < len(eulerOrderNames) {
		return eulerOrderNames[o]
	}
	return fmt.Sprintf("EulerOrder(%d)", o)
}

// ParseEulerOrder parses an order name such as "XYZ" (case-insensitive).
func ParseEulerOrder(s string) (EulerOrder, error) {
	up := strings.ToUpper(s)
	for i, name := range eulerOrderNames {
		if name == up {
			return EulerOrder(i), nil
		}
	}
	return EulerXYZ, errors.Errorf("willow3d: unknown euler order %q", s)
}

// Euler is an orientation expressed as three angles in radians together with
// the order they are applied in.
type Euler struct {
	X, Y, Z float64
	Order   EulerOrder
}

// Quat returns the unit quaternion for e.
func (e Euler) Quat() mgl64.Quat {
	s1, c1 := math.Sincos(e.X / 2)
	s2, c2 := math.Sincos(e.Y / 2)
	s3, c3 := math.Sincos(e.Z / 2)

	var x, y, z, w float64
	switch e.Order {
	case EulerYXZ:
		x = s1*c2*c3 + c1*s2*s3
		y = c1*s2*c3 - s1*c2*s3
		z = c1*c2*s3 - s1*s2*c3
		w = c1*c2*c3 + s1*s2*s3
	case EulerZXY:
		x = s1*c2*c3 - c1*s2*s3
		y = c1*s2*c3 + s1*c2*s3
		z = c1*c2*s3 + s1*s2*c3
		w = c1*c2*c3 - s1*s2*s3
	case EulerZYX:
		x = s1*c2*c3 - c1*s2*s3
		y = c1*s2*c3 + s1*c2*s3
		z = c1*c2*s3 - s1*s2*c3
		w = c1*c2*c3 + s1*s2*s3
	case EulerYZX:
		x = s1*c2*c3 + c1*s2*s3
		y = c1*s2*c3 + s1*c2*s3
		z = c1*c2*s3 - s1*s2*c3
		w = c1*c2*c3 - s1*s2*s3
	case EulerXZY:
		x = s1*c2*c3 - c1*s2*s3
		y = c1*s2*c3 - s1*c2*s3
		z = c1*c2*s3 + s1*s2*c3
		w = c1*c2*c3 + s1*s2*s3
	default: // EulerXYZ
		x = s1*c2*c3 + c1*s2*s3
		y = c1*s2*c3 - s1*c2*s3
		z = c1*c2*s3 + s1*s2*c3
		w = c1*c2*c3 - s1*s2*s3
	}
	return mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}
}

// EulerFromQuat returns the angles of q in the given order. q need not be
// normalized.
func EulerFromQuat(q mgl64.Quat, order EulerOrder) Euler {
	return EulerFromMatrix(q.Normalize().Mat4(), order)
}

// gimbalThreshold is the sine beyond which the middle axis is treated as
// locked and the third angle is folded into the first.
const gimbalThreshold = 0.9999999

// EulerFromMatrix returns the angles of the rotation in the upper 3x3 of m,
// which must be unscaled.
func EulerFromMatrix(m mgl64.Mat4, order EulerOrder) Euler {
	// mRC is row R, column C; mgl64 stores column-major.
	m11, m12, m13 := m[0], m[4], m[8]
	m21, m22, m23 := m[1], m[5], m[9]
	m31, m32, m33 := m[2], m[6], m[10]

	e := Euler{Order: order}
	switch order {
	case EulerYXZ:
		e.X = math.Asin(-mgl64.Clamp(m23, -1, 1))
		if math.Abs(m23) < gimbalThreshold {
			e.Y = math.Atan2(m13, m33)
			e.Z = math.Atan2(m21, m22)
		} else {
			e.Y = math.Atan2(-m31, m11)
		}
	case EulerZXY:
		e.X = math.Asin(mgl64.Clamp(m32, -1, 1))
		if math.Abs(m32) < gimbalThreshold {
			e.Y = math.Atan2(-m31, m33)
			e.Z = math.Atan2(-m12, m22)
		} else {
			e.Z = math.Atan2(m21, m11)
		}
	case EulerZYX:
		e.Y = math.Asin(-mgl64.Clamp(m31, -1, 1))
		if math.Abs(m31) < gimbalThreshold {
			e.X = math.Atan2(m32, m33)
			e.Z = math.Atan2(m21, m11)
		} else {
			e.Z = math.Atan2(-m12, m22)
		}
	case EulerYZX:
		e.Z = math.Asin(mgl64.Clamp(m21, -1, 1))
		if math.Abs(m21) < gimbalThreshold {
			e.X = math.Atan2(-m23, m22)
			e.Y = math.Atan2(-m31, m11)
		} else {
			e.Y = math.Atan2(m13, m33)
		}
	case EulerXZY:
		e.Z = math.Asin(-mgl64.Clamp(m12, -1, 1))
		if math.Abs(m12) < gimbalThreshold {
			e.X = math.Atan2(m32, m22)
			e.Y = math.Atan2(m13, m11)
		} else {
			e.X = math.Atan2(-m23, m33)
		}
	default: // EulerXYZ
		e.Y = math.Asin(mgl64.Clamp(m13, -1, 1))
		if math.Abs(m13) < gimbalThreshold {
			e.X = math.Atan2(-m23, m33)
			e.Z = math.Atan2(-m12, m11)
		} else {
			e.X = math.Atan2(m32, m22)
		}
	}
	return e
}

// Reorder returns the same orientation expressed in a different order.
func (e Euler) Reorder(order EulerOrder) Euler {
	if e.Order == order {
		return e
	}
	return EulerFromQuat(e.Quat(), order)
}

// Vec3 returns the angles as a vector, dropping the order.
func (e Euler) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{e.X, e.Y, e.Z}
}
