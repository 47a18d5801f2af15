package willow3d

import (
	"github.com/go-gl/mathgl/mgl64"
)

// --- Local transform accessors ---

// Position returns the local position.
func (n *Node) Position() mgl64.Vec3 { return n.position }

// Rotation returns the local orientation as Euler angles.
func (n *Node) Rotation() Euler { return n.rotation }

// Quaternion returns the local orientation as a quaternion.
func (n *Node) Quaternion() mgl64.Quat { return n.quaternion }

// Scale returns the local scale.
func (n *Node) Scale() mgl64.Vec3 { return n.scale }

// Matrix returns the local matrix as of the last compose.
func (n *Node) Matrix() mgl64.Mat4 { return n.matrix }

// MatrixWorld returns the world matrix as of the last update pass.
func (n *Node) MatrixWorld() mgl64.Mat4 { return n.matrixWorld }

// MatrixAutoUpdate reports whether Matrix is recomposed from position,
// quaternion and scale during update passes.
func (n *Node) MatrixAutoUpdate() bool { return n.matrixAutoUpdate }

// SetMatrixAutoUpdate turns automatic local matrix composition on or off.
// Turning it on schedules a recompose on the next update pass.
func (n *Node) SetMatrixAutoUpdate(on bool) {
	if on && !n.matrixAutoUpdate {
		n.localDirty = true
	}
	n.matrixAutoUpdate = on
}

// MatrixWorldNeedsUpdate reports whether the world matrix is stale.
func (n *Node) MatrixWorldNeedsUpdate() bool { return n.matrixWorldNeedsUpdate }

// MarkMatrixWorldDirty flags the world matrix for recomputation on the next
// UpdateMatrixWorld pass. Needed after writing Matrix on a node with
// auto-update disabled through anything other than SetMatrix.
func (n *Node) MarkMatrixWorldDirty() {
	n.matrixWorldNeedsUpdate = true
}

// SetMatrix overwrites the local matrix and marks the world matrix dirty.
// Intended for nodes with auto-update disabled. With auto-update on, the
// written matrix persists across UpdateMatrixWorld passes until a local
// transform setter (or UpdateMatrix) recomposes it from position, rotation
// and scale.
func (n *Node) SetMatrix(m mgl64.Mat4) {
	n.matrix = m
	n.matrixWorldNeedsUpdate = true
}

// --- Transform property setters ---

// SetPosition sets the local position.
func (n *Node) SetPosition(x, y, z float64) {
	n.SetPositionVec(mgl64.Vec3{x, y, z})
}

// SetPositionVec sets the local position from a vector.
func (n *Node) SetPositionVec(p mgl64.Vec3) {
	n.position = p
	n.localDirty = true
}

// SetScale sets the per-axis local scale.
func (n *Node) SetScale(x, y, z float64) {
	n.SetScaleVec(mgl64.Vec3{x, y, z})
}

// SetScaleVec sets the local scale from a vector.
func (n *Node) SetScaleVec(s mgl64.Vec3) {
	n.scale = s
	n.localDirty = true
}

// SetRotation sets the orientation from Euler angles. The quaternion is
// re-derived in the same call.
func (n *Node) SetRotation(e Euler) {
	n.rotation = e
	n.quaternion = e.Quat()
	n.localDirty = true
}

// SetQuaternion sets the orientation from a quaternion. The Euler angles are
// re-derived in the same call using the current rotation order.
func (n *Node) SetQuaternion(q mgl64.Quat) {
	n.quaternion = q
	n.rotation = EulerFromQuat(q, n.rotation.Order)
	n.localDirty = true
}

// SetRotationOrder changes the order of the Euler view without changing the
// orientation.
func (n *Node) SetRotationOrder(order EulerOrder) {
	n.rotation = EulerFromQuat(n.quaternion, order)
}

// SetRotationFromAxisAngle sets the orientation to angle radians about axis,
// which is assumed to be normalized.
func (n *Node) SetRotationFromAxisAngle(axis mgl64.Vec3, angle float64) {
	n.SetQuaternion(mgl64.QuatRotate(angle, axis))
}

// SetRotationFromEuler is an alias of SetRotation.
func (n *Node) SetRotationFromEuler(e Euler) {
	n.SetRotation(e)
}

// SetRotationFromMatrix sets the orientation from the upper 3x3 of m, which is
// assumed to be a pure rotation.
func (n *Node) SetRotationFromMatrix(m mgl64.Mat4) {
	n.SetQuaternion(mgl64.Mat4ToQuat(m))
}

// SetRotationFromQuaternion sets the orientation from q, which is assumed to
// be normalized.
func (n *Node) SetRotationFromQuaternion(q mgl64.Quat) {
	n.SetQuaternion(q)
}

// --- Relative transforms ---

// ApplyMatrix4 applies m in the node's parent space: the local matrix becomes
// m * Matrix and is decomposed back into position, rotation and scale.
func (n *Node) ApplyMatrix4(m mgl64.Mat4) {
	if n.matrixAutoUpdate {
		n.UpdateMatrix()
	}
	n.matrix = m.Mul4(n.matrix)
	p, q, s := Decompose(n.matrix)
	n.position = p
	n.scale = s
	n.SetQuaternion(q)
	n.matrixWorldNeedsUpdate = true
}

// ApplyQuaternion pre-multiplies the orientation by q.
func (n *Node) ApplyQuaternion(q mgl64.Quat) {
	n.SetQuaternion(q.Mul(n.quaternion))
}

// RotateOnAxis rotates the node by angle radians about axis in object space.
// axis is assumed to be normalized.
func (n *Node) RotateOnAxis(axis mgl64.Vec3, angle float64) {
	n.SetQuaternion(n.quaternion.Mul(mgl64.QuatRotate(angle, axis)))
}

// RotateOnWorldAxis rotates the node by angle radians about axis in world
// space. axis is assumed to be normalized. Only correct when no ancestor is
// rotated: the axis is applied in parent space.
func (n *Node) RotateOnWorldAxis(axis mgl64.Vec3, angle float64) {
	n.SetQuaternion(mgl64.QuatRotate(angle, axis).Mul(n.quaternion))
}

// RotateX rotates about the local X axis.
func (n *Node) RotateX(angle float64) { n.RotateOnAxis(AxisX, angle) }

// RotateY rotates about the local Y axis.
func (n *Node) RotateY(angle float64) { n.RotateOnAxis(AxisY, angle) }

// RotateZ rotates about the local Z axis.
func (n *Node) RotateZ(angle float64) { n.RotateOnAxis(AxisZ, angle) }

// TranslateOnAxis moves the node by distance along axis expressed in its own
// rotated frame. axis is assumed to be normalized.
func (n *Node) TranslateOnAxis(axis mgl64.Vec3, distance float64) {
	v := n.quaternion.Rotate(axis).Mul(distance)
	n.SetPositionVec(n.position.Add(v))
}

// TranslateX moves along the local X axis.
func (n *Node) TranslateX(distance float64) { n.TranslateOnAxis(AxisX, distance) }

// TranslateY moves along the local Y axis.
func (n *Node) TranslateY(distance float64) { n.TranslateOnAxis(AxisY, distance) }

// TranslateZ moves along the local Z axis.
func (n *Node) TranslateZ(distance float64) { n.TranslateOnAxis(AxisZ, distance) }

// LookAt rotates the node so that it faces target, given in world space.
// Meshes and groups point their +Z axis at the target; cameras and lights
// point -Z. Ancestors with non-uniform scale are not supported.
func (n *Node) LookAt(target mgl64.Vec3) {
	n.UpdateWorldMatrix(true, false)
	pos := n.matrixWorld.Col(3).Vec3()

	var m mgl64.Mat4
	if n.Type == NodeTypeCamera || n.Type == NodeTypeLight {
		m = lookAtRotation(pos, target, n.Up)
	} else {
		m = lookAtRotation(target, pos, n.Up)
	}
	q := mgl64.Mat4ToQuat(m)
	if n.parent != nil {
		q = extractRotation(n.parent.matrixWorld).Inverse().Mul(q)
	}
	n.SetQuaternion(q.Normalize())
}

// --- Matrix updates ---

// UpdateMatrix composes the local matrix from position, quaternion and scale
// and marks the world matrix dirty.
func (n *Node) UpdateMatrix() {
	n.matrix = Compose(n.position, n.quaternion, n.scale)
	n.localDirty = false
	n.matrixWorldNeedsUpdate = true
}

// UpdateMatrixWorld refreshes world matrices for this subtree, top-down.
// Intended to run once per frame from each root.
//
// A node's world matrix is recomputed only when it is dirty or force is set;
// once recomputed, every descendant is forced because its ancestor chain
// changed. Subtrees with nothing dirty are walked but not recomputed.
func (n *Node) UpdateMatrixWorld(force bool) {
	if n.matrixAutoUpdate && n.localDirty {
		n.UpdateMatrix()
	}

	if n.matrixWorldNeedsUpdate || force {
		n.refreshMatrixWorld()
		n.matrixWorldNeedsUpdate = false
		force = true
	}

	for _, child := range n.children {
		child.UpdateMatrixWorld(force)
	}
}

// UpdateWorldMatrix recomputes this node's world matrix immediately,
// regardless of dirty flags. With updateParents the ancestor chain is
// refreshed first (ancestors only, not their other children); with
// updateChildren every descendant is refreshed afterwards.
//
// Dirty flags are left set so that the next UpdateMatrixWorld pass still
// reaches siblings that this call skipped.
func (n *Node) UpdateWorldMatrix(updateParents, updateChildren bool) {
	if updateParents && n.parent != nil {
		n.parent.UpdateWorldMatrix(true, false)
	}

	if n.matrixAutoUpdate {
		n.UpdateMatrix()
	}
	n.refreshMatrixWorld()

	if updateChildren {
		for _, child := range n.children {
			child.UpdateWorldMatrix(false, true)
		}
	}
}

// refreshMatrixWorld sets matrixWorld = parent.matrixWorld * matrix.
func (n *Node) refreshMatrixWorld() {
	if n.parent == nil {
		n.matrixWorld = n.matrix
		return
	}
	n.matrixWorld = n.parent.matrixWorld.Mul4(n.matrix)
}

// --- World-space queries ---

// WorldPosition refreshes the ancestor chain and returns the world position.
func (n *Node) WorldPosition() mgl64.Vec3 {
	n.UpdateWorldMatrix(true, false)
	return n.matrixWorld.Col(3).Vec3()
}

// WorldQuaternion refreshes the ancestor chain and returns the world
// orientation.
func (n *Node) WorldQuaternion() mgl64.Quat {
	n.UpdateWorldMatrix(true, false)
	_, q, _ := Decompose(n.matrixWorld)
	return q
}

// WorldScale refreshes the ancestor chain and returns the world scale.
func (n *Node) WorldScale() mgl64.Vec3 {
	n.UpdateWorldMatrix(true, false)
	_, _, s := Decompose(n.matrixWorld)
	return s
}

// WorldDirection refreshes the ancestor chain and returns the normalized
// world-space +Z axis of the node. A degenerate axis yields the zero vector.
func (n *Node) WorldDirection() mgl64.Vec3 {
	n.UpdateWorldMatrix(true, false)
	d := n.matrixWorld.Col(2).Vec3()
	if d.LenSqr() == 0 {
		return d
	}
	return d.Normalize()
}

// --- Coordinate conversion ---

// LocalToWorld converts a local-space point to world space using the current
// world matrix. Callers must make sure the world matrix is up to date.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return transformPoint(n.matrixWorld, p)
}

// WorldToLocal converts a world-space point to this node's local space.
// The inverse is computed fresh on every call. If the world matrix is
// singular the identity is used, so p is returned unchanged.
func (n *Node) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return transformPoint(invertMatrix(n.matrixWorld), p)
}

// LocalDirectionToWorld converts a local-space vector to world space,
// ignoring translation.
func (n *Node) LocalDirectionToWorld(v mgl64.Vec3) mgl64.Vec3 {
	return transformDirection(n.matrixWorld, v)
}

// WorldDirectionToLocal converts a world-space vector to local space,
// ignoring translation. Same singular fallback as WorldToLocal.
func (n *Node) WorldDirectionToLocal(v mgl64.Vec3) mgl64.Vec3 {
	return transformDirection(invertMatrix(n.matrixWorld), v)
}
