package scenefile

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/willow3d"
)

const solarYAML = `
name: solar
children:
  - name: sun
    type: light
    scale: [2, 2, 2]
    children:
      - name: earth
        type: mesh
        uuid: 4f9a1f62-5a0c-4f55-8d8e-1b0f7c9f2a10
        position: [5, 0, 0]
        rotation: {x: 0, y: 90, z: 0}
        renderOrder: 3
        children:
          - name: moon
            type: mesh
            position: [0, 0, 1]
  - name: cam
    type: camera
    position: [0, 0, 20]
    visible: false
    matrixAutoUpdate: false
`

func TestDecodeBuildsTree(t *testing.T) {
	root, err := Decode([]byte(solarYAML))
	require.NoError(t, err)

	assert.Equal(t, "solar", root.Name)
	assert.Nil(t, root.Parent())
	require.Equal(t, 2, root.NumChildren())

	sun := root.FindByName("sun")
	require.NotNil(t, sun)
	assert.Equal(t, willow3d.NodeTypeLight, sun.Type)
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, sun.Scale())

	earth := root.FindByName("earth")
	require.NotNil(t, earth)
	assert.Equal(t, willow3d.NodeTypeMesh, earth.Type)
	assert.Equal(t, "4f9a1f62-5a0c-4f55-8d8e-1b0f7c9f2a10", earth.UUID)
	assert.Equal(t, 3, earth.RenderOrder)
	assert.InDelta(t, math.Pi/2, earth.Rotation().Y, 1e-12)
	assert.Same(t, sun, earth.Parent())

	cam := root.FindByName("cam")
	require.NotNil(t, cam)
	assert.Equal(t, willow3d.NodeTypeCamera, cam.Type)
	assert.False(t, cam.Visible)
	assert.False(t, cam.MatrixAutoUpdate())
}

func TestDecodedTreeComposesWorldMatrices(t *testing.T) {
	root, err := Decode([]byte(solarYAML))
	require.NoError(t, err)
	root.UpdateMatrixWorld(false)

	// sun scales by 2, earth is rotated 90 degrees about Y.
	moon := root.FindByName("moon")
	got := moon.MatrixWorld().Col(3).Vec3()
	assert.InDeltaSlice(t, []float64{12, 0, 0}, got[:], 1e-9, "moon world position %v", got)
}

func TestLoadFromReader(t *testing.T) {
	root, err := Load(strings.NewReader("name: only\nposition: [1, 2, 3]\n"))
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, root.Position())
	assert.Equal(t, 0, root.NumChildren())
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"syntax", "name: [unclosed", "scenefile: parse"},
		{"type", "name: a\nchildren:\n  - name: b\n    type: sprite\n", `"a/b": unknown type "sprite"`},
		{"position", "name: a\nposition: [1, 2]\n", "position needs 3 components"},
		{"scale", "name: a\nscale: [1, 2, 3, 4]\n", "scale needs 3 components"},
		{"order", "name: a\nrotation: {x: 1, y: 0, z: 0, order: XYX}\n", "unknown euler order"},
		{"uuid", "name: a\nuuid: nope\n", "invalid uuid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	root := willow3d.NewGroup("world")
	arm := willow3d.NewMesh("arm", nil)
	arm.SetPosition(1, -2, 3.5)
	arm.SetScale(1, 2, 1)
	arm.SetRotation(willow3d.Euler{X: 0.3, Y: -0.2, Z: 0.1, Order: willow3d.EulerZXY})
	arm.RenderOrder = 7
	eye := willow3d.NewCamera("eye")
	eye.Visible = false
	require.NoError(t, root.AddChildren(arm, eye))

	data, err := Encode(root)
	require.NoError(t, err)

	back, err := Decode(data)
	require.NoError(t, err)

	gotArm := back.FindByUUID(arm.UUID)
	require.NotNil(t, gotArm, "uuid should survive a round trip:\n%s", data)
	assert.Equal(t, "arm", gotArm.Name)
	assert.Equal(t, willow3d.NodeTypeMesh, gotArm.Type)
	gotPos, wantPos := gotArm.Position(), arm.Position()
	assert.InDeltaSlice(t, wantPos[:], gotPos[:], 1e-12)
	gotScale, wantScale := gotArm.Scale(), arm.Scale()
	assert.InDeltaSlice(t, wantScale[:], gotScale[:], 1e-12)
	assert.Equal(t, willow3d.EulerZXY, gotArm.Rotation().Order)
	assert.InDelta(t, arm.Rotation().X, gotArm.Rotation().X, 1e-12)
	assert.InDelta(t, arm.Rotation().Y, gotArm.Rotation().Y, 1e-12)
	assert.InDelta(t, arm.Rotation().Z, gotArm.Rotation().Z, 1e-12)
	assert.Equal(t, 7, gotArm.RenderOrder)

	gotEye := back.FindByName("eye")
	require.NotNil(t, gotEye)
	assert.Equal(t, willow3d.NodeTypeCamera, gotEye.Type)
	assert.False(t, gotEye.Visible)
}

func TestEncodeOmitsDefaults(t *testing.T) {
	data, err := Encode(willow3d.NewGroup("plain"))
	require.NoError(t, err)
	out := string(data)
	for _, field := range []string{"position", "scale", "rotation", "visible", "type", "children"} {
		assert.NotContains(t, out, field+":")
	}
	assert.Contains(t, out, "name: plain")
}
