// Package scenefile reads and writes willow3d node trees as YAML documents.
// TOML documents with the same schema can be read too.
//
// A document is one node with nested children:
//
//	name: solar
//	children:
//	  - name: sun
//	    type: light
//	    scale: [2, 2, 2]
//	    children:
//	      - name: earth
//	        type: mesh
//	        position: [5, 0, 0]
//	        rotation: {x: 0, y: 23.4, z: 0, order: XYZ}
//
// Rotation angles are in degrees. Omitted fields take the node defaults.
package scenefile

import (
	"io"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/willow3d"
)

// NodeSpec is the document form of one node.
type NodeSpec struct {
	Name             string        `yaml:"name" toml:"name"`
	UUID             string        `yaml:"uuid,omitempty" toml:"uuid,omitempty"`
	Type             string        `yaml:"type,omitempty" toml:"type,omitempty"`
	Position         []float64     `yaml:"position,omitempty,flow" toml:"position,omitempty"`
	Rotation         *RotationSpec `yaml:"rotation,omitempty" toml:"rotation,omitempty"`
	Scale            []float64     `yaml:"scale,omitempty,flow" toml:"scale,omitempty"`
	Visible          *bool         `yaml:"visible,omitempty" toml:"visible,omitempty"`
	MatrixAutoUpdate *bool         `yaml:"matrixAutoUpdate,omitempty" toml:"matrixAutoUpdate,omitempty"`
	RenderOrder      int           `yaml:"renderOrder,omitempty" toml:"renderOrder,omitempty"`
	Children         []NodeSpec    `yaml:"children,omitempty" toml:"children,omitempty"`
}

// RotationSpec holds Euler angles in degrees.
type RotationSpec struct {
	X     float64 `yaml:"x" toml:"x"`
	Y     float64 `yaml:"y" toml:"y"`
	Z     float64 `yaml:"z" toml:"z"`
	Order string  `yaml:"order,omitempty" toml:"order,omitempty"`
}

// Load reads a document from r and builds its node tree.
func Load(r io.Reader) (*willow3d.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "scenefile: read")
	}
	return Decode(data)
}

// Decode parses a YAML document and builds its node tree. The returned node
// is a parentless root; world matrices are not yet computed.
func Decode(data []byte) (*willow3d.Node, error) {
	var spec NodeSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.Wrap(err, "scenefile: parse")
	}
	return Build(spec)
}

// Build turns a NodeSpec tree into nodes.
func Build(spec NodeSpec) (*willow3d.Node, error) {
	return build(spec, nil)
}

func build(spec NodeSpec, path []string) (*willow3d.Node, error) {
	path = append(path, spec.Name)
	where := strings.Join(path, "/")

	n, err := newNode(spec)
	if err != nil {
		return nil, errors.Wrapf(err, "scenefile: node %q", where)
	}
	if err := applySpec(n, spec); err != nil {
		return nil, errors.Wrapf(err, "scenefile: node %q", where)
	}
	for _, childSpec := range spec.Children {
		child, err := build(childSpec, path)
		if err != nil {
			return nil, err
		}
		if err := n.AddChild(child); err != nil {
			return nil, errors.Wrapf(err, "scenefile: node %q", where)
		}
	}
	return n, nil
}

func newNode(spec NodeSpec) (*willow3d.Node, error) {
	var n *willow3d.Node
	switch strings.ToLower(spec.Type) {
	case "", "group":
		n = willow3d.NewGroup(spec.Name)
	case "mesh":
		n = willow3d.NewMesh(spec.Name, nil)
	case "camera":
		n = willow3d.NewCamera(spec.Name)
	case "light":
		n = willow3d.NewLight(spec.Name)
	default:
		return nil, errors.Errorf("unknown type %q", spec.Type)
	}
	if spec.UUID != "" {
		if _, err := uuid.Parse(spec.UUID); err != nil {
			return nil, errors.Wrapf(err, "invalid uuid %q", spec.UUID)
		}
		n.UUID = spec.UUID
	}
	return n, nil
}

func applySpec(n *willow3d.Node, spec NodeSpec) error {
	if spec.Position != nil {
		p, err := vec3(spec.Position, "position")
		if err != nil {
			return err
		}
		n.SetPositionVec(p)
	}
	if spec.Scale != nil {
		s, err := vec3(spec.Scale, "scale")
		if err != nil {
			return err
		}
		n.SetScaleVec(s)
	}
	if r := spec.Rotation; r != nil {
		order := willow3d.EulerXYZ
		if r.Order != "" {
			var err error
			if order, err = willow3d.ParseEulerOrder(r.Order); err != nil {
				return err
			}
		}
		n.SetRotation(willow3d.Euler{
			X:     mgl64.DegToRad(r.X),
			Y:     mgl64.DegToRad(r.Y),
			Z:     mgl64.DegToRad(r.Z),
			Order: order,
		})
	}
	if spec.Visible != nil {
		n.Visible = *spec.Visible
	}
	if spec.MatrixAutoUpdate != nil {
		n.SetMatrixAutoUpdate(*spec.MatrixAutoUpdate)
	}
	n.RenderOrder = spec.RenderOrder
	return nil
}

func vec3(v []float64, field string) (mgl64.Vec3, error) {
	if len(v) != 3 {
		return mgl64.Vec3{}, errors.Errorf("%s needs 3 components, got %d", field, len(v))
	}
	return mgl64.Vec3{v[0], v[1], v[2]}, nil
}

// Encode serializes n and its subtree. Default-valued fields are omitted.
func Encode(n *willow3d.Node) ([]byte, error) {
	out, err := yaml.Marshal(Spec(n))
	if err != nil {
		return nil, errors.Wrap(err, "scenefile: encode")
	}
	return out, nil
}

// Spec captures n and its subtree as a NodeSpec.
func Spec(n *willow3d.Node) NodeSpec {
	spec := NodeSpec{
		Name:        n.Name,
		UUID:        n.UUID,
		RenderOrder: n.RenderOrder,
	}
	if n.Type != willow3d.NodeTypeGroup {
		spec.Type = n.Type.String()
	}
	if p := n.Position(); p != (mgl64.Vec3{}) {
		spec.Position = p[:]
	}
	if s := n.Scale(); s != (mgl64.Vec3{1, 1, 1}) {
		spec.Scale = s[:]
	}
	if r := n.Rotation(); r.Vec3() != (mgl64.Vec3{}) || r.Order != willow3d.EulerXYZ {
		spec.Rotation = &RotationSpec{
			X:     mgl64.RadToDeg(r.X),
			Y:     mgl64.RadToDeg(r.Y),
			Z:     mgl64.RadToDeg(r.Z),
			Order: r.Order.String(),
		}
	}
	if !n.Visible {
		hidden := false
		spec.Visible = &hidden
	}
	if !n.MatrixAutoUpdate() {
		manual := false
		spec.MatrixAutoUpdate = &manual
	}
	for _, child := range n.Children() {
		spec.Children = append(spec.Children, Spec(child))
	}
	return spec
}
