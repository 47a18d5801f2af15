// Package viewer draws a willow3d scene as a wireframe of node positions in
// an Ebitengine window. Each visible node is projected through an orbit
// camera and joined to its parent by a line; mesh nodes get a dot.
//
// Controls: arrow keys orbit, the mouse wheel zooms, Escape quits.
package viewer

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/pkg/errors"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"github.com/phanxgames/willow3d"
)

// RunConfig configures the viewer window.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Distance is the initial orbit camera distance. Zero means 10.
	Distance float64
}

const (
	orbitSpeed   = 1.5 // radians per second
	zoomStep     = 0.15
	zoomDuration = 0.25
	minDistance  = 0.5
	dotRadius    = 3
)

var (
	clearColor = color.RGBA{0x14, 0x16, 0x1f, 0xff}
	edgeColor  = color.RGBA{0x6c, 0x78, 0x90, 0xff}
	typeColors = map[willow3d.NodeType]color.RGBA{
		willow3d.NodeTypeGroup:  {0x9a, 0xa4, 0xb8, 0xff},
		willow3d.NodeTypeMesh:   {0x6f, 0xd3, 0xff, 0xff},
		willow3d.NodeTypeCamera: {0xff, 0xc8, 0x57, 0xff},
		willow3d.NodeTypeLight:  {0xff, 0xf1, 0x8a, 0xff},
	}
)

// Run opens a window and drives scene until the window closes or Escape is
// pressed. scene.Update is called once per tick.
func Run(scene *willow3d.Scene, cfg RunConfig) error {
	if scene == nil {
		return errors.Wrap(willow3d.ErrNilNode, "viewer: nil scene")
	}
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.Distance <= 0 {
		cfg.Distance = 10
	}

	cam := NewOrbitCamera(cfg.Distance)
	cam.Pitch = 0.35

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)

	willow3d.Logger().Info("viewer starting",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)
	if err := ebiten.RunGame(&game{scene: scene, cam: cam, cfg: cfg}); err != nil {
		return errors.Wrap(err, "viewer: run")
	}
	return nil
}

type game struct {
	scene *willow3d.Scene
	cam   *OrbitCamera
	cfg   RunConfig

	fpsText    string
	fpsElapsed float64
	marks      []mark
}

func (g *game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	dt := float32(1.0 / float64(ebiten.TPS()))
	g.handleInput(float64(dt))
	g.cam.update(dt)

	if g.cfg.ShowFPS {
		g.fpsElapsed += float64(dt)
		if g.fpsElapsed >= 0.5 {
			g.fpsElapsed = 0
			g.fpsText = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		}
	}
	return g.scene.Update(dt)
}

func (g *game) handleInput(dt float64) {
	var dyaw, dpitch float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dyaw -= orbitSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dyaw += orbitSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dpitch += orbitSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dpitch -= orbitSpeed * dt
	}
	g.cam.Orbit(dyaw, dpitch)

	if _, wy := ebiten.Wheel(); wy != 0 {
		target := math.Max(minDistance, g.cam.Distance*(1-zoomStep*wy))
		g.cam.ZoomTo(target, zoomDuration, ease.OutQuad)
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)

	b := screen.Bounds()
	vp := g.cam.ViewProjection(b.Dx(), b.Dy())
	g.marks = collectMarks(g.marks[:0], g.scene.Root(), vp, b.Dx(), b.Dy())

	for _, m := range g.marks {
		if m.hasEdge {
			vector.StrokeLine(screen, m.px, m.py, m.x, m.y, 1, edgeColor, true)
		}
	}
	for _, m := range g.marks {
		if m.dot {
			vector.DrawFilledCircle(screen, m.x, m.y, dotRadius, typeColors[m.typ], true)
		}
	}

	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, g.fpsText)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// mark is one projected node.
type mark struct {
	x, y    float32
	px, py  float32 // parent position, valid when hasEdge
	hasEdge bool
	dot     bool
	typ     willow3d.NodeType
}

// collectMarks projects every visible node under root and appends the
// results to dst. World matrices are read as they are; the caller refreshes
// them first. Nodes that fall off screen depth are skipped, as are edges to
// them.
func collectMarks(dst []mark, root *willow3d.Node, viewProj mgl64.Mat4, w, h int) []mark {
	root.TraverseVisible(func(n *willow3d.Node) {
		x, y, ok := Project(viewProj, n.MatrixWorld().Col(3).Vec3(), w, h)
		if !ok {
			return
		}
		m := mark{
			x:   x,
			y:   y,
			dot: n.Type == willow3d.NodeTypeMesh || n.HasDrawable(),
			typ: n.Type,
		}
		if p := n.Parent(); p != nil {
			m.px, m.py, m.hasEdge = Project(viewProj, p.MatrixWorld().Col(3).Vec3(), w, h)
		}
		dst = append(dst, m)
	})
	return dst
}
