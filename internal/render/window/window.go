// Package window plays the game in a desktop window using ebiten.
package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/vectorrocks/internal/game"
	"github.com/tomz197/vectorrocks/internal/input"
	"github.com/tomz197/vectorrocks/internal/render"
	"github.com/tomz197/vectorrocks/internal/scene"
)

const (
	strokeWidth = 1.5
	textMarginX = 8
	textMarginY = 6
	glyphWidth  = 6 // ebitenutil debug font
)

// keys are forwarded to input.State by their ebiten names, which match the
// names input.Decode expects.
var keys = []ebiten.Key{
	ebiten.KeyArrowLeft, ebiten.KeyArrowRight, ebiten.KeyArrowUp,
	ebiten.KeyA, ebiten.KeyD, ebiten.KeyW,
	ebiten.KeySpace,
}

var (
	colorShip     = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorBullet   = color.RGBA{0xff, 0xe0, 0x60, 0xff}
	colorAsteroid = color.RGBA{0xa0, 0xa0, 0xa0, 0xff}
	colorBorder   = color.RGBA{0x30, 0x30, 0x30, 0xff}
)

// Game implements ebiten.Game around a game.World.
type Game struct {
	world  *game.World
	graph  *scene.Graph
	keys   input.State
	width  int
	height int
	points []game.Point
}

// New creates a window game with a fresh world.
func New(cfg game.Config) *Game {
	graph := scene.NewGraph()
	return &Game{
		world: game.NewWorld(cfg, graph),
		graph: graph,
	}
}

// Run opens the window and blocks until it closes.
func Run(title string, cfg game.Config) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(640, 640)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(New(cfg))
}

// Update applies key edges and advances the world one frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			g.keys.KeyDown(k.String())
		}
		if inpututil.IsKeyJustReleased(k) {
			g.keys.KeyUp(k.String())
		}
	}
	g.world.Tick(&g.keys)
	return nil
}

// Draw strokes every scene node and prints the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	vp := render.NewViewport(g.width, g.height)
	vector.StrokeRect(screen, float32(vp.OffX), float32(vp.OffY), float32(vp.Size), float32(vp.Size), 1, colorBorder, false)

	for _, n := range g.graph.Nodes() {
		switch n.Kind {
		case game.KindText:
			g.drawText(screen, vp, n)
		default:
			g.drawShape(screen, vp, n)
		}
	}
}

func (g *Game) drawShape(screen *ebiten.Image, vp render.Viewport, n scene.Node) {
	clr := colorAsteroid
	switch n.Kind {
	case game.KindShip:
		clr = colorShip
	case game.KindBullet:
		clr = colorBullet
	}

	g.points = n.AppendWorldPoints(g.points[:0])
	pts := g.points
	for i := 0; i+1 < len(pts); i++ {
		g.stroke(screen, vp, pts[i], pts[i+1], clr)
	}
	if n.Closed && len(pts) > 2 {
		g.stroke(screen, vp, pts[len(pts)-1], pts[0], clr)
	}
}

func (g *Game) stroke(screen *ebiten.Image, vp render.Viewport, a, b game.Point, clr color.Color) {
	x0, y0 := vp.Project(a)
	x1, y1 := vp.Project(b)
	vector.StrokeLine(screen, x0, y0, x1, y1, strokeWidth, clr, true)
}

func (g *Game) drawText(screen *ebiten.Image, vp render.Viewport, n scene.Node) {
	x := int(vp.OffX) + textMarginX
	if n.Anchor == game.AnchorTopRight {
		x = int(vp.OffX+vp.Size) - textMarginX - len(n.Text)*glyphWidth
	}
	ebitenutil.DebugPrintAt(screen, n.Text, x, int(vp.OffY)+textMarginY)
}

// Layout follows the window size so the viewport can re-fit on resize.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
