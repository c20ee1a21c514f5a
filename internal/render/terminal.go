// Package render draws scene graph nodes to an ANSI terminal.
package render

import (
	"io"
	"unicode/utf8"

	"github.com/tomz197/vectorrocks/internal/draw"
	"github.com/tomz197/vectorrocks/internal/game"
	"github.com/tomz197/vectorrocks/internal/scene"
)

// ViewSize is the logical width and height of the canvas. The world square
// [-Bound, Bound] is stretched across it.
const ViewSize = 80.0

const viewScale = ViewSize / (2 * game.Bound)

// Terminal renders nodes onto a half-block canvas sized to the largest
// centred square that fits the terminal.
type Terminal struct {
	w        io.Writer
	sizeFunc draw.TermSizeFunc
	canvas   *draw.Canvas
	cw       *draw.ChunkWriter

	termW, termH int
	points       []game.Point
}

// NewTerminal creates a renderer writing to w. sizeFunc reports the
// terminal dimensions and is polled every frame to follow resizes.
func NewTerminal(w io.Writer, sizeFunc draw.TermSizeFunc) *Terminal {
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	return &Terminal{
		w:        w,
		sizeFunc: sizeFunc,
		canvas:   draw.NewScaledCanvas(0, 0, ViewSize, ViewSize),
		cw:       draw.NewChunkWriter(w, 0, 0),
		termW:    -1,
		termH:    -1,
	}
}

// Start hides the cursor and clears the screen.
func (t *Terminal) Start() {
	draw.HideCursor(t.w)
	draw.ClearScreen(t.w)
}

// Stop clears the screen and restores the cursor.
func (t *Terminal) Stop() {
	draw.ClearScreen(t.w)
	draw.ShowCursor(t.w)
}

// FitSquare returns the render area for a terminal: the largest square in
// sub-pixels (columns = 2 x rows) and its centring offset.
func FitSquare(termW, termH int) (cols, rows, offsetCol, offsetRow int) {
	cols = termW
	if 2*termH < cols {
		cols = 2 * termH
	}
	rows = cols / 2
	cols = rows * 2
	if rows < 0 {
		rows, cols = 0, 0
	}
	offsetCol = (termW - cols) / 2
	offsetRow = (termH - rows) / 2
	return cols, rows, offsetCol, offsetRow
}

// Draw renders one frame of nodes.
func (t *Terminal) Draw(nodes []scene.Node) error {
	if err := t.updateSize(); err != nil {
		return err
	}

	t.canvas.Clear()
	var texts []scene.Node
	for _, n := range nodes {
		if n.Kind == game.KindText {
			texts = append(texts, n)
			continue
		}
		t.drawShape(n)
	}

	if err := t.canvas.Render(t.cw); err != nil {
		return err
	}
	for _, n := range texts {
		t.drawText(n)
	}
	return t.cw.Flush()
}

// updateSize re-fits the render area when the terminal changes size.
func (t *Terminal) updateSize() error {
	termW, termH, err := t.sizeFunc()
	if err != nil {
		return err
	}
	if termW == t.termW && termH == t.termH {
		return nil
	}
	t.termW, t.termH = termW, termH

	cols, rows, offCol, offRow := FitSquare(termW, termH)
	t.canvas.Resize(cols, rows)
	t.canvas.SetOffset(offCol, offRow)
	t.canvas.ForceRedraw()
	t.cw.SetOffset(offCol, offRow)

	t.cw.WriteString("\033[H\033[2J")
	return t.canvas.RenderBorder(t.cw)
}

// toView maps a world point (y-up, centred) to canvas logical space (y-down).
func toView(p game.Point) draw.Point {
	return draw.Point{
		X: (p.X + game.Bound) * viewScale,
		Y: (game.Bound - p.Y) * viewScale,
	}
}

func (t *Terminal) drawShape(n scene.Node) {
	t.points = n.AppendWorldPoints(t.points[:0])
	pts := t.canvas.BorrowPoints(len(t.points))
	for i, p := range t.points {
		pts[i] = toView(p)
	}

	switch n.Kind {
	case game.KindShip:
		t.canvas.DrawPolygon(pts, true)
	default:
		t.canvas.DrawPolyline(pts, n.Closed)
	}
}

func (t *Terminal) drawText(n scene.Node) {
	if n.Text == "" {
		return
	}
	width := utf8.RuneCountInString(n.Text)
	col := 2
	if n.Anchor == game.AnchorTopRight {
		col = t.canvas.TerminalWidth() - width
	}
	if col < 1 {
		col = 1
	}
	t.cw.WriteAt(col, 1, n.Text)
	t.canvas.Invalidate(col, 1, width)
}
