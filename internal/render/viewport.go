package render

import "github.com/tomz197/vectorrocks/internal/game"

// Viewport maps world coordinates onto the largest centred square of a
// pixel surface, flipping y so +Y points up the screen.
type Viewport struct {
	Scale      float64 // pixels per world unit
	OffX, OffY float64 // top-left of the square
	Size       float64 // side of the square in pixels
}

// NewViewport fits the world square into a width x height surface.
func NewViewport(width, height int) Viewport {
	side := float64(width)
	if h := float64(height); h < side {
		side = h
	}
	if side < 0 {
		side = 0
	}
	return Viewport{
		Scale: side / (2 * game.Bound),
		OffX:  (float64(width) - side) / 2,
		OffY:  (float64(height) - side) / 2,
		Size:  side,
	}
}

// Project converts a world point to surface pixels.
func (v Viewport) Project(p game.Point) (x, y float32) {
	return float32(v.OffX + (p.X+game.Bound)*v.Scale),
		float32(v.OffY + (game.Bound-p.Y)*v.Scale)
}
