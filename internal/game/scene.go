package game

// Point is a 2D coordinate in world units.
type Point struct {
	X, Y float64
}

// Kind identifies what a scene node depicts.
type Kind int

const (
	KindShip Kind = iota
	KindBullet
	KindAsteroid
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindBullet:
		return "bullet"
	case KindAsteroid:
		return "asteroid"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Anchor places a text node on screen.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTopRight
)

// Shape describes a node at spawn time. Points are in local coordinates
// around the node origin; Text nodes use Anchor instead of Points.
type Shape struct {
	Kind   Kind
	Points []Point
	Closed bool // Join the last point back to the first
	Anchor Anchor
}

// Handle refers to a node owned by a Scene.
type Handle int

// Scene is everything the game needs from a renderer.
type Scene interface {
	Spawn(shape Shape) Handle
	Despawn(h Handle)
	SetTransform(h Handle, x, y, rotation float64)
	SetText(h Handle, text string)
}
