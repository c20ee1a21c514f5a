// Package scene is a retained, in-memory scene graph that front ends draw from.
package scene

import (
	"math"
	"sort"

	"github.com/tomz197/vectorrocks/internal/game"
)

// Node is one drawable object and its current transform.
type Node struct {
	ID       game.Handle  `msgpack:"id" json:"id"`
	Kind     game.Kind    `msgpack:"kind" json:"kind"`
	Points   []game.Point `msgpack:"points,omitempty" json:"points,omitempty"`
	Closed   bool         `msgpack:"closed,omitempty" json:"closed,omitempty"`
	Anchor   game.Anchor  `msgpack:"anchor,omitempty" json:"anchor,omitempty"`
	X        float64      `msgpack:"x" json:"x"`
	Y        float64      `msgpack:"y" json:"y"`
	Rotation float64      `msgpack:"rot" json:"rot"`
	Text     string       `msgpack:"text,omitempty" json:"text,omitempty"`
}

// WorldPoints returns the node outline rotated (clockwise-positive) and
// translated into world coordinates.
func (n Node) WorldPoints() []game.Point {
	return n.AppendWorldPoints(nil)
}

// AppendWorldPoints is WorldPoints appending into dst to reuse its storage.
func (n Node) AppendWorldPoints(dst []game.Point) []game.Point {
	sin, cos := math.Sincos(n.Rotation)
	for _, p := range n.Points {
		dst = append(dst, game.Point{
			X: n.X + p.X*cos + p.Y*sin,
			Y: n.Y - p.X*sin + p.Y*cos,
		})
	}
	return dst
}

// Graph implements game.Scene by remembering every live node.
// It is owned by a single frame loop and not safe for concurrent use.
type Graph struct {
	next  game.Handle
	nodes map[game.Handle]*Node
}

// Compile-time check that Graph implements game.Scene.
var _ game.Scene = (*Graph)(nil)

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[game.Handle]*Node)}
}

// Spawn adds a node and returns its handle. Handles are never reused.
func (g *Graph) Spawn(shape game.Shape) game.Handle {
	g.next++
	points := make([]game.Point, len(shape.Points))
	copy(points, shape.Points)
	g.nodes[g.next] = &Node{
		ID:     g.next,
		Kind:   shape.Kind,
		Points: points,
		Closed: shape.Closed,
		Anchor: shape.Anchor,
	}
	return g.next
}

// Despawn removes a node. Unknown handles are ignored.
func (g *Graph) Despawn(h game.Handle) {
	delete(g.nodes, h)
}

// SetTransform moves and rotates a node.
func (g *Graph) SetTransform(h game.Handle, x, y, rotation float64) {
	if n, ok := g.nodes[h]; ok {
		n.X, n.Y, n.Rotation = x, y, rotation
	}
}

// SetText replaces a node's text.
func (g *Graph) SetText(h game.Handle, text string) {
	if n, ok := g.nodes[h]; ok {
		n.Text = text
	}
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns a copy of a single node.
func (g *Graph) Node(h game.Handle) (Node, bool) {
	n, ok := g.nodes[h]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Nodes returns copies of all live nodes ordered by handle, so the oldest
// nodes draw first. The outline slices are shared and must not be modified.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
