// Package quadtree partitions a heightmap into a fixed-depth quadtree of
// terrain tiles and walks it against a view volume.
//
// A tree is built once and never modified afterwards, so any number of
// goroutines may traverse it at the same time.
package quadtree

import (
	"fmt"

	"github.com/Faultbox/quadterrain/internal/engine/terrain"
	"github.com/Faultbox/quadterrain/pkg/math"
)

// Kind tags a node as internal or leaf.
type Kind uint8

const (
	// Internal nodes have exactly four children and no geometry.
	Internal Kind = iota + 1
	// Leaf nodes own a tile and have no children.
	Leaf
)

func (k Kind) String() string {
	switch k {
	case Internal:
		return "internal"
	case Leaf:
		return "leaf"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Quadrant indices into Node.Children.
const (
	TopLeft = iota
	TopRight
	BottomLeft
	BottomRight
)

// Node is a quadtree node. Which fields are set depends on Kind:
// Internal nodes use Children, leaves use Tile.
type Node struct {
	Kind   Kind
	Depth  int
	Bounds math.AABB

	Children [4]*Node     // Internal only
	Tile     *terrain.Tile // Leaf only
}

// IsLeaf reports whether the node holds geometry.
func (n *Node) IsLeaf() bool {
	return n.Kind == Leaf
}

// quadrants splits the node's X/Z footprint at its midpoint. The Y range of
// every quadrant starts at zero and is filled in bottom-up.
func quadrants(b math.AABB) [4]math.AABB {
	mid := b.Center()
	mid[1] = 0
	lo := b.Min
	lo[1] = 0
	hi := b.Max
	hi[1] = 0

	var q [4]math.AABB
	q[TopLeft] = math.AABB{Min: lo, Max: mid}
	q[TopRight] = math.AABB{Min: lo, Max: mid}
	q[TopRight].Min[0], q[TopRight].Max[0] = mid[0], hi[0]
	q[BottomLeft] = math.AABB{Min: lo, Max: mid}
	q[BottomLeft].Min[2], q[BottomLeft].Max[2] = mid[2], hi[2]
	q[BottomRight] = math.AABB{Min: mid, Max: hi}
	return q
}
