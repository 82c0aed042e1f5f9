// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/quadterrain/internal/engine/quadtree"
	"github.com/Faultbox/quadterrain/pkg/math"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// bboxEdges lists the 12 box edges as pairs of AABB.Corners indices.
var bboxEdges = [12][2]int{
	// Bottom face
	{0, 1}, {1, 5}, {5, 4}, {4, 0},
	// Top face
	{2, 3}, {3, 7}, {7, 6}, {6, 2},
	// Vertical edges
	{0, 2}, {1, 3}, {5, 7}, {4, 6},
}

// BBoxWireframe creates line-list vertices for b.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func BBoxWireframe(b math.AABB) []float32 {
	return AppendBBoxWireframe(make([]float32, 0, BBoxWireframeVertexCount*3), b)
}

// AppendBBoxWireframe appends the line-list vertices of b to dst.
func AppendBBoxWireframe(dst []float32, b math.AABB) []float32 {
	corners := b.Corners()
	for _, e := range bboxEdges {
		for _, i := range e {
			dst = append(dst, corners[i][0], corners[i][1], corners[i][2])
		}
	}
	return dst
}

// BBoxWireframePadded is BBoxWireframe for b grown by padding on every side.
// A box with zero height (flat terrain) gets a visible thickness this way.
func BBoxWireframePadded(b math.AABB, padding float32) []float32 {
	return BBoxWireframe(b.Expand(padding))
}

// LeafWireframes appends padded wireframes for the bounds of every leaf.
func LeafWireframes(dst []float32, leaves []*quadtree.Node, padding float32) []float32 {
	for _, n := range leaves {
		dst = AppendBBoxWireframe(dst, n.Bounds.Expand(padding))
	}
	return dst
}
