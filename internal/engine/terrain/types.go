// Package terrain provides heightmap sampling and per-tile triangle strip
// geometry for quadtree terrain.
package terrain

// Sampler provides read access to a grid of normalized (0..1) heights.
// Implementations must clamp out-of-range coordinates instead of failing.
type Sampler interface {
	Width() int
	Height() int
	At(x, z int) float32
}

// Params holds the world scale applied to heightmap samples.
type Params struct {
	TileSize  float32 // World units between adjacent samples (X and Z)
	MaxHeight float32 // World height of a sample with value 1.0
}

// DefaultParams returns the reference terrain scale.
func DefaultParams() Params {
	return Params{
		TileSize:  2,
		MaxHeight: 100,
	}
}

// Vertex is a terrain vertex in grid space.
//
// Position holds (column, normalized height, row). X/Z are sample indices and
// Y is the raw 0..1 sample value; the shading stage multiplies X/Z by
// Params.TileSize and Y by Params.MaxHeight. Culling never reads vertices:
// Tile.MinY/MaxY carry the world-scaled heights instead.
type Vertex struct {
	Position [3]float32
}

// Tile is the renderable geometry of one quadtree leaf.
type Tile struct {
	ID int // Leaf index in traversal order, assigned by the quadtree

	// Sample rectangle covered by the tile
	OriginX, OriginZ int
	Columns, Rows    int

	Vertices []Vertex
	Indices  []uint32 // Triangle strip, rows stitched by degenerate triangles

	// World-scaled height range of the sampled region
	MinY float32
	MaxY float32
}

// Empty reports whether the tile covers no samples.
func (t *Tile) Empty() bool {
	return t.Columns == 0 || t.Rows == 0
}

// DrawCount returns the number of strip indices a backend should submit.
// The bridge pair after the last row is dropped since nothing follows it.
func (t *Tile) DrawCount() int {
	if len(t.Indices) < 2 {
		return 0
	}
	return len(t.Indices) - 2
}

// WorldPosition converts a vertex to world space using p.
func (v Vertex) WorldPosition(p Params) [3]float32 {
	return [3]float32{
		v.Position[0] * p.TileSize,
		v.Position[1] * p.MaxHeight,
		v.Position[2] * p.TileSize,
	}
}
