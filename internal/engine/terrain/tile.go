package terrain

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/quadterrain/pkg/math"
)

// BuildTile creates the geometry for the part of the heightmap under
// footprint. Only the X/Z extents of footprint are read.
//
// The sample rectangle runs from the truncated min corner to the truncated
// max corner inclusive, so neighbouring tiles share their boundary samples
// and the terrain has no cracks. On the far edge of the grid the rectangle
// is clamped to the last column/row.
func BuildTile(footprint math.AABB, h Sampler, p Params) Tile {
	x0, x1 := sampleRange(footprint.Min[0], footprint.Max[0], p.TileSize, h.Width())
	z0, z1 := sampleRange(footprint.Min[2], footprint.Max[2], p.TileSize, h.Height())

	t := Tile{
		OriginX: x0,
		OriginZ: z0,
		Columns: x1 - x0,
		Rows:    z1 - z0,
		MinY:    p.MaxHeight,
		MaxY:    0,
	}
	if t.Empty() {
		return t
	}

	t.Vertices = make([]Vertex, 0, t.Columns*t.Rows)
	for z := 0; z < t.Rows; z++ {
		for x := 0; x < t.Columns; x++ {
			v := h.At(x0+x, z0+z)
			t.Vertices = append(t.Vertices, Vertex{
				Position: [3]float32{float32(x0 + x), v, float32(z0 + z)},
			})

			world := v * p.MaxHeight
			t.MinY = math32.Min(t.MinY, world)
			t.MaxY = math32.Max(t.MaxY, world)
		}
	}

	t.Indices = StripIndices(t.Columns, t.Rows)
	return t
}

// StripIndices builds a single triangle strip over a cols x rows vertex grid.
//
// Each pair of rows emits (top, bottom) per column. After the last column
// the final index is repeated and the first index of the next row follows,
// producing degenerate triangles that carry the strip into the next row
// pair. The result has (2*cols+2)*(rows-1) indices.
func StripIndices(cols, rows int) []uint32 {
	if cols <= 0 || rows <= 1 {
		return nil
	}

	perRow := cols*2 + 2
	indices := make([]uint32, perRow*(rows-1))

	for r := 0; r < rows-1; r++ {
		base := r * perRow
		for c := 0; c < cols; c++ {
			indices[base+c*2] = uint32(r*cols + c)
			indices[base+c*2+1] = uint32((r+1)*cols + c)
		}

		// Degenerate bridge
		end := base + cols*2
		indices[end] = indices[end-1]
		indices[end+1] = uint32((r + 1) * cols)
	}

	return indices
}

// sampleRange maps a world-space span to a half-open sample index range
// [first, last+1) clamped to the grid.
func sampleRange(min, max, tileSize float32, size int) (int, int) {
	first := clampi(int(min/tileSize), 0, size)
	last := clampi(int(max/tileSize), 0, size-1)
	if last < first {
		return first, first
	}
	return first, last + 1
}
