package renderer

import (
	"errors"
	"fmt"
	stdmath "math"

	"github.com/Faultbox/quadterrain/internal/engine/terrain"
)

// ErrBadTileID is returned when tile IDs are not a permutation of 0..n-1.
var ErrBadTileID = errors.New("tile IDs must be unique and in [0, n)")

// Range locates one tile's strip inside a Batch index buffer.
type Range struct {
	FirstIndex int // Offset into Batch.Indices
	Count      int // Indices to draw (Tile.DrawCount)
}

// Batch packs the geometry of many tiles into one vertex and one index
// buffer so a backend can upload everything once. Each tile's indices are
// rebased by the number of vertices packed before it.
type Batch struct {
	Vertices []terrain.Vertex
	Indices  []uint32
	Ranges   []Range // Indexed by Tile.ID
}

// NewBatch packs tiles in tile ID order.
func NewBatch(tiles []*terrain.Tile) (*Batch, error) {
	ordered := make([]*terrain.Tile, len(tiles))
	var nv, ni int
	for _, t := range tiles {
		if t.ID < 0 || t.ID >= len(tiles) || ordered[t.ID] != nil {
			return nil, fmt.Errorf("%w: got %d among %d tiles", ErrBadTileID, t.ID, len(tiles))
		}
		ordered[t.ID] = t
		nv += len(t.Vertices)
		ni += len(t.Indices)
	}
	if uint64(nv) > stdmath.MaxUint32 {
		return nil, fmt.Errorf("batch has %d vertices, more than 32-bit indices can address", nv)
	}

	b := &Batch{
		Vertices: make([]terrain.Vertex, 0, nv),
		Indices:  make([]uint32, 0, ni),
		Ranges:   make([]Range, len(tiles)),
	}
	for _, t := range ordered {
		base := uint32(len(b.Vertices))
		b.Ranges[t.ID] = Range{FirstIndex: len(b.Indices), Count: t.DrawCount()}

		b.Vertices = append(b.Vertices, t.Vertices...)
		for _, idx := range t.Indices {
			b.Indices = append(b.Indices, base+idx)
		}
	}
	return b, nil
}

// Range returns the index range of tile, or false if the tile is not part
// of the batch or has nothing to draw.
func (b *Batch) Range(tile *terrain.Tile) (Range, bool) {
	if tile.ID < 0 || tile.ID >= len(b.Ranges) {
		return Range{}, false
	}
	r := b.Ranges[tile.ID]
	return r, r.Count > 0
}
