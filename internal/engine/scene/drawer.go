package scene

import (
	"sync"

	"github.com/Faultbox/quadterrain/internal/engine/terrain"
)

// Drawer issues draw calls for terrain tiles. Implementations receive the
// tile's strip indices and its vertex grid; the tile must not be modified.
type Drawer interface {
	DrawIndexedTriangleStrip(tile *terrain.Tile)
}

// DrawerFunc adapts a function to the Drawer interface.
type DrawerFunc func(tile *terrain.Tile)

// DrawIndexedTriangleStrip calls f(tile).
func (f DrawerFunc) DrawIndexedTriangleStrip(tile *terrain.Tile) {
	f(tile)
}

// CountingDrawer is a headless Drawer that only counts what it is asked to
// draw. It is safe for concurrent use.
type CountingDrawer struct {
	mu       sync.Mutex
	draws    int
	vertices int
	indices  int
	tiles    map[int]int
}

// NewCountingDrawer returns an empty CountingDrawer.
func NewCountingDrawer() *CountingDrawer {
	return &CountingDrawer{tiles: make(map[int]int)}
}

// DrawIndexedTriangleStrip records one draw of tile.
func (d *CountingDrawer) DrawIndexedTriangleStrip(tile *terrain.Tile) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.draws++
	d.vertices += len(tile.Vertices)
	d.indices += tile.DrawCount()
	d.tiles[tile.ID]++
}

// DrawCounts holds CountingDrawer totals.
type DrawCounts struct {
	Draws    int `json:"draws"`
	Vertices int `json:"vertices"`
	Indices  int `json:"indices"`
}

// Counts returns the totals since the last Reset.
func (d *CountingDrawer) Counts() DrawCounts {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DrawCounts{Draws: d.draws, Vertices: d.vertices, Indices: d.indices}
}

// TileDraws returns how many times the tile with the given ID was drawn.
func (d *CountingDrawer) TileDraws(id int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tiles[id]
}

// Reset clears all counts.
func (d *CountingDrawer) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.draws, d.vertices, d.indices = 0, 0, 0
	clear(d.tiles)
}
