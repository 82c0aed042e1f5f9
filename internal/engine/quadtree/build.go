package quadtree

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/quadterrain/internal/engine/terrain"
	"github.com/Faultbox/quadterrain/pkg/math"
)

// MaxDepth is the deepest supported tree (4^12 leaves).
const MaxDepth = 12

var (
	// ErrInvalidDepth is returned for a depth outside [0, MaxDepth].
	ErrInvalidDepth = errors.New("invalid quadtree depth")
	// ErrLeafTooSmall is returned when a leaf would span less than one sample.
	ErrLeafTooSmall = errors.New("leaf footprint smaller than one sample")
	// ErrEmptyHeightmap is returned for a missing or zero-sized heightmap.
	ErrEmptyHeightmap = errors.New("empty heightmap")
	// ErrInvalidScale is returned for a non-positive tile size or max height.
	ErrInvalidScale = errors.New("invalid terrain scale")
)

// Config controls tree construction.
type Config struct {
	Depth     int     // Levels below the root; the tree has 4^Depth leaves
	TileSize  float32 // World units between heightmap samples
	MaxHeight float32 // World height of a full-scale sample
}

// DefaultConfig returns the reference sizing: depth 5 (1024 leaves).
func DefaultConfig() Config {
	p := terrain.DefaultParams()
	return Config{
		Depth:     5,
		TileSize:  p.TileSize,
		MaxHeight: p.MaxHeight,
	}
}

// Params returns the tile geometry parameters for this config.
func (c Config) Params() terrain.Params {
	return terrain.Params{TileSize: c.TileSize, MaxHeight: c.MaxHeight}
}

// Validate checks the config against the heightmap it will be built from.
func (c Config) Validate(h terrain.Sampler) error {
	if h == nil || h.Width() <= 0 || h.Height() <= 0 {
		return ErrEmptyHeightmap
	}
	if c.Depth < 0 || c.Depth > MaxDepth {
		return fmt.Errorf("%w: %d (allowed 0..%d)", ErrInvalidDepth, c.Depth, MaxDepth)
	}
	if !(c.TileSize > 0) || !(c.MaxHeight > 0) {
		return fmt.Errorf("%w: tile size %v, max height %v", ErrInvalidScale, c.TileSize, c.MaxHeight)
	}
	splits := 1 << c.Depth
	if h.Width() < splits || h.Height() < splits {
		return fmt.Errorf("%w: depth %d splits a %dx%d heightmap into %d leaves per axis",
			ErrLeafTooSmall, c.Depth, h.Width(), h.Height(), splits)
	}
	return nil
}

// Tree is an immutable terrain quadtree.
type Tree struct {
	Root      *Node
	Config    Config
	LeafCount int
	NodeCount int
}

// Build partitions the heightmap into a quadtree of Config.Depth levels.
// The root covers (0, 0) to (width*TileSize, height*TileSize) on X/Z.
// Build is deterministic: the same inputs always produce the same tree.
func Build(h terrain.Sampler, cfg Config) (*Tree, error) {
	if err := cfg.Validate(h); err != nil {
		return nil, fmt.Errorf("building quadtree: %w", err)
	}

	root := &Node{
		Bounds: math.AABB{
			Min: mgl32.Vec3{0, 0, 0},
			Max: mgl32.Vec3{float32(h.Width()) * cfg.TileSize, 0, float32(h.Height()) * cfg.TileSize},
		},
	}

	b := &builder{sampler: h, cfg: cfg, params: cfg.Params()}
	b.build(root, 0)

	return &Tree{
		Root:      root,
		Config:    cfg,
		LeafCount: b.leaves,
		NodeCount: b.nodes,
	}, nil
}

type builder struct {
	sampler terrain.Sampler
	cfg     Config
	params  terrain.Params
	leaves  int
	nodes   int
}

func (b *builder) build(n *Node, depth int) {
	b.nodes++
	n.Depth = depth

	if depth == b.cfg.Depth {
		b.makeLeaf(n)
		return
	}

	n.Kind = Internal
	for i, q := range quadrants(n.Bounds) {
		child := &Node{Bounds: q}
		b.build(child, depth+1)
		n.Children[i] = child
	}
	aggregate(n, b.cfg.MaxHeight)
}

func (b *builder) makeLeaf(n *Node) {
	tile := terrain.BuildTile(n.Bounds, b.sampler, b.params)
	tile.ID = b.leaves
	b.leaves++

	n.Kind = Leaf
	n.Tile = &tile
	n.Bounds.Min[1] = tile.MinY
	n.Bounds.Max[1] = tile.MaxY
}

// aggregate sets an internal node's Y range from its children. The minimum
// never exceeds maxHeight (an all-empty subtree keeps the empty sentinel
// from turning into a range above the terrain) and the maximum only grows,
// so aggregating twice gives the same result.
func aggregate(n *Node, maxHeight float32) {
	lo := n.Children[0].Bounds.Min[1]
	hi := n.Children[0].Bounds.Max[1]
	for _, c := range n.Children[1:] {
		lo = math32.Min(lo, c.Bounds.Min[1])
		hi = math32.Max(hi, c.Bounds.Max[1])
	}
	n.Bounds.Min[1] = math32.Min(maxHeight, lo)
	n.Bounds.Max[1] = math32.Max(n.Bounds.Max[1], hi)
}

// Walk calls fn for every node in depth-first order (parent before
// children, children in quadrant order). Returning false from fn skips the
// node's children.
func (t *Tree) Walk(fn func(*Node) bool) {
	walk(t.Root, fn)
}

func walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	switch n.Kind {
	case Leaf:
	case Internal:
		for _, c := range n.Children {
			walk(c, fn)
		}
	default:
		panic(fmt.Sprintf("quadtree: unknown node kind %v", n.Kind))
	}
}

// Leaves returns every leaf in traversal order. Leaf i has Tile.ID == i.
func (t *Tree) Leaves() []*Node {
	leaves := make([]*Node, 0, t.LeafCount)
	t.Walk(func(n *Node) bool {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}

// Tiles returns the geometry of every leaf in traversal order, ready for
// a backend upload.
func (t *Tree) Tiles() []*terrain.Tile {
	leaves := t.Leaves()
	tiles := make([]*terrain.Tile, len(leaves))
	for i, n := range leaves {
		tiles[i] = n.Tile
	}
	return tiles
}

// Summary describes the size of a built tree.
type Summary struct {
	Depth    int       `json:"depth"`
	Nodes    int       `json:"nodes"`
	Leaves   int       `json:"leaves"`
	Vertices int       `json:"vertices"`
	Indices  int       `json:"indices"`
	Bounds   math.AABB `json:"bounds"`
}

// Summary counts nodes and geometry in the tree.
func (t *Tree) Summary() Summary {
	s := Summary{
		Depth:  t.Config.Depth,
		Bounds: t.Root.Bounds,
	}
	t.Walk(func(n *Node) bool {
		s.Nodes++
		if n.IsLeaf() {
			s.Leaves++
			s.Vertices += len(n.Tile.Vertices)
			s.Indices += len(n.Tile.Indices)
		}
		return true
	})
	return s
}
