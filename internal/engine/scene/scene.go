// Package scene ties the terrain quadtree to a camera and a draw backend.
// The tree is built once when the scene is created; each frame culls it
// against the camera's view frustum and issues one draw per visible leaf.
package scene

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/quadterrain/internal/engine/camera"
	"github.com/Faultbox/quadterrain/internal/engine/quadtree"
	"github.com/Faultbox/quadterrain/internal/engine/terrain"
	"github.com/Faultbox/quadterrain/internal/logger"
	"github.com/Faultbox/quadterrain/pkg/math"
)

// Config contains scene configuration options.
type Config struct {
	Tree quadtree.Config

	// Workers > 1 culls subtrees on that many goroutines. Draws are still
	// issued from the goroutine calling Frame.
	Workers int
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Tree:    quadtree.DefaultConfig(),
		Workers: 1,
	}
}

// FrameStats describes one rendered frame.
type FrameStats struct {
	Frame uint64 `json:"frame"`
	quadtree.Stats
	Vertices int           `json:"vertices"`
	Indices  int           `json:"indices"`
	Duration time.Duration `json:"duration_ns"`
}

// Scene manages a terrain quadtree and draws it frame by frame.
type Scene struct {
	config  Config
	sampler terrain.Sampler
	tree    *quadtree.Tree
	drawer  Drawer
	log     *zap.Logger

	frame uint64
}

// New builds the terrain quadtree from h and returns a scene drawing into d.
func New(cfg Config, h terrain.Sampler, d Drawer) (*Scene, error) {
	if d == nil {
		return nil, fmt.Errorf("scene: nil drawer")
	}

	log := logger.Named("scene")
	start := time.Now()

	tree, err := quadtree.Build(h, cfg.Tree)
	if err != nil {
		return nil, err
	}
	instrumentBuild(tree, start)

	log.Info("terrain quadtree built",
		zap.Int("width", h.Width()),
		zap.Int("height", h.Height()),
		zap.Int("depth", cfg.Tree.Depth),
		zap.Int("nodes", tree.NodeCount),
		zap.Int("leaves", tree.LeafCount),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Scene{
		config:  cfg,
		sampler: h,
		tree:    tree,
		drawer:  d,
		log:     log,
	}, nil
}

// Tree returns the scene's quadtree.
func (s *Scene) Tree() *quadtree.Tree {
	return s.tree
}

// Bounds returns the world-space bounds of the whole terrain.
func (s *Scene) Bounds() math.AABB {
	return s.tree.Root.Bounds
}

// Frame culls the tree against view and draws every visible leaf.
func (s *Scene) Frame(view camera.View) FrameStats {
	start := time.Now()
	s.frame++
	fs := FrameStats{Frame: s.frame}

	draw := func(n *quadtree.Node) {
		s.drawer.DrawIndexedTriangleStrip(n.Tile)
		fs.Vertices += len(n.Tile.Vertices)
		fs.Indices += n.Tile.DrawCount()
	}

	if s.config.Workers > 1 {
		var leaves []*quadtree.Node
		leaves, fs.Stats = quadtree.CollectVisibleParallel(s.tree.Root, view.Frustum, s.config.Workers)
		for _, n := range leaves {
			draw(n)
		}
	} else {
		fs.Stats = quadtree.Traverse(s.tree.Root, view.Frustum, draw)
	}

	fs.Duration = time.Since(start)
	instrumentFrame(fs)

	s.log.Debug("frame drawn",
		zap.Uint64("frame", fs.Frame),
		zap.Int("leaves", fs.Leaves),
		zap.Int("culled", fs.Culled),
		zap.Int("visited", fs.Visited),
		zap.Duration("elapsed", fs.Duration),
	)
	return fs
}

// TerrainHeight returns the world height of the sample nearest to
// (worldX, worldZ). Points off the terrain take the nearest edge sample.
func (s *Scene) TerrainHeight(worldX, worldZ float32) float32 {
	ts := s.config.Tree.TileSize
	x := int(worldX/ts + 0.5)
	z := int(worldZ/ts + 0.5)
	if worldX < 0 {
		x = 0
	}
	if worldZ < 0 {
		z = 0
	}
	return s.sampler.At(x, z) * s.config.Tree.MaxHeight
}
