package scene

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Faultbox/quadterrain/internal/engine/quadtree"
)

var (
	framesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "terrain_frames_total",
		Help: "The number of frames drawn.",
	})

	leavesDrawn = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "terrain_leaves_drawn",
		Help:    "The number of quadtree leaves drawn per frame.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 14),
	})

	nodesVisited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "terrain_nodes_visited_total",
		Help: "The number of quadtree nodes tested against a view frustum.",
	})

	nodesCulled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "terrain_nodes_culled_total",
		Help: "The number of quadtree nodes rejected by frustum culling.",
	})

	frameLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "terrain_frame_seconds",
		Help:    "The time to cull and draw one frame.",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 16),
	})

	buildDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "terrain_build_seconds",
		Help: "The time taken by the last quadtree build.",
	})

	treeLeaves = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "terrain_tree_leaves",
		Help: "The number of leaves in the current quadtree.",
	})
)

func instrumentBuild(tree *quadtree.Tree, start time.Time) {
	buildDuration.Set(time.Since(start).Seconds())
	treeLeaves.Set(float64(tree.LeafCount))
}

func instrumentFrame(fs FrameStats) {
	framesTotal.Inc()
	leavesDrawn.Observe(float64(fs.Leaves))
	nodesVisited.Add(float64(fs.Visited))
	nodesCulled.Add(float64(fs.Culled))
	frameLatency.Observe(fs.Duration.Seconds())
}
