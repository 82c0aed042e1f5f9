package quadtree

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/quadterrain/pkg/math"
)

func perspective(eye, center mgl32.Vec3) math.Frustum {
	proj := mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 1, 500)
	view := mgl32.LookAtV(eye, center, mgl32.Vec3{0, 1, 0})
	return math.FrustumFromMatrix(proj.Mul4(view))
}

func TestTraverseEverythingVisitsAllLeaves(t *testing.T) {
	tree, err := Build(noisy(t, 32, 32), Config{Depth: 3, TileSize: 2, MaxHeight: 100})
	require.NoError(t, err)

	seen := make(map[int]int)
	stats := tree.Traverse(math.Everything{}, func(n *Node) {
		require.True(t, n.IsLeaf())
		seen[n.Tile.ID]++
	})

	require.Len(t, seen, tree.LeafCount)
	for id, count := range seen {
		require.Equal(t, 1, count, "leaf %d", id)
	}
	require.Equal(t, Stats{Visited: tree.NodeCount, Culled: 0, Leaves: tree.LeafCount}, stats)
}

func TestTraverseCullsRoot(t *testing.T) {
	tree, err := Build(noisy(t, 32, 32), Config{Depth: 3, TileSize: 2, MaxHeight: 100})
	require.NoError(t, err)

	far := math.FrustumFromAABB(math.AABB{
		Min: mgl32.Vec3{1000, 0, 1000},
		Max: mgl32.Vec3{1100, 100, 1100},
	})

	calls := 0
	stats := tree.Traverse(far, func(*Node) { calls++ })
	require.Equal(t, 0, calls)
	require.Equal(t, Stats{Visited: 1, Culled: 1}, stats)
}

func TestTraverseSingleQuadrant(t *testing.T) {
	tree, err := Build(noisy(t, 32, 32), Config{Depth: 3, TileSize: 2, MaxHeight: 100})
	require.NoError(t, err)

	for q, quad := range tree.Root.Children {
		box := quad.Bounds
		box.Min[0] += 0.5
		box.Min[2] += 0.5
		box.Max[0] -= 0.5
		box.Max[2] -= 0.5
		box.Min[1] = -1
		box.Max[1] = 101

		want, _ := CollectVisible(quad, math.Everything{})
		got, stats := CollectVisible(tree.Root, math.FrustumFromAABB(box))

		require.Equal(t, want, got, "quadrant %d", q)
		require.Equal(t, len(want), stats.Leaves)
		// The other three quadrants are rejected at their roots.
		require.Equal(t, 3, stats.Culled)
	}
}

func TestTraverseMatchesBruteForce(t *testing.T) {
	tree, err := Build(noisy(t, 64, 64), Config{Depth: 4, TileSize: 2, MaxHeight: 100})
	require.NoError(t, err)

	views := []math.Frustum{
		perspective(mgl32.Vec3{-20, 80, -20}, mgl32.Vec3{40, 0, 40}),
		perspective(mgl32.Vec3{64, 300, 64}, mgl32.Vec3{64, 0, 65}),
		perspective(mgl32.Vec3{120, 30, 10}, mgl32.Vec3{0, 30, 10}),
	}

	for i, f := range views {
		var want []*Node
		for _, leaf := range tree.Leaves() {
			if f.IntersectsAABB(leaf.Bounds) {
				want = append(want, leaf)
			}
		}

		got, stats := CollectVisible(tree.Root, f)
		require.Equal(t, want, got, "view %d", i)
		require.Equal(t, len(got), stats.Leaves)
		require.LessOrEqual(t, stats.Visited, tree.NodeCount)
	}
}

func TestCollectVisibleParallelMatchesSequential(t *testing.T) {
	tree, err := Build(noisy(t, 64, 64), Config{Depth: 4, TileSize: 2, MaxHeight: 100})
	require.NoError(t, err)

	volumes := []Volume{
		math.Everything{},
		perspective(mgl32.Vec3{-20, 80, -20}, mgl32.Vec3{40, 0, 40}),
		math.FrustumFromAABB(math.AABB{Min: mgl32.Vec3{500, 0, 500}, Max: mgl32.Vec3{600, 1, 600}}),
	}

	for i, vol := range volumes {
		want, wantStats := CollectVisible(tree.Root, vol)
		for _, workers := range []int{0, 1, 2, 4, 7, 64} {
			got, gotStats := CollectVisibleParallel(tree.Root, vol, workers)
			require.Equal(t, want, got, "volume %d, %d workers", i, workers)
			require.Equal(t, wantStats, gotStats, "volume %d, %d workers", i, workers)
		}
	}
}

func TestCollectVisibleParallelLeafRoot(t *testing.T) {
	tree, err := Build(noisy(t, 8, 8), Config{Depth: 0, TileSize: 1, MaxHeight: 1})
	require.NoError(t, err)

	got, stats := CollectVisibleParallel(tree.Root, math.Everything{}, 8)
	require.Equal(t, []*Node{tree.Root}, got)
	require.Equal(t, Stats{Visited: 1, Leaves: 1}, stats)
}

func BenchmarkTraverse(b *testing.B) {
	tree, err := Build(noisy(b, 512, 512), Config{Depth: 6, TileSize: 2, MaxHeight: 100})
	require.NoError(b, err)
	f := perspective(mgl32.Vec3{-100, 200, -100}, mgl32.Vec3{300, 0, 300})

	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			CollectVisible(tree.Root, f)
		}
	})
	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			CollectVisibleParallel(tree.Root, f, 8)
		}
	})
}
