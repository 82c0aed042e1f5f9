package quadtree

import (
	"fmt"
	"sync"

	"github.com/Faultbox/quadterrain/pkg/math"
)

// Volume is anything a node's bounds can be tested against, typically a
// view frustum.
type Volume interface {
	IntersectsAABB(math.AABB) bool
}

// Stats counts the work done by one traversal.
type Stats struct {
	Visited int `json:"visited"` // Nodes whose bounds were tested
	Culled  int `json:"culled"`  // Nodes rejected, including their subtrees
	Leaves  int `json:"leaves"`  // Leaves passed to the callback
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Visited += o.Visited
	s.Culled += o.Culled
	s.Leaves += o.Leaves
}

// Traverse visits every leaf under n whose bounds intersect vol and calls
// onLeaf once for each. A node that misses vol is skipped together with its
// whole subtree; children always lie inside their parent's bounds.
func Traverse(n *Node, vol Volume, onLeaf func(*Node)) Stats {
	var s Stats
	traverse(n, vol, onLeaf, &s)
	return s
}

func traverse(n *Node, vol Volume, onLeaf func(*Node), s *Stats) {
	s.Visited++
	if !vol.IntersectsAABB(n.Bounds) {
		s.Culled++
		return
	}

	switch n.Kind {
	case Leaf:
		s.Leaves++
		onLeaf(n)
	case Internal:
		for _, c := range n.Children {
			traverse(c, vol, onLeaf, s)
		}
	default:
		panic(fmt.Sprintf("quadtree: unknown node kind %v", n.Kind))
	}
}

// Traverse walks the whole tree against vol. See Traverse.
func (t *Tree) Traverse(vol Volume, onLeaf func(*Node)) Stats {
	return Traverse(t.Root, vol, onLeaf)
}

// CollectVisible returns the leaves under n that intersect vol, in
// traversal order.
func CollectVisible(n *Node, vol Volume) ([]*Node, Stats) {
	var leaves []*Node
	s := Traverse(n, vol, func(leaf *Node) {
		leaves = append(leaves, leaf)
	})
	return leaves, s
}

// CollectVisibleParallel is CollectVisible with subtrees culled on up to
// workers goroutines. The upper levels are expanded in place until there
// are at least workers subtrees, each subtree is traversed on its own
// goroutine, and the results are joined in subtree order, so the output
// matches CollectVisible exactly.
func CollectVisibleParallel(n *Node, vol Volume, workers int) ([]*Node, Stats) {
	if workers <= 1 {
		return CollectVisible(n, vol)
	}

	var stats Stats
	tasks := []*Node{n}
	for len(tasks) < workers {
		next := make([]*Node, 0, len(tasks)*4)
		expanded := false
		for _, t := range tasks {
			if t.Kind != Internal {
				next = append(next, t)
				continue
			}
			stats.Visited++
			if !vol.IntersectsAABB(t.Bounds) {
				stats.Culled++
				continue
			}
			next = append(next, t.Children[:]...)
			expanded = true
		}
		tasks = next
		if !expanded {
			break
		}
	}

	results := make([][]*Node, len(tasks))
	partial := make([]Stats, len(tasks))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, t := range tasks {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			results[i], partial[i] = CollectVisible(t, vol)
		}()
	}
	wg.Wait()

	var leaves []*Node
	for i := range tasks {
		leaves = append(leaves, results[i]...)
		stats.Add(partial[i])
	}
	return leaves, stats
}
