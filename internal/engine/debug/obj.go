package debug

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/quadterrain/internal/engine/quadtree"
	"github.com/Faultbox/quadterrain/internal/engine/terrain"
)

// OBJOptions controls WriteOBJ output.
type OBJOptions struct {
	Params terrain.Params // World scale applied to tile vertices
	Bounds bool           // Also write each leaf's bounding box as line elements
}

// OBJStats counts what WriteOBJ wrote.
type OBJStats struct {
	Objects  int `json:"objects"`
	Vertices int `json:"vertices"`
	Faces    int `json:"faces"`
	Lines    int `json:"lines"`
}

// WriteOBJ writes the geometry of leaves as a Wavefront OBJ file, one object
// per leaf. Strips are expanded into triangles with consistent winding and
// degenerate triangles are dropped.
func WriteOBJ(w io.Writer, leaves []*quadtree.Node, opts OBJOptions) (OBJStats, error) {
	bw := bufio.NewWriter(w)
	var st OBJStats

	fmt.Fprintf(bw, "# quadtree terrain, %d leaves\n", len(leaves))

	for _, n := range leaves {
		if !n.IsLeaf() {
			return st, fmt.Errorf("node at depth %d is not a leaf", n.Depth)
		}
		tile := n.Tile
		fmt.Fprintf(bw, "o leaf_%d\n", tile.ID)
		st.Objects++

		base := st.Vertices + 1 // OBJ indices are 1-based and global
		for _, v := range tile.Vertices {
			p := v.WorldPosition(opts.Params)
			fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
		}
		st.Vertices += len(tile.Vertices)

		idx := tile.Indices
		for i := 0; i+2 < len(idx); i++ {
			a, b, c := idx[i], idx[i+1], idx[i+2]
			if a == b || b == c || a == c {
				continue
			}
			if i%2 == 1 {
				a, b = b, a
			}
			fmt.Fprintf(bw, "f %d %d %d\n", base+int(a), base+int(b), base+int(c))
			st.Faces++
		}

		if opts.Bounds {
			corners := n.Bounds.Corners()
			cbase := st.Vertices + 1
			for _, c := range corners {
				fmt.Fprintf(bw, "v %g %g %g\n", c[0], c[1], c[2])
			}
			st.Vertices += len(corners)
			for _, e := range bboxEdges {
				fmt.Fprintf(bw, "l %d %d\n", cbase+e[0], cbase+e[1])
				st.Lines++
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return st, fmt.Errorf("writing obj: %w", err)
	}
	return st, nil
}
