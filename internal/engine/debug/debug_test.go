package debug

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/quadterrain/internal/engine/quadtree"
	"github.com/Faultbox/quadterrain/internal/engine/terrain"
	"github.com/Faultbox/quadterrain/pkg/math"
)

func testTree(t *testing.T, w, h, depth int) *quadtree.Tree {
	t.Helper()
	samples := make([]float32, w*h)
	for i := range samples {
		samples[i] = float32(i%w) / float32(w)
	}
	hm, err := terrain.NewHeightmap(w, h, samples)
	if err != nil {
		t.Fatalf("failed to create heightmap: %v", err)
	}
	tree, err := quadtree.Build(hm, quadtree.Config{Depth: depth, TileSize: 2, MaxHeight: 100})
	if err != nil {
		t.Fatalf("failed to build tree: %v", err)
	}
	return tree
}

func TestBBoxWireframe(t *testing.T) {
	b := math.AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 2, 3}}
	verts := BBoxWireframe(b)

	if len(verts) != BBoxWireframeVertexCount*3 {
		t.Fatalf("expected %d floats, got %d", BBoxWireframeVertexCount*3, len(verts))
	}

	// Every edge runs along exactly one axis.
	for i := 0; i < len(verts); i += 6 {
		changed := 0
		for axis := 0; axis < 3; axis++ {
			if verts[i+axis] != verts[i+3+axis] {
				changed++
			}
		}
		if changed != 1 {
			t.Errorf("edge %d changes %d axes, expected 1", i/6, changed)
		}
	}

	padded := BBoxWireframePadded(b, 1)
	if padded[0] != -1 || padded[1] != -1 || padded[2] != -1 {
		t.Errorf("expected padded first corner (-1, -1, -1), got %v", padded[:3])
	}
}

func TestLeafWireframes(t *testing.T) {
	tree := testTree(t, 8, 8, 1)
	leaves := tree.Leaves()

	verts := LeafWireframes(nil, leaves, 0.5)
	if len(verts) != len(leaves)*BBoxWireframeVertexCount*3 {
		t.Fatalf("expected %d floats, got %d", len(leaves)*BBoxWireframeVertexCount*3, len(verts))
	}

	for i, n := range leaves {
		want := n.Bounds.Min.Sub(mgl32.Vec3{0.5, 0.5, 0.5})
		got := mgl32.Vec3{verts[i*72], verts[i*72+1], verts[i*72+2]}
		if got != want {
			t.Errorf("leaf %d: expected first corner %v, got %v", i, want, got)
		}
	}

	reused := LeafWireframes(verts[:0], leaves[:1], 0)
	if len(reused) != BBoxWireframeVertexCount*3 {
		t.Errorf("expected one box after reuse, got %d floats", len(reused))
	}
}

func TestWriteOBJ(t *testing.T) {
	tree := testTree(t, 4, 4, 1)
	leaves := tree.Leaves()

	var buf bytes.Buffer
	st, err := WriteOBJ(&buf, leaves, OBJOptions{Params: terrain.Params{TileSize: 2, MaxHeight: 100}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Leaves are 3x3, 2x3, 3x2 and 2x2 samples.
	if st.Objects != 4 {
		t.Errorf("expected 4 objects, got %d", st.Objects)
	}
	if st.Vertices != 9+6+6+4 {
		t.Errorf("expected 25 vertices, got %d", st.Vertices)
	}
	if want := 2 * (4 + 2 + 2 + 1); st.Faces != want {
		t.Errorf("expected %d faces, got %d", want, st.Faces)
	}

	out := buf.String()
	if got := strings.Count(out, "\nv "); got != st.Vertices {
		t.Errorf("expected %d vertex lines, got %d", st.Vertices, got)
	}
	if got := strings.Count(out, "\nf "); got != st.Faces {
		t.Errorf("expected %d face lines, got %d", st.Faces, got)
	}
	if !strings.Contains(out, "o leaf_3\n") {
		t.Error("expected an object per leaf")
	}
	// Sample (3, 3) of the far corner in world space
	if !strings.Contains(out, "v 6 75 6\n") {
		t.Error("expected world-scaled far corner vertex")
	}
}

func TestWriteOBJBounds(t *testing.T) {
	tree := testTree(t, 4, 4, 1)

	var buf bytes.Buffer
	st, err := WriteOBJ(&buf, tree.Leaves()[:1], OBJOptions{Params: terrain.DefaultParams(), Bounds: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Lines != 12 {
		t.Errorf("expected 12 bounding box lines, got %d", st.Lines)
	}
	if st.Vertices != 9+8 {
		t.Errorf("expected 17 vertices, got %d", st.Vertices)
	}
	if !strings.Contains(buf.String(), "l 10 11\n") {
		t.Error("expected first box edge to reference the first corner vertex")
	}
}

func TestWriteOBJRejectsInternalNodes(t *testing.T) {
	tree := testTree(t, 4, 4, 1)
	if _, err := WriteOBJ(&bytes.Buffer{}, []*quadtree.Node{tree.Root}, OBJOptions{}); err == nil {
		t.Error("expected error for internal node")
	}
}

func TestVisibilityMap(t *testing.T) {
	tree := testTree(t, 8, 8, 1)
	leaves := tree.Leaves()

	img := VisibilityMap(tree, leaves[:1])
	if img.Bounds() != image.Rect(0, 0, 8, 8) {
		t.Fatalf("expected 8x8 image, got %v", img.Bounds())
	}

	if img.NRGBAAt(0, 0) != borderColor {
		t.Errorf("expected border at leaf origin, got %v", img.NRGBAAt(0, 0))
	}
	if img.NRGBAAt(5, 5) != culledColor {
		t.Errorf("expected culled color in last leaf, got %v", img.NRGBAAt(5, 5))
	}
	if c := img.NRGBAAt(1, 1); c == culledColor || c == borderColor {
		t.Errorf("expected visible shading in first leaf, got %v", c)
	}
}

func TestScreenshotCapture(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "frame")
	sc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC) }

	// 1x2 image, red on top in GL order (bottom row first)
	pixels := []byte{
		0, 0, 255, 255,
		255, 0, 0, 255,
	}
	name, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(name, "frame_2024-03-01_12-30-00.png") {
		t.Errorf("unexpected file name %s", name)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("failed to open capture: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("failed to decode capture: %v", err)
	}
	if r, _, _, _ := img.At(0, 0).RGBA(); r != 0xffff {
		t.Errorf("expected red top row after flip, got r=%d", r)
	}

	if _, err := sc.CaptureFromPixels(pixels, 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}
