package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/segmentio/encoding/json"

	"github.com/Faultbox/quadterrain/internal/config"
	"github.com/Faultbox/quadterrain/internal/engine/camera"
	"github.com/Faultbox/quadterrain/internal/engine/quadtree"
	"github.com/Faultbox/quadterrain/internal/engine/scene"
	"github.com/Faultbox/quadterrain/internal/engine/terrain"
	"github.com/Faultbox/quadterrain/internal/engine/window"
	"github.com/Faultbox/quadterrain/pkg/math"
)

func TestBenchReportAdd(t *testing.T) {
	var r benchReport
	frames := []scene.FrameStats{
		{Stats: quadtree.Stats{Visited: 5, Culled: 1, Leaves: 4}, Duration: time.Millisecond},
		{Stats: quadtree.Stats{Visited: 9, Culled: 2, Leaves: 7}, Duration: 3 * time.Millisecond},
		{Stats: quadtree.Stats{Visited: 1, Culled: 1, Leaves: 0}, Duration: 2 * time.Millisecond},
	}
	for _, fs := range frames {
		r.add(fs)
	}

	if r.Frames != 3 {
		t.Errorf("expected 3 frames, got %d", r.Frames)
	}
	if r.MinLeaves != 0 || r.MaxLeaves != 7 {
		t.Errorf("expected leaves in [0, 7], got [%d, %d]", r.MinLeaves, r.MaxLeaves)
	}
	want := quadtree.Stats{Visited: 15, Culled: 4, Leaves: 11}
	if r.Totals != want {
		t.Errorf("expected totals %+v, got %+v", want, r.Totals)
	}
	if r.Elapsed != 6*time.Millisecond {
		t.Errorf("expected 6ms elapsed, got %v", r.Elapsed)
	}
}

func TestBenchReportMinLeavesStartsAtFirstFrame(t *testing.T) {
	var r benchReport
	r.add(scene.FrameStats{Stats: quadtree.Stats{Leaves: 12}})
	r.add(scene.FrameStats{Stats: quadtree.Stats{Leaves: 20}})

	if r.MinLeaves != 12 {
		t.Errorf("expected min leaves 12, got %d", r.MinLeaves)
	}
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	in := benchReport{RunID: "run", Path: "orbit", Frames: 2, Draws: 8}

	if err := writeReport(path, &in); err != nil {
		t.Fatalf("writeReport failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !bytes.Contains(data, []byte("\n  \"run_id\"")) {
		t.Errorf("expected indented report, got %s", data)
	}

	var out benchReport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if out.RunID != "run" || out.Path != "orbit" || out.Frames != 2 || out.Draws != 8 {
		t.Errorf("expected report to round trip, got %+v", out)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteReportErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing", "report.json")
	if err := writeReport(missing, &benchReport{}); err == nil {
		t.Error("expected error for a report in a missing directory")
	}

	if err := encodeReport(failingWriter{}, &benchReport{RunID: "run"}); err == nil {
		t.Error("expected write error to be returned")
	}
}

func TestTreeConfigFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Terrain.Depth = 3
	cfg.Terrain.TileSize = 4
	cfg.Terrain.MaxHeight = 50

	got := treeConfig(cfg)
	want := quadtree.Config{Depth: 3, TileSize: 4, MaxHeight: 50}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestGenerateParamsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Terrain.Generate.Width = 64
	cfg.Terrain.Generate.Height = 32
	cfg.Terrain.Generate.Seed = 7

	p := generateParams(cfg)
	if p.Width != 64 || p.Height != 32 || p.Seed != 7 {
		t.Errorf("expected 64x32 seed 7, got %dx%d seed %d", p.Width, p.Height, p.Seed)
	}
	if p.Octaves != cfg.Terrain.Generate.Octaves {
		t.Errorf("expected %d octaves, got %d", cfg.Terrain.Generate.Octaves, p.Octaves)
	}
}

func TestNewPathModes(t *testing.T) {
	cfg := config.Default()
	hm := smallHeightmap(t, cfg)
	tree, err := quadtree.Build(hm, treeConfig(cfg))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, mode := range []string{camera.PathFly, camera.PathOrbit, camera.PathStatic} {
		cfg.Camera.Path = mode
		p, err := newPath(cfg, tree.Root.Bounds)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", mode, err)
			continue
		}
		if p.Camera() == nil {
			t.Errorf("%s: expected a camera", mode)
		}
	}

	cfg.Camera.Path = "spiral"
	if _, err := newPath(cfg, tree.Root.Bounds); err == nil {
		t.Error("expected error for unknown path")
	}
}

func TestFlyPathUsesConfiguredPosition(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Path = camera.PathStatic
	cfg.Camera.Position = [3]float32{10, 20, 30}

	p, err := newPath(cfg, math.AABB{})
	if err != nil {
		t.Fatalf("newPath failed: %v", err)
	}
	pos := p.Camera().Position()
	if pos.X() != 10 || pos.Y() != 20 || pos.Z() != 30 {
		t.Errorf("expected camera at (10, 20, 30), got %v", pos)
	}
}

func smallHeightmap(t *testing.T, cfg *config.Config) *terrain.Heightmap {
	t.Helper()
	cfg.Terrain.Depth = 2
	cfg.Terrain.Generate.Width = 16
	cfg.Terrain.Generate.Height = 16

	hm, err := loadHeightmap(cfg)
	if err != nil {
		t.Fatalf("loadHeightmap failed: %v", err)
	}
	return hm
}

func TestViewControls(t *testing.T) {
	c := viewControls{width: 1280, height: 720}

	c.handle(window.Event{Type: window.EventToggleWireframe})
	if !c.wireframe {
		t.Error("expected wireframe on after Q")
	}
	c.handle(window.Event{Type: window.EventToggleWireframe})
	if c.wireframe {
		t.Error("expected wireframe off after second Q")
	}

	c.handle(window.Event{Type: window.EventToggleBounds})
	if !c.bounds {
		t.Error("expected bounds on after B")
	}

	c.handle(window.Event{Type: window.EventResize, Width: 0, Height: 600})
	if c.resized {
		t.Error("expected zero-sized resize to be ignored")
	}
	c.handle(window.Event{Type: window.EventResize, Width: 800, Height: 600})
	if !c.resized || c.width != 800 || c.height != 600 {
		t.Errorf("expected resize to 800x600, got %dx%d (resized=%v)", c.width, c.height, c.resized)
	}

	if c.quit {
		t.Fatal("expected viewer to keep running")
	}
	c.handle(window.Event{Type: window.EventQuit})
	if !c.quit {
		t.Error("expected quit")
	}
}

func TestViewTitle(t *testing.T) {
	fs := scene.FrameStats{Stats: quadtree.Stats{Leaves: 12, Culled: 5}}
	want := "quadterrain - 12/1024 leaves, 5 culled"
	if got := viewTitle(fs, 1024); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
