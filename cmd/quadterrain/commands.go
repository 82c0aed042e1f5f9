package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/segmentio/encoding/json"
	"go.uber.org/zap"

	"github.com/Faultbox/quadterrain/internal/config"
	"github.com/Faultbox/quadterrain/internal/engine/camera"
	"github.com/Faultbox/quadterrain/internal/engine/debug"
	"github.com/Faultbox/quadterrain/internal/engine/quadtree"
	"github.com/Faultbox/quadterrain/internal/engine/terrain"
	"github.com/Faultbox/quadterrain/internal/logger"
	"github.com/Faultbox/quadterrain/pkg/math"
)

// loadHeightmap reads the configured heightmap, or generates one when no
// file is set.
func loadHeightmap(cfg *config.Config) (*terrain.Heightmap, error) {
	log := logger.Named("terrain")
	start := time.Now()

	if path := cfg.Terrain.Heightmap; path != "" {
		hm, err := terrain.LoadHeightmap(path)
		if err != nil {
			return nil, err
		}
		log.Info("heightmap loaded",
			zap.String("path", path),
			zap.Int("width", hm.Width()),
			zap.Int("height", hm.Height()),
			zap.Duration("elapsed", time.Since(start)),
		)
		return hm, nil
	}

	hm, err := terrain.Generate(generateParams(cfg))
	if err != nil {
		return nil, err
	}
	log.Info("heightmap generated",
		zap.Int64("seed", cfg.Terrain.Generate.Seed),
		zap.Int("width", hm.Width()),
		zap.Int("height", hm.Height()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return hm, nil
}

func generateParams(cfg *config.Config) terrain.GenerateParams {
	g := cfg.Terrain.Generate
	p := terrain.DefaultGenerateParams()
	p.Width, p.Height = g.Width, g.Height
	p.Seed = g.Seed
	p.Frequency = g.Frequency
	p.Octaves = g.Octaves
	return p
}

func treeConfig(cfg *config.Config) quadtree.Config {
	return quadtree.Config{
		Depth:     cfg.Terrain.Depth,
		TileSize:  cfg.Terrain.TileSize,
		MaxHeight: cfg.Terrain.MaxHeight,
	}
}

func projection(cfg *config.Config) camera.Projection {
	return camera.Projection{
		FovY:   cfg.Camera.FovY,
		Aspect: cfg.Camera.Aspect,
		Near:   cfg.Camera.Near,
		Far:    cfg.Camera.Far,
	}
}

// newPath sets up both cameras from the config and returns the configured
// path. The orbit camera frames bounds.
func newPath(cfg *config.Config, bounds math.AABB) (camera.Path, error) {
	fly := camera.NewFlyCamera()
	fly.Pos = mgl32.Vec3(cfg.Camera.Position)
	fly.Speed = cfg.Camera.Speed
	fly.BoostSpeed = cfg.Camera.BoostSpeed
	fly.LookAt(fly.Pos.Add(mgl32.Vec3(cfg.Camera.Direction)))

	orbit := camera.NewOrbitCamera()
	orbit.FitToBounds(bounds)

	return camera.NewPath(cfg.Camera.Path, fly, orbit)
}

func cmdBuild(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Print the summary as JSON")
	fs.Parse(args)

	hm, err := loadHeightmap(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	tree, err := quadtree.Build(hm, treeConfig(cfg))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	summary := tree.Summary()

	logger.Info("quadtree built",
		zap.Int("nodes", summary.Nodes),
		zap.Int("leaves", summary.Leaves),
		zap.Duration("elapsed", elapsed),
	)

	if *asJSON {
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Heightmap:  %d x %d samples\n", hm.Width(), hm.Height())
	fmt.Printf("Depth:      %d\n", summary.Depth)
	fmt.Printf("Nodes:      %d\n", summary.Nodes)
	fmt.Printf("Leaves:     %d\n", summary.Leaves)
	fmt.Printf("Vertices:   %d\n", summary.Vertices)
	fmt.Printf("Indices:    %d\n", summary.Indices)
	fmt.Printf("Bounds:     %v - %v\n", summary.Bounds.Min, summary.Bounds.Max)
	fmt.Printf("Build time: %v\n", elapsed)
	return nil
}

func cmdGen(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	output := fs.String("o", "heightmap.png", "Output PNG")
	fs.Parse(args)

	hm, err := terrain.Generate(generateParams(cfg))
	if err != nil {
		return err
	}
	if err := terrain.SaveHeightmap(*output, hm); err != nil {
		return err
	}

	logger.Info("heightmap written",
		zap.String("path", *output),
		zap.Int("width", hm.Width()),
		zap.Int("height", hm.Height()),
		zap.Int64("seed", cfg.Terrain.Generate.Seed),
	)
	return nil
}

func cmdExport(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	output := fs.String("o", "terrain.obj", "Output OBJ file")
	all := fs.Bool("all", false, "Export every leaf instead of only visible ones")
	bounds := fs.Bool("bounds", false, "Include leaf bounding boxes")
	mapDir := fs.String("map", "", "Also write a visibility map PNG to this directory")
	fs.Parse(args)

	hm, err := loadHeightmap(cfg)
	if err != nil {
		return err
	}
	tree, err := quadtree.Build(hm, treeConfig(cfg))
	if err != nil {
		return err
	}

	path, err := newPath(cfg, tree.Root.Bounds)
	if err != nil {
		return err
	}
	view := camera.Snapshot(path.Camera(), projection(cfg))

	leaves := tree.Leaves()
	visible, stats := quadtree.CollectVisibleParallel(tree.Root, view.Frustum, cfg.Terrain.Workers)
	if !*all {
		leaves = visible
	}

	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := debug.WriteOBJ(f, leaves, debug.OBJOptions{
		Params: treeConfig(cfg).Params(),
		Bounds: *bounds,
	})
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", *output, err)
	}

	logger.Info("terrain exported",
		zap.String("path", *output),
		zap.Int("leaves", st.Objects),
		zap.Int("faces", st.Faces),
		zap.Int("visible", stats.Leaves),
		zap.Int("culled", stats.Culled),
	)

	if *mapDir != "" {
		name, err := debug.NewScreenshotCapture(*mapDir, "visibility").CaptureFromImage(debug.VisibilityMap(tree, visible))
		if err != nil {
			return err
		}
		logger.Info("visibility map written", zap.String("path", name))
	}
	return nil
}
