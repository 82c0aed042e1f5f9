package main

import (
	"flag"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/quadterrain/internal/config"
	"github.com/Faultbox/quadterrain/internal/engine/camera"
	"github.com/Faultbox/quadterrain/internal/engine/quadtree"
	"github.com/Faultbox/quadterrain/internal/engine/renderer"
	"github.com/Faultbox/quadterrain/internal/engine/scene"
	"github.com/Faultbox/quadterrain/internal/engine/window"
	"github.com/Faultbox/quadterrain/internal/logger"
)

// titleInterval is how many frames pass between window title updates.
const titleInterval = 30

// viewControls is the state the viewer's window events change.
type viewControls struct {
	wireframe bool
	bounds    bool
	width     int
	height    int
	resized   bool
	quit      bool
}

func (c *viewControls) handle(ev window.Event) {
	switch ev.Type {
	case window.EventQuit:
		c.quit = true
	case window.EventResize:
		if ev.Width > 0 && ev.Height > 0 {
			c.width, c.height = ev.Width, ev.Height
			c.resized = true
		}
	case window.EventToggleWireframe:
		c.wireframe = !c.wireframe
	case window.EventToggleBounds:
		c.bounds = !c.bounds
	}
}

func viewTitle(fs scene.FrameStats, total int) string {
	return fmt.Sprintf("quadterrain - %d/%d leaves, %d culled", fs.Leaves, total, fs.Culled)
}

func cmdView(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	wireframe := fs.Bool("wireframe", cfg.Graphics.Wireframe, "Start in wireframe mode (toggle with Q)")
	bounds := fs.Bool("bounds", false, "Start with leaf bounds shown (toggle with B)")
	fs.Parse(args)

	log := logger.Named("view")

	hm, err := loadHeightmap(cfg)
	if err != nil {
		return err
	}

	win, err := window.New(window.Config{
		Title:      "quadterrain",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	width, height := win.Size()
	rend, err := renderer.New(renderer.Config{Width: width, Height: height, Wireframe: *wireframe})
	if err != nil {
		return err
	}
	defer rend.Close()

	terrainRend, err := renderer.NewTerrainRenderer(treeConfig(cfg).Params())
	if err != nil {
		return err
	}
	defer terrainRend.Destroy()

	boundsRend, err := renderer.NewBoundsRenderer()
	if err != nil {
		return err
	}
	defer boundsRend.Destroy()

	sc, err := scene.New(scene.Config{Tree: treeConfig(cfg), Workers: cfg.Terrain.Workers}, hm, terrainRend)
	if err != nil {
		return err
	}
	tree := sc.Tree()
	if err := terrainRend.Upload(tree.Tiles()); err != nil {
		return err
	}

	path, err := newPath(cfg, sc.Bounds())
	if err != nil {
		return err
	}
	proj := projection(cfg)
	if a := rend.Aspect(); a > 0 {
		proj.Aspect = a
	}

	controls := viewControls{wireframe: *wireframe, bounds: *bounds, width: width, height: height}
	events := make([]window.Event, 0, 8)

	log.Info("viewer started",
		zap.String("path", cfg.Camera.Path),
		zap.Int("leaves", tree.LeafCount),
		zap.Bool("wireframe", controls.wireframe),
	)

	var frames uint64
	for {
		events = win.PollEvents(events[:0])
		for _, ev := range events {
			controls.handle(ev)
		}
		if controls.quit {
			break
		}
		if controls.resized {
			rend.Resize(controls.width, controls.height)
			proj.Aspect = rend.Aspect()
			controls.resized = false
		}
		rend.SetWireframe(controls.wireframe)

		path.Step()
		view := camera.Snapshot(path.Camera(), proj)

		rend.Begin()
		terrainRend.Begin(view)
		stats := sc.Frame(view)
		terrainRend.End()

		if controls.bounds {
			visible, _ := quadtree.CollectVisible(tree.Root, view.Frustum)
			boundsRend.Draw(view, visible)
		}
		rend.End()
		win.SwapBuffers()

		frames++
		if frames%titleInterval == 0 {
			win.SetTitle(viewTitle(stats, tree.LeafCount))
		}
	}

	log.Info("viewer closed", zap.Uint64("frames", frames))
	return nil
}
