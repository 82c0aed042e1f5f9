package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
	"go.uber.org/zap"

	"github.com/Faultbox/quadterrain/internal/config"
	"github.com/Faultbox/quadterrain/internal/engine/camera"
	"github.com/Faultbox/quadterrain/internal/engine/quadtree"
	"github.com/Faultbox/quadterrain/internal/engine/scene"
	"github.com/Faultbox/quadterrain/internal/logger"
)

// benchReport is written when a bench run finishes.
type benchReport struct {
	RunID     string           `json:"run_id"`
	Path      string           `json:"path"`
	Workers   int              `json:"workers"`
	Frames    int              `json:"frames"`
	Tree      quadtree.Summary `json:"tree"`
	Totals    quadtree.Stats   `json:"totals"`
	MinLeaves int              `json:"min_leaves"`
	MaxLeaves int              `json:"max_leaves"`
	Draws     int              `json:"draws"`
	Elapsed   time.Duration    `json:"elapsed_ns"`
	AvgFrame  time.Duration    `json:"avg_frame_ns"`
}

func (r *benchReport) add(fs scene.FrameStats) {
	if r.Frames == 0 || fs.Leaves < r.MinLeaves {
		r.MinLeaves = fs.Leaves
	}
	if fs.Leaves > r.MaxLeaves {
		r.MaxLeaves = fs.Leaves
	}
	r.Frames++
	r.Totals.Add(fs.Stats)
	r.Elapsed += fs.Duration
}

func cmdBench(cfg *config.Config, args []string) error {
	runID := uuid.New().String()
	log := logger.Named("bench").With(zap.String("run_id", runID))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Addr != "" {
		srv := serveMetrics(cfg.Metrics.Addr, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	hm, err := loadHeightmap(cfg)
	if err != nil {
		return err
	}

	drawer := scene.NewCountingDrawer()
	sc, err := scene.New(scene.Config{Tree: treeConfig(cfg), Workers: cfg.Terrain.Workers}, hm, drawer)
	if err != nil {
		return err
	}

	path, err := newPath(cfg, sc.Bounds())
	if err != nil {
		return err
	}
	proj := projection(cfg)

	report := benchReport{
		RunID:   runID,
		Path:    cfg.Camera.Path,
		Workers: cfg.Terrain.Workers,
		Tree:    sc.Tree().Summary(),
	}

	log.Info("bench started",
		zap.String("path", cfg.Camera.Path),
		zap.Int("frames", cfg.Bench.Frames),
		zap.Int("workers", cfg.Terrain.Workers),
	)

	for i := 0; i < cfg.Bench.Frames; i++ {
		if ctx.Err() != nil {
			log.Warn("bench interrupted", zap.Int("frames", report.Frames))
			break
		}
		path.Step()
		report.add(sc.Frame(camera.Snapshot(path.Camera(), proj)))
	}

	report.Draws = drawer.Counts().Draws
	if report.Frames > 0 {
		report.AvgFrame = report.Elapsed / time.Duration(report.Frames)
	}

	log.Info("bench finished",
		zap.Int("frames", report.Frames),
		zap.Int("draws", report.Draws),
		zap.Int("min_leaves", report.MinLeaves),
		zap.Int("max_leaves", report.MaxLeaves),
		zap.Duration("avg_frame", report.AvgFrame),
	)

	return writeReport(cfg.Bench.Report, &report)
}

func serveMetrics(addr string, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()
	log.Info("serving metrics", zap.String("addr", addr))
	return srv
}

func writeReport(path string, r *benchReport) error {
	if path == "" {
		return encodeReport(os.Stdout, r)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeReport(f, r); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func encodeReport(w io.Writer, r *benchReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("writing bench report: %w", err)
	}
	return nil
}
