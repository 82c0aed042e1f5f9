package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagHeightmap   = flag.String("heightmap", "", "Heightmap image (PNG, JPEG, BMP, TIFF)")
	flagDepth       = flag.Int("depth", -1, "Quadtree depth")
	flagWorkers     = flag.Int("workers", 0, "Culling goroutines (1 = sequential)")
	flagSeed        = flag.Int64("seed", 0, "Seed for generated heightmaps")
	flagFrames      = flag.Int("frames", 0, "Frames to run in bench")
	flagPath        = flag.String("path", "", "Camera path: fly, orbit or static")
	flagMetricsAddr = flag.String("metrics-addr", "", "Serve Prometheus metrics on this address")
	flagLogFormat   = flag.String("log-format", "", "Log encoding: console or json")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagHeightmap != "" {
		cfg.Terrain.Heightmap = *flagHeightmap
	}
	if *flagDepth >= 0 {
		cfg.Terrain.Depth = *flagDepth
	}
	if *flagWorkers > 0 {
		cfg.Terrain.Workers = *flagWorkers
	}
	if *flagSeed != 0 {
		cfg.Terrain.Generate.Seed = *flagSeed
	}
	if *flagFrames > 0 {
		cfg.Bench.Frames = *flagFrames
	}
	if *flagPath != "" {
		cfg.Camera.Path = *flagPath
	}
	if *flagMetricsAddr != "" {
		cfg.Metrics.Addr = *flagMetricsAddr
	}
	if *flagLogFormat != "" {
		cfg.Logging.Encoding = *flagLogFormat
	}
}
