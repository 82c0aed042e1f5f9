// quadterrain builds quadtree terrain from heightmaps, exercises frustum
// culling headless and renders it in an OpenGL window.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/quadterrain/internal/config"
	"github.com/Faultbox/quadterrain/internal/logger"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := initLogger(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	switch command {
	case "build":
		err = cmdBuild(cfg, args[1:])
	case "bench":
		err = cmdBench(cfg, args[1:])
	case "gen", "generate":
		err = cmdGen(cfg, args[1:])
	case "export":
		err = cmdExport(cfg, args[1:])
	case "view":
		err = cmdView(cfg, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func initLogger(cfg *config.Config) error {
	opts := logger.Options{
		Level:    cfg.Logging.Level,
		Encoding: cfg.Logging.Encoding,
		Console:  true,
	}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	return logger.InitWithOptions(opts)
}

func printUsage() {
	fmt.Println(`quadterrain - quadtree heightmap terrain tool

Usage:
  quadterrain [global flags] <command> [options]

Commands:
  build  [-json]                     Build the quadtree and print a summary
  bench                              Run frames along a camera path and report culling stats
  gen    [-o file.png]               Generate a perlin heightmap
  export [-o file.obj] [-all] [-bounds] [-map dir]
                                     Write visible leaves as OBJ
  view   [-wireframe] [-bounds]      Open a window and fly the camera path over the terrain
                                     (Q toggles wireframe, B toggles leaf bounds, Esc quits)

Global flags:
  -config file      YAML config (default ./config.yaml or the user config dir)
  -heightmap file   Heightmap image; a perlin map is generated when empty
  -depth n          Quadtree depth
  -workers n        Culling goroutines
  -frames n         Bench frame count
  -path mode        Camera path: fly, orbit or static
  -metrics-addr a   Serve Prometheus metrics during bench
  -debug            Debug logging

Examples:
  quadterrain gen -o valley.png
  quadterrain -heightmap valley.png -depth 6 build -json
  quadterrain -workers 8 -frames 1000 bench
  quadterrain -heightmap valley.png export -o visible.obj -bounds
  quadterrain -path orbit view -wireframe`)
}
