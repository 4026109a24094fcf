// Package main is the entry point for the terravista track viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/trailforge/terravista/internal/config"
	"github.com/trailforge/terravista/internal/dem"
	"github.com/trailforge/terravista/internal/engine/terrain"
	"github.com/trailforge/terravista/internal/logger"
	"github.com/trailforge/terravista/internal/playback"
	"github.com/trailforge/terravista/internal/track"
	"github.com/trailforge/terravista/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== terravista ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	trackPath := config.TrackPath()
	demPath := config.DEMPath()
	if trackPath == "" || demPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s --dem terrain.asc track.gpx\n", os.Args[0])
		os.Exit(2)
	}

	// All scene construction happens before any GL state exists, so
	// a bad input never leaves a half-open window behind.
	scene, route, err := buildScene(cfg, demPath, trackPath)
	if err != nil {
		logger.Error("failed to build scene", zap.Error(err))
		os.Exit(1)
	}

	v, err := viewer.New(cfg, scene, route)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

// buildScene loads the elevation grid and the track, builds the
// terrain mesh and drapes the track onto it.
func buildScene(cfg *config.Config, demPath, trackPath string) (*terrain.Mesh, *playback.Route, error) {
	samples, err := track.Load(trackPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load track %s: %w", trackPath, err)
	}
	times := track.Relativize(samples)
	logger.Info("track loaded",
		zap.String("path", trackPath),
		zap.Int("samples", len(samples)),
	)

	grid, err := dem.LoadASC(demPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load elevation grid %s: %w", demPath, err)
	}
	logger.Info("elevation grid loaded",
		zap.String("path", demPath),
		zap.Int("rows", grid.Rows()),
		zap.Int("cols", grid.Cols()),
	)

	mesh, err := terrain.Build(grid, terrain.Options{
		TargetSize:   cfg.Scene.TargetSize,
		MaxDimension: cfg.Scene.MaxGridDim,
		Exaggeration: cfg.Scene.Exaggeration,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build terrain: %w", err)
	}
	logger.Info("terrain mesh built",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("indices", len(mesh.Indices)),
	)

	points := terrain.ProjectTrack(grid, mesh.Frame, samples, cfg.Scene.PathLift)
	route, err := playback.NewRoute(points, times)
	if err != nil {
		return nil, nil, fmt.Errorf("build route: %w", err)
	}

	return mesh, route, nil
}
