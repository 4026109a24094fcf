// Package terrain builds the renderable scene mesh from an elevation grid
// and projects track points into the same local frame.
package terrain

import (
	"errors"

	"github.com/trailforge/terravista/pkg/math"
)

// ErrDegenerateGeometry is returned when a grid is too small or flat to
// produce a renderable scene. Callers must not start the render loop after
// receiving it.
var ErrDegenerateGeometry = errors.New("terrain: degenerate geometry")

// Vertex is one terrain mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [3]float32
}

// Mesh holds the complete terrain mesh, immutable after Build. Any change
// of stride or grid rebuilds the mesh wholesale.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32

	// Rows and Cols are the downsampled grid dimensions;
	// len(Vertices) == Rows*Cols.
	Rows, Cols int

	// Frame maps world coordinates into scene units.
	Frame Frame
}

// Frame captures the world-to-scene transform chosen at build time:
// centering, per-axis horizontal scaling, vertical origin and the isotropic
// fit scale.
type Frame struct {
	CenterX, CenterY float64 // world-space center of the downsampled grid
	ScaleX, ScaleY   float64 // horizontal world-to-meters factors
	MinHeight        float32 // vertical origin
	GlobalScale      float32 // isotropic scene fit scale
	Exaggeration     float32 // vertical exaggeration baked into the mesh
}

// Project maps a world position and height into scene units.
func (f Frame) Project(worldX, worldY float64, height float32) math.Vec3 {
	return math.Vec3{
		X: float32((worldX - f.CenterX) * f.ScaleX * float64(f.GlobalScale)),
		Y: float32((worldY - f.CenterY) * f.ScaleY * float64(f.GlobalScale)),
		Z: (height - f.MinHeight) * f.GlobalScale * f.Exaggeration,
	}
}

// Options controls mesh construction.
type Options struct {
	// TargetSize is the edge length of the cube the scene is scaled into.
	TargetSize float32
	// MaxDimension caps the larger downsampled grid dimension.
	MaxDimension int
	// Exaggeration is the vertical exaggeration baked into vertex heights.
	// Dynamic exaggeration from the UI is applied later as a render-time
	// Z scale, not here.
	Exaggeration float32
}

// DefaultOptions returns the standard build options.
func DefaultOptions() Options {
	return Options{
		TargetSize:   200.0,
		MaxDimension: 500,
		Exaggeration: 1.5,
	}
}

// Height color bands, chosen by normalized height.
var (
	colorLow  = [3]float32{0.10, 0.45, 0.10}
	colorMid  = [3]float32{0.60, 0.50, 0.30}
	colorHigh = [3]float32{0.70, 0.70, 0.70}
)

// bandColor returns the color band for a normalized height in [0,1].
func bandColor(h float32) [3]float32 {
	switch {
	case h < 0.3:
		return colorLow
	case h < 0.7:
		return colorMid
	default:
		return colorHigh
	}
}
