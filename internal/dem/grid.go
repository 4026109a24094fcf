// Package dem provides the elevation grid model consumed by the scene
// builder: a rectangular block of height samples plus the affine transform
// mapping grid indices to world coordinates.
package dem

import "errors"

// ErrEmptyGrid is returned when a grid has no usable samples.
var ErrEmptyGrid = errors.New("dem: empty grid")

// Affine maps pixel coordinates (col, row) to world coordinates:
//
//	worldX = A*col + B*row + C
//	worldY = D*col + E*row + F
//
// Same parameter order as a GDAL/rasterio transform.
type Affine struct {
	A, B, C, D, E, F float64
}

// Apply maps (col, row) to world coordinates.
func (t Affine) Apply(col, row float64) (x, y float64) {
	return t.A*col + t.B*row + t.C, t.D*col + t.E*row + t.F
}

// Invert maps world coordinates back to (col, row). The transform must be
// non-singular; axis-aligned grids always are.
func (t Affine) Invert(x, y float64) (col, row float64) {
	det := t.A*t.E - t.B*t.D
	if det == 0 {
		return 0, 0
	}
	x -= t.C
	y -= t.F
	return (t.E*x - t.B*y) / det, (t.A*y - t.D*x) / det
}

// Grid is a rectangular elevation grid. Immutable once loaded.
type Grid struct {
	Heights    [][]float32 // row-major, Heights[row][col]
	Transform  Affine
	Geographic bool // world units are degrees (lat/lon) rather than meters
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return len(g.Heights)
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	if len(g.Heights) == 0 {
		return 0
	}
	return len(g.Heights[0])
}

// HeightAt returns the height sample at (row, col), clamping out-of-range
// indices to the grid edge.
func (g *Grid) HeightAt(row, col int) float32 {
	row = clampi(row, 0, g.Rows()-1)
	col = clampi(col, 0, g.Cols()-1)
	return g.Heights[row][col]
}

// WorldAt returns the world coordinates of the sample at (row, col).
func (g *Grid) WorldAt(row, col int) (x, y float64) {
	return g.Transform.Apply(float64(col), float64(row))
}

// SampleWorld returns the height at a world position using the nearest grid
// cell, clamped to the grid bounds.
func (g *Grid) SampleWorld(x, y float64) float32 {
	col, row := g.Transform.Invert(x, y)
	return g.HeightAt(int(row), int(col))
}

func clampi(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
