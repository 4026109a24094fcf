package dem

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleASC = `ncols 3
nrows 2
xllcorner 10.0
yllcorner 45.0
cellsize 0.5
NODATA_value -9999
100 110 120
90 -9999 105
`

func TestReadASC(t *testing.T) {
	g, err := ReadASC(strings.NewReader(sampleASC))
	if err != nil {
		t.Fatalf("ReadASC failed: %v", err)
	}

	if g.Rows() != 2 || g.Cols() != 3 {
		t.Fatalf("expected 2x3 grid, got %dx%d", g.Rows(), g.Cols())
	}
	if got := g.HeightAt(0, 2); got != 120 {
		t.Errorf("HeightAt(0,2) = %v, want 120", got)
	}

	// NODATA replaced by the minimum valid height.
	if got := g.HeightAt(1, 1); got != 90 {
		t.Errorf("NODATA sample = %v, want 90", got)
	}
}

func TestReadASCAffine(t *testing.T) {
	g, err := ReadASC(strings.NewReader(sampleASC))
	if err != nil {
		t.Fatalf("ReadASC failed: %v", err)
	}

	// First sample (row 0, col 0) is the center of the northwest cell:
	// x = xll + cell/2, y = yll + (nrows-0.5)*cell.
	x, y := g.WorldAt(0, 0)
	if math.Abs(x-10.25) > 1e-9 || math.Abs(y-45.75) > 1e-9 {
		t.Errorf("WorldAt(0,0) = (%v, %v), want (10.25, 45.75)", x, y)
	}

	// Row axis runs south.
	_, y1 := g.WorldAt(1, 0)
	if y1 >= y {
		t.Errorf("row 1 y = %v, expected south of row 0 y = %v", y1, y)
	}

	// Invert must round-trip.
	col, row := g.Transform.Invert(x, y)
	if math.Abs(col) > 1e-9 || math.Abs(row) > 1e-9 {
		t.Errorf("Invert(WorldAt(0,0)) = (%v, %v), want (0, 0)", col, row)
	}
}

func TestReadASCGeographicDetection(t *testing.T) {
	g, err := ReadASC(strings.NewReader(sampleASC))
	if err != nil {
		t.Fatalf("ReadASC failed: %v", err)
	}
	if !g.Geographic {
		t.Error("degree-range grid should be detected as geographic")
	}

	metric := `ncols 2
nrows 2
xllcorner 500000
yllcorner 4600000
cellsize 30
1 2
3 4
`
	g, err = ReadASC(strings.NewReader(metric))
	if err != nil {
		t.Fatalf("ReadASC failed: %v", err)
	}
	if g.Geographic {
		t.Error("projected-range grid should not be detected as geographic")
	}
}

func TestSampleWorldClamps(t *testing.T) {
	g, err := ReadASC(strings.NewReader(sampleASC))
	if err != nil {
		t.Fatalf("ReadASC failed: %v", err)
	}

	// Far outside the grid still returns a corner sample, never panics.
	if got := g.SampleWorld(-1000, 1000); got != 100 {
		t.Errorf("SampleWorld far northwest = %v, want 100", got)
	}
	if got := g.SampleWorld(1000, -1000); got != 105 {
		t.Errorf("SampleWorld far southeast = %v, want 105", got)
	}
}

func TestLoadASC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.asc")
	if err := os.WriteFile(path, []byte(sampleASC), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	g, err := LoadASC(path)
	if err != nil {
		t.Fatalf("LoadASC failed: %v", err)
	}
	if g.Rows() != 2 {
		t.Errorf("expected 2 rows, got %d", g.Rows())
	}

	if _, err := LoadASC(filepath.Join(t.TempDir(), "missing.asc")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadASCEmpty(t *testing.T) {
	if _, err := ReadASC(strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}
}
