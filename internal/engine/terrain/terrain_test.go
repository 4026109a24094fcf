package terrain

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"

	"github.com/trailforge/terravista/internal/dem"
	"github.com/trailforge/terravista/internal/track"
)

// testGrid builds a projected (non-geographic) grid with unit cell size.
func testGrid(heights [][]float32) *dem.Grid {
	return &dem.Grid{
		Heights:   heights,
		Transform: dem.Affine{A: 1, C: 0, E: -1, F: float64(len(heights) - 1)},
	}
}

func rampGrid(rows, cols int) *dem.Grid {
	h := make([][]float32, rows)
	for r := range h {
		h[r] = make([]float32, cols)
		for c := range h[r] {
			h[r][c] = float32(r*cols + c)
		}
	}
	return testGrid(h)
}

func TestBuildCounts(t *testing.T) {
	m, err := Build(rampGrid(4, 5), DefaultOptions())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if m.Rows != 4 || m.Cols != 5 {
		t.Fatalf("expected 4x5 mesh, got %dx%d", m.Rows, m.Cols)
	}
	if len(m.Vertices) != 20 {
		t.Errorf("expected 20 vertices, got %d", len(m.Vertices))
	}
	wantIdx := 6 * 3 * 4
	if len(m.Indices) != wantIdx {
		t.Errorf("expected %d indices, got %d", wantIdx, len(m.Indices))
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d out of range (%d vertices)", idx, len(m.Vertices))
		}
	}
}

func TestBuildDownsamples(t *testing.T) {
	m, err := Build(rampGrid(40, 21), Options{TargetSize: 200, MaxDimension: 10, Exaggeration: 1.5})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// stride 4 over 40 rows and stride 2 over 21 cols.
	if m.Rows != 10 {
		t.Errorf("expected 10 rows after downsampling, got %d", m.Rows)
	}
	if m.Cols != 11 {
		t.Errorf("expected 11 cols after downsampling, got %d", m.Cols)
	}
	if len(m.Vertices) != m.Rows*m.Cols {
		t.Errorf("vertex count %d != %d*%d", len(m.Vertices), m.Rows, m.Cols)
	}
}

func TestBuildNormalsAreUnit(t *testing.T) {
	m, err := Build(rampGrid(6, 6), DefaultOptions())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for i, v := range m.Vertices {
		n := v.Normal
		l := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if math32.Abs(l-1) > 1e-4 {
			t.Fatalf("normal %d has length %v, want 1", i, l)
		}
	}
}

func TestBuildSceneFitsTargetSize(t *testing.T) {
	// Flat 8x12 grid with unit cells: the column axis (11 cells) is the
	// largest range and must be scaled to exactly the target size.
	heights := make([][]float32, 8)
	for r := range heights {
		heights[r] = make([]float32, 12)
	}
	opts := DefaultOptions()
	m, err := Build(testGrid(heights), opts)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var minX, maxX, minY, maxY float32
	for _, v := range m.Vertices {
		minX = math32.Min(minX, v.Position[0])
		maxX = math32.Max(maxX, v.Position[0])
		minY = math32.Min(minY, v.Position[1])
		maxY = math32.Max(maxY, v.Position[1])
	}

	rangeX := maxX - minX
	if math32.Abs(rangeX-opts.TargetSize) > 0.01 {
		t.Errorf("X range = %v, want %v", rangeX, opts.TargetSize)
	}
	// Centered on the origin.
	if math32.Abs(minX+maxX) > 0.01 || math32.Abs(minY+maxY) > 0.01 {
		t.Errorf("scene not centered: X [%v,%v], Y [%v,%v]", minX, maxX, minY, maxY)
	}
}

func TestBuildFlatGridFallback(t *testing.T) {
	// A 2x2 all-equal grid with zero coordinate range must not divide by
	// zero and must use the vertical fallback normal everywhere.
	g := &dem.Grid{
		Heights:   [][]float32{{5, 5}, {5, 5}},
		Transform: dem.Affine{}, // all world coords collapse to (0,0)
	}

	m, err := Build(g, DefaultOptions())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if m.Frame.GlobalScale != DefaultOptions().TargetSize {
		t.Errorf("GlobalScale = %v, want TargetSize %v", m.Frame.GlobalScale, DefaultOptions().TargetSize)
	}
	for i, v := range m.Vertices {
		if v.Normal != [3]float32{0, 0, 1} {
			t.Errorf("vertex %d normal = %v, want +Z fallback", i, v.Normal)
		}
		if v.Color != colorLow {
			t.Errorf("vertex %d color = %v, want low band", i, v.Color)
		}
	}
}

func TestBuildRejectsDegenerateGrids(t *testing.T) {
	cases := [][][]float32{
		{},
		{{1, 2, 3}},
		{{1}, {2}},
	}
	for i, heights := range cases {
		_, err := Build(&dem.Grid{Heights: heights}, DefaultOptions())
		if !errors.Is(err, ErrDegenerateGeometry) {
			t.Errorf("case %d: expected ErrDegenerateGeometry, got %v", i, err)
		}
	}
}

func TestBuildColorBands(t *testing.T) {
	// Heights 0..99 over a 10x10 grid: rows split cleanly into bands.
	m, err := Build(rampGrid(10, 10), DefaultOptions())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if got := m.Vertices[0].Color; got != colorLow {
		t.Errorf("lowest vertex color = %v, want low band", got)
	}
	if got := m.Vertices[len(m.Vertices)/2].Color; got != colorMid {
		t.Errorf("middle vertex color = %v, want mid band", got)
	}
	if got := m.Vertices[len(m.Vertices)-1].Color; got != colorHigh {
		t.Errorf("highest vertex color = %v, want high band", got)
	}
}

func TestBuildGeographicScaling(t *testing.T) {
	// One-degree cells at the equator: X and Y both scale by ~111320 m.
	g := &dem.Grid{
		Heights:    [][]float32{{0, 0}, {0, 0}, {0, 0}},
		Transform:  dem.Affine{A: 1, C: 0, E: -1, F: 1},
		Geographic: true,
	}
	m, err := Build(g, DefaultOptions())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if m.Frame.ScaleY != metersPerDegree {
		t.Errorf("ScaleY = %v, want %v", m.Frame.ScaleY, metersPerDegree)
	}
	// Mean latitude here is 0, so the longitude scale matches.
	if diff := m.Frame.ScaleX - metersPerDegree; diff > 1 || diff < -1 {
		t.Errorf("ScaleX = %v, want ~%v", m.Frame.ScaleX, metersPerDegree)
	}

	// Two degrees of latitude vs one of longitude: Y range dominates, so
	// the scene's Y extent equals the target size.
	var minY, maxY float32
	for _, v := range m.Vertices {
		minY = math32.Min(minY, v.Position[1])
		maxY = math32.Max(maxY, v.Position[1])
	}
	if math32.Abs((maxY-minY)-DefaultOptions().TargetSize) > 0.01 {
		t.Errorf("Y range = %v, want %v", maxY-minY, DefaultOptions().TargetSize)
	}
}

func TestFrameProjectRoundTrip(t *testing.T) {
	m, err := Build(rampGrid(4, 4), DefaultOptions())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Projecting the world position of a grid vertex must reproduce the
	// mesh vertex exactly.
	g := rampGrid(4, 4)
	x, y := g.WorldAt(2, 1)
	p := m.Frame.Project(x, y, g.HeightAt(2, 1))
	v := m.Vertices[2*m.Cols+1].Position
	if math32.Abs(p.X-v[0]) > 1e-4 || math32.Abs(p.Y-v[1]) > 1e-4 || math32.Abs(p.Z-v[2]) > 1e-4 {
		t.Errorf("Project = %v, mesh vertex = %v", p, v)
	}
}

func TestProjectTrack(t *testing.T) {
	g := rampGrid(4, 4)
	m, err := Build(g, DefaultOptions())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// World position of grid vertex (1,2): col=2, row=1 → x=2, y=2.
	samples := []track.Sample{{Lon: 2, Lat: 2, Ele: 9999}}
	pts := ProjectTrack(g, m.Frame, samples, 0.5)
	if len(pts) != 1 {
		t.Fatalf("expected 1 point, got %d", len(pts))
	}

	want := m.Frame.Project(2, 2, g.HeightAt(1, 2))
	if math32.Abs(pts[0].Z-(want.Z+0.5)) > 1e-4 {
		t.Errorf("draped Z = %v, want terrain height + lift = %v", pts[0].Z, want.Z+0.5)
	}
	if math32.Abs(pts[0].X-want.X) > 1e-4 || math32.Abs(pts[0].Y-want.Y) > 1e-4 {
		t.Errorf("draped XY = (%v,%v), want (%v,%v)", pts[0].X, pts[0].Y, want.X, want.Y)
	}
}
