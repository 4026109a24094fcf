package terrain

import (
	"fmt"
	gomath "math"

	"github.com/chewxy/math32"

	"github.com/trailforge/terravista/internal/dem"
	"github.com/trailforge/terravista/pkg/math"
)

// metersPerDegree is the ground length of one degree of latitude. Longitude
// degrees shrink with cos(latitude).
const metersPerDegree = 111320.0

const normalEpsilon = 1e-12

// Build constructs the scene mesh from an elevation grid: downsample,
// center, convert to meters, fit into a TargetSize cube and bake vertical
// exaggeration, then derive smooth normals and height-band colors.
func Build(grid *dem.Grid, opts Options) (*Mesh, error) {
	srcRows, srcCols := grid.Rows(), grid.Cols()
	if srcRows < 2 || srcCols < 2 {
		return nil, fmt.Errorf("%w: grid is %dx%d, need at least 2x2", ErrDegenerateGeometry, srcRows, srcCols)
	}
	if opts.MaxDimension < 2 {
		opts.MaxDimension = 2
	}

	strideR := max(1, srcRows/opts.MaxDimension)
	strideC := max(1, srcCols/opts.MaxDimension)
	rows := (srcRows + strideR - 1) / strideR
	cols := (srcCols + strideC - 1) / strideC
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("%w: downsampled grid is %dx%d", ErrDegenerateGeometry, rows, cols)
	}

	// World coordinates and heights of the downsampled samples.
	wx := make([][]float64, rows)
	wy := make([][]float64, rows)
	hz := make([][]float32, rows)
	minX, maxX := gomath.Inf(1), gomath.Inf(-1)
	minY, maxY := gomath.Inf(1), gomath.Inf(-1)
	minZ, maxZ := math32.Inf(1), math32.Inf(-1)
	for r := 0; r < rows; r++ {
		wx[r] = make([]float64, cols)
		wy[r] = make([]float64, cols)
		hz[r] = make([]float32, cols)
		for c := 0; c < cols; c++ {
			x, y := grid.WorldAt(r*strideR, c*strideC)
			h := grid.HeightAt(r*strideR, c*strideC)
			wx[r][c], wy[r][c], hz[r][c] = x, y, h
			minX, maxX = gomath.Min(minX, x), gomath.Max(maxX, x)
			minY, maxY = gomath.Min(minY, y), gomath.Max(maxY, y)
			if h < minZ {
				minZ = h
			}
			if h > maxZ {
				maxZ = h
			}
		}
	}

	frame := Frame{
		CenterX:      (minX + maxX) / 2,
		CenterY:      (minY + maxY) / 2,
		ScaleX:       1.0,
		ScaleY:       1.0,
		MinHeight:    minZ,
		Exaggeration: opts.Exaggeration,
	}
	if grid.Geographic {
		meanLat := (minY + maxY) / 2
		frame.ScaleY = metersPerDegree
		frame.ScaleX = metersPerDegree * gomath.Cos(meanLat*gomath.Pi/180)
	}

	rangeX := (maxX - minX) * frame.ScaleX
	rangeY := (maxY - minY) * frame.ScaleY
	rangeZ := float64(maxZ - minZ)
	maxRange := gomath.Max(rangeX, gomath.Max(rangeY, rangeZ))
	if maxRange > 0 {
		frame.GlobalScale = opts.TargetSize / float32(maxRange)
	} else {
		// Completely flat point cloud; scale is arbitrary, keep the
		// scene at target size.
		frame.GlobalScale = opts.TargetSize
	}

	m := &Mesh{
		Vertices: make([]Vertex, rows*cols),
		Rows:     rows,
		Cols:     cols,
		Frame:    frame,
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := frame.Project(wx[r][c], wy[r][c], hz[r][c])
			m.Vertices[r*cols+c].Position = [3]float32{p.X, p.Y, p.Z}
		}
	}

	m.computeColors(minZ, maxZ, hz)
	m.computeNormals()
	m.buildIndices()

	return m, nil
}

// computeColors assigns a color band per vertex from normalized height.
func (m *Mesh) computeColors(minZ, maxZ float32, hz [][]float32) {
	zRange := maxZ - minZ
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			norm := float32(0)
			if zRange > 0 {
				norm = (hz[r][c] - minZ) / zRange
			}
			m.Vertices[r*m.Cols+c].Color = bandColor(norm)
		}
	}
}

// computeNormals derives a per-vertex normal from central differences of the
// scaled positions: normal = cross(tangentRow, tangentCol). Degenerate cells
// fall back to +Z.
func (m *Mesh) computeNormals() {
	pos := func(r, c int) math.Vec3 {
		p := m.Vertices[r*m.Cols+c].Position
		return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}

	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			tr := gradient(pos, r, c, m.Rows, true)
			tc := gradient(pos, r, c, m.Cols, false)
			n := tr.Cross(tc)
			if n.Dot(n) < normalEpsilon {
				n = math.Vec3{Z: 1}
			} else {
				n = n.Normalize()
			}
			m.Vertices[r*m.Cols+c].Normal = [3]float32{n.X, n.Y, n.Z}
		}
	}
}

// gradient returns the finite-difference tangent at (r,c) along the row axis
// (alongRows) or column axis: central in the interior, one-sided at edges.
func gradient(pos func(r, c int) math.Vec3, r, c, n int, alongRows bool) math.Vec3 {
	at := func(i int) math.Vec3 {
		if alongRows {
			return pos(i, c)
		}
		return pos(r, i)
	}
	i := r
	if !alongRows {
		i = c
	}
	switch {
	case i == 0:
		return at(1).Sub(at(0))
	case i == n-1:
		return at(n - 1).Sub(at(n - 2))
	default:
		return at(i + 1).Sub(at(i - 1)).Scale(0.5)
	}
}

// buildIndices emits two triangles per grid cell.
func (m *Mesh) buildIndices() {
	m.Indices = make([]uint32, 0, 6*(m.Rows-1)*(m.Cols-1))
	for r := 0; r < m.Rows-1; r++ {
		for c := 0; c < m.Cols-1; c++ {
			p00 := uint32(r*m.Cols + c)
			p10 := uint32((r+1)*m.Cols + c)
			p01 := uint32(r*m.Cols + c + 1)
			p11 := uint32((r+1)*m.Cols + c + 1)
			m.Indices = append(m.Indices,
				p00, p10, p01,
				p10, p11, p01,
			)
		}
	}
}
