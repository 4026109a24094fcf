package dem

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// LoadASC reads an elevation grid from an ESRI ASCII grid (.asc) file:
// a short key/value header (ncols, nrows, xllcorner, yllcorner, cellsize,
// optional nodata_value) followed by nrows lines of samples, north first.
func LoadASC(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dem: %w", err)
	}
	defer f.Close()

	g, err := ReadASC(f)
	if err != nil {
		return nil, fmt.Errorf("dem: reading %s: %w", path, err)
	}
	return g, nil
}

// ReadASC parses ESRI ASCII grid data from r.
func ReadASC(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	header := map[string]float64{}
	var rows [][]float32

	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		// Header lines are "key value" pairs with a non-numeric key.
		if len(fields) == 2 {
			if _, err := strconv.ParseFloat(fields[0], 64); err != nil {
				v, err := strconv.ParseFloat(fields[1], 64)
				if err != nil {
					return nil, fmt.Errorf("header %s: %w", fields[0], err)
				}
				header[strings.ToLower(fields[0])] = v
				continue
			}
		}

		row := make([]float32, len(fields))
		for i, fld := range fields {
			v, err := strconv.ParseFloat(fld, 32)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", len(rows), err)
			}
			row[i] = float32(v)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	ncols := int(header["ncols"])
	nrows := int(header["nrows"])
	if ncols == 0 || nrows == 0 || len(rows) == 0 {
		return nil, ErrEmptyGrid
	}
	if len(rows) != nrows {
		return nil, fmt.Errorf("expected %d rows, got %d", nrows, len(rows))
	}
	for i, row := range rows {
		if len(row) != ncols {
			return nil, fmt.Errorf("row %d: expected %d samples, got %d", i, ncols, len(row))
		}
	}

	if nodata, ok := header["nodata_value"]; ok {
		fillNoData(rows, float32(nodata))
	}

	cell := header["cellsize"]
	if cell == 0 {
		cell = 1
	}
	xll := header["xllcorner"]
	yll := header["yllcorner"]

	// Sample positions are cell centers; the first data row is the
	// northernmost, so the row axis runs south (negative E).
	transform := Affine{
		A: cell, B: 0, C: xll + cell/2,
		D: 0, E: -cell, F: yll + (float64(nrows)-0.5)*cell,
	}

	return &Grid{
		Heights:    rows,
		Transform:  transform,
		Geographic: looksGeographic(xll, yll, cell, ncols, nrows),
	}, nil
}

// looksGeographic guesses whether the grid coordinates are degrees.
// ASC files carry no CRS, so this mirrors the usual convention: sub-degree
// cells with an origin inside the lat/lon value range.
func looksGeographic(xll, yll, cell float64, ncols, nrows int) bool {
	if cell >= 1 {
		return false
	}
	maxX := xll + cell*float64(ncols)
	maxY := yll + cell*float64(nrows)
	return math.Abs(xll) <= 360 && math.Abs(maxX) <= 360 &&
		math.Abs(yll) <= 90 && math.Abs(maxY) <= 90
}

// fillNoData replaces NODATA samples with the minimum valid height so holes
// render as depressions rather than spikes.
func fillNoData(rows [][]float32, nodata float32) {
	min := float32(math.MaxFloat32)
	found := false
	for _, row := range rows {
		for _, v := range row {
			if v != nodata && v < min {
				min = v
				found = true
			}
		}
	}
	if !found {
		min = 0
	}
	for _, row := range rows {
		for i, v := range row {
			if v == nodata {
				row[i] = min
			}
		}
	}
}
