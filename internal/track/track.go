// Package track loads GPS tracks and normalizes their timestamps for
// playback.
package track

import (
	"errors"
	"fmt"
	"time"

	"github.com/tkrajina/gpxgo/gpx"
)

// ErrNoPoints is returned when a track file contains no track points.
var ErrNoPoints = errors.New("track: no track points")

// Sample is one recorded track point.
type Sample struct {
	Lat, Lon, Ele float64
	Time          time.Time
}

// Load parses a GPX file and flattens all tracks and segments into a single
// ordered point list.
func Load(path string) ([]Sample, error) {
	gpxFile, err := gpx.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("track: parsing %s: %w", path, err)
	}
	return fromGPX(gpxFile)
}

// Parse parses GPX data from a byte slice.
func Parse(data []byte) ([]Sample, error) {
	gpxFile, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("track: %w", err)
	}
	return fromGPX(gpxFile)
}

func fromGPX(g *gpx.GPX) ([]Sample, error) {
	var samples []Sample
	for _, trk := range g.Tracks {
		for _, seg := range trk.Segments {
			for _, p := range seg.Points {
				var ele float64
				if p.Elevation.NotNull() {
					ele = p.Elevation.Value()
				}
				samples = append(samples, Sample{
					Lat:  p.Latitude,
					Lon:  p.Longitude,
					Ele:  ele,
					Time: p.Timestamp,
				})
			}
		}
	}
	if len(samples) == 0 {
		return nil, ErrNoPoints
	}
	return samples, nil
}

// Relativize converts sample timestamps to offsets in seconds from the
// first sample, clamped to be non-decreasing. Tracks without usable time
// data get synthetic one-second spacing.
func Relativize(samples []Sample) []float64 {
	times := make([]float64, len(samples))
	if len(samples) == 0 {
		return times
	}

	if !hasTimes(samples) {
		for i := range times {
			times[i] = float64(i)
		}
		return times
	}

	t0 := samples[0].Time
	for i, s := range samples {
		times[i] = s.Time.Sub(t0).Seconds()
		if i > 0 && times[i] < times[i-1] {
			times[i] = times[i-1]
		}
	}
	return times
}

// hasTimes reports whether the track carries real timestamps: at least two
// distinct non-zero times.
func hasTimes(samples []Sample) bool {
	var first time.Time
	for _, s := range samples {
		if s.Time.IsZero() {
			continue
		}
		if first.IsZero() {
			first = s.Time
			continue
		}
		if !s.Time.Equal(first) {
			return true
		}
	}
	return false
}
