package playback

import (
	"errors"
	"sort"

	"github.com/trailforge/terravista/pkg/math"
)

const timeEpsilon = 1e-6

// ErrRouteTooShort is returned when a route has fewer than two samples.
var ErrRouteTooShort = errors.New("playback: route needs at least two samples")

// Route pairs projected track points with their time offsets and answers
// position lookups for any playback time. Read-only during playback.
type Route struct {
	points []math.Vec3
	times  []float64 // seconds, non-decreasing, times[0] == 0
}

// NewRoute builds a route from scene-space points and matching time
// offsets.
func NewRoute(points []math.Vec3, times []float64) (*Route, error) {
	if len(points) < 2 {
		return nil, ErrRouteTooShort
	}
	if len(points) != len(times) {
		return nil, errors.New("playback: points and times length mismatch")
	}
	return &Route{points: points, times: times}, nil
}

// Points returns the route's scene-space points.
func (r *Route) Points() []math.Vec3 { return r.points }

// Duration returns the route's total time span in seconds.
func (r *Route) Duration() float64 {
	return r.times[len(r.times)-1]
}

// bracket returns the segment index i such that times[i] <= t < times[i+1],
// clamped so that i+1 is always valid.
func (r *Route) bracket(t float64) int {
	// First index whose time exceeds t, minus one.
	i := sort.SearchFloat64s(r.times, t)
	if i < len(r.times) && r.times[i] == t {
		// Exact hit: interpolate forward from it.
		return min(i, len(r.points)-2)
	}
	i--
	if i < 0 {
		return 0
	}
	return min(i, len(r.points)-2)
}

// At returns the interpolated position at time t along with the bracketing
// segment index and interpolation fraction. Times outside the span clamp
// to the endpoints. Zero-length time segments yield alpha 0 rather than a
// division by zero.
func (r *Route) At(t float64) (pos math.Vec3, segment int, alpha float32) {
	i := r.bracket(t)
	t1, t2 := r.times[i], r.times[i+1]

	a := 0.0
	if t2-t1 > timeEpsilon {
		a = (t - t1) / (t2 - t1)
	}
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}

	return r.points[i].Lerp(r.points[i+1], float32(a)), i, float32(a)
}

// TurnAt interpolates a per-sample turn angle array at time t, using the
// same bracket as At. The angles slice must be sample-aligned with the
// route's points.
func (r *Route) TurnAt(t float64, angles []float32) float32 {
	_, i, a := r.At(t)
	next := min(i+1, len(angles)-1)
	return (1-a)*angles[i] + a*angles[next]
}
