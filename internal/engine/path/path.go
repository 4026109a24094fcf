// Package path precomputes heading data for a projected track: a forward
// direction per sample and a signed look-ahead turn angle used by the
// navigation indicator.
package path

import (
	"github.com/chewxy/math32"

	"github.com/trailforge/terravista/pkg/math"
)

// DefaultLookAhead is how many segments ahead the turn estimate compares
// against. Small values jitter, large values announce turns too early.
const DefaultLookAhead = 5

const segmentEpsilon = 1e-6

// Derive computes forward directions and signed turn angles with the
// default look-ahead window.
func Derive(points []math.Vec3) (dirs []math.Vec3, turns []float32) {
	return DeriveLookAhead(points, DefaultLookAhead)
}

// DeriveLookAhead computes, for every path point, the unit forward
// direction of its segment and the signed angle between that segment and
// the one lookAhead segments later. Positive angles turn right, negative
// left (2D cross product convention). Near-zero segments inherit the
// previous direction and contribute a zero turn.
func DeriveLookAhead(points []math.Vec3, lookAhead int) (dirs []math.Vec3, turns []float32) {
	n := len(points)
	dirs = make([]math.Vec3, n)
	turns = make([]float32, n)
	if n == 0 {
		return dirs, turns
	}
	if lookAhead < 1 {
		lookAhead = 1
	}

	for i := 0; i < n-1; i++ {
		d := points[i+1].Sub(points[i])
		if d.XY().Length() > segmentEpsilon {
			dirs[i] = d.Normalize()
		} else if i > 0 {
			dirs[i] = dirs[i-1]
		} else {
			dirs[i] = math.Vec3{X: 1}
		}
	}
	if n >= 2 {
		dirs[n-1] = dirs[n-2]
	}

	for i := 0; i < n-2; i++ {
		j := min(i+lookAhead, n-2)
		d1 := points[i+1].Sub(points[i]).XY()
		d2 := points[j+1].Sub(points[j]).XY()
		n1 := d1.Length()
		n2 := d2.Length()
		if n1 > segmentEpsilon && n2 > segmentEpsilon {
			cross := d1.Scale(1 / n1).Cross(d2.Scale(1 / n2))
			turns[i] = math32.Asin(clamp(cross, -1, 1))
		}
	}
	// Duplicate into the tail so lookups near the end stay stable.
	if n >= 3 {
		turns[n-2] = turns[n-3]
		turns[n-1] = turns[n-2]
	}

	return dirs, turns
}

// SmoothPolyline applies a (1,2,1)/4 binomial filter the given number of
// passes, keeping the endpoints pinned. Used to round off the minimap road.
func SmoothPolyline(points []math.Vec3, passes int) []math.Vec3 {
	out := make([]math.Vec3, len(points))
	copy(out, points)
	if len(points) < 3 {
		return out
	}

	for p := 0; p < passes; p++ {
		prev := out[0]
		for i := 1; i < len(out)-1; i++ {
			cur := out[i]
			out[i] = math.Vec3{
				X: (prev.X + 2*cur.X + out[i+1].X) / 4,
				Y: (prev.Y + 2*cur.Y + out[i+1].Y) / 4,
				Z: (prev.Z + 2*cur.Z + out[i+1].Z) / 4,
			}
			prev = cur
		}
	}
	return out
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
