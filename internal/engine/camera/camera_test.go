package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/trailforge/terravista/pkg/math"
)

func TestOrbitPositionZUp(t *testing.T) {
	c := NewOrbit()
	c.Distance = 100
	c.Yaw = 0

	// Straight overhead.
	c.Pitch = 89.9999
	pos := c.Position()
	if math32.Abs(pos.Z-100) > 0.01 {
		t.Errorf("overhead Z = %v, want ~100", pos.Z)
	}

	// On the horizon behind the scene (-Y).
	c.Pitch = 0
	pos = c.Position()
	if math32.Abs(pos.Y+100) > 1e-3 || math32.Abs(pos.Z) > 1e-3 {
		t.Errorf("horizon position = %v, want (0, -100, 0)", pos)
	}
}

func TestOrbitPitchClamped(t *testing.T) {
	c := NewOrbit()

	c.HandleDrag(0, 1000)
	if c.Pitch != c.MaxPitch {
		t.Errorf("pitch = %v, want clamped to %v", c.Pitch, c.MaxPitch)
	}

	c.HandleDrag(0, -1000)
	if c.Pitch != c.MinPitch {
		t.Errorf("pitch = %v, want clamped to %v", c.Pitch, c.MinPitch)
	}
}

func TestOrbitDragSensitivity(t *testing.T) {
	c := NewOrbit()
	start := c.Yaw
	c.HandleDrag(10, 0)
	if got := c.Yaw - start; math32.Abs(got+5) > 1e-6 {
		t.Errorf("yaw delta = %v, want -5 degrees for 10px drag right", got)
	}
}

func TestOrbitZoomMultiplicative(t *testing.T) {
	c := NewOrbit()
	c.Distance = 200

	c.HandleZoom(1)
	if math32.Abs(c.Distance-180) > 1e-3 {
		t.Errorf("distance after zoom in = %v, want 180", c.Distance)
	}
	c.HandleZoom(-1)
	if math32.Abs(c.Distance-198) > 1e-3 {
		t.Errorf("distance after zoom out = %v, want 198", c.Distance)
	}
	c.HandleZoom(0)
	if math32.Abs(c.Distance-198) > 1e-3 {
		t.Errorf("zero delta changed distance to %v", c.Distance)
	}
}

func TestOrbitViewMatrixLooksAtOrigin(t *testing.T) {
	c := NewOrbit()
	c.Distance = 250
	c.Yaw = 30
	c.Pitch = 40

	view := c.ViewMatrix()
	eye := view.TransformPoint(c.Position())
	if eye.Length() > 1e-3 {
		t.Errorf("eye in view space = %v, want origin", eye)
	}

	// The origin must land on the -Z axis at camera distance.
	origin := view.TransformPoint(math.Vec3{})
	if math32.Abs(origin.X) > 1e-3 || math32.Abs(origin.Y) > 1e-3 {
		t.Errorf("look target off axis: %v", origin)
	}
	if math32.Abs(origin.Z+250) > 1e-2 {
		t.Errorf("look target depth = %v, want -250", origin.Z)
	}
}

func TestHeadingTurnConverges(t *testing.T) {
	h := NewHeading(0.92, 0.02)

	first := h.UpdateTurn(1)
	if math32.Abs(first-0.08) > 1e-6 {
		t.Errorf("first update = %v, want 0.08", first)
	}

	for i := 0; i < 500; i++ {
		h.UpdateTurn(1)
	}
	if math32.Abs(h.Turn()-1) > 1e-3 {
		t.Errorf("smoothed turn = %v, want convergence to 1", h.Turn())
	}
}

func TestHeadingForwardSeedsAndStaysUnit(t *testing.T) {
	h := NewHeading(0.92, 0.02)

	fwd := h.UpdateForward(math.Vec2{X: 10, Y: 0})
	if math32.Abs(fwd.X-1) > 1e-6 || math32.Abs(fwd.Y) > 1e-6 {
		t.Errorf("seed = %v, want (1, 0)", fwd)
	}

	for i := 0; i < 50; i++ {
		fwd = h.UpdateForward(math.Vec2{X: 0, Y: 1})
		if math32.Abs(fwd.Length()-1) > 1e-5 {
			t.Fatalf("forward length = %v after update %d, want 1", fwd.Length(), i)
		}
	}

	// With heavy inertia the heading has rotated only partway
	// toward the new direction after 50 updates.
	if fwd.Y <= fwd.X {
		t.Errorf("heading did not rotate toward +Y: %v", fwd)
	}
	if fwd.X < 0.1 {
		t.Errorf("heading rotated too fast: %v", fwd)
	}
}

func TestHeadingReset(t *testing.T) {
	h := NewHeading(0.92, 0.02)
	h.UpdateTurn(1)
	h.UpdateForward(math.Vec2{X: 0, Y: 1})

	h.Reset()
	if h.Turn() != 0 {
		t.Errorf("turn after reset = %v", h.Turn())
	}
	fwd := h.UpdateForward(math.Vec2{X: 1, Y: 0})
	if math32.Abs(fwd.X-1) > 1e-6 {
		t.Errorf("reset filter did not reseed: %v", fwd)
	}
}
