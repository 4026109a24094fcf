// Package camera provides the orbit camera and heading filters for playback.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/trailforge/terravista/pkg/math"
)

// Orbit orbits around the scene origin with spherical coordinates.
// Angles are stored in degrees.
type Orbit struct {
	Distance float32
	Pitch    float32 // Vertical angle above the horizon
	Yaw      float32 // Horizontal angle around +Z

	// Constraints
	MinPitch float32
	MaxPitch float32

	// Sensitivity
	DragSensitivity float32 // Degrees per pixel
	ZoomInFactor    float32
	ZoomOutFactor   float32
}

// NewOrbit creates an orbit camera with default settings.
func NewOrbit() *Orbit {
	return &Orbit{
		Distance:        300.0,
		Pitch:           45.0,
		Yaw:             0.0,
		MinPitch:        10.0,
		MaxPitch:        89.0,
		DragSensitivity: 0.5,
		ZoomInFactor:    0.9,
		ZoomOutFactor:   1.1,
	}
}

// Position returns the camera position in world space. The scene is
// Z-up, so pitch lifts the eye along +Z and yaw swings it around the
// vertical axis.
func (c *Orbit) Position() math.Vec3 {
	pitch := degToRad(c.Pitch)
	yaw := degToRad(c.Yaw)

	horiz := c.Distance * math32.Cos(pitch)
	return math.Vec3{
		X: horiz * math32.Sin(yaw),
		Y: -horiz * math32.Cos(yaw),
		Z: c.Distance * math32.Sin(pitch),
	}
}

// ViewMatrix returns the view matrix looking at the origin.
func (c *Orbit) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 0, Z: 1}
	return math.LookAt(c.Position(), math.Vec3{}, up)
}

// HandleDrag updates yaw and pitch based on mouse drag delta in pixels.
func (c *Orbit) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity

	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
}

// HandleZoom scales distance based on scroll wheel direction.
// Positive delta zooms in.
func (c *Orbit) HandleZoom(delta float32) {
	if delta > 0 {
		c.Distance *= c.ZoomInFactor
	} else if delta < 0 {
		c.Distance *= c.ZoomOutFactor
	}
}

func degToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// Heading smooths the marker's turn angle and travel direction with
// exponential moving averages. Turn smoothing reacts quickly so bends
// read immediately; the forward direction carries more inertia so the
// camera-facing cues do not jitter on noisy tracks.
type Heading struct {
	// TurnRetention is the weight kept from the previous smoothed
	// turn each update.
	TurnRetention float32
	// ForwardBlend is the weight given to the instantaneous travel
	// direction each update.
	ForwardBlend float32

	turn    float32
	forward math.Vec2
	seeded  bool
}

// NewHeading creates a heading filter with the given smoothing weights.
func NewHeading(turnRetention, forwardBlend float32) *Heading {
	return &Heading{
		TurnRetention: turnRetention,
		ForwardBlend:  forwardBlend,
	}
}

// UpdateTurn folds a raw turn angle into the smoothed value and
// returns the result.
func (h *Heading) UpdateTurn(raw float32) float32 {
	h.turn = h.turn*h.TurnRetention + raw*(1-h.TurnRetention)
	return h.turn
}

// Turn returns the current smoothed turn angle.
func (h *Heading) Turn() float32 { return h.turn }

// UpdateForward folds an instantaneous XY travel direction into the
// smoothed heading and returns the result, renormalized to unit
// length. The first update seeds the filter directly.
func (h *Heading) UpdateForward(inst math.Vec2) math.Vec2 {
	if !h.seeded {
		h.forward = inst.Normalize()
		h.seeded = true
		return h.forward
	}

	blended := h.forward.Scale(1 - h.ForwardBlend).Add(inst.Scale(h.ForwardBlend))
	if blended.Length() > 1e-8 {
		h.forward = blended.Normalize()
	}
	return h.forward
}

// Forward returns the current smoothed travel direction.
func (h *Heading) Forward() math.Vec2 { return h.forward }

// Reset clears the filter state, e.g. after a scrub.
func (h *Heading) Reset() {
	h.turn = 0
	h.forward = math.Vec2{}
	h.seeded = false
}
