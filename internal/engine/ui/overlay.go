// Package ui implements the screen-space playback controls: the
// vertical-exaggeration and speed sliders, the play/pause button, the
// scrub bar and the minimap frame. Widgets live in logical window
// coordinates and are hit-tested in priority order, so a click on a
// control never falls through to the camera.
package ui

// Rect is an axis-aligned screen rectangle in logical coordinates.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Color is an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Overlay theme.
var (
	colorTrack     = Color{0.25, 0.25, 0.3, 0.9}
	colorKnob      = Color{0.85, 0.85, 0.9, 1}
	colorButton    = Color{0.2, 0.45, 0.25, 1}
	colorButtonAlt = Color{0.5, 0.3, 0.2, 1}
	colorScrubBg   = Color{0.2, 0.2, 0.25, 0.8}
	colorScrubFill = Color{0.3, 0.6, 0.9, 1}
	colorFrame     = Color{1, 1, 1, 1}
)

// ActionKind identifies what an input event did to the overlay.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionExaggeration
	ActionSpeed
	ActionSeek
	ActionTogglePlay
)

// Action is the typed result of dispatching an input event. Value
// carries the new slider value, or the seek ratio for ActionSeek.
type Action struct {
	Kind  ActionKind
	Value float32
}

// slider maps a horizontal click ratio linearly onto [Min, Max].
type slider struct {
	rect     Rect
	min, max float32
	value    float32
}

func (s *slider) setFromX(x float32) {
	r := (x - s.rect.X) / s.rect.W
	if r < 0 {
		r = 0
	}
	if r > 1 {
		r = 1
	}
	s.value = s.min + r*(s.max-s.min)
}

func (s *slider) ratio() float32 {
	return (s.value - s.min) / (s.max - s.min)
}

// dragTarget identifies which widget captured the current drag.
type dragTarget int

const (
	dragNone dragTarget = iota
	dragExaggeration
	dragSpeed
	dragScrub
)

// Layout constants in logical pixels.
const (
	margin       = 20
	navWidth     = 320
	navHeight    = 180
	sliderWidth  = 200
	sliderHeight = 20
	rowSpacing   = 40
	buttonWidth  = 60
	buttonHeight = 20
	scrubHeight  = 10
	scrubBottom  = 30
	knobWidth    = 8
)

// Overlay owns the widget rectangles and drag state. It never touches
// the playback clock directly: the frame loop applies the returned
// actions.
type Overlay struct {
	winW, winH float32

	exaggeration slider
	speed        slider
	playButton   Rect
	scrubBar     Rect
	navFrame     Rect

	drag dragTarget
}

// NewOverlay creates the overlay for a logical window size with the
// given initial slider values.
func NewOverlay(winW, winH int, exaggeration, speed float32) *Overlay {
	o := &Overlay{
		exaggeration: slider{min: 1, max: 5, value: exaggeration},
		speed:        slider{min: 1, max: 50, value: speed},
	}
	o.Resize(winW, winH)
	return o
}

// Resize recomputes widget rectangles for a new logical window size.
func (o *Overlay) Resize(winW, winH int) {
	o.winW = float32(winW)
	o.winH = float32(winH)

	o.navFrame = Rect{margin, margin, navWidth, navHeight}

	y := o.navFrame.Y + o.navFrame.H + 16
	o.exaggeration.rect = Rect{margin, y, sliderWidth, sliderHeight}
	o.speed.rect = Rect{margin, y + rowSpacing, sliderWidth, sliderHeight}
	o.playButton = Rect{margin, y + 2*rowSpacing, buttonWidth, buttonHeight}
	o.scrubBar = Rect{margin, o.winH - scrubBottom, o.winW - 2*margin, scrubHeight}
}

// Exaggeration returns the current vertical-exaggeration value.
func (o *Overlay) Exaggeration() float32 { return o.exaggeration.value }

// Speed returns the current playback speed multiplier.
func (o *Overlay) Speed() float32 { return o.speed.value }

// Scrubbing reports whether a scrub-bar drag is active. The frame
// loop must not advance the clock while it is.
func (o *Overlay) Scrubbing() bool { return o.drag == dragScrub }

// Dragging reports whether any widget captured the mouse. While true,
// motion events belong to the overlay, not the camera.
func (o *Overlay) Dragging() bool { return o.drag != dragNone }

// HandleMouseDown dispatches a left-button press at logical
// coordinates. handled is true when a widget consumed the event.
func (o *Overlay) HandleMouseDown(x, y float32) (Action, bool) {
	switch {
	case o.exaggeration.rect.Contains(x, y):
		o.drag = dragExaggeration
		o.exaggeration.setFromX(x)
		return Action{ActionExaggeration, o.exaggeration.value}, true

	case o.speed.rect.Contains(x, y):
		o.drag = dragSpeed
		o.speed.setFromX(x)
		return Action{ActionSpeed, o.speed.value}, true

	case o.playButton.Contains(x, y):
		return Action{Kind: ActionTogglePlay}, true

	case o.scrubBar.Contains(x, y):
		o.drag = dragScrub
		return Action{ActionSeek, o.scrubRatio(x)}, true
	}
	return Action{}, false
}

// HandleMouseMotion updates the captured widget during a drag. The
// capture persists even when the cursor leaves the widget rectangle.
func (o *Overlay) HandleMouseMotion(x, y float32) (Action, bool) {
	switch o.drag {
	case dragExaggeration:
		o.exaggeration.setFromX(x)
		return Action{ActionExaggeration, o.exaggeration.value}, true
	case dragSpeed:
		o.speed.setFromX(x)
		return Action{ActionSpeed, o.speed.value}, true
	case dragScrub:
		return Action{ActionSeek, o.scrubRatio(x)}, true
	}
	return Action{}, false
}

// HandleMouseUp releases any drag capture.
func (o *Overlay) HandleMouseUp() {
	o.drag = dragNone
}

func (o *Overlay) scrubRatio(x float32) float32 {
	r := (x - o.scrubBar.X) / o.scrubBar.W
	if r < 0 {
		r = 0
	}
	if r > 1 {
		r = 1
	}
	return r
}

// NavFrame returns the minimap rectangle in logical coordinates.
func (o *Overlay) NavFrame() Rect { return o.navFrame }

// DrawRect is one filled or outlined rectangle the renderer draws in
// the UI pass.
type DrawRect struct {
	Rect    Rect
	Color   Color
	Outline bool
}

// Rects emits this frame's widget rectangles. playRatio fills the
// scrub bar; the minimap frame border is emitted only while playing.
func (o *Overlay) Rects(playing bool, playRatio float32) []DrawRect {
	out := make([]DrawRect, 0, 10)

	for _, s := range []*slider{&o.exaggeration, &o.speed} {
		out = append(out,
			DrawRect{Rect: s.rect, Color: colorTrack},
			DrawRect{Rect: knobRect(s), Color: colorKnob},
		)
	}

	buttonColor := colorButton
	if playing {
		buttonColor = colorButtonAlt
	}
	out = append(out, DrawRect{Rect: o.playButton, Color: buttonColor})

	out = append(out, DrawRect{Rect: o.scrubBar, Color: colorScrubBg})
	if playRatio > 0 {
		fill := o.scrubBar
		fill.W *= clampRatio(playRatio)
		out = append(out, DrawRect{Rect: fill, Color: colorScrubFill})
	}

	if playing {
		out = append(out, DrawRect{Rect: o.navFrame, Color: colorFrame, Outline: true})
	}
	return out
}

func knobRect(s *slider) Rect {
	cx := s.rect.X + s.ratio()*s.rect.W
	return Rect{cx - knobWidth/2, s.rect.Y - 2, knobWidth, s.rect.H + 4}
}

func clampRatio(r float32) float32 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
