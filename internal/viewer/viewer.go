// Package viewer implements the interactive playback loop: one
// single-threaded frame driver that owns the window, the input queue,
// the playback clock, the camera and the UI overlay.
package viewer

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/trailforge/terravista/internal/config"
	"github.com/trailforge/terravista/internal/engine/camera"
	"github.com/trailforge/terravista/internal/engine/input"
	"github.com/trailforge/terravista/internal/engine/path"
	"github.com/trailforge/terravista/internal/engine/renderer"
	"github.com/trailforge/terravista/internal/engine/terrain"
	"github.com/trailforge/terravista/internal/engine/ui"
	"github.com/trailforge/terravista/internal/engine/window"
	"github.com/trailforge/terravista/internal/logger"
	"github.com/trailforge/terravista/internal/playback"
	"github.com/trailforge/terravista/pkg/math"
)

const (
	// Minimap view half-extent as a multiple of the scene's
	// meters-to-units scale, so the inset covers a fixed ground
	// distance regardless of track size.
	navExtentMeters = 100

	// Marker pulse: radius = pulseBase + pulseAmp*sin(pulseRate*t).
	pulseBase = 1.0
	pulseAmp  = 0.25
	pulseRate = 10.0

	roadSmoothPasses = 2
)

var (
	pathColor     = [4]float32{0.9, 0.2, 0.15, 1}
	roadOuter     = [4]float32{0.15, 0.15, 0.15, 1}
	roadInner     = [4]float32{0.95, 0.85, 0.3, 1}
	roadDot       = [4]float32{0.2, 0.4, 1.0, 1}
	navBackground = [3]float32{0.12, 0.12, 0.14}
)

// Viewer is the playback application instance.
type Viewer struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	mesh     *terrain.Mesh
	route    *playback.Route
	turns    []float32
	forwards []math.Vec3
	road     []math.Vec3

	clock   *playback.Clock
	camera  *camera.Orbit
	heading *camera.Heading
	overlay *ui.Overlay

	exaggeration float32
	cameraDrag   bool
	startTime    time.Time
}

// New creates the viewer and uploads the scene. The mesh and route
// are immutable from here on.
func New(cfg *config.Config, mesh *terrain.Mesh, route *playback.Route) (*Viewer, error) {
	logFields := []zap.Field{
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Float64("duration", route.Duration()),
	}
	logger.Info("initializing viewer", logFields...)

	v := &Viewer{
		cfg:          cfg,
		mesh:         mesh,
		route:        route,
		exaggeration: cfg.Scene.Exaggeration,
	}

	// Window first: it owns the OpenGL context.
	var err error
	v.window, err = window.New(window.Config{
		Title:      "terravista",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	fbW, fbH := v.window.GetDrawableSize()
	v.renderer, err = renderer.New(fbW, fbH)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.renderer.UploadMesh(mesh)

	v.input = input.New()

	v.forwards, v.turns = path.Derive(route.Points())
	v.road = path.SmoothPolyline(route.Points(), roadSmoothPasses)

	v.clock = playback.NewClock(route.Duration(), float64(cfg.Playback.Speed))
	v.camera = camera.NewOrbit()
	v.heading = camera.NewHeading(cfg.Scene.TurnSmoothing, cfg.Scene.HeadingInertia)

	logW, logH := v.window.GetSize()
	v.overlay = ui.NewOverlay(logW, logH, cfg.Scene.Exaggeration, cfg.Playback.Speed)

	logger.Info("viewer initialized")
	return v, nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

// Run starts the frame loop. Returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true
	v.startTime = time.Now()

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting playback loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		// 2. Advance playback and smoothing
		v.update(dt)

		// 3. Render
		v.render()

		// 4. Present
		v.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// handleEvents drains the frame's input queue. The overlay gets first
// refusal on every mouse event; only unclaimed presses rotate the
// camera.
func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			fbW, fbH := v.window.GetDrawableSize()
			v.renderer.Resize(fbW, fbH)
			v.overlay.Resize(event.Width, event.Height)

		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_SPACE:
				v.clock.Toggle()
			}

		case input.EventMouseDown:
			if event.Button != sdl.BUTTON_LEFT {
				continue
			}
			action, handled := v.overlay.HandleMouseDown(float32(event.MouseX), float32(event.MouseY))
			if handled {
				v.applyAction(action)
			} else {
				v.cameraDrag = true
			}

		case input.EventMouseMove:
			if v.overlay.Dragging() {
				action, _ := v.overlay.HandleMouseMotion(float32(event.MouseX), float32(event.MouseY))
				v.applyAction(action)
			} else if v.cameraDrag {
				v.camera.HandleDrag(float32(event.RelX), float32(event.RelY))
			}

		case input.EventMouseUp:
			if event.Button == sdl.BUTTON_LEFT {
				v.overlay.HandleMouseUp()
				v.cameraDrag = false
			}

		case input.EventMouseWheel:
			v.camera.HandleZoom(float32(event.WheelY))
		}
	}
}

func (v *Viewer) applyAction(action ui.Action) {
	switch action.Kind {
	case ui.ActionExaggeration:
		v.exaggeration = action.Value
	case ui.ActionSpeed:
		v.clock.SetSpeed(float64(action.Value))
	case ui.ActionSeek:
		// Scrub starts freeze playback; Tick is also suppressed for
		// as long as the drag is held.
		v.clock.Pause()
		v.clock.Seek(float64(action.Value))
	case ui.ActionTogglePlay:
		v.clock.Toggle()
	}
}

func (v *Viewer) update(dt float64) {
	if !v.overlay.Scrubbing() {
		v.clock.Tick(dt)
	}

	_, segment, _ := v.route.At(v.clock.Cursor())
	v.heading.UpdateTurn(v.route.TurnAt(v.clock.Cursor(), v.turns))
	v.heading.UpdateForward(v.forwards[segment].XY())
}

func (v *Viewer) render() {
	pos, _, _ := v.route.At(v.clock.Cursor())

	fbW, fbH := v.window.GetDrawableSize()
	aspect := float32(fbW) / float32(fbH)
	proj := math.Perspective(45*math32.Pi/180, aspect, 0.1, 5000)
	viewProj := proj.Mul(v.camera.ViewMatrix())

	// Dynamic exaggeration relative to what the mesh was baked with.
	model := math.Scale(1, 1, v.exaggeration/v.cfg.Scene.Exaggeration)

	light := renderer.DefaultLight()

	v.renderer.BeginFrame()
	v.renderer.DrawTerrain(viewProj, model, light)
	v.renderer.DrawLineStrip(viewProj, v.route.Points(), pathColor, 3)

	t := float32(time.Since(v.startTime).Seconds())
	radius := pulseBase + pulseAmp*math32.Sin(pulseRate*t)
	v.renderer.DrawMarker(viewProj, pos, radius, light)

	if v.clock.Playing() {
		v.renderMinimap(pos, model, light)
	}

	v.renderUI()
}

// renderMinimap draws the picture-in-picture inset: the same terrain
// under a top-down orthographic projection centered on the current
// position, with the smoothed road drawn as a two-width stroke.
func (v *Viewer) renderMinimap(pos math.Vec3, model math.Mat4, light renderer.Light) {
	frame := v.overlay.NavFrame()

	// The overlay works in logical coordinates; scissor and viewport
	// take physical pixels.
	fbW, fbH := v.window.GetDrawableSize()
	logW, logH := v.window.GetSize()
	scaleX := float32(fbW) / float32(logW)
	scaleY := float32(fbH) / float32(logH)

	x := int(frame.X * scaleX)
	y := int(frame.Y * scaleY)
	w := int(frame.W * scaleX)
	h := int(frame.H * scaleY)

	v.renderer.BeginSubView(x, y, w, h, navBackground)

	ext := navExtentMeters * v.mesh.Frame.GlobalScale
	aspect := frame.W / frame.H
	ortho := math.Ortho(
		pos.X-ext*aspect, pos.X+ext*aspect,
		pos.Y-ext, pos.Y+ext,
		-1000, 1000,
	)

	v.renderer.DrawTerrain(ortho, model, light)
	v.renderer.DrawLineStrip(ortho, v.road, roadOuter, 8)
	v.renderer.DrawLineStrip(ortho, v.road, roadInner, 4)
	v.renderer.DrawPoint(ortho, pos, roadDot, 10)

	v.renderer.EndSubView()
}

func (v *Viewer) renderUI() {
	logW, logH := v.window.GetSize()

	v.renderer.BeginUI(logW, logH)
	for _, d := range v.overlay.Rects(v.clock.Playing(), float32(v.clock.Ratio())) {
		c := [4]float32{d.Color.R, d.Color.G, d.Color.B, d.Color.A}
		if d.Outline {
			v.renderer.DrawUIRectOutline(d.Rect.X, d.Rect.Y, d.Rect.W, d.Rect.H, c)
		} else {
			v.renderer.DrawUIRect(d.Rect.X, d.Rect.Y, d.Rect.W, d.Rect.H, c)
		}
	}
	v.renderer.EndUI()
}
