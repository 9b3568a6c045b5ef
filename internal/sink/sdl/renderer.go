// Package sdl implements the Visualization Sink contract on top of an
// SDL2 window: a scrolling plan-position display with one trail per
// tracked aircraft.
package sdl

import (
	"fmt"
	"sync"

	gosdl "github.com/veandco/go-sdl2/sdl"

	"mode1090/internal/sink"
)

const (
	windowWidth  = 1024
	windowHeight = 768
	latLonMult   = 111.195 // km per degree of latitude, used to project around the current center
)

var (
	colorBackground = gosdl.Color{R: 0, G: 0, B: 0, A: 255}
	colorTrail      = gosdl.Color{R: 90, G: 133, B: 50, A: 255}
	colorPlane      = gosdl.Color{R: 253, G: 250, B: 31, A: 255}
)

type track struct {
	path       []sink.Point
	point      []sink.Point
	callsign   string
	speedKts   string
	headingDeg string
}

// Renderer draws every tracked aircraft's path and position onto an
// SDL window, redrawing on every update. It owns the SDL window for
// the lifetime of the process; Close tears it down.
type Renderer struct {
	mu     sync.Mutex
	tracks map[string]*track

	window   *gosdl.Window
	renderer *gosdl.Renderer

	centerLat, centerLon float64
	maxDistanceKm        float64
}

// NewRenderer opens an SDL window and returns a Renderer ready to
// receive Sink updates. The caller must arrange for Close to run on
// shutdown since SDL resources are process-global.
func NewRenderer() (*Renderer, error) {
	if err := gosdl.Init(gosdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL: %w", err)
	}

	window, err := gosdl.CreateWindow("mode1090", gosdl.WINDOWPOS_CENTERED, gosdl.WINDOWPOS_CENTERED,
		windowWidth, windowHeight, gosdl.WINDOW_SHOWN)
	if err != nil {
		gosdl.Quit()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	renderer, err := gosdl.CreateRenderer(window, -1, gosdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		gosdl.Quit()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	return &Renderer{
		tracks:        make(map[string]*track),
		window:        window,
		renderer:      renderer,
		maxDistanceKm: 250,
	}, nil
}

// Close releases the SDL window and renderer.
func (r *Renderer) Close() error {
	r.renderer.Destroy()
	r.window.Destroy()
	gosdl.Quit()
	return nil
}

func (r *Renderer) trackFor(icaoHex string) *track {
	t, ok := r.tracks[icaoHex]
	if !ok {
		t = &track{}
		r.tracks[icaoHex] = t
	}
	return t
}

// UpdatePath implements sink.Sink.
func (r *Renderer) UpdatePath(icaoHex string, path []sink.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trackFor(icaoHex).path = path
	if len(path) > 0 {
		r.centerLat, r.centerLon = path[len(path)-1].Lat, path[len(path)-1].Lon
	}
	r.draw()
}

// UpdatePoint implements sink.Sink.
func (r *Renderer) UpdatePoint(icaoHex string, path []sink.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trackFor(icaoHex).point = path
	r.draw()
}

// SetAttributes implements sink.Sink.
func (r *Renderer) SetAttributes(icaoHex string, callsign, speedKts, headingDeg, latlong string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.trackFor(icaoHex)
	t.callsign, t.speedKts, t.headingDeg = callsign, speedKts, headingDeg
}

// LogLine implements sink.Sink. The SDL sink has no text console, so
// it is a no-op here; the same event still reaches any recording sink
// wired alongside it.
func (r *Renderer) LogLine(string) {}

// draw must be called with r.mu held.
func (r *Renderer) draw() {
	r.renderer.SetDrawColor(colorBackground.R, colorBackground.G, colorBackground.B, colorBackground.A)
	r.renderer.Clear()

	r.renderer.SetDrawColor(colorTrail.R, colorTrail.G, colorTrail.B, colorTrail.A)
	for _, t := range r.tracks {
		for i := 1; i < len(t.path); i++ {
			x1, y1 := r.project(t.path[i-1])
			x2, y2 := r.project(t.path[i])
			r.renderer.DrawLine(x1, y1, x2, y2)
		}
	}

	r.renderer.SetDrawColor(colorPlane.R, colorPlane.G, colorPlane.B, colorPlane.A)
	for _, t := range r.tracks {
		for i, p := range t.point {
			x, y := r.project(p)
			if i == len(t.point)-1 {
				// Latest fix: a 5x5 marker instead of a single pixel.
				r.renderer.FillRect(&gosdl.Rect{X: x - 2, Y: y - 2, W: 5, H: 5})
				continue
			}
			r.renderer.DrawPoint(x, y)
		}
	}

	r.renderer.Present()
}

func (r *Renderer) project(p sink.Point) (int32, int32) {
	dx := (p.Lon - r.centerLon) * latLonMult
	dy := (p.Lat - r.centerLat) * latLonMult
	scale := float64(windowWidth) / (2 * r.maxDistanceKm)
	x := int32(float64(windowWidth)/2 + dx*scale)
	y := int32(float64(windowHeight)/2 - dy*scale)
	return x, y
}
