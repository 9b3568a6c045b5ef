// Package tui implements the Visualization Sink contract as a
// terminal dashboard: a scrolling status line plus a sorted aircraft
// table, refreshed on every update.
package tui

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/awesome-gocui/gocui"

	"mode1090/internal/sink"
)

type row struct {
	callsign   string
	speedKts   string
	headingDeg string
	latlong    string
	updated    time.Time
}

// Dashboard renders tracked aircraft in a gocui terminal UI. It runs
// its own event loop in a background goroutine started by NewDashboard; Close
// stops the loop and restores the terminal.
type Dashboard struct {
	mu   sync.Mutex
	rows map[string]*row
	log  []string

	g      *gocui.Gui
	cancel chan struct{}
}

// NewDashboard starts a gocui terminal UI and returns a Dashboard
// ready to receive Sink updates.
func NewDashboard() (*Dashboard, error) {
	g, err := gocui.NewGui(gocui.OutputNormal, false)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal UI: %w", err)
	}

	d := &Dashboard{
		rows:   make(map[string]*row),
		g:      g,
		cancel: make(chan struct{}),
	}

	g.SetManagerFunc(d.layout)
	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to bind quit key: %w", err)
	}

	go d.run()

	return d, nil
}

func (d *Dashboard) run() {
	if err := d.g.MainLoop(); err != nil && !gocui.IsQuit(err) {
		return
	}
}

// Close stops the terminal UI's event loop and restores the terminal.
func (d *Dashboard) Close() error {
	close(d.cancel)
	d.g.Close()
	return nil
}

func quit(*gocui.Gui, *gocui.View) error {
	return gocui.ErrQuit
}

func (d *Dashboard) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView("status", 0, 0, maxX-1, 2, 0); err == nil || err == gocui.ErrUnknownView {
		if v != nil {
			v.Title = " STATUS "
		}
	}

	if v, err := g.SetView("list", 0, 3, maxX-1, maxY-8, 0); err == nil || err == gocui.ErrUnknownView {
		if v != nil {
			v.Title = " AIRCRAFT "
		}
	}

	if v, err := g.SetView("log", 0, maxY-7, maxX-1, maxY-1, 0); err == nil || err == gocui.ErrUnknownView {
		if v != nil {
			v.Title = " LOG "
			v.Autoscroll = true
		}
	}

	return nil
}

// UpdatePath implements sink.Sink. The terminal table shows only the
// latest position, so path history is discarded beyond its endpoint.
func (d *Dashboard) UpdatePath(icaoHex string, path []sink.Point) {
	if len(path) == 0 {
		return
	}
	d.updateLatLong(icaoHex, path[len(path)-1])
}

// UpdatePoint implements sink.Sink.
func (d *Dashboard) UpdatePoint(icaoHex string, path []sink.Point) {
	if len(path) == 0 {
		return
	}
	d.updateLatLong(icaoHex, path[len(path)-1])
}

func (d *Dashboard) updateLatLong(icaoHex string, p sink.Point) {
	d.mu.Lock()
	r := d.rowFor(icaoHex)
	r.latlong = fmt.Sprintf("%6.2f %6.2f", p.Lat, p.Lon)
	r.updated = time.Now()
	d.mu.Unlock()
	d.refresh()
}

// SetAttributes implements sink.Sink.
func (d *Dashboard) SetAttributes(icaoHex string, callsign, speedKts, headingDeg, latlong string) {
	d.mu.Lock()
	r := d.rowFor(icaoHex)
	r.callsign, r.speedKts, r.headingDeg = callsign, speedKts, headingDeg
	r.updated = time.Now()
	d.mu.Unlock()
	d.refresh()
}

// LogLine implements sink.Sink.
func (d *Dashboard) LogLine(line string) {
	d.mu.Lock()
	d.log = append(d.log, line)
	if len(d.log) > 200 {
		d.log = d.log[len(d.log)-200:]
	}
	d.mu.Unlock()
	d.refresh()
}

func (d *Dashboard) rowFor(icaoHex string) *row {
	r, ok := d.rows[icaoHex]
	if !ok {
		r = &row{}
		d.rows[icaoHex] = r
	}
	return r
}

func (d *Dashboard) refresh() {
	d.g.Update(d.render)
}

func (d *Dashboard) render(g *gocui.Gui) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := g.View("status")
	if err == nil {
		s.Clear()
		fmt.Fprintf(s, " A/C: %02d  LAST UPDATE: %s\n", len(d.rows), time.Now().Format("2006-01-02 15:04:05"))
	}

	l, err := g.View("list")
	if err == nil {
		l.Clear()
		fmt.Fprintln(l, " ICAO ADDR  FLIGHT       SPD    HDG       LAT     LON  SEEN")
		fmt.Fprintln(l, " ============================================================")

		icaos := make([]string, 0, len(d.rows))
		for icaoHex := range d.rows {
			icaos = append(icaos, icaoHex)
		}
		sort.Strings(icaos)

		for _, icaoHex := range icaos {
			r := d.rows[icaoHex]
			fmt.Fprintf(l, " %6s  %9s  %5s  %5s  %16s  %s\n",
				icaoHex, r.callsign, r.speedKts, r.headingDeg, r.latlong, r.updated.Format("15:04:05"))
		}
	}

	lg, err := g.View("log")
	if err == nil {
		lg.Clear()
		for _, line := range d.log {
			fmt.Fprintln(lg, line)
		}
	}

	return nil
}
