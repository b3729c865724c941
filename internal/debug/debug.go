package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce allocations.
	updateInterval = 30
)

// Stats is the scene state shown by the stats line.
type Stats struct {
	Frames uint64
	Time   float32
	Items  int
}

// Debug holds the on-screen overlays (FPS, scene stats). All overlays are off by default.
type Debug struct {
	ShowFPS   bool
	ShowStats bool
	// Source supplies the stats line. Nil hides it even when ShowStats is set.
	Source func() (Stats, bool)

	frameCount    uint32
	lastFpsText   string
	lastStatsText string
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowStats sets whether the frame/time/items line is drawn under FPS.
func (d *Debug) SetShowStats(show bool) {
	d.ShowStats = show
}

// Toggle flips the overlay bound to key: F1 for FPS, F2 for stats. It
// reports whether anything changed.
func (d *Debug) Toggle(key int32) bool {
	switch key {
	case rl.KeyF1:
		d.ShowFPS = !d.ShowFPS
	case rl.KeyF2:
		d.ShowStats = !d.ShowStats
	default:
		return false
	}
	return true
}

// HandleInput applies the toggle keys pressed this frame.
func (d *Debug) HandleInput() bool {
	changed := false
	for _, key := range []int32{rl.KeyF1, rl.KeyF2} {
		if rl.IsKeyPressed(key) && d.Toggle(key) {
			changed = true
		}
	}
	return changed
}

// FormatStats renders s the way the overlay shows it.
func FormatStats(s Stats) string {
	return fmt.Sprintf("frame %d  t=%.2f  items %d", s.Frames, s.Time, s.Items)
}

// Draw renders any enabled overlays. Call after the scene in the draw loop.
// Text is only recomputed every updateInterval frames to limit allocations.
func (d *Debug) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowStats && d.lastStatsText == "" {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)

	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, screenW, y)
		y += lineHeight
	}

	if d.ShowStats && d.Source != nil {
		if update {
			if s, ok := d.Source(); ok {
				d.lastStatsText = FormatStats(s)
			} else {
				d.lastStatsText = ""
			}
		}
		drawRight(d.lastStatsText, screenW, y)
	}
}

func drawRight(text string, screenW, y int32) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
}
