package basket

import (
	"time"

	"github.com/chewxy/math32"

	"basket3d/internal/frame"
	"basket3d/internal/scene"
)

// Animation constants. All deltas are applied once per frame.
const (
	TimeStep   = 0.01
	BasketSpin = 0.003
	ItemSpin   = 0.004

	BounceAmplitude = 0.002
	BounceFrequency = 2
	BouncePhase     = 0.5

	SwayAmplitude = 0.001
	SwayFrequency = 1.5
	SwayPhase     = 0.3
)

// referenceFrame is the frame length the constants above were tuned for.
const referenceFrame = time.Second / 60

// maxCatchUp caps how many reference frames one Advance may cover, so a
// stalled host resumes where it left off instead of jumping.
const maxCatchUp = 4

// Bounce is the vertical delta for item index i at time t.
func Bounce(t float32, i int) float32 {
	return math32.Sin(BounceFrequency*t+BouncePhase*float32(i)) * BounceAmplitude
}

// Sway is the horizontal (X) delta for item index i at time t.
func Sway(t float32, i int) float32 {
	return math32.Sin(SwayFrequency*t+SwayPhase*float32(i)) * SwayAmplitude
}

// Renderer draws one frame of a scene.
type Renderer interface {
	Render(s *scene.Scene, cam *scene.Camera)
}

// FrameScheduler is the host's refresh callback queue; *frame.Scheduler implements it.
type FrameScheduler interface {
	RequestFrame(cb frame.Callback) frame.Handle
	CancelFrame(h frame.Handle)
}

// Options are the animation behaviors left open to the host.
type Options struct {
	// RateIndependent scales each frame's deltas by the elapsed time relative
	// to a 60 Hz frame. When false every frame advances by exactly one step,
	// so playback speed follows the refresh rate.
	RateIndependent bool
	// MaxDrift bounds how far bounce and sway may carry an item from its
	// initial position on each axis. Zero leaves drift unbounded.
	MaxDrift float32
}

// Driver advances the animation state of a World.
type Driver struct {
	world  *World
	opts   Options
	t      float32
	frames uint64
}

// NewDriver returns a driver at t = 0.
func NewDriver(w *World, opts Options) *Driver {
	return &Driver{world: w, opts: opts}
}

// Time returns the accumulated animation time.
func (d *Driver) Time() float32 {
	return d.t
}

// Frames returns how many frames have been applied.
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Step applies exactly one fixed frame.
func (d *Driver) Step() {
	d.advance(1)
}

// Advance applies one frame that took elapsed host time. Without
// RateIndependent it is the same as Step. With it the step is scaled by
// elapsed relative to a 60 Hz frame, up to maxCatchUp frames.
func (d *Driver) Advance(elapsed time.Duration) {
	k := float32(1)
	if d.opts.RateIndependent && elapsed > 0 {
		k = min(float32(elapsed)/float32(referenceFrame), maxCatchUp)
	}
	d.advance(k)
}

func (d *Driver) advance(k float32) {
	d.t += TimeStep * k
	d.frames++
	for _, b := range d.world.Baskets {
		if b == nil {
			continue
		}
		b.Group.Rotation[1] = wrapAngle(b.Group.Rotation[1] + BasketSpin*k)
	}
	for _, c := range d.world.Categories {
		if c == nil {
			continue
		}
		for i, it := range c.Items {
			n := it.Node
			n.Rotation[1] = wrapAngle(n.Rotation[1] + ItemSpin*k)
			n.Position[1] += Bounce(d.t, i) * k
			n.Position[0] += Sway(d.t, i) * k
			if d.opts.MaxDrift > 0 {
				n.Position[0] = clampAround(n.Position[0], it.Initial.Position[0], d.opts.MaxDrift)
				n.Position[1] = clampAround(n.Position[1], it.Initial.Position[1], d.opts.MaxDrift)
			}
		}
	}
}

// wrapAngle maps a into [0, 2π).
func wrapAngle(a float32) float32 {
	a = math32.Mod(a, 2*math32.Pi)
	if a < 0 {
		a += 2 * math32.Pi
	}
	return a
}

func clampAround(v, origin, limit float32) float32 {
	return min(max(v, origin-limit), origin+limit)
}

// Loop is a running frame task started by Driver.Start.
type Loop struct {
	sched     FrameScheduler
	handle    frame.Handle
	last      time.Duration
	started   bool
	cancelled bool
}

// Start schedules the animation on s. Each frame reschedules itself, applies
// all transform updates and then calls r.Render. The returned Loop must be
// cancelled before the renderer's resources are released.
func (d *Driver) Start(s FrameScheduler, r Renderer) *Loop {
	l := &Loop{sched: s}
	var tick frame.Callback
	tick = func(now time.Duration) {
		if l.cancelled {
			return
		}
		l.handle = s.RequestFrame(tick)
		elapsed := referenceFrame
		if l.started {
			elapsed = now - l.last
		}
		l.last, l.started = now, true
		d.Advance(elapsed)
		if r != nil {
			r.Render(d.world.Scene, d.world.Camera)
		}
	}
	l.handle = s.RequestFrame(tick)
	return l
}

// Cancel stops the loop. No frame runs after Cancel returns. Safe to call twice.
func (l *Loop) Cancel() {
	if l.cancelled {
		return
	}
	l.cancelled = true
	l.sched.CancelFrame(l.handle)
}

// Cancelled reports whether Cancel has been called.
func (l *Loop) Cancelled() bool {
	return l.cancelled
}
