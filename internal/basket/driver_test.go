package basket

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basket3d/internal/frame"
	"basket3d/internal/scene"
)

// countingRenderer records what the scene looked like when each frame was drawn.
type countingRenderer struct {
	driver  *Driver
	basket  *Basket
	renders int
	last    *scene.Scene
	frames  []uint64
	spins   []float32
}

func (r *countingRenderer) Render(s *scene.Scene, _ *scene.Camera) {
	r.renders++
	r.last = s
	if r.driver != nil {
		r.frames = append(r.frames, r.driver.Frames())
	}
	if r.basket != nil {
		r.spins = append(r.spins, r.basket.Group.Rotation.Y())
	}
}

func TestBounceAndSway(t *testing.T) {
	assert.InDelta(t, math32.Sin(2*1.0+0.5*3)*0.002, Bounce(1.0, 3), 1e-9)
	assert.InDelta(t, math32.Sin(1.5*1.0+0.3*3)*0.001, Sway(1.0, 3), 1e-9)
	assert.Equal(t, float32(0), Bounce(0, 0))
	assert.NotEqual(t, Bounce(0.5, 1), Bounce(0.5, 2))
}

func TestStepAdvancesTime(t *testing.T) {
	d := NewDriver(Build(seeded(1)), Options{})
	for i := 0; i < 10; i++ {
		d.Step()
	}
	assert.Equal(t, uint64(10), d.Frames())
	assert.InDelta(t, 0.1, d.Time(), 1e-6)
}

func TestBasketsSpinInSync(t *testing.T) {
	w := Build(seeded(1))
	d := NewDriver(w, Options{})
	for i := 0; i < 100; i++ {
		d.Step()
	}
	for _, b := range w.Baskets {
		assert.InDelta(t, 0.3, b.Group.Rotation.Y(), 1e-4)
		assert.Equal(t, w.Baskets[0].Group.Rotation, b.Group.Rotation)
	}
}

func TestItemRotationAndScaleAfterFrames(t *testing.T) {
	w := Build(seeded(2))
	d := NewDriver(w, Options{})
	for i := 0; i < 50; i++ {
		d.Step()
	}
	for _, c := range w.Categories {
		for _, it := range c.Items {
			want := it.Initial.Rotation.Y() + 50*ItemSpin
			if want >= 2*math32.Pi {
				want -= 2 * math32.Pi
			}
			assert.InDelta(t, want, it.Node.Rotation.Y(), 1e-4)
			assert.Equal(t, it.Initial.Rotation.X(), it.Node.Rotation.X())
			assert.Equal(t, it.Initial.Rotation.Z(), it.Node.Rotation.Z())
			assert.Equal(t, it.Initial.Scale, it.Node.Scale)
			assert.Equal(t, it.Initial.Position.Z(), it.Node.Position.Z())
		}
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	run := func() *World {
		w := Build(seeded(42))
		d := NewDriver(w, Options{})
		for i := 0; i < 250; i++ {
			d.Step()
		}
		return w
	}
	a, b := run(), run()
	for k := range a.Categories {
		for i, it := range a.Categories[k].Items {
			assert.Equal(t, it.Node.Transform, b.Categories[k].Items[i].Node.Transform)
		}
	}
}

func TestHundredFramesEndToEnd(t *testing.T) {
	w := Build(seeded(2024))
	d := NewDriver(w, Options{})
	for i := 0; i < 100; i++ {
		d.Step()
	}

	assert.Equal(t, mgl32.Vec3{0, 4, 8}, w.Camera.Position)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, w.Camera.Target)
	for _, b := range w.Baskets {
		assert.InDelta(t, 0.3, b.Group.Rotation.Y(), 1e-4)
	}

	first := w.Categories[Fruit].Items[0]
	want := first.Initial.Position
	var tt float32
	for i := 0; i < 100; i++ {
		tt += TimeStep
		want[1] += Bounce(tt, first.Index)
		want[0] += Sway(tt, first.Index)
	}
	got := first.Node.Position
	assert.InDelta(t, want.X(), got.X(), 1e-6)
	assert.InDelta(t, want.Y(), got.Y(), 1e-6)
	assert.Equal(t, first.Initial.Position.Z(), got.Z())
}

func TestRateIndependentAdvance(t *testing.T) {
	fixed := NewDriver(Build(seeded(1)), Options{})
	fixed.Advance(time.Second / 30)
	assert.InDelta(t, 0.01, fixed.Time(), 1e-6)

	scaled := NewDriver(Build(seeded(1)), Options{RateIndependent: true})
	scaled.Advance(time.Second / 30)
	assert.InDelta(t, 0.02, scaled.Time(), 1e-5)
	assert.InDelta(t, 2*BasketSpin, scaled.world.Baskets[0].Group.Rotation.Y(), 1e-5)
}

func TestRateIndependentAdvanceCapsLongStalls(t *testing.T) {
	w := Build(seeded(1))
	d := NewDriver(w, Options{RateIndependent: true})
	before := make(map[*Item]float32)
	for _, c := range w.Categories {
		for _, it := range c.Items {
			before[it] = it.Node.Position.Y()
		}
	}

	d.Advance(10 * time.Minute)
	assert.InDelta(t, maxCatchUp*TimeStep, d.Time(), 1e-6)
	assert.InDelta(t, maxCatchUp*BasketSpin, w.Baskets[Fish].Group.Rotation.Y(), 1e-6)
	for it, y := range before {
		assert.InDelta(t, y, it.Node.Position.Y(), maxCatchUp*BounceAmplitude+1e-6)
	}
}

func TestWrapAngleStaysInRange(t *testing.T) {
	for _, a := range []float32{0, 1, 2 * math32.Pi, 7, 139.9, -0.5, -40} {
		got := wrapAngle(a)
		assert.GreaterOrEqual(t, got, float32(0), "%v", a)
		assert.Less(t, got, float32(2*math32.Pi), "%v", a)
	}
	assert.InDelta(t, 7-2*math32.Pi, wrapAngle(7), 1e-5)
	assert.InDelta(t, 2*math32.Pi-0.5, wrapAngle(-0.5), 1e-5)
}

func TestMaxDriftClampsItems(t *testing.T) {
	w := Build(seeded(5))
	d := NewDriver(w, Options{MaxDrift: 0.005})
	for i := 0; i < 2000; i++ {
		d.Step()
	}
	for _, c := range w.Categories {
		for _, it := range c.Items {
			assert.InDelta(t, it.Initial.Position.X(), it.Node.Position.X(), 0.005+1e-6)
			assert.InDelta(t, it.Initial.Position.Y(), it.Node.Position.Y(), 0.005+1e-6)
		}
	}
}

func TestRotationWraps(t *testing.T) {
	w := Build(seeded(1))
	d := NewDriver(w, Options{})
	n := 2 * math32.Pi / BasketSpin
	frames := int(n) + 10
	for i := 0; i < frames; i++ {
		d.Step()
	}
	r := w.Baskets[Fish].Group.Rotation.Y()
	assert.GreaterOrEqual(t, r, float32(0))
	assert.Less(t, r, float32(2*math32.Pi))
}

func TestLoopRendersAfterMutations(t *testing.T) {
	w := Build(seeded(1))
	d := NewDriver(w, Options{})
	sched := frame.New()
	r := &countingRenderer{driver: d, basket: w.Baskets[Fruit]}
	loop := d.Start(sched, r)

	for i := 1; i <= 3; i++ {
		sched.Tick(time.Duration(i) * 16 * time.Millisecond)
	}
	assert.Equal(t, 3, r.renders)
	// Each render already sees its own frame's step.
	assert.Equal(t, []uint64{1, 2, 3}, r.frames)
	require.Len(t, r.spins, 3)
	for i, spin := range r.spins {
		assert.InDelta(t, float32(i+1)*BasketSpin, spin, 1e-6)
	}
	assert.Equal(t, uint64(3), d.Frames())
	assert.Same(t, w.Scene, r.last)
	assert.Equal(t, 1, sched.Pending())

	loop.Cancel()
	loop.Cancel()
	assert.True(t, loop.Cancelled())
	assert.Equal(t, 0, sched.Pending())
	sched.Tick(time.Second)
	assert.Equal(t, 3, r.renders)
	assert.Equal(t, uint64(3), d.Frames())
}

func TestLoopCancelledBeforeFirstFrame(t *testing.T) {
	d := NewDriver(Build(seeded(1)), Options{})
	sched := frame.New()
	r := &countingRenderer{}
	loop := d.Start(sched, r)
	loop.Cancel()
	require.Equal(t, 0, sched.Tick(0))
	assert.Zero(t, r.renders)
}
