// Package sim runs the basket animation without a window and reports the
// resulting scene state.
package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"basket3d/internal/basket"
	"basket3d/internal/scene"
)

type Transform struct {
	Position [3]float32 `yaml:"position,flow"`
	Rotation [3]float32 `yaml:"rotation,flow"`
	Scale    float32    `yaml:"scale"`
}

type Item struct {
	Name    string    `yaml:"name"`
	Kind    string    `yaml:"kind"`
	Index   int       `yaml:"index"`
	Initial Transform `yaml:"initial"`
	Final   Transform `yaml:"final"`
}

type Basket struct {
	Kind     string     `yaml:"kind"`
	Position [3]float32 `yaml:"position,flow"`
	Rotation float32    `yaml:"rotation_y"`
	Items    int        `yaml:"items"`
}

type Camera struct {
	Position [3]float32 `yaml:"position,flow"`
	Target   [3]float32 `yaml:"target,flow"`
	FOV      float32    `yaml:"fov"`
	Aspect   float32    `yaml:"aspect"`
}

// Report is the state of a world after a headless run.
type Report struct {
	Seed    int64    `yaml:"seed"`
	Frames  uint64   `yaml:"frames"`
	Time    float32  `yaml:"time"`
	Camera  Camera   `yaml:"camera"`
	Baskets []Basket `yaml:"baskets"`
	Items   []Item   `yaml:"items"`
}

// Options configure Run.
type Options struct {
	Seed      int64 // 0 = time-derived
	Frames    int
	Animation basket.Options
	// Progress, when set, is called once per applied frame.
	Progress func()
}

// Run builds a world, applies opts.Frames fixed steps and reports the result.
func Run(opts Options) (*Report, error) {
	if opts.Frames < 0 {
		return nil, fmt.Errorf("sim: negative frame count %d", opts.Frames)
	}
	rng, seed := basket.NewRand(opts.Seed)
	w := basket.Build(rng)
	defer w.Dispose()

	d := basket.NewDriver(w, opts.Animation)
	for i := 0; i < opts.Frames; i++ {
		d.Step()
		if opts.Progress != nil {
			opts.Progress()
		}
	}

	r := &Report{
		Seed:   seed,
		Frames: d.Frames(),
		Time:   d.Time(),
		Camera: Camera{
			Position: w.Camera.Position,
			Target:   w.Camera.Target,
			FOV:      w.Camera.FOV,
			Aspect:   w.Camera.Aspect,
		},
	}
	for k, c := range w.Categories {
		b := w.Baskets[k]
		r.Baskets = append(r.Baskets, Basket{
			Kind:     c.Kind.String(),
			Position: b.Group.Position,
			Rotation: b.Group.Rotation.Y(),
			Items:    len(c.Items),
		})
		for _, it := range c.Items {
			r.Items = append(r.Items, Item{
				Name:    it.Entry.Name,
				Kind:    c.Kind.String(),
				Index:   it.Index,
				Initial: transform(it.Initial),
				Final:   transform(it.Node.Transform),
			})
		}
	}
	return r, nil
}

func transform(t scene.Transform) Transform {
	return Transform{
		Position: vec(t.Position),
		Rotation: vec(t.Rotation),
		Scale:    t.Scale.X(),
	}
}

func vec(v mgl32.Vec3) [3]float32 {
	return [3]float32(v)
}
