// Package viewport binds a basket scene to a host surface: it creates the
// renderer, keeps its size and the camera aspect in step with the container,
// runs the animation loop and releases everything on unmount.
package viewport

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"basket3d/internal/basket"
	"basket3d/internal/scene"
)

var (
	// ErrNoContainer is returned when there is nothing to mount into. No
	// scene or renderer is created in that case.
	ErrNoContainer = errors.New("viewport: no container to mount into")
	// ErrRendererUnavailable wraps renderer construction failures, such as a
	// missing graphics context.
	ErrRendererUnavailable = errors.New("viewport: renderer unavailable")
)

// ShadowType selects the shadow-map filtering a renderer should use.
type ShadowType int

const (
	ShadowBasic ShadowType = iota
	ShadowPCF
	ShadowPCFSoft
)

// RendererOptions is what the viewport asks the host renderer for.
type RendererOptions struct {
	Width, Height int
	Alpha         bool // transparent clear
	Antialias     bool
	Shadows       bool
	ShadowType    ShadowType
}

// Renderer draws the scene into the host surface.
type Renderer interface {
	basket.Renderer
	SetSize(width, height int)
	// Dispose releases buffers, programs and textures. The renderer is not
	// used after Dispose.
	Dispose()
}

// Container is the host surface the renderer output is placed in.
type Container interface {
	Size() (width, height int)
	Attach(r Renderer) error
	Detach(r Renderer)
}

// ResizeSource notifies when the container may have changed size.
type ResizeSource interface {
	OnResize(fn func()) (unsubscribe func())
}

// Host bundles the collaborators a viewport needs.
type Host struct {
	Container   Container
	Resize      ResizeSource
	Scheduler   basket.FrameScheduler
	NewRenderer func(RendererOptions) (Renderer, error)
}

// Options configure one mount.
type Options struct {
	// Rand drives item placement. Nil means a time-seeded source.
	Rand      basket.Rand
	Animation basket.Options
	Log       zerolog.Logger
}

type state int

const (
	stateMounted state = iota + 1
	stateTornDown
)

// Viewport is one mounted scene. Create it with Mount; after Unmount it is
// inert and cannot be mounted again.
type Viewport struct {
	log         zerolog.Logger
	container   Container
	renderer    Renderer
	world       *basket.World
	driver      *basket.Driver
	loop        *basket.Loop
	unsubscribe func()
	state       state
}

// Mount builds a fresh scene, attaches a renderer to h.Container, sizes it
// to the container and starts animating.
func Mount(h Host, opts Options) (*Viewport, error) {
	if h.Container == nil {
		return nil, ErrNoContainer
	}
	if h.Scheduler == nil {
		return nil, errors.New("viewport: host has no frame scheduler")
	}
	if h.NewRenderer == nil {
		return nil, fmt.Errorf("%w: host has no renderer factory", ErrRendererUnavailable)
	}

	r, err := h.NewRenderer(RendererOptions{
		Width:      basket.RendererWidth,
		Height:     basket.RendererHeight,
		Alpha:      true,
		Antialias:  true,
		Shadows:    true,
		ShadowType: ShadowPCFSoft,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRendererUnavailable, err)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: factory returned no renderer", ErrRendererUnavailable)
	}

	rng := opts.Rand
	if rng == nil {
		var seed int64
		rng, seed = basket.NewRand(0)
		opts.Log.Debug().Int64("seed", seed).Msg("placement seed")
	}

	v := &Viewport{
		log:       opts.Log,
		container: h.Container,
		renderer:  r,
		world:     basket.Build(rng),
		state:     stateMounted,
	}
	v.driver = basket.NewDriver(v.world, opts.Animation)

	if err := h.Container.Attach(r); err != nil {
		r.Dispose()
		v.world.Dispose()
		return nil, fmt.Errorf("viewport: attach renderer: %w", err)
	}

	// Size once up front so the first frame already matches the container.
	v.Resize()
	if h.Resize != nil {
		v.unsubscribe = h.Resize.OnResize(v.Resize)
	}
	v.loop = v.driver.Start(h.Scheduler, r)

	v.log.Info().
		Int("items", v.world.ItemCount()).
		Int("lights", len(v.world.Scene.Lights)).
		Msg("viewport mounted")
	return v, nil
}

// Resize measures the container and applies its size to the renderer and
// camera. A container with no area leaves the previous size and aspect alone.
func (v *Viewport) Resize() {
	if v.state != stateMounted {
		return
	}
	w, h := v.container.Size()
	if w <= 0 || h <= 0 {
		v.log.Debug().Int("width", w).Int("height", h).Msg("skipping resize of empty container")
		return
	}
	cam := v.world.Camera
	cam.Aspect = float32(w) / float32(h)
	cam.UpdateProjection()
	v.renderer.SetSize(w, h)
	v.log.Debug().Int("width", w).Int("height", h).Float32("aspect", cam.Aspect).Msg("viewport resized")
}

// Unmount stops the animation, stops listening for resizes, detaches and
// disposes the renderer and drops the scene. Calling it again does nothing.
func (v *Viewport) Unmount() {
	if v.state != stateMounted {
		return
	}
	v.state = stateTornDown

	// The loop goes first so no frame can reach a disposed renderer.
	v.loop.Cancel()
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
	v.container.Detach(v.renderer)
	v.renderer.Dispose()
	v.world.Dispose()

	v.renderer = nil
	v.container = nil
	v.world = nil
	v.driver = nil
	v.log.Info().Msg("viewport unmounted")
}

// Mounted reports whether the viewport is live.
func (v *Viewport) Mounted() bool {
	return v.state == stateMounted
}

// World returns the mounted scene, or nil after Unmount.
func (v *Viewport) World() *basket.World {
	return v.world
}

// Driver returns the animation driver, or nil after Unmount.
func (v *Viewport) Driver() *basket.Driver {
	return v.driver
}

// Camera returns the scene camera, or nil after Unmount.
func (v *Viewport) Camera() *scene.Camera {
	if v.world == nil {
		return nil
	}
	return v.world.Camera
}
