package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"basket3d/internal/viewport"
)

// Window is the raylib window seen as a viewport container. It reports the
// framebuffer size, holds the attached renderers and fans out resize events.
type Window struct {
	surfaces []viewport.Renderer
	handlers map[int]func()
	nextID   int
}

func newWindow() *Window {
	return &Window{handlers: make(map[int]func())}
}

// Size returns the current screen size in pixels.
func (w *Window) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// Attach makes r visible in the window. Renderers that are not attached skip drawing.
func (w *Window) Attach(r viewport.Renderer) error {
	if !rl.IsWindowReady() {
		return ErrNoWindow
	}
	for _, s := range w.surfaces {
		if s == r {
			return nil
		}
	}
	w.surfaces = append(w.surfaces, r)
	return nil
}

// Detach removes r from the window. Unknown renderers are ignored.
func (w *Window) Detach(r viewport.Renderer) {
	for i, s := range w.surfaces {
		if s == r {
			w.surfaces = append(w.surfaces[:i], w.surfaces[i+1:]...)
			return
		}
	}
}

func (w *Window) attached(r viewport.Renderer) bool {
	for _, s := range w.surfaces {
		if s == r {
			return true
		}
	}
	return false
}

// OnResize registers fn to run whenever the window is resized. The returned
// function removes it again.
func (w *Window) OnResize(fn func()) func() {
	id := w.nextID
	w.nextID++
	w.handlers[id] = fn
	return func() { delete(w.handlers, id) }
}

// notifyResize runs the resize handlers in registration order.
func (w *Window) notifyResize() {
	for id := 0; id < w.nextID; id++ {
		if fn, ok := w.handlers[id]; ok {
			fn()
		}
	}
}
