package graphics

import (
	"context"
	"errors"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"basket3d/internal/frame"
	"basket3d/internal/viewport"
)

// ErrNoWindow is returned when raylib could not open a window or GL context.
var ErrNoWindow = errors.New("graphics: no window")

// Options configure the window opened by Run.
type Options struct {
	Title       string
	Width       int
	Height      int
	TargetFPS   int
	Resizable   bool
	Transparent bool
	MSAA        bool
	Log         zerolog.Logger
}

// Hooks are called by Run at fixed points of the window lifetime.
// Mount runs once the GL context exists; Unmount runs before the window closes
// (also when Mount failed halfway). Overlay runs every frame after the scene
// has been drawn.
type Hooks struct {
	Mount   func(h viewport.Host) error
	Unmount func()
	Overlay func()
}

// Run opens the window and drives the frame loop until the window is closed
// or ctx is done. Each frame it forwards resize events, clears to transparent,
// runs the frame callbacks (which render the scene) and draws the overlay.
func Run(ctx context.Context, opts Options, hooks Hooks) error {
	var flags uint32
	if opts.Resizable {
		flags |= rl.FlagWindowResizable
	}
	if opts.Transparent {
		flags |= rl.FlagWindowTransparent
	}
	if opts.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return ErrNoWindow
	}
	if opts.TargetFPS > 0 {
		rl.SetTargetFPS(int32(opts.TargetFPS))
	}

	win := newWindow()
	sched := frame.New()
	host := viewport.Host{
		Container: win,
		Resize:    win,
		Scheduler: sched,
		NewRenderer: func(ro viewport.RendererOptions) (viewport.Renderer, error) {
			r, err := NewRenderer(win, ro, opts.Log)
			if err != nil {
				return nil, err
			}
			return r, nil
		},
	}
	if hooks.Unmount != nil {
		defer hooks.Unmount()
	}
	if hooks.Mount != nil {
		if err := hooks.Mount(host); err != nil {
			return err
		}
	}
	opts.Log.Info().
		Int("width", rl.GetScreenWidth()).
		Int("height", rl.GetScreenHeight()).
		Msg("window open")

	start := time.Now()
	for !rl.WindowShouldClose() {
		select {
		case <-ctx.Done():
			opts.Log.Info().Msg("stopping on context cancel")
			return nil
		default:
		}
		if rl.IsWindowResized() {
			win.notifyResize()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Blank)
		sched.Tick(time.Since(start))
		if hooks.Overlay != nil {
			hooks.Overlay()
		}
		rl.EndDrawing()
	}
	return nil
}
