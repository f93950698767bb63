// Command life runs Conway's Game of Life on the GPU.
//
// Every frame draws the current generation and computes the next one in a
// single submission; the generation advances once per second. Release Escape
// or close the window to quit.
//
// Usage:
//
//	life [-width 800] [-height 800] [-seed N] [-verify] [-log-level debug]
//	life -headless 100    # run 100 generations offscreen and check them
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/life"
	"github.com/gogpu/life/grid"
	"github.com/gogpu/life/internal/app"
	"github.com/gogpu/life/internal/gpu"
	"github.com/gogpu/life/sim"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := app.NewConfig()
	fs := flag.NewFlagSet("life", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "life:", err)
		return 2
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	life.SetLogger(logger)

	g := cfg.Grid()
	logger.Info("life: grid seeded", "side", g.Side(), "population", g.Population())

	var err error
	if cfg.Headless > 0 {
		err = runHeadless(cfg, g)
	} else {
		err = runWindow(cfg, g)
	}
	if err != nil {
		logger.Error("life: exiting", "err", err)
		return 1
	}
	return 0
}

// runWindow opens the window and drives the orchestrator from its draw
// callback. GPU objects are built on the first frame, once the host has a
// device and a surface.
func runWindow(cfg *app.Config, g *grid.Grid) error {
	win := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle("Game of Life").
		WithSize(cfg.Width, cfg.Height).
		WithContinuousRender(true))

	var (
		ctx      *gpu.Context
		renderer *gpu.Renderer
		orch     *app.Orchestrator
		runErr   error
	)
	fail := func(err error) {
		if runErr == nil {
			runErr = err
		}
		win.Quit()
	}

	win.OnDraw(func(dc *gogpu.Context) {
		if runErr != nil || (orch != nil && orch.Closed()) {
			return
		}

		if renderer == nil {
			provider := win.GPUContextProvider()
			if provider == nil {
				return
			}
			life.Logger().Info("life: window ready", "backend", dc.Backend())

			var dp gpucontext.DeviceProvider = provider
			var err error
			if ctx, err = gpu.FromProvider(dp); err != nil {
				fail(err)
				return
			}
			if renderer, err = gpu.NewRenderer(ctx, g, gpu.WithShaderPaths(cfg.ShaderPaths())); err != nil {
				fail(err)
				return
			}
			orch = app.NewOrchestrator(renderer, sim.NewStepper(sim.DefaultPeriod, time.Now()), g.Side(), cfg.Verify)

			// Resize events before this point had no orchestrator to reach.
			sw, sh := dc.SurfaceSize()
			if w, h, ok := surfaceExtent(sw, sh); ok {
				orch.Resize(w, h)
			}
		}

		view := hostView(dc.SurfaceView())
		if _, _, err := orch.Redraw(time.Now(), view); err != nil && !errors.Is(err, app.ErrClosed) {
			fail(err)
		}
	})

	win.OnResize(func(w, h int) {
		if orch == nil {
			return
		}
		if sw, sh, ok := surfaceExtent(w, h); ok {
			orch.Resize(sw, sh)
		}
	})

	win.EventSource().OnKeyRelease(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if orch != nil && orch.HandleKey(key) {
			win.Quit()
		}
	})

	win.OnClose(func() {
		if orch != nil {
			orch.Close()
			if cfg.Verify {
				life.Logger().Info("life: verification",
					"checked", orch.Verified(),
					"mismatches", orch.Mismatches(),
				)
			}
		}
		if renderer != nil {
			renderer.Destroy()
		}
		if ctx != nil {
			ctx.Close()
		}
	})

	if err := win.Run(); err != nil {
		return err
	}
	return runErr
}
