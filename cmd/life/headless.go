package main

import (
	"fmt"
	"slices"
	"time"

	"github.com/gogpu/life"
	"github.com/gogpu/life/grid"
	"github.com/gogpu/life/internal/app"
	"github.com/gogpu/life/internal/gpu"
	"github.com/gogpu/life/sim"
)

// runHeadless opens its own device, renders cfg.Headless generations into
// an offscreen target with one flip per frame, checks every flip against
// the CPU step and finally compares the last generation with a CPU run of
// the same length.
func runHeadless(cfg *app.Config, g *grid.Grid) error {
	ctx, err := gpu.OpenDevice()
	if err != nil {
		return err
	}
	defer ctx.Close()

	renderer, err := gpu.NewRenderer(ctx, g, gpu.WithShaderPaths(cfg.ShaderPaths()))
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	w, h := uint32(cfg.Width), uint32(cfg.Height) //nolint:gosec // validated positive
	target, err := gpu.NewOffscreenTarget(ctx.Device(), w, h, ctx.Format())
	if err != nil {
		return err
	}
	defer target.Destroy()

	start := time.Now()
	orch := app.NewOrchestrator(renderer, sim.NewStepper(sim.DefaultPeriod, start), g.Side(), true)
	orch.Resize(w, h)

	// Frame i runs at i periods, so frame 0 computes generation 1 and every
	// later frame flips first.
	for i := 0; i <= cfg.Headless; i++ {
		now := start.Add(time.Duration(i) * sim.DefaultPeriod)
		if _, _, err := orch.Redraw(now, target.View()); err != nil {
			return err
		}
	}

	cur, err := renderer.ReadCells(gpu.CellBuffer(orch.Parity().Source()))
	if err != nil {
		return err
	}
	want := grid.Generations(g.Cells(), g.Side(), cfg.Headless)

	life.Logger().Info("life: headless run finished",
		"generations", orch.Generation(),
		"frames", orch.Frames(),
		"checked", orch.Verified(),
		"mismatches", orch.Mismatches(),
		"population", population(cur),
	)

	if orch.Mismatches() > 0 {
		return fmt.Errorf("%d of %d generations differ from the CPU step", orch.Mismatches(), orch.Verified())
	}
	if !slices.Equal(cur, want) {
		return fmt.Errorf("generation %d differs from the CPU run", cfg.Headless)
	}
	return nil
}

func population(cells []uint32) int {
	n := 0
	for _, c := range cells {
		n += int(c)
	}
	return n
}
