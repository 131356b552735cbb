package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/render"
	"github.com/lixenwraith/atlascore/status"
)

// viewer holds the terminal front end state
type viewer struct {
	screen *render.Screen
	canvas *render.Canvas
	reg    *status.Registry

	sim     *simulation
	rebuild func() (*simulation, error)

	paused   bool
	stepOnce bool
	quit     bool
}

// runInteractive draws the simulation in the terminal until the user quits or ctx ends
// Keys: q/Esc quit, space pause, n single step while paused, r restart
func runInteractive(ctx context.Context, screen *render.Screen, sim *simulation, rebuild func() (*simulation, error), fps int, reg *status.Registry) error {
	width, height := screen.Size()
	v := &viewer{
		screen:  screen,
		canvas:  render.NewCanvas(width, height),
		reg:     reg,
		sim:     sim,
		rebuild: rebuild,
	}
	done := make(chan struct{})
	defer close(done)
	events := screen.Events(done)

	loop := engine.NewFixedStep(time.Second / time.Duration(fps))
	var stepErr error
	err := loop.Run(ctx, func(dt float64) bool {
		for drained := false; !drained; {
			select {
			case ev, ok := <-events:
				if !ok {
					return false
				}
				v.handle(ev)
			default:
				drained = true
			}
		}
		if v.quit {
			return false
		}

		if !v.paused || v.stepOnce {
			v.stepOnce = false
			if stepErr = v.sim.step(dt); stepErr != nil {
				return false
			}
		}
		v.draw()
		return true
	})
	if stepErr != nil {
		return stepErr
	}
	if err == context.Canceled {
		return nil
	}
	return err
}

func (v *viewer) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			v.quit = true
		case ev.Key() != tcell.KeyRune:
		case ev.Rune() == 'q':
			v.quit = true
		case ev.Rune() == ' ':
			v.paused = !v.paused
		case ev.Rune() == 'n':
			v.stepOnce = true
		case ev.Rune() == 'r':
			sim, err := v.rebuild()
			if err != nil {
				log.Printf("[simlab] restart failed: %v", err)
				return
			}
			v.sim = sim
			v.canvas.Invalidate()
		}
	case *tcell.EventResize:
		width, height := v.screen.Size()
		v.canvas.Resize(width, height)
		v.screen.Sync()
	}
}

func (v *viewer) draw() {
	width, height := v.canvas.Size()
	v.canvas.Clear(' ', render.ColorDefault)

	// Leave the title row and two metric rows free
	vp := render.NewViewport(fitAspect(v.sim.scene.Bounds(), width, height-3), width, height-3)
	sub := render.NewCanvas(vp.Width, vp.Height)
	render.DrawWorld(sub, v.sim.world, vp)
	blit(v.canvas, sub, 0, 1)

	title := fmt.Sprintf("%s  frame %d", v.sim.title, v.sim.frames)
	if v.paused {
		title += "  [paused]"
	}
	render.DrawHUD(v.canvas, title, v.reg.Snapshot())
	v.screen.Present(v.canvas)
}

// blit copies src onto dst with its top-left at x, y
func blit(dst, src *render.Canvas, x, y int) {
	w, h := src.Size()
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			cell := src.Get(col, row)
			dst.Put(x+col, y+row, cell.Rune, cell.Color)
		}
	}
}
