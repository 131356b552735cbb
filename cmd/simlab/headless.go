package main

import (
	"fmt"
	"io"
	"log"

	"github.com/lixenwraith/atlascore/status"
)

// mismatcher is implemented by scenes that compare duplicate runs
type mismatcher interface {
	Mismatches() int
}

// runHeadless steps frames at a fixed dt and prints the final hash and metrics
func runHeadless(sim *simulation, frames, fps int, reg *status.Registry, out io.Writer) error {
	dt := 1.0 / float64(fps)
	for i := 0; i < frames; i++ {
		if err := sim.step(dt); err != nil {
			return err
		}
	}
	log.Printf("[headless] %s: %d frames", sim.key, sim.frames)

	fmt.Fprintf(out, "scenario=%s frames=%d hash=%016x\n", sim.key, sim.frames, sim.hash())
	if m, ok := sim.scene.(mismatcher); ok {
		fmt.Fprintf(out, "mismatches=%d\n", m.Mismatches())
	}
	if reg != nil {
		for _, m := range reg.Snapshot() {
			fmt.Fprintf(out, "%s=%s\n", m.Key, m.Value)
		}
	}
	return nil
}
