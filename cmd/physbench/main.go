// Command physbench measures pipeline throughput for a scenario across scheduler sizes
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/jobs"
	"github.com/lixenwraith/atlascore/physics"
	"github.com/lixenwraith/atlascore/scenario"
	"github.com/lixenwraith/atlascore/status"
)

var (
	duration    = flag.Duration("duration", 5*time.Second, "Wall time per worker count")
	scenarioKey = flag.String("scenario", "stress", "Scenario key")
	workerList  = flag.String("workers", "1,2,4", "Comma separated scheduler sizes")
	maxFrames   = flag.Int("frames", 0, "Stop after this many frames, 0 for no limit")
)

// result is one benchmark row
type result struct {
	workers  int
	frames   int
	elapsed  time.Duration
	contacts int64
	hash     uint64
}

func main() {
	flag.Parse()

	counts, err := parseWorkers(*workerList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "physbench: %v\n", err)
		os.Exit(2)
	}

	results := make([]result, 0, len(counts))
	for _, n := range counts {
		r, err := bench(scenario.Builtins(), *scenarioKey, n, *duration, *maxFrames)
		if err != nil {
			fmt.Fprintf(os.Stderr, "physbench: %v\n", err)
			os.Exit(1)
		}
		results = append(results, r)
	}
	report(os.Stdout, *scenarioKey, results)
}

func parseWorkers(s string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n <= 0 {
			return nil, errors.Errorf("invalid worker count %q", field)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, errors.New("no worker counts given")
	}
	return out, nil
}

// bench steps a fresh world at 60 Hz until the wall-time budget or frame limit is reached
func bench(reg *scenario.Registry, key string, workers int, budget time.Duration, frameLimit int) (result, error) {
	sched := jobs.NewScheduler(workers)
	defer sched.Close()

	metrics := status.NewRegistry()
	sc, err := reg.Create(key)
	if err != nil {
		return result{}, err
	}
	w := engine.NewWorld()
	if err := sc.Setup(w, scenario.Deps{Scheduler: sched, Status: metrics}); err != nil {
		return result{}, errors.Wrapf(err, "setup %s", key)
	}

	const dt = 1.0 / 60
	contacts := metrics.Ints.Get("physics.contacts")
	r := result{workers: workers}
	start := time.Now()
	for time.Since(start) < budget && (frameLimit <= 0 || r.frames < frameLimit) {
		sc.Step(w, dt)
		w.Update(dt)
		if ps := sc.Physics(); ps != nil && ps.Err() != nil {
			return result{}, errors.Wrapf(ps.Err(), "frame %d", r.frames)
		}
		r.frames++
		r.contacts += contacts.Load()
	}
	r.elapsed = time.Since(start)
	r.hash = physics.HashWorld(w)
	return r, nil
}

func report(out io.Writer, key string, results []result) {
	fmt.Fprintf(out, "Benchmark Results (%s):\n", key)
	for _, r := range results {
		if r.frames == 0 {
			fmt.Fprintf(out, "  workers=%d  no frames\n", r.workers)
			continue
		}
		fmt.Fprintf(out, "  workers=%d  frames=%d  avg=%v  fps=%.1f  contacts/frame=%d  hash=%016x\n",
			r.workers, r.frames, r.elapsed/time.Duration(r.frames),
			float64(r.frames)/r.elapsed.Seconds(), r.contacts/int64(r.frames), r.hash)
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Fprintf(out, "  Total Alloc:  %d bytes\n", m.TotalAlloc)
	fmt.Fprintf(out, "  Mallocs:      %d\n", m.Mallocs)
}
