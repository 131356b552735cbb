// Command simlab runs the bundled physics scenarios in the terminal or headless
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"text/tabwriter"

	"github.com/lixenwraith/atlascore/audio"
	"github.com/lixenwraith/atlascore/config"
	"github.com/lixenwraith/atlascore/jobs"
	"github.com/lixenwraith/atlascore/render"
	"github.com/lixenwraith/atlascore/scenario"
	"github.com/lixenwraith/atlascore/status"
)

var (
	scenarioFlag = flag.String("scenario", "", "Scenario key (see -list)")
	configFlag   = flag.String("config", "", "YAML config file; its physics and environment override scenario tuning")
	listFlag     = flag.Bool("list", false, "List scenarios and exit")
	headlessFlag = flag.Bool("headless", false, "Run without a terminal and print the final world hash")
	framesFlag   = flag.Int("frames", 0, "Frames to run in headless mode")
	workersFlag  = flag.Int("workers", 0, "Job scheduler workers, 0 uses GOMAXPROCS")
	fpsFlag      = flag.Int("fps", 0, "Simulation rate")
	soundFlag    = flag.Bool("sound", false, "Play contact cues")
	debugFlag    = flag.Bool("debug", false, "Write logs to logs/simlab.log")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() (code int) {
	registry := scenario.Builtins()
	if *listFlag {
		printScenarios(os.Stdout, registry)
		return 0
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simlab: %v\n", err)
		return 1
	}
	applyFlags(&cfg.Runner)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "simlab: %v\n", err)
		return 1
	}

	if logFile := setupLogging(cfg.Runner.Debug); logFile != nil {
		defer logFile.Close()
	}

	sched := jobs.NewScheduler(cfg.Runner.Workers)
	defer sched.Close()
	log.Printf("[simlab] scenario=%s workers=%d fps=%d", cfg.Runner.Scenario, sched.WorkerCount(), cfg.Runner.FPS)

	reg := status.NewRegistry()
	deps := sceneDeps(&cfg, sched, reg)

	var player *audio.ImpactPlayer
	if cfg.Runner.Sound && !cfg.Runner.Headless {
		player = audio.NewImpactPlayer(audio.DefaultConfig())
		if err := player.Initialize(); err != nil {
			// Non-fatal, run without sound
			log.Printf("[simlab] audio init failed: %v", err)
		}
		defer player.Close()
	}

	build := func() (*simulation, error) {
		return newSimulation(registry, cfg.Runner.Scenario, deps, player)
	}
	sim, err := build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "simlab: %v\n", err)
		return 1
	}

	if cfg.Runner.Headless {
		if err := runHeadless(sim, cfg.Runner.Frames, cfg.Runner.FPS, reg, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "simlab: %v\n", err)
			return 1
		}
		return 0
	}

	screen, err := render.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "simlab: terminal init: %v\n", err)
		return 1
	}
	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nsimlab crashed: %v\nStack Trace:\n%s\n", r, debug.Stack())
			code = 1
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = runInteractive(ctx, screen, sim, build, cfg.Runner.FPS, reg)
	screen.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "simlab: %v\n", err)
		return 1
	}
	return 0
}

// sceneDeps injects the config's physics and environment only when a config file was read,
// otherwise every scene keeps its own tuning
func sceneDeps(cfg *config.Config, sched *jobs.Scheduler, reg *status.Registry) scenario.Deps {
	deps := scenario.Deps{Scheduler: sched, Status: reg}
	if cfg.Source != "" {
		deps.Settings = &cfg.Physics
		deps.Environment = &cfg.Environment
	}
	return deps
}

// applyFlags copies explicitly set flags over the loaded runner options
func applyFlags(r *config.Runner) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scenario":
			r.Scenario = *scenarioFlag
		case "headless":
			r.Headless = *headlessFlag
		case "frames":
			r.Frames = *framesFlag
		case "workers":
			r.Workers = *workersFlag
		case "fps":
			r.FPS = *fpsFlag
		case "sound":
			r.Sound = *soundFlag
		case "debug":
			r.Debug = *debugFlag
		}
	})
}

func printScenarios(out io.Writer, reg *scenario.Registry) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, d := range reg.All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Key, d.Category, d.Title)
	}
	tw.Flush()
}
