package audio

import (
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/core"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/physics"
)

type pairKey struct{ a, b core.Entity }

func keyOf(a, b core.Entity) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

// ImpactPlayer turns newly started contacts into short cues
// It observes the pipeline between frames and never writes to the world
type ImpactPlayer struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	initialized bool

	active  map[pairKey]struct{}
	next    map[pairKey]struct{}
	clock   time.Duration
	lastCue time.Duration
	anyCue  bool
	played  [cueCount]int
}

// NewImpactPlayer creates a player; it stays silent until Initialize succeeds
func NewImpactPlayer(cfg Config) *ImpactPlayer {
	return &ImpactPlayer{
		cfg:    cfg,
		mixer:  &beep.Mixer{},
		active: make(map[pairKey]struct{}),
		next:   make(map[pairKey]struct{}),
	}
}

// Initialize opens the speaker and starts the mixer
func (p *ImpactPlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences pending cues and releases the speaker
func (p *ImpactPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.mixer.Clear()
	p.initialized = false
}

// Played returns how many cues of kind c were issued
func (p *ImpactPlayer) Played(c Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c < 0 || c >= cueCount {
		return 0
	}
	return p.played[c]
}

// Play queues cue c unconditionally, subject only to initialization
func (p *ImpactPlayer) Play(c Cue, intensity float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.play(c, intensity)
}

func (p *ImpactPlayer) play(c Cue, intensity float64) {
	s := NewCue(c, intensity, p.cfg)
	if s == nil {
		return
	}
	p.played[c]++
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Observe inspects the contacts of the frame that just ran and cues the strongest new impact
// Contacts persisting from the previous frame are ignored, so resting stacks stay quiet
func (p *ImpactPlayer) Observe(w *engine.World, contacts []physics.CollisionEvent, dt float64) {
	if w == nil || !(dt > 0) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clock += time.Duration(dt * float64(time.Second))
	clear(p.next)

	strongest := 0.0
	for i := range contacts {
		ev := &contacts[i]
		k := keyOf(ev.EntityA, ev.EntityB)
		p.next[k] = struct{}{}
		if _, seen := p.active[k]; seen {
			continue
		}
		if s := closingSpeed(w, ev); s > strongest {
			strongest = s
		}
	}
	p.active, p.next = p.next, p.active

	if strongest < p.cfg.MinImpactSpeed {
		return
	}
	if p.anyCue && p.clock-p.lastCue < p.cfg.Cooldown {
		return
	}
	span := p.cfg.MaxImpactSpeed - p.cfg.MinImpactSpeed
	intensity := 1.0
	if span > 0 {
		intensity = (strongest - p.cfg.MinImpactSpeed) / span
	}
	cue := CueClick
	if intensity >= p.cfg.ThudIntensity {
		cue = CueThud
	}
	p.play(cue, intensity)
	p.lastCue, p.anyCue = p.clock, true
}

// closingSpeed is the magnitude of the relative velocity along the contact normal
// The solver has already run, so this is the rebound speed of the pair
func closingSpeed(w *engine.World, ev *physics.CollisionEvent) float64 {
	var va, vb mgl64.Vec2
	if rb, ok := engine.GetComponent[component.RigidBodyComponent](w, ev.EntityA); ok {
		va = rb.Velocity
	}
	if rb, ok := engine.GetComponent[component.RigidBodyComponent](w, ev.EntityB); ok {
		vb = rb.Velocity
	}
	rel := vb.Sub(va).Dot(ev.Normal)
	if math.IsNaN(rel) {
		return 0
	}
	return math.Abs(rel)
}
