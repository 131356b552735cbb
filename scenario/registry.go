package scenario

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrUnknownScenario   = errors.New("unknown scenario")
	ErrDuplicateScenario = errors.New("duplicate scenario")
)

// Factory creates a fresh scenario instance
type Factory func() Scenario

// Descriptor describes one registered scenario
type Descriptor struct {
	Key      string
	Title    string
	Category string
	Factory  Factory
}

// Registry maps keys to scenario factories in registration order
// Instances are created by the caller and passed where needed, there is no process-wide registry
type Registry struct {
	mu      sync.RWMutex
	entries []Descriptor
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds d; an empty key or nil factory is rejected, as is a key already present
func (r *Registry) Register(d Descriptor) error {
	if d.Key == "" || d.Factory == nil {
		return errors.Errorf("register scenario %q: key and factory are required", d.Key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.Key == d.Key {
			return errors.Wrapf(ErrDuplicateScenario, "%q", d.Key)
		}
	}
	r.entries = append(r.entries, d)
	return nil
}

// All returns a copy of the descriptors in registration order
func (r *Registry) All() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lookup finds the descriptor for key
func (r *Registry) Lookup(key string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.Key == key {
			return e, nil
		}
	}
	return Descriptor{}, errors.Wrapf(ErrUnknownScenario, "%q", key)
}

// Create instantiates the scenario registered under key
func (r *Registry) Create(key string) (Scenario, error) {
	d, err := r.Lookup(key)
	if err != nil {
		return nil, err
	}
	return d.Factory(), nil
}

// Builtins returns a registry holding every bundled scene
func Builtins() *Registry {
	r := NewRegistry()
	for _, d := range []Descriptor{
		{"pendulum", "Five-link rigid pendulum", "Joints", NewPendulum},
		{"stacking", "Box pyramid on a static floor", "Rigid Bodies", NewStacking},
		{"balls", "Ball collision showcase", "Rigid Bodies", NewBallShowcase},
		{"wrecking", "Wrecking ball against a box wall", "Joints", NewWreckingBall},
		{"cloth", "Pinned cloth lattice in the wind", "Joints", NewCloth},
		{"fluid", "Bouncing particle container", "Particles", NewParticleFluid},
		{"planetary", "Planets orbiting a static star", "Custom Systems", NewPlanetaryGravity},
		{"demo", "Full demo with wind gusts", "Showcase", NewFullDemo},
		{"stress", "Stress test, 2000 boxes", "Benchmarks", NewStressTest},
		{"hash", "Determinism hash dual run", "Diagnostics", NewDeterminismHash},
	} {
		r.mustRegister(d)
	}
	return r
}

// mustRegister is Register for literal tables; a rejected descriptor is a programming error
func (r *Registry) mustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}
