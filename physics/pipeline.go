package physics

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/jobs"
	"github.com/lixenwraith/atlascore/status"
	"github.com/lixenwraith/atlascore/vmath"
)

// PhysicsSystem advances the world through fixed substeps each Update:
// integrate, sync bounds, detect, position solve, joints, velocity reconstruction, velocity solve
type PhysicsSystem struct {
	settings  Settings
	env       component.EnvironmentForces
	scheduler *jobs.Scheduler

	integrator Integrator
	detector   *Detector
	solver     ContactSolver

	colliders []Collider
	events    []CollisionEvent
	err       error

	// Cached metric pointers, nil until SetStatus
	statContacts *atomic.Int64
	statIslands  *atomic.Int64
	statJoints   *atomic.Int64
	statSubsteps *atomic.Int64
	statFrames   *atomic.Int64
	statStepMs   *status.AtomicFloat
}

// NewPhysicsSystem creates a serial pipeline with default settings and environment
func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		settings: DefaultSettings(),
		env:      component.DefaultEnvironment(),
		detector: NewDetector(),
	}
}

func (ps *PhysicsSystem) SetSettings(s Settings) {
	ps.settings = s
}

func (ps *PhysicsSystem) Settings() Settings {
	return ps.settings
}

func (ps *PhysicsSystem) SetEnvironment(env component.EnvironmentForces) {
	ps.env = env
}

func (ps *PhysicsSystem) Environment() component.EnvironmentForces {
	return ps.env
}

// SetScheduler injects an externally owned scheduler; nil runs every phase on the caller
func (ps *PhysicsSystem) SetScheduler(s *jobs.Scheduler) {
	ps.scheduler = s
}

// SetStatus registers pipeline metrics in reg; nil disables publishing
func (ps *PhysicsSystem) SetStatus(reg *status.Registry) {
	if reg == nil {
		ps.statContacts, ps.statIslands, ps.statJoints = nil, nil, nil
		ps.statSubsteps, ps.statFrames, ps.statStepMs = nil, nil, nil
		return
	}
	ps.statContacts = reg.Ints.Get("physics.contacts")
	ps.statIslands = reg.Ints.Get("physics.islands")
	ps.statJoints = reg.Ints.Get("physics.joints")
	ps.statSubsteps = reg.Ints.Get("physics.substeps")
	ps.statFrames = reg.Ints.Get("physics.frames")
	ps.statStepMs = reg.Floats.Get("physics.step_ms")
}

// Contacts returns the events of the last substep, valid until the next Update
func (ps *PhysicsSystem) Contacts() []CollisionEvent {
	return ps.events
}

// Err returns the last parallel phase failure of the most recent Update
func (ps *PhysicsSystem) Err() error {
	return ps.err
}

// Update steps the simulation by dt; non-finite or non-positive dt is ignored
func (ps *PhysicsSystem) Update(w *engine.World, dt float64) {
	if !vmath.IsFinite(dt) || dt <= 0 {
		return
	}
	started := time.Now()
	ps.err = nil
	if ps.detector == nil {
		ps.detector = NewDetector()
	}

	s := ps.settings.Normalized()
	subDt := dt / float64(s.Substeps)
	ps.integrator.Env = ps.env
	ps.integrator.Scheduler = ps.scheduler
	ps.solver.Settings = s

	// Create stores before parallel phases so workers never race lazy store creation
	engine.GetStore[component.TransformComponent](w)
	engine.GetStore[component.RigidBodyComponent](w)

	for step := 0; step < s.Substeps; step++ {
		if err := ps.integrator.Update(w, subDt); err != nil {
			ps.err = err
		}
		SyncDynamicAABBs(w)

		ps.colliders = GatherColliders(w, ps.colliders)
		events, err := ps.detector.Detect(ps.colliders, ps.scheduler, ps.events)
		ps.events = events
		if err != nil {
			ps.err = err
			ps.events = ps.events[:0]
		}

		hasContacts := len(ps.events) > 0
		if hasContacts {
			ps.solver.Prepare(w, ps.events, ps.colliders)
			if err := ps.solver.SolvePosition(ps.scheduler); err != nil {
				ps.err = err
			}
		}

		SolveJoints(w, subDt, s.ConstraintIterations)
		ReconstructVelocities(w, subDt)

		if hasContacts {
			if err := ps.solver.SolveVelocity(ps.scheduler); err != nil {
				ps.err = err
			}
		}
	}

	SyncDynamicAABBs(w)
	ps.publish(w, s, started)
}

func (ps *PhysicsSystem) publish(w *engine.World, s Settings, started time.Time) {
	if ps.statFrames == nil {
		return
	}
	islands := 0
	if len(ps.events) > 0 {
		islands = len(ps.solver.Islands())
	}
	joints := 0
	if store, ok := engine.LookupStore[component.DistanceJointComponent](w); ok {
		joints = store.Len()
	}
	ps.statContacts.Store(int64(len(ps.events)))
	ps.statIslands.Store(int64(islands))
	ps.statJoints.Store(int64(joints))
	ps.statSubsteps.Store(int64(s.Substeps))
	ps.statFrames.Add(1)
	ps.statStepMs.Set(float64(time.Since(started).Microseconds()) / 1000)
}
