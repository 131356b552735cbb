// Package scenario builds demo scenes on top of the physics core
package scenario

import (
	"log"

	"github.com/pkg/errors"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/jobs"
	"github.com/lixenwraith/atlascore/physics"
	"github.com/lixenwraith/atlascore/status"
	"github.com/lixenwraith/atlascore/vmath"
)

// Scenario populates a world and hooks per-frame scene logic
// Step runs once per frame before World.Update and must not call World.Update itself
type Scenario interface {
	Setup(w *engine.World, deps Deps) error
	Step(w *engine.World, dt float64)
	// Bounds is the world-space window the scene is framed for
	Bounds() vmath.AABB
	// Physics returns the installed pipeline, nil for scenes that step bodies themselves
	Physics() *physics.PhysicsSystem
}

// Deps carries collaborators injected by the runner
type Deps struct {
	Scheduler *jobs.Scheduler
	Status    *status.Registry

	// Non-nil overrides replace the scene's own tuning
	Settings    *physics.Settings
	Environment *component.EnvironmentForces
}

var errNilWorld = errors.New("scenario: nil world")

// base provides the shared Scenario plumbing
type base struct {
	name    string
	bounds  vmath.AABB
	physics *physics.PhysicsSystem
}

func (b *base) Step(*engine.World, float64) {}

func (b *base) Bounds() vmath.AABB {
	return b.bounds
}

func (b *base) Physics() *physics.PhysicsSystem {
	return b.physics
}

// install registers a pipeline tuned for the scene, honoring overrides in deps
func (b *base) install(w *engine.World, deps Deps, settings physics.Settings, env component.EnvironmentForces) *physics.PhysicsSystem {
	if deps.Settings != nil {
		settings = *deps.Settings
	}
	if deps.Environment != nil {
		env = *deps.Environment
	}

	ps := physics.NewPhysicsSystem()
	ps.SetSettings(settings)
	ps.SetEnvironment(env)
	ps.SetScheduler(deps.Scheduler)
	ps.SetStatus(deps.Status)
	w.AddSystem(ps)
	b.physics = ps

	if deps.Status != nil {
		deps.Status.Strings.Get("scenario.name").Store(b.name)
	}
	return ps
}

// logSummary reports the populated scene
func (b *base) logSummary(w *engine.World) {
	bodies, joints := 0, 0
	if s, ok := engine.LookupStore[component.RigidBodyComponent](w); ok {
		bodies = s.Len()
	}
	if s, ok := engine.LookupStore[component.DistanceJointComponent](w); ok {
		joints = s.Len()
	}
	log.Printf("[scenario] %s: %d bodies, %d joints", b.name, bodies, joints)
}
