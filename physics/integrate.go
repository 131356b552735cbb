package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/core"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/jobs"
	"github.com/lixenwraith/atlascore/parameter"
	"github.com/lixenwraith/atlascore/vmath"
)

// Integrator applies environment forces and advances poses with symplectic Euler
type Integrator struct {
	Env       component.EnvironmentForces
	Scheduler *jobs.Scheduler
}

// integrateBody advances one body by dt; static bodies only have their spin cleared
func integrateBody(tf *component.TransformComponent, rb *component.RigidBodyComponent, env *component.EnvironmentForces, dt float64) {
	if rb.InvMass == 0 && rb.Mass > 0 {
		EnsureDerivedMass(rb)
	}
	if rb.InvMass == 0 {
		rb.AngularVelocity = 0
		rb.Torque = 0
		return
	}

	rb.LastPosition = tf.Position
	rb.LastAngle = tf.Rotation

	accel := mgl64.Vec2{
		env.WindX - env.Drag*rb.Velocity[0],
		env.GravityY + env.WindY - env.Drag*rb.Velocity[1],
	}
	rb.Velocity = vmath.ClampLength(rb.Velocity.Add(accel.Mul(dt)), parameter.MaxLinearSpeed)
	tf.Position = tf.Position.Add(rb.Velocity.Mul(dt))

	if rb.InvInertia == 0 && rb.Inertia > 0 {
		rb.InvInertia = 1 / rb.Inertia
	}
	if rb.InvInertia > 0 {
		angularAccel := rb.Torque*rb.InvInertia - rb.AngularDrag*rb.AngularVelocity
		rb.AngularVelocity += angularAccel * dt
		rb.AngularVelocity *= math.Max(0, 1-rb.AngularFriction*dt)
		tf.Rotation += rb.AngularVelocity * dt
	} else {
		rb.AngularVelocity = 0
	}
	rb.Torque = 0
}

// Update integrates every entity owning both a RigidBody and a Transform
// Ranges are dispatched to the scheduler above IntegrateParallelThreshold bodies
func (in *Integrator) Update(w *engine.World, dt float64) error {
	bodies, ok := engine.LookupStore[component.RigidBodyComponent](w)
	if !ok {
		return nil
	}
	transforms, ok := engine.LookupStore[component.TransformComponent](w)
	if !ok {
		return nil
	}

	data := bodies.Data()
	entities := bodies.Entities()
	env := in.Env

	integrateRange := func(start, end int) error {
		for i := start; i < end; i++ {
			if tf, ok := transforms.Get(entities[i]); ok {
				integrateBody(tf, &data[i], &env, dt)
			}
		}
		return nil
	}

	count := len(data)
	if in.Scheduler != nil && count > parameter.IntegrateParallelThreshold {
		batch := max(parameter.IntegrateMinBatch, count/(in.Scheduler.WorkerCount()*4))
		return in.Scheduler.WaitAll(in.Scheduler.Dispatch(count, batch, integrateRange))
	}
	return integrateRange(0, count)
}

// IntegrateBodies advances index-aligned transform/body slices; extra elements of the longer slice are ignored
func IntegrateBodies(transforms []component.TransformComponent, bodies []component.RigidBodyComponent, env component.EnvironmentForces, dt float64) {
	if !vmath.IsFinite(dt) || dt <= 0 {
		return
	}
	count := min(len(transforms), len(bodies))
	for i := 0; i < count; i++ {
		EnsureDerivedMass(&bodies[i])
		integrateBody(&transforms[i], &bodies[i], &env, dt)
	}
}

// ReconstructVelocities rebuilds dynamic body velocity from the substep position delta,
// overwriting the integrated velocity so position corrections become visible to the velocity solver
// Non-finite or non-positive dt leaves state untouched
func ReconstructVelocities(w *engine.World, dt float64) {
	if !vmath.IsFinite(dt) || dt <= 0 {
		return
	}
	engine.View2(w, func(_ core.Entity, rb *component.RigidBodyComponent, tf *component.TransformComponent) {
		if rb.InvMass == 0 {
			return
		}
		rb.Velocity = vmath.ClampLength(tf.Position.Sub(rb.LastPosition).Mul(1/dt), parameter.MaxLinearSpeed)
		rb.AngularVelocity = (tf.Rotation - rb.LastAngle) / dt
	})
}
