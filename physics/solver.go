package physics

import (
	"math"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/core"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/jobs"
	"github.com/lixenwraith/atlascore/parameter"
	"github.com/lixenwraith/atlascore/vmath"
)

// solvePositionContact pushes bodies apart along the normal by a fraction of the penetration beyond slop
func solvePositionContact(c *contact, s *Settings) {
	excess := c.penetration() - s.PenetrationSlop
	if excess <= 0 {
		return
	}
	corr := math.Min(excess/c.invMassSum*s.CorrectionPercent, s.MaxPositionCorrection)
	if corr <= 0 {
		return
	}
	if inv := c.a.invMass(); inv > 0 {
		c.a.tf.Position = c.a.tf.Position.Sub(c.normal.Mul(corr * inv))
	}
	if inv := c.b.invMass(); inv > 0 {
		c.b.tf.Position = c.b.tf.Position.Add(c.normal.Mul(corr * inv))
	}
}

// solveVelocityContact applies restitution and Coulomb friction impulses to an approaching pair
func solveVelocityContact(c *contact) {
	invA, invB := c.a.invMass(), c.b.invMass()
	rv := c.b.velocity().Sub(c.a.velocity())
	vn := rv.Dot(c.normal)
	if vn >= 0 {
		return
	}

	j := -(1 + c.restitution) * vn / c.invMassSum
	impulse := c.normal.Mul(j)
	if invA > 0 {
		c.a.rb.Velocity = c.a.rb.Velocity.Sub(impulse.Mul(invA))
	}
	if invB > 0 {
		c.b.rb.Velocity = c.b.rb.Velocity.Add(impulse.Mul(invB))
	}

	if c.penetration() <= parameter.ContactFrictionThreshold {
		return
	}

	rv = c.b.velocity().Sub(c.a.velocity())
	tangent := rv.Sub(c.normal.Mul(rv.Dot(c.normal)))
	tLen := tangent.Len()
	if tLen < 1e-12 {
		return
	}
	tangent = tangent.Mul(1 / tLen)

	jt := -rv.Dot(tangent) / c.invMassSum
	limit := c.friction * j
	jt = vmath.Clamp(jt, -limit, limit)
	frictionImpulse := tangent.Mul(jt)
	if invA > 0 {
		c.a.rb.Velocity = c.a.rb.Velocity.Sub(frictionImpulse.Mul(invA))
	}
	if invB > 0 {
		c.b.rb.Velocity = c.b.rb.Velocity.Add(frictionImpulse.Mul(invB))
	}

	// Tangential impulse at the contact lever spins each body
	if ii := c.a.invInertia(); ii > 0 && c.a.lever > 0 {
		c.a.rb.AngularVelocity += ii * vmath.Cross2(c.normal.Mul(c.a.lever), frictionImpulse.Mul(-1))
	}
	if ii := c.b.invInertia(); ii > 0 && c.b.lever > 0 {
		c.b.rb.AngularVelocity += ii * vmath.Cross2(c.normal.Mul(-c.b.lever), frictionImpulse)
	}
}

// ContactSolver holds prepared contacts and their islands for one substep
// Prepare once, then SolvePosition and SolveVelocity reuse the same contacts
type ContactSolver struct {
	Settings Settings

	contacts []contact
	kept     []int
	remap    []CollisionEvent
	islands  []Island
}

// Prepare resolves events against the world and partitions them into islands
// colliders supplies lever arms by event index and may be nil
func (cs *ContactSolver) Prepare(w *engine.World, events []CollisionEvent, colliders []Collider) {
	var leverOf func(ev *CollisionEvent) (float64, float64)
	if colliders != nil {
		leverOf = func(ev *CollisionEvent) (float64, float64) {
			var la, lb float64
			if ev.IndexA >= 0 && ev.IndexA < len(colliders) {
				la = colliders[ev.IndexA].leverArm()
			}
			if ev.IndexB >= 0 && ev.IndexB < len(colliders) {
				lb = colliders[ev.IndexB].leverArm()
			}
			return la, lb
		}
	}
	cs.contacts, cs.kept = prepareContacts(w, events, leverOf, cs.contacts, cs.kept)

	cs.remap = cs.remap[:0]
	for _, i := range cs.kept {
		cs.remap = append(cs.remap, events[i])
	}

	bodies, _ := engine.LookupStore[component.RigidBodyComponent](w)
	transforms, _ := engine.LookupStore[component.TransformComponent](w)
	cs.islands = BuildIslands(cs.remap, func(e core.Entity) bool {
		return isStaticEntity(bodies, transforms, e)
	})
}

func isStaticEntity(bodies *engine.Store[component.RigidBodyComponent], transforms *engine.Store[component.TransformComponent], e core.Entity) bool {
	if bodies == nil || transforms == nil || !transforms.Has(e) {
		return true
	}
	rb, ok := bodies.Get(e)
	return !ok || rb.IsStatic()
}

// Islands returns the islands of the last Prepare
func (cs *ContactSolver) Islands() []Island {
	return cs.islands
}

// SolvePosition runs PositionIterations passes of position correction per island
func (cs *ContactSolver) SolvePosition(sched *jobs.Scheduler) error {
	s := cs.Settings.Normalized()
	return cs.forIslands(sched, func(c *contact) { solvePositionContact(c, &s) }, s.PositionIterations)
}

// SolveVelocity runs VelocityIterations passes of impulse resolution per island
func (cs *ContactSolver) SolveVelocity(sched *jobs.Scheduler) error {
	s := cs.Settings.Normalized()
	return cs.forIslands(sched, solveVelocityContact, s.VelocityIterations)
}

// forIslands solves islands independently; islands share no dynamic body so they run in parallel
func (cs *ContactSolver) forIslands(sched *jobs.Scheduler, solve func(c *contact), iterations int) error {
	solveIsland := func(island *Island) {
		for it := 0; it < iterations; it++ {
			for _, idx := range island.Contacts {
				solve(&cs.contacts[idx])
			}
		}
	}

	if sched == nil || len(cs.islands) < 2 {
		for i := range cs.islands {
			solveIsland(&cs.islands[i])
		}
		return nil
	}

	batch := max(1, len(cs.islands)/(sched.WorkerCount()*parameter.IslandTasksPerWorker))
	return sched.WaitAll(sched.Dispatch(len(cs.islands), batch, func(start, end int) error {
		for i := start; i < end; i++ {
			solveIsland(&cs.islands[i])
		}
		return nil
	}))
}

// ResolvePosition prepares events against the world and runs the position solver
func ResolvePosition(w *engine.World, events []CollisionEvent, settings Settings, sched *jobs.Scheduler) error {
	cs := ContactSolver{Settings: settings}
	cs.Prepare(w, events, nil)
	return cs.SolvePosition(sched)
}

// ResolveVelocity prepares events against the world and runs the velocity solver
func ResolveVelocity(w *engine.World, events []CollisionEvent, settings Settings, sched *jobs.Scheduler) error {
	cs := ContactSolver{Settings: settings}
	cs.Prepare(w, events, nil)
	return cs.SolveVelocity(sched)
}

// indexedContacts builds contacts from events whose indices address the given slices directly
// Out-of-range indices are skipped
func indexedContacts(events []CollisionEvent, transforms []component.TransformComponent, bodies []component.RigidBodyComponent) []contact {
	n := min(len(transforms), len(bodies))
	contacts := make([]contact, 0, len(events))
	for i := range events {
		ev := &events[i]
		if ev.IndexA < 0 || ev.IndexA >= n || ev.IndexB < 0 || ev.IndexB >= n || ev.IndexA == ev.IndexB {
			continue
		}
		c := contact{
			a: bodyRef{tf: &transforms[ev.IndexA], rb: &bodies[ev.IndexA]},
			b: bodyRef{tf: &transforms[ev.IndexB], rb: &bodies[ev.IndexB]},
		}
		if !finishContact(&c, ev) {
			continue
		}
		contacts = append(contacts, c)
	}
	return contacts
}

// ResolvePositionIndexed runs the position solver over index-aligned slices, serially in event order
func ResolvePositionIndexed(events []CollisionEvent, transforms []component.TransformComponent, bodies []component.RigidBodyComponent, settings Settings) {
	s := settings.Normalized()
	contacts := indexedContacts(events, transforms, bodies)
	for it := 0; it < s.PositionIterations; it++ {
		for i := range contacts {
			solvePositionContact(&contacts[i], &s)
		}
	}
}

// ResolveVelocityIndexed runs the velocity solver over index-aligned slices, serially in event order
func ResolveVelocityIndexed(events []CollisionEvent, transforms []component.TransformComponent, bodies []component.RigidBodyComponent, settings Settings) {
	s := settings.Normalized()
	contacts := indexedContacts(events, transforms, bodies)
	for it := 0; it < s.VelocityIterations; it++ {
		for i := range contacts {
			solveVelocityContact(&contacts[i])
		}
	}
}
