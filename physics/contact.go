package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/vmath"
)

// bodyRef points at the components of one contact participant
// A nil rigid body or transform makes the participant static
type bodyRef struct {
	tf    *component.TransformComponent
	rb    *component.RigidBodyComponent
	start mgl64.Vec2
	lever float64
}

func (r *bodyRef) invMass() float64 {
	if r.rb == nil || r.tf == nil {
		return 0
	}
	return r.rb.InvMass
}

func (r *bodyRef) invInertia() float64 {
	if r.invMass() == 0 {
		return 0
	}
	return r.rb.InvInertia
}

// displacement since the contact was prepared; zero for static participants
func (r *bodyRef) displacement() mgl64.Vec2 {
	if r.invMass() == 0 {
		return mgl64.Vec2{}
	}
	return r.tf.Position.Sub(r.start)
}

func (r *bodyRef) velocity() mgl64.Vec2 {
	if r.rb == nil {
		return mgl64.Vec2{}
	}
	return r.rb.Velocity
}

// contact is a collision event with resolved body pointers and combined material
type contact struct {
	a, b        bodyRef
	normal      mgl64.Vec2
	pen0        float64
	invMassSum  float64
	restitution float64
	friction    float64
}

// penetration re-estimates depth from how far the bodies moved along the normal since preparation
func (c *contact) penetration() float64 {
	rel := c.b.displacement().Sub(c.a.displacement())
	return c.pen0 - rel.Dot(c.normal)
}

func combineMaterial(a, b *component.RigidBodyComponent) (restitution, friction float64) {
	var ra, rb, fa, fb float64
	if a != nil {
		ra, fa = a.Restitution, a.Friction
	}
	if b != nil {
		rb, fb = b.Restitution, b.Friction
	}
	return math.Min(ra, rb), math.Sqrt(fa*fa + fb*fb)
}

// prepareContacts resolves event entities against the world stores
// Events with no dynamic participant or a non-finite normal are dropped; kept reports the source event index
func prepareContacts(w *engine.World, events []CollisionEvent, leverOf func(ev *CollisionEvent) (float64, float64), contacts []contact, kept []int) ([]contact, []int) {
	contacts = contacts[:0]
	kept = kept[:0]
	transforms, _ := engine.LookupStore[component.TransformComponent](w)
	bodies, _ := engine.LookupStore[component.RigidBodyComponent](w)

	for i := range events {
		ev := &events[i]
		if !vmath.IsFinite(ev.Normal[0]) || !vmath.IsFinite(ev.Normal[1]) || !vmath.IsFinite(ev.Penetration) {
			continue
		}
		var c contact
		if transforms != nil {
			c.a.tf, _ = transforms.Get(ev.EntityA)
			c.b.tf, _ = transforms.Get(ev.EntityB)
		}
		if bodies != nil {
			c.a.rb, _ = bodies.Get(ev.EntityA)
			c.b.rb, _ = bodies.Get(ev.EntityB)
		}
		if !finishContact(&c, ev) {
			continue
		}
		if leverOf != nil {
			c.a.lever, c.b.lever = leverOf(ev)
		}
		contacts = append(contacts, c)
		kept = append(kept, i)
	}
	return contacts, kept
}

// finishContact snapshots start positions and combined material; false when both participants are static
func finishContact(c *contact, ev *CollisionEvent) bool {
	c.invMassSum = c.a.invMass() + c.b.invMass()
	if c.invMassSum <= 0 {
		return false
	}
	if c.a.tf != nil {
		c.a.start = c.a.tf.Position
	}
	if c.b.tf != nil {
		c.b.start = c.b.tf.Position
	}
	c.normal = ev.Normal
	c.pen0 = ev.Penetration
	c.restitution, c.friction = combineMaterial(c.a.rb, c.b.rb)
	return true
}
