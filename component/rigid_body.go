package component

import "github.com/go-gl/mathgl/mgl64"

// RigidBodyComponent carries the dynamic state of a body
// InvMass == 0 marks a static body which is never displaced nor given impulses
type RigidBodyComponent struct {
	Velocity        mgl64.Vec2
	AngularVelocity float64

	Mass       float64
	InvMass    float64
	Inertia    float64
	InvInertia float64

	Restitution     float64 // [0, 1]
	Friction        float64 // >= 0
	AngularDrag     float64
	AngularFriction float64

	// Accumulated torque for the current step, cleared by integration
	Torque float64

	// Pose at the start of the substep, used to rebuild velocity from the position delta
	LastPosition mgl64.Vec2
	LastAngle    float64
}

// IsStatic reports whether the body is immovable
func (rb *RigidBodyComponent) IsStatic() bool {
	return rb.InvMass == 0
}
