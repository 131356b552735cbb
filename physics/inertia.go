package physics

import (
	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/parameter"
)

// EnsureDerivedMass fills InvMass/Inertia/InvInertia from Mass where they are unset
// Mass <= 0 makes the body static
func EnsureDerivedMass(rb *component.RigidBodyComponent) {
	if rb.Mass <= 0 {
		rb.InvMass = 0
		rb.Inertia = 0
		rb.InvInertia = 0
		return
	}
	if rb.InvMass <= 0 {
		rb.InvMass = 1 / rb.Mass
	}
	if rb.Inertia <= 0 {
		rb.Inertia = parameter.DefaultInertiaFactor * rb.Mass
	}
	if rb.InvInertia <= 0 && rb.Inertia > 0 {
		rb.InvInertia = 1 / rb.Inertia
	}
}

// ConfigureCircleInertia sets the solid disc moment, I = m r² / 2
func ConfigureCircleInertia(rb *component.RigidBodyComponent, radius float64) {
	if rb.Mass <= 0 {
		rb.Inertia, rb.InvInertia = 0, 0
		return
	}
	rb.Inertia = 0.5 * rb.Mass * radius * radius
	rb.InvInertia = 0
	if rb.Inertia > 0 {
		rb.InvInertia = 1 / rb.Inertia
	}
}

// ConfigureBoxInertia sets the solid rectangle moment, I = m (w² + h²) / 12
func ConfigureBoxInertia(rb *component.RigidBodyComponent, width, height float64) {
	if rb.Mass <= 0 {
		rb.Inertia, rb.InvInertia = 0, 0
		return
	}
	rb.Inertia = rb.Mass * (width*width + height*height) / 12
	rb.InvInertia = 0
	if rb.Inertia > 0 {
		rb.InvInertia = 1 / rb.Inertia
	}
}
