package scenario

import (
	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/core"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/vmath"
)

// WindGustSystem flips a horizontal velocity kick onto every dynamic body once per Period seconds
type WindGustSystem struct {
	Period  float64
	Impulse float64 // Velocity change per gust

	elapsed   float64
	direction float64
	gusts     int
}

func NewWindGustSystem(period, impulse float64) *WindGustSystem {
	return &WindGustSystem{Period: period, Impulse: impulse, direction: 1}
}

// Gusts returns how many gusts have fired
func (s *WindGustSystem) Gusts() int {
	return s.gusts
}

func (s *WindGustSystem) Update(w *engine.World, dt float64) {
	if !vmath.IsFinite(dt) || dt <= 0 {
		return
	}
	s.elapsed += dt
	if s.elapsed < s.Period {
		return
	}
	s.elapsed = 0
	s.direction = -s.direction
	s.gusts++

	kick := s.direction * s.Impulse
	engine.ForEach(w, func(_ core.Entity, rb *component.RigidBodyComponent) {
		if !rb.IsStatic() {
			rb.Velocity[0] += kick
		}
	})
}
