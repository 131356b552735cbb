package physics

import (
	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/parameter"
	"github.com/lixenwraith/atlascore/vmath"
)

// solveJoint projects both endpoints toward the target separation
// alpha is the compliance scaled by 1/dt²; zero makes the joint rigid
func solveJoint(tfA, tfB *component.TransformComponent, invA, invB, target, alpha float64) {
	delta := tfB.Position.Sub(tfA.Position)
	dist := delta.Len()
	if dist < parameter.JointMinDistance {
		return
	}
	denom := invA + invB + alpha
	if denom <= 0 {
		return
	}
	n := delta.Mul(1 / dist)
	corr := (dist - target) / denom
	if invA > 0 {
		tfA.Position = tfA.Position.Add(n.Mul(corr * invA))
	}
	if invB > 0 {
		tfB.Position = tfB.Position.Sub(n.Mul(corr * invB))
	}
}

// SolveJoints runs iterations passes over every DistanceJoint in the world
// Joints referencing an entity without a transform are skipped; an entity without a rigid body is static
func SolveJoints(w *engine.World, dt float64, iterations int) {
	if !vmath.IsFinite(dt) || dt <= 0 {
		return
	}
	joints, ok := engine.LookupStore[component.DistanceJointComponent](w)
	if !ok || joints.Len() == 0 {
		return
	}
	transforms, ok := engine.LookupStore[component.TransformComponent](w)
	if !ok {
		return
	}
	bodies, _ := engine.LookupStore[component.RigidBodyComponent](w)

	invMassOf := func(j *component.DistanceJointComponent, first bool) float64 {
		e := j.EntityB
		if first {
			e = j.EntityA
		}
		if bodies == nil {
			return 0
		}
		if rb, ok := bodies.Get(e); ok {
			return rb.InvMass
		}
		return 0
	}

	invDt2 := 1 / (dt * dt)
	data := joints.Data()
	for it := 0; it < max(1, iterations); it++ {
		for i := range data {
			j := &data[i]
			if j.EntityA == j.EntityB {
				continue
			}
			tfA, okA := transforms.Get(j.EntityA)
			tfB, okB := transforms.Get(j.EntityB)
			if !okA || !okB {
				continue
			}
			solveJoint(tfA, tfB, invMassOf(j, true), invMassOf(j, false), j.TargetDistance, max(0, j.Compliance)*invDt2)
		}
	}
}
