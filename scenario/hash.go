package scenario

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/core"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/physics"
	"github.com/lixenwraith/atlascore/vmath"
)

const hashBodyCount = 12

// DeterminismHash integrates two independently built copies of the same body set each Step
// and compares their content hashes. Set A is mirrored into the world for display
type DeterminismHash struct {
	base
	env      component.EnvironmentForces
	tfA, tfB []component.TransformComponent
	rbA, rbB []component.RigidBodyComponent
	mirror   []core.Entity

	hash       uint64
	steps      int
	mismatches int
}

// NewDeterminismHash returns the dual-run scene
func NewDeterminismHash() Scenario {
	return &DeterminismHash{base: base{name: "hash", bounds: vmath.AABB{MinX: -5, MinY: -40, MaxX: 40, MaxY: 30}}}
}

func initHashBodies() ([]component.TransformComponent, []component.RigidBodyComponent) {
	tfs := make([]component.TransformComponent, hashBodyCount)
	rbs := make([]component.RigidBodyComponent, hashBodyCount)
	for i := range tfs {
		tfs[i].Position = mgl64.Vec2{float64(i * 3), 20 + float64(i*2)}
		rbs[i] = component.RigidBodyComponent{
			Mass:     1,
			Velocity: mgl64.Vec2{float64(i%3) - 1, 0},
		}
	}
	return tfs, rbs
}

func (h *DeterminismHash) Setup(w *engine.World, deps Deps) error {
	if w == nil {
		return errNilWorld
	}
	h.env = component.DefaultEnvironment()
	if deps.Environment != nil {
		h.env = *deps.Environment
	}
	h.tfA, h.rbA = initHashBodies()
	h.tfB, h.rbB = initHashBodies()
	h.hash, h.steps, h.mismatches = 0, 0, 0

	h.mirror = h.mirror[:0]
	for i := range h.tfA {
		e := w.CreateEntity()
		engine.AddComponent(w, e, h.tfA[i])
		engine.AddComponent(w, e, component.CircleColliderComponent{Radius: 0.5})
		h.mirror = append(h.mirror, e)
	}
	if deps.Status != nil {
		deps.Status.Strings.Get("scenario.name").Store(h.name)
	}
	log.Printf("[scenario] hash: %d bodies per run", hashBodyCount)
	return nil
}

// Step advances both runs and logs any divergence
func (h *DeterminismHash) Step(w *engine.World, dt float64) {
	physics.IntegrateBodies(h.tfA, h.rbA, h.env, dt)
	physics.IntegrateBodies(h.tfB, h.rbB, h.env, dt)
	h.steps++

	a := physics.HashBodies(h.tfA, h.rbA)
	b := physics.HashBodies(h.tfB, h.rbB)
	h.hash = a
	if a != b {
		h.mismatches++
		log.Printf("[determinism] step %d: hash mismatch %016x != %016x", h.steps, a, b)
	}

	for i, e := range h.mirror {
		if tf, ok := engine.GetComponent[component.TransformComponent](w, e); ok {
			*tf = h.tfA[i]
		}
	}
}

// Hash returns the latest hash of run A
func (h *DeterminismHash) Hash() uint64 {
	return h.hash
}

// Mismatches counts steps where the runs diverged
func (h *DeterminismHash) Mismatches() int {
	return h.mismatches
}
