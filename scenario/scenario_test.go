package scenario

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/core"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/jobs"
	"github.com/lixenwraith/atlascore/status"
	"github.com/lixenwraith/atlascore/vmath"
)

func TestBuiltinsRegistered(t *testing.T) {
	r := Builtins()
	want := []string{"pendulum", "stacking", "balls", "wrecking", "cloth", "fluid", "planetary", "demo", "stress", "hash"}
	all := r.All()
	if len(all) != len(want) {
		t.Fatalf("Expected %d scenarios, got %d", len(want), len(all))
	}
	for i, key := range want {
		if all[i].Key != key {
			t.Errorf("Position %d: expected %q, got %q", i, key, all[i].Key)
		}
		if all[i].Title == "" {
			t.Errorf("%q has no title", key)
		}
	}
}

func TestRegistryErrors(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Create("nope"); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("Expected ErrUnknownScenario, got %v", err)
	}
	if err := r.Register(Descriptor{Key: "x"}); err == nil {
		t.Error("Expected error for nil factory")
	}
	if err := r.Register(Descriptor{Key: "p", Factory: NewPendulum}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(Descriptor{Key: "p", Factory: NewStacking}); !errors.Is(err, ErrDuplicateScenario) {
		t.Errorf("Expected ErrDuplicateScenario, got %v", err)
	}

	// Literal tables fail loudly on a repeated key
	func() {
		defer func() {
			if recover() == nil {
				t.Error("Expected mustRegister to panic on a duplicate key")
			}
		}()
		r.mustRegister(Descriptor{Key: "p", Factory: NewCloth})
	}()

	// Independent registries do not share entries
	if len(NewRegistry().All()) != 0 {
		t.Error("Expected a fresh registry to be empty")
	}
}

func allFinite(w *engine.World) bool {
	ok := true
	engine.ForEach(w, func(_ core.Entity, tf *component.TransformComponent) {
		if !vmath.IsFinite(tf.Position[0]) || !vmath.IsFinite(tf.Position[1]) || !vmath.IsFinite(tf.Rotation) {
			ok = false
		}
	})
	return ok
}

func TestBuiltinScenesRun(t *testing.T) {
	sched := jobs.NewScheduler(4)
	defer sched.Close()

	for _, d := range Builtins().All() {
		t.Run(d.Key, func(t *testing.T) {
			if d.Key == "stress" && testing.Short() {
				t.Skip("stress scene in short mode")
			}
			w := engine.NewWorld()
			reg := status.NewRegistry()
			sc := d.Factory()
			if err := sc.Setup(w, Deps{Scheduler: sched, Status: reg}); err != nil {
				t.Fatalf("Setup failed: %v", err)
			}
			if reg.Strings.Get("scenario.name").Load() != d.Key {
				t.Errorf("Expected scenario.name %q, got %q", d.Key, reg.Strings.Get("scenario.name").Load())
			}
			if b := sc.Bounds(); b.MaxX <= b.MinX || b.MaxY <= b.MinY {
				t.Errorf("Degenerate bounds %+v", b)
			}

			for i := 0; i < 60; i++ {
				sc.Step(w, 1.0/60)
				w.Update(1.0 / 60)
				if ps := sc.Physics(); ps != nil && ps.Err() != nil {
					t.Fatalf("frame %d: %v", i, ps.Err())
				}
			}
			if !allFinite(w) {
				t.Error("Non-finite transform after 60 frames")
			}
			if d.Key != "hash" {
				if sc.Physics() == nil {
					t.Fatal("Expected a physics pipeline")
				}
				if reg.Ints.Get("physics.frames").Load() != 60 {
					t.Errorf("Expected 60 published frames, got %d", reg.Ints.Get("physics.frames").Load())
				}
			}
		})
	}
}

func TestSetupRejectsNilWorld(t *testing.T) {
	for _, d := range Builtins().All() {
		if err := d.Factory().Setup(nil, Deps{}); err == nil {
			t.Errorf("%s: expected error for nil world", d.Key)
		}
	}
}

type countingSystem struct{ calls int }

func (c *countingSystem) Update(*engine.World, float64) { c.calls++ }

func TestStepDoesNotUpdateWorld(t *testing.T) {
	for _, d := range Builtins().All() {
		w := engine.NewWorld()
		sc := d.Factory()
		if err := sc.Setup(w, Deps{}); err != nil {
			t.Fatalf("%s: %v", d.Key, err)
		}
		counter := &countingSystem{}
		w.AddSystem(counter)
		sc.Step(w, 1.0/60)
		if counter.calls != 0 {
			t.Errorf("%s: Step ran world systems", d.Key)
		}
	}
}

func TestDeterminismHashScenario(t *testing.T) {
	w := engine.NewWorld()
	sc := NewDeterminismHash().(*DeterminismHash)
	if err := sc.Setup(w, Deps{}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 200; i++ {
		sc.Step(w, 1.0/60)
	}
	if sc.Mismatches() != 0 {
		t.Errorf("Expected no mismatches, got %d", sc.Mismatches())
	}
	if sc.Hash() == 0 {
		t.Error("Expected a hash after stepping")
	}
	tf, _ := engine.GetComponent[component.TransformComponent](w, sc.mirror[0])
	if tf.Position != sc.tfA[0].Position {
		t.Errorf("Mirror not synced: %v vs %v", tf.Position, sc.tfA[0].Position)
	}
}

func TestStackingStaysOnFloor(t *testing.T) {
	w := engine.NewWorld()
	sc := NewStacking()
	if err := sc.Setup(w, Deps{}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 120; i++ {
		w.Update(1.0 / 60)
	}
	engine.View2(w, func(_ core.Entity, rb *component.RigidBodyComponent, tf *component.TransformComponent) {
		if !rb.IsStatic() && tf.Position[1] < -3.9 {
			t.Errorf("Box sank through the floor: %v", tf.Position)
		}
	})
}

func TestFluidStaysContained(t *testing.T) {
	sched := jobs.NewScheduler(2)
	defer sched.Close()

	w := engine.NewWorld()
	sc := NewParticleFluid()
	if err := sc.Setup(w, Deps{Scheduler: sched}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 120; i++ {
		w.Update(1.0 / 60)
	}
	inside := vmath.AABB{MinX: -19.5, MinY: -14.5, MaxX: 19.5, MaxY: 24.5}
	engine.View2(w, func(_ core.Entity, c *component.CircleColliderComponent, tf *component.TransformComponent) {
		if !inside.Contains(tf.Position) {
			t.Errorf("Particle escaped to %v", tf.Position)
		}
	})
}

func TestStressWraps(t *testing.T) {
	w := engine.NewWorld()
	sc := NewStressTest()
	if err := sc.Setup(w, Deps{}); err != nil {
		t.Fatal(err)
	}
	if n := engine.GetStore[component.RigidBodyComponent](w).Len(); n != stressBodies {
		t.Fatalf("Expected %d bodies, got %d", stressBodies, n)
	}

	e := SpawnBox(w, mgl64.Vec2{-51, 60}, 1, 1, Body{Mass: 1})
	sc.Step(w, 1.0/60)
	tf, _ := engine.GetComponent[component.TransformComponent](w, e)
	if tf.Position != (mgl64.Vec2{50, -50}) {
		t.Errorf("Expected wrap to (50,-50), got %v", tf.Position)
	}
}

func TestDepsOverridesTuning(t *testing.T) {
	w := engine.NewWorld()
	sc := NewPendulum()
	settings := sc.(*pendulum).physics
	if settings != nil {
		t.Fatal("Physics should be nil before Setup")
	}
	env := component.EnvironmentForces{GravityY: -1}
	if err := sc.Setup(w, Deps{Environment: &env}); err != nil {
		t.Fatal(err)
	}
	if got := sc.Physics().Environment(); got != env {
		t.Errorf("Expected override %+v, got %+v", env, got)
	}
}

func TestWindGustAlternates(t *testing.T) {
	w := engine.NewWorld()
	ground := SpawnStaticBox(w, mgl64.Vec2{}, 10, 1, Body{})
	ball := SpawnCircle(w, mgl64.Vec2{0, 5}, 0.5, Body{Mass: 1})

	wind := NewWindGustSystem(1, 2)
	wind.Update(w, 0.5)
	if wind.Gusts() != 0 {
		t.Fatal("Gust fired early")
	}
	wind.Update(w, 0.5)
	rb, _ := engine.GetComponent[component.RigidBodyComponent](w, ball)
	if rb.Velocity[0] != -2 {
		t.Errorf("Expected first gust -2, got %v", rb.Velocity[0])
	}
	wind.Update(w, 1)
	if rb.Velocity[0] != 0 {
		t.Errorf("Expected second gust to reverse, got %v", rb.Velocity[0])
	}
	if g, _ := engine.GetComponent[component.RigidBodyComponent](w, ground); g.Velocity != (mgl64.Vec2{}) {
		t.Error("Static body received a gust")
	}
	wind.Update(w, -1)
	if wind.Gusts() != 2 {
		t.Errorf("Expected 2 gusts, got %d", wind.Gusts())
	}
}

func TestSpawnHelpers(t *testing.T) {
	w := engine.NewWorld()
	a := SpawnAnchor(w, mgl64.Vec2{0, 0})
	b := SpawnBall(w, mgl64.Vec2{3, 4}, 0.5, Body{Mass: 2, Velocity: mgl64.Vec2{1, 0}})
	s := SpawnStaticBox(w, mgl64.Vec2{0, -2}, 4, 1, Body{Mass: 5, Velocity: mgl64.Vec2{9, 9}})

	j := SpawnJoint(w, a, b, 0, 0)
	joint, ok := engine.GetComponent[component.DistanceJointComponent](w, j)
	if !ok || joint.TargetDistance != 5 {
		t.Errorf("Expected target from separation 5, got %+v", joint)
	}

	if !engine.HasComponent[component.AABBComponent](w, b) || !engine.HasComponent[component.CircleColliderComponent](w, b) {
		t.Error("Ball should carry circle and AABB")
	}
	rb, _ := engine.GetComponent[component.RigidBodyComponent](w, b)
	if rb.InvMass != 0.5 || rb.Inertia != 0.25 || rb.LastPosition != (mgl64.Vec2{3, 4}) {
		t.Errorf("Unexpected ball body %+v", rb)
	}
	srb, _ := engine.GetComponent[component.RigidBodyComponent](w, s)
	if !srb.IsStatic() || srb.Velocity != (mgl64.Vec2{}) {
		t.Errorf("Expected static box at rest, got %+v", srb)
	}
	box, _ := engine.GetComponent[component.AABBComponent](w, s)
	if box.AABB != (vmath.AABB{MinX: -2, MinY: -2.5, MaxX: 2, MaxY: -1.5}) {
		t.Errorf("Unexpected bounds %+v", box.AABB)
	}
}

func TestClothKeepsEdgeLengths(t *testing.T) {
	w := engine.NewWorld()
	sc := NewCloth()
	if err := sc.Setup(w, Deps{}); err != nil {
		t.Fatal(err)
	}
	joints := engine.GetStore[component.DistanceJointComponent](w)
	// Right and down links of a rows x cols lattice
	if want := clothRows*(clothCols-1) + (clothRows-1)*clothCols; joints.Len() != want {
		t.Fatalf("Expected %d joints, got %d", want, joints.Len())
	}

	for i := 0; i < 240; i++ {
		w.Update(1.0 / 60)
	}

	const tolerance = 0.02 * clothSpacing
	joints.ForEach(func(_ core.Entity, j *component.DistanceJointComponent) {
		a, _ := engine.GetComponent[component.TransformComponent](w, j.EntityA)
		b, _ := engine.GetComponent[component.TransformComponent](w, j.EntityB)
		if d := b.Position.Sub(a.Position).Len(); math.Abs(d-j.TargetDistance) > tolerance {
			t.Errorf("Edge %d-%d length %v, expected %v", j.EntityA, j.EntityB, d, j.TargetDistance)
		}
	})

	pinned := 0
	engine.View2(w, func(_ core.Entity, rb *component.RigidBodyComponent, tf *component.TransformComponent) {
		if rb.IsStatic() {
			pinned++
			if tf.Position[1] != clothOrigin[1] {
				t.Errorf("Pinned node moved to %v", tf.Position)
			}
		} else if tf.Position[1] >= clothOrigin[1] {
			t.Errorf("Hanging node above the pinned row: %v", tf.Position)
		}
	})
	if pinned != clothCols {
		t.Errorf("Expected %d pinned nodes, got %d", clothCols, pinned)
	}
}

func TestPlanetaryGravitySystem(t *testing.T) {
	w := engine.NewWorld()
	far := SpawnCircle(w, mgl64.Vec2{10, 0}, 0.5, Body{Mass: 2})
	near := SpawnCircle(w, mgl64.Vec2{0.05, 0}, 0.5, Body{Mass: 1})
	star := SpawnCircle(w, mgl64.Vec2{0, 10}, 1, Body{})

	g := NewPlanetaryGravitySystem(100, 1000)
	g.Update(w, 0.1)

	// G·M/d²·dt = 1e5/100·0.1, independent of the body's mass
	rb, _ := engine.GetComponent[component.RigidBodyComponent](w, far)
	if math.Abs(rb.Velocity[0]+100) > 1e-9 || rb.Velocity[1] != 0 {
		t.Errorf("Expected velocity (-100, 0), got %v", rb.Velocity)
	}
	if rb, _ := engine.GetComponent[component.RigidBodyComponent](w, near); rb.Velocity != (mgl64.Vec2{}) {
		t.Errorf("Body inside the minimum distance was pulled: %v", rb.Velocity)
	}
	if rb, _ := engine.GetComponent[component.RigidBodyComponent](w, star); rb.Velocity != (mgl64.Vec2{}) {
		t.Errorf("Static body was pulled: %v", rb.Velocity)
	}

	g.Update(w, 0)
	g.Update(w, math.NaN())
	if rb.Velocity[0] > -99 {
		t.Errorf("Bad dt changed velocity: %v", rb.Velocity)
	}
}

func TestPlanetaryOrbitsStayBound(t *testing.T) {
	sched := jobs.NewScheduler(2)
	defer sched.Close()

	w := engine.NewWorld()
	sc := NewPlanetaryGravity()
	if err := sc.Setup(w, Deps{Scheduler: sched}); err != nil {
		t.Fatal(err)
	}
	if env := sc.Physics().Environment(); env != (component.EnvironmentForces{}) {
		t.Errorf("Expected empty space, got %+v", env)
	}
	if s := sc.Physics().Settings(); s.Substeps != 8 {
		t.Errorf("Expected 8 substeps, got %d", s.Substeps)
	}

	for i := 0; i < 600; i++ {
		w.Update(1.0 / 60)
	}

	gm := planetG * planetStarMass
	planets := 0
	engine.View2(w, func(_ core.Entity, rb *component.RigidBodyComponent, tf *component.TransformComponent) {
		if rb.IsStatic() {
			if tf.Position != (mgl64.Vec2{}) {
				t.Errorf("Star moved to %v", tf.Position)
			}
			return
		}
		planets++
		r := tf.Position.Len()
		energy := vmath.LengthSq(rb.Velocity)/2 - gm/r
		if r > 2*planetOrbitMax || energy >= 0 {
			t.Errorf("Planet escaped: r=%v energy=%v", r, energy)
		}
	})
	if planets != planetCount {
		t.Errorf("Expected %d planets, got %d", planetCount, planets)
	}
}
