package physics

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/core"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/vmath"
)

// stateHasher feeds float bit patterns into FNV-1a 64
type stateHasher struct {
	h   hash.Hash64
	buf [8]byte
}

func newStateHasher() *stateHasher {
	return &stateHasher{h: fnv.New64a()}
}

func (s *stateHasher) float(f float64) {
	binary.LittleEndian.PutUint64(s.buf[:], math.Float64bits(f))
	s.h.Write(s.buf[:])
}

func (s *stateHasher) body(tf *component.TransformComponent, rb *component.RigidBodyComponent) {
	s.float(tf.Position[0])
	s.float(tf.Position[1])
	s.float(tf.Rotation)
	s.float(rb.Velocity[0])
	s.float(rb.Velocity[1])
	s.float(rb.AngularVelocity)
}

// HashBodies hashes position, rotation, velocity and spin of index-aligned slices
// Bit-identical state yields identical hashes
func HashBodies(transforms []component.TransformComponent, bodies []component.RigidBodyComponent) uint64 {
	s := newStateHasher()
	for i := 0; i < min(len(transforms), len(bodies)); i++ {
		s.body(&transforms[i], &bodies[i])
	}
	return s.h.Sum64()
}

// HashWorld hashes every rigid body with a transform in dense store order
func HashWorld(w *engine.World) uint64 {
	s := newStateHasher()
	engine.ForEach(w, func(e core.Entity, rb *component.RigidBodyComponent) {
		if tf, ok := engine.GetComponent[component.TransformComponent](w, e); ok {
			s.body(tf, rb)
		}
	})
	return s.h.Sum64()
}

// HashAABBs hashes bounds in slice order
func HashAABBs(boxes []vmath.AABB) uint64 {
	s := newStateHasher()
	for _, b := range boxes {
		s.float(b.MinX)
		s.float(b.MinY)
		s.float(b.MaxX)
		s.float(b.MaxY)
	}
	return s.h.Sum64()
}

// CombineHash mixes hashes order-dependently
func CombineHash(hashes ...uint64) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range hashes {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	return h.Sum64()
}
