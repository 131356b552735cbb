package main

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/atlascore/audio"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/physics"
	"github.com/lixenwraith/atlascore/scenario"
)

// hasher is implemented by scenes that keep their own determinism hash
type hasher interface {
	Hash() uint64
}

// windy is implemented by scenes that run a gust system
type windy interface {
	Wind() *scenario.WindGustSystem
}

// simulation owns one world populated by one scenario
type simulation struct {
	key    string
	title  string
	world  *engine.World
	scene  scenario.Scenario
	player *audio.ImpactPlayer
	frames int
}

// newSimulation builds a fresh world for the registered scenario key
// player may be nil
func newSimulation(reg *scenario.Registry, key string, deps scenario.Deps, player *audio.ImpactPlayer) (*simulation, error) {
	d, err := reg.Lookup(key)
	if err != nil {
		return nil, err
	}
	sim := &simulation{
		key:    d.Key,
		title:  d.Title,
		world:  engine.NewWorld(),
		scene:  d.Factory(),
		player: player,
	}
	if err := sim.scene.Setup(sim.world, deps); err != nil {
		return nil, errors.Wrapf(err, "setup %s", key)
	}
	if player != nil {
		if wg, ok := sim.scene.(windy); ok && wg.Wind() != nil {
			sim.world.AddSystem(audio.NewGustCues(player, wg.Wind()))
		}
	}
	return sim, nil
}

// step runs one frame: scene logic, then every world system, then observers
func (s *simulation) step(dt float64) error {
	s.scene.Step(s.world, dt)
	s.world.Update(dt)
	s.frames++

	ps := s.scene.Physics()
	if ps == nil {
		return nil
	}
	if err := ps.Err(); err != nil {
		return errors.Wrapf(err, "frame %d", s.frames)
	}
	if s.player != nil {
		s.player.Observe(s.world, ps.Contacts(), dt)
	}
	return nil
}

// hash combines the world state hash with the scene's own hash when it has one
func (s *simulation) hash() uint64 {
	h := physics.HashWorld(s.world)
	if sh, ok := s.scene.(hasher); ok {
		h = physics.CombineHash(h, sh.Hash())
	}
	return h
}
