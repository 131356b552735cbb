package audio

import "github.com/lixenwraith/atlascore/engine"

// GustCounter is satisfied by systems that report how many gusts they fired
type GustCounter interface {
	Gusts() int
}

// GustCues plays a gust cue each time src fires
type GustCues struct {
	player *ImpactPlayer
	src    GustCounter
	seen   int
}

// NewGustCues watches src; register it after src so counts are current
func NewGustCues(player *ImpactPlayer, src GustCounter) *GustCues {
	return &GustCues{player: player, src: src}
}

func (g *GustCues) Update(_ *engine.World, _ float64) {
	n := g.src.Gusts()
	for ; g.seen < n; g.seen++ {
		g.player.Play(CueGust, 0.7)
	}
}
