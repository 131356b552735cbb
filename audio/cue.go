package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Cue identifies a contact sound
type Cue int

const (
	CueThud  Cue = iota // Heavy body impact
	CueClick            // Light body impact
	CueGust             // Wind gust
	cueCount
)

var cueNames = [cueCount]string{"thud", "click", "gust"}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

const (
	thudDuration  = 120 * time.Millisecond
	clickDuration = 40 * time.Millisecond
	gustDuration  = 350 * time.Millisecond
	cueAttack     = 4 * time.Millisecond
)

// NewCue renders c at the given intensity in [0, 1]
// Higher intensity is louder and, for impacts, lower pitched
func NewCue(c Cue, intensity float64, cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	intensity = min(max(intensity, 0), 1)
	gain := cfg.MasterVolume * (0.25 + 0.75*intensity)

	switch c {
	case CueThud:
		freq := 180 - 100*intensity
		body := NewEnvelope(NewOscillator(freq, thudDuration, WaveSine, rate), thudDuration, cueAttack, thudDuration*3/4, rate)
		rattle := NewEnvelope(NewOscillator(0, thudDuration/3, WaveNoise, rate), thudDuration/3, cueAttack, thudDuration/4, rate)
		return newVolume(beep.Mix(newVolume(body, 0.8), newVolume(rattle, 0.2)), gain)
	case CueClick:
		freq := 1400 - 600*intensity
		osc := NewOscillator(freq, clickDuration, WaveSquare, rate)
		return newVolume(NewEnvelope(osc, clickDuration, cueAttack/2, clickDuration/2, rate), gain*0.5)
	case CueGust:
		noise := NewOscillator(0, gustDuration, WaveNoise, rate)
		return newVolume(NewEnvelope(noise, gustDuration, gustDuration/3, gustDuration/2, rate), gain*0.4)
	default:
		return nil
	}
}
