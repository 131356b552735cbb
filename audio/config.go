package audio

import "time"

// Config tunes the impact player
type Config struct {
	SampleRate   int
	MasterVolume float64 // [0, 1]

	// Closing speed along the contact normal below which a new contact stays silent
	MinImpactSpeed float64
	// Closing speed mapped to full intensity
	MaxImpactSpeed float64
	// Impacts at or above this intensity play a thud, lighter ones a click
	ThudIntensity float64
	// Minimum spacing between cues
	Cooldown time.Duration
}

// DefaultConfig returns the tuning used by simlab
func DefaultConfig() Config {
	return Config{
		SampleRate:     48000,
		MasterVolume:   0.6,
		MinImpactSpeed: 1.5,
		MaxImpactSpeed: 20,
		ThudIntensity:  0.4,
		Cooldown:       60 * time.Millisecond,
	}
}
