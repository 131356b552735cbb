package physics

import (
	"github.com/lixenwraith/atlascore/parameter"
)

// Settings tunes the substep count and solver iteration/stability parameters
type Settings struct {
	Substeps              int     `yaml:"substeps"`
	PositionIterations    int     `yaml:"position_iterations"`
	VelocityIterations    int     `yaml:"velocity_iterations"`
	ConstraintIterations  int     `yaml:"constraint_iterations"`
	PenetrationSlop       float64 `yaml:"penetration_slop"`
	CorrectionPercent     float64 `yaml:"correction_percent"`
	MaxPositionCorrection float64 `yaml:"max_position_correction"`
}

// DefaultSettings returns the parameter package defaults
func DefaultSettings() Settings {
	return Settings{
		Substeps:              parameter.DefaultSubsteps,
		PositionIterations:    parameter.DefaultPositionIterations,
		VelocityIterations:    parameter.DefaultVelocityIterations,
		ConstraintIterations:  parameter.DefaultConstraintIterations,
		PenetrationSlop:       parameter.DefaultPenetrationSlop,
		CorrectionPercent:     parameter.DefaultCorrectionPercent,
		MaxPositionCorrection: parameter.DefaultMaxPositionCorrection,
	}
}

// Normalized clamps counts to at least one and tolerances to non-negative values
func (s Settings) Normalized() Settings {
	s.Substeps = max(1, s.Substeps)
	s.PositionIterations = max(1, s.PositionIterations)
	s.VelocityIterations = max(1, s.VelocityIterations)
	s.ConstraintIterations = max(1, s.ConstraintIterations)
	s.PenetrationSlop = max(0, s.PenetrationSlop)
	s.CorrectionPercent = max(0, s.CorrectionPercent)
	s.MaxPositionCorrection = max(0, s.MaxPositionCorrection)
	return s
}
