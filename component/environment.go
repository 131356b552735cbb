package component

import "github.com/lixenwraith/atlascore/parameter"

// EnvironmentForces holds world-wide accelerations applied to every dynamic body during integration
type EnvironmentForces struct {
	GravityY float64 `yaml:"gravity_y"` // Downward acceleration (negative is down)
	WindX    float64 `yaml:"wind_x"`
	WindY    float64 `yaml:"wind_y"` // Updrafts
	Drag     float64 `yaml:"drag"`   // Linear drag coefficient, acceleration = -Drag * velocity
}

// DefaultEnvironment returns earth gravity with no wind or drag
func DefaultEnvironment() EnvironmentForces {
	return EnvironmentForces{GravityY: parameter.DefaultGravityY}
}
