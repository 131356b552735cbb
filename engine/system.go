package engine

// System is a unit of behavior invoked once per World.Update
type System interface {
	Update(world *World, dt float64)
}

// SystemFunc adapts a plain function to System
type SystemFunc func(world *World, dt float64)

// Update calls f(world, dt)
func (f SystemFunc) Update(world *World, dt float64) {
	f(world, dt)
}
