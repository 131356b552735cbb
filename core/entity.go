package core

// Entity is an opaque identifier, monotonically increasing and never reused within a run
// Zero is reserved as the invalid entity
type Entity uint64

// InvalidEntity is never returned by World.CreateEntity
const InvalidEntity Entity = 0
