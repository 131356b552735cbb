package parameter

// Broadphase
const (
	// BroadphaseCellSize is the spatial hash cell edge in world units
	BroadphaseCellSize = 2.0
	// BroadphaseParallelThreshold is the collider count above which cell tasks are dispatched to workers
	BroadphaseParallelThreshold = 100
	// BroadphaseTasksPerWorker controls cell task batch granularity
	BroadphaseTasksPerWorker = 4
)

// Integration
const (
	// MaxLinearSpeed is the safety ceiling applied after integration and velocity reconstruction
	MaxLinearSpeed = 50.0
	// IntegrateParallelThreshold is the body count above which integration is dispatched to workers
	IntegrateParallelThreshold = 256
	// IntegrateMinBatch is the smallest range handed to one integration job
	IntegrateMinBatch = 64
	// DefaultInertiaFactor derives inertia from mass when none is configured
	DefaultInertiaFactor = 0.5
)

// Contact resolution
const (
	// ContactFrictionThreshold: friction and angular response apply while penetration is above this value
	ContactFrictionThreshold = -0.05
	// IslandTasksPerWorker controls island batch granularity
	IslandTasksPerWorker = 2
	// JointMinDistance below which a joint axis is undefined and the joint is skipped
	JointMinDistance = 1e-9
)

// Solver defaults
const (
	DefaultSubsteps              = 4
	DefaultPositionIterations    = 8
	DefaultVelocityIterations    = 8
	DefaultConstraintIterations  = 8
	DefaultPenetrationSlop       = 0.01
	DefaultCorrectionPercent     = 0.2
	DefaultMaxPositionCorrection = 0.2
)

// Environment defaults
const (
	DefaultGravityY = -9.81
)
