package physics

import (
	"cmp"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/atlascore/core"
	"github.com/lixenwraith/atlascore/jobs"
	"github.com/lixenwraith/atlascore/parameter"
	"github.com/lixenwraith/atlascore/vmath"
)

// CollisionEvent is a contact between colliders IndexA < IndexB of the detection input
// Normal is unit length and points from A toward B
type CollisionEvent struct {
	IndexA, IndexB   int
	EntityA, EntityB core.Entity
	Normal           mgl64.Vec2
	Penetration      float64
}

// cellEntry is one (cell, collider) registration
type cellEntry struct {
	key   uint64
	index int32
}

// cellTask is a run of entries sharing a cell with at least two colliders
type cellTask struct {
	key        uint64
	start, end int
}

// Detector finds contacts with a uniform grid and reuses its scratch buffers between calls
// Not safe for concurrent use
type Detector struct {
	CellSize          float64
	ParallelThreshold int

	entries []cellEntry
	tasks   []cellTask
	buffers [][]CollisionEvent
}

// NewDetector returns a detector with the parameter package defaults
func NewDetector() *Detector {
	return &Detector{
		CellSize:          parameter.BroadphaseCellSize,
		ParallelThreshold: parameter.BroadphaseParallelThreshold,
	}
}

func cellKey(cx, cy int32) uint64 {
	return uint64(uint32(cx))<<32 | uint64(uint32(cy))
}

func (d *Detector) cellCoord(v float64) int32 {
	c := math.Floor(v / d.cellSize())
	switch {
	case c < math.MinInt32:
		return math.MinInt32
	case c > math.MaxInt32:
		return math.MaxInt32
	}
	return int32(c)
}

func (d *Detector) cellSize() float64 {
	if d.CellSize > 0 && vmath.IsFinite(d.CellSize) {
		return d.CellSize
	}
	return parameter.BroadphaseCellSize
}

func finiteBounds(b vmath.AABB) bool {
	return vmath.IsFinite(b.MinX) && vmath.IsFinite(b.MinY) && vmath.IsFinite(b.MaxX) && vmath.IsFinite(b.MaxY)
}

// Detect uses the grid on a scheduler when the collider count exceeds ParallelThreshold, else the pairwise scan
func (d *Detector) Detect(colliders []Collider, sched *jobs.Scheduler, out []CollisionEvent) ([]CollisionEvent, error) {
	if sched != nil && len(colliders) > d.ParallelThreshold {
		return d.DetectGrid(colliders, sched, out)
	}
	return d.DetectSerial(colliders, out), nil
}

// DetectSerial tests every pair i < j; colliders with non-finite bounds never collide
func (d *Detector) DetectSerial(colliders []Collider, out []CollisionEvent) []CollisionEvent {
	out = out[:0]
	for i := 0; i < len(colliders); i++ {
		if !finiteBounds(colliders[i].Bounds) {
			continue
		}
		for j := i + 1; j < len(colliders); j++ {
			if !finiteBounds(colliders[j].Bounds) || !colliders[i].Bounds.Overlaps(colliders[j].Bounds) {
				continue
			}
			out = appendContact(out, colliders, i, j)
		}
	}
	return out
}

// DetectGrid buckets colliders into cells and tests pairs per cell
// A pair is reported only by the cell holding the min corner of the pair's bounds intersection, so each
// overlapping pair appears exactly once. A nil scheduler runs every cell task on the caller
func (d *Detector) DetectGrid(colliders []Collider, sched *jobs.Scheduler, out []CollisionEvent) ([]CollisionEvent, error) {
	out = out[:0]
	d.buildTasks(colliders)
	if len(d.tasks) == 0 {
		return out, nil
	}

	if sched == nil {
		for i := range d.tasks {
			out = d.processTask(&d.tasks[i], colliders, out)
		}
		return out, nil
	}

	batch := max(1, (len(d.tasks)+sched.WorkerCount()*parameter.BroadphaseTasksPerWorker-1)/(sched.WorkerCount()*parameter.BroadphaseTasksPerWorker))
	chunks := (len(d.tasks) + batch - 1) / batch
	if cap(d.buffers) < chunks {
		d.buffers = make([][]CollisionEvent, chunks)
	}
	d.buffers = d.buffers[:chunks]

	// Each chunk owns one buffer slot
	err := sched.WaitAll(sched.Dispatch(len(d.tasks), batch, func(start, end int) error {
		buf := d.buffers[start/batch][:0]
		for i := start; i < end; i++ {
			buf = d.processTask(&d.tasks[i], colliders, buf)
		}
		d.buffers[start/batch] = buf
		return nil
	}))
	if err != nil {
		return out, err
	}

	for _, buf := range d.buffers {
		out = append(out, buf...)
	}
	return out, nil
}

func (d *Detector) buildTasks(colliders []Collider) {
	d.entries = d.entries[:0]
	d.tasks = d.tasks[:0]

	for i := range colliders {
		b := colliders[i].Bounds
		if !finiteBounds(b) {
			continue
		}
		minX, maxX := d.cellCoord(b.MinX), d.cellCoord(b.MaxX)
		minY, maxY := d.cellCoord(b.MinY), d.cellCoord(b.MaxY)
		for cx := int64(minX); cx <= int64(maxX); cx++ {
			for cy := int64(minY); cy <= int64(maxY); cy++ {
				d.entries = append(d.entries, cellEntry{key: cellKey(int32(cx), int32(cy)), index: int32(i)})
			}
		}
	}

	slices.SortFunc(d.entries, func(a, b cellEntry) int {
		if c := cmp.Compare(a.key, b.key); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})

	for start := 0; start < len(d.entries); {
		end := start + 1
		for end < len(d.entries) && d.entries[end].key == d.entries[start].key {
			end++
		}
		if end-start > 1 {
			d.tasks = append(d.tasks, cellTask{key: d.entries[start].key, start: start, end: end})
		}
		start = end
	}
}

func (d *Detector) processTask(task *cellTask, colliders []Collider, out []CollisionEvent) []CollisionEvent {
	run := d.entries[task.start:task.end]
	for i := 0; i < len(run); i++ {
		a := int(run[i].index)
		for j := i + 1; j < len(run); j++ {
			b := int(run[j].index)
			ba, bb := colliders[a].Bounds, colliders[b].Bounds
			if !ba.Overlaps(bb) {
				continue
			}
			inter := ba.Intersection(bb)
			if cellKey(d.cellCoord(inter.MinX), d.cellCoord(inter.MinY)) != task.key {
				continue
			}
			out = appendContact(out, colliders, a, b)
		}
	}
	return out
}

func appendContact(out []CollisionEvent, colliders []Collider, i, j int) []CollisionEvent {
	normal, pen, ok := collide(&colliders[i], &colliders[j])
	if !ok {
		return out
	}
	return append(out, CollisionEvent{
		IndexA:      i,
		IndexB:      j,
		EntityA:     colliders[i].Entity,
		EntityB:     colliders[j].Entity,
		Normal:      normal,
		Penetration: pen,
	})
}
