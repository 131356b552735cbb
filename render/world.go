package render

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/core"
	"github.com/lixenwraith/atlascore/engine"
)

// Glyphs used by DrawWorld
const (
	GlyphJoint  = '.'
	GlyphStatic = '#'
	GlyphBox    = '%'
	GlyphCircle = 'o'
	GlyphAnchor = 'X'
)

// DrawWorld draws joints, box colliders, circle colliders and collider-less bodies onto c
// It only reads component stores and must run between World updates
func DrawWorld(c *Canvas, w *engine.World, vp Viewport) {
	if c == nil || w == nil {
		return
	}

	// Joints first so bodies are drawn over their links
	engine.ForEach(w, func(_ core.Entity, j *component.DistanceJointComponent) {
		ta, okA := engine.GetComponent[component.TransformComponent](w, j.EntityA)
		tb, okB := engine.GetComponent[component.TransformComponent](w, j.EntityB)
		if !okA || !okB {
			return
		}
		x0, y0 := vp.ToScreen(ta.Position)
		x1, y1 := vp.ToScreen(tb.Position)
		if !vp.Visible(x0, y0) && !vp.Visible(x1, y1) {
			return
		}
		c.DrawLine(x0, y0, x1, y1, GlyphJoint, ColorYellow)
	})

	circles, _ := engine.LookupStore[component.CircleColliderComponent](w)

	engine.ForEach(w, func(e core.Entity, box *component.AABBComponent) {
		if circles != nil && circles.Has(e) {
			return
		}
		x0, y0 := vp.ToScreen(mgl64.Vec2{box.MinX, box.MinY})
		x1, y1 := vp.ToScreen(mgl64.Vec2{box.MaxX, box.MaxY})
		// Screen Y grows downward
		left, top := min(x0, x1), min(y0, y1)
		width, height := abs(x1-x0)+1, abs(y1-y0)+1

		if isStatic(w, e) {
			c.FillRect(left, top, width, height, GlyphStatic, ColorWhite)
			return
		}
		c.DrawRect(left, top, width, height, GlyphBox, ColorCyan)
	})

	engine.View2(w, func(e core.Entity, circle *component.CircleColliderComponent, tf *component.TransformComponent) {
		cx, cy := vp.ToScreen(circle.Center(tf.Position))
		rx, ry := vp.Extent(circle.Radius, circle.Radius)
		color := ColorGreen
		if isStatic(w, e) {
			color = ColorWhite
		} else if rx >= 2 && ry >= 2 {
			color = ColorRed
		}
		if rx <= 0 && ry <= 0 {
			c.Put(cx, cy, GlyphCircle, color)
			return
		}
		c.FillEllipse(cx, cy, rx, ry, GlyphCircle, color)
	})

	// Bodies with no collider, joint anchors
	engine.View2(w, func(e core.Entity, rb *component.RigidBodyComponent, tf *component.TransformComponent) {
		if engine.HasComponent[component.AABBComponent](w, e) || (circles != nil && circles.Has(e)) {
			return
		}
		x, y := vp.ToScreen(tf.Position)
		color := ColorMagenta
		if !rb.IsStatic() {
			color = ColorGreen
		}
		c.Put(x, y, GlyphAnchor, color)
	})
}

func isStatic(w *engine.World, e core.Entity) bool {
	rb, ok := engine.GetComponent[component.RigidBodyComponent](w, e)
	return !ok || rb.IsStatic()
}
