package gsurfaux

import (
	math "github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/glgl/math/ms1"
)

// Trackball rotates the view by dragging a virtual sphere that fills the viewport.
// The zero value is not ready for use, see [NewTrackball].
type Trackball struct {
	rot      mgl32.Quat
	prev     mgl32.Vec3
	dragging bool
	width    float32
	height   float32
}

// NewTrackball returns a trackball for a viewport of the given size with no rotation applied.
func NewTrackball(width, height int) *Trackball {
	tb := &Trackball{rot: mgl32.QuatIdent()}
	tb.Resize(width, height)
	return tb
}

// Resize sets the viewport size used to map cursor positions onto the sphere.
func (tb *Trackball) Resize(width, height int) {
	tb.width = float32(max(width, 1))
	tb.height = float32(max(height, 1))
}

// Press starts a drag at cursor position (x,y) in window coordinates.
func (tb *Trackball) Press(x, y float64) {
	tb.prev = tb.project(x, y)
	tb.dragging = true
}

// Release ends the current drag.
func (tb *Trackball) Release() { tb.dragging = false }

// Dragging reports whether a drag is in progress.
func (tb *Trackball) Dragging() bool { return tb.dragging }

// Drag rotates the view by the arc between the previous and current cursor
// positions. It returns false if no drag is in progress or the cursor did not move the sphere.
func (tb *Trackball) Drag(x, y float64) bool {
	if !tb.dragging {
		return false
	}
	cur := tb.project(x, y)
	axis := tb.prev.Cross(cur)
	if axis.Len() < 1e-6 {
		return false
	}
	angle := math.Acos(ms1.Clamp(tb.prev.Dot(cur), -1, 1))
	tb.rot = mgl32.QuatRotate(angle, axis.Normalize()).Mul(tb.rot).Normalize()
	tb.prev = cur
	return true
}

// Reset removes all accumulated rotation.
func (tb *Trackball) Reset() { tb.rot = mgl32.QuatIdent() }

// Rotation returns the accumulated rotation.
func (tb *Trackball) Rotation() mgl32.Quat { return tb.rot }

// ViewMatrix returns the accumulated rotation as a view matrix.
func (tb *Trackball) ViewMatrix() mgl32.Mat4 { return tb.rot.Mat4() }

// project maps window coordinates onto the unit sphere. Points outside the sphere's
// silhouette are mapped onto its rim.
func (tb *Trackball) project(x, y float64) mgl32.Vec3 {
	size := min(tb.width, tb.height)
	px := (2*float32(x) - tb.width) / size
	py := (tb.height - 2*float32(y)) / size // Window y grows downwards.
	d2 := px*px + py*py
	if d2 >= 1 {
		return mgl32.Vec3{px, py, 0}.Normalize()
	}
	return mgl32.Vec3{px, py, math.Sqrt(1 - d2)}
}
