package gsurfaux

import (
	math "github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// Key is a keyboard key understood by [Controls].
type Key int

const (
	KeyUnknown Key = iota
	KeyA
	KeyD
	KeyW
	KeyS
	KeyLeft
	KeyRight
)

// Action flags what a viewer must do after an input event.
type Action uint8

const (
	// ActionRedraw requests a new frame.
	ActionRedraw Action = 1 << iota
	// ActionReloadTexture requests the surface texture be loaded again.
	ActionReloadTexture
	// ActionRegenerate requests the surface mesh be generated again before drawing.
	ActionRegenerate
)

// Has reports whether all flags of b are set in a.
func (a Action) Has(b Action) bool { return a&b == b }

const (
	texStep   = 0.1
	lightStep = 0.07
)

// Controls is the interaction state of the surface viewer: the position of the light
// handle and the texture scale and offset. The zero value is not ready for use, see [NewControls].
type Controls struct {
	// LightHandle moves the light along its path. Left/right arrows change it.
	LightHandle float32
	// TexScale multiplies texture coordinates. W/S change it.
	TexScale float32
	// TexOffset shifts the texture u coordinate. A/D change it.
	TexOffset float32
}

// NewControls returns controls with unit texture scale, no offset and the light handle at 0.
func NewControls() *Controls {
	return &Controls{TexScale: 1}
}

// HandleKey applies a key press and returns what the viewer must do in response.
// Unknown keys return 0.
func (c *Controls) HandleKey(k Key) Action {
	switch k {
	case KeyA:
		c.TexOffset -= texStep
	case KeyD:
		c.TexOffset += texStep
	case KeyW:
		c.TexScale -= texStep
	case KeyS:
		c.TexScale += texStep
	case KeyLeft:
		c.LightHandle -= lightStep
		return ActionRegenerate | ActionRedraw
	case KeyRight:
		c.LightHandle += lightStep
		return ActionRegenerate | ActionRedraw
	default:
		return 0
	}
	return ActionReloadTexture | ActionRedraw
}

// LightPosition returns the light position for the current handle. The light
// moves on a parabola below the surface: (c, -2, c²) with c = 1.2·sin(handle).
func (c *Controls) LightPosition() ms3.Vec {
	coord := math.Sin(c.LightHandle) * 1.2
	return ms3.Vec{X: coord, Y: -2, Z: coord * coord}
}
