package gsurf

import (
	"fmt"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Grid is the circle family of a sampled surface stored row-major:
// sample j of circle i lives at index i*cols+j of both buffers.
// Circle i has constant radius, radial line j has constant angle.
type Grid struct {
	pos  []ms3.Vec
	tex  []ms2.Vec
	rows int // number of circles.
	cols int // samples per circle.
}

// Sample evaluates the surface described by cfg on its circles.
// Each circle sweeps the angle by accumulation independently of the others.
// Circles of different length result in [ErrRaggedGrid].
func Sample(cfg Config) (*Grid, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	radii := cfg.RadialSamples()
	g := &Grid{rows: len(radii)}
	for i, r := range radii {
		start := len(g.pos)
		for B := 0.0; B <= cfg.AngleMax; B += cfg.AngularStep {
			g.pos = append(g.pos, ms3.Vec{
				X: float32(cfg.x(r, B)),
				Y: float32(cfg.y(r, B)),
				Z: float32(cfg.z(r)),
			})
			u, v := cfg.texUV(r, B)
			g.tex = append(g.tex, ms2.Vec{X: float32(u), Y: float32(v)})
		}
		err = g.endCircle(i, len(g.pos)-start)
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

// endCircle records the sample count n of circle i, which must match that of every previous circle.
func (g *Grid) endCircle(i, n int) error {
	if i == 0 {
		g.cols = n
	} else if n != g.cols {
		return fmt.Errorf("circle %d has %d samples, circle 0 has %d: %w", i, n, g.cols, ErrRaggedGrid)
	}
	return nil
}

// Dims returns the number of circles and the number of samples in each circle.
// The number of radial lines equals samplesPerCircle.
func (g *Grid) Dims() (circles, samplesPerCircle int) {
	return g.rows, g.cols
}

// Circle returns the positions of circle i. The returned slice aliases the grid.
func (g *Grid) Circle(i int) []ms3.Vec {
	return g.pos[i*g.cols : (i+1)*g.cols : (i+1)*g.cols]
}

// CircleTex returns the texture coordinates of circle i. The returned slice aliases the grid.
func (g *Grid) CircleTex(i int) []ms2.Vec {
	return g.tex[i*g.cols : (i+1)*g.cols : (i+1)*g.cols]
}

// RadialLine appends the positions of radial line j, that is the j'th sample of every circle, to dst.
func (g *Grid) RadialLine(dst []ms3.Vec, j int) []ms3.Vec {
	for i := 0; i < g.rows; i++ {
		dst = append(dst, g.pos[i*g.cols+j])
	}
	return dst
}

// RadialLineTex appends the texture coordinates of radial line j to dst.
func (g *Grid) RadialLineTex(dst []ms2.Vec, j int) []ms2.Vec {
	for i := 0; i < g.rows; i++ {
		dst = append(dst, g.tex[i*g.cols+j])
	}
	return dst
}

// Mirror appends s followed by s reversed to dst. The appended
// sequence m of length 2*len(s) satisfies m[i] == m[len(m)-1-i].
func Mirror[T any](dst, s []T) []T {
	dst = append(dst, s...)
	for i := len(s) - 1; i >= 0; i-- {
		dst = append(dst, s[i])
	}
	return dst
}

// Mesh linearizes the grid into a renderable line strip: every mirrored radial line
// in angular order followed by every mirrored circle in radius order.
func (g *Grid) Mesh() Mesh {
	nv := 4 * g.rows * g.cols
	m := Mesh{
		Positions:      make([]ms3.Vec, 0, nv),
		TexCoords:      make([]ms2.Vec, 0, nv),
		RadialVertices: 2 * g.rows * g.cols,
	}
	// Scratch for a single radial line before mirroring.
	linePos := make([]ms3.Vec, 0, g.rows)
	lineTex := make([]ms2.Vec, 0, g.rows)
	for j := 0; j < g.cols; j++ {
		linePos = g.RadialLine(linePos[:0], j)
		lineTex = g.RadialLineTex(lineTex[:0], j)
		m.Positions = Mirror(m.Positions, linePos)
		m.TexCoords = Mirror(m.TexCoords, lineTex)
	}
	for i := 0; i < g.rows; i++ {
		m.Positions = Mirror(m.Positions, g.Circle(i))
		m.TexCoords = Mirror(m.TexCoords, g.CircleTex(i))
	}
	return m
}

// Generate samples the surface described by cfg and returns its line strip mesh.
// Generate is deterministic: calls with equal configurations return equal meshes.
func Generate(cfg Config) (Mesh, error) {
	g, err := Sample(cfg)
	if err != nil {
		return Mesh{}, err
	}
	return g.Mesh(), nil
}
