package gsurf

import (
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Mesh is a line strip over the sampled surface with a texture coordinate per vertex.
// The first RadialVertices vertices are the mirrored radial lines, the remainder the mirrored circles.
// Strip boundaries are not marked: drawing the whole mesh as a single line strip
// joins consecutive lines with an extra edge.
type Mesh struct {
	Positions      []ms3.Vec
	TexCoords      []ms2.Vec
	RadialVertices int
}

// Len returns the number of vertices in the mesh.
func (m Mesh) Len() int { return len(m.Positions) }

// Radial returns the radial line batch of the mesh.
func (m Mesh) Radial() (pos []ms3.Vec, tex []ms2.Vec) {
	return m.Positions[:m.RadialVertices], m.TexCoords[:m.RadialVertices]
}

// Circles returns the circle batch of the mesh.
func (m Mesh) Circles() (pos []ms3.Vec, tex []ms2.Vec) {
	return m.Positions[m.RadialVertices:], m.TexCoords[m.RadialVertices:]
}

// Bounds returns the axis aligned bounding box of all mesh vertices.
// An empty mesh has a zero box.
func (m Mesh) Bounds() ms3.Box {
	if len(m.Positions) == 0 {
		return ms3.Box{}
	}
	bb := ms3.Box{Min: m.Positions[0], Max: m.Positions[0]}
	for _, p := range m.Positions[1:] {
		bb.Min = ms3.Vec{X: min(bb.Min.X, p.X), Y: min(bb.Min.Y, p.Y), Z: min(bb.Min.Z, p.Z)}
		bb.Max = ms3.Vec{X: max(bb.Max.X, p.X), Y: max(bb.Max.Y, p.Y), Z: max(bb.Max.Z, p.Z)}
	}
	return bb
}

// AppendPositions32 appends the vertex positions to dst as consecutive x,y,z triplets,
// the layout expected by a 3 component float vertex attribute.
func (m Mesh) AppendPositions32(dst []float32) []float32 {
	for _, p := range m.Positions {
		dst = append(dst, p.X, p.Y, p.Z)
	}
	return dst
}

// AppendTexCoords32 appends the texture coordinates to dst as consecutive u,v pairs.
func (m Mesh) AppendTexCoords32(dst []float32) []float32 {
	for _, t := range m.TexCoords {
		dst = append(dst, t.X, t.Y)
	}
	return dst
}
