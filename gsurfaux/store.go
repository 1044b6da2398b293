package gsurfaux

import (
	"sync/atomic"

	"github.com/soypat/gsurf"
)

// MeshStore holds the most recently generated surface mesh. A regenerated mesh
// replaces the previous one in a single swap so readers never observe a partial mesh.
// The zero value is an empty store ready for use.
type MeshStore struct {
	mesh atomic.Pointer[gsurf.Mesh]
	gens atomic.Uint64
}

// Regenerate generates the surface described by cfg and swaps it in.
// On error the stored mesh is left untouched.
func (ms *MeshStore) Regenerate(cfg gsurf.Config) (*gsurf.Mesh, error) {
	mesh, err := gsurf.Generate(cfg)
	if err != nil {
		return nil, err
	}
	ms.mesh.Store(&mesh)
	ms.gens.Add(1)
	return &mesh, nil
}

// Mesh returns the current mesh or nil if none has been generated.
// The returned mesh must not be modified.
func (ms *MeshStore) Mesh() *gsurf.Mesh { return ms.mesh.Load() }

// Generations returns how many meshes have been stored.
func (ms *MeshStore) Generations() uint64 { return ms.gens.Load() }
