package gsurf_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gsurf"
)

func TestDefaultSampleCounts(t *testing.T) {
	cfg := gsurf.DefaultConfig()
	grid, err := gsurf.Sample(cfg)
	if err != nil {
		t.Fatal(err)
	}
	// Count by accumulation, not by dividing the bound by the step.
	wantCircles := 0
	for r := 0.0; r <= 7; r += math.Pi / 8 {
		wantCircles++
	}
	wantSamples := 0
	for B := 0.0; B <= 2*math.Pi; B += math.Pi / 700 {
		wantSamples++
	}
	circles, samples := grid.Dims()
	if circles != wantCircles || samples != wantSamples {
		t.Fatalf("got %d circles of %d samples, want %d of %d", circles, samples, wantCircles, wantSamples)
	}
	// Accumulated drift excludes B=2π itself.
	if circles != 18 || samples != 1400 {
		t.Errorf("reference surface should be 18 circles of 1400 samples, got %d of %d", circles, samples)
	}
	if len(cfg.RadialSamples()) != circles || len(cfg.AngularSamples()) != samples {
		t.Error("Config sample helpers disagree with grid dimensions")
	}
	mesh := grid.Mesh()
	if mesh.Len() != 4*circles*samples {
		t.Errorf("mesh has %d vertices, want %d", mesh.Len(), 4*circles*samples)
	}
	if mesh.RadialVertices != 2*circles*samples {
		t.Errorf("radial batch has %d vertices, want %d", mesh.RadialVertices, 2*circles*samples)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := gsurf.DefaultConfig()
	m1, err := gsurf.Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := gsurf.Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(m1.Positions, m2.Positions) {
		t.Error("positions differ between generations")
	}
	if !slices.Equal(m1.TexCoords, m2.TexCoords) {
		t.Error("texture coordinates differ between generations")
	}
	if m1.RadialVertices != m2.RadialVertices {
		t.Error("radial batch size differs between generations")
	}
}

func TestFlatBufferLengths(t *testing.T) {
	mesh, err := gsurf.Generate(gsurf.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	pos := mesh.AppendPositions32(nil)
	tex := mesh.AppendTexCoords32(nil)
	if 2*len(pos) != 3*len(tex) {
		t.Fatalf("positions(%d) must be 3/2 the length of texcoords(%d)", len(pos), len(tex))
	}
	if len(mesh.Positions) != len(mesh.TexCoords) {
		t.Fatal("positions and texcoords not parallel")
	}
	for i, p := range mesh.Positions {
		if pos[3*i] != p.X || pos[3*i+1] != p.Y || pos[3*i+2] != p.Z {
			t.Fatalf("flat position %d does not match %v", i, p)
		}
	}
}

func TestHeightDependsOnRadius(t *testing.T) {
	cfg := gsurf.DefaultConfig()
	cfg.N = 2.5
	cfg.A = 0.75
	mesh, err := gsurf.Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	// u is r/RMax so equal u means equal r.
	heights := make(map[float32]float32)
	for i, p := range mesh.Positions {
		u := mesh.TexCoords[i].X
		z, ok := heights[u]
		if !ok {
			heights[u] = p.Z
			continue
		}
		if z != p.Z {
			t.Fatalf("vertex %d with u=%g has z=%g, other vertex at same radius has z=%g", i, u, p.Z, z)
		}
	}
	if len(heights) != len(cfg.RadialSamples()) {
		t.Errorf("found %d distinct radii, want %d", len(heights), len(cfg.RadialSamples()))
	}
	for _, r := range cfg.RadialSamples() {
		want := float32(cfg.A * math.Cos(cfg.N*math.Pi*r/cfg.R))
		got := heights[float32(r/cfg.RMax)]
		if math.Abs(float64(got-want)) > 1e-6 {
			t.Errorf("r=%g: z=%g, want %g", r, got, want)
		}
	}
}

func TestCenterCircle(t *testing.T) {
	cfg := gsurf.DefaultConfig()
	grid, err := gsurf.Sample(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for j, p := range grid.Circle(0) {
		if p.X != 0 || p.Y != 0 {
			t.Fatalf("sample %d at r=0 off axis: %v", j, p)
		}
		if p.Z != float32(cfg.A) {
			t.Fatalf("sample %d at r=0 has z=%g, want %g", j, p.Z, cfg.A)
		}
		if grid.CircleTex(0)[j].X != 0 {
			t.Fatalf("sample %d at r=0 has u=%g", j, grid.CircleTex(0)[j].X)
		}
	}
}

func TestMirrorLaw(t *testing.T) {
	for _, L := range []int{0, 1, 2, 5, 18} {
		s := make([]int, L)
		for i := range s {
			s[i] = i * i
		}
		m := gsurf.Mirror(nil, s)
		if len(m) != 2*L {
			t.Fatalf("L=%d: mirrored length %d", L, len(m))
		}
		if !slices.Equal(m[:L], s) {
			t.Errorf("L=%d: mirrored sequence does not start with original", L)
		}
		for i := range m {
			if m[i] != m[len(m)-1-i] {
				t.Errorf("L=%d: m[%d]=%d != m[%d]=%d", L, i, m[i], len(m)-1-i, m[len(m)-1-i])
			}
		}
	}
	// Mirror must append, not overwrite.
	got := gsurf.Mirror([]int{7}, []int{1, 2})
	if !slices.Equal(got, []int{7, 1, 2, 2, 1}) {
		t.Errorf("got %v", got)
	}
}

func TestMeshLayout(t *testing.T) {
	cfg := gsurf.DefaultConfig()
	cfg.AngularStep = math.Pi / 16 // Keep the grid small.
	grid, err := gsurf.Sample(cfg)
	if err != nil {
		t.Fatal(err)
	}
	rows, cols := grid.Dims()
	mesh := grid.Mesh()
	radPos, radTex := mesh.Radial()
	circPos, circTex := mesh.Circles()
	if len(radPos) != 2*rows*cols || len(circPos) != 2*rows*cols {
		t.Fatalf("unexpected batch sizes %d, %d", len(radPos), len(circPos))
	}
	var line []ms3.Vec
	var lineTex []ms2.Vec
	for j := 0; j < cols; j++ {
		chunk := radPos[2*rows*j : 2*rows*(j+1)]
		chunkTex := radTex[2*rows*j : 2*rows*(j+1)]
		line = grid.RadialLine(line[:0], j)
		lineTex = grid.RadialLineTex(lineTex[:0], j)
		if !slices.Equal(chunk, gsurf.Mirror(nil, line)) {
			t.Fatalf("radial line %d not mirrored in place", j)
		}
		if !slices.Equal(chunkTex, gsurf.Mirror(nil, lineTex)) {
			t.Fatalf("radial line %d texcoords not mirrored in place", j)
		}
		for i := 0; i < rows; i++ {
			if line[i] != grid.Circle(i)[j] {
				t.Fatalf("radial line %d is not the transpose of circle %d", j, i)
			}
		}
	}
	for i := 0; i < rows; i++ {
		chunk := circPos[2*cols*i : 2*cols*(i+1)]
		chunkTex := circTex[2*cols*i : 2*cols*(i+1)]
		if !slices.Equal(chunk, gsurf.Mirror(nil, grid.Circle(i))) {
			t.Fatalf("circle %d not mirrored in place", i)
		}
		if !slices.Equal(chunkTex, gsurf.Mirror(nil, grid.CircleTex(i))) {
			t.Fatalf("circle %d texcoords not mirrored in place", i)
		}
		for k := range chunk {
			if chunk[k] != chunk[len(chunk)-1-k] {
				t.Fatalf("circle %d breaks mirror symmetry at %d", i, k)
			}
		}
	}
}

// The v coordinate is computed as (B/2)·π, which is probably meant to be B/(2π).
// This test pins the current behavior; a maintainer changing the formula must update it.
func TestTexCoordV(t *testing.T) {
	cfg := gsurf.DefaultConfig()
	grid, err := gsurf.Sample(cfg)
	if err != nil {
		t.Fatal(err)
	}
	angles := cfg.AngularSamples()
	tex := grid.CircleTex(3)
	var vmax float32
	for j, B := range angles {
		want := float32(B / 2 * math.Pi)
		if tex[j].Y != want {
			t.Fatalf("sample %d: v=%g, want (B/2)·π=%g", j, tex[j].Y, want)
		}
		vmax = max(vmax, tex[j].Y)
	}
	if vmax <= 1 {
		t.Errorf("v is expected to exceed 1 with the (B/2)·π formula, got max %g", vmax)
	}
	t.Logf("v spans [0, %g]; B/(2π) would span [0, 1]", vmax)
}

func TestBounds(t *testing.T) {
	cfg := gsurf.DefaultConfig()
	mesh, err := gsurf.Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	const tol = 1e-3
	bb := mesh.Bounds()
	rmax := float32(cfg.RadialSamples()[len(cfg.RadialSamples())-1])
	if math.Abs(float64(bb.Max.X-rmax)) > tol || math.Abs(float64(bb.Min.X+rmax)) > tol {
		t.Errorf("unexpected X bounds %v for largest radius %g", bb, rmax)
	}
	if bb.Max.Z > float32(cfg.A)+tol || bb.Min.Z < -float32(cfg.A)-tol {
		t.Errorf("height bounds %v exceed amplitude", bb)
	}
	if (gsurf.Mesh{}).Bounds() != (ms3.Box{}) {
		t.Error("empty mesh should have zero bounds")
	}
}

func TestValidate(t *testing.T) {
	nan := math.NaN()
	for _, test := range []struct {
		name string
		mod  func(*gsurf.Config)
	}{
		{"zero radius unit", func(c *gsurf.Config) { c.R = 0 }},
		{"nan amplitude", func(c *gsurf.Config) { c.A = nan }},
		{"inf frequency", func(c *gsurf.Config) { c.N = math.Inf(1) }},
		{"zero radial bound", func(c *gsurf.Config) { c.RMax = 0 }},
		{"negative angle bound", func(c *gsurf.Config) { c.AngleMax = -1 }},
		{"zero radial step", func(c *gsurf.Config) { c.RadialStep = 0 }},
		{"negative angular step", func(c *gsurf.Config) { c.AngularStep = -math.Pi / 700 }},
		{"radial step below rounding", func(c *gsurf.Config) { c.RadialStep = math.Pi / 1e18 }},
		{"angular step below rounding", func(c *gsurf.Config) { c.AngularStep = math.Pi / 1e18 }},
		{"subnormal radial step", func(c *gsurf.Config) { c.RadialStep = 5e-324 }},
		{"too many samples", func(c *gsurf.Config) {
			c.RadialStep = c.RMax / 3000
			c.AngularStep = c.AngleMax / 3000
		}},
	} {
		cfg := gsurf.DefaultConfig()
		test.mod(&cfg)
		if cfg.Validate() == nil {
			t.Errorf("%s: expected validation error", test.name)
		}
		_, err := gsurf.Generate(cfg)
		if err == nil {
			t.Errorf("%s: expected Generate error", test.name)
		}
	}
	if err := gsurf.DefaultConfig().Validate(); err != nil {
		t.Error(err)
	}
	fine := gsurf.DefaultConfig()
	fine.AngularStep = fine.AngleMax / 100000
	if err := fine.Validate(); err != nil {
		t.Errorf("fine angular sampling should be accepted: %v", err)
	}
	var bad gsurf.Config
	err := bad.Validate()
	if err == nil || errors.Is(err, gsurf.ErrRaggedGrid) {
		t.Errorf("zero config should fail validation, got %v", err)
	}
}
