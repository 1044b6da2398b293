package gsurf

import (
	"errors"
	"fmt"
	"math"
)

// ErrRaggedGrid is returned when circles of a sampled surface do not share
// the same number of angular samples and therefore cannot be transposed into radial lines.
var ErrRaggedGrid = errors.New("circles have unequal sample counts")

// maxGridSamples bounds the number of circle samples of a surface. The mesh holds four vertices per sample.
const maxGridSamples = 1 << 22

// Config holds the parameters of the surface
//
//	x = r·cos(B)
//	y = r·sin(B)
//	z = A·cos(N·π·r/R)
//
// sampled for r in [0, RMax] and B in [0, AngleMax]. Fields are float64 so sample
// positions accumulate identically to the reference surface; outputs are float32.
type Config struct {
	// R is the radius unit dividing r in the height term.
	R float64
	// A is the amplitude of the height term.
	A float64
	// N is the frequency multiplier of the height term.
	N float64
	// RMax is the inclusive radial bound. Texture u coordinate is r/RMax.
	RMax float64
	// AngleMax is the inclusive angular bound, 2π for a full turn.
	AngleMax float64
	// RadialStep is added to r between circles.
	RadialStep float64
	// AngularStep is added to B between samples of a circle.
	AngularStep float64
}

// DefaultConfig returns the reference surface: R=a=n=1, r in [0,7] every π/8, B in [0,2π] every π/700.
func DefaultConfig() Config {
	return Config{
		R:           1,
		A:           1,
		N:           1,
		RMax:        7,
		AngleMax:    2 * math.Pi,
		RadialStep:  math.Pi / 8,
		AngularStep: math.Pi / 700,
	}
}

// Validate returns a non-nil error if the configuration can not produce a surface.
// All problems found are joined into the returned error.
func (cfg Config) Validate() error {
	var errs []error
	bad := func(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
	if bad(cfg.R) || cfg.R == 0 {
		errs = append(errs, fmt.Errorf("radius unit R must be finite and nonzero, got %g", cfg.R))
	}
	if bad(cfg.A) {
		errs = append(errs, fmt.Errorf("amplitude A must be finite, got %g", cfg.A))
	}
	if bad(cfg.N) {
		errs = append(errs, fmt.Errorf("frequency N must be finite, got %g", cfg.N))
	}
	if bad(cfg.RMax) || cfg.RMax <= 0 {
		errs = append(errs, fmt.Errorf("radial bound RMax must be finite and positive, got %g", cfg.RMax))
	}
	if bad(cfg.AngleMax) || cfg.AngleMax < 0 {
		errs = append(errs, fmt.Errorf("angular bound AngleMax must be finite and non-negative, got %g", cfg.AngleMax))
	}
	if bad(cfg.RadialStep) || cfg.RadialStep <= 0 {
		errs = append(errs, fmt.Errorf("RadialStep must be finite and positive, got %g", cfg.RadialStep))
	}
	if bad(cfg.AngularStep) || cfg.AngularStep <= 0 {
		errs = append(errs, fmt.Errorf("AngularStep must be finite and positive, got %g", cfg.AngularStep))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	// Bounding the count also keeps steps far above the rounding error of the running sum,
	// which would otherwise stall accumulation below the bound.
	nr := math.Floor(cfg.RMax/cfg.RadialStep) + 1
	nb := math.Floor(cfg.AngleMax/cfg.AngularStep) + 1
	if nr*nb > maxGridSamples {
		return fmt.Errorf("surface of about %.3g circles by %.3g samples exceeds limit of %d samples", nr, nb, maxGridSamples)
	}
	return nil
}

// RadialSamples returns the radii of every circle of the surface in generation order.
// Radii are accumulated additively so floating point drift decides whether RMax itself is sampled.
func (cfg Config) RadialSamples() []float64 {
	return accumulate(nil, cfg.RadialStep, cfg.RMax)
}

// AngularSamples returns the angles sampled along every circle of the surface.
func (cfg Config) AngularSamples() []float64 {
	return accumulate(nil, cfg.AngularStep, cfg.AngleMax)
}

// accumulate appends 0, step, step+step, ... while the running sum stays <= limit.
func accumulate(dst []float64, step, limit float64) []float64 {
	for v := 0.0; v <= limit; v += step {
		dst = append(dst, v)
	}
	return dst
}

func (cfg Config) x(r, B float64) float64 { return r * math.Cos(B) }
func (cfg Config) y(r, B float64) float64 { return r * math.Sin(B) }
func (cfg Config) z(r float64) float64 {
	return cfg.A * math.Cos((cfg.N*math.Pi*r)/cfg.R)
}

// texUV returns the texture coordinate of sample (r,B).
// v is (B/2)·π and not B/(2π); it is not normalized to [0,1] like u.
func (cfg Config) texUV(r, B float64) (u, v float64) {
	u = r / cfg.RMax
	v = B / 2 * math.Pi
	return u, v
}
