package raymarch

import (
	"github.com/soypat/geometry/ms3"
)

// Solid pairs a Shape with the Material applied when a ray hits it.
// The material plays no part in distance queries.
type Solid struct {
	Shape    Shape
	Material Material
}

// Light is a point light source. It participates in the distance-field
// algebra as a zero-radius target so shadow rays can march toward it.
type Light struct {
	Position  ms3.Vec
	Intensity ms3.Vec
}

// NewLight creates a point light at pos radiating intensity. Intensity
// channels may exceed 1 for "hot" lights.
func (bld *Builder) NewLight(pos, intensity ms3.Vec) Light {
	if intensity.X < 0 || intensity.Y < 0 || intensity.Z < 0 {
		bld.buildErrorf("negative light intensity channel: %+v", intensity)
	}
	return Light{Position: pos, Intensity: intensity}
}

// SDF returns the distance from p to the light's point location.
func (l Light) SDF(p ms3.Vec) float32 {
	return ms3.Norm(ms3.Sub(p, l.Position))
}

// Scene aggregates solids and lights inside a bounded region of space.
// A Scene is built once and must not be mutated while rays march it;
// all methods are safe for concurrent use after construction.
type Scene struct {
	bounds  ms3.Box
	solids  []Solid
	lights  []Light
	ambient ms3.Vec
}

// NewScene creates a Scene spanning bounds with ambient background
// light. The solid and light slices are copied so later mutation of the
// arguments cannot alias into a render in flight.
func (bld *Builder) NewScene(bounds ms3.Box, ambient ms3.Vec, solids []Solid, lights []Light) *Scene {
	sz := bounds.Size()
	if sz.X <= 0 || sz.Y <= 0 || sz.Z <= 0 {
		bld.buildErrorf("zero or negative scene bounds dimension")
	}
	if !inUnit(ambient) {
		bld.buildErrorf("scene ambient channel outside [0,1]: %+v", ambient)
	}
	for i, s := range solids {
		if s.Shape == nil {
			bld.buildErrorf("solid %d has nil shape", i)
		}
	}
	return &Scene{
		bounds:  bounds,
		solids:  append([]Solid{}, solids...),
		lights:  append([]Light{}, lights...),
		ambient: ambient,
	}
}

// Bounds returns the region within which marching is permitted.
func (s *Scene) Bounds() ms3.Box { return s.bounds }

// Ambient returns the scene's ambient light color.
func (s *Scene) Ambient() ms3.Vec { return s.ambient }

// Lights returns the scene's light sources. The returned slice is the
// scene's own storage and must not be modified.
func (s *Scene) Lights() []Light { return s.lights }

// Contains reports whether p lies within the scene bounds.
func (s *Scene) Contains(p ms3.Vec) bool {
	bb := s.bounds
	return p.X >= bb.Min.X && p.X <= bb.Max.X &&
		p.Y >= bb.Min.Y && p.Y <= bb.Max.Y &&
		p.Z >= bb.Min.Z && p.Z <= bb.Max.Z
}

// Evaluate returns the scene's signed distance at p: the minimum over
// all solid SDFs. This is the field primary rays march.
func (s *Scene) Evaluate(p ms3.Vec) float32 {
	d := float32(largenum)
	for i := range s.solids {
		d = minf(d, s.solids[i].Shape.SDF(p))
	}
	return d
}

// EvaluateWithLights returns the minimum distance over solids and light
// positions. Shadow rays march this light-aware field so they can
// terminate upon reaching their target.
func (s *Scene) EvaluateWithLights(p ms3.Vec) float32 {
	d := s.Evaluate(p)
	for i := range s.lights {
		d = minf(d, s.lights[i].SDF(p))
	}
	return d
}

// Nearest returns the solid minimizing the SDF at p and its distance.
// Ties go to the first minimal solid in scene order. Returns nil for a
// scene without solids.
func (s *Scene) Nearest(p ms3.Vec) (*Solid, float32) {
	var nearest *Solid
	d := float32(largenum)
	for i := range s.solids {
		di := s.solids[i].Shape.SDF(p)
		if di < d {
			d = di
			nearest = &s.solids[i]
		}
	}
	return nearest, d
}

// NearestLight returns the light closest to p and its distance, nil for
// a scene without lights.
func (s *Scene) NearestLight(p ms3.Vec) (*Light, float32) {
	var nearest *Light
	d := float32(largenum)
	for i := range s.lights {
		di := s.lights[i].SDF(p)
		if di < d {
			d = di
			nearest = &s.lights[i]
		}
	}
	return nearest, d
}

// Normal estimates the surface normal of the scene field at p with a
// central-difference gradient probed step apart on each axis. A
// non-positive step selects [DefaultNormalStep]. Gradient components
// below the conditioning tolerance yield the zero vector rather than a
// normalized garbage direction.
func (s *Scene) Normal(p ms3.Vec, step float32) ms3.Vec {
	if step <= 0 {
		step = DefaultNormalStep
	}
	h := step * 0.5
	var grad ms3.Vec
	grad.X = s.Evaluate(ms3.Add(p, ms3.Vec{X: h})) - s.Evaluate(ms3.Sub(p, ms3.Vec{X: h}))
	grad.Y = s.Evaluate(ms3.Add(p, ms3.Vec{Y: h})) - s.Evaluate(ms3.Sub(p, ms3.Vec{Y: h}))
	grad.Z = s.Evaluate(ms3.Add(p, ms3.Vec{Z: h})) - s.Evaluate(ms3.Sub(p, ms3.Vec{Z: h}))
	if ms3.Norm(grad) < epstol {
		return ms3.Vec{}
	}
	return ms3.Unit(grad)
}
