package raymarch

import (
	"github.com/soypat/geometry/ms3"
)

// Shape is a solid region of space described by its signed distance
// function. SDF must be continuous, negative inside the shape, positive
// outside and never overestimate the distance to the nearest surface
// (Lipschitz constant 1). The marching loops rely on that bound to
// advance rays without overshooting.
type Shape interface {
	// SDF returns the signed distance from p to the shape's surface.
	SDF(p ms3.Vec) float32
	// Bounds returns a box containing the whole shape.
	Bounds() ms3.Box
}

// insider is implemented by shapes with a membership test cheaper than
// evaluating their full SDF.
type insider interface {
	Inside(p ms3.Vec) bool
}

// Inside reports whether p lies inside or on the surface of s. Shapes
// with a fast membership test are queried directly, all others fall
// back to the sign of the SDF.
func Inside(s Shape, p ms3.Vec) bool {
	if fast, ok := s.(insider); ok {
		return fast.Inside(p)
	}
	return s.SDF(p) <= 0
}

type sphere struct {
	c ms3.Vec
	r float32
}

// NewSphere creates a sphere centered at c of radius r.
func (bld *Builder) NewSphere(c ms3.Vec, r float32) Shape {
	if r <= 0 {
		bld.buildErrorf("zero or negative sphere radius")
	}
	return &sphere{c: c, r: r}
}

func (s *sphere) SDF(p ms3.Vec) float32 {
	return ms3.Norm(ms3.Sub(p, s.c)) - s.r
}

func (s *sphere) Bounds() ms3.Box {
	rr := ms3.Vec{X: s.r, Y: s.r, Z: s.r}
	return ms3.Box{Min: ms3.Sub(s.c, rr), Max: ms3.Add(s.c, rr)}
}

type box struct {
	c    ms3.Vec
	dims ms3.Vec
}

// NewBox creates an axis-aligned box centered at c with x,y,z full
// dimensions given by dims.
func (bld *Builder) NewBox(c, dims ms3.Vec) Shape {
	if dims.X <= 0 || dims.Y <= 0 || dims.Z <= 0 {
		bld.buildErrorf("zero or negative box dimension")
	}
	return &box{c: c, dims: dims}
}

func (b *box) SDF(p ms3.Vec) float32 {
	d := ms3.Scale(0.5, b.dims)
	q := ms3.Sub(ms3.AbsElem(ms3.Sub(p, b.c)), d)
	return ms3.Norm(ms3.MaxElem(q, ms3.Vec{})) + minf(maxf(q.X, maxf(q.Y, q.Z)), 0.0)
}

// Inside is a per-axis bound check, cheaper than the SDF.
func (b *box) Inside(p ms3.Vec) bool {
	q := ms3.Sub(ms3.AbsElem(ms3.Sub(p, b.c)), ms3.Scale(0.5, b.dims))
	return q.X <= 0 && q.Y <= 0 && q.Z <= 0
}

func (b *box) Bounds() ms3.Box {
	return ms3.NewCenteredBox(b.c, b.dims)
}
