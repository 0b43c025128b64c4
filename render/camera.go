// Package render marches rays through raymarch scenes to produce
// shaded framebuffers. Pixels are computed independently and fanned out
// over worker goroutines; the scene is shared read-only.
package render

import (
	"github.com/soypat/geometry/ms3"
)

// Camera describes the eye position and the image plane sampled by the
// renderer. The plane is stored as its top-left corner plus the two
// spanning vectors so a pixel coordinate maps onto it by bilinear
// interpolation.
type Camera struct {
	// Position is the eye point. All primary rays originate here; the
	// image plane only determines their direction.
	Position ms3.Vec
	// PlaneOrigin is the top-left corner of the image plane.
	PlaneOrigin ms3.Vec
	// PlaneU spans the plane left to right.
	PlaneU ms3.Vec
	// PlaneV spans the plane top to bottom.
	PlaneV ms3.Vec
}

// NewCamera creates a Camera at position looking through the image
// plane centered at planeCenter. planeU and planeV are the full
// left-to-right and top-to-bottom extents of the plane.
func NewCamera(position, planeCenter, planeU, planeV ms3.Vec) Camera {
	origin := ms3.Sub(planeCenter, ms3.Add(ms3.Scale(0.5, planeU), ms3.Scale(0.5, planeV)))
	return Camera{
		Position:    position,
		PlaneOrigin: origin,
		PlaneU:      planeU,
		PlaneV:      planeV,
	}
}

// Ray returns the origin and unit direction of the ray through plane
// coordinate (u,v), both in [0,1]: u runs left to right, v top to
// bottom. The origin is always the camera position.
func (c Camera) Ray(u, v float32) (origin, dir ms3.Vec) {
	pt := ms3.Add(c.PlaneOrigin, ms3.Add(ms3.Scale(u, c.PlaneU), ms3.Scale(v, c.PlaneV)))
	return c.Position, ms3.Unit(ms3.Sub(pt, c.Position))
}
