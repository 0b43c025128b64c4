package render

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/raymarch"
)

// background is the color of rays that leave the scene without hitting
// a surface.
var background = ms3.Vec{}

// march walks a ray from origin along unit direction dir through the
// scene field. Each step advances by the scene distance at the current
// position, which cannot overshoot any surface. The walk ends in a hit
// when the distance falls below the configured limit, or in a miss when
// the position leaves the scene bounds. reflectionsLeft is the
// remaining bounce budget; a negative budget is the recursion base case
// and returns the background without marching.
func (r *Renderer) march(origin, dir ms3.Vec, reflectionsLeft int) ms3.Vec {
	if reflectionsLeft < 0 {
		return background
	}
	pos := origin
	for r.scene.Contains(pos) {
		d := r.scene.Evaluate(pos)
		if d < r.cfg.DistanceLimit {
			return r.shade(pos, dir, reflectionsLeft)
		}
		pos = ms3.Add(pos, ms3.Scale(d, dir))
	}
	return background
}

// shade computes the radiance at hit position pos: the nearest solid's
// diffuse reflectance modulating the sum of per-light shadow-ray
// contributions and the scene ambient. The hit position is accepted as
// on-surface without refinement.
func (r *Renderer) shade(pos, dir ms3.Vec, reflectionsLeft int) ms3.Vec {
	n := r.scene.Normal(pos, 0)
	solid, _ := r.scene.Nearest(pos)
	if solid == nil {
		return background
	}
	incoming := r.scene.Ambient()
	for _, light := range r.scene.Lights() {
		incoming = ms3.Add(incoming, r.shadow(pos, n, light))
	}
	// Reflection is an inert extension point: the bounce budget only
	// feeds the recursion base case and the bounced contribution stays
	// black. A future bounce would march Reflect(dir, n) with
	// reflectionsLeft-1.
	return ms3.MulElem(solid.Material.Diffuse, incoming)
}

// shadow casts a secondary ray from hit position pos toward light and
// returns the light's direct contribution, black when occluded. The ray
// starts offset off the surface to avoid re-detecting the originating
// solid, and marches the light-aware field min(scene, light) with a
// tighter stop epsilon than primary rays. At the stop point the smaller
// of the two fields decides whether the ray reached the light or an
// occluder; leaving the scene bounds counts as no contribution.
func (r *Renderer) shadow(pos, n ms3.Vec, light raymarch.Light) ms3.Vec {
	toLight := ms3.Sub(light.Position, pos)
	dist := ms3.Norm(toLight)
	if dist == 0 {
		return ms3.Vec{}
	}
	dir := ms3.Scale(1/dist, toLight)
	p := ms3.Add(pos, ms3.Scale(5*r.cfg.DistanceLimit, dir))
	stop := r.cfg.DistanceLimit / 5
	for r.scene.Contains(p) {
		dScene := r.scene.Evaluate(p)
		dLight := light.SDF(p)
		d := math32.Min(dScene, dLight)
		if d < stop {
			if dLight > dScene {
				// An occluding solid was reached first.
				return ms3.Vec{}
			}
			lambert := math32.Max(0, ms3.Dot(dir, n))
			att := float32(1)
			if r.cfg.Attenuation != nil {
				att = r.cfg.Attenuation(dist)
			}
			return ms3.Scale(lambert*att, light.Intensity)
		}
		p = ms3.Add(p, ms3.Scale(d, dir))
	}
	return ms3.Vec{}
}

// Reflect returns dir mirrored about unit normal n. It is the direction
// a reflective bounce would march and exists as the documented
// extension point for reflection; the fixed pipeline never calls it.
func Reflect(dir, n ms3.Vec) ms3.Vec {
	return ms3.Sub(dir, ms3.Scale(2*ms3.Dot(dir, n), n))
}
