package raymarch

import "github.com/soypat/geometry/ms3"

// Material holds per-solid reflectance coefficients. Colors are RGB
// triples stored as [ms3.Vec] with each channel in [0,1]. The fixed
// shading pipeline modulates incoming light by Diffuse only; Ambient,
// Specular and Shininess are validated and stored for the reflection
// extension point (see render.Reflect).
type Material struct {
	Ambient   ms3.Vec
	Diffuse   ms3.Vec
	Specular  ms3.Vec
	Shininess float32
}

// NewMaterial creates a Material. Channel values outside [0,1] or a
// negative shininess are construction errors.
func (bld *Builder) NewMaterial(ambient, diffuse, specular ms3.Vec, shininess float32) Material {
	if !inUnit(ambient) {
		bld.buildErrorf("material ambient channel outside [0,1]: %+v", ambient)
	}
	if !inUnit(diffuse) {
		bld.buildErrorf("material diffuse channel outside [0,1]: %+v", diffuse)
	}
	if !inUnit(specular) {
		bld.buildErrorf("material specular channel outside [0,1]: %+v", specular)
	}
	if shininess < 0 {
		bld.buildErrorf("negative material shininess %g", shininess)
	}
	return Material{
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: shininess,
	}
}
