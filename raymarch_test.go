package raymarch_test

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/raymarch"
)

func randVec(rng *rand.Rand, span float32) ms3.Vec {
	return ms3.Vec{
		X: span * (2*rng.Float32() - 1),
		Y: span * (2*rng.Float32() - 1),
		Z: span * (2*rng.Float32() - 1),
	}
}

func TestSphereSDF(t *testing.T) {
	var bld raymarch.Builder
	center := ms3.Vec{X: 3, Y: -1, Z: 2}
	const r = 1.5
	s := bld.NewSphere(center, r)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		p := ms3.Add(center, randVec(rng, 4))
		want := ms3.Norm(ms3.Sub(p, center)) - r
		got := s.SDF(p)
		if math32.Abs(got-want) > 1e-5 {
			t.Fatalf("sphere sdf at %+v: got %g want %g", p, got, want)
		}
		if inside := raymarch.Inside(s, p); inside != (want <= 0) {
			t.Errorf("sphere membership at %+v: got %v, sdf %g", p, inside, want)
		}
	}
	// Boundary point.
	onSurf := ms3.Add(center, ms3.Vec{X: r})
	if d := s.SDF(onSurf); math32.Abs(d) > 1e-6 {
		t.Errorf("sphere boundary sdf = %g, want ~0", d)
	}
}

// boxRefDistance is a brute-force reference: clamp-to-box for exterior
// points, nearest face for interior points.
func boxRefDistance(c, dims, p ms3.Vec) float32 {
	h := ms3.Scale(0.5, dims)
	q := ms3.Sub(ms3.AbsElem(ms3.Sub(p, c)), h)
	if q.X <= 0 && q.Y <= 0 && q.Z <= 0 {
		return math32.Max(q.X, math32.Max(q.Y, q.Z))
	}
	clamped := ms3.ClampElem(p, ms3.Sub(c, h), ms3.Add(c, h))
	return ms3.Norm(ms3.Sub(p, clamped))
}

func TestBoxSDF(t *testing.T) {
	var bld raymarch.Builder
	center := ms3.Vec{X: 1, Y: 2, Z: -1}
	dims := ms3.Vec{X: 2, Y: 1, Z: 3}
	b := bld.NewBox(center, dims)
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 2000; i++ {
		p := ms3.Add(center, randVec(rng, 3))
		want := boxRefDistance(center, dims, p)
		got := b.SDF(p)
		if math32.Abs(got-want) > 1e-5 {
			t.Fatalf("box sdf at %+v: got %g want %g", p, got, want)
		}
		if raymarch.Inside(b, p) != (want <= 0) {
			t.Errorf("box membership disagrees with sdf sign at %+v (d=%g)", p, want)
		}
	}
}

// The marcher depends on the SDF never overestimating the distance to
// the nearest surface. Sample pairs of points and check the field obeys
// the Lipschitz-1 bound |sdf(a)-sdf(b)| <= |a-b|.
func TestSDFLipschitz(t *testing.T) {
	var bld raymarch.Builder
	shapes := []raymarch.Shape{
		bld.NewSphere(ms3.Vec{X: 1}, 1.2),
		bld.NewBox(ms3.Vec{Y: -1}, ms3.Vec{X: 2, Y: 3, Z: 1}),
	}
	rng := rand.New(rand.NewSource(3))
	for _, s := range shapes {
		for i := 0; i < 2000; i++ {
			a := randVec(rng, 4)
			b := randVec(rng, 4)
			lhs := math32.Abs(s.SDF(a) - s.SDF(b))
			rhs := ms3.Norm(ms3.Sub(a, b))
			if lhs > rhs+1e-4 {
				t.Fatalf("lipschitz violation: |f(a)-f(b)|=%g > |a-b|=%g", lhs, rhs)
			}
		}
	}
}

func TestBuilderErrors(t *testing.T) {
	var bld raymarch.Builder
	bld.SetFlags(raymarch.FlagNoPanic)
	s := bld.NewSphere(ms3.Vec{}, -1)
	if s == nil {
		t.Error("expecting non-nil shape")
	}
	if bld.Err() == nil {
		t.Error("expecting error for negative sphere radius")
	}
	bld.ClearErrors()
	if bld.Err() != nil {
		t.Error("expected builder errors to be cleared")
	}
	bld.NewBox(ms3.Vec{}, ms3.Vec{X: 1, Y: 0, Z: 1})
	if bld.Err() == nil {
		t.Error("expecting error for zero box dimension")
	}
	bld.ClearErrors()
	bld.NewLight(ms3.Vec{}, ms3.Vec{X: -1})
	if bld.Err() == nil {
		t.Error("expecting error for negative light intensity")
	}
}

func TestBuilderPanicsByDefault(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on invalid dimension without FlagNoPanic")
		}
	}()
	var bld raymarch.Builder
	bld.NewSphere(ms3.Vec{}, 0)
}

func TestMaterialValidation(t *testing.T) {
	var bld raymarch.Builder
	bld.SetFlags(raymarch.FlagNoPanic)
	gray := ms3.Vec{X: 0.5, Y: 0.5, Z: 0.5}
	m := bld.NewMaterial(gray, gray, gray, 10)
	if err := bld.Err(); err != nil {
		t.Fatalf("valid material rejected: %v", err)
	}
	if m.Shininess != 10 {
		t.Errorf("shininess not stored: %g", m.Shininess)
	}
	bad := []struct {
		name                       string
		ambient, diffuse, specular ms3.Vec
		shininess                  float32
	}{
		{"channel above 1", ms3.Vec{X: 1.5}, gray, gray, 1},
		{"negative channel", gray, ms3.Vec{Y: -0.1}, gray, 1},
		{"specular above 1", gray, gray, ms3.Vec{Z: 2}, 1},
		{"negative shininess", gray, gray, gray, -1},
	}
	for _, tc := range bad {
		bld.ClearErrors()
		bld.NewMaterial(tc.ambient, tc.diffuse, tc.specular, tc.shininess)
		if bld.Err() == nil {
			t.Errorf("%s: expected construction error", tc.name)
		}
	}
}

func testScene(t *testing.T) (*raymarch.Scene, []raymarch.Solid) {
	t.Helper()
	var bld raymarch.Builder
	bld.SetFlags(raymarch.FlagNoPanic)
	white := bld.NewMaterial(ms3.Vec{}, ms3.Vec{X: 1, Y: 1, Z: 1}, ms3.Vec{}, 0)
	solids := []raymarch.Solid{
		{Shape: bld.NewSphere(ms3.Vec{X: 3}, 1.5), Material: white},
		{Shape: bld.NewBox(ms3.Vec{X: -3}, ms3.Vec{X: 2, Y: 2, Z: 2}), Material: white},
	}
	lights := []raymarch.Light{
		bld.NewLight(ms3.Vec{X: 2, Y: 3}, ms3.Vec{X: 2, Y: 2, Z: 2}),
	}
	bounds := ms3.NewCenteredBox(ms3.Vec{}, ms3.Vec{X: 20, Y: 20, Z: 20})
	scene := bld.NewScene(bounds, ms3.Vec{}, solids, lights)
	if err := bld.Err(); err != nil {
		t.Fatal(err)
	}
	return scene, solids
}

func TestSceneComposition(t *testing.T) {
	scene, solids := testScene(t)
	rng := rand.New(rand.NewSource(4))
	probes := []ms3.Vec{
		{X: 3},            // inside sphere
		{X: -3},           // inside box
		{X: 3, Y: 1.6},    // just outside sphere
		{X: -3, Y: 1.1},   // just outside box
		{},                // between the two
	}
	for i := 0; i < 500; i++ {
		probes = append(probes, randVec(rng, 8))
	}
	for _, p := range probes {
		want := float32(math32.MaxFloat32)
		for _, s := range solids {
			want = math32.Min(want, s.Shape.SDF(p))
		}
		if got := scene.Evaluate(p); got != want {
			t.Fatalf("scene sdf at %+v: got %g want min %g", p, got, want)
		}
	}
}

func TestSceneLightField(t *testing.T) {
	scene, _ := testScene(t)
	lightPos := ms3.Vec{X: 2, Y: 3}
	// Next to the light the light-aware field must be dominated by the
	// light's own distance.
	p := ms3.Add(lightPos, ms3.Vec{X: 0.1})
	if d := scene.EvaluateWithLights(p); math32.Abs(d-0.1) > 1e-6 {
		t.Errorf("light-aware sdf near light = %g, want 0.1", d)
	}
	if d := scene.Evaluate(p); d < 1 {
		t.Errorf("solid-only field should not see the light, got %g", d)
	}
	l, d := scene.NearestLight(p)
	if l == nil || math32.Abs(d-0.1) > 1e-6 {
		t.Errorf("NearestLight: got %+v at %g", l, d)
	}
}

func TestSceneNearest(t *testing.T) {
	scene, solids := testScene(t)
	near, d := scene.Nearest(ms3.Vec{X: 3.1})
	if near == nil || near.Shape != solids[0].Shape {
		t.Fatal("expected the sphere to be nearest")
	}
	if d >= 0 {
		t.Errorf("inside the sphere, distance %g should be negative", d)
	}
	near, _ = scene.Nearest(ms3.Vec{X: -3})
	if near == nil || near.Shape != solids[1].Shape {
		t.Fatal("expected the box to be nearest")
	}
}

func TestSceneNearestTieBreak(t *testing.T) {
	var bld raymarch.Builder
	m := bld.NewMaterial(ms3.Vec{}, ms3.Vec{X: 1, Y: 1, Z: 1}, ms3.Vec{}, 0)
	// Two identical spheres: the first in scene order wins the argmin.
	solids := []raymarch.Solid{
		{Shape: bld.NewSphere(ms3.Vec{X: 1}, 1), Material: m},
		{Shape: bld.NewSphere(ms3.Vec{X: 1}, 1), Material: m},
	}
	scene := bld.NewScene(ms3.NewCenteredBox(ms3.Vec{}, ms3.Vec{X: 10, Y: 10, Z: 10}), ms3.Vec{}, solids, nil)
	near, _ := scene.Nearest(ms3.Vec{})
	if near.Shape != solids[0].Shape {
		t.Error("tie must resolve to the first minimal solid")
	}
}

func TestNormalSphere(t *testing.T) {
	scene, _ := testScene(t)
	center := ms3.Vec{X: 3}
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		radial := ms3.Unit(randVec(rng, 1))
		p := ms3.Add(center, ms3.Scale(1.5, radial))
		n := scene.Normal(p, 0)
		if ms3.Norm(n) == 0 {
			t.Fatalf("zero normal at %+v", p)
		}
		if cosang := ms3.Dot(n, radial); cosang < 0.999 {
			t.Errorf("normal at %+v deviates from radial direction: cos=%g", p, cosang)
		}
	}
}

func TestSceneContains(t *testing.T) {
	scene, _ := testScene(t)
	if !scene.Contains(ms3.Vec{}) {
		t.Error("origin should be inside bounds")
	}
	if scene.Contains(ms3.Vec{X: 11}) {
		t.Error("point past bounds max should be outside")
	}
}

func TestSceneValidation(t *testing.T) {
	var bld raymarch.Builder
	bld.SetFlags(raymarch.FlagNoPanic)
	bounds := ms3.NewCenteredBox(ms3.Vec{}, ms3.Vec{X: 1, Y: 1, Z: 1})
	bld.NewScene(bounds, ms3.Vec{X: 2}, nil, nil)
	if bld.Err() == nil {
		t.Error("expected error for out of range ambient")
	}
	bld.ClearErrors()
	bld.NewScene(ms3.Box{}, ms3.Vec{}, nil, nil)
	if bld.Err() == nil {
		t.Error("expected error for empty bounds")
	}
	bld.ClearErrors()
	bld.NewScene(bounds, ms3.Vec{}, []raymarch.Solid{{}}, nil)
	if bld.Err() == nil {
		t.Error("expected error for nil solid shape")
	}
}
