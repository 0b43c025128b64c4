// Command sdfrender renders a demo distance-field scene to a PNG file.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/raymarch"
	"github.com/soypat/raymarch/raymarchaux"
	"github.com/soypat/raymarch/render"
)

func main() {
	var (
		out     = flag.String("o", "render.png", "output PNG filename")
		width   = flag.Int("width", 640, "image width in pixels")
		height  = flag.Int("height", 480, "image height in pixels")
		workers = flag.Int("workers", 0, "render workers, 0 for all CPUs")
	)
	flag.Parse()

	scene, cam, err := demoScene()
	if err != nil {
		log.Fatal("building scene: ", err)
	}
	cfg := render.DefaultConfig(*width, *height)
	cfg.Workers = *workers
	r, err := render.New(scene, cam, cfg)
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	fb := r.Render()
	log.Printf("rendered %dx%d in %s", *width, *height, time.Since(start))

	err = raymarchaux.RenderPNGFile(*out, fb, raymarchaux.ColorConversionReinhard())
	if err != nil {
		log.Fatal(err)
	}
	log.Print("wrote ", *out)
}

// demoScene is a sphere resting above a box floor, lit by two point
// lights. The camera sits on the -X side looking toward +X.
func demoScene() (*raymarch.Scene, render.Camera, error) {
	var bld raymarch.Builder
	bld.SetFlags(raymarch.FlagNoPanic)

	ivory := bld.NewMaterial(
		ms3.Vec{X: 0.1, Y: 0.1, Z: 0.1},
		ms3.Vec{X: 0.9, Y: 0.85, Z: 0.75},
		ms3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, 32,
	)
	rust := bld.NewMaterial(
		ms3.Vec{X: 0.1, Y: 0.05, Z: 0.05},
		ms3.Vec{X: 0.65, Y: 0.3, Z: 0.2},
		ms3.Vec{X: 0.2, Y: 0.2, Z: 0.2}, 8,
	)
	solids := []raymarch.Solid{
		{Shape: bld.NewSphere(ms3.Vec{X: 3, Y: 0, Z: 0}, 1.5), Material: ivory},
		{Shape: bld.NewBox(ms3.Vec{X: 3, Y: -2.2, Z: 0}, ms3.Vec{X: 8, Y: 1, Z: 8}), Material: rust},
	}
	lights := []raymarch.Light{
		bld.NewLight(ms3.Vec{X: 2, Y: 3, Z: 0}, ms3.Vec{X: 2, Y: 2, Z: 2}),
		bld.NewLight(ms3.Vec{X: 1, Y: 2, Z: -3}, ms3.Vec{X: 0.6, Y: 0.6, Z: 0.8}),
	}
	bounds := ms3.NewCenteredBox(ms3.Vec{X: 2, Y: 0, Z: 0}, ms3.Vec{X: 16, Y: 12, Z: 16})
	ambient := ms3.Vec{X: 0.05, Y: 0.05, Z: 0.05}
	scene := bld.NewScene(bounds, ambient, solids, lights)

	cam := render.NewCamera(
		ms3.Vec{X: -1, Y: 0, Z: 0}, // eye
		ms3.Vec{X: 0, Y: 0, Z: 0},  // plane center
		ms3.Vec{Z: 1.2},            // left to right
		ms3.Vec{Y: -0.9},           // top to bottom
	)
	return scene, cam, bld.Err()
}
