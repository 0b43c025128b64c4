// Command sdfview opens a desktop window displaying a live render of a
// demo distance-field scene with a light orbiting the sphere. Each
// frame builds a fresh read-only scene and re-renders it at low
// resolution; the framebuffer is upscaled for display.
package main

import (
	"image"
	"image/color"
	"log"

	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/raymarch"
	"github.com/soypat/raymarch/raymarchaux"
	"github.com/soypat/raymarch/render"
	xdraw "golang.org/x/image/draw"
)

const (
	renderW = 160
	renderH = 120
	upscale = 4
)

func main() {
	g := &viewer{
		conv: raymarchaux.ColorConversionReinhard(),
		big:  image.NewRGBA(image.Rect(0, 0, renderW*upscale, renderH*upscale)),
	}
	ebiten.SetWindowTitle("sdfview")
	ebiten.SetWindowSize(renderW*upscale, renderH*upscale)
	ebiten.SetTPS(30)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

type viewer struct {
	angle float32
	conv  func(ms3.Vec) color.Color
	big   *image.RGBA
	tex   *ebiten.Image
}

func (g *viewer) Update() error {
	g.angle += 0.03
	return nil
}

func (g *viewer) Draw(screen *ebiten.Image) {
	fb, err := renderFrame(g.angle)
	if err != nil {
		log.Fatal(err)
	}
	small := raymarchaux.Image(fb, g.conv)
	xdraw.NearestNeighbor.Scale(g.big, g.big.Bounds(), small, small.Bounds(), xdraw.Src, nil)
	if g.tex == nil {
		g.tex = ebiten.NewImage(g.big.Bounds().Dx(), g.big.Bounds().Dy())
	}
	g.tex.ReplacePixels(g.big.Pix)
	screen.DrawImage(g.tex, nil)
}

func (g *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return renderW * upscale, renderH * upscale
}

// renderFrame builds the demo scene with the key light at orbit angle
// and renders one frame.
func renderFrame(angle float32) (*render.Framebuffer, error) {
	var bld raymarch.Builder
	bld.SetFlags(raymarch.FlagNoPanic)

	ivory := bld.NewMaterial(
		ms3.Vec{X: 0.1, Y: 0.1, Z: 0.1},
		ms3.Vec{X: 0.9, Y: 0.85, Z: 0.75},
		ms3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, 32,
	)
	teal := bld.NewMaterial(
		ms3.Vec{X: 0.05, Y: 0.1, Z: 0.1},
		ms3.Vec{X: 0.3, Y: 0.6, Z: 0.55},
		ms3.Vec{X: 0.2, Y: 0.2, Z: 0.2}, 8,
	)
	solids := []raymarch.Solid{
		{Shape: bld.NewSphere(ms3.Vec{X: 3, Y: 0, Z: 0}, 1.5), Material: ivory},
		{Shape: bld.NewBox(ms3.Vec{X: 3, Y: -2.2, Z: 0}, ms3.Vec{X: 8, Y: 1, Z: 8}), Material: teal},
	}
	sin, cos := math32.Sincos(angle)
	lights := []raymarch.Light{
		bld.NewLight(ms3.Vec{X: 3 + 3*cos, Y: 3, Z: 3 * sin}, ms3.Vec{X: 2, Y: 2, Z: 2}),
	}
	bounds := ms3.NewCenteredBox(ms3.Vec{X: 2, Y: 0, Z: 0}, ms3.Vec{X: 16, Y: 12, Z: 16})
	ambient := ms3.Vec{X: 0.05, Y: 0.05, Z: 0.05}
	scene := bld.NewScene(bounds, ambient, solids, lights)
	if err := bld.Err(); err != nil {
		return nil, err
	}

	cam := render.NewCamera(
		ms3.Vec{X: -1, Y: 0, Z: 0},
		ms3.Vec{X: 0, Y: 0, Z: 0},
		ms3.Vec{Z: 1.2},
		ms3.Vec{Y: -0.9},
	)
	r, err := render.New(scene, cam, render.DefaultConfig(renderW, renderH))
	if err != nil {
		return nil, err
	}
	return r.Render(), nil
}
