// Package raymarchaux provides auxiliary helpers to get images out of
// rendered framebuffers quickly. Ideally users implement their own
// output conversion since display pipelines vary widely.
package raymarchaux

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/raymarch/render"
)

// Image converts a framebuffer to an RGBA image using the color
// conversion function. A nil conversion selects [ColorConversionClamp].
// Framebuffer row 0 maps to the top image row.
func Image(fb *render.Framebuffer, conversion func(ms3.Vec) color.Color) *image.RGBA {
	if conversion == nil {
		conversion = ColorConversionClamp()
	}
	img := image.NewRGBA(image.Rect(0, 0, fb.Width(), fb.Height()))
	for j := 0; j < fb.Height(); j++ {
		for i := 0; i < fb.Width(); i++ {
			img.Set(i, j, conversion(fb.At(i, j)))
		}
	}
	return img
}

// RenderPNGFile saves a framebuffer to a PNG file with said filename.
// A nil color conversion function selects [ColorConversionClamp].
func RenderPNGFile(filename string, fb *render.Framebuffer, conversion func(ms3.Vec) color.Color) error {
	img := Image(fb, conversion)
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	err = png.Encode(fp, img)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filename, err)
	}
	return fp.Sync()
}

var red = color.RGBA{R: 255, A: 255}

// ColorConversionClamp creates a color conversion that clamps each
// linear channel to [0,1] and quantizes to 8 bits. Returns red for NaN
// channels.
func ColorConversionClamp() func(ms3.Vec) color.Color {
	return func(c ms3.Vec) color.Color {
		if math32.IsNaN(c.X) || math32.IsNaN(c.Y) || math32.IsNaN(c.Z) {
			return red
		}
		c = ms3.ClampElem(c, ms3.Vec{}, ms3.Vec{X: 1, Y: 1, Z: 1})
		return color.RGBA{
			R: uint8(c.X*255 + 0.5),
			G: uint8(c.Y*255 + 0.5),
			B: uint8(c.Z*255 + 0.5),
			A: 255,
		}
	}
}

// ColorConversionReinhard creates a color conversion that compresses
// arbitrarily hot channels with the Reinhard operator c/(1+c) before
// quantization. Useful for scenes with light intensities above 1.
func ColorConversionReinhard() func(ms3.Vec) color.Color {
	clamp := ColorConversionClamp()
	return func(c ms3.Vec) color.Color {
		c = ms3.Vec{
			X: c.X / (1 + c.X),
			Y: c.Y / (1 + c.Y),
			Z: c.Z / (1 + c.Z),
		}
		return clamp(c)
	}
}
