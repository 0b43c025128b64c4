package render

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/raymarch"
)

// Config parametrizes a render.
type Config struct {
	// Width and Height are the output resolution in pixels.
	Width, Height int
	// DistanceLimit is the surface-hit epsilon: a marching step whose
	// scene distance falls below it counts as a hit. Shadow rays stop
	// at DistanceLimit/5 and start offset 5*DistanceLimit off the
	// surface toward the light.
	DistanceLimit float32
	// ReflectionLimit is the remaining bounce budget handed to the
	// marcher. A negative budget short-circuits to the background
	// color. The reflected contribution itself is currently fixed
	// black, so values above zero change nothing.
	ReflectionLimit int
	// Workers limits render concurrency. Zero means [runtime.NumCPU].
	Workers int
	// Attenuation scales each light contribution by the distance from
	// the shaded point to the light. Nil means no falloff (constant 1).
	Attenuation func(dist float32) float32
}

// DefaultConfig returns a Config for the given resolution with the
// documented marching defaults.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:         width,
		Height:        height,
		DistanceLimit: 5e-3,
	}
}

func (cfg Config) validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("non-positive render resolution %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.DistanceLimit <= 0 {
		return errors.New("non-positive distance limit")
	}
	if cfg.Workers < 0 {
		return errors.New("negative worker count")
	}
	return nil
}

// Framebuffer is a row-major 2D buffer of linear RGB colors with the
// origin at the top-left pixel.
type Framebuffer struct {
	width, height int
	pix           []ms3.Vec
}

// NewFramebuffer allocates a width-by-height buffer of black pixels.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]ms3.Vec, width*height),
	}
}

// Width returns the buffer width in pixels.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the buffer height in pixels.
func (fb *Framebuffer) Height() int { return fb.height }

// At returns the color at column x, row y. Row 0 is the top of the
// image.
func (fb *Framebuffer) At(x, y int) ms3.Vec {
	return fb.pix[y*fb.width+x]
}

func (fb *Framebuffer) set(x, y int, c ms3.Vec) {
	fb.pix[y*fb.width+x] = c
}

// Renderer marches a read-only scene viewed through a camera. A
// Renderer may be reused for repeated renders of the same scene;
// repeated renders of an unchanged scene yield identical buffers.
type Renderer struct {
	scene *raymarch.Scene
	cam   Camera
	cfg   Config
}

// New creates a Renderer. The scene must not be mutated for the
// lifetime of the Renderer.
func New(scene *raymarch.Scene, cam Camera, cfg Config) (*Renderer, error) {
	if scene == nil {
		return nil, errors.New("nil scene")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Renderer{scene: scene, cam: cam, cfg: cfg}, nil
}

// Render produces a fully populated framebuffer at the configured
// resolution. Rows are distributed over worker goroutines; each pixel
// is computed by one primary-ray march and writes a disjoint cell, so
// no synchronization beyond the final join is needed.
func (r *Renderer) Render() *Framebuffer {
	fb := NewFramebuffer(r.cfg.Width, r.cfg.Height)
	workers := r.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > fb.height {
		workers = fb.height
	}
	rows := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range rows {
				r.renderRow(fb, j)
			}
		}()
	}
	for j := 0; j < fb.height; j++ {
		rows <- j
	}
	close(rows)
	wg.Wait()
	return fb
}

func (r *Renderer) renderRow(fb *Framebuffer, j int) {
	v := (float32(j) + 0.5) / float32(fb.height)
	for i := 0; i < fb.width; i++ {
		u := (float32(i) + 0.5) / float32(fb.width)
		origin, dir := r.cam.Ray(u, v)
		fb.set(i, j, r.march(origin, dir, r.cfg.ReflectionLimit))
	}
}
