// Package raymarch implements a 3D scene model over signed distance
// fields (SDFs): sphere and box primitives, validated materials, point
// light sources and scene-level distance composition with gradient
// based normal estimation. The render subpackage marches rays through
// scenes built with this package to produce shaded images.
package raymarch

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

const (
	largenum = 1e20
	// epstol is used to check for badly conditioned denominators
	// such as lengths used for normalization.
	epstol = 6e-7
)

// DefaultNormalStep is the central-difference probe distance used by
// [Scene.Normal] when the caller passes a non-positive step. The value is
// sized for float32: smaller steps drown the gradient in rounding noise,
// larger steps blur sharp features such as box edges.
const DefaultNormalStep = 1e-4

// Flags passed to [Builder.SetFlags].
type Flags uint64

// FlagNoPanic disables panicking on invalid shape dimensions and material
// parameters. Errors accumulate on the Builder and are retrieved with
// [Builder.Err].
const FlagNoPanic Flags = 1 << iota

// Builder wraps scene element construction and validation logic.
// Provides error handling strategies with panics or error accumulation
// during scene generation.
type Builder struct {
	flags     Flags
	accumErrs []error
}

// Err returns errors accumulated during scene construction, joined. A nil
// result means all elements built since the last [Builder.ClearErrors]
// call were valid.
func (bld *Builder) Err() error {
	if len(bld.accumErrs) == 0 {
		return nil
	}
	return errors.Join(bld.accumErrs...)
}

// ClearErrors discards accumulated construction errors.
func (bld *Builder) ClearErrors() {
	bld.accumErrs = bld.accumErrs[:0]
}

// Flags returns the Builder's current flags.
func (bld *Builder) Flags() Flags { return bld.flags }

// SetFlags replaces the Builder's flags.
func (bld *Builder) SetFlags(flags Flags) error {
	bld.flags = flags
	return nil
}

func (bld *Builder) buildErrorf(msg string, args ...any) {
	if bld.flags&FlagNoPanic == 0 {
		panic(fmt.Sprintf(msg, args...))
	}
	bld.accumErrs = append(bld.accumErrs, fmt.Errorf(msg, args...))
}

func minf(a, b float32) float32 {
	return math32.Min(a, b)
}

func maxf(a, b float32) float32 {
	return math32.Max(a, b)
}

// inUnit checks all three channels of a color lie in [0,1].
func inUnit(c ms3.Vec) bool {
	return c.X >= 0 && c.X <= 1 && c.Y >= 0 && c.Y <= 1 && c.Z >= 0 && c.Z <= 1
}
