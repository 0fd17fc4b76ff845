package vg

import (
	"fmt"
	"math"
)

// Size is the extent of something in drawing units.
type Size struct {
	Width  float64
	Height float64
}

// Sz returns the size w×h.
func Sz(w, h float64) Size {
	return Size{
		Width:  w,
		Height: h,
	}
}

func (sz Size) String() string {
	return fmt.Sprintf("%g×%g", sz.Width, sz.Height)
}

func (sz Size) AsVec2() Vec2 {
	return Vec2{
		X: sz.Width,
		Y: sz.Height,
	}
}

func (sz Size) Area() float64 {
	return sz.Width * sz.Height
}

// IsEmpty reports whether the width or the height is zero or less.
func (sz Size) IsEmpty() bool {
	return !(sz.Width > 0) || !(sz.Height > 0)
}

// Scale multiplies sz by f.
func (sz Size) Scale(f float64) Size {
	return Size{
		Width:  sz.Width * f,
		Height: sz.Height * f,
	}
}

// Ceil returns a new size with width and height rounded up to the nearest integers.
func (sz Size) Ceil() Size {
	return Size{
		Width:  math.Ceil(sz.Width),
		Height: math.Ceil(sz.Height),
	}
}

// Contain returns the largest size with the aspect ratio of sz that fits in
// box. An empty sz is returned unchanged.
func (sz Size) Contain(box Size) Size {
	if sz.IsEmpty() {
		return sz
	}
	if box.Width*sz.Height > box.Height*sz.Width {
		return Size{Width: box.Height * sz.Width / sz.Height, Height: box.Height}
	}
	return Size{Width: box.Width, Height: box.Width * sz.Height / sz.Width}
}

// Size returns the width and height of r.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}
