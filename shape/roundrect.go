package shape

import (
	"fmt"
	"math"

	"honnef.co/go/vg"
	"honnef.co/go/vg/storage"
)

// RoundRect is a rectangle with elliptical corners.
type RoundRect struct {
	rectBase
	rx, ry float64
}

// NewRoundRect returns the axis-aligned rectangle with opposite corners pt1 and
// pt2 and corner radii rx and ry. A ry that isn't positive is set to rx.
func NewRoundRect(pt1, pt2 vg.Point, rx, ry float64) *RoundRect {
	r := &RoundRect{}
	r.SetRect2P(pt1, pt2)
	r.SetRadius(rx, ry)
	return r
}

func (r *RoundRect) Type() Type { return TypeRoundRect }

func (r *RoundRect) IsKindOf(t Type) bool { return t == TypeRoundRect || t == TypeRectFamily }

// IsCurve reports whether the corners are rounded.
func (r *RoundRect) IsCurve() bool { return r.rx > 0 || r.ry > 0 }

// RadiusX and RadiusY return the corner radii as set. The outline uses at
// most half the width and height.
func (r *RoundRect) RadiusX() float64 { return r.rx }
func (r *RoundRect) RadiusY() float64 { return r.ry }

// SetRadius sets the corner radii. A ry that isn't positive is set to rx.
// Negative values of rx are rejected.
func (r *RoundRect) SetRadius(rx, ry float64) bool {
	if r.IsLocked() || !(rx >= 0) || math.IsInf(rx, 0) || math.IsNaN(ry) || math.IsInf(ry, 0) {
		return false
	}
	if ry <= 0 {
		ry = rx
	}
	r.rx, r.ry = rx, ry
	r.invalidate()
	return true
}

// outline returns one run of points per edge, in drawing space. A run starts
// with the two ends of the straight part of edge i, followed by the Bézier
// control points of the corner arc at the end of the edge, if any. Edges are
// ordered top, right, bottom, left.
func (r *RoundRect) outline() [4][]vg.Point {
	lr := r.local()
	rx := min(r.rx, lr.Width()/2)
	ry := min(r.ry, lr.Height()/2)
	if rx <= 0 || ry <= 0 {
		rx, ry = 0, 0
	}
	c := lr.Corners()
	// Inward offsets of the corners and the directions of the edges leaving
	// them.
	in := [4]vg.Vec2{{X: rx, Y: ry}, {X: -rx, Y: ry}, {X: -rx, Y: -ry}, {X: rx, Y: -ry}}
	var runs [4][]vg.Point
	for i := range 4 {
		j := (i + 1) % 4
		var start, end vg.Point
		if i%2 == 0 {
			start = vg.Pt(c[i].X+in[i].X, c[i].Y)
			end = vg.Pt(c[j].X+in[j].X, c[j].Y)
		} else {
			start = vg.Pt(c[i].X, c[i].Y+in[i].Y)
			end = vg.Pt(c[j].X, c[j].Y+in[j].Y)
		}
		run := []vg.Point{start, end}
		if rx > 0 {
			center := c[j].Translate(in[j])
			// The arc at corner j starts where edge i ends: corner 1 at
			// -90°, turning clockwise by a quarter.
			bz := vg.ArcToBezier(center, rx, ry, float64(j-2)*math.Pi/2, math.Pi/2)
			run = append(run, bz[1:]...)
		}
		runs[i] = run
	}
	frame := r.frame()
	for _, run := range runs {
		vg.TransformPoints(run, frame)
	}
	return runs
}

func (r *RoundRect) Clone() Shape {
	return &RoundRect{rectBase: r.cloneRect(), rx: r.rx, ry: r.ry}
}

func (r *RoundRect) Equal(o Shape) bool {
	or, ok := o.(*RoundRect)
	return ok && r.equalRect(&or.rectBase) && r.rx == or.rx && r.ry == or.ry
}

// Transform scales the radii by the mean scale of aff.
func (r *RoundRect) Transform(aff vg.Affine) bool {
	if !r.rectBase.Transform(aff) {
		return false
	}
	s := aff.MeanScale()
	r.rx *= s
	r.ry *= s
	return true
}

func (r *RoundRect) Clear() {
	r.clearRect()
	r.rx, r.ry = 0, 0
}

// HitTest reports the edge, together with the corner following it, as the
// segment.
func (r *RoundRect) HitTest(pt vg.Point, tol float64) (HitResult, bool) {
	ftol := flattenTolerance(tol)
	runs := r.outline()
	segs := make([][]vg.Point, 0, 4)
	for _, run := range runs {
		seg := []vg.Point{run[0]}
		if len(run) > 2 {
			for _, c := range cubicSegments(run[1:], ftol) {
				seg = append(seg, c...)
			}
		} else {
			seg = append(seg, run[1])
		}
		segs = append(segs, seg)
	}
	return hitTest(segs, true, pt, tol)
}

func (r *RoundRect) HitTestBox(box vg.Rect) bool { return hitTestBox(r, box) }

func (r *RoundRect) Output(p *vg.Path) bool {
	if !r.IsCurve() {
		return r.outputPolygon(p, r.pts)
	}
	runs := r.outline()
	p.MoveTo(runs[0][0], false)
	for _, run := range runs {
		p.LineTo(run[1], false)
		if len(run) > 2 {
			p.BeziersTo(run[2:], false, false)
		}
	}
	p.CloseFigure()
	return true
}

func (r *RoundRect) Save(w storage.Writer) error {
	if err := r.saveRect(w); err != nil {
		return err
	}
	w.SetFloat("rx", r.rx)
	w.SetFloat("ry", r.ry)
	return nil
}

func (r *RoundRect) Load(rd storage.Reader) error {
	flags, pts, err := loadRect(rd)
	if err != nil {
		return err
	}
	rx, err := loadFloat(rd, "rx")
	if err != nil {
		return err
	}
	ry, err := loadFloat(rd, "ry")
	if err != nil {
		return err
	}
	if rx < 0 || ry < 0 {
		return fmt.Errorf("negative corner radius %g, %g: %w", rx, ry, ErrMalformed)
	}
	r.applyRect(flags, pts)
	r.rx, r.ry = rx, ry
	return nil
}
