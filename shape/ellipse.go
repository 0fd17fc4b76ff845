package shape

import (
	"math"

	"honnef.co/go/vg"
	"honnef.co/go/vg/storage"
)

// kappa is the distance of the control points of a cubic Bézier quarter
// circle from its end points, relative to the radius.
const kappa = 4 * (math.Sqrt2 - 1) / 3

// ellipseBezier returns the outline of the ellipse with radii rx and ry
// centered on the origin of frame: a start point on the positive x axis and
// four quadrants turning from +x toward +y.
func ellipseBezier(frame vg.Affine, rx, ry float64) [13]vg.Point {
	kx, ky := kappa*rx, kappa*ry
	bz := [13]vg.Point{
		{X: rx, Y: 0},
		{X: rx, Y: ky}, {X: kx, Y: ry}, {X: 0, Y: ry},
		{X: -kx, Y: ry}, {X: -rx, Y: ky}, {X: -rx, Y: 0},
		{X: -rx, Y: -ky}, {X: -kx, Y: -ry}, {X: 0, Y: -ry},
		{X: kx, Y: -ry}, {X: rx, Y: -ky}, {X: rx, Y: 0},
	}
	vg.TransformPoints(bz[:], frame)
	return bz
}

// Ellipse is an ellipse inscribed in a possibly rotated rectangle.
type Ellipse struct {
	rectBase
}

// NewEllipse returns the ellipse inscribed in the axis-aligned rectangle with
// opposite corners pt1 and pt2.
func NewEllipse(pt1, pt2 vg.Point) *Ellipse {
	e := newEllipse()
	e.SetRect2P(pt1, pt2)
	return e
}

// NewCircle returns the circle with the given center and radius.
func NewCircle(center vg.Point, radius float64) *Ellipse {
	e := newEllipse()
	e.SetRect2P(vg.Pt(center.X-radius, center.Y-radius), vg.Pt(center.X+radius, center.Y+radius))
	return e
}

func newEllipse() *Ellipse {
	e := &Ellipse{}
	e.bz = new([13]vg.Point)
	return e
}

func (e *Ellipse) Type() Type { return TypeEllipse }

func (e *Ellipse) IsKindOf(t Type) bool { return t == TypeEllipse || t == TypeRectFamily }
func (e *Ellipse) IsCurve() bool        { return true }

func (e *Ellipse) RadiusX() float64 { return e.Width() / 2 }
func (e *Ellipse) RadiusY() float64 { return e.Height() / 2 }

// Bezier returns the cached outline: a start point followed by the control
// points of four cubic quadrants.
func (e *Ellipse) Bezier() [13]vg.Point {
	if e.bz == nil {
		// Zero value, not made by a constructor.
		return ellipseBezier(e.frame(), e.RadiusX(), e.RadiusY())
	}
	return *e.bz
}

// SetRadius changes the radii, keeping the center and rotation. A ry that
// isn't positive makes the ellipse a circle.
func (e *Ellipse) SetRadius(rx, ry float64) bool {
	if e.IsLocked() || !(rx >= 0) || math.IsInf(rx, 0) || math.IsNaN(ry) || math.IsInf(ry, 0) {
		return false
	}
	if ry <= 0 {
		ry = rx
	}
	e.setLocal(vg.NewRectFromCenter(vg.Point{}, 2*rx, 2*ry), e.frame())
	return true
}

func (e *Ellipse) Clone() Shape { return &Ellipse{e.cloneRect()} }

func (e *Ellipse) Equal(o Shape) bool {
	oe, ok := o.(*Ellipse)
	return ok && e.equalRect(&oe.rectBase)
}

func (e *Ellipse) Clear() { e.clearRect() }

// Ellipses have four handles on the axes: top, right, bottom and left. They
// change the radii symmetrically about the center.
func (e *Ellipse) HandleCount() int { return 4 }

func (e *Ellipse) Handle(i int) vg.Point {
	if i < 0 || i > 3 {
		return vg.Point{}
	}
	return e.rectBase.Handle(i + 4)
}

func (e *Ellipse) HandleType(int) HandleType { return HandleMidpoint }

func (e *Ellipse) SetHandle(i int, pt vg.Point, tol float64) bool {
	if i < 0 || i > 3 || e.IsLocked() {
		return false
	}
	lp := pt.Transform(e.frame().Invert())
	rx, ry := e.RadiusX(), e.RadiusY()
	if i%2 == 0 {
		ry = math.Abs(lp.Y)
	} else {
		rx = math.Abs(lp.X)
	}
	if e.Flags.Has(Square) {
		if i%2 == 0 {
			rx = ry
		} else {
			ry = rx
		}
	}
	if 2*rx < tol || 2*ry < tol || !lp.IsFinite() {
		vg.Logger().Debug("shape: rejected ellipse handle", "handle", i, "point", pt, "tol", tol)
		return false
	}
	e.setLocal(vg.NewRectFromCenter(vg.Point{}, 2*rx, 2*ry), e.frame())
	return true
}

func (e *Ellipse) Extent() vg.Rect {
	return e.cachedExtent(func() vg.Rect {
		sin, cos := math.Sincos(e.Angle())
		rx, ry := e.RadiusX(), e.RadiusY()
		w := math.Hypot(rx*cos, ry*sin)
		h := math.Hypot(rx*sin, ry*cos)
		return vg.NewRectFromCenter(e.Center(), 2*w, 2*h)
	})
}

// HitTest reports the quadrant holding the nearest point as the segment,
// starting with the one between the right and the bottom handle.
func (e *Ellipse) HitTest(pt vg.Point, tol float64) (HitResult, bool) {
	bz := e.Bezier()
	return hitTest(cubicSegments(bz[:], flattenTolerance(tol)), true, pt, tol)
}

func (e *Ellipse) HitTestBox(r vg.Rect) bool { return hitTestBox(e, r) }

func (e *Ellipse) Output(p *vg.Path) bool {
	if e.Width() == 0 && e.Height() == 0 {
		return false
	}
	bz := e.Bezier()
	p.MoveTo(bz[0], false)
	p.BeziersTo(bz[1:], false, false)
	p.CloseFigure()
	return true
}

func (e *Ellipse) Save(w storage.Writer) error { return e.saveRect(w) }

func (e *Ellipse) Load(rd storage.Reader) error {
	flags, pts, err := loadRect(rd)
	if err != nil {
		return err
	}
	e.applyRect(flags, pts)
	return nil
}
