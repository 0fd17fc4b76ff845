package shape

import (
	"fmt"
	"math"

	"honnef.co/go/vg"
	"honnef.co/go/vg/storage"
)

// Parallelogram is a quadrilateral whose opposite edges are parallel. Its
// corners p0 to p3 satisfy p0+p2 = p1+p3.
type Parallelogram struct {
	ShapeBase
	pts [4]vg.Point
}

// NewParallelogram returns the parallelogram with corners p0, p1 and p2. The
// fourth corner is derived from them.
func NewParallelogram(p0, p1, p2 vg.Point) *Parallelogram {
	return &Parallelogram{pts: [4]vg.Point{p0, p1, p2, p0.Translate(p2.Sub(p1))}}
}

func (pg *Parallelogram) Type() Type           { return TypeParallelogram }
func (pg *Parallelogram) IsKindOf(t Type) bool { return t == TypeParallelogram }
func (pg *Parallelogram) PointCount() int      { return 4 }
func (pg *Parallelogram) IsClosed() bool       { return true }
func (pg *Parallelogram) IsCurve() bool        { return false }

func (pg *Parallelogram) Center() vg.Point { return pg.pts[0].Midpoint(pg.pts[2]) }
func (pg *Parallelogram) Width() float64   { return pg.pts[0].Distance(pg.pts[1]) }
func (pg *Parallelogram) Height() float64  { return pg.pts[2].Distance(pg.pts[1]) }

// Angle returns the interior angle at p3, in [-π, π].
func (pg *Parallelogram) Angle() float64 {
	return pg.pts[2].Sub(pg.pts[3]).AngleTo(pg.pts[0].Sub(pg.pts[3]))
}

// Rect returns the rectangle of the same width and height around the center.
func (pg *Parallelogram) Rect() vg.Rect {
	return vg.NewRectFromCenter(pg.Center(), pg.Width(), pg.Height())
}

// IsEmpty reports whether the width or the height is at most minDist.
func (pg *Parallelogram) IsEmpty(minDist float64) bool {
	return pg.Width() <= minDist || pg.Height() <= minDist
}

func (pg *Parallelogram) Point(i int) vg.Point {
	if i < 0 || i > 3 {
		return vg.Point{}
	}
	return pg.pts[i]
}

// SetPoint moves corner i like handle i.
func (pg *Parallelogram) SetPoint(i int, pt vg.Point) bool {
	if i < 0 || i > 3 {
		return false
	}
	return pg.SetHandle(i, pt, 0)
}

// Parallelograms have five handles: the corners 0–3 and the center 4.
func (pg *Parallelogram) HandleCount() int { return 5 }

func (pg *Parallelogram) Handle(i int) vg.Point {
	if i == 4 {
		return pg.Center()
	}
	return pg.Point(i)
}

func (pg *Parallelogram) HandleType(i int) HandleType {
	if i == 4 {
		return HandleCenter
	}
	return HandleVertex
}

func (pg *Parallelogram) IsHandleFixed(int) bool { return false }

// SetHandle moves corner i, keeping its neighbors in place and moving the
// opposite corner to keep the shape a parallelogram. Handle 4 moves the whole
// shape.
func (pg *Parallelogram) SetHandle(i int, pt vg.Point, tol float64) bool {
	if i < 0 || i > 4 || pg.IsLocked() || !pt.IsFinite() {
		return false
	}
	if i == 4 {
		vg.TransformPoints(pg.pts[:], vg.Translate(pt.Sub(pg.Center())))
		pg.invalidate()
		return true
	}
	pts := pg.pts
	prev, next := pts[(i+3)%4], pts[(i+1)%4]
	pts[i] = pt
	pts[(i+2)%4] = prev.Translate(next.Sub(pt))
	if pts[0].Distance(pts[1]) < tol || pts[1].Distance(pts[2]) < tol {
		vg.Logger().Debug("shape: rejected parallelogram handle", "handle", i, "point", pt, "tol", tol)
		return false
	}
	pg.pts = pts
	pg.invalidate()
	return true
}

func (pg *Parallelogram) Clone() Shape {
	return &Parallelogram{ShapeBase: pg.cloneBase(), pts: pg.pts}
}

func (pg *Parallelogram) Equal(o Shape) bool {
	op, ok := o.(*Parallelogram)
	return ok && pg.equalBase(&op.ShapeBase) && pg.pts == op.pts
}

// Transform maps the corners with aff. Affine maps keep parallelograms
// parallelograms.
func (pg *Parallelogram) Transform(aff vg.Affine) bool {
	if pg.IsLocked() {
		return false
	}
	vg.TransformPoints(pg.pts[:], aff)
	pg.invalidate()
	return true
}

func (pg *Parallelogram) Clear() {
	pg.pts = [4]vg.Point{}
	pg.invalidate()
}

func (pg *Parallelogram) Extent() vg.Rect {
	return pg.cachedExtent(func() vg.Rect { return vg.BoundingRect(pg.pts[:]) })
}

func (pg *Parallelogram) HitTest(pt vg.Point, tol float64) (HitResult, bool) {
	return hitTest(polygonSegments(pg.pts[:], true), true, pt, tol)
}

func (pg *Parallelogram) HitTestBox(r vg.Rect) bool { return hitTestBox(pg, r) }

func (pg *Parallelogram) Output(p *vg.Path) bool {
	p.MoveTo(pg.pts[0], false)
	p.LinesTo(pg.pts[1:], false)
	p.CloseFigure()
	return true
}

func (pg *Parallelogram) Save(w storage.Writer) error {
	pg.saveBase(w)
	return savePoints(w, pg.pts[:])
}

func (pg *Parallelogram) Load(r storage.Reader) error {
	flags, pts, err := loadRect(r)
	if err != nil {
		return err
	}
	if !isParallelogram(pts) {
		return fmt.Errorf("corners %v aren't a parallelogram: %w", pts, ErrMalformed)
	}
	pg.Flags = flags
	pg.pts = pts
	pg.invalidate()
	return nil
}

// isParallelogram reports whether p0+p2 = p1+p3, up to rounding relative to
// the size of the corners.
func isParallelogram(pts [4]vg.Point) bool {
	d := pts[0].Translate(vg.Vec2(pts[2])).Sub(pts[1].Translate(vg.Vec2(pts[3])))
	var scale float64
	for _, pt := range pts {
		scale = max(scale, math.Abs(pt.X), math.Abs(pt.Y))
	}
	return d.Hypot() <= 1e-9*(1+scale)
}
