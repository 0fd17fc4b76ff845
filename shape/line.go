package shape

import (
	"honnef.co/go/vg"
	"honnef.co/go/vg/storage"
)

// Line is a straight line segment.
type Line struct {
	ShapeBase
	pts [2]vg.Point
}

// NewLine returns the line from start to end.
func NewLine(start, end vg.Point) *Line {
	return &Line{pts: [2]vg.Point{start, end}}
}

func (l *Line) Type() Type           { return TypeLine }
func (l *Line) IsKindOf(t Type) bool { return t == TypeLine }
func (l *Line) PointCount() int      { return 2 }
func (l *Line) IsClosed() bool       { return false }
func (l *Line) IsCurve() bool        { return false }

func (l *Line) Start() vg.Point  { return l.pts[0] }
func (l *Line) End() vg.Point    { return l.pts[1] }
func (l *Line) Center() vg.Point { return l.pts[0].Midpoint(l.pts[1]) }
func (l *Line) Length() float64  { return l.pts[0].Distance(l.pts[1]) }

// Angle returns the direction from start to end, in [-π, π].
func (l *Line) Angle() float64 { return l.pts[1].Sub(l.pts[0]).Angle() }

func (l *Line) SetStart(pt vg.Point) bool { return l.SetPoint(0, pt) }
func (l *Line) SetEnd(pt vg.Point) bool   { return l.SetPoint(1, pt) }

func (l *Line) Point(i int) vg.Point {
	if i < 0 || i > 1 {
		return vg.Point{}
	}
	return l.pts[i]
}

func (l *Line) SetPoint(i int, pt vg.Point) bool {
	if i < 0 || i > 1 || l.IsLocked() {
		return false
	}
	l.pts[i] = pt
	l.invalidate()
	return true
}

// Handles 0 and 1 are the ends, handle 2 is the midpoint, which can't be
// dragged.
func (l *Line) HandleCount() int { return 3 }

func (l *Line) Handle(i int) vg.Point {
	if i == 2 {
		return l.Center()
	}
	return l.Point(i)
}

func (l *Line) HandleType(i int) HandleType {
	if i == 2 {
		return HandleMidpoint
	}
	return HandleVertex
}

func (l *Line) IsHandleFixed(i int) bool { return i == 2 }

// SetHandle moves an end of the line. With the FixedLength flag, the end only
// turns around the other end. Moves that make the line shorter than tol are
// rejected.
func (l *Line) SetHandle(i int, pt vg.Point, tol float64) bool {
	if i < 0 || i > 1 || l.IsLocked() {
		return false
	}
	other := l.pts[1-i]
	if l.Flags.Has(FixedLength) {
		dir := pt.Sub(other)
		if dir.IsZero(1e-12) {
			return false
		}
		pt = other.Translate(dir.WithLength(l.Length()))
	}
	if pt.Distance(other) < tol {
		vg.Logger().Debug("shape: rejected line handle", "handle", i, "point", pt, "tol", tol)
		return false
	}
	l.pts[i] = pt
	l.invalidate()
	return true
}

func (l *Line) Clone() Shape {
	c := *l
	c.ShapeBase = l.cloneBase()
	return &c
}

func (l *Line) Equal(o Shape) bool {
	ol, ok := o.(*Line)
	return ok && l.equalBase(&ol.ShapeBase) && l.pts == ol.pts
}

func (l *Line) Transform(aff vg.Affine) bool {
	if l.IsLocked() {
		return false
	}
	vg.TransformPoints(l.pts[:], aff)
	l.invalidate()
	return true
}

func (l *Line) Clear() {
	l.pts = [2]vg.Point{}
	l.invalidate()
}

func (l *Line) Extent() vg.Rect {
	return l.cachedExtent(func() vg.Rect { return vg.NewRectFromPoints(l.pts[0], l.pts[1]) })
}

func (l *Line) HitTest(pt vg.Point, tol float64) (HitResult, bool) {
	return hitTest([][]vg.Point{l.pts[:]}, false, pt, tol)
}

func (l *Line) HitTestBox(r vg.Rect) bool {
	return vg.Line{P0: l.pts[0], P1: l.pts[1]}.IntersectsRect(r)
}

func (l *Line) Output(p *vg.Path) bool {
	p.MoveTo(l.pts[0], false)
	p.LineTo(l.pts[1], false)
	return true
}

func (l *Line) Save(w storage.Writer) error {
	l.saveBase(w)
	return savePoints(w, l.pts[:])
}

func (l *Line) Load(r storage.Reader) error {
	flags, err := loadFlags(r)
	if err != nil {
		return err
	}
	pts, err := loadPoints(r, 2)
	if err != nil {
		return err
	}
	l.Flags = flags
	copy(l.pts[:], pts)
	l.invalidate()
	return nil
}
