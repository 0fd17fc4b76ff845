package shape

import (
	"fmt"
	"math"

	"honnef.co/go/vg"
	"honnef.co/go/vg/storage"
)

// Arc is a circular arc. Its points are the center, the start point, the end
// point and the point halfway along the arc.
type Arc struct {
	ShapeBase
	arc vg.CircleArc
}

// NewArc returns the arc from start through mid to end. It returns nil if the
// points are collinear.
func NewArc(start, mid, end vg.Point) *Arc {
	a := &Arc{}
	if !a.SetStartMidEnd(start, mid, end) {
		return nil
	}
	return a
}

func (a *Arc) Type() Type           { return TypeArc }
func (a *Arc) IsKindOf(t Type) bool { return t == TypeArc }
func (a *Arc) PointCount() int      { return 4 }
func (a *Arc) IsClosed() bool       { return false }
func (a *Arc) IsCurve() bool        { return true }

// CircleArc returns the arc's geometry.
func (a *Arc) CircleArc() vg.CircleArc { return a.arc }

func (a *Arc) Center() vg.Point     { return a.arc.Center }
func (a *Arc) StartPoint() vg.Point { return a.arc.StartPoint() }
func (a *Arc) EndPoint() vg.Point   { return a.arc.EndPoint() }
func (a *Arc) MidPoint() vg.Point   { return a.arc.MidPoint() }
func (a *Arc) Radius() float64      { return a.arc.Radius }
func (a *Arc) StartAngle() float64  { return a.arc.StartAngle }
func (a *Arc) EndAngle() float64    { return a.arc.EndAngle() }

// SweepAngle returns the signed angle swept from the start to the end point.
// Positive angles turn clockwise on screen.
func (a *Arc) SweepAngle() float64 { return a.arc.SweepAngle }

// StartTangent returns the direction of travel at the start point, with the
// length of the radius.
func (a *Arc) StartTangent() vg.Vec2 { return a.tangentAt(a.arc.StartAngle) }

// EndTangent returns the direction of travel at the end point, with the length
// of the radius.
func (a *Arc) EndTangent() vg.Vec2 { return a.tangentAt(a.arc.EndAngle()) }

func (a *Arc) tangentAt(angle float64) vg.Vec2 {
	quarter := math.Pi / 2
	if a.arc.SweepAngle < 0 {
		quarter = -quarter
	}
	return vg.VecFromAngle(angle + quarter).Mul(a.arc.Radius)
}

func (a *Arc) Point(i int) vg.Point {
	switch i {
	case 0:
		return a.Center()
	case 1:
		return a.StartPoint()
	case 2:
		return a.EndPoint()
	case 3:
		return a.MidPoint()
	}
	return vg.Point{}
}

func validArc(arc vg.CircleArc) bool {
	return arc.Radius > 0 && !math.IsInf(arc.Radius, 0) &&
		arc.SweepAngle != 0 && math.Abs(arc.SweepAngle) <= 2*math.Pi &&
		!math.IsNaN(arc.StartAngle) && !math.IsInf(arc.StartAngle, 0) &&
		arc.Center.IsFinite()
}

func (a *Arc) set(arc vg.CircleArc) bool {
	if a.IsLocked() || !validArc(arc) {
		return false
	}
	a.arc = arc
	a.invalidate()
	return true
}

// SetStartMidEnd makes a the arc from start through mid to end.
func (a *Arc) SetStartMidEnd(start, mid, end vg.Point) bool {
	arc, ok := vg.ArcFrom3Points(start, mid, end)
	if !ok {
		return false
	}
	return a.set(arc)
}

// SetCenterStart moves the arc to center and start, keeping its sweep angle.
func (a *Arc) SetCenterStart(center, start vg.Point) bool {
	v := start.Sub(center)
	return a.set(vg.CircleArc{
		Center:     center,
		Radius:     v.Hypot(),
		StartAngle: v.Angle(),
		SweepAngle: a.arc.SweepAngle,
	})
}

// SetCenterStartEnd makes a the arc around center turning clockwise on screen
// from start to the direction of end. The radius is the distance of start.
func (a *Arc) SetCenterStartEnd(center, start, end vg.Point) bool {
	vs, ve := start.Sub(center), end.Sub(center)
	if ve.Hypot2() == 0 {
		return false
	}
	a0 := vs.Angle()
	sweep := math.Mod(ve.Angle()-a0, 2*math.Pi)
	if sweep <= 0 {
		sweep += 2 * math.Pi
	}
	return a.set(vg.CircleArc{Center: center, Radius: vs.Hypot(), StartAngle: a0, SweepAngle: sweep})
}

// SetTanStartEnd makes a the arc leaving start in the direction tan and ending
// at end.
func (a *Arc) SetTanStartEnd(tan vg.Vec2, start, end vg.Point) bool {
	arc, ok := vg.ArcFromTangent(start, end, tan)
	if !ok {
		return false
	}
	return a.set(arc)
}

// SetCenterRadius makes a the arc around center with the given radius, start
// angle and sweep angle.
func (a *Arc) SetCenterRadius(center vg.Point, radius, startAngle, sweepAngle float64) bool {
	if math.IsNaN(startAngle) || math.IsInf(startAngle, 0) || math.IsNaN(sweepAngle) {
		return false
	}
	sweepAngle = math.Copysign(min(math.Abs(sweepAngle), 2*math.Pi), sweepAngle)
	return a.set(vg.CircleArc{Center: center, Radius: radius, StartAngle: startAngle, SweepAngle: sweepAngle})
}

func (a *Arc) SetPoint(i int, pt vg.Point) bool {
	return a.SetHandle(i, pt, 0)
}

// Arcs have four handles: the center, which moves the arc, and the start, end
// and middle points, which bend it through the other two.
func (a *Arc) HandleCount() int { return 4 }

func (a *Arc) Handle(i int) vg.Point { return a.Point(i) }

func (a *Arc) HandleType(i int) HandleType {
	switch i {
	case 0:
		return HandleCenter
	case 3:
		return HandleMidpoint
	}
	return HandleVertex
}

func (a *Arc) IsHandleFixed(int) bool { return false }

func (a *Arc) SetHandle(i int, pt vg.Point, tol float64) bool {
	if i < 0 || i > 3 || a.IsLocked() || !pt.IsFinite() {
		return false
	}
	if i == 0 {
		arc := a.arc
		arc.Center = pt
		return a.set(arc)
	}
	pts := [3]vg.Point{a.StartPoint(), a.EndPoint(), a.MidPoint()}
	pts[i-1] = pt
	start, end, mid := pts[0], pts[1], pts[2]
	if start.Near(end, tol) || start.Near(mid, tol) || mid.Near(end, tol) {
		vg.Logger().Debug("shape: rejected arc handle", "handle", i, "point", pt, "tol", tol)
		return false
	}
	arc, ok := vg.ArcFrom3Points(start, mid, end)
	if !ok {
		vg.Logger().Debug("shape: degenerate arc", "handle", i, "point", pt)
		return false
	}
	return a.set(arc)
}

func (a *Arc) Clone() Shape {
	return &Arc{ShapeBase: a.cloneBase(), arc: a.arc}
}

func (a *Arc) Equal(o Shape) bool {
	oa, ok := o.(*Arc)
	return ok && a.equalBase(&oa.ShapeBase) && a.arc == oa.arc
}

// Transform maps the start, middle and end points with aff and fits a new arc
// through them. Arcs close to a full turn, whose ends nearly meet, keep their
// sweep and are rebuilt around the mapped center and start point instead.
// Mirroring transforms reverse the sweep.
func (a *Arc) Transform(aff vg.Affine) bool {
	if a.IsLocked() {
		return false
	}
	if aff.IsIdentity() {
		return true
	}
	start := a.StartPoint().Transform(aff)
	if math.Abs(a.arc.SweepAngle) > 1.5*math.Pi {
		det := aff.Determinant()
		if det == 0 {
			return false
		}
		center := a.Center().Transform(aff)
		vs := start.Sub(center)
		sweep := a.arc.SweepAngle
		if det < 0 {
			sweep = -sweep
		}
		return a.set(vg.CircleArc{Center: center, Radius: vs.Hypot(), StartAngle: vs.Angle(), SweepAngle: sweep})
	}
	arc, ok := vg.ArcFrom3Points(start, a.MidPoint().Transform(aff), a.EndPoint().Transform(aff))
	if !ok {
		return false
	}
	return a.set(arc)
}

func (a *Arc) Clear() {
	a.arc = vg.CircleArc{}
	a.invalidate()
}

func (a *Arc) Extent() vg.Rect {
	return a.cachedExtent(func() vg.Rect {
		bz := a.arc.Bezier()
		if bz == nil {
			return vg.NewRectFromPoints(a.arc.Center, a.arc.Center)
		}
		var pts []vg.Point
		for _, seg := range cubicSegments(bz, vg.DefaultTolerance) {
			pts = append(pts, seg...)
		}
		return vg.BoundingRect(pts)
	})
}

func (a *Arc) HitTest(pt vg.Point, tol float64) (HitResult, bool) {
	return hitTest(cubicSegments(a.arc.Bezier(), flattenTolerance(tol)), false, pt, tol)
}

func (a *Arc) HitTestBox(r vg.Rect) bool { return hitTestBox(a, r) }

func (a *Arc) Output(p *vg.Path) bool {
	bz := a.arc.Bezier()
	if len(bz) < 4 {
		return false
	}
	p.MoveTo(bz[0], false)
	p.BeziersTo(bz[1:], false, false)
	return true
}

// Save writes the four points and the exact radius and angles, which Load
// prefers over the points.
func (a *Arc) Save(w storage.Writer) error {
	a.saveBase(w)
	if err := savePoints(w, []vg.Point{a.Center(), a.StartPoint(), a.EndPoint(), a.MidPoint()}); err != nil {
		return err
	}
	w.SetFloat("radius", a.arc.Radius)
	w.SetFloat("start", a.arc.StartAngle)
	w.SetFloat("sweep", a.arc.SweepAngle)
	return nil
}

func (a *Arc) Load(r storage.Reader) error {
	flags, err := loadFlags(r)
	if err != nil {
		return err
	}
	pts, err := loadPoints(r, 4)
	if err != nil {
		return err
	}
	var arc vg.CircleArc
	if r.Has("sweep") {
		arc.Center = pts[0]
		if arc.Radius, err = loadFloat(r, "radius"); err != nil {
			return err
		}
		if arc.StartAngle, err = loadFloat(r, "start"); err != nil {
			return err
		}
		if arc.SweepAngle, err = loadFloat(r, "sweep"); err != nil {
			return err
		}
	} else {
		var ok bool
		arc, ok = arcAround(pts[0], pts[1], pts[3])
		if !ok {
			arc, ok = vg.ArcFrom3Points(pts[1], pts[3], pts[2])
		}
		if !ok {
			return fmt.Errorf("degenerate arc points: %w", ErrMalformed)
		}
	}
	if !validArc(arc) {
		return fmt.Errorf("arc %+v: %w", arc, ErrMalformed)
	}
	a.Flags = flags
	a.arc = arc
	a.invalidate()
	return nil
}

// arcAround returns the arc around center that starts at start and passes its
// halfway point at mid.
func arcAround(center, start, mid vg.Point) (vg.CircleArc, bool) {
	vs := start.Sub(center)
	if vs.IsZero() {
		return vg.CircleArc{}, false
	}
	half := vs.AngleTo(mid.Sub(center))
	if half == 0 || math.IsNaN(half) {
		return vg.CircleArc{}, false
	}
	return vg.CircleArc{Center: center, Radius: vs.Hypot(), StartAngle: vs.Angle(), SweepAngle: 2 * half}, true
}
