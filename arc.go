package vg

import (
	"math"
)

// collinearEpsilon is the relative tolerance below which two directions are
// considered parallel when fitting arcs.
const collinearEpsilon = 1e-10

// CircleArc is a circular arc, described by its center, radius, the angle of
// its start point and the signed angle it sweeps. A positive sweep rotates +X
// into +Y, which is clockwise in the y-down space used for drawing.
type CircleArc struct {
	Center     Point
	Radius     float64
	StartAngle float64
	SweepAngle float64
}

// EndAngle returns StartAngle + SweepAngle.
func (a CircleArc) EndAngle() float64 {
	return a.StartAngle + a.SweepAngle
}

func (a CircleArc) pointAt(angle float64) Point {
	return a.Center.Translate(VecFromAngle(angle).Mul(a.Radius))
}

func (a CircleArc) StartPoint() Point { return a.pointAt(a.StartAngle) }
func (a CircleArc) EndPoint() Point   { return a.pointAt(a.EndAngle()) }

// MidPoint returns the point halfway along the arc.
func (a CircleArc) MidPoint() Point { return a.pointAt(a.StartAngle + a.SweepAngle/2) }

// Bezier returns the arc as cubic Bézier control points, see [ArcToBezier].
func (a CircleArc) Bezier() []Point {
	return ArcToBezier(a.Center, a.Radius, a.Radius, a.StartAngle, a.SweepAngle)
}

// sweepFrom returns the signed angle from angle a0 to angle a1, going in the
// positive direction if ccw is true and in the negative direction otherwise.
// The magnitude of the result is in (0, 2π].
func sweepFrom(a0, a1 float64, ccw bool) float64 {
	d := math.Mod(a1-a0, 2*math.Pi)
	if ccw {
		if d <= 0 {
			d += 2 * math.Pi
		}
		return d
	}
	if d >= 0 {
		d -= 2 * math.Pi
	}
	return d
}

// ArcFromTangent fits the circular arc that starts at start heading in the
// direction tan and ends at end.
//
// It reports false if no such arc exists, which is the case when end lies on
// the line through start along tan, when tan is the zero vector, or when start
// and end coincide.
func ArcFromTangent(start, end Point, tan Vec2) (CircleArc, bool) {
	tl := tan.Hypot()
	chord := end.Sub(start)
	cl := chord.Hypot()
	if tl == 0 || cl == 0 {
		return CircleArc{}, false
	}
	// The center lies on the normal of tan through start, at signed distance s
	// where |start + s·n − end| = |s|.
	n := tan.Perp().Div(tl)
	pd := n.Dot(chord)
	if math.Abs(pd) <= collinearEpsilon*cl {
		return CircleArc{}, false
	}
	s := chord.Hypot2() / (2 * pd)
	center := start.Translate(n.Mul(s))
	rs := start.Sub(center)
	re := end.Sub(center)
	a0 := rs.Angle()
	ccw := tan.Dot(rs.Perp()) > 0
	return CircleArc{
		Center:     center,
		Radius:     math.Abs(s),
		StartAngle: a0,
		SweepAngle: sweepFrom(a0, re.Angle(), ccw),
	}, true
}

// ArcFrom3Points fits the circular arc that starts at start, passes through
// via and ends at end.
//
// It reports false if the points are collinear or any two of them coincide.
func ArcFrom3Points(start, via, end Point) (CircleArc, bool) {
	a := via.Sub(start)
	b := end.Sub(start)
	cr := a.Cross(b)
	if math.Abs(cr) <= collinearEpsilon*a.Hypot()*b.Hypot() || end.Sub(via).Hypot2() == 0 {
		return CircleArc{}, false
	}
	d := 2 * cr
	a2 := a.Hypot2()
	b2 := b.Hypot2()
	center := start.Translate(Vec2{
		X: (b.Y*a2 - a.Y*b2) / d,
		Y: (a.X*b2 - b.X*a2) / d,
	})
	a0 := start.Sub(center).Angle()
	toVia := sweepFrom(a0, via.Sub(center).Angle(), true)
	toEnd := sweepFrom(a0, end.Sub(center).Angle(), true)
	sweep := toEnd
	if toVia > toEnd {
		sweep = toEnd - 2*math.Pi
	}
	return CircleArc{
		Center:     center,
		Radius:     center.Distance(start),
		StartAngle: a0,
		SweepAngle: sweep,
	}, true
}

// ArcToBezier approximates an elliptical arc with at most four cubic Bézier
// segments, each spanning at most 90°. The ellipse is axis-aligned, with radii
// rx and ry, and the arc starts at startAngle and sweeps sweepAngle radians,
// whose sign selects the direction. Sweeps beyond a full turn are clamped.
//
// The result holds the start point followed by three points per segment, so it
// can be passed to [Path.MoveTo] and [Path.BeziersTo]. It is nil if either
// radius or the sweep is zero.
func ArcToBezier(center Point, rx, ry, startAngle, sweepAngle float64) []Point {
	if rx <= 0 || ry <= 0 || sweepAngle == 0 || math.IsNaN(sweepAngle) {
		return nil
	}
	sweepAngle = math.Copysign(min(math.Abs(sweepAngle), 2*math.Pi), sweepAngle)

	// Ratios within rounding error of a whole quadrant count don't need
	// another segment.
	n := int(math.Ceil(math.Abs(sweepAngle)/(math.Pi/2) - 1e-7))
	n = max(1, min(n, 4))
	step := sweepAngle / float64(n)
	arm := (4.0 / 3.0) * math.Tan(step/4)

	at := func(th float64) (Point, Vec2) {
		sin, cos := math.Sincos(th)
		return Pt(center.X+rx*cos, center.Y+ry*sin), Vec(-rx*sin, ry*cos)
	}

	pts := make([]Point, 0, 1+3*n)
	th := startAngle
	p0, d0 := at(th)
	pts = append(pts, p0)
	for i := range n {
		th1 := startAngle + step*float64(i+1)
		p3, d3 := at(th1)
		pts = append(pts,
			p0.Translate(d0.Mul(arm)),
			p3.Translate(d3.Mul(-arm)),
			p3,
		)
		p0, d0 = p3, d3
	}
	return pts
}
