package vg

import (
	"math"
)

// Line represents a line segment.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

// Angle returns the direction of the line in radians, in [-π, π].
func (l Line) Angle() float64 {
	return l.P1.Sub(l.P0).Angle()
}

// Midpoint returns the point halfway between the line's end points.
func (l Line) Midpoint() Point {
	return l.P0.Midpoint(l.P1)
}

// CrossingPoint computes the point where two lines, if extended to infinity,
// would cross. It reports false for parallel lines.
func (l Line) CrossingPoint(o Line) (Point, bool) {
	ab := l.P1.Sub(l.P0)
	cd := o.P1.Sub(o.P0)
	pcd := ab.Cross(cd)
	if pcd == 0 {
		return Point{}, false
	}
	h := ab.Cross(l.P0.Sub(o.P0)) / pcd
	return o.P0.Translate(cd.Mul(h)), true
}

func (l Line) Translate(v Vec2) Line {
	return Line{
		P0: l.P0.Translate(v),
		P1: l.P1.Translate(v),
	}
}

func (l Line) Transform(aff Affine) Line {
	return Line{
		P0: l.P0.Transform(aff),
		P1: l.P1.Transform(aff),
	}
}

func (l Line) BoundingBox() Rect {
	return NewRectFromPoints(l.P0, l.P1)
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Nearest returns the squared distance from pt to the closest point of the
// segment and the parameter t ∈ [0, 1] of that point.
func (l Line) Nearest(pt Point) (distSq, t float64) {
	d := l.P1.Sub(l.P0)
	dotp := d.Dot(pt.Sub(l.P0))
	dSquared := d.Dot(d)
	if dotp <= 0.0 {
		return pt.Sub(l.P0).Hypot2(), 0.0
	} else if dotp >= dSquared {
		return pt.Sub(l.P1).Hypot2(), 1.0
	} else {
		t := dotp / dSquared
		dist := pt.Sub(l.Eval(t)).Hypot2()
		return dist, t
	}
}

// NearestPoint returns the point of the segment closest to pt and its
// distance from pt.
func (l Line) NearestPoint(pt Point) (Point, float64) {
	distSq, t := l.Nearest(pt)
	return l.Eval(t), math.Sqrt(distSq)
}

// IntersectsRect reports whether any part of the segment lies inside r.
// It clips the segment against r with the Liang–Barsky algorithm.
func (l Line) IntersectsRect(r Rect) bool {
	if r.Contains(l.P0) || r.Contains(l.P1) {
		return true
	}
	d := l.P1.Sub(l.P0)
	t0, t1 := 0.0, 1.0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return false
			}
			t1 = min(t1, t)
		}
		return true
	}
	return clip(-d.X, l.P0.X-r.X0) &&
		clip(d.X, r.X1-l.P0.X) &&
		clip(-d.Y, l.P0.Y-r.Y0) &&
		clip(d.Y, r.Y1-l.P0.Y) &&
		t0 <= t1
}

// NearestOnPolyline finds the point of the polyline pts closest to pt. If
// closed is true, the edge from the last point back to the first is included.
// seg is the index of the edge owning the nearest point; edge i runs from
// pts[i] to pts[i+1]. For a single point, seg is 0. For no points, seg is -1
// and dist is +Inf.
func NearestOnPolyline(pts []Point, closed bool, pt Point) (near Point, dist float64, seg int) {
	dist = math.Inf(1)
	seg = -1
	switch len(pts) {
	case 0:
		return near, dist, seg
	case 1:
		return pts[0], pts[0].Distance(pt), 0
	}
	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	best := math.Inf(1)
	for i := range n {
		l := Line{pts[i], pts[(i+1)%len(pts)]}
		d, t := l.Nearest(pt)
		if d < best {
			best = d
			near = l.Eval(t)
			seg = i
		}
	}
	return near, math.Sqrt(best), seg
}

// PolylineIntersectsRect reports whether any edge of the polyline pts passes
// through r.
func PolylineIntersectsRect(pts []Point, closed bool, r Rect) bool {
	switch len(pts) {
	case 0:
		return false
	case 1:
		return r.Contains(pts[0])
	}
	if !r.Overlaps(BoundingRect(pts)) {
		return false
	}
	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	for i := range n {
		if (Line{pts[i], pts[(i+1)%len(pts)]}).IntersectsRect(r) {
			return true
		}
	}
	return false
}

// PolygonContains reports whether pt lies inside the closed polygon pts,
// using the non-zero winding rule.
func PolygonContains(pts []Point, pt Point) bool {
	winding := 0
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		if a.Y <= pt.Y {
			if b.Y > pt.Y && b.Sub(a).Cross(pt.Sub(a)) > 0 {
				winding++
			}
		} else if b.Y <= pt.Y && b.Sub(a).Cross(pt.Sub(a)) < 0 {
			winding--
		}
	}
	return winding != 0
}
