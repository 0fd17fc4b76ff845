package vg

type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	v := Vec2(q.P0).Mul(mt * mt).
		Add(Vec2(q.P1).Mul(mt * 2.0).
			Add(Vec2(q.P2).Mul(t)).
			Mul(t))
	return Point(v)
}

// Raise returns the cubic Bézier that traces the same curve.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		q.P0,
		Point(Vec2(q.P0).Add(Vec2(q.P1).Mul(2.0)).Div(3.0)),
		Point(Vec2(q.P2).Add(Vec2(q.P1).Mul(2.0)).Div(3.0)),
		q.P2,
	}
}

// Subdivide subdivides the quadratic into halves, using de Casteljau.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	pm := q.Eval(0.5)
	return QuadBez{q.P0, q.P0.Midpoint(q.P1), pm},
		QuadBez{pm, q.P1.Midpoint(q.P2), q.P2}
}

// AppendFlattened appends points approximating the curve within tolerance to
// dst, excluding P0, and returns the extended slice.
func (q QuadBez) AppendFlattened(dst []Point, tolerance float64) []Point {
	return q.appendFlattened(dst, tolerance*tolerance, 0)
}

func (q QuadBez) appendFlattened(dst []Point, tolSq float64, depth int) []Point {
	d, _ := Line{q.P0, q.P2}.Nearest(q.P1)
	// The curve deviates from the chord by at most half the control point's
	// distance.
	if depth >= maxFlattenDepth || d <= 4*tolSq {
		return append(dst, q.P2)
	}
	a, b := q.Subdivide()
	dst = a.appendFlattened(dst, tolSq, depth+1)
	return b.appendFlattened(dst, tolSq, depth+1)
}
