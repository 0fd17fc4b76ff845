package vg

// maxFlattenDepth bounds the recursion of flattening. 2^16 pieces per curve
// is far beyond any useful tolerance.
const maxFlattenDepth = 16

type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (c CubicBez) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

func (cb CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(cb.P0).Mul(mt * mt * mt)
	b := Vec2(cb.P1).Mul(mt * mt * 3.0)
	c := Vec2(cb.P2).Mul(mt * 3.0)
	d := Vec2(cb.P3)
	v := a.Add(b.Add(c.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	q0 := c.P0.Midpoint(c.P1)
	q1 := c.P1.Midpoint(c.P2)
	q2 := c.P2.Midpoint(c.P3)
	r0 := q0.Midpoint(q1)
	r1 := q1.Midpoint(q2)
	s := r0.Midpoint(r1)
	return CubicBez{c.P0, q0, r0, s}, CubicBez{s, r1, q2, c.P3}
}

// ControlBox returns the bounding box of the control points, which contains
// the curve.
func (c CubicBez) ControlBox() Rect {
	return BoundingRect([]Point{c.P0, c.P1, c.P2, c.P3})
}

// Tangents returns the start and end tangents of the curve. Coincident
// control points fall back to the next distinct one.
func (c CubicBez) Tangents() (Vec2, Vec2) {
	const epsilon = 1e-12
	d01 := c.P1.Sub(c.P0)
	d02 := c.P2.Sub(c.P0)
	d03 := c.P3.Sub(c.P0)
	d23 := c.P3.Sub(c.P2)
	d13 := c.P3.Sub(c.P1)
	start := d01
	if start.Hypot2() < epsilon {
		start = d02
		if start.Hypot2() < epsilon {
			start = d03
		}
	}
	end := d23
	if end.Hypot2() < epsilon {
		end = d13
		if end.Hypot2() < epsilon {
			end = d03
		}
	}
	return start, end
}

// flatness returns the largest squared distance of the inner control points
// from the chord P0–P3.
func (c CubicBez) flatness() float64 {
	chord := Line{c.P0, c.P3}
	d1, _ := chord.Nearest(c.P1)
	d2, _ := chord.Nearest(c.P2)
	return max(d1, d2)
}

// AppendFlattened appends points approximating the curve within tolerance to
// dst, excluding P0, and returns the extended slice.
func (c CubicBez) AppendFlattened(dst []Point, tolerance float64) []Point {
	return c.appendFlattened(dst, tolerance*tolerance, 0)
}

func (c CubicBez) appendFlattened(dst []Point, tolSq float64, depth int) []Point {
	if depth >= maxFlattenDepth || c.flatness() <= tolSq {
		return append(dst, c.P3)
	}
	a, b := c.Subdivide()
	dst = a.appendFlattened(dst, tolSq, depth+1)
	return b.appendFlattened(dst, tolSq, depth+1)
}

func (c CubicBez) Transform(aff Affine) CubicBez {
	return CubicBez{
		P0: c.P0.Transform(aff),
		P1: c.P1.Transform(aff),
		P2: c.P2.Transform(aff),
		P3: c.P3.Transform(aff),
	}
}
