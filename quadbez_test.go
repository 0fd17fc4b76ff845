package vg

import (
	"testing"
)

func TestQuadBezRaise(t *testing.T) {
	q := QuadBez{
		Pt(3.1, 4.1),
		Pt(5.9, 2.6),
		Pt(5.3, 5.8),
	}
	c := q.Raise()
	const epsilon = 1e-12
	const n = 10

	for i := range n + 1 {
		ts := float64(i) / float64(n)
		assertNear(t, q.Eval(ts), c.Eval(ts), epsilon)
	}
}

func TestQuadBezFlatten(t *testing.T) {
	q := QuadBez{Pt(0, 0), Pt(50, 100), Pt(100, 0)}
	for _, tol := range []float64{1, 0.1, 0.01} {
		pts := q.AppendFlattened([]Point{q.P0}, tol)
		if pts[len(pts)-1] != q.P2 {
			t.Fatalf("flattened curve ends at %v, want %v", pts[len(pts)-1], q.P2)
		}
		const n = 200
		for i := range n + 1 {
			p := q.Eval(float64(i) / n)
			if _, d, _ := NearestOnPolyline(pts, false, p); d > tol {
				t.Fatalf("tolerance %g: curve point %v is %g away from the polyline", tol, p, d)
			}
		}
	}
}
