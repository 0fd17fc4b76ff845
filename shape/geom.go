package shape

import (
	"fmt"
	"math"

	"honnef.co/go/vg"
	"honnef.co/go/vg/storage"
)

// flattenTolerance returns the tolerance used to flatten curves when hit
// testing with tolerance tol.
func flattenTolerance(tol float64) float64 {
	if tol > 0 {
		return max(tol/10, 1e-6)
	}
	return vg.DefaultTolerance
}

// hitTest tests pt against an outline made of polyline segments. The segments
// of closed outlines are expected to join up into a polygon.
func hitTest(segs [][]vg.Point, closed bool, pt vg.Point, tol float64) (HitResult, bool) {
	res := HitResult{Dist: math.Inf(1), Segment: -1}
	for i, seg := range segs {
		near, d, _ := vg.NearestOnPolyline(seg, false, pt)
		if d < res.Dist {
			res.Nearest, res.Dist, res.Segment = near, d, i
		}
	}
	if closed && len(segs) > 0 {
		var poly []vg.Point
		for _, seg := range segs {
			poly = append(poly, seg...)
		}
		res.Inside = vg.PolygonContains(poly, pt)
	}
	return res, res.Segment >= 0 && res.Dist <= tol
}

// hitTestBox reports whether the outline of s passes through r, or whether r
// lies inside the closed outline of s.
func hitTestBox(s Shape, r vg.Rect) bool {
	ext := s.Extent()
	if !ext.Overlaps(r) {
		return false
	}
	if r.ContainsRect(ext) {
		return true
	}
	p := Path(s)
	tol := vg.DefaultTolerance
	return p.IntersectsRect(r, tol) || (s.IsClosed() && p.Contains(r.Center(), tol))
}

// cubicSegments flattens the cubic Béziers in bz, which holds a start point
// followed by three points per curve, into one polyline per curve.
func cubicSegments(bz []vg.Point, tol float64) [][]vg.Point {
	var segs [][]vg.Point
	for i := 0; i+3 < len(bz); i += 3 {
		c := vg.CubicBez{P0: bz[i], P1: bz[i+1], P2: bz[i+2], P3: bz[i+3]}
		segs = append(segs, c.AppendFlattened([]vg.Point{c.P0}, tol))
	}
	return segs
}

// polygonSegments returns the edges of the polygon pts.
func polygonSegments(pts []vg.Point, closed bool) [][]vg.Point {
	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	if len(pts) == 1 {
		return [][]vg.Point{{pts[0]}}
	}
	segs := make([][]vg.Point, 0, max(n, 0))
	for i := range n {
		segs = append(segs, []vg.Point{pts[i], pts[(i+1)%len(pts)]})
	}
	return segs
}

func transformed(pts []vg.Point, aff vg.Affine) []vg.Point {
	out := make([]vg.Point, len(pts))
	for i, pt := range pts {
		out[i] = pt.Transform(aff)
	}
	return out
}

func allFinite(pts []vg.Point) bool {
	for _, pt := range pts {
		if !pt.IsFinite() {
			return false
		}
	}
	return true
}

func savePoints(w storage.Writer, pts []vg.Point) error {
	if !allFinite(pts) {
		return fmt.Errorf("non-finite point: %w", ErrMalformed)
	}
	fs := make([]float64, 0, 2*len(pts))
	for _, pt := range pts {
		fs = append(fs, pt.X, pt.Y)
	}
	w.SetFloats("points", fs)
	return nil
}

// loadPoints reads the points field. If n isn't negative, the field must hold
// exactly n points.
func loadPoints(r storage.Reader, n int) ([]vg.Point, error) {
	fs, err := r.Floats("points")
	if err != nil {
		return nil, err
	}
	if len(fs)%2 != 0 || (n >= 0 && len(fs) != 2*n) {
		return nil, fmt.Errorf("%d coordinates: %w", len(fs), ErrMalformed)
	}
	pts := make([]vg.Point, len(fs)/2)
	for i := range pts {
		pts[i] = vg.Pt(fs[2*i], fs[2*i+1])
	}
	if !allFinite(pts) {
		return nil, fmt.Errorf("non-finite point: %w", ErrMalformed)
	}
	return pts, nil
}

func loadFloat(r storage.Reader, name string) (float64, error) {
	f, err := r.Float(name)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s: %w", name, ErrMalformed)
	}
	return f, nil
}
