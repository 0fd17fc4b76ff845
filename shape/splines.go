package shape

import (
	"slices"

	"honnef.co/go/vg"
	"honnef.co/go/vg/storage"
)

// Splines is a smooth curve through its knots: a cubic spline with continuous
// first and second derivatives, open with natural ends or closed and
// periodic. Each knot keeps its tangent, which is recomputed whenever a knot
// changes.
type Splines struct {
	linesBase
}

// NewSplines returns the spline through knots.
func NewSplines(knots []vg.Point, closed bool) *Splines {
	s := newSplines()
	s.pts = slices.Clone(knots)
	s.closed = closed
	s.changed()
	return s
}

func newSplines() *Splines {
	s := &Splines{}
	s.tangents = new([]vg.Vec2)
	return s
}

func (s *Splines) Type() Type { return TypeSplines }

func (s *Splines) IsKindOf(t Type) bool { return t == TypeSplines || t == TypeLinesFamily }
func (s *Splines) IsCurve() bool        { return true }

// IsIncrementFrom reports whether s is src with knots appended, the last knot
// of src possibly moved.
func (s *Splines) IsIncrementFrom(src *Splines) bool { return s.isIncrementFrom(&src.linesBase) }

// Tangents returns a copy of the knot tangents.
func (s *Splines) Tangents() []vg.Vec2 { return slices.Clone(s.knotTangents()) }

func (s *Splines) knotTangents() []vg.Vec2 {
	if s.tangents == nil || len(*s.tangents) != len(s.pts) {
		// Zero value, not made by a constructor.
		return splineTangents(s.pts, s.closed)
	}
	return *s.tangents
}

// Bezier returns the curve as a start point followed by three control points
// per segment. Segment i starts at knot i.
func (s *Splines) Bezier() []vg.Point {
	return splineBezier(s.pts, s.knotTangents(), s.closed)
}

func splineBezier(pts []vg.Point, tans []vg.Vec2, closed bool) []vg.Point {
	n := len(pts)
	if n < 2 {
		return nil
	}
	segs := n - 1
	if closed {
		segs = n
	}
	bz := make([]vg.Point, 0, 1+3*segs)
	bz = append(bz, pts[0])
	for i := range segs {
		j := (i + 1) % n
		bz = append(bz,
			pts[i].Translate(tans[i].Div(3)),
			pts[j].Translate(tans[j].Div(-3)),
			pts[j],
		)
	}
	return bz
}

// splineTangents returns the first derivatives at the knots of the cubic
// spline through pts, parameterized by knot index.
func splineTangents(pts []vg.Point, closed bool) []vg.Vec2 {
	n := len(pts)
	switch {
	case n == 0:
		return nil
	case n == 1:
		return []vg.Vec2{{}}
	case n == 2:
		d := pts[1].Sub(pts[0])
		return []vg.Vec2{d, d}
	}

	rhs := make([]vg.Vec2, n)
	diag := make([]float64, n)
	for i := range n {
		diag[i] = 4
	}
	if closed {
		for i := range n {
			rhs[i] = pts[(i+1)%n].Sub(pts[(i+n-1)%n]).Mul(3)
		}
		return solveCyclic(diag, rhs)
	}
	// Natural ends: zero second derivative at the first and last knot.
	diag[0], diag[n-1] = 2, 2
	rhs[0] = pts[1].Sub(pts[0]).Mul(3)
	rhs[n-1] = pts[n-1].Sub(pts[n-2]).Mul(3)
	for i := 1; i < n-1; i++ {
		rhs[i] = pts[i+1].Sub(pts[i-1]).Mul(3)
	}
	return solveTridiagonal(diag, rhs)
}

// solveTridiagonal solves the system with diagonal diag, ones above and below
// the diagonal and right-hand side rhs, using the Thomas algorithm.
func solveTridiagonal(diag []float64, rhs []vg.Vec2) []vg.Vec2 {
	n := len(diag)
	c := make([]float64, n)
	x := make([]vg.Vec2, n)
	c[0] = 1 / diag[0]
	x[0] = rhs[0].Div(diag[0])
	for i := 1; i < n; i++ {
		m := diag[i] - c[i-1]
		c[i] = 1 / m
		x[i] = rhs[i].Sub(x[i-1]).Div(m)
	}
	for i := n - 2; i >= 0; i-- {
		x[i] = x[i].Sub(x[i+1].Mul(c[i]))
	}
	return x
}

// solveCyclic solves the tridiagonal system of solveTridiagonal with ones
// added in the top right and bottom left corners, using the Sherman–Morrison
// formula.
func solveCyclic(diag []float64, rhs []vg.Vec2) []vg.Vec2 {
	n := len(diag)
	gamma := -diag[0]
	bb := slices.Clone(diag)
	bb[0] -= gamma
	bb[n-1] -= 1 / gamma
	x := solveTridiagonal(bb, rhs)

	u := make([]vg.Vec2, n)
	u[0] = vg.Vec(gamma, gamma)
	u[n-1] = vg.Vec(1, 1)
	z := solveTridiagonal(bb, u)

	// Both coordinates share the matrix, so z.X == z.Y.
	den := 1 + z[0].X + z[n-1].X/gamma
	fx := (x[0].X + x[n-1].X/gamma) / den
	fy := (x[0].Y + x[n-1].Y/gamma) / den
	for i := range x {
		x[i] = vg.Vec(x[i].X-fx*z[i].X, x[i].Y-fy*z[i].Y)
	}
	return x
}

// Smooth removes knots as long as the curve stays within tol of every removed
// knot. It reports whether any knot was removed.
func (s *Splines) Smooth(tol float64) bool {
	if s.IsLocked() || !(tol > 0) {
		return false
	}
	minCount := 2
	if s.closed {
		minCount = 3
	}
	pts := slices.Clone(s.pts)
	removed := false
	first, last := 1, 1
	if s.closed {
		first, last = 0, 0
	}
	for i := first; i < len(pts)-last && len(pts) > minCount; {
		cand := slices.Delete(slices.Clone(pts), i, i+1)
		bz := splineBezier(cand, splineTangents(cand, s.closed), s.closed)
		p := vg.NewPath()
		p.MoveTo(bz[0], false)
		p.BeziersTo(bz[1:], false, false)
		if _, d, _ := p.Nearest(pts[i], flattenTolerance(tol)); d <= tol {
			pts = cand
			removed = true
			continue
		}
		i++
	}
	if removed {
		s.pts = pts
		s.changed()
	}
	return removed
}

func (s *Splines) Clone() Shape { return &Splines{s.cloneLines()} }

func (s *Splines) Equal(o Shape) bool {
	os, ok := o.(*Splines)
	return ok && s.equalLines(&os.linesBase)
}

func (s *Splines) Extent() vg.Rect {
	return s.cachedExtent(func() vg.Rect {
		if len(s.pts) < 2 {
			return vg.BoundingRect(s.pts)
		}
		return Path(s).BoundingBox()
	})
}

// HitTest reports the index of the knot starting the curve segment holding the
// nearest point as the segment.
func (s *Splines) HitTest(pt vg.Point, tol float64) (HitResult, bool) {
	if len(s.pts) < 2 {
		return hitTest(polygonSegments(s.pts, false), false, pt, tol)
	}
	return hitTest(cubicSegments(s.Bezier(), flattenTolerance(tol)), s.closed, pt, tol)
}

func (s *Splines) HitTestBox(r vg.Rect) bool { return hitTestBox(s, r) }

func (s *Splines) Output(p *vg.Path) bool {
	bz := s.Bezier()
	if len(bz) < 4 {
		return false
	}
	p.MoveTo(bz[0], false)
	p.BeziersTo(bz[1:], false, false)
	if s.closed {
		p.CloseFigure()
	}
	return true
}

func (s *Splines) Save(w storage.Writer) error { return s.saveLines(w) }

func (s *Splines) Load(r storage.Reader) error {
	if s.tangents == nil {
		s.tangents = new([]vg.Vec2)
	}
	return s.loadLines(r)
}
