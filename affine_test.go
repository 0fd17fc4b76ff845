package vg

import (
	"math"
	"testing"
)

func TestAffineBasic(t *testing.T) {
	const epsilon = 1e-9
	p := Pt(3, 4)

	assertNear(t, p.Transform(Identity), p, epsilon)
	assertNear(t, p.Transform(Scale(2, 2)), Pt(6, 8), epsilon)
	assertNear(t, p.Transform(Rotate(0)), p, epsilon)
	assertNear(t, p.Transform(Rotate(math.Pi/2)), Pt(-4, 3), epsilon)
	assertNear(t, p.Transform(Translate(Vec(5, 6))), Pt(8, 10), epsilon)
	assertNear(t, p.Transform(Skew(0, 0)), p, epsilon)
	assertNear(t, p.Transform(Skew(2, 4)), Pt(11, 16), epsilon)
}

func TestAffineAbout(t *testing.T) {
	const epsilon = 1e-9
	c := Pt(10, 10)
	assertNear(t, c.Transform(RotateAbout(1, c)), c, epsilon)
	assertNear(t, Pt(12, 10).Transform(RotateAbout(math.Pi/2, c)), Pt(10, 12), epsilon)
}

func TestAffineIsIdentity(t *testing.T) {
	if !Identity.IsIdentity() || !Scale(1, 1).IsIdentity() || !Translate(Vec(0, 0)).IsIdentity() {
		t.Error("identity not recognized")
	}
	for _, aff := range []Affine{Scale(1, -1), Translate(Vec(1e-12, 0)), Rotate(math.Pi / 2), Skew(0.5, 0)} {
		if aff.IsIdentity() {
			t.Errorf("%v is the identity", aff)
		}
	}

	var p Path
	p.MoveTo(Pt(1, 2), false)
	p.LineTo(Pt(3, 5), false)
	before := p.Clone()
	p.Transform(Identity)
	diff(t, before.Nodes(), p.Nodes())
}

func TestAffineMul(t *testing.T) {
	const epsilon = 1e-9
	a1 := Affine{1, 2, 3, 4, 5, 6}
	a2 := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}

	px := Pt(1, 0)
	py := Pt(0, 1)
	pxy := Pt(1, 1)

	assertNear(t, px.Transform(a2).Transform(a1), px.Transform(a1.Mul(a2)), epsilon)
	assertNear(t, py.Transform(a2).Transform(a1), py.Transform(a1.Mul(a2)), epsilon)
	assertNear(t, pxy.Transform(a2).Transform(a1), pxy.Transform(a1.Mul(a2)), epsilon)
}

func TestAffineInvert(t *testing.T) {
	const epsilon = 1e-9
	a := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}
	aInv := a.Invert()

	px := Pt(1, 0)
	py := Pt(0, 1)
	pxy := Pt(1, 1)

	assertNear(t, px.Transform(aInv).Transform(a), px, epsilon)
	assertNear(t, py.Transform(aInv).Transform(a), py, epsilon)
	assertNear(t, pxy.Transform(aInv).Transform(a), pxy, epsilon)
	assertNear(t, px.Transform(a).Transform(aInv), px, epsilon)
	assertNear(t, py.Transform(a).Transform(aInv), py, epsilon)
	assertNear(t, pxy.Transform(a).Transform(aInv), pxy, epsilon)
}

func TestReflection(t *testing.T) {
	diff(t, Affine{1, 0, 0, -1, 0, 0}, Reflect(Point{}, Vec(1, 0)), approx(1e-9))
	diff(t, Affine{-1, 0, 0, 1, 0, 0}, Reflect(Point{}, Vec(0, 1)), approx(1e-9))
	diff(t, Affine{0, 1, 1, 0, 0, 0}, Reflect(Point{}, Vec(1, 1)), approx(1e-9))

	const epsilon = 1e-9
	aff := Reflect(Pt(1, 0), Vec(1, 1))
	assertNear(t, Pt(1, 0).Transform(aff), Pt(1, 0), epsilon)
	assertNear(t, Pt(2, 1).Transform(aff), Pt(2, 1), epsilon)
	assertNear(t, Pt(2, 2).Transform(aff), Pt(3, 1), epsilon)
}

func TestMeanScale(t *testing.T) {
	if got := Scale(2, 8).MeanScale(); got != 4 {
		t.Errorf("got %v, want 4", got)
	}
	if got := Rotate(0.7).MeanScale(); math.Abs(got-1) > 1e-12 {
		t.Errorf("got %v, want 1", got)
	}
	if got := FlipY.MeanScale(); got != 1 {
		t.Errorf("got %v, want 1", got)
	}
}

func TestTransformPoints(t *testing.T) {
	pts := []Point{{0, 0}, {1, 2}}
	TransformPoints(pts, Translate(Vec(1, 1)))
	diff(t, []Point{{1, 1}, {2, 3}}, pts)
}
