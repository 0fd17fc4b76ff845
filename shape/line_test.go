package shape

import (
	"math"
	"testing"

	"honnef.co/go/vg"
)

func TestLineHitTest(t *testing.T) {
	l := NewLine(vg.Pt(0, 0), vg.Pt(10, 0))

	res, ok := l.HitTest(vg.Pt(5, 1), 2)
	if !ok {
		t.Fatal("no hit")
	}
	diff(t, HitResult{Nearest: vg.Pt(5, 0), Dist: 1, Segment: 0}, res, approx(1e-12))

	if _, ok := l.HitTest(vg.Pt(5, 1), 0.5); ok {
		t.Error("hit outside the tolerance")
	}

	res, ok = l.HitTest(vg.Pt(13, 4), 10)
	if !ok {
		t.Fatal("no hit past the end")
	}
	diff(t, vg.Pt(10, 0), res.Nearest)
	diff(t, 5.0, res.Dist, approx(1e-12))
}

func TestLineGeometry(t *testing.T) {
	l := NewLine(vg.Pt(0, 0), vg.Pt(0, 10))
	diff(t, vg.Pt(0, 5), l.Center())
	diff(t, 10.0, l.Length())
	diff(t, math.Pi/2, l.Angle(), approx(1e-12))
	diff(t, vg.Rect{X0: 0, Y0: 0, X1: 0, Y1: 10}, l.Extent())

	if !l.SetEnd(vg.Pt(-10, 10)) {
		t.Fatal("SetEnd failed")
	}
	diff(t, vg.Rect{X0: -10, Y0: 0, X1: 0, Y1: 10}, l.Extent())
	if l.SetPoint(2, vg.Pt(1, 1)) {
		t.Error("point 2 was accepted")
	}
}

func TestLineHandles(t *testing.T) {
	l := NewLine(vg.Pt(0, 0), vg.Pt(10, 0))
	diff(t, 3, l.HandleCount())
	diff(t, vg.Pt(5, 0), l.Handle(2))
	diff(t, HandleMidpoint, l.HandleType(2))
	if !l.IsHandleFixed(2) || l.IsHandleFixed(0) {
		t.Error("only the midpoint handle should be fixed")
	}
	if l.SetHandle(2, vg.Pt(5, 5), 0) {
		t.Error("midpoint handle moved")
	}

	// Too short.
	if l.SetHandle(1, vg.Pt(0.5, 0), 1) {
		t.Error("short line was accepted")
	}
	diff(t, vg.Pt(10, 0), l.End())

	if !l.SetHandle(1, vg.Pt(3, 4), 1) {
		t.Fatal("end move failed")
	}
	diff(t, vg.Pt(3, 4), l.End())

	l.SetFlag(FixedLength, true)
	if !l.SetHandle(1, vg.Pt(0, 100), 1) {
		t.Fatal("fixed-length end move failed")
	}
	diff(t, vg.Pt(0, 5), l.End(), approx(1e-12))
	diff(t, 5.0, l.Length(), approx(1e-12))
	if l.SetHandle(1, l.Start(), 1) {
		t.Error("end on the start was accepted")
	}
}

func TestLineTransform(t *testing.T) {
	l := NewLine(vg.Pt(1, 0), vg.Pt(2, 0))
	if !l.Transform(vg.Scale(2, 3).ThenTranslate(vg.Vec(1, 1))) {
		t.Fatal("transform failed")
	}
	diff(t, vg.Pt(3, 1), l.Start())
	diff(t, vg.Pt(5, 1), l.End())

	l.Clear()
	diff(t, vg.Point{}, l.Start())
	diff(t, vg.Point{}, l.End())
}

func TestDot(t *testing.T) {
	d := NewDot(vg.Pt(3, 4))
	diff(t, 1, d.PointCount())
	diff(t, vg.Pt(3, 4), d.Handle(0))

	res, ok := d.HitTest(vg.Pt(3, 6), 2)
	if !ok {
		t.Fatal("no hit")
	}
	diff(t, 2.0, res.Dist, approx(1e-12))

	if !d.HitTestBox(vg.Rect{X0: 0, Y0: 0, X1: 3, Y1: 4}) {
		t.Error("box on the dot misses")
	}
	if d.HitTestBox(vg.Rect{X0: 0, Y0: 0, X1: 2, Y1: 2}) {
		t.Error("box away from the dot hits")
	}

	if !d.SetHandle(0, vg.Pt(1, 1), 0) {
		t.Fatal("handle move failed")
	}
	diff(t, vg.Pt(1, 1), d.Point(0))
	diff(t, "M1,1 L1,1", Path(d).SVG(vg.SVGOptions{}))
}
