package shape

import (
	"math"
	"testing"

	"honnef.co/go/vg"
	"honnef.co/go/vg/storage"
)

func quarterArc(t *testing.T) *Arc {
	t.Helper()
	a := NewArc(vg.Pt(10, 0), vg.Pt(10/math.Sqrt2, 10/math.Sqrt2), vg.Pt(0, 10))
	if a == nil {
		t.Fatal("NewArc returned nil")
	}
	return a
}

func centerArc(t *testing.T, center vg.Point, radius, start, sweep float64) *Arc {
	t.Helper()
	a := &Arc{}
	if !a.SetCenterRadius(center, radius, start, sweep) {
		t.Fatalf("SetCenterRadius(%v, %g, %g, %g) failed", center, radius, start, sweep)
	}
	return a
}

func TestArcDerived(t *testing.T) {
	a := quarterArc(t)
	diff(t, vg.Pt(0, 0), a.Center(), approx(1e-9))
	diff(t, 10.0, a.Radius(), approx(1e-9))
	diff(t, 0.0, a.StartAngle(), approx(1e-9))
	diff(t, math.Pi/2, a.SweepAngle(), approx(1e-9))
	diff(t, math.Pi/2, a.EndAngle(), approx(1e-9))
	diff(t, vg.Vec(0, 10), a.StartTangent(), approx(1e-9))
	diff(t, vg.Vec(-10, 0), a.EndTangent(), approx(1e-9))
	if a.IsClosed() || !a.IsCurve() {
		t.Error("arc should be an open curve")
	}

	var pts []vg.Point
	for i := range a.PointCount() {
		pts = append(pts, a.Point(i))
	}
	want := []vg.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 10 / math.Sqrt2, Y: 10 / math.Sqrt2}}
	diff(t, want, pts, approx(1e-9))

	ext := a.Extent()
	diff(t, []float64{0, 10, 10}, []float64{ext.X0, ext.X1, ext.Y1}, approx(1e-9))

	if NewArc(vg.Pt(0, 0), vg.Pt(1, 1), vg.Pt(2, 2)) != nil {
		t.Error("collinear points made an arc")
	}
}

func TestArcSetters(t *testing.T) {
	a := quarterArc(t)

	if !a.SetCenterStartEnd(vg.Pt(0, 0), vg.Pt(5, 0), vg.Pt(0, -3)) {
		t.Fatal("SetCenterStartEnd failed")
	}
	diff(t, 5.0, a.Radius(), approx(1e-12))
	diff(t, 3*math.Pi/2, a.SweepAngle(), approx(1e-12))
	diff(t, vg.Pt(0, -5), a.EndPoint(), approx(1e-9))
	if a.SetCenterStartEnd(vg.Pt(0, 0), vg.Pt(5, 0), vg.Pt(0, 0)) {
		t.Error("end on the center was accepted")
	}

	if !a.SetCenterStart(vg.Pt(1, 1), vg.Pt(1, 3)) {
		t.Fatal("SetCenterStart failed")
	}
	diff(t, 2.0, a.Radius(), approx(1e-12))
	diff(t, math.Pi/2, a.StartAngle(), approx(1e-12))
	diff(t, 3*math.Pi/2, a.SweepAngle(), approx(1e-12))

	if !a.SetCenterRadius(vg.Pt(0, 0), 4, math.Pi, -math.Pi/2) {
		t.Fatal("SetCenterRadius failed")
	}
	diff(t, vg.Pt(-4, 0), a.StartPoint(), approx(1e-9))
	diff(t, vg.Pt(0, 4), a.EndPoint(), approx(1e-9))
	if a.SetCenterRadius(vg.Pt(0, 0), 0, 0, 1) {
		t.Error("zero radius was accepted")
	}
	if a.SetCenterRadius(vg.Pt(0, 0), 1, 0, 0) {
		t.Error("zero sweep was accepted")
	}
	if !a.SetCenterRadius(vg.Pt(0, 0), 1, 0, -9) {
		t.Fatal("SetCenterRadius failed")
	}
	diff(t, -2*math.Pi, a.SweepAngle())

	if !a.SetTanStartEnd(vg.Vec(0, 1), vg.Pt(0, 0), vg.Pt(-10, 0)) {
		t.Fatal("SetTanStartEnd failed")
	}
	diff(t, vg.Pt(-5, 0), a.Center(), approx(1e-9))
	diff(t, math.Pi, math.Abs(a.SweepAngle()), approx(1e-9))
	diff(t, vg.Vec(0, 5), a.StartTangent().WithLength(5), approx(1e-9))
	if a.SetTanStartEnd(vg.Vec(1, 0), vg.Pt(0, 0), vg.Pt(10, 0)) {
		t.Error("tangent along the chord was accepted")
	}
}

func TestArcHandles(t *testing.T) {
	a := quarterArc(t)
	diff(t, 4, a.HandleCount())
	diff(t, []HandleType{HandleCenter, HandleVertex, HandleMidpoint},
		[]HandleType{a.HandleType(0), a.HandleType(1), a.HandleType(3)})

	if !a.SetHandle(0, vg.Pt(5, 5), 1) {
		t.Fatal("moving the center failed")
	}
	diff(t, vg.Pt(15, 5), a.StartPoint(), approx(1e-9))
	diff(t, vg.Pt(5, 15), a.EndPoint(), approx(1e-9))

	// Moving the end onto the line through start and mid is degenerate.
	before := a.Clone()
	mid := a.MidPoint()
	start := a.StartPoint()
	if a.SetHandle(2, start.Translate(mid.Sub(start).Mul(2)), 0) {
		t.Error("collinear end was accepted")
	}
	if !before.Equal(a) {
		t.Error("rejected handle move changed the arc")
	}
	if a.SetHandle(2, start, 1) {
		t.Error("end on the start was accepted")
	}
	if a.SetHandle(2, mid.Translate(vg.Vec(0.5, 0)), 1) {
		t.Error("end within tolerance of mid was accepted")
	}
	if a.SetHandle(4, start, 0) {
		t.Error("handle 4 was accepted")
	}

	if !a.SetHandle(2, vg.Pt(-5, 5), 0) {
		t.Fatal("moving the end failed")
	}
	diff(t, vg.Pt(-5, 5), a.EndPoint(), approx(1e-9))
	diff(t, vg.Pt(15, 5), a.StartPoint(), approx(1e-9))
	diff(t, 10.0, a.Radius(), approx(1e-9))
	diff(t, math.Pi, a.SweepAngle(), approx(1e-9))
}

func TestArcTransform(t *testing.T) {
	a := quarterArc(t)
	if !a.Transform(vg.Scale(1, -1)) {
		t.Fatal("mirroring failed")
	}
	diff(t, -math.Pi/2, a.SweepAngle(), approx(1e-9))
	diff(t, vg.Pt(0, -10), a.EndPoint(), approx(1e-9))

	if !a.Transform(vg.Scale(2, 2)) {
		t.Fatal("scaling failed")
	}
	diff(t, 20.0, a.Radius(), approx(1e-9))
	if a.Transform(vg.Scale(0, 1)) {
		t.Error("collapsing transform was accepted")
	}

	before := a.Clone()
	if !a.Transform(vg.Identity) || !before.Equal(a) {
		t.Error("identity transform changed the arc")
	}
}

func TestArcTransformFullCircle(t *testing.T) {
	a := centerArc(t, vg.Pt(1, 1), 5, math.Pi/3, 2*math.Pi)

	if !a.Transform(vg.Scale(2, 2)) {
		t.Fatal("scaling failed")
	}
	want := vg.CircleArc{Center: vg.Pt(2, 2), Radius: 10, StartAngle: math.Pi / 3, SweepAngle: 2 * math.Pi}
	diff(t, want, a.CircleArc(), approx(1e-9))

	if !a.Transform(vg.Scale(1, -1)) {
		t.Fatal("mirroring failed")
	}
	want = vg.CircleArc{Center: vg.Pt(2, -2), Radius: 10, StartAngle: -math.Pi / 3, SweepAngle: -2 * math.Pi}
	diff(t, want, a.CircleArc(), approx(1e-9))

	if !a.Transform(vg.Translate(vg.Vec(3, 0))) {
		t.Fatal("translation failed")
	}
	diff(t, vg.Pt(5, -2), a.Center(), approx(1e-9))
	diff(t, -2*math.Pi, a.SweepAngle())

	if a.Transform(vg.Scale(0, 1)) {
		t.Error("collapsing transform was accepted")
	}
}

func TestArcSaveLoadExact(t *testing.T) {
	for _, tt := range []struct {
		name string
		arc  *Arc
	}{
		{"quarter", quarterArc(t)},
		{"rotated", centerArc(t, vg.Pt(3, 4), 5, 0.3, -1.2)},
		{"full circle", centerArc(t, vg.Pt(0, 0), 5, math.Pi/3, 2*math.Pi)},
		{"reverse full circle", centerArc(t, vg.Pt(-2, 7), 1e-3, 3, -2*math.Pi)},
	} {
		t.Run(tt.name, func(t *testing.T) {
			rec := storage.Record{}
			if err := tt.arc.Save(rec); err != nil {
				t.Fatal(err)
			}
			pts, err := rec.Floats("points")
			if err != nil {
				t.Fatal(err)
			}
			diff(t, 8, len(pts))

			got, err := NewFactory().Load(TypeArc, rec)
			if err != nil {
				t.Fatal(err)
			}
			if !tt.arc.Equal(got) {
				t.Errorf("loaded %+v, want %+v", got.(*Arc).CircleArc(), tt.arc.CircleArc())
			}
			diff(t, tt.arc.CircleArc(), got.(*Arc).CircleArc())
		})
	}
}

func TestArcLoadFromPoints(t *testing.T) {
	for _, a := range []*Arc{
		quarterArc(t),
		centerArc(t, vg.Pt(1, 2), 5, math.Pi/3, 3*math.Pi/2),
		centerArc(t, vg.Pt(1, 2), 5, 2, -math.Pi/2),
	} {
		rec := storage.Record{}
		if err := a.Save(rec); err != nil {
			t.Fatal(err)
		}
		delete(rec, "radius")
		delete(rec, "start")
		delete(rec, "sweep")

		var got Arc
		if err := got.Load(rec); err != nil {
			t.Fatal(err)
		}
		diff(t, a.CircleArc(), got.CircleArc(), approx(1e-9))
	}

	var got Arc
	err := got.Load(storage.Record{"flags": 0, "points": []float64{0, 0, 1, 1, 2, 2, 3, 3}})
	wantErr(t, err, ErrMalformed)
}

func TestArcLoadRejectsMalformed(t *testing.T) {
	for _, tt := range []struct {
		field string
		value float64
	}{
		{"sweep", 0},
		{"sweep", 7},
		{"sweep", math.NaN()},
		{"radius", -1},
		{"radius", 0},
		{"start", math.Inf(1)},
	} {
		a := quarterArc(t)
		rec := storage.Record{}
		if err := a.Save(rec); err != nil {
			t.Fatal(err)
		}
		rec.SetFloat(tt.field, tt.value)

		before := a.Clone()
		if err := a.Load(rec); err == nil {
			t.Errorf("%s = %g was accepted", tt.field, tt.value)
		} else {
			wantErr(t, err, ErrMalformed)
		}
		if !before.Equal(a) {
			t.Errorf("%s = %g: failed load changed the arc", tt.field, tt.value)
		}
	}

	a := quarterArc(t)
	rec := storage.Record{}
	a.Save(rec)
	delete(rec, "radius")
	wantErr(t, a.Load(rec), storage.ErrMissingField)
}

func TestArcHitTestAndOutput(t *testing.T) {
	a := quarterArc(t)
	res, ok := a.HitTest(vg.Pt(0, 11), 1.5)
	if !ok {
		t.Fatal("no hit")
	}
	diff(t, 1.0, res.Dist, approx(1e-6))
	if res.Inside {
		t.Error("hit on an open arc is inside")
	}

	if _, ok := a.HitTest(vg.Pt(-10, 0), 1); ok {
		t.Error("hit far from the arc")
	}

	p := Path(a)
	diff(t, 4, p.Len())
	diff(t, vg.Pt(0, 10), p.EndPoint(), approx(1e-9))

	a.Clear()
	if a.Output(vg.NewPath()) {
		t.Error("cleared arc has output")
	}
}
