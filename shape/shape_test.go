package shape

import (
	"bytes"
	"math"
	"testing"

	"honnef.co/go/vg"
	"honnef.co/go/vg/storage"
)

func testShapes() []Shape {
	dot := NewDot(vg.Pt(1, 2))
	dot.SetPointType(3)
	line := NewLine(vg.Pt(0, 0), vg.Pt(10, 5))
	line.SetFlag(FixedLength, true)
	arc := &Arc{}
	arc.SetCenterRadius(vg.Pt(3, 4), 5, 0.3, -1.2)
	return []Shape{
		dot,
		line,
		NewRect(vg.Pt(0, 0), vg.Pt(10, 20)),
		NewEllipse(vg.Pt(0, 0), vg.Pt(20, 10)),
		NewRoundRect(vg.Pt(0, 0), vg.Pt(10, 10), 2, 3),
		NewDiamond(vg.Pt(-4, -2), vg.Pt(4, 2)),
		NewLines([]vg.Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 0}}, true),
		NewSplines([]vg.Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 0}, {X: 15, Y: 3}}, false),
		NewParallelogram(vg.Pt(0, 0), vg.Pt(10, 0), vg.Pt(15, 10)),
		NewImage("logo.png", vg.Pt(1, 1), vg.Pt(33, 17)),
		arc,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	f := NewFactory()
	for _, s := range testShapes() {
		t.Run(s.Type().String(), func(t *testing.T) {
			rec := storage.Record{}
			if err := s.Save(rec); err != nil {
				t.Fatal(err)
			}
			if !rec.Has("flags") {
				t.Error("record has no flags")
			}

			got, err := f.Load(s.Type(), rec)
			if err != nil {
				t.Fatal(err)
			}
			if !s.Equal(got) {
				t.Errorf("loaded %#v, want %#v", got, s)
			}
			for i := range s.PointCount() {
				diff(t, s.Point(i), got.Point(i))
			}
			diff(t, s.Extent(), got.Extent())
		})
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	ss := NewShapes()
	for _, s := range testShapes() {
		if _, ok := ss.Add(s); !ok {
			t.Fatalf("couldn't add %s", s.Type())
		}
	}
	doc, err := ss.Save()
	if err != nil {
		t.Fatal(err)
	}
	diff(t, ss.Len(), len(doc.Shapes))

	var buf bytes.Buffer
	if err := storage.Encode(&buf, doc, storage.JSON); err != nil {
		t.Fatal(err)
	}
	doc, err = storage.Decode(&buf, storage.JSON)
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadShapes(NewFactory(), doc)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, ss.Len(), loaded.Len())
	want := testShapes()
	i := 0
	for _, s := range loaded.All() {
		if !want[i].Equal(s) {
			t.Errorf("shape %d: %s differs after loading", i, s.Type())
		}
		i++
	}
}

func TestLoadIsAtomic(t *testing.T) {
	l := NewLine(vg.Pt(1, 1), vg.Pt(2, 2))
	err := l.Load(storage.Record{"flags": 0, "points": []float64{0, 0, 1}})
	wantErr(t, err, ErrMalformed)
	diff(t, vg.Pt(1, 1), l.Start())

	err = l.Load(storage.Record{"points": []float64{0, 0, 1, 1}})
	wantErr(t, err, storage.ErrMissingField)
	diff(t, vg.Pt(2, 2), l.End())

	err = l.Load(storage.Record{"flags": 0, "points": []float64{0, 0, math.NaN(), 1}})
	wantErr(t, err, ErrMalformed)

	err = l.Load(storage.Record{"flags": -1, "points": []float64{0, 0, 1, 1}})
	wantErr(t, err, ErrMalformed)
}

func TestSaveRejectsNonFinite(t *testing.T) {
	l := NewLine(vg.Pt(0, 0), vg.Pt(math.Inf(1), 0))
	wantErr(t, l.Save(storage.Record{}), ErrMalformed)
}

func TestIsKindOf(t *testing.T) {
	for _, s := range testShapes() {
		var rect, lines bool
		switch s.Type() {
		case TypeRect, TypeEllipse, TypeRoundRect, TypeDiamond, TypeImage:
			rect = true
		case TypeLines, TypeSplines:
			lines = true
		}
		if !s.IsKindOf(s.Type()) {
			t.Errorf("%s isn't of its own type", s.Type())
		}
		if got := s.IsKindOf(TypeRectFamily); got != rect {
			t.Errorf("%s.IsKindOf(rect family) = %t", s.Type(), got)
		}
		if got := s.IsKindOf(TypeLinesFamily); got != lines {
			t.Errorf("%s.IsKindOf(lines family) = %t", s.Type(), got)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	for _, s := range testShapes() {
		ss := NewShapes()
		ss.Add(s)
		c := s.Clone()
		if !s.Equal(c) {
			t.Errorf("%s: clone differs", s.Type())
		}
		if _, owned := c.Base().Owner(); owned {
			t.Errorf("%s: clone has an owner", s.Type())
		}

		if !c.Transform(vg.Translate(vg.Vec(100, 0))) {
			t.Fatalf("%s: couldn't move clone", s.Type())
		}
		if s.Equal(c) {
			t.Errorf("%s: moving the clone moved the original", s.Type())
		}
		if s.Extent() == c.Extent() {
			t.Errorf("%s: clone shares the extent", s.Type())
		}
	}
}

func TestLockedShapesRefuseEdits(t *testing.T) {
	for _, s := range testShapes() {
		before := s.Clone()
		s.Base().SetFlag(Locked, true)
		before.Base().SetFlag(Locked, true)

		if s.SetPoint(0, vg.Pt(-50, -50)) {
			t.Errorf("%s: SetPoint succeeded", s.Type())
		}
		if s.SetHandle(0, vg.Pt(-50, -50), 0) {
			t.Errorf("%s: SetHandle succeeded", s.Type())
		}
		if s.Transform(vg.Scale(2, 2)) {
			t.Errorf("%s: Transform succeeded", s.Type())
		}
		if !before.Equal(s) {
			t.Errorf("%s: locked shape changed", s.Type())
		}
	}
}

func TestOutputAndPath(t *testing.T) {
	for _, s := range testShapes() {
		p := Path(s)
		if p.Len() == 0 {
			t.Errorf("%s: empty path", s.Type())
		}
		if !s.IsCurve() && !s.Extent().Inflate(1e-9, 1e-9).ContainsRect(p.BoundingBox()) {
			t.Errorf("%s: path %v leaves extent %v", s.Type(), p.BoundingBox(), s.Extent())
		}
		figs := 0
		for f := range p.Figures() {
			figs++
			if f.Closed() != s.IsClosed() {
				t.Errorf("%s: figure closed = %t", s.Type(), f.Closed())
			}
		}
		diff(t, 1, figs)
	}
}

func TestHitTestBox(t *testing.T) {
	r := NewRect(vg.Pt(0, 0), vg.Pt(10, 10))
	for _, tt := range []struct {
		box  vg.Rect
		want bool
	}{
		{vg.Rect{X0: 2, Y0: 2, X1: 3, Y1: 3}, true},
		{vg.Rect{X0: -1, Y0: -1, X1: 1, Y1: 1}, true},
		{vg.Rect{X0: -5, Y0: -5, X1: 15, Y1: 15}, true},
		{vg.Rect{X0: 20, Y0: 20, X1: 30, Y1: 30}, false},
	} {
		if got := r.HitTestBox(tt.box); got != tt.want {
			t.Errorf("HitTestBox(%v) = %t, want %t", tt.box, got, tt.want)
		}
	}

	// The box lies in the notch of an open V.
	v := NewLines([]vg.Point{{X: 0, Y: 0}, {X: 5, Y: 10}, {X: 10, Y: 0}}, false)
	if v.HitTestBox(vg.Rect{X0: 4.5, Y0: 1, X1: 5.5, Y1: 2}) {
		t.Error("box in the notch hits the V")
	}
	if !v.HitTestBox(vg.Rect{X0: 4.5, Y0: 9, X1: 5.5, Y1: 11}) {
		t.Error("box on the tip misses the V")
	}
}

func TestFactory(t *testing.T) {
	f := NewFactory()
	diff(t, 11, len(f.Types()))

	for _, typ := range []Type{0, TypeRectFamily, TypeLinesFamily, 99} {
		_, err := f.Create(typ)
		wantErr(t, err, ErrUnknownType)
	}
	_, err := f.Load(99, storage.Record{})
	wantErr(t, err, ErrUnknownType)

	for _, typ := range f.Types() {
		s, err := f.Create(typ)
		if err != nil {
			t.Fatal(err)
		}
		diff(t, typ, s.Type())
	}

	ctor := func() Shape { return &Dot{} }
	for _, tt := range []struct {
		typ  Type
		ctor Constructor
	}{
		{TypeLine, ctor},
		{MaxBuiltinType, ctor},
		{40, nil},
	} {
		if err := f.Register(tt.typ, tt.ctor); err == nil {
			t.Errorf("registering %s succeeded", tt.typ)
		}
	}
	if err := f.Register(40, ctor); err != nil {
		t.Fatal(err)
	}
	if err := f.Register(40, ctor); err == nil {
		t.Error("registered 40 twice")
	}
	s, err := f.Create(40)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*Dot); !ok {
		t.Errorf("got %T, want *Dot", s)
	}

	_, err = NewFactory().Create(40)
	wantErr(t, err, ErrUnknownType)

	var zero Factory
	_, err = zero.Create(TypeLine)
	wantErr(t, err, ErrUnknownType)
	if err := zero.Register(0x1000, ctor); err != nil {
		t.Error(err)
	}
}

func TestLoadShapesSkipsBadRecords(t *testing.T) {
	doc := storage.NewDocument()
	NewLine(vg.Pt(0, 0), vg.Pt(1, 1)).Save(doc.Add(uint16(TypeLine)))
	doc.Add(99).SetInt("flags", 0)
	doc.Add(uint16(TypeRect)).SetInt("flags", 0)
	NewDot(vg.Pt(3, 4)).Save(doc.Add(uint16(TypeDot)))

	ss, err := LoadShapes(NewFactory(), doc)
	if err == nil {
		t.Fatal("bad records were accepted")
	}
	wantErr(t, err, ErrUnknownType)
	wantErr(t, err, storage.ErrMissingField)

	var types []Type
	for _, s := range ss.All() {
		types = append(types, s.Type())
	}
	diff(t, []Type{TypeLine, TypeDot}, types)
}

func TestShapesOwnership(t *testing.T) {
	ss := NewShapes()
	other := NewShapes()
	if ss.ID() == other.ID() {
		t.Fatal("containers share an id")
	}

	l := NewLine(vg.Pt(0, 0), vg.Pt(10, 0))
	slot, ok := ss.Add(l)
	if !ok {
		t.Fatal("couldn't add line")
	}
	o, owned := l.Owner()
	if !owned {
		t.Fatal("added line has no owner")
	}
	diff(t, Owner{Container: ss.ID(), Slot: slot}, o)

	if _, ok := ss.Add(l); ok {
		t.Error("added line twice")
	}
	if _, ok := other.Add(l); ok {
		t.Error("added owned line to another container")
	}

	r := NewRect(vg.Pt(0, 0), vg.Pt(10, 10))
	slot2, ok := ss.Add(r)
	if !ok {
		t.Fatal("couldn't add rect")
	}
	if slot2 == slot {
		t.Errorf("slot %d reused", slot)
	}
	if ss.Find(slot2) != r {
		t.Error("Find didn't return the rect")
	}
	if ss.Find(1000) != nil {
		t.Error("found a shape in an unused slot")
	}

	if ss.Remove(slot) != l {
		t.Error("Remove didn't return the line")
	}
	if _, owned := l.Owner(); owned {
		t.Error("removed line still has an owner")
	}
	if ss.Find(slot) != nil || ss.Remove(slot) != nil {
		t.Error("removed slot is still in use")
	}
	diff(t, 1, ss.Len())

	if _, ok := other.Add(l); !ok {
		t.Error("couldn't add the removed line elsewhere")
	}

	c := ss.Clone()
	diff(t, ss.Len(), c.Len())
	for _, s := range c.All() {
		o, _ := s.Base().Owner()
		diff(t, c.ID(), o.Container)
		if s == Shape(r) {
			t.Error("clone shares the rect")
		}
	}
}

func TestShapesHitTest(t *testing.T) {
	ss := NewShapes()
	bottom := NewRect(vg.Pt(0, 0), vg.Pt(10, 10))
	top := NewRect(vg.Pt(5, 5), vg.Pt(15, 15))
	ss.Add(bottom)
	ss.Add(top)

	// Within reach of both outlines.
	s, res, ok := ss.HitTest(vg.Pt(10, 5.5), 1)
	if !ok || s != Shape(top) {
		t.Fatalf("got %v, %t, want the top rect", s, ok)
	}
	diff(t, 0.5, res.Dist, approx(1e-12))

	top.SetFlag(Hidden, true)
	s, _, ok = ss.HitTest(vg.Pt(10, 5.5), 1)
	if !ok || s != Shape(bottom) {
		t.Fatalf("got %v, %t, want the bottom rect", s, ok)
	}
	diff(t, bottom.Extent(), ss.Extent())

	if _, _, ok := ss.HitTest(vg.Pt(3, 3), 1); ok {
		t.Error("unfilled rect hit on its inside")
	}
	bottom.Context.FillColor.A = 255
	s, res, ok = ss.HitTest(vg.Pt(3, 3), 1)
	if !ok || s != Shape(bottom) {
		t.Fatalf("got %v, %t, want the filled rect", s, ok)
	}
	if !res.Inside {
		t.Error("hit isn't inside")
	}
}
