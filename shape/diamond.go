package shape

import (
	"math"

	"honnef.co/go/vg"
	"honnef.co/go/vg/storage"
)

// Diamond is the rhombus whose vertices are the edge midpoints of a possibly
// rotated rectangle.
type Diamond struct {
	rectBase
}

// NewDiamond returns the diamond inscribed in the axis-aligned rectangle with
// opposite corners pt1 and pt2.
func NewDiamond(pt1, pt2 vg.Point) *Diamond {
	d := &Diamond{}
	d.SetRect2P(pt1, pt2)
	return d
}

func (d *Diamond) Type() Type { return TypeDiamond }

func (d *Diamond) IsKindOf(t Type) bool { return t == TypeDiamond || t == TypeRectFamily }
func (d *Diamond) IsCurve() bool        { return false }

// Vertices returns the top, right, bottom and left vertices.
func (d *Diamond) Vertices() [4]vg.Point {
	var v [4]vg.Point
	for i := range v {
		v[i] = d.rectBase.Handle(i + 4)
	}
	return v
}

func (d *Diamond) Clone() Shape { return &Diamond{d.cloneRect()} }

func (d *Diamond) Equal(o Shape) bool {
	od, ok := o.(*Diamond)
	return ok && d.equalRect(&od.rectBase)
}

func (d *Diamond) Clear() { d.clearRect() }

// Diamonds have five handles: the top, right, bottom and left vertices and the
// center, which can't be dragged.
func (d *Diamond) HandleCount() int { return 5 }

func (d *Diamond) Handle(i int) vg.Point {
	switch {
	case i >= 0 && i < 4:
		return d.rectBase.Handle(i + 4)
	case i == 4:
		return d.Center()
	}
	return vg.Point{}
}

func (d *Diamond) HandleType(i int) HandleType {
	if i == 4 {
		return HandleCenter
	}
	return HandleVertex
}

func (d *Diamond) IsHandleFixed(i int) bool { return i == 4 }

// SetHandle moves a vertex along its axis. The opposite vertex moves by the
// same amount in the other direction.
func (d *Diamond) SetHandle(i int, pt vg.Point, tol float64) bool {
	if i < 0 || i > 3 || d.IsLocked() {
		return false
	}
	lp := pt.Transform(d.frame().Invert())
	w, h := d.Width(), d.Height()
	if i%2 == 0 {
		h = 2 * math.Abs(lp.Y)
	} else {
		w = 2 * math.Abs(lp.X)
	}
	if d.Flags.Has(Square) {
		if i%2 == 0 {
			w = h
		} else {
			h = w
		}
	}
	if w < tol || h < tol || !lp.IsFinite() {
		vg.Logger().Debug("shape: rejected diamond handle", "handle", i, "point", pt, "tol", tol)
		return false
	}
	d.setLocal(vg.NewRectFromCenter(vg.Point{}, w, h), d.frame())
	return true
}

func (d *Diamond) Extent() vg.Rect {
	return d.cachedExtent(func() vg.Rect {
		v := d.Vertices()
		return vg.BoundingRect(v[:])
	})
}

func (d *Diamond) HitTest(pt vg.Point, tol float64) (HitResult, bool) {
	v := d.Vertices()
	return hitTest(polygonSegments(v[:], true), true, pt, tol)
}

func (d *Diamond) HitTestBox(r vg.Rect) bool { return hitTestBox(d, r) }

func (d *Diamond) Output(p *vg.Path) bool { return d.outputPolygon(p, d.Vertices()) }

func (d *Diamond) Save(w storage.Writer) error { return d.saveRect(w) }

func (d *Diamond) Load(rd storage.Reader) error {
	flags, pts, err := loadRect(rd)
	if err != nil {
		return err
	}
	d.applyRect(flags, pts)
	return nil
}
