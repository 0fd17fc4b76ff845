package shape

import (
	"fmt"

	"honnef.co/go/vg"
	"honnef.co/go/vg/storage"
)

// Dot is a single point drawn as a marker.
type Dot struct {
	ShapeBase
	point vg.Point
	ptype int
}

// NewDot returns a dot at pt.
func NewDot(pt vg.Point) *Dot {
	return &Dot{point: pt}
}

func (d *Dot) Type() Type                { return TypeDot }
func (d *Dot) IsKindOf(t Type) bool      { return t == TypeDot }
func (d *Dot) PointCount() int           { return 1 }
func (d *Dot) IsClosed() bool            { return false }
func (d *Dot) IsCurve() bool             { return false }
func (d *Dot) HandleCount() int          { return 1 }
func (d *Dot) HandleType(int) HandleType { return HandleVertex }
func (d *Dot) IsHandleFixed(int) bool    { return false }

// PointType returns the marker selector. Zero is the default marker; other
// values are interpreted by the renderer.
func (d *Dot) PointType() int { return d.ptype }

func (d *Dot) SetPointType(t int) { d.ptype = t }

func (d *Dot) Point(i int) vg.Point {
	if i != 0 {
		return vg.Point{}
	}
	return d.point
}

func (d *Dot) SetPoint(i int, pt vg.Point) bool {
	if i != 0 || d.IsLocked() {
		return false
	}
	d.point = pt
	d.invalidate()
	return true
}

func (d *Dot) Handle(i int) vg.Point { return d.Point(i) }

func (d *Dot) SetHandle(i int, pt vg.Point, tol float64) bool {
	return d.SetPoint(i, pt)
}

func (d *Dot) Clone() Shape {
	c := *d
	c.ShapeBase = d.cloneBase()
	return &c
}

func (d *Dot) Equal(o Shape) bool {
	od, ok := o.(*Dot)
	return ok && d.equalBase(&od.ShapeBase) && d.point == od.point && d.ptype == od.ptype
}

func (d *Dot) Transform(aff vg.Affine) bool {
	if d.IsLocked() {
		return false
	}
	d.point = d.point.Transform(aff)
	d.invalidate()
	return true
}

func (d *Dot) Clear() {
	d.point = vg.Point{}
	d.ptype = 0
	d.invalidate()
}

func (d *Dot) Extent() vg.Rect {
	return vg.Rect{X0: d.point.X, Y0: d.point.Y, X1: d.point.X, Y1: d.point.Y}
}

func (d *Dot) HitTest(pt vg.Point, tol float64) (HitResult, bool) {
	return hitTest([][]vg.Point{{d.point}}, false, pt, tol)
}

func (d *Dot) HitTestBox(r vg.Rect) bool { return r.Contains(d.point) }

func (d *Dot) Output(p *vg.Path) bool {
	p.MoveTo(d.point, false)
	p.LineTo(d.point, false)
	return true
}

func (d *Dot) Save(w storage.Writer) error {
	if !d.point.IsFinite() {
		return fmt.Errorf("non-finite point: %w", ErrMalformed)
	}
	d.saveBase(w)
	w.SetFloat("x", d.point.X)
	w.SetFloat("y", d.point.Y)
	w.SetInt("ptype", d.ptype)
	return nil
}

func (d *Dot) Load(r storage.Reader) error {
	flags, err := loadFlags(r)
	if err != nil {
		return err
	}
	x, err := loadFloat(r, "x")
	if err != nil {
		return err
	}
	y, err := loadFloat(r, "y")
	if err != nil {
		return err
	}
	ptype, err := r.Int("ptype")
	if err != nil {
		return err
	}
	d.Flags = flags
	d.point = vg.Pt(x, y)
	d.ptype = ptype
	d.invalidate()
	return nil
}
