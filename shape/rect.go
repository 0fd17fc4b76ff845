package shape

import (
	"math"

	"honnef.co/go/vg"
	"honnef.co/go/vg/storage"
)

// rectBase holds the geometry shared by the rectangle family: four corners
// clockwise from the top left corner. The rectangle may be rotated.
type rectBase struct {
	ShapeBase
	pts [4]vg.Point
	// bz caches the outline of ellipses. It is nil for other shapes.
	bz *[13]vg.Point
}

func (r *rectBase) IsClosed() bool  { return true }
func (r *rectBase) PointCount() int { return 4 }

func (r *rectBase) Point(i int) vg.Point {
	if i < 0 || i > 3 {
		return vg.Point{}
	}
	return r.pts[i]
}

// Corners returns the four corners clockwise from the top left.
func (r *rectBase) Corners() [4]vg.Point { return r.pts }

// changed must be called after every change of the corners.
func (r *rectBase) changed() {
	r.invalidate()
	if r.bz != nil {
		*r.bz = ellipseBezier(r.frame(), r.Width()/2, r.Height()/2)
	}
}

func (r *rectBase) Center() vg.Point { return r.pts[0].Midpoint(r.pts[2]) }
func (r *rectBase) Width() float64   { return r.pts[0].Distance(r.pts[1]) }
func (r *rectBase) Height() float64  { return r.pts[0].Distance(r.pts[3]) }

// DiagonalLength returns the distance between opposite corners.
func (r *rectBase) DiagonalLength() float64 { return r.pts[0].Distance(r.pts[2]) }

// Angle returns the rotation of the rectangle, the direction of its top edge.
func (r *rectBase) Angle() float64 {
	if r.pts[0] == r.pts[1] {
		return 0
	}
	return r.pts[1].Sub(r.pts[0]).Angle()
}

// Rect returns the rectangle before rotation, centered on the same point.
func (r *rectBase) Rect() vg.Rect {
	return vg.NewRectFromCenter(r.Center(), r.Width(), r.Height())
}

// IsEmpty reports whether the width or the height is at most minDist.
func (r *rectBase) IsEmpty(minDist float64) bool {
	return r.Width() <= minDist || r.Height() <= minDist
}

// IsOrtho reports whether the rectangle isn't rotated.
func (r *rectBase) IsOrtho() bool {
	return r.pts[0].Y == r.pts[1].Y && r.pts[0].X == r.pts[3].X
}

// frame maps the local space of the rectangle, whose origin is the center and
// whose x axis runs along the top edge, to drawing space.
func (r *rectBase) frame() vg.Affine {
	return vg.Rotate(r.Angle()).ThenTranslate(vg.Vec2(r.Center()))
}

// local returns the bounds of the rectangle in its local space.
func (r *rectBase) local() vg.Rect {
	return vg.NewRectFromCenter(vg.Point{}, r.Width(), r.Height())
}

// setLocal replaces the corners with those of lr in the local space of frame.
func (r *rectBase) setLocal(lr vg.Rect, frame vg.Affine) {
	lr = lr.Abs()
	c := lr.Corners()
	for i := range c {
		r.pts[i] = c[i].Transform(frame)
	}
	r.changed()
}

func squareTo(pt1, pt2 vg.Point) vg.Point {
	d := pt2.Sub(pt1)
	side := max(math.Abs(d.X), math.Abs(d.Y))
	sx, sy := 1.0, 1.0
	if d.X < 0 {
		sx = -1
	}
	if d.Y < 0 {
		sy = -1
	}
	return vg.Pt(pt1.X+sx*side, pt1.Y+sy*side)
}

// SetRect2P makes the shape the axis-aligned rectangle with opposite corners
// pt1 and pt2. With the Square flag, pt1 stays put and the far corner is
// moved away from it to make a square.
func (r *rectBase) SetRect2P(pt1, pt2 vg.Point) bool {
	return r.SetRectWithAngle(pt1, pt2, 0, pt1)
}

// SetRectWithAngle makes the shape the rectangle with opposite corners pt1 and
// pt2, rotated by angle around base.
func (r *rectBase) SetRectWithAngle(pt1, pt2 vg.Point, angle float64, base vg.Point) bool {
	if r.IsLocked() {
		return false
	}
	if r.Flags.Has(Square) {
		pt2 = squareTo(pt1, pt2)
	}
	c := vg.NewRectFromPoints(pt1, pt2).Corners()
	aff := vg.RotateAbout(angle, base)
	for i := range c {
		r.pts[i] = c[i].Transform(aff)
	}
	r.changed()
	return true
}

// SetRect4P sets the corners, which must form a rectangle, clockwise from the
// top left.
func (r *rectBase) SetRect4P(pts [4]vg.Point) bool {
	if r.IsLocked() {
		return false
	}
	r.pts = pts
	r.changed()
	return true
}

// SetCenter moves the shape so that its center is pt.
func (r *rectBase) SetCenter(pt vg.Point) bool {
	if r.IsLocked() {
		return false
	}
	vg.TransformPoints(r.pts[:], vg.Translate(pt.Sub(r.Center())))
	r.changed()
	return true
}

// SetSquare sets or clears the Square flag.
func (r *rectBase) SetSquare(square bool) { r.SetFlag(Square, square) }

// SetPoint moves corner i to pt, keeping the opposite corner in place.
func (r *rectBase) SetPoint(i int, pt vg.Point) bool {
	if i < 0 || i > 3 || r.IsLocked() {
		return false
	}
	return r.dragRect(i, pt, 0, false)
}

// dragRect moves handle i of the rectangle to pt: corners 0–3, then the
// midpoints of the top, right, bottom and left edges. If square is true,
// corners keep the shape square and edges resize the other axis about the
// center.
func (r *rectBase) dragRect(i int, pt vg.Point, tol float64, square bool) bool {
	frame := r.frame()
	lp := pt.Transform(frame.Invert())
	lr := r.local()
	switch i {
	case 0:
		lr.X0, lr.Y0 = lp.X, lp.Y
	case 1:
		lr.X1, lr.Y0 = lp.X, lp.Y
	case 2:
		lr.X1, lr.Y1 = lp.X, lp.Y
	case 3:
		lr.X0, lr.Y1 = lp.X, lp.Y
	case 4:
		lr.Y0 = lp.Y
	case 5:
		lr.X1 = lp.X
	case 6:
		lr.Y1 = lp.Y
	case 7:
		lr.X0 = lp.X
	default:
		return false
	}
	if square {
		switch i {
		case 0, 1, 2, 3:
			// The corner opposite of the dragged one stays put.
			fixed := r.local().Corners()[(i+2)%4]
			moved := squareTo(fixed, lp)
			lr = vg.NewRectFromPoints(fixed, moved)
		case 4, 6:
			h := math.Abs(lr.Height())
			cx := lr.Center().X
			lr.X0, lr.X1 = cx-h/2, cx+h/2
		case 5, 7:
			w := math.Abs(lr.Width())
			cy := lr.Center().Y
			lr.Y0, lr.Y1 = cy-w/2, cy+w/2
		}
	}
	lr = lr.Abs()
	if lr.Width() < tol || lr.Height() < tol || !lp.IsFinite() {
		vg.Logger().Debug("shape: rejected rectangle handle", "handle", i, "point", pt, "tol", tol)
		return false
	}
	r.setLocal(lr, frame)
	return true
}

// Rectangles have eight handles: the corners 0–3, clockwise from the top
// left, and the midpoints 4–7 of the top, right, bottom and left edges.
func (r *rectBase) HandleCount() int { return 8 }

func (r *rectBase) Handle(i int) vg.Point {
	switch {
	case i >= 0 && i < 4:
		return r.pts[i]
	case i >= 4 && i < 8:
		return r.pts[i-4].Midpoint(r.pts[(i-3)%4])
	}
	return vg.Point{}
}

func (r *rectBase) HandleType(i int) HandleType {
	if i >= 4 {
		return HandleMidpoint
	}
	return HandleVertex
}

func (r *rectBase) IsHandleFixed(int) bool { return false }

func (r *rectBase) SetHandle(i int, pt vg.Point, tol float64) bool {
	if r.IsLocked() {
		return false
	}
	return r.dragRect(i, pt, tol, r.Flags.Has(Square))
}

// Transform applies aff and rebuilds a rectangle from the result: the center
// follows aff, the top edge keeps its transformed direction and length and the
// height becomes the distance of the transformed left edge from the top edge.
func (r *rectBase) Transform(aff vg.Affine) bool {
	if r.IsLocked() {
		return false
	}
	var t [4]vg.Point
	for i, pt := range r.pts {
		t[i] = pt.Transform(aff)
	}
	top := t[1].Sub(t[0])
	w := top.Hypot()
	angle := 0.0
	h := t[3].Sub(t[0]).Hypot()
	if w > 0 {
		angle = top.Angle()
		h = math.Abs(top.Cross(t[3].Sub(t[0]))) / w
	}
	center := t[0].Midpoint(t[2])
	r.setLocal(vg.NewRectFromCenter(vg.Point{}, w, h), vg.Rotate(angle).ThenTranslate(vg.Vec2(center)))
	return true
}

func (r *rectBase) clearRect() {
	r.pts = [4]vg.Point{}
	r.changed()
}

func (r *rectBase) Extent() vg.Rect {
	return r.cachedExtent(func() vg.Rect { return vg.BoundingRect(r.pts[:]) })
}

func (r *rectBase) cloneRect() rectBase {
	c := rectBase{ShapeBase: r.cloneBase(), pts: r.pts}
	if r.bz != nil {
		bz := *r.bz
		c.bz = &bz
	}
	return c
}

func (r *rectBase) equalRect(o *rectBase) bool {
	return r.equalBase(&o.ShapeBase) && r.pts == o.pts
}

func (r *rectBase) outputPolygon(p *vg.Path, pts [4]vg.Point) bool {
	p.MoveTo(pts[0], false)
	p.LinesTo(pts[1:], false)
	p.CloseFigure()
	return true
}

func (r *rectBase) saveRect(w storage.Writer) error {
	r.saveBase(w)
	return savePoints(w, r.pts[:])
}

// loadRect reads flags and corners. It doesn't modify r; the caller applies
// the result with applyRect after reading its own fields.
func loadRect(rd storage.Reader) (Flags, [4]vg.Point, error) {
	var pts [4]vg.Point
	flags, err := loadFlags(rd)
	if err != nil {
		return 0, pts, err
	}
	ps, err := loadPoints(rd, 4)
	if err != nil {
		return 0, pts, err
	}
	copy(pts[:], ps)
	return flags, pts, nil
}

func (r *rectBase) applyRect(flags Flags, pts [4]vg.Point) {
	r.Flags = flags
	r.pts = pts
	r.changed()
}

// Rect is a rectangle.
type Rect struct {
	rectBase
}

// NewRect returns the axis-aligned rectangle with opposite corners pt1 and
// pt2.
func NewRect(pt1, pt2 vg.Point) *Rect {
	r := &Rect{}
	r.SetRect2P(pt1, pt2)
	return r
}

func (r *Rect) Type() Type { return TypeRect }

func (r *Rect) IsKindOf(t Type) bool { return t == TypeRect || t == TypeRectFamily }
func (r *Rect) IsCurve() bool        { return false }

func (r *Rect) Clone() Shape { return &Rect{r.cloneRect()} }

func (r *Rect) Equal(o Shape) bool {
	or, ok := o.(*Rect)
	return ok && r.equalRect(&or.rectBase)
}

func (r *Rect) Clear() { r.clearRect() }

func (r *Rect) HitTest(pt vg.Point, tol float64) (HitResult, bool) {
	return hitTest(polygonSegments(r.pts[:], true), true, pt, tol)
}

func (r *Rect) HitTestBox(box vg.Rect) bool { return hitTestBox(r, box) }

func (r *Rect) Output(p *vg.Path) bool { return r.outputPolygon(p, r.pts) }

func (r *Rect) Save(w storage.Writer) error { return r.saveRect(w) }

func (r *Rect) Load(rd storage.Reader) error {
	flags, pts, err := loadRect(rd)
	if err != nil {
		return err
	}
	r.applyRect(flags, pts)
	return nil
}
