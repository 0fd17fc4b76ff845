package shape

import (
	"fmt"
	"slices"

	"honnef.co/go/vg"
	"honnef.co/go/vg/storage"
)

// linesBase holds the vertices shared by polylines and splines.
type linesBase struct {
	ShapeBase
	pts    []vg.Point
	closed bool
	// tangents caches the knot tangents of splines. It is nil for polylines.
	tangents *[]vg.Vec2
}

func (l *linesBase) PointCount() int { return len(l.pts) }
func (l *linesBase) IsClosed() bool  { return l.closed }

func (l *linesBase) Point(i int) vg.Point {
	if i < 0 || i >= len(l.pts) {
		return vg.Point{}
	}
	return l.pts[i]
}

// Points returns a copy of the vertices.
func (l *linesBase) Points() []vg.Point { return slices.Clone(l.pts) }

// EndPoint returns the last vertex, or the zero point if there is none.
func (l *linesBase) EndPoint() vg.Point {
	if len(l.pts) == 0 {
		return vg.Point{}
	}
	return l.pts[len(l.pts)-1]
}

// changed must be called after every change of the vertices.
func (l *linesBase) changed() {
	l.invalidate()
	if l.tangents != nil {
		*l.tangents = splineTangents(l.pts, l.closed)
	}
}

func (l *linesBase) SetPoint(i int, pt vg.Point) bool {
	if i < 0 || i >= len(l.pts) || l.IsLocked() {
		return false
	}
	l.pts[i] = pt
	l.changed()
	return true
}

// SetClosed opens or closes the figure.
func (l *linesBase) SetClosed(closed bool) bool {
	if l.IsLocked() {
		return false
	}
	l.closed = closed
	l.changed()
	return true
}

// MaxEdgeIndex returns the index of the last edge, or -1 if there are no
// edges. Edge i runs from vertex i to the next one.
func (l *linesBase) MaxEdgeIndex() int {
	n := len(l.pts)
	if n < 2 {
		return -1
	}
	if l.closed {
		return n - 1
	}
	return n - 2
}

// Resize changes the number of vertices. New vertices are placed on the last
// one.
func (l *linesBase) Resize(count int) bool {
	if count < 0 || l.IsLocked() {
		return false
	}
	if count <= len(l.pts) {
		l.pts = l.pts[:count]
	} else {
		end := l.EndPoint()
		for len(l.pts) < count {
			l.pts = append(l.pts, end)
		}
	}
	l.changed()
	return true
}

// AddPoint appends a vertex.
func (l *linesBase) AddPoint(pt vg.Point) bool {
	if l.IsLocked() {
		return false
	}
	l.pts = append(l.pts, pt)
	l.changed()
	return true
}

// InsertPoint splits edge segment by inserting pt after its first vertex.
func (l *linesBase) InsertPoint(segment int, pt vg.Point) bool {
	if segment < 0 || segment > l.MaxEdgeIndex() || l.IsLocked() {
		return false
	}
	l.pts = slices.Insert(l.pts, segment+1, pt)
	l.changed()
	return true
}

// RemovePoint removes vertex i. It refuses to leave fewer than two vertices.
func (l *linesBase) RemovePoint(i int) bool {
	if i < 0 || i >= len(l.pts) || len(l.pts) <= 2 || l.IsLocked() {
		return false
	}
	l.pts = slices.Delete(l.pts, i, i+1)
	l.changed()
	return true
}

// isIncrementFrom reports whether the vertices are those of src with more
// vertices appended. The last vertex of src may have moved, as it does while
// the figure is being drawn.
func (l *linesBase) isIncrementFrom(src *linesBase) bool {
	if len(src.pts) < 2 || len(l.pts) < len(src.pts) || l.closed != src.closed {
		return false
	}
	return slices.Equal(l.pts[:len(src.pts)-1], src.pts[:len(src.pts)-1])
}

func (l *linesBase) HandleCount() int { return len(l.pts) }
func (l *linesBase) Handle(i int) vg.Point {
	return l.Point(i)
}
func (l *linesBase) HandleType(int) HandleType { return HandleVertex }
func (l *linesBase) IsHandleFixed(int) bool    { return false }

// SetHandle moves vertex i. Moves that would shrink the figure into a box
// smaller than tol in both directions are rejected.
func (l *linesBase) SetHandle(i int, pt vg.Point, tol float64) bool {
	if i < 0 || i >= len(l.pts) || l.IsLocked() {
		return false
	}
	pts := slices.Clone(l.pts)
	pts[i] = pt
	if ext := vg.BoundingRect(pts); ext.Width() < tol && ext.Height() < tol {
		vg.Logger().Debug("shape: rejected vertex handle", "handle", i, "point", pt, "tol", tol)
		return false
	}
	l.pts = pts
	l.changed()
	return true
}

func (l *linesBase) Transform(aff vg.Affine) bool {
	if l.IsLocked() {
		return false
	}
	vg.TransformPoints(l.pts, aff)
	l.changed()
	return true
}

func (l *linesBase) Clear() {
	l.pts = nil
	l.changed()
}

func (l *linesBase) cloneLines() linesBase {
	c := linesBase{ShapeBase: l.cloneBase(), pts: slices.Clone(l.pts), closed: l.closed}
	if l.tangents != nil {
		t := slices.Clone(*l.tangents)
		c.tangents = &t
	}
	return c
}

func (l *linesBase) equalLines(o *linesBase) bool {
	return l.equalBase(&o.ShapeBase) && l.closed == o.closed && slices.Equal(l.pts, o.pts)
}

func (l *linesBase) saveLines(w storage.Writer) error {
	flags := l.Flags &^ Closed
	if l.closed {
		flags |= Closed
	}
	w.SetInt("flags", int(flags))
	w.SetInt("count", len(l.pts))
	return savePoints(w, l.pts)
}

func (l *linesBase) loadLines(r storage.Reader) error {
	flags, err := loadFlags(r)
	if err != nil {
		return err
	}
	count, err := r.Int("count")
	if err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("count %d: %w", count, ErrMalformed)
	}
	pts, err := loadPoints(r, count)
	if err != nil {
		return err
	}
	l.Flags = flags &^ Closed
	l.closed = flags.Has(Closed)
	l.pts = pts
	l.changed()
	return nil
}

// Lines is a polyline or, when closed, a polygon.
type Lines struct {
	linesBase
}

// NewLines returns the polyline through pts.
func NewLines(pts []vg.Point, closed bool) *Lines {
	return &Lines{linesBase{pts: slices.Clone(pts), closed: closed}}
}

func (l *Lines) Type() Type { return TypeLines }

func (l *Lines) IsKindOf(t Type) bool { return t == TypeLines || t == TypeLinesFamily }
func (l *Lines) IsCurve() bool        { return false }

// IsIncrementFrom reports whether l is src with vertices appended, the last
// vertex of src possibly moved.
func (l *Lines) IsIncrementFrom(src *Lines) bool { return l.isIncrementFrom(&src.linesBase) }

func (l *Lines) Clone() Shape { return &Lines{l.cloneLines()} }

func (l *Lines) Equal(o Shape) bool {
	ol, ok := o.(*Lines)
	return ok && l.equalLines(&ol.linesBase)
}

func (l *Lines) Extent() vg.Rect {
	return l.cachedExtent(func() vg.Rect { return vg.BoundingRect(l.pts) })
}

// HitTest reports the edge holding the nearest point as the segment.
func (l *Lines) HitTest(pt vg.Point, tol float64) (HitResult, bool) {
	return hitTest(polygonSegments(l.pts, l.closed), l.closed, pt, tol)
}

func (l *Lines) HitTestBox(r vg.Rect) bool { return hitTestBox(l, r) }

func (l *Lines) Output(p *vg.Path) bool {
	if len(l.pts) < 2 {
		return false
	}
	p.MoveTo(l.pts[0], false)
	p.LinesTo(l.pts[1:], false)
	if l.closed {
		p.CloseFigure()
	}
	return true
}

func (l *Lines) Save(w storage.Writer) error { return l.saveLines(w) }

func (l *Lines) Load(r storage.Reader) error { return l.loadLines(r) }
