package vg

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Op is the drawing instruction of a path node. The values match the node
// types persisted by older documents and renderers, so they are part of the
// format.
type Op uint8

const (
	// CloseFigure is a flag that is OR'ed onto the last node of a figure to
	// close it. It never appears on its own.
	CloseFigure Op = 1
	LineTo      Op = 2
	BezierTo    Op = 4
	QuadTo      Op = 8
	MoveTo      Op = 6
)

// Kind returns the instruction without the CloseFigure flag.
func (op Op) Kind() Op {
	return op &^ CloseFigure
}

// IsClosing reports whether the CloseFigure flag is set.
func (op Op) IsClosing() bool {
	return op != MoveTo && op&CloseFigure != 0
}

func (op Op) String() string {
	var s string
	switch op.Kind() {
	case MoveTo:
		s = "MoveTo"
	case LineTo:
		s = "LineTo"
	case BezierTo:
		s = "BezierTo"
	case QuadTo:
		s = "QuadTo"
	default:
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
	if op.IsClosing() {
		s += "|CloseFigure"
	}
	return s
}

// Node is one entry of a path: a point and the instruction that draws to it.
type Node struct {
	Point Point
	Op    Op
}

func (n Node) String() string {
	return fmt.Sprintf("%s%s", n.Op, n.Point)
}

// Path is a sequence of nodes built from drawing commands. It is the only
// representation in which shapes hand out their geometry.
//
// Nodes are grouped into figures. A figure starts with a MoveTo node and runs
// until the node before the next MoveTo, or the end of the path. Its last node
// may carry the CloseFigure flag. Runs of BezierTo nodes come in groups of
// three (two control points and an end point), runs of QuadTo nodes in groups
// of two.
//
// Drawing commands other than MoveTo require an open figure, that is a MoveTo
// that hasn't been followed by CloseFigure or StartFigure. Commands that can't
// be applied return false and leave the path unmodified.
//
// The zero value is an empty path ready to use.
type Path struct {
	nodes []Node
	// begin is the index of the MoveTo node of the open figure. It is only
	// meaningful while open is true.
	begin int
	open  bool
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

// NewPathFromNodes returns a path holding a copy of nodes. No figure is open.
func NewPathFromNodes(nodes []Node) *Path {
	p := &Path{}
	p.SetNodes(nodes)
	return p
}

func (p *Path) figureStart() (int, bool) {
	return p.begin, p.open
}

func (p *Path) setFigureStart(i int) {
	p.begin = i
	p.open = true
}

// Clone returns a deep copy of p, including its open figure.
func (p *Path) Clone() *Path {
	return &Path{
		nodes: slices.Clone(p.nodes),
		begin: p.begin,
		open:  p.open,
	}
}

// SetNodes replaces the nodes of p with a copy of nodes. No figure is open
// afterwards.
func (p *Path) SetNodes(nodes []Node) {
	p.nodes = append(p.nodes[:0], nodes...)
	p.StartFigure()
}

// Append appends the nodes of src. If src starts with a MoveTo to the point
// where the open figure of p ends, that MoveTo is skipped and src continues
// the figure. Both paths must hold at least two nodes; otherwise Append does
// nothing.
func (p *Path) Append(src *Path) {
	if p == src || src.Len() < 2 || p.Len() < 2 {
		return
	}
	nodes := src.nodes
	last := p.nodes[len(p.nodes)-1]
	if nodes[0].Op == MoveTo && !last.Op.IsClosing() && last.Point == nodes[0].Point {
		nodes = nodes[1:]
	} else {
		p.setFigureStart(len(p.nodes))
	}
	p.nodes = append(p.nodes, nodes...)
	if p.nodes[len(p.nodes)-1].Op.IsClosing() {
		p.StartFigure()
	}
}

// Len returns the number of nodes.
func (p *Path) Len() int { return len(p.nodes) }

// Node returns the i-th node, or the zero node if i is out of range.
func (p *Path) Node(i int) Node {
	if i < 0 || i >= len(p.nodes) {
		return Node{}
	}
	return p.nodes[i]
}

// Nodes returns the nodes of the path. The slice must not be modified.
func (p *Path) Nodes() []Node { return p.nodes }

// Point returns the point of the i-th node, or the zero point if i is out of
// range.
func (p *Path) Point(i int) Point { return p.Node(i).Point }

// Op returns the instruction of the i-th node, or 0 if i is out of range.
func (p *Path) Op(i int) Op { return p.Node(i).Op }

// SetPoint changes the point of the i-th node. It reports false if i is out of
// range.
func (p *Path) SetPoint(i int, pt Point) bool {
	if i < 0 || i >= len(p.nodes) {
		return false
	}
	p.nodes[i].Point = pt
	return true
}

// Points returns a copy of the points of all nodes.
func (p *Path) Points() []Point {
	pts := make([]Point, len(p.nodes))
	for i, n := range p.nodes {
		pts[i] = n.Point
	}
	return pts
}

// StartPoint returns the point of the first node.
func (p *Path) StartPoint() Point { return p.Point(0) }

// EndPoint returns the point of the last node. This is the current point that
// relative commands are based on.
func (p *Path) EndPoint() Point { return p.Point(len(p.nodes) - 1) }

// StartTangent returns the vector from the first to the second node.
func (p *Path) StartTangent() Vec2 {
	if len(p.nodes) < 2 {
		return Vec2{}
	}
	return p.nodes[1].Point.Sub(p.nodes[0].Point)
}

// EndTangent returns the vector from the second to last to the last node.
func (p *Path) EndTangent() Vec2 {
	n := len(p.nodes)
	if n < 2 {
		return Vec2{}
	}
	return p.nodes[n-1].Point.Sub(p.nodes[n-2].Point)
}

// Clear removes all nodes.
func (p *Path) Clear() {
	p.nodes = p.nodes[:0]
	p.StartFigure()
}

// Transform applies aff to the points of all nodes.
func (p *Path) Transform(aff Affine) {
	if aff.IsIdentity() {
		return
	}
	for i := range p.nodes {
		p.nodes[i].Point = p.nodes[i].Point.Transform(aff)
	}
}

// BoundingBox returns the bounding box of all node points. Since Bézier
// curves lie within their control polygon, it contains the drawn path.
func (p *Path) BoundingBox() Rect {
	return BoundingRect(p.Points())
}

// StartFigure ends the open figure without closing it. The next drawing
// command must be MoveTo.
func (p *Path) StartFigure() {
	p.begin = 0
	p.open = false
}

// HasOpenFigure reports whether drawing commands other than MoveTo can be
// applied.
func (p *Path) HasOpenFigure() bool {
	_, ok := p.figureStart()
	return ok
}

func (p *Path) resolve(pt Point, rel bool) Point {
	if rel {
		return pt.Translate(Vec2(p.EndPoint()))
	}
	return pt
}

func (p *Path) push(op Op, pts []Point, rel bool) {
	base := Vec2(p.EndPoint())
	for _, pt := range pts {
		if rel {
			pt = pt.Translate(base)
		}
		p.nodes = append(p.nodes, Node{pt, op})
	}
}

// MoveTo starts a new figure at pt. It always succeeds.
func (p *Path) MoveTo(pt Point, rel bool) bool {
	p.nodes = append(p.nodes, Node{p.resolve(pt, rel), MoveTo})
	p.setFigureStart(len(p.nodes) - 1)
	return true
}

// LineTo draws a straight line to pt.
func (p *Path) LineTo(pt Point, rel bool) bool {
	if !p.HasOpenFigure() {
		return false
	}
	p.push(LineTo, []Point{pt}, rel)
	return true
}

// HorzTo draws a horizontal line to x.
func (p *Path) HorzTo(x float64, rel bool) bool {
	if !p.HasOpenFigure() {
		return false
	}
	pt := p.EndPoint()
	if rel {
		pt.X += x
	} else {
		pt.X = x
	}
	p.push(LineTo, []Point{pt}, false)
	return true
}

// VertTo draws a vertical line to y.
func (p *Path) VertTo(y float64, rel bool) bool {
	if !p.HasOpenFigure() {
		return false
	}
	pt := p.EndPoint()
	if rel {
		pt.Y += y
	} else {
		pt.Y = y
	}
	p.push(LineTo, []Point{pt}, false)
	return true
}

// LinesTo draws a polyline through pts, which must not be empty. In relative
// mode all points are relative to the current point before the call.
func (p *Path) LinesTo(pts []Point, rel bool) bool {
	if !p.HasOpenFigure() || len(pts) == 0 {
		return false
	}
	p.push(LineTo, pts, rel)
	return true
}

// BeziersTo draws a run of cubic Bézier curves. len(pts) must be a positive
// multiple of three. If reverse is true, the points are appended in reverse
// order, which is useful for curves that were computed end to start.
func (p *Path) BeziersTo(pts []Point, reverse, rel bool) bool {
	if !p.HasOpenFigure() || len(pts) == 0 || len(pts)%3 != 0 {
		return false
	}
	if reverse {
		pts = slices.Clone(pts)
		slices.Reverse(pts)
	}
	p.push(BezierTo, pts, rel)
	return true
}

// BezierTo draws a cubic Bézier curve with control points cp1 and cp2 to end.
func (p *Path) BezierTo(cp1, cp2, end Point, rel bool) bool {
	return p.BeziersTo([]Point{cp1, cp2, end}, false, rel)
}

// smoothControl returns the reflection of the second to last point through
// the current point. With fewer than two points it is the current point.
func (p *Path) smoothControl() Point {
	n := len(p.nodes)
	last := p.EndPoint()
	if n < 2 {
		return last
	}
	return last.Reflect(p.nodes[n-2].Point)
}

// SmoothBezierTo draws a cubic Bézier curve to end whose first control point
// is the reflection of the previous control point through the current point,
// continuing the preceding curve without a kink.
func (p *Path) SmoothBezierTo(cp2, end Point, rel bool) bool {
	if !p.HasOpenFigure() {
		return false
	}
	cp1 := p.smoothControl()
	cp2, end = p.resolve(cp2, rel), p.resolve(end, rel)
	p.push(BezierTo, []Point{cp1, cp2, end}, false)
	return true
}

// QuadsTo draws a run of quadratic Bézier curves. len(pts) must be a positive
// multiple of two.
func (p *Path) QuadsTo(pts []Point, rel bool) bool {
	if !p.HasOpenFigure() || len(pts) == 0 || len(pts)%2 != 0 {
		return false
	}
	p.push(QuadTo, pts, rel)
	return true
}

// QuadTo draws a quadratic Bézier curve with control point cp to end.
func (p *Path) QuadTo(cp, end Point, rel bool) bool {
	return p.QuadsTo([]Point{cp, end}, rel)
}

// SmoothQuadTo draws a quadratic Bézier curve to end whose control point is the
// reflection of the previous control point through the current point.
func (p *Path) SmoothQuadTo(end Point, rel bool) bool {
	if !p.HasOpenFigure() {
		return false
	}
	cp := p.smoothControl()
	p.push(QuadTo, []Point{cp, p.resolve(end, rel)}, false)
	return true
}

// ArcTo draws a circular arc from the current point to pt. The arc starts in
// the direction of the last segment of the figure, so it continues a preceding
// line without a kink.
//
// It fails if the open figure holds fewer than two nodes or if pt lies on the
// line through the last segment.
func (p *Path) ArcTo(pt Point, rel bool) bool {
	begin, ok := p.figureStart()
	n := len(p.nodes)
	if !ok || n < begin+2 {
		return false
	}
	start := p.nodes[n-1].Point
	tan := start.Sub(p.nodes[n-2].Point)
	arc, ok := ArcFromTangent(start, p.resolve(pt, rel), tan)
	if !ok {
		Logger().Debug("vg: degenerate tangent arc", "start", start, "end", pt, "tangent", tan)
		return false
	}
	return p.appendArc(arc)
}

// Arc3To draws a circular arc from the current point through via to end.
//
// It fails if no figure is open or the three points are collinear.
func (p *Path) Arc3To(via, end Point, rel bool) bool {
	if !p.HasOpenFigure() {
		return false
	}
	start := p.EndPoint()
	arc, ok := ArcFrom3Points(start, p.resolve(via, rel), p.resolve(end, rel))
	if !ok {
		Logger().Debug("vg: degenerate three-point arc", "start", start, "via", via, "end", end)
		return false
	}
	return p.appendArc(arc)
}

func (p *Path) appendArc(arc CircleArc) bool {
	pts := arc.Bezier()
	if len(pts) < 4 {
		return false
	}
	p.push(BezierTo, pts[1:], false)
	return true
}

// CloseFigure closes the open figure by flagging its last node. It fails if no
// figure is open or the figure holds nothing but its MoveTo.
func (p *Path) CloseFigure() bool {
	begin, ok := p.figureStart()
	n := len(p.nodes)
	if !ok || n < begin+2 {
		return false
	}
	switch p.nodes[n-1].Op {
	case LineTo, BezierTo, QuadTo:
		p.nodes[n-1].Op |= CloseFigure
		p.StartFigure()
		return true
	default:
		return false
	}
}

// Figure is a run of nodes starting with a MoveTo node.
type Figure struct {
	// Index of the first node in the path.
	Start int
	Nodes []Node
}

// Closed reports whether the last node of the figure closes it.
func (f Figure) Closed() bool {
	return len(f.Nodes) > 0 && f.Nodes[len(f.Nodes)-1].Op.IsClosing()
}

// Figures returns an iterator over the figures of the path. Nodes before the
// first MoveTo, which a well-formed path doesn't have, form a figure of their
// own.
func (p *Path) Figures() iter.Seq[Figure] {
	return func(yield func(Figure) bool) {
		start := 0
		for i := 1; i <= len(p.nodes); i++ {
			if i == len(p.nodes) || p.nodes[i].Op == MoveTo {
				if !yield(Figure{Start: start, Nodes: p.nodes[start:i]}) {
					return
				}
				start = i
			}
		}
	}
}

func (p *Path) String() string {
	var sb strings.Builder
	for i, n := range p.nodes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(n.String())
	}
	return sb.String()
}
